// Package config defines the langstats service configuration and its loader.
//
// Configuration is layered, lowest precedence first:
//
//  1. defaults ([New])
//  2. a YAML file named by LANGSTATS_CONFIG, if set
//  3. the legacy PORT variable (sets addr to ":$PORT")
//  4. LANGSTATS_* environment variables with flat keys
//     (LANGSTATS_GITHUB_USER -> github_user)
package config

import (
	"fmt"
	"slices"
	"time"

	apperrors "github.com/matzehuels/langstats/pkg/errors"
	"github.com/matzehuels/langstats/pkg/integrations"
	"github.com/matzehuels/langstats/pkg/integrations/colors"
	"github.com/matzehuels/langstats/pkg/integrations/github"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

// Snapshot store backends.
const (
	StoreMongo  = "mongo"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

// Stores lists the accepted values of Config.Store.
var Stores = []string{StoreMongo, StoreRedis, StoreSQLite, StoreFile, StoreMemory}

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// GitHubUser is the account whose repositories are ranked.
	GitHubUser string `koanf:"github_user"`

	// GitHubToken raises upstream rate limits when set.
	GitHubToken string `koanf:"github_token"`

	GitHubAPIURL string `koanf:"github_api_url"`
	ColorsURL    string `koanf:"colors_url"`

	// HTTPTimeout bounds each upstream request.
	HTTPTimeout time.Duration `koanf:"http_timeout"`

	// MaxAge is how long a snapshot is served before it is recomputed.
	MaxAge time.Duration `koanf:"max_age"`

	// Store selects the snapshot backend.
	Store      string `koanf:"store"`
	Collection string `koanf:"collection"`
	Document   string `koanf:"document"`

	MongoURI      string `koanf:"mongo_uri"`
	MongoDatabase string `koanf:"mongo_database"`

	RedisAddr     string `koanf:"redis_addr"`
	RedisPassword string `koanf:"redis_password"`
	RedisDB       int    `koanf:"redis_db"`

	FileDir    string `koanf:"file_dir"`
	SQLitePath string `koanf:"sqlite_path"`
}

// New returns a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:      "info",
		Addr:          ":8080",
		GitHubAPIURL:  github.DefaultBaseURL,
		ColorsURL:     colors.DefaultURL,
		HTTPTimeout:   integrations.DefaultTimeout,
		MaxAge:        snapshot.DefaultMaxAge,
		Store:         StoreMongo,
		Collection:    snapshot.DefaultCollection,
		Document:      snapshot.DefaultDocument,
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "langstats",
		RedisAddr:     "localhost:6379",
		FileDir:       "data",
		SQLitePath:    "langstats.db",
	}
}

// Validate checks the configuration for the server and refresh commands.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "addr must not be empty")
	}
	if err := apperrors.ValidateUsername(c.GitHubUser); err != nil {
		return apperrors.Wrap(apperrors.ErrCodeInvalidConfig, err, "github_user")
	}
	if c.HTTPTimeout <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "http_timeout must be positive, got %s", c.HTTPTimeout)
	}
	if c.MaxAge <= 0 {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "max_age must be positive, got %s", c.MaxAge)
	}
	if !slices.Contains(Stores, c.Store) {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "unknown store %q (want one of %v)", c.Store, Stores)
	}
	if c.Document == "" || c.Collection == "" {
		return apperrors.New(apperrors.ErrCodeInvalidConfig, "collection and document must not be empty")
	}
	return nil
}

// String summarizes the configuration without secrets.
func (c *Config) String() string {
	token := "unset"
	if c.GitHubToken != "" {
		token = "set"
	}
	return fmt.Sprintf("addr=%s user=%s token=%s store=%s max_age=%s timeout=%s",
		c.Addr, c.GitHubUser, token, c.Store, c.MaxAge, c.HTTPTimeout)
}
