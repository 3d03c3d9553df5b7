package snapshot

import (
	"context"
	"errors"
	"time"
)

// ErrCorrupt is returned by Store.Get when a stored document exists but
// cannot be decoded. The Gate treats such a snapshot as stale.
var ErrCorrupt = errors.New("corrupt snapshot document")

// OthersName is the label of the bucket holding every language outside the top ranks.
const OthersName = "Others"

// OthersColor is the fixed neutral gray used for the Others bucket.
const OthersColor = "#808080"

// Default document identity. The collection name doubles as the Redis key
// prefix and the SQLite table key.
const (
	DefaultCollection = "github-languages-stats"
	DefaultDocument   = "stats"
)

// Language is one ranked entry of a snapshot.
type Language struct {
	Name  string  `json:"name" bson:"name"`   // Language name as reported upstream
	Value float64 `json:"value" bson:"value"` // Share in percent, two decimals
	Color string  `json:"color" bson:"color"` // Hex color (#rrggbb)
}

// Snapshot is the cached ranking with its computation time.
type Snapshot struct {
	Timestamp int64      `json:"timestamp" bson:"timestamp"` // Epoch milliseconds
	Languages []Language `json:"languages" bson:"languages"`
}

// New creates a snapshot stamped with t.
func New(t time.Time, langs []Language) *Snapshot {
	return &Snapshot{Timestamp: t.UnixMilli(), Languages: langs}
}

// Time returns the snapshot timestamp as a time.Time.
func (s *Snapshot) Time() time.Time {
	return time.UnixMilli(s.Timestamp)
}

// Age returns how old the snapshot is relative to now.
func (s *Snapshot) Age(now time.Time) time.Duration {
	return time.Duration(now.UnixMilli()-s.Timestamp) * time.Millisecond
}

// IsEmpty reports whether s carries no usable data. A document that exists
// but was never populated is treated like a missing one.
func (s *Snapshot) IsEmpty() bool {
	return s == nil || (s.Timestamp == 0 && len(s.Languages) == 0)
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	langs := make([]Language, len(s.Languages))
	copy(langs, s.Languages)
	return &Snapshot{Timestamp: s.Timestamp, Languages: langs}
}

// Store persists the single snapshot document.
type Store interface {
	// Get returns the stored snapshot, or nil, nil if none exists. A document
	// that cannot be decoded yields an error wrapping ErrCorrupt.
	Get(ctx context.Context) (*Snapshot, error)

	// Set overwrites the stored snapshot.
	Set(ctx context.Context, s *Snapshot) error

	// Delete removes the stored snapshot. Deleting a missing snapshot is not an error.
	Delete(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}
