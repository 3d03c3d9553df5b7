package github

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Repo represents a GitHub repository as returned by the listing endpoint.
type Repo struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	Description   string `json:"description"`
	Private       bool   `json:"private"`
	Fork          bool   `json:"fork"`
	Archived      bool   `json:"archived"`
	DefaultBranch string `json:"default_branch"`
	Language      string `json:"language"`
	UpdatedAt     string `json:"updated_at"`
}

// LanguageBytes is the number of bytes GitHub attributes to one language.
type LanguageBytes struct {
	Name  string
	Bytes int64
}

// Languages is a repository's language breakdown in upstream order.
type Languages []LanguageBytes

// UnmarshalJSON decodes a {"Go": 1234, ...} object while keeping key order,
// which a plain map would lose.
func (l *Languages) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("languages: expected object, got %v", tok)
	}

	out := Languages{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}
		name, ok := tok.(string)
		if !ok {
			return fmt.Errorf("languages: expected key, got %v", tok)
		}

		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return fmt.Errorf("languages: %s: %w", name, err)
		}
		b, err := n.Int64()
		if err != nil {
			f, ferr := n.Float64()
			if ferr != nil {
				return fmt.Errorf("languages: %s: %w", name, err)
			}
			b = int64(f)
		}
		out = append(out, LanguageBytes{Name: name, Bytes: b})
	}

	if _, err := dec.Token(); err != nil {
		return err
	}
	*l = out
	return nil
}
