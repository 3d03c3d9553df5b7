// Package fonts provides the embedded fonts used to outline badge labels.
//
// Labels are emitted as vector paths rather than <text> elements, so a badge
// looks the same in every viewer regardless of installed fonts. The faces
// come from the Go font family bundled with golang.org/x/image and are
// parsed once on first access.
package fonts

import (
	"fmt"
	"sync"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
)

// Face names a bundled font.
type Face string

const (
	Regular Face = "regular"
	Bold    Face = "bold"
)

// FontFamily is the CSS font-family used when labels fall back to <text>.
const FontFamily = "Go, sans-serif"

var faces = map[Face][]byte{
	Regular: goregular.TTF,
	Bold:    gobold.TTF,
}

type parsed struct {
	once sync.Once
	font *sfnt.Font
	err  error
}

var cache = map[Face]*parsed{
	Regular: {},
	Bold:    {},
}

// Load returns the parsed font for face. The result is cached after the
// first call.
func Load(face Face) (*sfnt.Font, error) {
	p, ok := cache[face]
	if !ok {
		return nil, fmt.Errorf("fonts: unknown face %q", face)
	}
	p.once.Do(func() {
		p.font, p.err = sfnt.Parse(faces[face])
	})
	return p.font, p.err
}

// ParseFace validates a face name from user input.
func ParseFace(s string) (Face, error) {
	f := Face(s)
	if _, ok := faces[f]; !ok {
		return "", fmt.Errorf("unknown font face %q (want regular or bold)", s)
	}
	return f, nil
}
