package colors

import (
	_ "embed"
	"sync"

	"github.com/BurntSushi/toml"
)

// DefaultColor paints languages that neither the registry nor the fallback
// palette know about.
const DefaultColor = "#cccccc"

// Palette maps a language name to a hex color.
type Palette map[string]string

// Lookup returns the color for name by exact match.
func (p Palette) Lookup(name string) (string, bool) {
	c, ok := p[name]
	return c, ok && c != ""
}

//go:embed palette.toml
var paletteTOML []byte

var (
	fallback     Palette
	fallbackOnce sync.Once
)

type paletteFile struct {
	Colors map[string]string `toml:"colors"`
}

// Fallback returns the embedded palette. It is decoded once on first use.
func Fallback() Palette {
	fallbackOnce.Do(func() {
		var f paletteFile
		if _, err := toml.Decode(string(paletteTOML), &f); err != nil {
			panic("colors: embedded palette: " + err.Error())
		}
		fallback = Palette(f.Colors)
	})
	return fallback
}

// Resolve returns the color for name from p, then the fallback palette,
// then DefaultColor.
func Resolve(p Palette, name string) string {
	if c, ok := p.Lookup(name); ok {
		return c
	}
	if c, ok := Fallback().Lookup(name); ok {
		return c
	}
	return DefaultColor
}
