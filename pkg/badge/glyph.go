package badge

import (
	"fmt"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Outliner converts text into SVG path data from a font's glyph outlines.
// Glyphs are loaded at one pixel per font unit and cached per rune.
// It is safe for concurrent use.
type Outliner struct {
	font    *sfnt.Font
	ppem    fixed.Int26_6
	upem    float64
	ascent  float64
	descent float64

	mu     sync.Mutex
	buf    sfnt.Buffer
	glyphs map[rune]*glyph
}

type glyph struct {
	index   sfnt.GlyphIndex
	advance float64
	segs    []segment
}

type segment struct {
	op  sfnt.SegmentOp
	pts [3][2]float64
}

// NewOutliner prepares f for outlining.
func NewOutliner(f *sfnt.Font) (*Outliner, error) {
	upem := int(f.UnitsPerEm())
	if upem <= 0 {
		return nil, fmt.Errorf("badge: invalid units per em %d", upem)
	}
	o := &Outliner{
		font:   f,
		ppem:   fixed.I(upem),
		upem:   float64(upem),
		glyphs: make(map[rune]*glyph),
	}
	m, err := f.Metrics(&o.buf, o.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("badge: font metrics: %w", err)
	}
	o.ascent = unfix(m.Ascent)
	o.descent = unfix(m.Descent)
	return o, nil
}

// TextPath returns path data for text starting at x, vertically centered on
// y, at the given font size.
func (o *Outliner) TextPath(text string, x, y, size float64) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	scale := size / o.upem
	baseline := y + (o.ascent-o.descent)/2*scale
	pen := x

	var sb strings.Builder
	var prev *glyph
	for _, r := range text {
		g, err := o.load(r)
		if err != nil {
			return "", err
		}
		if prev != nil {
			// Fonts without a kern table report ErrNotFound.
			if k, err := o.font.Kern(&o.buf, prev.index, g.index, o.ppem, font.HintingNone); err == nil {
				pen += unfix(k) * scale
			}
		}
		writeGlyph(&sb, g, pen, baseline, scale)
		pen += g.advance * scale
		prev = g
	}
	return sb.String(), nil
}

func (o *Outliner) load(r rune) (*glyph, error) {
	if g, ok := o.glyphs[r]; ok {
		return g, nil
	}

	idx, err := o.font.GlyphIndex(&o.buf, r)
	if err != nil {
		return nil, fmt.Errorf("badge: glyph index %q: %w", r, err)
	}
	adv, err := o.font.GlyphAdvance(&o.buf, idx, o.ppem, font.HintingNone)
	if err != nil {
		return nil, fmt.Errorf("badge: glyph advance %q: %w", r, err)
	}
	segs, err := o.font.LoadGlyph(&o.buf, idx, o.ppem, nil)
	if err != nil {
		return nil, fmt.Errorf("badge: load glyph %q: %w", r, err)
	}

	// segs aliases o.buf and is overwritten by the next call.
	g := &glyph{index: idx, advance: unfix(adv), segs: make([]segment, len(segs))}
	for i, s := range segs {
		g.segs[i].op = s.Op
		for j, p := range s.Args {
			g.segs[i].pts[j] = [2]float64{unfix(p.X), unfix(p.Y)}
		}
	}
	o.glyphs[r] = g
	return g, nil
}

// writeGlyph appends g's contours. Segment Y already grows downward.
func writeGlyph(sb *strings.Builder, g *glyph, x, y, scale float64) {
	pt := func(p [2]float64) string {
		return fmtCoord(x+p[0]*scale) + " " + fmtCoord(y+p[1]*scale)
	}

	open := false
	for _, s := range g.segs {
		switch s.op {
		case sfnt.SegmentOpMoveTo:
			if open {
				sb.WriteByte('Z')
			}
			sb.WriteString("M" + pt(s.pts[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			sb.WriteString("L" + pt(s.pts[0]))
		case sfnt.SegmentOpQuadTo:
			sb.WriteString("Q" + pt(s.pts[0]) + " " + pt(s.pts[1]))
		case sfnt.SegmentOpCubeTo:
			sb.WriteString("C" + pt(s.pts[0]) + " " + pt(s.pts[1]) + " " + pt(s.pts[2]))
		}
	}
	if open {
		sb.WriteByte('Z')
	}
}

func unfix(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
