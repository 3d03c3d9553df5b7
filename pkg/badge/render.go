package badge

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"math"
	"slices"
	"sync"

	"github.com/matzehuels/langstats/pkg/fonts"
	"github.com/matzehuels/langstats/pkg/snapshot"
)

// DefaultStrokeWidth is the bar thickness in viewBox units.
const DefaultStrokeWidth = 1.6

// DefaultLabelColor is the legend text fill.
const DefaultLabelColor = "#c9d1d9"

const (
	labelSeparator  = "    "
	legendLeftDot   = 10.0
	legendRightDot  = 55.0
	legendDotToText = 5.0
	legendRowHeight = 6.0
	legendTopOffset = 2.0
	viewBoxWidth    = 100.0
	viewBoxPadding  = 25.0
)

// Option configures rendering.
type Option func(*renderer)

type renderer struct {
	width      float64
	labelColor string
	outliner   *Outliner
	textLabels bool
}

// WithStrokeWidth sets the bar thickness. Non-positive values are ignored.
func WithStrokeWidth(w float64) Option {
	return func(r *renderer) {
		if w > 0 {
			r.width = w
		}
	}
}

// WithLabelColor sets the legend text fill.
func WithLabelColor(c string) Option { return func(r *renderer) { r.labelColor = c } }

// WithOutliner outlines labels with o instead of the default regular face.
func WithOutliner(o *Outliner) Option { return func(r *renderer) { r.outliner = o } }

// WithTextLabels emits labels as <text> elements instead of outlines.
func WithTextLabels() Option { return func(r *renderer) { r.textLabels = true } }

var (
	defaultOutliner     *Outliner
	defaultOutlinerErr  error
	defaultOutlinerOnce sync.Once
)

// DefaultOutliner returns the shared outliner for the regular Go face.
func DefaultOutliner() (*Outliner, error) {
	defaultOutlinerOnce.Do(func() {
		f, err := fonts.Load(fonts.Regular)
		if err != nil {
			defaultOutlinerErr = err
			return
		}
		defaultOutliner, defaultOutlinerErr = NewOutliner(f)
	})
	return defaultOutliner, defaultOutlinerErr
}

type bar struct {
	name     string
	color    string
	original float64
	width    float64
}

// Render draws snap as an SVG document. A nil or empty snapshot yields an
// empty badge with no bar and no legend.
func Render(snap *snapshot.Snapshot, opts ...Option) []byte {
	r := renderer{width: DefaultStrokeWidth, labelColor: DefaultLabelColor}
	for _, opt := range opts {
		opt(&r)
	}
	if r.outliner == nil && !r.textLabels {
		r.outliner, _ = DefaultOutliner()
	}

	var langs []snapshot.Language
	if snap != nil {
		langs = snap.Languages
	}
	segs := smooth(langs)
	w := r.width

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s">`,
		fmtNum(viewBoxWidth+w+float64(max(len(segs), 1)-1)*w/6), fmtNum(w+viewBoxPadding))

	if len(segs) > 0 {
		x := w / 2
		fmt.Fprintf(&buf, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
			fmtNum(x), fmtNum(w/2), fmtNum(w/2), attr(segs[0].color))
		for i, s := range segs {
			fmt.Fprintf(&buf, `<path d="M%s %s L%s %s" stroke="%s" stroke-width="%s"/>`,
				fmtNum(x), fmtNum(w/2), fmtNum(x+s.width), fmtNum(w/2), attr(s.color), fmtNum(w))
			r.legend(&buf, i, s)
			x += s.width + w/6
		}
		fmt.Fprintf(&buf, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
			fmtNum(x-0.2), fmtNum(w/2), fmtNum(w/2), attr(segs[len(segs)-1].color))
	}

	buf.WriteString("</svg>")
	return buf.Bytes()
}

func (r *renderer) legend(buf *bytes.Buffer, i int, s bar) {
	dotX := legendLeftDot
	if i%2 == 1 {
		dotX = legendRightDot
	}
	y := math.Floor(float64(i)/2+1)*legendRowHeight + legendTopOffset
	fmt.Fprintf(buf, `<circle cx="%s" cy="%s" r="%s" fill="%s"/>`,
		fmtNum(dotX), fmtNum(y), fmtNum(r.width*2/3), attr(s.color))

	label := s.name + labelSeparator + fmtPercent(s.original)
	x, size := dotX+legendDotToText, r.width*2
	if r.outliner != nil && !r.textLabels {
		if d, err := r.outliner.TextPath(label, x, y, size); err == nil {
			fmt.Fprintf(buf, `<path fill="%s" d="%s"/>`, attr(r.labelColor), d)
			return
		}
	}
	fmt.Fprintf(buf, `<text x="%s" y="%s" font-size="%s" font-family="%s" dominant-baseline="middle" fill="%s" xml:space="preserve">%s</text>`,
		fmtNum(x), fmtNum(y), fmtNum(size), attr(fonts.FontFamily), attr(r.labelColor), html.EscapeString(label))
}

// smooth pairs each language with its rescaled bar width and sorts by it.
// Each segment keeps its own original value for the label.
func smooth(langs []snapshot.Language) []bar {
	segs := make([]bar, len(langs))
	var sum float64
	for i, l := range langs {
		segs[i] = bar{name: l.Name, color: l.Color, original: l.Value, width: l.Value + 1}
		sum += segs[i].width
	}
	if sum > 0 {
		for i := range segs {
			segs[i].width = segs[i].width * 100 / sum
		}
	}
	slices.SortStableFunc(segs, func(a, b bar) int {
		return cmp.Compare(b.width, a.width)
	})
	return segs
}

func attr(s string) string {
	return html.EscapeString(s)
}
