// Package charttext converts strings into glyph outlines,
// so that text goes through the same path pipeline as the
// rest of a chart and renders identically in every backend.
package charttext

import (
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/truesight/sprintcharts/chartpath"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Face is a parsed font. It is safe for concurrent use.
type Face struct {
	mu   sync.Mutex
	font *sfnt.Font
	buf  sfnt.Buffer
}

// Parse parses a TrueType or OpenType font.
func Parse(ttf []byte) (*Face, error) {
	f, err := sfnt.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("charttext: parsing font: %w", err)
	}
	return &Face{font: f}, nil
}

// MustParse is like Parse but panics on error.
// It should only be used with embedded fonts.
func MustParse(ttf []byte) *Face {
	f, err := Parse(ttf)
	if err != nil {
		panic(err)
	}
	return f
}

// Go fonts shipped with x/image
var (
	Regular  = MustParse(goregular.TTF)
	Bold     = MustParse(gobold.TTF)
	MonoBold = MustParse(gomonobold.TTF)
)

// HAlign is the horizontal position of the anchor in a line of text.
type HAlign uint8

const (
	Left HAlign = iota
	Center
	Right
)

// VAlign is the vertical position of the anchor in a block of text.
type VAlign uint8

const (
	Baseline VAlign = iota // baseline of the last line
	Top
	Middle
	Bottom
)

// Style describes how a string is laid out.
type Style struct {
	Face *Face   // Regular if nil
	Size float64 // em size, in scene units

	HAlign HAlign
	VAlign VAlign

	Rotation    float64 // in degrees, counter-clockwise on screen
	LineSpacing float64 // multiple of Size, 1.2 if zero
}

func (st Style) face() *Face {
	if st.Face == nil {
		return Regular
	}
	return st.Face
}

func (st Style) lineHeight() float64 {
	if st.LineSpacing == 0 {
		return 1.2 * st.Size
	}
	return st.LineSpacing * st.Size
}

func toPPEM(size float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(size * 64)) }

// Metrics returns the ascent and descent of the face at the given size.
func (f *Face) Metrics(size float64) (ascent, descent float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	m, err := f.font.Metrics(&f.buf, toPPEM(size), font.HintingNone)
	if err != nil { // fallback on usual proportions
		return 0.8 * size, 0.2 * size
	}
	return float64(m.Ascent) / 64, float64(m.Descent) / 64
}

// Advance returns the width of a single line of text.
func (f *Face) Advance(line string, size float64) (float64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out fixed.Int26_6
	err := f.walk(line, toPPEM(size), func(_ sfnt.GlyphIndex, _, adv fixed.Int26_6) error {
		out += adv
		return nil
	})
	return float64(out) / 64, err
}

// walk calls fn for each glyph of line, with the pen position
// (kerning included) and the glyph advance.
// f.mu must be held.
func (f *Face) walk(line string, ppem fixed.Int26_6, fn func(idx sfnt.GlyphIndex, pen, adv fixed.Int26_6) error) error {
	var (
		pen     fixed.Int26_6
		prev    sfnt.GlyphIndex
		hasPrev bool
	)
	for _, r := range line {
		idx, err := f.font.GlyphIndex(&f.buf, r)
		if err != nil {
			return fmt.Errorf("charttext: glyph index of %q: %w", r, err)
		}
		if hasPrev {
			// fonts without kerning table return an error
			if k, err := f.font.Kern(&f.buf, prev, idx, ppem, font.HintingNone); err == nil {
				pen += k
			}
		}
		adv, err := f.font.GlyphAdvance(&f.buf, idx, ppem, font.HintingNone)
		if err != nil {
			return fmt.Errorf("charttext: advance of %q: %w", r, err)
		}
		if err := fn(idx, pen, adv); err != nil {
			return err
		}
		pen += adv
		prev, hasPrev = idx, true
	}
	return nil
}

// appendLine adds the outlines of line to p, with the
// origin of the baseline mapped by m.
func (f *Face) appendLine(p *chartpath.Path, line string, size float64, m chartpath.Matrix2D) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ppem := toPPEM(size)
	return f.walk(line, ppem, func(idx sfnt.GlyphIndex, pen, _ fixed.Int26_6) error {
		segs, err := f.font.LoadGlyph(&f.buf, idx, ppem, nil)
		if err != nil {
			return fmt.Errorf("charttext: loading glyph %d: %w", idx, err)
		}
		appendSegments(p, segs, m.Translate(float64(pen)/64, 0))
		return nil
	})
}

// segments are only valid until the next call on the buffer,
// so they are converted right away
func appendSegments(p *chartpath.Path, segs sfnt.Segments, m chartpath.Matrix2D) {
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				p.Stop(true)
			}
			p.Start(m.TFixed(s.Args[0]))
			open = true
		case sfnt.SegmentOpLineTo:
			p.Line(m.TFixed(s.Args[0]))
		case sfnt.SegmentOpQuadTo:
			p.QuadBezier(m.TFixed(s.Args[0]), m.TFixed(s.Args[1]))
		case sfnt.SegmentOpCubeTo:
			p.CubeBezier(m.TFixed(s.Args[0]), m.TFixed(s.Args[1]), m.TFixed(s.Args[2]))
		}
	}
	if open {
		p.Stop(true)
	}
}

// Measure returns the size of the (unrotated) block of text.
// Lines are separated by '\n'.
func Measure(s string, st Style) (w, h float64, err error) {
	face := st.face()
	lines := strings.Split(s, "\n")
	for _, line := range lines {
		lw, err := face.Advance(line, st.Size)
		if err != nil {
			return 0, 0, err
		}
		w = max(w, lw)
	}
	asc, desc := face.Metrics(st.Size)
	h = asc + desc + float64(len(lines)-1)*st.lineHeight()
	return w, h, nil
}

// Append adds the outlines of s to p, anchored at (x, y).
// Lines are separated by '\n' and aligned independently.
func Append(p *chartpath.Path, s string, x, y float64, st Style) error {
	face := st.face()
	lines := strings.Split(s, "\n")
	asc, desc := face.Metrics(st.Size)
	lh := st.lineHeight()
	h := asc + desc + float64(len(lines)-1)*lh

	var y0 float64 // first baseline, relative to the anchor
	switch st.VAlign {
	case Top:
		y0 = asc
	case Middle:
		y0 = asc - h/2
	case Bottom:
		y0 = asc - h
	default:
		y0 = -float64(len(lines)-1) * lh
	}

	anchor := chartpath.Identity.Translate(x, y).Rotate(-st.Rotation * math.Pi / 180)
	for i, line := range lines {
		if line == "" {
			continue
		}
		var dx float64
		if st.HAlign != Left {
			w, err := face.Advance(line, st.Size)
			if err != nil {
				return err
			}
			if st.HAlign == Center {
				dx = -w / 2
			} else {
				dx = -w
			}
		}
		m := anchor.Translate(dx, y0+float64(i)*lh)
		if err := face.appendLine(p, line, st.Size, m); err != nil {
			return err
		}
	}
	return nil
}
