// Provides parsing of the small SVG icons decorating the charts.
// Only a sub-set of SVG is supported: basic shapes, paths, groups,
// plain colors, opacities, stroke settings and transforms.
package charticon

import (
	"embed"
	"encoding/xml"
	"errors"
	"fmt"
	"io"

	"github.com/truesight/sprintcharts/chartdraw"
	"github.com/truesight/sprintcharts/chartpath"
	"golang.org/x/net/html/charset"
)

// ErrInvalidIcon is returned for an input without any svg element,
// or without a usable view box.
var ErrInvalidIcon = errors.New("invalid svg xml icon")

//go:embed icons/*.svg
var iconFiles embed.FS

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode logs a warning about unparsed SVG elements
	WarnErrorMode
	// StrictErrorMode causes an error when an unparsed SVG element is found
	StrictErrorMode
)

// Icon holds data from parsed SVGs, in the icon
// own coordinates.
type Icon struct {
	ViewBox chartdraw.Bounds
	Title   string
	Items   []chartdraw.Item
}

// Read reads an icon from the given io.Reader.
// errMode determines if the parser ignores, errors out, or logs a warning
// if it does not handle an element found in the icon file.
func Read(stream io.Reader, errMode ErrorMode) (*Icon, error) {
	icon := new(Icon)
	cursor := &iconCursor{styleStack: []style{{PathStyle: chartdraw.DefaultStyle, transform: chartpath.Identity}}, icon: icon, errorMode: errMode}
	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if err != nil {
			if err == io.EOF {
				break
			}
			return nil, fmt.Errorf("charticon: %w", err)
		}
		switch se := t.(type) {
		case xml.StartElement:
			seenTag = true
			// Reads all recognized style attributes from the start element
			// and places it on top of the styleStack
			if err = cursor.pushStyle(se.Attr); err != nil {
				return nil, fmt.Errorf("charticon: <%s>: %w", se.Name.Local, err)
			}
			if err = cursor.readStartElement(se); err != nil {
				return nil, fmt.Errorf("charticon: <%s>: %w", se.Name.Local, err)
			}
		case xml.EndElement:
			cursor.styleStack = cursor.styleStack[:len(cursor.styleStack)-1]
			if se.Name.Local == "title" {
				cursor.inTitleText = false
			}
		case xml.CharData:
			if cursor.inTitleText {
				icon.Title += string(se)
			}
		}
	}
	if !seenTag || icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, ErrInvalidIcon
	}
	return icon, nil
}

func mustRead(name string) *Icon {
	f, err := iconFiles.Open("icons/" + name)
	if err != nil {
		panic(err)
	}
	defer f.Close()
	icon, err := Read(f, StrictErrorMode)
	if err != nil {
		panic(fmt.Sprintf("embedded icon %s: %s", name, err))
	}
	return icon
}

// Embedded icons
var (
	Check = mustRead("check.svg")
	Star  = mustRead("star.svg")
)

// Place returns the icon items, mapped so that the view box
// fills the rectangle (x, y, w, h). Stroke widths and dashes
// are scaled accordingly.
func (ic *Icon) Place(x, y, w, h float64) []chartdraw.Item {
	sx, sy := w/ic.ViewBox.W, h/ic.ViewBox.H
	m := chartpath.Identity.Translate(x, y).Scale(sx, sy).Translate(-ic.ViewBox.X, -ic.ViewBox.Y)
	scale := m.ScaleFactor()
	out := make([]chartdraw.Item, len(ic.Items))
	for i, it := range ic.Items {
		var p chartpath.Path
		p.Append(it.Path, m)
		st := it.Style
		st.LineWidth *= scale
		st.Dash = scaleDash(st.Dash, scale)
		out[i] = chartdraw.Item{Path: p, Style: st}
	}
	return out
}

// PlaceCentered is like Place, with a square of side size centered on (cx, cy).
func (ic *Icon) PlaceCentered(cx, cy, size float64) []chartdraw.Item {
	return ic.Place(cx-size/2, cy-size/2, size, size)
}

func scaleDash(d chartdraw.DashOptions, scale float64) chartdraw.DashOptions {
	if len(d.Dash) == 0 {
		return d
	}
	out := chartdraw.DashOptions{Dash: make([]float64, len(d.Dash)), DashOffset: d.DashOffset * scale}
	for i, v := range d.Dash {
		out.Dash[i] = v * scale
	}
	return out
}
