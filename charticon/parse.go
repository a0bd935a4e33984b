package charticon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/truesight/sprintcharts/chartdraw"
	"github.com/truesight/sprintcharts/chartpath"
	"golang.org/x/image/math/fixed"
)

var errParamMismatch = errors.New("param mismatch")

type (
	// style is the state of the SVG style, as
	// pushed by each element
	style struct {
		chartdraw.PathStyle
		transform chartpath.Matrix2D // current transform
	}

	// iconCursor is used while parsing SVG files
	iconCursor struct {
		icon        *Icon
		styleStack  []style
		errorMode   ErrorMode
		inTitleText bool

		path   chartpath.Path // path of the current element
		points []float64      // numbers of the current attribute
	}
)

func (c *iconCursor) current() style { return c.styleStack[len(c.styleStack)-1] }

func parseFloat(s string) (float64, error) {
	s = strings.TrimSuffix(strings.TrimSpace(s), "px")
	return strconv.ParseFloat(s, 64)
}

// getPoints reads a list of numbers, separated by
// spaces or commas
func (c *iconCursor) getPoints(dataPoints string) error {
	c.points = c.points[:0]
	for _, field := range splitOnCommaOrSpace(dataPoints) {
		f, err := parseFloat(field)
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
	}
	return nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' ' || r == '\n' || r == '\t' || r == '\r'
		})
}

func (c *iconCursor) readTransformAttr(m1 chartpath.Matrix2D, k string) (chartpath.Matrix2D, error) {
	ln := len(c.points)
	switch k {
	case "rotate":
		if ln == 1 {
			m1 = m1.Rotate(c.points[0] * math.Pi / 180)
		} else if ln == 3 {
			m1 = m1.Translate(c.points[1], c.points[2]).
				Rotate(c.points[0]*math.Pi/180).
				Translate(-c.points[1], -c.points[2])
		} else {
			return m1, errParamMismatch
		}
	case "translate":
		if ln == 1 {
			m1 = m1.Translate(c.points[0], 0)
		} else if ln == 2 {
			m1 = m1.Translate(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "scale":
		if ln == 1 {
			m1 = m1.Scale(c.points[0], c.points[0])
		} else if ln == 2 {
			m1 = m1.Scale(c.points[0], c.points[1])
		} else {
			return m1, errParamMismatch
		}
	case "matrix":
		if ln == 6 {
			m1 = m1.Mult(chartpath.Matrix2D{
				A: c.points[0],
				B: c.points[1],
				C: c.points[2],
				D: c.points[3],
				E: c.points[4],
				F: c.points[5]})
		} else {
			return m1, errParamMismatch
		}
	default:
		return m1, errParamMismatch
	}
	return m1, nil
}

func (c *iconCursor) parseTransform(v string) (chartpath.Matrix2D, error) {
	ts := strings.Split(v, ")")
	m1 := c.current().transform
	for _, t := range ts {
		t = strings.TrimSpace(t)
		if len(t) == 0 {
			continue
		}
		d := strings.Split(t, "(")
		if len(d) != 2 || len(d[1]) < 1 {
			return m1, errParamMismatch // badly formed transformation
		}
		err := c.getPoints(d[1])
		if err != nil {
			return m1, err
		}
		m1, err = c.readTransformAttr(m1, strings.ToLower(strings.TrimSpace(d[0])))
		if err != nil {
			return m1, err
		}
	}
	return m1, nil
}

func (c *iconCursor) readStyleAttr(curStyle *style, k, v string) error {
	switch k {
	case "fill", "stroke":
		if strings.EqualFold(v, "none") {
			if k == "fill" {
				curStyle.FillerColor = nil
			} else {
				curStyle.LinerColor = nil
			}
			break
		}
		col, err := chartdraw.ParseColor(v)
		if err != nil {
			return err
		}
		if k == "fill" {
			curStyle.FillerColor = col
		} else {
			curStyle.LinerColor = col
		}
	case "fill-rule":
		curStyle.UseNonZeroWinding = v != "evenodd"
	case "stroke-linecap":
		switch v {
		case "butt":
			curStyle.Join.TrailLineCap = chartdraw.ButtCap
		case "round":
			curStyle.Join.TrailLineCap = chartdraw.RoundCap
		case "square":
			curStyle.Join.TrailLineCap = chartdraw.SquareCap
		}
	case "stroke-linejoin":
		switch v {
		case "miter":
			curStyle.Join.LineJoin = chartdraw.Miter
		case "miter-clip":
			curStyle.Join.LineJoin = chartdraw.MiterClip
		case "arc-clip":
			curStyle.Join.LineJoin = chartdraw.ArcClip
		case "round":
			curStyle.Join.LineJoin = chartdraw.Round
		case "arc":
			curStyle.Join.LineJoin = chartdraw.Arc
		case "bevel":
			curStyle.Join.LineJoin = chartdraw.Bevel
		}
	case "stroke-miterlimit":
		mLimit, err := parseFloat(v)
		if err != nil {
			return err
		}
		curStyle.Join.MiterLimit = fixed.Int26_6(mLimit * 64)
	case "stroke-width":
		width, err := parseFloat(v)
		if err != nil {
			return err
		}
		curStyle.LineWidth = width
	case "stroke-dashoffset":
		dashOffset, err := parseFloat(v)
		if err != nil {
			return err
		}
		curStyle.Dash.DashOffset = dashOffset
	case "stroke-dasharray":
		if v == "none" {
			curStyle.Dash.Dash = nil
			break
		}
		dashes := splitOnCommaOrSpace(v)
		dList := make([]float64, len(dashes))
		for i, dstr := range dashes {
			d, err := parseFloat(dstr)
			if err != nil {
				return err
			}
			dList[i] = d
		}
		curStyle.Dash.Dash = dList
	case "opacity", "stroke-opacity", "fill-opacity":
		op, err := parseFloat(v)
		if err != nil {
			return err
		}
		if k != "stroke-opacity" {
			curStyle.FillOpacity *= op
		}
		if k != "fill-opacity" {
			curStyle.LineOpacity *= op
		}
	case "transform":
		m, err := c.parseTransform(v)
		if err != nil {
			return err
		}
		curStyle.transform = m
	}
	return nil
}

// pushStyle parses the style element, and push it on the style stack.
// Note that this parses both the contents of a style attribute plus
// direct presentation attributes.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	var pairs []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			pairs = append(pairs, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	// Make a copy of the top style
	curStyle := c.current()
	for _, pair := range pairs {
		kv := strings.SplitN(pair, ":", 2)
		if len(kv) == 2 {
			k := strings.TrimSpace(strings.ToLower(kv[0]))
			v := strings.TrimSpace(kv[1])
			if err := c.readStyleAttr(&curStyle, k, v); err != nil {
				return fmt.Errorf("attribute %s: %w", k, err)
			}
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

func (c *iconCursor) readStartElement(se xml.StartElement) error {
	df, ok := drawFuncs[se.Name.Local]
	if !ok {
		errStr := "cannot process svg element " + se.Name.Local
		if c.errorMode == StrictErrorMode {
			return errors.New(errStr)
		} else if c.errorMode == WarnErrorMode {
			slog.Warn(errStr)
		}
		return nil
	}
	if err := df(c, se.Attr); err != nil {
		return err
	}

	if len(c.path) > 0 {
		// the cursor parsed a path from the xml element:
		// bake the transform into the points
		st := c.current()
		var p chartpath.Path
		p.Append(c.path, st.transform)
		st.LineWidth *= st.transform.ScaleFactor()
		st.Dash = scaleDash(st.Dash, st.transform.ScaleFactor())
		c.icon.Items = append(c.icon.Items, chartdraw.Item{Path: p, Style: st.PathStyle})
		c.path = c.path[:0]
	}
	return nil
}
