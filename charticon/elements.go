package charticon

import (
	"encoding/xml"
	"errors"

	"github.com/truesight/sprintcharts/chartdraw"
)

type svgFunc func(c *iconCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":      svgF,
	"g":        gF,
	"desc":     gF,
	"title":    titleF,
	"line":     lineF,
	"rect":     rectF,
	"circle":   circleF,
	"ellipse":  circleF, // circleF handles ellipse also
	"polyline": polylineF,
	"polygon":  polygonF,
	"path":     pathF,
}

func svgF(c *iconCursor, attrs []xml.Attr) error {
	c.icon.ViewBox = chartdraw.Bounds{}
	var width, height float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "viewBox":
			err = c.getPoints(attr.Value)
			if err == nil && len(c.points) != 4 {
				return errParamMismatch
			}
			if err == nil {
				c.icon.ViewBox.X = c.points[0]
				c.icon.ViewBox.Y = c.points[1]
				c.icon.ViewBox.W = c.points[2]
				c.icon.ViewBox.H = c.points[3]
			}
		case "width":
			width, err = parseFloat(attr.Value)
		case "height":
			height, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if c.icon.ViewBox.W == 0 {
		c.icon.ViewBox.W = width
	}
	if c.icon.ViewBox.H == 0 {
		c.icon.ViewBox.H = height
	}
	return nil
}

func gF(*iconCursor, []xml.Attr) error { return nil } // g does nothing but push the style

func titleF(c *iconCursor, _ []xml.Attr) error {
	c.inTitleText = true
	return nil
}

func rectF(c *iconCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x":
			x, err = parseFloat(attr.Value)
		case "y":
			y, err = parseFloat(attr.Value)
		case "width":
			w, err = parseFloat(attr.Value)
		case "height":
			h, err = parseFloat(attr.Value)
		case "rx":
			rx, err = parseFloat(attr.Value)
		case "ry":
			ry, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if w == 0 || h == 0 {
		return nil
	}
	if rx == 0 {
		rx = ry
	}
	c.path.AddRoundRect(x, y, x+w, y+h, rx)
	return nil
}

func circleF(c *iconCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "cx":
			cx, err = parseFloat(attr.Value)
		case "cy":
			cy, err = parseFloat(attr.Value)
		case "r":
			rx, err = parseFloat(attr.Value)
			ry = rx
		case "rx":
			rx, err = parseFloat(attr.Value)
		case "ry":
			ry, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	if rx == 0 || ry == 0 { // not drawn, but not an error
		return nil
	}
	c.path.AddEllipse(cx, cy, rx, ry)
	return nil
}

func lineF(c *iconCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	var err error
	for _, attr := range attrs {
		switch attr.Name.Local {
		case "x1":
			x1, err = parseFloat(attr.Value)
		case "x2":
			x2, err = parseFloat(attr.Value)
		case "y1":
			y1, err = parseFloat(attr.Value)
		case "y2":
			y2, err = parseFloat(attr.Value)
		}
		if err != nil {
			return err
		}
	}
	c.path.AddLine(x1, y1, x2, y2)
	return nil
}

// readPolyPoints splits the "points" attribute into coordinates.
func (c *iconCursor) readPolyPoints(attrs []xml.Attr) (xs, ys []float64, err error) {
	for _, attr := range attrs {
		if attr.Name.Local != "points" {
			continue
		}
		if err = c.getPoints(attr.Value); err != nil {
			return nil, nil, err
		}
		if len(c.points)%2 != 0 {
			return nil, nil, errors.New("polygon has odd number of points")
		}
		for i := 0; i < len(c.points); i += 2 {
			xs = append(xs, c.points[i])
			ys = append(ys, c.points[i+1])
		}
	}
	return xs, ys, nil
}

func polylineF(c *iconCursor, attrs []xml.Attr) error {
	xs, ys, err := c.readPolyPoints(attrs)
	if err != nil {
		return err
	}
	c.path.AddPolyline(xs, ys)
	return nil
}

func polygonF(c *iconCursor, attrs []xml.Attr) error {
	xs, ys, err := c.readPolyPoints(attrs)
	if err != nil {
		return err
	}
	c.path.AddPolygon(xs, ys)
	return nil
}

func pathF(c *iconCursor, attrs []xml.Attr) error {
	for _, attr := range attrs {
		if attr.Name.Local == "d" {
			if err := c.compilePath(attr.Value); err != nil {
				return err
			}
		}
	}
	return nil
}
