package chartpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file implements the transformation from
// high level shapes to their path equivalent

// maxDx is the maximum radians a cubic splice is allowed to span
// in ellipse parametric when approximating an ellipse.
const maxDx float64 = math.Pi / 8

// ToFixedP converts two floats to a fixed point.
func ToFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// FromFixedP converts a fixed point to two floats.
func FromFixedP(p fixed.Point26_6) (x, y float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

// AddRect adds a closed axis aligned rectangle.
func (p *Path) AddRect(minX, minY, maxX, maxY float64) {
	p.Start(ToFixedP(minX, minY))
	p.Line(ToFixedP(maxX, minY))
	p.Line(ToFixedP(maxX, maxY))
	p.Line(ToFixedP(minX, maxY))
	p.Stop(true)
}

// AddRoundRect adds a rectangle with rounded corners of radius r.
// r is clamped to half the smallest side.
func (p *Path) AddRoundRect(minX, minY, maxX, maxY, r float64) {
	if r <= 0 {
		p.AddRect(minX, minY, maxX, maxY)
		return
	}
	if w := maxX - minX; w < r*2 {
		r = w / 2
	}
	if h := maxY - minY; h < r*2 {
		r = h / 2
	}
	p.Start(ToFixedP(minX+r, minY))
	p.Line(ToFixedP(maxX-r, minY))
	p.addArc(maxX-r, minY+r, r, r, -math.Pi/2, 0)
	p.Line(ToFixedP(maxX, maxY-r))
	p.addArc(maxX-r, maxY-r, r, r, 0, math.Pi/2)
	p.Line(ToFixedP(minX+r, maxY))
	p.addArc(minX+r, maxY-r, r, r, math.Pi/2, math.Pi)
	p.Line(ToFixedP(minX, minY+r))
	p.addArc(minX+r, minY+r, r, r, math.Pi, 3*math.Pi/2)
	p.Stop(true)
}

// AddEllipse adds a closed ellipse centered on cx, cy.
func (p *Path) AddEllipse(cx, cy, rx, ry float64) {
	p.Start(ToFixedP(cx+rx, cy))
	p.addArc(cx, cy, rx, ry, 0, 2*math.Pi)
	p.Stop(true)
}

// AddCircle adds a closed circle of radius r.
func (p *Path) AddCircle(cx, cy, r float64) {
	p.AddEllipse(cx, cy, r, r)
}

// AddPolyline adds an open polyline through the given points.
// xs and ys must have the same length; fewer than two points add nothing.
func (p *Path) AddPolyline(xs, ys []float64) {
	if len(xs) < 2 || len(xs) != len(ys) {
		return
	}
	p.Start(ToFixedP(xs[0], ys[0]))
	for i := 1; i < len(xs); i++ {
		p.Line(ToFixedP(xs[i], ys[i]))
	}
}

// AddPolygon adds a closed polygon through the given points.
func (p *Path) AddPolygon(xs, ys []float64) {
	if len(xs) < 3 || len(xs) != len(ys) {
		return
	}
	p.AddPolyline(xs, ys)
	p.Stop(true)
}

// AddLine adds a single segment.
func (p *Path) AddLine(x1, y1, x2, y2 float64) {
	p.Start(ToFixedP(x1, y1))
	p.Line(ToFixedP(x2, y2))
}

// addArc adds an elliptical arc from etaStart to etaEnd (radians),
// starting from the current point which must be on the ellipse.
func (p *Path) addArc(cx, cy, rx, ry, etaStart, etaEnd float64) {
	deltaEta := etaEnd - etaStart
	// Round up to determine number of cubic splines to approximate bezier curve
	segs := int(math.Abs(deltaEta)/maxDx) + 1
	dEta := deltaEta / float64(segs) // span of each segment
	// Approximate the ellipse using a set of cubic bezier curves by the method of
	// L. Maisonobe, "Drawing an elliptical arc using polylines, quadratic
	// or cubic Bezier curves", 2003
	// https://www.spaceroots.org/documents/elllipse/elliptical-arc.pdf
	tde := math.Tan(dEta / 2)
	alpha := math.Sin(dEta) * (math.Sqrt(4+3*tde*tde) - 1) / 3
	lx, ly := ellipsePointAt(rx, ry, etaStart, cx, cy)
	ldx, ldy := ellipsePrime(rx, ry, etaStart)
	for i := 1; i <= segs; i++ {
		eta := etaStart + dEta*float64(i)
		px, py := ellipsePointAt(rx, ry, eta, cx, cy)
		dx, dy := ellipsePrime(rx, ry, eta)
		p.CubeBezier(ToFixedP(lx+alpha*ldx, ly+alpha*ldy),
			ToFixedP(px-alpha*dx, py-alpha*dy), ToFixedP(px, py))
		lx, ly, ldx, ldy = px, py, dx, dy
	}
}

// ellipsePrime gives tangent vectors for parameterized ellipse; a, b, radii, eta parameter
func ellipsePrime(a, b, eta float64) (px, py float64) {
	return -a * math.Sin(eta), b * math.Cos(eta)
}

// ellipsePointAt gives points for parameterized ellipse; a, b, radii, eta parameter, center cx, cy
func ellipsePointAt(a, b, eta, cx, cy float64) (px, py float64) {
	return cx + a*math.Cos(eta), cy + b*math.Sin(eta)
}
