// Implements an abstract representation of
// chart paths, which can then be consumed
// by painting drivers.
package chartpath

import (
	"fmt"
	"strings"

	"golang.org/x/image/math/fixed"
)

// Adder is implemented by types that can accumulate path commands,
// such as the drawing backends.
type Adder interface {
	// Start starts a new curve at the given point.
	Start(a fixed.Point26_6)
	// Line adds a line segment to the path
	Line(b fixed.Point26_6)
	// QuadBezier adds a quadratic bezier curve to the path
	QuadBezier(b, c fixed.Point26_6)
	// CubeBezier adds a cubic bezier curve to the path
	CubeBezier(b, c, d fixed.Point26_6)
	// Closes the path to the start point if closeLoop is true
	Stop(closeLoop bool)
}

// Operation groups the different path commands
type Operation interface {
	// add itself to `q`, after applying the transform `M`
	addTo(q Adder, M Matrix2D)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

// starts a new path at the given point.
func (op MoveTo) addTo(q Adder, M Matrix2D) {
	q.Stop(false) // implicit close if currently in path.
	q.Start(M.TFixed(fixed.Point26_6(op)))
}

func (op LineTo) addTo(q Adder, M Matrix2D) {
	q.Line(M.TFixed(fixed.Point26_6(op)))
}

func (op QuadTo) addTo(q Adder, M Matrix2D) {
	q.QuadBezier(M.TFixed(op[0]), M.TFixed(op[1]))
}

func (op CubicTo) addTo(q Adder, M Matrix2D) {
	q.CubeBezier(M.TFixed(op[0]), M.TFixed(op[1]), M.TFixed(op[2]))
}

func (op Close) addTo(q Adder, _ Matrix2D) {
	q.Stop(true)
}

// Path describes a sequence of basic operations.
// Higher-level shapes are reduced to a path.
type Path []Operation

// AddTo sends the path to q, transformed by M.
// The last sub-path is left open: callers decide how to stop it.
func (p Path) AddTo(q Adder, M Matrix2D) {
	for _, op := range p {
		op.addTo(q, M)
	}
}

// ToSVGPath returns a string representation of the path
func (p Path) ToSVGPath() string {
	chunks := make([]string, len(p))
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			chunks[i] = fmt.Sprintf("M%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case LineTo:
			chunks[i] = fmt.Sprintf("L%4.3f,%4.3f", float32(op.X)/64, float32(op.Y)/64)
		case QuadTo:
			chunks[i] = fmt.Sprintf("Q%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64)
		case CubicTo:
			chunks[i] = fmt.Sprintf("C%4.3f,%4.3f,%4.3f,%4.3f,%4.3f,%4.3f", float32(op[0].X)/64, float32(op[0].Y)/64,
				float32(op[1].X)/64, float32(op[1].Y)/64, float32(op[2].X)/64, float32(op[2].Y)/64)
		case Close:
			chunks[i] = "Z"
		}
	}
	return strings.Join(chunks, " ")
}

// String returns a readable representation of a Path.
func (p Path) String() string {
	return p.ToSVGPath()
}

// Clear zeros the path slice
func (p *Path) Clear() {
	*p = (*p)[:0]
}

// Start starts a new curve at the given point.
func (p *Path) Start(a fixed.Point26_6) {
	*p = append(*p, MoveTo{a.X, a.Y})
}

// Line adds a linear segment to the current curve.
func (p *Path) Line(b fixed.Point26_6) {
	*p = append(*p, LineTo{b.X, b.Y})
}

// QuadBezier adds a quadratic segment to the current curve.
func (p *Path) QuadBezier(b, c fixed.Point26_6) {
	*p = append(*p, QuadTo{b, c})
}

// CubeBezier adds a cubic segment to the current curve.
func (p *Path) CubeBezier(b, c, d fixed.Point26_6) {
	*p = append(*p, CubicTo{b, c, d})
}

// Stop joins the ends of the path
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}

// Append adds q to p, transformed by M.
func (p *Path) Append(q Path, M Matrix2D) {
	for _, op := range q {
		switch op := op.(type) {
		case MoveTo:
			p.Start(M.TFixed(fixed.Point26_6(op)))
		case LineTo:
			p.Line(M.TFixed(fixed.Point26_6(op)))
		case QuadTo:
			p.QuadBezier(M.TFixed(op[0]), M.TFixed(op[1]))
		case CubicTo:
			p.CubeBezier(M.TFixed(op[0]), M.TFixed(op[1]), M.TFixed(op[2]))
		case Close:
			p.Stop(true)
		}
	}
}
