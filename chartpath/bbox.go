package chartpath

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// BoundingBox accumulates the exact extent of path commands: curves
// contribute their end points and the points where the derivative of
// a coordinate vanishes.
// It implements Adder, so that a path may be sent to it with any transform.
type BoundingBox struct {
	minX, minY, maxX, maxY float64
	cur                    [2]float64
	started                bool
}

var _ Adder = (*BoundingBox)(nil)

func toVec(p fixed.Point26_6) [2]float64 {
	x, y := FromFixedP(p)
	return [2]float64{x, y}
}

func (b *BoundingBox) include(p [2]float64) {
	if !b.started {
		b.minX, b.maxX, b.minY, b.maxY = p[0], p[0], p[1], p[1]
		b.started = true
		return
	}
	b.minX, b.maxX = math.Min(b.minX, p[0]), math.Max(b.maxX, p[0])
	b.minY, b.maxY = math.Min(b.minY, p[1]), math.Max(b.maxY, p[1])
}

// Empty returns true if no point has been added.
func (b *BoundingBox) Empty() bool { return !b.started }

// Rect returns the accumulated extent.
func (b *BoundingBox) Rect() fixed.Rectangle26_6 {
	return fixed.Rectangle26_6{Min: ToFixedP(b.minX, b.minY), Max: ToFixedP(b.maxX, b.maxY)}
}

func (b *BoundingBox) Start(a fixed.Point26_6) {
	b.cur = toVec(a)
	b.include(b.cur)
}

func (b *BoundingBox) Line(c fixed.Point26_6) {
	b.cur = toVec(c)
	b.include(b.cur)
}

func (b *BoundingBox) QuadBezier(c, d fixed.Point26_6) {
	p0, p1, p2 := b.cur, toVec(c), toVec(d)
	for axis := 0; axis < 2; axis++ {
		// B'(t)/2 = (p0 - 2p1 + p2) t + (p1 - p0)
		for _, t := range unitRoots(0, p0[axis]-2*p1[axis]+p2[axis], p1[axis]-p0[axis]) {
			b.include(quadAt(p0, p1, p2, t))
		}
	}
	b.cur = p2
	b.include(p2)
}

func (b *BoundingBox) CubeBezier(c, d, e fixed.Point26_6) {
	p0, p1, p2, p3 := b.cur, toVec(c), toVec(d), toVec(e)
	for axis := 0; axis < 2; axis++ {
		// B'(t)/3 = (p3 - 3p2 + 3p1 - p0) t^2 + 2(p0 - 2p1 + p2) t + (p1 - p0)
		a := p3[axis] - 3*p2[axis] + 3*p1[axis] - p0[axis]
		bb := 2 * (p0[axis] - 2*p1[axis] + p2[axis])
		cc := p1[axis] - p0[axis]
		for _, t := range unitRoots(a, bb, cc) {
			b.include(cubicAt(p0, p1, p2, p3, t))
		}
	}
	b.cur = p3
	b.include(p3)
}

func (b *BoundingBox) Stop(bool) {}

// unitRoots returns the roots of a t^2 + b t + c lying in ]0, 1[.
func unitRoots(a, b, c float64) []float64 {
	var roots []float64
	keep := func(t float64) {
		if 0 < t && t < 1 {
			roots = append(roots, t)
		}
	}
	const eps = 1e-12
	switch {
	case math.Abs(a) < eps:
		if math.Abs(b) >= eps {
			keep(-c / b)
		}
	default:
		delta := b*b - 4*a*c
		if delta < 0 {
			break
		}
		sq := math.Sqrt(delta)
		keep((-b + sq) / (2 * a))
		if sq > 0 {
			keep((-b - sq) / (2 * a))
		}
	}
	return roots
}

func quadAt(p0, p1, p2 [2]float64, t float64) [2]float64 {
	u := 1 - t
	var out [2]float64
	for i := range out {
		out[i] = u*u*p0[i] + 2*u*t*p1[i] + t*t*p2[i]
	}
	return out
}

func cubicAt(p0, p1, p2, p3 [2]float64, t float64) [2]float64 {
	u := 1 - t
	var out [2]float64
	for i := range out {
		out[i] = u*u*u*p0[i] + 3*u*u*t*p1[i] + 3*u*t*t*p2[i] + t*t*t*p3[i]
	}
	return out
}

// Bounds returns the extent of the path after applying M,
// and false for an empty path.
func (p Path) Bounds(M Matrix2D) (fixed.Rectangle26_6, bool) {
	var bb BoundingBox
	p.AddTo(&bb, M)
	return bb.Rect(), !bb.Empty()
}
