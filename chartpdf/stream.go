package chartpdf

import (
	"image/color"
	"io"
	"time"

	"github.com/benoitkugler/pdf/contentstream"
	"github.com/benoitkugler/pdf/model"
	"github.com/truesight/sprintcharts/chartdraw"
	"golang.org/x/image/math/fixed"
)

var (
	_ chartdraw.Driver  = StreamRenderer{}
	_ chartdraw.Filler  = (*streamFiller)(nil)
	_ chartdraw.Stroker = (*streamStroker)(nil)
)

// StreamRenderer writes scenes as raw content stream operations,
// using github.com/benoitkugler/pdf.
// Opacities are stored as graphic states, shared between the drawers
// of the renderer.
type StreamRenderer struct {
	ap                  *contentstream.Appearance
	fillOpacityStates   map[float64]*model.GraphicState
	strokeOpacityStates map[float64]*model.GraphicState
}

// NewStreamRenderer return a renderer which will
// write to the given appearance.
func NewStreamRenderer(ap *contentstream.Appearance) StreamRenderer {
	return StreamRenderer{
		ap:                  ap,
		fillOpacityStates:   make(map[float64]*model.GraphicState),
		strokeOpacityStates: make(map[float64]*model.GraphicState),
	}
}

type streamPather struct {
	ap *contentstream.Appearance
	a  fixed.Point26_6
}

type streamFiller struct {
	streamPather
	useNonZeroWinding bool
	states            map[float64]*model.GraphicState
}

type streamStroker struct {
	streamPather
	states map[float64]*model.GraphicState
}

func (r StreamRenderer) SetupDrawers(willFill, willStroke bool) (f chartdraw.Filler, s chartdraw.Stroker) {
	if willFill {
		f = &streamFiller{streamPather: streamPather{ap: r.ap}, useNonZeroWinding: true, states: r.fillOpacityStates}
	}
	if willStroke {
		s = &streamStroker{streamPather: streamPather{ap: r.ap}, states: r.strokeOpacityStates}
	}
	return f, s
}

func (p *streamPather) Clear() {
	p.a = fixed.Point26_6{}
}

func (p *streamPather) Start(a fixed.Point26_6) {
	x, y := fixedTof(a)
	p.ap.Ops(contentstream.OpMoveTo{X: x, Y: y})
	p.a = a
}

func (p *streamPather) Line(b fixed.Point26_6) {
	x, y := fixedTof(b)
	p.ap.Ops(contentstream.OpLineTo{X: x, Y: y})
	p.a = b
}

// QuadBezier is elevated to a cubic curve, as for gofpdf.
func (p *streamPather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	x0, y0 := fixedTof(p.a)
	bx, by := fixedTof(b)
	x, y := fixedTof(c)
	p.ap.Ops(contentstream.OpCubicTo{
		X1: x0 + 2*(bx-x0)/3, Y1: y0 + 2*(by-y0)/3,
		X2: x + 2*(bx-x)/3, Y2: y + 2*(by-y)/3,
		X3: x, Y3: y,
	})
	p.a = c
}

func (p *streamPather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.ap.Ops(contentstream.OpCubicTo{X1: cx0, Y1: cy0, X2: cx1, Y2: cy1, X3: x, Y3: y})
	p.a = d
}

func (p *streamPather) Stop(closeLoop bool) {
	if closeLoop {
		p.ap.Ops(contentstream.OpClosePath{})
	}
}

// setState selects the cached graphic state for alpha,
// registering it on first use.
func (p *streamPather) setState(states map[float64]*model.GraphicState, alpha float64, stroke bool) {
	gs, ok := states[alpha]
	if !ok {
		gs = &model.GraphicState{BM: []model.Name{"Normal"}}
		if stroke {
			gs.CA = model.ObjFloat(alpha)
		} else {
			gs.Ca = model.ObjFloat(alpha)
		}
		states[alpha] = gs
	}
	name := p.ap.AddExtGState(gs)
	p.ap.Ops(contentstream.OpSetExtGState{Dict: name})
}

func (f *streamFiller) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := splitAlpha(c, opacity)
	f.ap.SetColorFill(color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff})
	f.setState(f.states, alpha, false)
}

func (f *streamFiller) Draw() {
	if f.useNonZeroWinding {
		f.ap.Ops(contentstream.OpFill{})
	} else {
		f.ap.Ops(contentstream.OpEOFill{})
	}
}

func (f *streamFiller) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

var (
	streamCaps = [...]uint8{
		chartdraw.NilCap:    0,
		chartdraw.ButtCap:   0,
		chartdraw.SquareCap: 2,
		chartdraw.RoundCap:  1,
	}
	streamJoins = [...]uint8{
		chartdraw.Arc:       0,
		chartdraw.Round:     1,
		chartdraw.Bevel:     2,
		chartdraw.Miter:     0,
		chartdraw.MiterClip: 0,
		chartdraw.ArcClip:   0,
	}
)

func (s *streamStroker) SetStrokeOptions(options chartdraw.StrokeOptions) {
	ops := []contentstream.Operation{
		contentstream.OpSetDash{Dash: model.DashPattern{
			Array: options.Dash.Dash,
			Phase: options.Dash.DashOffset,
		}},
		contentstream.OpSetLineWidth{W: float64(options.LineWidth) / 64},
		contentstream.OpSetLineCap{Style: streamCaps[options.Join.TrailLineCap]},
		contentstream.OpSetLineJoin{Style: streamJoins[options.Join.LineJoin]},
	}
	if options.Join.MiterLimit > 0 {
		ops = append(ops, contentstream.OpSetMiterLimit{Limit: float64(options.Join.MiterLimit) / 64})
	}
	s.ap.Ops(ops...)
}

func (s *streamStroker) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := splitAlpha(c, opacity)
	s.ap.SetColorStroke(color.NRGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 0xff})
	s.setState(s.states, alpha, true)
}

func (s *streamStroker) Draw() {
	s.ap.Ops(contentstream.OpStroke{})
}

// StreamAppearance draws the scene into a new appearance sized to
// its view box. The y axis is flipped so that the scene keeps its
// top-left origin.
func StreamAppearance(sc *chartdraw.Scene) contentstream.Appearance {
	w, h := sc.ViewBox.W, sc.ViewBox.H
	ap := contentstream.NewAppearance(w, h)
	ap.Ops(
		contentstream.OpSave{},
		contentstream.OpConcat{Matrix: model.Matrix{1, 0, 0, -1, 0, h}},
	)
	target := *sc
	target.SetTarget(0, 0, w, h)
	target.Draw(NewStreamRenderer(&ap), 1.0)
	ap.Ops(contentstream.OpRestore{})
	return ap
}

// NewStreamDocument returns a one page document showing the scene.
func NewStreamDocument(sc *chartdraw.Scene, date time.Time) model.Document {
	ap := StreamAppearance(sc)
	page := new(model.PageObject)
	ap.ApplyToPageObject(page, true)

	var doc model.Document
	doc.Catalog.Pages.Kids = []model.PageNode{page}
	doc.Trailer.Info = model.Info{
		Producer:     producer,
		Title:        sc.Title,
		CreationDate: date,
		ModDate:      date,
	}
	return doc
}

// WriteStream is like Write, using the content stream renderer.
func WriteStream(out io.Writer, sc *chartdraw.Scene, date time.Time) error {
	doc := NewStreamDocument(sc, date)
	return doc.Write(out, nil)
}
