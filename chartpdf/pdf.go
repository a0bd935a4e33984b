// Implements PDF backends to render chart scenes, by wrapping
// github.com/jung-kurt/gofpdf or github.com/benoitkugler/pdf.
package chartpdf

import (
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/truesight/sprintcharts/chartdraw"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ chartdraw.Driver  = Renderer{}
	_ chartdraw.Filler  = (*filler)(nil)
	_ chartdraw.Stroker = (*stroker)(nil)
)

const producer = "sprintcharts"

type Renderer struct {
	pdf *gofpdf.Fpdf
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *gofpdf.Fpdf
	a   fixed.Point26_6 // current point, used to elevate quadratic curves
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation.
// Since the fill and stroke opacities may differ, the stroker
// writes the path again instead of relying on the "B" operator.
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *gofpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

func (r Renderer) SetupDrawers(willFill, willStroke bool) (f chartdraw.Filler, s chartdraw.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Clear() {
	p.a = fixed.Point26_6{}
}

func (p *pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
	p.a = a
}

func (p *pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
	p.a = b
}

// QuadBezier writes the equivalent cubic curve: the "v" operator
// used by gofpdf.CurveTo is not a quadratic curve.
func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	x0, y0 := fixedTof(p.a)
	bx, by := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveBezierCubicTo(
		x0+2*(bx-x0)/3, y0+2*(by-y0)/3,
		x+2*(bx-x)/3, y+2*(by-y)/3,
		x, y,
	)
	p.a = c
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
	p.a = d
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// splitAlpha returns the RGB components of c and its alpha, as
// a fraction, multiplied by opacity.
func splitAlpha(c color.Color, opacity float64) (r, g, b int, alpha float64) {
	nc := color.NRGBAModel.Convert(c).(color.NRGBA)
	return int(nc.R), int(nc.G), int(nc.B), opacity * float64(nc.A) / 255.
}

func (f *filler) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := splitAlpha(c, opacity)
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(alpha, "Normal")
}

func (f *filler) Draw() {
	styleStr := "f*"
	if f.useNonZeroWinding {
		styleStr = "f"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

var (
	capStyles = [...]string{
		chartdraw.NilCap:    "butt",
		chartdraw.ButtCap:   "butt",
		chartdraw.SquareCap: "square",
		chartdraw.RoundCap:  "round",
	}

	// PDF has no arc joins, they fall back to miter
	joinStyles = [...]string{
		chartdraw.Arc:       "miter",
		chartdraw.Round:     "round",
		chartdraw.Bevel:     "bevel",
		chartdraw.Miter:     "miter",
		chartdraw.MiterClip: "miter",
		chartdraw.ArcClip:   "miter",
	}
)

func (s *stroker) SetStrokeOptions(options chartdraw.StrokeOptions) {
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyles[options.Join.TrailLineCap])
	s.pdf.SetLineJoinStyle(joinStyles[options.Join.LineJoin])
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s *stroker) SetColor(c color.Color, opacity float64) {
	r, g, b, alpha := splitAlpha(c, opacity)
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(alpha, "Normal")
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("S")
}

// NewDocument returns a one page document sized to the scene
// view box, in points. A non zero `date` is used as creation
// and modification date, so that the output is reproducible.
func NewDocument(sc *chartdraw.Scene, date time.Time) *gofpdf.Fpdf {
	pdf := gofpdf.NewCustom(&gofpdf.InitType{
		UnitStr: "pt",
		Size:    gofpdf.SizeType{Wd: sc.ViewBox.W, Ht: sc.ViewBox.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(date)
	pdf.SetModificationDate(date)
	pdf.SetProducer(producer, false)
	pdf.SetTitle(sc.Title, true)
	pdf.AddPage()
	return pdf
}

// Write renders the scene as a one page PDF document into out.
// The scene itself is not modified.
func Write(out io.Writer, sc *chartdraw.Scene, date time.Time) error {
	pdf := NewDocument(sc, date)

	target := *sc
	target.SetTarget(0, 0, sc.ViewBox.W, sc.ViewBox.H)
	target.Draw(NewRenderer(pdf), 1.0)

	if err := pdf.Error(); err != nil {
		return err
	}
	return pdf.Output(out)
}

// WriteFile is a convenience wrapper around Write.
func WriteFile(path string, sc *chartdraw.Scene, date time.Time) error {
	return Gofpdf.WriteFile(path, sc, date)
}

// Backend selects the library used to write PDF files.
type Backend uint8

const (
	Gofpdf        Backend = iota // github.com/jung-kurt/gofpdf, byte for byte reproducible
	ContentStream                // github.com/benoitkugler/pdf
)

var backendNames = [...]string{
	Gofpdf:        "gofpdf",
	ContentStream: "contentstream",
}

func (b Backend) String() string {
	if int(b) < len(backendNames) {
		return backendNames[b]
	}
	return "<unknown Backend>"
}

// ParseBackend returns the backend named s.
// The empty string selects Gofpdf.
func ParseBackend(s string) (Backend, error) {
	if s == "" {
		return Gofpdf, nil
	}
	for b, name := range backendNames {
		if s == name {
			return Backend(b), nil
		}
	}
	return 0, fmt.Errorf("unknown pdf backend %q", s)
}

// Write renders the scene as a one page document into out.
func (b Backend) Write(out io.Writer, sc *chartdraw.Scene, date time.Time) error {
	if b == ContentStream {
		return WriteStream(out, sc, date)
	}
	return Write(out, sc, date)
}

// WriteFile creates path and writes the scene to it.
func (b Backend) WriteFile(path string, sc *chartdraw.Scene, date time.Time) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := b.Write(f, sc, date); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
