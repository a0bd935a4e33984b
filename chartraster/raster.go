// Implements a raster backend to render chart scenes,
// by wrapping rasterx.
package chartraster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"github.com/srwiley/rasterx"
	"github.com/truesight/sprintcharts/chartdraw"
)

var _ chartdraw.Driver = (*Renderer)(nil) // assert interface conformance

// Renderer paints scenes on an image. The filler and
// the dasher share the same scanner, and are used one after the other.
type Renderer struct {
	filler filler
	dasher dasher
}

// filler and dasher shadow the scanner SetColor method
// with the opacity aware version expected by chartdraw.
type filler struct{ *rasterx.Filler }

type dasher struct{ *rasterx.Dasher }

// NewRenderer returns a renderer with default values.
// In addition to rasterizing lines like a Scanner,
// it can also rasterize quadratic and cubic bezier curves.
// If scanner is nil, a default scanner rasterx.ScannerGV
// painting on a new image is used.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	if scanner == nil {
		img := image.NewRGBA(image.Rect(0, 0, width, height))
		scanner = rasterx.NewScannerGV(width, height, img, img.Bounds())
	}
	return &Renderer{
		filler: filler{rasterx.NewFiller(width, height, scanner)},
		dasher: dasher{rasterx.NewDasher(width, height, scanner)},
	}
}

func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f chartdraw.Filler, s chartdraw.Stroker) {
	if willFill {
		f = rd.filler
	}
	if willStroke {
		s = rd.dasher
	}
	return f, s
}

func (f filler) SetColor(c color.Color, opacity float64) {
	f.Filler.SetColor(rasterx.ApplyOpacity(c, opacity))
}

func (d dasher) SetColor(c color.Color, opacity float64) {
	d.Dasher.SetColor(rasterx.ApplyOpacity(c, opacity))
}

var (
	joinToJoin = [...]rasterx.JoinMode{
		chartdraw.Round:     rasterx.Round,
		chartdraw.Bevel:     rasterx.Bevel,
		chartdraw.Miter:     rasterx.Miter,
		chartdraw.MiterClip: rasterx.MiterClip,
		chartdraw.Arc:       rasterx.Arc,
		chartdraw.ArcClip:   rasterx.ArcClip,
	}

	capToFunc = [...]rasterx.CapFunc{
		chartdraw.NilCap:    nil,
		chartdraw.ButtCap:   rasterx.ButtCap,
		chartdraw.SquareCap: rasterx.SquareCap,
		chartdraw.RoundCap:  rasterx.RoundCap,
	}

	gapToFunc = [...]rasterx.GapFunc{
		chartdraw.NilGap:   nil,
		chartdraw.FlatGap:  rasterx.FlatGap,
		chartdraw.RoundGap: rasterx.RoundGap,
	}
)

func (d dasher) SetStrokeOptions(options chartdraw.StrokeOptions) {
	// a nil leading cap makes rasterx use the trailing one at both ends
	d.SetStroke(
		options.LineWidth, options.Join.MiterLimit, nil,
		capToFunc[options.Join.TrailLineCap], gapToFunc[options.Join.LineGap],
		joinToJoin[options.Join.LineJoin], options.Dash.Dash, options.Dash.DashOffset,
	)
}

// PixelSize returns the size in pixels of a scene rendered at the
// given resolution, in dots per inch.
func PixelSize(sc *chartdraw.Scene, dpi float64) (w, h int) {
	scale := dpi / 72
	return int(math.Ceil(sc.ViewBox.W * scale)), int(math.Ceil(sc.ViewBox.H * scale))
}

// Render uses a ScannerGV instance to render the scene on a white
// background, at the given resolution, and returns the image.
// The scene itself is not modified.
func Render(sc *chartdraw.Scene, dpi float64) *image.RGBA {
	w, h := PixelSize(sc, dpi)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	renderer := NewRenderer(w, h, scanner)

	target := *sc
	target.SetTarget(0, 0, sc.ViewBox.W*dpi/72, sc.ViewBox.H*dpi/72)
	target.Draw(renderer, 1.0)
	return img
}

// WritePNG renders the scene and encodes it as PNG.
func WritePNG(out io.Writer, sc *chartdraw.Scene, dpi float64) error {
	return png.Encode(out, Render(sc, dpi))
}
