package chartpdf

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/truesight/sprintcharts/chart"
	"github.com/truesight/sprintcharts/chartdraw"
	"github.com/truesight/sprintcharts/chartpath"
	"github.com/truesight/sprintcharts/sprint"
)

var date = time.Date(2026, 2, 18, 0, 0, 0, 0, time.UTC)

func TestPather(t *testing.T) {
	pdf := gofpdf.New("", "pt", "", "")
	pdf.SetCompression(false)
	pdf.AddPage()

	var p chartpath.Path
	p.AddRect(10, 10, 40, 40)
	p.AddCircle(100, 100, 20)

	r := NewRenderer(pdf)
	f, s := r.SetupDrawers(true, false)
	if s != nil {
		t.Fatal("expected no stroker")
	}
	f.Clear()
	f.SetWinding(false)
	p.AddTo(f, chartpath.Identity)
	f.SetColor(chartdraw.Green, 0.5)
	f.Draw()

	var b bytes.Buffer
	if err := pdf.Output(&b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, op := range []string{" m\n", " l\n", " c\n", "h\n", "f*\n", "/ca 0.500"} {
		if !strings.Contains(out, op) {
			t.Errorf("missing %q in the output", op)
		}
	}
}

func TestStrokeOptions(t *testing.T) {
	pdf := gofpdf.New("", "pt", "", "")
	pdf.SetCompression(false)
	pdf.AddPage()

	sc := chartdraw.NewScene("lines", 100, 100)
	var p chartpath.Path
	p.AddLine(0, 50, 100, 50)
	style := chartdraw.Line(chartdraw.Black, 2).WithDash(4, 2)
	style.Join.TrailLineCap = chartdraw.RoundCap
	sc.Add(p, style)
	sc.Draw(NewRenderer(pdf), 1)

	var b bytes.Buffer
	if err := pdf.Output(&b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	for _, op := range []string{"1 J", "1 j", "[4.00 2.00] 0.00 d", "S\n"} {
		if !strings.Contains(out, op) {
			t.Errorf("missing %q in the output", op)
		}
	}
}

func TestWrite(t *testing.T) {
	for _, k := range chart.Kinds {
		sc, err := chart.New(k, "TrueSight", sprint.Sprint0())
		if err != nil {
			t.Fatal(err)
		}
		var b1, b2 bytes.Buffer
		if err := Write(&b1, sc, date); err != nil {
			t.Fatal(err)
		}
		if err := Write(&b2, sc, date); err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(b1.Bytes(), []byte("%PDF-")) {
			t.Errorf("%s: not a pdf file", k)
		}
		if !bytes.Equal(b1.Bytes(), b2.Bytes()) {
			t.Errorf("%s: output is not reproducible", k)
		}
	}
}

func TestWriteFile(t *testing.T) {
	sc, err := chart.New(chart.Velocity, "TrueSight", sprint.Sprint0())
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(t.TempDir(), "velocity.pdf")
	if err := WriteFile(path, sc, date); err != nil {
		t.Fatal(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Size() == 0 {
		t.Error("empty pdf file")
	}

	if err := WriteFile(filepath.Join(t.TempDir(), "missing", "x.pdf"), sc, date); err == nil {
		t.Error("expected an error for a missing directory")
	}
}
