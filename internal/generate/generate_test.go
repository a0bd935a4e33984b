package generate

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/truesight/sprintcharts/gallery"
	"github.com/truesight/sprintcharts/internal/config"
	"github.com/truesight/sprintcharts/sprint"
)

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.OutputDir = filepath.Join(t.TempDir(), "docs", "images", "charts")
	cfg.DPI = 12 // keeps the tests fast
	return cfg
}

func TestRun(t *testing.T) {
	cfg := testConfig(t)
	var console bytes.Buffer
	artifacts, err := Run(context.Background(), cfg, sprint.Sprint0(), &console)
	if err != nil {
		t.Fatal(err)
	}
	if len(artifacts) != 3 {
		t.Fatalf("expected 3 charts, got %d", len(artifacts))
	}

	for _, name := range []string{
		"sprint0_burndown.png", "sprint0_burndown.pdf",
		"sprint0_burndown_enhanced.png", "sprint0_burndown_enhanced.pdf",
		"velocity_sprint0.png", "velocity_sprint0.pdf",
		gallery.FileName,
	} {
		info, err := os.Stat(filepath.Join(cfg.OutputDir, name))
		if err != nil {
			t.Errorf("missing output: %s", err)
			continue
		}
		if info.Size() == 0 {
			t.Errorf("empty output %s", name)
		}
	}

	out := console.String()
	for _, line := range []string{
		"TrueSight Sprint 0 Burndown Chart Generator",
		"Sprint Period: February 04, 2026 - February 18, 2026",
		"Completion Date: February 15, 2026 (3 days early)",
		"Total Tasks: 4",
		"Velocity: 0.27 tasks/day",
		"Completion Rate: 100.0%",
		"✅ Standard burndown chart created:",
		"✅ Enhanced burndown chart created:",
		"✅ Velocity chart created:",
		"(12 DPI)",
		"✨ All charts generated successfully!",
	} {
		if !strings.Contains(out, line) {
			t.Errorf("missing %q in the console output:\n%s", line, out)
		}
	}

	page, err := os.ReadFile(filepath.Join(cfg.OutputDir, gallery.FileName))
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range artifacts {
		if !bytes.Contains(page, []byte(filepath.Base(a.PNG))) || !bytes.Contains(page, []byte(filepath.Base(a.PDF))) {
			t.Errorf("gallery does not reference %s", a.Kind)
		}
	}
}

func TestRunIsReproducible(t *testing.T) {
	cfg1, cfg2 := testConfig(t), testConfig(t)
	cfg1.Gallery, cfg2.Gallery = false, false
	a1, err := Run(context.Background(), cfg1, sprint.Sprint0(), new(bytes.Buffer))
	if err != nil {
		t.Fatal(err)
	}
	a2, err := Run(context.Background(), cfg2, sprint.Sprint0(), new(bytes.Buffer))
	if err != nil {
		t.Fatal(err)
	}
	for i := range a1 {
		for _, pair := range [][2]string{{a1[i].PNG, a2[i].PNG}, {a1[i].PDF, a2[i].PDF}} {
			b1, err := os.ReadFile(pair[0])
			if err != nil {
				t.Fatal(err)
			}
			b2, err := os.ReadFile(pair[1])
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.Equal(b1, b2) {
				t.Errorf("%s differs between two runs", filepath.Base(pair[0]))
			}
		}
	}
	if _, err := os.Stat(filepath.Join(cfg1.OutputDir, gallery.FileName)); !os.IsNotExist(err) {
		t.Error("gallery should not be written when disabled")
	}
}

func TestRunContentStreamBackend(t *testing.T) {
	cfg := testConfig(t)
	cfg.PDFBackend = "contentstream"
	artifacts, err := Run(context.Background(), cfg, sprint.Sprint0(), new(bytes.Buffer))
	if err != nil {
		t.Fatal(err)
	}
	for _, a := range artifacts {
		data, err := os.ReadFile(a.PDF)
		if err != nil {
			t.Fatal(err)
		}
		if !bytes.HasPrefix(data, []byte("%PDF-1.7")) {
			t.Errorf("%s: unexpected pdf header", filepath.Base(a.PDF))
		}
	}
}

func TestRunErrors(t *testing.T) {
	cfg := testConfig(t)
	cfg.CreateOutputDir = false
	if _, err := Run(context.Background(), cfg, sprint.Sprint0(), new(bytes.Buffer)); err == nil {
		t.Error("expected an error for a missing output directory")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Run(ctx, testConfig(t), sprint.Sprint0(), new(bytes.Buffer)); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}

	if _, err := Run(context.Background(), testConfig(t), sprint.Record{}, new(bytes.Buffer)); !errors.Is(err, sprint.ErrEmpty) {
		t.Errorf("expected ErrEmpty, got %v", err)
	}
}
