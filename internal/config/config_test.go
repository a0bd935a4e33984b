package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/truesight/sprintcharts/chartpdf"
)

func TestLoadDefault(t *testing.T) {
	cfg, err := load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputDir != DefaultOutputDir {
		t.Errorf("expected output_dir %s, got %s", DefaultOutputDir, cfg.OutputDir)
	}
	if cfg.DPI != DefaultDPI {
		t.Errorf("expected dpi %d, got %g", DefaultDPI, cfg.DPI)
	}
	if cfg.Team != "TrueSight" {
		t.Errorf("expected team TrueSight, got %s", cfg.Team)
	}
	if !cfg.Gallery || !cfg.Tight || !cfg.CreateOutputDir {
		t.Errorf("expected gallery, tight and create_output_dir enabled")
	}
	if b, err := cfg.Backend(); err != nil || b != chartpdf.Gofpdf {
		t.Errorf("expected the gofpdf backend, got %v (%v)", b, err)
	}
	if l, err := cfg.Level(); err != nil || l != slog.LevelInfo {
		t.Errorf("expected info level, got %v (%v)", l, err)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sprintcharts.yaml")
	content := "output_dir: out\ndpi: 72\ngallery: false\nlog_level: debug\npdf_backend: contentstream\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := load([]string{filepath.Join(dir, "missing.yaml"), path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputDir != "out" {
		t.Errorf("expected output_dir out, got %s", cfg.OutputDir)
	}
	if cfg.DPI != 72 {
		t.Errorf("expected dpi 72, got %g", cfg.DPI)
	}
	if cfg.Gallery {
		t.Errorf("expected gallery disabled")
	}
	if !cfg.Tight {
		t.Errorf("unset fields should keep their default")
	}
	if l, _ := cfg.Level(); l != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", l)
	}
	if b, _ := cfg.Backend(); b != chartpdf.ContentStream {
		t.Errorf("expected the contentstream backend, got %s", b)
	}

	if err := os.WriteFile(path, []byte("dpi: [1"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := load([]string{path}); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SPRINTCHARTS_OUTPUT_DIR", "/tmp/charts-test")
	t.Setenv("SPRINTCHARTS_DPI", "150")
	t.Setenv("SPRINTCHARTS_TEAM", "Nightly")
	t.Setenv("SPRINTCHARTS_LOG_LEVEL", "warn")
	t.Setenv("SPRINTCHARTS_GALLERY", "false")
	t.Setenv("SPRINTCHARTS_TIGHT", "0")
	t.Setenv("SPRINTCHARTS_PDF_BACKEND", "contentstream")

	cfg, err := load(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.OutputDir != "/tmp/charts-test" {
		t.Errorf("expected output_dir /tmp/charts-test, got %s", cfg.OutputDir)
	}
	if cfg.DPI != 150 {
		t.Errorf("expected dpi 150, got %g", cfg.DPI)
	}
	if cfg.Team != "Nightly" {
		t.Errorf("expected team Nightly, got %s", cfg.Team)
	}
	if l, _ := cfg.Level(); l != slog.LevelWarn {
		t.Errorf("expected warn level, got %v", l)
	}
	if cfg.Gallery || cfg.Tight {
		t.Errorf("expected gallery and tight disabled")
	}
	if cfg.PDFBackend != "contentstream" {
		t.Errorf("expected pdf_backend contentstream, got %s", cfg.PDFBackend)
	}
}

func TestLoadEnvInvalid(t *testing.T) {
	for _, key := range []string{
		"SPRINTCHARTS_DPI",
		"SPRINTCHARTS_GALLERY",
		"SPRINTCHARTS_TIGHT",
		"SPRINTCHARTS_PDF_BACKEND",
	} {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, "maybe")
			if _, err := load(nil); err == nil {
				t.Errorf("expected an error for %s=maybe", key)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("SPRINTCHARTS_DPI", "-3")
	if _, err := load(nil); !errors.Is(err, ErrInvalidDPI) {
		t.Errorf("expected ErrInvalidDPI, got %v", err)
	}

	t.Setenv("SPRINTCHARTS_DPI", "abc")
	if _, err := load(nil); err == nil {
		t.Error("expected an error for a malformed dpi")
	}

	cfg := Default()
	cfg.LogLevel = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Error("expected an error for an unknown log level")
	}
}

func TestChartPath(t *testing.T) {
	cfg := &Config{OutputDir: "docs/images/charts"}
	if got := cfg.ChartPath("velocity_sprint0", ".png"); got != filepath.Join("docs", "images", "charts", "velocity_sprint0.png") {
		t.Errorf("unexpected path %s", got)
	}
}
