// Package generate runs one chart generation: it lays out every
// chart of a sprint, writes the PNG and PDF files and the gallery page,
// and reports progress on a console writer.
package generate

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/truesight/sprintcharts/chart"
	"github.com/truesight/sprintcharts/chartraster"
	"github.com/truesight/sprintcharts/gallery"
	"github.com/truesight/sprintcharts/internal/config"
	"github.com/truesight/sprintcharts/sprint"
)

const (
	ruleWidth  = 60
	longLayout = "January 02, 2006"
)

// Artifact is the pair of files written for one chart.
type Artifact struct {
	Kind     chart.Kind
	Title    string
	PNG, PDF string
}

// Run generates the charts of rec as configured by cfg, printing
// the progress to out. It stops at the first error, or when ctx
// is cancelled between two charts.
func Run(ctx context.Context, cfg *config.Config, rec sprint.Record, out io.Writer) ([]Artifact, error) {
	if err := rec.Validate(); err != nil {
		return nil, err
	}
	if err := rec.Monotonic(); err != nil {
		slog.Warn("remaining tasks increase during the sprint", "error", err)
	}
	if cfg.CreateOutputDir {
		if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
			return nil, fmt.Errorf("creating output directory: %w", err)
		}
	}

	sum := rec.Summarize()
	printHeader(out, cfg.Team, sum)

	var artifacts []Artifact
	for _, k := range chart.Kinds {
		if err := ctx.Err(); err != nil {
			return artifacts, err
		}
		a, err := writeChart(cfg, k, rec)
		if err != nil {
			return artifacts, fmt.Errorf("%s chart: %w", k, err)
		}
		artifacts = append(artifacts, a)
		fmt.Fprintf(out, "✅ %s chart created:\n", capitalize(k.String()))
		fmt.Fprintf(out, "   📁 %s (%g DPI)\n", a.PNG, cfg.DPI)
		fmt.Fprintf(out, "   📁 %s\n", a.PDF)
	}

	if cfg.Gallery {
		path := filepath.Join(cfg.OutputDir, gallery.FileName)
		if err := writeGallery(path, sum, artifacts); err != nil {
			return artifacts, fmt.Errorf("gallery: %w", err)
		}
		fmt.Fprintf(out, "   🖼  %s\n", path)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, strings.Repeat("=", ruleWidth))
	fmt.Fprintln(out, "✨ All charts generated successfully!")
	fmt.Fprintln(out, strings.Repeat("=", ruleWidth))
	return artifacts, nil
}

func printHeader(out io.Writer, team string, s sprint.Summary) {
	fmt.Fprintln(out, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(out, "%s %s Burndown Chart Generator\n", team, s.Name)
	fmt.Fprintln(out, strings.Repeat("=", ruleWidth))
	fmt.Fprintf(out, "\nSprint Period: %s - %s\n", s.Start.Format(longLayout), s.End.Format(longLayout))
	if s.CompletionIdx >= 0 {
		fmt.Fprintf(out, "Completion Date: %s (%d days early)\n", s.Completion.Format(longLayout), s.DaysEarly)
	} else {
		fmt.Fprintln(out, "Completion Date: not completed")
	}
	fmt.Fprintf(out, "Total Tasks: %d\n", s.Total)
	fmt.Fprintf(out, "Velocity: %.2f tasks/day\n", s.Velocity)
	fmt.Fprintf(out, "Completion Rate: %.1f%%\n", s.CompletionRate)
	fmt.Fprint(out, "\nGenerating charts...\n\n")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// writeChart lays out the chart of kind k and writes its two files.
func writeChart(cfg *config.Config, k chart.Kind, rec sprint.Record) (Artifact, error) {
	sc, err := chart.New(k, cfg.Team, rec, chart.Tight(cfg.Tight))
	if err != nil {
		return Artifact{}, err
	}
	name := k.FileName(rec)
	a := Artifact{
		Kind:  k,
		Title: sc.Title,
		PNG:   cfg.ChartPath(name, ".png"),
		PDF:   cfg.ChartPath(name, ".pdf"),
	}

	err = writeFile(a.PNG, func(w io.Writer) error { return chartraster.WritePNG(w, sc, cfg.DPI) })
	if err != nil {
		return a, err
	}
	w, h := chartraster.PixelSize(sc, cfg.DPI)
	slog.Debug("png written", "kind", k.String(), "path", a.PNG, "width", w, "height", h)

	backend, err := cfg.Backend()
	if err != nil {
		return a, err
	}
	// the sprint end date keeps the pdf metadata stable between runs
	if err := backend.WriteFile(a.PDF, sc, rec.End()); err != nil {
		return a, fmt.Errorf("writing %s: %w", a.PDF, err)
	}
	slog.Debug("pdf written", "kind", k.String(), "path", a.PDF, "backend", backend.String(), "items", len(sc.Items))
	return a, nil
}

func writeGallery(path string, s sprint.Summary, artifacts []Artifact) error {
	entries := make([]gallery.Entry, len(artifacts))
	for i, a := range artifacts {
		entries[i] = gallery.Entry{
			Title: a.Title,
			PNG:   filepath.Base(a.PNG),
			PDF:   filepath.Base(a.PDF),
		}
	}
	title := fmt.Sprintf("%s charts (%s)", s.Name, s.Period())
	if err := writeFile(path, func(w io.Writer) error { return gallery.Write(w, title, entries) }); err != nil {
		return err
	}
	slog.Debug("gallery written", "path", path, "entries", len(entries))
	return nil
}

// writeFile creates path and fills it with write, through a buffer.
func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	bw := bufio.NewWriter(f)
	if err := write(bw); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := bw.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
