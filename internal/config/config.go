package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/truesight/sprintcharts/chartpdf"
	"gopkg.in/yaml.v3"
)

const (
	DefaultOutputDir = "docs/images/charts"
	DefaultDPI       = 300
	DefaultTeam      = "TrueSight"
)

var ErrInvalidDPI = errors.New("config: dpi must be positive")

// Config holds the settings of a generation run.
type Config struct {
	OutputDir string  `yaml:"output_dir"`
	DPI       float64 `yaml:"dpi"`
	Team      string  `yaml:"team"` // prefixes the chart titles
	LogLevel  string  `yaml:"log_level"`

	PDFBackend string `yaml:"pdf_backend"` // "gofpdf" or "contentstream"

	Gallery         bool `yaml:"gallery"`           // write index.html next to the charts
	Tight           bool `yaml:"tight"`             // crop the charts to their drawn extent
	CreateOutputDir bool `yaml:"create_output_dir"` // create missing directories
}

// Default returns the configuration used when no file nor
// environment variable is set.
func Default() *Config {
	return &Config{
		OutputDir:       DefaultOutputDir,
		DPI:             DefaultDPI,
		Team:            DefaultTeam,
		LogLevel:        "info",
		PDFBackend:      chartpdf.Gofpdf.String(),
		Gallery:         true,
		Tight:           true,
		CreateOutputDir: true,
	}
}

// configPaths are tried in order, the first existing file is used.
var configPaths = []string{
	"sprintcharts.yaml",
	"sprintcharts.yml",
	filepath.Join("configs", "sprintcharts.yaml"),
}

// Load reads the configuration file, if any, and applies the
// environment overrides. Missing files fall back to the defaults.
func Load() (*Config, error) {
	return load(configPaths)
}

func load(paths []string) (*Config, error) {
	cfg := Default()

	for _, path := range paths {
		if data, err := os.ReadFile(path); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
			}
			break
		}
	}

	if v := os.Getenv("SPRINTCHARTS_OUTPUT_DIR"); v != "" {
		cfg.OutputDir = v
	}
	if v := os.Getenv("SPRINTCHARTS_DPI"); v != "" {
		dpi, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid SPRINTCHARTS_DPI: %w", err)
		}
		cfg.DPI = dpi
	}
	if v := os.Getenv("SPRINTCHARTS_TEAM"); v != "" {
		cfg.Team = v
	}
	if v := os.Getenv("SPRINTCHARTS_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("SPRINTCHARTS_PDF_BACKEND"); v != "" {
		cfg.PDFBackend = v
	}
	if v := os.Getenv("SPRINTCHARTS_GALLERY"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SPRINTCHARTS_GALLERY: %w", err)
		}
		cfg.Gallery = enabled
	}
	if v := os.Getenv("SPRINTCHARTS_TIGHT"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SPRINTCHARTS_TIGHT: %w", err)
		}
		cfg.Tight = enabled
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values which can't be used as is.
func (c *Config) Validate() error {
	if c.DPI <= 0 {
		return fmt.Errorf("%w (got %g)", ErrInvalidDPI, c.DPI)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if _, err := c.Backend(); err != nil {
		return err
	}
	return nil
}

// Backend parses PDFBackend.
func (c *Config) Backend() (chartpdf.Backend, error) {
	return chartpdf.ParseBackend(strings.TrimSpace(c.PDFBackend))
}

// Level parses LogLevel ("debug", "info", "warn", "error").
func (c *Config) Level() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(c.LogLevel))); err != nil {
		return l, fmt.Errorf("invalid log level: %w", err)
	}
	return l, nil
}

// ChartPath returns the path of a chart file, given its base name
// and extension (".png", ".pdf").
func (c *Config) ChartPath(name, ext string) string {
	return filepath.Join(c.OutputDir, name+ext)
}
