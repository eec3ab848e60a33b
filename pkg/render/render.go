// Package render presents a repository report as text, JSON, YAML, or an
// HTML plot page.
package render

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Sumatoshi-tech/gitpulse/pkg/config"
	"github.com/Sumatoshi-tech/gitpulse/pkg/repoinfo"
)

// ErrUnknownFormat is returned for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// Options controls presentation.
type Options struct {
	Format  string
	Color   bool
	Verbose bool
}

// Render writes report to w in the requested format.
func Render(w io.Writer, report *repoinfo.Report, opts Options) error {
	switch opts.Format {
	case "", config.FormatText:
		return Text(w, report, opts)
	case config.FormatJSON:
		return JSON(w, report)
	case config.FormatYAML:
		return YAML(w, report)
	case config.FormatPlot:
		return Plot(w, report)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, opts.Format)
	}
}

// JSON writes the report as indented JSON.
func JSON(w io.Writer, report *repoinfo.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("encode json: %w", err)
	}

	return nil
}

// YAML writes the report as YAML.
func YAML(w io.Writer, report *repoinfo.Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err := enc.Encode(report)
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	err = enc.Close()
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}

	return nil
}
