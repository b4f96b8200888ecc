// Package report renders benchmark results as a text table, YAML or JSON.
package report

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/amp-labs/amp-sort/bench"
	"github.com/amp-labs/amp-sort/dataset"
	"gopkg.in/yaml.v3"
)

// ErrUnknownFormat is returned by ParseFormat and Write for an unsupported format.
var ErrUnknownFormat = errors.New("unknown report format")

// Format selects how results are written.
type Format string

const (
	FormatTable Format = "table"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

// Formats returns every supported format.
func Formats() []Format {
	return []Format{FormatTable, FormatYAML, FormatJSON}
}

// ParseFormat accepts a format name, ignoring case. "yml" is accepted for YAML.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "table", "text", "":
		return FormatTable, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, name)
	}
}

// Write renders results in the given format. The title is only used by tables.
func Write(w io.Writer, format Format, title string, results []bench.Result) error {
	switch format {
	case FormatTable:
		return Table(w, title, results)
	case FormatYAML:
		return YAML(w, results)
	case FormatJSON:
		return JSON(w, results)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, string(format))
	}
}

// Title is the table heading for results over one kind of data.
func Title(kind dataset.Kind) string {
	return fmt.Sprintf("Sorting results: %s", kind)
}

// document is the top-level shape of structured reports.
type document struct {
	Results []bench.Result `json:"results" yaml:"results"`
}

// YAML writes results as a YAML document.
func YAML(w io.Writer, results []bench.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2) //nolint:mnd

	if err := enc.Encode(document{Results: nonNil(results)}); err != nil {
		return fmt.Errorf("encoding yaml report: %w", err)
	}

	return enc.Close()
}

// JSON writes results as indented JSON.
func JSON(w io.Writer, results []bench.Result) error {
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "  ")

	if err := encoder.Encode(document{Results: nonNil(results)}); err != nil {
		return fmt.Errorf("encoding json report: %w", err)
	}

	return nil
}

func nonNil(results []bench.Result) []bench.Result {
	if results == nil {
		return []bench.Result{}
	}

	return results
}
