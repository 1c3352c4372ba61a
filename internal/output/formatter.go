// Package output provides formatters for rendering records to the output
// stream.
//
// Supported formats:
//   - JSON: one JSON object per line, fields in record order
//   - JSON pretty: indented JSON object with sorted keys
//   - CSV: one row per record, values in sorted field name order
//
// Example usage:
//
//	formatter := output.New(output.FormatJSON, os.Stdout, false)
//	if err := formatter.Write(rec); err != nil {
//	    log.Fatal(err)
//	}
package output

import (
	"fmt"
	"io"

	"github.com/iemejia/avro/internal/record"
)

// Format is the closed set of output formats.
type Format int

const (
	// FormatJSON is single-line JSON, one record per line
	FormatJSON Format = iota
	// FormatJSONPretty is indented JSON with sorted keys
	FormatJSONPretty
	// FormatCSV is one CSV row per record
	FormatCSV
)

// ParseFormat maps a format name to its Format.
func ParseFormat(name string) (Format, error) {
	switch name {
	case "json":
		return FormatJSON, nil
	case "json-pretty":
		return FormatJSONPretty, nil
	case "csv":
		return FormatCSV, nil
	default:
		return 0, fmt.Errorf("unsupported format %q (supported: json, json-pretty, csv)", name)
	}
}

// Formatter renders records one at a time.
//
// A single formatter instance is shared by everything one invocation prints,
// so CSV output goes through one writer. Flush must be called once after the
// last record.
type Formatter interface {
	// Write renders one record
	Write(rec record.Record) error

	// Flush writes any buffered output
	Flush() error
}

// New creates a formatter for the given format writing to w. The header
// flag only affects CSV output.
func New(format Format, w io.Writer, header bool) Formatter {
	switch format {
	case FormatJSONPretty:
		return &JSONPrettyFormatter{writer: w}
	case FormatCSV:
		return NewCSVFormatter(w, header)
	default:
		return &JSONFormatter{writer: w}
	}
}
