// Package pipeline implements the cat and write command pipelines on top of
// the reader, writer, query, record and output packages.
package pipeline

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/iemejia/avro/internal/output"
	"github.com/iemejia/avro/internal/query"
	"github.com/iemejia/avro/internal/reader"
)

// ErrUsage is returned for invocations that are malformed before any work
// starts: missing arguments, invalid flag combinations, unreadable paths.
var ErrUsage = errors.New("invalid usage")

// CatOptions is the immutable configuration snapshot for one cat invocation.
type CatOptions struct {
	// Count is the maximum number of records printed per file; 0 means
	// unbounded
	Count int
	// Skip is the number of post-filter records discarded per file before
	// printing
	Skip int
	// Format selects the output rendering
	Format output.Format
	// Header requests a CSV header row; only valid with FormatCSV
	Header bool
	// Filter is the boolean filter expression; empty means no filtering
	Filter string
	// Fields is the projection allow-list; empty means the full record
	Fields []string
	// PrintSchema prints each file's schema instead of its records
	PrintSchema bool
}

// fieldSet deduplicates the projection list into a lookup set.
func (o CatOptions) fieldSet() map[string]bool {
	if len(o.Fields) == 0 {
		return nil
	}
	set := make(map[string]bool, len(o.Fields))
	for _, name := range o.Fields {
		set[name] = true
	}
	return set
}

// Validate rejects malformed option combinations before any output occurs.
func (o CatOptions) Validate() error {
	if o.Count < 0 {
		return fmt.Errorf("%w: count must be non-negative, got %d", ErrUsage, o.Count)
	}
	if o.Skip < 0 {
		return fmt.Errorf("%w: skip must be non-negative, got %d", ErrUsage, o.Skip)
	}
	if o.Header && o.Format != output.FormatCSV {
		return fmt.Errorf("%w: --header is only valid with the csv format", ErrUsage)
	}
	return nil
}

// Cat runs the read pipeline over the given files in argument order,
// writing rendered records to w.
//
// Per file the stages are: filter, skip, project, take, print. Skip and
// count restart at every file boundary. The formatter is shared across all
// files, so CSV rows of a multi-file run go through one writer.
func Cat(opts CatOptions, files []string, w io.Writer) error {
	if len(files) == 0 {
		return fmt.Errorf("%w: at least one file argument is required", ErrUsage)
	}
	if err := opts.Validate(); err != nil {
		return err
	}

	var filter query.Expression
	if opts.Filter != "" {
		var err error
		filter, err = query.Parse(opts.Filter)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	formatter := output.New(opts.Format, w, opts.Header)
	fields := opts.fieldSet()

	for _, file := range files {
		err := catFile(opts, file, filter, fields, formatter, w)
		// Flush at every file boundary so output already produced reaches
		// the sink before a later file's error propagates.
		if flushErr := formatter.Flush(); err == nil {
			err = flushErr
		}
		if err != nil {
			return err
		}
	}

	return nil
}

// catFile streams one container file through the pipeline. The file handle
// is scoped here and released before the next file is opened.
func catFile(opts CatOptions, file string, filter query.Expression, fields map[string]bool, formatter output.Formatter, w io.Writer) error {
	r, err := reader.Open(file)
	if err != nil {
		// An unopenable path is a usage error; a corrupt container header
		// is a decode error and propagates as-is.
		var pathErr *os.PathError
		if errors.As(err, &pathErr) {
			return fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return fmt.Errorf("%s: %w", file, err)
	}
	defer func() { _ = r.Close() }()

	log.WithField("file", file).Debug("reading avro container file")

	if opts.PrintSchema {
		return printSchema(w, r.Schema().String())
	}

	skipped := 0
	printed := 0

	for {
		rec, err := r.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return fmt.Errorf("%s: %w", file, err)
		}

		if filter != nil {
			match, err := filter.Evaluate(rec.Fields())
			if err != nil {
				return fmt.Errorf("%s: %w", file, err)
			}
			if !match {
				continue
			}
		}

		if skipped < opts.Skip {
			skipped++
			continue
		}

		rec = rec.Project(fields)

		if err := formatter.Write(rec); err != nil {
			return err
		}
		printed++

		if opts.Count > 0 && printed >= opts.Count {
			break
		}
	}

	log.WithFields(log.Fields{"file": file, "records": printed}).Debug("done")

	return nil
}

// printSchema renders a schema JSON document indented with sorted keys.
func printSchema(w io.Writer, schemaJSON string) error {
	var parsed interface{}
	if err := json.Unmarshal([]byte(schemaJSON), &parsed); err != nil {
		return fmt.Errorf("failed to parse schema: %w", err)
	}

	pretty, err := json.MarshalIndent(parsed, "", "    ")
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(pretty))
	return err
}
