// Package writer provides the encoding side of the tool: text format input
// iterators and the Avro object container file writer they feed.
//
// It uses the hamba/avro library for schema parsing and container file
// framing.
package writer

import (
	"fmt"
	"io"
	"os"

	"github.com/hamba/avro/v2"
	"github.com/hamba/avro/v2/ocf"

	"github.com/iemejia/avro/internal/record"
)

// LoadSchema reads and parses the JSON schema file at path. The tool writes
// flat records, so the schema's top-level type must be a record.
func LoadSchema(path string) (*avro.RecordSchema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}

	schema, err := avro.Parse(string(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema: %w", err)
	}

	rs, ok := schema.(*avro.RecordSchema)
	if !ok {
		return nil, fmt.Errorf("schema must describe a record, got %q", schema.Type())
	}

	return rs, nil
}

// Writer appends records to a single Avro container file. One Writer is
// bound per invocation; every input file's records go through it and the
// container is finalized exactly once.
type Writer struct {
	enc    *ocf.Encoder
	closed bool
}

// New creates a container file writer bound to w using the given schema.
func New(w io.Writer, schema *avro.RecordSchema) (*Writer, error) {
	enc, err := ocf.NewEncoder(schema.String(), w)
	if err != nil {
		return nil, fmt.Errorf("failed to create avro container writer: %w", err)
	}

	return &Writer{enc: enc}, nil
}

// Append encodes one coerced record into the container file.
func (w *Writer) Append(rec record.Record) error {
	if err := w.enc.Encode(rec.Fields()); err != nil {
		return fmt.Errorf("failed to encode record: %w", err)
	}
	return nil
}

// Close flushes buffered blocks and finalizes the container file. It is
// safe to call Close multiple times.
func (w *Writer) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.enc.Flush(); err != nil {
		return fmt.Errorf("failed to flush avro container writer: %w", err)
	}
	if err := w.enc.Close(); err != nil {
		return fmt.Errorf("failed to close avro container writer: %w", err)
	}
	return nil
}
