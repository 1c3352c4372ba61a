// Package reader provides functionality for reading Avro object container
// files.
//
// It uses the hamba/avro library to decode container files and yields
// records one at a time for the cat pipeline.
package reader

import (
	"fmt"
	"io"
	"os"

	"github.com/hamba/avro/v2"
	"github.com/hamba/avro/v2/ocf"

	"github.com/iemejia/avro/internal/record"
)

// schemaMetadataKey is the container file header entry holding the writer schema.
const schemaMetadataKey = "avro.schema"

// Reader reads an Avro container file and returns records one at a time.
//
// It keeps the OS file handle alongside the decoder so resources can be
// released once the file is consumed.
type Reader struct {
	file   *os.File
	dec    *ocf.Decoder
	schema avro.Schema
	order  []string
}

// Open creates a reader for the container file at path. The path "-" reads
// from standard input.
//
// Example:
//
//	r, err := reader.Open("data.avro")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
func Open(path string) (*Reader, error) {
	if path == "-" {
		return NewReader(os.Stdin)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	r, err := NewReader(file)
	if err != nil {
		_ = file.Close()
		return nil, err
	}
	r.file = file

	return r, nil
}

// NewReader creates a reader decoding the container file from r.
func NewReader(r io.Reader) (*Reader, error) {
	dec, err := ocf.NewDecoder(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open avro container file: %w", err)
	}

	raw, ok := dec.Metadata()[schemaMetadataKey]
	if !ok {
		return nil, fmt.Errorf("avro container file carries no schema")
	}

	schema, err := avro.Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to parse writer schema: %w", err)
	}

	return &Reader{
		dec:    dec,
		schema: schema,
		order:  fieldOrder(schema),
	}, nil
}

// fieldOrder returns the schema's declared field names in order.
func fieldOrder(schema avro.Schema) []string {
	rs, ok := schema.(*avro.RecordSchema)
	if !ok {
		return nil
	}

	order := make([]string, 0, len(rs.Fields()))
	for _, field := range rs.Fields() {
		order = append(order, field.Name())
	}

	return order
}

// Next decodes the next record. It returns io.EOF once the file is
// exhausted.
func (r *Reader) Next() (record.Record, error) {
	if !r.dec.HasNext() {
		return record.Record{}, io.EOF
	}

	row := make(map[string]interface{})
	if err := r.dec.Decode(&row); err != nil {
		return record.Record{}, fmt.Errorf("failed to decode record: %w", err)
	}

	return record.FromMap(row, r.order), nil
}

// Schema returns the writer schema embedded in the container file header.
func (r *Reader) Schema() avro.Schema {
	return r.schema
}

// Close closes the underlying file and releases associated resources.
//
// Should be called when done reading to avoid resource leaks. It is safe
// to call Close multiple times.
func (r *Reader) Close() error {
	if r.file != nil {
		file := r.file
		r.file = nil
		return file.Close()
	}
	return nil
}
