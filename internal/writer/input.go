package writer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/hamba/avro/v2"
)

// InputType identifies the text format of the records fed to the write
// pipeline.
type InputType string

const (
	// InputJSON is newline-delimited JSON objects
	InputJSON InputType = "json"
	// InputCSV is CSV rows mapped positionally onto the schema's fields
	InputCSV InputType = "csv"
)

// ParseInputType maps an input type name to its InputType.
func ParseInputType(name string) (InputType, error) {
	switch name {
	case "json":
		return InputJSON, nil
	case "csv":
		return InputCSV, nil
	default:
		return "", fmt.Errorf("unsupported input type %q (supported: json, csv)", name)
	}
}

// GuessInputType guesses the input type from a filename extension.
func GuessInputType(filename string) (InputType, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".json", ".js":
		return InputJSON, nil
	case ".csv":
		return InputCSV, nil
	default:
		return "", fmt.Errorf("cannot guess input type of %q", filename)
	}
}

// Input yields raw field-name to value mappings one at a time, returning
// io.EOF once the source is exhausted. Values are still untyped; the write
// pipeline coerces them against the schema.
type Input interface {
	Next() (map[string]interface{}, error)
}

// NewInput creates an input over r for the given type. CSV input needs the
// schema to map row positions to field names.
func NewInput(r io.Reader, inputType InputType, schema *avro.RecordSchema) (Input, error) {
	switch inputType {
	case InputJSON:
		return &jsonInput{dec: json.NewDecoder(r)}, nil
	case InputCSV:
		fields := make([]string, 0, len(schema.Fields()))
		for _, field := range schema.Fields() {
			fields = append(fields, field.Name())
		}
		cr := csv.NewReader(r)
		cr.FieldsPerRecord = len(fields)
		return &csvInput{reader: cr, fields: fields}, nil
	default:
		return nil, fmt.Errorf("unsupported input type %q", inputType)
	}
}

// jsonInput decodes newline-delimited JSON objects
type jsonInput struct {
	dec *json.Decoder
}

func (j *jsonInput) Next() (map[string]interface{}, error) {
	var row map[string]interface{}
	if err := j.dec.Decode(&row); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to decode JSON record: %w", err)
	}
	return row, nil
}

// csvInput maps each CSV row onto the schema's field names by position
type csvInput struct {
	reader *csv.Reader
	fields []string
}

func (c *csvInput) Next() (map[string]interface{}, error) {
	row, err := c.reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("failed to read CSV record: %w", err)
	}

	raw := make(map[string]interface{}, len(c.fields))
	for i, name := range c.fields {
		raw[name] = row[i]
	}

	return raw, nil
}
