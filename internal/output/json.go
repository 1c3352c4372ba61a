package output

import (
	"encoding/json"
	"io"

	"github.com/iemejia/avro/internal/record"
)

// JSONFormatter outputs records as JSON Lines, fields in record order
type JSONFormatter struct {
	writer io.Writer
}

// Write renders one record as a single JSON line
func (j *JSONFormatter) Write(rec record.Record) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = j.writer.Write(data)
	return err
}

// Flush implements Formatter; JSON output is unbuffered
func (j *JSONFormatter) Flush() error {
	return nil
}

// JSONPrettyFormatter outputs records as indented JSON objects with keys
// sorted lexicographically. Lines carry no trailing whitespace.
type JSONPrettyFormatter struct {
	writer io.Writer
}

// Write renders one record as an indented JSON object
func (j *JSONPrettyFormatter) Write(rec record.Record) error {
	// Marshalling the map form sorts the keys.
	data, err := json.MarshalIndent(rec.Fields(), "", "    ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = j.writer.Write(data)
	return err
}

// Flush implements Formatter; JSON output is unbuffered
func (j *JSONPrettyFormatter) Flush() error {
	return nil
}
