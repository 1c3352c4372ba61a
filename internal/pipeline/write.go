package pipeline

import (
	"errors"
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"

	"github.com/hamba/avro/v2"

	"github.com/iemejia/avro/internal/record"
	"github.com/iemejia/avro/internal/writer"
)

// WriteOptions is the immutable configuration snapshot for one write
// invocation.
type WriteOptions struct {
	// SchemaPath is the JSON schema file driving the encoding; required
	SchemaPath string
	// InputType is the text format of the input records; empty means guess
	// from the first input filename's extension
	InputType string
	// Output is the container file path; empty or "-" means stdout
	Output string
}

// Write runs the write pipeline: decode text records from the input files
// (or stdin when none are given), coerce them against the schema, and append
// them to a single container file sink.
//
// The sink is opened once and finalized once, after all inputs have been
// consumed. Any coercion or decode error aborts the invocation.
func Write(opts WriteOptions, files []string, stdin io.Reader, stdout io.Writer) error {
	if opts.SchemaPath == "" {
		return fmt.Errorf("%w: --schema is required", ErrUsage)
	}

	inputType, err := resolveInputType(opts.InputType, files)
	if err != nil {
		return err
	}

	schema, err := writer.LoadSchema(opts.SchemaPath)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	sink, closeSink, err := openSink(opts.Output, stdout)
	if err != nil {
		return err
	}
	defer closeSink()

	w, err := writer.New(sink, schema)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		if err := writeStream(w, stdin, inputType, schema); err != nil {
			return err
		}
	} else {
		for _, file := range files {
			if err := writeFile(w, file, inputType, schema); err != nil {
				return err
			}
		}
	}

	return w.Close()
}

// resolveInputType applies the explicit input type flag or guesses from the
// first input filename.
func resolveInputType(explicit string, files []string) (writer.InputType, error) {
	if explicit != "" {
		inputType, err := writer.ParseInputType(explicit)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUsage, err)
		}
		return inputType, nil
	}

	if len(files) == 0 {
		return "", fmt.Errorf("%w: cannot guess input type when reading from stdin, use --input-type", ErrUsage)
	}

	inputType, err := writer.GuessInputType(files[0])
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUsage, err)
	}

	return inputType, nil
}

// openSink opens the output sink once for the whole invocation. Stdout is
// never closed; file sinks are.
func openSink(path string, stdout io.Writer) (io.Writer, func(), error) {
	if path == "" || path == "-" {
		return stdout, func() {}, nil
	}

	file, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: failed to open output file: %v", ErrUsage, err)
	}

	return file, func() { _ = file.Close() }, nil
}

// writeFile feeds one input file through the coercion stage into the shared
// container writer. The handle is scoped to this file's processing.
func writeFile(w *writer.Writer, file string, inputType writer.InputType, schema *avro.RecordSchema) error {
	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	defer func() { _ = f.Close() }()

	log.WithFields(log.Fields{"file": file, "type": inputType}).Debug("writing input file")

	if err := writeStream(w, f, inputType, schema); err != nil {
		return fmt.Errorf("%s: %w", file, err)
	}
	return nil
}

// writeStream decodes, coerces and appends every record of one input stream.
func writeStream(w *writer.Writer, r io.Reader, inputType writer.InputType, schema *avro.RecordSchema) error {
	in, err := writer.NewInput(r, inputType, schema)
	if err != nil {
		return err
	}

	for {
		raw, err := in.Next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}

		rec, err := record.CoerceRecord(raw, schema)
		if err != nil {
			return err
		}

		if err := w.Append(rec); err != nil {
			return err
		}
	}
}
