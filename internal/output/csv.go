package output

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/iemejia/avro/internal/record"
)

// CSVFormatter outputs records as CSV rows with values ordered by sorted
// field name. All records of an invocation share one csv.Writer.
type CSVFormatter struct {
	csvWriter   *csv.Writer
	header      bool
	wroteHeader bool
}

// NewCSVFormatter creates a new CSV formatter. When header is set, a header
// row of sorted field names is written before the first record.
func NewCSVFormatter(w io.Writer, header bool) *CSVFormatter {
	return &CSVFormatter{
		csvWriter: csv.NewWriter(w),
		header:    header,
	}
}

// Write renders one record as a CSV row
func (c *CSVFormatter) Write(rec record.Record) error {
	columns := rec.SortedKeys()

	if c.header && !c.wroteHeader {
		if err := c.csvWriter.Write(columns); err != nil {
			return err
		}
		c.wroteHeader = true
	}

	row := make([]string, len(columns))
	for i, col := range columns {
		value, _ := rec.Get(col)
		row[i] = formatValue(value)
	}

	return c.csvWriter.Write(row)
}

// Flush flushes buffered rows and reports any write error
func (c *CSVFormatter) Flush() error {
	c.csvWriter.Flush()
	if err := c.csvWriter.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV writer: %w", err)
	}
	return nil
}

// formatValue converts a value to string for CSV output
func formatValue(v interface{}) string {
	if v == nil {
		return ""
	}

	switch val := v.(type) {
	case string:
		return val
	case []byte:
		return string(val)
	case int, int8, int16, int32, int64:
		return fmt.Sprintf("%d", val)
	case uint, uint8, uint16, uint32, uint64:
		return fmt.Sprintf("%d", val)
	case float32, float64:
		return fmt.Sprintf("%g", val)
	case bool:
		return fmt.Sprintf("%t", val)
	default:
		// For complex types, fall back to the default representation
		return fmt.Sprintf("%v", val)
	}
}
