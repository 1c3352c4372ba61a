package record

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/hamba/avro/v2"
)

// ErrCoercion is returned when a raw input value cannot be converted to the
// type a schema field declares.
var ErrCoercion = errors.New("cannot coerce value")

// Coerce converts a raw input value (text from CSV, or the generic values
// produced by a JSON decoder) into the typed value the schema requires for
// Avro encoding.
//
// Union types try each alternative in declared order and take the first
// conversion that succeeds. If every alternative fails the coercion fails;
// there is no silent fallthrough.
func Coerce(value interface{}, schema avro.Schema) (interface{}, error) {
	switch schema.Type() {
	case avro.Null:
		return nil, nil

	case avro.Boolean:
		return coerceBool(value)

	case avro.Int:
		n, err := coerceInt(value, 32)
		if err != nil {
			return nil, err
		}
		return int(n), nil

	case avro.Long:
		return coerceInt(value, 64)

	case avro.Float:
		f, err := coerceFloat(value, 32)
		if err != nil {
			return nil, err
		}
		return float32(f), nil

	case avro.Double:
		return coerceFloat(value, 64)

	case avro.String:
		return coerceString(value)

	case avro.Bytes:
		return coerceBytes(value)

	case avro.Union:
		return coerceUnion(value, schema.(*avro.UnionSchema))

	default:
		return nil, fmt.Errorf("%w: unsupported schema type %q", ErrCoercion, schema.Type())
	}
}

func coerceBool(value interface{}) (interface{}, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %q is not a boolean", ErrCoercion, v)
		}
		return b, nil
	default:
		return nil, fmt.Errorf("%w: %v (%T) is not a boolean", ErrCoercion, value, value)
	}
}

func coerceInt(value interface{}, bits int) (int64, error) {
	switch v := value.(type) {
	case string:
		n, err := strconv.ParseInt(v, 10, bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrCoercion, v)
		}
		return n, nil
	case float64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	case int:
		return int64(v), nil
	case int32:
		return int64(v), nil
	case int64:
		return v, nil
	default:
		return 0, fmt.Errorf("%w: %v (%T) is not an integer", ErrCoercion, value, value)
	}
}

func coerceFloat(value interface{}, bits int) (float64, error) {
	switch v := value.(type) {
	case string:
		f, err := strconv.ParseFloat(v, bits)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a number", ErrCoercion, v)
		}
		return f, nil
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int32:
		return float64(v), nil
	case int64:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("%w: %v (%T) is not a number", ErrCoercion, value, value)
	}
}

func coerceString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), nil
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32), nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	default:
		return "", fmt.Errorf("%w: %v (%T) is not a string", ErrCoercion, value, value)
	}
}

func coerceBytes(value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case []byte:
		return v, nil
	case string:
		return []byte(v), nil
	default:
		return nil, fmt.Errorf("%w: %v (%T) is not a byte sequence", ErrCoercion, value, value)
	}
}

func coerceUnion(value interface{}, schema *avro.UnionSchema) (interface{}, error) {
	if value == nil {
		for _, alt := range schema.Types() {
			if alt.Type() == avro.Null {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("%w: null is not admitted by union %s", ErrCoercion, schema)
	}

	for _, alt := range schema.Types() {
		if alt.Type() == avro.Null {
			continue
		}
		coerced, err := Coerce(value, alt)
		if err != nil {
			continue
		}
		if schema.Nullable() {
			// The codec accepts bare values for two-branch null unions.
			return coerced, nil
		}
		return map[string]interface{}{branchName(alt): coerced}, nil
	}

	return nil, fmt.Errorf("%w: %v matches no alternative of union %s", ErrCoercion, value, schema)
}

// branchName returns the union branch key the codec expects for a value.
func branchName(schema avro.Schema) string {
	if named, ok := schema.(avro.NamedSchema); ok {
		return named.FullName()
	}
	return string(schema.Type())
}

// CoerceRecord coerces one raw field-name to value mapping against every
// field of a record schema, in schema order. A field absent from the input
// coerces as null, which only succeeds when the field's type admits it.
func CoerceRecord(raw map[string]interface{}, schema *avro.RecordSchema) (Record, error) {
	rec := New()

	for _, field := range schema.Fields() {
		value, err := Coerce(raw[field.Name()], field.Type())
		if err != nil {
			return Record{}, fmt.Errorf("field %q: %w", field.Name(), err)
		}
		rec.Set(field.Name(), value)
	}

	return rec, nil
}
