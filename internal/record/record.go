// Package record provides the dynamically typed record passed through the
// cat and write pipelines.
//
// A Record is an ordered mapping from field name to a decoded Avro value.
// Ordering follows the writer schema's field order, so JSON output shows
// fields the way the schema declares them while CSV output sorts them.
package record

import (
	"bytes"
	"encoding/json"
	"sort"
)

// Record is an ordered mapping of field names to values.
//
// Values are the generic forms produced by the Avro codec: int/int32/int64,
// float32/float64, string, bool, nil, or nested maps and slices for union
// and complex values.
type Record struct {
	keys   []string
	fields map[string]interface{}
}

// New creates an empty record.
func New() Record {
	return Record{fields: make(map[string]interface{})}
}

// FromMap builds a record from a decoded map, ordering fields by the given
// field name order. Keys not covered by the order are appended sorted, so
// the result is deterministic either way.
func FromMap(m map[string]interface{}, order []string) Record {
	rec := Record{
		keys:   make([]string, 0, len(m)),
		fields: make(map[string]interface{}, len(m)),
	}

	for _, name := range order {
		if v, ok := m[name]; ok {
			rec.keys = append(rec.keys, name)
			rec.fields[name] = normalize(v)
		}
	}

	var rest []string
	for name := range m {
		if _, ok := rec.fields[name]; !ok {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)

	for _, name := range rest {
		rec.keys = append(rec.keys, name)
		rec.fields[name] = normalize(m[name])
	}

	return rec
}

// normalize converts codec-native values into display-friendly ones.
// Avro bytes decode as []byte, which encoding/json would render as base64.
func normalize(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

// Set adds or replaces a field. New fields keep insertion order.
func (r *Record) Set(name string, value interface{}) {
	if r.fields == nil {
		r.fields = make(map[string]interface{})
	}
	if _, ok := r.fields[name]; !ok {
		r.keys = append(r.keys, name)
	}
	r.fields[name] = value
}

// Get returns the value for a field name.
func (r Record) Get(name string) (interface{}, bool) {
	v, ok := r.fields[name]
	return v, ok
}

// Len returns the number of fields.
func (r Record) Len() int {
	return len(r.keys)
}

// Keys returns the field names in record order.
func (r Record) Keys() []string {
	keys := make([]string, len(r.keys))
	copy(keys, r.keys)
	return keys
}

// SortedKeys returns the field names sorted lexicographically.
func (r Record) SortedKeys() []string {
	keys := r.Keys()
	sort.Strings(keys)
	return keys
}

// Fields returns the underlying name to value mapping. Used for filter
// evaluation and encoding; callers must not mutate it.
func (r Record) Fields() map[string]interface{} {
	return r.fields
}

// Project returns a new record containing only the requested fields,
// preserving record order. Requested names absent from the record are
// ignored. An empty set is the identity transform.
func (r Record) Project(fields map[string]bool) Record {
	if len(fields) == 0 {
		return r
	}

	out := Record{fields: make(map[string]interface{})}
	for _, name := range r.keys {
		if fields[name] {
			out.keys = append(out.keys, name)
			out.fields[name] = r.fields[name]
		}
	}

	return out
}

// MarshalJSON renders the record as a single JSON object with fields in
// record order. The stdlib map marshaller would sort keys instead.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')

	for i, name := range r.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		value, err := json.Marshal(r.fields[name])
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}

	buf.WriteByte('}')
	return buf.Bytes(), nil
}
