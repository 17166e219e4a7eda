package statements

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// jsonObjectWriter builds a JSON object whose fields keep the order they are
// written in. Its zero value is an empty object.
//
// The first error is kept and returned by MarshalJSON, later calls are no-ops.
type jsonObjectWriter struct {
	bytes.Buffer
	err error
}

// Embed writes the fields of the JSON object raw at the current position.
func (w *jsonObjectWriter) Embed(raw []byte) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	fields := bytes.TrimSpace(raw)
	if len(fields) < 2 || fields[0] != '{' || fields[len(fields)-1] != '}' {
		w.err = fmt.Errorf("cannot embed %q: not a JSON object", raw)
		return w
	}
	fields = bytes.TrimSpace(fields[1 : len(fields)-1])
	if len(fields) > 0 {
		w.Write(fields)
		w.WriteByte(',')
	}
	return w
}

// EmbedFrom marshals v, which must encode as an object, and embeds its fields.
func (w *jsonObjectWriter) EmbedFrom(v any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	raw, err := json.Marshal(v)
	if err != nil {
		w.err = fmt.Errorf("cannot embed %T: %w", v, err)
		return w
	}
	return w.Embed(raw)
}

// Append writes the field key with the JSON encoding of value.
func (w *jsonObjectWriter) Append(key string, value any) *jsonObjectWriter {
	if w.err != nil {
		return w
	}
	k, err := json.Marshal(key)
	if err != nil {
		w.err = err
		return w
	}
	v, err := json.Marshal(value)
	if err != nil {
		w.err = fmt.Errorf("cannot write %q: %w", key, err)
		return w
	}
	w.Write(k)
	w.WriteByte(':')
	w.Write(v)
	w.WriteByte(',')
	return w
}

// Optional is like Append but skips zero values.
func (w *jsonObjectWriter) Optional(key string, value any) *jsonObjectWriter {
	if v := reflect.ValueOf(value); !v.IsValid() || v.IsZero() {
		return w
	}
	return w.Append(key, value)
}

// MarshalJSON returns the object written so far.
func (w *jsonObjectWriter) MarshalJSON() ([]byte, error) {
	if w.err != nil {
		return nil, w.err
	}
	fields := bytes.TrimSuffix(w.Bytes(), []byte(","))
	obj := make([]byte, 0, len(fields)+2)
	obj = append(obj, '{')
	obj = append(obj, fields...)
	return append(obj, '}'), nil
}
