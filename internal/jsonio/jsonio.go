// Package jsonio reads and writes objects as JSON for the command line tool.
package jsonio

import (
	"errors"
	"fmt"
	"io"
	"reflect"
	"strings"
	"time"

	j "github.com/goccy/go-json"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/literal"
)

// DuplicateKeyError reports a key repeated inside one JSON object. Path is a
// JSON Pointer to the object.
type DuplicateKeyError struct {
	Key  string
	Path string
}

func (e *DuplicateKeyError) Error() string {
	path := e.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("jsonio: duplicate key %q in %s", e.Key, path)
}

// ErrNotObject is returned when a document holds something other than the
// expected object or array of objects.
var ErrNotObject = errors.New("jsonio: expected a JSON object")

// Decode reads one JSON value. Objects become map[string]any, integers int64
// and other numbers float64; duplicate keys are rejected.
func Decode(r io.Reader) (any, error) {
	dec := j.NewDecoder(r)
	dec.UseNumber()
	d := &decoder{dec: dec}
	v, err := d.value("")
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		if err == nil {
			err = errors.New("jsonio: trailing data after value")
		}
		return nil, err
	}
	return v, nil
}

// DecodeObject reads a single JSON object.
func DecodeObject(r io.Reader) (formskema.Object, error) {
	v, err := Decode(r)
	if err != nil {
		return nil, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, ErrNotObject
	}
	return formskema.Object(m), nil
}

// DecodeObjects reads a JSON array of objects. A single object is read as a
// one-element list.
func DecodeObjects(r io.Reader) ([]formskema.Object, error) {
	v, err := Decode(r)
	if err != nil {
		return nil, err
	}
	switch t := v.(type) {
	case map[string]any:
		return []formskema.Object{t}, nil
	case []any:
		out := make([]formskema.Object, len(t))
		for i, e := range t {
			m, ok := e.(map[string]any)
			if !ok {
				return nil, fmt.Errorf("%w at /%d", ErrNotObject, i)
			}
			out[i] = m
		}
		return out, nil
	}
	return nil, ErrNotObject
}

type decoder struct {
	dec *j.Decoder
}

func (d *decoder) value(path string) (any, error) {
	tok, err := d.dec.Token()
	if err != nil {
		if err == io.EOF {
			return nil, io.ErrUnexpectedEOF
		}
		return nil, err
	}
	switch v := tok.(type) {
	case j.Delim:
		switch v {
		case '{':
			return d.object(path)
		case '[':
			return d.array(path)
		}
		return nil, fmt.Errorf("jsonio: unexpected %q at %s", rune(v), path)
	case j.Number:
		if n, err := v.Int64(); err == nil {
			return n, nil
		}
		return v.Float64()
	default:
		// string, bool or nil
		return v, nil
	}
}

func (d *decoder) object(path string) (any, error) {
	m := map[string]any{}
	for d.dec.More() {
		tok, err := d.dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("jsonio: expected object key at %s", path)
		}
		if _, dup := m[key]; dup {
			return nil, &DuplicateKeyError{Key: key, Path: path}
		}
		v, err := d.value(path + "/" + escape(key))
		if err != nil {
			return nil, err
		}
		m[key] = v
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	return m, nil
}

func (d *decoder) array(path string) (any, error) {
	arr := []any{}
	for i := 0; d.dec.More(); i++ {
		v, err := d.value(fmt.Sprintf("%s/%d", path, i))
		if err != nil {
			return nil, err
		}
		arr = append(arr, v)
	}
	if _, err := d.dec.Token(); err != nil {
		return nil, err
	}
	return arr, nil
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func escape(key string) string { return pointerEscaper.Replace(key) }

// Encode writes v as indented JSON. Tuples and sets become arrays and
// non-string dict keys are written in literal notation.
func Encode(w io.Writer, v any) error {
	enc := j.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(toJSON(v))
}

func toJSON(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case formskema.Object:
		return toJSON(map[string]any(t))
	case []formskema.Object:
		out := make([]any, len(t))
		for i, o := range t {
			out[i] = toJSON(o)
		}
		return out
	case literal.Tuple:
		return toJSON([]any(t))
	case literal.Set:
		return toJSON([]any(t))
	case time.Time:
		return t
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = toJSON(rv.Index(i).Interface())
		}
		return out
	case reflect.Map:
		out := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key().Interface()
			ks, ok := k.(string)
			if !ok {
				var err error
				if ks, err = literal.Format(k); err != nil {
					ks = fmt.Sprint(k)
				}
			}
			out[ks] = toJSON(iter.Value().Interface())
		}
		return out
	}
	return v
}
