package jsonio

import (
	"io"
	"math"
	"reflect"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/literal"
)

// EncodeObjects writes objs as a JSON array. Values of variant, tuple, list
// and dict fields that plain JSON would change (tuples, sets, non-string
// keys, integral floats) are written as literal text, as are strings held by
// variant fields, so that DecodeObjects restores them exactly.
func EncodeObjects(w io.Writer, s *formskema.Schema, objs []formskema.Object) error {
	out := make([]formskema.Object, len(objs))
	for i, o := range objs {
		out[i] = textFields(s, o)
	}
	return Encode(w, out)
}

// EncodeObject is EncodeObjects for a single object.
func EncodeObject(w io.Writer, s *formskema.Schema, obj formskema.Object) error {
	return Encode(w, textFields(s, obj))
}

// DecodeObjectsFor reads objects like DecodeObjects and then restores the
// variant-family fields written as literal text. A tuple field given as a
// JSON array is read as a tuple.
func DecodeObjectsFor(r io.Reader, s *formskema.Schema) ([]formskema.Object, error) {
	objs, err := DecodeObjects(r)
	if err != nil {
		return nil, err
	}
	for _, o := range objs {
		restoreFields(s, o)
	}
	return objs, nil
}

func variantFamily(k formskema.Kind) bool {
	switch k {
	case formskema.KindVariant, formskema.KindTuple, formskema.KindList, formskema.KindDict:
		return true
	}
	return false
}

func textFields(s *formskema.Schema, obj formskema.Object) formskema.Object {
	out := obj.Clone()
	for _, k := range s.Keys() {
		v, ok := out[k]
		if !ok {
			continue
		}
		t, _ := s.Type(k)
		if !variantFamily(t.Kind()) {
			continue
		}
		if _, isString := v.(string); !isString && plainJSON(v, 0) {
			continue
		}
		if text, err := literal.Format(v); err == nil {
			out[k] = text
		}
	}
	return out
}

func restoreFields(s *formskema.Schema, obj formskema.Object) {
	for _, k := range s.Keys() {
		v, ok := obj[k]
		if !ok {
			continue
		}
		t, _ := s.Type(k)
		if !variantFamily(t.Kind()) {
			continue
		}
		switch tv := v.(type) {
		case string:
			tc, ok := t.(formskema.TextCodec)
			if !ok {
				continue
			}
			// unparsable text stays a plain string
			if p, err := tc.ParseText(tv); err == nil {
				obj[k] = p
			}
		case []any:
			if t.Kind() == formskema.KindTuple {
				obj[k] = literal.Tuple(tv)
			}
		}
	}
}

// plainJSON reports whether v survives an encode and decode unchanged.
func plainJSON(v any, depth int) bool {
	if depth > 64 {
		return false
	}
	switch t := v.(type) {
	case nil, bool, string:
		return true
	case literal.Tuple, literal.Set:
		return false
	case float32:
		return !isIntegral(float64(t))
	case float64:
		return !isIntegral(t)
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return rv.Uint() <= math.MaxInt64
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if !plainJSON(rv.Index(i).Interface(), depth+1) {
				return false
			}
		}
		return true
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String && rv.Type().Key().Kind() != reflect.Interface {
			return false
		}
		iter := rv.MapRange()
		for iter.Next() {
			if _, ok := iter.Key().Interface().(string); !ok {
				return false
			}
			if !plainJSON(iter.Value().Interface(), depth+1) {
				return false
			}
		}
		return true
	}
	return false
}

func isIntegral(f float64) bool {
	return !math.IsInf(f, 0) && f == math.Trunc(f)
}
