package formskema

import (
	"reflect"
	"sort"
)

// Object is a record mapping field keys to values.
type Object map[string]any

// Clone returns a deep copy of o. Nested slices and maps are copied; other
// values are shared, as are containers nested deeper than maxCloneDepth, so a
// cyclic value is copied only down to that depth.
func (o Object) Clone() Object {
	if o == nil {
		return nil
	}
	out := make(Object, len(o))
	for k, v := range o {
		out[k] = cloneValue(v, 0)
	}
	return out
}

// Keys returns the object keys in ascending order.
func (o Object) Keys() []string {
	keys := make([]string, 0, len(o))
	for k := range o {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// maxCloneDepth matches the nesting limit of the literal notation, past which
// no value validates anyway.
const maxCloneDepth = 1000

func cloneValue(v any, depth int) any {
	if v == nil || depth > maxCloneDepth {
		return v
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeSlice(rv.Type(), rv.Len(), rv.Len())
		for i := 0; i < rv.Len(); i++ {
			setCloned(out.Index(i), rv.Index(i), depth+1)
		}
		return out.Interface()
	case reflect.Map:
		if rv.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(rv.Type(), rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			e := reflect.New(rv.Type().Elem()).Elem()
			setCloned(e, iter.Value(), depth+1)
			out.SetMapIndex(iter.Key(), e)
		}
		return out.Interface()
	}
	return v
}

func setCloned(dst, src reflect.Value, depth int) {
	if src.Kind() == reflect.Interface && src.IsNil() {
		return
	}
	c := reflect.ValueOf(cloneValue(src.Interface(), depth))
	if c.IsValid() && c.Type().AssignableTo(dst.Type()) {
		dst.Set(c)
		return
	}
	dst.Set(src)
}

// MissingKeys returns the schema keys absent from obj, in schema order.
func MissingKeys(s *Schema, obj Object) []string {
	var out []string
	for _, k := range s.keys {
		if _, ok := obj[k]; !ok {
			out = append(out, k)
		}
	}
	return out
}

// UnknownKeys returns the keys of obj that s does not declare, in ascending
// order.
func UnknownKeys(s *Schema, obj Object) []string {
	var out []string
	for k := range obj {
		if !s.Has(k) {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}

// FillMissing sets every missing schema key to its default. When copy is true
// the input is left untouched and a new object is returned; otherwise obj is
// modified in place and returned.
func FillMissing(s *Schema, obj Object, copy bool) Object {
	out := target(obj, copy)
	for _, k := range s.keys {
		if _, ok := out[k]; !ok {
			out[k] = cloneValue(s.types[k].Default(), 0)
		}
	}
	return out
}

// RemoveUnknown deletes every key s does not declare. The copy flag behaves as
// in FillMissing.
func RemoveUnknown(s *Schema, obj Object, copy bool) Object {
	out := target(obj, copy)
	for k := range out {
		if !s.Has(k) {
			delete(out, k)
		}
	}
	return out
}

func target(obj Object, copy bool) Object {
	if copy || obj == nil {
		out := obj.Clone()
		if out == nil {
			out = Object{}
		}
		return out
	}
	return obj
}
