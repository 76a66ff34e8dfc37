package literal

import (
	"math"
	"reflect"
)

// Equal reports whether x and y denote the same literal value. Integers and
// floats compare numerically across Go types, strings compare across named
// string types, lists compare element-wise regardless of their Go slice type,
// sets compare without regard to order, and maps compare by key equality.
// Tuples only equal tuples and sets only equal sets. Other values fall back to
// reflect.DeepEqual. Values nested deeper than the format limit never compare
// equal.
func Equal(x, y any) bool { return equal(x, y, 0) }

func equal(x, y any, depth int) bool {
	if depth > maxDepth {
		return false
	}
	if x == nil || y == nil {
		return isNil(x) && isNil(y)
	}
	switch xt := x.(type) {
	case Tuple:
		yt, ok := y.(Tuple)
		return ok && equalSeq([]any(xt), []any(yt), depth+1)
	case Set:
		yt, ok := y.(Set)
		return ok && equalSet(xt, yt, depth+1)
	}
	switch y.(type) {
	case Tuple, Set:
		return false
	}

	xv, yv := reflect.ValueOf(x), reflect.ValueOf(y)
	xk, yk := kindOf(xv), kindOf(yv)
	if xk != yk {
		return false
	}
	switch xk {
	case kindBool:
		return xv.Bool() == yv.Bool()
	case kindNumber:
		return equalNumber(xv, yv)
	case kindString:
		return xv.String() == yv.String()
	case kindList:
		if xv.Len() != yv.Len() {
			return false
		}
		for i := 0; i < xv.Len(); i++ {
			if !equal(xv.Index(i).Interface(), yv.Index(i).Interface(), depth+1) {
				return false
			}
		}
		return true
	case kindMap:
		return equalMap(xv, yv, depth+1)
	}
	return reflect.DeepEqual(x, y)
}

// RoundTrips reports whether v is admissible as a literal: it can be
// formatted, the text parses back, and the parsed value equals v.
func RoundTrips(v any) bool {
	s, err := Format(v)
	if err != nil {
		return false
	}
	p, err := Parse(s)
	if err != nil {
		return false
	}
	return Equal(v, p)
}

type valueKind int

const (
	kindOther valueKind = iota
	kindBool
	kindNumber
	kindString
	kindList
	kindMap
)

func kindOf(v reflect.Value) valueKind {
	switch v.Kind() {
	case reflect.Bool:
		return kindBool
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return kindNumber
	case reflect.String:
		return kindString
	case reflect.Slice, reflect.Array:
		return kindList
	case reflect.Map:
		return kindMap
	}
	return kindOther
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer:
		return rv.IsNil()
	}
	return false
}

func equalNumber(x, y reflect.Value) bool {
	switch {
	case isFloatKind(x.Kind()) || isFloatKind(y.Kind()):
		xf, yf := toFloat(x), toFloat(y)
		if math.IsNaN(xf) || math.IsNaN(yf) {
			return false
		}
		return xf == yf
	case isUintKind(x.Kind()) && isUintKind(y.Kind()):
		return x.Uint() == y.Uint()
	case isUintKind(x.Kind()):
		return y.Int() >= 0 && x.Uint() == uint64(y.Int())
	case isUintKind(y.Kind()):
		return x.Int() >= 0 && uint64(x.Int()) == y.Uint()
	}
	return x.Int() == y.Int()
}

func isFloatKind(k reflect.Kind) bool { return k == reflect.Float32 || k == reflect.Float64 }

func isUintKind(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func toFloat(v reflect.Value) float64 {
	switch {
	case isFloatKind(v.Kind()):
		return v.Float()
	case isUintKind(v.Kind()):
		return float64(v.Uint())
	}
	return float64(v.Int())
}

func equalSeq(x, y []any, depth int) bool {
	if len(x) != len(y) {
		return false
	}
	for i := range x {
		if !equal(x[i], y[i], depth) {
			return false
		}
	}
	return true
}

func equalSet(x, y Set, depth int) bool {
	for _, e := range x {
		if !containsEqual(y, e, depth) {
			return false
		}
	}
	for _, e := range y {
		if !containsEqual(x, e, depth) {
			return false
		}
	}
	return true
}

func containsEqual(s []any, v any, depth int) bool {
	for _, e := range s {
		if equal(e, v, depth) {
			return true
		}
	}
	return false
}

func equalMap(x, y reflect.Value, depth int) bool {
	if x.Len() != y.Len() {
		return false
	}
	iter := x.MapRange()
	for iter.Next() {
		yval, ok := lookupEqual(y, iter.Key().Interface(), depth)
		if !ok || !equal(iter.Value().Interface(), yval, depth) {
			return false
		}
	}
	return true
}

// lookupEqual finds the value stored in m under a key equal to k. It tries a
// direct lookup first and falls back to a scan for keys of a different Go type.
func lookupEqual(m reflect.Value, k any, depth int) (any, bool) {
	kv := reflect.ValueOf(k)
	if k != nil && kv.Type().AssignableTo(m.Type().Key()) {
		if v := m.MapIndex(kv); v.IsValid() {
			return v.Interface(), true
		}
	}
	iter := m.MapRange()
	for iter.Next() {
		if equal(iter.Key().Interface(), k, depth) {
			return iter.Value().Interface(), true
		}
	}
	return nil, false
}
