package dsl

import (
	"errors"
	"math"
	"reflect"

	formskema "github.com/reoring/formskema"
)

// Builder is implemented by every kind builder.
type Builder interface {
	Build() (formskema.ValueType, error)
}

// ErrNoChoices is returned when a choice is built without options.
var ErrNoChoices = errors.New("dsl: choice requires at least one option")

// ErrInvalidBounds is returned when a numeric minimum exceeds its maximum.
var ErrInvalidBounds = errors.New("dsl: minimum exceeds maximum")

// base carries the attributes shared by all builders. B is the concrete
// builder type so that chained calls keep returning it.
type base[B any] struct {
	self       B
	meta       formskema.Meta
	hasDefault bool
}

// Default sets the default value. Build fails when the kind rejects it.
func (b *base[B]) Default(v any) B {
	b.meta.DefaultValue = v
	b.hasDefault = true
	return b.self
}

// Label sets the display name.
func (b *base[B]) Label(s string) B {
	b.meta.Label = s
	return b.self
}

// ReadOnly marks the field as not editable.
func (b *base[B]) ReadOnly() B {
	b.meta.IsReadOnly = true
	return b.self
}

// Hidden marks the field as not shown.
func (b *base[B]) Hidden() B {
	b.meta.IsHidden = true
	return b.self
}

func mustBuild[T any](t T, err error) T {
	if err != nil {
		panic(err)
	}
	return t
}

// asInt64 converts any Go integer to int64. big reports a uint value above
// math.MaxInt64, for which n is meaningless.
func asInt64(v any) (n int64, big bool, ok bool) {
	if v == nil {
		return 0, false, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), false, true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return 0, true, true
		}
		return int64(u), false, true
	}
	return 0, false, false
}

// asFloat64 converts Go floats and integers to float64.
func asFloat64(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	}
	return 0, false
}

// asString accepts string and named string types.
func asString(v any) (string, bool) {
	if s, ok := v.(string); ok {
		return s, true
	}
	if v == nil {
		return "", false
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.String {
		return rv.String(), true
	}
	return "", false
}
