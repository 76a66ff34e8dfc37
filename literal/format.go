package literal

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Tuple is an ordered, fixed-length sequence. It is formatted as (a, b) and
// kept distinct from lists so that values round-trip to the same outer kind.
type Tuple []any

// Set is an unordered collection of hashable values, formatted as {a, b}.
// The empty set is formatted as set().
type Set []any

// ErrUnsupported is returned by Format for values that have no literal form.
var ErrUnsupported = errors.New("literal: unsupported value")

// Format renders v in its canonical literal form. Maps and sets are rendered
// with their entries sorted by the formatted key so that the output does not
// depend on map iteration order.
func Format(v any) (string, error) {
	return formatDepth(v, 0)
}

func formatDepth(v any, depth int) (string, error) {
	b := &strings.Builder{}
	if err := writeValue(b, v, depth); err != nil {
		return "", err
	}
	return b.String(), nil
}

// MustFormat is like Format but panics on error.
func MustFormat(v any) string {
	s, err := Format(v)
	if err != nil {
		panic(err)
	}
	return s
}

func writeValue(b *strings.Builder, v any, depth int) error {
	if depth > maxDepth {
		return fmt.Errorf("%w: nesting deeper than %d", ErrUnsupported, maxDepth)
	}
	switch t := v.(type) {
	case nil:
		b.WriteString("None")
		return nil
	case bool:
		if t {
			b.WriteString("True")
		} else {
			b.WriteString("False")
		}
		return nil
	case string:
		b.WriteString(Quote(t))
		return nil
	case float64:
		b.WriteString(formatFloat(t))
		return nil
	case float32:
		b.WriteString(formatFloat(float64(t)))
		return nil
	case Tuple:
		return writeTuple(b, t, depth)
	case Set:
		return writeSet(b, t, depth)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		b.WriteString(strconv.FormatInt(rv.Int(), 10))
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		b.WriteString(strconv.FormatUint(rv.Uint(), 10))
		return nil
	case reflect.Float32, reflect.Float64:
		b.WriteString(formatFloat(rv.Float()))
		return nil
	case reflect.Bool:
		return writeValue(b, rv.Bool(), depth)
	case reflect.String:
		b.WriteString(Quote(rv.String()))
		return nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			b.WriteString("[]")
			return nil
		}
		b.WriteByte('[')
		for i := 0; i < rv.Len(); i++ {
			if i > 0 {
				b.WriteString(", ")
			}
			if err := writeValue(b, rv.Index(i).Interface(), depth+1); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	case reflect.Map:
		return writeMap(b, rv, depth)
	case reflect.Interface:
		if rv.IsNil() {
			b.WriteString("None")
			return nil
		}
		return writeValue(b, rv.Elem().Interface(), depth)
	}
	return fmt.Errorf("%w: %T", ErrUnsupported, v)
}

func writeTuple(b *strings.Builder, t Tuple, depth int) error {
	b.WriteByte('(')
	for i, e := range t {
		if i > 0 {
			b.WriteString(", ")
		}
		if err := writeValue(b, e, depth+1); err != nil {
			return err
		}
	}
	if len(t) == 1 {
		b.WriteByte(',')
	}
	b.WriteByte(')')
	return nil
}

func writeSet(b *strings.Builder, s Set, depth int) error {
	if len(s) == 0 {
		b.WriteString("set()")
		return nil
	}
	elems := make([]string, 0, len(s))
	for _, e := range s {
		if !hashable(e) {
			return fmt.Errorf("%w: unhashable set element %T", ErrUnsupported, e)
		}
		fe, err := formatDepth(e, depth+1)
		if err != nil {
			return err
		}
		elems = append(elems, fe)
	}
	sort.Strings(elems)
	b.WriteByte('{')
	b.WriteString(strings.Join(elems, ", "))
	b.WriteByte('}')
	return nil
}

func writeMap(b *strings.Builder, rv reflect.Value, depth int) error {
	type entry struct{ k, v string }
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k := iter.Key().Interface()
		if !hashable(k) {
			return fmt.Errorf("%w: unhashable dict key %T", ErrUnsupported, k)
		}
		fk, err := formatDepth(k, depth+1)
		if err != nil {
			return err
		}
		fv, err := formatDepth(iter.Value().Interface(), depth+1)
		if err != nil {
			return err
		}
		entries = append(entries, entry{fk, fv})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].k < entries[j].k })
	b.WriteByte('{')
	for i, e := range entries {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(e.k)
		b.WriteString(": ")
		b.WriteString(e.v)
	}
	b.WriteByte('}')
	return nil
}

// hashable reports whether v may be used as a dict key or set element.
func hashable(v any) bool {
	switch t := v.(type) {
	case nil, bool, string:
		return true
	case Tuple:
		for _, e := range t {
			if !hashable(e) {
				return false
			}
		}
		return true
	case Set:
		return false
	}
	switch reflect.ValueOf(v).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64, reflect.Bool, reflect.String:
		return true
	}
	return false
}

// formatFloat uses positional notation for 1e-4 <= |f| < 1e16 and exponent
// notation otherwise. Integral values always carry a fractional part so that
// they parse back as floats. NaN and infinities render as nan/inf, which are
// not literals.
func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	abs := math.Abs(f)
	if abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s := strconv.FormatFloat(f, 'f', -1, 64)
		if !strings.ContainsRune(s, '.') {
			s += ".0"
		}
		return s
	}
	return strconv.FormatFloat(f, 'e', -1, 64)
}

// Quote returns s as a quoted string literal. Single quotes are preferred;
// double quotes are used when s contains a single quote but no double quote.
func Quote(s string) string {
	q := byte('\'')
	if strings.ContainsRune(s, '\'') && !strings.ContainsRune(s, '"') {
		q = '"'
	}
	b := &strings.Builder{}
	b.Grow(len(s) + 2)
	b.WriteByte(q)
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			fmt.Fprintf(b, `\x%02x`, s[i])
			i++
			continue
		}
		i += size
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == rune(q):
			b.WriteByte('\\')
			b.WriteByte(q)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case r < 0x20 || r == 0x7f:
			fmt.Fprintf(b, `\x%02x`, r)
		case !strconv.IsPrint(r):
			if r > 0xffff {
				fmt.Fprintf(b, `\U%08x`, r)
			} else {
				fmt.Fprintf(b, `\u%04x`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte(q)
	return b.String()
}
