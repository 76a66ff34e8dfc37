package formskema

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/reoring/formskema/literal"
)

// Issue codes (exported consts for IDE completion and type safety by convention)
const (
	CodeRequired       = "required"
	CodeUnknownKey     = "unknown_key"
	CodeDuplicateKey   = "duplicate_key"
	CodeInvalidValue   = "invalid_value"
	CodeInvalidDefault = "invalid_default"
	CodeInvalidType    = "invalid_type"
	CodeOutOfRange     = "out_of_range"
)

// Sentinel errors. The typed errors below match them with errors.Is.
var (
	ErrInvalidDefault = errors.New("formskema: invalid default")
	ErrMissingKeys    = errors.New("formskema: missing keys")
	ErrUnknownKeys    = errors.New("formskema: unknown keys")
	ErrInvalidValue   = errors.New("formskema: invalid value")
	ErrOutOfRange     = errors.New("formskema: index out of range")
)

// InvalidDefaultError reports a ValueType whose default does not validate.
type InvalidDefaultError struct {
	Kind   Kind
	Value  any
	Reason string // Optional.
}

func (e *InvalidDefaultError) Error() string {
	msg := fmt.Sprintf("formskema: invalid default %s for %s", describe(e.Value), e.Kind)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *InvalidDefaultError) Is(target error) bool { return target == ErrInvalidDefault }

// MissingKeysError lists schema keys absent from an object, in schema order.
type MissingKeysError struct{ Keys []string }

func (e *MissingKeysError) Error() string {
	return "formskema: missing keys: " + strings.Join(e.Keys, ", ")
}

func (e *MissingKeysError) Is(target error) bool { return target == ErrMissingKeys }

// UnknownKeysError lists object keys that the schema does not declare.
type UnknownKeysError struct{ Keys []string }

func (e *UnknownKeysError) Error() string {
	return "formskema: unknown keys: " + strings.Join(e.Keys, ", ")
}

func (e *UnknownKeysError) Is(target error) bool { return target == ErrUnknownKeys }

// InvalidValueError reports the first field whose value failed its kind.
type InvalidValueError struct {
	Key   string
	Value any
	Kind  Kind
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("formskema: invalid value %s for %q (%s)", describe(e.Value), e.Key, e.Kind)
}

func (e *InvalidValueError) Is(target error) bool { return target == ErrInvalidValue }

// OutOfRangeError reports an index outside the valid range of an operation.
// Insert accepts [0, Len]; every other operation accepts [0, Len).
type OutOfRangeError struct {
	Op    string
	Index int
	Len   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("formskema: %s: index %d out of range (len %d)", e.Op, e.Index, e.Len)
}

func (e *OutOfRangeError) Is(target error) bool { return target == ErrOutOfRange }

// describe renders v for error messages. Containers are written in literal
// notation; ones that cannot be (cyclic or too deep) are named by type only.
func describe(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		if s, err := literal.Format(v); err == nil {
			return s
		}
		return fmt.Sprintf("%T value", v)
	}
	return fmt.Sprintf("%#v", v)
}

// Issue represents a single diagnostic entry for presentation.
type Issue struct {
	Path    string // JSON Pointer of the field (for example: /name).
	Code    string // One of the codes listed above.
	Message string
	Hint    string // Optional: remediation hints, suggested keys, etc.
	Cause   error  // Optional: underlying error.
	// Params carries structured parameters (e.g., {"kind":"int", "value":42})
	// for i18n and observability.
	Params map[string]any
}

// Issues is a collection of diagnostics that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := n
	if lim > maxShown {
		lim = maxShown
	}
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		// e.g. unknown_key at /nmae
		fmt.Fprintf(b, "%s at %s", it.Code, it.Path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Is maps issue codes onto the package sentinels so that callers can test an
// Issues error with errors.Is.
func (iss Issues) Is(target error) bool {
	for _, it := range iss {
		switch {
		case it.Code == CodeRequired && target == ErrMissingKeys,
			it.Code == CodeUnknownKey && target == ErrUnknownKeys,
			it.Code == CodeInvalidValue && target == ErrInvalidValue,
			it.Code == CodeInvalidDefault && target == ErrInvalidDefault,
			it.Code == CodeOutOfRange && target == ErrOutOfRange:
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}
