package formskema

import (
	js "github.com/reoring/formskema/jsonschema"
)

// Kind names a family of ValueTypes. It is used in diagnostics, in the YAML
// schema loader, and by presentation collaborators to pick an editor.
type Kind string

const (
	KindBool      Kind = "bool"
	KindInt       Kind = "int"
	KindFloat     Kind = "float"
	KindString    Kind = "string"
	KindChoice    Kind = "choice"
	KindColor     Kind = "color"
	KindDateTime  Kind = "datetime"
	KindDate      Kind = "date"
	KindTime      Kind = "time"
	KindPath      Kind = "path"
	KindFile      Kind = "file"
	KindDirectory Kind = "directory"
	KindVariant   Kind = "variant"
	KindTuple     Kind = "tuple"
	KindList      Kind = "list"
	KindDict      Kind = "dict"
)

// ValueType describes the admissible values of one field together with its
// default and presentation attributes. Implementations are immutable once
// built and may be shared by any number of schemas.
//
// Validate must be total and free of side effects: it never panics and
// returns the same answer for the same input. Default must satisfy Validate.
type ValueType interface {
	Kind() Kind
	Default() any
	DisplayName() string
	ReadOnly() bool
	Hidden() bool
	Validate(v any) bool
}

// Normalizer is implemented by ValueTypes that have a canonical stored form,
// such as a choice index that is stored as the choice string.
// Normalize is only called with values that Validate accepts.
type Normalizer interface {
	Normalize(v any) any
}

// TextCodec is implemented by ValueTypes that text-driven editors can edit.
type TextCodec interface {
	FormatText(v any) string
	ParseText(s string) (any, error)
}

// JSONSchemaer is implemented by ValueTypes that project to JSON Schema.
type JSONSchemaer interface {
	JSONSchema() *js.Schema
}

// Meta holds the attributes common to every kind. Embedding Meta in a struct
// provides the ValueType accessor methods other than Kind and Validate.
type Meta struct {
	DefaultValue any
	Label        string
	IsReadOnly   bool
	IsHidden     bool
}

func (m Meta) Default() any        { return m.DefaultValue }
func (m Meta) DisplayName() string { return m.Label }
func (m Meta) ReadOnly() bool      { return m.IsReadOnly }
func (m Meta) Hidden() bool        { return m.IsHidden }

// CheckDefault verifies that t accepts its own default.
func CheckDefault(t ValueType) error {
	if t == nil {
		return &InvalidDefaultError{Reason: "nil value type"}
	}
	if !t.Validate(t.Default()) {
		return &InvalidDefaultError{Kind: t.Kind(), Value: t.Default()}
	}
	return nil
}

// funcType is a ValueType backed by a predicate.
type funcType struct {
	Meta
	kind Kind
	fn   func(any) bool
}

func (f *funcType) Kind() Kind { return f.kind }

func (f *funcType) Validate(v any) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return f.fn(v)
}

// NewValueType builds an extension kind from a predicate. A panicking
// predicate counts as rejection. It fails with *InvalidDefaultError when the
// predicate rejects meta.DefaultValue.
func NewValueType(kind Kind, meta Meta, validate func(any) bool) (ValueType, error) {
	if validate == nil {
		validate = func(any) bool { return true }
	}
	t := &funcType{Meta: meta, kind: kind, fn: validate}
	if err := CheckDefault(t); err != nil {
		return nil, err
	}
	return t, nil
}

// TypeJSONSchema returns the JSON Schema projection of t. Types that do not
// implement JSONSchemaer project to an unconstrained schema carrying the
// common attributes.
func TypeJSONSchema(t ValueType) *js.Schema {
	if p, ok := t.(JSONSchemaer); ok {
		if s := p.JSONSchema(); s != nil {
			return s
		}
	}
	return &js.Schema{
		Title:    t.DisplayName(),
		Default:  t.Default(),
		ReadOnly: t.ReadOnly(),
		Hidden:   t.Hidden(),
		Kind:     string(t.Kind()),
	}
}
