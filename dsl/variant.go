package dsl

import (
	"fmt"
	"reflect"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
	"github.com/reoring/formskema/literal"
)

// VariantBuilder configures a free-form literal kind and its
// container-restricted forms.
type VariantBuilder struct {
	base[*VariantBuilder]
	kind  formskema.Kind
	lines int
}

// Variant accepts nil and any value whose literal form parses back to an
// equal value.
func Variant() *VariantBuilder { return newVariant(formskema.KindVariant, nil) }

// Tuple is a Variant restricted to literal.Tuple values.
func Tuple() *VariantBuilder { return newVariant(formskema.KindTuple, literal.Tuple{}) }

// List is a Variant restricted to slices other than tuples and sets.
func List() *VariantBuilder { return newVariant(formskema.KindList, []any{}) }

// Dict is a Variant restricted to maps.
func Dict() *VariantBuilder { return newVariant(formskema.KindDict, map[string]any{}) }

func newVariant(kind formskema.Kind, def any) *VariantBuilder {
	b := &VariantBuilder{kind: kind, lines: 1}
	b.meta.DefaultValue = def
	b.self = b
	return b
}

// Lines sets the editor height in text lines.
func (b *VariantBuilder) Lines(n int) *VariantBuilder { b.lines = n; return b }

func (b *VariantBuilder) Build() (formskema.ValueType, error) {
	lines := b.lines
	if lines < 1 {
		lines = 1
	}
	t := &VariantType{Meta: b.meta, kind: b.kind, lines: lines}
	if err := formskema.CheckDefault(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *VariantBuilder) MustBuild() formskema.ValueType { return mustBuild(b.Build()) }

// VariantType is the built variant, tuple, list or dict kind.
type VariantType struct {
	formskema.Meta
	kind  formskema.Kind
	lines int
}

func (t *VariantType) Kind() formskema.Kind { return t.kind }
func (t *VariantType) Lines() int           { return t.lines }

func (t *VariantType) Validate(v any) bool {
	if v == nil {
		return true
	}
	return t.outerOK(v) && literal.RoundTrips(v)
}

func (t *VariantType) outerOK(v any) bool {
	switch t.kind {
	case formskema.KindTuple:
		_, ok := v.(literal.Tuple)
		return ok
	case formskema.KindList:
		switch v.(type) {
		case literal.Tuple, literal.Set:
			return false
		}
		return reflect.ValueOf(v).Kind() == reflect.Slice
	case formskema.KindDict:
		return reflect.ValueOf(v).Kind() == reflect.Map
	}
	return true
}

func (t *VariantType) FormatText(v any) string {
	s, err := literal.Format(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return s
}

func (t *VariantType) ParseText(s string) (any, error) {
	v, err := literal.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", formskema.ErrInvalidValue, err)
	}
	if !t.Validate(v) {
		return nil, fmt.Errorf("%w: %s is not a %s", formskema.ErrInvalidValue, s, t.kind)
	}
	return v, nil
}

func (t *VariantType) JSONSchema() *js.Schema {
	s := &js.Schema{Title: t.Label, Default: t.DefaultValue, ReadOnly: t.IsReadOnly, Hidden: t.IsHidden, Kind: string(t.kind)}
	switch t.kind {
	case formskema.KindTuple, formskema.KindList:
		s.Type = "array"
	case formskema.KindDict:
		s.Type = "object"
	}
	return s
}
