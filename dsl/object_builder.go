package dsl

import (
	"fmt"

	formskema "github.com/reoring/formskema"
)

type objectBuilder struct {
	fields []formskema.Field
	errs   []error
}

// Object creates a schema builder. Fields keep their declaration order.
func Object() *objectBuilder { return &objectBuilder{} }

// Field appends a field with a built ValueType.
func (b *objectBuilder) Field(key string, t formskema.ValueType) *objectBuilder {
	b.fields = append(b.fields, formskema.Field{Key: key, Type: t})
	return b
}

// FieldOf appends a field built from a kind builder; a builder error is
// reported by Build.
func (b *objectBuilder) FieldOf(key string, tb Builder) *objectBuilder {
	t, err := tb.Build()
	if err != nil {
		b.errs = append(b.errs, fmt.Errorf("dsl: field %q: %w", key, err))
		return b
	}
	return b.Field(key, t)
}

// Build creates the schema.
func (b *objectBuilder) Build() (*formskema.Schema, error) {
	if len(b.errs) > 0 {
		return nil, b.errs[0]
	}
	return formskema.NewSchema(b.fields...)
}

// MustBuild is like Build but panics on error.
func (b *objectBuilder) MustBuild() *formskema.Schema {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}
