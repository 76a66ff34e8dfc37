package dsl_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	formskema "github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
)

func TestObjectBuilder_KeepsDeclarationOrder(t *testing.T) {
	s := g.Object().
		FieldOf("zeta", g.Int()).
		FieldOf("alpha", g.Bool()).
		FieldOf("mid", g.String()).
		MustBuild()
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, s.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	js := s.JSONSchema()
	if diff := cmp.Diff([]string{"zeta", "alpha", "mid"}, js.PropertyOrder); diff != "" {
		t.Fatalf("property order mismatch (-want +got):\n%s", diff)
	}
	if js.Properties["zeta"].Type != "integer" || js.AdditionalProperties != false {
		t.Fatalf("unexpected projection: %+v", js)
	}
}

func TestObjectBuilder_Errors(t *testing.T) {
	_, err := g.Object().FieldOf("a", g.Int().Min(1).Default(0)).Build()
	if !errors.Is(err, formskema.ErrInvalidDefault) {
		t.Fatalf("expected builder error to surface, got %v", err)
	}
	_, err = g.Object().FieldOf("a", g.Int()).FieldOf("a", g.Bool()).Build()
	iss, ok := formskema.AsIssues(err)
	if !ok || len(iss) != 1 || iss[0].Code != formskema.CodeDuplicateKey || iss[0].Path != "/a" {
		t.Fatalf("expected duplicate_key issue, got %v", err)
	}
}

func s1Schema() *formskema.Schema {
	return g.Object().
		FieldOf("a", g.Int().Default(0).Min(0).Max(10)).
		FieldOf("b", g.Bool().Default(true)).
		MustBuild()
}

func TestDefaultObject_Validates(t *testing.T) {
	s := s1Schema()
	obj := s.DefaultObject()
	if diff := cmp.Diff(formskema.Object{"a": 0, "b": true}, obj); diff != "" {
		t.Fatalf("default object mismatch (-want +got):\n%s", diff)
	}
	if r := formskema.ValidateObject(s, formskema.Object{"a": 0, "b": true}, formskema.ValidateOpt{}); !r.OK() {
		t.Fatalf("expected valid, got %v", r)
	}
}

func TestValidateObject_MissingBeforeUnknown(t *testing.T) {
	s := s1Schema()
	obj := formskema.Object{"a": 3, "c": "x"}
	if diff := cmp.Diff([]string{"b"}, formskema.MissingKeys(s, obj)); diff != "" {
		t.Fatalf("missing mismatch:\n%s", diff)
	}
	if diff := cmp.Diff([]string{"c"}, formskema.UnknownKeys(s, obj)); diff != "" {
		t.Fatalf("unknown mismatch:\n%s", diff)
	}
	r := formskema.ValidateObject(s, obj, formskema.ValidateOpt{})
	if r.Kind != formskema.ResultMissingKeys || !cmp.Equal(r.Keys, []string{"b"}) {
		t.Fatalf("expected MissingKeys([b]), got %v", r)
	}
	r = formskema.ValidateObject(s, obj, formskema.ValidateOpt{IgnoreMissing: true})
	if r.Kind != formskema.ResultUnknownKeys || !cmp.Equal(r.Keys, []string{"c"}) {
		t.Fatalf("expected UnknownKeys([c]), got %v", r)
	}
	r = formskema.ValidateObject(s, obj, formskema.ValidateOpt{IgnoreMissing: true, IgnoreUnknown: true})
	if !r.OK() {
		t.Fatalf("expected valid, got %v", r)
	}
}

func TestValidateObject_FirstInvalidInSchemaOrder(t *testing.T) {
	s := g.Object().
		FieldOf("a", g.Int().Min(0).Max(10).Default(0)).
		FieldOf("b", g.Choice("x", "y").Default("x")).
		MustBuild()
	r := formskema.ValidateObject(s, formskema.Object{"a": 99, "b": "z"}, formskema.ValidateOpt{})
	if r.Kind != formskema.ResultInvalidValue || r.Key != "a" || r.Value != 99 || r.Type.Kind() != formskema.KindInt {
		t.Fatalf("expected InvalidValue(a, 99, int), got %v", r)
	}
	var ive *formskema.InvalidValueError
	if !errors.As(r.Err(), &ive) || ive.Key != "a" || !errors.Is(r.Err(), formskema.ErrInvalidValue) {
		t.Fatalf("unexpected error %v", r.Err())
	}
}

// Defaults of every built-in kind form a valid object.
func TestDefaultObjectIsValid_AllKinds(t *testing.T) {
	s := g.Object().
		FieldOf("bool", g.Bool()).
		FieldOf("int", g.Int().Min(5)).
		FieldOf("float", g.Float().Max(-2)).
		FieldOf("string", g.String()).
		FieldOf("choice", g.Choice("x", "y").Default(1)).
		FieldOf("color", g.Color()).
		FieldOf("datetime", g.DateTime()).
		FieldOf("date", g.Date()).
		FieldOf("time", g.Time()).
		FieldOf("path", g.Path()).
		FieldOf("file", g.File()).
		FieldOf("dir", g.Directory()).
		FieldOf("variant", g.Variant()).
		FieldOf("tuple", g.Tuple()).
		FieldOf("list", g.List()).
		FieldOf("dict", g.Dict()).
		MustBuild()
	if r := formskema.ValidateObject(s, s.DefaultObject(), formskema.ValidateOpt{}); !r.OK() {
		t.Fatalf("expected valid default object, got %v", r)
	}
}
