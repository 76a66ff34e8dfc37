package formskema_test

import (
	"errors"
	"strings"
	"testing"

	formskema "github.com/reoring/formskema"
)

func evenType(t *testing.T, def any) formskema.ValueType {
	t.Helper()
	vt, err := formskema.NewValueType("even", formskema.Meta{DefaultValue: def, Label: "Even"}, func(v any) bool {
		n, ok := v.(int)
		return ok && n%2 == 0
	})
	if err != nil {
		t.Fatalf("new value type: %v", err)
	}
	return vt
}

func TestNewValueType_Extension(t *testing.T) {
	vt := evenType(t, 2)
	if vt.Kind() != "even" || vt.DisplayName() != "Even" || vt.ReadOnly() || vt.Hidden() {
		t.Fatalf("unexpected attributes")
	}
	if !vt.Validate(4) || vt.Validate(3) || vt.Validate("4") {
		t.Fatalf("unexpected validation")
	}
	_, err := formskema.NewValueType("even", formskema.Meta{DefaultValue: 1}, func(v any) bool { return v.(int)%2 == 0 })
	if !errors.Is(err, formskema.ErrInvalidDefault) {
		t.Fatalf("expected ErrInvalidDefault, got %v", err)
	}
	// a panicking predicate rejects instead of crashing
	vt, err = formskema.NewValueType("even", formskema.Meta{DefaultValue: 0}, func(v any) bool { return v.(int)%2 == 0 })
	if err != nil || vt.Validate("x") {
		t.Fatalf("panicking predicate must reject, err=%v", err)
	}
}

func TestNewSchema_Errors(t *testing.T) {
	even := evenType(t, 0)
	_, err := formskema.NewSchema(
		formskema.Field{Key: "a", Type: even},
		formskema.Field{Key: "a", Type: even},
		formskema.Field{Key: "", Type: even},
		formskema.Field{Key: "n", Type: nil},
	)
	iss, ok := formskema.AsIssues(err)
	if !ok || len(iss) != 3 {
		t.Fatalf("expected three issues, got %v", err)
	}
	if iss[0].Code != formskema.CodeDuplicateKey || iss[0].Path != "/a" {
		t.Fatalf("unexpected first issue %+v", iss[0])
	}
	if !strings.Contains(err.Error(), "duplicate_key at /a") {
		t.Fatalf("unexpected summary %q", err.Error())
	}
}

func TestSchema_Accessors(t *testing.T) {
	even := evenType(t, 0)
	s := formskema.MustSchema(formskema.Field{Key: "b", Type: even}, formskema.Field{Key: "a/x", Type: even})
	keys := s.Keys()
	keys[0] = "mutated"
	if s.Keys()[0] != "b" {
		t.Fatalf("Keys must return a copy")
	}
	if _, ok := s.Type("a/x"); !ok || s.Has("zz") || s.Len() != 2 {
		t.Fatalf("unexpected accessors")
	}
	if f := s.Fields(); f[1].Key != "a/x" || f[1].Type != even {
		t.Fatalf("unexpected fields %v", f)
	}
	js := s.JSONSchema()
	if js.Properties["b"].Kind != "even" || js.Properties["b"].Default != 0 {
		t.Fatalf("fallback projection should carry kind and default: %+v", js.Properties["b"])
	}
	r := formskema.ValidateObject(s, formskema.Object{"b": 0, "a/x": 3}, formskema.ValidateOpt{})
	if iss := r.Issues(); len(iss) != 1 || iss[0].Path != "/a~1x" {
		t.Fatalf("expected escaped pointer, got %+v", iss)
	}
}

func TestIssues_IsAndSummary(t *testing.T) {
	var iss formskema.Issues
	iss = formskema.AppendIssues(iss,
		formskema.IssueAt("a", formskema.CodeRequired, "m", nil),
		formskema.IssueAt("b", formskema.CodeRequired, "m", nil),
		formskema.IssueAt("c", formskema.CodeRequired, "m", nil),
		formskema.IssueAt("d", formskema.CodeOutOfRange, "m", nil),
	)
	if !errors.Is(iss, formskema.ErrMissingKeys) || !errors.Is(iss, formskema.ErrOutOfRange) || errors.Is(iss, formskema.ErrUnknownKeys) {
		t.Fatalf("unexpected Is mapping")
	}
	if got := iss.Error(); got != "required at /a; required at /b; required at /c; ... (total 4)" {
		t.Fatalf("unexpected summary %q", got)
	}
	oor := &formskema.OutOfRangeError{Op: "remove", Index: 3, Len: 2}
	if !errors.Is(oor, formskema.ErrOutOfRange) || oor.Error() != "formskema: remove: index 3 out of range (len 2)" {
		t.Fatalf("unexpected OutOfRangeError %v", oor)
	}
}
