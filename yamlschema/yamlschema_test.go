package yamlschema_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	formskema "github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/literal"
	"github.com/reoring/formskema/yamlschema"
)

const people = `
fields:
  name:
    kind: string
    label: Name
    pattern: "[A-Za-z ]+"
    default: Ann
  age:
    kind: int
    min: 0
    max: 150
    suffix: " y"
  score:
    kind: float
    decimals: 2
    default: 1
  active:
    kind: bool
    true_text: "yes"
    false_text: "no"
  team:
    kind: choice
    choices: [red, green, blue]
    default: green
  tint:
    kind: color
    default: "#ff8800"
  born:
    kind: date
    min: "1900-01-01"
  home:
    kind: directory
    posix: true
  pair:
    kind: tuple
    default_text: "(1, 'a')"
  tags:
    kind: list
    default: [a, b]
  extra:
    kind: dict
    hidden: true
  id:
    kind: string
    readonly: true
`

func TestParse_OrderAndKinds(t *testing.T) {
	s, err := yamlschema.Parse([]byte(people))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	want := []string{"name", "age", "score", "active", "team", "tint", "born", "home", "pair", "tags", "extra", "id"}
	if diff := cmp.Diff(want, s.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
	kinds := map[string]formskema.Kind{
		"name": formskema.KindString, "age": formskema.KindInt, "score": formskema.KindFloat,
		"active": formskema.KindBool, "team": formskema.KindChoice, "tint": formskema.KindColor,
		"born": formskema.KindDate, "home": formskema.KindDirectory, "pair": formskema.KindTuple,
		"tags": formskema.KindList, "extra": formskema.KindDict, "id": formskema.KindString,
	}
	for k, kind := range kinds {
		typ, _ := s.Type(k)
		if typ.Kind() != kind {
			t.Fatalf("%s: expected kind %s, got %s", k, kind, typ.Kind())
		}
	}
	obj := s.DefaultObject()
	if r := formskema.ValidateObject(s, obj, formskema.ValidateOpt{}); !r.OK() {
		t.Fatalf("default object should validate: %s", r)
	}
	if !literal.Equal(obj["pair"], literal.Tuple{int64(1), "a"}) {
		t.Fatalf("tuple default mismatch %#v", obj["pair"])
	}
	if obj["team"] != "green" || obj["name"] != "Ann" {
		t.Fatalf("unexpected defaults %v", obj)
	}
	age, _ := s.Type("age")
	if age.Validate(151) {
		t.Fatalf("max should be applied")
	}
	if v, err := age.(formskema.TextCodec).ParseText("42 y"); err != nil || v != int64(42) {
		t.Fatalf("suffix should be applied, got %v %v", v, err)
	}
	extra, _ := s.Type("extra")
	id, _ := s.Type("id")
	if !extra.Hidden() || !id.ReadOnly() {
		t.Fatalf("flags not applied")
	}
	name, _ := s.Type("name")
	if name.DisplayName() != "Name" || name.Validate("x1") {
		t.Fatalf("string attributes not applied")
	}
}

func TestParse_MatchesBuilder(t *testing.T) {
	s, err := yamlschema.Load(strings.NewReader("fields:\n  a: {kind: int, default: 7}\n  b: {kind: bool}\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := g.Object().FieldOf("a", g.Int().Default(7)).FieldOf("b", g.Bool()).MustBuild()
	if !literal.Equal(map[string]any(want.DefaultObject()), map[string]any(s.DefaultObject())) {
		t.Fatalf("defaults differ: %v vs %v", want.DefaultObject(), s.DefaultObject())
	}
}

func TestParse_Errors(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		is   error
	}{
		{"no fields", "title: x\n", yamlschema.ErrNoFields},
		{"unknown kind", "fields:\n  a: {kind: blob}\n", yamlschema.ErrUnknownKind},
		{"unknown attr", "fields:\n  a: {kind: int, colour: red}\n", yamlschema.ErrUnknownAttr},
		{"bad default", "fields:\n  a: {kind: int, min: 5, default: 1}\n", formskema.ErrInvalidDefault},
		{"no choices", "fields:\n  a: {kind: choice}\n", g.ErrNoChoices},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := yamlschema.Parse([]byte(tc.doc))
			if !errors.Is(err, tc.is) {
				t.Fatalf("expected %v, got %v", tc.is, err)
			}
		})
	}

	_, err := yamlschema.Parse([]byte("fields:\n  a: {kind: int}\n  a: {kind: bool}\n"))
	var dup *yamlschema.DuplicateKeyError
	if !errors.As(err, &dup) || dup.Key != "a" || dup.Line != 3 || dup.FirstLine != 2 {
		t.Fatalf("expected duplicate key error with positions, got %v", err)
	}

	_, err = yamlschema.Parse([]byte("fields:\n  a:\n    kind: int\n    max: many\n"))
	var fe *yamlschema.FieldError
	if !errors.As(err, &fe) || fe.Field != "a" || fe.Attr != "max" || fe.Line != 4 {
		t.Fatalf("expected field error on max, got %v", err)
	}
}
