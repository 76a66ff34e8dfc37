package dsl_test

import (
	"errors"
	"math"
	"testing"
	"time"

	formskema "github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/literal"
)

func TestBool_TextsAndNil(t *testing.T) {
	b := g.Bool().TrueText("yes").FalseText("no").MustBuild()
	for _, v := range []any{true, false, "yes", "no"} {
		if !b.Validate(v) {
			t.Fatalf("expected %#v to validate", v)
		}
	}
	for _, v := range []any{nil, 1, "true", ""} {
		if b.Validate(v) {
			t.Fatalf("expected %#v to be rejected", v)
		}
	}
	// empty texts disable the string forms
	plain := g.Bool().MustBuild()
	if plain.Validate("") {
		t.Fatalf("empty text must not be accepted")
	}
	if got := b.(formskema.Normalizer).Normalize("yes"); got != true {
		t.Fatalf("normalize yes = %#v", got)
	}
	if got := b.(formskema.TextCodec).FormatText(false); got != "no" {
		t.Fatalf("format false = %q", got)
	}
}

func TestInt_BoundsAndTypes(t *testing.T) {
	it := g.Int().Min(0).Max(10).MustBuild()
	for _, v := range []any{0, 10, int8(5), uint16(3), int64(7)} {
		if !it.Validate(v) {
			t.Fatalf("expected %#v to validate", v)
		}
	}
	for _, v := range []any{-1, 11, 1.0, "1", nil, true, uint64(math.MaxUint64)} {
		if it.Validate(v) {
			t.Fatalf("expected %#v to be rejected", v)
		}
	}
	if !g.Int().MustBuild().Validate(uint64(math.MaxUint64)) {
		t.Fatalf("unbounded int should accept large uints")
	}
	if d := g.Int().Min(3).MustBuild().Default(); d != int64(3) {
		t.Fatalf("implicit default should be clamped to min, got %#v", d)
	}
	if _, err := g.Int().Min(5).Max(1).Build(); !errors.Is(err, g.ErrInvalidBounds) {
		t.Fatalf("expected ErrInvalidBounds, got %v", err)
	}
	v, err := it.(formskema.TextCodec).ParseText(" 4 ")
	if err != nil || v != int64(4) {
		t.Fatalf("parse text = %#v, %v", v, err)
	}
	if _, err := it.(formskema.TextCodec).ParseText("42"); !errors.Is(err, formskema.ErrInvalidValue) {
		t.Fatalf("expected ErrInvalidValue, got %v", err)
	}
}

func TestFloat_FiniteAndIntegers(t *testing.T) {
	f := g.Float().Min(-1).Max(1).Decimals(2).MustBuild()
	for _, v := range []any{0.5, float32(-1), 1, int64(0)} {
		if !f.Validate(v) {
			t.Fatalf("expected %#v to validate", v)
		}
	}
	for _, v := range []any{math.NaN(), math.Inf(1), 1.01, "0.5", nil} {
		if f.Validate(v) {
			t.Fatalf("expected %#v to be rejected", v)
		}
	}
	if got := f.(formskema.TextCodec).FormatText(0.5); got != "0.50" {
		t.Fatalf("format = %q", got)
	}
}

func TestString_PatternAndValidator(t *testing.T) {
	s := g.String().Pattern(`[a-z]+`).Validator(func(s string) bool { return s != "bad" }).Default("ok").MustBuild()
	if !s.Validate("abc") || s.Validate("abc1") || s.Validate("bad") || s.Validate(1) {
		t.Fatalf("unexpected string validation")
	}
	panicky := g.String().Validator(func(s string) bool {
		if s == "boom" {
			panic("boom")
		}
		return true
	}).MustBuild()
	if panicky.Validate("boom") {
		t.Fatalf("panicking validator must reject")
	}
	if _, err := g.String().Pattern("(").Build(); err == nil {
		t.Fatalf("expected bad pattern error")
	}
}

func TestChoice_IndexDefaultMaterialized(t *testing.T) {
	c := g.Choice("x", "y").Default(1).MustBuild()
	if c.Default() != "y" {
		t.Fatalf("expected index default to materialize, got %#v", c.Default())
	}
	for _, v := range []any{"x", "y", 0, 1, int8(1)} {
		if !c.Validate(v) {
			t.Fatalf("expected %#v to validate", v)
		}
	}
	for _, v := range []any{"z", 2, -1, nil, 0.0} {
		if c.Validate(v) {
			t.Fatalf("expected %#v to be rejected", v)
		}
	}
	if _, err := g.Choice().Build(); !errors.Is(err, g.ErrNoChoices) {
		t.Fatalf("expected ErrNoChoices, got %v", err)
	}
	if g.Choice("a", "b").MustBuild().Default() != "a" {
		t.Fatalf("first choice should be the implicit default")
	}
}

func TestInvalidDefault(t *testing.T) {
	cases := []g.Builder{
		g.Int().Min(0).Default(-1),
		g.Bool().Default("maybe"),
		g.Choice("x").Default("y"),
		g.Choice("x").Default(1),
		g.String().Default(3),
		g.Color().Default("#12"),
		g.Date().Default("yesterday"),
		g.Tuple().Default([]any{1}),
		g.Variant().Default(func() {}),
	}
	for i, b := range cases {
		_, err := b.Build()
		if !errors.Is(err, formskema.ErrInvalidDefault) {
			t.Fatalf("case %d: expected ErrInvalidDefault, got %v", i, err)
		}
		var ide *formskema.InvalidDefaultError
		if !errors.As(err, &ide) {
			t.Fatalf("case %d: expected *InvalidDefaultError, got %T", i, err)
		}
	}
}

// Every value a kind accepts is also accepted as that kind's default, and
// kept as given.
func TestDefaultRoundTrip(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		b func(any) g.Builder
		v any
	}{
		{func(v any) g.Builder { return g.Int().Min(0).Max(10).Default(v) }, 7},
		{func(v any) g.Builder { return g.Float().Default(v) }, 2.5},
		{func(v any) g.Builder { return g.Bool().TrueText("on").Default(v) }, "on"},
		{func(v any) g.Builder { return g.String().Default(v) }, "hi"},
		{func(v any) g.Builder { return g.Choice("x", "y").Default(v) }, "y"},
		{func(v any) g.Builder { return g.Color().Default(v) }, "#aabbcc"},
		{func(v any) g.Builder { return g.DateTime().Default(v) }, now},
		{func(v any) g.Builder { return g.Path().Default(v) }, "/tmp"},
		{func(v any) g.Builder { return g.Variant().Default(v) }, 1.5},
		{func(v any) g.Builder { return g.Dict().Default(v) }, map[string]any{"k": 1}},
	}
	for i, tc := range cases {
		vt, err := tc.b(tc.v).Build()
		if err != nil {
			t.Fatalf("case %d: build: %v", i, err)
		}
		if !literal.Equal(vt.Default(), tc.v) {
			t.Fatalf("case %d: default = %#v, want %#v", i, vt.Default(), tc.v)
		}
	}
}

func TestColor_Forms(t *testing.T) {
	c := g.Color().MustBuild()
	for _, v := range []any{"#fff", "#A0b1C2", "teal", "DarkOrange", []int{1, 2, 3}, []any{0, 0, 255}, literal.Tuple{255, 255, 255}} {
		if !c.Validate(v) {
			t.Fatalf("expected %#v to validate", v)
		}
	}
	for _, v := range []any{"#ff000080", []int{1, 2, 3, 4}, []int{256, 0, 0}, "#ggg", "notacolor", nil, 0xffffff} {
		if c.Validate(v) {
			t.Fatalf("expected %#v to be rejected without alpha", v)
		}
	}
	a := g.Color().Alpha().MustBuild()
	if !a.Validate("#80ff0000") || !a.Validate([]int{1, 2, 3, 4}) || !a.Validate("transparent") {
		t.Fatalf("alpha forms should validate")
	}
	n := c.(formskema.Normalizer)
	if got := n.Normalize("teal"); got != "#008080" {
		t.Fatalf("normalize teal = %#v", got)
	}
	if got := n.Normalize([]int{255, 0, 16}); got != "#ff0010" {
		t.Fatalf("normalize tuple = %#v", got)
	}
	if got := a.(formskema.Normalizer).Normalize([]int{255, 0, 0, 128}); got != "#80ff0000" {
		t.Fatalf("normalize alpha tuple = %#v", got)
	}
}

func TestTemporal_LayoutAndNormalize(t *testing.T) {
	d := g.Date().MustBuild()
	if !d.Validate("2024-02-29") || d.Validate("2023-02-29") || d.Validate("2024/01/01") || d.Validate(nil) {
		t.Fatalf("unexpected date validation")
	}
	when := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	if !d.Validate(when) {
		t.Fatalf("time.Time should validate")
	}
	if got := d.(formskema.Normalizer).Normalize(when); got != "2024-01-02" {
		t.Fatalf("normalize = %#v", got)
	}
	custom := g.DateTime().Format(time.RFC3339).MustBuild()
	if !custom.Validate("2024-01-02T03:04:05Z") || custom.Validate("2024-01-02 03:04:05") {
		t.Fatalf("custom layout not honored")
	}
	if g.Time().MustBuild().Default() != "00:00:00" {
		t.Fatalf("unexpected implicit time default")
	}
	// limits are advisory
	limited := g.Date().Minimum(when).MustBuild()
	if !limited.Validate("1999-01-01") {
		t.Fatalf("limits must not be enforced by Validate")
	}
}

func TestPath_NilAndPosix(t *testing.T) {
	p := g.File().AsPosix().Default(nil).MustBuild()
	if p.Default() != "" {
		t.Fatalf("nil default should become empty path, got %#v", p.Default())
	}
	if !p.Validate(nil) || !p.Validate(`C:\x`) || p.Validate(1) {
		t.Fatalf("unexpected path validation")
	}
	if got := p.(formskema.Normalizer).Normalize(`a\b`); got != "a/b" {
		t.Fatalf("normalize = %#v", got)
	}
	if p.(*g.PathType).Mode() != g.PathOpenFile || g.Directory().MustBuild().Kind() != formskema.KindDirectory {
		t.Fatalf("unexpected path mode or kind")
	}
}
