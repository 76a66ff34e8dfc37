package literal_test

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/reoring/formskema/literal"
)

func TestFormat_Canonical(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, "None"},
		{true, "True"},
		{false, "False"},
		{1, "1"},
		{int8(-7), "-7"},
		{uint64(math.MaxUint64), "18446744073709551615"},
		{1.5, "1.5"},
		{2.0, "2.0"},
		{1e16, "1e+16"},
		{0.00001, "1e-05"},
		{"s", "'s'"},
		{"it's", `"it's"`},
		{"a\nb", `'a\nb'`},
		{literal.Tuple{1, "x"}, "(1, 'x')"},
		{literal.Tuple{1}, "(1,)"},
		{literal.Tuple{}, "()"},
		{[]any{1, []any{2}}, "[1, [2]]"},
		{[]int{3, 4}, "[3, 4]"},
		{map[string]any{"k": 1, "a": nil}, "{'a': None, 'k': 1}"},
		{literal.Set{2, 1}, "{1, 2}"},
		{literal.Set{}, "set()"},
	}
	for _, tc := range cases {
		got, err := literal.Format(tc.in)
		if err != nil {
			t.Fatalf("Format(%#v) error: %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Format(%#v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormat_Unsupported(t *testing.T) {
	type point struct{ X, Y int }
	for _, v := range []any{point{1, 2}, func() {}, make(chan int), []any{struct{}{}}} {
		if _, err := literal.Format(v); !errors.Is(err, literal.ErrUnsupported) {
			t.Fatalf("Format(%T) expected ErrUnsupported, got %v", v, err)
		}
	}
}

func TestParse_Values(t *testing.T) {
	cases := []struct {
		in   string
		want any
	}{
		{"None", nil},
		{"True", true},
		{" 42 ", int64(42)},
		{"-3", int64(-3)},
		{"+3", int64(3)},
		{"0x1f", int64(31)},
		{"1_000", int64(1000)},
		{"1.25", 1.25},
		{"-1e3", -1000.0},
		{".5", 0.5},
		{"'a' \"b\"", "ab"},
		{`'\x41é\n'`, "Aé\n"},
		{`r'\d'`, `\d`},
		{"(1)", int64(1)},
		{"(1,)", literal.Tuple{int64(1)}},
		{"()", literal.Tuple{}},
		{"[1, [2], ]", []any{int64(1), []any{int64(2)}}},
		{"{'k': 1}", map[string]any{"k": int64(1)}},
		{"{1: 'a', 2: 'b'}", map[any]any{int64(1): "a", int64(2): "b"}},
		{"{}", map[string]any{}},
		{"{1, 2, 2}", literal.Set{int64(1), int64(2)}},
		{"set()", literal.Set{}},
	}
	for _, tc := range cases {
		got, err := literal.Parse(tc.in)
		if err != nil {
			t.Fatalf("Parse(%q) error: %v", tc.in, err)
		}
		if diff := cmp.Diff(tc.want, got); diff != "" {
			t.Fatalf("Parse(%q) mismatch (-want +got):\n%s", tc.in, diff)
		}
	}
}

func TestParse_RejectsNonLiterals(t *testing.T) {
	for _, in := range []string{
		"", "x", "nan", "inf", "os.system('ls')", "__import__('os')",
		"1 + 2", "[1, 2", "{'a' 1}", "'open", "01", "1j", "set([1])",
		"{[1]: 2}", "{[1], 2}", "(1, 2) 3",
	} {
		_, err := literal.Parse(in)
		if err == nil {
			t.Fatalf("Parse(%q) expected error", in)
		}
		var se *literal.SyntaxError
		if !errors.As(err, &se) {
			t.Fatalf("Parse(%q) expected *SyntaxError, got %T", in, err)
		}
	}
}

func TestEqual_NumericAndContainers(t *testing.T) {
	if !literal.Equal(1, int64(1)) || !literal.Equal(1, 1.0) || !literal.Equal(uint8(3), int64(3)) {
		t.Fatalf("expected numeric equality across Go types")
	}
	if literal.Equal(true, 1) {
		t.Fatalf("bool must not equal int")
	}
	if literal.Equal(literal.Tuple{1}, []any{1}) {
		t.Fatalf("tuple must not equal list")
	}
	if !literal.Equal(literal.Set{1, 2}, literal.Set{int64(2), int64(1)}) {
		t.Fatalf("sets must compare without order")
	}
	if !literal.Equal(map[string]int{"a": 1}, map[string]any{"a": int64(1)}) {
		t.Fatalf("maps must compare by value equality")
	}
	if literal.Equal(nil, []any{}) {
		t.Fatalf("None must not equal empty list")
	}
	if literal.Equal(math.NaN(), math.NaN()) {
		t.Fatalf("NaN must not equal itself")
	}
	cyc := []any{nil}
	cyc[0] = cyc
	if literal.Equal(cyc, cyc) {
		t.Fatalf("cyclic lists exceed the nesting limit and must not compare equal")
	}
	if literal.RoundTrips(cyc) {
		t.Fatalf("cyclic lists must not round-trip")
	}
}

func TestRoundTrips(t *testing.T) {
	admissible := []any{
		nil, 1, 1.5, "s", literal.Tuple{1, "x"}, []any{1, []any{2}},
		map[string]any{"k": 1}, literal.Set{"a", literal.Tuple{1, 2}},
		map[any]any{1: "one", "two": 2.0}, "quote ' and \" both", "tab\tand\x00nul",
		-0.0, 123456789.125, uint64(math.MaxUint64), []byte("hi"),
	}
	for _, v := range admissible {
		if !literal.RoundTrips(v) {
			s, _ := literal.Format(v)
			t.Fatalf("expected %#v to round-trip (formatted %q)", v, s)
		}
	}
	rejected := []any{math.NaN(), math.Inf(1), struct{}{}, []any{func() {}}, new(int)}
	for _, v := range rejected {
		if literal.RoundTrips(v) {
			t.Fatalf("expected %#v not to round-trip", v)
		}
	}
}
