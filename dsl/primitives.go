package dsl

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// ---- Bool ----

// BoolBuilder configures a boolean kind.
type BoolBuilder struct {
	base[*BoolBuilder]
	trueText, falseText string
}

// Bool accepts Go bools. TrueText and FalseText add string forms.
func Bool() *BoolBuilder {
	b := &BoolBuilder{}
	b.self = b
	return b
}

// TrueText sets the string accepted as true. An empty text disables it.
func (b *BoolBuilder) TrueText(s string) *BoolBuilder { b.trueText = s; return b }

// FalseText sets the string accepted as false. An empty text disables it.
func (b *BoolBuilder) FalseText(s string) *BoolBuilder { b.falseText = s; return b }

func (b *BoolBuilder) Build() (formskema.ValueType, error) {
	m := b.meta
	if !b.hasDefault {
		m.DefaultValue = false
	}
	t := &BoolType{Meta: m, trueText: b.trueText, falseText: b.falseText}
	if err := formskema.CheckDefault(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *BoolBuilder) MustBuild() formskema.ValueType { return mustBuild(b.Build()) }

// BoolType is the built boolean kind.
type BoolType struct {
	formskema.Meta
	trueText, falseText string
}

func (t *BoolType) Kind() formskema.Kind { return formskema.KindBool }
func (t *BoolType) TrueText() string     { return t.trueText }
func (t *BoolType) FalseText() string    { return t.falseText }

func (t *BoolType) Validate(v any) bool {
	switch x := v.(type) {
	case bool:
		return true
	case string:
		return (t.trueText != "" && x == t.trueText) || (t.falseText != "" && x == t.falseText)
	}
	return false
}

// Normalize maps the configured texts to bools.
func (t *BoolType) Normalize(v any) any {
	if s, ok := v.(string); ok {
		return t.trueText != "" && s == t.trueText
	}
	return v
}

func (t *BoolType) FormatText(v any) string {
	b, _ := t.Normalize(v).(bool)
	switch {
	case b && t.trueText != "":
		return t.trueText
	case !b && t.falseText != "":
		return t.falseText
	}
	return strconv.FormatBool(b)
}

func (t *BoolType) ParseText(s string) (any, error) {
	s = strings.TrimSpace(s)
	if t.Validate(s) {
		return t.Normalize(s), nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a boolean", formskema.ErrInvalidValue, s)
	}
	return b, nil
}

func (t *BoolType) JSONSchema() *js.Schema {
	return &js.Schema{Type: "boolean", Title: t.Label, Default: t.DefaultValue, ReadOnly: t.IsReadOnly, Hidden: t.IsHidden, Kind: string(t.Kind())}
}

// ---- Int ----

// IntBuilder configures an integer kind.
type IntBuilder struct {
	base[*IntBuilder]
	min, max       *int64
	step           int64
	prefix, suffix string
}

// Int accepts any Go integer type within the optional inclusive bounds.
func Int() *IntBuilder {
	b := &IntBuilder{step: 1}
	b.self = b
	return b
}

func (b *IntBuilder) Min(n int64) *IntBuilder     { b.min = &n; return b }
func (b *IntBuilder) Max(n int64) *IntBuilder     { b.max = &n; return b }
func (b *IntBuilder) Step(n int64) *IntBuilder    { b.step = n; return b }
func (b *IntBuilder) Prefix(s string) *IntBuilder { b.prefix = s; return b }
func (b *IntBuilder) Suffix(s string) *IntBuilder { b.suffix = s; return b }

func (b *IntBuilder) Build() (formskema.ValueType, error) {
	if b.min != nil && b.max != nil && *b.min > *b.max {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidBounds, *b.min, *b.max)
	}
	m := b.meta
	if !b.hasDefault {
		var d int64
		if b.min != nil && d < *b.min {
			d = *b.min
		}
		if b.max != nil && d > *b.max {
			d = *b.max
		}
		m.DefaultValue = d
	}
	t := &IntType{Meta: m, min: b.min, max: b.max, step: b.step, prefix: b.prefix, suffix: b.suffix}
	if err := formskema.CheckDefault(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *IntBuilder) MustBuild() formskema.ValueType { return mustBuild(b.Build()) }

// IntType is the built integer kind.
type IntType struct {
	formskema.Meta
	min, max       *int64
	step           int64
	prefix, suffix string
}

func (t *IntType) Kind() formskema.Kind { return formskema.KindInt }

// Bounds returns the inclusive bounds; ok is false for an absent bound.
func (t *IntType) Bounds() (min int64, hasMin bool, max int64, hasMax bool) {
	if t.min != nil {
		min, hasMin = *t.min, true
	}
	if t.max != nil {
		max, hasMax = *t.max, true
	}
	return
}

func (t *IntType) Step() int64    { return t.step }
func (t *IntType) Prefix() string { return t.prefix }
func (t *IntType) Suffix() string { return t.suffix }

func (t *IntType) Validate(v any) bool {
	n, big, ok := asInt64(v)
	if !ok {
		return false
	}
	if big {
		return t.max == nil
	}
	if t.min != nil && n < *t.min {
		return false
	}
	if t.max != nil && n > *t.max {
		return false
	}
	return true
}

// Normalize converts every integer type to int64 where it fits.
func (t *IntType) Normalize(v any) any {
	if n, big, ok := asInt64(v); ok && !big {
		return n
	}
	return v
}

func (t *IntType) FormatText(v any) string {
	if n, big, ok := asInt64(v); ok && !big {
		return strconv.FormatInt(n, 10)
	}
	return fmt.Sprint(v)
}

func (t *IntType) ParseText(s string) (any, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, t.prefix), t.suffix))
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil || !t.Validate(n) {
		return nil, fmt.Errorf("%w: %q", formskema.ErrInvalidValue, s)
	}
	return n, nil
}

func (t *IntType) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "integer", Title: t.Label, Default: t.DefaultValue, ReadOnly: t.IsReadOnly, Hidden: t.IsHidden, Kind: string(t.Kind())}
	if t.min != nil {
		s.Minimum = js.Float(float64(*t.min))
	}
	if t.max != nil {
		s.Maximum = js.Float(float64(*t.max))
	}
	return s
}

// ---- Float ----

// FloatBuilder configures a floating point kind.
type FloatBuilder struct {
	base[*FloatBuilder]
	min, max       *float64
	step           float64
	decimals       int
	prefix, suffix string
	affixInDisplay bool
}

// Float accepts finite Go floats and Go integers within the optional
// inclusive bounds.
func Float() *FloatBuilder {
	b := &FloatBuilder{step: 1, decimals: -1}
	b.self = b
	return b
}

func (b *FloatBuilder) Min(f float64) *FloatBuilder   { b.min = &f; return b }
func (b *FloatBuilder) Max(f float64) *FloatBuilder   { b.max = &f; return b }
func (b *FloatBuilder) Step(f float64) *FloatBuilder  { b.step = f; return b }
func (b *FloatBuilder) Prefix(s string) *FloatBuilder { b.prefix = s; return b }
func (b *FloatBuilder) Suffix(s string) *FloatBuilder { b.suffix = s; return b }
func (b *FloatBuilder) AffixInDisplay() *FloatBuilder { b.affixInDisplay = true; return b }

// Decimals sets the number of digits shown after the point; negative means
// the shortest exact representation.
func (b *FloatBuilder) Decimals(n int) *FloatBuilder { b.decimals = n; return b }

func (b *FloatBuilder) Build() (formskema.ValueType, error) {
	for _, p := range []*float64{b.min, b.max} {
		if p != nil && (math.IsNaN(*p) || math.IsInf(*p, 0)) {
			return nil, fmt.Errorf("%w: bound %v is not finite", ErrInvalidBounds, *p)
		}
	}
	if b.min != nil && b.max != nil && *b.min > *b.max {
		return nil, fmt.Errorf("%w: %v > %v", ErrInvalidBounds, *b.min, *b.max)
	}
	m := b.meta
	if !b.hasDefault {
		d := 0.0
		if b.min != nil && d < *b.min {
			d = *b.min
		}
		if b.max != nil && d > *b.max {
			d = *b.max
		}
		m.DefaultValue = d
	}
	t := &FloatType{Meta: m, min: b.min, max: b.max, step: b.step, decimals: b.decimals,
		prefix: b.prefix, suffix: b.suffix, affixInDisplay: b.affixInDisplay}
	if err := formskema.CheckDefault(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *FloatBuilder) MustBuild() formskema.ValueType { return mustBuild(b.Build()) }

// FloatType is the built floating point kind.
type FloatType struct {
	formskema.Meta
	min, max       *float64
	step           float64
	decimals       int
	prefix, suffix string
	affixInDisplay bool
}

func (t *FloatType) Kind() formskema.Kind { return formskema.KindFloat }

func (t *FloatType) Bounds() (min float64, hasMin bool, max float64, hasMax bool) {
	if t.min != nil {
		min, hasMin = *t.min, true
	}
	if t.max != nil {
		max, hasMax = *t.max, true
	}
	return
}

func (t *FloatType) Step() float64        { return t.step }
func (t *FloatType) Decimals() int        { return t.decimals }
func (t *FloatType) Prefix() string       { return t.prefix }
func (t *FloatType) Suffix() string       { return t.suffix }
func (t *FloatType) AffixInDisplay() bool { return t.affixInDisplay }

func (t *FloatType) Validate(v any) bool {
	f, ok := asFloat64(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return false
	}
	if t.min != nil && f < *t.min {
		return false
	}
	if t.max != nil && f > *t.max {
		return false
	}
	return true
}

func (t *FloatType) Normalize(v any) any {
	if f, ok := asFloat64(v); ok {
		return f
	}
	return v
}

func (t *FloatType) FormatText(v any) string {
	f, ok := asFloat64(v)
	if !ok {
		return fmt.Sprint(v)
	}
	s := strconv.FormatFloat(f, 'f', t.decimals, 64)
	if t.affixInDisplay {
		s = t.prefix + s + t.suffix
	}
	return s
}

func (t *FloatType) ParseText(s string) (any, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(s, t.prefix), t.suffix))
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || !t.Validate(f) {
		return nil, fmt.Errorf("%w: %q", formskema.ErrInvalidValue, s)
	}
	return f, nil
}

func (t *FloatType) JSONSchema() *js.Schema {
	return &js.Schema{Type: "number", Title: t.Label, Default: t.DefaultValue, ReadOnly: t.IsReadOnly,
		Hidden: t.IsHidden, Kind: string(t.Kind()), Minimum: t.min, Maximum: t.max}
}

// ---- String ----

// EchoMode controls how a string editor displays its text.
type EchoMode int

const (
	EchoNormal EchoMode = iota
	EchoPassword
	EchoNone
	EchoPasswordOnEdit
)

// StringBuilder configures a text kind.
type StringBuilder struct {
	base[*StringBuilder]
	inputMask   string
	placeholder string
	pattern     string
	validator   func(string) bool
	echo        EchoMode
}

// String accepts strings that pass the optional pattern and predicate.
func String() *StringBuilder {
	b := &StringBuilder{}
	b.self = b
	return b
}

func (b *StringBuilder) InputMask(s string) *StringBuilder   { b.inputMask = s; return b }
func (b *StringBuilder) Placeholder(s string) *StringBuilder { b.placeholder = s; return b }
func (b *StringBuilder) Echo(m EchoMode) *StringBuilder      { b.echo = m; return b }

// Pattern restricts values to those fully matching the regular expression.
func (b *StringBuilder) Pattern(expr string) *StringBuilder { b.pattern = expr; return b }

// Validator adds a predicate. A panicking predicate counts as rejection.
func (b *StringBuilder) Validator(fn func(string) bool) *StringBuilder { b.validator = fn; return b }

func (b *StringBuilder) Build() (formskema.ValueType, error) {
	var re *regexp.Regexp
	if b.pattern != "" {
		var err error
		re, err = regexp.Compile(`^(?:` + b.pattern + `)$`)
		if err != nil {
			return nil, fmt.Errorf("dsl: string pattern: %w", err)
		}
	}
	m := b.meta
	if !b.hasDefault {
		m.DefaultValue = ""
	}
	t := &StringType{Meta: m, inputMask: b.inputMask, placeholder: b.placeholder,
		pattern: b.pattern, re: re, validator: b.validator, echo: b.echo}
	if err := formskema.CheckDefault(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *StringBuilder) MustBuild() formskema.ValueType { return mustBuild(b.Build()) }

// StringType is the built text kind.
type StringType struct {
	formskema.Meta
	inputMask   string
	placeholder string
	pattern     string
	re          *regexp.Regexp
	validator   func(string) bool
	echo        EchoMode
}

func (t *StringType) Kind() formskema.Kind { return formskema.KindString }
func (t *StringType) InputMask() string    { return t.inputMask }
func (t *StringType) Placeholder() string  { return t.placeholder }
func (t *StringType) Echo() EchoMode       { return t.echo }

func (t *StringType) Validate(v any) (ok bool) {
	s, isStr := v.(string)
	if !isStr {
		return false
	}
	if t.re != nil && !t.re.MatchString(s) {
		return false
	}
	if t.validator == nil {
		return true
	}
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()
	return t.validator(s)
}

func (t *StringType) FormatText(v any) string {
	s, _ := v.(string)
	return s
}

func (t *StringType) ParseText(s string) (any, error) {
	if !t.Validate(s) {
		return nil, fmt.Errorf("%w: %q", formskema.ErrInvalidValue, s)
	}
	return s, nil
}

func (t *StringType) JSONSchema() *js.Schema {
	return &js.Schema{Type: "string", Title: t.Label, Default: t.DefaultValue, ReadOnly: t.IsReadOnly,
		Hidden: t.IsHidden, Kind: string(t.Kind()), Pattern: t.pattern}
}

// ---- Choice ----

// ChoiceBuilder configures a pick-one-of kind.
type ChoiceBuilder struct {
	base[*ChoiceBuilder]
	choices  []string
	editable bool
}

// Choice accepts one of choices, or an integer index into them. The first
// choice is the default unless Default says otherwise.
func Choice(choices ...string) *ChoiceBuilder {
	b := &ChoiceBuilder{choices: append([]string(nil), choices...)}
	b.self = b
	return b
}

// Editable lets editors offer free text entry next to the list.
func (b *ChoiceBuilder) Editable() *ChoiceBuilder { b.editable = true; return b }

func (b *ChoiceBuilder) Build() (formskema.ValueType, error) {
	if len(b.choices) == 0 {
		return nil, ErrNoChoices
	}
	m := b.meta
	if !b.hasDefault {
		m.DefaultValue = b.choices[0]
	}
	t := &ChoiceType{Meta: m, choices: b.choices, editable: b.editable}
	if err := formskema.CheckDefault(t); err != nil {
		return nil, err
	}
	// An index default is stored as the choice it names.
	t.DefaultValue = t.Normalize(t.DefaultValue)
	return t, nil
}

func (b *ChoiceBuilder) MustBuild() formskema.ValueType { return mustBuild(b.Build()) }

// ChoiceType is the built pick-one-of kind.
type ChoiceType struct {
	formskema.Meta
	choices  []string
	editable bool
}

func (t *ChoiceType) Kind() formskema.Kind { return formskema.KindChoice }
func (t *ChoiceType) Editable() bool       { return t.editable }

// Choices returns a copy of the options.
func (t *ChoiceType) Choices() []string { return append([]string(nil), t.choices...) }

func (t *ChoiceType) Validate(v any) bool {
	if s, ok := v.(string); ok {
		return t.index(s) >= 0
	}
	n, big, ok := asInt64(v)
	return ok && !big && n >= 0 && n < int64(len(t.choices))
}

func (t *ChoiceType) index(s string) int {
	for i, c := range t.choices {
		if c == s {
			return i
		}
	}
	return -1
}

// Normalize maps an index to its choice.
func (t *ChoiceType) Normalize(v any) any {
	if n, big, ok := asInt64(v); ok && !big && n >= 0 && n < int64(len(t.choices)) {
		return t.choices[n]
	}
	return v
}

func (t *ChoiceType) FormatText(v any) string {
	s, _ := t.Normalize(v).(string)
	return s
}

func (t *ChoiceType) ParseText(s string) (any, error) {
	if t.index(s) < 0 {
		return nil, fmt.Errorf("%w: %q is not one of %v", formskema.ErrInvalidValue, s, t.choices)
	}
	return s, nil
}

func (t *ChoiceType) JSONSchema() *js.Schema {
	enum := make([]any, len(t.choices))
	for i, c := range t.choices {
		enum[i] = c
	}
	return &js.Schema{Type: "string", Title: t.Label, Default: t.DefaultValue, ReadOnly: t.IsReadOnly,
		Hidden: t.IsHidden, Kind: string(t.Kind()), Enum: enum}
}
