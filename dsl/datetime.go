package dsl

import (
	"fmt"
	"strings"
	"time"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// Default layouts, in Go reference-time notation.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
)

// TemporalBuilder configures a date, time or date-time kind.
type TemporalBuilder struct {
	base[*TemporalBuilder]
	kind     formskema.Kind
	layout   string
	min, max time.Time
}

// DateTime accepts time.Time values and strings parseable with the layout.
func DateTime() *TemporalBuilder { return newTemporal(formskema.KindDateTime, DateTimeLayout) }

// Date is DateTime with a date-only layout.
func Date() *TemporalBuilder { return newTemporal(formskema.KindDate, DateLayout) }

// Time is DateTime with a time-of-day layout.
func Time() *TemporalBuilder { return newTemporal(formskema.KindTime, TimeLayout) }

func newTemporal(kind formskema.Kind, layout string) *TemporalBuilder {
	b := &TemporalBuilder{kind: kind, layout: layout}
	b.self = b
	return b
}

// Format sets the Go layout used to parse and store values.
func (b *TemporalBuilder) Format(layout string) *TemporalBuilder { b.layout = layout; return b }

// Minimum and Maximum are limits offered to editors; Validate does not
// enforce them.
func (b *TemporalBuilder) Minimum(t time.Time) *TemporalBuilder { b.min = t; return b }
func (b *TemporalBuilder) Maximum(t time.Time) *TemporalBuilder { b.max = t; return b }

func (b *TemporalBuilder) Build() (formskema.ValueType, error) {
	if b.layout == "" {
		return nil, fmt.Errorf("dsl: %s: empty layout", b.kind)
	}
	m := b.meta
	if !b.hasDefault {
		m.DefaultValue = time.Time{}.Format(b.layout)
	}
	t := &TemporalType{Meta: m, kind: b.kind, layout: b.layout, min: b.min, max: b.max}
	if err := formskema.CheckDefault(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *TemporalBuilder) MustBuild() formskema.ValueType { return mustBuild(b.Build()) }

// TemporalType is the built date, time or date-time kind.
type TemporalType struct {
	formskema.Meta
	kind     formskema.Kind
	layout   string
	min, max time.Time
}

func (t *TemporalType) Kind() formskema.Kind { return t.kind }

// Layout returns the Go layout of the stored string form.
func (t *TemporalType) Layout() string { return t.layout }

// Limits returns the editor limits; zero times mean unbounded.
func (t *TemporalType) Limits() (min, max time.Time) { return t.min, t.max }

func (t *TemporalType) Validate(v any) bool {
	_, ok := t.parse(v)
	return ok
}

func (t *TemporalType) parse(v any) (time.Time, bool) {
	switch x := v.(type) {
	case time.Time:
		return x, true
	case string:
		tm, err := time.Parse(t.layout, x)
		return tm, err == nil
	}
	return time.Time{}, false
}

// Normalize formats time.Time values with the layout.
func (t *TemporalType) Normalize(v any) any {
	if tm, ok := v.(time.Time); ok {
		return tm.Format(t.layout)
	}
	return v
}

// Time returns v as a time.Time.
func (t *TemporalType) Time(v any) (time.Time, bool) { return t.parse(v) }

func (t *TemporalType) FormatText(v any) string {
	if tm, ok := t.parse(v); ok {
		return tm.Format(t.layout)
	}
	return fmt.Sprint(v)
}

func (t *TemporalType) ParseText(s string) (any, error) {
	s = strings.TrimSpace(s)
	tm, err := time.Parse(t.layout, s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", formskema.ErrInvalidValue, err)
	}
	return tm.Format(t.layout), nil
}

func (t *TemporalType) JSONSchema() *js.Schema {
	s := &js.Schema{Type: "string", Title: t.Label, Default: t.DefaultValue, ReadOnly: t.IsReadOnly, Hidden: t.IsHidden, Kind: string(t.kind)}
	switch t.layout {
	case time.RFC3339, time.RFC3339Nano:
		s.Format = "date-time"
	case DateLayout:
		s.Format = "date"
	case TimeLayout:
		s.Format = "time"
	}
	return s
}
