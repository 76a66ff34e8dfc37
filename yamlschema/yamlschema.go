package yamlschema

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	formskema "github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
)

var (
	// ErrNoFields is returned when a document lacks a "fields" mapping.
	ErrNoFields = errors.New("yamlschema: document has no fields mapping")
	// ErrUnknownKind is returned for a kind name no builder handles.
	ErrUnknownKind = errors.New("yamlschema: unknown kind")
	// ErrUnknownAttr is returned for a field attribute the kind does not take.
	ErrUnknownAttr = errors.New("yamlschema: unknown attribute")
)

// FieldError locates a problem in one field definition.
type FieldError struct {
	Field string
	Attr  string
	Line  int
	Col   int
	Err   error
}

func (e *FieldError) Error() string {
	if e.Attr == "" {
		return fmt.Sprintf("yamlschema: field %q at %d:%d: %v", e.Field, e.Line, e.Col, e.Err)
	}
	return fmt.Sprintf("yamlschema: field %q attribute %q at %d:%d: %v", e.Field, e.Attr, e.Line, e.Col, e.Err)
}

func (e *FieldError) Unwrap() error { return e.Err }

// Load reads one YAML document from r and builds the schema it describes.
func Load(r io.Reader) (*formskema.Schema, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadFile is Load on the named file.
func LoadFile(path string) (*formskema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse builds a schema from a document of the form
//
//	fields:
//	  name: {kind: string, label: Name}
//	  age:  {kind: int, min: 0, default: 18}
//
// Fields keep their document order.
func Parse(data []byte) (*formskema.Schema, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, fmt.Errorf("yamlschema: %w", err)
	}
	doc := &root
	if doc.Kind == yaml.DocumentNode {
		if len(doc.Content) == 0 {
			return nil, ErrNoFields
		}
		doc = doc.Content[0]
	}
	top, err := pairs(doc)
	if err != nil {
		return nil, err
	}
	var fields *yaml.Node
	for _, p := range top {
		if p.key.Value == "fields" {
			fields = p.value
		}
	}
	if fields == nil || fields.Kind != yaml.MappingNode {
		return nil, ErrNoFields
	}
	fps, err := pairs(fields)
	if err != nil {
		return nil, err
	}
	b := g.Object()
	for _, p := range fps {
		t, err := buildField(p.key.Value, p.value)
		if err != nil {
			return nil, err
		}
		b.Field(p.key.Value, t)
	}
	return b.Build()
}

func buildField(key string, n *yaml.Node) (formskema.ValueType, error) {
	a, err := newAttrs(key, n)
	if err != nil {
		return nil, err
	}
	kind, ok := a.str("kind")
	if !ok {
		return nil, a.fail("kind", errors.New("missing kind"))
	}
	var t formskema.ValueType
	switch formskema.Kind(kind) {
	case formskema.KindBool:
		b := g.Bool()
		if s, ok := a.str("true_text"); ok {
			b.TrueText(s)
		}
		if s, ok := a.str("false_text"); ok {
			b.FalseText(s)
		}
		t, err = finish(b, a)
	case formskema.KindInt:
		b := g.Int()
		if v, ok := a.i64("min"); ok {
			b.Min(v)
		}
		if v, ok := a.i64("max"); ok {
			b.Max(v)
		}
		if v, ok := a.i64("step"); ok {
			b.Step(v)
		}
		b.Prefix(a.strOr("prefix", "")).Suffix(a.strOr("suffix", ""))
		t, err = finish(b, a)
	case formskema.KindFloat:
		b := g.Float()
		if v, ok := a.f64("min"); ok {
			b.Min(v)
		}
		if v, ok := a.f64("max"); ok {
			b.Max(v)
		}
		if v, ok := a.f64("step"); ok {
			b.Step(v)
		}
		if v, ok := a.i64("decimals"); ok {
			b.Decimals(int(v))
		}
		if a.flag("affix_in_display") {
			b.AffixInDisplay()
		}
		b.Prefix(a.strOr("prefix", "")).Suffix(a.strOr("suffix", ""))
		t, err = finish(b, a)
	case formskema.KindString:
		b := g.String()
		if s, ok := a.str("pattern"); ok {
			b.Pattern(s)
		}
		b.InputMask(a.strOr("input_mask", "")).Placeholder(a.strOr("placeholder", ""))
		if s, ok := a.str("echo"); ok {
			m, found := echoModes[s]
			if !found {
				return nil, a.fail("echo", fmt.Errorf("unknown echo mode %q", s))
			}
			b.Echo(m)
		}
		t, err = finish(b, a)
	case formskema.KindChoice:
		b := g.Choice(a.strs("choices")...)
		if a.flag("editable") {
			b.Editable()
		}
		t, err = finish(b, a)
	case formskema.KindColor:
		b := g.Color()
		if a.flag("alpha") {
			b.Alpha()
		}
		t, err = finish(b, a)
	case formskema.KindDateTime, formskema.KindDate, formskema.KindTime:
		t, err = buildTemporal(formskema.Kind(kind), a)
	case formskema.KindPath, formskema.KindFile, formskema.KindDirectory:
		var b *g.PathBuilder
		switch formskema.Kind(kind) {
		case formskema.KindFile:
			b = g.File()
		case formskema.KindDirectory:
			b = g.Directory()
		default:
			b = g.Path()
		}
		if s, ok := a.str("mode"); ok {
			m, found := pathModes[s]
			if !found {
				return nil, a.fail("mode", fmt.Errorf("unknown path mode %q", s))
			}
			b.Mode(m)
		}
		if s, ok := a.str("filter"); ok {
			b.Filter(s)
		}
		if a.flag("posix") {
			b.AsPosix()
		}
		t, err = finish(b, a)
	case formskema.KindVariant, formskema.KindTuple, formskema.KindList, formskema.KindDict:
		var b *g.VariantBuilder
		switch formskema.Kind(kind) {
		case formskema.KindTuple:
			b = g.Tuple()
		case formskema.KindList:
			b = g.List()
		case formskema.KindDict:
			b = g.Dict()
		default:
			b = g.Variant()
		}
		if v, ok := a.i64("lines"); ok {
			b.Lines(int(v))
		}
		t, err = finish(b, a)
	default:
		return nil, a.fail("kind", fmt.Errorf("%w %q", ErrUnknownKind, kind))
	}
	if err != nil {
		return nil, err
	}
	if err := a.done(); err != nil {
		return nil, err
	}
	return t, nil
}

func buildTemporal(kind formskema.Kind, a *attrs) (formskema.ValueType, error) {
	var b *g.TemporalBuilder
	layout := g.DateTimeLayout
	switch kind {
	case formskema.KindDate:
		b, layout = g.Date(), g.DateLayout
	case formskema.KindTime:
		b, layout = g.Time(), g.TimeLayout
	default:
		b = g.DateTime()
	}
	if s, ok := a.str("format"); ok {
		b.Format(s)
		layout = s
	}
	for _, name := range []string{"min", "max"} {
		s, ok := a.str(name)
		if !ok {
			continue
		}
		tm, err := time.Parse(layout, s)
		if err != nil {
			return nil, a.fail(name, err)
		}
		if name == "min" {
			b.Minimum(tm)
		} else {
			b.Maximum(tm)
		}
	}
	return finish(b, a)
}

var echoModes = map[string]g.EchoMode{
	"normal":           g.EchoNormal,
	"password":         g.EchoPassword,
	"none":             g.EchoNone,
	"password_on_edit": g.EchoPasswordOnEdit,
}

var pathModes = func() map[string]g.PathMode {
	m := map[string]g.PathMode{}
	for _, pm := range []g.PathMode{g.PathGeneric, g.PathOpenFile, g.PathOpenFiles, g.PathSaveFile, g.PathDirectory} {
		m[pm.String()] = pm
	}
	return m
}()

// metaBuilder is satisfied by every dsl kind builder.
type metaBuilder[B any] interface {
	g.Builder
	Default(v any) B
	Label(s string) B
	ReadOnly() B
	Hidden() B
}

// finish applies the attributes shared by all kinds and builds the type. A
// default_text attribute is parsed with the built type's text form.
func finish[B metaBuilder[B]](b B, a *attrs) (formskema.ValueType, error) {
	if s, ok := a.str("label"); ok {
		b.Label(s)
	}
	if a.flag("readonly") {
		b.ReadOnly()
	}
	if a.flag("hidden") {
		b.Hidden()
	}
	if n := a.node("default"); n != nil {
		v, err := nodeValue(n)
		if err != nil {
			return nil, a.fail("default", err)
		}
		b.Default(v)
	}
	text, hasText := a.str("default_text")
	if a.err != nil {
		return nil, a.err
	}
	t, err := b.Build()
	if err != nil {
		return nil, a.fail("", err)
	}
	if !hasText {
		return t, nil
	}
	tc, ok := t.(formskema.TextCodec)
	if !ok {
		return nil, a.fail("default_text", fmt.Errorf("kind %s has no text form", t.Kind()))
	}
	v, err := tc.ParseText(text)
	if err != nil {
		return nil, a.fail("default_text", err)
	}
	b.Default(v)
	if t, err = b.Build(); err != nil {
		return nil, a.fail("default_text", err)
	}
	return t, nil
}

// attrs reads the attribute mapping of one field and tracks which entries
// were consumed so that leftovers can be reported.
type attrs struct {
	field string
	pos   *yaml.Node
	m     map[string]*yaml.Node
	used  map[string]bool
	err   error
}

func newAttrs(field string, n *yaml.Node) (*attrs, error) {
	ps, err := pairs(n)
	if err != nil {
		return nil, &FieldError{Field: field, Line: n.Line, Col: n.Column, Err: err}
	}
	a := &attrs{field: field, pos: n, m: make(map[string]*yaml.Node, len(ps)), used: map[string]bool{}}
	for _, p := range ps {
		a.m[p.key.Value] = p.value
	}
	return a, nil
}

func (a *attrs) node(name string) *yaml.Node {
	n, ok := a.m[name]
	if !ok {
		return nil
	}
	a.used[name] = true
	return n
}

func (a *attrs) decode(name string, dst any) bool {
	n := a.node(name)
	if n == nil {
		return false
	}
	if err := n.Decode(dst); err != nil {
		if a.err == nil {
			a.err = &FieldError{Field: a.field, Attr: name, Line: n.Line, Col: n.Column, Err: err}
		}
		return false
	}
	return true
}

func (a *attrs) str(name string) (string, bool) {
	var s string
	ok := a.decode(name, &s)
	return s, ok
}

func (a *attrs) strOr(name, def string) string {
	if s, ok := a.str(name); ok {
		return s
	}
	return def
}

func (a *attrs) strs(name string) []string {
	var s []string
	a.decode(name, &s)
	return s
}

func (a *attrs) i64(name string) (int64, bool) {
	var v int64
	ok := a.decode(name, &v)
	return v, ok
}

func (a *attrs) f64(name string) (float64, bool) {
	var v float64
	ok := a.decode(name, &v)
	return v, ok
}

func (a *attrs) flag(name string) bool {
	var v bool
	a.decode(name, &v)
	return v
}

func (a *attrs) fail(name string, err error) error {
	n := a.pos
	if an, ok := a.m[name]; ok {
		n = an
	}
	return &FieldError{Field: a.field, Attr: name, Line: n.Line, Col: n.Column, Err: err}
}

// done reports the first decode error or the first unconsumed attribute.
func (a *attrs) done() error {
	if a.err != nil {
		return a.err
	}
	var left []string
	for k := range a.m {
		if !a.used[k] {
			left = append(left, k)
		}
	}
	if len(left) == 0 {
		return nil
	}
	sort.Strings(left)
	return a.fail(left[0], ErrUnknownAttr)
}
