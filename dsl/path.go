package dsl

import (
	"strings"

	formskema "github.com/reoring/formskema"
	js "github.com/reoring/formskema/jsonschema"
)

// PathMode tells a file picker what to ask for.
type PathMode int

const (
	PathGeneric PathMode = iota
	PathOpenFile
	PathOpenFiles
	PathSaveFile
	PathDirectory
)

func (m PathMode) String() string {
	switch m {
	case PathOpenFile:
		return "open_file"
	case PathOpenFiles:
		return "open_files"
	case PathSaveFile:
		return "save_file"
	case PathDirectory:
		return "directory"
	}
	return "generic"
}

// PathBuilder configures a filesystem path kind.
type PathBuilder struct {
	base[*PathBuilder]
	kind    formskema.Kind
	mode    PathMode
	filter  string
	asPosix bool
}

// Path accepts any string; nil is read as the empty path.
func Path() *PathBuilder { return newPath(formskema.KindPath, PathGeneric) }

// File is a Path whose editor opens an existing file.
func File() *PathBuilder { return newPath(formskema.KindFile, PathOpenFile) }

// Directory is a Path whose editor picks a directory.
func Directory() *PathBuilder { return newPath(formskema.KindDirectory, PathDirectory) }

func newPath(kind formskema.Kind, mode PathMode) *PathBuilder {
	b := &PathBuilder{kind: kind, mode: mode}
	b.self = b
	return b
}

func (b *PathBuilder) Mode(m PathMode) *PathBuilder { b.mode = m; return b }

// Filter sets the picker name filter, e.g. "Images (*.png *.jpg)".
func (b *PathBuilder) Filter(s string) *PathBuilder { b.filter = s; return b }

// AsPosix stores paths with forward slashes.
func (b *PathBuilder) AsPosix() *PathBuilder { b.asPosix = true; return b }

func (b *PathBuilder) Build() (formskema.ValueType, error) {
	m := b.meta
	if m.DefaultValue == nil {
		m.DefaultValue = ""
	}
	t := &PathType{Meta: m, kind: b.kind, mode: b.mode, filter: b.filter, asPosix: b.asPosix}
	if err := formskema.CheckDefault(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (b *PathBuilder) MustBuild() formskema.ValueType { return mustBuild(b.Build()) }

// PathType is the built path kind.
type PathType struct {
	formskema.Meta
	kind    formskema.Kind
	mode    PathMode
	filter  string
	asPosix bool
}

func (t *PathType) Kind() formskema.Kind { return t.kind }
func (t *PathType) Mode() PathMode       { return t.mode }
func (t *PathType) Filter() string       { return t.filter }
func (t *PathType) AsPosix() bool        { return t.asPosix }

func (t *PathType) Validate(v any) bool {
	if v == nil {
		return true
	}
	_, ok := v.(string)
	return ok
}

// Normalize maps nil to "" and applies AsPosix.
func (t *PathType) Normalize(v any) any {
	if v == nil {
		return ""
	}
	s, ok := v.(string)
	if ok && t.asPosix {
		return strings.ReplaceAll(s, `\`, "/")
	}
	return v
}

func (t *PathType) FormatText(v any) string {
	s, _ := t.Normalize(v).(string)
	return s
}

func (t *PathType) ParseText(s string) (any, error) { return t.Normalize(s), nil }

func (t *PathType) JSONSchema() *js.Schema {
	return &js.Schema{Type: "string", Format: t.mode.String(), Title: t.Label, Default: t.DefaultValue,
		ReadOnly: t.IsReadOnly, Hidden: t.IsHidden, Kind: string(t.kind)}
}
