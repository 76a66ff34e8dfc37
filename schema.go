package formskema

import (
	"fmt"

	js "github.com/reoring/formskema/jsonschema"
)

// Field pairs a key with its ValueType.
type Field struct {
	Key  string
	Type ValueType
}

// Schema is an immutable, ordered mapping from keys to ValueTypes.
// The key order is the declaration order and is the only iteration order.
type Schema struct {
	keys  []string
	types map[string]ValueType
}

// NewSchema builds a schema from fields in declaration order. Empty keys, nil
// types, duplicate keys, and types whose default does not validate are
// reported together as Issues.
func NewSchema(fields ...Field) (*Schema, error) {
	s := &Schema{
		keys:  make([]string, 0, len(fields)),
		types: make(map[string]ValueType, len(fields)),
	}
	var iss Issues
	for i, f := range fields {
		switch {
		case f.Key == "":
			iss = AppendIssues(iss, Issue{Path: fmt.Sprintf("/%d", i), Code: CodeInvalidType, Message: "empty key"})
			continue
		case f.Type == nil:
			iss = AppendIssues(iss, IssueAt(f.Key, CodeInvalidType, "nil value type", nil))
			continue
		}
		if _, dup := s.types[f.Key]; dup {
			iss = AppendIssues(iss, IssueAt(f.Key, CodeDuplicateKey, "duplicate key", map[string]any{"key": f.Key}))
			continue
		}
		if err := CheckDefault(f.Type); err != nil {
			iss = AppendIssues(iss, Issue{Path: pointer(f.Key), Code: CodeInvalidDefault, Message: err.Error(), Cause: err})
			continue
		}
		s.keys = append(s.keys, f.Key)
		s.types[f.Key] = f.Type
	}
	if len(iss) > 0 {
		return nil, iss
	}
	return s, nil
}

// MustSchema is like NewSchema but panics on error.
func MustSchema(fields ...Field) *Schema {
	s, err := NewSchema(fields...)
	if err != nil {
		panic(err)
	}
	return s
}

// Keys returns the schema keys in declaration order.
func (s *Schema) Keys() []string {
	out := make([]string, len(s.keys))
	copy(out, s.keys)
	return out
}

func (s *Schema) Len() int { return len(s.keys) }

// Type returns the ValueType declared for key.
func (s *Schema) Type(key string) (ValueType, bool) {
	t, ok := s.types[key]
	return t, ok
}

func (s *Schema) Has(key string) bool {
	_, ok := s.types[key]
	return ok
}

// Fields returns the fields in declaration order.
func (s *Schema) Fields() []Field {
	out := make([]Field, len(s.keys))
	for i, k := range s.keys {
		out[i] = Field{Key: k, Type: s.types[k]}
	}
	return out
}

// DefaultObject returns a fresh object holding every field's default.
func (s *Schema) DefaultObject() Object {
	obj := make(Object, len(s.keys))
	for _, k := range s.keys {
		obj[k] = cloneValue(s.types[k].Default(), 0)
	}
	return obj
}

// JSONSchema projects the schema to a closed JSON Schema object whose
// properties are all required.
func (s *Schema) JSONSchema() *js.Schema {
	props := make(map[string]*js.Schema, len(s.keys))
	for _, k := range s.keys {
		props[k] = TypeJSONSchema(s.types[k])
	}
	return &js.Schema{
		Type:                 "object",
		Properties:           props,
		Required:             s.Keys(),
		AdditionalProperties: false,
		PropertyOrder:        s.Keys(),
	}
}
