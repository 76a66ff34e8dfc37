package session

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/i18n"
)

// ObjectHooks may veto the end of a single-object session. A nil hook allows
// the transition.
type ObjectHooks struct {
	Accept func(s *ObjectSession, obj formskema.Object) bool
	Reject func(s *ObjectSession) bool
}

// ObjectOpt tunes an object session.
type ObjectOpt struct {
	// SkipValidation accepts objects without validating them first.
	SkipValidation bool
	// Validate relaxes the validation run on accept.
	Validate formskema.ValidateOpt
}

type objectState int

const (
	objectOpen objectState = iota
	objectAccepted
	objectRejected
)

// ObjectSession holds the working copy of one object while an editor changes
// it. The working copy starts as the initial object with missing keys filled
// from defaults.
type ObjectSession struct {
	id      string
	schema  *formskema.Schema
	initial formskema.Object
	obj     formskema.Object
	hooks   ObjectHooks
	prompts Prompts
	opt     ObjectOpt
	state   objectState

	// commit stores the accepted object; an error keeps the session open.
	commit func(formskema.Object) error
}

// NewObjectSession opens a session on a copy of initial.
func NewObjectSession(schema *formskema.Schema, initial formskema.Object, hooks ObjectHooks, prompts Prompts, opt ...ObjectOpt) *ObjectSession {
	s := &ObjectSession{
		id:      uuid.NewString(),
		schema:  schema,
		initial: initial.Clone(),
		obj:     formskema.FillMissing(schema, initial, true),
		hooks:   hooks,
		prompts: orNoPrompts(prompts),
	}
	if len(opt) > 0 {
		s.opt = opt[0]
	}
	return s
}

func (s *ObjectSession) ID() string                { return s.id }
func (s *ObjectSession) Schema() *formskema.Schema { return s.schema }
func (s *ObjectSession) Closed() bool              { return s.state != objectOpen }
func (s *ObjectSession) Accepted() bool            { return s.state == objectAccepted }

// Object returns a copy of the working object.
func (s *ObjectSession) Object() formskema.Object { return s.obj.Clone() }

// Initial returns a copy of the object the session was opened with.
func (s *ObjectSession) Initial() formskema.Object { return s.initial.Clone() }

// Get returns the working value for key.
func (s *ObjectSession) Get(key string) (any, bool) {
	v, ok := s.obj[key]
	return v, ok
}

// Set stores v under key after checking that the field exists, is editable
// and accepts v.
func (s *ObjectSession) Set(key string, v any) error {
	t, err := s.field(key)
	if err != nil {
		return err
	}
	if !t.Validate(v) {
		return &formskema.InvalidValueError{Key: key, Value: v, Kind: t.Kind()}
	}
	s.obj[key] = v
	return nil
}

// SetText parses text with the field's TextCodec and stores the result.
func (s *ObjectSession) SetText(key, text string) error {
	t, err := s.field(key)
	if err != nil {
		return err
	}
	tc, ok := t.(formskema.TextCodec)
	if !ok {
		return fmt.Errorf("session: field %q (%s) has no text form", key, t.Kind())
	}
	v, err := tc.ParseText(text)
	if err != nil {
		return fmt.Errorf("session: field %q: %w", key, err)
	}
	return s.Set(key, v)
}

func (s *ObjectSession) field(key string) (formskema.ValueType, error) {
	if s.Closed() {
		return nil, ErrClosed
	}
	t, ok := s.schema.Type(key)
	if !ok {
		return nil, &formskema.UnknownKeysError{Keys: []string{key}}
	}
	if t.ReadOnly() {
		return nil, fmt.Errorf("%w: %s", ErrReadOnly, key)
	}
	return t, nil
}

// Accept closes the session with the working object. It returns false and
// leaves the session open when validation fails (after a warning), when the
// accept hook vetoes, or when storing the object fails.
func (s *ObjectSession) Accept(ctx context.Context) bool {
	if s.Closed() {
		return false
	}
	obj := s.obj.Clone()
	if !s.opt.SkipValidation {
		if r := formskema.ValidateObject(s.schema, obj, s.opt.Validate); !r.OK() {
			s.prompts.Warn(ctx, invalidText(r.Issues()))
			return false
		}
	}
	if s.hooks.Accept != nil && !s.hooks.Accept(s, obj) {
		return false
	}
	if s.commit != nil {
		if err := s.commit(obj); err != nil {
			s.prompts.Warn(ctx, i18n.T(i18n.PromptInvalidObject, map[string]string{"detail": err.Error()}))
			return false
		}
	}
	s.state = objectAccepted
	return true
}

// Reject closes the session discarding the working object, unless the
// reject hook vetoes.
func (s *ObjectSession) Reject(ctx context.Context) bool {
	if s.Closed() {
		return false
	}
	if s.hooks.Reject != nil && !s.hooks.Reject(s) {
		return false
	}
	s.state = objectRejected
	return true
}

func invalidText(iss formskema.Issues) string {
	detail := ""
	if len(iss) > 0 {
		detail = iss[0].Message
		if iss[0].Hint != "" {
			detail += " (" + iss[0].Hint + ")"
		}
	}
	return i18n.T(i18n.PromptInvalidObject, map[string]string{"detail": detail})
}
