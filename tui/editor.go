package tui

import (
	"context"
	"errors"
	"fmt"

	formskema "github.com/reoring/formskema"
	g "github.com/reoring/formskema/dsl"
	"github.com/reoring/formskema/i18n"
	"github.com/reoring/formskema/literal"
	"github.com/reoring/formskema/session"
)

// Editor is a session.ObjectEditor that edits one field per round through a
// PromptDriver.
type Editor struct {
	Driver PromptDriver
	Styles Styles
}

var _ session.ObjectEditor = (*Editor)(nil)

// EditObject shows the field menu once and applies the chosen edit. Field
// errors are shown as warnings and keep the session open.
func (e *Editor) EditObject(ctx context.Context, s *session.ObjectSession) (session.Action, error) {
	schema := s.Schema()
	keys := columns(schema)
	options := make([]string, 0, len(keys)+2)
	for _, k := range keys {
		t, _ := schema.Type(k)
		v, _ := s.Get(k)
		opt := label(schema, k) + ": " + truncate(FormatValue(t, v), 40)
		if t.ReadOnly() {
			opt += " " + i18n.T(i18n.LabelReadOnly, nil)
		}
		options = append(options, opt)
	}
	options = append(options, i18n.T(i18n.LabelAccept, nil), i18n.T(i18n.LabelCancel, nil))
	idx, err := e.Driver.Select(ctx, SelectConfig{Message: i18n.T(i18n.LabelEditField, nil), Options: options})
	if err != nil {
		return session.ActionNone, err
	}
	switch {
	case idx == len(keys):
		return session.ActionAccept, nil
	case idx == len(keys)+1:
		if !changed(s) {
			return session.ActionReject, nil
		}
		ok, err := e.Driver.Confirm(ctx, ConfirmConfig{Message: i18n.T(i18n.PromptDiscardChanges, nil)})
		if err != nil {
			return session.ActionNone, err
		}
		if ok {
			return session.ActionReject, nil
		}
		return session.ActionNone, nil
	case idx < 0 || idx > len(keys):
		return session.ActionNone, nil
	}
	if err := e.editField(ctx, s, keys[idx]); err != nil {
		if errors.Is(err, session.ErrAborted) || ctx.Err() != nil {
			return session.ActionNone, err
		}
		_ = e.Driver.Info(ctx, e.Styles.Warning.Render(err.Error()))
	}
	return session.ActionNone, nil
}

func (e *Editor) editField(ctx context.Context, s *session.ObjectSession, key string) error {
	t, _ := s.Schema().Type(key)
	if t.ReadOnly() {
		return fmt.Errorf("%w: %s", session.ErrReadOnly, key)
	}
	cur, _ := s.Get(key)
	msg := label(s.Schema(), key)

	switch tt := t.(type) {
	case *g.BoolType:
		b, _ := cur.(bool)
		v, err := e.Driver.Confirm(ctx, ConfirmConfig{Message: msg, Default: b})
		if err != nil {
			return err
		}
		return s.Set(key, v)
	case *g.ChoiceType:
		if !tt.Editable() {
			choices := tt.Choices()
			def := 0
			for i, c := range choices {
				if c == tt.FormatText(cur) {
					def = i
				}
			}
			i, err := e.Driver.Select(ctx, SelectConfig{Message: msg, Options: choices, DefaultIndex: def})
			if err != nil {
				return err
			}
			if i < 0 || i >= len(choices) {
				return nil
			}
			return s.Set(key, choices[i])
		}
	}

	tc, ok := t.(formskema.TextCodec)
	if !ok {
		return fmt.Errorf("%s: no text form for kind %s", key, t.Kind())
	}
	cfg := InputConfig{
		Message: msg,
		Default: tc.FormatText(cur),
		Help:    string(t.Kind()),
		Validator: func(text string) error {
			_, err := tc.ParseText(text)
			return err
		},
	}
	var (
		text string
		err  error
	)
	switch tt := t.(type) {
	case *g.StringType:
		if tt.Echo() != g.EchoNormal {
			cfg.Default = ""
			text, err = e.Driver.Password(ctx, cfg)
		} else {
			text, err = e.Driver.Input(ctx, cfg)
		}
	case *g.VariantType:
		if tt.Lines() > 1 {
			text, err = e.Driver.TextArea(ctx, TextAreaConfig{Message: msg, Default: cfg.Default, Help: cfg.Help})
		} else {
			text, err = e.Driver.Input(ctx, cfg)
		}
	default:
		text, err = e.Driver.Input(ctx, cfg)
	}
	if err != nil {
		return err
	}
	return s.SetText(key, text)
}

// changed reports whether the working object differs from the one the
// session opened with, after filling defaults.
func changed(s *session.ObjectSession) bool {
	before := formskema.FillMissing(s.Schema(), s.Initial(), false)
	return !literal.Equal(map[string]any(before), map[string]any(s.Object()))
}
