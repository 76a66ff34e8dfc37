package session

import (
	"context"
	"errors"
)

var (
	// ErrReadOnly is returned when editing a read-only field.
	ErrReadOnly = errors.New("session: field is read-only")
	// ErrClosed is returned when using a session that was accepted or rejected.
	ErrClosed = errors.New("session: closed")
	// ErrAborted signals that the user abandoned the session (e.g., Ctrl+C).
	// Runners treat it as a rejection that bypasses the reject hook.
	ErrAborted = errors.New("session: aborted")
	// ErrBusy is returned by Press while an item editor or a confirmation is
	// open.
	ErrBusy = errors.New("session: another action is in progress")
	// ErrUnknownButton is returned by Press for a button it does not handle.
	ErrUnknownButton = errors.New("session: unknown button")
)

// Prompts is the message channel a session uses to talk to the user.
type Prompts interface {
	Warn(ctx context.Context, text string)
	Confirm(ctx context.Context, text string) bool
}

// PromptFuncs adapts plain functions to Prompts. A nil WarnFunc discards
// warnings; a nil ConfirmFunc answers no.
type PromptFuncs struct {
	WarnFunc    func(ctx context.Context, text string)
	ConfirmFunc func(ctx context.Context, text string) bool
}

func (p PromptFuncs) Warn(ctx context.Context, text string) {
	if p.WarnFunc != nil {
		p.WarnFunc(ctx, text)
	}
}

func (p PromptFuncs) Confirm(ctx context.Context, text string) bool {
	if p.ConfirmFunc == nil {
		return false
	}
	return p.ConfirmFunc(ctx, text)
}

func orNoPrompts(p Prompts) Prompts {
	if p == nil {
		return PromptFuncs{}
	}
	return p
}
