package session

import (
	"context"
	"errors"
	"fmt"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/collection"
)

// Action is what an editor asks the runner to do after one round of edits.
type Action int

const (
	// ActionNone keeps the session open for another round.
	ActionNone Action = iota
	ActionAccept
	ActionReject
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionAccept:
		return "accept"
	case ActionReject:
		return "reject"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// ObjectEditor edits the working object of a session. Returning ErrAborted
// abandons the session.
type ObjectEditor interface {
	EditObject(ctx context.Context, s *ObjectSession) (Action, error)
}

// ObjectEditorFunc adapts a function to ObjectEditor.
type ObjectEditorFunc func(ctx context.Context, s *ObjectSession) (Action, error)

func (f ObjectEditorFunc) EditObject(ctx context.Context, s *ObjectSession) (Action, error) {
	return f(ctx, s)
}

// RunObjectSession edits initial with editor until the session is accepted or
// rejected. It returns the accepted object and true, or a copy of initial and
// false when the session was rejected or aborted.
func RunObjectSession(ctx context.Context, schema *formskema.Schema, initial formskema.Object, hooks ObjectHooks, prompts Prompts, editor ObjectEditor, opt ...ObjectOpt) (formskema.Object, bool, error) {
	s := NewObjectSession(schema, initial, hooks, prompts, opt...)
	for !s.Closed() {
		if err := ctx.Err(); err != nil {
			return nil, false, err
		}
		act, err := editor.EditObject(ctx, s)
		if errors.Is(err, ErrAborted) {
			return s.Initial(), false, nil
		}
		if err != nil {
			return nil, false, err
		}
		switch act {
		case ActionAccept:
			s.Accept(ctx)
		case ActionReject:
			s.Reject(ctx)
		}
	}
	if s.Accepted() {
		return s.Object(), true, nil
	}
	return s.Initial(), false, nil
}

// EventKind discriminates collection events.
type EventKind int

const (
	EventButton EventKind = iota
	EventSelect
	EventAccept
	EventReject
)

// Event is one user action on a collection editor. Button is set for
// EventButton; First and Last for EventSelect (First < 0 clears).
type Event struct {
	Kind   EventKind
	Button Button
	First  int
	Last   int
}

// CollectionDriver supplies user actions to RunCollectionSession. Either
// method may return ErrAborted: from NextEvent it abandons the whole session,
// from EditItem only the open item.
type CollectionDriver interface {
	NextEvent(ctx context.Context, c *CollectionSession) (Event, error)
	EditItem(ctx context.Context, c *CollectionSession, item *ObjectSession) (Action, error)
}

// RunCollectionSession drives a session on m until it is accepted or
// rejected. It returns the final objects and whether the session was
// accepted; on rejection, abort or error m is restored to its initial state.
func RunCollectionSession(ctx context.Context, m *collection.Manager, hooks CollectionHooks, prompts Prompts, driver CollectionDriver, opt ...CollectionOpt) ([]formskema.Object, bool, error) {
	c := NewCollectionSession(m, hooks, prompts, opt...)
	for !c.Closed() {
		if err := ctx.Err(); err != nil {
			c.abort()
			return nil, false, err
		}
		if item := c.Item(); item != nil {
			act, err := driver.EditItem(ctx, c, item)
			if errors.Is(err, ErrAborted) {
				c.abortItem()
				continue
			}
			if err != nil {
				c.abort()
				return nil, false, err
			}
			switch act {
			case ActionAccept:
				c.AcceptItem(ctx)
			case ActionReject:
				c.RejectItem(ctx)
			}
			continue
		}
		ev, err := driver.NextEvent(ctx, c)
		if errors.Is(err, ErrAborted) {
			c.abort()
			break
		}
		if err != nil {
			c.abort()
			return nil, false, err
		}
		switch ev.Kind {
		case EventButton:
			err = c.Press(ctx, ev.Button)
		case EventSelect:
			err = c.Select(ev.First, ev.Last)
		case EventAccept:
			c.Accept(ctx)
		case EventReject:
			c.Reject(ctx)
		default:
			err = fmt.Errorf("session: unknown event kind %d", int(ev.Kind))
		}
		if err != nil {
			c.abort()
			return nil, false, err
		}
	}
	return m.Objects(), c.Accepted(), nil
}
