package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	formskema "github.com/reoring/formskema"
	"github.com/reoring/formskema/collection"
	"github.com/reoring/formskema/i18n"
)

// Button names a collection editor command.
type Button string

const (
	ButtonAdd      Button = "add"
	ButtonEdit     Button = "edit"
	ButtonRemove   Button = "remove"
	ButtonClear    Button = "clear"
	ButtonMoveUp   Button = "move_up"
	ButtonMoveDown Button = "move_down"
)

// Buttons lists the commands in display order.
var Buttons = []Button{ButtonAdd, ButtonEdit, ButtonRemove, ButtonClear, ButtonMoveUp, ButtonMoveDown}

// State is the collection session state.
type State int

const (
	StateIdle State = iota
	StateItemOpen
	StateConfirming
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateItemOpen:
		return "item_open"
	case StateConfirming:
		return "confirming"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// CollectionHooks may veto transitions of a collection session and of the
// item sessions it opens. A nil hook allows the transition.
type CollectionHooks struct {
	Accept     func(c *CollectionSession, objs []formskema.Object) bool
	Reject     func(c *CollectionSession) bool
	ItemAccept func(c *CollectionSession, item *ObjectSession, obj formskema.Object) bool
	ItemReject func(c *CollectionSession, item *ObjectSession) bool
}

// CollectionOpt tunes a collection session.
type CollectionOpt struct {
	// Wrap makes move_up on the first item and move_down on the last rotate.
	Wrap bool
	// SkipItemValidation accepts item sessions without validating them. The
	// manager's entry pipeline still applies.
	SkipItemValidation bool
}

// CollectionSession edits a collection.Manager one command at a time. At
// most one item session is open; Reject restores the collection to its state
// when the session started.
type CollectionSession struct {
	id      string
	m       *collection.Manager
	hooks   CollectionHooks
	prompts Prompts
	opt     CollectionOpt
	state   State

	accepted bool
	item     *ObjectSession
	snap     collection.Snapshot
}

// NewCollectionSession starts a session on m.
func NewCollectionSession(m *collection.Manager, hooks CollectionHooks, prompts Prompts, opt ...CollectionOpt) *CollectionSession {
	c := &CollectionSession{
		id:      uuid.NewString(),
		m:       m,
		hooks:   hooks,
		prompts: orNoPrompts(prompts),
		snap:    m.Snapshot(),
	}
	if len(opt) > 0 {
		c.opt = opt[0]
	}
	return c
}

func (c *CollectionSession) ID() string                   { return c.id }
func (c *CollectionSession) Manager() *collection.Manager { return c.m }
func (c *CollectionSession) State() State                 { return c.state }
func (c *CollectionSession) Closed() bool                 { return c.state == StateClosed }
func (c *CollectionSession) Accepted() bool               { return c.accepted }

// Item returns the open item session, or nil.
func (c *CollectionSession) Item() *ObjectSession { return c.item }

// Press runs a command. Selection problems and declined confirmations are
// reported through Prompts and return nil; errors are reserved for misuse
// and failed mutations.
func (c *CollectionSession) Press(ctx context.Context, b Button) error {
	switch c.state {
	case StateClosed:
		return ErrClosed
	case StateIdle:
	default:
		return ErrBusy
	}
	switch b {
	case ButtonAdd:
		c.openItem(c.m.NewObject(), -1)
		return nil
	case ButtonEdit:
		i, ok := c.single(ctx)
		if !ok {
			return nil
		}
		obj, err := c.m.At(i)
		if err != nil {
			return err
		}
		c.openItem(obj, i)
		return nil
	case ButtonRemove:
		i, ok := c.single(ctx)
		if !ok || !c.confirm(ctx, i18n.PromptConfirmRemove) {
			return nil
		}
		_, err := c.m.Remove(i)
		return err
	case ButtonClear:
		if err := c.m.RequireAnyItems(); err != nil {
			c.warnGate(ctx, err)
			return nil
		}
		if c.confirm(ctx, i18n.PromptConfirmClear) {
			c.m.Clear()
		}
		return nil
	case ButtonMoveUp:
		if i, ok := c.single(ctx); ok {
			return c.m.MoveUp(i, c.opt.Wrap)
		}
		return nil
	case ButtonMoveDown:
		if i, ok := c.single(ctx); ok {
			return c.m.MoveDown(i, c.opt.Wrap)
		}
		return nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownButton, string(b))
	}
}

// Select sets the selection to [first, last]. A negative first clears it.
func (c *CollectionSession) Select(first, last int) error {
	if c.state == StateClosed {
		return ErrClosed
	}
	if first < 0 {
		c.m.ClearSelection()
		return nil
	}
	return c.m.SelectRange(first, last)
}

// AcceptItem accepts the open item session, storing its object through the
// manager's entry pipeline. A rejected entry is warned about and the item
// stays open.
func (c *CollectionSession) AcceptItem(ctx context.Context) bool {
	if c.item == nil {
		return false
	}
	return c.item.Accept(ctx)
}

// RejectItem discards the open item session.
func (c *CollectionSession) RejectItem(ctx context.Context) bool {
	if c.item == nil {
		return false
	}
	return c.item.Reject(ctx)
}

// Accept ends the session keeping the collection. It fails while an item or a
// confirmation is open, or when the accept hook vetoes.
func (c *CollectionSession) Accept(ctx context.Context) bool {
	if c.state != StateIdle {
		return false
	}
	if c.hooks.Accept != nil && !c.hooks.Accept(c, c.m.Objects()) {
		return false
	}
	c.accepted = true
	c.state = StateClosed
	return true
}

// Reject ends the session and restores the collection, unless the reject
// hook vetoes. An open item session is dropped.
func (c *CollectionSession) Reject(ctx context.Context) bool {
	if c.state == StateClosed || c.state == StateConfirming {
		return false
	}
	if c.hooks.Reject != nil && !c.hooks.Reject(c) {
		return false
	}
	c.abort()
	return true
}

// abort restores the collection and closes the session without consulting
// hooks.
func (c *CollectionSession) abort() {
	c.item = nil
	c.m.Restore(c.snap)
	c.state = StateClosed
}

// abortItem drops the open item session without consulting hooks.
func (c *CollectionSession) abortItem() {
	c.item = nil
	if c.state == StateItemOpen {
		c.state = StateIdle
	}
}

func (c *CollectionSession) openItem(obj formskema.Object, index int) {
	hooks := ObjectHooks{
		Accept: func(s *ObjectSession, o formskema.Object) bool {
			return c.hooks.ItemAccept == nil || c.hooks.ItemAccept(c, s, o)
		},
		Reject: func(s *ObjectSession) bool {
			if c.hooks.ItemReject != nil && !c.hooks.ItemReject(c, s) {
				return false
			}
			c.abortItem()
			return true
		},
	}
	// Keys the schema does not declare cannot be edited away; the manager's
	// entry pipeline decides whether they are stripped or rejected.
	item := NewObjectSession(c.m.Schema(), obj, hooks, c.prompts, ObjectOpt{
		SkipValidation: c.opt.SkipItemValidation,
		Validate:       formskema.ValidateOpt{IgnoreUnknown: true},
	})
	item.commit = func(o formskema.Object) error {
		if index < 0 {
			if err := c.m.Add(o); err != nil {
				return err
			}
			_ = c.m.Select(c.m.Len() - 1)
		} else {
			if err := c.m.Update(index, o); err != nil {
				return err
			}
			_ = c.m.Select(index)
		}
		c.abortItem()
		return nil
	}
	c.item = item
	c.state = StateItemOpen
}

func (c *CollectionSession) single(ctx context.Context) (int, bool) {
	i, err := c.m.RequireSingleSelection()
	if err != nil {
		c.warnGate(ctx, err)
		return 0, false
	}
	return i, true
}

func (c *CollectionSession) confirm(ctx context.Context, prompt string) bool {
	c.state = StateConfirming
	ok := c.prompts.Confirm(ctx, i18n.T(prompt, nil))
	c.state = StateIdle
	return ok
}

func (c *CollectionSession) warnGate(ctx context.Context, err error) {
	switch {
	case errors.Is(err, collection.ErrNoSelection):
		c.prompts.Warn(ctx, i18n.T(i18n.PromptNoSelection, nil))
	case errors.Is(err, collection.ErrMultipleSelection):
		c.prompts.Warn(ctx, i18n.T(i18n.PromptMultipleSelection, nil))
	case errors.Is(err, collection.ErrEmpty):
		c.prompts.Warn(ctx, i18n.T(i18n.PromptEmpty, nil))
	default:
		c.prompts.Warn(ctx, err.Error())
	}
}
