package tui

import (
	"context"
	"sort"

	"github.com/reoring/formskema/i18n"
	"github.com/reoring/formskema/session"
)

// CollectionDriver is a session.CollectionDriver that shows the collection
// as a table and reads commands from a menu.
type CollectionDriver struct {
	Driver PromptDriver
	Styles Styles
	Editor *Editor
}

var _ session.CollectionDriver = (*CollectionDriver)(nil)

// NewCollectionDriver wires a table driver and an item editor to the same
// prompts.
func NewCollectionDriver(d PromptDriver, st Styles) *CollectionDriver {
	return &CollectionDriver{Driver: d, Styles: st, Editor: &Editor{Driver: d, Styles: st}}
}

func (d *CollectionDriver) NextEvent(ctx context.Context, c *session.CollectionSession) (session.Event, error) {
	if err := d.Driver.Info(ctx, RenderTable(c.Manager(), d.Styles)); err != nil {
		return session.Event{}, err
	}
	options := []string{i18n.T(i18n.LabelSelect, nil)}
	for _, b := range session.Buttons {
		options = append(options, i18n.T("button_"+string(b), nil))
	}
	accept := len(options)
	options = append(options, i18n.T(i18n.LabelAccept, nil), i18n.T(i18n.LabelCancel, nil))

	idx, err := d.Driver.Select(ctx, SelectConfig{Message: i18n.T(i18n.LabelAction, nil), Options: options})
	if err != nil {
		return session.Event{}, err
	}
	switch {
	case idx == 0:
		return d.selectItems(ctx, c)
	case idx >= 1 && idx < accept:
		return session.Event{Kind: session.EventButton, Button: session.Buttons[idx-1]}, nil
	case idx == accept:
		return session.Event{Kind: session.EventAccept}, nil
	default:
		return session.Event{Kind: session.EventReject}, nil
	}
}

// selectItems asks for a contiguous run of items. Choosing nothing clears
// the selection.
func (d *CollectionDriver) selectItems(ctx context.Context, c *session.CollectionSession) (session.Event, error) {
	m := c.Manager()
	objs := m.Objects()
	options := make([]string, len(objs))
	for i, o := range objs {
		options[i] = summary(m.Schema(), o)
	}
	for {
		picked, err := d.Driver.MultiSelect(ctx, SelectConfig{
			Message:  i18n.T(i18n.LabelSelect, nil),
			Options:  options,
			Defaults: m.Selection(),
		})
		if err != nil {
			return session.Event{}, err
		}
		if len(picked) == 0 {
			return session.Event{Kind: session.EventSelect, First: -1, Last: -1}, nil
		}
		sort.Ints(picked)
		first, last := picked[0], picked[len(picked)-1]
		if last-first+1 == len(picked) {
			return session.Event{Kind: session.EventSelect, First: first, Last: last}, nil
		}
		if err := d.Driver.Info(ctx, d.Styles.Warning.Render(i18n.T(i18n.PromptNotContiguous, nil))); err != nil {
			return session.Event{}, err
		}
	}
}

func (d *CollectionDriver) EditItem(ctx context.Context, _ *session.CollectionSession, item *session.ObjectSession) (session.Action, error) {
	return d.Editor.EditObject(ctx, item)
}
