package collection

import (
	"errors"
	"fmt"

	formskema "github.com/reoring/formskema"
)

// Selection gate errors.
var (
	ErrNoSelection       = errors.New("collection: no item selected")
	ErrMultipleSelection = errors.New("collection: more than one item selected")
	ErrEmpty             = errors.New("collection: no items")
)

// Options controls the entry pipeline applied to objects that enter the
// collection through Add, Insert, Update and Load.
type Options struct {
	// FillMissingKeysWithDefault fills absent schema keys with defaults.
	FillMissingKeysWithDefault bool
	// IgnoreUnknownKeys strips keys the schema does not declare.
	IgnoreUnknownKeys bool
	// ValidateAddedObject rejects objects that do not validate.
	ValidateAddedObject bool
	// NormalizeValues stores valid values in their canonical form.
	NormalizeValues bool
}

// Manager is an ordered collection of objects sharing one schema, with a
// contiguous selection. It is not safe for concurrent use.
type Manager struct {
	schema  *formskema.Schema
	opts    Options
	objects []formskema.Object
	sel     span
}

// span is an inclusive index range; it is empty when last < first.
type span struct{ first, last int }

var noSpan = span{0, -1}

func (s span) empty() bool { return s.last < s.first }

// New creates an empty collection for schema.
func New(schema *formskema.Schema, opts Options) *Manager {
	return &Manager{schema: schema, opts: opts, sel: noSpan}
}

func (m *Manager) Schema() *formskema.Schema { return m.schema }
func (m *Manager) Options() Options          { return m.opts }
func (m *Manager) Len() int                  { return len(m.objects) }

// At returns a copy of the object at index i.
func (m *Manager) At(i int) (formskema.Object, error) {
	if err := m.checkIndex("at", i, len(m.objects)); err != nil {
		return nil, err
	}
	return m.objects[i].Clone(), nil
}

// Objects returns copies of all objects in order.
func (m *Manager) Objects() []formskema.Object {
	out := make([]formskema.Object, len(m.objects))
	for i, o := range m.objects {
		out[i] = o.Clone()
	}
	return out
}

// Prepare runs the entry pipeline on a copy of obj: strip unknown keys, fill
// missing keys, normalize, then validate, each step gated by Options.
// Validation failures wrap formskema.ErrInvalidValue.
func (m *Manager) Prepare(obj formskema.Object) (formskema.Object, error) {
	out := formskema.Prepare(m.schema, obj, formskema.PrepareOpt{
		RemoveUnknown: m.opts.IgnoreUnknownKeys,
		FillMissing:   m.opts.FillMissingKeysWithDefault,
		Normalize:     m.opts.NormalizeValues,
	})
	if m.opts.ValidateAddedObject {
		r := formskema.ValidateObject(m.schema, out, formskema.ValidateOpt{})
		switch r.Kind {
		case formskema.ResultValid:
		case formskema.ResultInvalidValue:
			return nil, r.Err()
		default:
			return nil, fmt.Errorf("%w: %w", formskema.ErrInvalidValue, r.Err())
		}
	}
	return out, nil
}

// Load replaces the contents with objs after running each through the entry
// pipeline. Nothing changes when any object is rejected.
func (m *Manager) Load(objs []formskema.Object) error {
	prepared := make([]formskema.Object, len(objs))
	for i, o := range objs {
		p, err := m.Prepare(o)
		if err != nil {
			return fmt.Errorf("collection: object %d: %w", i, err)
		}
		prepared[i] = p
	}
	m.objects = prepared
	m.sel = noSpan
	return nil
}

// Add appends obj.
func (m *Manager) Add(obj formskema.Object) error {
	p, err := m.Prepare(obj)
	if err != nil {
		return err
	}
	m.objects = append(m.objects, p)
	return nil
}

// Insert places obj at index i, 0 <= i <= Len, shifting later objects right.
func (m *Manager) Insert(i int, obj formskema.Object) error {
	if err := m.checkIndex("insert", i, len(m.objects)+1); err != nil {
		return err
	}
	p, err := m.Prepare(obj)
	if err != nil {
		return err
	}
	m.objects = append(m.objects, nil)
	copy(m.objects[i+1:], m.objects[i:])
	m.objects[i] = p
	m.remapSelection(func(j int) int {
		if j >= i {
			return j + 1
		}
		return j
	})
	return nil
}

// Update replaces the object at index i.
func (m *Manager) Update(i int, obj formskema.Object) error {
	if err := m.checkIndex("update", i, len(m.objects)); err != nil {
		return err
	}
	p, err := m.Prepare(obj)
	if err != nil {
		return err
	}
	m.objects[i] = p
	return nil
}

// Remove deletes and returns the object at index i, shifting later objects
// left.
func (m *Manager) Remove(i int) (formskema.Object, error) {
	if err := m.checkIndex("remove", i, len(m.objects)); err != nil {
		return nil, err
	}
	obj := m.objects[i]
	m.objects = append(m.objects[:i], m.objects[i+1:]...)
	switch s := m.sel; {
	case s.empty():
	case i < s.first:
		m.sel = span{s.first - 1, s.last - 1}
	case i <= s.last:
		m.sel = span{s.first, s.last - 1}
	}
	return obj, nil
}

// MoveUp swaps the object at index i with its predecessor. At index 0 it
// moves the object to the end when wrap is set and does nothing otherwise.
func (m *Manager) MoveUp(i int, wrap bool) error {
	n := len(m.objects)
	if err := m.checkIndex("move_up", i, n); err != nil {
		return err
	}
	if i > 0 {
		m.swap(i, i-1)
		return nil
	}
	if !wrap || n < 2 {
		return nil
	}
	first := m.objects[0]
	copy(m.objects, m.objects[1:])
	m.objects[n-1] = first
	m.remapSelection(func(j int) int {
		if j == 0 {
			return n - 1
		}
		return j - 1
	})
	return nil
}

// MoveDown swaps the object at index i with its successor. At the last index
// it moves the object to the front when wrap is set and does nothing
// otherwise.
func (m *Manager) MoveDown(i int, wrap bool) error {
	n := len(m.objects)
	if err := m.checkIndex("move_down", i, n); err != nil {
		return err
	}
	if i < n-1 {
		m.swap(i, i+1)
		return nil
	}
	if !wrap || n < 2 {
		return nil
	}
	last := m.objects[n-1]
	copy(m.objects[1:], m.objects[:n-1])
	m.objects[0] = last
	m.remapSelection(func(j int) int {
		if j == n-1 {
			return 0
		}
		return j + 1
	})
	return nil
}

// Clear removes every object and the selection.
func (m *Manager) Clear() {
	m.objects = nil
	m.sel = noSpan
}

func (m *Manager) swap(i, j int) {
	m.objects[i], m.objects[j] = m.objects[j], m.objects[i]
	m.remapSelection(func(k int) int {
		switch k {
		case i:
			return j
		case j:
			return i
		}
		return k
	})
}

// MissingKeys reports the schema keys absent from obj.
func (m *Manager) MissingKeys(obj formskema.Object) []string {
	return formskema.MissingKeys(m.schema, obj)
}

// FillMissingWithDefault fills the schema keys absent from obj.
func (m *Manager) FillMissingWithDefault(obj formskema.Object, copy bool) formskema.Object {
	return formskema.FillMissing(m.schema, obj, copy)
}

// NewObject returns the schema's default object.
func (m *Manager) NewObject() formskema.Object { return m.schema.DefaultObject() }

func (m *Manager) checkIndex(op string, i, limit int) error {
	if i < 0 || i >= limit {
		return &formskema.OutOfRangeError{Op: op, Index: i, Len: len(m.objects)}
	}
	return nil
}

// Snapshot captures the objects and selection for a later Restore.
type Snapshot struct {
	objects []formskema.Object
	sel     span
}

// Snapshot returns a copy of the current state.
func (m *Manager) Snapshot() Snapshot {
	return Snapshot{objects: m.Objects(), sel: m.sel}
}

// Restore returns the collection to a snapshot taken from it. The snapshot
// stays usable for further restores.
func (m *Manager) Restore(s Snapshot) {
	objs := make([]formskema.Object, len(s.objects))
	for i, o := range s.objects {
		objs[i] = o.Clone()
	}
	m.objects = objs
	m.sel = s.sel
}
