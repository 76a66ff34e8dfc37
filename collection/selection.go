package collection

import formskema "github.com/reoring/formskema"

// Select makes index i the only selected object.
func (m *Manager) Select(i int) error {
	return m.SelectRange(i, i)
}

// SelectRange selects the inclusive range [first, last].
func (m *Manager) SelectRange(first, last int) error {
	if first > last {
		first, last = last, first
	}
	if err := m.checkIndex("select", first, len(m.objects)); err != nil {
		return err
	}
	if err := m.checkIndex("select", last, len(m.objects)); err != nil {
		return err
	}
	m.sel = span{first, last}
	return nil
}

func (m *Manager) ClearSelection() { m.sel = noSpan }

// Selection returns the selected indices in ascending order.
func (m *Manager) Selection() []int {
	if m.sel.empty() {
		return nil
	}
	out := make([]int, 0, m.sel.last-m.sel.first+1)
	for i := m.sel.first; i <= m.sel.last; i++ {
		out = append(out, i)
	}
	return out
}

// RequireSingleSelection returns the selected index when exactly one object
// is selected.
func (m *Manager) RequireSingleSelection() (int, error) {
	switch {
	case m.sel.empty():
		return -1, ErrNoSelection
	case m.sel.first != m.sel.last:
		return -1, ErrMultipleSelection
	}
	return m.sel.first, nil
}

// RequireAnyItems fails with ErrEmpty when the collection is empty.
func (m *Manager) RequireAnyItems() error {
	if len(m.objects) == 0 {
		return ErrEmpty
	}
	return nil
}

// SelectedObjects returns copies of the selected objects.
func (m *Manager) SelectedObjects() []formskema.Object {
	var out []formskema.Object
	for _, i := range m.Selection() {
		out = append(out, m.objects[i].Clone())
	}
	return out
}

// remapSelection moves the selection along with its objects after a
// reordering f (old index to new index). A range whose objects are no longer
// adjacent is cleared.
func (m *Manager) remapSelection(f func(int) int) {
	if m.sel.empty() {
		return
	}
	lo, hi := -1, -1
	for i := m.sel.first; i <= m.sel.last; i++ {
		j := f(i)
		if lo < 0 || j < lo {
			lo = j
		}
		if j > hi {
			hi = j
		}
	}
	if hi-lo != m.sel.last-m.sel.first {
		m.sel = noSpan
		return
	}
	m.sel = span{lo, hi}
}
