package widget

// Modal shows at most one record at a time. Opening another record
// replaces the current one.
type Modal[T any] struct {
	selected *T
}

func (m *Modal[T]) Open(v T) { m.selected = &v }

func (m *Modal[T]) Close() { m.selected = nil }

// Selected returns the record on display, if any.
func (m *Modal[T]) Selected() (T, bool) {
	if m.selected == nil {
		var zero T
		return zero, false
	}
	return *m.selected, true
}

func (m *Modal[T]) IsOpen() bool { return m.selected != nil }
