// Package selection tracks a visual selection between an anchor and the live
// cursor.
package selection

import "example.com/ink/pkg/buffer"

// Tracker holds an anchor and the live cursor. It always reports the pair in
// reading order.
type Tracker struct {
	anchor buffer.Cursor
	cursor buffer.Cursor
	active bool
}

// Begin anchors the selection at c. It only takes effect the first time since
// the last Reset.
func (t *Tracker) Begin(c buffer.Cursor) {
	if t.active {
		return
	}
	t.anchor = c
	t.cursor = c
	t.active = true
}

// Update moves the live end of an active selection to c.
func (t *Tracker) Update(c buffer.Cursor) {
	if !t.active {
		return
	}
	t.cursor = c
}

// Reset deactivates the selection.
func (t *Tracker) Reset() {
	*t = Tracker{}
}

// Active reports whether a selection exists.
func (t *Tracker) Active() bool { return t.active }

// Anchor returns the fixed end of the selection.
func (t *Tracker) Anchor() buffer.Cursor { return t.anchor }

// Range returns the normalized selection with start not after end. ok is
// false when no selection is active.
func (t *Tracker) Range() (start, end buffer.Cursor, ok bool) {
	if !t.active {
		return buffer.Cursor{}, buffer.Cursor{}, false
	}
	start, end = t.anchor, t.cursor
	if end.Before(start) {
		start, end = end, start
	}
	return start, end, true
}

// Contains reports whether the cell at (row, col) lies within the selection,
// both ends included.
func (t *Tracker) Contains(row, col int) bool {
	start, end, ok := t.Range()
	if !ok {
		return false
	}
	c := buffer.Cursor{Row: row, Col: col}
	return start.Compare(c) <= 0 && c.Compare(end) <= 0
}
