package history

import (
	"errors"
	"fmt"

	"example.com/ink/pkg/buffer"
)

// DefaultCapacity bounds the undo stack when no capacity is configured.
const DefaultCapacity = 1000

// Common errors for history operations.
var (
	ErrNothingToUndo = errors.New("nothing to undo")
	ErrNothingToRedo = errors.New("nothing to redo")
)

// Kind is the type of a single-byte edit.
type Kind int

const (
	Insert Kind = iota
	Delete
)

func (k Kind) String() string {
	switch k {
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Action is one byte inserted at, or removed from, Offset.
type Action struct {
	Kind   Kind
	Offset int
	Byte   byte
}

// Entry is one undo/redo unit: a single Action, or a group of Actions that
// are undone and redone together.
type Entry struct {
	Actions []Action
}

// IsGroup reports whether the entry holds more than one Action.
func (e Entry) IsGroup() bool { return len(e.Actions) > 1 }

// History keeps bounded stacks of past/future entries for undo/redo.
// Timeline is linear: recording after an undo discards the redo stack.
type History struct {
	past     []Entry
	future   []Entry
	capacity int

	grouping bool
	group    []Action
}

// New creates an empty History holding at most capacity undo entries.
func New(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &History{capacity: capacity}
}

// Capacity returns the maximum number of undo entries kept.
func (h *History) Capacity() int { return h.capacity }

// Record logs a: appended to the open group if any, otherwise pushed as its
// own entry. The redo stack is cleared either way.
func (h *History) Record(a Action) {
	h.future = nil
	if h.grouping {
		h.group = append(h.group, a)
		return
	}
	h.push(Entry{Actions: []Action{a}})
}

func (h *History) push(e Entry) {
	h.past = append(h.past, e)
	if excess := len(h.past) - h.capacity; excess > 0 {
		// drop oldest
		h.past = append(h.past[:0], h.past[excess:]...)
	}
}

// BeginGroup starts collecting recorded actions into one entry. Nested calls
// are ignored.
func (h *History) BeginGroup() {
	if h.grouping {
		return
	}
	h.grouping = true
	h.group = nil
}

// EndGroup closes the open group. An empty group records nothing.
func (h *History) EndGroup() {
	if !h.grouping {
		return
	}
	h.grouping = false
	if len(h.group) > 0 {
		h.push(Entry{Actions: h.group})
	}
	h.group = nil
}

// CanUndo reports whether there is an entry to undo.
func (h *History) CanUndo() bool { return len(h.past) > 0 }

// CanRedo reports whether there is an entry to redo.
func (h *History) CanRedo() bool { return len(h.future) > 0 }

// UndoLen returns the number of entries on the undo stack.
func (h *History) UndoLen() int { return len(h.past) }

// RedoLen returns the number of entries on the redo stack.
func (h *History) RedoLen() int { return len(h.future) }

// Clear drops all history, including an open group.
func (h *History) Clear() {
	h.past = nil
	h.future = nil
	h.grouping = false
	h.group = nil
}

// Undo applies the inverse of the latest entry to s and moves the entry to
// the redo stack. It returns the offset the cursor should take: the position
// of the last byte removed, or one past the last byte reinserted.
func (h *History) Undo(s buffer.TextStorage) (int, error) {
	h.EndGroup()
	if !h.CanUndo() {
		return 0, ErrNothingToUndo
	}
	e := h.past[len(h.past)-1]
	h.past = h.past[:len(h.past)-1]
	cursor := 0
	for i := len(e.Actions) - 1; i >= 0; i-- {
		a := e.Actions[i]
		var err error
		switch a.Kind {
		case Insert:
			cursor, err = remove(s, a)
		case Delete:
			cursor, err = insert(s, a)
		default:
			err = fmt.Errorf("unknown action %v", a.Kind)
		}
		if err != nil {
			h.past = append(h.past, e)
			return 0, fmt.Errorf("undo %v at %d: %w", a.Kind, a.Offset, err)
		}
	}
	h.future = append(h.future, e)
	return cursor, nil
}

// Redo reapplies the most recently undone entry to s and moves it back to the
// undo stack. The returned cursor offset follows the same rule as Undo.
func (h *History) Redo(s buffer.TextStorage) (int, error) {
	h.EndGroup()
	if !h.CanRedo() {
		return 0, ErrNothingToRedo
	}
	e := h.future[len(h.future)-1]
	h.future = h.future[:len(h.future)-1]
	cursor := 0
	for _, a := range e.Actions {
		var err error
		switch a.Kind {
		case Insert:
			cursor, err = insert(s, a)
		case Delete:
			cursor, err = remove(s, a)
		default:
			err = fmt.Errorf("unknown action %v", a.Kind)
		}
		if err != nil {
			h.future = append(h.future, e)
			return 0, fmt.Errorf("redo %v at %d: %w", a.Kind, a.Offset, err)
		}
	}
	h.past = append(h.past, e)
	return cursor, nil
}

func insert(s buffer.TextStorage, a Action) (int, error) {
	if err := s.InsertAt(a.Offset, a.Byte); err != nil {
		return 0, err
	}
	return a.Offset + 1, nil
}

func remove(s buffer.TextStorage, a Action) (int, error) {
	if _, err := s.RemoveAt(a.Offset); err != nil {
		return 0, err
	}
	return a.Offset, nil
}
