package buffer

import (
	"errors"
	"fmt"
)

const defaultCapacity = 64

// ErrOutOfRange is returned by offset-level operations given a position
// outside the buffer.
var ErrOutOfRange = errors.New("position out of range")

// Buffer is a contiguous, growable byte buffer with a line index that is
// rebuilt after every mutation.
// Bytes live in text[:n]; len(text) is the capacity.
type Buffer struct {
	text  []byte
	n     int
	lines LineIndex
}

// New creates an empty Buffer with an initial capacity.
func New(capacity int) *Buffer {
	if capacity < 1 {
		capacity = defaultCapacity
	}
	b := &Buffer{text: make([]byte, capacity)}
	b.lines.rebuild(nil)
	return b
}

// NewFromString initializes a Buffer with the provided text.
func NewFromString(s string) *Buffer {
	b := New(len(s) + defaultCapacity)
	b.Load([]byte(s))
	return b
}

// Len returns the number of bytes stored.
func (b *Buffer) Len() int { return b.n }

// Cap returns the current storage capacity.
func (b *Buffer) Cap() int { return len(b.text) }

// Lines returns the current line index. It shares storage with the buffer
// and is only valid until the next mutation; use Lengths for a stable copy.
func (b *Buffer) Lines() LineIndex { return b.lines }

// Bytes returns a copy of the buffer contents.
func (b *Buffer) Bytes() []byte {
	return append([]byte(nil), b.text[:b.n]...)
}

// String returns the buffer contents as a string.
func (b *Buffer) String() string { return string(b.text[:b.n]) }

// ByteAt returns the byte at offset i, or 0 when i is out of bounds.
func (b *Buffer) ByteAt(i int) byte {
	if i < 0 || i >= b.n {
		return 0
	}
	return b.text[i]
}

// Load replaces the whole content with data and rebuilds the index once.
func (b *Buffer) Load(data []byte) {
	b.ensureCap(len(data))
	copy(b.text, data)
	b.n = len(data)
	b.lines.rebuild(b.text[:b.n])
}

// ensureCap doubles the storage until it can hold need bytes.
func (b *Buffer) ensureCap(need int) {
	if need <= len(b.text) {
		return
	}
	newCap := len(b.text)
	if newCap == 0 {
		newCap = defaultCapacity
	}
	for newCap < need {
		newCap *= 2
	}
	grown := make([]byte, newCap)
	copy(grown, b.text[:b.n])
	b.text = grown
}

// InsertAt stores c at offset off (0..Len()), shifting the tail right.
func (b *Buffer) InsertAt(off int, c byte) error {
	if off < 0 || off > b.n {
		return fmt.Errorf("insert at %d: %w", off, ErrOutOfRange)
	}
	b.ensureCap(b.n + 1)
	copy(b.text[off+1:b.n+1], b.text[off:b.n])
	b.text[off] = c
	b.n++
	b.lines.rebuild(b.text[:b.n])
	return nil
}

// RemoveAt deletes the byte at offset off (0..Len()-1) and returns it.
func (b *Buffer) RemoveAt(off int) (byte, error) {
	if off < 0 || off >= b.n {
		return 0, fmt.Errorf("remove at %d: %w", off, ErrOutOfRange)
	}
	c := b.text[off]
	copy(b.text[off:b.n-1], b.text[off+1:b.n])
	b.n--
	b.lines.rebuild(b.text[:b.n])
	return c, nil
}

// Insert stores c at the cursor and returns the advanced cursor together with
// the offset the byte was written to. The cursor moves one column right, or to
// the start of the next row when c is the line separator.
func (b *Buffer) Insert(cur Cursor, c byte) (Cursor, int) {
	cur = b.lines.Clamp(cur)
	off := b.lines.ToOffset(cur)
	// off is within [0, n] after clamping, so InsertAt cannot fail.
	_ = b.InsertAt(off, c)
	if c == Separator {
		return Cursor{Row: cur.Row + 1}, off
	}
	return Cursor{Row: cur.Row, Col: cur.Col + 1}, off
}

// DeleteBefore removes the byte immediately before the cursor. It returns the
// new cursor, the offset and value of the removed byte, and false when there
// was nothing to delete (empty buffer or cursor at offset 0).
func (b *Buffer) DeleteBefore(cur Cursor) (Cursor, int, byte, bool) {
	cur = b.lines.Clamp(cur)
	off := b.lines.ToOffset(cur)
	if b.n == 0 || off == 0 {
		return cur, 0, 0, false
	}
	c, err := b.RemoveAt(off - 1)
	if err != nil {
		return cur, 0, 0, false
	}
	if c == Separator {
		row := cur.Row - 1
		return Cursor{Row: row, Col: b.lines.LineLen(row)}, off - 1, c, true
	}
	return Cursor{Row: cur.Row, Col: cur.Col - 1}, off - 1, c, true
}

// Extract returns the bytes between two cursors for copying. Each spanned row
// contributes the bytes from its start column (start.Col on the first row, 0
// otherwise) to its end column (end.Col on the last row, the row length
// otherwise); rows are joined with the separator. start must not be after end.
func (b *Buffer) Extract(start, end Cursor) []byte {
	start = b.lines.Clamp(start)
	end = b.lines.Clamp(end)
	if end.Before(start) {
		start, end = end, start
	}
	var out []byte
	for row := start.Row; row <= end.Row; row++ {
		from, to := 0, b.lines.LineLen(row)
		if row == start.Row {
			from = start.Col
		}
		if row == end.Row {
			to = end.Col
		}
		base := b.lines.LineStart(row)
		if to > from {
			out = append(out, b.text[base+from:base+to]...)
		}
		if row != end.Row {
			out = append(out, Separator)
		}
	}
	return out
}

// Line returns a copy of the bytes of row without its separator.
func (b *Buffer) Line(row int) []byte {
	if row < 0 || row >= b.lines.Lines() {
		return nil
	}
	start := b.lines.LineStart(row)
	return append([]byte(nil), b.text[start:start+b.lines.LineLen(row)]...)
}
