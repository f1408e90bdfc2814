package buffer

// Separator is the byte that ends a line. It is never counted in a line's
// length.
const Separator byte = '\n'

// Cursor is a (row, column) position. Col may equal the row's length, meaning
// "after the last byte of the row".
type Cursor struct {
	Row int
	Col int
}

// Compare orders cursors row-major, then column-major. It returns -1, 0 or 1.
func (c Cursor) Compare(o Cursor) int {
	switch {
	case c.Row < o.Row:
		return -1
	case c.Row > o.Row:
		return 1
	case c.Col < o.Col:
		return -1
	case c.Col > o.Col:
		return 1
	}
	return 0
}

// Before reports whether c comes strictly before o in reading order.
func (c Cursor) Before(o Cursor) bool { return c.Compare(o) < 0 }

// LineIndex holds the length of every line of a buffer. It is derived from the
// buffer contents and rebuilt after each mutation.
//
// sum(lengths) + len(lengths) - 1 == size always holds, and an empty buffer
// has exactly one empty line.
type LineIndex struct {
	lengths []int
	size    int
}

// BuildLineIndex scans text once and returns its line index.
func BuildLineIndex(text []byte) LineIndex {
	var li LineIndex
	li.rebuild(text)
	return li
}

// rebuild recomputes the index in place, reusing the lengths slice.
func (li *LineIndex) rebuild(text []byte) {
	li.lengths = li.lengths[:0]
	run := 0
	for _, b := range text {
		if b == Separator {
			li.lengths = append(li.lengths, run)
			run = 0
			continue
		}
		run++
	}
	li.lengths = append(li.lengths, run)
	li.size = len(text)
}

// Lines returns the total number of lines (at least 1).
func (li LineIndex) Lines() int {
	if len(li.lengths) == 0 {
		return 1
	}
	return len(li.lengths)
}

// LineLen returns the length of row, or 0 for rows outside the index.
func (li LineIndex) LineLen(row int) int {
	if row < 0 || row >= len(li.lengths) {
		return 0
	}
	return li.lengths[row]
}

// Lengths returns a copy of the per-line lengths.
func (li LineIndex) Lengths() []int {
	if len(li.lengths) == 0 {
		return []int{0}
	}
	return append([]int(nil), li.lengths...)
}

// Size returns the number of bytes the index was built from.
func (li LineIndex) Size() int { return li.size }

// ToOffset converts a cursor to an absolute byte offset. The row must exist;
// the column is not range-checked.
func (li LineIndex) ToOffset(c Cursor) int {
	off := 0
	for r := 0; r < c.Row && r < len(li.lengths); r++ {
		off += li.lengths[r] + 1
	}
	return off + c.Col
}

// ToCursor converts an absolute offset into a cursor. It is the inverse of
// ToOffset for every offset in [0, Size()]; larger offsets clamp to the end of
// the buffer and negative ones to the start.
func (li LineIndex) ToCursor(off int) Cursor {
	if off <= 0 || len(li.lengths) == 0 {
		return Cursor{}
	}
	consumed := 0
	for row, n := range li.lengths {
		if off <= consumed+n {
			return Cursor{Row: row, Col: off - consumed}
		}
		consumed += n + 1
	}
	last := len(li.lengths) - 1
	return Cursor{Row: last, Col: li.lengths[last]}
}

// Clamp moves c to the nearest valid cursor.
func (li LineIndex) Clamp(c Cursor) Cursor {
	if c.Row < 0 {
		c.Row = 0
	}
	if c.Row >= li.Lines() {
		c.Row = li.Lines() - 1
	}
	if c.Col < 0 {
		c.Col = 0
	}
	if n := li.LineLen(c.Row); c.Col > n {
		c.Col = n
	}
	return c
}

// LineStart returns the offset of the first byte of row.
func (li LineIndex) LineStart(row int) int {
	return li.ToOffset(Cursor{Row: row})
}
