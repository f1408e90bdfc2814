package editor

import (
	"example.com/ink/pkg/buffer"
	"example.com/ink/pkg/config"
)

// View is an immutable snapshot of everything a renderer needs.
type View struct {
	Text        []byte
	LineLengths []int
	Cursor      buffer.Cursor
	Mode        Mode
	SelStart    buffer.Cursor
	SelEnd      buffer.Cursor
	HasSel      bool
	Path        string
	Dirty       bool
	Status      string
}

// Snapshot captures the current state for rendering.
func (e *Editor) Snapshot() View {
	e.mu.Lock()
	defer e.mu.Unlock()
	start, end, ok := e.sel.Range()
	return View{
		Text:        e.buf.Bytes(),
		LineLengths: e.buf.Lines().Lengths(),
		Cursor:      e.cursor,
		Mode:        e.mode,
		SelStart:    start,
		SelEnd:      end,
		HasSel:      ok,
		Path:        e.path,
		Dirty:       e.dirty,
		Status:      e.status,
	}
}

// Lines returns the text of each line, without separators. The slices alias
// v.Text.
func (v View) Lines() [][]byte {
	out := make([][]byte, 0, len(v.LineLengths))
	off := 0
	for _, n := range v.LineLengths {
		out = append(out, v.Text[off:off+n])
		off += n + 1
	}
	return out
}

// Selected reports whether the cell at (row, col) is inside the selection,
// both ends included.
func (v View) Selected(row, col int) bool {
	if !v.HasSel {
		return false
	}
	c := buffer.Cursor{Row: row, Col: col}
	return v.SelStart.Compare(c) <= 0 && c.Compare(v.SelEnd) <= 0
}

// DefaultOptions returns Options built from the default configuration.
func DefaultOptions() Options {
	opts, err := OptionsFromConfig(config.Default())
	if err != nil {
		panic(err)
	}
	return opts
}
