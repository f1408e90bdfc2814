// Package editor owns the state of one editing session and turns key codes
// into buffer, selection, history and clipboard updates.
package editor

import (
	"errors"
	"fmt"
	"sync"

	"example.com/ink/pkg/buffer"
	"example.com/ink/pkg/clipboard"
	"example.com/ink/pkg/config"
	"example.com/ink/pkg/history"
	"example.com/ink/pkg/keys"
	"example.com/ink/pkg/logs"
	"example.com/ink/pkg/selection"
)

// EventKind identifies a notification for the frontend.
type EventKind int

const (
	EventSaved EventKind = iota
	EventSaveFailed
	EventNeedPath
	EventQuit
)

// Event is emitted by HandleKey and Autosave for the frontend to act on.
type Event struct {
	Kind EventKind
	Path string
	Err  error
}

// Options configures a new Editor.
type Options struct {
	HistoryCapacity int
	GroupPaste      bool
	Keymap          Keymap
	Mirror          clipboard.Mirror
	Logger          *logs.Logger
}

// OptionsFromConfig derives Options from a loaded configuration.
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	km, err := NewKeymap(cfg.Keymap)
	if err != nil {
		return Options{}, fmt.Errorf("keymap: %w", err)
	}
	opts := Options{
		HistoryCapacity: cfg.HistoryCapacity,
		GroupPaste:      cfg.GroupPaste,
		Keymap:          km,
	}
	if cfg.SystemClipboard {
		opts.Mirror = clipboard.System{}
	}
	return opts, nil
}

// Editor is the single owner of a buffer and everything derived from it.
// All exported methods are safe for concurrent use; each key is applied
// atomically with respect to other calls.
type Editor struct {
	mu sync.Mutex

	buf    *buffer.Buffer
	cursor buffer.Cursor
	mode   Mode
	hist   *history.History
	sel    selection.Tracker
	clip   *clipboard.Clipboard
	keymap Keymap

	groupPaste bool
	path       string
	dirty      bool
	status     string
	diskSum    uint32
	log        *logs.Logger
}

// New creates an editor with an empty buffer in command mode.
func New(opts Options) *Editor {
	km := opts.Keymap
	if km == nil {
		km = DefaultKeymap()
	}
	return &Editor{
		buf:        buffer.New(0),
		hist:       history.New(opts.HistoryCapacity),
		clip:       clipboard.New(opts.Mirror),
		keymap:     km,
		groupPaste: opts.GroupPaste,
		log:        opts.Logger,
	}
}

// HandleKey applies one key and returns the events it produced.
func (e *Editor) HandleKey(k keys.Key) []Event {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.status = ""
	from := e.mode
	next, effects := Transition(e.mode, k, e.keymap)
	e.mode = next
	e.log.Event("key", map[string]any{"key": k.String(), "mode": from.String(), "effects": len(effects)})

	var events []Event
	for _, eff := range effects {
		if ev, ok := e.apply(eff); ok {
			events = append(events, ev)
		}
	}
	if e.mode != ModeVisual && e.sel.Active() {
		e.sel.Reset()
	}
	return events
}

func (e *Editor) apply(eff Effect) (Event, bool) {
	switch eff.Kind {
	case EffInsert:
		e.insert(eff.Byte)
	case EffDeleteBefore:
		e.deleteBefore()
	case EffMove:
		e.move(eff.Motion)
	case EffBeginSelection:
		e.sel.Begin(e.cursor)
	case EffExtendSelection:
		e.sel.Update(e.cursor)
	case EffResetSelection:
		e.sel.Reset()
	case EffUndo:
		e.undo()
	case EffRedo:
		e.redo()
	case EffCopy:
		e.copySelection()
	case EffPaste:
		e.paste()
	case EffSave:
		return e.saveLocked(), true
	case EffQuit:
		e.log.Event("action", map[string]any{"name": "quit", "dirty": e.dirty})
		return Event{Kind: EventQuit, Path: e.path}, true
	}
	return Event{}, false
}

func (e *Editor) insert(c byte) {
	cur, off := e.buf.Insert(e.cursor, c)
	e.cursor = cur
	e.hist.Record(history.Action{Kind: history.Insert, Offset: off, Byte: c})
	e.dirty = true
}

func (e *Editor) deleteBefore() {
	cur, off, c, ok := e.buf.DeleteBefore(e.cursor)
	if !ok {
		return
	}
	e.cursor = cur
	e.hist.Record(history.Action{Kind: history.Delete, Offset: off, Byte: c})
	e.dirty = true
}

func (e *Editor) move(m Motion) {
	li := e.buf.Lines()
	c := e.cursor
	switch m {
	case MoveLeft:
		if c.Col > 0 {
			c.Col--
		}
	case MoveRight:
		if c.Col < li.LineLen(c.Row) {
			c.Col++
		}
	case MoveUp:
		if c.Row > 0 {
			c.Row--
		}
	case MoveDown:
		if c.Row < li.Lines()-1 {
			c.Row++
		}
	case MoveWordNext:
		c = li.ToCursor(buffer.NextWordStart(e.buf, li.ToOffset(c)))
	case MoveWordBack:
		c = li.ToCursor(buffer.WordStart(e.buf, li.ToOffset(c)))
	case MoveWordEnd:
		c = li.ToCursor(buffer.WordEnd(e.buf, li.ToOffset(c)))
	}
	e.cursor = li.Clamp(c)
}

func (e *Editor) undo() {
	off, err := e.hist.Undo(e.buf)
	if err != nil {
		e.historyError("undo", err, history.ErrNothingToUndo)
		return
	}
	e.cursor = e.buf.Lines().ToCursor(off)
	e.dirty = true
	e.log.Event("action", map[string]any{"name": "undo", "row": e.cursor.Row, "col": e.cursor.Col, "buffer_len": e.buf.Len()})
}

func (e *Editor) redo() {
	off, err := e.hist.Redo(e.buf)
	if err != nil {
		e.historyError("redo", err, history.ErrNothingToRedo)
		return
	}
	e.cursor = e.buf.Lines().ToCursor(off)
	e.dirty = true
	e.log.Event("action", map[string]any{"name": "redo", "row": e.cursor.Row, "col": e.cursor.Col, "buffer_len": e.buf.Len()})
}

// historyError reports a failed undo/redo. An empty stack is not an error.
func (e *Editor) historyError(name string, err, empty error) {
	if errors.Is(err, empty) {
		return
	}
	e.status = name + " failed: " + err.Error()
	e.log.Event(name+".error", map[string]any{"error": err.Error()})
}

func (e *Editor) copySelection() {
	start, end, ok := e.sel.Range()
	if !ok {
		return
	}
	data := e.buf.Extract(start, end)
	if err := e.clip.Set(data); err != nil {
		e.log.Event("clipboard.error", map[string]any{"error": err.Error()})
	}
	e.status = fmt.Sprintf("copied %d bytes", len(data))
	e.log.Event("action", map[string]any{"name": "copy", "bytes": len(data)})
}

func (e *Editor) paste() {
	if !e.clip.HasData() {
		return
	}
	data := e.clip.Bytes()
	if e.groupPaste {
		e.hist.BeginGroup()
		defer e.hist.EndGroup()
	}
	for _, c := range data {
		e.insert(c)
	}
	e.log.Event("action", map[string]any{"name": "paste", "bytes": len(data), "buffer_len": e.buf.Len()})
}

// Mode returns the current mode.
func (e *Editor) Mode() Mode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.mode
}

// Cursor returns the current cursor.
func (e *Editor) Cursor() buffer.Cursor {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cursor
}

// Text returns a copy of the buffer contents.
func (e *Editor) Text() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.buf.Bytes()
}

// CanUndo reports whether an undo would change the buffer.
func (e *Editor) CanUndo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanUndo()
}

// CanRedo reports whether a redo would change the buffer.
func (e *Editor) CanRedo() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.hist.CanRedo()
}

// Clipboard returns a copy of the clipboard contents.
func (e *Editor) Clipboard() []byte {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.clip.Bytes()
}

// Bindings lists the active keymap.
func (e *Editor) Bindings() []Binding {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.keymap.Bindings()
}

// SetStatus replaces the status-line message.
func (e *Editor) SetStatus(msg string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.status = msg
}
