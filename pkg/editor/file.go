package editor

import (
	"errors"
	"fmt"
	"hash/crc32"
	"io/fs"
	"os"

	"example.com/ink/pkg/buffer"
)

// ErrNoPath is returned when saving a buffer that has no file name.
var ErrNoPath = errors.New("no file name")

// LoadFile reads path into the buffer, replacing its contents, and binds the
// editor to path. The cursor ends after the loaded text and the history is
// cleared. A missing file leaves an empty buffer bound to path and is not an
// error. Other failures keep the current buffer and are reported on the status
// line as well as returned.
func (e *Editor) LoadFile(path string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.log.Event("open.attempt", map[string]any{"file": path})
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			e.reset(nil)
			e.path = path
			e.status = "new file: " + path
			e.log.Event("open.new", map[string]any{"file": path})
			return nil
		}
		e.status = "open failed: " + err.Error()
		e.log.Event("open.error", map[string]any{"file": path, "error": err.Error()})
		return fmt.Errorf("open %s: %w", path, err)
	}
	e.reset(data)
	e.path = path
	e.diskSum = crc32.ChecksumIEEE(data)
	e.status = fmt.Sprintf("%s: %d bytes, %d lines", path, len(data), e.buf.Lines().Lines())
	e.log.Event("open.success", map[string]any{"file": path, "bytes": len(data), "lines": e.buf.Lines().Lines()})
	return nil
}

// LoadBytes replaces the buffer contents with data without binding a path.
func (e *Editor) LoadBytes(data []byte) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reset(data)
}

// reset loads data as if typed from the origin, without recording history.
func (e *Editor) reset(data []byte) {
	e.buf = buffer.New(len(data) + 64)
	e.buf.Load(data)
	e.cursor = e.buf.Lines().ToCursor(e.buf.Len())
	e.hist.Clear()
	e.sel.Reset()
	e.mode = ModeCommand
	e.dirty = false
	e.diskSum = 0
}

// Path returns the file the buffer is bound to, or "".
func (e *Editor) Path() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.path
}

// Dirty reports whether the buffer changed since it was loaded or saved.
func (e *Editor) Dirty() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dirty
}

// Save writes the buffer to its bound path.
func (e *Editor) Save() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.saveLocked().Err
}

// SaveAs binds the buffer to path and writes it there.
func (e *Editor) SaveAs(path string) error {
	if path == "" {
		return ErrNoPath
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	prev := e.path
	e.path = path
	ev := e.saveLocked()
	if ev.Err != nil {
		e.path = prev
	}
	return ev.Err
}

// saveLocked writes the buffer verbatim and reports the outcome as an event.
func (e *Editor) saveLocked() Event {
	if e.path == "" {
		e.status = "no file name"
		return Event{Kind: EventNeedPath, Err: ErrNoPath}
	}
	data := e.buf.Bytes()
	if err := os.WriteFile(e.path, data, 0644); err != nil {
		e.status = "save failed: " + err.Error()
		e.log.Event("save.error", map[string]any{"file": e.path, "error": err.Error()})
		return Event{Kind: EventSaveFailed, Path: e.path, Err: fmt.Errorf("save %s: %w", e.path, err)}
	}
	e.dirty = false
	e.diskSum = crc32.ChecksumIEEE(data)
	e.status = fmt.Sprintf("saved %s (%d bytes)", e.path, len(data))
	e.log.Event("save.success", map[string]any{"file": e.path, "bytes": len(data)})
	return Event{Kind: EventSaved, Path: e.path}
}

// ChangedOnDisk reports whether the bound file's contents differ from what was
// last loaded or saved.
func (e *Editor) ChangedOnDisk() (bool, error) {
	e.mu.Lock()
	path, sum := e.path, e.diskSum
	e.mu.Unlock()
	if path == "" {
		return false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return sum != 0, nil
		}
		return false, err
	}
	return crc32.ChecksumIEEE(data) != sum, nil
}
