// Package clipboard holds the most recently copied text.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported is returned by System when no OS clipboard utility is
// available.
var ErrUnsupported = errors.New("system clipboard unsupported")

// Mirror receives a copy of every clipboard update.
type Mirror interface {
	WriteAll(text string) error
}

// System mirrors copies to the operating system clipboard.
type System struct{}

// WriteAll writes text to the OS clipboard.
func (System) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}

// Clipboard owns a single byte sequence, replaced wholesale by each copy.
type Clipboard struct {
	data   []byte
	mirror Mirror
}

// New returns an empty clipboard. mirror may be nil.
func New(mirror Mirror) *Clipboard {
	return &Clipboard{mirror: mirror}
}

// Set replaces the contents with a copy of data. The internal contents are
// always updated; a mirror failure is returned but does not undo the copy.
func (c *Clipboard) Set(data []byte) error {
	c.data = append([]byte(nil), data...)
	if c.mirror == nil {
		return nil
	}
	if err := c.mirror.WriteAll(string(c.data)); err != nil {
		return fmt.Errorf("mirror clipboard: %w", err)
	}
	return nil
}

// Bytes returns a copy of the contents.
func (c *Clipboard) Bytes() []byte { return append([]byte(nil), c.data...) }

// Len returns the number of bytes held.
func (c *Clipboard) Len() int { return len(c.data) }

// HasData reports whether the clipboard holds any bytes.
func (c *Clipboard) HasData() bool { return len(c.data) > 0 }
