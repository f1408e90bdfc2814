// Package plain is a minimal frontend for terminals without tcell support and
// for batch input: raw stdin bytes in, ANSI escape sequences out.
package plain

import (
	"fmt"
	"os"

	"golang.org/x/term"
)

// RawMode puts the terminal on fd into raw mode. The returned function
// restores the previous state and is safe to call more than once.
func RawMode(fd int) (func(), error) {
	old, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("enable raw mode: %w", err)
	}
	restored := false
	return func() {
		if restored {
			return
		}
		restored = true
		if err := term.Restore(fd, old); err != nil {
			fmt.Fprintf(os.Stderr, "failed to restore terminal: %v\n", err)
		}
	}, nil
}

// Size reports the terminal size on fd, falling back to 80x24.
func Size(fd int) (int, int) {
	w, h, err := term.GetSize(fd)
	if err != nil || w <= 0 || h <= 0 {
		return 80, 24
	}
	return w, h
}
