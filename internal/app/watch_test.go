package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
)

func TestWatchFile_PostsChange(t *testing.T) {
	s := newSimScreen(t)
	path := filepath.Join(t.TempDir(), "w.txt")
	if err := os.WriteFile(path, []byte("v1"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changed := func() (bool, error) { return true, nil }
	stop, err := watchFile(ctx, path, s, changed, func(string, map[string]any) {})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer stop()

	if err := os.WriteFile(path, []byte("v2"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := s.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()
	timeout := time.After(5 * time.Second)
	for {
		select {
		case ev := <-events:
			if in, ok := ev.(*tcell.EventInterrupt); ok {
				if dc, ok := in.Data().(diskChanged); ok {
					if dc.path != filepath.Clean(path) {
						t.Fatalf("unexpected path %q", dc.path)
					}
					return
				}
			}
		case <-timeout:
			t.Fatalf("timeout waiting for change notification")
		}
	}
}

func TestWatchFile_ChecksWatchedFile(t *testing.T) {
	s := newSimScreen(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "w.txt")
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	calls := make(chan struct{}, 16)
	changed := func() (bool, error) {
		calls <- struct{}{}
		return false, nil
	}
	stop, err := watchFile(ctx, path, s, changed, func(string, map[string]any) {})
	if err != nil {
		t.Fatalf("watch: %v", err)
	}
	defer stop()

	// unrelated files in the same directory are not checked
	if err := os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := os.WriteFile(path, []byte("x"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatalf("expected the watched file to be checked")
	}
}
