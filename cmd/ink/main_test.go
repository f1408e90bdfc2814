package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// stdinFrom returns a regular file holding keys, which is never a terminal.
func stdinFrom(t *testing.T, keys string) *os.File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keys")
	if err := os.WriteFile(path, []byte(keys), 0644); err != nil {
		t.Fatalf("write keys: %v", err)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open keys: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestRun_BatchEditsAndSaves(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	target := filepath.Join(dir, "doc.txt")
	if err := os.WriteFile(target, []byte("abc"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	var stderr bytes.Buffer
	code := run(context.Background(), []string{target}, stdinFrom(t, "i!\x1bsq"), os.Stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	data, err := os.ReadFile(target)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(data) != "abc!" {
		t.Fatalf("expected %q, got %q", "abc!", data)
	}
}

func TestRun_ConfigRemap(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "ink.toml")
	if err := os.WriteFile(cfg, []byte("[keymap]\nsave = \"w\"\nword-next = \"n\"\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	target := filepath.Join(dir, "out.txt")
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", cfg, target}, stdinFrom(t, "iz\x1bwq"), os.Stdout, &stderr)
	if code != 0 {
		t.Fatalf("expected exit 0, got %d (%s)", code, stderr.String())
	}
	if data, err := os.ReadFile(target); err != nil || string(data) != "z" {
		t.Fatalf("expected remapped save to write %q, got %q (%v)", "z", data, err)
	}
}

func TestRun_BadConfig(t *testing.T) {
	cfg := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(cfg, []byte("history:\n  capacity: -1\n"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"-config", cfg}, stdinFrom(t, "q"), os.Stdout, &stderr)
	if code != 2 {
		t.Fatalf("expected exit 2, got %d", code)
	}
	if !strings.Contains(stderr.String(), "capacity") {
		t.Fatalf("expected config error on stderr, got %q", stderr.String())
	}
}

func TestRun_TooManyArgs(t *testing.T) {
	var stderr bytes.Buffer
	code := run(context.Background(), []string{"a", "b"}, stdinFrom(t, ""), os.Stdout, &stderr)
	if code != 2 || !strings.Contains(stderr.String(), "usage") {
		t.Fatalf("expected usage error, got %d %q", code, stderr.String())
	}
}
