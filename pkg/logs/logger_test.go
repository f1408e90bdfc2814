package logs

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestEventWritesJSONLine(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Event("action", map[string]any{"name": "undo", "buffer_len": 3})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("expected one JSON record, got %q: %v", buf.String(), err)
	}
	if rec["event"] != "action" || rec["name"] != "undo" {
		t.Fatalf("unexpected record: %v", rec)
	}
	if rec["session"] != l.Session() || l.Session() == "" {
		t.Fatalf("expected session id on record, got %v", rec["session"])
	}
}

func TestDisabledAndNilLoggersDropEvents(t *testing.T) {
	var nilLogger *Logger
	nilLogger.Event("x", nil)
	nilLogger.Close()

	l := &Logger{}
	l.Event("x", nil)
	l.Close()
}

func TestNewFromEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ink.log")
	t.Setenv("INK_LOG", "")
	t.Setenv("INK_LOG_FILE", path)
	l := NewFromEnv()
	l.Event("run.start", map[string]any{"file": "a.txt"})
	l.Close()
	l.Event("after.close", nil)

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 || !strings.Contains(lines[0], `"run.start"`) {
		t.Fatalf("expected a single run.start record, got %q", data)
	}
}

func TestNewFromEnvDisabled(t *testing.T) {
	for _, v := range []string{"", "0", "false", "OFF"} {
		t.Setenv("INK_LOG", v)
		t.Setenv("INK_LOG_FILE", "")
		l := NewFromEnv()
		if l.Session() != "" {
			t.Fatalf("INK_LOG=%q: expected a disabled logger", v)
		}
	}
}

func TestEventKeepsReservedFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)
	l.Event("save", map[string]any{"event": "spoofed", "file": "a.txt"})

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["event"] != "save" || rec["file"] != "a.txt" {
		t.Fatalf("unexpected record: %v", rec)
	}
}
