package logs

import (
	"bufio"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	envSwitch = "INK_LOG"
	envFile   = "INK_LOG_FILE"

	defaultFile = "ink.log"
)

// Logger emits one JSON object per line. Every object carries "time",
// "event" and "session"; caller fields are merged on top of those.
// A nil Logger, or one that has been closed, drops events.
type Logger struct {
	mu      sync.Mutex
	out     *bufio.Writer
	closer  io.Closer
	session string
}

// NewFromEnv opens the log named by INK_LOG_FILE, or ./ink.log when only
// INK_LOG is truthy. With neither set, or when the file cannot be opened,
// it returns a logger that discards everything.
func NewFromEnv() *Logger {
	path := os.Getenv(envFile)
	if path == "" {
		if !truthy(os.Getenv(envSwitch)) {
			return &Logger{}
		}
		path = defaultFile
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return &Logger{}
	}
	return New(f)
}

func truthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "0", "false", "off", "no":
		return false
	}
	return true
}

// New returns a logger writing to w under a fresh session id. Close also
// closes w when it implements io.Closer.
func New(w io.Writer) *Logger {
	l := &Logger{out: bufio.NewWriter(w), session: uuid.NewString()}
	l.closer, _ = w.(io.Closer)
	return l
}

// Session returns the id stamped on every record, or "" when disabled.
func (l *Logger) Session() string {
	if l == nil {
		return ""
	}
	return l.session
}

// Close flushes pending output and releases the writer. Later events are
// dropped.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return
	}
	_ = l.out.Flush()
	if l.closer != nil {
		_ = l.closer.Close()
	}
	l.out, l.closer = nil, nil
}

// Event records name with fields. Typical fields are key, mode, action,
// row, col, buffer_len, file and error.
func (l *Logger) Event(name string, fields map[string]any) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.out == nil {
		return
	}
	rec := make(map[string]any, len(fields)+3)
	for k, v := range fields {
		rec[k] = v
	}
	rec["time"] = time.Now().Format(time.RFC3339Nano)
	rec["event"] = name
	rec["session"] = l.session
	if err := json.NewEncoder(l.out).Encode(rec); err != nil {
		return
	}
	_ = l.out.Flush()
}
