package plain

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"example.com/ink/pkg/editor"
	"example.com/ink/pkg/keys"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readAll(t *testing.T, in string) []keys.Key {
	t.Helper()
	kr := NewKeyReader(strings.NewReader(in))
	var out []keys.Key
	for {
		k, err := kr.ReadKey()
		if err != nil {
			return out
		}
		out = append(out, k)
	}
}

func TestReadKey(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []keys.Key
	}{
		{"bytes", "ab\r", []keys.Key{'a', 'b', keys.KeyEnter}},
		{"arrows", "\x1b[A\x1b[B\x1b[C\x1b[D", []keys.Key{keys.KeyUp, keys.KeyDown, keys.KeyRight, keys.KeyLeft}},
		{"ss3 arrows", "\x1bOA", []keys.Key{keys.KeyUp}},
		{"lone escape", "\x1b", []keys.Key{keys.KeyEscape}},
		{"escape then text", "\x1bqx", []keys.Key{keys.KeyEscape, 'q', 'x'}},
		{"unknown sequence", "\x1b[Z", []keys.Key{keys.KeyEscape, '[', 'Z'}},
		{"delete", "\x7f", []keys.Key{keys.KeyDelete}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, readAll(t, tt.in))
		})
	}
}

func TestPainter_Frame(t *testing.T) {
	ed := editor.New(editor.DefaultOptions())
	ed.LoadBytes([]byte("foo\nbar"))
	for _, k := range []keys.Key{'k', 'h', 'h', 'h', 'v', 'l'} {
		ed.HandleKey(k)
	}
	var out bytes.Buffer
	p := &Painter{W: &out, Width: 30, Height: 5}
	require.NoError(t, p.Paint(ed.Snapshot()))

	frame := out.String()
	assert.Contains(t, frame, escReverse+"fo"+escReset+"o")
	assert.Contains(t, frame, "bar"+escClearLine)
	assert.Contains(t, frame, "~"+escClearLine)
	assert.Contains(t, frame, " VISUAL  [No File]")
	assert.True(t, strings.HasSuffix(frame, "\x1b[1;2H"+escShowCursor), "cursor placement missing: %q", frame)
}

func TestPainter_Scrolls(t *testing.T) {
	ed := editor.New(editor.DefaultOptions())
	ed.LoadBytes([]byte("1\n2\n3\n4\n5"))
	var out bytes.Buffer
	p := &Painter{W: &out, Width: 10, Height: 3}
	require.NoError(t, p.Paint(ed.Snapshot()))
	assert.Equal(t, 3, p.top)
	assert.True(t, strings.HasPrefix(out.String(), escHideCursor+escHome+"4"))
	assert.Contains(t, out.String(), "\x1b[2;2H")
}

func TestPainter_StatusTruncated(t *testing.T) {
	var out bytes.Buffer
	p := &Painter{W: &out, Width: 20, Height: 2}
	v := editor.View{Path: "/a/very/long/path/to/some/file.txt", LineLengths: []int{0}}
	require.NoError(t, p.Paint(v))
	assert.Contains(t, out.String(), "…")
	assert.Contains(t, out.String(), "1:1 "+escReset)
}

func TestLoop_Batch(t *testing.T) {
	ed := editor.New(editor.DefaultOptions())
	l := &Loop{Editor: ed, In: strings.NewReader("ihello\ryou\x1bu")}
	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, "hello\nyo", string(ed.Text()))
}

func TestLoop_StopsAtQuit(t *testing.T) {
	ed := editor.New(editor.DefaultOptions())
	l := &Loop{Editor: ed, In: strings.NewReader("iab\x1bqiignored")}
	require.NoError(t, l.Run(context.Background()))
	assert.Equal(t, "ab", string(ed.Text()))
}

func TestLoop_BatchSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.txt")
	ed := editor.New(editor.DefaultOptions())
	require.NoError(t, ed.LoadFile(path))
	l := &Loop{Editor: ed, In: strings.NewReader("ix\x1bsq")}
	require.NoError(t, l.Run(context.Background()))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestLoop_SaveAsPrompt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	ed := editor.New(editor.DefaultOptions())
	var out bytes.Buffer
	in := "iok\x1bs\r" + path + "z\x7f\rq"
	l := &Loop{Editor: ed, In: strings.NewReader(in), Painter: &Painter{W: &out, Width: 80, Height: 10}}
	require.NoError(t, l.Run(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "ok", string(data))
	assert.Contains(t, out.String(), "path required")
	assert.Equal(t, path, ed.Path())
}

func TestLoop_CancelledContext(t *testing.T) {
	ed := editor.New(editor.DefaultOptions())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	l := &Loop{Editor: ed, In: strings.NewReader("ix")}
	require.NoError(t, l.Run(ctx))
	assert.Empty(t, ed.Text())
}
