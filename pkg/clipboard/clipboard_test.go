package clipboard

import (
	"errors"
	"testing"
)

type recordingMirror struct {
	got []string
	err error
}

func (m *recordingMirror) WriteAll(text string) error {
	m.got = append(m.got, text)
	return m.err
}

func TestClipboard_Basic(t *testing.T) {
	c := New(nil)
	if c.HasData() {
		t.Fatalf("expected empty clipboard")
	}
	src := []byte("line1\nline2")
	if err := c.Set(src); err != nil {
		t.Fatalf("set: %v", err)
	}
	src[0] = 'X'
	if string(c.Bytes()) != "line1\nline2" {
		t.Fatalf("clipboard must own its bytes, got %q", c.Bytes())
	}
	if err := c.Set([]byte("other")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if string(c.Bytes()) != "other" || c.Len() != 5 {
		t.Fatalf("expected contents to be replaced, got %q", c.Bytes())
	}
}

func TestClipboard_Mirror(t *testing.T) {
	m := &recordingMirror{}
	c := New(m)
	if err := c.Set([]byte("abc")); err != nil {
		t.Fatalf("set: %v", err)
	}
	if len(m.got) != 1 || m.got[0] != "abc" {
		t.Fatalf("expected mirror to receive copy, got %v", m.got)
	}
}

func TestClipboard_MirrorFailureKeepsContents(t *testing.T) {
	boom := errors.New("boom")
	c := New(&recordingMirror{err: boom})
	err := c.Set([]byte("abc"))
	if !errors.Is(err, boom) {
		t.Fatalf("expected mirror error, got %v", err)
	}
	if string(c.Bytes()) != "abc" {
		t.Fatalf("expected internal contents despite mirror failure, got %q", c.Bytes())
	}
}
