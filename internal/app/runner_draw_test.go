package app

import (
	"strings"
	"testing"

	"example.com/ink/pkg/editor"
	"example.com/ink/pkg/keys"
	"github.com/gdamore/tcell/v2"
)

func rowText(s tcell.SimulationScreen, y int) string {
	width, _ := s.Size()
	var b strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, y)
		b.WriteRune(r)
	}
	return b.String()
}

func TestDrawView_SelectionAndCursor(t *testing.T) {
	s := newSimScreen(t)
	ed := editor.New(editor.DefaultOptions())
	ed.LoadBytes([]byte("foo\nbar"))
	for _, k := range []keys.Key{'k', 'h', 'h', 'h', 'v', 'l'} {
		ed.HandleKey(k)
	}
	drawView(s, ed.Snapshot(), 0, 0)

	for x, want := range "foo" {
		r, _, _, _ := s.GetContent(x, 0)
		if r != want {
			t.Fatalf("expected %q at (%d,0), got %q", want, x, r)
		}
	}
	if _, _, style, _ := s.GetContent(0, 0); style != styleSelection {
		t.Fatalf("expected selection style at (0,0), got %v", style)
	}
	if _, _, style, _ := s.GetContent(1, 0); style != cursorStyle(editor.ModeVisual) {
		t.Fatalf("expected cursor style at (1,0), got %v", style)
	}
	if _, _, style, _ := s.GetContent(2, 0); style != styleText {
		t.Fatalf("expected plain style at (2,0), got %v", style)
	}
	if got := strings.TrimRight(rowText(s, 1), " "); got != "bar" {
		t.Fatalf("expected second row %q, got %q", "bar", got)
	}
}

func TestDrawView_CursorAtLineEnd(t *testing.T) {
	s := newSimScreen(t)
	ed := editor.New(editor.DefaultOptions())
	ed.LoadBytes([]byte("ab"))
	drawView(s, ed.Snapshot(), 0, 0)
	r, _, style, _ := s.GetContent(2, 0)
	if r != ' ' || style != cursorStyle(editor.ModeCommand) {
		t.Fatalf("expected cursor placeholder after text, got %q %v", r, style)
	}
}

func TestDrawView_StatusLine(t *testing.T) {
	s := newSimScreen(t)
	ed := editor.New(editor.DefaultOptions())
	ed.HandleKey('i')
	ed.HandleKey('x')
	drawView(s, ed.Snapshot(), 0, 0)

	width, height := s.Size()
	status := rowText(s, height-1)
	if !strings.HasPrefix(status, " INSERT  [No File] [+]") {
		t.Fatalf("unexpected status line %q", status)
	}
	if !strings.HasSuffix(status, "1:2 ") {
		t.Fatalf("expected cursor position at the right, got %q", status)
	}
	if _, _, style, _ := s.GetContent(width-1, height-1); style != styleStatus {
		t.Fatalf("expected status style, got %v", style)
	}
}

func TestDrawStatus_Truncates(t *testing.T) {
	s := newSimScreen(t)
	s.SetSize(20, 3)
	v := editor.View{Path: "/a/very/long/path/to/some/file.txt", LineLengths: []int{0}}
	drawStatus(s, v, 20, 2)
	status := rowText(s, 2)
	if !strings.Contains(status, "…") {
		t.Fatalf("expected truncated status, got %q", status)
	}
	if !strings.HasSuffix(status, "1:1 ") {
		t.Fatalf("cursor position must survive truncation, got %q", status)
	}
}

func TestDrawView_Scrolls(t *testing.T) {
	s := newSimScreen(t)
	s.SetSize(10, 4)
	ed := editor.New(editor.DefaultOptions())
	ed.LoadBytes([]byte("1\n2\n3\n4\n5\n6"))
	r := &Runner{Screen: s, Editor: ed}
	r.draw()
	if r.TopLine != 3 {
		t.Fatalf("expected viewport to follow the cursor, top %d", r.TopLine)
	}
	if got, _, _, _ := s.GetContent(0, 2); got != '6' {
		t.Fatalf("expected last line on the last text row, got %q", got)
	}
}

func TestDrawView_Splash(t *testing.T) {
	s := newSimScreen(t)
	drawView(s, editor.New(editor.DefaultOptions()).Snapshot(), 0, 0)
	_, height := s.Size()
	if !strings.Contains(rowText(s, (height-1)/2), splash) {
		t.Fatalf("expected splash message on an empty unnamed buffer")
	}
}

func TestDrawHelp_ListsBindings(t *testing.T) {
	s := newSimScreen(t)
	r := &Runner{Screen: s, Editor: editor.New(editor.DefaultOptions()), ShowHelp: true}
	r.draw()
	_, height := s.Size()
	var all strings.Builder
	for y := 0; y < height; y++ {
		all.WriteString(rowText(s, y))
		all.WriteByte('\n')
	}
	for _, want := range []string{"Help:", "undo", "word-next", "F1"} {
		if !strings.Contains(all.String(), want) {
			t.Fatalf("expected help screen to mention %q", want)
		}
	}
}

func TestDrawPrompt_Error(t *testing.T) {
	s := newSimScreen(t)
	drawPrompt(s, "Save As: x", "path required")
	width, height := s.Size()
	row := rowText(s, height-1)
	if !strings.HasPrefix(row, "Save As: x") || !strings.HasSuffix(row, "path required") {
		t.Fatalf("unexpected prompt row %q", row)
	}
	if _, _, style, _ := s.GetContent(width-1, height-1); style != styleError {
		t.Fatalf("expected error style, got %v", style)
	}
}
