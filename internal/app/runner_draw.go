package app

import (
	"fmt"

	"example.com/ink/pkg/buffer"
	"example.com/ink/pkg/editor"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

var (
	styleText      = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleControl   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleSelection = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleStatus    = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorWhite)
	styleError     = tcell.StyleDefault.Foreground(tcell.ColorRed).Background(tcell.ColorWhite)
)

const splash = "ink: no file. Press i to type, F1 for help"

func cursorStyle(m editor.Mode) tcell.Style {
	color := tcell.ColorGreen
	switch m {
	case editor.ModeInsert:
		color = tcell.ColorBlue
	case editor.ModeVisual:
		color = tcell.ColorFuchsia
	}
	return tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(color).Attributes(tcell.AttrBlink)
}

// draw renders the current editor snapshot, or the help screen.
func (r *Runner) draw() {
	if r.Screen == nil {
		return
	}
	if r.ShowHelp {
		drawHelp(r.Screen, r.Editor.Bindings())
		return
	}
	v := r.Editor.Snapshot()
	r.scrollTo(v.Cursor)
	drawView(r.Screen, v, r.TopLine, r.LeftCol)
}

// scrollTo adjusts the viewport so the cursor cell is visible.
func (r *Runner) scrollTo(c buffer.Cursor) {
	width, height := r.Screen.Size()
	rows := height - 1
	if rows < 1 {
		rows = 1
	}
	if c.Row < r.TopLine {
		r.TopLine = c.Row
	}
	if c.Row >= r.TopLine+rows {
		r.TopLine = c.Row - rows + 1
	}
	if c.Col < r.LeftCol {
		r.LeftCol = c.Col
	}
	if width > 0 && c.Col >= r.LeftCol+width {
		r.LeftCol = c.Col - width + 1
	}
}

// cell returns how a buffer byte is shown. Tabs occupy a single cell.
func cell(b byte) (rune, tcell.Style) {
	switch {
	case b == '\t':
		return ' ', styleText
	case b < 32 || b >= 127:
		return '?', styleControl
	}
	return rune(b), styleText
}

func drawView(s tcell.Screen, v editor.View, top, left int) {
	width, height := s.Size()
	s.Clear()
	rows := height - 1
	cs := cursorStyle(v.Mode)
	lines := v.Lines()
	for y := 0; y < rows && top+y < len(lines); y++ {
		row := top + y
		line := lines[row]
		for x := 0; x < width; x++ {
			col := left + x
			atCursor := row == v.Cursor.Row && col == v.Cursor.Col
			ch, style := ' ', styleText
			if col < len(line) {
				ch, style = cell(line[col])
			} else if !atCursor {
				break
			}
			if v.Selected(row, col) {
				style = styleSelection
			}
			if atCursor {
				style = cs
			}
			s.SetContent(x, y, ch, nil, style)
		}
	}
	if len(v.Text) == 0 && v.Path == "" && rows > 2 {
		putString(s, (width-runewidth.StringWidth(splash))/2, rows/2, splash, styleControl)
	}
	drawStatus(s, v, width, height-1)
	s.Show()
}

// statusText builds the left and right parts of the status line.
func statusText(v editor.View) (string, string) {
	name := v.Path
	if name == "" {
		name = "[No File]"
	}
	left := " " + v.Mode.String() + "  " + name
	if v.Dirty {
		left += " [+]"
	}
	if v.Status != "" {
		left += "  " + v.Status
	}
	right := fmt.Sprintf("%d:%d ", v.Cursor.Row+1, v.Cursor.Col+1)
	return left, right
}

func drawStatus(s tcell.Screen, v editor.View, width, y int) {
	if y < 0 {
		return
	}
	for x := 0; x < width; x++ {
		s.SetContent(x, y, ' ', nil, styleStatus)
	}
	left, right := statusText(v)
	rw := runewidth.StringWidth(right)
	avail := width - rw - 1
	if avail < 0 {
		avail = width
		right = ""
	}
	putString(s, 0, y, runewidth.Truncate(left, avail, "…"), styleStatus)
	if right != "" {
		putString(s, width-rw, y, right, styleStatus)
	}
}

// putString writes str starting at x and returns the column after it.
func putString(s tcell.Screen, x, y int, str string, style tcell.Style) int {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += runewidth.RuneWidth(r)
	}
	return x
}

func drawHelp(s tcell.Screen, bindings []editor.Binding) {
	width, height := s.Size()
	s.Clear()
	s.SetStyle(tcell.StyleDefault)
	lines := []string{
		"Help:",
		"- F1: Show this help; any key closes it",
		"- Insert mode: type to insert, Enter for a new line",
		"- Insert mode: Backspace deletes, Esc returns to command mode",
		"- Visual mode: motions extend the selection, Esc cancels",
		"- Arrow keys move the cursor in every mode",
		"",
		"Command keys:",
	}
	for _, b := range bindings {
		lines = append(lines, fmt.Sprintf("  %-8s %s", b.Key, b.Command))
	}
	y := (height - len(lines)) / 2
	if y < 0 {
		y = 0
	}
	for i, line := range lines {
		x := (width - runewidth.StringWidth(line)) / 2
		if x < 0 {
			x = 0
		}
		putString(s, x, y+i, line, styleText)
	}
	s.Show()
}
