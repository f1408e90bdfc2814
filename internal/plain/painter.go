package plain

import (
	"fmt"
	"io"
	"strings"

	"example.com/ink/pkg/editor"
	"github.com/mattn/go-runewidth"
)

const (
	escHideCursor = "\x1b[?25l"
	escShowCursor = "\x1b[?25h"
	escHome       = "\x1b[H"
	escClear      = "\x1b[2J"
	escClearLine  = "\x1b[K"
	escReverse    = "\x1b[7m"
	escReset      = "\x1b[m"
)

// Painter renders editor snapshots as full ANSI frames.
type Painter struct {
	W      io.Writer
	Width  int
	Height int

	top, left int
}

// Paint writes one frame for v.
func (p *Painter) Paint(v editor.View) error {
	rows := p.Height - 1
	if rows < 1 {
		rows = 1
	}
	p.scrollTo(v, rows)

	var sb strings.Builder
	sb.WriteString(escHideCursor)
	sb.WriteString(escHome)
	lines := v.Lines()
	for y := 0; y < rows; y++ {
		row := p.top + y
		if row < len(lines) {
			p.writeLine(&sb, v, row, lines[row])
		} else {
			sb.WriteString("~")
		}
		sb.WriteString(escClearLine)
		sb.WriteString("\r\n")
	}
	p.writeStatus(&sb, v)
	fmt.Fprintf(&sb, "\x1b[%d;%dH", v.Cursor.Row-p.top+1, v.Cursor.Col-p.left+1)
	sb.WriteString(escShowCursor)
	_, err := io.WriteString(p.W, sb.String())
	return err
}

// Clear blanks the screen and homes the cursor.
func (p *Painter) Clear() error {
	_, err := io.WriteString(p.W, escClear+escHome)
	return err
}

func (p *Painter) scrollTo(v editor.View, rows int) {
	c := v.Cursor
	if c.Row < p.top {
		p.top = c.Row
	}
	if c.Row >= p.top+rows {
		p.top = c.Row - rows + 1
	}
	if c.Col < p.left {
		p.left = c.Col
	}
	if p.Width > 0 && c.Col >= p.left+p.Width {
		p.left = c.Col - p.Width + 1
	}
}

func (p *Painter) writeLine(sb *strings.Builder, v editor.View, row int, line []byte) {
	inSel := false
	for x := 0; x < p.Width; x++ {
		col := p.left + x
		if col >= len(line) {
			break
		}
		sel := v.Selected(row, col)
		if sel != inSel {
			if sel {
				sb.WriteString(escReverse)
			} else {
				sb.WriteString(escReset)
			}
			inSel = sel
		}
		b := line[col]
		switch {
		case b == '\t':
			b = ' '
		case b < 32 || b >= 127:
			b = '?'
		}
		sb.WriteByte(b)
	}
	if inSel {
		sb.WriteString(escReset)
	}
}

func (p *Painter) writeStatus(sb *strings.Builder, v editor.View) {
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
	avail := p.Width - runewidth.StringWidth(right) - 1
	if avail < 0 {
		avail, right = p.Width, ""
	}
	left = runewidth.Truncate(left, avail, "…")
	pad := p.Width - runewidth.StringWidth(left) - runewidth.StringWidth(right)
	if pad < 0 {
		pad = 0
	}
	sb.WriteString(escReverse)
	sb.WriteString(left)
	sb.WriteString(strings.Repeat(" ", pad))
	sb.WriteString(right)
	sb.WriteString(escReset)
}
