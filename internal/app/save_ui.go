package app

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// runSaveAsPrompt asks for a file path on the status line and saves the
// buffer there. Esc cancels; Enter attempts to write and stays in the prompt
// on failure.
func (r *Runner) runSaveAsPrompt() {
	if r.Screen == nil {
		return
	}
	s := r.Screen
	input := r.Editor.Path()
	errMsg := ""
	for {
		r.draw()
		drawPrompt(s, "Save As: "+input, errMsg)
		s.Show()

		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return
		case *tcell.EventKey:
			switch ev.Key() {
			case tcell.KeyEsc:
				r.Editor.SetStatus("save cancelled")
				r.Logger.Event("save.cancel", nil)
				return
			case tcell.KeyEnter:
				if input == "" {
					errMsg = "path required"
					continue
				}
				if err := r.Editor.SaveAs(input); err != nil {
					errMsg = err.Error()
					continue
				}
				return
			case tcell.KeyBackspace, tcell.KeyBackspace2:
				if len(input) > 0 {
					_, size := utf8.DecodeLastRuneInString(input)
					input = input[:len(input)-size]
				}
				continue
			case tcell.KeyRune:
				if ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
					input += string(ev.Rune())
					errMsg = ""
				}
			}
		case *tcell.EventResize:
			s.Sync()
		}
	}
}

// drawPrompt overwrites the status line with prompt and, right-aligned, an
// error message in red.
func drawPrompt(s tcell.Screen, prompt, errMsg string) {
	width, height := s.Size()
	y := height - 1
	for i := 0; i < width; i++ {
		s.SetContent(i, y, ' ', nil, styleStatus)
	}
	end := putString(s, 0, y, runewidth.Truncate(prompt, width, "…"), styleStatus)
	if errMsg == "" {
		return
	}
	start := width - runewidth.StringWidth(errMsg)
	if start < end+1 {
		start = end + 1
	}
	if start < width {
		putString(s, start, y, runewidth.Truncate(errMsg, width-start, ""), styleError)
	}
}
