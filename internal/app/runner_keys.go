package app

import (
	"context"

	"example.com/ink/pkg/editor"
	"example.com/ink/pkg/keys"
	"github.com/gdamore/tcell/v2"
)

// translateKey maps a tcell key event to an editor key code. Runes outside
// ASCII and keys without an editor meaning report false.
func translateKey(ev *tcell.EventKey) (keys.Key, bool) {
	switch ev.Key() {
	case tcell.KeyRune:
		r := ev.Rune()
		if r >= 128 {
			return keys.KeyNone, false
		}
		if ev.Modifiers()&tcell.ModCtrl != 0 {
			switch {
			case r >= 'a' && r <= 'z':
				return keys.Ctrl(byte(r)), true
			case r >= 'A' && r <= 'Z':
				return keys.Ctrl(byte(r - 'A' + 'a')), true
			}
		}
		return keys.Key(r), true
	case tcell.KeyUp:
		return keys.KeyUp, true
	case tcell.KeyDown:
		return keys.KeyDown, true
	case tcell.KeyLeft:
		return keys.KeyLeft, true
	case tcell.KeyRight:
		return keys.KeyRight, true
	}
	// Control keys, Tab, Enter, Escape, Backspace (8) and DEL (127) share
	// their ASCII codes.
	if k := ev.Key(); k >= 0 && k < 128 {
		return keys.Key(k), true
	}
	return keys.KeyNone, false
}

// handleKeyEvent forwards a key to the editor and acts on the resulting
// events. It returns true if the runner should quit.
func (r *Runner) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) bool {
	k, ok := translateKey(ev)
	if !ok {
		r.Logger.Event("key.ignored", map[string]any{"key": int(ev.Key()), "rune": string(ev.Rune())})
		return false
	}
	for _, e := range r.Editor.HandleKey(k) {
		switch e.Kind {
		case editor.EventQuit:
			r.Logger.Event("action", map[string]any{"name": "quit"})
			return true
		case editor.EventNeedPath:
			r.runSaveAsPrompt()
			if r.Watch {
				r.rewatch(ctx)
			}
		case editor.EventSaved:
			if r.Watch && e.Path != r.watching {
				r.rewatch(ctx)
			}
		}
	}
	r.draw()
	return false
}
