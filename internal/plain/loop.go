package plain

import (
	"context"
	"errors"
	"io"

	"example.com/ink/pkg/editor"
	"example.com/ink/pkg/keys"
	"example.com/ink/pkg/logs"
)

// Loop feeds keys from In to Editor until quit, end of input or ctx is done.
// With a nil Painter it runs headless, as used for batch input.
type Loop struct {
	Editor  *editor.Editor
	In      io.Reader
	Painter *Painter
	Logger  *logs.Logger
}

// Run drives the editor. Reaching the end of input is not an error.
func (l *Loop) Run(ctx context.Context) error {
	kr := NewKeyReader(l.In)
	l.Logger.Event("run.start", map[string]any{"file": l.Editor.Path(), "frontend": "plain", "headless": l.Painter == nil})
	defer l.Logger.Event("run.end", map[string]any{"file": l.Editor.Path()})
	if err := l.paint(); err != nil {
		return err
	}
	for {
		if err := ctx.Err(); err != nil {
			return nil
		}
		k, err := kr.ReadKey()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		for _, ev := range l.Editor.HandleKey(k) {
			switch ev.Kind {
			case editor.EventQuit:
				return nil
			case editor.EventNeedPath:
				if l.Painter == nil {
					continue
				}
				if err := l.promptSaveAs(kr); err != nil {
					if errors.Is(err, io.EOF) {
						return nil
					}
					return err
				}
			}
		}
		if err := l.paint(); err != nil {
			return err
		}
	}
}

func (l *Loop) paint() error {
	if l.Painter == nil {
		return nil
	}
	return l.Painter.Paint(l.Editor.Snapshot())
}

// promptSaveAs reads a path on the status line. Enter saves, Esc cancels.
func (l *Loop) promptSaveAs(kr *KeyReader) error {
	var input []byte
	msg := ""
	for {
		status := "Save As: " + string(input)
		if msg != "" {
			status += "  (" + msg + ")"
		}
		l.Editor.SetStatus(status)
		if err := l.paint(); err != nil {
			return err
		}
		k, err := kr.ReadKey()
		if err != nil {
			return err
		}
		switch {
		case k == keys.KeyEscape:
			l.Editor.SetStatus("save cancelled")
			return nil
		case keys.IsEnter(k):
			if len(input) == 0 {
				msg = "path required"
				continue
			}
			if err := l.Editor.SaveAs(string(input)); err != nil {
				msg = err.Error()
				continue
			}
			return nil
		case keys.IsBackspace(k):
			if len(input) > 0 {
				input = input[:len(input)-1]
			}
		case k >= 32 && k < 127:
			input = append(input, k.Byte())
			msg = ""
		}
	}
}
