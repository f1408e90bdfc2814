// Package app is the full-screen terminal frontend built on tcell.
package app

import (
	"context"
	"time"

	"example.com/ink/pkg/editor"
	"example.com/ink/pkg/logs"
	"github.com/gdamore/tcell/v2"
)

// Runner owns the terminal lifecycle and the event loop for one editor.
type Runner struct {
	Screen        tcell.Screen
	Editor        *editor.Editor
	Logger        *logs.Logger
	ShowHelp      bool
	TopLine       int
	LeftCol       int
	Watch         bool
	AutosaveEvery time.Duration

	stopWatch func()
	watching  string
}

// stopLoop is posted when the run context is cancelled.
type stopLoop struct{}

// New creates a Runner for ed.
func New(ed *editor.Editor, logger *logs.Logger) *Runner {
	return &Runner{Editor: ed, Logger: logger}
}

// InitScreen initializes a tcell screen if one is not already set.
func (r *Runner) InitScreen() error {
	if r.Screen != nil {
		return nil
	}
	s, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := s.Init(); err != nil {
		return err
	}
	s.SetStyle(tcell.StyleDefault)
	s.Clear()
	r.Screen = s
	return nil
}

// Fini finalizes the screen if initialized.
func (r *Runner) Fini() {
	if r.stopWatch != nil {
		r.stopWatch()
		r.stopWatch = nil
	}
	if r.Screen != nil {
		r.Screen.Fini()
		r.Screen = nil
	}
}

// Run starts the event loop and returns when the editor asks to quit or ctx is
// cancelled. A panic inside the loop restores the terminal before propagating.
func (r *Runner) Run(ctx context.Context) error {
	if r.Screen == nil {
		if err := r.InitScreen(); err != nil {
			return err
		}
		defer r.Fini()
	}
	defer func() {
		if p := recover(); p != nil {
			r.Fini()
			panic(p)
		}
	}()
	s := r.Screen

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	r.Logger.Event("run.start", map[string]any{"file": r.Editor.Path()})
	defer r.Logger.Event("run.end", map[string]any{"file": r.Editor.Path()})

	go func() {
		<-ctx.Done()
		s.PostEvent(tcell.NewEventInterrupt(stopLoop{}))
	}()
	if r.AutosaveEvery > 0 {
		go r.Editor.Autosave(ctx, r.AutosaveEvery, func(ev editor.Event) {
			s.PostEvent(tcell.NewEventInterrupt(ev))
		})
	}
	if r.Watch {
		r.rewatch(ctx)
	}

	r.draw()
	for {
		ev := s.PollEvent()
		switch ev := ev.(type) {
		case nil:
			return nil
		case *tcell.EventKey:
			if r.ShowHelp {
				r.ShowHelp = false
				r.draw()
				continue
			}
			if ev.Key() == tcell.KeyF1 {
				r.ShowHelp = true
				r.draw()
				continue
			}
			if r.handleKeyEvent(ctx, ev) {
				return nil
			}
		case *tcell.EventResize:
			s.Sync()
			r.draw()
		case *tcell.EventInterrupt:
			switch data := ev.Data().(type) {
			case stopLoop:
				return nil
			case editor.Event:
				r.Logger.Event("autosave.result", map[string]any{"kind": int(data.Kind), "file": data.Path})
			case diskChanged:
				r.Editor.SetStatus("file changed on disk: " + data.path)
			}
			r.draw()
		}
	}
}
