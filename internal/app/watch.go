package app

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/gdamore/tcell/v2"
)

// diskChanged is posted when the bound file is modified by someone else.
type diskChanged struct {
	path string
}

// rewatch (re)starts the watcher on the editor's current path. The watcher
// goroutine never touches editor state beyond ChangedOnDisk; it only posts
// events into the screen queue.
func (r *Runner) rewatch(ctx context.Context) {
	path := r.Editor.Path()
	if path == r.watching && r.stopWatch != nil {
		return
	}
	if r.stopWatch != nil {
		r.stopWatch()
		r.stopWatch = nil
		r.watching = ""
	}
	if path == "" || r.Screen == nil {
		return
	}
	stop, err := watchFile(ctx, path, r.Screen, r.Editor.ChangedOnDisk, r.Logger.Event)
	if err != nil {
		r.Logger.Event("watch.error", map[string]any{"file": path, "error": err.Error()})
		return
	}
	r.stopWatch = stop
	r.watching = path
	r.Logger.Event("watch.start", map[string]any{"file": path})
}

// watchFile watches the directory holding path so that files replaced by
// rename are still seen. changed filters out events caused by our own saves.
func watchFile(ctx context.Context, path string, s tcell.Screen, changed func() (bool, error), logf func(string, map[string]any)) (func(), error) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	path = filepath.Clean(path)
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	go func() {
		defer w.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-w.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != path || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
					continue
				}
				diff, err := changed()
				if err != nil || !diff {
					continue
				}
				logf("watch.changed", map[string]any{"file": path})
				s.PostEvent(tcell.NewEventInterrupt(diskChanged{path: path}))
			case err, ok := <-w.Errors:
				if !ok {
					return
				}
				logf("watch.error", map[string]any{"file": path, "error": err.Error()})
			}
		}
	}()
	return cancel, nil
}
