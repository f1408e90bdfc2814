package editor

import (
	"context"
	"time"
)

// Autosave writes the buffer every interval while it is dirty and bound to a
// path, until ctx is done. Each attempt is passed to notify, which may be nil.
func (e *Editor) Autosave(ctx context.Context, every time.Duration, notify func(Event)) {
	if every <= 0 {
		return
	}
	t := time.NewTicker(every)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			ev, ok := e.autosaveOnce()
			if ok && notify != nil {
				notify(ev)
			}
		}
	}
}

func (e *Editor) autosaveOnce() (Event, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.dirty || e.path == "" {
		return Event{}, false
	}
	e.log.Event("autosave.attempt", map[string]any{"file": e.path})
	return e.saveLocked(), true
}
