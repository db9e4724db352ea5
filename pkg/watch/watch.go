// Package watch re-runs a build whenever the watched file's modification
// time changes, checked on a fixed polling interval. Polling is deliberate:
// the rebuild contract is "interval elapsed and the timestamp moved", which
// stays stable across editors that rename or rewrite files on save.
package watch

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Watcher polls one file and triggers rebuilds.
type Watcher struct {
	Path     string
	Interval time.Duration
	Log      zerolog.Logger
}

// Run polls until the context is cancelled, invoking rebuild after each
// observed timestamp change. Rebuild errors are logged, not fatal: the next
// save gets another chance.
func (w *Watcher) Run(ctx context.Context, rebuild func() error) error {
	interval := w.Interval
	if interval <= 0 {
		interval = time.Second
	}

	last := w.mtime()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	w.Log.Info().Str("path", w.Path).Dur("interval", interval).Msg("watching design file")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			mt := w.mtime()
			if mt.Equal(last) {
				continue
			}
			last = mt
			w.Log.Info().Str("path", w.Path).Msg("design file changed, rebuilding")
			if err := rebuild(); err != nil {
				w.Log.Error().Err(err).Msg("rebuild failed")
			}
		}
	}
}

// mtime returns the file's modification time, or the zero time while the
// file is missing (mid-save renames).
func (w *Watcher) mtime() time.Time {
	fi, err := os.Stat(w.Path)
	if err != nil {
		return time.Time{}
	}
	return fi.ModTime()
}
