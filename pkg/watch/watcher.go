package watch

import (
	"context"
	"os"
	"time"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// ListFunc returns the paths a Watcher should track.
type ListFunc func(ctx context.Context) ([]string, error)

// fingerprint is what a poll compares between ticks.
type fingerprint struct {
	size    int64
	modTime time.Time
}

// 👀 Watcher polls a file list at an interval and triggers a debouncer
// whenever a file is added, removed, or changes size or modification time.
type Watcher struct {
	list      ListFunc
	interval  time.Duration
	debouncer *Debouncer

	last map[string]fingerprint
}

// 🏭 NewWatcher creates a watcher. The first poll only records a baseline.
func NewWatcher(list ListFunc, interval time.Duration, debouncer *Debouncer) *Watcher {
	return &Watcher{
		list:      list,
		interval:  interval,
		debouncer: debouncer,
	}
}

// 🔁 Run polls until ctx is done, then stops the debouncer. It returns nil on
// cancellation and the error of a failing poll otherwise.
func (w *Watcher) Run(ctx context.Context) error {
	logger := zerolog.Ctx(ctx)

	if _, err := w.Poll(ctx); err != nil {
		return err
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	defer w.debouncer.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("watcher stopped")
			return nil
		case <-ticker.C:
			changed, err := w.Poll(ctx)
			if err != nil {
				return err
			}
			if changed {
				logger.Debug().Int("files", len(w.last)).Msg("change detected")
				w.debouncer.Trigger()
			}
		}
	}
}

// 📸 Poll takes a new snapshot and reports whether it differs from the
// previous one. The first call never reports a change.
func (w *Watcher) Poll(ctx context.Context) (bool, error) {
	paths, err := w.list(ctx)
	if err != nil {
		return false, errors.Errorf("listing watched files: %w", err)
	}

	next := make(map[string]fingerprint, len(paths))
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			// removed between listing and stat; the next poll sees it gone
			continue
		}
		next[p] = fingerprint{size: info.Size(), modTime: info.ModTime()}
	}

	first := w.last == nil
	changed := !first && !sameSnapshot(w.last, next)
	w.last = next
	return changed, nil
}

func sameSnapshot(a, b map[string]fingerprint) bool {
	if len(a) != len(b) {
		return false
	}
	for p, fa := range a {
		fb, ok := b[p]
		if !ok || fa.size != fb.size || !fa.modTime.Equal(fb.modTime) {
			return false
		}
	}
	return true
}
