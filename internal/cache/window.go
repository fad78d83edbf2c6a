package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	count   int
	resetAt time.Time
}

// Window is an in-memory fixed-window counter keyed by caller id. The
// transport uses it to cap join attempts per client IP.
type Window struct {
	burst  int
	window time.Duration

	mu      sync.Mutex
	entries map[string]*entry
	now     func() time.Time
}

func NewWindow(burst int, window time.Duration) *Window {
	if burst <= 0 {
		burst = 10
	}
	if window <= 0 {
		window = time.Minute
	}
	return &Window{
		burst:   burst,
		window:  window,
		entries: map[string]*entry{},
		now:     time.Now,
	}
}

// Allow records one hit for key and reports whether it stays within the
// burst for the current window.
func (w *Window) Allow(key string) bool {
	now := w.now()
	w.mu.Lock()
	defer w.mu.Unlock()

	e := w.entries[key]
	if e == nil || !now.Before(e.resetAt) {
		w.entries[key] = &entry{count: 1, resetAt: now.Add(w.window)}
		return true
	}
	e.count++
	return e.count <= w.burst
}

// StartJanitor sweeps expired entries until ctx is cancelled.
func (w *Window) StartJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case now := <-ticker.C:
				w.sweep(now)
			}
		}
	}()
}

func (w *Window) sweep(now time.Time) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	removed := 0
	for key, e := range w.entries {
		if !now.Before(e.resetAt) {
			delete(w.entries, key)
			removed++
		}
	}
	return removed
}
