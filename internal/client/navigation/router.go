// Package navigation tracks the current view of the terminal client.
package navigation

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
)

// Router is an in-memory location stack. Navigating to the current location
// is a no-op, which makes redirects issued by concurrent failures collapse
// into one.
type Router struct {
	mu        sync.Mutex
	current   string
	history   []string
	redirects int
	pending   bool
	log       logging.Logger
}

func NewRouter(start string, log logging.Logger) *Router {
	if log == nil {
		log = logging.Discard()
	}
	return &Router{current: start, log: log}
}

// Navigate moves to path. With replace the current entry is overwritten
// instead of pushed onto the history. It reports whether the location changed.
func (r *Router) Navigate(ctx context.Context, path string, replace bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if path == r.current {
		return false
	}
	if !replace && r.current != "" {
		r.history = append(r.history, r.current)
	}
	r.log.Debug(ctx, "navigate", "from", r.current, "to", path, "replace", replace)
	r.current = path
	if replace {
		r.redirects++
	}
	r.pending = true
	return true
}

// Back returns to the previous location, if there is one.
func (r *Router) Back(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := len(r.history)
	if n == 0 {
		return false
	}
	prev := r.history[n-1]
	r.history = r.history[:n-1]
	r.log.Debug(ctx, "navigate back", "from", r.current, "to", prev)
	r.current = prev
	r.pending = true
	return true
}

func (r *Router) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.current
}

// Redirects counts replacing navigations, i.e. redirects.
func (r *Router) Redirects() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redirects
}

// TakePending reports whether the location changed since the last call and
// resets the flag. The view loop uses it to notice navigation performed
// while a view was running.
func (r *Router) TakePending() (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.pending
	r.pending = false
	return r.current, p
}
