// Package typeahead runs debounced, bounded searches for the entity pickers.
package typeahead

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Skotchmaster/orders_admin/pkg/logging"
)

const (
	DefaultDelay = 300 * time.Millisecond
	DefaultLimit = 5
)

type SearchFunc[T any] func(ctx context.Context, q string, limit int) ([]T, error)

// State is what a picker shows for its current query.
type State[T any] struct {
	Query   string `json:"query"`
	Results []T    `json:"results"`
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
}

// Typeahead keeps the results of the latest query only. Every keystroke
// bumps a sequence number; a search whose number is no longer current is
// cancelled and its results dropped.
type Typeahead[T any] struct {
	search SearchFunc[T]
	delay  time.Duration
	limit  int

	mu      sync.Mutex
	seq     uint64
	query   string
	timer   *time.Timer
	cancel  context.CancelFunc
	results []T
	loading bool
	err     error
	closed  bool
}

func New[T any](search SearchFunc[T], delay time.Duration, limit int) *Typeahead[T] {
	if delay < 0 {
		delay = 0
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	return &Typeahead[T]{search: search, delay: delay, limit: limit}
}

// SetQuery records a keystroke. A blank query clears the results at once and
// never reaches the search function.
func (t *Typeahead[T]) SetQuery(ctx context.Context, q string) {
	trimmed := strings.TrimSpace(q)

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}

	t.seq++
	seq := t.seq
	t.query = q
	t.stopLocked()

	if trimmed == "" {
		t.results = nil
		t.err = nil
		t.loading = false
		return
	}

	t.loading = true
	base := logging.Detach(ctx)
	t.timer = time.AfterFunc(t.delay, func() { t.run(base, seq, trimmed) })
}

func (t *Typeahead[T]) run(base context.Context, seq uint64, q string) {
	t.mu.Lock()
	if t.closed || seq != t.seq {
		t.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(base)
	t.cancel = cancel
	t.mu.Unlock()

	res, err := t.search(ctx, q, t.limit)
	cancel()

	t.mu.Lock()
	defer t.mu.Unlock()
	if seq != t.seq {
		return
	}
	t.cancel = nil
	t.loading = false
	if err != nil {
		logging.FromContext(base).Warn("typeahead_search_error", "query", q, "error", err)
		t.err = err
		return
	}
	t.err = nil
	t.results = res
}

func (t *Typeahead[T]) stopLocked() {
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
}

func (t *Typeahead[T]) State() State[T] {
	t.mu.Lock()
	defer t.mu.Unlock()
	st := State[T]{
		Query:   t.query,
		Results: append([]T(nil), t.results...),
		Loading: t.loading,
	}
	if t.err != nil {
		st.Error = t.err.Error()
	}
	return st
}

func (t *Typeahead[T]) Results() []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]T(nil), t.results...)
}

// Close cancels any pending search. Later queries are ignored.
func (t *Typeahead[T]) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	t.seq++
	t.stopLocked()
}
