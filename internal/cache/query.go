// Package cache keeps per-collection snapshots of remote data and
// invalidates them after writes.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/Skotchmaster/orders_admin/pkg/logging"
)

const DefaultStaleTime = 60 * time.Second

// Query is one cached collection. Readers within the staleness window get
// the snapshot; otherwise concurrent readers share a single fetch.
type Query[T any] struct {
	key   string
	stale time.Duration
	fetch func(ctx context.Context) (T, error)
	store Store
	now   func() time.Time

	mu        sync.Mutex
	value     T
	fetchedAt time.Time
	valid     bool
	gen       uint64

	group singleflight.Group
}

// NewQuery builds a query over fetch. store may be nil.
func NewQuery[T any](key string, stale time.Duration, store Store, fetch func(ctx context.Context) (T, error)) *Query[T] {
	return &Query[T]{
		key:   key,
		stale: stale,
		fetch: fetch,
		store: store,
		now:   time.Now,
	}
}

func (q *Query[T]) Key() string { return q.key }

func (q *Query[T]) Get(ctx context.Context) (T, error) {
	q.mu.Lock()
	if q.valid && q.now().Sub(q.fetchedAt) < q.stale {
		v := q.value
		q.mu.Unlock()
		return v, nil
	}
	gen := q.gen
	q.mu.Unlock()

	res, err, _ := q.group.Do(strconv.FormatUint(gen, 10), func() (any, error) {
		return q.load(logging.Detach(ctx), gen)
	})
	if err != nil {
		var zero T
		return zero, err
	}
	return res.(T), nil
}

func (q *Query[T]) load(ctx context.Context, gen uint64) (T, error) {
	l := logging.FromContext(ctx).With("cache_key", q.key)

	if q.store != nil {
		var v T
		ok, err := q.store.Load(ctx, q.key, &v)
		if err != nil {
			l.Warn("cache_store_load_error", "error", err)
		}
		if ok {
			q.set(gen, v)
			return v, nil
		}
	}

	v, err := q.fetch(ctx)
	if err != nil {
		return v, err
	}
	if q.set(gen, v) && q.store != nil {
		if err := q.store.Save(ctx, q.key, v, q.stale); err != nil {
			l.Warn("cache_store_save_error", "error", err)
		}
	}
	return v, nil
}

// set stores v unless the query was invalidated after the fetch started.
func (q *Query[T]) set(gen uint64, v T) bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	if gen != q.gen {
		return false
	}
	q.value = v
	q.fetchedAt = q.now()
	q.valid = true
	return true
}

// Invalidate drops the snapshot. A fetch already in flight still answers its
// own callers but is not kept.
func (q *Query[T]) Invalidate(ctx context.Context) {
	q.mu.Lock()
	q.gen++
	q.valid = false
	var zero T
	q.value = zero
	q.mu.Unlock()

	if q.store != nil {
		if err := q.store.Delete(ctx, q.key); err != nil {
			logging.FromContext(ctx).Warn("cache_store_delete_error", "cache_key", q.key, "error", err)
		}
	}
}
