package typeahead

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	queries []string
	limits  []int
	delay   map[string]time.Duration
	fail    error
}

func (r *recorder) search(ctx context.Context, q string, limit int) ([]string, error) {
	r.mu.Lock()
	r.queries = append(r.queries, q)
	r.limits = append(r.limits, limit)
	d := r.delay[q]
	fail := r.fail
	r.mu.Unlock()

	if d > 0 {
		select {
		case <-time.After(d):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if fail != nil {
		return nil, fail
	}
	return []string{q + "-1", q + "-2"}, nil
}

func (r *recorder) seen() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.queries...)
}

func TestTypeahead_DebouncesKeystrokes(t *testing.T) {
	r := &recorder{}
	ta := New(r.search, 30*time.Millisecond, 5)
	defer ta.Close()

	ctx := context.Background()
	for _, q := range []string{"a", "an", "ann"} {
		ta.SetQuery(ctx, q)
	}

	require.Eventually(t, func() bool { return len(ta.Results()) == 2 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"ann"}, r.seen())
	assert.Equal(t, []string{"ann-1", "ann-2"}, ta.Results())
	assert.Equal(t, []int{5}, r.limits)
	assert.False(t, ta.State().Loading)
}

func TestTypeahead_BlankQueryClearsWithoutRequest(t *testing.T) {
	r := &recorder{}
	ta := New(r.search, 10*time.Millisecond, 5)
	defer ta.Close()

	ctx := context.Background()
	ta.SetQuery(ctx, "mug")
	require.Eventually(t, func() bool { return len(ta.Results()) == 2 }, time.Second, 5*time.Millisecond)

	ta.SetQuery(ctx, "   ")
	assert.Empty(t, ta.Results())
	time.Sleep(40 * time.Millisecond)
	assert.Equal(t, []string{"mug"}, r.seen())
}

func TestTypeahead_BlankQueryCancelsPending(t *testing.T) {
	r := &recorder{}
	ta := New(r.search, 30*time.Millisecond, 5)
	defer ta.Close()

	ctx := context.Background()
	ta.SetQuery(ctx, "mug")
	ta.SetQuery(ctx, "")
	time.Sleep(80 * time.Millisecond)

	assert.Empty(t, r.seen())
	assert.Empty(t, ta.Results())
}

func TestTypeahead_StaleResultsDiscarded(t *testing.T) {
	r := &recorder{delay: map[string]time.Duration{"slow": 200 * time.Millisecond}}
	ta := New(r.search, 0, 5)
	defer ta.Close()

	ctx := context.Background()
	ta.SetQuery(ctx, "slow")
	require.Eventually(t, func() bool { return len(r.seen()) == 1 }, time.Second, 2*time.Millisecond)

	ta.SetQuery(ctx, "fast")
	require.Eventually(t, func() bool { return len(ta.Results()) == 2 }, time.Second, 5*time.Millisecond)

	time.Sleep(250 * time.Millisecond)
	assert.Equal(t, []string{"fast-1", "fast-2"}, ta.Results())
	assert.Equal(t, "fast", ta.State().Query)
}

func TestTypeahead_ErrorKeepsPreviousResults(t *testing.T) {
	r := &recorder{}
	ta := New(r.search, 0, 5)
	defer ta.Close()

	ctx := context.Background()
	ta.SetQuery(ctx, "mug")
	require.Eventually(t, func() bool { return len(ta.Results()) == 2 }, time.Second, 5*time.Millisecond)

	r.mu.Lock()
	r.fail = errors.New("down")
	r.mu.Unlock()

	ta.SetQuery(ctx, "cup")
	require.Eventually(t, func() bool { return ta.State().Error != "" }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"mug-1", "mug-2"}, ta.Results())
}
