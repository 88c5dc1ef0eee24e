package uistate

import (
	"context"
	"sync"
	"time"

	"github.com/Skotchmaster/orders_admin/internal/models"
	"github.com/Skotchmaster/orders_admin/internal/typeahead"
	"github.com/Skotchmaster/orders_admin/pkg/logging"
)

type Picker string

const (
	PickerCustomers Picker = "customers"
	PickerProducts  Picker = "products"
)

func ParsePicker(s string) (Picker, bool) {
	switch p := Picker(s); p {
	case PickerCustomers, PickerProducts:
		return p, true
	}
	return "", false
}

// Searcher is the lookup backend behind the pickers.
type Searcher interface {
	SearchCustomers(ctx context.Context, q string, limit int) ([]models.CustomerOption, error)
	SearchProducts(ctx context.Context, q string, limit int) ([]models.ProductOption, error)
}

type Session struct {
	ID        string
	Draft     *OrderDraft
	Customers *typeahead.Typeahead[models.CustomerOption]
	Products  *typeahead.Typeahead[models.ProductOption]

	mu       sync.Mutex
	screens  map[Entity]Screen
	lastSeen time.Time
}

func (s *Session) Screen(e Entity) Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.screens[e]
}

func (s *Session) PatchScreen(e Entity, p ScreenPatch) Screen {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := s.screens[e].apply(p)
	s.screens[e] = next
	return next
}

// SetPickerQuery forwards a keystroke to the named picker.
func (s *Session) SetPickerQuery(ctx context.Context, p Picker, q string) {
	switch p {
	case PickerCustomers:
		s.Customers.SetQuery(ctx, q)
	case PickerProducts:
		s.Products.SetQuery(ctx, q)
	}
}

func (s *Session) PickerState(p Picker) any {
	switch p {
	case PickerCustomers:
		return s.Customers.State()
	case PickerProducts:
		return s.Products.State()
	}
	return nil
}

// ResetOrderForm clears the draft and both pickers after a submit or cancel.
func (s *Session) ResetOrderForm(ctx context.Context) {
	s.Draft.Clear()
	s.Customers.SetQuery(ctx, "")
	s.Products.SetQuery(ctx, "")
	s.PatchScreen(EntityOrders, ScreenPatch{ShowAddForm: ptr(false), EditID: ptr(0)})
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

func (s *Session) close() {
	s.Customers.Close()
	s.Products.Close()
}

func ptr[T any](v T) *T { return &v }

type Options struct {
	Delay    time.Duration
	Limit    int
	Location *time.Location
}

// Registry owns every live session.
type Registry struct {
	search Searcher
	opts   Options
	now    func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewRegistry(search Searcher, opts Options) *Registry {
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Registry{
		search:   search,
		opts:     opts,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Get returns the session for id, creating it on first use.
func (r *Registry) Get(id string) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	if s, ok := r.sessions[id]; ok {
		s.touch(now)
		return s
	}
	s := &Session{
		ID:        id,
		Draft:     newOrderDraft(r.now, r.opts.Location),
		Customers: typeahead.New(r.search.SearchCustomers, r.opts.Delay, r.opts.Limit),
		Products:  typeahead.New(r.search.SearchProducts, r.opts.Delay, r.opts.Limit),
		screens:   make(map[Entity]Screen),
		lastSeen:  now,
	}
	r.sessions[id] = s
	return s
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

// Sweep drops sessions idle for longer than idle and returns how many went.
func (r *Registry) Sweep(idle time.Duration) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := r.now().Add(-idle)
	n := 0
	for id, s := range r.sessions {
		if s.idleSince().Before(cutoff) {
			s.close()
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Run sweeps every interval until ctx is done.
func (r *Registry) Run(ctx context.Context, interval, idle time.Duration) {
	l := logging.FromContext(ctx).With("component", "uistate")
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			if n := r.Sweep(idle); n > 0 {
				l.Info("sessions_swept", "count", n, "remaining", r.Len())
			}
		}
	}
}
