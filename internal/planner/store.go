package planner

import (
	"log/slog"
	"sync"
	"time"
)

// Listener is called after every dispatch with the action and the state it
// produced. Listeners run in dispatch order while the store is locked, so
// they must return quickly and must not call Dispatch.
type Listener func(a Action, next State)

// Store serializes dispatches against a single State.
type Store struct {
	mu        sync.RWMutex
	state     State
	now       func() time.Time
	listeners []Listener
	logger    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the time source used for timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithLogger sets the logger used for dispatch tracing.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

// NewStore returns a store holding an empty state whose selected date is now.
func NewStore(opts ...Option) *Store {
	s := &Store{
		now:    time.Now,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.state = NewState(s.now())
	return s
}

// Snapshot returns the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch applies a and returns the resulting state.
func (s *Store) Dispatch(a Action) State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dispatchLocked(a)
}

// Apply builds an action from the current state and dispatches it without
// letting another dispatch in between. When fn returns false nothing is
// dispatched and the unchanged state is returned. fn runs with the store
// locked and must not call Dispatch or Apply.
func (s *Store) Apply(fn func(State) (Action, bool)) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := fn(s.state)
	if !ok {
		return s.state, false
	}
	return s.dispatchLocked(a), true
}

func (s *Store) dispatchLocked(a Action) State {
	next := Reduce(s.state, a, s.now())
	s.state = next
	s.logger.Debug("dispatch", "kind", a.Kind())

	for _, l := range s.listeners {
		l(a, next)
	}
	return next
}

// Subscribe registers l for every later dispatch.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}
