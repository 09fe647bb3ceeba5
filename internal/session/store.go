// Package session keeps the per-session view state (one board and one
// tracker per connected client) in memory.
package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/honeycarbs/filtrip/internal/domain/board"
	"github.com/honeycarbs/filtrip/internal/domain/tracker"
	apperr "github.com/honeycarbs/filtrip/internal/errors"
	"github.com/honeycarbs/filtrip/pkg/logging"
)

// LocalID keys state for callers that carry no session id.
const LocalID = "local"

// TrackerFactory builds the tracker of a new session.
type TrackerFactory func() (*tracker.Tracker, error)

// State is the component state owned by one session
type State struct {
	ID      string
	Board   *board.Board
	Tracker *tracker.Tracker
}

type entry struct {
	state    *State
	lastSeen time.Time
}

// Store creates session state on first use and evicts it once idle.
type Store struct {
	newTracker TrackerFactory
	idle       time.Duration
	clock      func() time.Time
	logger     *logging.Logger

	mu       sync.Mutex
	sessions map[string]*entry
}

// Option configures a Store
type Option func(*Store)

// WithIdleTimeout sets how long an untouched session survives. Zero keeps
// sessions until Forget or Shutdown.
func WithIdleTimeout(d time.Duration) Option {
	return func(s *Store) { s.idle = d }
}

func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

func WithLogger(l *logging.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// NewStore builds an empty store.
func NewStore(newTracker TrackerFactory, opts ...Option) (*Store, error) {
	if newTracker == nil {
		return nil, fmt.Errorf("session: tracker factory is required")
	}

	s := &Store{
		newTracker: newTracker,
		clock:      time.Now,
		logger:     logging.NewNop(),
		sessions:   make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("session")
	return s, nil
}

// Get returns the state of id, creating it on first use. A fresh tracker is
// mounted, which starts the lookup of the caller's own address.
func (s *Store) Get(ctx context.Context, id string) (*State, error) {
	if id == "" {
		id = LocalID
	}

	s.mu.Lock()
	now := s.clock()
	if e, ok := s.sessions[id]; ok {
		e.lastSeen = now
		s.mu.Unlock()
		return e.state, nil
	}

	tr, err := s.newTracker()
	if err != nil {
		s.mu.Unlock()
		return nil, apperr.Internal("session: build tracker", err)
	}
	// mounted before the entry is visible so the self lookup is always the
	// oldest one
	tr.Mount(ctx)
	st := &State{ID: id, Board: board.New(), Tracker: tr}
	s.sessions[id] = &entry{state: st, lastSeen: now}
	s.mu.Unlock()

	s.logger.Info("session created", "session", id)

	return st, nil
}

// Forget drops id and cancels its in-flight lookup.
func (s *Store) Forget(id string) bool {
	s.mu.Lock()
	e, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()

	if ok {
		e.state.Tracker.Close()
		s.logger.Info("session forgotten", "session", id)
	}
	return ok
}

// Sweep evicts sessions idle for longer than the idle timeout and reports
// how many were dropped.
func (s *Store) Sweep() int {
	if s.idle <= 0 {
		return 0
	}

	s.mu.Lock()
	cutoff := s.clock().Add(-s.idle)
	var stale []*State
	for id, e := range s.sessions {
		if e.lastSeen.Before(cutoff) {
			stale = append(stale, e.state)
			delete(s.sessions, id)
		}
	}
	s.mu.Unlock()

	for _, st := range stale {
		st.Tracker.Close()
	}
	if len(stale) > 0 {
		s.logger.Info("idle sessions evicted", "count", len(stale))
	}
	return len(stale)
}

// Run sweeps periodically until ctx is done.
func (s *Store) Run(ctx context.Context) {
	if s.idle <= 0 {
		return
	}

	interval := s.idle / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Len reports the number of live sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Shutdown closes every tracker and empties the store.
func (s *Store) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	all := s.sessions
	s.sessions = make(map[string]*entry)
	s.mu.Unlock()

	for _, e := range all {
		if err := ctx.Err(); err != nil {
			return err
		}
		e.state.Tracker.Close()
	}
	s.logger.Info("session store closed", "sessions", len(all))
	return nil
}
