package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/honeycarbs/filtrip/internal/domain"
	"github.com/honeycarbs/filtrip/internal/domain/tracker"
	apperr "github.com/honeycarbs/filtrip/internal/errors"
	"github.com/honeycarbs/filtrip/pkg/logging"
)

type countingLocator struct {
	mu    sync.Mutex
	calls []tracker.Query
}

func (l *countingLocator) Locate(_ context.Context, q tracker.Query) (domain.LookupResult, error) {
	l.mu.Lock()
	l.calls = append(l.calls, q)
	l.mu.Unlock()
	return domain.LookupResult{IP: "203.0.113.7", Location: domain.Location{Lat: 1, Lng: 2}}, nil
}

func (l *countingLocator) queries() []tracker.Query {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]tracker.Query(nil), l.calls...)
}

func (l *countingLocator) count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.calls)
}

func newStore(t *testing.T, loc tracker.Locator, opts ...Option) *Store {
	t.Helper()
	s, err := NewStore(func() (*tracker.Tracker, error) { return tracker.New(loc) }, opts...)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })
	return s
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("condition not met in time")
}

func TestNewStoreRequiresFactory(t *testing.T) {
	if _, err := NewStore(nil); err == nil {
		t.Fatal("expected error")
	}
}

func TestGetCreatesOncePerSessionAndMounts(t *testing.T) {
	loc := &countingLocator{}
	s := newStore(t, loc)

	a1, err := s.Get(context.Background(), "a")
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := s.Get(context.Background(), "a")
	b, _ := s.Get(context.Background(), "b")

	if a1 != a2 {
		t.Error("same id must return the same state")
	}
	if a1 == b || a1.Board == b.Board {
		t.Error("sessions must not share state")
	}
	if s.Len() != 2 {
		t.Errorf("Len = %d", s.Len())
	}

	// one mount lookup per session
	eventually(t, func() bool { return loc.count() == 2 })
	eventually(t, func() bool { return a1.Tracker.Snapshot().State == tracker.StatePopulated })
}

func TestGetEmptyIDUsesLocal(t *testing.T) {
	s := newStore(t, &countingLocator{})
	st, err := s.Get(context.Background(), "")
	if err != nil {
		t.Fatal(err)
	}
	if st.ID != LocalID {
		t.Errorf("ID = %q", st.ID)
	}
}

func TestGetFactoryError(t *testing.T) {
	s, _ := NewStore(func() (*tracker.Tracker, error) { return nil, errors.New("no locator") })
	_, err := s.Get(context.Background(), "x")
	if !apperr.Is(err, apperr.ErrTypeInternal) {
		t.Fatalf("err = %v, want INTERNAL", err)
	}
	if s.Len() != 0 {
		t.Error("failed session must not be stored")
	}
}

func TestSweepEvictsIdle(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var mu sync.Mutex
	clock := func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		return now
	}
	advance := func(d time.Duration) {
		mu.Lock()
		now = now.Add(d)
		mu.Unlock()
	}

	s := newStore(t, &countingLocator{}, WithIdleTimeout(time.Minute), WithClock(clock))
	s.Get(context.Background(), "old")
	advance(45 * time.Second)
	s.Get(context.Background(), "young")
	advance(30 * time.Second)

	if n := s.Sweep(); n != 1 {
		t.Fatalf("Sweep evicted %d, want 1", n)
	}
	if s.Len() != 1 {
		t.Errorf("Len = %d", s.Len())
	}
	if !s.Forget("young") || s.Forget("young") {
		t.Error("Forget should succeed exactly once")
	}
}

func TestSweepDisabled(t *testing.T) {
	s := newStore(t, &countingLocator{})
	s.Get(context.Background(), "a")
	if s.Sweep() != 0 || s.Len() != 1 {
		t.Error("zero idle timeout must keep sessions")
	}
}

// echoLocator answers with the queried address, or selfIP for the caller's
// own address.
type echoLocator struct {
	countingLocator
}

const selfIP = "198.51.100.1"

func (l *echoLocator) Locate(ctx context.Context, q tracker.Query) (domain.LookupResult, error) {
	if _, err := l.countingLocator.Locate(ctx, q); err != nil {
		return domain.LookupResult{}, err
	}
	if q.IsSelf() {
		return domain.LookupResult{IP: selfIP}, nil
	}
	return domain.LookupResult{IP: q.IPAddress}, nil
}

func TestConcurrentGetDoesNotOvertakeMount(t *testing.T) {
	created := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once

	core, _ := observer.New(zapcore.DebugLevel)
	z := zap.New(core, zap.Hooks(func(e zapcore.Entry) error {
		if e.Message == "session created" {
			once.Do(func() {
				close(created)
				<-release
			})
		}
		return nil
	}))

	loc := &echoLocator{}
	s := newStore(t, loc, WithLogger(logging.FromZap(z)))

	first := make(chan error, 1)
	go func() {
		_, err := s.Get(context.Background(), "sess")
		first <- err
	}()
	<-created

	st, err := s.Get(context.Background(), "sess")
	if err != nil {
		close(release)
		t.Fatal(err)
	}
	req := st.Tracker.Submit(context.Background(), "8.8.8.8")
	waitErr := req.Wait(context.Background())
	close(release)
	if err := <-first; err != nil {
		t.Fatal(err)
	}

	if waitErr != nil {
		t.Fatalf("explicit lookup failed: %v", waitErr)
	}
	if snap := st.Tracker.Snapshot(); snap.Result == nil || snap.Result.IP != "8.8.8.8" {
		t.Errorf("displayed = %+v, want 8.8.8.8", snap.Result)
	}
	// the superseded self lookup still reaches the locator
	eventually(t, func() bool { return len(loc.queries()) == 2 })
}
