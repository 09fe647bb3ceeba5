package tracker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/honeycarbs/filtrip/internal/domain"
	apperr "github.com/honeycarbs/filtrip/internal/errors"
	"github.com/honeycarbs/filtrip/pkg/logging"
)

// FailureMessage is the single user-facing text for any failed lookup.
const FailureMessage = "Failed to fetch data. Please try again."

// Locator resolves a Query to a geolocation result
type Locator interface {
	Locate(ctx context.Context, q Query) (domain.LookupResult, error)
}

type State string

const (
	StateEmpty               State = "empty"
	StatePopulated           State = "populated"
	StatePopulatedWithNotice State = "populated_with_notice"
)

// Snapshot is the renderable state of a tracker
type Snapshot struct {
	State         State                `json:"state"`
	Result        *domain.LookupResult `json:"result,omitempty"`
	Map           MapView              `json:"map"`
	Notifications []Notification       `json:"notifications"`
	Pending       bool                 `json:"pending"`
}

// Option configures a Tracker
type Option func(*options)

type options struct {
	logger       *logging.Logger
	notifier     Notifier
	zoom         int
	tileTemplate string
	clock        func() time.Time
}

func WithLogger(l *logging.Logger) Option {
	return func(o *options) { o.logger = l }
}

func WithNotifier(n Notifier) Option {
	return func(o *options) { o.notifier = n }
}

// WithZoom sets the initial map zoom
func WithZoom(z int) Option {
	return func(o *options) { o.zoom = z }
}

func WithTileTemplate(tmpl string) Option {
	return func(o *options) { o.tileTemplate = tmpl }
}

func WithClock(clock func() time.Time) Option {
	return func(o *options) { o.clock = clock }
}

// Tracker owns a single result slot fed by asynchronous lookups. Only the
// most recently started lookup may change the slot.
type Tracker struct {
	locator  Locator
	notifier Notifier
	logger   *logging.Logger
	clock    func() time.Time

	mu      sync.Mutex
	result  *domain.LookupResult
	view    viewport
	seq     uint64
	cancel  context.CancelFunc
	current *Request
	pending bool
	mounted bool
	closed  bool
}

// New builds a Tracker in the empty state.
func New(locator Locator, opts ...Option) (*Tracker, error) {
	if locator == nil {
		return nil, fmt.Errorf("tracker: locator is required")
	}

	o := options{zoom: DefaultZoom, clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = logging.NewNop()
	}
	if o.notifier == nil {
		o.notifier = NewToasts(DefaultNotificationTTL, o.clock)
	}

	return &Tracker{
		locator:  locator,
		notifier: o.notifier,
		logger:   o.logger.Named("tracker"),
		clock:    o.clock,
		view:     newViewport(o.zoom, o.tileTemplate),
	}, nil
}

// Mount issues the initial lookup of the caller's own address. Only the
// first call does anything; later calls return nil.
func (t *Tracker) Mount(ctx context.Context) *Request {
	t.mu.Lock()
	if t.mounted || t.closed {
		t.mu.Unlock()
		return nil
	}
	t.mounted = true
	t.mu.Unlock()

	return t.Lookup(ctx, Query{})
}

// Submit classifies user input and starts a lookup. Blank input returns nil
// and leaves the state untouched.
func (t *Tracker) Submit(ctx context.Context, input string) *Request {
	q, ok := Classify(input)
	if !ok {
		t.logger.Debug("blank submission ignored")
		return nil
	}
	return t.Lookup(ctx, q)
}

// Lookup starts resolving q in the background, cancelling any lookup still
// in flight. The request outlives ctx's cancellation but keeps its values.
func (t *Tracker) Lookup(ctx context.Context, q Query) *Request {
	reqCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		cancel()
		req := newRequest(q, 0)
		req.finish(apperr.Cancelled("lookup after close", ErrClosed))
		return req
	}
	if t.cancel != nil {
		t.cancel()
	}
	t.seq++
	req := newRequest(q, t.seq)
	t.cancel = cancel
	t.current = req
	t.pending = true
	t.mu.Unlock()

	t.logger.Debug("lookup started", "query", q.String(), "seq", req.seq)

	go func() {
		defer cancel()
		res, err := t.locator.Locate(reqCtx, q)
		t.settle(req, res, err)
	}()

	return req
}

func (t *Tracker) settle(req *Request, res domain.LookupResult, err error) {
	t.mu.Lock()
	if req.seq != t.seq {
		t.mu.Unlock()
		t.logger.Debug("stale lookup dropped", "query", req.Query.String(), "seq", req.seq)
		req.finish(apperr.Cancelled("lookup superseded", ErrSuperseded))
		return
	}
	t.pending = false
	t.cancel = nil
	t.current = nil
	if t.closed {
		t.mu.Unlock()
		req.finish(apperr.Cancelled("lookup abandoned", ErrClosed))
		return
	}

	if err != nil {
		// the notice is published together with the settled state
		t.notifier.Notify(LevelError, FailureMessage)
		t.mu.Unlock()
		t.logger.Error("error fetching the IP data", "query", req.Query.String(), "err", err)
		req.finish(apperr.Unavailable("geolocation lookup failed", err))
		return
	}

	if res.FetchedAt.IsZero() {
		res.FetchedAt = t.clock()
	}
	moved := t.replace(res)
	zoom := t.view.zoom
	t.mu.Unlock()

	t.logger.Info("lookup completed",
		"query", req.Query.String(),
		"ip", res.IP,
		"lat", res.Location.Lat,
		"lng", res.Location.Lng,
		"recentered", moved,
		"zoom", zoom,
	)
	req.finish(nil)
}

// replace swaps the result slot wholesale and re-centers the map whenever the
// coordinates change. Callers hold t.mu.
func (t *Tracker) replace(res domain.LookupResult) bool {
	t.result = &res
	return t.view.setView(res.Location.Coordinates())
}

// Snapshot returns a copy of the current state.
func (t *Tracker) Snapshot() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	notes := t.notifier.Active()

	s := Snapshot{
		State:         StateEmpty,
		Map:           t.view.snapshot(),
		Notifications: notes,
		Pending:       t.pending,
	}
	if t.result != nil {
		r := *t.result
		s.Result = &r
		s.State = StatePopulated
		for _, n := range notes {
			if n.Level == LevelError {
				s.State = StatePopulatedWithNotice
				break
			}
		}
	}
	return s
}

// Current returns the in-flight lookup, or nil when idle.
func (t *Tracker) Current() *Request {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current
}

// Dismiss closes a notification early.
func (t *Tracker) Dismiss(id string) bool {
	return t.notifier.Dismiss(id)
}

// Zoom changes the map zoom; the center is kept.
func (t *Tracker) Zoom(level int) MapView {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.view.setZoom(level)
	return t.view.snapshot()
}

// Close cancels any in-flight lookup. Closed trackers start no new lookups.
func (t *Tracker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.cancel != nil {
		t.cancel()
	}
}
