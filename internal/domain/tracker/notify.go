package tracker

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultNotificationTTL is how long a toast stays up unless dismissed.
const DefaultNotificationTTL = 5 * time.Second

type Level string

const (
	LevelError Level = "error"
	LevelInfo  Level = "info"
)

// Notification is a transient, non-blocking message for the user
type Notification struct {
	ID        string    `json:"id"`
	Level     Level     `json:"level"`
	Message   string    `json:"message"`
	RaisedAt  time.Time `json:"raised_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Notifier surfaces messages to the user.
type Notifier interface {
	Notify(level Level, message string) Notification
	Active() []Notification
	Dismiss(id string) bool
}

// Toasts is an in-memory Notifier whose entries expire on their own.
type Toasts struct {
	mu    sync.Mutex
	ttl   time.Duration
	clock func() time.Time
	items []Notification
}

// NewToasts builds a notifier. ttl <= 0 falls back to DefaultNotificationTTL;
// a nil clock means time.Now.
func NewToasts(ttl time.Duration, clock func() time.Time) *Toasts {
	if ttl <= 0 {
		ttl = DefaultNotificationTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &Toasts{ttl: ttl, clock: clock}
}

func (t *Toasts) Notify(level Level, message string) Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock()
	n := Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		RaisedAt:  now,
		ExpiresAt: now.Add(t.ttl),
	}
	t.prune(now)
	t.items = append(t.items, n)
	return n
}

// Active returns unexpired notifications, oldest first.
func (t *Toasts) Active() []Notification {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.prune(t.clock())
	out := make([]Notification, len(t.items))
	copy(out, t.items)
	return out
}

func (t *Toasts) Dismiss(id string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	for i, n := range t.items {
		if n.ID == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

func (t *Toasts) prune(now time.Time) {
	kept := t.items[:0]
	for _, n := range t.items {
		if now.Before(n.ExpiresAt) {
			kept = append(kept, n)
		}
	}
	t.items = kept
}
