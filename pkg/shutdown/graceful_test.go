package shutdown

import (
	"context"
	"errors"
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/honeycarbs/filtrip/pkg/logging"
)

type recorder struct {
	calls *[]string
	name  string
	err   error
}

func (r recorder) Shutdown(ctx context.Context) error {
	if _, ok := ctx.Deadline(); !ok {
		return errors.New("shutdown context has no deadline")
	}
	*r.calls = append(*r.calls, r.name)
	return r.err
}

func TestGracefulStopsTargetsInOrder(t *testing.T) {
	var calls []string
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		Graceful(ctx, []os.Signal{syscall.SIGUSR1}, time.Second, logging.NewNop(),
			recorder{calls: &calls, name: "sessions", err: errors.New("boom")},
			recorder{calls: &calls, name: "http"},
		)
		close(done)
	}()

	cancel()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Graceful did not return after parent cancel")
	}

	if len(calls) != 2 || calls[0] != "sessions" || calls[1] != "http" {
		t.Fatalf("unexpected shutdown order: %v", calls)
	}
}
