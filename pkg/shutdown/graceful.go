package shutdown

import (
	"context"
	"os"
	"os/signal"
	"time"

	"github.com/honeycarbs/filtrip/pkg/logging"
)

type Stoppable interface {
	Shutdown(ctx context.Context) error
}

// Graceful blocks until one of signals arrives (or parent is cancelled), then
// stops every Stoppable in order within timeout.
func Graceful(parent context.Context, signals []os.Signal, timeout time.Duration, log *logging.Logger, targets ...Stoppable) {
	sigCtx, stop := signal.NotifyContext(parent, signals...)
	defer stop()

	<-sigCtx.Done()
	log.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	failed := false
	for _, s := range targets {
		if err := s.Shutdown(ctx); err != nil {
			failed = true
			log.Warn("graceful shutdown completed with error", "err", err)
		}
	}

	if !failed {
		log.Info("graceful shutdown completed successfully")
	}
}
