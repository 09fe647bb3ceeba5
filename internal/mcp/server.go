package mcp

import (
	"context"
	"errors"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/honeycarbs/filtrip/internal/config"
	"github.com/honeycarbs/filtrip/internal/mcp/tools"
	"github.com/honeycarbs/filtrip/internal/session"
	"github.com/honeycarbs/filtrip/pkg/logging"
)

// StreamPath is where the streamable MCP handler is mounted
const StreamPath = "/mcp/stream"

// Server wraps an MCP SDK server with an HTTP listener
type Server struct {
	logger    *logging.Logger
	config    config.Config
	resources *Resources

	srv       *http.Server
	started   atomic.Bool
	sweepCtx  context.Context
	stopSweep context.CancelFunc
}

// NewServer constructs a new MCP HTTP server with the board and tracker tools
// registered against res
func NewServer(log *logging.Logger, cfg config.Config, res *Resources) *Server {
	impl := &sdkmcp.Implementation{
		Name:    "filtrip",
		Version: "0.1.0",
	}

	mcpServer := sdkmcp.NewServer(impl, &sdkmcp.ServerOptions{
		InitializedHandler: forgetOnClose(res.Sessions, log),
	})

	registered := tools.Register(mcpServer,
		tools.WithBoardTools(res.Sessions, res.Postings, log.Named("board")),
		tools.WithTrackerTools(res.Sessions, log.Named("tracker")),
	)
	log.Info("MCP tools registered", "tools", registered)

	mux := http.NewServeMux()
	mux.Handle(StreamPath, NewHandler(mcpServer))
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	httpSrv := &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	sweepCtx, stopSweep := context.WithCancel(context.Background())

	return &Server{
		logger:    log,
		config:    cfg,
		resources: res,
		srv:       httpSrv,
		sweepCtx:  sweepCtx,
		stopSweep: stopSweep,
	}
}

// forgetOnClose discards a session's board and tracker once its connection
// ends. Connections without an id share the local state, which is kept.
func forgetOnClose(sessions *session.Store, log *logging.Logger) func(context.Context, *sdkmcp.InitializedRequest) {
	return func(_ context.Context, req *sdkmcp.InitializedRequest) {
		ss := req.Session
		if ss == nil || ss.ID() == "" {
			return
		}
		go func() {
			_ = ss.Wait()
			if sessions.Forget(ss.ID()) {
				log.Debug("MCP session closed", "session", ss.ID())
			}
		}()
	}
}

// NewHandler serves mcpServer over the streamable HTTP transport
func NewHandler(mcpServer *sdkmcp.Server) http.Handler {
	return sdkmcp.NewStreamableHTTPHandler(func(*http.Request) *sdkmcp.Server {
		return mcpServer
	}, nil)
}

// Run starts the HTTP server and the idle session sweeper, and blocks until
// shutdown
func (s *Server) Run() error {
	if !s.started.CompareAndSwap(false, true) {
		return nil
	}

	go s.resources.Sessions.Run(s.sweepCtx)

	s.logger.Info("MCP HTTP server listening", "addr", s.srv.Addr, "path", StreamPath)

	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		s.stopSweep()
		return err
	}

	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutdown requested for MCP HTTP server")
	s.stopSweep()

	err := s.srv.Shutdown(ctx)
	if err != nil {
		s.logger.Warn("MCP HTTP server shutdown with error", "err", err)
	}
	if serr := s.resources.Sessions.Shutdown(ctx); serr != nil {
		s.logger.Warn("session store shutdown with error", "err", serr)
		err = errors.Join(err, serr)
	}
	if err != nil {
		return err
	}

	s.logger.Info("MCP HTTP server shutdown complete")
	return nil
}
