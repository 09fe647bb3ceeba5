package main

import (
	"context"
	"log"
	"net"
	"os"
	"syscall"
	"time"

	"github.com/honeycarbs/filtrip/internal/config"
	"github.com/honeycarbs/filtrip/internal/mcp"
	"github.com/honeycarbs/filtrip/pkg/logging"
	"github.com/honeycarbs/filtrip/pkg/shutdown"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	res, err := mcp.InitializeResources(cfg, logger)
	if err != nil {
		logger.Error("failed to initialize resources", "err", err)
		os.Exit(1)
	}
	logger.Info("job catalog loaded", "postings", len(res.Postings), "path", cfg.Jobs.DataPath)

	srv := mcp.NewServer(logger, cfg, res)

	go shutdown.Graceful(
		context.Background(),
		[]os.Signal{os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT, syscall.SIGHUP},
		10*time.Second,
		logger,
		srv,
	)

	logger.Info("MCP server initialized and starting", "addr", net.JoinHostPort(cfg.Host, cfg.Port))

	if err := srv.Run(); err != nil {
		logger.Error("MCP server exited with error", "err", err)
	} else {
		logger.Info("MCP server stopped")
	}
}
