//go:build wireinject
// +build wireinject

package mcp

import (
	"github.com/google/wire"

	"github.com/honeycarbs/filtrip/internal/config"
	"github.com/honeycarbs/filtrip/pkg/ipify"
	"github.com/honeycarbs/filtrip/pkg/logging"
)

// InitializeResources creates Resources with all resources wired up
func InitializeResources(cfg config.Config, logger *logging.Logger) (*Resources, error) {
	wire.Build(
		// Job board
		provideCatalog,

		// Infrastructure - ipify
		provideIpifyConfig,
		ipify.NewClient,
		provideLocator,

		// Sessions
		provideTrackerFactory,
		provideSessionStore,

		newResources,
	)

	return &Resources{}, nil
}
