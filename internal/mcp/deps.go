package mcp

import (
	"github.com/honeycarbs/filtrip/internal/catalog"
	"github.com/honeycarbs/filtrip/internal/config"
	"github.com/honeycarbs/filtrip/internal/domain"
	"github.com/honeycarbs/filtrip/internal/domain/tracker"
	ipifyProvider "github.com/honeycarbs/filtrip/internal/domain/tracker/providers/ipify"
	"github.com/honeycarbs/filtrip/internal/session"
	"github.com/honeycarbs/filtrip/pkg/ipify"
	"github.com/honeycarbs/filtrip/pkg/logging"
)

// Resources holds everything the tool handlers share
type Resources struct {
	Postings []domain.Posting
	Sessions *session.Store
}

// provideCatalog loads the job dataset, preferring JOBS_DATA_PATH over the
// bundled copy
func provideCatalog(cfg config.Config) ([]domain.Posting, error) {
	if cfg.Jobs.DataPath != "" {
		return catalog.LoadFile(cfg.Jobs.DataPath)
	}
	return catalog.Load()
}

// provideIpifyConfig extracts ipify config from main config
func provideIpifyConfig(cfg config.Config) ipify.Config {
	return ipify.Config{
		APIKey:  cfg.Ipify.APIKey,
		BaseURL: cfg.Ipify.BaseURL,
		Timeout: cfg.Ipify.Timeout,
	}
}

// provideLocator creates the ipify-backed locator from client
func provideLocator(client *ipify.Client) (tracker.Locator, error) {
	p, err := ipifyProvider.NewProvider(client)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// provideTrackerFactory builds one tracker per session with the configured
// map defaults and notification lifetime
func provideTrackerFactory(cfg config.Config, locator tracker.Locator, logger *logging.Logger) session.TrackerFactory {
	return func() (*tracker.Tracker, error) {
		return tracker.New(locator,
			tracker.WithLogger(logger),
			tracker.WithZoom(cfg.Map.InitialZoom),
			tracker.WithTileTemplate(cfg.Map.TileTemplate),
			tracker.WithNotifier(tracker.NewToasts(cfg.NotificationTTL, nil)),
		)
	}
}

// provideSessionStore creates the per-session state store
func provideSessionStore(cfg config.Config, factory session.TrackerFactory, logger *logging.Logger) (*session.Store, error) {
	return session.NewStore(factory,
		session.WithIdleTimeout(cfg.SessionIdleTimeout),
		session.WithLogger(logger),
	)
}

// newResources creates Resources struct
func newResources(postings []domain.Posting, sessions *session.Store) *Resources {
	return &Resources{
		Postings: postings,
		Sessions: sessions,
	}
}
