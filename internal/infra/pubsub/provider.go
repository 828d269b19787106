package pubsub

import (
	"context"
	"log/slog"

	"mirror/config"
	"mirror/internal/domain/constants"
	"mirror/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// FeedParams holds dependencies for ChangeFeed, injected by Fx
type FeedParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewChangeFeed creates a ChangeFeed based on configuration
func NewChangeFeed(params FeedParams) (service.ChangeFeed, error) {
	cfg := params.Config.PubSub
	logger := params.Logger

	// If PubSub is not configured, changes stay inside this process
	if cfg == nil || cfg.Provider == "" || cfg.Provider == constants.PubSubProviderMemory {
		logger.Info("PubSub not configured, using in-memory change feed")

		return NewMemoryFeed(logger), nil
	}

	var feed service.ChangeFeed
	var err error

	switch cfg.Provider {
	case constants.PubSubProviderLocal:
		if cfg.LocalEndpoint == "" {
			return nil, errors.New("local endpoint is required for local provider")
		}
		logger.Info("Using in-memory change feed with local HTTP relay",
			slog.String("endpoint", cfg.LocalEndpoint),
		)

		feed = newMemoryFeed(logger, newLocalHTTPRelay(cfg.LocalEndpoint, logger))

	case constants.PubSubProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.TopicID == "" {
			return nil, errors.New("topic ID is required for google provider")
		}
		logger.Info("Using Google Pub/Sub change feed",
			slog.String("project_id", cfg.ProjectID),
			slog.String("topic_id", cfg.TopicID),
		)

		feed, err = NewGoogleFeed(params.Ctx, cfg.ProjectID, cfg.TopicID, cfg.SubscriptionID, cfg.InstanceID, logger)
		if err != nil {
			return nil, err
		}

	default:
		return nil, errors.Errorf("unknown pubsub provider: %s", cfg.Provider)
	}

	// Register lifecycle hook to close the feed on shutdown
	params.Lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing ChangeFeed")

			return feed.Close()
		},
	})

	return feed, nil
}

// Module provides the Pub/Sub FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewChangeFeed),
)
