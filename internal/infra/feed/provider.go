package feed

import (
	"context"
	"log/slog"

	"grocery/config"
	"grocery/internal/domain/constants"
	"grocery/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// ChangeFeedParams holds dependencies for the change feed, injected by Fx.
type ChangeFeedParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
	Hub    *Hub
}

// NewChangeFeed creates a ChangeFeed based on configuration. The local
// provider (and a disabled feed) route through the in-process hub; the google
// provider subscribes to the hosted Pub/Sub feed.
func NewChangeFeed(params ChangeFeedParams) (service.ChangeFeed, error) {
	cfg := params.Config.Feed
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Change feed not configured, inserts will not be observed")

		return params.Hub, nil
	}

	switch cfg.Provider {
	case constants.FeedProviderLocal:
		logger.Info("Using local push change feed")

		return params.Hub, nil

	case constants.FeedProviderGoogle:
		if cfg.ProjectID == "" {
			return nil, errors.New("project ID is required for google provider")
		}
		if cfg.SubscriptionID == "" {
			return nil, errors.New("subscription ID is required for google provider")
		}

		googleFeed, closeFeed, err := NewGoogleFeed(params.Ctx, cfg.ProjectID, cfg.SubscriptionID, logger)
		if err != nil {
			return nil, err
		}

		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				logger.Info("Closing change feed client")

				return closeFeed()
			},
		})

		return googleFeed, nil

	default:
		return nil, errors.Errorf("unknown feed provider: %s", cfg.Provider)
	}
}
