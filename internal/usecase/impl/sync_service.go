package impl

import (
	"context"
	"log/slog"
	"time"

	"grocery/config"
	"grocery/internal/domain/entity"
	"grocery/internal/domain/service"
	"grocery/internal/usecase"

	"go.uber.org/fx"
)

// syncService is the background wiring of the engine: it turns connectivity
// transitions into catalog refreshes, routes change feed events into the
// notification generator, and runs the bounded fallback unread recount.
type syncService struct {
	appCtx        context.Context
	monitor       service.ConnectivityMonitor
	feed          service.ChangeFeed
	catalog       usecase.CatalogUsecase
	notifications usecase.NotificationUsecase
	pollInterval  time.Duration
	logger        *slog.Logger

	cancelMonitor func()
	cancelUnread  func()
	unsubscribe   service.UnsubscribeFunc
	pollCancel    context.CancelFunc
	pollDone      chan struct{}
}

// SyncServiceParams holds dependencies for SyncService, injected by Fx.
type SyncServiceParams struct {
	fx.In
	fx.Lifecycle

	Ctx           context.Context
	Config        *config.Config
	Monitor       service.ConnectivityMonitor
	Feed          service.ChangeFeed
	Catalog       usecase.CatalogUsecase
	Notifications usecase.NotificationUsecase
	Logger        *slog.Logger
}

// NewSyncService creates the sync engine and binds it to the fx lifecycle so
// feed unsubscribe and poll stop are guaranteed on shutdown.
func NewSyncService(params SyncServiceParams) usecase.SyncUsecase {
	s := &syncService{
		appCtx:        params.Ctx,
		monitor:       params.Monitor,
		feed:          params.Feed,
		catalog:       params.Catalog,
		notifications: params.Notifications,
		pollInterval:  params.Config.Notifications.UnreadPollInterval,
		logger:        params.Logger,
	}

	params.Append(fx.Hook{
		OnStart: s.Start,
		OnStop:  s.Stop,
	})

	return s
}

// Start subscribes to the connectivity monitor and the change feed, and
// launches the fallback unread poll. The hook ctx only bounds startup; the
// feed subscription must outlive it, so it runs on the app context.
func (s *syncService) Start(context.Context) error {
	s.cancelMonitor = s.monitor.Subscribe(func(state entity.ConnectivityState) {
		if !state.IsOnline() {
			s.logger.Info("[Sync] Offline, using cached data")

			return
		}

		// Fire-and-forget: a failed refresh leaves stale data in place and
		// is retried on the next transition or manual refresh.
		go s.refresh()
	})

	s.cancelUnread = s.notifications.SubscribeUnread(func(unread int) {
		s.logger.Debug("[Sync] Unread count changed", slog.Int("unread", unread))
	})

	unsubscribe, err := s.feed.Subscribe(s.appCtx, s.notifications.OnRemoteInsert)
	if err != nil {
		s.cancelMonitor()
		s.cancelUnread()

		return err
	}
	s.unsubscribe = unsubscribe

	pollCtx, cancel := context.WithCancel(context.Background())
	s.pollCancel = cancel
	s.pollDone = make(chan struct{})
	go s.pollUnread(pollCtx)

	return nil
}

// Stop tears the background wiring down. Unsubscribes are idempotent, so a
// Stop after a failed Start is safe.
func (s *syncService) Stop(context.Context) error {
	if s.cancelMonitor != nil {
		s.cancelMonitor()
	}
	if s.cancelUnread != nil {
		s.cancelUnread()
	}
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	if s.pollCancel != nil {
		s.pollCancel()
		<-s.pollDone
	}

	return nil
}

func (s *syncService) refresh() {
	if _, err := s.catalog.Refresh(context.Background()); err != nil {
		s.logger.Warn("[Sync] Catalog refresh failed", slog.Any("error", err))
	}
}

// pollUnread is a correctness safety net behind the unread event stream: it
// periodically recomputes the count so a missed event cannot leave a stale
// badge forever.
func (s *syncService) pollUnread(ctx context.Context) {
	defer close(s.pollDone)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.logger.Debug("[Sync] Unread recount",
				slog.Int("unread", s.notifications.UnreadCount()),
			)
		}
	}
}
