package main

import (
	"context"
	"log/slog"
	"os"

	"grocery/config"
	"grocery/internal/delivery"
	"grocery/internal/delivery/http"
	"grocery/internal/delivery/http/middleware"
	httphandler "grocery/internal/delivery/http/router/handler"
	"grocery/internal/delivery/worker"
	workerhandler "grocery/internal/delivery/worker/handler"
	"grocery/internal/infra/catalog"
	"grocery/internal/infra/connectivity"
	"grocery/internal/infra/feed"
	logs "grocery/internal/infra/log"
	"grocery/internal/infra/persistence/sqlite"
	"grocery/internal/usecase"
	"grocery/internal/usecase/impl"

	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In

	// Sync forces construction of the background sync engine so its
	// lifecycle hooks run alongside the servers.
	Sync usecase.SyncUsecase

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
		sqlite.New,
		sqlite.NewBlobStore,
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			connectivity.NewHTTPProbe,
			connectivity.NewMonitor,
			catalog.NewHTTPSource,
			feed.NewHub,
			feed.NewChangeFeed,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewCatalogService,
			impl.NewCartService,
			impl.NewNotificationService,
			impl.NewScanService,
			impl.NewSyncService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewErrorMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			httphandler.NewCatalogHandler,
			httphandler.NewCartHandler,
			httphandler.NewNotificationHandler,
			httphandler.NewScanHandler,
			httphandler.NewStatusHandler,
			workerhandler.NewPushHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
			fx.Annotate(
				worker.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
