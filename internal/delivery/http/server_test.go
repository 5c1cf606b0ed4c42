package http

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"grocery/config"
	"grocery/internal/delivery/http/middleware"
	"grocery/internal/delivery/http/router"
	"grocery/internal/delivery/http/router/handler"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
)

type nopLifecycle struct{}

func (nopLifecycle) Append(fx.Hook) {}

func TestNewServer_AppliesConfiguredTimeouts(t *testing.T) {
	cfg := &config.Config{}
	cfg.HTTP.Timeouts.ReadTimeout = 10 * time.Second
	cfg.HTTP.Timeouts.ReadHeaderTimeout = 5 * time.Second
	cfg.HTTP.Timeouts.WriteTimeout = 10 * time.Second
	cfg.HTTP.Timeouts.IdleTimeout = time.Minute

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv, err := NewServer(HTTPParams{
		Lifecycle: nopLifecycle{},
		Config:    cfg,
		Logger:    logger,
		RouterParams: router.RouterParams{
			CatalogHandler:      &handler.CatalogHandler{},
			CartHandler:         &handler.CartHandler{},
			NotificationHandler: &handler.NotificationHandler{},
			ScanHandler:         &handler.ScanHandler{},
			StatusHandler:       &handler.StatusHandler{},
		},
		ErrorMiddleware: middleware.NewErrorMiddleware(logger),
	})
	require.NoError(t, err)

	echoServer := srv.(*httpServer).server
	assert.Equal(t, 10*time.Second, echoServer.Server.ReadTimeout)
	assert.Equal(t, 5*time.Second, echoServer.Server.ReadHeaderTimeout)
	assert.Equal(t, 10*time.Second, echoServer.Server.WriteTimeout)
	assert.Equal(t, time.Minute, echoServer.Server.IdleTimeout)
}
