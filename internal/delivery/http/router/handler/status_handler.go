package handler

import (
	"net/http"

	"grocery/internal/delivery/http/response"
	"grocery/internal/domain/service"
	"grocery/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// StatusHandlerParams holds dependencies for StatusHandler, injected by Fx.
type StatusHandlerParams struct {
	fx.In

	Monitor        service.ConnectivityMonitor
	CatalogUC      usecase.CatalogUsecase
	NotificationUC usecase.NotificationUsecase
}

// StatusHandler reports the engine's connectivity and cache state
type StatusHandler struct {
	monitor        service.ConnectivityMonitor
	catalogUC      usecase.CatalogUsecase
	notificationUC usecase.NotificationUsecase
}

// NewStatusHandler is the constructor for StatusHandler
func NewStatusHandler(params StatusHandlerParams) *StatusHandler {
	return &StatusHandler{
		monitor:        params.Monitor,
		catalogUC:      params.CatalogUC,
		notificationUC: params.NotificationUC,
	}
}

// Status returns connectivity state and cache counters.
func (h *StatusHandler) Status(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]any{
		"connectivity": h.monitor.Current(),
		"products":     len(h.catalogUC.Current()),
		"unread":       h.notificationUC.UnreadCount(),
	}, "Status retrieved successfully")
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"}, "Service is healthy")
}
