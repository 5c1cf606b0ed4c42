package handler

import (
	"log/slog"
	"net/http"

	"grocery/internal/delivery/http/response"
	"grocery/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// NotificationHandlerParams holds dependencies for NotificationHandler,
// injected by Fx.
type NotificationHandlerParams struct {
	fx.In

	NotificationUC usecase.NotificationUsecase
	Logger         *slog.Logger
}

// NotificationHandler holds dependencies for notification-related handlers
type NotificationHandler struct {
	notificationUC usecase.NotificationUsecase
	logger         *slog.Logger
}

// NewNotificationHandler is the constructor for NotificationHandler
func NewNotificationHandler(params NotificationHandlerParams) *NotificationHandler {
	return &NotificationHandler{
		notificationUC: params.NotificationUC,
		logger:         params.Logger,
	}
}

// notificationView is the response shape for notification list endpoints.
type notificationView struct {
	Notifications any `json:"notifications"`
	Unread        int `json:"unread_count"`
}

// List returns all notifications, newest first, with the unread count.
func (h *NotificationHandler) List(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.view(), "Notifications retrieved successfully")
}

// MarkRead flips one notification to read.
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid notification id")
	}

	if err := h.notificationUC.MarkRead(id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.view(), "Notification marked as read")
}

// MarkAllRead flips every notification to read.
func (h *NotificationHandler) MarkAllRead(c echo.Context) error {
	h.notificationUC.MarkAllRead()

	return response.Success(c, http.StatusOK, h.view(), "All notifications marked as read")
}

// Delete removes one notification.
func (h *NotificationHandler) Delete(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "Invalid notification id")
	}

	if err := h.notificationUC.Delete(id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, h.view(), "Notification deleted")
}

// ClearAll removes every notification.
func (h *NotificationHandler) ClearAll(c echo.Context) error {
	h.notificationUC.ClearAll()

	return response.Success(c, http.StatusOK, h.view(), "Notifications cleared")
}

func (h *NotificationHandler) view() notificationView {
	return notificationView{
		Notifications: h.notificationUC.List(),
		Unread:        h.notificationUC.UnreadCount(),
	}
}
