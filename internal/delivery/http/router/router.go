// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"grocery/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	CatalogHandler      *handler.CatalogHandler
	CartHandler         *handler.CartHandler
	NotificationHandler *handler.NotificationHandler
	ScanHandler         *handler.ScanHandler
	StatusHandler       *handler.StatusHandler
}

// router holds all the handlers that need to be registered.
type router struct {
	catalogHandler      *handler.CatalogHandler
	cartHandler         *handler.CartHandler
	notificationHandler *handler.NotificationHandler
	scanHandler         *handler.ScanHandler
	statusHandler       *handler.StatusHandler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		catalogHandler:      params.CatalogHandler,
		cartHandler:         params.CartHandler,
		notificationHandler: params.NotificationHandler,
		scanHandler:         params.ScanHandler,
		statusHandler:       params.StatusHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	// Health check endpoint
	e.GET("/health", handler.HealthCheck)
	e.GET("/status", r.statusHandler.Status)

	catalogGroup := e.Group("/catalog")
	{
		catalogGroup.GET("", r.catalogHandler.List)
		catalogGroup.POST("/refresh", r.catalogHandler.Refresh)
	}

	cartGroup := e.Group("/cart")
	{
		cartGroup.GET("", r.cartHandler.List)
		cartGroup.POST("/items", r.cartHandler.AddItem)
		cartGroup.PATCH("/items/:id", r.cartHandler.ChangeQuantity)
		cartGroup.DELETE("", r.cartHandler.Clear)
	}

	notificationGroup := e.Group("/notifications")
	{
		notificationGroup.GET("", r.notificationHandler.List)
		notificationGroup.POST("/read-all", r.notificationHandler.MarkAllRead)
		notificationGroup.POST("/:id/read", r.notificationHandler.MarkRead)
		notificationGroup.DELETE("/:id", r.notificationHandler.Delete)
		notificationGroup.DELETE("", r.notificationHandler.ClearAll)
	}

	e.POST("/scan", r.scanHandler.Resolve)
}
