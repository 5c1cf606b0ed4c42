// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"grocery/internal/delivery/http/response"
	"grocery/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// CatalogHandlerParams holds dependencies for CatalogHandler, injected by Fx.
type CatalogHandlerParams struct {
	fx.In

	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CatalogHandler holds dependencies for catalog-related handlers
type CatalogHandler struct {
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCatalogHandler is the constructor for CatalogHandler
func NewCatalogHandler(params CatalogHandlerParams) *CatalogHandler {
	return &CatalogHandler{
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// List returns the cached product list. It answers from the local cache and
// never blocks on the network, so it works identically offline.
func (h *CatalogHandler) List(c echo.Context) error {
	products := h.catalogUC.Current()

	return response.Success(c, http.StatusOK, products, "Catalog retrieved successfully")
}

// Refresh replaces the cached list from the remote catalog.
func (h *CatalogHandler) Refresh(c echo.Context) error {
	products, err := h.catalogUC.Refresh(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, products, "Catalog refreshed successfully")
}
