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

// ScanHandlerParams holds dependencies for ScanHandler, injected by Fx.
type ScanHandlerParams struct {
	fx.In

	ScanUC usecase.ScanUsecase
	Logger *slog.Logger
}

// ScanHandler holds dependencies for barcode scan handlers
type ScanHandler struct {
	scanUC usecase.ScanUsecase
	logger *slog.Logger
}

// NewScanHandler is the constructor for ScanHandler
func NewScanHandler(params ScanHandlerParams) *ScanHandler {
	return &ScanHandler{
		scanUC: params.ScanUC,
		logger: params.Logger,
	}
}

// ScanRequest represents the request body for resolving a decoded barcode
type ScanRequest struct {
	Code string `json:"code" validate:"required"`
}

// Resolve maps a decoded barcode to a catalog product.
func (h *ScanHandler) Resolve(c echo.Context) error {
	var req ScanRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid scan input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "code is required")
	}

	product, err := h.scanUC.Resolve(req.Code)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, product, "Barcode resolved")
}
