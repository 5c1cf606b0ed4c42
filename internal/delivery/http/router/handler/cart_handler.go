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

// CartHandlerParams holds dependencies for CartHandler, injected by Fx.
type CartHandlerParams struct {
	fx.In

	CartUC    usecase.CartUsecase
	CatalogUC usecase.CatalogUsecase
	Logger    *slog.Logger
}

// CartHandler holds dependencies for cart-related handlers
type CartHandler struct {
	cartUC    usecase.CartUsecase
	catalogUC usecase.CatalogUsecase
	logger    *slog.Logger
}

// NewCartHandler is the constructor for CartHandler
func NewCartHandler(params CartHandlerParams) *CartHandler {
	return &CartHandler{
		cartUC:    params.CartUC,
		catalogUC: params.CatalogUC,
		logger:    params.Logger,
	}
}

// AddItemRequest represents the request body for adding a product to the cart
type AddItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

// ChangeQuantityRequest represents the request body for a quantity delta.
// Delta is a pointer so an explicit zero (a persisted no-op) passes the
// required check.
type ChangeQuantityRequest struct {
	Delta *int `json:"delta" validate:"required"`
}

// cartView is the response shape shared by all cart endpoints.
type cartView struct {
	Items      any    `json:"items"`
	TotalItems int    `json:"total_items"`
	TotalPrice string `json:"total_price"`
}

// List returns the cart with its derived totals.
func (h *CartHandler) List(c echo.Context) error {
	return response.Success(c, http.StatusOK, h.view(), "Cart retrieved successfully")
}

// AddItem adds one unit of a product to the cart.
func (h *CartHandler) AddItem(c echo.Context) error {
	var req AddItemRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid cart item input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "product_id is required")
	}

	// Only catalog products with stock can enter the cart.
	product, err := h.catalogUC.FindByID(req.ProductID)
	if err != nil {
		return errors.WithStack(err)
	}
	if !product.InStock() {
		return response.Conflict(c, "PRODUCT_OUT_OF_STOCK", "Product is out of stock")
	}

	h.cartUC.Add(req.ProductID)

	return response.Success(c, http.StatusOK, h.view(), "Product added to cart")
}

// ChangeQuantity applies a quantity delta to one cart entry. The quantity is
// floored at zero and an entry reaching zero is removed.
func (h *CartHandler) ChangeQuantity(c echo.Context) error {
	var req ChangeQuantityRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid quantity input")
	}
	if err := c.Validate(&req); err != nil {
		return response.BadRequest(c, "INVALID_INPUT", "delta is required")
	}

	h.cartUC.ChangeQuantity(c.Param("id"), *req.Delta)

	return response.Success(c, http.StatusOK, h.view(), "Cart updated")
}

// Clear empties the cart.
func (h *CartHandler) Clear(c echo.Context) error {
	h.cartUC.Clear()

	return response.Success(c, http.StatusOK, h.view(), "Cart cleared")
}

func (h *CartHandler) view() cartView {
	return cartView{
		Items:      h.cartUC.Items(),
		TotalItems: h.cartUC.TotalItems(),
		TotalPrice: h.cartUC.TotalPrice().StringFixed(2),
	}
}
