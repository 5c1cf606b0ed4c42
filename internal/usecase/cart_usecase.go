package usecase

import (
	"grocery/internal/domain/entity"

	"github.com/shopspring/decimal"
)

// CartUsecase owns cart mutation invariants: one entry per product, quantity
// always >= 1, removal at zero. Every mutation triggers an asynchronous
// best-effort persistence write; in-memory state is authoritative for the
// session and never blocks on storage I/O.
type CartUsecase interface {
	// Add inserts an entry with quantity 1 or increments an existing one.
	Add(productID string)

	// ChangeQuantity applies delta with a floor of zero; an entry reaching
	// zero is removed. Absent id with delta <= 0 is a no-op, still persisted.
	ChangeQuantity(productID string, delta int)

	// Items returns the cart entries in insertion order.
	Items() []entity.CartItem

	// TotalItems returns the sum of all quantities.
	TotalItems() int

	// TotalPrice sums quantity times unit price, with prices looked up
	// against the catalog cache at computation time so a price correction is
	// reflected immediately. Entries whose product is no longer in the
	// catalog contribute zero.
	TotalPrice() decimal.Decimal

	// Clear empties the cart.
	Clear()
}
