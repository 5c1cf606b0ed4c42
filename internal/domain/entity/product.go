// Package entity contains the core business objects of the project.
package entity

import (
	"github.com/shopspring/decimal"
)

// Product is a row of the remote catalog as served to the engine.
// The catalog is replaced wholesale on every successful fetch; a product is
// never patched in place.
type Product struct {
	ID      string          `json:"id"`      // Opaque identifier assigned by the remote catalog.
	Name    string          `json:"name"`    // Display name of the product.
	Price   decimal.Decimal `json:"price"`   // Unit price, never negative.
	Barcode string          `json:"barcode"` // Optional scan code, unique across the catalog when present.
	Stock   *int            `json:"stock"`   // Optional stock count, never negative when present.
}

// InStock reports whether the product can be added to a cart based on its
// stock count. Products without stock tracking are always available.
func (p Product) InStock() bool {
	return p.Stock == nil || *p.Stock > 0
}
