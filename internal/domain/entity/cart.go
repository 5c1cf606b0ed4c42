package entity

// CartItem is a single line of the user's in-progress selection. A cart holds
// at most one item per product id, and an item's quantity is always >= 1; an
// item whose quantity would drop to zero is removed instead of kept at zero.
type CartItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}
