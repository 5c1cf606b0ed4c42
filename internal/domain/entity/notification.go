package entity

import (
	"time"

	"github.com/google/uuid"
)

// NotificationKind identifies what a notification is about.
type NotificationKind string

const (
	// KindNewProduct marks a notification generated from a remote catalog insert.
	KindNewProduct NotificationKind = "new_product"
)

// Notification is a locally persisted record describing a detected catalog
// change. Its read state moves one way, Unread -> Read; it can be deleted in
// either state.
type Notification struct {
	ID        uuid.UUID        `json:"id"`         // Time-ordered unique identifier (UUIDv7).
	Kind      NotificationKind `json:"kind"`       // Currently always KindNewProduct.
	Message   string           `json:"message"`    // Human-readable headline.
	Details   string           `json:"details"`    // Human-readable detail line.
	CreatedAt time.Time        `json:"created_at"` // When the notification was generated.
	Read      bool             `json:"read"`       // False until the user marks it read.
	ProductID string           `json:"product_id"` // The remote row that caused this notification.
}

// MarkRead flips the notification to read. The transition is one-way; marking
// an already read notification is a no-op.
func (n *Notification) MarkRead() {
	n.Read = true
}
