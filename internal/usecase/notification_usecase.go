package usecase

import (
	"grocery/internal/domain/entity"

	"github.com/google/uuid"
)

// NotificationUsecase converts change feed events into durable notifications
// and owns their read/unread lifecycle. It is idempotent under feed
// redelivery: one notification per remote insertion event.
type NotificationUsecase interface {
	// OnRemoteInsert records a notification for a newly inserted product.
	// Redelivery of a product id already in the list is a no-op.
	OnRemoteInsert(product entity.Product)

	// List returns all notifications, newest first.
	List() []entity.Notification

	// MarkRead flips one notification to read (one-way). Unknown ids return
	// errors.ErrNotificationNotFound.
	MarkRead(id uuid.UUID) error

	// MarkAllRead flips every notification to read.
	MarkAllRead()

	// Delete removes one notification in either read state.
	Delete(id uuid.UUID) error

	// ClearAll removes every notification regardless of state.
	ClearAll()

	// UnreadCount is a live recount of entries with read == false.
	UnreadCount() int

	// SubscribeUnread registers fn for unread-count changes and returns an
	// idempotent cancel. This event stream is the primary update path for
	// badge counters; polling is only a fallback.
	SubscribeUnread(fn func(unread int)) (cancel func())
}
