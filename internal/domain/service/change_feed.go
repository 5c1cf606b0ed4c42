package service

import (
	"context"

	"grocery/internal/domain/entity"
)

// UnsubscribeFunc releases a change feed subscription and its underlying
// channel resource. It is idempotent and safe to call multiple times.
type UnsubscribeFunc func()

// ChangeFeed is a push-based stream of row-insertion events on the remote
// product collection. Delivery is at-least-once with no ordering guarantee;
// events may arrive while an offline-to-online transition is still settling,
// so consumers must tolerate overlap with a manual fetch.
type ChangeFeed interface {
	// Subscribe registers onInsert for every new product row. The engine
	// establishes exactly one logical subscription per process lifetime.
	Subscribe(ctx context.Context, onInsert func(entity.Product)) (UnsubscribeFunc, error)
}
