// Package feed provides change feed implementations for remote product inserts.
package feed

import (
	"context"
	"log/slog"
	"sync"

	"grocery/internal/domain/entity"
	"grocery/internal/domain/service"
)

// Hub is an in-process change feed. The local provider's push endpoint
// publishes decoded product rows into it; the sync engine consumes them
// through the ordinary ChangeFeed contract. With no publisher attached it
// doubles as the disabled-feed implementation.
type Hub struct {
	logger *slog.Logger

	mu          sync.Mutex
	subscribers map[int]func(entity.Product)
	nextID      int
}

// NewHub creates an empty in-process feed.
func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		logger:      logger,
		subscribers: make(map[int]func(entity.Product)),
	}
}

// Subscribe registers onInsert for every published product row. The returned
// unsubscribe is idempotent.
func (h *Hub) Subscribe(_ context.Context, onInsert func(entity.Product)) (service.UnsubscribeFunc, error) {
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subscribers[id] = onInsert
	h.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subscribers, id)
			h.mu.Unlock()
		})
	}, nil
}

// Publish delivers a product insert event to every subscriber.
func (h *Hub) Publish(product entity.Product) {
	h.mu.Lock()
	notify := make([]func(entity.Product), 0, len(h.subscribers))
	for _, fn := range h.subscribers {
		notify = append(notify, fn)
	}
	h.mu.Unlock()

	h.logger.Debug("[Feed] Publishing product insert",
		slog.String("product_id", product.ID),
	)

	for _, fn := range notify {
		fn(product)
	}
}
