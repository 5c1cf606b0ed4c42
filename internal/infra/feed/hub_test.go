package feed

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"grocery/internal/domain/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHub() *Hub {
	return NewHub(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := newTestHub()

	var got []entity.Product
	_, err := hub.Subscribe(context.Background(), func(p entity.Product) {
		got = append(got, p)
	})
	require.NoError(t, err)

	hub.Publish(entity.Product{ID: "p1", Name: "Rice"})
	hub.Publish(entity.Product{ID: "p2", Name: "Eggs"})

	require.Len(t, got, 2)
	assert.Equal(t, "p1", got[0].ID)
	assert.Equal(t, "p2", got[1].ID)
}

func TestHub_UnsubscribeStopsDeliveryAndIsIdempotent(t *testing.T) {
	hub := newTestHub()

	calls := 0
	unsubscribe, err := hub.Subscribe(context.Background(), func(entity.Product) {
		calls++
	})
	require.NoError(t, err)

	hub.Publish(entity.Product{ID: "p1"})
	unsubscribe()
	unsubscribe()
	hub.Publish(entity.Product{ID: "p2"})

	assert.Equal(t, 1, calls)
}
