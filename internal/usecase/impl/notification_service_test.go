package impl

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"grocery/internal/domain/constants"
	"grocery/internal/domain/entity"
	domainerrors "grocery/internal/domain/errors"
	"grocery/internal/usecase"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestNotifications(store *memStore) usecase.NotificationUsecase {
	return NewNotificationService(NotificationServiceParams{
		Lifecycle: nopLifecycle{},
		Store:     store,
		Logger:    newTestLogger(),
	})
}

func TestNotificationService_OnRemoteInsert(t *testing.T) {
	svc := createTestNotifications(newMemStore())

	svc.OnRemoteInsert(entity.Product{
		ID:    "p1",
		Name:  "Rice",
		Price: decimal.RequireFromString("52.50"),
	})

	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, entity.KindNewProduct, list[0].Kind)
	assert.Equal(t, "New product added: Rice", list[0].Message)
	assert.Equal(t, "Price: ₱52.50", list[0].Details)
	assert.Equal(t, "p1", list[0].ProductID)
	assert.False(t, list[0].Read)
	assert.Equal(t, 1, svc.UnreadCount())
}

func TestNotificationService_RedeliveryIsDropped(t *testing.T) {
	svc := createTestNotifications(newMemStore())

	product := entity.Product{ID: "p1", Name: "Rice", Price: decimal.RequireFromString("52.50")}
	svc.OnRemoteInsert(product)
	svc.OnRemoteInsert(product)

	assert.Len(t, svc.List(), 1, "a redelivered insert event must not create a second notification")
	assert.Equal(t, 1, svc.UnreadCount())
}

func TestNotificationService_ListNewestFirst(t *testing.T) {
	svc := createTestNotifications(newMemStore())

	svc.OnRemoteInsert(entity.Product{ID: "p1", Name: "Rice"})
	svc.OnRemoteInsert(entity.Product{ID: "p2", Name: "Eggs"})

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ProductID)
	assert.Equal(t, "p1", list[1].ProductID)
}

func TestNotificationService_MarkReadIsOneWay(t *testing.T) {
	svc := createTestNotifications(newMemStore())

	svc.OnRemoteInsert(entity.Product{ID: "p1", Name: "Rice"})
	id := svc.List()[0].ID

	require.NoError(t, svc.MarkRead(id))
	assert.Zero(t, svc.UnreadCount())

	// Marking again is a persisted no-op, never an un-read.
	require.NoError(t, svc.MarkRead(id))
	assert.True(t, svc.List()[0].Read)
	assert.Zero(t, svc.UnreadCount())

	assert.ErrorIs(t, svc.MarkRead(uuid.New()), domainerrors.ErrNotificationNotFound)
}

func TestNotificationService_MarkAllRead(t *testing.T) {
	svc := createTestNotifications(newMemStore())

	svc.OnRemoteInsert(entity.Product{ID: "p1", Name: "Rice"})
	svc.OnRemoteInsert(entity.Product{ID: "p2", Name: "Eggs"})
	require.Equal(t, 2, svc.UnreadCount())

	svc.MarkAllRead()
	assert.Zero(t, svc.UnreadCount())
	assert.Len(t, svc.List(), 2)
}

func TestNotificationService_Delete(t *testing.T) {
	svc := createTestNotifications(newMemStore())

	svc.OnRemoteInsert(entity.Product{ID: "p1", Name: "Rice"})
	svc.OnRemoteInsert(entity.Product{ID: "p2", Name: "Eggs"})
	id := svc.List()[1].ID
	require.NoError(t, svc.MarkRead(id))

	// Read state does not protect a notification from deletion.
	require.NoError(t, svc.Delete(id))
	list := svc.List()
	require.Len(t, list, 1)
	assert.Equal(t, "p2", list[0].ProductID)

	assert.ErrorIs(t, svc.Delete(id), domainerrors.ErrNotificationNotFound)
}

func TestNotificationService_ClearAllRemovesPersistedList(t *testing.T) {
	store := newMemStore()
	svc := createTestNotifications(store)

	svc.OnRemoteInsert(entity.Product{ID: "p1", Name: "Rice"})
	svc.(*notificationService).writer.flush()
	require.True(t, store.has(constants.StorageKeyNotifications))

	svc.ClearAll()

	assert.Empty(t, svc.List())
	assert.Zero(t, svc.UnreadCount())
	assert.False(t, store.has(constants.StorageKeyNotifications))
}

func TestNotificationService_PersistenceRoundTrip(t *testing.T) {
	store := newMemStore()
	svc := createTestNotifications(store)

	svc.OnRemoteInsert(entity.Product{ID: "p1", Name: "Rice"})
	svc.OnRemoteInsert(entity.Product{ID: "p2", Name: "Eggs"})
	require.NoError(t, svc.MarkRead(svc.List()[1].ID))
	svc.(*notificationService).writer.flush()

	reloaded := createTestNotifications(store)
	assert.Equal(t, svc.List(), reloaded.List())
	assert.Equal(t, 1, reloaded.UnreadCount())
}

func TestNotificationService_RestoreReordersByCreationTime(t *testing.T) {
	store := newMemStore()

	older := entity.Notification{
		ID:        uuid.New(),
		Kind:      entity.KindNewProduct,
		CreatedAt: time.Now().Add(-time.Hour),
		ProductID: "p1",
	}
	newer := entity.Notification{
		ID:        uuid.New(),
		Kind:      entity.KindNewProduct,
		CreatedAt: time.Now(),
		ProductID: "p2",
	}
	// Persisted oldest-first, e.g. by an earlier version of the writer.
	raw, err := json.Marshal([]entity.Notification{older, newer})
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), constants.StorageKeyNotifications, raw))

	svc := createTestNotifications(store)

	list := svc.List()
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].ProductID)
	assert.Equal(t, "p1", list[1].ProductID)
}

func TestNotificationService_SubscribeUnread(t *testing.T) {
	svc := createTestNotifications(newMemStore())

	var got []int
	cancel := svc.SubscribeUnread(func(unread int) {
		got = append(got, unread)
	})

	svc.OnRemoteInsert(entity.Product{ID: "p1", Name: "Rice"})
	svc.OnRemoteInsert(entity.Product{ID: "p2", Name: "Eggs"})
	svc.MarkAllRead()
	assert.Equal(t, []int{1, 2, 0}, got)

	cancel()
	cancel() // second cancel is a no-op

	svc.OnRemoteInsert(entity.Product{ID: "p3", Name: "Milk"})
	assert.Equal(t, []int{1, 2, 0}, got, "a cancelled subscriber must not be notified")
}
