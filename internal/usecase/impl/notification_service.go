package impl

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"grocery/internal/domain/constants"
	"grocery/internal/domain/entity"
	domainerrors "grocery/internal/domain/errors"
	"grocery/internal/domain/repository"
	"grocery/internal/usecase"
	"grocery/internal/util"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

type notificationService struct {
	store  repository.BlobStore
	logger *slog.Logger
	writer *snapshotWriter

	mu            sync.Mutex
	notifications []entity.Notification // newest first
	listeners     map[int]func(unread int)
	nextID        int
}

// NotificationServiceParams holds dependencies for NotificationService,
// injected by Fx.
type NotificationServiceParams struct {
	fx.In
	fx.Lifecycle

	Store  repository.BlobStore
	Logger *slog.Logger
}

// NewNotificationService creates the notification generator, restoring the
// persisted list and re-sorting it by creation time, newest first.
func NewNotificationService(params NotificationServiceParams) usecase.NotificationUsecase {
	s := &notificationService{
		store:     params.Store,
		logger:    params.Logger,
		writer:    newSnapshotWriter(params.Store, constants.StorageKeyNotifications, params.Logger),
		listeners: make(map[int]func(int)),
	}

	s.notifications = loadSnapshot[[]entity.Notification](params.Store, constants.StorageKeyNotifications, params.Logger)
	sort.SliceStable(s.notifications, func(i, j int) bool {
		return s.notifications[i].CreatedAt.After(s.notifications[j].CreatedAt)
	})

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			s.writer.close()

			return nil
		},
	})

	return s
}

// OnRemoteInsert records a notification for a newly inserted product. The
// feed delivers at-least-once, so a product id already present in the list
// is treated as a redelivery and dropped.
func (s *notificationService) OnRemoteInsert(product entity.Product) {
	s.mu.Lock()
	for _, n := range s.notifications {
		if n.ProductID == product.ID {
			s.mu.Unlock()
			s.logger.Debug("[Notifications] Duplicate insert event ignored",
				slog.String("product_id", product.ID),
			)

			return
		}
	}

	notification := entity.Notification{
		ID:        newNotificationID(),
		Kind:      entity.KindNewProduct,
		Message:   fmt.Sprintf("New product added: %s", product.Name),
		Details:   fmt.Sprintf("Price: %s", util.FormatPrice(product.Price)),
		// UTC without a monotonic reading, so the timestamp survives the
		// JSON round trip through the store byte-for-byte.
		CreatedAt: time.Now().UTC(),
		Read:      false,
		ProductID: product.ID,
	}
	s.notifications = append([]entity.Notification{notification}, s.notifications...)
	snapshot := s.marshalLocked()
	unread := s.unreadLocked()
	notify := s.listenersLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	dispatchUnread(notify, unread)

	s.logger.Info("[Notifications] New product notification created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)
}

// List returns all notifications, newest first.
func (s *notificationService) List() []entity.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.Notification, len(s.notifications))
	copy(out, s.notifications)

	return out
}

// MarkRead flips one notification to read. The transition is one-way.
func (s *notificationService) MarkRead(id uuid.UUID) error {
	s.mu.Lock()
	found := false
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			s.notifications[i].MarkRead()
			found = true

			break
		}
	}
	if !found {
		s.mu.Unlock()

		return domainerrors.ErrNotificationNotFound
	}
	snapshot := s.marshalLocked()
	unread := s.unreadLocked()
	notify := s.listenersLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	dispatchUnread(notify, unread)

	return nil
}

// MarkAllRead flips every notification to read, driving the unread count to
// zero.
func (s *notificationService) MarkAllRead() {
	s.mu.Lock()
	for i := range s.notifications {
		s.notifications[i].MarkRead()
	}
	snapshot := s.marshalLocked()
	notify := s.listenersLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	dispatchUnread(notify, 0)
}

// Delete removes one notification in either read state.
func (s *notificationService) Delete(id uuid.UUID) error {
	s.mu.Lock()
	idx := -1
	for i := range s.notifications {
		if s.notifications[i].ID == id {
			idx = i

			break
		}
	}
	if idx < 0 {
		s.mu.Unlock()

		return domainerrors.ErrNotificationNotFound
	}
	s.notifications = append(s.notifications[:idx], s.notifications[idx+1:]...)
	snapshot := s.marshalLocked()
	unread := s.unreadLocked()
	notify := s.listenersLocked()
	s.mu.Unlock()

	s.persist(snapshot)
	dispatchUnread(notify, unread)

	return nil
}

// ClearAll removes every notification regardless of state and drops the
// persisted blob.
func (s *notificationService) ClearAll() {
	s.mu.Lock()
	s.notifications = nil
	notify := s.listenersLocked()
	s.mu.Unlock()

	// Wait out in-flight snapshot writes so the removal cannot be overtaken.
	s.writer.flush()

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()
	if err := s.store.Remove(ctx, constants.StorageKeyNotifications); err != nil {
		s.logger.Warn("[Notifications] Failed to remove persisted list",
			slog.Any("error", err),
		)
	}

	dispatchUnread(notify, 0)
}

// UnreadCount recomputes the number of unread notifications. It is always a
// live recount, never a cached counter.
func (s *notificationService) UnreadCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.unreadLocked()
}

// SubscribeUnread registers fn for unread-count changes. The returned cancel
// is idempotent.
func (s *notificationService) SubscribeUnread(fn func(unread int)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.listeners, id)
			s.mu.Unlock()
		})
	}
}

func (s *notificationService) unreadLocked() int {
	unread := 0
	for _, n := range s.notifications {
		if !n.Read {
			unread++
		}
	}

	return unread
}

func (s *notificationService) listenersLocked() []func(int) {
	notify := make([]func(int), 0, len(s.listeners))
	for _, fn := range s.listeners {
		notify = append(notify, fn)
	}

	return notify
}

func (s *notificationService) marshalLocked() []byte {
	notifications := s.notifications
	if notifications == nil {
		notifications = []entity.Notification{}
	}

	snapshot, err := json.Marshal(notifications)
	if err != nil {
		s.logger.Error("[Notifications] Failed to marshal snapshot", slog.Any("error", err))

		return nil
	}

	return snapshot
}

func (s *notificationService) persist(snapshot []byte) {
	if snapshot == nil {
		return
	}
	s.writer.enqueue(snapshot)
}

func dispatchUnread(listeners []func(int), unread int) {
	for _, fn := range listeners {
		fn(unread)
	}
}

// newNotificationID returns a time-ordered id so the persisted list re-sorts
// deterministically.
func newNotificationID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}

	return id
}
