package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"grocery/internal/domain/entity"
	domainerrors "grocery/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubNotificationUsecase struct {
	notifications []entity.Notification
	markedRead    []uuid.UUID
	markReadErr   error
}

func (s *stubNotificationUsecase) OnRemoteInsert(entity.Product) {}

func (s *stubNotificationUsecase) List() []entity.Notification {
	return s.notifications
}

func (s *stubNotificationUsecase) MarkRead(id uuid.UUID) error {
	if s.markReadErr != nil {
		return s.markReadErr
	}
	s.markedRead = append(s.markedRead, id)

	return nil
}

func (s *stubNotificationUsecase) MarkAllRead() {}

func (s *stubNotificationUsecase) Delete(uuid.UUID) error { return nil }

func (s *stubNotificationUsecase) ClearAll() {}

func (s *stubNotificationUsecase) UnreadCount() int {
	unread := 0
	for _, n := range s.notifications {
		if !n.Read {
			unread++
		}
	}

	return unread
}

func (s *stubNotificationUsecase) SubscribeUnread(func(int)) func() {
	return func() {}
}

func newNotificationContext(method, target string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func TestNotificationHandler_List(t *testing.T) {
	notificationUC := &stubNotificationUsecase{
		notifications: []entity.Notification{
			{ID: uuid.New(), Kind: entity.KindNewProduct, Message: "New product added: Rice"},
			{ID: uuid.New(), Kind: entity.KindNewProduct, Read: true},
		},
	}
	h := &NotificationHandler{notificationUC: notificationUC}

	c, rec := newNotificationContext(http.MethodGet, "/notifications")
	require.NoError(t, h.List(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"unread_count":1`)
	assert.Contains(t, rec.Body.String(), "New product added: Rice")
}

func TestNotificationHandler_MarkRead(t *testing.T) {
	notificationUC := &stubNotificationUsecase{}
	h := &NotificationHandler{notificationUC: notificationUC}

	id := uuid.New()
	c, rec := newNotificationContext(http.MethodPost, "/notifications/"+id.String()+"/read")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	require.NoError(t, h.MarkRead(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []uuid.UUID{id}, notificationUC.markedRead)
}

func TestNotificationHandler_MarkReadInvalidID(t *testing.T) {
	h := &NotificationHandler{notificationUC: &stubNotificationUsecase{}}

	c, rec := newNotificationContext(http.MethodPost, "/notifications/not-a-uuid/read")
	c.SetParamNames("id")
	c.SetParamValues("not-a-uuid")

	require.NoError(t, h.MarkRead(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestNotificationHandler_MarkReadUnknownID(t *testing.T) {
	h := &NotificationHandler{
		notificationUC: &stubNotificationUsecase{markReadErr: domainerrors.ErrNotificationNotFound},
	}

	id := uuid.New()
	c, _ := newNotificationContext(http.MethodPost, "/notifications/"+id.String()+"/read")
	c.SetParamNames("id")
	c.SetParamValues(id.String())

	err := h.MarkRead(c)
	assert.ErrorIs(t, err, domainerrors.ErrNotificationNotFound)
}
