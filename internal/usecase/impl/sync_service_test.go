package impl

import (
	"context"
	"sync"
	"testing"
	"time"

	"grocery/config"
	"grocery/internal/domain/entity"
	"grocery/internal/domain/service"
	"grocery/internal/usecase"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubFeed is a change feed driven directly by tests.
type stubFeed struct {
	mu            sync.Mutex
	ctx           context.Context
	onInsert      func(entity.Product)
	subscribeErr  error
	unsubscribed  bool
	subscriptions int
}

func (f *stubFeed) Subscribe(ctx context.Context, onInsert func(entity.Product)) (service.UnsubscribeFunc, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.subscribeErr != nil {
		return nil, f.subscribeErr
	}
	f.ctx = ctx
	f.onInsert = onInsert
	f.subscriptions++

	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()

		f.unsubscribed = true
		f.onInsert = nil
	}, nil
}

func (f *stubFeed) publish(product entity.Product) {
	f.mu.Lock()
	onInsert := f.onInsert
	f.mu.Unlock()

	if onInsert != nil {
		onInsert(product)
	}
}

func (f *stubFeed) isUnsubscribed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.unsubscribed
}

func (f *stubFeed) subscribeCtx() context.Context {
	f.mu.Lock()
	defer f.mu.Unlock()

	return f.ctx
}

type syncFixture struct {
	svc           usecase.SyncUsecase
	source        *stubSource
	monitor       *stubMonitor
	feed          *stubFeed
	notifications usecase.NotificationUsecase
}

func createTestSync(t *testing.T, monitor *stubMonitor, feed *stubFeed) syncFixture {
	t.Helper()

	source := &stubSource{products: testProducts()}
	catalog := createTestCatalog(source, monitor, newMemStore())
	notifications := createTestNotifications(newMemStore())

	cfg := &config.Config{}
	cfg.Notifications.UnreadPollInterval = time.Hour

	svc := NewSyncService(SyncServiceParams{
		Lifecycle:     nopLifecycle{},
		Ctx:           context.Background(),
		Config:        cfg,
		Monitor:       monitor,
		Feed:          feed,
		Catalog:       catalog,
		Notifications: notifications,
		Logger:        newTestLogger(),
	})

	return syncFixture{
		svc:           svc,
		source:        source,
		monitor:       monitor,
		feed:          feed,
		notifications: notifications,
	}
}

func TestSyncService_OnlineTransitionTriggersRefresh(t *testing.T) {
	fix := createTestSync(t, newStubMonitor(entity.Offline), &stubFeed{})

	require.NoError(t, fix.svc.Start(context.Background()))
	defer func() { require.NoError(t, fix.svc.Stop(context.Background())) }()

	assert.Zero(t, fix.source.fetchCalls())

	fix.monitor.setState(entity.Online)
	assert.Eventually(t, func() bool {
		return fix.source.fetchCalls() == 1
	}, time.Second, 5*time.Millisecond, "going online must refresh the catalog")

	// Staying online does not retrigger; only the transition does.
	fix.monitor.setState(entity.Offline)
	fix.monitor.setState(entity.Online)
	assert.Eventually(t, func() bool {
		return fix.source.fetchCalls() == 2
	}, time.Second, 5*time.Millisecond)
}

func TestSyncService_FeedInsertDuringTransition(t *testing.T) {
	fix := createTestSync(t, newStubMonitor(entity.Offline), &stubFeed{})

	require.NoError(t, fix.svc.Start(context.Background()))
	defer func() { require.NoError(t, fix.svc.Stop(context.Background())) }()

	product := entity.Product{ID: "p7", Name: "Milk", Price: decimal.RequireFromString("75")}

	// The insert event races the refresh kicked off by going online; the
	// redelivery after the transition must still collapse to one notification.
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		fix.feed.publish(product)
	}()
	go func() {
		defer wg.Done()
		fix.monitor.setState(entity.Online)
	}()
	wg.Wait()
	fix.feed.publish(product)

	assert.Eventually(t, func() bool {
		return fix.source.fetchCalls() == 1
	}, time.Second, 5*time.Millisecond)

	list := fix.notifications.List()
	require.Len(t, list, 1, "exactly one notification per inserted product")
	assert.Equal(t, "p7", list[0].ProductID)
}

func TestSyncService_FeedOutlivesStartDeadline(t *testing.T) {
	feed := &stubFeed{}
	fix := createTestSync(t, newStubMonitor(entity.Offline), feed)

	// Lifecycle start hooks run under a deadline; the feed subscription must
	// not inherit it, or the subscription dies shortly after boot.
	startCtx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()
	require.NoError(t, fix.svc.Start(startCtx))
	defer func() { require.NoError(t, fix.svc.Stop(context.Background())) }()

	<-startCtx.Done()

	require.NoError(t, feed.subscribeCtx().Err(),
		"feed subscription context must outlive the start deadline")

	feed.publish(entity.Product{ID: "p1", Name: "Rice"})
	assert.Len(t, fix.notifications.List(), 1)
}

func TestSyncService_StopUnsubscribes(t *testing.T) {
	feed := &stubFeed{}
	fix := createTestSync(t, newStubMonitor(entity.Offline), feed)

	require.NoError(t, fix.svc.Start(context.Background()))
	require.NoError(t, fix.svc.Stop(context.Background()))

	assert.True(t, feed.isUnsubscribed())

	feed.publish(entity.Product{ID: "p1", Name: "Rice"})
	assert.Empty(t, fix.notifications.List(), "events after Stop must be dropped")
}

func TestSyncService_FeedSubscribeFailure(t *testing.T) {
	feed := &stubFeed{subscribeErr: errors.New("broker unavailable")}
	fix := createTestSync(t, newStubMonitor(entity.Offline), feed)

	err := fix.svc.Start(context.Background())
	require.Error(t, err)

	// Stop after a failed Start must not panic or hang.
	require.NoError(t, fix.svc.Stop(context.Background()))
}
