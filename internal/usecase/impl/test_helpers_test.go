package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"grocery/internal/domain/entity"
	"grocery/internal/domain/repository"
	"grocery/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// nopLifecycle satisfies fx.Lifecycle for constructors under test; hooks are
// discarded because tests drive the services directly.
type nopLifecycle struct{}

func (nopLifecycle) Append(fx.Hook) {}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memStore is an in-memory blob store with optional write-failure injection.
type memStore struct {
	mu       sync.Mutex
	data     map[string][]byte
	failPuts bool
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (s *memStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.failPuts {
		return errors.New("disk full")
	}
	s.data[key] = append([]byte(nil), value...)

	return nil
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]
	if !ok {
		return nil, repository.ErrKeyNotFound
	}

	return append([]byte(nil), value...), nil
}

func (s *memStore) Remove(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)

	return nil
}

func (s *memStore) setFailPuts(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failPuts = fail
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.data[key]

	return ok
}

// stubSource is a scripted catalog source.
type stubSource struct {
	mu       sync.Mutex
	products []entity.Product
	err      error
	calls    int
}

func (s *stubSource) FetchAll(context.Context) ([]entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.calls++
	if s.err != nil {
		return nil, s.err
	}

	return append([]entity.Product(nil), s.products...), nil
}

func (s *stubSource) fetchCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.calls
}

// stubMonitor is a connectivity monitor driven directly by tests.
type stubMonitor struct {
	mu        sync.Mutex
	state     entity.ConnectivityState
	listeners []func(entity.ConnectivityState)
}

func newStubMonitor(state entity.ConnectivityState) *stubMonitor {
	return &stubMonitor{state: state}
}

func (m *stubMonitor) Current() entity.ConnectivityState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

func (m *stubMonitor) Subscribe(fn func(entity.ConnectivityState)) func() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.listeners = append(m.listeners, fn)

	return func() {}
}

func (m *stubMonitor) setState(state entity.ConnectivityState) {
	m.mu.Lock()
	m.state = state
	notify := make([]func(entity.ConnectivityState), len(m.listeners))
	copy(notify, m.listeners)
	m.mu.Unlock()

	for _, fn := range notify {
		fn(state)
	}
}

var _ service.ConnectivityMonitor = (*stubMonitor)(nil)
