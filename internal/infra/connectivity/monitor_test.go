package connectivity

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"grocery/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

type stubProbe struct {
	reachable bool
}

func (p *stubProbe) Check(context.Context) bool {
	return p.reachable
}

func newTestMonitor() *Monitor {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(&stubProbe{}, time.Minute, logger)
}

func TestMonitor_StartsOffline(t *testing.T) {
	m := newTestMonitor()

	assert.Equal(t, entity.Offline, m.Current())
}

func TestMonitor_ObserveTransitions(t *testing.T) {
	m := newTestMonitor()

	var seen []entity.ConnectivityState
	m.Subscribe(func(s entity.ConnectivityState) {
		seen = append(seen, s)
	})

	m.Observe(true)
	m.Observe(true) // repeat suppressed
	m.Observe(false)
	m.Observe(false) // repeat suppressed
	m.Observe(true)

	assert.Equal(t, []entity.ConnectivityState{entity.Online, entity.Offline, entity.Online}, seen)
	assert.Equal(t, entity.Online, m.Current())
}

func TestMonitor_SubscribeCancelIsIdempotent(t *testing.T) {
	m := newTestMonitor()

	calls := 0
	cancel := m.Subscribe(func(entity.ConnectivityState) {
		calls++
	})

	m.Observe(true)
	cancel()
	cancel()
	m.Observe(false)

	assert.Equal(t, 1, calls)
}
