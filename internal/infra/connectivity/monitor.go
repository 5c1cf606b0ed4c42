// Package connectivity tracks network reachability through a periodic probe.
package connectivity

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"grocery/config"
	"grocery/internal/domain/entity"
	"grocery/internal/domain/service"

	"go.uber.org/fx"
)

// httpProbe checks reachability of the remote service with a cheap request.
type httpProbe struct {
	url    string
	client *http.Client
}

// NewHTTPProbe creates the default reachability probe from config.
func NewHTTPProbe(cfg *config.Config) service.Probe {
	return &httpProbe{
		url: cfg.Connectivity.ProbeURL,
		client: &http.Client{
			Timeout: cfg.Connectivity.ProbeTimeout,
		},
	}
}

// Check reports whether the probe URL answered at all. Any HTTP status counts
// as reachable; only transport errors count as offline.
func (p *httpProbe) Check(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, p.url, nil)
	if err != nil {
		return false
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()

	return true
}

// Monitor polls the probe and fans out state transitions to listeners.
// It starts conservatively offline and stays there until a probe succeeds.
type Monitor struct {
	probe    service.Probe
	interval time.Duration
	logger   *slog.Logger

	mu        sync.Mutex
	state     entity.ConnectivityState
	listeners map[int]func(entity.ConnectivityState)
	nextID    int

	cancel context.CancelFunc
	done   chan struct{}
}

// MonitorParams holds dependencies for the connectivity monitor.
type MonitorParams struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Probe  service.Probe
	Logger *slog.Logger
}

// NewMonitor creates the probe-driven connectivity monitor and binds its
// polling loop to the fx lifecycle.
func NewMonitor(params MonitorParams) service.ConnectivityMonitor {
	m := New(params.Probe, params.Config.Connectivity.ProbeInterval, params.Logger)

	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			m.Start()

			return nil
		},
		OnStop: func(context.Context) error {
			m.Stop()

			return nil
		},
	})

	return m
}

// New creates a monitor without lifecycle wiring, for direct use in tests.
func New(probe service.Probe, interval time.Duration, logger *slog.Logger) *Monitor {
	return &Monitor{
		probe:     probe,
		interval:  interval,
		logger:    logger,
		state:     entity.Offline,
		listeners: make(map[int]func(entity.ConnectivityState)),
	}
}

// Current returns the last observed state.
func (m *Monitor) Current() entity.ConnectivityState {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.state
}

// Subscribe registers fn for state transitions. The returned cancel is
// idempotent.
func (m *Monitor) Subscribe(fn func(entity.ConnectivityState)) (cancel func()) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.listeners[id] = fn
	m.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.listeners, id)
			m.mu.Unlock()
		})
	}
}

// Start launches the probe loop. The first probe runs immediately so the
// process leaves the conservative offline state as soon as possible.
func (m *Monitor) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancel = cancel
	m.done = make(chan struct{})

	go m.loop(ctx)
}

// Stop terminates the probe loop and waits for it to exit.
func (m *Monitor) Stop() {
	if m.cancel == nil {
		return
	}
	m.cancel()
	<-m.done
}

func (m *Monitor) loop(ctx context.Context) {
	defer close(m.done)

	m.Observe(m.probe.Check(ctx))

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.Observe(m.probe.Check(ctx))
		}
	}
}

// Observe records a probe result and notifies listeners when the state
// actually changed; repeats of the same state are suppressed.
func (m *Monitor) Observe(reachable bool) {
	next := entity.Offline
	if reachable {
		next = entity.Online
	}

	m.mu.Lock()
	if m.state == next {
		m.mu.Unlock()

		return
	}
	m.state = next

	notify := make([]func(entity.ConnectivityState), 0, len(m.listeners))
	for _, fn := range m.listeners {
		notify = append(notify, fn)
	}
	m.mu.Unlock()

	m.logger.Info("Connectivity state changed", slog.String("state", string(next)))

	for _, fn := range notify {
		fn(next)
	}
}
