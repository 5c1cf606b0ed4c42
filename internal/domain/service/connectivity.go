package service

import (
	"context"

	"grocery/internal/domain/entity"
)

// Probe is the external network-reachability signal wrapped by the
// connectivity monitor.
type Probe interface {
	// Check reports whether the remote side is currently reachable.
	Check(ctx context.Context) bool
}

// ConnectivityMonitor tracks online/offline transitions. Listeners are
// invoked on every transition; repeats of the same state are suppressed.
type ConnectivityMonitor interface {
	// Current returns the last observed state. Before the first successful
	// probe this is conservatively entity.Offline.
	Current() entity.ConnectivityState

	// Subscribe registers fn for state transitions and returns a cancel
	// function that stops further deliveries. Cancel is idempotent.
	Subscribe(fn func(entity.ConnectivityState)) (cancel func())
}
