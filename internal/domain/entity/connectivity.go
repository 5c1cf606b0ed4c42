package entity

// ConnectivityState is the process-wide view of network reachability. It is
// never persisted: every process starts Offline and stays there until a probe
// proves otherwise.
type ConnectivityState string

const (
	// Online means the last reachability probe succeeded.
	Online ConnectivityState = "online"
	// Offline means the last probe failed, or no probe has completed yet.
	Offline ConnectivityState = "offline"
)

// IsOnline reports whether the state allows network I/O.
func (s ConnectivityState) IsOnline() bool {
	return s == Online
}
