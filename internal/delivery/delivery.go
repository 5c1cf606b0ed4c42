// Package delivery defines the contract shared by all transport servers.
package delivery

import "context"

// Delivery is a long-running transport server. Implementations block in
// Serve until the server is shut down through their lifecycle hook.
type Delivery interface {
	Serve(ctx context.Context) error
}
