package usecase

import "context"

// SyncUsecase is the background wiring of the engine: connectivity
// transitions drive catalog refreshes, change feed events drive the
// notification generator, and a bounded-interval poll backstops the unread
// event stream. Stop is guaranteed on shutdown so no event is delivered into
// a disposed state.
type SyncUsecase interface {
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
