// Package impl contains the usecase implementations of the sync engine.
package impl

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"grocery/internal/domain/repository"
)

const persistTimeout = 5 * time.Second

// snapshotWriter decouples in-memory mutations from storage I/O: mutations
// hand it the latest serialized snapshot and return immediately, a single
// background goroutine writes sequentially. Obsolete intermediate snapshots
// are coalesced (latest wins), which preserves the last-write-wins semantics
// of whole-snapshot persistence. Write failures are logged and never
// propagated; in-memory state stays authoritative.
type snapshotWriter struct {
	key    string
	store  repository.BlobStore
	logger *slog.Logger

	mu      sync.Mutex
	cond    *sync.Cond
	pending []byte
	dirty   bool
	writing bool
	closed  bool

	done chan struct{}
}

func newSnapshotWriter(store repository.BlobStore, key string, logger *slog.Logger) *snapshotWriter {
	w := &snapshotWriter{
		key:    key,
		store:  store,
		logger: logger,
		done:   make(chan struct{}),
	}
	w.cond = sync.NewCond(&w.mu)

	go w.loop()

	return w
}

// enqueue schedules snapshot as the next write, replacing any not-yet-written
// predecessor.
func (w *snapshotWriter) enqueue(snapshot []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	w.pending = snapshot
	w.dirty = true
	w.cond.Broadcast()
}

// flush blocks until every snapshot enqueued so far has been written.
func (w *snapshotWriter) flush() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for w.dirty || w.writing {
		w.cond.Wait()
	}
}

// close flushes pending writes and stops the background goroutine.
func (w *snapshotWriter) close() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		<-w.done

		return
	}
	w.closed = true
	w.cond.Broadcast()
	w.mu.Unlock()

	<-w.done
}

func (w *snapshotWriter) loop() {
	defer close(w.done)

	for {
		w.mu.Lock()
		for !w.dirty && !w.closed {
			w.cond.Wait()
		}
		if !w.dirty && w.closed {
			w.mu.Unlock()

			return
		}
		snapshot := w.pending
		w.dirty = false
		w.writing = true
		w.mu.Unlock()

		w.write(snapshot)

		w.mu.Lock()
		w.writing = false
		w.cond.Broadcast()
		w.mu.Unlock()
	}
}

func (w *snapshotWriter) write(snapshot []byte) {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := w.store.Put(ctx, w.key, snapshot); err != nil {
		w.logger.Warn("Snapshot write failed, in-memory state remains authoritative",
			slog.String("key", w.key),
			slog.Any("error", err),
		)
	}
}
