package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"grocery/internal/domain/constants"
	"grocery/internal/domain/entity"
	domainerrors "grocery/internal/domain/errors"
	"grocery/internal/domain/repository"
	"grocery/internal/domain/service"
	"grocery/internal/errors"
	"grocery/internal/usecase"

	"go.uber.org/fx"
)

type catalogService struct {
	source  service.CatalogSource
	monitor service.ConnectivityMonitor
	logger  *slog.Logger
	writer  *snapshotWriter

	mu       sync.RWMutex
	products []entity.Product
}

// CatalogServiceParams holds dependencies for CatalogService, injected by Fx.
type CatalogServiceParams struct {
	fx.In
	fx.Lifecycle

	Source  service.CatalogSource
	Monitor service.ConnectivityMonitor
	Store   repository.BlobStore
	Logger  *slog.Logger
}

// NewCatalogService creates the catalog cache, seeded from the last persisted
// snapshot so the catalog answers before the first successful refresh.
func NewCatalogService(params CatalogServiceParams) usecase.CatalogUsecase {
	s := &catalogService{
		source:  params.Source,
		monitor: params.Monitor,
		logger:  params.Logger,
		writer:  newSnapshotWriter(params.Store, constants.StorageKeyProducts, params.Logger),
	}
	s.products = loadSnapshot[[]entity.Product](params.Store, constants.StorageKeyProducts, params.Logger)

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			s.writer.close()

			return nil
		},
	})

	return s
}

// Refresh replaces the cached list from the remote source. Offline refreshes
// are refused without network I/O; a failed fetch leaves the prior list in
// place.
func (s *catalogService) Refresh(ctx context.Context) ([]entity.Product, error) {
	if !s.monitor.Current().IsOnline() {
		return nil, domainerrors.ErrOffline
	}

	products, err := s.source.FetchAll(ctx)
	if err != nil {
		s.logger.Warn("[Catalog] Refresh failed, keeping cached list", slog.Any("error", err))

		return nil, domainerrors.ErrCatalogFetchFailed.WithDetails(err.Error())
	}

	s.mu.Lock()
	s.products = products
	snapshot, marshalErr := json.Marshal(products)
	s.mu.Unlock()

	if marshalErr != nil {
		s.logger.Error("[Catalog] Failed to marshal snapshot", slog.Any("error", marshalErr))
	} else {
		s.writer.enqueue(snapshot)
	}

	s.logger.Info("[Catalog] Refreshed", slog.Int("count", len(products)))

	return products, nil
}

// Current returns a copy of the cached list.
func (s *catalogService) Current() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entity.Product, len(s.products))
	copy(out, s.products)

	return out
}

// FindByID looks a product up in the cached list.
func (s *catalogService) FindByID(id string) (entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.ID == id {
			return p, nil
		}
	}

	return entity.Product{}, domainerrors.ErrProductNotFound
}

// FindByBarcode looks a product up by scan code in the cached list.
func (s *catalogService) FindByBarcode(code string) (entity.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.products {
		if p.Barcode != "" && p.Barcode == code {
			return p, nil
		}
	}

	return entity.Product{}, domainerrors.ErrProductNotFound
}

// loadSnapshot reads and decodes a persisted snapshot, degrading to the zero
// value when the key is absent or unreadable.
func loadSnapshot[T any](store repository.BlobStore, key string, logger *slog.Logger) T {
	var out T

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := store.Get(ctx, key)
	if errors.Is(err, repository.ErrKeyNotFound) {
		return out
	}
	if err != nil {
		logger.Warn("Failed to load snapshot, starting empty",
			slog.String("key", key),
			slog.Any("error", err),
		)

		return out
	}

	if err := json.Unmarshal(data, &out); err != nil {
		logger.Warn("Failed to decode snapshot, starting empty",
			slog.String("key", key),
			slog.Any("error", err),
		)

		var zero T

		return zero
	}

	return out
}
