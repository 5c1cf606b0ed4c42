// Package usecase defines the application's usecase interfaces.
package usecase

import (
	"context"

	"grocery/internal/domain/entity"
)

// CatalogUsecase owns the locally cached, offline-capable product catalog.
type CatalogUsecase interface {
	// Refresh replaces the cached list from the remote source and persists a
	// snapshot. It returns errors.ErrOffline immediately, without attempting
	// network I/O, while the connectivity monitor reports offline. On fetch
	// failure the prior list is retained and the error is non-fatal.
	Refresh(ctx context.Context) ([]entity.Product, error)

	// Current returns the cached list. It always answers, seeded from the
	// last persisted snapshot at startup (empty if none exists).
	Current() []entity.Product

	// FindByID looks a product up in the cached list.
	FindByID(id string) (entity.Product, error)

	// FindByBarcode looks a product up by scan code in the cached list.
	FindByBarcode(code string) (entity.Product, error)
}
