// Package service defines interfaces for external collaborators of the engine.
package service

import (
	"context"

	"grocery/internal/domain/entity"
)

// CatalogSource is the remote authoritative catalog. FetchAll returns every
// product row; the engine replaces its cached list wholesale on success.
type CatalogSource interface {
	FetchAll(ctx context.Context) ([]entity.Product, error)
}
