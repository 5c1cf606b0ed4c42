package usecase

import (
	"grocery/internal/domain/entity"
)

// ScanUsecase resolves decoded barcodes against the catalog cache. A failed
// lookup starts a short cooldown during which further scans are refused, so a
// stuck camera frame cannot hammer the catalog with the same unknown code.
type ScanUsecase interface {
	// Resolve maps a decoded barcode string to a product. It returns
	// errors.ErrProductNotFound for unknown codes and errors.ErrScanCooldown
	// while the cooldown from a previous failure is active.
	Resolve(code string) (entity.Product, error)
}
