package impl

import (
	"log/slog"
	"sync"
	"time"

	"grocery/config"
	"grocery/internal/domain/entity"
	domainerrors "grocery/internal/domain/errors"
	"grocery/internal/usecase"

	"go.uber.org/fx"
)

type scanService struct {
	catalog  usecase.CatalogUsecase
	cooldown time.Duration
	logger   *slog.Logger
	now      func() time.Time

	mu            sync.Mutex
	cooldownUntil time.Time
}

// ScanServiceParams holds dependencies for ScanService, injected by Fx.
type ScanServiceParams struct {
	fx.In

	Config  *config.Config
	Catalog usecase.CatalogUsecase
	Logger  *slog.Logger
}

// NewScanService creates the barcode scan resolver.
func NewScanService(params ScanServiceParams) usecase.ScanUsecase {
	return &scanService{
		catalog:  params.Catalog,
		cooldown: params.Config.Scan.Cooldown,
		logger:   params.Logger,
		now:      time.Now,
	}
}

// Resolve maps a decoded barcode to a product. A failed lookup starts the
// cooldown; a successful one clears it.
func (s *scanService) Resolve(code string) (entity.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.now().Before(s.cooldownUntil) {
		return entity.Product{}, domainerrors.ErrScanCooldown
	}

	product, err := s.catalog.FindByBarcode(code)
	if err != nil {
		s.cooldownUntil = s.now().Add(s.cooldown)
		s.logger.Info("[Scan] Unknown barcode, cooling down",
			slog.String("code", code),
			slog.Duration("cooldown", s.cooldown),
		)

		return entity.Product{}, domainerrors.ErrProductNotFound
	}

	s.cooldownUntil = time.Time{}

	return product, nil
}
