package impl

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"grocery/internal/domain/constants"
	"grocery/internal/domain/entity"
	"grocery/internal/domain/repository"
	"grocery/internal/usecase"

	"github.com/shopspring/decimal"
	"go.uber.org/fx"
)

type cartService struct {
	catalog usecase.CatalogUsecase
	logger  *slog.Logger
	writer  *snapshotWriter

	mu    sync.Mutex
	items []entity.CartItem
}

// CartServiceParams holds dependencies for CartService, injected by Fx.
type CartServiceParams struct {
	fx.In
	fx.Lifecycle

	Catalog usecase.CatalogUsecase
	Store   repository.BlobStore
	Logger  *slog.Logger
}

// NewCartService creates the cart manager, seeded from the last persisted
// snapshot.
func NewCartService(params CartServiceParams) usecase.CartUsecase {
	s := &cartService{
		catalog: params.Catalog,
		logger:  params.Logger,
		writer:  newSnapshotWriter(params.Store, constants.StorageKeyCart, params.Logger),
	}
	s.items = loadSnapshot[[]entity.CartItem](params.Store, constants.StorageKeyCart, params.Logger)

	params.Append(fx.Hook{
		OnStop: func(context.Context) error {
			s.writer.close()

			return nil
		},
	})

	return s
}

// Add inserts an entry with quantity 1 or increments an existing one.
func (s *cartService) Add(productID string) {
	s.mu.Lock()
	if i := s.indexOf(productID); i >= 0 {
		s.items[i].Quantity++
	} else {
		s.items = append(s.items, entity.CartItem{ProductID: productID, Quantity: 1})
	}
	snapshot := s.marshalLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// ChangeQuantity applies delta with a floor of zero; an entry reaching zero
// is removed. An absent id behaves as quantity zero, so a positive delta
// inserts and anything else is a persisted no-op.
func (s *cartService) ChangeQuantity(productID string, delta int) {
	s.mu.Lock()
	if i := s.indexOf(productID); i >= 0 {
		next := s.items[i].Quantity + delta
		if next <= 0 {
			s.items = append(s.items[:i], s.items[i+1:]...)
		} else {
			s.items[i].Quantity = next
		}
	} else if delta > 0 {
		s.items = append(s.items, entity.CartItem{ProductID: productID, Quantity: delta})
	}
	snapshot := s.marshalLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

// Items returns the cart entries in insertion order.
func (s *cartService) Items() []entity.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]entity.CartItem, len(s.items))
	copy(out, s.items)

	return out
}

// TotalItems returns the sum of all quantities.
func (s *cartService) TotalItems() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}

	return total
}

// TotalPrice sums quantity times unit price against the current catalog, so
// a price correction shows up in the total immediately. Entries whose
// product left the catalog contribute zero.
func (s *cartService) TotalPrice() decimal.Decimal {
	items := s.Items()

	total := decimal.Zero
	for _, item := range items {
		product, err := s.catalog.FindByID(item.ProductID)
		if err != nil {
			continue
		}
		total = total.Add(product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}

	return total
}

// Clear empties the cart.
func (s *cartService) Clear() {
	s.mu.Lock()
	s.items = nil
	snapshot := s.marshalLocked()
	s.mu.Unlock()

	s.persist(snapshot)
}

func (s *cartService) indexOf(productID string) int {
	for i, item := range s.items {
		if item.ProductID == productID {
			return i
		}
	}

	return -1
}

func (s *cartService) marshalLocked() []byte {
	items := s.items
	if items == nil {
		items = []entity.CartItem{}
	}

	snapshot, err := json.Marshal(items)
	if err != nil {
		s.logger.Error("[Cart] Failed to marshal snapshot", slog.Any("error", err))

		return nil
	}

	return snapshot
}

func (s *cartService) persist(snapshot []byte) {
	if snapshot == nil {
		return
	}
	s.writer.enqueue(snapshot)
}
