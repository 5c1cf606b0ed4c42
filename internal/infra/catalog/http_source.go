// Package catalog implements the remote catalog source over HTTP.
package catalog

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"grocery/config"
	"grocery/internal/domain/entity"
	"grocery/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

const fetchTimeout = 30 * time.Second

// catalogRow is the wire shape of a remote product row. Remote ids may be
// numeric or string; they are carried as opaque strings internally.
type catalogRow struct {
	ID      json.Number     `json:"id"`
	Name    string          `json:"name"`
	Price   decimal.Decimal `json:"price"`
	Barcode *string         `json:"barcode"`
	Stock   *int            `json:"stock"`
}

// httpSource fetches the full product list from a PostgREST-style endpoint.
type httpSource struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
	logger     *slog.Logger
}

// NewHTTPSource creates the HTTP catalog source from config.
func NewHTTPSource(cfg *config.Config, logger *slog.Logger) service.CatalogSource {
	return &httpSource{
		endpoint: cfg.Catalog.Endpoint,
		apiKey:   cfg.Catalog.APIKey,
		httpClient: &http.Client{
			Timeout: fetchTimeout,
		},
		logger: logger,
	}
}

// FetchAll returns every product row of the remote catalog.
func (s *httpSource) FetchAll(ctx context.Context) ([]entity.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.endpoint, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	req.Header.Set("Accept", "application/json")
	if s.apiKey != "" {
		req.Header.Set("apikey", s.apiKey)
		req.Header.Set("Authorization", "Bearer "+s.apiKey)
	}
	q := req.URL.Query()
	q.Set("select", "*")
	req.URL.RawQuery = q.Encode()

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "catalog fetch failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, errors.Errorf("catalog returned non-success status: %d", resp.StatusCode)
	}

	var rows []catalogRow
	if err := json.NewDecoder(resp.Body).Decode(&rows); err != nil {
		return nil, errors.Wrap(err, "failed to decode catalog response")
	}

	products := make([]entity.Product, 0, len(rows))
	for _, row := range rows {
		product := entity.Product{
			ID:    row.ID.String(),
			Name:  row.Name,
			Price: row.Price,
			Stock: row.Stock,
		}
		if row.Barcode != nil {
			product.Barcode = *row.Barcode
		}
		products = append(products, product)
	}

	s.logger.Debug("[Catalog] Fetched remote catalog", slog.Int("count", len(products)))

	return products, nil
}
