package impl

import (
	"context"
	"testing"
	"time"

	"grocery/config"
	"grocery/internal/domain/entity"
	domainerrors "grocery/internal/domain/errors"
	"grocery/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestScanner(t *testing.T, cooldown time.Duration) usecase.ScanUsecase {
	t.Helper()

	source := &stubSource{products: testProducts()}
	catalog := createTestCatalog(source, newStubMonitor(entity.Online), newMemStore())
	_, err := catalog.Refresh(context.Background())
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Scan.Cooldown = cooldown

	return NewScanService(ScanServiceParams{
		Config:  cfg,
		Catalog: catalog,
		Logger:  newTestLogger(),
	})
}

func TestScanService_ResolveKnownBarcode(t *testing.T) {
	svc := createTestScanner(t, 3*time.Second)

	product, err := svc.Resolve("4800016")
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
}

func TestScanService_UnknownBarcodeStartsCooldown(t *testing.T) {
	svc := createTestScanner(t, 3*time.Second)

	now := time.Now()
	svc.(*scanService).now = func() time.Time { return now }

	_, err := svc.Resolve("0000000")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	// Inside the window every scan is rejected, even a known code.
	_, err = svc.Resolve("4800016")
	assert.ErrorIs(t, err, domainerrors.ErrScanCooldown)

	now = now.Add(3*time.Second + time.Millisecond)
	product, err := svc.Resolve("4800016")
	require.NoError(t, err)
	assert.Equal(t, "p1", product.ID)
}

func TestScanService_SuccessClearsCooldown(t *testing.T) {
	svc := createTestScanner(t, time.Hour)

	now := time.Now()
	svc.(*scanService).now = func() time.Time { return now }

	_, err := svc.Resolve("0000000")
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)

	now = now.Add(2 * time.Hour)
	_, err = svc.Resolve("4800016")
	require.NoError(t, err)

	// The earlier miss no longer counts against the next scan.
	_, err = svc.Resolve("4800016")
	require.NoError(t, err)
}
