package scanner_test

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/matcher"
	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/MichalMitros/stock-reconciler/internal/platform/models/modelstesting"
	"github.com/MichalMitros/stock-reconciler/internal/scanner"
	"github.com/MichalMitros/stock-reconciler/internal/scanner/mocks"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var logger = zerolog.Nop()

func TestUnitRunCompleted(t *testing.T) {
	products := fakeProducts(5, 3)
	// storefront stock per code, missing code is not found
	storefrontStock := map[string]int{
		products[0].Code: 3,
		products[1].Code: 4,
		products[3].Code: 3,
		products[4].Code: 0,
	}

	catalog := mocks.NewCatalog(t)
	storefront := mocks.NewMatcher(t)
	diagnostics := mocks.NewDiagnostics(t)

	mockCatalogPages(catalog, products, 2)
	mockMatcherStock(storefront, storefrontStock)
	diagnostics.On("RecordMismatch", mock.Anything, mock.MatchedBy(func(d models.MismatchDiagnostic) bool {
		return d.Code == products[1].Code || d.Code == products[4].Code
	})).Return(nil).Twice()

	var progress []scanner.Progress
	s := scanner.NewScanner(catalog, storefront, diagnostics, &logger,
		scanner.WithPageSize(2),
		scanner.WithYield(2, time.Microsecond),
		scanner.WithProgress(func(p scanner.Progress) { progress = append(progress, p) }),
	)

	err := s.Run(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, scanner.Progress{
		State:         scanner.StateCompleted,
		Scanned:       5,
		Total:         5,
		MismatchCount: 2,
	}, s.Snapshot(), "should complete scan")

	rows := s.Rows()
	require.Len(t, rows, 3, "should collect only not matching rows")
	assert.Equal(t, products[1].Code, rows[0].Code, "should keep catalog order")
	assert.Equal(t, models.AuditStatusMismatch, rows[0].Status, "should classify product")
	assert.Equal(t, products[2].Code, rows[1].Code, "should keep catalog order")
	assert.Equal(t, models.AuditStatusNotMapped, rows[1].Status, "should classify product")
	assert.False(t, rows[1].LookupFailed, "should confirm absence")
	assert.Equal(t, products[4].Code, rows[2].Code, "should keep catalog order")

	require.Len(t, progress, 6, "should emit progress for total and after each product")
	for ix, p := range progress[1:] {
		assert.Equal(t, ix+1, p.Scanned, "should emit progress after each product")
		assert.Equal(t, 5, p.Total, "should emit total")
	}
	catalog.AssertNumberOfCalls(t, "ListProducts", 3)
}

func TestUnitRunCancelled(t *testing.T) {
	products := fakeProducts(100, 1)

	catalog := mocks.NewCatalog(t)
	storefront := mocks.NewMatcher(t)
	diagnostics := mocks.NewDiagnostics(t)

	var s *scanner.Scanner
	var calls atomic.Int32

	mockCatalogPages(catalog, products, 20)
	storefront.On("Match", mock.Anything, mock.Anything).Return(func(_ context.Context, code string) (models.MatchResult, error) {
		if calls.Add(1) == 40 {
			assert.True(t, s.Cancel(), "should accept cancellation of running scan")
		}
		return models.MatchResult{Code: code, MatchTier: models.MatchTierNotFound}, nil
	})

	s = scanner.NewScanner(catalog, storefront, diagnostics, &logger, scanner.WithPageSize(20), scanner.WithYield(0, 0))

	err := s.Run(context.TODO())

	require.NoError(t, err, "shouldn't return error for cancelled scan")
	assert.Equal(t, scanner.StateCancelled, s.Snapshot().State, "should cancel scan")
	assert.Equal(t, 40, s.Snapshot().Scanned, "should stop after cancellation")
	assert.Equal(t, 100, s.Snapshot().Total, "should keep total")
	assert.Len(t, s.Rows(), 40, "should keep collected rows")
	storefront.AssertNumberOfCalls(t, "Match", 40)
	catalog.AssertNumberOfCalls(t, "ListProducts", 2)
	assert.False(t, s.Cancel(), "shouldn't cancel finished scan")
}

func TestUnitRunCancelledDuringYield(t *testing.T) {
	products := fakeProducts(100, 1)

	catalog := mocks.NewCatalog(t)
	storefront := mocks.NewMatcher(t)
	diagnostics := mocks.NewDiagnostics(t)

	var s *scanner.Scanner

	mockCatalogPages(catalog, products, 20)
	storefront.On("Match", mock.Anything, mock.Anything).Return(func(_ context.Context, code string) (models.MatchResult, error) {
		return models.MatchResult{Code: code, MatchTier: models.MatchTierNotFound}, nil
	})

	s = scanner.NewScanner(catalog, storefront, diagnostics, &logger,
		scanner.WithPageSize(20),
		scanner.WithYield(40, 300*time.Millisecond),
		scanner.WithProgress(func(p scanner.Progress) {
			if p.Scanned == 40 {
				// cancel while scanner pauses before next product
				time.AfterFunc(100*time.Millisecond, func() { s.Cancel() })
			}
		}),
	)

	err := s.Run(context.TODO())

	require.NoError(t, err, "shouldn't return error for cancelled scan")
	assert.Equal(t, scanner.StateCancelled, s.Snapshot().State, "should cancel scan")
	assert.Equal(t, 40, s.Snapshot().Scanned, "should stop after cancellation")
	storefront.AssertNumberOfCalls(t, "Match", 40)
}

func TestUnitRunMismatchDiagnosticTime(t *testing.T) {
	products := fakeProducts(1, 3)
	now := time.Date(2024, 3, 1, 10, 20, 30, 0, time.UTC)

	catalog := mocks.NewCatalog(t)
	storefront := mocks.NewMatcher(t)
	diagnostics := mocks.NewDiagnostics(t)

	mockCatalogPages(catalog, products, 10)
	mockMatcherStock(storefront, map[string]int{products[0].Code: 1})
	diagnostics.On("RecordMismatch", mock.Anything, models.MismatchDiagnostic{
		Code:             products[0].Code,
		StorefrontHandle: "",
		Query:            products[0].Code,
		Reason:           "stock mismatch: erp 3, storefront 1",
		CreatedAt:        now,
	}).Return(nil).Once()

	s := scanner.NewScanner(catalog, storefront, diagnostics, &logger,
		scanner.WithPageSize(10),
		scanner.WithClock(fixedClock{now: now}),
	)

	require.NoError(t, s.Run(context.TODO()), "shouldn't return any error")
	assert.Equal(t, 1, s.Snapshot().MismatchCount, "should count mismatch")
}

func TestUnitRunPageFetchFailure(t *testing.T) {
	t.Run("retries exhausted", func(t *testing.T) {
		catalog := mocks.NewCatalog(t)
		storefront := mocks.NewMatcher(t)
		diagnostics := mocks.NewDiagnostics(t)

		catalog.On("ListProducts", mock.Anything, 0, 10).Return(models.ProductPage{}, assert.AnError)

		s := scanner.NewScanner(catalog, storefront, diagnostics, &logger,
			scanner.WithPageSize(10),
			scanner.WithRetry(2, time.Millisecond),
		)

		err := s.Run(context.TODO())

		require.ErrorIs(t, err, assert.AnError, "should return error containing assert.AnError")
		assert.Equal(t, scanner.StateFailed, s.Snapshot().State, "should fail scan")
		assert.ErrorIs(t, s.Snapshot().Err, assert.AnError, "should keep last error")
		catalog.AssertNumberOfCalls(t, "ListProducts", 3)
	})

	t.Run("transient failure", func(t *testing.T) {
		products := fakeProducts(3, 1)

		catalog := mocks.NewCatalog(t)
		storefront := mocks.NewMatcher(t)
		diagnostics := mocks.NewDiagnostics(t)

		catalog.On("ListProducts", mock.Anything, 0, 10).Return(models.ProductPage{}, assert.AnError).Once()
		mockCatalogPages(catalog, products, 10)
		mockMatcherStock(storefront, map[string]int{
			products[0].Code: 1,
			products[1].Code: 1,
			products[2].Code: 1,
		})

		s := scanner.NewScanner(catalog, storefront, diagnostics, &logger,
			scanner.WithPageSize(10),
			scanner.WithRetry(2, time.Millisecond),
		)

		err := s.Run(context.TODO())

		require.NoError(t, err, "shouldn't return any error")
		assert.Equal(t, scanner.StateCompleted, s.Snapshot().State, "should complete scan")
		assert.Equal(t, 3, s.Snapshot().Scanned, "should scan all products")
		assert.Empty(t, s.Rows(), "shouldn't collect matching rows")
	})
}

func TestUnitRunLookupFailure(t *testing.T) {
	products := fakeProducts(1, 2)

	catalog := mocks.NewCatalog(t)
	storefront := mocks.NewMatcher(t)
	diagnostics := mocks.NewDiagnostics(t)

	mockCatalogPages(catalog, products, 10)
	storefront.On("Match", mock.Anything, products[0].Code).Return(
		models.MatchResult{Code: products[0].Code, MatchTier: models.MatchTierNotFound},
		fmt.Errorf("%w: %w", matcher.ErrLookupFailed, assert.AnError),
	)

	s := scanner.NewScanner(catalog, storefront, diagnostics, &logger, scanner.WithPageSize(10))

	require.NoError(t, s.Run(context.TODO()), "shouldn't fail scan because of lookup failure")

	rows := s.Rows()
	require.Len(t, rows, 1, "should collect not mapped row")
	assert.Equal(t, models.AuditStatusNotMapped, rows[0].Status, "should classify product")
	assert.True(t, rows[0].LookupFailed, "should mark failed lookup")
	assert.Zero(t, s.Snapshot().MismatchCount, "shouldn't count failed lookup as mismatch")
}

func TestUnitStartRejectsRunningScan(t *testing.T) {
	products := fakeProducts(2, 1)
	release := make(chan struct{})
	started := make(chan struct{})

	catalog := mocks.NewCatalog(t)
	storefront := mocks.NewMatcher(t)
	diagnostics := mocks.NewDiagnostics(t)

	mockCatalogPages(catalog, products, 10)
	storefront.On("Match", mock.Anything, products[0].Code).Run(func(mock.Arguments) {
		close(started)
		<-release
	}).Return(models.MatchResult{Code: products[0].Code, MatchTier: models.MatchTierNotFound}, nil).Once()
	storefront.On("Match", mock.Anything, mock.Anything).Return(models.MatchResult{MatchTier: models.MatchTierNotFound}, nil)

	s := scanner.NewScanner(catalog, storefront, diagnostics, &logger, scanner.WithPageSize(10))

	finished := make(chan scanner.Progress, 1)
	require.NoError(t, s.Start(context.TODO(), func(p scanner.Progress, rows []models.AuditRow) {
		assert.Len(t, rows, 2, "should pass collected rows")
		finished <- p
	}), "shouldn't return any error")

	<-started
	assert.Equal(t, scanner.StateRunning, s.Snapshot().State, "should run scan")
	assert.ErrorIs(t, s.Start(context.TODO(), nil), scanner.ErrScanRunning, "should reject second start")
	assert.ErrorIs(t, s.Run(context.TODO()), scanner.ErrScanRunning, "should reject second run")

	close(release)
	s.Wait()

	assert.Equal(t, scanner.StateCompleted, (<-finished).State, "should finish with completed state")

	require.NoError(t, s.Run(context.TODO()), "should allow new scan after previous finished")
	assert.Equal(t, 2, s.Snapshot().Scanned, "should reset counters")
}

// fakeProducts returns products with variants holding provided quantity each.
func fakeProducts(n, quantity int) []models.ProductAggregate {
	products := make([]models.ProductAggregate, 0, n)
	for ix := range n {
		products = append(products, modelstesting.FakeAggregate(func(p *models.ProductAggregate) {
			p.Code = fmt.Sprintf("P%05d", ix)
			p.Data.Metas = []models.Variant{modelstesting.FakeVariant(func(v *models.Variant) { v.Quantity = quantity })}
		}))
	}

	return products
}

func mockCatalogPages(catalog *mocks.Catalog, products []models.ProductAggregate, pageSize int) {
	catalog.On("ListProducts", mock.Anything, mock.Anything, pageSize).Return(
		func(_ context.Context, offset, limit int) (models.ProductPage, error) {
			end := min(offset+limit, len(products))
			return models.ProductPage{Products: products[offset:end], Total: len(products)}, nil
		},
	)
}

// mockMatcherStock mocks matcher finding products with single variant of provided stock.
func mockMatcherStock(storefront *mocks.Matcher, stock map[string]int) {
	storefront.On("Match", mock.Anything, mock.Anything).Return(func(_ context.Context, code string) (models.MatchResult, error) {
		inventory, ok := stock[code]
		if !ok {
			return models.MatchResult{Code: code, MatchTier: models.MatchTierNotFound}, nil
		}
		return models.MatchResult{
			Code:      code,
			Found:     true,
			MatchTier: models.MatchTierExactSku,
			Variants: []models.StorefrontVariant{
				modelstesting.FakeStorefrontVariant(func(v *models.StorefrontVariant) { v.Inventory = inventory }),
			},
		}, nil
	})
}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time {
	return c.now
}
