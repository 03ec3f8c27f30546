package syncer_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/aggregator"
	"github.com/MichalMitros/stock-reconciler/internal/erp"
	"github.com/MichalMitros/stock-reconciler/internal/platform"
	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/MichalMitros/stock-reconciler/internal/platform/models/modelstesting"
	"github.com/MichalMitros/stock-reconciler/internal/syncer"
	"github.com/MichalMitros/stock-reconciler/internal/syncer/mocks"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// reusable test data
var (
	now       = time.Date(2024, time.April, 1, 1, 1, 1, 0, time.UTC)
	createdAt = time.Date(2024, time.April, 1, 1, 0, 0, 0, time.UTC)
	logger    = zerolog.Nop()

	errShouldContainAssertErrorMsg = "should return error containing assert.AnError"
)

func TestUnitFullSync(t *testing.T) {
	records := []models.RawRecord{
		modelstesting.FakeRawRecord(withCode("B00041")),
		modelstesting.FakeRawRecord(withCode("B00042")),
		modelstesting.FakeRawRecord(withCode("B00041")),
	}
	stored := modelstesting.FakeAggregate(func(p *models.ProductAggregate) {
		p.Code = "B00042"
		p.Data.Code = "B00042"
	})
	existing := map[string]models.ProductAggregate{"B00042": stored}

	wantProducts := aggregator.Aggregate(records, []models.ProductAggregate{stored})
	for ix := range wantProducts {
		wantProducts[ix].UpdatedAt = now
	}

	fetcher := mocks.NewFetcher(t)
	storage := mocks.NewStorage(t)

	mockStartRun(storage, models.SyncKindFull, nil)
	fetcher.On("FetchPage", mock.Anything, erp.PageRequest{Offset: 0, Limit: 2}).Return(records[:2], nil).Once()
	fetcher.On("FetchPage", mock.Anything, erp.PageRequest{Offset: 2, Limit: 2}).Return(records[2:], nil).Once()
	storage.On("GetProductsByCodes", mock.Anything, []string{"B00041", "B00042"}).Return(existing, nil).Once()
	storage.On("UpsertProducts", mock.Anything, wantProducts[:1]).Return(1, nil).Once()
	storage.On("UpsertProducts", mock.Anything, wantProducts[1:]).Return(1, nil).Once()
	mockFinishRun(storage, &models.SyncRun{
		ID:               1,
		Kind:             models.SyncKindFull,
		CreatedAt:        createdAt,
		FinishedAt:       &now,
		IsSuccess:        lo.ToPtr(true),
		FetchedRecords:   lo.ToPtr(int32(3)),
		UpsertedProducts: lo.ToPtr(int32(2)),
		ChangedCodes:     []string{"B00041", "B00042"},
	})

	syn := newSyncer(fetcher, storage, syncer.WithPageSize(2), syncer.WithUpsertBatch(1))

	run, err := syn.FullSync(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
	assert.Equal(t, int32(2), lo.FromPtr(run.UpsertedProducts), "should return finished run")
}

func TestUnitIncrementalSync(t *testing.T) {
	since := now.Add(-5 * time.Minute)

	fetcher := mocks.NewFetcher(t)
	storage := mocks.NewStorage(t)

	mockStartRun(storage, models.SyncKindIncremental, nil)
	fetcher.On("FetchPage", mock.Anything, erp.PageRequest{Limit: 100, UpdatedSince: &since}).
		Return([]models.RawRecord{}, nil).Once()
	mockFinishRun(storage, &models.SyncRun{
		ID:               1,
		Kind:             models.SyncKindIncremental,
		CreatedAt:        createdAt,
		FinishedAt:       &now,
		IsSuccess:        lo.ToPtr(true),
		FetchedRecords:   lo.ToPtr(int32(0)),
		UpsertedProducts: lo.ToPtr(int32(0)),
		ChangedCodes:     []string{},
	})

	syn := newSyncer(fetcher, storage, syncer.WithLookback(5*time.Minute))

	_, err := syn.IncrementalSync(context.TODO())

	require.NoError(t, err, "shouldn't return any error")
}

func TestUnitForceSync(t *testing.T) {
	t.Run("single page", func(t *testing.T) {
		records := make([]models.RawRecord, 0, syncer.ForceSyncLimit)
		for range syncer.ForceSyncLimit {
			records = append(records, modelstesting.FakeRawRecord(withCode("B00041")))
		}
		wantProducts := aggregator.Aggregate(records, nil)
		wantProducts[0].UpdatedAt = now

		fetcher := mocks.NewFetcher(t)
		storage := mocks.NewStorage(t)

		mockStartRun(storage, models.SyncKindForce, nil)
		fetcher.On("FetchPage", mock.Anything, erp.PageRequest{Limit: syncer.ForceSyncLimit, Code: "B00041"}).
			Return(records, nil).Once()
		storage.On("GetProductsByCodes", mock.Anything, []string{"B00041"}).
			Return(map[string]models.ProductAggregate{}, nil).Once()
		storage.On("UpsertProducts", mock.Anything, wantProducts).Return(1, nil).Once()
		mockFinishRun(storage, &models.SyncRun{
			ID:               1,
			Kind:             models.SyncKindForce,
			CreatedAt:        createdAt,
			FinishedAt:       &now,
			IsSuccess:        lo.ToPtr(true),
			FetchedRecords:   lo.ToPtr(int32(syncer.ForceSyncLimit)),
			UpsertedProducts: lo.ToPtr(int32(1)),
			ChangedCodes:     []string{"B00041"},
		})

		syn := newSyncer(fetcher, storage)

		_, err := syn.ForceSync(context.TODO(), "B00041")

		require.NoError(t, err, "shouldn't return any error")
	})

	t.Run("empty code error", func(t *testing.T) {
		syn := newSyncer(mocks.NewFetcher(t), mocks.NewStorage(t))

		_, err := syn.ForceSync(context.TODO(), "")

		require.ErrorIs(t, err, syncer.ErrEmptyCode, "should return empty code error")
	})
}

func TestUnitSyncErrors(t *testing.T) {
	record := modelstesting.FakeRawRecord(withCode("B00041"))

	tests := map[string]struct {
		mock        func(fetcher *mocks.Fetcher, storage *mocks.Storage)
		wantMessage string
		wantRun     bool
	}{
		"start run error": {
			mock: func(_ *mocks.Fetcher, storage *mocks.Storage) {
				storage.On("StartRun", mock.Anything, models.SyncKindFull).
					Return(nil, platform.ErrAlreadyRunning).Once()
			},
			wantMessage: "can't start sync",
		},
		"fetch error after retries": {
			mock: func(fetcher *mocks.Fetcher, storage *mocks.Storage) {
				mockStartRun(storage, models.SyncKindFull, nil)
				fetcher.On("FetchPage", mock.Anything, mock.Anything).Return(nil, assert.AnError).Times(3)
				mockFailedFinishRun(storage, "can't fetch products")
			},
			wantMessage: "can't fetch products",
			wantRun:     true,
		},
		"lookup error": {
			mock: func(fetcher *mocks.Fetcher, storage *mocks.Storage) {
				mockStartRun(storage, models.SyncKindFull, nil)
				fetcher.On("FetchPage", mock.Anything, mock.Anything).Return([]models.RawRecord{record}, nil).Once()
				storage.On("GetProductsByCodes", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()
				mockFailedFinishRun(storage, "can't merge products")
			},
			wantMessage: "can't merge products",
			wantRun:     true,
		},
		"upsert error": {
			mock: func(fetcher *mocks.Fetcher, storage *mocks.Storage) {
				mockStartRun(storage, models.SyncKindFull, nil)
				fetcher.On("FetchPage", mock.Anything, mock.Anything).Return([]models.RawRecord{record}, nil).Once()
				storage.On("GetProductsByCodes", mock.Anything, mock.Anything).
					Return(map[string]models.ProductAggregate{}, nil).Once()
				storage.On("UpsertProducts", mock.Anything, mock.Anything).Return(0, assert.AnError).Once()
				mockFailedFinishRun(storage, "can't upsert products")
			},
			wantMessage: "can't upsert products",
			wantRun:     true,
		},
		"finish run error": {
			mock: func(fetcher *mocks.Fetcher, storage *mocks.Storage) {
				mockStartRun(storage, models.SyncKindFull, nil)
				fetcher.On("FetchPage", mock.Anything, mock.Anything).Return([]models.RawRecord{}, nil).Once()
				storage.On("FinishRun", mock.Anything, mock.Anything).Return(assert.AnError).Once()
			},
			wantMessage: "can't finish sync",
			wantRun:     true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			fetcher := mocks.NewFetcher(t)
			storage := mocks.NewStorage(t)
			tt.mock(fetcher, storage)

			syn := newSyncer(fetcher, storage, syncer.WithRetry(2, time.Millisecond))

			run, err := syn.FullSync(context.TODO())

			require.ErrorContains(t, err, tt.wantMessage, "should return correct error")
			if tt.wantMessage == "can't start sync" {
				require.ErrorIs(t, err, platform.ErrAlreadyRunning, "should return already running error")
			} else {
				require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
			}
			assert.Equal(t, tt.wantRun, run != nil, "should return run only when it was started")
		})
	}
}

func TestUnitSyncFetchErrorOnLaterPage(t *testing.T) {
	records := []models.RawRecord{
		modelstesting.FakeRawRecord(withCode("B00041")),
		modelstesting.FakeRawRecord(withCode("B00042")),
	}

	for range 50 {
		fetcher := mocks.NewFetcher(t)
		storage := mocks.NewStorage(t)

		mockStartRun(storage, models.SyncKindFull, nil)
		fetcher.On("FetchPage", mock.Anything, erp.PageRequest{Offset: 0, Limit: 2}).Return(records, nil).Once()
		fetcher.On("FetchPage", mock.Anything, erp.PageRequest{Offset: 2, Limit: 2}).Return(nil, assert.AnError).Once()
		mockFailedFinishRun(storage, "can't fetch products")

		syn := newSyncer(fetcher, storage, syncer.WithPageSize(2), syncer.WithRetry(0, time.Millisecond))

		_, err := syn.FullSync(context.TODO())

		require.ErrorIs(t, err, assert.AnError, errShouldContainAssertErrorMsg)
		storage.AssertNotCalled(t, "GetProductsByCodes", mock.Anything, mock.Anything)
		storage.AssertNotCalled(t, "UpsertProducts", mock.Anything, mock.Anything)
	}
}

func TestUnitSyncTransientFetchError(t *testing.T) {
	fetcher := mocks.NewFetcher(t)
	storage := mocks.NewStorage(t)

	mockStartRun(storage, models.SyncKindFull, nil)
	fetcher.On("FetchPage", mock.Anything, mock.Anything).Return(nil, assert.AnError).Once()
	fetcher.On("FetchPage", mock.Anything, mock.Anything).Return([]models.RawRecord{}, nil).Once()
	storage.On("FinishRun", mock.Anything, mock.MatchedBy(func(run *models.SyncRun) bool {
		return lo.FromPtr(run.IsSuccess)
	})).Return(nil).Once()

	syn := newSyncer(fetcher, storage, syncer.WithRetry(2, time.Millisecond))

	_, err := syn.FullSync(context.TODO())

	require.NoError(t, err, "should recover from transient error")
}

func TestUnitPoll(t *testing.T) {
	fetcher := mocks.NewFetcher(t)
	storage := mocks.NewStorage(t)

	started := make(chan struct{}, 1)
	storage.On("StartRun", mock.Anything, models.SyncKindIncremental).
		Run(func(mock.Arguments) {
			select {
			case started <- struct{}{}:
			default:
			}
		}).
		Return(nil, platform.ErrAlreadyRunning)

	syn := newSyncer(fetcher, storage)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		syn.Poll(ctx, time.Millisecond)
	}()

	select {
	case <-started:
	case <-time.After(time.Second):
		t.Fatal("poll should start incremental sync")
	}

	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poll should return after context is cancelled")
	}
}

func newSyncer(fetcher *mocks.Fetcher, storage *mocks.Storage, ops ...syncer.Option) *syncer.Syncer {
	ops = append([]syncer.Option{syncer.WithClock(fakeClock{now: now})}, ops...)

	return syncer.NewSyncer(fetcher, storage, &logger, ops...)
}

func withCode(code string) func(r *models.RawRecord) {
	return func(r *models.RawRecord) {
		r.Code = code
	}
}

func mockStartRun(storage *mocks.Storage, kind models.SyncKind, err error) {
	storage.On("StartRun", mock.Anything, kind).Return(&models.SyncRun{
		ID:        1,
		Kind:      kind,
		CreatedAt: createdAt,
	}, err).Once()
}

func mockFinishRun(storage *mocks.Storage, run *models.SyncRun) {
	storage.On("FinishRun", mock.Anything, run).Return(nil).Once()
}

func mockFailedFinishRun(storage *mocks.Storage, message string) {
	storage.On("FinishRun", mock.Anything, mock.MatchedBy(func(run *models.SyncRun) bool {
		return run.IsSuccess != nil && !*run.IsSuccess &&
			run.StatusMessage != nil && strings.Contains(*run.StatusMessage, message) &&
			run.FinishedAt != nil && run.FinishedAt.Equal(now)
	})).Return(nil).Once()
}

type fakeClock struct {
	now time.Time
}

func (c fakeClock) Now() time.Time {
	return c.now
}
