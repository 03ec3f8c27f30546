package syncer

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/aggregator"
	"github.com/MichalMitros/stock-reconciler/internal/erp"
	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

//go:generate mockery --name Fetcher --filename fetcher.go
//go:generate mockery --name Storage --filename storage.go

const (
	// ForceSyncLimit is page size of single code synchronization.
	ForceSyncLimit = 50
	// MaxChangedCodes is max number of changed codes recorded in sync run.
	MaxChangedCodes = 50

	defaultPageSize    = 100
	defaultUpsertBatch = 500
	defaultMaxRetries  = 3
	defaultBackoff     = time.Second
)

// Fetcher fetches ERP product pages.
type Fetcher interface {
	FetchPage(ctx context.Context, page erp.PageRequest) ([]models.RawRecord, error)
}

// Storage is canonical products and sync runs storage.
type Storage interface {
	// StartRun creates new run if there is no run of provided kind running.
	StartRun(ctx context.Context, kind models.SyncKind) (*models.SyncRun, error)
	// FinishRun finishes provided run and updates its statistics.
	FinishRun(ctx context.Context, run *models.SyncRun) error
	// GetProductsByCodes returns stored products keyed by code.
	GetProductsByCodes(ctx context.Context, codes []string) (map[string]models.ProductAggregate, error)
	// UpsertProducts inserts or replaces products. Returns number of upserted products.
	UpsertProducts(ctx context.Context, products []models.ProductAggregate) (int, error)
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Metrics observes finished synchronizations.
type Metrics interface {
	ObserveSync(kind models.SyncKind, upserted int, success bool)
}

// Option is custom configuration of Syncer.
type Option func(s *Syncer)

// Syncer fetches ERP pages, merges them into product aggregates and stores them.
type Syncer struct {
	fetcher     Fetcher
	storage     Storage
	logger      *zerolog.Logger
	clock       Clock
	metrics     Metrics
	pageSize    int
	upsertBatch int
	maxRetries  int
	backoff     time.Duration
	lookback    time.Duration
}

// NewSyncer returns new Syncer.
func NewSyncer(fetcher Fetcher, storage Storage, logger *zerolog.Logger, ops ...Option) *Syncer {
	s := &Syncer{
		fetcher:     fetcher,
		storage:     storage,
		logger:      logger,
		clock:       systemClock{},
		metrics:     noopMetrics{},
		pageSize:    defaultPageSize,
		upsertBatch: defaultUpsertBatch,
		maxRetries:  defaultMaxRetries,
		backoff:     defaultBackoff,
		lookback:    10 * time.Minute,
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// FullSync synchronizes whole ERP catalog.
func (s *Syncer) FullSync(ctx context.Context) (*models.SyncRun, error) {
	return s.sync(ctx, models.SyncKindFull, erp.PageRequest{Limit: s.pageSize}, true)
}

// IncrementalSync synchronizes products updated in ERP within lookback window.
func (s *Syncer) IncrementalSync(ctx context.Context) (*models.SyncRun, error) {
	since := s.clock.Now().Add(-s.lookback)

	return s.sync(ctx, models.SyncKindIncremental, erp.PageRequest{Limit: s.pageSize, UpdatedSince: &since}, true)
}

// ForceSync synchronizes single product code.
func (s *Syncer) ForceSync(ctx context.Context, code string) (*models.SyncRun, error) {
	if code == "" {
		return nil, fmt.Errorf("can't force sync: %w", ErrEmptyCode)
	}

	return s.sync(ctx, models.SyncKindForce, erp.PageRequest{Limit: ForceSyncLimit, Code: code}, false)
}

// Poll runs incremental synchronization every interval until context is done.
func (s *Syncer) Poll(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.IncrementalSync(ctx); err != nil {
				s.logger.Error().Err(err).Msg("incremental sync failed")
			}
		}
	}
}

func (s *Syncer) sync(ctx context.Context, kind models.SyncKind, request erp.PageRequest, paginate bool) (*models.SyncRun, error) {
	// insert new run in storage.
	run, err := s.storage.StartRun(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("can't start sync: %w", err)
	}

	s.logger.Info().Int("run", run.ID).Str("kind", string(kind)).Msg("sync started")

	fetched, upserted, changed, err := s.syncProducts(ctx, request, paginate)

	run.FetchedRecords = lo.ToPtr(fetched)
	run.UpsertedProducts = lo.ToPtr(upserted)
	run.ChangedCodes = changed

	return run, s.finishSync(ctx, run, err)
}

func (s *Syncer) syncProducts(ctx context.Context, request erp.PageRequest, paginate bool) (int32, int32, []string, error) {
	pages := make(chan []models.RawRecord)
	batches := make(chan []models.ProductAggregate)
	fetchedRecords := int32(0)
	upsertedProducts := int32(0)
	var changedCodes []string

	errGroup, egCtx := errgroup.WithContext(ctx)

	// fetch ERP pages.
	// pages are closed only after all pages were fetched, failed fetch cancels merge instead.
	errGroup.Go(func() error {
		if err := s.fetchPages(egCtx, request, paginate, pages); err != nil {
			return fmt.Errorf("can't fetch products: %w", err)
		}

		close(pages)
		return nil
	})

	// merge fetched records with stored products.
	errGroup.Go(func() error {
		defer close(batches)

		fetched, err := s.mergeProducts(egCtx, pages, batches)
		_ = atomic.AddInt32(&fetchedRecords, int32(fetched))

		if err != nil {
			return fmt.Errorf("can't merge products: %w", err)
		}

		return nil
	})

	// upsert merged products.
	errGroup.Go(func() error {
		upserted, changed, err := s.upsertProducts(egCtx, batches)
		_ = atomic.AddInt32(&upsertedProducts, int32(upserted))
		changedCodes = changed

		if err != nil {
			return fmt.Errorf("can't upsert products: %w", err)
		}

		return nil
	})

	err := errGroup.Wait()

	return fetchedRecords, upsertedProducts, changedCodes, err
}

func (s *Syncer) fetchPages(ctx context.Context, request erp.PageRequest, paginate bool, output chan<- []models.RawRecord) error {
	for {
		records, err := s.fetchPage(ctx, request)
		if err != nil {
			return err
		}

		if len(records) > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case output <- records:
			}
		}

		if !paginate || len(records) < request.Limit {
			return nil
		}

		request.Offset += request.Limit
	}
}

func (s *Syncer) fetchPage(ctx context.Context, request erp.PageRequest) ([]models.RawRecord, error) {
	delay := s.backoff
	for attempt := 0; ; attempt++ {
		records, err := s.fetcher.FetchPage(ctx, request)
		if err == nil {
			return records, nil
		}

		if attempt >= s.maxRetries {
			return nil, fmt.Errorf("can't fetch page at offset %d: %w", request.Offset, err)
		}

		s.logger.Warn().Err(err).Int("offset", request.Offset).Int("attempt", attempt+1).Msg("ERP page fetch failed, retrying")

		if err := sleep(ctx, delay); err != nil {
			return nil, err
		}
		delay *= 2
	}
}

// mergeProducts collects all pages before merging, so records of single code split across pages
// end up in single aggregate.
func (s *Syncer) mergeProducts(
	ctx context.Context,
	input <-chan []models.RawRecord,
	output chan<- []models.ProductAggregate,
) (int, error) {
	records := make([]models.RawRecord, 0)
	for collecting := true; collecting; {
		select {
		case <-ctx.Done():
			return len(records), ctx.Err()
		case page, ok := <-input:
			if !ok {
				collecting = false
				break
			}
			records = append(records, page...)
		}
	}

	if len(records) == 0 {
		return 0, nil
	}

	codes := lo.Uniq(lo.FilterMap(records, func(record models.RawRecord, _ int) (string, bool) {
		code := aggregator.RecordCode(record)
		return code, code != ""
	}))

	existing, err := s.storage.GetProductsByCodes(ctx, codes)
	if err != nil {
		return len(records), fmt.Errorf("can't get stored products: %w", err)
	}

	now := s.clock.Now()
	products := aggregator.Aggregate(records, lo.Values(existing))
	for ix := range products {
		products[ix].UpdatedAt = now
	}

	for _, batch := range lo.Chunk(products, s.upsertBatch) {
		select {
		case <-ctx.Done():
			return len(records), ctx.Err()
		case output <- batch:
		}
	}

	return len(records), nil
}

func (s *Syncer) upsertProducts(ctx context.Context, input <-chan []models.ProductAggregate) (int, []string, error) {
	upserted := 0
	changed := make([]string, 0, MaxChangedCodes)

	for batch := range input {
		count, err := s.storage.UpsertProducts(ctx, batch)
		if err != nil {
			return upserted, changed, err
		}
		upserted += count

		for ix := range batch {
			if len(changed) == MaxChangedCodes {
				break
			}
			changed = append(changed, batch[ix].Code)
		}
	}

	return upserted, changed, nil
}

func (s *Syncer) finishSync(ctx context.Context, run *models.SyncRun, status error) error {
	if status != nil {
		run.StatusMessage = lo.ToPtr(status.Error())
	}
	run.IsSuccess = lo.ToPtr(status == nil)
	run.FinishedAt = lo.ToPtr(s.clock.Now())

	s.metrics.ObserveSync(run.Kind, int(lo.FromPtr(run.UpsertedProducts)), status == nil)

	logEvent := s.logger.Info()
	if status != nil {
		logEvent = s.logger.Error().Err(status)
	}
	logEvent.
		Int("run", run.ID).
		Str("kind", string(run.Kind)).
		Int32("fetched", lo.FromPtr(run.FetchedRecords)).
		Int32("upserted", lo.FromPtr(run.UpsertedProducts)).
		Msg("sync finished")

	// finish run even if sync context is already cancelled.
	err := s.storage.FinishRun(context.WithoutCancel(ctx), run)
	if err != nil && status == nil {
		return fmt.Errorf("can't finish sync: %w", err)
	}

	if err != nil && status != nil {
		return fmt.Errorf("can't finish failed sync: %w (fail reason: %w)", err, status)
	}

	return status
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WithClock sets Syncer's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Syncer) {
		s.clock = c
	}
}

// WithMetrics sets Syncer's metrics.
func WithMetrics(m Metrics) Option {
	return func(s *Syncer) {
		s.metrics = m
	}
}

// WithPageSize sets ERP page size.
func WithPageSize(size int) Option {
	return func(s *Syncer) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithUpsertBatch sets max number of products upserted at once.
func WithUpsertBatch(size int) Option {
	return func(s *Syncer) {
		if size > 0 {
			s.upsertBatch = size
		}
	}
}

// WithRetry sets number of page fetch retries and initial backoff doubled after each retry.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(s *Syncer) {
		s.maxRetries = maxRetries
		s.backoff = backoff
	}
}

// WithLookback sets incremental synchronization window.
func WithLookback(lookback time.Duration) Option {
	return func(s *Syncer) {
		s.lookback = lookback
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveSync(models.SyncKind, int, bool) {}
