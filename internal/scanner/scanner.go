package scanner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/audit"
	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/rs/zerolog"
)

//go:generate mockery --name Catalog --filename catalog.go
//go:generate mockery --name Matcher --filename matcher.go
//go:generate mockery --name Diagnostics --filename diagnostics.go

const (
	defaultPageSize   = 50
	defaultMaxRetries = 3
	defaultBackoff    = time.Second
	defaultYieldEvery = 5
	defaultYieldDelay = 200 * time.Millisecond
)

// State is catalog scan state.
type State string

const (
	StateIdle      State = "Idle"
	StateRunning   State = "Running"
	StateCompleted State = "Completed"
	StateCancelled State = "Cancelled"
	StateFailed    State = "Failed"
)

// Catalog lists canonical products ordered from most recently updated.
type Catalog interface {
	ListProducts(ctx context.Context, offset, limit int) (models.ProductPage, error)
}

// Matcher resolves ERP codes to storefront products.
type Matcher interface {
	Match(ctx context.Context, code string) (models.MatchResult, error)
}

// Diagnostics records mismatch diagnostics for operator review.
type Diagnostics interface {
	RecordMismatch(ctx context.Context, diagnostic models.MismatchDiagnostic) error
}

// Clock provides times.
type Clock interface {
	// Now returns current UTC time.
	Now() time.Time
}

// Metrics observes scan events.
type Metrics interface {
	ObserveAudit(status models.AuditStatus)
	SetScanProgress(scanned, total int)
}

// Progress is snapshot of scan progress.
type Progress struct {
	State         State
	Scanned       int
	Total         int
	MismatchCount int
	// Err is last error of failed scan.
	Err error
}

// FinishFunc is called with final progress and collected rows when started scan finishes.
type FinishFunc func(Progress, []models.AuditRow)

// Option is custom configuration of Scanner.
type Option func(s *Scanner)

// Scanner audits whole canonical catalog page by page. Only one scan runs at a time.
type Scanner struct {
	catalog     Catalog
	matcher     Matcher
	diagnostics Diagnostics
	logger      *zerolog.Logger
	clock       Clock
	metrics     Metrics
	onProgress  func(Progress)

	pageSize   int
	maxRetries int
	backoff    time.Duration
	yieldEvery int
	yieldDelay time.Duration

	mu        sync.Mutex
	progress  Progress
	rows      []models.AuditRow
	cancelled bool
	wg        sync.WaitGroup
}

// NewScanner returns new Scanner.
func NewScanner(catalog Catalog, matcher Matcher, diagnostics Diagnostics, logger *zerolog.Logger, ops ...Option) *Scanner {
	s := &Scanner{
		catalog:     catalog,
		matcher:     matcher,
		diagnostics: diagnostics,
		logger:      logger,
		clock:       systemClock{},
		metrics:     noopMetrics{},
		pageSize:    defaultPageSize,
		maxRetries:  defaultMaxRetries,
		backoff:     defaultBackoff,
		yieldEvery:  defaultYieldEvery,
		yieldDelay:  defaultYieldDelay,
		progress:    Progress{State: StateIdle},
	}

	for _, op := range ops {
		op(s)
	}

	return s
}

// Run scans catalog and blocks until scan finishes.
// Returns ErrScanRunning when other scan is running and error of failed scan.
func (s *Scanner) Run(ctx context.Context) error {
	if err := s.begin(); err != nil {
		return err
	}

	return s.scan(ctx)
}

// Start starts scan in background. onFinish, when not nil, is called after scan finishes.
// Returns ErrScanRunning when other scan is running.
func (s *Scanner) Start(ctx context.Context, onFinish FinishFunc) error {
	if err := s.begin(); err != nil {
		return err
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()

		_ = s.scan(ctx)
		if onFinish != nil {
			onFinish(s.Snapshot(), s.Rows())
		}
	}()

	return nil
}

// Wait blocks until scan started with Start finishes.
func (s *Scanner) Wait() {
	s.wg.Wait()
}

// Cancel requests cancellation of running scan. Returns false when no scan is running.
func (s *Scanner) Cancel() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress.State != StateRunning {
		return false
	}
	s.cancelled = true

	return true
}

// Snapshot returns current scan progress.
func (s *Scanner) Snapshot() Progress {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.progress
}

// Rows returns copy of collected non-matching audit rows.
func (s *Scanner) Rows() []models.AuditRow {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]models.AuditRow(nil), s.rows...)
}

// begin moves scanner into running state with fresh counters.
func (s *Scanner) begin() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.progress.State == StateRunning {
		return ErrScanRunning
	}

	s.progress = Progress{State: StateRunning}
	s.rows = nil
	s.cancelled = false

	return nil
}

func (s *Scanner) scan(ctx context.Context) error {
	s.logger.Info().Int("pageSize", s.pageSize).Msg("catalog scan started")

	offset := 0
	for {
		if s.isCancelled(ctx) {
			return s.finish(StateCancelled, nil)
		}

		page, err := s.fetchPage(ctx, offset)
		if err != nil {
			if s.isCancelled(ctx) {
				return s.finish(StateCancelled, nil)
			}
			return s.finish(StateFailed, err)
		}

		if offset == 0 {
			s.setTotal(page.Total)
		}

		for _, product := range page.Products {
			if err := s.yield(ctx); err != nil {
				return s.finish(StateCancelled, nil)
			}

			// cancellation may arrive during yield pause
			if s.isCancelled(ctx) {
				return s.finish(StateCancelled, nil)
			}

			s.auditProduct(ctx, product)
		}

		offset += len(page.Products)
		if len(page.Products) < s.pageSize || (page.Total > 0 && offset >= page.Total) {
			return s.finish(StateCompleted, nil)
		}
	}
}

// fetchPage fetches catalog page retrying failures with exponential backoff.
func (s *Scanner) fetchPage(ctx context.Context, offset int) (models.ProductPage, error) {
	delay := s.backoff
	for attempt := 0; ; attempt++ {
		page, err := s.catalog.ListProducts(ctx, offset, s.pageSize)
		if err == nil {
			return page, nil
		}

		if attempt >= s.maxRetries {
			return models.ProductPage{}, fmt.Errorf("can't fetch catalog page at offset %d: %w", offset, err)
		}

		s.logger.Warn().Err(err).Int("offset", offset).Int("attempt", attempt+1).Msg("catalog page fetch failed, retrying")

		if err := sleep(ctx, delay); err != nil {
			return models.ProductPage{}, err
		}
		delay *= 2
	}
}

// yield pauses scan after every yieldEvery audited products.
func (s *Scanner) yield(ctx context.Context) error {
	scanned := s.Snapshot().Scanned
	if s.yieldEvery <= 0 || scanned == 0 || scanned%s.yieldEvery != 0 {
		return nil
	}

	return sleep(ctx, s.yieldDelay)
}

func (s *Scanner) auditProduct(ctx context.Context, product models.ProductAggregate) {
	match, err := s.matcher.Match(ctx, product.Code)
	row := audit.CalculateAuditScore(product, match)

	if err != nil {
		row.Status = models.AuditStatusNotMapped
		row.LookupFailed = true
		s.logger.Warn().Err(err).Str("code", product.Code).Msg("storefront lookup failed")
	}

	if row.Status == models.AuditStatusMismatch {
		s.recordMismatch(ctx, row)
	}

	s.metrics.ObserveAudit(row.Status)
	s.record(row)
}

func (s *Scanner) recordMismatch(ctx context.Context, row models.AuditRow) {
	err := s.diagnostics.RecordMismatch(ctx, models.MismatchDiagnostic{
		Code:             row.Code,
		StorefrontHandle: row.ProductHandle,
		Query:            row.Code,
		Reason:           fmt.Sprintf("stock mismatch: erp %d, storefront %d", row.HamurStock, row.StorefrontStock),
		CreatedAt:        s.clock.Now(),
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("code", row.Code).Msg("can't record mismatch diagnostic")
	}
}

// record updates counters with audited row and emits progress.
func (s *Scanner) record(row models.AuditRow) {
	s.mu.Lock()
	s.progress.Scanned++
	if row.Status != models.AuditStatusMatch {
		s.rows = append(s.rows, row)
	}
	if row.Status == models.AuditStatusMismatch {
		s.progress.MismatchCount++
	}
	progress := s.progress
	s.mu.Unlock()

	s.emit(progress)
}

func (s *Scanner) setTotal(total int) {
	s.mu.Lock()
	s.progress.Total = total
	progress := s.progress
	s.mu.Unlock()

	s.emit(progress)
}

func (s *Scanner) emit(progress Progress) {
	s.metrics.SetScanProgress(progress.Scanned, progress.Total)
	if s.onProgress != nil {
		s.onProgress(progress)
	}
}

func (s *Scanner) isCancelled(ctx context.Context) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.cancelled || ctx.Err() != nil
}

// finish moves scanner into final state and returns error of failed scan.
func (s *Scanner) finish(state State, err error) error {
	s.mu.Lock()
	s.progress.State = state
	s.progress.Err = err
	progress := s.progress
	s.mu.Unlock()

	event := s.logger.Info()
	if err != nil {
		event = s.logger.Error().Err(err)
	}
	event.
		Str("state", string(state)).
		Int("scanned", progress.Scanned).
		Int("total", progress.Total).
		Int("mismatches", progress.MismatchCount).
		Msg("catalog scan finished")

	return err
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// WithPageSize sets number of products fetched per catalog page.
func WithPageSize(size int) Option {
	return func(s *Scanner) {
		if size > 0 {
			s.pageSize = size
		}
	}
}

// WithRetry sets number of catalog page fetch retries and initial backoff doubled after each retry.
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(s *Scanner) {
		s.maxRetries = maxRetries
		s.backoff = backoff
	}
}

// WithYield sets pause inserted after every n audited products.
func WithYield(every int, delay time.Duration) Option {
	return func(s *Scanner) {
		s.yieldEvery = every
		s.yieldDelay = delay
	}
}

// WithProgress sets function called with progress after each audited product.
func WithProgress(onProgress func(Progress)) Option {
	return func(s *Scanner) {
		s.onProgress = onProgress
	}
}

// WithClock sets Scanner's custom Clock.
func WithClock(c Clock) Option {
	return func(s *Scanner) {
		s.clock = c
	}
}

// WithMetrics sets Scanner's metrics.
func WithMetrics(metrics Metrics) Option {
	return func(s *Scanner) {
		s.metrics = metrics
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveAudit(models.AuditStatus) {}
func (noopMetrics) SetScanProgress(int, int)        {}
