package matcher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/MichalMitros/stock-reconciler/internal/storefront"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

//go:generate mockery --name Searcher --filename searcher.go
//go:generate mockery --name Overrides --filename overrides.go
//go:generate mockery --name Diagnostics --filename diagnostics.go

const (
	defaultCacheTTL        = 10 * time.Minute
	defaultThrottleRetry   = 3
	defaultThrottleDelay   = 2 * time.Second
	notFoundReason         = "no storefront product found"
	overrideNotFoundReason = "overridden handle not found"
)

// Searcher searches storefront products by text query.
type Searcher interface {
	// SearchProducts returns products found by query. Returns storefront.ErrThrottled when rate limited.
	SearchProducts(ctx context.Context, query string) ([]models.StorefrontProduct, error)
}

// Overrides stores manual ERP code to storefront handle mappings.
type Overrides interface {
	// GetOverride returns override for code or nil when there is none.
	GetOverride(ctx context.Context, code string) (*models.MatchOverride, error)
	SaveOverride(ctx context.Context, code, handle string) error
	DeleteOverride(ctx context.Context, code string) error
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

// Metrics observes matcher events.
type Metrics interface {
	ObserveMatch(tier models.MatchTier)
	ObserveCache(hit bool)
	ObserveThrottleRetry()
}

// Option is custom configuration of Matcher.
type Option func(m *Matcher)

// Matcher resolves ERP codes to storefront products.
type Matcher struct {
	searcher      Searcher
	overrides     Overrides
	diagnostics   Diagnostics
	logger        *zerolog.Logger
	clock         Clock
	metrics       Metrics
	cacheTTL      time.Duration
	cache         *Cache
	throttleRetry int
	throttleDelay time.Duration
	publicURL     string
}

// NewMatcher returns new Matcher.
func NewMatcher(
	searcher Searcher,
	overrides Overrides,
	diagnostics Diagnostics,
	logger *zerolog.Logger,
	ops ...Option,
) *Matcher {
	m := &Matcher{
		searcher:      searcher,
		overrides:     overrides,
		diagnostics:   diagnostics,
		logger:        logger,
		clock:         systemClock{},
		metrics:       noopMetrics{},
		cacheTTL:      defaultCacheTTL,
		throttleRetry: defaultThrottleRetry,
		throttleDelay: defaultThrottleDelay,
	}

	for _, op := range ops {
		op(m)
	}

	m.cache = NewCache(m.cacheTTL, m.clock)

	return m
}

// Match resolves ERP code to storefront product. Not found product is a result, not an error.
// When storefront could not be queried, NotFound result is returned with error wrapping ErrLookupFailed.
func (m *Matcher) Match(ctx context.Context, code string) (models.MatchResult, error) {
	if result, ok := m.cache.Get(code); ok {
		m.metrics.ObserveCache(true)
		m.logger.Debug().Str("code", code).Str("tier", string(result.MatchTier)).Msg("match cache hit")
		return result, nil
	}
	m.metrics.ObserveCache(false)

	result, err := m.match(ctx, code)
	if err != nil {
		return result, err
	}

	m.metrics.ObserveMatch(result.MatchTier)
	m.cache.Set(code, result)
	m.logger.Debug().Str("code", code).Str("tier", string(result.MatchTier)).Msg("code matched")

	return result, nil
}

func (m *Matcher) match(ctx context.Context, code string) (models.MatchResult, error) {
	if strings.TrimSpace(code) == "" {
		return notFound(code, code), nil
	}

	override, err := m.overrides.GetOverride(ctx, code)
	if err != nil {
		return notFound(code, code), fmt.Errorf("%w: can't get override: %w", ErrLookupFailed, err)
	}

	if override != nil {
		return m.matchOverride(ctx, code, override.StorefrontHandle)
	}

	var (
		query    string
		products []models.StorefrontProduct
	)
	for _, query = range queryVariants(code) {
		products, err = m.search(ctx, query)
		if err != nil {
			return notFound(code, query), fmt.Errorf("%w: %w", ErrLookupFailed, err)
		}

		if len(products) > 0 {
			break
		}
	}

	if len(products) == 0 {
		m.recordNotFound(ctx, code, query, notFoundReason)
		return notFound(code, query), nil
	}

	product, variant, tier := selectVariant(products, query)

	return m.buildResult(code, query, product, variant, tier), nil
}

// matchOverride resolves code with manually mapped storefront handle.
func (m *Matcher) matchOverride(ctx context.Context, code, handle string) (models.MatchResult, error) {
	query := "handle:" + handle

	products, err := m.search(ctx, query)
	if err != nil {
		return notFound(code, query), fmt.Errorf("%w: %w", ErrLookupFailed, err)
	}

	product, ok := lo.Find(products, func(p models.StorefrontProduct) bool { return p.Handle == handle })
	if !ok {
		m.recordNotFound(ctx, code, query, overrideNotFoundReason)
		return notFound(code, query), nil
	}

	_, variant, found := findVariant([]models.StorefrontProduct{product}, func(sku string) bool {
		return sku == code
	})
	if !found {
		variant = nil
	}

	return m.buildResult(code, query, product, variant, models.MatchTierOverride), nil
}

// search searches storefront retrying throttled queries with fixed delay.
func (m *Matcher) search(ctx context.Context, query string) ([]models.StorefrontProduct, error) {
	for attempt := 0; ; attempt++ {
		products, err := m.searcher.SearchProducts(ctx, query)
		if err == nil {
			return products, nil
		}

		if !errors.Is(err, storefront.ErrThrottled) || attempt >= m.throttleRetry {
			return nil, fmt.Errorf("can't search storefront products: %w", err)
		}

		m.metrics.ObserveThrottleRetry()
		m.logger.Warn().Str("query", query).Int("attempt", attempt+1).Msg("storefront throttled, retrying")

		timer := time.NewTimer(m.throttleDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
}

// SetOverride records manual code to handle mapping and invalidates cached result of code.
func (m *Matcher) SetOverride(ctx context.Context, code, handle string) error {
	if err := m.overrides.SaveOverride(ctx, code, handle); err != nil {
		return fmt.Errorf("can't save override: %w", err)
	}
	m.cache.Invalidate(code)

	return nil
}

// DeleteOverride removes manual mapping of code and invalidates cached result of code.
func (m *Matcher) DeleteOverride(ctx context.Context, code string) error {
	if err := m.overrides.DeleteOverride(ctx, code); err != nil {
		return fmt.Errorf("can't delete override: %w", err)
	}
	m.cache.Invalidate(code)

	return nil
}

// Invalidate removes cached result of code.
func (m *Matcher) Invalidate(code string) {
	m.cache.Invalidate(code)
}

func (m *Matcher) recordNotFound(ctx context.Context, code, query, reason string) {
	err := m.diagnostics.RecordMismatch(ctx, models.MismatchDiagnostic{
		Code:             code,
		StorefrontHandle: "Not Found",
		Query:            query,
		Reason:           reason,
		CreatedAt:        m.clock.Now(),
	})
	if err != nil {
		m.logger.Warn().Err(err).Str("code", code).Msg("can't record not found diagnostic")
	}
}

// buildResult builds found result. Price is taken from selected variant or first variant of product.
func (m *Matcher) buildResult(
	code, query string,
	product models.StorefrontProduct,
	selected *models.StorefrontVariant,
	tier models.MatchTier,
) models.MatchResult {
	result := models.MatchResult{
		Code:            code,
		Query:           query,
		Found:           true,
		ProductHandle:   product.Handle,
		ProductURL:      m.productURL(product),
		Title:           product.Title,
		Images:          lo.Uniq(product.Images),
		Variants:        product.Variants,
		SelectedVariant: selected,
		MatchTier:       tier,
	}

	priced := selected
	if priced == nil && len(product.Variants) > 0 {
		priced = &product.Variants[0]
	}
	if priced != nil {
		result.Price = priced.Price
		result.CompareAtPrice = priced.CompareAtPrice
	}

	return result
}

func (m *Matcher) productURL(product models.StorefrontProduct) string {
	if product.OnlineStoreURL != "" {
		return product.OnlineStoreURL
	}

	return m.publicURL + "/products/" + product.Handle
}

func notFound(code, query string) models.MatchResult {
	return models.MatchResult{
		Code:      code,
		Query:     query,
		MatchTier: models.MatchTierNotFound,
	}
}

// WithCacheTTL sets time after which cached results expire. Zero disables caching.
func WithCacheTTL(ttl time.Duration) Option {
	return func(m *Matcher) {
		m.cacheTTL = ttl
	}
}

// WithThrottleRetry sets number of retries of throttled query and delay between them.
func WithThrottleRetry(retries int, delay time.Duration) Option {
	return func(m *Matcher) {
		m.throttleRetry = retries
		m.throttleDelay = delay
	}
}

// WithPublicURL sets storefront URL used for products without online store URL.
func WithPublicURL(url string) Option {
	return func(m *Matcher) {
		m.publicURL = strings.TrimSuffix(url, "/")
	}
}

// WithClock sets Matcher's custom Clock.
func WithClock(c Clock) Option {
	return func(m *Matcher) {
		m.clock = c
	}
}

// WithMetrics sets Matcher's metrics.
func WithMetrics(metrics Metrics) Option {
	return func(m *Matcher) {
		m.metrics = metrics
	}
}

type noopMetrics struct{}

func (noopMetrics) ObserveMatch(models.MatchTier) {}
func (noopMetrics) ObserveCache(bool)             {}
func (noopMetrics) ObserveThrottleRetry()         {}
