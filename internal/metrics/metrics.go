package metrics

import (
	"net/http"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry keeps reconciler metrics.
type Registry struct {
	reg             *prometheus.Registry
	SyncRuns        *prometheus.CounterVec
	SyncedProducts  *prometheus.CounterVec
	MatchTiers      *prometheus.CounterVec
	CacheLookups    *prometheus.CounterVec
	ThrottleRetries prometheus.Counter
	AuditedProducts *prometheus.CounterVec
	ScanScanned     prometheus.Gauge
	ScanTotal       prometheus.Gauge
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	syncRuns := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "reconciler_sync_runs_total"}, []string{"kind", "success"})
	syncedProducts := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "reconciler_synced_products_total"}, []string{"kind"})
	matchTiers := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "reconciler_match_tier_total"}, []string{"tier"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "reconciler_match_cache_lookups_total"}, []string{"result"})
	throttleRetries := prometheus.NewCounter(prometheus.CounterOpts{Name: "reconciler_storefront_throttle_retries_total"})
	auditedProducts := prometheus.NewCounterVec(prometheus.CounterOpts{Name: "reconciler_audited_products_total"}, []string{"status"})
	scanScanned := prometheus.NewGauge(prometheus.GaugeOpts{Name: "reconciler_scan_scanned_products"})
	scanTotal := prometheus.NewGauge(prometheus.GaugeOpts{Name: "reconciler_scan_total_products"})

	r.MustRegister(syncRuns, syncedProducts, matchTiers, cacheLookups, throttleRetries, auditedProducts, scanScanned, scanTotal)
	return &Registry{
		reg:             r,
		SyncRuns:        syncRuns,
		SyncedProducts:  syncedProducts,
		MatchTiers:      matchTiers,
		CacheLookups:    cacheLookups,
		ThrottleRetries: throttleRetries,
		AuditedProducts: auditedProducts,
		ScanScanned:     scanScanned,
		ScanTotal:       scanTotal,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// ObserveSync counts finished synchronization run and its upserted products.
func (r *Registry) ObserveSync(kind models.SyncKind, upserted int, success bool) {
	r.SyncRuns.WithLabelValues(string(kind), boolLabel(success)).Inc()
	r.SyncedProducts.WithLabelValues(string(kind)).Add(float64(upserted))
}

func (r *Registry) ObserveMatch(tier models.MatchTier) {
	r.MatchTiers.WithLabelValues(string(tier)).Inc()
}

func (r *Registry) ObserveCache(hit bool) {
	r.CacheLookups.WithLabelValues(map[bool]string{true: "hit", false: "miss"}[hit]).Inc()
}

func (r *Registry) ObserveThrottleRetry() {
	r.ThrottleRetries.Inc()
}

func (r *Registry) ObserveAudit(status models.AuditStatus) {
	r.AuditedProducts.WithLabelValues(string(status)).Inc()
}

func (r *Registry) SetScanProgress(scanned, total int) {
	r.ScanScanned.Set(float64(scanned))
	r.ScanTotal.Set(float64(total))
}

func boolLabel(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
