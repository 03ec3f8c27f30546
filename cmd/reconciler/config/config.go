package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL string        `env:"DATABASE_URL,required"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" envDefault:"10s"`
	MetricsAddr string        `env:"METRICS_ADDR" envDefault:":9090"`
	ReportDir   string        `env:"REPORT_DIR" envDefault:"reports"`
	LogLevel    string        `env:"LOG_LEVEL" envDefault:"info"`

	ERP        ERP
	Storefront Storefront
	RabbitMQ   RabbitMQ
	Scanner    Scanner
	Sync       Sync
	Match      Match
}

// ERP holds ERP API configuration.
type ERP struct {
	BaseURL   string  `env:"ERP_BASE_URL,required"`
	Origin    string  `env:"ERP_ORIGIN"`
	Username  string  `env:"ERP_USERNAME"`
	Password  string  `env:"ERP_PASSWORD"`
	PageSize  int     `env:"ERP_PAGE_SIZE" envDefault:"100"`
	RateLimit float64 `env:"ERP_RATE_LIMIT" envDefault:"5"`
}

// Storefront holds storefront Admin API configuration.
type Storefront struct {
	Domain     string `env:"STOREFRONT_DOMAIN,required"`
	Token      string `env:"STOREFRONT_TOKEN"`
	APIVersion string `env:"STOREFRONT_API_VERSION" envDefault:"2024-01"`
	PublicURL  string `env:"STOREFRONT_PUBLIC_URL"`
}

// RabbitMQ holds RabbitMQ configuration.
type RabbitMQ struct {
	URL        string `env:"RABBITMQ_URL"`
	Exchange   string `env:"RABBITMQ_EXCHANGE" envDefault:"reconciler-ex"`
	Queue      string `env:"RABBITMQ_QUEUE" envDefault:"stock-reconciler.commands"`
	RoutingKey string `env:"RABBITMQ_ROUTING_KEY" envDefault:"stock-reconciler.commands"`
}

// Scanner holds catalog scan configuration.
type Scanner struct {
	PageSize   int           `env:"SCAN_PAGE_SIZE" envDefault:"50"`
	MaxRetries int           `env:"SCAN_MAX_RETRIES" envDefault:"3"`
	Backoff    time.Duration `env:"SCAN_BACKOFF" envDefault:"1s"`
	YieldEvery int           `env:"SCAN_YIELD_EVERY" envDefault:"5"`
	YieldDelay time.Duration `env:"SCAN_YIELD_DELAY" envDefault:"200ms"`
}

// Sync holds ERP synchronization configuration.
type Sync struct {
	UpsertBatch     int           `env:"SYNC_UPSERT_BATCH" envDefault:"500"`
	LookupChunk     int           `env:"SYNC_LOOKUP_CHUNK" envDefault:"50"`
	PollInterval    time.Duration `env:"SYNC_POLL_INTERVAL" envDefault:"10m"`
	Lookback        time.Duration `env:"SYNC_LOOKBACK" envDefault:"10m"`
	StaleRunTimeout time.Duration `env:"SYNC_STALE_RUN_TIMEOUT" envDefault:"1h"`
}

// Match holds storefront matching configuration.
type Match struct {
	CacheTTL        time.Duration `env:"MATCH_CACHE_TTL" envDefault:"10m"`
	ThrottleRetries int           `env:"MATCH_THROTTLE_RETRIES" envDefault:"3"`
	ThrottleDelay   time.Duration `env:"MATCH_THROTTLE_DELAY" envDefault:"2s"`
}

// Load loads optional env files and parses configuration from environment.
// Missing env files are ignored.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("can't load env file: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("can't parse env variables: %w", err)
	}

	return cfg, nil
}
