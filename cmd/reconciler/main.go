package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/MichalMitros/stock-reconciler/cmd/reconciler/config"
	"github.com/MichalMitros/stock-reconciler/internal/decoder"
	"github.com/MichalMitros/stock-reconciler/internal/erp"
	"github.com/MichalMitros/stock-reconciler/internal/handler"
	"github.com/MichalMitros/stock-reconciler/internal/matcher"
	"github.com/MichalMitros/stock-reconciler/internal/metrics"
	"github.com/MichalMitros/stock-reconciler/internal/platform/rabbitmq"
	"github.com/MichalMitros/stock-reconciler/internal/platform/storage"
	"github.com/MichalMitros/stock-reconciler/internal/scanner"
	"github.com/MichalMitros/stock-reconciler/internal/storefront"
	"github.com/MichalMitros/stock-reconciler/internal/syncer"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := context.WithCancel(context.Background())

	logger := zerolog.New(os.Stderr).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't load configuration")
	}

	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		logger = logger.Level(level)
	}

	amqpConnection, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ connection")
	}

	conn, err := rabbitmq.NewRabbitMQ(amqpConnection, cfg.RabbitMQ.Exchange)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open RabbitMQ channel")
	}

	if err := conn.Bind(cfg.RabbitMQ.Queue, cfg.RabbitMQ.RoutingKey); err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't bind commands queue")
	}

	pgDB, err := sql.Open("postgres", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't open Postgres connection")
	}

	store := storage.NewPostgres(
		pgDB,
		storage.WithLookupChunk(cfg.Sync.LookupChunk),
		storage.WithStaleRunTimeout(cfg.Sync.StaleRunTimeout),
	)
	registry := metrics.NewRegistry()
	httpClient := &http.Client{Timeout: cfg.HTTPTimeout}

	erpClient := erp.NewClient(
		httpClient,
		cfg.ERP.BaseURL,
		erp.Credentials{Username: cfg.ERP.Username, Password: cfg.ERP.Password},
		&decoder.Decoder{},
		erp.WithRateLimit(cfg.ERP.RateLimit),
		erp.WithOrigin(cfg.ERP.Origin),
	)

	syn := syncer.NewSyncer(
		erpClient,
		store,
		&logger,
		syncer.WithMetrics(registry),
		syncer.WithPageSize(cfg.ERP.PageSize),
		syncer.WithUpsertBatch(cfg.Sync.UpsertBatch),
		syncer.WithLookback(cfg.Sync.Lookback),
	)

	mat := matcher.NewMatcher(
		storefront.NewClient(httpClient, cfg.Storefront.Domain, cfg.Storefront.Token, cfg.Storefront.APIVersion),
		store,
		store,
		&logger,
		matcher.WithCacheTTL(cfg.Match.CacheTTL),
		matcher.WithThrottleRetry(cfg.Match.ThrottleRetries, cfg.Match.ThrottleDelay),
		matcher.WithPublicURL(cfg.Storefront.PublicURL),
		matcher.WithMetrics(registry),
	)

	scan := scanner.NewScanner(
		store,
		mat,
		store,
		&logger,
		scanner.WithPageSize(cfg.Scanner.PageSize),
		scanner.WithRetry(cfg.Scanner.MaxRetries, cfg.Scanner.Backoff),
		scanner.WithYield(cfg.Scanner.YieldEvery, cfg.Scanner.YieldDelay),
		scanner.WithMetrics(registry),
	)

	han := handler.NewHandler(conn, syn, scan, mat, store, cfg.ReportDir, &logger)

	// start consuming and handling messages
	err = han.Start(ctx, cfg.RabbitMQ.Queue)
	if err != nil {
		logger.Fatal().
			Err(err).
			Msg("can't start consuming")
	}

	metricsServer := &http.Server{
		Addr:              cfg.MetricsAddr,
		Handler:           registry.Handler(),
		ReadHeaderTimeout: cfg.HTTPTimeout,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error().
				Err(err).
				Msg("metrics server failed")
			cancel()
		}
	}()

	go syn.Poll(ctx, cfg.Sync.PollInterval)

	logger.Info().Msg("stock reconciler up and running")

	// handle graceful shutdown and context cancellation
	termChan := make(chan os.Signal, 1)
	signal.Notify(termChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-termChan:
		cancel()
	case <-ctx.Done():
	}

	logger.Info().Msg("graceful shutdown start")

	// stop running scan and wait for consumer and syncs to finish
	scan.Cancel()
	scan.Wait()
	<-conn.Done()
	han.Wait()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	// close connections
	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			logger.Error().
				Err(err).
				Msg("can't stop metrics server")
		}
	}()

	go func() {
		defer wg.Done()
		if err := pgDB.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close Postgres connection")
		}
	}()

	go func() {
		defer wg.Done()
		if err := amqpConnection.Close(); err != nil {
			logger.Fatal().
				Err(err).
				Msg("can't close RabbitMQ connection")
		}
	}()

	wg.Wait()

	logger.Info().Msg("graceful shutdown successful")
}
