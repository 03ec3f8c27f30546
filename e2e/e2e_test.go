package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MichalMitros/stock-reconciler/e2e/helpers"
	"github.com/MichalMitros/stock-reconciler/internal/decoder"
	"github.com/MichalMitros/stock-reconciler/internal/erp"
	"github.com/MichalMitros/stock-reconciler/internal/handler"
	"github.com/MichalMitros/stock-reconciler/internal/matcher"
	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/MichalMitros/stock-reconciler/internal/platform/rabbitmq"
	"github.com/MichalMitros/stock-reconciler/internal/platform/storage"
	pgmodels "github.com/MichalMitros/stock-reconciler/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/stock-reconciler/internal/platform/storage/storagetesting"
	"github.com/MichalMitros/stock-reconciler/internal/scanner"
	"github.com/MichalMitros/stock-reconciler/internal/storefront"
	"github.com/MichalMitros/stock-reconciler/internal/syncer"
	"github.com/MichalMitros/stock-reconciler/pkg/v1/commander"
	"github.com/caarlos0/env/v6"
	_ "github.com/lib/pq"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	exchange = "reconciler-e2e"
	pageSize = 10
)

type config struct {
	DatabaseURL string `env:"DATABASE_URL"`
	RabbitMQURL string `env:"RABBITMQ_URL"`
}

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	os.Exit(m.Run())
}

func TestE2E(t *testing.T) {
	suite.Run(t, new(E2ETestSuite))
}

type E2ETestSuite struct {
	suite.Suite
	connection *amqp.Connection
	channel    *amqp.Channel
	db         *sql.DB
}

func (s *E2ETestSuite) SetupSuite() {
	var err error

	var cfg config
	if err = env.Parse(&cfg); err != nil {
		s.Require().FailNow("can't parse env variables", err)
	}

	if cfg.DatabaseURL == "" || cfg.RabbitMQURL == "" {
		s.T().Skip("please provide DATABASE_URL and RABBITMQ_URL environment variables")
	}

	if s.connection, err = amqp.Dial(cfg.RabbitMQURL); err != nil {
		s.Require().FailNow("can't open RabbitMQ connection", err)
	}

	if s.channel, err = s.connection.Channel(); err != nil {
		s.Require().FailNow("can't open RabbitMQ channel", err)
	}

	helpers.DeclareRMQExchange(s.T(), s.channel, exchange)

	if s.db, err = sql.Open("postgres", cfg.DatabaseURL); err != nil {
		s.Require().FailNow("can't open Postgres connection", err)
	}
}

func (s *E2ETestSuite) SetupTest() {
	storagetesting.CleanupData(s.T(), s.db)
}

func (s *E2ETestSuite) TearDownSuite() {
	storagetesting.CleanupData(s.T(), s.db)
	if err := s.db.Close(); err != nil {
		s.FailNow("can't close Postgres connection", err)
	}

	if err := s.channel.Close(); err != nil {
		s.FailNow("can't close RabbitMQ channel", err)
	}

	if err := s.connection.Close(); err != nil {
		s.FailNow("can't close RabbitMQ connection", err)
	}
}

func (s *E2ETestSuite) TestReconciliation() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Prepare test RMQ queue
	queue := fmt.Sprintf("reconciler-e2e-test-%d", rand.Int63n(100000))
	routingKey := fmt.Sprintf("reconciler.cmd.e2e.%d", rand.Int63n(100000))
	helpers.DeclareRMQQueue(s.T(), s.channel, queue, exchange, routingKey)

	// Prepare test data, second sync adds 20 new products
	products := helpers.GenerateTestData(s.T(), 45)
	erpSrv, setProducts := helpers.PrepareERPServer(s.T(), products[:25])
	storefrontSrv := helpers.PrepareStorefrontServer(s.T())
	reportDir := s.T().TempDir()

	// Prepare test logger
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.DebugLevel)

	// Prepare reconciler
	store := storage.NewPostgres(s.db)
	syn := syncer.NewSyncer(
		erp.NewClient(erpSrv.Client(), erpSrv.URL, erp.Credentials{Username: "e2e", Password: "e2e"}, &decoder.Decoder{}),
		store,
		&logger,
		syncer.WithPageSize(pageSize),
		syncer.WithUpsertBatch(pageSize),
	)
	mat := matcher.NewMatcher(
		storefront.NewClient(storefrontSrv.Client(), "shop.example.com", "token", "2024-01", storefront.WithEndpoint(storefrontSrv.URL)),
		store,
		store,
		&logger,
	)
	scan := scanner.NewScanner(store, mat, store, &logger, scanner.WithPageSize(pageSize), scanner.WithYield(0, 0))

	// Prepare RMQ client and commander
	rmq, err := rabbitmq.NewRabbitMQ(s.connection, exchange)
	if err != nil {
		s.Require().FailNow("can't create RabbitMQ client", err)
	}
	publisher := commander.NewCommander(commander.NewRabbitMQSender(rmq, routingKey))

	// Prepare and run handler
	han := handler.NewHandler(rmq, syn, scan, mat, store, reportDir, &logger)
	handlerErr := han.Start(ctx, queue)
	s.Require().NoError(handlerErr, "handler shouldn't return any error")

	// First full sync
	s.Require().NoError(publisher.SendFullSync(ctx), "can't publish full sync command")
	firstRun := helpers.WaitForRun(s.T(), s.db, models.SyncKindFull, 0)

	s.Require().True(*firstRun.IsSuccess, "first sync should succeed")
	s.Equal(int32(25), *firstRun.FetchedRecords, "should fetch all records")
	s.Equal(int32(25), *firstRun.UpsertedProducts, "should upsert all products")
	assertCodes(s.T(), products[:25], storagetesting.GetProducts(s.T(), s.db))

	// Second full sync
	setProducts(products)
	s.Require().NoError(publisher.SendFullSync(ctx), "can't publish full sync command")
	secondRun := helpers.WaitForRun(s.T(), s.db, models.SyncKindFull, firstRun.ID)

	s.Require().True(*secondRun.IsSuccess, "second sync should succeed")
	s.Equal(int32(45), *secondRun.FetchedRecords, "should fetch all records")
	assertCodes(s.T(), products, storagetesting.GetProducts(s.T(), s.db))

	// Force sync of single product
	s.Require().NoError(publisher.SendForceSync(ctx, products[0].Code), "can't publish force sync command")
	forceRun := helpers.WaitForRun(s.T(), s.db, models.SyncKindForce, 0)

	s.Require().True(*forceRun.IsSuccess, "force sync should succeed")
	s.Equal(int32(1), *forceRun.FetchedRecords, "should fetch single record")
	s.Equal([]string{products[0].Code}, forceRun.ChangedCodes, "should report forced code")

	// Catalog scan, storefront doesn't know any product
	s.Require().NoError(publisher.SendStartScan(ctx), "can't publish start scan command")
	reports := helpers.WaitForReports(s.T(), reportDir)

	csvPath, ok := lo.Find(reports, func(path string) bool { return filepath.Ext(path) == ".csv" })
	s.Require().True(ok, "should save csv report")
	csvReport, err := os.ReadFile(csvPath)
	s.Require().NoError(err, "can't read csv report")
	for _, product := range products {
		s.Contains(string(csvReport), product.Code, "report should contain not mapped product")
	}

	// Cancel context to stop consumer
	cancel()
	<-rmq.Done()
	han.Wait()
	scan.Wait()

	// Check results
	logs := strings.Split(buf.String(), "\n")
	logs = lo.Filter(logs, func(log string, _ int) bool { return strings.TrimSpace(log) != "" })

	assertLogsMessages(s.T(), map[string]int{
		"sync started":          3,
		"sync finished":         3,
		"catalog scan started":  1,
		"catalog scan finished": 1,
	}, logs)
	s.Empty(storagetesting.GetSystemLogs(s.T(), s.db), "shouldn't log any failed command")
}

// assertLogsMessages is helper function which unmarshals json logs and counts messages.
func assertLogsMessages(t *testing.T, expected map[string]int, actual []string) {
	t.Helper()

	counts := map[string]int{}
	for _, line := range actual {
		var log struct {
			Message string `json:"message"`
		}
		if err := json.Unmarshal([]byte(line), &log); err != nil {
			require.FailNow(t, "can't unmarshal json log", err)
		}
		counts[log.Message]++
	}

	for msg, count := range expected {
		assert.Equalf(t, count, counts[msg], "log message %q has incorrect count", msg)
	}
}

// assertCodes is helper function for comparing synced product codes and names.
func assertCodes(t *testing.T, expected []helpers.ERPProduct, actual []pgmodels.Product) {
	t.Helper()

	require.Len(t, actual, len(expected), "incorrect number of products")

	for ix := range expected {
		assert.Equalf(t, expected[ix].Code, actual[ix].Code, "product at index %d has incorrect code", ix)
		assert.Equalf(t, expected[ix].Name, actual[ix].Name, "product at index %d has incorrect name", ix)
	}
}
