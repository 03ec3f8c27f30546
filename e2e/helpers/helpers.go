package helpers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/MichalMitros/stock-reconciler/internal/platform/storage"
	pgmodels "github.com/MichalMitros/stock-reconciler/internal/platform/storage/gen/postgres/public/model"
	"github.com/MichalMitros/stock-reconciler/internal/platform/storage/storagetesting"
	"github.com/go-faker/faker/v4"
	"github.com/go-jet/jet/v2/qrm"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"
)

const (
	contentType = "Content-Type"
	waitTimeout = 30 * time.Second
)

// ERPProduct is product item served by mocked ERP.
type ERPProduct struct {
	Code         string            `json:"code"`
	Name         string            `json:"name"`
	Brand        string            `json:"brand"`
	SellingPrice string            `json:"selling_price"`
	Categories   []string          `json:"categories"`
	Options      map[string]string `json:"options"`
	Metas        []ERPMeta         `json:"metas"`
}

// ERPMeta is variant item served by mocked ERP.
type ERPMeta struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Barcode  string `json:"barcode"`
	Quantity int    `json:"quantity"`
}

// WaitForRun is blocking helper function, returns run of kind with ID greater than afterID after it is finished.
func WaitForRun(t *testing.T, queryable qrm.Queryable, kind models.SyncKind, afterID int) models.SyncRun {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "sync run wasn't finished in time", kind)
		case <-time.After(time.Millisecond * 250):
		}

		runs := lo.Filter(storagetesting.GetRuns(t, queryable), func(run pgmodels.SyncRun, _ int) bool {
			return run.Kind == string(kind) && int(run.ID) > afterID
		})
		if len(runs) == 0 || runs[len(runs)-1].FinishedAt == nil {
			continue
		}

		run, err := storage.ToRun(&runs[len(runs)-1])
		require.NoError(t, err, "can't convert sync run")
		return *run
	}
}

// WaitForReports is blocking helper function, returns report files saved in dir.
func WaitForReports(t *testing.T, dir string) []string {
	t.Helper()

	deadline := time.After(waitTimeout)
	for {
		select {
		case <-deadline:
			require.FailNow(t, "audit report wasn't saved in time", dir)
		case <-time.After(time.Millisecond * 250):
		}

		files, err := filepath.Glob(filepath.Join(dir, "audit-*"))
		require.NoError(t, err, "can't list report files")
		if len(files) == 2 {
			return files
		}
	}
}

// PrepareERPServer is helper function for mocking ERP product list endpoint.
// Products are paged by limit and offset query params and filtered by code param.
// Returns function for replacing served products.
func PrepareERPServer(t *testing.T, products []ERPProduct) (*httptest.Server, func([]ERPProduct)) {
	t.Helper()

	var mu sync.Mutex
	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
		mu.Lock()
		served := products
		mu.Unlock()

		query := req.URL.Query()
		if code := query.Get("code"); code != "" {
			served = lo.Filter(served, func(p ERPProduct, _ int) bool { return p.Code == code })
		}

		offset, _ := strconv.Atoi(query.Get("offset"))
		limit, _ := strconv.Atoi(query.Get("limit"))
		served = lo.Subset(served, offset, uint(limit))

		wrt.Header().Add(contentType, "application/json")
		_ = json.NewEncoder(wrt).Encode(map[string]any{"results": served})
	}))

	t.Cleanup(func() {
		srv.Close()
	})

	return srv, func(p []ERPProduct) {
		mu.Lock()
		defer mu.Unlock()
		products = p
	}
}

// PrepareStorefrontServer is helper function for mocking storefront GraphQL API which never finds any product.
func PrepareStorefrontServer(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, _ *http.Request) {
		wrt.Header().Add(contentType, "application/json")
		_, _ = wrt.Write([]byte(`{"data":{"products":{"edges":[]}}}`))
	}))

	t.Cleanup(func() {
		srv.Close()
	})

	return srv
}

// DeclareRMQExchange is helper function for declaring RMQ exchange.
func DeclareRMQExchange(t *testing.T, ch *amqp.Channel, exchange string) {
	t.Helper()

	if err := ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil); err != nil {
		require.FailNow(t, "can't declare exchange", exchange, err)
	}
}

// DeclareRMQQueue is helper function for declaring RMQ queue and binding and cleaning them after test is finished.
func DeclareRMQQueue(t *testing.T, channel *amqp.Channel, queueName, exchange, routingKey string) {
	t.Helper()

	_, err := channel.QueueDeclare(queueName, true, false, false, false, nil)
	if err != nil {
		require.FailNow(t, "can't declare queue", queueName, err)
	}

	err = channel.QueueBind(queueName, routingKey, exchange, false, nil)
	if err != nil {
		require.FailNow(t, "can't bind queue", queueName, routingKey, err)
	}

	t.Cleanup(func() {
		_, err := channel.QueueDelete(queueName, false, false, true)
		if err != nil {
			require.FailNow(t, "can't delete queue", queueName, err)
		}
	})
}

// GenerateTestData generates n ERP products with codes E2E-0001 to E2E-n, each with two size variants.
func GenerateTestData(t *testing.T, n int) []ERPProduct {
	t.Helper()

	results := make([]ERPProduct, n)

	for ix := range n {
		code := fmt.Sprintf("E2E-%04d", ix+1)
		results[ix] = ERPProduct{
			Code:         code,
			Name:         faker.Word() + " " + faker.Word(),
			Brand:        faker.Word(),
			SellingPrice: fmt.Sprintf("%d.90", ix+10),
			Categories:   []string{"Dresses"},
			Options:      map[string]string{"Color": "Red"},
			Metas: []ERPMeta{
				{ID: code + "-S", Value: "S", Barcode: code + "1", Quantity: ix % 3},
				{ID: code + "-M", Value: "M", Barcode: code + "2", Quantity: 2},
			},
		}
	}

	return results
}
