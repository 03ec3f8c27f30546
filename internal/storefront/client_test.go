package storefront_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/MichalMitros/stock-reconciler/internal/storefront"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const token = "shpat_test"

func TestUnitSearchProducts(t *testing.T) {
	searchResponse, err := os.ReadFile("testdata/search.json")
	require.NoError(t, err, "can't read test data")

	tests := map[string]struct {
		status   int
		body     []byte
		want     []models.StorefrontProduct
		wantErr  error
		wantNone bool
	}{
		"products found": {
			status: http.StatusOK,
			body:   searchResponse,
			want: []models.StorefrontProduct{
				{
					ID:             "gid://shopify/Product/1",
					Handle:         "triko-kazak-ekru",
					Title:          "Triko Kazak",
					OnlineStoreURL: "https://shop.example.com/products/triko-kazak-ekru",
					Images:         []string{"https://cdn.example.com/1.jpg"},
					Variants: []models.StorefrontVariant{
						{
							ID:             "gid://shopify/ProductVariant/11",
							SKU:            "B00041-S",
							Barcode:        "8680001000428",
							Price:          lo.ToPtr(decimal.RequireFromString("1299.90")),
							CompareAtPrice: lo.ToPtr(decimal.RequireFromString("1599.90")),
							Inventory:      3,
							Options:        map[string]string{"Beden": "S", "Renk": "Ekru"},
						},
						{
							ID:        "gid://shopify/ProductVariant/12",
							SKU:       "B00041-M",
							Price:     lo.ToPtr(decimal.RequireFromString("1299.90")),
							Inventory: 0,
							Options:   map[string]string{"Beden": "M"},
						},
					},
				},
			},
		},
		"nothing found": {
			status:   http.StatusOK,
			body:     []byte(`{"data":{"products":{"edges":[]}}}`),
			wantNone: true,
		},
		"throttled by status": {
			status:  http.StatusTooManyRequests,
			wantErr: storefront.ErrThrottled,
		},
		"throttled by error code": {
			status:  http.StatusOK,
			body:    []byte(`{"errors":[{"message":"Throttled","extensions":{"code":"THROTTLED"}}]}`),
			wantErr: storefront.ErrThrottled,
		},
		"throttled by message": {
			status:  http.StatusOK,
			body:    []byte(`{"errors":[{"message":"Throttled"}]}`),
			wantErr: storefront.ErrThrottled,
		},
		"query error": {
			status:  http.StatusOK,
			body:    []byte(`{"errors":[{"message":"Field 'x' doesn't exist"}]}`),
			wantErr: storefront.ErrQueryFailed,
		},
		"bad status": {
			status:  http.StatusInternalServerError,
			wantErr: storefront.ErrStatusNotOK,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(wrt http.ResponseWriter, req *http.Request) {
				assert.Equal(t, http.MethodPost, req.Method, "should send POST request")
				assert.Equal(t, token, req.Header.Get("X-Shopify-Access-Token"), "should send access token")

				var body struct {
					Query     string            `json:"query"`
					Variables map[string]string `json:"variables"`
				}
				assert.NoError(t, json.NewDecoder(req.Body).Decode(&body), "should send JSON body")
				assert.Equal(t, "B00041", body.Variables["query"], "should send search query")
				assert.Contains(t, body.Query, "products(first: 5, query: $query)", "should send search query")

				wrt.Header().Set("Content-Type", "application/json")
				wrt.WriteHeader(tt.status)
				wrt.Write(tt.body)
			}))
			t.Cleanup(func() {
				srv.Close()
			})

			client := storefront.NewClient(srv.Client(), "shop.example.com", token, "2024-01", storefront.WithEndpoint(srv.URL))
			products, err := client.SearchProducts(context.TODO(), "B00041")

			require.ErrorIs(t, err, tt.wantErr, "should return correct error")
			if tt.wantErr != nil {
				return
			}

			if tt.wantNone {
				assert.Empty(t, products, "shouldn't return products")
				return
			}

			require.Len(t, products, len(tt.want), "should return all products")
			for ix := range tt.want {
				assertProduct(t, tt.want[ix], products[ix])
			}
		})
	}
}

// assertProduct compares products, decimals are compared by value.
func assertProduct(t *testing.T, want, got models.StorefrontProduct) {
	t.Helper()

	assert.Equal(t, want.ID, got.ID, "should return product id")
	assert.Equal(t, want.Handle, got.Handle, "should return product handle")
	assert.Equal(t, want.Title, got.Title, "should return product title")
	assert.Equal(t, want.OnlineStoreURL, got.OnlineStoreURL, "should return product url")
	assert.Equal(t, want.Images, got.Images, "should return unique images")
	require.Len(t, got.Variants, len(want.Variants), "should return all variants")

	for ix, wantVariant := range want.Variants {
		gotVariant := got.Variants[ix]
		assert.Equal(t, wantVariant.ID, gotVariant.ID, "should return variant id")
		assert.Equal(t, wantVariant.SKU, gotVariant.SKU, "should return variant sku")
		assert.Equal(t, wantVariant.Barcode, gotVariant.Barcode, "should return variant barcode")
		assert.Equal(t, wantVariant.Inventory, gotVariant.Inventory, "should return variant inventory")
		assert.Equal(t, wantVariant.Options, gotVariant.Options, "should return variant options")
		assertDecimal(t, wantVariant.Price, gotVariant.Price)
		assertDecimal(t, wantVariant.CompareAtPrice, gotVariant.CompareAtPrice)
	}
}

func assertDecimal(t *testing.T, want, got *decimal.Decimal) {
	t.Helper()

	if want == nil {
		assert.Nil(t, got, "should return nil price")
		return
	}

	if assert.NotNil(t, got, "should return price") {
		assert.True(t, want.Equal(*got), "should return price %s, got %s", want, got)
	}
}
