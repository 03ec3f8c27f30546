package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"github.com/samber/lo"
)

const tokenHeader = "X-Shopify-Access-Token"

// Option is custom configuration of Client.
type Option func(c *Client)

// Client queries storefront admin GraphQL API.
type Client struct {
	client   *http.Client
	endpoint string
	token    string
}

// NewClient returns new Client for shop domain and API version.
func NewClient(client *http.Client, domain, token, apiVersion string, ops ...Option) *Client {
	c := &Client{
		client:   client,
		endpoint: fmt.Sprintf("https://%s/admin/api/%s/graphql.json", strings.TrimSuffix(domain, "/"), apiVersion),
		token:    token,
	}

	for _, op := range ops {
		op(c)
	}

	return c
}

// SearchProducts returns products found by text query.
// Returns ErrThrottled when API rejected the query because of rate limits.
func (c *Client) SearchProducts(ctx context.Context, query string) ([]models.StorefrontProduct, error) {
	body, err := json.Marshal(request{
		Query:     searchQuery,
		Variables: map[string]any{"query": query},
	})
	if err != nil {
		return nil, fmt.Errorf("can't encode query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(tokenHeader, c.token)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, ErrThrottled
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("can't decode response: %w", err)
	}

	if len(result.Errors) > 0 {
		if lo.SomeBy(result.Errors, apiError.throttled) {
			return nil, ErrThrottled
		}
		return nil, fmt.Errorf("%w: %s", ErrQueryFailed, result.Errors[0].Message)
	}

	return toAppProducts(result.Data), nil
}

// WithEndpoint overrides GraphQL endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = endpoint
	}
}
