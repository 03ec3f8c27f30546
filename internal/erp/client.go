package erp

import (
	"compress/gzip"
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MichalMitros/stock-reconciler/internal/platform/models"
	"golang.org/x/time/rate"
)

const (
	productListPath = "/product/list/"
	// UpdatedSinceLayout is time layout of updated_at_start filter.
	UpdatedSinceLayout = "2006-01-02 15:04:05"
)

// Decoder decodes ERP page responses.
type Decoder interface {
	Decode(context.Context, io.Reader) ([]models.RawRecord, error)
}

// PageRequest is ERP product list page request.
type PageRequest struct {
	Offset int
	Limit  int
	// Code filters products by product code, empty means no filter.
	Code string
	// UpdatedSince filters products updated after provided time, nil means no filter.
	UpdatedSince *time.Time
}

// Credentials are ERP basic auth credentials.
type Credentials struct {
	Username string
	Password string
}

// Option is custom configuration of Client.
type Option func(c *Client)

// Client builds http requests and fetches ERP product pages.
type Client struct {
	client      *http.Client
	baseURL     string
	credentials Credentials
	origin      string
	decoder     Decoder
	limiter     *rate.Limiter
}

// NewClient returns new Client.
func NewClient(client *http.Client, baseURL string, credentials Credentials, decoder Decoder, ops ...Option) *Client {
	c := &Client{
		client:      client,
		baseURL:     strings.TrimRight(baseURL, "/"),
		credentials: credentials,
		decoder:     decoder,
		limiter:     rate.NewLimiter(rate.Inf, 1),
	}

	for _, op := range ops {
		op(c)
	}

	return c
}

// FetchPage returns raw records of single ERP product list page.
// Empty slice means there are no more pages.
func (c *Client) FetchPage(ctx context.Context, page PageRequest) ([]models.RawRecord, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("can't wait for rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+productListPath, nil)
	if err != nil {
		return nil, fmt.Errorf("can't build http request: %w", err)
	}

	req.URL.RawQuery = pageQuery(page).Encode()
	req.SetBasicAuth(c.credentials.Username, c.credentials.Password)
	setBrowserHeaders(req.Header, c.origin)
	req.Header.Set("Accept-Encoding", "gzip")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("can't get http response: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %d", ErrStatusNotOK, resp.StatusCode)
	}

	body, err := responseBody(resp)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	records, err := c.decoder.Decode(ctx, body)
	if err != nil {
		return nil, fmt.Errorf("can't decode page at offset %d: %w", page.Offset, err)
	}

	return records, nil
}

func pageQuery(page PageRequest) url.Values {
	query := url.Values{}
	query.Set("limit", strconv.Itoa(page.Limit))
	query.Set("offset", strconv.Itoa(page.Offset))
	if page.Code != "" {
		query.Set("code", page.Code)
	}
	if page.UpdatedSince != nil {
		query.Set("updated_at_start", page.UpdatedSince.Format(UpdatedSinceLayout))
	}
	return query
}

// responseBody returns body of JSON response, decompressed when needed.
func responseBody(resp *http.Response) (io.ReadCloser, error) {
	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "application/json" {
		return nil, ErrContentTypeNotSupported
	}

	if resp.Header.Get("Content-Encoding") != "gzip" || resp.Uncompressed {
		return io.NopCloser(resp.Body), nil
	}

	return decompressResponse(resp.Body)
}

// decompressResponse returns io.ReadCloser with decompressed http response and error.
func decompressResponse(response io.Reader) (io.ReadCloser, error) {
	decompressed, err := gzip.NewReader(response)
	if err != nil {
		return nil, fmt.Errorf("can't decompress response: %w", err)
	}

	return decompressed, nil
}

// WithRateLimit limits number of requests per second sent to ERP.
func WithRateLimit(requestsPerSecond float64) Option {
	return func(c *Client) {
		if requestsPerSecond > 0 {
			c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), 1)
		}
	}
}

// WithOrigin sets Origin and Referer headers sent with each request.
func WithOrigin(origin string) Option {
	return func(c *Client) {
		c.origin = strings.TrimRight(origin, "/")
	}
}
