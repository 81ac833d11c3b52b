// Package ads provides a client for reading libraries from the NASA
// Astrophysics Data System API.
package ads

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/matsen/cvpubs/internal/record"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const (
	// BaseURL is the ADS API base URL.
	BaseURL = "https://api.adsabs.harvard.edu/v1"

	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 60 * time.Second

	// RateLimit keeps bursts of paged requests polite; ADS enforces a daily
	// quota rather than a per-second one.
	RateLimit = 5.0

	// DefaultRows is the page size for library requests.
	DefaultRows = 100

	// TokenEnvVar names the environment variable holding the API token.
	TokenEnvVar = "ADS_API_TOKEN"
)

// Fields are the record fields requested for every library document.
var Fields = []string{
	"title",
	"author",
	"year",
	"pub",
	"page",
	"volume",
	"doi",
	"bibcode",
	"citation_count",
	"pubdate",
}

// Client is a rate-limited HTTP client for the ADS API.
type Client struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	token      string
	baseURL    string
	rows       int
	logger     zerolog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithToken sets the API token for authenticated requests.
func WithToken(token string) ClientOption {
	return func(c *Client) {
		c.token = token
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
	}
}

// WithRows sets the page size for library requests.
func WithRows(rows int) ClientOption {
	return func(c *Client) {
		if rows > 0 {
			c.rows = rows
		}
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(logger zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a new ADS API client.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		httpClient: &http.Client{Timeout: DefaultTimeout},
		limiter:    rate.NewLimiter(rate.Limit(RateLimit), 1),
		baseURL:    BaseURL,
		rows:       DefaultRows,
		logger:     zerolog.Nop(),
	}

	// Check for token in environment
	if token := os.Getenv(TokenEnvVar); token != "" {
		c.token = token
	}

	// Apply options
	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Fetch returns every document in an ADS library, following pagination.
// Records come back exactly as ADS sends them; no mangling is applied.
func (c *Client) Fetch(ctx context.Context, library string) ([]record.Record, error) {
	if c.token == "" {
		return nil, ErrMissingToken
	}
	if library == "" {
		return nil, fmt.Errorf("%w: empty library id", ErrNotFound)
	}

	var records []record.Record
	start := 0
	for {
		page, err := c.getLibraryPage(ctx, library, start)
		if err != nil {
			return nil, err
		}

		docs := page.Solr.Response.Docs
		records = append(records, docs...)
		start += len(docs)

		total := page.Metadata.NumDocuments
		if total == 0 {
			total = page.Solr.Response.NumFound
		}

		c.logger.Debug().
			Str("library", library).
			Int("fetched", start).
			Int("total", total).
			Msg("fetched library page")

		if len(docs) == 0 || start >= total {
			break
		}
	}

	return records, nil
}

// getLibraryPage requests one page of library documents.
func (c *Client) getLibraryPage(ctx context.Context, library string, start int) (*LibraryResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limiter: %w", err)
	}

	params := url.Values{}
	params.Set("fl", strings.Join(Fields, ","))
	params.Set("rows", strconv.Itoa(c.rows))
	params.Set("start", strconv.Itoa(start))
	reqURL := fmt.Sprintf("%s/biblib/libraries/%s?%s", c.baseURL, url.PathEscape(library), params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrNetworkError, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: reading body: %v", ErrNetworkError, err)
	}

	if err := checkHTTPErrors(resp.StatusCode, body, library); err != nil {
		return nil, err
	}

	var page LibraryResponse
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, fmt.Errorf("%w: parsing library page: %v", ErrInvalidResponse, err)
	}
	return &page, nil
}

// checkHTTPErrors returns an error if the status code indicates a problem.
func checkHTTPErrors(status int, body []byte, library string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", ErrAuthError, status)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: library %s", ErrNotFound, library)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d", ErrRateLimited, status)
	case status >= 400:
		msg := fmt.Sprintf("HTTP %d", status)
		var er errorResponse
		if json.Unmarshal(body, &er) == nil && er.Error != "" {
			msg = er.Error
		}
		return &APIError{StatusCode: status, Message: msg, Library: library}
	}
	return nil
}
