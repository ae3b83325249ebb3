// Package googlebooks queries the Google Books volumes API.
package googlebooks

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/libris/internal/ratelimit"
	"github.com/lepinkainen/libris/internal/search"
)

const (
	defaultBaseURL       = "https://www.googleapis.com/books/v1"
	defaultTimeout       = 5 * time.Second
	defaultMaxResults    = 40
	defaultRatePerSecond = 5
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a Google Books API client implementing search.Source.
type Client struct {
	apiKey      string
	baseURL     string
	maxResults  int
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// NewClient creates a new Google Books client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		maxResults:  defaultMaxResults,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: ratelimit.New("GoogleBooks", defaultRatePerSecond),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithAPIKey sets an optional API key appended to every request.
func WithAPIKey(key string) Option {
	return func(c *Client) {
		c.apiKey = key
	}
}

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.httpClient = doer
		}
	}
}

// WithRateLimiter sets a custom rate limiter.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(c *Client) {
		if limiter != nil {
			c.rateLimiter = limiter
		}
	}
}

// Name implements search.Source.
func (c *Client) Name() string {
	return search.SourceGoogleBooks
}

// Search fetches candidates for the query. For ISBN queries a single
// identifier-filtered request is made. For free-text queries a relevance
// search runs first, and when the query looks like a bare author name
// (no digits, under five words) a second inauthor: pass appends results
// not already collected — this catches works whose canonical listing only
// surfaces under an author search, such as translated titles. A failure
// of either request leaves the other's contribution intact.
func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Book, error) {
	params := url.Values{}
	if query.Kind == search.KindISBN {
		params.Set("q", "isbn:"+query.ISBN)
	} else {
		params.Set("q", query.Raw)
		params.Set("maxResults", strconv.Itoa(c.maxResults))
		params.Set("printType", "books")
		params.Set("orderBy", "relevance")
	}

	books, err := c.fetchVolumes(ctx, params)

	if authorSearchWorthwhile(query.Raw) {
		authorParams := url.Values{}
		for key := range params {
			authorParams.Set(key, params.Get(key))
		}
		authorParams.Set("q", "inauthor:"+query.Raw)

		byAuthor, authorErr := c.fetchVolumes(ctx, authorParams)
		if authorErr != nil {
			slog.Warn("Google Books author search failed", "query", query.Raw, "error", authorErr)
		}
		for _, book := range byAuthor {
			if !containsBook(books, book) {
				books = append(books, book)
			}
		}
		// The author pass succeeded; partial results beat an error.
		if err != nil && len(books) > 0 {
			err = nil
		}
	}

	return books, err
}

// authorSearchWorthwhile reports whether a free-text query looks enough
// like a person's name to justify a second inauthor: request.
func authorSearchWorthwhile(raw string) bool {
	if strings.ContainsAny(raw, "0123456789") {
		return false
	}
	return len(strings.Fields(raw)) < 5
}

func containsBook(books []search.Book, book search.Book) bool {
	for _, b := range books {
		if b.Title == book.Title && b.Author == book.Author {
			return true
		}
	}
	return false
}

func (c *Client) fetchVolumes(ctx context.Context, params url.Values) ([]search.Book, error) {
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	endpoint := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google Books API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("google Books API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result volumesResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode Google Books response: %w", err)
	}

	books := make([]search.Book, 0, len(result.Items))
	for _, item := range result.Items {
		if book, ok := parseVolume(item); ok {
			books = append(books, book)
		}
	}
	return books, nil
}
