// Package kitapyurdu scrapes the Kitapyurdu storefront for book metadata.
package kitapyurdu

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/lepinkainen/libris/internal/ratelimit"
	"github.com/lepinkainen/libris/internal/search"
)

const (
	defaultBaseURL       = "https://www.kitapyurdu.com"
	defaultListTimeout   = 8 * time.Second
	defaultDetailTimeout = 5 * time.Second
	defaultMaxProducts   = 5
	defaultUserAgent     = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client scrapes the storefront's search listing and product detail pages.
// It implements search.Source.
type Client struct {
	baseURL      string
	userAgent    string
	maxProducts  int
	listClient   HTTPDoer
	detailClient HTTPDoer
	rateLimiter  *ratelimit.Limiter
}

// NewClient creates a new storefront scraper.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:      defaultBaseURL,
		userAgent:    defaultUserAgent,
		maxProducts:  defaultMaxProducts,
		listClient:   &http.Client{Timeout: defaultListTimeout},
		detailClient: &http.Client{Timeout: defaultDetailTimeout},
		rateLimiter:  ratelimit.New("Kitapyurdu", 2),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the storefront.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithHTTPClient sets one client for both listing and detail fetches.
func WithHTTPClient(doer HTTPDoer) Option {
	return func(c *Client) {
		if doer != nil {
			c.listClient = doer
			c.detailClient = doer
		}
	}
}

// WithMaxProducts caps how many listing entries are followed.
func WithMaxProducts(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.maxProducts = n
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
	return search.SourceKitapyurdu
}

// Search scrapes the result listing and follows each product's detail
// page. A failed detail fetch leaves that entry's summary, page count and
// ISBN at their sentinel defaults instead of dropping the entry.
func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Book, error) {
	params := url.Values{}
	params.Set("route", "product/search")
	params.Set("filter_name", query.Raw)
	endpoint := fmt.Sprintf("%s/index.php?%s", c.baseURL, params.Encode())

	listing, err := c.fetchDocument(ctx, c.listClient, endpoint)
	if err != nil {
		return nil, fmt.Errorf("kitapyurdu listing fetch failed: %w", err)
	}

	var books []search.Book
	listing.Find(".product-cr").EachWithBreak(func(i int, product *goquery.Selection) bool {
		if i >= c.maxProducts {
			return false
		}
		book := parseProduct(product)
		if book.Link != "" {
			c.enrichFromDetail(ctx, &book)
		}
		book.Summary = search.SanitizeSummary(book.Summary)
		books = append(books, book)
		return true
	})

	return books, nil
}

// enrichFromDetail fills summary, page count and ISBN from the product's
// own page. Failures are logged and swallowed.
func (c *Client) enrichFromDetail(ctx context.Context, book *search.Book) {
	detail, err := c.fetchDocument(ctx, c.detailClient, book.Link)
	if err != nil {
		slog.Debug("Kitapyurdu detail fetch failed", "link", book.Link, "error", err)
		return
	}
	parseDetail(detail, book)
}

func (c *Client) fetchDocument(ctx context.Context, doer HTTPDoer, endpoint string) (*goquery.Document, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := doer.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}
