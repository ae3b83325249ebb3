// Package openlibrary queries the Open Library search API.
package openlibrary

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/lepinkainen/libris/internal/ratelimit"
	"github.com/lepinkainen/libris/internal/search"
)

const (
	defaultBaseURL      = "https://openlibrary.org"
	defaultCoverBaseURL = "https://covers.openlibrary.org"
	defaultTimeout      = 5 * time.Second
	defaultLimit        = 20
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an Open Library search client implementing search.Source.
type Client struct {
	baseURL      string
	coverBaseURL string
	limit        int
	httpClient   HTTPDoer
	rateLimiter  *ratelimit.Limiter
}

// NewClient creates a new Open Library client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:      defaultBaseURL,
		coverBaseURL: defaultCoverBaseURL,
		limit:        defaultLimit,
		httpClient:   &http.Client{Timeout: defaultTimeout},
		rateLimiter:  ratelimit.New("OpenLibrary", 1),
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL for the API.
func WithBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithCoverBaseURL sets a custom base URL for cover images.
func WithCoverBaseURL(base string) Option {
	return func(c *Client) {
		if base != "" {
			c.coverBaseURL = strings.TrimSuffix(base, "/")
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
	return search.SourceOpenLibrary
}

type searchResponse struct {
	Docs []doc `json:"docs"`
}

type doc struct {
	Title               string   `json:"title"`
	AuthorName          []string `json:"author_name"`
	ISBN                []string `json:"isbn"`
	CoverI              int      `json:"cover_i"`
	NumberOfPagesMedian int      `json:"number_of_pages_median"`
	Publisher           []string `json:"publisher"`
	PublishDate         []string `json:"publish_date"`
	Key                 string   `json:"key"`
}

// Search fetches candidates from the Open Library search endpoint. ISBN
// queries send the bare digit string; free-text queries are capped at the
// configured limit.
func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Book, error) {
	params := url.Values{}
	if query.Kind == search.KindISBN {
		params.Set("q", query.ISBN)
	} else {
		params.Set("q", query.Raw)
		params.Set("limit", strconv.Itoa(c.limit))
	}
	endpoint := fmt.Sprintf("%s/search.json?%s", c.baseURL, params.Encode())

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("openLibrary API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("openLibrary API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode OpenLibrary response: %w", err)
	}

	books := make([]search.Book, 0, len(result.Docs))
	for _, d := range result.Docs {
		if book, ok := c.parseDoc(d); ok {
			books = append(books, book)
		}
	}
	return books, nil
}

func (c *Client) parseDoc(d doc) (search.Book, bool) {
	if d.Title == "" {
		return search.Book{}, false
	}

	author := search.UnknownAuthor
	if len(d.AuthorName) > 0 {
		author = strings.Join(d.AuthorName, ", ")
	}

	isbn := search.UnknownISBN
	if len(d.ISBN) > 0 {
		isbn = d.ISBN[0]
	}

	var coverURL string
	if d.CoverI > 0 {
		coverURL = fmt.Sprintf("%s/b/id/%d-M.jpg", c.coverBaseURL, d.CoverI)
	}

	publisher := search.UnknownPublisher
	if len(d.Publisher) > 0 {
		publisher = d.Publisher[0]
	}

	var publishedDate string
	if len(d.PublishDate) > 0 {
		publishedDate = d.PublishDate[0]
	}

	var link string
	if d.Key != "" {
		link = c.baseURL + d.Key
	}

	return search.Book{
		Title:         d.Title,
		Author:        author,
		ISBN:          isbn,
		CoverURL:      coverURL,
		Summary:       search.NoSummary,
		PageCount:     d.NumberOfPagesMedian,
		Publisher:     publisher,
		PublishedDate: publishedDate,
		Source:        search.SourceOpenLibrary,
		Link:          link,
	}, true
}
