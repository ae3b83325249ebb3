// Package applebooks queries the iTunes Search API for ebooks.
package applebooks

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
	defaultBaseURL = "https://itunes.apple.com"
	defaultTimeout = 5 * time.Second
	defaultLimit   = 20
	defaultCountry = "TR"
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is an iTunes Search API client implementing search.Source.
type Client struct {
	baseURL     string
	country     string
	limit       int
	httpClient  HTTPDoer
	rateLimiter *ratelimit.Limiter
}

// NewClient creates a new Apple Books client.
func NewClient(opts ...Option) *Client {
	client := &Client{
		baseURL:     defaultBaseURL,
		country:     defaultCountry,
		limit:       defaultLimit,
		httpClient:  &http.Client{Timeout: defaultTimeout},
		rateLimiter: ratelimit.New("AppleBooks", 2),
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

// WithCountry sets the storefront country code.
func WithCountry(country string) Option {
	return func(c *Client) {
		if country != "" {
			c.country = country
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
	return search.SourceAppleBooks
}

type searchResponse struct {
	Results []track `json:"results"`
}

type track struct {
	TrackName    string `json:"trackName"`
	ArtistName   string `json:"artistName"`
	ArtworkURL   string `json:"artworkUrl100"`
	Description  string `json:"description"`
	TrackViewURL string `json:"trackViewUrl"`
	ReleaseDate  string `json:"releaseDate"`
}

// Search always issues a free-text ebook search against the configured
// storefront; the iTunes API has no ISBN filter and reports no page counts.
func (c *Client) Search(ctx context.Context, query search.Query) ([]search.Book, error) {
	params := url.Values{}
	params.Set("term", query.Raw)
	params.Set("media", "ebook")
	params.Set("limit", strconv.Itoa(c.limit))
	params.Set("country", c.country)
	endpoint := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("iTunes API request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("iTunes API returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var result searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode iTunes response: %w", err)
	}

	books := make([]search.Book, 0, len(result.Results))
	for _, item := range result.Results {
		if book, ok := parseTrack(item); ok {
			books = append(books, book)
		}
	}
	return books, nil
}

func parseTrack(item track) (search.Book, bool) {
	if item.TrackName == "" {
		return search.Book{}, false
	}

	author := item.ArtistName
	if author == "" {
		author = search.UnknownAuthor
	}

	// The artwork endpoint serves any resolution by path substitution.
	coverURL := strings.Replace(item.ArtworkURL, "100x100", "600x600", 1)

	summary := item.Description
	if summary == "" {
		summary = search.NoSummary
	}

	publisher := item.ArtistName
	if publisher == "" {
		publisher = "Apple Books"
	}

	releaseDate := item.ReleaseDate
	if len(releaseDate) > 10 {
		releaseDate = releaseDate[:10]
	}

	return search.Book{
		Title:         item.TrackName,
		Author:        author,
		ISBN:          search.UnknownISBN,
		CoverURL:      coverURL,
		Summary:       summary,
		PageCount:     0,
		Publisher:     publisher,
		PublishedDate: releaseDate,
		Source:        search.SourceAppleBooks,
		Link:          item.TrackViewURL,
	}, true
}
