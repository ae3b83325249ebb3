// Package search aggregates book metadata from multiple external sources
// into a single ranked candidate list.
package search

// Sentinel values used when a source does not provide a field.
// These match the labels the rest of the application displays verbatim.
const (
	UnknownAuthor    = "Bilinmeyen Yazar"
	UnknownISBN      = "Bilinmiyor"
	UnknownPublisher = "Bilinmeyen Yayınevi"
	UnknownTitle     = "Bilinmeyen Kitap"
	NoSummary        = "Özet bulunmuyor."
)

// Source names as they appear in Book.Source.
const (
	SourceGoogleBooks = "Google Books"
	SourceOpenLibrary = "Open Library"
	SourceAppleBooks  = "Apple Books"
	SourceKitapyurdu  = "Kitapyurdu"
)

// Book is the canonical candidate record produced by every connector.
// Title and Source are always non-empty; everything else may hold a
// sentinel or zero value. Score is set exactly once by the scorer.
type Book struct {
	Title         string  `json:"title"`
	Author        string  `json:"author"`
	ISBN          string  `json:"isbn"`
	CoverURL      string  `json:"cover_url"`
	Summary       string  `json:"summary"`
	PageCount     int     `json:"page_count"`
	Publisher     string  `json:"publisher"`
	PublishedDate string  `json:"published_date"`
	Source        string  `json:"source"`
	Link          string  `json:"link"`
	Score         float64 `json:"score"`
}
