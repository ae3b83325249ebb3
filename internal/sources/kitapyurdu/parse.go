package kitapyurdu

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/lepinkainen/libris/internal/search"
)

// summarySelectors are tried in priority order; the first one yielding a
// non-empty text wins. The storefront has shipped all three layouts.
var summarySelectors = []string{
	"#description_text",
	".info__text",
	".product-info-text",
}

// Turkish labels in the product attribute table, matched as substrings.
const (
	pageCountLabel = "Sayfa Sayısı"
	isbnLabel      = "ISBN"
)

// parseProduct extracts the listing-level fields of one search result
// entry, defaulting to sentinels when a selector matches nothing.
func parseProduct(product *goquery.Selection) search.Book {
	book := search.Book{
		Title:     search.UnknownTitle,
		Author:    search.UnknownAuthor,
		Publisher: search.UnknownPublisher,
		ISBN:      search.UnknownISBN,
		Summary:   search.NoSummary,
		Source:    search.SourceKitapyurdu,
	}

	if title := strings.TrimSpace(product.Find(".name span").First().Text()); title != "" {
		book.Title = title
	}
	if href, ok := product.Find(".name a").First().Attr("href"); ok {
		book.Link = href
	}
	if src, ok := product.Find(".image img").First().Attr("src"); ok {
		book.CoverURL = src
	}
	if author := strings.TrimSpace(product.Find(".author span a span").First().Text()); author != "" {
		book.Author = author
	}
	if publisher := strings.TrimSpace(product.Find(".publisher span a span").First().Text()); publisher != "" {
		book.Publisher = publisher
	}

	return book
}

// parseDetail fills summary, page count and ISBN from a product detail
// document.
func parseDetail(doc *goquery.Document, book *search.Book) {
	if summary := extractSummary(doc); summary != "" {
		book.Summary = search.SanitizeSummary(summary)
	}

	doc.Find(".attributes table tr").Each(func(_ int, row *goquery.Selection) {
		cols := row.Find("td")
		if cols.Length() != 2 {
			return
		}
		key := strings.TrimSpace(cols.Eq(0).Text())
		val := strings.TrimSpace(cols.Eq(1).Text())

		switch {
		case strings.Contains(key, pageCountLabel):
			if pages, err := strconv.Atoi(val); err == nil {
				book.PageCount = pages
			}
		case strings.Contains(key, isbnLabel):
			book.ISBN = strings.ReplaceAll(val, "-", "")
		}
	})
}

// extractSummary walks the selector chain and falls back to the page's
// meta description. Returns "" when nothing usable is found.
func extractSummary(doc *goquery.Document) string {
	for _, selector := range summarySelectors {
		if text := strings.TrimSpace(doc.Find(selector).First().Text()); text != "" {
			return text
		}
	}
	if content, ok := doc.Find(`meta[name="description"]`).First().Attr("content"); ok {
		return strings.TrimSpace(content)
	}
	return ""
}
