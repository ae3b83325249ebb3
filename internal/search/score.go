package search

import (
	"sort"
	"strings"
)

// Token lists the scorer matches against lower-cased title/author text.
// They come straight from the kinds of noise the live sources return for
// popular queries: movie tie-ins, exam prep, study summaries and records
// attributed to a studio or committee instead of a person.
var (
	corporateAuthorTokens = []string{
		"inc", "corp", "ltd", "studio", "staff", "entertainment", "warner bros",
	}

	genericAuthorTokens = []string{
		"kolektif", "komisyon", "editör", "staff", "unknown", "bilinmeyen", "inc", "corp",
	}

	nonBookKeywords = []string{
		"boyama", "film", "rehber", "ajanda", "takvim", "poster", "çıkartma",
		"dehlizi", "popüler kültür", "özet", "notlar", "sınav", "hazırlık",
		"analiz", "inceleme", "kılavuz",
	}

	turkishChars = []rune{'ç', 'ğ', 'ı', 'ö', 'ş', 'ü', 'Ç', 'Ğ', 'I', 'Ö', 'Ş', 'Ü'}
)

// kitapyurduBoilerplate is a placeholder string the storefront sometimes
// returns in place of a real description.
const kitapyurduBoilerplate = "Kitapyurdu'ndan bulundu"

// SanitizeSummary replaces known storefront boilerplate with the
// no-summary sentinel. A summary counts as boilerplate when it contains
// the known placeholder phrase, or when it contains the generic noise
// word "bulundu" and is too short to be a real description.
func SanitizeSummary(summary string) string {
	if summary == "" {
		return NoSummary
	}
	if strings.Contains(summary, kitapyurduBoilerplate) {
		return NoSummary
	}
	if strings.Contains(strings.ToLower(summary), "bulundu") && len(summary) < 50 {
		return NoSummary
	}
	return summary
}

// ScoreBook computes the relevance score of a single candidate against the
// raw query. Every term is summed independently; there is no short-circuit.
func ScoreBook(query string, book Book) float64 {
	queryLower := strings.ToLower(query)
	titleLower := strings.ToLower(book.Title)
	authorLower := strings.ToLower(book.Author)

	var score float64

	// Corporate authors are almost never the book the user wants.
	if containsAny(authorLower, corporateAuthorTokens) {
		score -= 100
	}

	if book.PageCount == 0 {
		score -= 20
	} else {
		score += 10
	}

	score += Similarity(queryLower, titleLower) * 100

	if strings.HasPrefix(titleLower, queryLower) {
		score += 20
	}

	if book.CoverURL != "" {
		score += 10
	}

	// Prefer local-language records for the local catalog.
	if containsTurkishChar(book.Title) || containsTurkishChar(book.Author) {
		score += 20
	}

	if book.Source == SourceKitapyurdu {
		score += 30
	}

	if containsAny(titleLower, nonBookKeywords) {
		score -= 40
	}

	if containsAny(authorLower, genericAuthorTokens) {
		score -= 15
	}

	return score
}

// Rank sanitizes, scores, sorts and filters a deduplicated candidate list.
// The sort is stable so merge-order ties keep their relative position, and
// candidates with a score of zero or less are dropped.
func Rank(query string, books []Book) []Book {
	ranked := make([]Book, 0, len(books))
	for _, book := range books {
		book.Summary = SanitizeSummary(book.Summary)
		book.Score = ScoreBook(query, book)
		ranked = append(ranked, book)
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	filtered := ranked[:0]
	for _, book := range ranked {
		if book.Score > 0 {
			filtered = append(filtered, book)
		}
	}
	return filtered
}

func containsAny(s string, tokens []string) bool {
	for _, token := range tokens {
		if strings.Contains(s, token) {
			return true
		}
	}
	return false
}

func containsTurkishChar(s string) bool {
	for _, r := range s {
		for _, tr := range turkishChars {
			if r == tr {
				return true
			}
		}
	}
	return false
}
