package search

import "strings"

type dedupeKey struct {
	title  string
	author string
}

// Dedupe collapses candidates that share a lower-cased (title, author)
// pair. The first occurrence in merge order wins. The key is deliberately
// coarse: punctuation and whitespace differences keep records apart.
func Dedupe(books []Book) []Book {
	seen := make(map[dedupeKey]bool, len(books))
	out := make([]Book, 0, len(books))

	for _, book := range books {
		key := dedupeKey{
			title:  strings.ToLower(book.Title),
			author: strings.ToLower(book.Author),
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, book)
	}
	return out
}
