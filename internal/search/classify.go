package search

import "strings"

// QueryKind tells a connector how to shape its request.
type QueryKind int

const (
	// KindFreeText is a title/author text search.
	KindFreeText QueryKind = iota
	// KindISBN is an identifier lookup.
	KindISBN
)

// Query is the classified form of a raw search string.
type Query struct {
	Raw  string
	Kind QueryKind
	// ISBN holds the digit-only identifier when Kind is KindISBN.
	ISBN string
}

// Classify inspects a raw query and decides whether it is an ISBN lookup.
// Hyphens and spaces are stripped; a remainder of exactly 10 or 13 digits
// classifies as ISBN. There is no failure mode.
func Classify(raw string) Query {
	clean := strings.ReplaceAll(raw, "-", "")
	clean = strings.ReplaceAll(clean, " ", "")

	if isDigits(clean) && (len(clean) == 10 || len(clean) == 13) {
		return Query{Raw: raw, Kind: KindISBN, ISBN: clean}
	}
	return Query{Raw: raw, Kind: KindFreeText}
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
