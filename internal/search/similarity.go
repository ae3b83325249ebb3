package search

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// Similarity returns a 0–1 Ratcliff/Obershelp ratio between two strings,
// computed character-wise: 2*M/T where M is the total length of matching
// blocks and T is the combined length of both strings.
func Similarity(a, b string) float64 {
	if a == "" && b == "" {
		return 1.0
	}
	matcher := difflib.NewMatcher(chars(a), chars(b))
	return matcher.Ratio()
}

// chars splits a string into single-rune elements so the line-oriented
// SequenceMatcher compares characters, matching difflib's string mode.
func chars(s string) []string {
	return strings.Split(s, "")
}
