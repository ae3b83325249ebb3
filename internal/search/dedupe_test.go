package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDedupeFirstSeenWins(t *testing.T) {
	books := []Book{
		{Title: "Tutunamayanlar", Author: "Oğuz Atay", Source: SourceGoogleBooks, PageCount: 724},
		{Title: "tutunamayanlar", Author: "OĞUZ ATAY", Source: SourceOpenLibrary, PageCount: 0},
		{Title: "Tehlikeli Oyunlar", Author: "Oğuz Atay", Source: SourceOpenLibrary},
	}

	deduped := Dedupe(books)

	require.Len(t, deduped, 2)
	require.Equal(t, SourceGoogleBooks, deduped[0].Source)
	require.Equal(t, 724, deduped[0].PageCount)
	require.Equal(t, "Tehlikeli Oyunlar", deduped[1].Title)
}

func TestDedupeKeyIsCoarse(t *testing.T) {
	// Punctuation and whitespace are not normalized, only case.
	books := []Book{
		{Title: "Suç ve Ceza", Author: "Dostoyevski", Source: SourceGoogleBooks},
		{Title: "Suç ve Ceza.", Author: "Dostoyevski", Source: SourceOpenLibrary},
		{Title: "Suç  ve Ceza", Author: "Dostoyevski", Source: SourceAppleBooks},
	}

	require.Len(t, Dedupe(books), 3)
}

func TestDedupeDistinguishesAuthors(t *testing.T) {
	books := []Book{
		{Title: "Dönüşüm", Author: "Franz Kafka", Source: SourceGoogleBooks},
		{Title: "Dönüşüm", Author: "Kafka", Source: SourceOpenLibrary},
	}

	require.Len(t, Dedupe(books), 2)
}

func TestDedupeEmptyInput(t *testing.T) {
	require.Empty(t, Dedupe(nil))
}
