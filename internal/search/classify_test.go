package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		wantKind QueryKind
		wantISBN string
	}{
		{
			name:     "13 digit ISBN",
			raw:      "9786055422950",
			wantKind: KindISBN,
			wantISBN: "9786055422950",
		},
		{
			name:     "10 digit ISBN",
			raw:      "6055422956",
			wantKind: KindISBN,
			wantISBN: "6055422956",
		},
		{
			name:     "hyphenated ISBN",
			raw:      "978-605-5422-95-0",
			wantKind: KindISBN,
			wantISBN: "9786055422950",
		},
		{
			name:     "ISBN with spaces",
			raw:      "978 6055422950",
			wantKind: KindISBN,
			wantISBN: "9786055422950",
		},
		{
			name:     "free text",
			raw:      "Harry Potter",
			wantKind: KindFreeText,
		},
		{
			name:     "digits of wrong length",
			raw:      "12345",
			wantKind: KindFreeText,
		},
		{
			name:     "mixed digits and letters",
			raw:      "1984 George Orwell",
			wantKind: KindFreeText,
		},
		{
			name:     "empty query",
			raw:      "",
			wantKind: KindFreeText,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			query := Classify(tc.raw)
			require.Equal(t, tc.raw, query.Raw)
			require.Equal(t, tc.wantKind, query.Kind)
			require.Equal(t, tc.wantISBN, query.ISBN)
		})
	}
}
