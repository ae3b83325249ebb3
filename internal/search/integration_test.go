package search_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/libris/internal/search"
	"github.com/lepinkainen/libris/internal/sources/applebooks"
	"github.com/lepinkainen/libris/internal/sources/googlebooks"
	"github.com/lepinkainen/libris/internal/sources/kitapyurdu"
	"github.com/lepinkainen/libris/internal/sources/openlibrary"
)

// newTestAggregator wires all four real connectors against httptest
// servers so the full pipeline runs without the network.
func newTestAggregator(t *testing.T, google, openLib, itunes, store *httptest.Server) *search.Aggregator {
	t.Helper()
	return search.NewAggregator(
		googlebooks.NewClient(
			googlebooks.WithBaseURL(google.URL),
			googlebooks.WithHTTPClient(google.Client()),
		),
		openlibrary.NewClient(
			openlibrary.WithBaseURL(openLib.URL),
			openlibrary.WithHTTPClient(openLib.Client()),
		),
		applebooks.NewClient(
			applebooks.WithBaseURL(itunes.URL),
			applebooks.WithHTTPClient(itunes.Client()),
		),
		kitapyurdu.NewClient(
			kitapyurdu.WithBaseURL(store.URL),
			kitapyurdu.WithHTTPClient(store.Client()),
		),
	)
}

func emptyJSONServer(t *testing.T, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func emptyStorefrontServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html><body></body></html>"))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestEndToEndISBNQuery(t *testing.T) {
	const isbn = "9786055422950"

	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "isbn:"+isbn, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = fmt.Fprintf(w, `{
			"totalItems": 1,
			"items": [{
				"volumeInfo": {
					"title": "Hayvan Çiftliği",
					"authors": ["George Orwell"],
					"publisher": "Can Yayınları",
					"publishedDate": "2010",
					"description": "Bir çiftlikte geçen alegorik roman.",
					"pageCount": 152,
					"industryIdentifiers": [
						{"type": "ISBN_10", "identifier": "6055422956"},
						{"type": "ISBN_13", "identifier": "%s"}
					],
					"imageLinks": {"thumbnail": "https://example.com/hc.jpg"},
					"infoLink": "https://books.example.com/hc"
				}
			}]
		}`, isbn)
	}))
	t.Cleanup(google.Close)

	openLib := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, isbn, r.URL.Query().Get("q"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"docs": []}`))
	}))
	t.Cleanup(openLib.Close)

	itunes := emptyJSONServer(t, `{"results": []}`)
	store := emptyStorefrontServer(t)

	results := newTestAggregator(t, google, openLib, itunes, store).
		Search(context.Background(), isbn)

	require.Len(t, results, 1)
	require.Equal(t, "Hayvan Çiftliği", results[0].Title)
	require.Equal(t, isbn, results[0].ISBN)
	require.Greater(t, results[0].Score, 0.0)
}

func TestEndToEndCorporateAuthorFiltered(t *testing.T) {
	google := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"totalItems": 2,
			"items": [
				{"volumeInfo": {
					"title": "Harry Potter ve Felsefe Taşı",
					"authors": ["J.K. Rowling"],
					"pageCount": 276,
					"imageLinks": {"thumbnail": "https://example.com/hp.jpg"}
				}},
				{"volumeInfo": {
					"title": "Harry Potter: The Film Vault",
					"authors": ["Warner Bros Staff"],
					"pageCount": 0,
					"imageLinks": {"thumbnail": "https://example.com/vault.jpg"}
				}}
			]
		}`))
	}))
	t.Cleanup(google.Close)

	openLib := emptyJSONServer(t, `{"docs": []}`)
	itunes := emptyJSONServer(t, `{"results": []}`)
	store := emptyStorefrontServer(t)

	results := newTestAggregator(t, google, openLib, itunes, store).
		Search(context.Background(), "Harry Potter")

	require.NotEmpty(t, results)
	for _, book := range results {
		require.NotEqual(t, "Warner Bros Staff", book.Author)
	}
	require.Equal(t, "Harry Potter ve Felsefe Taşı", results[0].Title)
}

func TestEndToEndStorefrontBoilerplateSummary(t *testing.T) {
	mux := http.NewServeMux()
	store := httptest.NewServer(mux)
	t.Cleanup(store.Close)

	mux.HandleFunc("/index.php", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "product/search", r.URL.Query().Get("route"))
		require.Equal(t, "Şeker Portakalı", r.URL.Query().Get("filter_name"))
		_, _ = fmt.Fprintf(w, `<html><body>
			<div class="product-cr">
				<div class="name"><a href="%s/product/1"><span>Şeker Portakalı</span></a></div>
				<div class="image"><img src="https://example.com/sp.jpg"></div>
				<div class="author"><span><a><span>José Mauro de Vasconcelos</span></a></span></div>
				<div class="publisher"><span><a><span>Can Yayınları</span></a></span></div>
			</div>
		</body></html>`, store.URL)
	})
	mux.HandleFunc("/product/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body>
			<div id="description_text">Kitapyurdu'ndan bulundu</div>
			<div class="attributes"><table>
				<tr><td>Sayfa Sayısı:</td><td>182</td></tr>
				<tr><td>ISBN:</td><td>978-605-5422-95-0</td></tr>
			</table></div>
		</body></html>`))
	})

	google := emptyJSONServer(t, `{"totalItems": 0}`)
	openLib := emptyJSONServer(t, `{"docs": []}`)
	itunes := emptyJSONServer(t, `{"results": []}`)

	results := newTestAggregator(t, google, openLib, itunes, store).
		Search(context.Background(), "Şeker Portakalı")

	require.Len(t, results, 1)
	require.Equal(t, search.NoSummary, results[0].Summary)
	require.Equal(t, 182, results[0].PageCount)
	require.Equal(t, "9786055422950", results[0].ISBN)
	require.Equal(t, search.SourceKitapyurdu, results[0].Source)
}
