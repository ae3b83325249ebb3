package fileutil

import (
	"bytes"
	"image/color"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
)

func coverServer(t *testing.T, width, height int) *httptest.Server {
	t.Helper()
	img := imaging.New(width, height, color.NRGBA{R: 200, G: 120, B: 60, A: 255})
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.JPEG))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "image/jpeg")
		_, _ = w.Write(buf.Bytes())
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestDownloadCover(t *testing.T) {
	srv := coverServer(t, 100, 150)
	dir := t.TempDir()

	path, err := DownloadCover(CoverDownloadOptions{
		URL:       srv.URL,
		OutputDir: dir,
		Filename:  "Deneme - cover.jpg",
	})

	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "Deneme - cover.jpg"), path)

	saved, err := imaging.Open(path)
	require.NoError(t, err)
	require.Equal(t, 100, saved.Bounds().Dx())
}

func TestDownloadCoverResizesWideImages(t *testing.T) {
	srv := coverServer(t, 1200, 1800)
	dir := t.TempDir()

	path, err := DownloadCover(CoverDownloadOptions{
		URL:       srv.URL,
		OutputDir: dir,
		Filename:  "Genis - cover.jpg",
		MaxWidth:  600,
	})

	require.NoError(t, err)
	saved, err := imaging.Open(path)
	require.NoError(t, err)
	require.Equal(t, 600, saved.Bounds().Dx())
}

func TestDownloadCoverEmptyURL(t *testing.T) {
	path, err := DownloadCover(CoverDownloadOptions{OutputDir: t.TempDir()})
	require.NoError(t, err)
	require.Empty(t, path)
}

func TestDownloadCoverSkipsExisting(t *testing.T) {
	srv := coverServer(t, 100, 150)
	dir := t.TempDir()
	existing := filepath.Join(dir, "Var - cover.jpg")
	require.NoError(t, os.WriteFile(existing, []byte("placeholder"), 0644))

	path, err := DownloadCover(CoverDownloadOptions{
		URL:       srv.URL,
		OutputDir: dir,
		Filename:  "Var - cover.jpg",
	})

	require.NoError(t, err)
	require.Equal(t, existing, path)

	// The placeholder was not replaced.
	content, err := os.ReadFile(existing)
	require.NoError(t, err)
	require.Equal(t, []byte("placeholder"), content)
}

func TestDownloadCoverNon200Status(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusGone)
	}))
	t.Cleanup(srv.Close)

	_, err := DownloadCover(CoverDownloadOptions{
		URL:       srv.URL,
		OutputDir: t.TempDir(),
		Filename:  "Yok - cover.jpg",
	})
	require.Error(t, err)
}

func TestCoverFilename(t *testing.T) {
	testCases := []struct {
		title string
		want  string
	}{
		{"Kürk Mantolu Madonna", "Kürk Mantolu Madonna - cover.jpg"},
		{"Aşk/Nefret: Bir Hikâye?", "Aşk-Nefret- Bir Hikâye- - cover.jpg"},
		{"", "cover - cover.jpg"},
	}

	for _, tc := range testCases {
		require.Equal(t, tc.want, CoverFilename(tc.title))
	}
}
