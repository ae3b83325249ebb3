// Package fileutil handles local file artifacts, currently cover images.
package fileutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
)

const defaultMaxWidth = 600

// CoverDownloadOptions holds options for downloading cover images.
type CoverDownloadOptions struct {
	// URL is the source URL of the cover image
	URL string
	// OutputDir is the directory where the cover will be saved
	OutputDir string
	// Filename is the name of the cover file (e.g., "Title - cover.jpg")
	Filename string
	// MaxWidth bounds the saved image width; wider images are scaled down
	MaxWidth int
	// Overwrite forces re-downloading even if the cover exists
	Overwrite bool
}

// DownloadCover downloads a cover image, scales it to the configured
// width bound and saves it as JPEG. It returns the local path, or "" when
// no URL was given. An existing file is kept unless Overwrite is set.
func DownloadCover(opts CoverDownloadOptions) (string, error) {
	if opts.URL == "" {
		return "", nil
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = defaultMaxWidth
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create cover directory: %w", err)
	}
	localPath := filepath.Join(opts.OutputDir, opts.Filename)

	if _, err := os.Stat(localPath); err == nil && !opts.Overwrite {
		slog.Debug("Cover already exists, skipping download", "path", localPath)
		return localPath, nil
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(opts.URL)
	if err != nil {
		return "", fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, opts.URL)
	}

	img, err := imaging.Decode(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to decode cover image: %w", err)
	}

	if img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	if err := imaging.Save(img, localPath); err != nil {
		return "", fmt.Errorf("failed to save cover image: %w", err)
	}

	slog.Debug("Cover downloaded", "path", localPath, "width", img.Bounds().Dx())
	return localPath, nil
}

// CoverFilename builds a filesystem-safe cover filename from a book title.
func CoverFilename(title string) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return '-'
		}
		return r
	}, title)
	clean = strings.TrimSpace(clean)
	if clean == "" {
		clean = "cover"
	}
	return clean + " - cover.jpg"
}
