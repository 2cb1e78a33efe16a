package fileutil

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
)

const defaultCoverMaxWidth = 500

// CoverDownloadOptions holds options for downloading a cover image.
type CoverDownloadOptions struct {
	// URL is the source URL of the cover image
	URL string
	// OutputDir is the directory the attachments folder lives under
	OutputDir string
	// Filename is the cover file name, e.g. "Title - cover.jpg"
	Filename string
	// MaxWidth caps the saved image width; wider covers are resized down
	MaxWidth int
	// Overwrite forces re-downloading even if the cover exists
	Overwrite bool
}

// CoverDownloadResult describes where a cover ended up.
type CoverDownloadResult struct {
	Downloaded   bool
	LocalPath    string
	RelativePath string
}

// DownloadCover fetches a cover image into the attachments directory,
// resizing it down to MaxWidth when the source is wider. An empty URL is
// a no-op; an existing file is kept unless Overwrite is set.
func DownloadCover(opts CoverDownloadOptions) (*CoverDownloadResult, error) {
	if opts.URL == "" {
		return nil, nil
	}
	if opts.MaxWidth <= 0 {
		opts.MaxWidth = defaultCoverMaxWidth
	}

	attachmentsDir := filepath.Join(opts.OutputDir, "attachments")
	if err := os.MkdirAll(attachmentsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create attachments directory: %w", err)
	}

	result := &CoverDownloadResult{
		LocalPath:    filepath.Join(attachmentsDir, opts.Filename),
		RelativePath: filepath.Join("attachments", opts.Filename),
	}

	if FileExists(result.LocalPath) && !opts.Overwrite {
		slog.Debug("Cover already exists, skipping download", "path", result.LocalPath)
		return result, nil
	}

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Get(opts.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to download cover: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d downloading cover from %s", resp.StatusCode, opts.URL)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode cover image: %w", err)
	}

	if img.Bounds().Dx() > opts.MaxWidth {
		img = imaging.Resize(img, opts.MaxWidth, 0, imaging.Lanczos)
	}

	if err := imaging.Save(img, result.LocalPath, imaging.JPEGQuality(85)); err != nil {
		return nil, fmt.Errorf("failed to save cover image: %w", err)
	}

	slog.Info("Downloaded cover", "path", result.LocalPath)
	result.Downloaded = true
	return result, nil
}

// CoverFilename builds the standard cover filename for a book title.
func CoverFilename(title string) string {
	return SanitizeFilename(title) + " - cover.jpg"
}
