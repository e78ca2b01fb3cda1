// Package download streams remote documents into the local store without
// materializing them in memory.
package download

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// copyBufferSize bounds peak memory per in-flight download.
const copyBufferSize = 32 * 1024

// StreamFetcher opens a remote document for reading.
type StreamFetcher interface {
	Stream(ctx context.Context, url string) (io.ReadCloser, error)
}

// Downloader saves remote documents under a store directory. A failed
// download leaves no partial file behind, so a file's presence is a reliable
// "already downloaded" signal across runs.
type Downloader struct {
	fetcher StreamFetcher
	dir     string
}

// New creates a Downloader writing into dir.
func New(fetcher StreamFetcher, dir string) *Downloader {
	return &Downloader{fetcher: fetcher, dir: dir}
}

// Download streams the document at url into dir/filename. The body is
// written to a temporary file first and renamed into place only on success.
func (d *Downloader) Download(ctx context.Context, url string, filename string) error {
	body, err := d.fetcher.Stream(ctx, url)
	if err != nil {
		return fmt.Errorf("opening %s: %w", url, err)
	}
	defer func() { _ = body.Close() }()

	dest := filepath.Join(d.dir, filename)
	tmp, err := os.CreateTemp(d.dir, filename+".part*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", filename, err)
	}

	buf := make([]byte, copyBufferSize)
	if _, err := io.CopyBuffer(tmp, body, buf); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("writing %s: %w", filename, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("closing %s: %w", filename, err)
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		_ = os.Remove(tmp.Name())
		return fmt.Errorf("moving %s into place: %w", filename, err)
	}
	return nil
}
