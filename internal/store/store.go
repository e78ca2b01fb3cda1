// Package store manages the local document directory and the per-run report
// artifacts directory. A document file's presence is the sole signal that it
// was already downloaded; there is no separate manifest.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// timestampLayout names artifacts so successive runs never overwrite each
// other.
const timestampLayout = "20060102_150405"

// Store locates documents and run artifacts on disk.
type Store struct {
	// DocDir holds one file per downloaded document.
	DocDir string
	// OutDir holds the timestamped JSON and Markdown artifacts.
	OutDir string
}

// New creates a Store over the given directories.
func New(docDir, outDir string) *Store {
	return &Store{DocDir: docDir, OutDir: outDir}
}

// EnsureDirs creates the document and output directories if missing.
func (s *Store) EnsureDirs() error {
	for _, dir := range []string{s.DocDir, s.OutDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// ListDocuments returns the filenames of stored documents with the given
// extension (e.g. ".pdf"), sorted for deterministic processing order.
func (s *Store) ListDocuments(ext string) ([]string, error) {
	entries, err := os.ReadDir(s.DocDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan document directory %s: %w", s.DocDir, err)
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if ext != "" && !strings.EqualFold(filepath.Ext(entry.Name()), ext) {
			continue
		}
		names = append(names, entry.Name())
	}
	sort.Strings(names)
	return names, nil
}

// DocumentPath returns the absolute location of a stored document.
func (s *Store) DocumentPath(filename string) string {
	return filepath.Join(s.DocDir, filename)
}

// AnalysesPath returns the timestamped path for the per-document analyses
// JSON artifact.
func (s *Store) AnalysesPath(now time.Time) string {
	return filepath.Join(s.OutDir, fmt.Sprintf("analyses_%s.json", now.Format(timestampLayout)))
}

// ReportPath returns the timestamped path for the Markdown report artifact.
func (s *Store) ReportPath(now time.Time) string {
	return filepath.Join(s.OutDir, fmt.Sprintf("report_%s.md", now.Format(timestampLayout)))
}
