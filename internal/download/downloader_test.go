package download

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStreamFetcher returns a fixed body, optionally failing partway.
type fakeStreamFetcher struct {
	body    string
	openErr error
	readErr error
}

type failingReader struct {
	io.Reader
	err error
}

func (r *failingReader) Read(p []byte) (int, error) {
	n, err := r.Reader.Read(p)
	if err == io.EOF && r.err != nil {
		return n, r.err
	}
	return n, err
}

func (f *fakeStreamFetcher) Stream(_ context.Context, _ string) (io.ReadCloser, error) {
	if f.openErr != nil {
		return nil, f.openErr
	}
	var reader io.Reader = strings.NewReader(f.body)
	if f.readErr != nil {
		reader = &failingReader{Reader: reader, err: f.readErr}
	}
	return io.NopCloser(reader), nil
}

func TestDownload_WritesFile(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeStreamFetcher{body: "%PDF-1.4 content"}

	err := New(fetcher, dir).Download(context.Background(), "https://archive.example.com/a.pdf", "a.pdf")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "a.pdf"))
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 content", string(data))
}

func TestDownload_OpenFailureLeavesNoFile(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeStreamFetcher{openErr: io.ErrUnexpectedEOF}

	err := New(fetcher, dir).Download(context.Background(), "https://archive.example.com/a.pdf", "a.pdf")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestDownload_ReadFailureLeavesNoPartialFile(t *testing.T) {
	dir := t.TempDir()
	fetcher := &fakeStreamFetcher{body: "partial conten", readErr: io.ErrUnexpectedEOF}

	err := New(fetcher, dir).Download(context.Background(), "https://archive.example.com/a.pdf", "a.pdf")
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "failed download must not leave files behind")
}

func TestDownload_OverwritesNothingElse(t *testing.T) {
	dir := t.TempDir()
	other := filepath.Join(dir, "other.pdf")
	require.NoError(t, os.WriteFile(other, []byte("keep"), 0644))

	fetcher := &fakeStreamFetcher{body: "new"}
	err := New(fetcher, dir).Download(context.Background(), "https://archive.example.com/a.pdf", "a.pdf")
	require.NoError(t, err)

	data, err := os.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(data))
}
