package crawling

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/archive-analyst/internal/fetch"
)

// fakeFetcher serves canned HTML per URL and records fetch order.
type fakeFetcher struct {
	pages   map[string]string
	fetched []string
}

func (f *fakeFetcher) Page(_ context.Context, url string) (*fetch.Result, error) {
	f.fetched = append(f.fetched, url)
	html, ok := f.pages[url]
	if !ok {
		return nil, &fetch.Error{URL: url, Message: "HTTP status 404"}
	}
	return &fetch.Result{URL: url, HTML: html, StatusCode: 200}, nil
}

// fakeDownloader records downloads and fails URLs listed in failing.
type fakeDownloader struct {
	downloads []string
	filenames []string
	failing   map[string]bool
}

func (d *fakeDownloader) Download(_ context.Context, url string, filename string) error {
	if d.failing[url] {
		return fmt.Errorf("connection reset")
	}
	d.downloads = append(d.downloads, url)
	d.filenames = append(d.filenames, filename)
	return nil
}

const seedURL = "https://archive.example.com/releases"

func pageHTML(docs []string, next string) string {
	html := "<html><body>"
	for _, d := range docs {
		html += fmt.Sprintf(`<a href="%s">doc</a>`, d)
	}
	if next != "" {
		html += fmt.Sprintf(`<div class="pagination"><a href="%s">next</a></div>`, next)
	}
	return html + "</body></html>"
}

func TestCrawl_PaginationCycle(t *testing.T) {
	// Seed lists 3 PDFs and a next page; page 2 lists 1 new PDF and links
	// back to the seed. The cycle must not cause revisits or re-downloads.
	fetcher := &fakeFetcher{pages: map[string]string{
		seedURL: pageHTML(
			[]string{"/files/a.pdf", "/files/b.pdf", "/files/c.pdf"},
			"/releases?page=1",
		),
		seedURL + "?page=1": pageHTML(
			[]string{"/files/d.pdf", "/files/a.pdf"},
			"/releases",
		),
	}}
	downloader := &fakeDownloader{}

	saved, stats, err := NewCrawler(fetcher, downloader).Crawl(context.Background(), seedURL)
	require.NoError(t, err)

	assert.Len(t, fetcher.fetched, 2, "each page fetched at most once")
	assert.Equal(t, 2, stats.PagesVisited)
	assert.Equal(t, 4, stats.Downloaded)
	require.Len(t, saved, 4)
	assert.Equal(t, []string{"a.pdf", "b.pdf", "c.pdf", "d.pdf"}, downloader.filenames)
}

func TestCrawl_ResumeSafety(t *testing.T) {
	// A pre-populated local store means zero new downloads on re-crawl.
	fetcher := &fakeFetcher{pages: map[string]string{
		seedURL: pageHTML([]string{"/files/a.pdf", "/files/b.pdf"}, ""),
	}}
	downloader := &fakeDownloader{}

	crawler := NewCrawler(fetcher, downloader, WithExistingFiles([]string{"a.pdf", "b.pdf"}))
	saved, stats, err := crawler.Crawl(context.Background(), seedURL)
	require.NoError(t, err)

	assert.Empty(t, saved)
	assert.Empty(t, downloader.downloads)
	assert.Equal(t, 0, stats.Downloaded)
	assert.Equal(t, 2, stats.SkippedExisting)
}

func TestCrawl_PageFetchFailureAbandonsPageOnly(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		seedURL: pageHTML([]string{"/files/a.pdf"}, "/releases?page=broken"),
		// page=broken is not in the map, so fetching it fails.
	}}
	downloader := &fakeDownloader{}

	saved, stats, err := NewCrawler(fetcher, downloader).Crawl(context.Background(), seedURL)
	require.NoError(t, err)

	assert.Len(t, saved, 1)
	assert.Equal(t, 2, stats.PagesVisited)
	assert.Equal(t, 1, stats.PagesFailed)
}

func TestCrawl_DownloadFailureSkipsDocumentOnly(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		seedURL: pageHTML([]string{"/files/a.pdf", "/files/b.pdf"}, ""),
	}}
	downloader := &fakeDownloader{failing: map[string]bool{
		"https://archive.example.com/files/a.pdf": true,
	}}

	saved, stats, err := NewCrawler(fetcher, downloader).Crawl(context.Background(), seedURL)
	require.NoError(t, err)

	require.Len(t, saved, 1)
	assert.Equal(t, "b.pdf", saved[0].Filename)
	assert.Equal(t, 1, stats.Downloaded)
	assert.Equal(t, 1, stats.DownloadsFailed)
}

func TestCrawl_FilenameCollisionSkipsLaterDocument(t *testing.T) {
	fetcher := &fakeFetcher{pages: map[string]string{
		seedURL: pageHTML([]string{"/a/memo(1).pdf", "/b/memo[1].pdf"}, ""),
	}}
	downloader := &fakeDownloader{}

	saved, stats, err := NewCrawler(fetcher, downloader).Crawl(context.Background(), seedURL)
	require.NoError(t, err)

	require.Len(t, saved, 1)
	assert.Equal(t, 1, stats.Downloaded)
	assert.Equal(t, 1, stats.DuplicateNames)
	assert.Equal(t, []string{"memo_1_.pdf"}, downloader.filenames)
}

func TestCrawl_EmptySeed(t *testing.T) {
	_, _, err := NewCrawler(&fakeFetcher{}, &fakeDownloader{}).Crawl(context.Background(), "")
	require.Error(t, err)

	var crawlErr *CrawlError
	assert.ErrorAs(t, err, &crawlErr)
}

func TestCrawl_ContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fetcher := &fakeFetcher{pages: map[string]string{
		seedURL: pageHTML([]string{"/files/a.pdf"}, ""),
	}}
	_, _, err := NewCrawler(fetcher, &fakeDownloader{}).Crawl(ctx, seedURL)
	assert.ErrorIs(t, err, context.Canceled)
}
