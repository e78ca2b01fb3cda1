package crawling

import (
	"context"
	"fmt"
	"io"

	"github.com/jonathan/archive-analyst/internal/fetch"
	"github.com/jonathan/archive-analyst/internal/types"
)

// PageFetcher retrieves the HTML of an index page.
type PageFetcher interface {
	Page(ctx context.Context, url string) (*fetch.Result, error)
}

// Downloader saves a remote document under a local filename.
type Downloader interface {
	Download(ctx context.Context, url string, filename string) error
}

// WaitLimiter gates requests to the archive host. One limiter is shared
// between page fetches and document downloads so the total request rate
// stays within the intended budget.
type WaitLimiter interface {
	Wait(ctx context.Context) error
}

// Crawler walks a paginated archive index breadth-first, downloading every
// document it discovers exactly once. Visited pages and downloaded document
// URLs are tracked for the lifetime of one Crawl call; resume safety across
// runs comes from the pre-seeded set of existing local filenames.
type Crawler struct {
	fetcher    PageFetcher
	downloader Downloader
	rules      LinkRules
	limiter    WaitLimiter
	existing   map[string]bool
	log        io.Writer
}

// Option configures a Crawler.
type Option func(*Crawler)

// WithRules overrides the default archive link rules.
func WithRules(rules LinkRules) Option {
	return func(c *Crawler) { c.rules = rules }
}

// WithLimiter sets the shared host rate limiter.
func WithLimiter(limiter WaitLimiter) Option {
	return func(c *Crawler) { c.limiter = limiter }
}

// WithExistingFiles seeds the downloaded set from filenames already present
// in the local store.
func WithExistingFiles(filenames []string) Option {
	return func(c *Crawler) {
		for _, name := range filenames {
			c.existing[name] = true
		}
	}
}

// WithLog directs progress output to w. Defaults to discarding output.
func WithLog(w io.Writer) Option {
	return func(c *Crawler) { c.log = w }
}

// NewCrawler creates a Crawler driving the given fetcher and downloader.
func NewCrawler(fetcher PageFetcher, downloader Downloader, opts ...Option) *Crawler {
	c := &Crawler{
		fetcher:    fetcher,
		downloader: downloader,
		rules:      DefaultRules(),
		existing:   make(map[string]bool),
		log:        io.Discard,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Crawl traverses the index starting from seed and returns the documents
// actually saved in this run, along with skip-rate statistics. Page fetch
// failures abandon that page only; download failures skip that document
// only. The traversal terminates once no unvisited pagination links remain.
func (c *Crawler) Crawl(ctx context.Context, seed string) ([]types.DocumentRef, *types.HarvestStats, error) {
	if seed == "" {
		return nil, nil, &CrawlError{Message: "no seed URL provided"}
	}

	stats := &types.HarvestStats{}

	queue := []string{seed}
	queued := map[string]bool{seed: true}
	visited := make(map[string]bool)
	downloadedURLs := make(map[string]bool)

	// claimedNames maps each local filename to the document URL that owns
	// it; filenames found on disk at startup are owned by no URL.
	claimedNames := make(map[string]string)
	for name := range c.existing {
		claimedNames[name] = ""
	}

	var saved []types.DocumentRef

	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return saved, stats, err
		}

		page := queue[0]
		queue = queue[1:]
		if visited[page] {
			continue
		}
		visited[page] = true
		stats.PagesVisited++

		fmt.Fprintf(c.log, "Visiting page: %s\n", page)

		if err := c.wait(ctx); err != nil {
			return saved, stats, err
		}
		result, err := c.fetcher.Page(ctx, page)
		if err != nil {
			fmt.Fprintf(c.log, "Warning: failed to fetch page %s: %v\n", page, err)
			stats.PagesFailed++
			continue
		}

		links, err := ExtractLinks(result.HTML, page, c.rules)
		if err != nil {
			fmt.Fprintf(c.log, "Warning: failed to extract links from %s: %v\n", page, err)
			stats.PagesFailed++
			continue
		}

		for _, docURL := range links.Documents {
			if err := ctx.Err(); err != nil {
				return saved, stats, err
			}
			if downloadedURLs[docURL] {
				continue
			}

			ref, err := NewDocumentRef(docURL)
			if err != nil {
				fmt.Fprintf(c.log, "Warning: skipping document: %v\n", err)
				stats.DownloadsFailed++
				continue
			}

			if owner, claimed := claimedNames[ref.Filename]; claimed {
				downloadedURLs[docURL] = true
				if owner == "" {
					// Already on disk from a previous run.
					fmt.Fprintf(c.log, "Skipping already downloaded: %s\n", ref.Filename)
					stats.SkippedExisting++
				} else if owner != docURL {
					// Two distinct URLs sanitize to the same name;
					// the later one is treated as a duplicate.
					fmt.Fprintf(c.log, "Warning: filename collision for %s: %s already claimed by %s\n",
						ref.Filename, ref.Filename, owner)
					stats.DuplicateNames++
				}
				continue
			}

			if err := c.wait(ctx); err != nil {
				return saved, stats, err
			}
			fmt.Fprintf(c.log, "Downloading: %s\n", ref.Filename)
			if err := c.downloader.Download(ctx, docURL, ref.Filename); err != nil {
				fmt.Fprintf(c.log, "Warning: failed to download %s: %v\n", docURL, err)
				stats.DownloadsFailed++
				continue
			}

			claimedNames[ref.Filename] = docURL
			downloadedURLs[docURL] = true
			stats.Downloaded++
			saved = append(saved, ref)
			fmt.Fprintf(c.log, "Successfully downloaded: %s\n", ref.Filename)
		}

		for _, pageURL := range links.Pages {
			if !visited[pageURL] && !queued[pageURL] {
				queued[pageURL] = true
				queue = append(queue, pageURL)
			}
		}
	}

	return saved, stats, nil
}

func (c *Crawler) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	return c.limiter.Wait(ctx)
}
