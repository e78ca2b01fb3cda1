// Package fetch provides HTTP retrieval for archive index pages and document
// byte streams. This package centralizes the fetching logic used by crawling
// and downloading.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// DefaultTimeout is the default HTTP request timeout for page fetches.
const DefaultTimeout = 30 * time.Second

// DefaultUserAgent is the fixed identity header sent with every request.
const DefaultUserAgent = "Mozilla/5.0 (compatible; ArchiveAnalyst/1.0)"

// Result holds the content and response metadata from a page fetch.
type Result struct {
	URL        string
	HTML       string
	StatusCode int
}

// Error represents an error during URL fetching. All fetch errors are
// transient from the pipeline's point of view: the affected page or document
// is skipped and the run continues.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the fetch behavior.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
	}
}

// Fetcher performs HTTP GET requests against the archive host.
type Fetcher struct {
	client  *http.Client
	options *Options
}

// New creates a Fetcher. A nil opts uses DefaultOptions.
func New(opts *Options) *Fetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if opts.Timeout == 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	return &Fetcher{
		// Timeout covers page fetches only; document streams are bounded
		// by the caller reading the body, so the stream client gets no
		// overall deadline.
		client:  &http.Client{Timeout: opts.Timeout},
		options: opts,
	}
}

// Page retrieves the HTML content of an index page.
func (f *Fetcher) Page(ctx context.Context, urlStr string) (*Result, error) {
	resp, err := f.get(ctx, f.client, urlStr)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	return &Result{
		URL:        urlStr,
		HTML:       string(body),
		StatusCode: resp.StatusCode,
	}, nil
}

// Stream opens a document URL for reading without buffering the body in
// memory. The caller must close the returned reader.
func (f *Fetcher) Stream(ctx context.Context, urlStr string) (io.ReadCloser, error) {
	// No overall timeout: large documents may legitimately take longer
	// than a page fetch, and ctx still bounds the request.
	client := &http.Client{Transport: f.client.Transport}
	resp, err := f.get(ctx, client, urlStr)
	if err != nil {
		return nil, err
	}
	return resp.Body, nil
}

// get issues a GET request and verifies the response status.
func (f *Fetcher) get(ctx context.Context, client *http.Client, urlStr string) (*http.Response, error) {
	parsedURL, err := url.Parse(urlStr)
	if err != nil || parsedURL.Scheme == "" || parsedURL.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, urlStr, nil)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", f.options.UserAgent)
	for key, value := range f.options.Headers {
		req.Header.Set(key, value)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_ = resp.Body.Close()
		return nil, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return resp, nil
}
