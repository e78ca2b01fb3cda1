// Package crawling provides breadth-first traversal of a paginated archive
// index, discovering and downloading documents without revisiting pages or
// re-downloading files.
package crawling

import "fmt"

// CrawlError represents a general crawling failure.
type CrawlError struct {
	Message string
	Cause   error
}

func (e *CrawlError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("crawl error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("crawl error: %s", e.Message)
}

func (e *CrawlError) Unwrap() error {
	return e.Cause
}

// LinkExtractionError represents a failure in extracting links from HTML.
type LinkExtractionError struct {
	Message string
	Cause   error
}

func (e *LinkExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("link extraction error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("link extraction error: %s", e.Message)
}

func (e *LinkExtractionError) Unwrap() error {
	return e.Cause
}

// FilenameError represents a document URL that cannot be mapped to a valid
// local filename.
type FilenameError struct {
	URL     string
	Message string
}

func (e *FilenameError) Error() string {
	return fmt.Sprintf("filename error for %s: %s", e.URL, e.Message)
}
