// Package extraction turns stored documents into plain text for analysis.
package extraction

import (
	"fmt"

	"code.sajari.com/docconv/v2"
)

// Extractor produces the plain text of a stored document. Any failure is an
// extraction error: the pipeline logs it and excludes the document from
// analysis rather than aborting the run.
type Extractor interface {
	Extract(path string) (string, error)
}

// Error represents a document that could not be converted to text.
type Error struct {
	Path  string
	Cause error
}

func (e *Error) Error() string {
	return fmt.Sprintf("extraction error for %s: %v", e.Path, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// PDFExtractor extracts text from PDF files via docconv.
type PDFExtractor struct{}

// Extract returns the text content of the PDF at path.
func (PDFExtractor) Extract(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", &Error{Path: path, Cause: err}
	}
	return res.Body, nil
}
