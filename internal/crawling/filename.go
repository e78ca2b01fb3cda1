package crawling

import (
	"net/url"
	"path"
	"regexp"

	"github.com/jonathan/archive-analyst/internal/types"
)

// invalidFilenameChars matches everything except word characters, hyphens
// and dots.
var invalidFilenameChars = regexp.MustCompile(`[^\w\-.]`)

// NewDocumentRef derives a DocumentRef from a resolved document URL. The
// filename is the last path segment with every invalid character replaced by
// an underscore. URLs that yield no usable filename are rejected.
func NewDocumentRef(documentURL string) (types.DocumentRef, error) {
	parsed, err := url.Parse(documentURL)
	if err != nil {
		return types.DocumentRef{}, &FilenameError{URL: documentURL, Message: "unparseable URL"}
	}

	name := path.Base(parsed.Path)
	if name == "." || name == "/" || name == "" {
		return types.DocumentRef{}, &FilenameError{URL: documentURL, Message: "URL path has no filename"}
	}

	name = invalidFilenameChars.ReplaceAllString(name, "_")
	return types.DocumentRef{URL: documentURL, Filename: name}, nil
}
