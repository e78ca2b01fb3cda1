package crawling

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// PageLinks holds the links discovered on one index page, resolved against
// the page URL.
type PageLinks struct {
	// Documents are absolute URLs of downloadable documents, in page order,
	// deduplicated.
	Documents []string
	// Pages are absolute URLs of further listing pages on the same host,
	// in page order, deduplicated. The page's own URL is excluded.
	Pages []string
}

// ExtractLinks parses an index page and returns its document and pagination
// links, resolved against baseURL.
func ExtractLinks(htmlContent string, baseURL string, rules LinkRules) (*PageLinks, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, &LinkExtractionError{
			Message: "failed to parse base URL",
			Cause:   err,
		}
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, &LinkExtractionError{
			Message: fmt.Sprintf("invalid base URL: %s (must have scheme and host)", baseURL),
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlContent))
	if err != nil {
		return nil, &LinkExtractionError{
			Message: "failed to parse HTML",
			Cause:   err,
		}
	}

	links := &PageLinks{}

	seen := make(map[string]bool)
	for _, href := range rules.DocumentLinks(doc) {
		resolved, ok := resolveLink(base, href)
		if !ok || seen[resolved] {
			continue
		}
		seen[resolved] = true
		links.Documents = append(links.Documents, resolved)
	}

	seenPages := make(map[string]bool)
	for _, href := range rules.PaginationLinks(doc) {
		resolved, ok := resolveLink(base, href)
		if !ok || seenPages[resolved] {
			continue
		}
		// Pagination stays on the index host; the crawler is not a
		// general web crawler.
		parsed, err := url.Parse(resolved)
		if err != nil || parsed.Host != base.Host {
			continue
		}
		if resolved == baseURL {
			continue
		}
		seenPages[resolved] = true
		links.Pages = append(links.Pages, resolved)
	}

	return links, nil
}

// resolveLink resolves a potentially relative href against a base URL and
// normalizes it by stripping the fragment.
func resolveLink(base *url.URL, href string) (string, bool) {
	if strings.HasPrefix(href, "mailto:") || strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "tel:") || strings.HasPrefix(href, "#") {
		return "", false
	}

	linkURL, err := url.Parse(href)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(linkURL)
	resolved.Fragment = ""
	return resolved.String(), true
}
