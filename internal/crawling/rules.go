package crawling

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// LinkRules locates document links and pagination links on an index page.
// Rules are host-pluggable: archives with different page structures supply
// their own implementation, and the crawler stays unchanged.
type LinkRules interface {
	// DocumentLinks returns the raw href values of downloadable documents.
	DocumentLinks(doc *goquery.Document) []string
	// PaginationLinks returns the raw href values of links to further
	// pages of the same listing.
	PaginationLinks(doc *goquery.Document) []string
}

// ArchiveRules implements LinkRules for government archive release listings:
// document links are anchors pointing at PDF files, pagination links live
// inside an element with a "pagination" class.
type ArchiveRules struct {
	// DocumentExtension is the lowercase extension document links must
	// carry. Defaults to ".pdf" when empty.
	DocumentExtension string
}

// DefaultRules returns ArchiveRules configured for PDF release listings.
func DefaultRules() *ArchiveRules {
	return &ArchiveRules{DocumentExtension: ".pdf"}
}

// DocumentLinks returns hrefs of anchors whose target ends with the
// configured document extension (case-insensitive).
func (r *ArchiveRules) DocumentLinks(doc *goquery.Document) []string {
	ext := r.DocumentExtension
	if ext == "" {
		ext = ".pdf"
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}
		if strings.HasSuffix(strings.ToLower(href), ext) {
			links = append(links, href)
		}
	})
	return links
}

// PaginationLinks returns hrefs of anchors inside pagination containers.
func (r *ArchiveRules) PaginationLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find(".pagination a[href], .pager a[href]").Each(func(_ int, s *goquery.Selection) {
		href, exists := s.Attr("href")
		if !exists || href == "" {
			return
		}
		links = append(links, href)
	})
	return links
}
