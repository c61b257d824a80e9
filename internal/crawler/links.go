package crawler

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// skipExtensions are binary or non-text resources never worth fetching.
var skipExtensions = []string{".pdf", ".zip", ".jpg", ".jpeg", ".png", ".gif", ".css", ".js"}

// skipPrefixes are href schemes that cannot lead to a crawlable page.
// A bare "#" prefix covers fragment-only links.
var skipPrefixes = []string{"javascript:", "mailto:", "tel:", "#"}

// extractLinks collects candidate crawl targets from the page's anchors:
// resolved to absolute form against the page URL, fragment stripped, trailing
// slashes removed, restricted to the base host over http(s), and
// de-duplicated in discovery order. De-duplication against visited and
// queued URLs happens in the crawl loop.
func (c *Crawler) extractLinks(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		return nil
	}

	seen := make(map[string]struct{})
	var links []string

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		for _, prefix := range skipPrefixes {
			if strings.HasPrefix(href, prefix) {
				return
			}
		}

		resolved, err := base.Parse(href)
		if err != nil {
			return
		}
		resolved.Fragment = ""
		candidate := strings.TrimRight(resolved.String(), "/")

		if !c.isValidLink(candidate) {
			return
		}
		if _, dup := seen[candidate]; dup {
			return
		}
		seen[candidate] = struct{}{}
		links = append(links, candidate)
	})

	return links
}

// isValidLink restricts crawling to same-host http(s) URLs that do not point
// at binary or stylesheet resources.
func (c *Crawler) isValidLink(link string) bool {
	lower := strings.ToLower(link)
	for _, ext := range skipExtensions {
		if strings.HasSuffix(lower, ext) {
			return false
		}
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	return parsed.Host == c.base.Host
}
