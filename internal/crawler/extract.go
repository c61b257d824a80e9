package crawler

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// noiseTags are removed outright before text extraction.
var noiseTags = []string{
	"script", "style", "nav", "footer", "header", "aside",
	"form", "button", "iframe", "noscript", "svg", "path",
	"meta", "link",
}

// noiseAttrPattern matches class or id values that mark navigation, banner
// and other boilerplate containers.
var noiseAttrPattern = regexp.MustCompile(`(?i)nav|footer|header|sidebar|menu|cookie|banner|advertisement|ad-|social|share|breadcrumb|pagination|comment|related|popup|modal`)

// hiddenStylePattern matches inline styles that hide an element.
var hiddenStylePattern = regexp.MustCompile(`(?i)display:\s*none|visibility:\s*hidden`)

// mainSelectors are tried in order to locate the main content region before
// falling back to body and then the whole document.
var mainSelectors = []string{"main", "article", `[role="main"]`, ".content", "#content", ".main"}

var spaceRuns = regexp.MustCompile(`\s+`)

// removeNoise strips noise tags, elements whose class or id matches a noise
// pattern, and hidden elements from the document in place.
func removeNoise(doc *goquery.Document) {
	doc.Find(strings.Join(noiseTags, ", ")).Remove()

	doc.Find("*").Each(func(_ int, s *goquery.Selection) {
		class, _ := s.Attr("class")
		id, _ := s.Attr("id")
		if (class != "" && noiseAttrPattern.MatchString(class)) ||
			(id != "" && noiseAttrPattern.MatchString(id)) {
			s.Remove()
		}
	})

	doc.Find("[style]").Each(func(_ int, s *goquery.Selection) {
		style, _ := s.Attr("style")
		if hiddenStylePattern.MatchString(style) {
			s.Remove()
		}
	})

	doc.Find(`[aria-hidden="true"]`).Remove()
}

// extractText returns the visible text of the first matching main-content
// region, falling back to the body and then the entire document. Text nodes
// are trimmed and joined with single spaces.
func extractText(doc *goquery.Document) string {
	var region *goquery.Selection
	for _, selector := range mainSelectors {
		if m := doc.Find(selector).First(); m.Length() > 0 {
			region = m
			break
		}
	}
	if region == nil {
		if body := doc.Find("body").First(); body.Length() > 0 {
			region = body
		} else {
			region = doc.Selection
		}
	}

	text := visibleText(region)
	return strings.TrimSpace(spaceRuns.ReplaceAllString(text, " "))
}

// visibleText walks the selection's text nodes, trimming each and joining
// them with single spaces so adjacent elements never run together.
func visibleText(s *goquery.Selection) string {
	var parts []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if t := strings.TrimSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	for _, node := range s.Nodes {
		walk(node)
	}
	return strings.Join(parts, " ")
}

// extractTitle resolves the page title: <title> text, then the first <h1>,
// then the og:title meta content, then the URL itself.
func extractTitle(doc *goquery.Document, pageURL string) string {
	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		title = strings.TrimSpace(doc.Find("h1").First().Text())
	}
	if title == "" {
		if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
			title = strings.TrimSpace(og)
		}
	}
	if title == "" {
		title = pageURL
	}
	return strings.TrimSpace(spaceRuns.ReplaceAllString(title, " "))
}
