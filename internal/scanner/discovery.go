package scanner

import (
	"net/url"
	"strings"
)

const (
	MarkerStrategy   = "markers"
	SelectorStrategy = "selector"
)

// ArticlePathMarkers are the path fragments that identify article links.
var ArticlePathMarkers = []string{"/blog/", "/article/", "/post/", "/news/"}

// MarkerDiscoverer keeps every anchor whose href contains an article path marker.
type MarkerDiscoverer struct{}

func (MarkerDiscoverer) Name() string { return MarkerStrategy }

func (MarkerDiscoverer) Discover(doc Document, req Request) []string {
	return collectLinks(doc.FindAll("a[href]"), req.BaseURL, hasArticleMarker)
}

// SelectorDiscoverer keeps anchors inside the competitor's article containers.
// Falls back to the marker strategy when no selector is configured.
type SelectorDiscoverer struct{}

func (SelectorDiscoverer) Name() string { return SelectorStrategy }

func (SelectorDiscoverer) Discover(doc Document, req Request) []string {
	containers := strings.TrimSpace(req.Competitor.ArticleSelector)
	if containers == "" {
		return MarkerDiscoverer{}.Discover(doc, req)
	}

	var selectors []string
	for _, part := range strings.Split(containers, ",") {
		if part = strings.TrimSpace(part); part != "" {
			selectors = append(selectors, part+" a[href]")
		}
	}
	return collectLinks(doc.FindAll(strings.Join(selectors, ", ")), req.BaseURL, nil)
}

func hasArticleMarker(href string) bool {
	for _, marker := range ArticlePathMarkers {
		if strings.Contains(href, marker) {
			return true
		}
	}
	return false
}

// collectLinks resolves hrefs against base and deduplicates by exact URL, keeping page order.
func collectLinks(anchors []Node, base *url.URL, keep func(string) bool) []string {
	seen := map[string]struct{}{}
	var links []string

	for _, a := range anchors {
		href, ok := a.Attr("href")
		href = strings.TrimSpace(href)
		if !ok || href == "" {
			continue
		}
		if keep != nil && !keep(href) {
			continue
		}

		full, ok := resolve(base, href)
		if !ok {
			continue
		}
		if _, dup := seen[full]; dup {
			continue
		}
		seen[full] = struct{}{}
		links = append(links, full)
	}

	return links
}

func resolve(base *url.URL, href string) (string, bool) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	if base == nil {
		return ref.String(), ref.IsAbs()
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return "", false
	}
	return resolved.String(), true
}
