// Package signal turns one fetched competitor page into an ArticleSignal.
package signal

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"SEOAgent/internal/domain"
	"SEOAgent/internal/scanner"
)

const (
	maxHeadingRunes     = 100
	maxDescriptionRunes = 200

	headingSelector     = "h1, h2, h3"
	mainContentSelector = "article, .content, .post-content, main"
)

// Extractor matches page text against a fixed keyword dictionary.
type Extractor struct {
	keywords []string
	lowered  []string
}

// NewExtractor copies the dictionary; order is preserved in the extracted keyword set.
func NewExtractor(keywords []string) *Extractor {
	e := &Extractor{
		keywords: make([]string, len(keywords)),
		lowered:  make([]string, len(keywords)),
	}
	copy(e.keywords, keywords)
	for i, kw := range keywords {
		e.lowered[i] = strings.ToLower(kw)
	}
	return e
}

// Extract builds a signal from doc. It returns domain.ErrParseEmpty when no title is found.
func (e *Extractor) Extract(doc scanner.Document, sourceURL, competitor string) (domain.ArticleSignal, error) {
	title := firstNonEmpty(
		func() string { return firstText(doc, "h1") },
		func() string { return firstText(doc, "title") },
		func() string { return firstAttr(doc, `meta[property="og:title"]`, "content") },
	)
	if title == "" {
		return domain.ArticleSignal{}, domain.ErrParseEmpty
	}

	description := firstNonEmpty(
		func() string { return firstAttr(doc, `meta[name="description"]`, "content") },
		func() string { return firstAttr(doc, `meta[property="og:description"]`, "content") },
		func() string { return truncateRunes(firstText(doc, "p"), maxDescriptionRunes) },
	)

	var headings []string
	for _, h := range doc.FindAll(headingSelector) {
		text := strings.TrimSpace(h.Text())
		if text != "" && utf8.RuneCountInString(text) < maxHeadingRunes {
			headings = append(headings, text)
		}
	}

	body := bodyText(doc)

	return domain.ArticleSignal{
		SourceURL:        sourceURL,
		Title:            title,
		Description:      description,
		Headings:         headings,
		Keywords:         e.Keywords(body),
		WordCount:        WordCount(body),
		SourceCompetitor: competitor,
	}, nil
}

// Keywords returns the dictionary entries found in text, case-insensitively, without duplicates.
func (e *Extractor) Keywords(text string) []string {
	lower := strings.ToLower(text)
	seen := make(map[string]struct{}, len(e.keywords))
	var found []string
	for i, kw := range e.lowered {
		if kw == "" || !strings.Contains(lower, kw) {
			continue
		}
		if _, dup := seen[kw]; dup {
			continue
		}
		seen[kw] = struct{}{}
		found = append(found, e.keywords[i])
	}
	return found
}

// WordCount counts the non-whitespace characters of text.
func WordCount(text string) int {
	n := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// bodyText concatenates the main content containers, falling back to the whole body.
func bodyText(doc scanner.Document) string {
	var b strings.Builder
	for _, n := range doc.FindAll(mainContentSelector) {
		b.WriteString(n.Text())
	}
	if b.Len() > 0 {
		return b.String()
	}
	return firstText(doc, "body")
}

func firstText(doc scanner.Document, selector string) string {
	n, ok := doc.FindFirst(selector)
	if !ok {
		return ""
	}
	return strings.TrimSpace(n.Text())
}

func firstAttr(doc scanner.Document, selector, attr string) string {
	n, ok := doc.FindFirst(selector)
	if !ok {
		return ""
	}
	v, _ := n.Attr(attr)
	return strings.TrimSpace(v)
}

func firstNonEmpty(sources ...func() string) string {
	for _, src := range sources {
		if v := src(); v != "" {
			return v
		}
	}
	return ""
}

func truncateRunes(s string, limit int) string {
	if utf8.RuneCountInString(s) <= limit {
		return s
	}
	return string([]rune(s)[:limit])
}
