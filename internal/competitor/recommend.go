package competitor

import (
	"fmt"
	"math"
	"strings"

	"SEOAgent/internal/domain"
)

const (
	volumeThreshold       = 50
	keywordCountThreshold = 3
	headingThreshold      = 5.0
	wordCountThreshold    = 1000.0
)

// Recommend derives content advice from aggregate statistics of a crawl.
// The general recommendations are always appended.
func Recommend(articles []domain.ArticleSignal, top []domain.KeywordCount, general []string) []string {
	var recs []string

	if len(articles) > volumeThreshold {
		recs = append(recs, "Competitor publishes a large volume of content; scale the blog to 100+ articles")
	}

	var hot []string
	for _, kw := range top {
		if kw.Count >= keywordCountThreshold {
			hot = append(hot, kw.Keyword)
		}
	}
	if len(hot) > 0 {
		recs = append(recs, fmt.Sprintf("Frequent keywords: %s; cover them in upcoming articles", strings.Join(hot, ", ")))
	}

	if len(articles) > 0 {
		var headings, words int
		for _, a := range articles {
			headings += len(a.Headings)
			words += a.WordCount
		}
		n := float64(len(articles))

		if float64(headings)/n > headingThreshold {
			recs = append(recs, "Competitor articles are well structured; use 5-10 H2/H3 headings per article")
		}
		if avg := float64(words) / n; avg > wordCountThreshold {
			recs = append(recs, fmt.Sprintf("Competitor articles average %d characters; write at least 1000 per article", int(math.Round(avg))))
		}
	}

	return append(recs, general...)
}
