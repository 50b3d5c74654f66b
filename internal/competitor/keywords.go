package competitor

import (
	"cmp"
	"slices"

	"SEOAgent/internal/domain"
)

// RankKeywords counts keyword occurrences across signals and returns at most
// limit entries, descending by count with ties kept in first-seen order.
func RankKeywords(signals []domain.ArticleSignal, limit int) []domain.KeywordCount {
	counts := map[string]int{}
	var order []string

	for _, sig := range signals {
		for _, kw := range sig.Keywords {
			if _, ok := counts[kw]; !ok {
				order = append(order, kw)
			}
			counts[kw]++
		}
	}

	ranked := make([]domain.KeywordCount, 0, len(order))
	for _, kw := range order {
		ranked = append(ranked, domain.KeywordCount{Keyword: kw, Count: counts[kw]})
	}
	slices.SortStableFunc(ranked, func(a, b domain.KeywordCount) int {
		return cmp.Compare(b.Count, a.Count)
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
