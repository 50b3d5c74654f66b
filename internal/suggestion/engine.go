// Package suggestion turns competitor reports into a prioritized list of
// article topics. It always yields the full topic catalog, so generation keeps
// working when every crawl failed.
package suggestion

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"SEOAgent/internal/catalog"
	"SEOAgent/internal/domain"
	"SEOAgent/internal/slug"
)

const (
	ReasonCovered = "competitor coverage exists"
	ReasonGap     = "keyword gap — opportunity"

	yearToken = "{" + catalog.TokenYear + "}"
)

// Engine cross-references the topic catalog with observed competitor titles.
type Engine struct {
	topics  []catalog.Topic
	outline []string
	now     func() time.Time
}

// NewEngine builds an engine over topics; now defaults to time.Now.
func NewEngine(topics []catalog.Topic, outline []string, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{topics: topics, outline: outline, now: now}
}

// Suggest returns one suggestion per catalog topic, high priority first,
// catalog order within a priority.
func (e *Engine) Suggest(reports []domain.CompetitorReport) []domain.ArticleSuggestion {
	var titles []string
	for _, r := range reports {
		for _, a := range r.Articles {
			titles = append(titles, strings.ToLower(a.Title))
		}
	}

	year := strconv.Itoa(e.now().Year())
	suggestions := make([]domain.ArticleSuggestion, 0, len(e.topics))

	for _, topic := range e.topics {
		title := strings.ReplaceAll(topic.TitlePattern, yearToken, year)

		reason := ReasonGap
		if covered(titles, topic.Keywords) {
			reason = ReasonCovered
		}

		suggestions = append(suggestions, domain.ArticleSuggestion{
			Title:          title,
			Slug:           slug.Normalize(title),
			TargetKeywords: slices.Clone(topic.Keywords),
			Outline:        slices.Clone(e.outline),
			Priority:       topic.Priority,
			Reason:         reason,
		})
	}

	slices.SortStableFunc(suggestions, func(a, b domain.ArticleSuggestion) int {
		return a.Priority.Rank() - b.Priority.Rank()
	})
	return suggestions
}

func covered(titles, keywords []string) bool {
	for _, t := range titles {
		for _, k := range keywords {
			if strings.Contains(t, strings.ToLower(k)) {
				return true
			}
		}
	}
	return false
}
