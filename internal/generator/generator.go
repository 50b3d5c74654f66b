package generator

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"SEOAgent/internal/catalog"
	"SEOAgent/internal/domain"
	"SEOAgent/internal/randomness"
	"SEOAgent/internal/slug"
)

const maxBaseSlugRunes = 100

// Generator renders article templates. One Generator serves one run: its
// slug suffix combines the run stamp with a counter, so no two articles it
// produces share a slug.
type Generator struct {
	cat      catalog.Catalog
	rnd      randomness.Source
	now      func() time.Time
	runStamp string
	seq      atomic.Uint64
}

// New builds a generator; rnd and now default to production sources.
func New(cat catalog.Catalog, rnd randomness.Source, now func() time.Time) *Generator {
	if rnd == nil {
		rnd = randomness.New()
	}
	if now == nil {
		now = time.Now
	}
	return &Generator{
		cat:      cat,
		rnd:      rnd,
		now:      now,
		runStamp: strconv.FormatInt(now().UnixMilli(), 36),
	}
}

// RandomTemplate picks a catalog template uniformly.
func (g *Generator) RandomTemplate() (domain.ArticleTemplate, bool) {
	if len(g.cat.Templates) == 0 {
		return domain.ArticleTemplate{}, false
	}
	return randomness.Pick(g.rnd, g.cat.Templates), true
}

// MatchTemplate finds the first template whose keyword contains, or is
// contained in, one of the suggestion's target keywords.
func (g *Generator) MatchTemplate(s domain.ArticleSuggestion) (domain.ArticleTemplate, bool) {
	for _, t := range g.cat.Templates {
		for _, k := range s.TargetKeywords {
			if strings.Contains(t.Keyword, k) || strings.Contains(k, t.Keyword) {
				return t, true
			}
		}
	}
	return domain.ArticleTemplate{}, false
}

// Generate renders tmpl with fresh variant picks. With a seed suggestion, the
// longer of the two titles wins and the suggestion keywords join the tags.
func (g *Generator) Generate(tmpl domain.ArticleTemplate, seed *domain.ArticleSuggestion) domain.GeneratedArticle {
	values := g.values()

	title := fill(tmpl.TitlePattern, values)
	tags := make([]string, 0, len(tmpl.Tags))
	for _, tag := range tmpl.Tags {
		tags = append(tags, fill(tag, values))
	}

	if seed != nil {
		if utf8.RuneCountInString(seed.Title) > utf8.RuneCountInString(title) {
			title = seed.Title
		}
		tags = append(slices.Clone(seed.TargetKeywords), tags...)
	}

	return domain.GeneratedArticle{
		Title:       title,
		Body:        fill(tmpl.BodyPattern, values),
		Description: fill(tmpl.DescriptionPattern, values),
		KeywordTags: dedupe(tags),
		Slug:        g.uniqueSlug(title),
	}
}

func (g *Generator) values() map[string]string {
	v := g.cat.Variants
	platform := randomness.Pick(g.rnd, v.Platforms)
	return map[string]string{
		catalog.TokenYear:          strconv.Itoa(g.now().Year()),
		catalog.TokenEdition:       randomness.Pick(g.rnd, v.Editions),
		catalog.TokenPlatform:      platform,
		catalog.TokenTheme:         randomness.Pick(g.rnd, v.Themes),
		catalog.TokenAudience:      randomness.Pick(g.rnd, v.Audiences),
		catalog.TokenPlatformSteps: g.cat.StepsFor(platform),
	}
}

func (g *Generator) uniqueSlug(title string) string {
	base := slug.Truncate(slug.Normalize(title), maxBaseSlugRunes)
	suffix := fmt.Sprintf("%s-%d", g.runStamp, g.seq.Add(1))
	if base == "" {
		return suffix
	}
	return base + "-" + suffix
}

func fill(pattern string, values map[string]string) string {
	pairs := make([]string, 0, len(values)*2)
	for k, v := range values {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(pattern)
}

func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := make([]string, 0, len(items))
	for _, it := range items {
		if _, ok := seen[it]; ok {
			continue
		}
		seen[it] = struct{}{}
		out = append(out, it)
	}
	return out
}
