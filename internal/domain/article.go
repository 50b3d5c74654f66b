package domain

import "time"

// CompetitorConfig describes one competitor blog to crawl.
type CompetitorConfig struct {
	Name                string `yaml:"name" json:"name"`
	BaseURL             string `yaml:"baseUrl" json:"baseUrl"`
	ListingPath         string `yaml:"listingPath" json:"listingPath"`
	ArticleSelector     string `yaml:"articleSelector" json:"articleSelector"`
	TitleSelector       string `yaml:"titleSelector" json:"titleSelector"`
	DescriptionSelector string `yaml:"descriptionSelector,omitempty" json:"descriptionSelector,omitempty"`
	DateSelector        string `yaml:"dateSelector,omitempty" json:"dateSelector,omitempty"`
	// Strategy names the link-discovery strategy; empty means "markers".
	Strategy string `yaml:"strategy,omitempty" json:"strategy,omitempty"`
	Enabled  bool   `yaml:"enabled" json:"enabled"`
}

// ArticleSignal is the structured data extracted from one competitor article.
type ArticleSignal struct {
	SourceURL        string   `json:"sourceUrl"`
	Title            string   `json:"title"`
	Description      string   `json:"description,omitempty"`
	Headings         []string `json:"headings"`
	Keywords         []string `json:"keywords"`
	WordCount        int      `json:"wordCount"`
	SourceCompetitor string   `json:"sourceCompetitor"`
}

// KeywordCount is one ranked entry of a report's keyword frequencies.
type KeywordCount struct {
	Keyword string `json:"keyword"`
	Count   int    `json:"count"`
}

// CompetitorReport aggregates the signals of one competitor crawl.
type CompetitorReport struct {
	CompetitorName  string          `json:"competitorName"`
	ScrapedAt       time.Time       `json:"scrapedAt"`
	Articles        []ArticleSignal `json:"articles"`
	TopKeywords     []KeywordCount  `json:"topKeywords"`
	Recommendations []string        `json:"recommendations"`
}

// Priority orders suggestions for generation: high before medium before low.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Rank returns the sort position of the priority; unknown values sort last.
func (p Priority) Rank() int {
	switch p {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// ArticleSuggestion is a proposed article topic.
type ArticleSuggestion struct {
	Title          string   `json:"title"`
	Slug           string   `json:"slug"`
	TargetKeywords []string `json:"targetKeywords"`
	Outline        []string `json:"outline"`
	Priority       Priority `json:"priority"`
	Reason         string   `json:"reason"`
}

// ArticleTemplate is a parameterized article skeleton with {placeholder} tokens.
type ArticleTemplate struct {
	Keyword            string
	TitlePattern       string
	BodyPattern        string
	DescriptionPattern string
	Tags               []string
}

// GeneratedArticle is a rendered article ready for the create gate.
type GeneratedArticle struct {
	Title       string
	Body        string
	Description string
	KeywordTags []string
	Slug        string
}

// PostStatus mirrors the store's publication states.
type PostStatus string

const PostStatusPublished PostStatus = "PUBLISHED"

// Post is the store entity created from a GeneratedArticle.
type Post struct {
	ID              string
	Title           string
	Slug            string
	Body            string
	MetaTitle       string
	MetaDescription string
	MetaKeywords    []string
	Status          PostStatus
	SiteID          string
	AuthorID        string
	PublishedAt     time.Time
}

// Site is one managed website receiving generated posts.
type Site struct {
	ID     string
	Name   string
	Domain string
}

// Identity is the author account posts are attributed to.
type Identity struct {
	ID    string
	Email string
}
