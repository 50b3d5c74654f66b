package competitor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"SEOAgent/internal/domain"
	"SEOAgent/internal/ports"
	"SEOAgent/internal/randomness"
	"SEOAgent/internal/scanner"
	"SEOAgent/internal/signal"
)

// Settings bounds how hard a crawl hits a competitor.
type Settings struct {
	MaxArticles     int
	MinDelay        time.Duration
	MaxDelay        time.Duration
	CompetitorPause time.Duration
	Parallelism     int
	TopKeywords     int
}

// DefaultSettings mirrors the production politeness budget.
func DefaultSettings() Settings {
	return Settings{
		MaxArticles:     20,
		MinDelay:        time.Second,
		MaxDelay:        3 * time.Second,
		CompetitorPause: 5 * time.Second,
		Parallelism:     1,
		TopKeywords:     20,
	}
}

// SleepFunc waits for d or until ctx ends.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the production SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// CrawlerDeps wires the crawler's collaborators.
type CrawlerDeps struct {
	Fetcher                ports.Fetcher
	Parse                  scanner.ParseFunc
	Extractor              *signal.Extractor
	Registry               *scanner.Registry
	Random                 randomness.Source
	Sleep                  SleepFunc
	Now                    func() time.Time
	Logger                 *slog.Logger
	Settings               Settings
	GeneralRecommendations []string
}

// Crawler discovers, fetches and aggregates competitor articles.
type Crawler struct {
	fetcher   ports.Fetcher
	parse     scanner.ParseFunc
	extractor *signal.Extractor
	registry  *scanner.Registry
	rnd       randomness.Source
	sleep     SleepFunc
	now       func() time.Time
	logger    *slog.Logger
	settings  Settings
	general   []string
}

// NewCrawler constructs the crawler; missing optional deps get production defaults.
func NewCrawler(deps CrawlerDeps) *Crawler {
	c := &Crawler{
		fetcher:   deps.Fetcher,
		parse:     deps.Parse,
		extractor: deps.Extractor,
		registry:  deps.Registry,
		rnd:       deps.Random,
		sleep:     deps.Sleep,
		now:       deps.Now,
		logger:    deps.Logger,
		settings:  deps.Settings,
		general:   deps.GeneralRecommendations,
	}
	if c.registry == nil {
		c.registry = scanner.NewDefaultRegistry()
	}
	if c.rnd == nil {
		c.rnd = randomness.New()
	}
	if c.sleep == nil {
		c.sleep = Sleep
	}
	if c.now == nil {
		c.now = time.Now
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	if c.settings.MaxArticles <= 0 {
		c.settings.MaxArticles = DefaultSettings().MaxArticles
	}
	if c.settings.TopKeywords <= 0 {
		c.settings.TopKeywords = DefaultSettings().TopKeywords
	}
	if c.settings.Parallelism <= 0 {
		c.settings.Parallelism = 1
	}
	return c
}

// Crawl analyzes one competitor. Single article failures are skipped; a failed
// listing page or an empty link set fails the whole crawl. Cancellation between
// articles ends the crawl with the signals gathered so far.
func (c *Crawler) Crawl(ctx context.Context, cfg domain.CompetitorConfig) (*domain.CompetitorReport, error) {
	log := c.logger.With("competitor", cfg.Name)
	log.Info("crawl started")

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("invalid base url %s: %w", cfg.BaseURL, err)
	}

	listingURL := strings.TrimRight(cfg.BaseURL, "/") + cfg.ListingPath
	html, err := c.fetcher.Fetch(ctx, listingURL)
	if err != nil {
		return nil, fmt.Errorf("listing page: %w", err)
	}

	doc, err := c.parse(html)
	if err != nil {
		return nil, fmt.Errorf("listing page: %w", err)
	}

	strategy, err := c.registry.Resolve(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	links := strategy.Discover(doc, scanner.Request{BaseURL: base, Competitor: cfg})
	log.Info("article links discovered", "count", len(links))
	if len(links) == 0 {
		return nil, domain.ErrNoArticlesDiscovered
	}
	if len(links) > c.settings.MaxArticles {
		links = links[:c.settings.MaxArticles]
	}

	articles := make([]domain.ArticleSignal, 0, len(links))
	for i, link := range links {
		if err := c.sleep(ctx, c.jitter()); err != nil {
			log.Warn("crawl interrupted, keeping partial signals", "analyzed", len(articles), "dropped", len(links)-i, "error", err)
			break
		}

		sig, err := c.analyzeArticle(ctx, link, cfg.Name)
		if err != nil {
			log.Warn("article skipped", "url", link, "error", err)
			continue
		}
		articles = append(articles, sig)
		log.Debug("article analyzed", "url", link, "title", sig.Title)
	}

	top := RankKeywords(articles, c.settings.TopKeywords)
	report := &domain.CompetitorReport{
		CompetitorName:  cfg.Name,
		ScrapedAt:       c.now(),
		Articles:        articles,
		TopKeywords:     top,
		Recommendations: Recommend(articles, top, c.general),
	}

	log.Info("crawl finished", "articles", len(articles), "keywords", len(top))
	return report, nil
}

func (c *Crawler) analyzeArticle(ctx context.Context, link, competitor string) (domain.ArticleSignal, error) {
	html, err := c.fetcher.Fetch(ctx, link)
	if err != nil {
		return domain.ArticleSignal{}, err
	}
	doc, err := c.parse(html)
	if err != nil {
		return domain.ArticleSignal{}, err
	}
	return c.extractor.Extract(doc, link, competitor)
}

func (c *Crawler) jitter() time.Duration {
	span := c.settings.MaxDelay - c.settings.MinDelay
	if span <= 0 {
		return c.settings.MinDelay
	}
	return c.settings.MinDelay + time.Duration(c.rnd.Float64()*float64(span))
}

// Failure names a competitor whose crawl produced no report.
type Failure struct {
	Competitor string
	Err        error
}

// AnalyzeAll crawls every enabled competitor with bounded parallelism.
// Reports come back in configuration order; failures never abort the others.
// Each worker pauses after its competitor unless it was the last one.
func (c *Crawler) AnalyzeAll(ctx context.Context, competitors []domain.CompetitorConfig) ([]domain.CompetitorReport, []Failure) {
	var enabled []domain.CompetitorConfig
	for _, comp := range competitors {
		if comp.Enabled {
			enabled = append(enabled, comp)
		}
	}

	reports := make([]*domain.CompetitorReport, len(enabled))
	errs := make([]error, len(enabled))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.settings.Parallelism)

	for i, comp := range enabled {
		if gctx.Err() != nil {
			errs[i] = gctx.Err()
			continue
		}
		g.Go(func() error {
			report, err := c.Crawl(gctx, comp)
			if err != nil {
				errs[i] = err
				c.logger.Warn("competitor analysis failed", "competitor", comp.Name, "error", err)
			} else {
				reports[i] = report
			}

			if i < len(enabled)-1 {
				_ = c.sleep(gctx, c.settings.CompetitorPause)
			}
			return nil
		})
	}
	_ = g.Wait()

	var (
		out      []domain.CompetitorReport
		failures []Failure
	)
	for i, comp := range enabled {
		switch {
		case reports[i] != nil:
			out = append(out, *reports[i])
		case errs[i] != nil:
			failures = append(failures, Failure{Competitor: comp.Name, Err: errs[i]})
		default:
			failures = append(failures, Failure{Competitor: comp.Name, Err: errors.New("crawl produced no report")})
		}
	}
	return out, failures
}
