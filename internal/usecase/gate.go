package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"SEOAgent/internal/domain"
	"SEOAgent/internal/ports"
)

const titlePrefixRunes = 20

// CreateGate is the only path to Store.CreatePost. It refuses an article when
// the site already has a post with the same slug or a title containing the
// candidate's first 20 characters.
type CreateGate struct {
	store  ports.Store
	now    func() time.Time
	logger *slog.Logger
}

// NewCreateGate wires the gate to a store.
func NewCreateGate(store ports.Store, now func() time.Time, logger *slog.Logger) *CreateGate {
	if now == nil {
		now = time.Now
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CreateGate{store: store, now: now, logger: logger}
}

// TryCreate persists article for siteID. It returns false without error when
// a duplicate exists; store failures wrap domain.ErrStoreWriteFailed.
func (g *CreateGate) TryCreate(ctx context.Context, siteID, authorID string, article domain.GeneratedArticle) (bool, error) {
	prefix := TitlePrefix(article.Title)

	existing, err := g.store.FindPost(ctx, siteID, article.Slug, prefix)
	if err != nil {
		return false, fmt.Errorf("%w: lookup %s: %v", domain.ErrStoreWriteFailed, article.Slug, err)
	}
	if existing != nil {
		g.logger.Debug("duplicate skipped", "site", siteID, "slug", article.Slug, "existing", existing.Slug)
		return false, nil
	}

	_, err = g.store.CreatePost(ctx, domain.Post{
		Title:           article.Title,
		Slug:            article.Slug,
		Body:            article.Body,
		MetaTitle:       article.Title,
		MetaDescription: article.Description,
		MetaKeywords:    article.KeywordTags,
		Status:          domain.PostStatusPublished,
		SiteID:          siteID,
		AuthorID:        authorID,
		PublishedAt:     g.now(),
	})
	if errors.Is(err, domain.ErrPostExists) {
		g.logger.Debug("concurrent duplicate skipped", "site", siteID, "slug", article.Slug)
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: create %s: %v", domain.ErrStoreWriteFailed, article.Slug, err)
	}

	g.logger.Info("post created", "site", siteID, "slug", article.Slug)
	return true, nil
}

// TitlePrefix returns the first 20 runes of title.
func TitlePrefix(title string) string {
	runes := []rune(title)
	if len(runes) > titlePrefixRunes {
		runes = runes[:titlePrefixRunes]
	}
	return string(runes)
}
