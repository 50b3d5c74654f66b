package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"SEOAgent/internal/domain"
	"SEOAgent/internal/ports"
)

const (
	siteStatusActive = "ACTIVE"
	roleAdmin        = "ADMIN"
	uniqueViolation  = "23505"
)

// PostgresStore reads sites and admins and writes posts in the CMS database.
type PostgresStore struct {
	db    *sql.DB
	psql  sq.StatementBuilderType
	now   func() time.Time
	newID func() string
}

var _ ports.Store = (*PostgresStore)(nil)

// NewPostgresStore wires a sql.DB implementation.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db:    db,
		psql:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// FindSite matches key against the site id or name.
func (s *PostgresStore) FindSite(ctx context.Context, key string) (*domain.Site, error) {
	query, args, err := s.psql.
		Select("id", "name", "domain").
		From("websites").
		Where(sq.Or{sq.Eq{"id": key}, sq.Eq{"name": key}}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build site query: %w", err)
	}

	var site domain.Site
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&site.ID, &site.Name, &site.Domain)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query site %s: %w", key, err)
	}
	return &site, nil
}

// ListActiveSites returns every site with ACTIVE status.
func (s *PostgresStore) ListActiveSites(ctx context.Context) ([]domain.Site, error) {
	query, args, err := s.psql.
		Select("id", "name", "domain").
		From("websites").
		Where(sq.Eq{"status": siteStatusActive}).
		OrderBy("name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build sites query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query active sites: %w", err)
	}

	var sites []domain.Site
	for rows.Next() {
		var site domain.Site
		if err := rows.Scan(&site.ID, &site.Name, &site.Domain); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan site: %w", err)
		}
		sites = append(sites, site)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return sites, nil
}

// FindAdmin returns the oldest admin account, or nil when there is none.
func (s *PostgresStore) FindAdmin(ctx context.Context) (*domain.Identity, error) {
	query, args, err := s.psql.
		Select("id", "email").
		From("users").
		Where(sq.Eq{"role": roleAdmin}).
		OrderBy("created_at").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build admin query: %w", err)
	}

	var admin domain.Identity
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&admin.ID, &admin.Email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query admin: %w", err)
	}
	return &admin, nil
}

// FindPost returns a post of siteID whose slug equals slug or whose title
// contains titlePrefix.
func (s *PostgresStore) FindPost(ctx context.Context, siteID, slug, titlePrefix string) (*domain.Post, error) {
	match := sq.Or{sq.Eq{"slug": slug}}
	if titlePrefix != "" {
		match = append(match, sq.Expr("strpos(title, ?) > 0", titlePrefix))
	}

	query, args, err := s.psql.
		Select("id", "title", "slug").
		From("posts").
		Where(sq.Eq{"website_id": siteID}).
		Where(match).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build post query: %w", err)
	}

	post := domain.Post{SiteID: siteID}
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&post.ID, &post.Title, &post.Slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query post %s: %w", slug, err)
	}
	return &post, nil
}

// CreatePost inserts post; a taken (website_id, slug) yields domain.ErrPostExists.
func (s *PostgresStore) CreatePost(ctx context.Context, post domain.Post) (domain.Post, error) {
	if post.ID == "" {
		post.ID = s.newID()
	}
	now := s.now()

	query, args, err := s.psql.
		Insert("posts").
		Columns("id", "title", "slug", "content", "meta_title", "meta_description", "meta_keywords",
			"status", "website_id", "author_id", "published_at", "created_at", "updated_at").
		Values(post.ID, post.Title, post.Slug, post.Body, post.MetaTitle, post.MetaDescription,
			pq.StringArray(post.MetaKeywords), string(post.Status), post.SiteID, post.AuthorID,
			post.PublishedAt, now, now).
		Suffix("ON CONFLICT (website_id, slug) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return domain.Post{}, fmt.Errorf("build insert: %w", err)
	}

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&post.ID)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Post{}, domain.ErrPostExists
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return domain.Post{}, domain.ErrPostExists
	}
	if err != nil {
		return domain.Post{}, fmt.Errorf("insert post %s: %w", post.Slug, err)
	}

	return post, nil
}
