package ports

import (
	"context"
	"time"

	"SEOAgent/internal/domain"
)

// Fetcher downloads one document; failures are *domain.FetchError.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// Store is the minimal slice of the content database the agent needs.
type Store interface {
	// FindSite looks a site up by id or name; nil when absent.
	FindSite(ctx context.Context, key string) (*domain.Site, error)
	ListActiveSites(ctx context.Context) ([]domain.Site, error)
	// FindAdmin returns nil when no admin account exists.
	FindAdmin(ctx context.Context) (*domain.Identity, error)
	// FindPost matches on exact slug or on titles containing titlePrefix.
	FindPost(ctx context.Context, siteID, slug, titlePrefix string) (*domain.Post, error)
	// CreatePost returns domain.ErrPostExists when (site, slug) is taken.
	CreatePost(ctx context.Context, post domain.Post) (domain.Post, error)
}

// Deployer triggers the rebuild of the given targets and reports per-target progress.
type Deployer interface {
	Deploy(ctx context.Context, targets []string) ([]string, error)
}

// ReportSink persists named artifacts (analysis exports, run reports).
type ReportSink interface {
	WriteArtifact(ctx context.Context, name string, content []byte) error
}

// Notifier pushes a short run summary to an outbound channel.
type Notifier interface {
	PublishSummary(ctx context.Context, summary string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
