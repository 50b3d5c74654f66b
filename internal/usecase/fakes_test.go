package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"SEOAgent/internal/competitor"
	"SEOAgent/internal/domain"
)

// memStore mimics the content database, including the (site, slug) unique key.
type memStore struct {
	mu       sync.Mutex
	sites    []domain.Site
	admin    *domain.Identity
	posts    map[string][]domain.Post
	creates  map[string]int
	failOn   map[string]int
	findErr  error
	onCreate func(siteID string, n int)
	nextID   int
}

func newMemStore(sites ...domain.Site) *memStore {
	return &memStore{
		sites:   sites,
		admin:   &domain.Identity{ID: "admin-1", Email: "admin@example.com"},
		posts:   map[string][]domain.Post{},
		creates: map[string]int{},
		failOn:  map[string]int{},
	}
}

func (m *memStore) FindSite(_ context.Context, key string) (*domain.Site, error) {
	for _, s := range m.sites {
		if s.ID == key || s.Name == key {
			site := s
			return &site, nil
		}
	}
	return nil, nil
}

func (m *memStore) ListActiveSites(context.Context) ([]domain.Site, error) {
	return m.sites, nil
}

func (m *memStore) FindAdmin(context.Context) (*domain.Identity, error) {
	return m.admin, nil
}

func (m *memStore) FindPost(_ context.Context, siteID, slug, titlePrefix string) (*domain.Post, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.findErr != nil {
		return nil, m.findErr
	}
	for _, p := range m.posts[siteID] {
		if p.Slug == slug || (titlePrefix != "" && strings.Contains(p.Title, titlePrefix)) {
			post := p
			return &post, nil
		}
	}
	return nil, nil
}

func (m *memStore) CreatePost(_ context.Context, post domain.Post) (domain.Post, error) {
	m.mu.Lock()
	m.creates[post.SiteID]++
	n := m.creates[post.SiteID]
	hook := m.onCreate
	m.mu.Unlock()

	if hook != nil {
		hook(post.SiteID, n)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failOn[post.SiteID] == n {
		return domain.Post{}, errors.New("connection reset by peer")
	}
	for _, p := range m.posts[post.SiteID] {
		if p.Slug == post.Slug {
			return domain.Post{}, domain.ErrPostExists
		}
	}
	m.nextID++
	post.ID = fmt.Sprintf("post-%d", m.nextID)
	m.posts[post.SiteID] = append(m.posts[post.SiteID], post)
	return post, nil
}

func (m *memStore) count(siteID string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.posts[siteID])
}

type fakeDeployer struct {
	mu      sync.Mutex
	calls   [][]string
	err     error
	entries []string
}

func (d *fakeDeployer) Deploy(_ context.Context, targets []string) ([]string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, targets)
	return d.entries, d.err
}

// memSink refuses writes on a cancelled context, like a real file or network sink would.
type memSink struct {
	mu    sync.Mutex
	files map[string][]byte
}

func newMemSink() *memSink { return &memSink{files: map[string][]byte{}} }

func (s *memSink) WriteArtifact(ctx context.Context, name string, content []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[name] = content
	return nil
}

func (s *memSink) names() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.files))
	for k := range s.files {
		out = append(out, k)
	}
	return out
}

type fakeNotifier struct {
	messages []string
	err      error
}

func (n *fakeNotifier) PublishSummary(_ context.Context, summary string) error {
	n.messages = append(n.messages, summary)
	return n.err
}

type fakeAnalyzer struct {
	reports  []domain.CompetitorReport
	failures []competitor.Failure
}

func (a fakeAnalyzer) AnalyzeAll(context.Context, []domain.CompetitorConfig) ([]domain.CompetitorReport, []competitor.Failure) {
	return a.reports, a.failures
}

type fixedSuggester []domain.ArticleSuggestion

func (s fixedSuggester) Suggest([]domain.CompetitorReport) []domain.ArticleSuggestion { return s }

// counter hands out 0, 1, 2, ... modulo n, so every draw from a large pool differs.
type counter struct {
	mu sync.Mutex
	n  int
}

func (c *counter) IntN(n int) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	v := c.n % n
	c.n++
	return v
}

func (c *counter) Float64() float64 { return 0 }

func fixedClock() time.Time { return time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC) }
