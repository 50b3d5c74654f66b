package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/temoto/robotstxt"
)

// RobotsGate caches robots.txt per host and answers whether a path may be fetched.
// An unreachable robots.txt allows everything and is retried on the next lookup.
type RobotsGate struct {
	client  *http.Client
	timeout time.Duration

	mu    sync.Mutex
	cache map[string]*robotstxt.RobotsData
}

// NewRobotsGate builds a gate using client for robots.txt downloads.
func NewRobotsGate(client *http.Client, timeout time.Duration) *RobotsGate {
	if client == nil {
		client = &http.Client{}
	}
	return &RobotsGate{client: client, timeout: timeout, cache: map[string]*robotstxt.RobotsData{}}
}

// Allowed reports whether agent may fetch rawURL.
func (g *RobotsGate) Allowed(ctx context.Context, rawURL, agent string) (bool, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return false, fmt.Errorf("parse url: %w", err)
	}

	data := g.load(ctx, parsed)
	if data == nil {
		return true, nil
	}

	path := parsed.EscapedPath()
	if path == "" {
		path = "/"
	}
	return data.TestAgent(path, agent), nil
}

func (g *RobotsGate) load(ctx context.Context, target *url.URL) *robotstxt.RobotsData {
	key := target.Scheme + "://" + target.Host

	g.mu.Lock()
	data, ok := g.cache[key]
	g.mu.Unlock()
	if ok {
		return data
	}

	data, err := g.download(ctx, key+"/robots.txt")
	if err != nil {
		return nil
	}

	g.mu.Lock()
	g.cache[key] = data
	g.mu.Unlock()
	return data
}

// download returns an error only when the host gave no answer at all. Any HTTP
// response is cacheable; an unparsable file caches as allow-all.
func (g *RobotsGate) download(ctx context.Context, robotsURL string) (*robotstxt.RobotsData, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, robotsURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 512<<10))
	if err != nil {
		return nil, err
	}
	data, err := robotstxt.FromStatusAndBytes(resp.StatusCode, body)
	if err != nil {
		return nil, nil
	}
	return data, nil
}
