package fetch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"SEOAgent/internal/domain"
	"SEOAgent/internal/ports"
	"SEOAgent/internal/randomness"
)

const (
	// DefaultTimeout bounds every fetch unless overridden.
	DefaultTimeout = 15 * time.Second

	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8"
	acceptLanguageHeader = "zh-CN,zh;q=0.9,en;q=0.8"
	maxBodyBytes         = 5 << 20
)

// Options configures a Client. Zero values fall back to sane defaults.
type Options struct {
	HTTPClient    *http.Client
	Timeout       time.Duration
	UserAgents    []string
	Random        randomness.Source
	HostInterval  time.Duration
	RespectRobots bool
	Logger        *slog.Logger
}

// Client performs polite GET requests: random user agent, browser-like
// headers, per-call timeout, optional per-host spacing and robots.txt check.
// It never retries.
type Client struct {
	http       *http.Client
	timeout    time.Duration
	userAgents []string
	rnd        randomness.Source
	limiter    *HostLimiter
	robots     *RobotsGate
	logger     *slog.Logger
}

var _ ports.Fetcher = (*Client)(nil)

// NewClient builds a Client from opts.
func NewClient(opts Options) *Client {
	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	rnd := opts.Random
	if rnd == nil {
		rnd = randomness.New()
	}
	agents := opts.UserAgents
	if len(agents) == 0 {
		agents = []string{"Mozilla/5.0 (compatible; SEOAgent/1.0)"}
	}

	c := &Client{
		http:       httpClient,
		timeout:    timeout,
		userAgents: agents,
		rnd:        rnd,
		logger:     opts.Logger,
	}
	if opts.HostInterval > 0 {
		c.limiter = NewHostLimiter(opts.HostInterval)
	}
	if opts.RespectRobots {
		c.robots = NewRobotsGate(httpClient, timeout)
	}
	return c
}

// Fetch downloads url with the client's default timeout.
func (c *Client) Fetch(ctx context.Context, url string) (string, error) {
	return c.FetchWithTimeout(ctx, url, c.timeout)
}

// FetchWithTimeout downloads url; any failure is returned as *domain.FetchError.
func (c *Client) FetchWithTimeout(ctx context.Context, url string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	agent := randomness.Pick(c.rnd, c.userAgents)

	if c.robots != nil {
		allowed, err := c.robots.Allowed(ctx, url, agent)
		if err != nil {
			return "", &domain.FetchError{URL: url, Cause: err}
		}
		if !allowed {
			return "", &domain.FetchError{URL: url, Cause: domain.ErrDisallowedByRobots}
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, url); err != nil {
			return "", &domain.FetchError{URL: url, Cause: err}
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", &domain.FetchError{URL: url, Cause: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("User-Agent", agent)
	req.Header.Set("Accept", acceptHeader)
	req.Header.Set("Accept-Language", acceptLanguageHeader)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &domain.FetchError{URL: url, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &domain.FetchError{URL: url, Cause: fmt.Errorf("unexpected status %s", resp.Status)}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", &domain.FetchError{URL: url, Cause: fmt.Errorf("read body: %w", err)}
	}

	c.debug("fetched", "url", url, "bytes", len(body))
	return string(body), nil
}

func (c *Client) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
