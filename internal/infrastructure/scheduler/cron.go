package scheduler

import (
	"context"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"SEOAgent/internal/ports"
)

// CronScheduler fires the job on a five-field cron expression.
type CronScheduler struct {
	spec     string
	location *time.Location
	logger   cron.Logger

	mu   sync.Mutex
	cron *cron.Cron
	// stopped is set by the first Stop and completes once running jobs return.
	stopped context.Context
}

var _ ports.Scheduler = (*CronScheduler)(nil)

var parser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// NewCronScheduler validates spec and resolves timezone (empty means local).
func NewCronScheduler(spec, timezone string, printf *log.Logger) (*CronScheduler, error) {
	if _, err := parser.Parse(spec); err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", spec, err)
	}

	loc := time.Local
	if timezone != "" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("load timezone %q: %w", timezone, err)
		}
		loc = l
	}

	var logger cron.Logger = cron.DiscardLogger
	if printf != nil {
		logger = cron.VerbosePrintfLogger(printf)
	}
	return &CronScheduler{spec: spec, location: loc, logger: logger}, nil
}

// Start registers job; a trigger is skipped while the previous run is still going.
func (c *CronScheduler) Start(ctx context.Context, job func(time.Time)) error {
	if job == nil {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron != nil && c.stopped == nil {
		return nil
	}

	cr := cron.New(
		cron.WithParser(parser),
		cron.WithLocation(c.location),
		cron.WithLogger(c.logger),
		cron.WithChain(cron.Recover(c.logger), cron.SkipIfStillRunning(c.logger)),
	)
	if _, err := cr.AddFunc(c.spec, func() { job(time.Now().In(c.location)) }); err != nil {
		return fmt.Errorf("register job: %w", err)
	}
	cr.Start()
	c.cron = cr
	c.stopped = nil

	go func() {
		<-ctx.Done()
		c.halt(cr)
	}()
	return nil
}

// Stop halts scheduling and waits for a running job until ctx ends. Every
// caller waits on the same job, including after the Start context was cancelled.
func (c *CronScheduler) Stop(ctx context.Context) error {
	done := c.halt(nil)
	if done == nil {
		return nil
	}
	select {
	case <-done.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// halt stops only, when set, so a stale watcher never stops a newer instance.
func (c *CronScheduler) halt(only *cron.Cron) context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cron == nil || (only != nil && only != c.cron) {
		return nil
	}
	if c.stopped == nil {
		c.stopped = c.cron.Stop()
	}
	return c.stopped
}
