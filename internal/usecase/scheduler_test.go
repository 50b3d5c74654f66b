package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SEOAgent/internal/domain"
)

type manualDriver struct {
	job     func(time.Time)
	stopped bool
}

func (d *manualDriver) Start(_ context.Context, job func(time.Time)) error {
	d.job = job
	return nil
}

func (d *manualDriver) Stop(context.Context) error {
	d.stopped = true
	return nil
}

func TestSchedulerRunsFullPipelineOnTrigger(t *testing.T) {
	t.Parallel()

	store := newMemStore(domain.Site{ID: "a", Name: "Alpha"})
	deployer := &fakeDeployer{}
	o := NewOrchestrator(OrchestratorDeps{
		Catalog:  distinctCatalog(),
		Store:    store,
		Deployer: deployer,
		Random:   &counter{},
		Now:      fixedClock,
	})

	driver := &manualDriver{}
	s := NewScheduler(driver, o, nil)
	require.NoError(t, s.Start(context.Background()))
	require.NotNil(t, driver.job)

	driver.job(fixedClock())
	assert.Equal(t, 1, store.count("a"))
	assert.Len(t, deployer.calls, 1)

	require.NoError(t, s.Stop(context.Background()))
	assert.True(t, driver.stopped)
}

func TestSummarizeListsSitesAndFailure(t *testing.T) {
	t.Parallel()

	report := &domain.RunReport{
		ID:          "r1",
		Mode:        domain.ModeFull,
		State:       domain.StateFailed,
		FailedStage: domain.StageGenerate,
		Failure:     domain.ErrNoActiveSites.Error(),
		Sites:       []domain.SiteResult{{SiteName: "Alpha", Requested: 4, Created: 3, Skipped: 1}},
		Errors:      []domain.RunError{{Stage: domain.StageGenerate, Message: "no active sites"}},
	}

	got := Summarize(report)
	assert.Contains(t, got, "SEO agent run r1 (full): failed")
	assert.Contains(t, got, "Aborted in generate: no active sites")
	assert.Contains(t, got, "Alpha: 3 created, 1 skipped, 0 failed of 4")
	assert.Contains(t, got, "Errors: 1")
}
