package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SEOAgent/internal/domain"
)

func TestRootCommandListsVerbs(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand(&out)
	root.SetArgs([]string{"help"})

	require.NoError(t, root.Execute())
	for _, verb := range []string{"full", "analyze", "generate", "deploy", "schedule"} {
		assert.Contains(t, out.String(), verb)
	}
}

func TestUnknownVerbFails(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand(&out)
	root.SetArgs([]string{"publish"})
	root.SetErr(&out)

	assert.Error(t, root.Execute())
}

func TestGenerateRejectsBadCount(t *testing.T) {
	var out bytes.Buffer
	root := newRootCommand(&out)
	root.SetArgs([]string{"generate", "many"})

	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "positive integer")
}

func TestRenderReport(t *testing.T) {
	start := time.Date(2026, 10, 19, 3, 0, 0, 0, time.UTC)
	report := &domain.RunReport{
		ID:         "r1",
		Mode:       domain.ModeFull,
		State:      domain.StateDone,
		StartedAt:  start,
		FinishedAt: start.Add(90 * time.Second),
		Stages: []domain.StageResult{
			{Stage: domain.StageAnalyze, Status: domain.StageDegraded, Detail: "1 reports, 1 failures"},
			{Stage: domain.StageDeploy, Status: domain.StageOK},
		},
		Sites:        []domain.SiteResult{{SiteName: "Alpha", Requested: 5, Created: 4, Failed: 1}},
		TotalCreated: 4,
		Deploy:       &domain.DeployOutcome{Success: true, Log: []string{"[site-a] deployed"}},
		Errors:       []domain.RunError{{Stage: domain.StageGenerate, Target: "a", Message: "store write failed"}},
	}

	var out bytes.Buffer
	renderReport(&out, report)
	text := out.String()

	assert.Contains(t, text, "Run r1 (full) finished done in 1m30s")
	assert.Contains(t, text, "degraded")
	assert.Contains(t, text, "Alpha")
	assert.Contains(t, text, "[site-a] deployed")
	assert.Contains(t, text, "store write failed")
}
