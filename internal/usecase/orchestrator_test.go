package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SEOAgent/internal/catalog"
	"SEOAgent/internal/competitor"
	"SEOAgent/internal/domain"
	"SEOAgent/internal/generator"
	"SEOAgent/internal/suggestion"
)

// distinctCatalog renders a different title for every draw of a counter source.
func distinctCatalog() catalog.Catalog {
	editions := make([]string, 500)
	for i := range editions {
		editions[i] = fmt.Sprintf("Edition-%03d", i)
	}
	return catalog.Catalog{
		Templates: []domain.ArticleTemplate{{
			Keyword:      "下载",
			TitlePattern: "{edition} 下载指南",
			BodyPattern:  "{platform_steps}",
			Tags:         []string{"{platform}"},
		}},
		Variants: catalog.Variants{
			Editions:  editions,
			Platforms: []string{"Windows"},
			Themes:    []string{"使用教程"},
			Audiences: []string{"新手必看"},
		},
		PlatformSteps:    map[string]string{"电脑": "打开安装包"},
		FallbackPlatform: "电脑",
	}
}

func threeSites() []domain.Site {
	return []domain.Site{{ID: "a", Name: "Alpha"}, {ID: "b", Name: "Beta"}, {ID: "c", Name: "Gamma"}}
}

func TestRunGenerateIsolatesSiteFailures(t *testing.T) {
	t.Parallel()

	store := newMemStore(threeSites()...)
	store.failOn["a"] = 3

	o := NewOrchestrator(OrchestratorDeps{
		Catalog:    distinctCatalog(),
		Store:      store,
		Random:     &counter{},
		Now:        fixedClock,
		Generation: Generation{SiteParallelism: 3},
	})

	report, err := o.RunGenerate(context.Background(), 5, "")
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, report.State)

	require.Len(t, report.ErrorsFor("a"), 1)
	assert.Equal(t, domain.StageGenerate, report.ErrorsFor("a")[0].Stage)
	assert.Empty(t, report.ErrorsFor("b"))
	assert.Empty(t, report.ErrorsFor("c"))

	a, _ := report.Site("a")
	assert.Equal(t, domain.SiteResult{SiteID: "a", SiteName: "Alpha", Requested: 5, Created: 4, Failed: 1}, a)
	for _, id := range []string{"b", "c"} {
		res, ok := report.Site(id)
		require.True(t, ok)
		assert.Equal(t, 5, res.Created, id)
		assert.Equal(t, 5, store.count(id), id)
	}
	assert.Equal(t, 14, report.TotalCreated)
}

func TestRunFullWithoutActiveSitesFails(t *testing.T) {
	t.Parallel()

	store := newMemStore()
	deployer := &fakeDeployer{}
	sink := newMemSink()

	o := NewOrchestrator(OrchestratorDeps{
		Analyzer:  fakeAnalyzer{},
		Suggester: suggestion.NewEngine(catalog.Default().Topics, nil, fixedClock),
		Catalog:   catalog.Default(),
		Store:     store,
		Deployer:  deployer,
		Sink:      sink,
		Now:       fixedClock,
		NewID:     func() string { return "run-1" },
	})

	report, err := o.RunFull(context.Background())
	require.ErrorIs(t, err, domain.ErrNoActiveSites)
	require.NotNil(t, report)

	assert.Equal(t, domain.StateFailed, report.State)
	assert.Equal(t, domain.StageGenerate, report.FailedStage)
	assert.Zero(t, report.TotalCreated)
	assert.Nil(t, report.Deploy)
	assert.Empty(t, deployer.calls)
	assert.Contains(t, sink.names(), "run-20261019-093000.json")
}

func TestRunFullWithoutAdminFails(t *testing.T) {
	t.Parallel()

	store := newMemStore(threeSites()...)
	store.admin = nil

	o := NewOrchestrator(OrchestratorDeps{Catalog: distinctCatalog(), Store: store, Now: fixedClock})

	report, err := o.RunFull(context.Background())
	require.ErrorIs(t, err, domain.ErrNoAdminIdentity)
	assert.Equal(t, domain.StateFailed, report.State)
	assert.Zero(t, store.count("a"))
}

func TestRunFullSurvivesCompetitorFailure(t *testing.T) {
	t.Parallel()

	analyzer := fakeAnalyzer{
		reports: []domain.CompetitorReport{{
			CompetitorName: "TelegramSHK",
			Articles:       []domain.ArticleSignal{{Title: "Telegram 秘密聊天 完整教程", SourceURL: "https://shk.example/blog/1"}},
			TopKeywords:    []domain.KeywordCount{{Keyword: "秘密聊天", Count: 4}},
		}},
		failures: []competitor.Failure{{Competitor: "TelegramCN", Err: domain.ErrFetchFailed}},
	}
	store := newMemStore(domain.Site{ID: "a", Name: "Alpha"})
	deployer := &fakeDeployer{entries: []string{"[site] git pull origin main: ok"}}
	sink := newMemSink()
	notifier := &fakeNotifier{}
	cat := catalog.Default()

	o := NewOrchestrator(OrchestratorDeps{
		Analyzer:      analyzer,
		Suggester:     suggestion.NewEngine(cat.Topics, cat.Outline, fixedClock),
		Catalog:       cat,
		Store:         store,
		Deployer:      deployer,
		DeployTargets: []string{"/srv/site"},
		Sink:          sink,
		Notifier:      notifier,
		Random:        &counter{},
		Now:           fixedClock,
		Generation:    Generation{MinPerRun: 4, MaxPerRun: 4},
	})

	report, err := o.RunFull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, report.State)

	require.Len(t, report.ErrorsFor("TelegramCN"), 1)
	assert.Equal(t, domain.StageAnalyze, report.ErrorsFor("TelegramCN")[0].Stage)
	assert.Equal(t, domain.StageDegraded, report.Stages[0].Status)

	site, ok := report.Site("a")
	require.True(t, ok)
	assert.Equal(t, 4, site.Created+site.Skipped)
	assert.Zero(t, site.Failed)
	assert.Positive(t, report.TotalCreated)

	require.Len(t, deployer.calls, 1)
	assert.Equal(t, []string{"/srv/site"}, deployer.calls[0])
	require.NotNil(t, report.Deploy)
	assert.True(t, report.Deploy.Success)

	names := sink.names()
	assert.Contains(t, names, "analysis-20261019-093000.md")
	assert.Contains(t, names, "analysis-20261019-093000.json")
	assert.Contains(t, names, "run-20261019-093000.json")
	assert.Contains(t, string(sink.files["analysis-20261019-093000.md"]), "TelegramSHK")

	require.Len(t, notifier.messages, 1)
	assert.Contains(t, notifier.messages[0], "Total created")
}

func TestRunFullSkipsDeployWhenNothingCreated(t *testing.T) {
	t.Parallel()

	store := newMemStore(domain.Site{ID: "a", Name: "Alpha"})
	store.failOn["a"] = 1
	deployer := &fakeDeployer{}

	o := NewOrchestrator(OrchestratorDeps{
		Catalog:  distinctCatalog(),
		Store:    store,
		Deployer: deployer,
		Random:   &counter{},
		Now:      fixedClock,
	})

	report, err := o.RunFull(context.Background())
	require.NoError(t, err)
	assert.Zero(t, report.TotalCreated)
	assert.Empty(t, deployer.calls)
	assert.Nil(t, report.Deploy)

	last := report.Stages[len(report.Stages)-1]
	assert.Equal(t, domain.StageDeploy, last.Stage)
	assert.Equal(t, domain.StageSkipped, last.Status)
}

func TestDeployFailureIsRecordedNotFatal(t *testing.T) {
	t.Parallel()

	store := newMemStore(domain.Site{ID: "a", Name: "Alpha"})
	deployer := &fakeDeployer{err: errors.New("ssh: handshake failed"), entries: []string{"[site] connect: failed"}}

	o := NewOrchestrator(OrchestratorDeps{
		Catalog:       distinctCatalog(),
		Store:         store,
		Deployer:      deployer,
		DeployTargets: []string{"/srv/site"},
		Random:        &counter{},
		Now:           fixedClock,
		Generation:    Generation{MinPerRun: 2, MaxPerRun: 2},
	})

	report, err := o.RunFull(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, report.State)
	assert.Equal(t, 2, report.TotalCreated)
	assert.Equal(t, 2, store.count("a"), "posts survive a failed deploy")

	require.NotNil(t, report.Deploy)
	assert.False(t, report.Deploy.Success)
	assert.Equal(t, []string{"[site] connect: failed"}, report.Deploy.Log)

	deployErrs := slices.DeleteFunc(slices.Clone(report.Errors), func(e domain.RunError) bool { return e.Stage != domain.StageDeploy })
	require.Len(t, deployErrs, 1)
	assert.Contains(t, deployErrs[0].Message, domain.ErrDeployFailed.Error())
}

func TestCancelledRunKeepsCreatedPosts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store := newMemStore(domain.Site{ID: "a", Name: "Alpha"})
	store.onCreate = func(_ string, n int) {
		if n == 2 {
			cancel()
		}
	}
	sink := newMemSink()

	o := NewOrchestrator(OrchestratorDeps{
		Catalog: distinctCatalog(),
		Store:   store,
		Sink:    sink,
		Random:  &counter{},
		Now:     fixedClock,
	})

	report, err := o.RunGenerate(ctx, 5, "")
	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Equal(t, domain.StateDone, report.State)
	assert.Equal(t, 2, report.TotalCreated)
	assert.Equal(t, 2, store.count("a"))

	errs := report.ErrorsFor("a")
	require.Len(t, errs, 1)
	assert.True(t, strings.HasPrefix(errs[0].Message, "cancelled after 2 of 5"), errs[0].Message)
	assert.Contains(t, sink.names(), "run-20261019-093000.json", "report persists after cancellation")
}

func TestRunGenerateForOneSite(t *testing.T) {
	t.Parallel()

	store := newMemStore(threeSites()...)
	o := NewOrchestrator(OrchestratorDeps{Catalog: distinctCatalog(), Store: store, Random: &counter{}, Now: fixedClock})

	report, err := o.RunGenerate(context.Background(), 3, "Beta")
	require.NoError(t, err)
	require.Len(t, report.Sites, 1)
	assert.Equal(t, "b", report.Sites[0].SiteID)
	assert.Equal(t, 3, store.count("b"))
	assert.Zero(t, store.count("a"))

	_, err = o.RunGenerate(context.Background(), 3, "missing")
	require.ErrorIs(t, err, domain.ErrNoActiveSites)
}

func TestRunDeployRecordsOutcome(t *testing.T) {
	t.Parallel()

	deployer := &fakeDeployer{entries: []string{"[a] npm run build: done"}}
	o := NewOrchestrator(OrchestratorDeps{Deployer: deployer, DeployTargets: []string{"/srv/a", "/srv/b"}, Now: fixedClock})

	report, err := o.RunDeploy(context.Background())
	require.NoError(t, err)
	require.NotNil(t, report.Deploy)
	assert.True(t, report.Deploy.Success)
	assert.Equal(t, []string{"/srv/a", "/srv/b"}, report.Deploy.Targets)
	assert.Equal(t, domain.ModeDeploy, report.Mode)
}

func TestRunAnalyzeRecordsNotifierFailure(t *testing.T) {
	t.Parallel()

	notifier := &fakeNotifier{err: errors.New("telegram: 401")}
	o := NewOrchestrator(OrchestratorDeps{Analyzer: fakeAnalyzer{}, Notifier: notifier, Now: fixedClock})

	report, err := o.RunAnalyze(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.StateDone, report.State)
	require.Len(t, report.Errors, 1)
	assert.Equal(t, domain.StageNotify, report.Errors[0].Stage)
}

func TestRunAnalyzeKeepsArtifactsWhenCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sink := newMemSink()
	analyzer := fakeAnalyzer{reports: []domain.CompetitorReport{{CompetitorName: "TelegramSHK"}}}
	o := NewOrchestrator(OrchestratorDeps{Analyzer: analyzer, Sink: sink, Now: fixedClock})

	report, err := o.RunAnalyze(ctx)
	require.NoError(t, err)
	assert.True(t, report.Cancelled)
	assert.Empty(t, report.Errors)
	names := sink.names()
	assert.Contains(t, names, "analysis-20261019-093000.md")
	assert.Contains(t, names, "analysis-20261019-093000.json")
}

func TestPlanPutsSeededArticlesFirst(t *testing.T) {
	t.Parallel()

	cat := catalog.Default()
	o := NewOrchestrator(OrchestratorDeps{Catalog: cat, Random: &counter{}, Now: fixedClock})
	gen := generator.New(cat, &counter{}, fixedClock)

	suggestions := []domain.ArticleSuggestion{
		{Title: "群组", TargetKeywords: []string{"telegram群组"}},
		{Title: "会员", TargetKeywords: []string{"telegram premium"}},
		{Title: "秘密", TargetKeywords: []string{"秘密聊天"}},
		{Title: "频道", TargetKeywords: []string{"频道"}},
	}

	plan := o.plan(gen, 4, suggestions)
	require.Len(t, plan, 4)
	require.NotNil(t, plan[0].seed)
	require.NotNil(t, plan[1].seed)
	assert.Equal(t, "群组", plan[0].seed.Title)
	assert.Equal(t, "秘密", plan[1].seed.Title, "suggestions without a template are passed over")
	assert.Nil(t, plan[2].seed)
	assert.Nil(t, plan[3].seed)

	assert.Len(t, o.plan(gen, 3, nil), 3)
}
