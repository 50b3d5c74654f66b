package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"SEOAgent/internal/catalog"
	"SEOAgent/internal/competitor"
	"SEOAgent/internal/domain"
	"SEOAgent/internal/generator"
	"SEOAgent/internal/ports"
	"SEOAgent/internal/randomness"
)

const stampLayout = "20060102-150405"

// CompetitorAnalyzer crawls the configured competitors best-effort.
type CompetitorAnalyzer interface {
	AnalyzeAll(ctx context.Context, competitors []domain.CompetitorConfig) ([]domain.CompetitorReport, []competitor.Failure)
}

// Suggester turns reports into prioritized topics.
type Suggester interface {
	Suggest(reports []domain.CompetitorReport) []domain.ArticleSuggestion
}

// Generation bounds the per-site batch.
type Generation struct {
	MinPerRun       int
	MaxPerRun       int
	SiteParallelism int
}

// OrchestratorDeps wires all driven adapters into the orchestrator.
type OrchestratorDeps struct {
	Analyzer      CompetitorAnalyzer
	Competitors   []domain.CompetitorConfig
	Suggester     Suggester
	Catalog       catalog.Catalog
	Store         ports.Store
	Deployer      ports.Deployer
	DeployTargets []string
	Sink          ports.ReportSink
	Notifier      ports.Notifier
	Random        randomness.Source
	Now           func() time.Time
	NewID         func() string
	Generation    Generation
	Logger        *slog.Logger
}

// Orchestrator drives analyze, suggest, generate and deploy for one run.
type Orchestrator struct {
	analyzer    CompetitorAnalyzer
	competitors []domain.CompetitorConfig
	suggester   Suggester
	catalog     catalog.Catalog
	store       ports.Store
	deployer    ports.Deployer
	targets     []string
	sink        ports.ReportSink
	notifier    ports.Notifier
	rnd         randomness.Source
	now         func() time.Time
	newID       func() string
	generation  Generation
	logger      *slog.Logger
	gate        *CreateGate
}

// NewOrchestrator constructs the orchestration component.
func NewOrchestrator(deps OrchestratorDeps) *Orchestrator {
	o := &Orchestrator{
		analyzer:    deps.Analyzer,
		competitors: deps.Competitors,
		suggester:   deps.Suggester,
		catalog:     deps.Catalog,
		store:       deps.Store,
		deployer:    deps.Deployer,
		targets:     deps.DeployTargets,
		sink:        deps.Sink,
		notifier:    deps.Notifier,
		rnd:         deps.Random,
		now:         deps.Now,
		newID:       deps.NewID,
		generation:  deps.Generation,
		logger:      deps.Logger,
	}
	if o.rnd == nil {
		o.rnd = randomness.New()
	}
	if o.now == nil {
		o.now = time.Now
	}
	if o.newID == nil {
		o.newID = uuid.NewString
	}
	if o.logger == nil {
		o.logger = slog.New(slog.DiscardHandler)
	}
	if o.generation.MinPerRun <= 0 {
		o.generation.MinPerRun = 1
	}
	if o.generation.MaxPerRun < o.generation.MinPerRun {
		o.generation.MaxPerRun = o.generation.MinPerRun
	}
	if o.generation.SiteParallelism <= 0 {
		o.generation.SiteParallelism = 1
	}
	o.gate = NewCreateGate(o.store, o.now, o.logger.With("component", "create-gate"))
	return o
}

// RunFull executes the whole pipeline. The returned report is never nil; the
// error is set only when the run aborted for lack of sites or an admin.
func (o *Orchestrator) RunFull(ctx context.Context) (*domain.RunReport, error) {
	rec := o.begin(domain.ModeFull)

	reports := o.analyze(ctx, rec)

	rec.setState(domain.StateSuggesting)
	var suggestions []domain.ArticleSuggestion
	if o.suggester != nil {
		suggestions = o.suggester.Suggest(reports)
	}
	rec.stage(domain.StageSuggest, domain.StageOK, fmt.Sprintf("%d suggestions", len(suggestions)))
	o.logger.Info("suggestions computed", "count", len(suggestions))

	rec.setState(domain.StateGenerating)
	sites, admin, err := o.targetsFor(ctx, "")
	if err != nil {
		return o.abort(ctx, rec, domain.StageGenerate, err)
	}

	counts := make([]int, len(sites))
	for i := range sites {
		counts[i] = o.batchSize()
	}
	o.generate(ctx, rec, sites, admin, counts, suggestions)

	rec.setState(domain.StateDeploying)
	switch {
	case ctx.Err() != nil:
		rec.stage(domain.StageDeploy, domain.StageSkipped, "run cancelled")
	case rec.totalCreated() == 0:
		rec.stage(domain.StageDeploy, domain.StageSkipped, "no new articles")
		o.logger.Info("no new articles, deploy skipped")
	default:
		o.deploy(ctx, rec)
	}

	return o.finish(ctx, rec), nil
}

// RunAnalyze crawls competitors and persists the analysis artifacts.
func (o *Orchestrator) RunAnalyze(ctx context.Context) (*domain.RunReport, error) {
	rec := o.begin(domain.ModeAnalyze)
	o.analyze(ctx, rec)
	return o.finish(ctx, rec), nil
}

// RunGenerate creates count random-template articles for every active site,
// or only for the site matching siteKey (id or name) when it is set.
func (o *Orchestrator) RunGenerate(ctx context.Context, count int, siteKey string) (*domain.RunReport, error) {
	rec := o.begin(domain.ModeGenerate)
	rec.setState(domain.StateGenerating)

	sites, admin, err := o.targetsFor(ctx, siteKey)
	if err != nil {
		return o.abort(ctx, rec, domain.StageGenerate, err)
	}

	counts := make([]int, len(sites))
	for i := range counts {
		counts[i] = count
	}
	o.generate(ctx, rec, sites, admin, counts, nil)
	return o.finish(ctx, rec), nil
}

// RunDeploy invokes the deploy collaborator for the configured targets.
func (o *Orchestrator) RunDeploy(ctx context.Context) (*domain.RunReport, error) {
	rec := o.begin(domain.ModeDeploy)
	rec.setState(domain.StateDeploying)
	o.deploy(ctx, rec)
	return o.finish(ctx, rec), nil
}

func (o *Orchestrator) begin(mode domain.RunMode) *recorder {
	rec := newRecorder(o.newID(), mode, o.now())
	o.logger.Info("run started", "mode", mode)
	return rec
}

func (o *Orchestrator) analyze(ctx context.Context, rec *recorder) []domain.CompetitorReport {
	rec.setState(domain.StateAnalyzing)
	if o.analyzer == nil {
		rec.stage(domain.StageAnalyze, domain.StageSkipped, "no analyzer configured")
		return nil
	}

	reports, failures := o.analyzer.AnalyzeAll(ctx, o.competitors)
	for _, f := range failures {
		rec.fail(domain.StageAnalyze, f.Competitor, f.Err)
	}

	status := domain.StageOK
	if len(failures) > 0 {
		status = domain.StageDegraded
	}
	rec.stage(domain.StageAnalyze, status, fmt.Sprintf("%d reports, %d failures", len(reports), len(failures)))
	o.logger.Info("competitor analysis finished", "reports", len(reports), "failures", len(failures))

	if err := o.persistAnalysis(context.WithoutCancel(ctx), reports); err != nil {
		o.logger.Warn("persist analysis failed", "error", err)
		rec.fail(domain.StageAnalyze, "report", err)
	}
	return reports
}

func (o *Orchestrator) persistAnalysis(ctx context.Context, reports []domain.CompetitorReport) error {
	if o.sink == nil {
		return nil
	}
	at := o.now()
	name := "analysis-" + at.Format(stampLayout)

	if err := o.sink.WriteArtifact(ctx, name+".md", []byte(competitor.ExportMarkdown(reports, at))); err != nil {
		return fmt.Errorf("write markdown analysis: %w", err)
	}
	payload, err := competitor.ExportJSON(reports)
	if err != nil {
		return fmt.Errorf("encode analysis: %w", err)
	}
	if err := o.sink.WriteArtifact(ctx, name+".json", payload); err != nil {
		return fmt.Errorf("write json analysis: %w", err)
	}
	return nil
}

func (o *Orchestrator) targetsFor(ctx context.Context, siteKey string) ([]domain.Site, *domain.Identity, error) {
	if o.store == nil {
		return nil, nil, errors.New("no store configured")
	}

	var sites []domain.Site
	if siteKey != "" {
		site, err := o.store.FindSite(ctx, siteKey)
		if err != nil {
			return nil, nil, fmt.Errorf("find site %s: %w", siteKey, err)
		}
		if site == nil {
			return nil, nil, fmt.Errorf("%w: %s not found", domain.ErrNoActiveSites, siteKey)
		}
		sites = []domain.Site{*site}
	} else {
		list, err := o.store.ListActiveSites(ctx)
		if err != nil {
			return nil, nil, fmt.Errorf("list active sites: %w", err)
		}
		if len(list) == 0 {
			return nil, nil, domain.ErrNoActiveSites
		}
		sites = list
	}

	admin, err := o.store.FindAdmin(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("find admin: %w", err)
	}
	if admin == nil {
		return nil, nil, domain.ErrNoAdminIdentity
	}

	o.logger.Info("generation targets loaded", "sites", len(sites), "admin", admin.Email)
	return sites, admin, nil
}

func (o *Orchestrator) batchSize() int {
	g := o.generation
	return g.MinPerRun + o.rnd.IntN(g.MaxPerRun-g.MinPerRun+1)
}

// generate processes sites in parallel; each site's creates stay ordered so
// the duplicate check observes earlier creates of the same batch.
func (o *Orchestrator) generate(ctx context.Context, rec *recorder, sites []domain.Site, admin *domain.Identity, counts []int, suggestions []domain.ArticleSuggestion) {
	gen := generator.New(o.catalog, o.rnd, o.now)
	results := make([]domain.SiteResult, len(sites))

	var g errgroup.Group
	g.SetLimit(o.generation.SiteParallelism)
	for i, site := range sites {
		g.Go(func() error {
			results[i] = o.generateSite(ctx, rec, gen, site, admin.ID, counts[i], suggestions)
			return nil
		})
	}
	_ = g.Wait()

	status := domain.StageOK
	total := 0
	for _, res := range results {
		rec.site(res)
		total += res.Created
		if res.Failed > 0 || res.Created+res.Skipped+res.Failed < res.Requested {
			status = domain.StageDegraded
		}
	}
	rec.stage(domain.StageGenerate, status, fmt.Sprintf("%d posts created across %d sites", total, len(sites)))
	o.logger.Info("generation finished", "created", total, "sites", len(sites))
}

type plannedArticle struct {
	tmpl domain.ArticleTemplate
	seed *domain.ArticleSuggestion
}

func (o *Orchestrator) generateSite(ctx context.Context, rec *recorder, gen *generator.Generator, site domain.Site, authorID string, count int, suggestions []domain.ArticleSuggestion) domain.SiteResult {
	log := o.logger.With("site", site.Name)
	res := domain.SiteResult{SiteID: site.ID, SiteName: site.Name, Requested: count}

	plan := o.plan(gen, count, suggestions)
	// Creates outlive cancellation so a started post is never half-done.
	createCtx := context.WithoutCancel(ctx)

	for i, item := range plan {
		if err := ctx.Err(); err != nil {
			rec.fail(domain.StageGenerate, site.ID, fmt.Errorf("cancelled after %d of %d articles: %w", i, len(plan), err))
			rec.cancelled()
			log.Warn("batch cancelled", "attempted", i, "planned", len(plan))
			break
		}

		article := gen.Generate(item.tmpl, item.seed)
		created, err := o.gate.TryCreate(createCtx, site.ID, authorID, article)
		switch {
		case err != nil:
			res.Failed++
			rec.fail(domain.StageGenerate, site.ID, err)
			log.Warn("article create failed", "slug", article.Slug, "error", err)
		case created:
			res.Created++
		default:
			res.Skipped++
		}
	}

	log.Info("site batch finished", "created", res.Created, "skipped", res.Skipped, "failed", res.Failed)
	return res
}

// plan lists suggestion-seeded articles first (up to half the batch, highest
// priority first) and fills the rest with random templates.
func (o *Orchestrator) plan(gen *generator.Generator, count int, suggestions []domain.ArticleSuggestion) []plannedArticle {
	plan := make([]plannedArticle, 0, count)

	seeded := (count + 1) / 2
	for i := range suggestions {
		if len(plan) >= seeded {
			break
		}
		tmpl, ok := gen.MatchTemplate(suggestions[i])
		if !ok {
			continue
		}
		plan = append(plan, plannedArticle{tmpl: tmpl, seed: &suggestions[i]})
	}

	for len(plan) < count {
		tmpl, ok := gen.RandomTemplate()
		if !ok {
			break
		}
		plan = append(plan, plannedArticle{tmpl: tmpl})
	}
	return plan
}

func (o *Orchestrator) deploy(ctx context.Context, rec *recorder) {
	if o.deployer == nil {
		rec.stage(domain.StageDeploy, domain.StageSkipped, "no deployer configured")
		return
	}

	o.logger.Info("deploy started", "targets", o.targets)
	lines, err := o.deployer.Deploy(ctx, o.targets)
	rec.deploy(domain.DeployOutcome{Targets: o.targets, Success: err == nil, Log: lines})
	if err != nil {
		err = fmt.Errorf("%w: %v", domain.ErrDeployFailed, err)
		rec.fail(domain.StageDeploy, "", err)
		rec.stage(domain.StageDeploy, domain.StageFailed, err.Error())
		o.logger.Warn("deploy failed, check targets manually", "error", err)
		return
	}
	rec.stage(domain.StageDeploy, domain.StageOK, fmt.Sprintf("%d targets", len(o.targets)))
	o.logger.Info("deploy finished")
}

func (o *Orchestrator) abort(ctx context.Context, rec *recorder, stage string, err error) (*domain.RunReport, error) {
	rec.abort(stage, err)
	o.logger.Error("run aborted", "stage", stage, "error", err)
	return o.finish(ctx, rec), err
}

// finish notifies and persists the report on a detached context so a
// cancelled run still leaves its artifact behind.
func (o *Orchestrator) finish(ctx context.Context, rec *recorder) *domain.RunReport {
	if ctx.Err() != nil {
		rec.cancelled()
	}
	rec.finish(o.now())
	out := context.WithoutCancel(ctx)

	if o.notifier != nil {
		if err := o.notifier.PublishSummary(out, Summarize(rec.snapshot())); err != nil {
			o.logger.Warn("run summary not delivered", "error", err)
			rec.fail(domain.StageNotify, "", err)
		}
	}

	report := rec.snapshot()
	if o.sink != nil {
		payload, err := json.MarshalIndent(report, "", "  ")
		if err == nil {
			err = o.sink.WriteArtifact(out, "run-"+report.StartedAt.Format(stampLayout)+".json", payload)
		}
		if err != nil {
			o.logger.Warn("persist run report failed", "error", err)
		}
	}

	o.logger.Info("run finished", "mode", report.Mode, "state", report.State, "created", report.TotalCreated, "errors", len(report.Errors))
	return report
}
