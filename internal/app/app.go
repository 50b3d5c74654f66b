package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	_ "github.com/lib/pq"

	"SEOAgent/internal/catalog"
	"SEOAgent/internal/competitor"
	"SEOAgent/internal/config"
	"SEOAgent/internal/domain"
	"SEOAgent/internal/infrastructure/deploy"
	"SEOAgent/internal/infrastructure/fetch"
	"SEOAgent/internal/infrastructure/parser"
	"SEOAgent/internal/infrastructure/report"
	"SEOAgent/internal/infrastructure/scheduler"
	"SEOAgent/internal/infrastructure/storage"
	"SEOAgent/internal/infrastructure/telegram"
	"SEOAgent/internal/logging"
	"SEOAgent/internal/ports"
	"SEOAgent/internal/randomness"
	"SEOAgent/internal/scanner"
	"SEOAgent/internal/signal"
	"SEOAgent/internal/suggestion"
	"SEOAgent/internal/usecase"
	pkglogger "SEOAgent/pkg/logger"
)

const stopTimeout = 30 * time.Second

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg          config.Config
	logger       *slog.Logger
	db           *sql.DB
	orchestrator *usecase.Orchestrator
}

// New builds every adapter from cfg. The database handle is opened lazily by
// database/sql, so analyze-only runs never touch Postgres.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level, cfg.Logging.Format)
	}

	cat := catalog.Default()
	if len(cfg.Crawler.UserAgents) > 0 {
		cat.UserAgents = cfg.Crawler.UserAgents
	}
	rnd := randomness.New()

	fetcher := fetch.NewClient(fetch.Options{
		Timeout:       cfg.Crawler.Timeout,
		UserAgents:    cat.UserAgents,
		Random:        rnd,
		HostInterval:  cfg.Crawler.HostInterval,
		RespectRobots: cfg.Crawler.RespectRobots,
		Logger:        baseLogger.With("component", "fetch"),
	})

	crawler := competitor.NewCrawler(competitor.CrawlerDeps{
		Fetcher:   fetcher,
		Parse:     parser.Parse,
		Extractor: signal.NewExtractor(cat.Keywords),
		Registry:  scanner.NewDefaultRegistry(),
		Random:    rnd,
		Logger:    baseLogger.With("component", "crawler"),
		Settings: competitor.Settings{
			MaxArticles:     cfg.Crawler.MaxArticles,
			MinDelay:        cfg.Crawler.MinDelay,
			MaxDelay:        cfg.Crawler.MaxDelay,
			CompetitorPause: cfg.Crawler.CompetitorPause,
			Parallelism:     cfg.Crawler.Parallelism,
			TopKeywords:     competitor.DefaultSettings().TopKeywords,
		},
		GeneralRecommendations: cat.GeneralRecommendations,
	})

	db, err := sql.Open("postgres", cfg.Database.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	var deployer ports.Deployer
	if cfg.Deploy.Enabled() {
		d, err := deploy.NewSSHDeployer(deploy.Config{
			Host:                  cfg.Deploy.Host,
			Port:                  cfg.Deploy.Port,
			User:                  cfg.Deploy.User,
			Password:              cfg.Deploy.Password,
			PrivateKeyPath:        cfg.Deploy.PrivateKeyPath,
			KnownHostsPath:        cfg.Deploy.KnownHostsPath,
			InsecureIgnoreHostKey: cfg.Deploy.InsecureIgnoreHostKey,
			Commands:              cfg.Deploy.Commands,
			Timeout:               cfg.Deploy.Timeout,
		}, baseLogger.With("component", "deploy"))
		if err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("configure deploy: %w", err)
		}
		deployer = d
	} else {
		baseLogger.Warn("deploy not configured, deploy stage will be skipped")
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.Enabled() {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	orchestrator := usecase.NewOrchestrator(usecase.OrchestratorDeps{
		Analyzer:      crawler,
		Competitors:   cfg.Competitors,
		Suggester:     suggestion.NewEngine(cat.Topics, cat.Outline, nil),
		Catalog:       cat,
		Store:         storage.NewPostgresStore(db),
		Deployer:      deployer,
		DeployTargets: cfg.Deploy.Targets,
		Sink:          report.NewFileSink(cfg.Reports.Dir, cfg.Reports.RenderHTML, baseLogger.With("component", "reports")),
		Notifier:      notifier,
		Random:        rnd,
		Generation: usecase.Generation{
			MinPerRun:       cfg.Generation.MinPerRun,
			MaxPerRun:       cfg.Generation.MaxPerRun,
			SiteParallelism: cfg.Generation.SiteParallelism,
		},
		Logger: baseLogger.With("component", "orchestrator"),
	})

	return &Application{cfg: cfg, logger: baseLogger, db: db, orchestrator: orchestrator}, nil
}

// RunFull executes analyze, suggest, generate and deploy once.
func (a *Application) RunFull(ctx context.Context) (*domain.RunReport, error) {
	return a.orchestrator.RunFull(ctx)
}

// RunAnalyze crawls competitors and writes the analysis report.
func (a *Application) RunAnalyze(ctx context.Context) (*domain.RunReport, error) {
	return a.orchestrator.RunAnalyze(ctx)
}

// RunGenerate creates count articles per site; count <= 0 uses the configured default.
func (a *Application) RunGenerate(ctx context.Context, count int, site string) (*domain.RunReport, error) {
	if count <= 0 {
		count = a.cfg.Generation.DefaultCount
	}
	return a.orchestrator.RunGenerate(ctx, count, site)
}

// RunDeploy redeploys the configured targets.
func (a *Application) RunDeploy(ctx context.Context) (*domain.RunReport, error) {
	return a.orchestrator.RunDeploy(ctx)
}

// Schedule runs the full pipeline on the configured cron expression until ctx ends.
func (a *Application) Schedule(ctx context.Context) error {
	driver, err := scheduler.NewCronScheduler(a.cfg.Scheduler.CronExpression, a.cfg.Scheduler.Timezone, pkglogger.New("cron"))
	if err != nil {
		return err
	}

	sched := usecase.NewScheduler(driver, a.orchestrator, a.logger.With("component", "scheduler"))
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	a.logger.Info("scheduler started", "cron", a.cfg.Scheduler.CronExpression, "timezone", a.cfg.Scheduler.Timezone)

	<-ctx.Done()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	if err := sched.Stop(stopCtx); err != nil {
		return fmt.Errorf("stop scheduler: %w", err)
	}
	a.logger.Info("scheduler stopped")
	return nil
}

// Close releases the database handle.
func (a *Application) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}
