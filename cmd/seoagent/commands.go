package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"SEOAgent/internal/app"
	"SEOAgent/internal/config"
	"SEOAgent/internal/domain"
	"SEOAgent/internal/logging"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

type runFunc func(ctx context.Context, a *app.Application) (*domain.RunReport, error)

func newRootCommand(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	full := func(ctx context.Context, a *app.Application) (*domain.RunReport, error) { return a.RunFull(ctx) }

	root := &cobra.Command{
		Use:   "seoagent",
		Short: "Competitor analysis and article publishing agent",
		Long: `seoagent analyzes competitor blogs, derives article topics, publishes
generated articles to every active site and redeploys the sites.

Examples:
  seoagent                     # same as "seoagent full"
  seoagent analyze             # competitor analysis only
  seoagent generate 20         # 20 articles per active site
  seoagent generate --site tg  # default count for one site
  seoagent deploy              # redeploy only
  seoagent schedule            # run "full" on the configured cron`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          opts.runner(out, full),
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "YAML config file (default $SEOAGENT_CONFIG)")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "override logging.level (debug|info|warn|error)")

	root.AddCommand(
		&cobra.Command{
			Use:   "full",
			Short: "Analyze, generate and deploy",
			Args:  cobra.NoArgs,
			RunE:  opts.runner(out, full),
		},
		&cobra.Command{
			Use:   "analyze",
			Short: "Run competitor analysis only",
			Args:  cobra.NoArgs,
			RunE: opts.runner(out, func(ctx context.Context, a *app.Application) (*domain.RunReport, error) {
				return a.RunAnalyze(ctx)
			}),
		},
		newGenerateCommand(out, opts),
		&cobra.Command{
			Use:   "deploy",
			Short: "Redeploy the configured targets only",
			Args:  cobra.NoArgs,
			RunE: opts.runner(out, func(ctx context.Context, a *app.Application) (*domain.RunReport, error) {
				report, err := a.RunDeploy(ctx)
				if err != nil {
					return report, err
				}
				if report.Deploy == nil {
					return report, errors.New("deploy is not configured")
				}
				if !report.Deploy.Success {
					return report, domain.ErrDeployFailed
				}
				return report, nil
			}),
		},
		&cobra.Command{
			Use:   "schedule",
			Short: "Run the full pipeline on the configured cron expression",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				a, err := opts.build()
				if err != nil {
					return err
				}
				defer a.Close()
				return a.Schedule(cmd.Context())
			},
		},
	)
	return root
}

func newGenerateCommand(out io.Writer, opts *rootOptions) *cobra.Command {
	var site string
	cmd := &cobra.Command{
		Use:   "generate [count]",
		Short: "Generate articles only (count per site, default generation.defaultCount)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			count := 0
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("count must be a positive integer, got %q", args[0])
				}
				count = n
			}
			return opts.runner(out, func(ctx context.Context, a *app.Application) (*domain.RunReport, error) {
				return a.RunGenerate(ctx, count, site)
			})(cmd, nil)
		},
	}
	cmd.Flags().StringVar(&site, "site", "", "restrict generation to one site (id or name)")
	return cmd
}

func (o *rootOptions) build() (*app.Application, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Logging.Level = o.logLevel
	}
	return app.New(cfg, logging.New(cfg.Logging.Level, cfg.Logging.Format))
}

func (o *rootOptions) runner(out io.Writer, run runFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		a, err := o.build()
		if err != nil {
			return err
		}
		defer a.Close()

		report, runErr := run(cmd.Context(), a)
		if report != nil {
			renderReport(out, report)
		}
		return runErr
	}
}
