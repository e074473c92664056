package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/nao1215/ycscrape/internal/config"
	"github.com/nao1215/ycscrape/internal/crawler"
	"github.com/nao1215/ycscrape/internal/database"
	ylog "github.com/nao1215/ycscrape/internal/log"
	"github.com/nao1215/ycscrape/internal/model"
	"github.com/nao1215/ycscrape/internal/pipeline"
	"github.com/nao1215/ycscrape/internal/report"
	"github.com/nao1215/ycscrape/internal/transport"
)

// NewScrapeCmd creates the scrape command.
func NewScrapeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scrape",
		Short: "Scrape company details from a saved listing page",
		Long: `Scrape reads a saved Y Combinator company listing, fetches the detail
page of every company it contains, and writes one row per company.

Save the listing with your browser (Inspect element, copy the results
container) because the directory renders its results with JavaScript.
Detail pages are fetched one at a time in listing order. The first failed
request stops the run and no output file is written.

The output file is yc_climate_<industry>_companies.<ext> in --output-dir.

Examples:
  # Scrape the Energy companies saved in energy.html
  ycscrape scrape -u "https://www.ycombinator.com/companies?industry=Energy" \
    -i Energy -x energy.html

  # Write Markdown into ./out and keep pages that lack details
  ycscrape scrape -u "https://www.ycombinator.com/companies?industry=Energy" \
    -i Energy -x energy.html -f markdown -o out --lenient

  # Send detail requests through a local SOCKS5 proxy
  ycscrape scrape -u ... -i Energy -x energy.html --proxy socks5://127.0.0.1:1080`,
		Args: cobra.NoArgs,
		RunE: runScrapeCmd,
	}

	cmd.Flags().StringP("url", "u", "",
		"URL of the YC companies page the snapshot was saved from")
	cmd.Flags().StringP("industry", "i", "",
		"Industry label used for the output file name")
	cmd.Flags().StringP("xml", "x", "",
		"Path to the saved listing markup")

	cmd.Flags().StringP("output-dir", "o", config.DefaultOutputDir,
		"Directory the output file is written to")
	cmd.Flags().StringP("format", "f", config.DefaultFormat,
		"Output format ("+strings.Join(config.Formats(), ", ")+")")
	cmd.Flags().StringP("config", "c", "",
		"Configuration file path (default: .ycscrape in current or home directory)")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"Timeout for each detail page request")
	cmd.Flags().String("proxy", "",
		"SOCKS5 proxy for detail requests (e.g., socks5://127.0.0.1:1080)")
	cmd.Flags().Bool("lenient", false,
		"Write blank cells instead of failing when a detail page has no details")
	cmd.Flags().Bool("no-save", false,
		"Do not archive the run in the local database")
	cmd.Flags().String("db-dir", "",
		"Directory of the run archive (default: XDG data directory)")
	cmd.Flags().Bool("log-json", false,
		"Write logs to stderr as JSON")

	_ = cmd.MarkFlagRequired("url")      //nolint:errcheck // flag is defined above
	_ = cmd.MarkFlagRequired("industry") //nolint:errcheck // flag is defined above
	_ = cmd.MarkFlagRequired("xml")      //nolint:errcheck // flag is defined above

	return cmd
}

// runScrapeCmd executes the scrape command.
func runScrapeCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logJSON, err := cmd.Flags().GetBool("log-json")
	if err != nil {
		return err
	}
	logger := setupLogger(cfg.Verbose, logJSON)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			logger.Info("received shutdown signal, cancelling...")
			cancel()
		case <-ctx.Done():
		}
	}()

	_, err = runScrape(ctx, cfg, logger, cmd.OutOrStdout())
	return err
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// buildConfig creates a Config from defaults, the config file, the
// environment and cobra flags, each overriding the previous one.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	flags := cmd.Flags()

	var err error
	cfg.ConfigFilePath, err = flags.GetString("config")
	if err != nil {
		return nil, err
	}

	// An explicit --config must exist; otherwise a missing file is fine.
	configPath := config.FindConfigFile(cfg.ConfigFilePath)
	if configPath != "" {
		file, err := config.LoadConfigFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
		cfg.ApplyFile(file)
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	if err := config.LoadDotEnv(config.DefaultEnvFile); err != nil {
		return nil, err
	}
	cfg.ApplyEnv(os.LookupEnv)

	if cfg.SourceURL, err = flags.GetString("url"); err != nil {
		return nil, err
	}
	if cfg.Industry, err = flags.GetString("industry"); err != nil {
		return nil, err
	}
	if cfg.SnapshotPath, err = flags.GetString("xml"); err != nil {
		return nil, err
	}
	if cfg.OutputDir, err = flags.GetString("output-dir"); err != nil {
		return nil, err
	}
	if cfg.Format, err = flags.GetString("format"); err != nil {
		return nil, err
	}
	cfg.Format = strings.ToLower(cfg.Format)
	if cfg.Lenient, err = flags.GetBool("lenient"); err != nil {
		return nil, err
	}

	if flags.Changed("timeout") {
		if cfg.Timeout, err = flags.GetDuration("timeout"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("proxy") {
		if cfg.ProxyURL, err = flags.GetString("proxy"); err != nil {
			return nil, err
		}
	}
	if flags.Changed("db-dir") {
		if cfg.DBDir, err = flags.GetString("db-dir"); err != nil {
			return nil, err
		}
	}

	noSave, err := flags.GetBool("no-save")
	if err != nil {
		return nil, err
	}
	cfg.SaveToDB = !noSave
	cfg.Verbose = getVerboseFlag(cmd)

	return cfg, nil
}

// setupLogger creates the secret-masking logger on stderr.
func setupLogger(verbose, jsonOutput bool) *slog.Logger {
	if jsonOutput {
		return ylog.NewSecureJSONLogger(os.Stderr, verbose)
	}
	return ylog.NewSecureLogger(os.Stderr, verbose)
}

// runScrape executes one scrape with cfg. Progress lines go to out.
func runScrape(ctx context.Context, cfg *config.Config, logger *slog.Logger, out io.Writer) (*model.Run, error) {
	client, err := transport.NewClient(cfg.ProxyURL, cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to create HTTP client: %w", err)
	}

	logger.Info("starting scrape",
		"listing", cfg.SourceURL,
		"industry", cfg.Industry,
		"snapshot", cfg.SnapshotPath,
		"proxy", client.ProxyURL(),
		"saveToDB", cfg.SaveToDB,
	)

	var cookie string
	var headers map[string]string
	if cfg.Site != nil {
		cookie = cfg.Site.Cookie
		headers = cfg.Site.Headers
	}
	logger.Debug("request settings", "cookie", cookie, "headers", headers, "timeout", client.Timeout())

	fetcher := crawler.NewFetcher(
		client.HTTPClientWithConfig(cookie, headers),
		crawler.WithUserAgent(cfg.UserAgent),
		crawler.WithMaxBodySize(cfg.MaxBodySize),
		crawler.WithFetcherLogger(logger),
	)

	sel := cfg.Selectors()
	p := pipeline.New(pipeline.WithLogger(logger))
	p.AddSteps(
		pipeline.NewLoadListingStep(crawler.NewListingParser(sel), out,
			pipeline.WithListingLogger(logger)),
		pipeline.NewFetchDetailsStep(fetcher, crawler.NewDetailParser(sel), out,
			pipeline.WithOrigin(cfg.BaseURL),
			pipeline.WithLenient(cfg.Lenient),
			pipeline.WithDetailsLogger(logger),
		),
		pipeline.NewExportStep(cfg.OutputDir, cfg.Format, out,
			pipeline.WithExportLogger(logger)),
	)

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return nil, fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		logger.Info("database opened", "path", db.Path())
		p.AddStep(pipeline.NewArchiveStep(db, logger))
	}

	logger.Debug("pipeline assembled", "steps", p.StepNames())

	run := model.NewRun(cfg.SourceURL, cfg.Industry, cfg.SnapshotPath)
	if err := p.Execute(ctx, run); err != nil {
		return run, err
	}

	logger.Info("scrape finished",
		"companies", run.CompanyCount(),
		"output", run.OutputPath,
		"duration", run.Duration(),
		"archiveID", run.ArchiveID,
	)

	if cfg.Verbose {
		summary := report.NewTableWriter(out, report.WithStyle(table.StyleLight))
		if _, err := summary.Write(run); err != nil {
			return run, fmt.Errorf("failed to print summary: %w", err)
		}
	}

	return run, nil
}
