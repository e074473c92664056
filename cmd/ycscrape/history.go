package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/nao1215/ycscrape/internal/config"
	"github.com/nao1215/ycscrape/internal/database"
	"github.com/nao1215/ycscrape/internal/report"
)

// formatTable prints archived runs with go-pretty instead of an export writer.
const formatTable = "table"

// NewHistoryCmd creates the history command.
// It reads runs archived by the scrape command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List and compare archived scrape runs",
		Long: `History shows the runs archived by 'ycscrape scrape'.

Without flags it lists every archived run, newest first. --show prints the
companies of one run, and --diff compares the latest two runs of an
industry by company link.

Examples:
  # List all runs
  ycscrape history

  # List the Energy runs only
  ycscrape history --industry Energy

  # Print the companies of run 3 as JSON
  ycscrape history --show 3 --format json

  # Which companies appeared or disappeared since the previous Energy run
  ycscrape history --industry Energy --diff`,
		Args: cobra.NoArgs,
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("industry", "",
		"Only include runs of this industry")
	cmd.Flags().Int64("show", 0,
		"Print the companies of the run with this ID")
	cmd.Flags().Bool("diff", false,
		"Compare the latest two runs of --industry")
	cmd.Flags().String("format", formatTable,
		"Output format for --show ("+formatTable+", "+strings.Join(config.Formats(), ", ")+")")
	cmd.Flags().String("db-dir", "",
		"Directory of the run archive (default: XDG data directory)")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, _ []string) error {
	flags := cmd.Flags()

	industry, err := flags.GetString("industry")
	if err != nil {
		return err
	}
	showID, err := flags.GetInt64("show")
	if err != nil {
		return err
	}
	diff, err := flags.GetBool("diff")
	if err != nil {
		return err
	}
	format, err := flags.GetString("format")
	if err != nil {
		return err
	}

	// Validate before opening the database.
	if diff && industry == "" {
		return errors.New("--diff requires --industry")
	}
	if diff && showID != 0 {
		return errors.New("--diff and --show cannot be combined")
	}

	dbDir, err := historyDBDir(cmd)
	if err != nil {
		return err
	}

	db, err := database.Open(dbDir, database.DefaultOptions())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	ctx := context.Background()
	out := cmd.OutOrStdout()

	switch {
	case showID != 0:
		return showRun(ctx, db, showID, strings.ToLower(format), out)
	case diff:
		return diffLatestRuns(ctx, db, industry, out)
	default:
		return listRuns(ctx, db, industry, out)
	}
}

// historyDBDir resolves the archive directory: flag, then environment,
// then the XDG default.
func historyDBDir(cmd *cobra.Command) (string, error) {
	if cmd.Flags().Changed("db-dir") {
		return cmd.Flags().GetString("db-dir")
	}
	if err := config.LoadDotEnv(config.DefaultEnvFile); err != nil {
		return "", err
	}
	cfg := config.NewConfig()
	cfg.ApplyEnv(os.LookupEnv)
	return cfg.DBDir, nil
}

// listRuns prints archived runs, newest first.
func listRuns(ctx context.Context, db *database.RunDB, industry string, out io.Writer) error {
	runs, err := db.ListRuns(ctx, industry)
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		if industry != "" {
			fmt.Fprintf(out, "No archived runs found for %s.\n", industry)
		} else {
			fmt.Fprintln(out, "No archived runs found.")
		}
		fmt.Fprintln(out, "\nUse 'ycscrape scrape' to scrape a listing.")
		return nil
	}

	summaries := make([]report.RunSummary, 0, len(runs))
	for _, r := range runs {
		summaries = append(summaries, report.RunSummary{
			ID:        r.ID,
			Industry:  r.Industry,
			SourceURL: r.SourceURL,
			StartedAt: r.StartedAt.Local().Format(time.DateTime),
			Companies: r.CompanyCount,
			Output:    r.OutputPath,
		})
	}
	if _, err := report.NewTableWriter(out).WriteRuns(summaries); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nUse 'ycscrape history --show <id>' to see the companies of a run.")
	return nil
}

// showRun prints the companies of one archived run.
func showRun(ctx context.Context, db *database.RunDB, id int64, format string, out io.Writer) error {
	run, err := db.GetRun(ctx, id)
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("run %d not found (use 'ycscrape history' to list runs)", id)
	}

	var w report.Writer
	if format == formatTable {
		// One run is read on its own, so blurbs are shown in full.
		w = report.NewTableWriter(out, report.WithBlurbWidth(0))
	} else if w, err = report.NewWriter(format, out); err != nil {
		return err
	}

	_, err = w.Write(run)
	return err
}

// diffLatestRuns prints companies added and removed between the latest two
// runs of an industry.
func diffLatestRuns(ctx context.Context, db *database.RunDB, industry string, out io.Writer) error {
	runs, err := db.LatestRuns(ctx, industry, 2)
	if err != nil {
		return err
	}
	if len(runs) < 2 {
		return fmt.Errorf("need at least two archived runs of %s to compare, found %d", industry, len(runs))
	}

	newer, err := db.GetRun(ctx, runs[0].ID)
	if err != nil {
		return err
	}
	older, err := db.GetRun(ctx, runs[1].ID)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Comparing run %d (%s) with run %d (%s)\n\n",
		runs[1].ID, runs[1].StartedAt.Local().Format(time.DateTime),
		runs[0].ID, runs[0].StartedAt.Local().Format(time.DateTime),
	)

	added, removed := database.Diff(older, newer)
	if len(added) == 0 && len(removed) == 0 {
		fmt.Fprintln(out, "No companies were added or removed.")
		return nil
	}

	_, err = report.NewTableWriter(out).WriteDiff(added, removed)
	return err
}
