package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command for ycscrape.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ycscrape",
		Short: "Scrape Y Combinator company profiles into a table",
		Long: `ycscrape turns a saved Y Combinator company listing into a table.

It reads the listing snapshot you saved from your browser, fetches each
company's detail page, and writes name, blurb, link, founders, LinkedIn
links, founding year, team size and location to a CSV, JSON or Markdown file.
Every run is archived locally so later runs can be compared.`,
		Version:       getVersion(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")

	cmd.AddCommand(NewScrapeCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
