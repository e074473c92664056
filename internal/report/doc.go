// Package report writes scrape runs to files and terminals.
//
// This package contains writers for different output formats:
//   - CSVWriter: the flat company table, one row per company
//   - JSONWriter: the run with metadata, for tool integration
//   - MarkdownWriter: a GitHub Flavored Markdown table for sharing
//   - TableWriter: a terminal table used by the summary and history views
//
// Writers implement the Writer interface, so the scrape command picks one
// by format name with NewWriter and the rest of the code does not care
// which it got.
package report
