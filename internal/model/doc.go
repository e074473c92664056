// Package model defines the core data structures used throughout ycscrape.
//
// This package contains the following main types:
//   - Entry: One company anchor parsed from the listing snapshot
//   - Details: Fields extracted from a company detail page
//   - Company: The assembled, immutable record written to the export
//   - Run: One scrape invocation and the companies it produced
//   - Page: A fetched detail page before parsing
//
// The models are serializable to JSON for export and archive storage.
package model
