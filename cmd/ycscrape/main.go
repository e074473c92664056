// Package main provides the entry point for the ycscrape CLI.
//
// ycscrape reads a saved snapshot of the Y Combinator company directory,
// visits every company detail page, and exports founders, LinkedIn links,
// founding year, team size and location as a table.
//
// Usage:
//
//	ycscrape scrape --url <listing-url> --industry <name> --xml <snapshot.html>
//	ycscrape history --industry <name> --diff
//
// See --help for all available options.
package main

// main is the entry point for ycscrape.
func main() {
	Execute()
}
