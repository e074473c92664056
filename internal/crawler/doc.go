// Package crawler reads the company directory.
//
// # Components
//
//   - ListingParser: turns the saved listing snapshot into model.Entry values
//   - DetailParser: extracts founders, LinkedIn links and the labelled
//     founded, team size and location fields from a detail page
//   - Fetcher: downloads one detail page with a single GET request
//
// Parsing is done with goquery on top of golang.org/x/net/html. Which
// elements are read is described by config.Selectors, so a rebuilt site
// stylesheet only needs a config change.
//
// # Usage
//
//	entries, err := crawler.NewListingParser(sel).ParseFile("listing.html")
//	fetcher := crawler.NewFetcher(httpClient, crawler.WithUserAgent(ua))
//	page, err := fetcher.Fetch(ctx, entries[0].DetailURL(origin))
//	details, err := crawler.NewDetailParser(sel).ParseDetail(bytes.NewReader(page.Raw))
//
// The fetcher never retries. Any non-2xx response is returned as a
// *StatusError, which matches ErrUnexpectedStatus.
package crawler
