// Package log provides the ycscrape logger: the standard slog package with
// a handler that masks secrets before they reach the output.
//
// Requests to the company directory may carry a session cookie, custom
// authorization headers from the config file, or a proxy URL with
// credentials. The SecureHandler keeps those out of logs:
//   - attributes named like cookie, authorization or token are replaced
//   - header maps have their sensitive entries replaced
//   - passwords embedded in URLs are replaced
//
// # Usage
//
//	logger := log.NewSecureLogger(os.Stderr, verbose)
//	logger.Debug("fetching detail page", "url", u, "cookie", cookie)
package log
