// Package transport builds the HTTP clients used to fetch company detail
// pages.
//
// Requests go out directly by default. When a socks5:// proxy URL is
// configured every connection is dialed through it with
// golang.org/x/net/proxy. A cookie and extra headers from the config file
// can be attached to every request by wrapping the transport.
//
// # Usage
//
//	c, err := transport.NewClient("socks5://127.0.0.1:1080", 30*time.Second)
//	httpClient := c.HTTPClientWithConfig(cookie, headers)
package transport
