package transport

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"golang.org/x/net/proxy"
)

// maxRedirects stops redirect loops between detail pages.
const maxRedirects = 10

// Client creates HTTP clients with a fixed timeout and optional SOCKS5 proxy.
type Client struct {
	// proxyURL is the configured proxy, or nil for direct connections.
	proxyURL *url.URL

	// dialer dials through the proxy. Nil means direct.
	dialer proxy.Dialer

	// timeout is the per-request timeout of created clients.
	timeout time.Duration
}

// NewClient creates a Client. An empty proxyURL means direct connections.
// The proxy is not contacted here; a dead proxy surfaces on the first
// request.
func NewClient(proxyURL string, timeout time.Duration) (*Client, error) {
	c := &Client{timeout: timeout}
	if proxyURL == "" {
		return c, nil
	}

	u, err := parseProxyURL(proxyURL)
	if err != nil {
		return nil, err
	}

	dialer, err := proxy.FromURL(u, proxy.Direct)
	if err != nil {
		return nil, fmt.Errorf("failed to create SOCKS5 dialer: %w", err)
	}

	c.proxyURL = u
	c.dialer = dialer
	return c, nil
}

func parseProxyURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidProxy, err)
	}
	if u.Scheme != "socks5" && u.Scheme != "socks5h" {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProxyScheme, u.Scheme)
	}
	if u.Hostname() == "" || u.Port() == "" {
		return nil, ErrInvalidProxy
	}
	return u, nil
}

// ProxyURL returns the configured proxy URL without credentials, or "" for
// direct connections.
func (c *Client) ProxyURL() string {
	if c.proxyURL == nil {
		return ""
	}
	u := *c.proxyURL
	u.User = nil
	return u.String()
}

// Timeout returns the per-request timeout of created clients.
func (c *Client) Timeout() time.Duration {
	return c.timeout
}

// NewHTTPClient creates an HTTP client. Cookies set by the site are kept
// in a jar for the lifetime of the client.
func (c *Client) NewHTTPClient() *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone() //nolint:forcetypeassert // DefaultTransport is always *http.Transport
	transport.MaxIdleConns = 10
	transport.MaxIdleConnsPerHost = 2
	transport.IdleConnTimeout = 30 * time.Second

	if c.dialer != nil {
		transport.Proxy = nil
		transport.DialContext = c.dialContext
	}

	jar, _ := cookiejar.New(nil) //nolint:errcheck // cookiejar.New only fails with invalid options

	return &http.Client{
		Transport: transport,
		Timeout:   c.timeout,
		Jar:       jar,
		CheckRedirect: func(_ *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return http.ErrUseLastResponse
			}
			return nil
		},
	}
}

// dialContext dials through the proxy, honoring ctx when the dialer
// supports it.
func (c *Client) dialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	if cd, ok := c.dialer.(proxy.ContextDialer); ok {
		return cd.DialContext(ctx, network, addr)
	}

	type dialResult struct {
		conn net.Conn
		err  error
	}
	resultCh := make(chan dialResult, 1)
	go func() {
		conn, err := c.dialer.Dial(network, addr)
		resultCh <- dialResult{conn, err}
	}()

	select {
	case result := <-resultCh:
		return result.conn, result.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// HTTPClientWithConfig creates an HTTP client that adds the given cookie
// and headers to every request, redirects included.
func (c *Client) HTTPClientWithConfig(cookie string, headers map[string]string) *http.Client {
	client := c.NewHTTPClient()
	if cookie == "" && len(headers) == 0 {
		return client
	}

	client.Transport = &headerInjectingTransport{
		base:    client.Transport,
		cookie:  cookie,
		headers: headers,
	}
	return client
}

// headerInjectingTransport wraps an http.RoundTripper to inject
// custom headers and cookies into every request.
type headerInjectingTransport struct {
	base    http.RoundTripper
	cookie  string
	headers map[string]string
}

// RoundTrip implements http.RoundTripper.
func (t *headerInjectingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())

	if t.cookie != "" {
		if existing := clone.Header.Get("Cookie"); existing != "" {
			clone.Header.Set("Cookie", existing+"; "+t.cookie)
		} else {
			clone.Header.Set("Cookie", t.cookie)
		}
	}

	for key, value := range t.headers {
		clone.Header.Set(key, value)
	}

	return t.base.RoundTrip(clone)
}
