package crawler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/nao1215/ycscrape/internal/model"
)

const (
	acceptHeader         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	acceptLanguageHeader = "en-US,en;q=0.5"

	defaultUserAgent   = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"
	defaultMaxBodySize = 10 * 1024 * 1024 // 10MB

	// drainLimit bounds how much of an error response is read before closing.
	drainLimit = 4096
)

// Fetcher downloads company detail pages, one GET per call.
type Fetcher struct {
	client      *resty.Client
	userAgent   string
	maxBodySize int64
	logger      *slog.Logger
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithUserAgent sets a custom User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithMaxBodySize sets the maximum response body size. Zero keeps the default.
func WithMaxBodySize(size int64) FetcherOption {
	return func(f *Fetcher) {
		if size > 0 {
			f.maxBodySize = size
		}
	}
}

// WithFetcherLogger sets the logger used for request tracing.
func WithFetcherLogger(logger *slog.Logger) FetcherOption {
	return func(f *Fetcher) {
		f.logger = logger
	}
}

// NewFetcher creates a Fetcher on top of httpClient.
// The client decides proxying, timeout and cookie handling.
func NewFetcher(httpClient *http.Client, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		userAgent:   defaultUserAgent,
		maxBodySize: defaultMaxBodySize,
		logger:      slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = resty.NewWithClient(httpClient).
		SetHeader("User-Agent", f.userAgent).
		SetHeader("Accept", acceptHeader).
		SetHeader("Accept-Language", acceptLanguageHeader).
		SetRetryCount(0).
		SetDoNotParseResponse(true)

	return f
}

// Fetch performs one GET request for pageURL.
// A transport failure is returned wrapped; a non-2xx response is returned
// as a *StatusError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*model.Page, error) {
	f.logger.Debug("fetching detail page", "url", pageURL)

	resp, err := f.client.R().SetContext(ctx).Get(pageURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	body := resp.RawBody()
	defer body.Close()

	if !resp.IsSuccess() {
		_, _ = io.Copy(io.Discard, io.LimitReader(body, drainLimit)) //nolint:errcheck // draining only
		return nil, &StatusError{
			URL:        pageURL,
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
		}
	}

	// One byte past the limit tells a page that exactly fits from one
	// that was cut off.
	data, err := io.ReadAll(io.LimitReader(body, f.maxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", pageURL, err)
	}
	if int64(len(data)) > f.maxBodySize {
		return nil, &BodyTooLargeError{URL: pageURL, Limit: f.maxBodySize}
	}

	page := &model.Page{
		URL:         pageURL,
		StatusCode:  resp.StatusCode(),
		ContentType: resp.Header().Get("Content-Type"),
		Raw:         data,
		FetchedAt:   time.Now(),
	}
	page.ComputeHash()

	if !page.IsHTML() {
		f.logger.Warn("detail page is not HTML, parsing anyway",
			"url", pageURL,
			"contentType", page.ContentType,
		)
	}

	f.logger.Debug("fetched detail page",
		"url", pageURL,
		"status", page.StatusCode,
		"bytes", len(page.Raw),
		"duration", resp.Time(),
	)

	return page, nil
}
