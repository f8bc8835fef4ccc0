// Package http provides a resty based implementation of eucatalog.Fetcher
// for the statically rendered directory pages and icon assets.
package http

import (
	"context"
	"net/url"
	"time"

	"github.com/timarques/eucatalog"
	"resty.dev/v3"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the catalog builder to the upstream site.
const DefaultUserAgent = "eu-catalog-builder/1.0"

// Ensure Fetcher implements eucatalog.Fetcher at compile time.
var _ eucatalog.Fetcher = (*Fetcher)(nil)

// Fetcher performs single GET requests. It never retries.
type Fetcher struct {
	client    *resty.Client
	timeout   time.Duration
	userAgent string
	limiter   *HostLimiter
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithRateLimit limits requests to rps per host. Zero or negative values
// disable limiting.
func WithRateLimit(rps float64) Option {
	return func(f *Fetcher) {
		if rps > 0 {
			f.limiter = NewHostLimiter(rps)
		} else {
			f.limiter = nil
		}
	}
}

// NewFetcher creates a new Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = resty.New().
		SetTimeout(f.timeout).
		SetRetryCount(0).
		SetHeader("User-Agent", f.userAgent)

	return f
}

// FetchText retrieves the body of url as text.
func (f *Fetcher) FetchText(ctx context.Context, url string) (string, error) {
	body, err := f.FetchBytes(ctx, url)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FetchBytes retrieves the raw body of url.
func (f *Fetcher) FetchBytes(ctx context.Context, rawURL string) ([]byte, error) {
	if f.limiter != nil {
		u, err := url.Parse(rawURL)
		if err != nil {
			return nil, eucatalog.Errorf(eucatalog.ENETWORK, "invalid URL %q: %v", rawURL, err)
		}
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, eucatalog.Errorf(eucatalog.ENETWORK, "rate limit wait for %s: %v", rawURL, err)
		}
	}

	resp, err := f.client.R().
		SetContext(ctx).
		Get(rawURL)
	if err != nil {
		return nil, eucatalog.Errorf(eucatalog.ENETWORK, "GET %s: %v", rawURL, err)
	}

	if !resp.IsSuccess() {
		return nil, eucatalog.Errorf(eucatalog.ENETWORK, "HTTP %d for %s", resp.StatusCode(), rawURL)
	}

	return resp.Bytes(), nil
}

// Close releases idle connections held by the underlying client.
func (f *Fetcher) Close() error {
	return f.client.Close()
}
