// Package input implements a read-through cache for per-day puzzle inputs.
//
// Get first looks for <cache_path>/<day>/input. On a miss it requests
// <url>/day/<day>/input with the session cookie, writes the body to the
// cache, and returns it. Cached entries never expire.
package input

import (
	"context"
	"errors"
	"log/slog"
	"net/url"

	"github.com/spf13/afero"
	"resty.dev/v3"

	"inputfetcher/internal/config"
	"inputfetcher/internal/fetcher"
	"inputfetcher/internal/ratelimit"
	"inputfetcher/internal/store"
)

// WritePolicy decides the outcome of a request whose write-back failed.
type WritePolicy int

const (
	// FailClosed returns a cache write error and no content.
	FailClosed WritePolicy = iota
	// Resilient returns the fetched content and logs the write failure.
	Resilient
)

// CachedFetcher fetches inputs through a local store. It is safe to share
// between goroutines as long as they request different days.
type CachedFetcher struct {
	base    *url.URL
	store   *store.Store
	remote  *fetcher.Remote
	limiter *ratelimit.Limiter
	policy  WritePolicy

	fs     afero.Fs
	client *resty.Client
}

// Option customises a CachedFetcher
type Option func(*CachedFetcher)

// WithFs sets the filesystem the store lives on. Defaults to the OS filesystem.
func WithFs(fs afero.Fs) Option {
	return func(f *CachedFetcher) { f.fs = fs }
}

// WithHTTPClient replaces the HTTP client. The client must send the session cookie itself.
func WithHTTPClient(client *resty.Client) Option {
	return func(f *CachedFetcher) { f.client = client }
}

// WithLimiter throttles remote requests.
func WithLimiter(l *ratelimit.Limiter) Option {
	return func(f *CachedFetcher) { f.limiter = l }
}

// WithWritePolicy overrides the policy derived from configuration.
func WithWritePolicy(p WritePolicy) Option {
	return func(f *CachedFetcher) { f.policy = p }
}

// Open loads configuration from the TOML file at path and returns a ready fetcher.
func Open(path string, opts ...Option) (*CachedFetcher, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return New(cfg, opts...)
}

// New returns a fetcher for cfg. It fails with a configuration or url_parse
// FetchError when cfg is incomplete or the base URL cannot be extended.
func New(cfg *config.Config, opts ...Option) (*CachedFetcher, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	base, err := fetcher.ParseBaseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	f := &CachedFetcher{
		base:    base,
		limiter: ratelimit.New(cfg.RateLimit),
	}
	if cfg.WritePolicy == config.WritePolicyResilient {
		f.policy = Resilient
	}

	for _, opt := range opts {
		opt(f)
	}

	if f.client == nil {
		f.client = fetcher.NewHTTPClient(cfg.Session)
	}
	f.store = store.New(f.fs, cfg.CachePath)
	f.remote = fetcher.NewRemote(f.client)

	return f, nil
}

// Close releases the underlying HTTP client's resources
func (f *CachedFetcher) Close() error {
	return f.client.Close()
}

// Endpoint returns the remote URL for day
func (f *CachedFetcher) Endpoint(day int) *url.URL {
	return fetcher.ResolveEndpoint(f.base, day)
}

// Path returns the local cache path for day
func (f *CachedFetcher) Path(day int) string {
	return f.store.Path(day)
}

// Get returns the input for day, fetching and caching it on a miss.
// Failures are *fetcher.FetchError values of type http, rejected or cache_write.
// Nothing is retried.
func (f *CachedFetcher) Get(ctx context.Context, day int) (string, error) {
	if content, ok := f.store.Lookup(day); ok {
		slog.Debug("input cache hit", "day", day, "path", f.store.Path(day))
		return content, nil
	}

	endpoint := f.Endpoint(day)
	slog.Debug("input cache miss, fetching", "day", day, "url", endpoint.String())

	if err := f.limiter.Wait(ctx, endpoint.Host); err != nil {
		return "", fetcher.NewHTTPError(err)
	}

	content, err := f.remote.Fetch(ctx, endpoint)
	if err != nil {
		return "", err
	}

	if err := f.store.Write(day, content); err != nil {
		path := f.store.Path(day)
		var we *store.WriteError
		if errors.As(err, &we) {
			path = we.Path
		}
		if f.policy == Resilient {
			slog.Warn("failed to cache input, returning uncached content", "day", day, "path", path, "error", err)
			return content, nil
		}
		return "", fetcher.NewCacheWriteError(path, err)
	}

	slog.Debug("input cached", "day", day, "path", f.store.Path(day), "bytes", len(content))
	return content, nil
}
