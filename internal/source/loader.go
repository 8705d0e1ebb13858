package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"time"
)

// Defaults for remote fetches.
const (
	DefaultTimeout        = 30 * time.Second
	DefaultUserAgent      = "binding-generator/1.0"
	DefaultMaxContentSize = 64 << 20
)

// Loader reads registry documents.
type Loader struct {
	client         *http.Client
	timeout        time.Duration
	userAgent      string
	maxContentSize int64
	logger         *slog.Logger
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the client used for remote fetches. The client's
// own timeout applies.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

// WithTimeout sets the overall timeout of a remote fetch.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithMaxContentSize limits how many bytes a remote fetch may return.
func WithMaxContentSize(n int64) Option {
	return func(l *Loader) {
		l.maxContentSize = n
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		timeout:        DefaultTimeout,
		userAgent:      DefaultUserAgent,
		maxContentSize: DefaultMaxContentSize,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		opt(l)
	}

	if l.client == nil {
		l.client = &http.Client{Timeout: l.timeout}
	}

	return l
}

// IsRemote reports whether location is an http or https URL.
func IsRemote(location string) bool {
	u, err := url.Parse(location)
	if err != nil {
		return false
	}

	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}

// Load returns the document at location: a URL is fetched, anything else is
// read as a file path.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	if IsRemote(location) {
		return l.fetch(ctx, location)
	}

	data, err := os.ReadFile(location)
	if err != nil {
		return nil, fmt.Errorf("read registry %s: %w", location, err)
	}

	l.logger.Debug("Read registry file", slog.String("path", location), slog.Int("bytes", len(data)))

	return data, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", l.userAgent)
	req.Header.Set("Accept", "application/xml,text/xml;q=0.9,*/*;q=0.8")

	start := time.Now()

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: HTTP %d: %s", location, resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, l.maxContentSize+1))
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	if int64(len(body)) > l.maxContentSize {
		return nil, fmt.Errorf("fetch %s: content too large (exceeds %d bytes)", location, l.maxContentSize)
	}

	l.logger.Info("Fetched registry",
		slog.String("url", location),
		slog.Int("bytes", len(body)),
		slog.Duration("elapsed", time.Since(start)))

	return body, nil
}
