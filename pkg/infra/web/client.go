package web

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/domain/types"
)

// HTTPClient is the subset of *http.Client used for downloads
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type config struct {
	httpClient HTTPClient
	timeout    time.Duration
	userAgent  string
}

// Option configures Client
type Option func(*config)

// WithHTTPClient replaces the underlying HTTP client
func WithHTTPClient(c HTTPClient) Option {
	return func(cfg *config) {
		cfg.httpClient = c
	}
}

// WithTimeout bounds a single download. Zero means no limit.
func WithTimeout(d time.Duration) Option {
	return func(cfg *config) {
		cfg.timeout = d
	}
}

// WithUserAgent sets the User-Agent header
func WithUserAgent(ua string) Option {
	return func(cfg *config) {
		cfg.userAgent = ua
	}
}

// Client downloads model archives over HTTP(S)
type Client struct {
	cfg config
}

// NewClient creates an HTTP downloader
func NewClient(opts ...Option) *Client {
	cfg := config{
		httpClient: http.DefaultClient,
		userAgent:  "plykit/" + types.Version,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Client{cfg: cfg}
}

// Download streams sourceURL into w. Any non-2xx status is an error.
func (c *Client) Download(ctx context.Context, sourceURL string, w io.Writer) (int64, error) {
	if c.cfg.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.cfg.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create download request", goerr.V("url", sourceURL))
	}
	req.Header.Set("User-Agent", c.cfg.userAgent)

	resp, err := c.cfg.httpClient.Do(req)
	if err != nil {
		return 0, goerr.Wrap(errors.Join(model.ErrDownloadFailed, err), "request failed",
			goerr.V("url", sourceURL))
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return 0, goerr.Wrap(model.ErrDownloadFailed, "unexpected status code",
			goerr.V("url", sourceURL), goerr.V("status", resp.StatusCode))
	}

	n, err := io.Copy(w, resp.Body)
	if err != nil {
		return n, goerr.Wrap(errors.Join(model.ErrDownloadFailed, err), "failed to read response body",
			goerr.V("url", sourceURL), goerr.V("bytes", n))
	}
	return n, nil
}
