package gcs

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"google.golang.org/api/option"
)

// Client downloads model archives from Cloud Storage (gs://bucket/object)
type Client struct {
	storage *storage.Client
}

type config struct {
	anonymous bool
	endpoint  string
}

// Option configures Client
type Option func(*config)

// WithAnonymous accesses public buckets without credentials
func WithAnonymous(anonymous bool) Option {
	return func(c *config) {
		c.anonymous = anonymous
	}
}

// WithEndpoint points the client at an alternative endpoint such as an emulator
func WithEndpoint(endpoint string) Option {
	return func(c *config) {
		c.endpoint = endpoint
	}
}

// NewClient creates a Cloud Storage downloader
func NewClient(ctx context.Context, opts ...Option) (*Client, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	var clientOpts []option.ClientOption
	if cfg.anonymous {
		clientOpts = append(clientOpts, option.WithoutAuthentication())
	}
	if cfg.endpoint != "" {
		clientOpts = append(clientOpts, option.WithEndpoint(cfg.endpoint))
	}

	client, err := storage.NewClient(ctx, clientOpts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client")
	}
	return &Client{storage: client}, nil
}

// Close releases the underlying storage client
func (c *Client) Close() error {
	return c.storage.Close()
}

// Download streams the object named by sourceURL into w
func (c *Client) Download(ctx context.Context, sourceURL string, w io.Writer) (int64, error) {
	bucket, object, err := ParseURL(sourceURL)
	if err != nil {
		return 0, err
	}

	reader, err := c.storage.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		reason := "failed to open object"
		if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
			reason = "object does not exist"
		}
		return 0, goerr.Wrap(errors.Join(model.ErrDownloadFailed, err), reason,
			goerr.V("url", sourceURL))
	}
	defer func() {
		_ = reader.Close()
	}()

	n, err := io.Copy(w, reader)
	if err != nil {
		return n, goerr.Wrap(errors.Join(model.ErrDownloadFailed, err), "failed to read object",
			goerr.V("url", sourceURL), goerr.V("bytes", n))
	}
	return n, nil
}

// ParseURL splits gs://bucket/path/to/object into bucket and object names
func ParseURL(sourceURL string) (bucket, object string, err error) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return "", "", goerr.Wrap(model.ErrInvalidDescriptor, "invalid storage url", goerr.V("url", sourceURL))
	}
	object = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "gs" || u.Host == "" || object == "" {
		return "", "", goerr.Wrap(model.ErrInvalidDescriptor, "storage url must be gs://bucket/object",
			goerr.V("url", sourceURL))
	}
	return u.Host, object, nil
}
