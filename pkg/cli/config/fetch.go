package config

import (
	"context"
	"net/url"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/interfaces"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/infra/catalog"
	"github.com/m-mizutani/plykit/pkg/infra/gcs"
	"github.com/m-mizutani/plykit/pkg/infra/source"
	"github.com/m-mizutani/plykit/pkg/infra/web"
	"github.com/urfave/cli/v3"
)

// Fetch holds model fetcher configuration
type Fetch struct {
	Dir            string
	Catalog        string
	Only           []string
	RefreshPayload bool
	Timeout        time.Duration
	GCSAnonymous   bool
}

// Flags returns CLI flags for the model fetcher
func (c *Fetch) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "dir",
			Aliases:     []string{"d"},
			Usage:       "Directory models are stored in",
			Value:       "models",
			Destination: &c.Dir,
			Sources:     cli.EnvVars("PLYKIT_MODELS_DIR"),
		},
		&cli.StringFlag{
			Name:        "catalog",
			Aliases:     []string{"c"},
			Usage:       "Model catalog file (.toml or .yaml); built-in catalog if empty",
			Destination: &c.Catalog,
			Sources:     cli.EnvVars("PLYKIT_CATALOG"),
		},
		&cli.StringSliceFlag{
			Name:        "only",
			Usage:       "Fetch only the named models (repeatable)",
			Destination: &c.Only,
		},
		&cli.BoolFlag{
			Name:        "refresh-payload",
			Usage:       "Re-extract the payload whenever the archive was re-downloaded",
			Destination: &c.RefreshPayload,
			Sources:     cli.EnvVars("PLYKIT_REFRESH_PAYLOAD"),
		},
		&cli.DurationFlag{
			Name:        "timeout",
			Usage:       "Per-download timeout (0 means no limit)",
			Destination: &c.Timeout,
			Sources:     cli.EnvVars("PLYKIT_FETCH_TIMEOUT"),
		},
		&cli.BoolFlag{
			Name:        "gcs-anonymous",
			Usage:       "Access gs:// sources without credentials",
			Destination: &c.GCSAnonymous,
			Sources:     cli.EnvVars("PLYKIT_GCS_ANONYMOUS"),
		},
	}
}

// Descriptors loads the catalog and applies the --only filter
func (c *Fetch) Descriptors() ([]model.ModelDescriptor, error) {
	var (
		cat *model.Catalog
		err error
	)
	if c.Catalog == "" {
		cat, err = catalog.Default()
	} else {
		cat, err = catalog.Load(c.Catalog)
	}
	if err != nil {
		return nil, err
	}

	descs, err := cat.Descriptors()
	if err != nil {
		return nil, err
	}
	return model.Select(descs, c.Only)
}

// Downloader builds a scheme router for descriptors. The Cloud Storage client
// is only created when a gs:// source is present. The returned func releases it.
func (c *Fetch) Downloader(ctx context.Context, descs []model.ModelDescriptor) (interfaces.Downloader, func(), error) {
	router := source.NewRouter().
		Handle(web.NewClient(web.WithTimeout(c.Timeout)), "http", "https")
	cleanup := func() {}

	for _, d := range descs {
		u, err := url.Parse(d.SourceURL)
		if err != nil || u.Scheme != "gs" {
			continue
		}

		client, err := gcs.NewClient(ctx, gcs.WithAnonymous(c.GCSAnonymous))
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to set up cloud storage source")
		}
		router.Handle(client, "gs")
		cleanup = func() {
			_ = client.Close()
		}
		break
	}

	return router, cleanup, nil
}
