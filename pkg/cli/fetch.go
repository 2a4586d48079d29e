package cli

import (
	"context"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/plykit/pkg/cli/config"
	"github.com/m-mizutani/plykit/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdFetch() *cli.Command {
	var fetchCfg config.Fetch

	return &cli.Command{
		Name:    "fetch",
		Aliases: []string{"f"},
		Usage:   "Download sample models and extract their PLY payloads",
		Flags:   fetchCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := ctxlog.From(ctx)

			descs, err := fetchCfg.Descriptors()
			if err != nil {
				return err
			}

			downloader, cleanup, err := fetchCfg.Downloader(ctx, descs)
			if err != nil {
				return err
			}
			defer cleanup()

			fetcher := usecase.NewFetcher(downloader, usecase.WithRefreshPayload(fetchCfg.RefreshPayload))
			results, err := fetcher.FetchAll(ctx, descs, fetchCfg.Dir)
			if err != nil {
				return err
			}

			downloaded := 0
			for _, r := range results {
				if r.Downloaded {
					downloaded++
				}
			}
			logger.Info("All models are up to date",
				"dir", fetchCfg.Dir,
				"models", len(results),
				"downloaded", downloaded,
			)
			return nil
		},
	}
}
