package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/cli/config"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/usecase"
	"github.com/urfave/cli/v3"
)

const loadProblemMessage = "Problem loading benchmark data, invalid JSON?"

// loadDocument reads the input document and prints the user-facing notice
// when it holds no usable benchmark data.
func loadDocument(c *cli.Command, input *config.Input) (*model.Document, error) {
	doc, err := input.Load()
	if errors.Is(err, model.ErrEmptyBenchmarks) || errors.Is(err, model.ErrInvalidBenchmarks) {
		errWriter := c.Root().ErrWriter
		if errWriter == nil {
			errWriter = os.Stderr
		}
		_, _ = fmt.Fprintln(errWriter, loadProblemMessage)
	}
	return doc, err
}

func cmdReadme() *cli.Command {
	var (
		inputCfg    config.Input
		outputCfg   = config.Output{Default: "README.md"}
		templateArg string
	)

	flags := append(inputCfg.Flags(), outputCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "template",
		Usage:       "README template containing $parse_results_table and $write_results_table",
		Value:       "README.md.in",
		Destination: &templateArg,
	})

	return &cli.Command{
		Name:  "readme",
		Usage: "Generate README.md with the benchmark results tables",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			doc, err := loadDocument(c, &inputCfg)
			if err != nil {
				return err
			}

			tmpl, err := os.ReadFile(filepath.Clean(templateArg))
			if err != nil {
				return goerr.Wrap(err, "failed to read README template", goerr.V("path", templateArg))
			}

			out, err := usecase.NewReporter(model.DefaultLibraryTable()).Readme(ctx, doc, string(tmpl))
			if err != nil {
				return err
			}

			w, err := outputCfg.Create(c.Root().Writer)
			if err != nil {
				return err
			}
			defer func() {
				_ = w.Close()
			}()

			if _, err := w.Write([]byte(out)); err != nil {
				return goerr.Wrap(err, "failed to write README", goerr.V("path", outputCfg.Path))
			}

			ctxlog.From(ctx).Info("README generated", "template", templateArg, "output", outputCfg.Path)
			return nil
		},
	}
}

func cmdPlot() *cli.Command {
	var (
		inputCfg  config.Input
		outputCfg config.Output
		chartArg  string
	)

	flags := append(inputCfg.Flags(), outputCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "type",
		Aliases:     []string{"t"},
		Usage:       "Chart type (parse_cpu_time, write_cpu_time, parse_transfer_speed, write_transfer_speed)",
		Value:       string(model.ChartParseCPUTime),
		Destination: &chartArg,
	})

	return &cli.Command{
		Name:  "plot",
		Usage: "Render a PNG bar chart of one benchmark metric",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			chartType, err := model.ParseChartType(chartArg)
			if err != nil {
				return err
			}

			doc, err := loadDocument(c, &inputCfg)
			if err != nil {
				return err
			}

			w, err := outputCfg.Create(c.Root().Writer)
			if err != nil {
				return err
			}
			defer func() {
				_ = w.Close()
			}()

			return usecase.NewReporter(model.DefaultLibraryTable()).Chart(ctx, doc, chartType, w)
		},
	}
}

func cmdRank() *cli.Command {
	var (
		inputCfg  config.Input
		outputCfg config.Output
		kindArg   string
	)

	flags := append(inputCfg.Flags(), outputCfg.Flags()...)
	flags = append(flags, &cli.StringFlag{
		Name:        "type",
		Aliases:     []string{"t"},
		Usage:       "Benchmark kind (parse, write)",
		Value:       string(model.KindParse),
		Destination: &kindArg,
	})

	return &cli.Command{
		Name:  "rank",
		Usage: "Print the relative performance of every library per format type",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			kind, err := model.ParseBenchmarkKind(kindArg)
			if err != nil {
				return err
			}

			doc, err := loadDocument(c, &inputCfg)
			if err != nil {
				return err
			}

			w, err := outputCfg.Create(c.Root().Writer)
			if err != nil {
				return err
			}
			defer func() {
				_ = w.Close()
			}()

			return usecase.NewReporter(model.DefaultLibraryTable()).Ranking(ctx, doc, kind, w)
		},
	}
}
