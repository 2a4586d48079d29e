package usecase

import (
	"context"
	"io"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/interfaces"
	"github.com/m-mizutani/plykit/pkg/domain/model"
)

// Reporter renders every benchmark report against one shared library table
type Reporter struct {
	libraries *model.LibraryTable
}

// NewReporter creates a Reporter. A nil table selects the default libraries.
func NewReporter(libraries *model.LibraryTable) *Reporter {
	if libraries == nil {
		libraries = model.DefaultLibraryTable()
	}
	return &Reporter{libraries: libraries}
}

var _ interfaces.ReportUseCase = (*Reporter)(nil)

// ResultsTable renders the Markdown results table of kind
func (r *Reporter) ResultsTable(ctx context.Context, doc *model.Document, kind model.BenchmarkKind) (string, error) {
	table, err := BuildResultsTable(doc.Benchmarks, r.libraries, kind)
	if err != nil {
		return "", goerr.Wrap(err, "failed to build results table", goerr.V("kind", kind))
	}
	if len(table.Rows) == 0 {
		ctxlog.From(ctx).Warn("No benchmark records matched", "kind", kind)
	}
	return RenderResultsTable(table, r.libraries), nil
}

// Readme fills both results tables into template
func (r *Reporter) Readme(ctx context.Context, doc *model.Document, template string) (string, error) {
	parse, err := r.ResultsTable(ctx, doc, model.KindParse)
	if err != nil {
		return "", err
	}
	write, err := r.ResultsTable(ctx, doc, model.KindWrite)
	if err != nil {
		return "", err
	}

	return ExpandTemplate(template, map[string]string{
		PlaceholderParseResults: parse,
		PlaceholderWriteResults: write,
	}), nil
}

// Ranking writes the relative performance listing of kind to w
func (r *Reporter) Ranking(ctx context.Context, doc *model.Document, kind model.BenchmarkKind, w io.Writer) error {
	rankings, err := BuildRankings(doc.Benchmarks, r.libraries, kind)
	if err != nil {
		return goerr.Wrap(err, "failed to build rankings", goerr.V("kind", kind))
	}
	if len(rankings) == 0 {
		ctxlog.From(ctx).Warn("No benchmark records matched", "kind", kind)
	}
	return WriteRankings(w, rankings)
}

// Chart renders chartType as PNG to w
func (r *Reporter) Chart(ctx context.Context, doc *model.Document, chartType model.ChartType, w io.Writer) error {
	spec := chartType.Spec(doc.TimeUnit())
	series, err := BuildChartSeries(doc.Benchmarks, r.libraries, spec)
	if err != nil {
		return goerr.Wrap(err, "failed to build chart series", goerr.V("type", chartType))
	}

	ctxlog.From(ctx).Debug("Rendering chart",
		"type", chartType,
		"models", len(series.Clusters),
	)
	return RenderChart(w, series, r.libraries)
}
