package interfaces

import (
	"context"
	"io"

	"github.com/m-mizutani/plykit/pkg/domain/model"
)

// FetchUseCase downloads and extracts sample models
type FetchUseCase interface {
	// Fetch brings one model up to date in targetDir
	Fetch(ctx context.Context, desc model.ModelDescriptor, targetDir string) (*model.FetchResult, error)

	// FetchAll processes descriptors in order and stops at the first failure
	FetchAll(ctx context.Context, descs []model.ModelDescriptor, targetDir string) ([]*model.FetchResult, error)
}

// ReportUseCase renders benchmark reports from a loaded document
type ReportUseCase interface {
	// ResultsTable renders the Markdown results table of one kind
	ResultsTable(ctx context.Context, doc *model.Document, kind model.BenchmarkKind) (string, error)

	// Ranking writes the relative performance listing of one kind
	Ranking(ctx context.Context, doc *model.Document, kind model.BenchmarkKind, w io.Writer) error

	// Chart writes a PNG bar chart
	Chart(ctx context.Context, doc *model.Document, chartType model.ChartType, w io.Writer) error
}
