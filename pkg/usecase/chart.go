package usecase

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

const (
	chartWidthPx  = 3840
	chartHeightPx = 2160
	chartDPI      = 163
	// share of a cluster slot covered by its bars
	clusterFill = 0.90
	bytesPerMiB = 1024 * 1024
)

// BuildChartSeries groups the metric of spec by model. Every record of a
// mapped library contributes a bar, repeated runs included. Errored runs
// carry NaN.
func BuildChartSeries(records []model.Benchmark, libraries *model.LibraryTable, spec model.ChartSpec) (*model.ChartSeries, error) {
	clusters := map[string][]model.ChartBar{}
	var labels []string

	for _, b := range records {
		lib, desc, ok, err := resolve(b, libraries, spec.Kind)
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		label := model.ModelLabel(desc)
		if _, exists := clusters[label]; !exists {
			labels = append(labels, label)
		}
		clusters[label] = append(clusters[label], model.ChartBar{Library: lib.Name, Value: metricValue(b, spec.Metric)})
	}

	sort.SliceStable(labels, func(i, j int) bool {
		ni, fi := splitLabel(labels[i])
		nj, fj := splitLabel(labels[j])
		if fi != fj {
			return fi < fj
		}
		return ni < nj
	})

	series := &model.ChartSeries{Spec: spec}
	for _, label := range labels {
		cluster := model.ChartCluster{Label: label, Bars: clusters[label]}
		sortBars(cluster.Bars, libraries, spec.Reversed)
		series.Clusters = append(series.Clusters, cluster)
	}

	return series, nil
}

func metricValue(b model.Benchmark, metric model.ChartMetric) float64 {
	if b.ErrorOccurred {
		return math.NaN()
	}
	if metric == model.MetricThroughput {
		if !b.HasBytesPerSecond {
			return math.NaN()
		}
		return b.BytesPerSecond / bytesPerMiB
	}
	return b.CPUTime
}

func splitLabel(label string) (name, format string) {
	name, format, _ = strings.Cut(label, "\n")
	return name, format
}

// sortBars orders ascending (descending if reversed) with NaN last.
func sortBars(bars []model.ChartBar, libraries *model.LibraryTable, reversed bool) {
	sort.SliceStable(bars, func(i, j int) bool {
		a, b := bars[i], bars[j]
		aNaN, bNaN := math.IsNaN(a.Value), math.IsNaN(b.Value)
		switch {
		case aNaN && bNaN:
			return libraries.Order(a.Library) < libraries.Order(b.Library)
		case aNaN:
			return false
		case bNaN:
			return true
		case a.Value == b.Value:
			return libraries.Order(a.Library) < libraries.Order(b.Library)
		case reversed:
			return a.Value > b.Value
		default:
			return a.Value < b.Value
		}
	})
}

func isDrawable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

type placedBar struct {
	bar     *plotter.BarChart
	labels  *plotter.Labels
	cluster int
	slot    int
	count   int
}

// RenderChart draws series as a grouped bar chart and writes it as PNG.
func RenderChart(w io.Writer, series *model.ChartSeries, libraries *model.LibraryTable) error {
	if len(series.Clusters) == 0 {
		return goerr.Wrap(model.ErrEmptyBenchmarks, "no records for chart", goerr.V("type", series.Spec.Type))
	}

	p := plot.New()
	p.Title.Text = series.Spec.Title
	p.Title.TextStyle.Font.Size = vg.Points(18)
	p.Y.Label.Text = series.Spec.YLabel
	p.Y.Label.TextStyle.Font.Size = vg.Points(14)
	p.Y.Tick.Label.Font.Size = vg.Points(11)
	p.X.Tick.Label.Font.Size = vg.Points(11)
	p.Legend.Top = true
	p.Legend.Left = !series.Spec.Reversed
	p.Legend.TextStyle.Font.Size = vg.Points(12)

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	p.Add(grid)

	ticks := make([]plot.Tick, len(series.Clusters))
	var placed []placedBar
	seen := map[string]bool{}
	maxValue := 0.0

	for ci, cluster := range series.Clusters {
		ticks[ci] = plot.Tick{Value: float64(ci), Label: cluster.Label}

		for slot, b := range cluster.Bars {
			text := "NaN"
			y := 0.0
			var bar *plotter.BarChart
			if isDrawable(b.Value) {
				var err error
				bar, err = plotter.NewBarChart(plotter.Values{b.Value}, vg.Points(1))
				if err != nil {
					return goerr.Wrap(err, "failed to create bar", goerr.V("library", b.Library))
				}
				bar.XMin = float64(ci)
				bar.Color = plotutil.Color(max(0, libraries.SuiteOrder(series.Spec.Kind, b.Library)))
				bar.LineStyle.Width = 0
				p.Add(bar)

				if !seen[b.Library] {
					p.Legend.Add(b.Library, bar)
					seen[b.Library] = true
				}
				text = fmt.Sprintf("%.2f", b.Value)
				y = b.Value
				maxValue = max(maxValue, b.Value)
			}

			labels, err := plotter.NewLabels(plotter.XYLabels{
				XYs:    plotter.XYs{{X: float64(ci), Y: y}},
				Labels: []string{text},
			})
			if err != nil {
				return goerr.Wrap(err, "failed to create bar label", goerr.V("library", b.Library))
			}
			for i := range labels.TextStyle {
				labels.TextStyle[i].Rotation = math.Pi / 2
				labels.TextStyle[i].XAlign = draw.XLeft
				labels.TextStyle[i].YAlign = draw.YCenter
				labels.TextStyle[i].Font.Size = vg.Points(8)
			}
			p.Add(labels)

			placed = append(placed, placedBar{bar: bar, labels: labels, cluster: ci, slot: slot, count: len(cluster.Bars)})
		}
	}

	p.X.Tick.Marker = plot.ConstantTicks(ticks)
	p.X.Min = -0.5
	p.X.Max = float64(len(series.Clusters)) - 0.5
	p.Y.Min = 0
	if maxValue > 0 {
		// headroom for the rotated value labels
		p.Y.Max = maxValue * 1.2
	} else {
		p.Y.Max = 1
	}

	width := vg.Length(chartWidthPx) / chartDPI * vg.Inch
	height := vg.Length(chartHeightPx) / chartDPI * vg.Inch
	canvas := vgimg.NewWith(vgimg.UseWH(width, height), vgimg.UseDPI(chartDPI))
	dc := draw.New(canvas)

	// Bar widths are in canvas units while clusters sit at data coordinates,
	// so size bars from the data area the axes leave over.
	area := p.DataCanvas(dc)
	slotWidth := (area.Max.X - area.Min.X) / vg.Length(len(series.Clusters))
	for _, pb := range placed {
		barWidth := slotWidth * clusterFill / vg.Length(pb.count)
		offset := (vg.Length(pb.slot) - vg.Length(pb.count-1)/2) * barWidth
		if pb.bar != nil {
			pb.bar.Width = barWidth
			pb.bar.Offset = offset
		}
		pb.labels.Offset = vg.Point{X: offset, Y: vg.Points(3)}
	}

	p.Draw(dc)

	png := vgimg.PngCanvas{Canvas: canvas}
	if _, err := png.WriteTo(w); err != nil {
		return goerr.Wrap(err, "failed to write chart image")
	}
	return nil
}
