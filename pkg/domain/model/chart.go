package model

import (
	"fmt"

	"github.com/m-mizutani/goerr/v2"
)

// ChartType names one of the renderable bar charts.
type ChartType string

const (
	ChartParseCPUTime       ChartType = "parse_cpu_time"
	ChartWriteCPUTime       ChartType = "write_cpu_time"
	ChartParseTransferSpeed ChartType = "parse_transfer_speed"
	ChartWriteTransferSpeed ChartType = "write_transfer_speed"
)

// ChartTypes lists chart types in display order.
var ChartTypes = []ChartType{
	ChartParseCPUTime,
	ChartWriteCPUTime,
	ChartParseTransferSpeed,
	ChartWriteTransferSpeed,
}

// ChartMetric is the value plotted per record.
type ChartMetric int

const (
	MetricCPUTime ChartMetric = iota
	MetricThroughput
)

// ChartSpec describes how one chart type is computed and labelled.
type ChartSpec struct {
	Type   ChartType
	Kind   BenchmarkKind
	Metric ChartMetric
	Title  string
	YLabel string
	// Reversed sorts bars descending (higher is better).
	Reversed bool
}

// ParseChartType validates a chart selector.
func ParseChartType(s string) (ChartType, error) {
	for _, t := range ChartTypes {
		if string(t) == s {
			return t, nil
		}
	}
	return "", goerr.Wrap(ErrUnknownChartType, "unsupported chart type", goerr.V("type", s))
}

// Spec returns title and metric settings; timeUnit fills the CPU time label.
func (t ChartType) Spec(timeUnit string) ChartSpec {
	cpuLabel := fmt.Sprintf("CPU time [%s]", timeUnit)
	switch t {
	case ChartWriteCPUTime:
		return ChartSpec{
			Type: t, Kind: KindWrite, Metric: MetricCPUTime,
			Title:  "Average CPU time writing random mesh data [ms] (lower is better)",
			YLabel: cpuLabel,
		}
	case ChartParseTransferSpeed:
		return ChartSpec{
			Type: t, Kind: KindParse, Metric: MetricThroughput,
			Title:    "Data transfer speeds parsing various models [MiB/s] (higher is better)",
			YLabel:   "Read performance [MiB/s]",
			Reversed: true,
		}
	case ChartWriteTransferSpeed:
		return ChartSpec{
			Type: t, Kind: KindWrite, Metric: MetricThroughput,
			Title:    "Data transfer speeds writing uniform triangle meshes [MiB/s] (higher is better)",
			YLabel:   "Write performance [MiB/s]",
			Reversed: true,
		}
	default:
		return ChartSpec{
			Type: ChartParseCPUTime, Kind: KindParse, Metric: MetricCPUTime,
			Title:  "Average CPU time parsing triangle mesh models [ms] (lower is better)",
			YLabel: cpuLabel,
		}
	}
}

// ChartBar is one library's value within a cluster. Value is NaN for errored runs.
type ChartBar struct {
	Library string
	Value   float64
}

// ChartCluster groups the bars of one model.
type ChartCluster struct {
	Label string
	Bars  []ChartBar
}

// ChartSeries is the data behind one chart.
type ChartSeries struct {
	Spec     ChartSpec
	Clusters []ChartCluster
}
