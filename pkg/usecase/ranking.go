package usecase

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mattn/go-isatty"
	"github.com/m-mizutani/plykit/pkg/domain/model"
)

// BuildRankings orders libraries by relative CPU time within each format type.
// Format types keep their order of first appearance in records.
func BuildRankings(records []model.Benchmark, libraries *model.LibraryTable, kind model.BenchmarkKind) ([]model.FormatRanking, error) {
	formats, order, err := aggregateCPUTime(records, libraries, kind)
	if err != nil {
		return nil, err
	}

	rankings := make([]model.FormatRanking, 0, len(order))
	for _, ft := range order {
		ranking := model.FormatRanking{FormatType: ft}
		for lib, ratio := range relativeRatios(formats[ft].sums) {
			ranking.Entries = append(ranking.Entries, model.RankEntry{Library: lib, Ratio: ratio})
		}
		sort.Slice(ranking.Entries, func(i, j int) bool {
			a, b := ranking.Entries[i], ranking.Entries[j]
			if a.Ratio != b.Ratio {
				return a.Ratio < b.Ratio
			}
			return a.Library < b.Library
		})
		rankings = append(rankings, ranking)
	}
	return rankings, nil
}

// headingColor colors headings only when w is a terminal.
func headingColor(w io.Writer) *color.Color {
	c := color.New(color.FgCyan, color.Bold)
	f, ok := w.(interface{ Fd() uintptr })
	if !color.NoColor && ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}

// WriteRankings prints each format type as an underlined heading followed by
// "library: ratio" lines.
func WriteRankings(w io.Writer, rankings []model.FormatRanking) error {
	heading := headingColor(w)
	for _, r := range rankings {
		if _, err := heading.Fprintln(w, r.FormatType); err != nil {
			return goerr.Wrap(err, "failed to write ranking heading")
		}

		var sb strings.Builder
		sb.WriteString(strings.Repeat("-", len(r.FormatType)) + "\n\n")
		for _, e := range r.Entries {
			fmt.Fprintf(&sb, "%s: %.2f\n", e.Library, e.Ratio)
		}
		sb.WriteString("\n")

		if _, err := io.WriteString(w, sb.String()); err != nil {
			return goerr.Wrap(err, "failed to write ranking", goerr.V("format", r.FormatType))
		}
	}
	return nil
}
