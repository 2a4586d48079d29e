package usecase

import (
	"fmt"
	"math"
	"slices"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/model"
)

type formatAccumulator struct {
	sums   map[string]float64
	models map[string]struct{}
}

// aggregateCPUTime sums cpu_time per (format type, library) and counts the
// distinct models of each format type. Format types are returned in order of
// first appearance. Errored runs and benchmarks outside the library table are
// ignored. A successful run must report a positive, finite cpu_time.
func aggregateCPUTime(records []model.Benchmark, libraries *model.LibraryTable, kind model.BenchmarkKind) (map[string]*formatAccumulator, []string, error) {
	formatType := kind.FormatType()
	formats := map[string]*formatAccumulator{}
	var order []string

	for _, b := range records {
		lib, desc, ok, err := resolve(b, libraries, kind)
		if err != nil {
			return nil, nil, err
		}
		if !ok || b.ErrorOccurred {
			continue
		}
		if !(b.CPUTime > 0) || math.IsInf(b.CPUTime, 0) {
			return nil, nil, goerr.Wrap(model.ErrInvalidBenchmarks, "cpu_time must be positive",
				goerr.V("name", b.Name), goerr.V("cpu_time", b.CPUTime))
		}

		ft, err := formatType(desc)
		if err != nil {
			return nil, nil, err
		}

		acc, exists := formats[ft]
		if !exists {
			acc = &formatAccumulator{sums: map[string]float64{}, models: map[string]struct{}{}}
			formats[ft] = acc
			order = append(order, ft)
		}
		acc.sums[lib.Name] += b.CPUTime
		acc.models[desc] = struct{}{}
	}

	return formats, order, nil
}

// resolve maps a record to its library. ok is false for benchmarks that are
// not part of the suite of kind.
func resolve(b model.Benchmark, libraries *model.LibraryTable, kind model.BenchmarkKind) (model.Library, string, bool, error) {
	id, desc, err := b.Split()
	if err != nil {
		if _, mapped := libraries.Lookup(kind, b.Name); mapped {
			return model.Library{}, "", false, err
		}
		return model.Library{}, "", false, nil
	}

	lib, ok := libraries.Lookup(kind, id)
	return lib, desc, ok, nil
}

func relativeRatios(sums map[string]float64) model.FormatRatios {
	fastest := 0.0
	first := true
	for _, v := range sums {
		if first || v < fastest {
			fastest = v
			first = false
		}
	}

	ratios := make(model.FormatRatios, len(sums))
	for lib, v := range sums {
		ratios[lib] = v / fastest
	}
	return ratios
}

// BuildResultsTable computes per-format ratios and the model-weighted overall
// score of every library.
func BuildResultsTable(records []model.Benchmark, libraries *model.LibraryTable, kind model.BenchmarkKind) (*model.ResultsTable, error) {
	formats, order, err := aggregateCPUTime(records, libraries, kind)
	if err != nil {
		return nil, err
	}

	table := &model.ResultsTable{
		Kind:        kind,
		FormatTypes: slices.Sorted(slices.Values(order)),
		Formats:     make(map[string]*model.FormatResult, len(formats)),
	}

	weighted := map[string][]float64{}
	for _, ft := range order {
		acc := formats[ft]
		result := &model.FormatResult{
			FormatType: ft,
			ModelCount: len(acc.models),
			Ratios:     relativeRatios(acc.sums),
		}
		table.Formats[ft] = result

		for lib, ratio := range result.Ratios {
			for range result.ModelCount {
				weighted[lib] = append(weighted[lib], ratio)
			}
		}
	}

	overall := map[string]float64{}
	for lib, values := range weighted {
		sum := 0.0
		for _, v := range values {
			sum += v
		}
		overall[lib] = sum / float64(len(values))
	}
	overall = relativeRatios(overall)

	for name, score := range overall {
		lib, _ := libraries.Library(name)
		table.Rows = append(table.Rows, model.ResultsRow{Library: lib, Overall: score})
	}
	sort.SliceStable(table.Rows, func(i, j int) bool {
		if table.Rows[i].Overall != table.Rows[j].Overall {
			return table.Rows[i].Overall < table.Rows[j].Overall
		}
		return table.Rows[i].Library.Name < table.Rows[j].Library.Name
	})
	for i := range table.Rows {
		table.Rows[i].Rank = i + 1
	}

	return table, nil
}

// ratioColumnWidth fits " 100.00x slower ".
const ratioColumnWidth = 16

const (
	rankColumnWidth = 3
	notAvailable    = "N/A"
)

// FormatRatio renders "*1.00*" for the fastest and "N.NNx slower" otherwise.
func FormatRatio(ratio float64) string {
	if ratio == 1.0 {
		return "*1.00*"
	}
	return fmt.Sprintf("%.2fx slower", ratio)
}

// RenderResultsTable renders a fixed-width Markdown table. The library column
// is sized for the widest library of the table so tables of both kinds line up.
func RenderResultsTable(t *model.ResultsTable, libraries *model.LibraryTable) string {
	libWidth := 0
	for _, lib := range libraries.Libraries() {
		libWidth = max(libWidth, utf8.RuneCountInString(lib.Name)+utf8.RuneCountInString(lib.URL)+len(" []() "))
	}

	formatWidths := make([]int, len(t.FormatTypes))
	for i, ft := range t.FormatTypes {
		formatWidths[i] = max(ratioColumnWidth, utf8.RuneCountInString(ft)+2)
	}

	var sb strings.Builder

	sb.WriteString("|" + " # " + "|")
	sb.WriteString(padRight(" Library name ", libWidth) + "|")
	sb.WriteString(padRight(" Overall ", ratioColumnWidth) + "|")
	for i, ft := range t.FormatTypes {
		sb.WriteString(padRight(" "+capitalize(ft), formatWidths[i]) + "|")
	}
	sb.WriteString("\n")

	widths := append([]int{rankColumnWidth, libWidth, ratioColumnWidth}, formatWidths...)
	dashes := make([]string, len(widths))
	for i, w := range widths {
		dashes[i] = strings.Repeat("-", w-2)
	}
	sb.WriteString("|:" + strings.Join(dashes, ":|:") + ":|\n")

	for _, row := range t.Rows {
		link := fmt.Sprintf("[%s](%s)", row.Library.Name, row.Library.URL)
		fmt.Fprintf(&sb, "| %d | %s | %s ", row.Rank, padRight(link, libWidth-2), padRight(FormatRatio(row.Overall), ratioColumnWidth-2))
		for i, ft := range t.FormatTypes {
			cell := notAvailable
			if ratio, ok := t.Ratio(ft, row.Library.Name); ok {
				cell = FormatRatio(ratio)
			}
			fmt.Fprintf(&sb, "| %s ", padRight(cell, formatWidths[i]-2))
		}
		sb.WriteString("|\n")
	}

	return sb.String()
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToUpper(r)) + s[size:]
}
