package model

// FormatRatios maps library name to its relative CPU time within one format type.
type FormatRatios map[string]float64

// FormatResult is the relative performance of all libraries on one format type.
type FormatResult struct {
	FormatType string
	ModelCount int
	Ratios     FormatRatios
}

// ResultsRow is one library line of a results table.
type ResultsRow struct {
	Rank    int
	Library Library
	Overall float64
}

// ResultsTable is the aggregate of one benchmark kind.
type ResultsTable struct {
	Kind BenchmarkKind
	// FormatTypes are sorted alphabetically.
	FormatTypes []string
	Formats     map[string]*FormatResult
	// Rows are sorted by ascending overall score.
	Rows []ResultsRow
}

// Ratio returns the ratio of a library on a format type, false if it has no data.
func (t *ResultsTable) Ratio(formatType, library string) (float64, bool) {
	f, ok := t.Formats[formatType]
	if !ok {
		return 0, false
	}
	r, ok := f.Ratios[library]
	return r, ok
}

// RankEntry is one line of a relative performance ranking.
type RankEntry struct {
	Library string
	Ratio   float64
}

// FormatRanking lists libraries by ascending ratio for one format type.
type FormatRanking struct {
	FormatType string
	Entries    []RankEntry
}
