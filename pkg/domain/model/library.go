package model

import (
	"slices"

	"github.com/m-mizutani/goerr/v2"
)

// Library is a benchmarked PLY library.
type Library struct {
	Name string
	URL  string
}

// BenchmarkKind separates parsing benchmarks from writing benchmarks.
type BenchmarkKind string

const (
	KindParse BenchmarkKind = "parse"
	KindWrite BenchmarkKind = "write"
)

// ParseBenchmarkKind validates a kind selector.
func ParseBenchmarkKind(s string) (BenchmarkKind, error) {
	switch BenchmarkKind(s) {
	case KindParse, KindWrite:
		return BenchmarkKind(s), nil
	}
	return "", goerr.Wrap(ErrUnknownBenchmarkKind, "kind must be parse or write", goerr.V("kind", s))
}

// FormatType returns the format type extractor for the kind.
func (k BenchmarkKind) FormatType() FormatTypeFunc {
	if k == KindWrite {
		return WriteFormatType
	}
	return ParseFormatType
}

// LibraryTable maps benchmark ids to libraries. It is shared by every report.
type LibraryTable struct {
	libraries []Library
	index     map[string]int
	suites    map[BenchmarkKind]map[string]string
	// library names of each kind in order of first mapping
	members map[BenchmarkKind][]string
}

// NewLibraryTable creates an empty table.
func NewLibraryTable() *LibraryTable {
	return &LibraryTable{
		index:  map[string]int{},
		suites:  map[BenchmarkKind]map[string]string{},
		members: map[BenchmarkKind][]string{},
	}
}

// AddLibrary registers a library.
func (t *LibraryTable) AddLibrary(lib Library) *LibraryTable {
	if i, ok := t.index[lib.Name]; ok {
		t.libraries[i] = lib
		return t
	}
	t.index[lib.Name] = len(t.libraries)
	t.libraries = append(t.libraries, lib)
	return t
}

// Map assigns a benchmark id of the given kind to a registered library.
func (t *LibraryTable) Map(kind BenchmarkKind, benchmarkID, library string) *LibraryTable {
	if t.suites[kind] == nil {
		t.suites[kind] = map[string]string{}
	}
	t.suites[kind][benchmarkID] = library
	if !slices.Contains(t.members[kind], library) {
		t.members[kind] = append(t.members[kind], library)
	}
	return t
}

// Lookup resolves a benchmark id to its library.
func (t *LibraryTable) Lookup(kind BenchmarkKind, benchmarkID string) (Library, bool) {
	name, ok := t.suites[kind][benchmarkID]
	if !ok {
		return Library{}, false
	}
	return t.Library(name)
}

// Library returns a registered library by name.
func (t *LibraryTable) Library(name string) (Library, bool) {
	i, ok := t.index[name]
	if !ok {
		return Library{Name: name}, false
	}
	return t.libraries[i], true
}

// Libraries returns all libraries in registration order.
func (t *LibraryTable) Libraries() []Library {
	return append([]Library(nil), t.libraries...)
}

// Order is the registration index of a library, or -1.
func (t *LibraryTable) Order(name string) int {
	if i, ok := t.index[name]; ok {
		return i
	}
	return -1
}

// SuiteOrder is the position of a library among the libraries mapped for
// kind, or -1. It fixes the color slot of the library in charts of that kind.
func (t *LibraryTable) SuiteOrder(kind BenchmarkKind, name string) int {
	return slices.Index(t.members[kind], name)
}

// DefaultLibraryTable holds the libraries covered by the benchmark suite.
func DefaultLibraryTable() *LibraryTable {
	t := NewLibraryTable()
	for _, lib := range []Library{
		{Name: "hapPLY", URL: "https://github.com/nmwsharp/happly"},
		{Name: "miniply", URL: "https://github.com/vilya/miniply"},
		{Name: "msh_ply", URL: "https://github.com/mhalber/msh"},
		{Name: "nanoply", URL: "https://github.com/cnr-isti-vclab/vcglib/tree/main/wrap/nanoply"},
		{Name: "plylib", URL: "https://github.com/cnr-isti-vclab/vcglib/tree/main/wrap/ply"},
		{Name: "PLYwoot", URL: "https://github.com/ton/plywoot"},
		{Name: "RPly", URL: "https://w3.impa.br/~diego/software/rply"},
		{Name: "tinyply 2.3", URL: "https://github.com/ddiakopoulos/tinyply"},
	} {
		t.AddLibrary(lib)
	}

	t.Map(KindParse, "BM_ParseHapply", "hapPLY").
		Map(KindParse, "BM_ParseMiniply", "miniply").
		Map(KindParse, "BM_ParseMshPly", "msh_ply").
		Map(KindParse, "BM_ParseNanoPly", "nanoply").
		Map(KindParse, "BM_ParsePlywoot", "PLYwoot").
		Map(KindParse, "BM_ParsePlyLib", "plylib").
		Map(KindParse, "BM_ParseRPly", "RPly").
		Map(KindParse, "BM_ParseTinyply", "tinyply 2.3")

	t.Map(KindWrite, "BM_WriteHapply", "hapPLY").
		Map(KindWrite, "BM_WriteMshPly", "msh_ply").
		Map(KindWrite, "BM_WriteNanoPly", "nanoply").
		Map(KindWrite, "BM_WritePlywoot", "PLYwoot").
		Map(KindWrite, "BM_WriteRPly", "RPly").
		Map(KindWrite, "BM_WriteTinyply", "tinyply 2.3")

	return t
}
