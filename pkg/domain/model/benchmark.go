package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Benchmark is one record of a Google Benchmark JSON document.
type Benchmark struct {
	Name              string
	RunType           string
	CPUTime           float64
	TimeUnit          string
	BytesPerSecond    float64
	HasBytesPerSecond bool
	ErrorOccurred     bool
}

// Split partitions the record name at the first '/' into the benchmark id
// and the model description.
func (b Benchmark) Split() (id, description string, err error) {
	id, description, ok := strings.Cut(b.Name, "/")
	if !ok || id == "" {
		return "", "", goerr.Wrap(ErrMalformedBenchmarkName, "name has no model description",
			goerr.V("name", b.Name))
	}
	return id, description, nil
}

// Document is a loaded benchmark document.
type Document struct {
	Benchmarks []Benchmark
}

// TimeUnit returns the time unit of the first record.
func (d *Document) TimeUnit() string {
	if len(d.Benchmarks) == 0 {
		return ""
	}
	return d.Benchmarks[0].TimeUnit
}

// FormatTypeFunc derives the format type from a model description.
type FormatTypeFunc func(description string) (string, error)

// ParseFormatType takes the parenthesised suffix: `"Bunny (ply)"` is `ply`.
func ParseFormatType(description string) (string, error) {
	parts := strings.Split(strings.Trim(description, `"`), " (")
	if len(parts) < 2 || parts[1] == "" {
		return "", goerr.Wrap(ErrMalformedBenchmarkName, "model description has no format type",
			goerr.V("description", description))
	}
	ft := parts[1]
	return ft[:len(ft)-1], nil
}

// WriteFormatType uses the whole unquoted description.
func WriteFormatType(description string) (string, error) {
	return strings.Trim(description, `"`), nil
}

// ModelLabel turns a description into a two-line chart label.
func ModelLabel(description string) string {
	return strings.Replace(strings.Trim(description, `"`), " (", "\n(", 1)
}
