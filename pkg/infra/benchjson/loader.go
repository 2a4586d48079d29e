package benchjson

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"io"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"github.com/tidwall/gjson"
)

//go:embed benchmarks.schema.json
var benchmarksSchema string

// Read loads a Google Benchmark JSON document from r.
func Read(r io.Reader) (*model.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read benchmark data")
	}
	return Parse(data)
}

// Parse validates data and extracts its benchmark records. Aggregate records
// from repeated runs are skipped.
func Parse(data []byte) (*model.Document, error) {
	if !gjson.ValidBytes(data) {
		return nil, goerr.Wrap(model.ErrInvalidBenchmarks, "benchmark data is not valid JSON")
	}

	benchmarks := gjson.GetBytes(data, "benchmarks")
	if !benchmarks.IsArray() || len(benchmarks.Array()) == 0 {
		return nil, goerr.Wrap(model.ErrEmptyBenchmarks, "no benchmarks in document")
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	doc := &model.Document{}
	for _, rec := range benchmarks.Array() {
		if rec.Get("run_type").String() == "aggregate" {
			continue
		}

		bps := rec.Get("bytes_per_second")
		doc.Benchmarks = append(doc.Benchmarks, model.Benchmark{
			Name:              rec.Get("name").String(),
			RunType:           rec.Get("run_type").String(),
			CPUTime:           rec.Get("cpu_time").Float(),
			TimeUnit:          rec.Get("time_unit").String(),
			BytesPerSecond:    bps.Float(),
			HasBytesPerSecond: bps.Exists(),
			ErrorOccurred:     rec.Get("error_occurred").Bool(),
		})
	}

	if len(doc.Benchmarks) == 0 {
		return nil, goerr.Wrap(model.ErrEmptyBenchmarks, "document holds only aggregate records")
	}
	return doc, nil
}

func validate(data []byte) error {
	schema, err := jsonschema.CompileString("benchmarks.schema.json", benchmarksSchema)
	if err != nil {
		return goerr.Wrap(err, "failed to compile benchmark schema")
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return goerr.Wrap(model.ErrInvalidBenchmarks, "failed to decode benchmark data", goerr.V("cause", err.Error()))
	}

	if err := schema.Validate(raw); err != nil {
		return goerr.Wrap(model.ErrInvalidBenchmarks, "benchmark data does not match schema", goerr.V("cause", err.Error()))
	}
	return nil
}
