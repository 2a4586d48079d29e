package model

import "errors"

var (
	ErrInvalidDescriptor      = errors.New("invalid model descriptor")
	ErrUnsupportedArchive     = errors.New("unsupported archive layout")
	ErrMemberNotFound         = errors.New("archive member not found")
	ErrDownloadFailed         = errors.New("download failed")
	ErrInvalidCatalog         = errors.New("invalid model catalog")
	ErrEmptyBenchmarks        = errors.New("problem loading benchmark data, invalid JSON?")
	ErrInvalidBenchmarks      = errors.New("invalid benchmark document")
	ErrMalformedBenchmarkName = errors.New("malformed benchmark name")
	ErrUnknownChartType       = errors.New("unknown chart type")
	ErrUnknownBenchmarkKind   = errors.New("unknown benchmark kind")
)
