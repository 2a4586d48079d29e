package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/plykit/pkg/cli/config"
)

func TestLogger_Configure(t *testing.T) {
	tests := []struct {
		name    string
		level   string
		format  string
		wantErr bool
	}{
		{name: "Valid level: debug", level: "debug"},
		{name: "Valid level: DEBUG (case insensitive)", level: "DEBUG"},
		{name: "Valid level: info", level: "info"},
		{name: "Valid level: WARN", level: "WARN"},
		{name: "Valid level: error", level: "error"},
		{name: "JSON format", level: "info", format: "json"},
		{name: "Invalid level: invalid", level: "invalid", wantErr: true},
		{name: "Invalid level: empty string", level: "", wantErr: true},
		{name: "Invalid format", level: "info", format: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger := &config.Logger{
				Level:  tt.level,
				Format: tt.format,
			}

			result, err := logger.Configure()
			if tt.wantErr {
				gt.Error(t, err)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, result).NotNil()
		})
	}
}

func TestLogger_Configure_FileOutputMasksSecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "plykit.log")
	logger := &config.Logger{Level: "debug", Format: "json", Output: path}

	result, err := logger.Configure()
	gt.NoError(t, err)

	sentryCfg := config.Sentry{DSN: "https://key@o0.ingest.sentry.io/1", Environment: "test"}
	result.Info("configured", "sentry", sentryCfg)

	data, err := os.ReadFile(path)
	gt.NoError(t, err)
	gt.String(t, string(data)).Contains(`"msg":"configured"`)
	gt.String(t, string(data)).Contains(`"Environment":"test"`)
	gt.String(t, string(data)).NotContains("key@o0.ingest.sentry.io")
}

func TestLogger_Flags(t *testing.T) {
	logger := &config.Logger{}
	flags := logger.Flags()
	gt.A(t, flags).Length(3)

	flagNames := make(map[string]bool)
	for _, flag := range flags {
		names := flag.Names()
		if len(names) > 0 {
			flagNames[names[0]] = true
		}
	}

	gt.True(t, flagNames["log-level"])
	gt.True(t, flagNames["log-format"])
	gt.True(t, flagNames["log-output"])
}

func TestSentry_DisabledWithoutDSN(t *testing.T) {
	cfg := &config.Sentry{}
	gt.False(t, cfg.Enabled())
	gt.NoError(t, cfg.Configure())
	cfg.Report(os.ErrNotExist)
}
