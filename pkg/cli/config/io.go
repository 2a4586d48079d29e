package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/infra/benchjson"
	"github.com/urfave/cli/v3"
)

// Input selects the benchmark JSON document
type Input struct {
	Path string
}

// Flags returns CLI flags for input selection
func (c *Input) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "input",
			Aliases:     []string{"i"},
			Usage:       "Benchmark JSON file (default: stdin)",
			Destination: &c.Path,
			Sources:     cli.EnvVars("PLYKIT_INPUT"),
		},
	}
}

// Load reads and validates the benchmark document
func (c *Input) Load() (*model.Document, error) {
	if c.Path == "" || c.Path == "-" {
		return benchjson.Read(os.Stdin)
	}

	f, err := os.Open(filepath.Clean(c.Path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open benchmark file", goerr.V("path", c.Path))
	}
	defer func() {
		_ = f.Close()
	}()

	return benchjson.Read(f)
}

// Output selects where a report is written
type Output struct {
	Path    string
	Default string
}

// Flags returns CLI flags for output selection
func (c *Output) Flags() []cli.Flag {
	usage := "Output file (default: stdout)"
	if c.Default != "" {
		usage = "Output file"
	}
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       usage,
			Value:       c.Default,
			Destination: &c.Path,
		},
	}
}

// Create opens the output; stdout is returned for "" and "-" and is not closed
func (c *Output) Create(stdout io.Writer) (io.WriteCloser, error) {
	if c.Path == "" || c.Path == "-" {
		if stdout == nil {
			stdout = os.Stdout
		}
		if f, ok := stdout.(*os.File); ok {
			return stdoutFile{f}, nil
		}
		return nopWriteCloser{stdout}, nil
	}

	f, err := os.Create(filepath.Clean(c.Path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", c.Path))
	}
	return f, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }

// stdoutFile keeps Fd visible for terminal detection but is never closed.
type stdoutFile struct {
	*os.File
}

func (stdoutFile) Close() error { return nil }
