package catalog

import (
	_ "embed"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/pelletier/go-toml/v2"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"go.yaml.in/yaml/v3"
)

//go:embed default.toml
var defaultCatalog []byte

//go:embed catalog.schema.json
var catalogSchema string

// Format is the encoding of a catalog file.
type Format int

const (
	FormatTOML Format = iota
	FormatYAML
)

// FormatFromPath picks the catalog encoding by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return 0, goerr.Wrap(model.ErrInvalidCatalog, "catalog must be .toml, .yaml or .yml", goerr.V("path", path))
}

// Default returns the built-in catalog.
func Default() (*model.Catalog, error) {
	return Parse(defaultCatalog, FormatTOML)
}

// Load reads, validates and decodes a catalog file.
func Load(path string) (*model.Catalog, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog", goerr.V("path", path))
	}

	c, err := Parse(data, format)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load catalog", goerr.V("path", path))
	}
	return c, nil
}

// Parse validates data against the catalog schema and decodes it.
func Parse(data []byte, format Format) (*model.Catalog, error) {
	unmarshal := toml.Unmarshal
	if format == FormatYAML {
		unmarshal = yaml.Unmarshal
	}

	var raw any
	if err := unmarshal(data, &raw); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidCatalog, "catalog is not well-formed", goerr.V("cause", err.Error()))
	}

	schema, err := jsonschema.CompileString("catalog.schema.json", catalogSchema)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compile catalog schema")
	}
	if err := schema.Validate(raw); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidCatalog, "catalog validation failed", goerr.V("cause", err.Error()))
	}

	var c model.Catalog
	if err := unmarshal(data, &c); err != nil {
		return nil, goerr.Wrap(model.ErrInvalidCatalog, "failed to decode catalog", goerr.V("cause", err.Error()))
	}
	return &c, nil
}
