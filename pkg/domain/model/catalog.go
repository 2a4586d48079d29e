package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// Catalog is a set of model hosts read from a catalog file.
type Catalog struct {
	Hosts []CatalogHost `toml:"host" yaml:"host" json:"host"`
}

// CatalogHost groups models that share a base URL.
type CatalogHost struct {
	BaseURL string         `toml:"base_url" yaml:"base_url" json:"base_url"`
	Models  []CatalogModel `toml:"model" yaml:"model" json:"model"`
}

// CatalogModel is one catalog entry. Either Path or URL is set.
type CatalogModel struct {
	Name          string `toml:"name" yaml:"name" json:"name"`
	Path          string `toml:"path,omitempty" yaml:"path,omitempty" json:"path,omitempty"`
	URL           string `toml:"url,omitempty" yaml:"url,omitempty" json:"url,omitempty"`
	LocalFilename string `toml:"local_filename,omitempty" yaml:"local_filename,omitempty" json:"local_filename,omitempty"`
	InnerPath     string `toml:"inner_path,omitempty" yaml:"inner_path,omitempty" json:"inner_path,omitempty"`
}

// Descriptors resolves every catalog entry to a validated descriptor.
func (c *Catalog) Descriptors() ([]ModelDescriptor, error) {
	var out []ModelDescriptor
	for _, host := range c.Hosts {
		for _, m := range host.Models {
			src := m.URL
			if src == "" {
				if host.BaseURL == "" {
					return nil, goerr.Wrap(ErrInvalidCatalog, "relative model path without base_url",
						goerr.V("name", m.Name), goerr.V("path", m.Path))
				}
				src = strings.TrimSuffix(host.BaseURL, "/") + "/" + strings.TrimPrefix(m.Path, "/")
			}

			d := ModelDescriptor{
				Name:          m.Name,
				SourceURL:     src,
				LocalFilename: m.LocalFilename,
				InnerPath:     m.InnerPath,
			}
			if err := d.Validate(); err != nil {
				return nil, goerr.Wrap(err, "invalid catalog entry", goerr.V("name", m.Name))
			}
			out = append(out, d)
		}
	}
	return out, nil
}

// Select keeps the descriptors whose names are listed. An empty list keeps all.
func Select(descriptors []ModelDescriptor, names []string) ([]ModelDescriptor, error) {
	if len(names) == 0 {
		return descriptors, nil
	}

	byName := make(map[string]ModelDescriptor, len(descriptors))
	for _, d := range descriptors {
		byName[d.Name] = d
	}

	out := make([]ModelDescriptor, 0, len(names))
	for _, name := range names {
		d, ok := byName[name]
		if !ok {
			return nil, goerr.Wrap(ErrInvalidCatalog, "model is not in catalog", goerr.V("name", name))
		}
		out = append(out, d)
	}
	return out, nil
}
