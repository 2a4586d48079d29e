package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/infra/catalog"
)

func TestDefault(t *testing.T) {
	c, err := catalog.Default()
	gt.NoError(t, err)

	descs, err := c.Descriptors()
	gt.NoError(t, err)
	gt.A(t, descs).Length(6)

	gt.Equal(t, descs[0].Name, "Stanford Bunny")
	gt.Equal(t, descs[0].SourceURL, "http://graphics.stanford.edu/bunny.tar.gz")
	gt.Equal(t, descs[0].OutputFilename(), "bun_zipper.ply")

	gt.Equal(t, descs[3].Name, "Asian Dragon")
	gt.Equal(t, descs[3].OutputFilename(), "xyzrgb_dragon.ply")

	doom := descs[5]
	gt.Equal(t, doom.ArchiveFilename(), "doom-combat-scene_ply.zip")
	gt.String(t, doom.SourceURL).Contains("?VersionId=")

	for _, d := range descs {
		_, err := d.Layout()
		gt.NoError(t, err)
	}
}

func TestLoad_YAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "models.yaml")
	gt.NoError(t, os.WriteFile(path, []byte(`
host:
  - base_url: https://example.com/models
    model:
      - name: Cube
        path: cube.ply.gz
  - model:
      - name: Sphere
        url: gs://ply-models/sphere.zip
        inner_path: sphere/sphere.ply
`), 0o600))

	c, err := catalog.Load(path)
	gt.NoError(t, err)

	descs, err := c.Descriptors()
	gt.NoError(t, err)
	gt.A(t, descs).Length(2)
	gt.Equal(t, descs[0].SourceURL, "https://example.com/models/cube.ply.gz")
	gt.Equal(t, descs[1].SourceURL, "gs://ply-models/sphere.zip")
	gt.Equal(t, descs[1].OutputFilename(), "sphere.ply")
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name:    "missing name",
			file:    "a.toml",
			content: "[[host]]\nbase_url = \"https://h\"\n[[host.model]]\npath = \"a.ply\"\n",
		},
		{
			name:    "both path and url",
			file:    "a.toml",
			content: "[[host]]\n[[host.model]]\nname = \"a\"\npath = \"a.ply\"\nurl = \"https://h/a.ply\"\n",
		},
		{
			name:    "unknown key",
			file:    "a.yaml",
			content: "host:\n  - model:\n      - name: a\n        url: https://h/a.ply\n        checksum: abc\n",
		},
		{
			name:    "broken toml",
			file:    "a.toml",
			content: "[[host\n",
		},
		{
			name:    "unknown extension",
			file:    "a.json",
			content: "{}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), tt.file)
			gt.NoError(t, os.WriteFile(path, []byte(tt.content), 0o600))

			_, err := catalog.Load(path)
			gt.Error(t, err).Is(model.ErrInvalidCatalog)
		})
	}
}

func TestCatalog_RelativePathWithoutBaseURL(t *testing.T) {
	c, err := catalog.Parse([]byte("[[host]]\n[[host.model]]\nname = \"a\"\npath = \"a.ply\"\n"), catalog.FormatTOML)
	gt.NoError(t, err)

	_, err = c.Descriptors()
	gt.Error(t, err).Is(model.ErrInvalidCatalog)
}

func TestSelect(t *testing.T) {
	c, err := catalog.Default()
	gt.NoError(t, err)
	descs, err := c.Descriptors()
	gt.NoError(t, err)

	picked, err := model.Select(descs, []string{"Lucy", "Dragon"})
	gt.NoError(t, err)
	gt.A(t, picked).Length(2)
	gt.Equal(t, picked[0].Name, "Lucy")

	_, err = model.Select(descs, []string{"Teapot"})
	gt.Error(t, err).Is(model.ErrInvalidCatalog)
}
