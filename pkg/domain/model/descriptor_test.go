package model_test

import (
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/plykit/pkg/domain/model"
)

func TestModelDescriptor_Filenames(t *testing.T) {
	tests := []struct {
		name     string
		desc     model.ModelDescriptor
		archive  string
		checksum string
		output   string
	}{
		{
			name: "tar member",
			desc: model.ModelDescriptor{
				Name:      "Stanford Bunny",
				SourceURL: "http://graphics.stanford.edu/bunny.tar.gz",
				InnerPath: "pub/3Dscanrep/bunny/reconstruction/bun_zipper.ply",
			},
			archive:  "bunny.tar.gz",
			checksum: "bunny.tar.gz.md5sum",
			output:   "bun_zipper.ply",
		},
		{
			name: "gzip stream",
			desc: model.ModelDescriptor{
				Name:      "Asian Dragon",
				SourceURL: "http://graphics.stanford.edu/data/3Dscanrep/xyzrgb/xyzrgb_dragon.ply.gz",
			},
			archive:  "xyzrgb_dragon.ply.gz",
			checksum: "xyzrgb_dragon.ply.gz.md5sum",
			output:   "xyzrgb_dragon.ply",
		},
		{
			name: "local filename override drops query",
			desc: model.ModelDescriptor{
				Name:          "Doom Combat Scene",
				SourceURL:     "https://cdn.artec3d.com/content-hub-3dmodels/doom-combat-scene_ply.zip?VersionId=abc",
				LocalFilename: "doom.zip",
				InnerPath:     "Doom combat scene.ply",
			},
			archive:  "doom.zip",
			checksum: "doom.zip.md5sum",
			output:   "Doom combat scene.ply",
		},
		{
			name: "plain file",
			desc: model.ModelDescriptor{
				Name:      "Plain",
				SourceURL: "https://example.com/models/cube.ply?x=1",
			},
			archive:  "cube.ply",
			checksum: "cube.ply.md5sum",
			output:   "cube.ply",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.NoError(t, tt.desc.Validate())
			gt.Equal(t, tt.desc.ArchiveFilename(), tt.archive)
			gt.Equal(t, tt.desc.ChecksumFilename(), tt.checksum)
			gt.Equal(t, tt.desc.OutputFilename(), tt.output)
		})
	}
}

func TestModelDescriptor_Validate(t *testing.T) {
	tests := []struct {
		name string
		desc model.ModelDescriptor
	}{
		{name: "missing name", desc: model.ModelDescriptor{SourceURL: "https://example.com/a.ply"}},
		{name: "relative url", desc: model.ModelDescriptor{Name: "a", SourceURL: "a.ply"}},
		{name: "no path", desc: model.ModelDescriptor{Name: "a", SourceURL: "https://example.com/"}},
		{name: "local filename escapes", desc: model.ModelDescriptor{Name: "a", SourceURL: "https://example.com/a.zip", LocalFilename: "../a.zip", InnerPath: "a.ply"}},
		{name: "inner path is parent", desc: model.ModelDescriptor{Name: "a", SourceURL: "https://example.com/a.zip", InnerPath: "x/.."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Error(t, tt.desc.Validate()).Is(model.ErrInvalidDescriptor)
		})
	}
}

func TestModelDescriptor_Layout(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		innerPath string
		want      model.ArchiveLayout
		wantErr   bool
	}{
		{name: "tar.gz member", url: "https://h/a.tar.gz", innerPath: "x/a.ply", want: model.LayoutTarMember},
		{name: "tgz member", url: "https://h/a.tgz", innerPath: "a.ply", want: model.LayoutTarMember},
		{name: "tar.zst member", url: "https://h/a.tar.zst", innerPath: "a.ply", want: model.LayoutTarMember},
		{name: "plain tar member", url: "https://h/a.tar", innerPath: "a.ply", want: model.LayoutTarMember},
		{name: "gzip stream", url: "https://h/a.ply.gz", want: model.LayoutGzipStream},
		{name: "zstd stream", url: "https://h/a.ply.zst", want: model.LayoutZstdStream},
		{name: "zip member", url: "https://h/a.zip", innerPath: "a.ply", want: model.LayoutZipMember},
		{name: "plain file", url: "https://h/a.ply", want: model.LayoutPlainFile},
		{name: "rar", url: "https://h/model.rar", wantErr: true},
		{name: "rar with inner path", url: "https://h/model.rar", innerPath: "a.ply", wantErr: true},
		{name: "zip without inner path", url: "https://h/a.zip", wantErr: true},
		{name: "tar.gz without inner path", url: "https://h/a.tar.gz", wantErr: true},
		{name: "gzip with inner path", url: "https://h/a.ply.gz", innerPath: "a.ply", wantErr: true},
		{name: "plain file with inner path", url: "https://h/a.ply", innerPath: "a.ply", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := model.ModelDescriptor{Name: tt.name, SourceURL: tt.url, InnerPath: tt.innerPath}
			layout, err := d.Layout()
			if tt.wantErr {
				gt.Error(t, err).Is(model.ErrUnsupportedArchive)
				gt.Equal(t, layout, model.LayoutUnknown)
				return
			}
			gt.NoError(t, err)
			gt.Equal(t, layout, tt.want)
		})
	}
}
