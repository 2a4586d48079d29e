package model

import (
	"net/url"
	"path"
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ChecksumSuffix is appended to the archive filename to name its digest sidecar.
const ChecksumSuffix = ".md5sum"

// ModelDescriptor describes one sample model that can be fetched.
type ModelDescriptor struct {
	Name          string `json:"name"`
	SourceURL     string `json:"source_url"`
	LocalFilename string `json:"local_filename,omitempty"`
	InnerPath     string `json:"inner_path,omitempty"`
}

// Validate checks that the descriptor can be fetched.
func (d ModelDescriptor) Validate() error {
	if d.Name == "" {
		return goerr.Wrap(ErrInvalidDescriptor, "name is required", goerr.V("url", d.SourceURL))
	}
	u, err := url.Parse(d.SourceURL)
	if err != nil {
		return goerr.Wrap(ErrInvalidDescriptor, "source url is not parsable",
			goerr.V("name", d.Name), goerr.V("url", d.SourceURL), goerr.V("cause", err.Error()))
	}
	if u.Scheme == "" || (u.Path == "" && u.Host == "") {
		return goerr.Wrap(ErrInvalidDescriptor, "source url must be absolute",
			goerr.V("name", d.Name), goerr.V("url", d.SourceURL))
	}
	for _, name := range []string{d.ArchiveFilename(), d.OutputFilename()} {
		if !isPlainName(name) {
			return goerr.Wrap(ErrInvalidDescriptor, "cannot derive a plain file name",
				goerr.V("name", d.Name), goerr.V("url", d.SourceURL), goerr.V("file", name))
		}
	}
	return nil
}

func isPlainName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsAny(name, `/\`)
}

// ArchiveFilename is the name the downloaded file is stored under.
func (d ModelDescriptor) ArchiveFilename() string {
	if d.LocalFilename != "" {
		return d.LocalFilename
	}
	return urlBase(d.SourceURL)
}

// ChecksumFilename names the sidecar holding the archive digest.
func (d ModelDescriptor) ChecksumFilename() string {
	return d.ArchiveFilename() + ChecksumSuffix
}

// OutputFilename names the extracted payload.
func (d ModelDescriptor) OutputFilename() string {
	if d.InnerPath != "" {
		return path.Base(d.InnerPath)
	}
	name := urlBase(d.SourceURL)
	for _, suffix := range streamSuffixes {
		if trimmed, ok := strings.CutSuffix(name, suffix); ok && trimmed != "" {
			return trimmed
		}
	}
	return name
}

func urlBase(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return ""
	}
	base := path.Base(u.Path)
	if base == "/" || base == "." {
		return ""
	}
	return base
}
