package model

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
)

// ArchiveLayout selects how the payload is obtained from a downloaded file.
type ArchiveLayout int

const (
	LayoutUnknown ArchiveLayout = iota
	// LayoutPlainFile means the downloaded file is the payload.
	LayoutPlainFile
	// LayoutGzipStream decompresses the whole gzip stream.
	LayoutGzipStream
	// LayoutZstdStream decompresses the whole zstd stream.
	LayoutZstdStream
	// LayoutTarMember copies one member of a (possibly compressed) tar archive.
	LayoutTarMember
	// LayoutZipMember copies one member of a zip archive.
	LayoutZipMember
)

func (l ArchiveLayout) String() string {
	switch l {
	case LayoutPlainFile:
		return "plain-file"
	case LayoutGzipStream:
		return "gzip-stream"
	case LayoutZstdStream:
		return "zstd-stream"
	case LayoutTarMember:
		return "tar-member"
	case LayoutZipMember:
		return "zip-member"
	default:
		return "unknown"
	}
}

// TarCompression is the stream codec wrapped around a tar archive.
type TarCompression int

const (
	TarUncompressed TarCompression = iota
	TarGzip
	TarZstd
)

var (
	streamSuffixes = []string{".gz", ".zst"}

	tarSuffixes = []struct {
		suffix      string
		compression TarCompression
	}{
		{".tar.gz", TarGzip},
		{".tgz", TarGzip},
		{".tar.zst", TarZstd},
		{".tar", TarUncompressed},
	}

	// anything with one of these suffixes is a container we do not handle
	unsupportedSuffixes = []string{".rar", ".7z", ".bz2", ".xz", ".lz4", ".tar.bz2", ".tar.xz"}
)

// Layout resolves the extraction variant for the descriptor. A combination of
// filename suffix and inner path that no variant covers is ErrUnsupportedArchive.
func (d ModelDescriptor) Layout() (ArchiveLayout, error) {
	name := strings.ToLower(d.ArchiveFilename())
	hasInner := d.InnerPath != ""

	unsupported := func(reason string) (ArchiveLayout, error) {
		return LayoutUnknown, goerr.Wrap(ErrUnsupportedArchive, reason,
			goerr.V("name", d.Name),
			goerr.V("archive", d.ArchiveFilename()),
			goerr.V("inner_path", d.InnerPath),
		)
	}

	if _, ok := d.TarCompression(); ok {
		if !hasInner {
			return unsupported("tar archive requires an inner path")
		}
		return LayoutTarMember, nil
	}

	switch {
	case strings.HasSuffix(name, ".zip"):
		if !hasInner {
			return unsupported("zip archive requires an inner path")
		}
		return LayoutZipMember, nil
	case strings.HasSuffix(name, ".gz"):
		if hasInner {
			return unsupported("gzip stream has no members")
		}
		return LayoutGzipStream, nil
	case strings.HasSuffix(name, ".zst"):
		if hasInner {
			return unsupported("zstd stream has no members")
		}
		return LayoutZstdStream, nil
	}

	for _, suffix := range unsupportedSuffixes {
		if strings.HasSuffix(name, suffix) {
			return unsupported("archive format is not supported")
		}
	}

	if hasInner {
		return unsupported("plain file has no members")
	}
	return LayoutPlainFile, nil
}

// TarCompression reports the codec of a tar archive, and false if the archive
// is not a tar archive at all.
func (d ModelDescriptor) TarCompression() (TarCompression, bool) {
	name := strings.ToLower(d.ArchiveFilename())
	for _, t := range tarSuffixes {
		if strings.HasSuffix(name, t.suffix) {
			return t.compression, true
		}
	}
	return TarUncompressed, false
}
