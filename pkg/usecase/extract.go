package usecase

import (
	"archive/tar"
	"errors"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zip"
	"github.com/klauspost/compress/zstd"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/model"
)

// extractPayload derives the payload file from the archive according to layout.
func extractPayload(desc model.ModelDescriptor, layout model.ArchiveLayout, archivePath, payloadPath string) (int64, error) {
	switch layout {
	case model.LayoutPlainFile:
		return copyPlain(archivePath, payloadPath)
	case model.LayoutGzipStream:
		return decompressStream(archivePath, payloadPath, func(r io.Reader) (io.ReadCloser, error) {
			return gzip.NewReader(r)
		})
	case model.LayoutZstdStream:
		return decompressStream(archivePath, payloadPath, func(r io.Reader) (io.ReadCloser, error) {
			dec, err := zstd.NewReader(r)
			if err != nil {
				return nil, err
			}
			return dec.IOReadCloser(), nil
		})
	case model.LayoutTarMember:
		compression, _ := desc.TarCompression()
		return extractTarMember(archivePath, compression, desc.InnerPath, payloadPath)
	case model.LayoutZipMember:
		return extractZipMember(archivePath, desc.InnerPath, payloadPath)
	}

	return 0, goerr.Wrap(model.ErrUnsupportedArchive, "no extraction for layout",
		goerr.V("layout", layout.String()), goerr.V("archive", archivePath))
}

func copyPlain(archivePath, payloadPath string) (int64, error) {
	if filepath.Clean(archivePath) == filepath.Clean(payloadPath) {
		return 0, nil
	}

	src, err := os.Open(filepath.Clean(archivePath))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open archive", goerr.V("path", archivePath))
	}
	defer safeClose(src)

	return writeFileAtomic(payloadPath, func(w io.Writer) (int64, error) {
		return io.Copy(w, src)
	})
}

func decompressStream(archivePath, payloadPath string, open func(io.Reader) (io.ReadCloser, error)) (int64, error) {
	src, err := os.Open(filepath.Clean(archivePath))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open archive", goerr.V("path", archivePath))
	}
	defer safeClose(src)

	rc, err := open(src)
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open compressed stream", goerr.V("path", archivePath))
	}
	defer safeClose(rc)

	n, err := writeFileAtomic(payloadPath, func(w io.Writer) (int64, error) {
		return io.Copy(w, rc)
	})
	if err != nil {
		return n, goerr.Wrap(err, "failed to decompress stream", goerr.V("path", archivePath))
	}
	return n, nil
}

func extractTarMember(archivePath string, compression model.TarCompression, member, payloadPath string) (int64, error) {
	src, err := os.Open(filepath.Clean(archivePath))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open archive", goerr.V("path", archivePath))
	}
	defer safeClose(src)

	var r io.Reader = src
	switch compression {
	case model.TarGzip:
		gz, err := gzip.NewReader(src)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to open gzip stream", goerr.V("path", archivePath))
		}
		defer safeClose(gz)
		r = gz
	case model.TarZstd:
		dec, err := zstd.NewReader(src)
		if err != nil {
			return 0, goerr.Wrap(err, "failed to open zstd stream", goerr.V("path", archivePath))
		}
		defer dec.Close()
		r = dec
	}

	want := memberName(member)
	tr := tar.NewReader(r)
	for {
		hdr, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return 0, goerr.Wrap(err, "failed to read tar archive", goerr.V("path", archivePath))
		}
		if memberName(hdr.Name) != want {
			continue
		}
		if hdr.Typeflag != tar.TypeReg {
			return 0, goerr.Wrap(model.ErrMemberNotFound, "tar member is not a regular file",
				goerr.V("path", archivePath), goerr.V("member", member))
		}
		return writeFileAtomic(payloadPath, func(w io.Writer) (int64, error) {
			return io.Copy(w, tr)
		})
	}

	return 0, goerr.Wrap(model.ErrMemberNotFound, "member not found in tar archive",
		goerr.V("path", archivePath), goerr.V("member", member))
}

func extractZipMember(archivePath, member, payloadPath string) (int64, error) {
	zr, err := zip.OpenReader(filepath.Clean(archivePath))
	if err != nil {
		return 0, goerr.Wrap(err, "failed to open zip archive", goerr.V("path", archivePath))
	}
	defer safeClose(zr)

	want := memberName(member)
	for _, f := range zr.File {
		if memberName(f.Name) != want || f.FileInfo().IsDir() {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return 0, goerr.Wrap(err, "failed to open zip member",
				goerr.V("path", archivePath), goerr.V("member", member))
		}
		defer safeClose(rc)

		return writeFileAtomic(payloadPath, func(w io.Writer) (int64, error) {
			return io.Copy(w, rc)
		})
	}

	return 0, goerr.Wrap(model.ErrMemberNotFound, "member not found in zip archive",
		goerr.V("path", archivePath), goerr.V("member", member))
}

// memberName normalizes "./a/b" and "a//b" to "a/b".
func memberName(name string) string {
	return strings.TrimPrefix(path.Clean("/"+name), "/")
}

// writeFileAtomic writes through a temporary file in the destination
// directory and renames it into place once fill succeeds.
func writeFileAtomic(dst string, fill func(w io.Writer) (int64, error)) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(dst), "."+filepath.Base(dst)+".*.tmp")
	if err != nil {
		return 0, goerr.Wrap(err, "failed to create temporary file", goerr.V("path", dst))
	}
	tmpName := tmp.Name()
	defer func() {
		_ = os.Remove(tmpName)
	}()

	n, err := fill(tmp)
	if err != nil {
		safeClose(tmp)
		return n, err
	}
	if err := tmp.Close(); err != nil {
		return n, goerr.Wrap(err, "failed to close temporary file", goerr.V("path", tmpName))
	}
	if err := os.Rename(tmpName, dst); err != nil {
		return n, goerr.Wrap(err, "failed to move file into place", goerr.V("path", dst))
	}
	return n, nil
}

func safeClose(c io.Closer) {
	_ = c.Close()
}
