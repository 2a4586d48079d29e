package usecase

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"hash"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/interfaces"
	"github.com/m-mizutani/plykit/pkg/domain/model"
)

// Fetcher brings sample models up to date in a local directory
type Fetcher struct {
	downloader     interfaces.Downloader
	refreshPayload bool
}

// FetchOption configures Fetcher
type FetchOption func(*Fetcher)

// WithRefreshPayload re-derives the payload whenever the archive was re-downloaded
func WithRefreshPayload(refresh bool) FetchOption {
	return func(f *Fetcher) {
		f.refreshPayload = refresh
	}
}

// NewFetcher creates a Fetcher backed by downloader
func NewFetcher(downloader interfaces.Downloader, opts ...FetchOption) *Fetcher {
	f := &Fetcher{downloader: downloader}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

var _ interfaces.FetchUseCase = (*Fetcher)(nil)

// FetchAll processes descriptors in order; the first failure stops the batch
func (f *Fetcher) FetchAll(ctx context.Context, descs []model.ModelDescriptor, targetDir string) ([]*model.FetchResult, error) {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return nil, goerr.Wrap(err, "failed to create target directory", goerr.V("dir", targetDir))
	}

	results := make([]*model.FetchResult, 0, len(descs))
	for _, desc := range descs {
		result, err := f.Fetch(ctx, desc, targetDir)
		if err != nil {
			return results, goerr.Wrap(err, "failed to fetch model", goerr.V("name", desc.Name))
		}
		results = append(results, result)
	}
	return results, nil
}

// Fetch downloads the archive unless its checksum sidecar certifies the local
// copy, then extracts the payload if it does not exist yet.
func (f *Fetcher) Fetch(ctx context.Context, desc model.ModelDescriptor, targetDir string) (*model.FetchResult, error) {
	logger := ctxlog.From(ctx).With("model", desc.Name)

	if err := desc.Validate(); err != nil {
		return nil, err
	}
	layout, err := desc.Layout()
	if err != nil {
		return nil, err
	}

	result := &model.FetchResult{
		Descriptor:   desc,
		ArchivePath:  filepath.Join(targetDir, desc.ArchiveFilename()),
		ChecksumPath: filepath.Join(targetDir, desc.ChecksumFilename()),
		PayloadPath:  filepath.Join(targetDir, desc.OutputFilename()),
		Layout:       layout,
	}

	logger.Info("Downloading model", "url", desc.SourceURL)

	digest, fresh, err := checkFreshness(result.ArchivePath, result.ChecksumPath)
	if err != nil {
		return nil, err
	}

	if fresh {
		logger.Info("Local model archive is up to date", "archive", result.ArchivePath)
		result.Digest = digest
	} else {
		size, digest, err := f.download(ctx, desc.SourceURL, result.ArchivePath)
		if err != nil {
			return nil, err
		}
		if err := os.WriteFile(result.ChecksumPath, []byte(digest), 0o644); err != nil {
			return nil, goerr.Wrap(err, "failed to write checksum sidecar", goerr.V("path", result.ChecksumPath))
		}

		result.Downloaded = true
		result.Digest = digest
		result.Size = size
		logger.Info("Downloaded model archive",
			"archive", result.ArchivePath,
			"size", humanize.Bytes(uint64(size)),
			"md5", digest,
		)
	}

	if filepath.Clean(result.PayloadPath) == filepath.Clean(result.ArchivePath) {
		return result, nil
	}

	exists, err := fileExists(result.PayloadPath)
	if err != nil {
		return nil, err
	}
	if exists && !(f.refreshPayload && result.Downloaded) {
		logger.Debug("Payload already present", "payload", result.PayloadPath)
		return result, nil
	}

	n, err := extractPayload(desc, layout, result.ArchivePath, result.PayloadPath)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to extract payload",
			goerr.V("archive", result.ArchivePath),
			goerr.V("layout", layout.String()),
		)
	}
	result.Extracted = true

	logger.Info("Extracted model payload",
		"payload", result.PayloadPath,
		"layout", layout.String(),
		"size", humanize.Bytes(uint64(n)),
	)

	return result, nil
}

// download streams the archive to a temporary file, hashing it on the way,
// and renames it over archivePath on success.
func (f *Fetcher) download(ctx context.Context, sourceURL, archivePath string) (int64, string, error) {
	var h hash.Hash
	n, err := writeFileAtomic(archivePath, func(w io.Writer) (int64, error) {
		h = md5.New()
		return f.downloader.Download(ctx, sourceURL, io.MultiWriter(w, h))
	})
	if err != nil {
		return n, "", goerr.Wrap(err, "failed to download model archive",
			goerr.V("url", sourceURL), goerr.V("archive", archivePath))
	}
	return n, hex.EncodeToString(h.Sum(nil)), nil
}

// checkFreshness reports whether the sidecar holds the digest of the archive.
// A missing archive or sidecar is not an error, only stale.
func checkFreshness(archivePath, checksumPath string) (string, bool, error) {
	recorded, err := os.ReadFile(filepath.Clean(checksumPath))
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, goerr.Wrap(err, "failed to read checksum sidecar", goerr.V("path", checksumPath))
	}

	digest, err := fileDigest(archivePath)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}

	return digest, string(bytes.TrimSpace(recorded)) == digest, nil
}

func fileDigest(p string) (string, error) {
	file, err := os.Open(filepath.Clean(p))
	if err != nil {
		return "", err
	}
	defer safeClose(file)

	h := md5.New()
	if _, err := io.Copy(h, file); err != nil {
		return "", goerr.Wrap(err, "failed to hash file", goerr.V("path", p))
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func fileExists(p string) (bool, error) {
	_, err := os.Stat(p)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, goerr.Wrap(err, "failed to stat file", goerr.V("path", p))
}
