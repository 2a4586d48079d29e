package interfaces

import (
	"context"
	"io"
)

// Downloader streams a remote model archive into w.
type Downloader interface {
	// Download copies the body at sourceURL to w and returns the byte count
	Download(ctx context.Context, sourceURL string, w io.Writer) (int64, error)
}
