package source

import (
	"context"
	"io"
	"net/url"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/plykit/pkg/domain/interfaces"
	"github.com/m-mizutani/plykit/pkg/domain/model"
)

// Router dispatches downloads to a Downloader by URL scheme
type Router struct {
	schemes map[string]interfaces.Downloader
}

// NewRouter creates an empty router
func NewRouter() *Router {
	return &Router{schemes: map[string]interfaces.Downloader{}}
}

// Handle registers d for the given schemes
func (r *Router) Handle(d interfaces.Downloader, schemes ...string) *Router {
	for _, s := range schemes {
		r.schemes[s] = d
	}
	return r
}

// Download implements interfaces.Downloader
func (r *Router) Download(ctx context.Context, sourceURL string, w io.Writer) (int64, error) {
	u, err := url.Parse(sourceURL)
	if err != nil {
		return 0, goerr.Wrap(model.ErrDownloadFailed, "invalid source url", goerr.V("url", sourceURL))
	}

	d, ok := r.schemes[u.Scheme]
	if !ok {
		return 0, goerr.Wrap(model.ErrDownloadFailed, "no downloader for scheme",
			goerr.V("url", sourceURL), goerr.V("scheme", u.Scheme))
	}
	return d.Download(ctx, sourceURL, w)
}
