package source_test

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/infra/source"
)

type mockDownloader struct {
	calls []string
	body  string
}

func (m *mockDownloader) Download(ctx context.Context, sourceURL string, w io.Writer) (int64, error) {
	m.calls = append(m.calls, sourceURL)
	n, err := io.WriteString(w, m.body)
	return int64(n), err
}

func TestRouter_Download(t *testing.T) {
	httpMock := &mockDownloader{body: "http"}
	gsMock := &mockDownloader{body: "gs"}
	router := source.NewRouter().
		Handle(httpMock, "http", "https").
		Handle(gsMock, "gs")

	var buf bytes.Buffer
	_, err := router.Download(context.Background(), "https://example.com/a.ply", &buf)
	gt.NoError(t, err)
	gt.Equal(t, buf.String(), "http")

	buf.Reset()
	_, err = router.Download(context.Background(), "gs://bucket/a.ply", &buf)
	gt.NoError(t, err)
	gt.Equal(t, buf.String(), "gs")

	gt.A(t, httpMock.calls).Length(1)
	gt.A(t, gsMock.calls).Length(1)

	_, err = router.Download(context.Background(), "ftp://example.com/a.ply", &buf)
	gt.Error(t, err).Is(model.ErrDownloadFailed)
}
