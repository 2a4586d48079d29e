package web_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/infra/web"
)

func TestClient_Download_Success(t *testing.T) {
	content := []byte("ply\nformat ascii 1.0\nend_header\n")
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userAgent = r.Header.Get("User-Agent")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(content)
	}))
	defer server.Close()

	client := web.NewClient(web.WithUserAgent("plykit-test"))
	var buf bytes.Buffer
	n, err := client.Download(context.Background(), server.URL+"/bunny.tar.gz", &buf)

	gt.NoError(t, err)
	gt.Equal(t, n, int64(len(content)))
	gt.Equal(t, buf.Bytes(), content)
	gt.Equal(t, userAgent, "plykit-test")
}

func TestClient_Download_NotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	var buf bytes.Buffer
	_, err := web.NewClient().Download(context.Background(), server.URL+"/missing.zip", &buf)

	gt.Error(t, err).Is(model.ErrDownloadFailed)
	gt.Equal(t, buf.Len(), 0)
}

func TestClient_Download_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer server.Close()

	var buf bytes.Buffer
	_, err := web.NewClient(web.WithTimeout(50*time.Millisecond)).
		Download(context.Background(), server.URL+"/slow.ply", &buf)

	gt.Error(t, err).Is(model.ErrDownloadFailed)
	gt.Error(t, err).Is(context.DeadlineExceeded)
}

func TestClient_Download_Canceled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("request must not be sent after cancel")
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var buf bytes.Buffer
	_, err := web.NewClient().Download(ctx, server.URL+"/bunny.ply", &buf)

	gt.Error(t, err).Is(model.ErrDownloadFailed)
	gt.Error(t, err).Is(context.Canceled)
}
