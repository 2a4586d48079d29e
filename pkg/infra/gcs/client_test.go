package gcs_test

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/infra/gcs"
)

func TestParseURL(t *testing.T) {
	bucket, object, err := gcs.ParseURL("gs://ply-models/stanford/bunny.tar.gz")
	gt.NoError(t, err)
	gt.Equal(t, bucket, "ply-models")
	gt.Equal(t, object, "stanford/bunny.tar.gz")

	for _, raw := range []string{
		"https://ply-models/bunny.tar.gz",
		"gs://ply-models",
		"gs:///bunny.tar.gz",
	} {
		_, _, err := gcs.ParseURL(raw)
		gt.Error(t, err).Is(model.ErrInvalidDescriptor)
	}
}

func TestClient_Download_WithRealBucket(t *testing.T) {
	// Requires a readable object, e.g. gs://bucket/bunny.tar.gz
	sourceURL := os.Getenv("TEST_GCS_MODEL_URL")
	if sourceURL == "" {
		t.Skip("TEST_GCS_MODEL_URL is not set")
	}

	ctx := context.Background()
	client, err := gcs.NewClient(ctx, gcs.WithAnonymous(os.Getenv("TEST_GCS_ANONYMOUS") != ""))
	gt.NoError(t, err)
	defer func() {
		_ = client.Close()
	}()

	var buf bytes.Buffer
	n, err := client.Download(ctx, sourceURL, &buf)
	gt.NoError(t, err)
	gt.Number(t, n).Greater(int64(0))
	gt.Equal(t, int64(buf.Len()), n)
}
