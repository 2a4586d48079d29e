package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/gt"

	controller "github.com/m-mizutani/plykit/pkg/controller/http"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/usecase"
)

func newTestServer(t *testing.T) *controller.Server {
	t.Helper()
	doc := &model.Document{Benchmarks: []model.Benchmark{
		{Name: `BM_ParseHapply/"Bunny (ply)"`, CPUTime: 5, TimeUnit: "ms", BytesPerSecond: 1 << 20, HasBytesPerSecond: true},
		{Name: `BM_ParseMiniply/"Bunny (ply)"`, CPUTime: 10, TimeUnit: "ms", BytesPerSecond: 1 << 19, HasBytesPerSecond: true},
	}}

	server, err := controller.NewServer(
		context.Background(),
		usecase.NewReporter(model.DefaultLibraryTable()),
		doc,
		controller.WithAddr("localhost:0"),
	)
	gt.NoError(t, err)
	return server
}

func TestHealthEndpoint(t *testing.T) {
	server := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	server.Handler.ServeHTTP(w, req)

	gt.Equal(t, w.Code, http.StatusOK)

	var status model.HealthStatus
	gt.NoError(t, json.NewDecoder(w.Body).Decode(&status))
	gt.Equal(t, status.Status, "healthy")
	gt.Equal(t, status.Service, "plykit")
	gt.Equal(t, status.Benchmarks, 2)
	gt.Value(t, status.Version).NotEqual("")
}
