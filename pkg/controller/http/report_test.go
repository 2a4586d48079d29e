package http_test

import (
	"bytes"
	"encoding/json"
	"image/png"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fatih/color"
	"github.com/m-mizutani/gt"
)

func TestReportEndpoints(t *testing.T) {
	color.NoColor = true
	server := newTestServer(t)

	get := func(path string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		w := httptest.NewRecorder()
		server.Handler.ServeHTTP(w, req)
		return w
	}

	t.Run("results table", func(t *testing.T) {
		w := get("/tables/parse")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.String(t, w.Header().Get("Content-Type")).Contains("text/markdown")
		gt.String(t, w.Body.String()).Contains("| 1 | [hapPLY](https://github.com/nmwsharp/happly)")
	})

	t.Run("ranking", func(t *testing.T) {
		w := get("/rankings/parse")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Body.String(), "ply\n---\n\nhapPLY: 1.00\nminiply: 2.00\n\n")
	})

	t.Run("chart", func(t *testing.T) {
		w := get("/charts/parse_transfer_speed.png")
		gt.Equal(t, w.Code, http.StatusOK)
		gt.Equal(t, w.Header().Get("Content-Type"), "image/png")
		_, err := png.DecodeConfig(bytes.NewReader(w.Body.Bytes()))
		gt.NoError(t, err)
	})

	t.Run("chart without data", func(t *testing.T) {
		w := get("/charts/write_cpu_time.png")
		gt.Equal(t, w.Code, http.StatusNotFound)
	})

	t.Run("unknown kind", func(t *testing.T) {
		w := get("/tables/compile")
		gt.Equal(t, w.Code, http.StatusNotFound)

		var body map[string]string
		gt.NoError(t, json.NewDecoder(w.Body).Decode(&body))
		gt.String(t, body["error"]).Contains("kind")
	})

	t.Run("unknown chart", func(t *testing.T) {
		w := get("/charts/memory.png")
		gt.Equal(t, w.Code, http.StatusNotFound)
	})
}
