package http

import (
	"encoding/json"
	"net/http"

	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/plykit/pkg/domain/model"
	"github.com/m-mizutani/plykit/pkg/domain/types"
)

// health reports liveness together with the size of the served document
func (h *reportHandler) health(w http.ResponseWriter, r *http.Request) {
	status := &model.HealthStatus{
		Status:     "healthy",
		Service:    "plykit",
		Version:    types.Version,
		Benchmarks: len(h.doc.Benchmarks),
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(status); err != nil {
		ctxlog.From(r.Context()).Error("Failed to encode health response", "error", err)
	}
}
