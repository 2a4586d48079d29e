package http

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/plykit/pkg/domain/interfaces"
	"github.com/m-mizutani/plykit/pkg/domain/model"
)

type reportHandler struct {
	uc  interfaces.ReportUseCase
	doc *model.Document
}

func (h *reportHandler) table(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseBenchmarkKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err, http.StatusNotFound)
		return
	}

	out, err := h.uc.ResultsTable(r.Context(), h.doc, kind)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeBody(w, r, "text/markdown; charset=utf-8", []byte(out))
}

func (h *reportHandler) ranking(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseBenchmarkKind(chi.URLParam(r, "kind"))
	if err != nil {
		writeError(w, r, err, http.StatusNotFound)
		return
	}

	var buf bytes.Buffer
	if err := h.uc.Ranking(r.Context(), h.doc, kind, &buf); err != nil {
		h.fail(w, r, err)
		return
	}
	writeBody(w, r, "text/plain; charset=utf-8", buf.Bytes())
}

func (h *reportHandler) chart(w http.ResponseWriter, r *http.Request) {
	chartType, err := model.ParseChartType(chi.URLParam(r, "type"))
	if err != nil {
		writeError(w, r, err, http.StatusNotFound)
		return
	}

	// render fully before writing so a failure still yields a clean error response
	var buf bytes.Buffer
	if err := h.uc.Chart(r.Context(), h.doc, chartType, &buf); err != nil {
		h.fail(w, r, err)
		return
	}
	writeBody(w, r, "image/png", buf.Bytes())
}

func (h *reportHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, model.ErrEmptyBenchmarks) {
		status = http.StatusNotFound
	} else {
		ctxlog.From(r.Context()).Error("Failed to render report", "error", err, "path", r.URL.Path)
	}
	writeError(w, r, err, status)
}

func writeBody(w http.ResponseWriter, r *http.Request, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		ctxlog.From(r.Context()).Error("Failed to write response", "error", err)
	}
}
