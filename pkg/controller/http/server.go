package http

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/m-mizutani/plykit/pkg/domain/interfaces"
	"github.com/m-mizutani/plykit/pkg/domain/model"
)

// config holds internal HTTP server configuration
type config struct {
	addr string
}

// Option is a functional option for Server configuration
type Option func(*config)

// WithAddr sets the server address
func WithAddr(addr string) Option {
	return func(c *config) {
		c.addr = addr
	}
}

// Server represents the preview HTTP server
type Server struct {
	*http.Server
}

// NewServer creates a server that renders reports of doc on request
func NewServer(
	ctx context.Context,
	reportUC interfaces.ReportUseCase,
	doc *model.Document,
	opts ...Option,
) (*Server, error) {
	// Default configuration
	cfg := &config{
		addr: "localhost:8080",
	}

	for _, opt := range opts {
		opt(cfg)
	}

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(LoggingMiddleware(ctx))
	router.Use(middleware.Recoverer)

	reports := &reportHandler{uc: reportUC, doc: doc}
	router.Get("/health", reports.health)
	router.Get("/tables/{kind}", reports.table)
	router.Get("/rankings/{kind}", reports.ranking)
	router.Get("/charts/{type}.png", reports.chart)

	server := &Server{
		Server: &http.Server{
			Addr:              cfg.addr,
			Handler:           router,
			ReadHeaderTimeout: 15 * time.Second,
		},
	}

	return server, nil
}
