package api

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/Harshitk-cp/anchorgraph/internal/api/handlers"
	mw "github.com/Harshitk-cp/anchorgraph/internal/api/middleware"
	"github.com/Harshitk-cp/anchorgraph/internal/buildconfig"
	"github.com/Harshitk-cp/anchorgraph/internal/config"
	"github.com/Harshitk-cp/anchorgraph/internal/domain"
	"github.com/Harshitk-cp/anchorgraph/internal/service"
	"github.com/Harshitk-cp/anchorgraph/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

// Pinger is implemented by stores that hold a live connection worth checking
// from /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	clientErrors atomic.Int64
	serverErrors atomic.Int64
}

func NewApp(corpusStore domain.CorpusStore, logger *zap.Logger) *App {
	corpusHandler := handlers.NewCorpusHandler(corpusStore, logger,
		service.WithMajorCascadeThreshold(config.MajorCascadeThreshold()))

	r := chi.NewRouter()
	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.clientErrors, &app.serverErrors)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	r.Get("/health", healthHandler(corpusStore))
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.BearerAuth(config.APIToken()))

		r.Route("/anchors", func(r chi.Router) {
			r.Get("/", corpusHandler.ListAnchors)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", corpusHandler.GetAnchor)
				r.Post("/cascade", corpusHandler.Cascade)
			})
		})

		r.Route("/readings", func(r chi.Router) {
			r.Post("/", corpusHandler.RegisterReading)
			r.Get("/{id}", corpusHandler.GetReading)
		})

		r.Get("/validate", corpusHandler.Validate)
		r.Get("/graph", corpusHandler.Graph)
	})

	return app
}

func healthHandler(corpusStore domain.CorpusStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if p, ok := corpusStore.(Pinger); ok {
			if err := p.Ping(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
				return
			}
		}

		resp := map[string]string{"status": "ok"}
		for k, v := range buildconfig.VersionInfo() {
			resp[k] = v
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(resp)
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"client_errors":  app.clientErrors.Load(),
			"server_errors":  app.serverErrors.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb": float64(memStats.Alloc) / 1024 / 1024,
				"sys_mb":   float64(memStats.Sys) / 1024 / 1024,
				"num_gc":   memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

var (
	_ domain.CorpusStore = (*store.FileStore)(nil)
	_ domain.CorpusStore = (*store.PostgresStore)(nil)
	_ Pinger             = (*store.PostgresStore)(nil)
)
