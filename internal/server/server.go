// Package server exposes the engine's interactive task over HTTP (spec.md
// §5): refresh, import, analyze, bet management and health, grounded on
// internal/server/server.go's chi-based router, middleware stack and
// graceful start/shutdown.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/aristath/tennis-value-engine/internal/analyzer"
	"github.com/aristath/tennis-value-engine/internal/cloudmirror"
	"github.com/aristath/tennis-value-engine/internal/notify"
	"github.com/aristath/tennis-value-engine/internal/scheduler"
	"github.com/aristath/tennis-value-engine/internal/store"
	"github.com/aristath/tennis-value-engine/internal/suggester"
	"github.com/aristath/tennis-value-engine/internal/tracker"
)

// Config holds everything Server needs to build its routes.
type Config struct {
	Log         zerolog.Logger
	Store       *store.Store
	Scheduler   *scheduler.Scheduler
	CaptureJob  *scheduler.CaptureJob
	SettleJob   *scheduler.SettlementJob
	Suggester   *suggester.Suggester
	Analyzer    *analyzer.Analyzer
	Mirror      cloudmirror.Mirror
	Notifier    notify.Notifier
	Port        int
	AutoMode    bool
	DevMode     bool
}

// Server is the engine's HTTP API.
type Server struct {
	router     *chi.Mux
	httpServer *http.Server
	log        zerolog.Logger

	store      *store.Store
	tracker    *tracker.Tracker
	scheduler  *scheduler.Scheduler
	captureJob *scheduler.CaptureJob
	settleJob  *scheduler.SettlementJob
	suggester  *suggester.Suggester
	analyzer   *analyzer.Analyzer
	mirror     cloudmirror.Mirror
	notifier   notify.Notifier
	autoMode   bool
}

// New builds a Server and wires its routes, but does not start listening.
func New(cfg Config) *Server {
	s := &Server{
		router:     chi.NewRouter(),
		log:        cfg.Log.With().Str("component", "server").Logger(),
		store:      cfg.Store,
		tracker:    tracker.New(cfg.Store),
		scheduler:  cfg.Scheduler,
		captureJob: cfg.CaptureJob,
		settleJob:  cfg.SettleJob,
		suggester:  cfg.Suggester,
		analyzer:   cfg.Analyzer,
		mirror:     cfg.Mirror,
		notifier:   cfg.Notifier,
		autoMode:   cfg.AutoMode,
	}

	s.setupMiddleware(cfg.DevMode)
	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(30 * time.Second))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/", func(r chi.Router) {
		r.Get("/status", s.handleStatus)
		r.Post("/refresh", s.handleRefresh)
		r.Post("/import", s.handleImport)
		r.Post("/analyze", s.handleAnalyze)
		r.Get("/bets", s.handleListBets)
		r.Post("/bets", s.handleAddBet)
		r.Post("/bets/{id}/settle", s.handleSettleBet)
	})
}

// loggingMiddleware logs one line per request, matching the teacher's
// server.go.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

// Start blocks serving HTTP until the server is shut down.
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.httpServer.Addr).Msg("starting http server")
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown gracefully drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("shutting down http server")
	return s.httpServer.Shutdown(ctx)
}
