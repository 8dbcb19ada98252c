package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/scratchers-service/internal/app/catalog"
	"github.com/preston-bernstein/scratchers-service/internal/config"
	httpserver "github.com/preston-bernstein/scratchers-service/internal/http"
	"github.com/preston-bernstein/scratchers-service/internal/http/handlers"
	"github.com/preston-bernstein/scratchers-service/internal/http/middleware"
	"github.com/preston-bernstein/scratchers-service/internal/jurisdiction"
	"github.com/preston-bernstein/scratchers-service/internal/logging"
	"github.com/preston-bernstein/scratchers-service/internal/metrics"
	"github.com/preston-bernstein/scratchers-service/internal/probe"
	"github.com/preston-bernstein/scratchers-service/internal/providers"
)

var metricsSetup = metrics.Setup

type Server struct {
	cfg           config.Config
	logger        *slog.Logger
	metrics       *metrics.Recorder
	catalog       *catalog.Service
	httpServer    httpServer
	metricsServer httpServer
	probe         Prober
	metricsStop   func(context.Context) error
}

// New constructs a server with the configured provider, jurisdictions and probe.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
	return newServerWithProvider(cfg, logger, nil, nil)
}

// newServerWithProvider builds the server around provider, or the configured
// provider when nil. A non-nil recorder skips telemetry setup.
func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.RankingProvider, recorder *metrics.Recorder) (*Server, error) {
	registry, err := jurisdiction.LoadFile(cfg.JurisdictionsFile)
	if err != nil {
		return nil, fmt.Errorf("load jurisdictions: %w", err)
	}
	def, err := registry.Lookup(cfg.DefaultJurisdiction)
	if err != nil {
		return nil, fmt.Errorf("default jurisdiction: %w", err)
	}

	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	if provider == nil {
		provider = factory.build(cfg)
	} else {
		provider = factory.wrap(cfg, provider)
	}

	svc := catalog.NewService(provider, registry, logger)
	prb := probe.New(svc, logger, recorder, cfg.ProbeInterval)
	httpSrv := buildHTTPServer(cfg, svc, def.Code, logger, recorder, prb)

	return &Server{
		cfg:           cfg,
		logger:        logger,
		metrics:       recorder,
		catalog:       svc,
		httpServer:    httpSrv,
		metricsServer: metricsSrv,
		probe:         prb,
		metricsStop:   metricsShutdown,
	}, nil
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, svc *catalog.Service, httpSrv httpServer, prb Prober) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		catalog:    svc,
		httpServer: httpSrv,
		probe:      prb,
	}
}

func buildHTTPServer(cfg config.Config, svc *catalog.Service, def jurisdiction.Code, logger *slog.Logger, recorder *metrics.Recorder, prb Prober) httpServer {
	var statusFn func() probe.Status
	if prb != nil {
		statusFn = prb.Status
	}

	handler := handlers.NewHandler(svc, logger, statusFn, handlers.Options{
		DefaultJurisdiction: def,
		Metrics:             recorder,
	})
	router := httpserver.NewRouter(handler)
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	wrapped := middleware.LoggingMiddleware(logger, recorder, router)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      wrapped,
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
		IdleTimeout:  idleTimeout,
	}

	return netHTTPServer{srv: srv}
}

// Run starts the probe and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.probe.Start(ctx)

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", "error", err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", "error", err)
		}
	}

	if err := s.probe.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop probe", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", "error", err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = netHTTPServer{
			srv: &http.Server{
				Addr:    ":" + recCfg.Port,
				Handler: handler,
			},
		}
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", "error", err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}
