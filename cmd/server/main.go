// Package main is the entry point for the demo RPC-over-HTTP server: it
// wires the demo router into an httpadapter.Handler, publishes the
// OpenAPI document that describes it, and serves both behind the ambient
// stack (logging, tracing, metrics, health).
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/openapi-rpc/httpadapter/config"
	"github.com/openapi-rpc/httpadapter/demo"
	"github.com/openapi-rpc/httpadapter/httpadapter"
	"github.com/openapi-rpc/httpadapter/middleware"
	"github.com/openapi-rpc/httpadapter/model"
	"github.com/openapi-rpc/httpadapter/observability"
	"github.com/openapi-rpc/httpadapter/openapidoc"
)

// Build-time variables set via ldflags:
//
//	go build -ldflags "-X main.version=1.0.0 -X main.commit=abc1234"
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "configuration error: %v\n", err)
		return 1
	}

	observability.Version = version
	observability.Commit = commit

	logger, err := observability.NewLogger(cfg.Observability)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger error: %v\n", err)
		return 1
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	tracingShutdown, err := observability.InitTracing(ctx, cfg.Observability.Tracing, "rpc-http-adapter", version)
	if err != nil {
		logger.Error("tracing initialization failed", zap.Error(err))
		return 1
	}

	metrics := observability.InitMetrics(prometheus.DefaultRegisterer)

	router, err := demo.NewRouter()
	if err != nil {
		logger.Error("demo router construction failed", zap.Error(err))
		return 1
	}

	handler, err := httpadapter.NewHandler(router, httpadapter.Options{
		MaxBodySize: cfg.Server.MaxBodySize,
		Metrics:     metrics,
	})
	if err != nil {
		logger.Error("route table construction failed", zap.Error(err))
		return 1
	}
	metrics.SetRoutesRegistered(len(router.Procedures()))

	if cfg.OpenAPI.DocumentPath != "" {
		if err := writeOpenAPIDocument(router, cfg.OpenAPI); err != nil {
			logger.Error("OpenAPI document generation failed", zap.Error(err))
			return 1
		}
		logger.Info("OpenAPI document written", zap.String("path", cfg.OpenAPI.DocumentPath))
	}

	mux := chi.NewRouter()
	mux.Get("/healthz", observability.HandleHealth())
	mux.Get("/readyz", observability.HandleReady(observability.ReadinessChecks{
		RoutesBuilt: func() bool { return len(router.Procedures()) > 0 },
	}))
	if cfg.Observability.Metrics.Enabled {
		mux.Handle(cfg.Observability.Metrics.Path, observability.Handler())
	}
	mux.Handle("/*", handler)

	chain := middleware.Recovery(logger)(
		middleware.CORS(cfg.Server.CORS)(
			middleware.RequestID(
				middleware.SecurityHeaders(
					middleware.Timeout(cfg.Server.ReadTimeout)(
						middleware.RequestLogging(logger)(
							observability.TracingMiddleware(mux),
						),
					),
				),
			),
		),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      chain,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	logger.Info("server started",
		zap.Int("port", cfg.Server.Port),
		zap.String("version", version),
		zap.String("commit", commit),
		zap.Int("procedures", len(router.Procedures())),
	)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutdown initiated")
	case err := <-errCh:
		logger.Error("server error", zap.Error(err))
		return 1
	}

	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout == 0 {
		shutdownTimeout = 15 * time.Second
	}
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	if err := tracingShutdown(shutdownCtx); err != nil {
		logger.Error("tracing shutdown error", zap.Error(err))
	}

	logger.Info("shutdown complete")
	return 0
}

func writeOpenAPIDocument(router model.Router, cfg config.OpenAPIConfig) error {
	doc, err := openapidoc.Generate(router, cfg)
	if err != nil {
		return fmt.Errorf("generate document: %w", err)
	}

	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("marshal document: %w", err)
	}

	if err := os.WriteFile(cfg.DocumentPath, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
