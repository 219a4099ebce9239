// Wikipedia Translation MCP Server - A Model Context Protocol server for Wikipedia
// Provides tools for searching Wikipedia and translating terms through language links
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wikitranslate-mcp-server/internal/wikipedia"
	"github.com/olgasafonova/wikitranslate-mcp-server/metrics"
	"github.com/olgasafonova/wikitranslate-mcp-server/tools"
	"github.com/olgasafonova/wikitranslate-mcp-server/tracing"
)

// recoverPanic wraps a function with panic recovery and logs instead of crashing
func recoverPanic(logger *slog.Logger, operation string) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
	}
}

const (
	ServerName    = "wikitranslate-mcp-server"
	ServerVersion = "1.0.0"
)

const instructions = `Wikipedia Translation MCP Server searches Wikipedia and translates terms through the language links between Wikipedia editions.

Available tools:
- wikipedia_search: Full-text search of one language edition (disambiguation pages removed)
- wikipedia_get_translation: Corresponding article in another language for a page id
- wikipedia_translate_term: Search a term and return its article in another language
- wikipedia_get_translations: Corresponding articles in several languages at once

Language codes are Wikipedia subdomains: en, de, es, fr, zh-min-nan, simple, ...

Configure via environment variables:
- WIKIPEDIA_USER_AGENT: User-Agent sent to Wikipedia (please include contact info)
- WIKIPEDIA_TIMEOUT: Per-request timeout (default 30s)
- WIKIPEDIA_ENDPOINT: api.php URL template with %s for the language code
- WIKIPEDIA_MAX_CONCURRENCY: Maximum parallel requests to Wikipedia (default 5)
- LOG_LEVEL: debug, info, warn or error (default info)
- METRICS_ADDR: Address for the Prometheus /metrics endpoint (disabled when empty)
- OTEL_EXPORTER_OTLP_ENDPOINT / OTEL_ENABLED: OpenTelemetry tracing`

func main() {
	// Configure logging to stderr (stdout is used for MCP protocol)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(os.Getenv("LOG_LEVEL")),
	}))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error("Server error", "error", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, logger *slog.Logger) error {
	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	config, err := wikipedia.LoadConfig()
	if err != nil {
		return err
	}

	client := wikipedia.NewClientFromConfig(config, logger)
	defer client.Close()

	server := newServer(client, logger)

	if addr := os.Getenv("METRICS_ADDR"); addr != "" {
		metricsServer := startMetricsServer(addr, logger)
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = metricsServer.Shutdown(shutdownCtx)
		}()
	}

	logger.Info("Starting Wikipedia Translation MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"endpoint", config.Endpoint,
		"timeout", config.Timeout,
	)

	err = server.Run(ctx, &mcp.StdioTransport{})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

// newServer creates the MCP server with all tools registered
func newServer(client *wikipedia.Client, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: instructions,
	})

	tools.NewHandlerRegistry(client, logger).RegisterAll(server)
	return server
}

// newMetricsMux serves Prometheus metrics and a liveness probe
func newMetricsMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})
	return mux
}

// startMetricsServer serves /metrics on addr in the background
func startMetricsServer(addr string, logger *slog.Logger) *http.Server {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewSecurityMiddleware(newMetricsMux(), logger, DefaultSecurityConfig()),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		defer recoverPanic(logger, "metrics server")
		logger.Info("Serving metrics", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Metrics server failed", "addr", addr, "error", err)
		}
	}()

	return srv
}

// parseLogLevel maps LOG_LEVEL to a slog level, defaulting to info
func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
