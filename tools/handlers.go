package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/wikitranslate-mcp-server/internal/wikipedia"
	"github.com/olgasafonova/wikitranslate-mcp-server/metrics"
	"github.com/olgasafonova/wikitranslate-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	client *wikipedia.Client
	logger *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(client *wikipedia.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		client: client,
		logger: logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	registered := 0
	for _, spec := range AllTools {
		if h.registerByName(server, spec) {
			registered++
		}
	}
	h.logger.Info("Registered all tools", "count", registered)
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) bool {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "Search":
		return h.register(server, tool, spec, h.client.SearchMCP)
	case "GetTranslation":
		return h.register(server, tool, spec, h.client.GetTranslationMCP)
	case "TranslateTerm":
		return h.register(server, tool, spec, h.client.TranslateTermMCP)
	case "GetTranslations":
		return h.register(server, tool, spec, h.client.GetTranslationsMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
		return false
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	} else {
		annotations.DestructiveHint = ptr(false)
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (_ *mcp.CallToolResult, _ Result, err error) {
		defer h.recoverPanic(spec.Name, &err)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		tracing.AddToolAttributes(span, spec.Name, spec.Category)
		span.SetAttributes(attribute.Bool("mcp.tool.readonly", spec.ReadOnly))

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			h.logger.Warn("Tool failed", "tool", spec.Name, "error", err)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic turns a panic in a tool handler into a tool error.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s failed: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	switch a := args.(type) {
	case wikipedia.SearchArgs:
		attrs = append(attrs, "term", a.Term, "language", a.Language)
	case wikipedia.GetTranslationArgs:
		attrs = append(attrs, "page_id", a.PageID, "source", a.SourceLanguage, "target", a.TargetLanguage)
	case wikipedia.TranslateTermArgs:
		attrs = append(attrs, "term", a.Term, "source", a.SourceLanguage, "target", a.TargetLanguage)
	case wikipedia.GetTranslationsArgs:
		attrs = append(attrs, "page_id", a.PageID, "source", a.SourceLanguage, "targets", len(a.TargetLanguages))
	}

	switch r := result.(type) {
	case wikipedia.SearchToolResult:
		attrs = append(attrs, "results_count", r.Count)
	case wikipedia.GetTranslationResult:
		attrs = append(attrs, "found", r.Found)
	case wikipedia.TranslateTermResult:
		attrs = append(attrs, "found", r.Found)
	case wikipedia.GetTranslationsResult:
		attrs = append(attrs, "found", len(r.Translations), "missing", len(r.Missing))
	}

	h.logger.Info("Tool executed", attrs...)
}

// Convenience function to call the generic register with method receiver
func (h *HandlerRegistry) register(server *mcp.Server, tool *mcp.Tool, spec ToolSpec, method any) bool {
	switch m := method.(type) {
	case func(context.Context, wikipedia.SearchArgs) (wikipedia.SearchToolResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, wikipedia.GetTranslationArgs) (wikipedia.GetTranslationResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, wikipedia.TranslateTermArgs) (wikipedia.TranslateTermResult, error):
		register(h, server, tool, spec, m)
	case func(context.Context, wikipedia.GetTranslationsArgs) (wikipedia.GetTranslationsResult, error):
		register(h, server, tool, spec, m)
	default:
		h.logger.Error("Unknown method type, tool not registered", "tool", spec.Name)
		return false
	}
	return true
}
