package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/finnish-id-mcp-server/internal/finland"
	"github.com/olgasafonova/finnish-id-mcp-server/metrics"
	"github.com/olgasafonova/finnish-id-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	validator *finland.Validator
	logger    *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(validator *finland.Validator, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		validator: validator,
		logger:    logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "ValidateSSN":
		register(h, server, tool, spec, h.validator.ValidateSSNMCP)
	case "ValidateBusinessID":
		register(h, server, tool, spec, h.validator.ValidateBusinessIDMCP)
	case "ValidateID":
		register(h, server, tool, spec, h.validator.ValidateIDMCP)
	case "CheckCharacter":
		register(h, server, tool, spec, h.validator.CheckCharacterMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
		OpenWorldHint:  ptr(spec.OpenWorld),
	}
	if spec.Destructive {
		annotations.DestructiveHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the validator method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		return invoke(ctx, h, spec, method, args)
	})
}

// invoke runs a single tool call. It is split out of register so the
// instrumentation can be exercised without an MCP session.
func invoke[Args, Result any](
	ctx context.Context,
	h *HandlerRegistry,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
	args Args,
) (res *mcp.CallToolResult, result Result, err error) {
	defer h.recoverPanic(spec.Name, &err)

	ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
	defer span.End()

	tracing.AddToolAttributes(span, spec.Name, spec.Category)
	span.SetAttributes(attribute.Bool("mcp.tool.readonly", spec.ReadOnly))

	metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
	defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

	start := time.Now()
	result, err = method(ctx, args)
	duration := time.Since(start).Seconds()

	span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

	if err != nil {
		tracing.RecordError(span, err)
		span.SetStatus(codes.Error, err.Error())
		metrics.RecordRequest(spec.Name, duration, false)
		var zero Result
		return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
	}

	if kind, valid, reason, ok := outcome(result); ok {
		tracing.AddValidationAttributes(span, kind, valid, reason)
		metrics.RecordValidation(kind, valid, reason)
	}

	span.SetStatus(codes.Ok, "")
	metrics.RecordRequest(spec.Name, duration, true)
	h.logExecution(spec, result)
	return nil, result, nil
}

// outcome extracts the validation verdict from a tool result.
func outcome(result any) (kind string, valid bool, reason string, ok bool) {
	switch r := result.(type) {
	case finland.ValidateSSNResult:
		return string(finland.KindSSN), r.Valid, r.Reason, true
	case finland.ValidateBusinessIDResult:
		return string(finland.KindBusinessID), r.Valid, r.Reason, true
	case finland.Result:
		return string(r.Kind), r.Valid, string(r.Reason), true
	}
	return "", false, "", false
}

// recoverPanic recovers from panics in tool handlers and turns them into an
// error for the caller.
func (h *HandlerRegistry) recoverPanic(toolName string, errp *error) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
		if errp != nil {
			*errp = fmt.Errorf("%s: internal error", toolName)
		}
	}
}

// logExecution logs tool execution details. Identifiers are logged masked
// (SSN) or not at all.
func (h *HandlerRegistry) logExecution(spec ToolSpec, result any) {
	attrs := []any{"tool", spec.Name, "category", spec.Category}

	switch r := result.(type) {
	case finland.ValidateSSNResult:
		attrs = append(attrs, "ssn", r.SSN, "valid", r.Valid, "reason", r.Reason)
	case finland.ValidateBusinessIDResult:
		attrs = append(attrs, "business_id", r.BusinessID, "valid", r.Valid, "reason", r.Reason)
	case finland.Result:
		attrs = append(attrs, "kind", r.Kind, "valid", r.Valid, "reason", r.Reason)
	case finland.CheckCharacterResult:
		attrs = append(attrs, "kind", r.Kind, "assignable", r.Assignable)
	}

	h.logger.Info("Tool executed", attrs...)
}
