// Finnish ID MCP Server - A Model Context Protocol server for Finnish identifiers
// Provides tools for validating personal identity codes (henkilötunnus) and
// business IDs (Y-tunnus)
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/finnish-id-mcp-server/internal/config"
	"github.com/olgasafonova/finnish-id-mcp-server/internal/finland"
	"github.com/olgasafonova/finnish-id-mcp-server/tools"
	"github.com/olgasafonova/finnish-id-mcp-server/tracing"
)

// recoverPanic logs a panic instead of crashing and sets the exit code
// to 1 when code is non-nil. It must be deferred directly.
func recoverPanic(logger *slog.Logger, operation string, code *int) {
	if r := recover(); r != nil {
		logger.Error("Panic recovered",
			"operation", operation,
			"panic", r,
			"stack", string(debug.Stack()))
		if code != nil {
			*code = 1
		}
	}
}

const (
	ServerName    = "finnish-id-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `Finnish ID MCP Server validates Finnish personal identity codes and business IDs.

Available tools:
- finland_validate_ssn: Validate a personal identity code (henkilötunnus), e.g. 131052-308T
- finland_validate_business_id: Validate a business ID (Y-tunnus), e.g. 2464491-9
- finland_validate_id: Validate an identifier of unknown kind
- finland_compute_check_character: Compute the check character or check digit

Personal identity codes are never logged or echoed in full.

Configure via environment variables:
- FIID_LOG_LEVEL: debug, info, warn or error (default info)
- FIID_LOG_JSON: true for JSON logs on stderr
- OTEL_ENABLED / OTEL_EXPORTER_OTLP_ENDPOINT: enable tracing`

// newServer creates the MCP server with all tools registered
func newServer(logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	validator := finland.NewValidator(finland.WithLogger(logger))
	tools.NewHandlerRegistry(validator, logger).RegisterAll(server)
	return server
}

func main() {
	os.Exit(run())
}

// run starts the server and returns the process exit code. Deferred
// tracing shutdown and panic logging run before main exits.
func run() (code int) {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	// Logging goes to stderr (stdout is used for MCP protocol)
	logger := cfg.NewLogger(os.Stderr)
	defer recoverPanic(logger, "main", &code)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		logger.Error("Failed to set up tracing", "error", err)
		return 1
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(shutdownCtx); err != nil {
			logger.Warn("Tracing shutdown failed", "error", err)
		}
	}()

	server := newServer(logger)

	logger.Info("Starting Finnish ID MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"transport", "stdio",
	)

	if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil && ctx.Err() == nil {
		logger.Error("Server error", "error", err)
		return 1
	}
	return 0
}
