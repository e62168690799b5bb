// Command evals runs the identifier conformance vectors.
//
// Usage:
//
//	go run ./cmd/evals -file ./evals/vectors.json -via all
//
// Vectors are checked against the validation library, against the
// finland_validate_id tool over an in-memory MCP session, or both.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olgasafonova/finnish-id-mcp-server/evals"
	"github.com/olgasafonova/finnish-id-mcp-server/internal/finland"
	"github.com/olgasafonova/finnish-id-mcp-server/tools"
)

func main() {
	file := flag.String("file", "./evals/vectors.json", "Conformance vector JSON file")
	via := flag.String("via", "all", "Checker to run: library, mcp, or all")
	verbose := flag.Bool("verbose", false, "Show every vector")
	flag.Parse()

	fmt.Println("Finnish ID MCP Server - Conformance Vectors")
	fmt.Println("===========================================")
	fmt.Println()

	suite, err := evals.LoadVectorSuite(*file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading vector suite: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Suite: %s\n", suite.Name)
	fmt.Printf("Version: %s\n", suite.Version)
	fmt.Printf("Description: %s\n", suite.Description)
	fmt.Printf("Total Vectors: %d\n", len(suite.Tests))

	ctx := context.Background()
	failed := false

	switch *via {
	case "library":
		failed = run(ctx, suite, evals.LibraryChecker{}, "Library", *verbose)
	case "mcp":
		failed = runMCP(ctx, suite, *verbose)
	case "all":
		failed = run(ctx, suite, evals.LibraryChecker{}, "Library", *verbose)
		failed = runMCP(ctx, suite, *verbose) || failed
	default:
		fmt.Fprintf(os.Stderr, "Unknown checker: %s\n", *via)
		os.Exit(1)
	}

	if failed {
		os.Exit(1)
	}
}

func run(ctx context.Context, suite *evals.VectorSuite, checker evals.Checker, name string, verbose bool) bool {
	metrics, results := evals.EvaluateVectors(ctx, suite, checker)
	fmt.Print(evals.FormatMetrics(metrics, name))

	if verbose {
		fmt.Println("\nVectors:")
		for _, r := range results {
			mark := "✓"
			if !r.Passed {
				mark = "✗"
			}
			fmt.Printf("  %s [%s] %s valid=%t reason=%s\n", mark, r.TestID, r.Actual.Kind, r.Actual.Valid, r.Actual.Reason)
		}
	}

	return metrics.FailedTests > 0
}

// runMCP serves the tools in-process and evaluates through a client session.
func runMCP(ctx context.Context, suite *evals.VectorSuite, verbose bool) bool {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	server := mcp.NewServer(&mcp.Implementation{Name: "finnish-id-evals", Version: "dev"}, nil)
	tools.NewHandlerRegistry(finland.NewValidator(finland.WithLogger(logger)), logger).RegisterAll(server)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		return true
	}
	defer func() { _ = serverSession.Close() }()

	client := mcp.NewClient(&mcp.Implementation{Name: "finnish-id-evals-client", Version: "dev"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error connecting client: %v\n", err)
		return true
	}
	defer func() { _ = session.Close() }()

	// Empty input is an argument error for the tool, not a verdict
	toolSuite := *suite
	toolSuite.Tests = nil
	for _, test := range suite.Tests {
		if test.Input != "" {
			toolSuite.Tests = append(toolSuite.Tests, test)
		}
	}

	return run(ctx, &toolSuite, &evals.SessionChecker{Session: session}, "MCP finland_validate_id", verbose)
}
