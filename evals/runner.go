// Package evals runs conformance vector suites against Finnish identifier
// validators. A suite lists inputs with their expected kind, validity and
// rejection reason; a Checker is anything that can answer for one input,
// such as the library itself or the finland_validate_id MCP tool.
package evals

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/olgasafonova/finnish-id-mcp-server/internal/finland"
)

// VectorTest represents a single identifier conformance case
type VectorTest struct {
	ID             string `json:"id"`
	Category       string `json:"category"`
	Input          string `json:"input"`
	ExpectedKind   string `json:"expected_kind"`
	ExpectedValid  bool   `json:"expected_valid"`
	ExpectedReason string `json:"expected_reason"`
	Note           string `json:"note,omitempty"`
}

// VectorSuite contains all conformance vectors
type VectorSuite struct {
	Name        string       `json:"name"`
	Version     string       `json:"version"`
	Description string       `json:"description"`
	Tests       []VectorTest `json:"tests"`
}

// Verdict is what a checker reports for one input
type Verdict struct {
	Kind   string
	Valid  bool
	Reason string
}

// Checker validates a single identifier
type Checker interface {
	Check(ctx context.Context, input string) (Verdict, error)
}

// LibraryChecker checks inputs with finland.Validate.
type LibraryChecker struct{}

func (LibraryChecker) Check(_ context.Context, input string) (Verdict, error) {
	r := finland.Validate(input)
	return Verdict{Kind: string(r.Kind), Valid: r.Valid, Reason: string(r.Reason)}, nil
}

// SessionChecker checks inputs by calling the finland_validate_id tool over
// an MCP client session.
type SessionChecker struct {
	Session *mcp.ClientSession
}

func (c *SessionChecker) Check(ctx context.Context, input string) (Verdict, error) {
	res, err := c.Session.CallTool(ctx, &mcp.CallToolParams{
		Name:      "finland_validate_id",
		Arguments: map[string]any{"input": input},
	})
	if err != nil {
		return Verdict{}, err
	}
	if res.IsError {
		return Verdict{}, fmt.Errorf("tool error: %s", toolErrorText(res))
	}

	// Round-trip through JSON so both typed and map content decode the same way
	raw, err := json.Marshal(res.StructuredContent)
	if err != nil {
		return Verdict{}, fmt.Errorf("encoding structured content: %w", err)
	}
	var out finland.Result
	if err := json.Unmarshal(raw, &out); err != nil {
		return Verdict{}, fmt.Errorf("decoding structured content: %w", err)
	}
	return Verdict{Kind: string(out.Kind), Valid: out.Valid, Reason: string(out.Reason)}, nil
}

func toolErrorText(res *mcp.CallToolResult) string {
	var parts []string
	for _, c := range res.Content {
		if tc, ok := c.(*mcp.TextContent); ok {
			parts = append(parts, tc.Text)
		}
	}
	return strings.Join(parts, "; ")
}

// VectorResult represents the result of a single vector evaluation
type VectorResult struct {
	TestID   string
	Category string
	Input    string
	Expected Verdict
	Actual   Verdict
	Passed   bool
	Errors   []string
}

// EvalMetrics contains aggregate metrics for an evaluation run
type EvalMetrics struct {
	TotalTests    int
	PassedTests   int
	FailedTests   int
	Accuracy      float64 // PassedTests / TotalTests
	ByCategory    map[string]*CategoryMetrics
	ByKind        map[string]*KindMetrics
	FailedDetails []string
}

// CategoryMetrics contains metrics per category
type CategoryMetrics struct {
	Total  int
	Passed int
	Failed int
}

// KindMetrics contains metrics per expected identifier kind
type KindMetrics struct {
	Total         int
	Misrouted     int // checked as the wrong kind
	FalseAccepts  int // expected invalid, reported valid
	FalseRejects  int // expected valid, reported invalid
	WrongReasons  int // rejected, but for another reason
	CheckerErrors int
}

// LoadVectorSuite loads conformance vectors from a JSON file
func LoadVectorSuite(path string) (*VectorSuite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var suite VectorSuite
	if err := json.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}

	for i, test := range suite.Tests {
		if test.ID == "" {
			return nil, fmt.Errorf("test %d: missing id", i)
		}
		if test.ExpectedValid && test.ExpectedReason != "" {
			return nil, fmt.Errorf("test %s: valid vector cannot have a reason", test.ID)
		}
	}

	return &suite, nil
}

// EvaluateVectors runs every vector in the suite against a checker
func EvaluateVectors(ctx context.Context, suite *VectorSuite, checker Checker) (*EvalMetrics, []VectorResult) {
	metrics := &EvalMetrics{
		ByCategory: make(map[string]*CategoryMetrics),
		ByKind:     make(map[string]*KindMetrics),
	}
	var results []VectorResult

	for _, test := range suite.Tests {
		metrics.TotalTests++

		if metrics.ByCategory[test.Category] == nil {
			metrics.ByCategory[test.Category] = &CategoryMetrics{}
		}
		metrics.ByCategory[test.Category].Total++

		if metrics.ByKind[test.ExpectedKind] == nil {
			metrics.ByKind[test.ExpectedKind] = &KindMetrics{}
		}
		km := metrics.ByKind[test.ExpectedKind]
		km.Total++

		result := VectorResult{
			TestID:   test.ID,
			Category: test.Category,
			Input:    test.Input,
			Expected: Verdict{Kind: test.ExpectedKind, Valid: test.ExpectedValid, Reason: test.ExpectedReason},
			Passed:   true,
		}

		actual, err := checker.Check(ctx, test.Input)
		result.Actual = actual

		switch {
		case err != nil:
			result.Passed = false
			result.Errors = append(result.Errors, fmt.Sprintf("checker error: %v", err))
			km.CheckerErrors++
		default:
			if actual.Kind != test.ExpectedKind {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("wrong kind: expected %s, got %s", test.ExpectedKind, actual.Kind))
				km.Misrouted++
			}
			if actual.Valid != test.ExpectedValid {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("wrong validity: expected %t, got %t", test.ExpectedValid, actual.Valid))
				if actual.Valid {
					km.FalseAccepts++
				} else {
					km.FalseRejects++
				}
			} else if !test.ExpectedValid && test.ExpectedReason != "" && actual.Reason != test.ExpectedReason {
				result.Passed = false
				result.Errors = append(result.Errors,
					fmt.Sprintf("wrong reason: expected %s, got %s", test.ExpectedReason, actual.Reason))
				km.WrongReasons++
			}
		}

		if result.Passed {
			metrics.PassedTests++
			metrics.ByCategory[test.Category].Passed++
		} else {
			metrics.FailedTests++
			metrics.ByCategory[test.Category].Failed++
			metrics.FailedDetails = append(metrics.FailedDetails,
				fmt.Sprintf("[%s] %q: %s", test.ID, displayInput(test), strings.Join(result.Errors, "; ")))
		}

		results = append(results, result)
	}

	if metrics.TotalTests > 0 {
		metrics.Accuracy = float64(metrics.PassedTests) / float64(metrics.TotalTests)
	}

	return metrics, results
}

// displayInput masks personal identity codes in reports.
func displayInput(test VectorTest) string {
	if test.ExpectedKind == string(finland.KindSSN) {
		return finland.MaskSSN(test.Input)
	}
	return test.Input
}

// FormatMetrics returns a human-readable summary of evaluation metrics
func FormatMetrics(metrics *EvalMetrics, suiteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "\n=== %s ===\n", suiteName)
	fmt.Fprintf(&b, "Total: %d tests\n", metrics.TotalTests)
	fmt.Fprintf(&b, "Passed: %d (%.1f%%)\n", metrics.PassedTests, metrics.Accuracy*100)
	fmt.Fprintf(&b, "Failed: %d\n", metrics.FailedTests)

	if len(metrics.ByCategory) > 0 {
		b.WriteString("\nBy Category:\n")
		for _, cat := range sortedKeys(metrics.ByCategory) {
			m := metrics.ByCategory[cat]
			if m.Total > 0 {
				acc := float64(m.Passed) / float64(m.Total) * 100
				fmt.Fprintf(&b, "  %-15s: %d/%d (%.0f%%)\n", cat, m.Passed, m.Total, acc)
			}
		}
	}

	if len(metrics.ByKind) > 0 {
		b.WriteString("\nBy Kind:\n")
		for _, kind := range sortedKeys(metrics.ByKind) {
			m := metrics.ByKind[kind]
			fmt.Fprintf(&b, "  %-15s: %d vectors, %d misrouted, %d false accepts, %d false rejects, %d wrong reasons\n",
				kind, m.Total, m.Misrouted, m.FalseAccepts, m.FalseRejects, m.WrongReasons)
		}
	}

	if len(metrics.FailedDetails) > 0 && len(metrics.FailedDetails) <= 10 {
		b.WriteString("\nFailed Tests:\n")
		for _, detail := range metrics.FailedDetails {
			fmt.Fprintf(&b, "  - %s\n", detail)
		}
	} else if len(metrics.FailedDetails) > 10 {
		fmt.Fprintf(&b, "\nFailed Tests (showing first 10 of %d):\n", len(metrics.FailedDetails))
		for _, detail := range metrics.FailedDetails[:10] {
			fmt.Fprintf(&b, "  - %s\n", detail)
		}
	}

	return b.String()
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
