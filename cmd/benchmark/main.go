package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"golang.org/x/sync/errgroup"

	"github.com/olgasafonova/finnish-id-mcp-server/internal/finland"
	"github.com/olgasafonova/finnish-id-mcp-server/tools"
)

var centuryMarkers = []byte{'+', '-', 'A'}

// generateSSN builds a code with a correct check character, then corrupts
// roughly a quarter of them.
func generateSSN(r *rand.Rand) string {
	day := 1 + r.Intn(28)
	month := 1 + r.Intn(12)
	year := r.Intn(100)
	marker := centuryMarkers[r.Intn(len(centuryMarkers))]
	individual := 2 + r.Intn(898)

	date := fmt.Sprintf("%02d%02d%02d", day, month, year)
	number := fmt.Sprintf("%03d", individual)
	check, _ := finland.SSNCheckCharacter(date + number)

	code := []byte(date + string(marker) + number + string(check))
	if r.Intn(4) == 0 {
		code[10] = "0123456789ABCDEFHJKLMNPRSTUVWXY"[r.Intn(31)]
	}
	return string(code)
}

// generateBusinessID builds a business ID, wrong for roughly a quarter of them.
func generateBusinessID(r *rand.Rand) string {
	for {
		number := fmt.Sprintf("%07d", r.Intn(10_000_000))
		digit, ok := finland.BusinessIDCheckDigit(number)
		if !ok {
			continue
		}
		if r.Intn(4) == 0 {
			digit = (digit + 1 + r.Intn(9)) % 10
		}
		return fmt.Sprintf("%s-%d", number, digit)
	}
}

func generateCorpus(n int, seed int64) []string {
	r := rand.New(rand.NewSource(seed))
	corpus := make([]string, n)
	for i := range corpus {
		if i%2 == 0 {
			corpus[i] = generateSSN(r)
		} else {
			corpus[i] = generateBusinessID(r)
		}
	}
	return corpus
}

// measureSequential validates the whole corpus on one goroutine
func measureSequential(corpus []string) ([]bool, time.Duration) {
	results := make([]bool, len(corpus))
	start := time.Now()
	for i, s := range corpus {
		results[i] = finland.Validate(s).Valid
	}
	return results, time.Since(start)
}

// measureParallel splits the corpus into chunks validated concurrently.
func measureParallel(ctx context.Context, corpus []string, workers int) ([]bool, time.Duration, error) {
	results := make([]bool, len(corpus))
	chunk := (len(corpus) + workers - 1) / workers

	start := time.Now()
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for lo := 0; lo < len(corpus); lo += chunk {
		hi := min(lo+chunk, len(corpus))
		g.Go(func() error {
			for i := lo; i < hi; i++ {
				if i%1024 == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				results[i] = finland.Validate(corpus[i]).Valid
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, 0, err
	}
	return results, time.Since(start), nil
}

// measureToolRoundTrip calls finland_validate_id through an in-memory MCP session.
func measureToolRoundTrip(ctx context.Context, corpus []string) (time.Duration, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	server := mcp.NewServer(&mcp.Implementation{Name: "benchmark", Version: "dev"}, nil)
	tools.NewHandlerRegistry(finland.NewValidator(finland.WithLogger(logger)), logger).RegisterAll(server)

	clientTransport, serverTransport := mcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	if err != nil {
		return 0, fmt.Errorf("server connect: %w", err)
	}
	defer func() { _ = serverSession.Close() }()

	client := mcp.NewClient(&mcp.Implementation{Name: "benchmark-client", Version: "dev"}, nil)
	session, err := client.Connect(ctx, clientTransport, nil)
	if err != nil {
		return 0, fmt.Errorf("client connect: %w", err)
	}
	defer func() { _ = session.Close() }()

	start := time.Now()
	for _, s := range corpus {
		if _, err := session.CallTool(ctx, &mcp.CallToolParams{
			Name:      "finland_validate_id",
			Arguments: map[string]any{"input": s},
		}); err != nil {
			return 0, fmt.Errorf("call tool: %w", err)
		}
	}
	return time.Since(start), nil
}

func countValid(results []bool) int {
	n := 0
	for _, ok := range results {
		if ok {
			n++
		}
	}
	return n
}

func main() {
	size := flag.Int("n", 1_000_000, "number of identifiers to validate")
	calls := flag.Int("calls", 2_000, "number of MCP tool calls")
	workers := flag.Int("workers", runtime.GOMAXPROCS(0), "parallel workers")
	seed := flag.Int64("seed", 1, "corpus seed")
	flag.Parse()

	if *size <= 0 || *workers <= 0 {
		fmt.Fprintln(os.Stderr, "-n and -workers must be positive")
		os.Exit(2)
	}

	ctx := context.Background()

	fmt.Println("Finnish ID Validation - Performance Measurements")
	fmt.Println("================================================")
	fmt.Println()

	corpus := generateCorpus(*size, *seed)
	fmt.Printf("Corpus: %d identifiers (half SSNs, half business IDs)\n\n", len(corpus))

	fmt.Println("1. Sequential validation:")
	seq, seqTime := measureSequential(corpus)
	fmt.Printf("   Time: %v (%.0f ns/op)\n", seqTime, float64(seqTime.Nanoseconds())/float64(len(corpus)))
	fmt.Printf("   Valid: %d / %d\n", countValid(seq), len(corpus))
	fmt.Println()

	fmt.Printf("2. Parallel validation (%d workers):\n", *workers)
	par, parTime, err := measureParallel(ctx, corpus, *workers)
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("   Time: %v\n", parTime)
	fmt.Printf("   Speedup: %.1fx\n", float64(seqTime)/float64(parTime))
	for i := range seq {
		if seq[i] != par[i] {
			fmt.Printf("   Mismatch at %d\n", i)
			os.Exit(1)
		}
	}
	fmt.Println("   Results match sequential run")
	fmt.Println()

	if *calls > 0 {
		n := min(*calls, len(corpus))
		fmt.Printf("3. MCP tool round trip (%d calls, in-memory transport):\n", n)
		rtTime, err := measureToolRoundTrip(ctx, corpus[:n])
		if err != nil {
			fmt.Printf("   Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("   Time: %v (%v per call)\n", rtTime, rtTime/time.Duration(n))
		fmt.Println()
	}
}
