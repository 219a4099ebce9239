package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/olgasafonova/wikitranslate-mcp-server/internal/wikipedia"
)

type options struct {
	term    string
	source  string
	targets []string
	runs    int
}

func parseFlags(args []string) (options, error) {
	fs := flag.NewFlagSet("benchmark", flag.ContinueOnError)
	term := fs.String("term", "Python", "term to search for")
	source := fs.String("source", "de", "source language code")
	target := fs.String("target", "es", "target language code(s), comma separated")
	runs := fs.Int("n", 3, "number of timed runs per operation")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if *runs < 1 {
		return options{}, fmt.Errorf("-n must be at least 1, got %d", *runs)
	}

	var targets []string
	for _, t := range strings.Split(*target, ",") {
		if t = strings.TrimSpace(t); t != "" {
			targets = append(targets, t)
		}
	}
	if len(targets) == 0 {
		return options{}, fmt.Errorf("-target must name at least one language")
	}

	return options{term: *term, source: *source, targets: targets, runs: *runs}, nil
}

// timings summarizes repeated measurements of one operation
type timings []time.Duration

func (t timings) summary() string {
	if len(t) == 0 {
		return "no runs"
	}
	sorted := append(timings(nil), t...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	return fmt.Sprintf("min %v  median %v  max %v  mean %v",
		sorted[0].Round(time.Millisecond),
		sorted[len(sorted)/2].Round(time.Millisecond),
		sorted[len(sorted)-1].Round(time.Millisecond),
		(total / time.Duration(len(sorted))).Round(time.Millisecond))
}

// measure runs fn n times and returns the latency of each run
func measure(n int, fn func() error) (timings, error) {
	out := make(timings, 0, n)
	for i := 0; i < n; i++ {
		start := time.Now()
		if err := fn(); err != nil {
			return out, err
		}
		out = append(out, time.Since(start))
	}
	return out, nil
}

func run(ctx context.Context, client *wikipedia.Client, opts options) error {
	fmt.Printf("=== Search %q on %s.wikipedia.org ===\n\n", opts.term, opts.source)

	results, err := client.Search(ctx, opts.term, opts.source)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	for i, r := range results {
		fmt.Printf("   %2d. %-40s pageid=%-10d edited=%s\n", i+1, r.Title, r.PageID, r.Timestamp)
	}
	if len(results) == 0 {
		fmt.Println("   No results (after removing disambiguation pages)")
		return nil
	}
	fmt.Println()

	best := results[0]
	fmt.Printf("=== Translations of %q (pageid %d) ===\n\n", best.Title, best.PageID)

	links, err := client.GetTranslations(ctx, best.PageID, opts.source, opts.targets)
	if err != nil {
		return fmt.Errorf("translations: %w", err)
	}
	langs := make([]string, 0, len(links))
	for lang := range links {
		langs = append(langs, lang)
	}
	sort.Strings(langs)
	for _, lang := range langs {
		if link := links[lang]; link != nil {
			fmt.Printf("   %-6s %-30s %s (%s)\n", lang, link.Title, link.URL, link.Autonym)
		} else {
			fmt.Printf("   %-6s (no article)\n", lang)
		}
	}
	fmt.Println()

	fmt.Printf("=== Latency over %d runs ===\n\n", opts.runs)

	searchTimes, err := measure(opts.runs, func() error {
		_, err := client.Search(ctx, opts.term, opts.source)
		return err
	})
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	fmt.Printf("   Search (2 requests):        %s\n", searchTimes.summary())

	lookupTimes, err := measure(opts.runs, func() error {
		_, err := client.GetTranslation(ctx, best.PageID, opts.source, opts.targets[0])
		return err
	})
	if err != nil {
		return fmt.Errorf("translation: %w", err)
	}
	fmt.Printf("   GetTranslation (%s):        %s\n", opts.targets[0], lookupTimes.summary())

	fanOutTimes, err := measure(opts.runs, func() error {
		_, err := client.GetTranslations(ctx, best.PageID, opts.source, opts.targets)
		return err
	})
	if err != nil {
		return fmt.Errorf("translations: %w", err)
	}
	fmt.Printf("   GetTranslations (%d langs): %s\n", len(opts.targets), fanOutTimes.summary())
	fmt.Println()

	for _, s := range client.CircuitBreakerStats() {
		fmt.Printf("   breaker %-25s state=%s failures=%d\n", s.Host, s.State, s.ConsecutiveFails)
	}
	return nil
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	config, err := wikipedia.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	client := wikipedia.NewClientFromConfig(config, logger)
	defer client.Close()

	fmt.Println("Wikipedia Translation MCP Server - Live Lookup and Latency")
	fmt.Println("===========================================================")
	fmt.Println()

	if err := run(context.Background(), client, opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		client.Close()
		os.Exit(1)
	}
}
