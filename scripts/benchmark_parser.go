package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult represents a parsed benchmark result.
type BenchmarkResult struct {
	Name        string
	Operation   string
	Size        string
	Impl        string // "local" or "tiered"
	Iterations  int
	NsPerOp     float64
	BytesPerOp  int64
	AllocsPerOp int64
}

// ComparisonResult pairs the local and tiered runs of one benchmark.
type ComparisonResult struct {
	Operation    string
	Size         string
	LocalNs      float64
	TieredNs     float64
	Overhead     float64 // TieredNs / LocalNs
	LocalAllocs  int64
	TieredAllocs int64
	TieredOnly   bool
}

var (
	inputFile = flag.String(
		"input",
		"",
		"Input file with benchmark output (stdin if not specified)",
	)
	outputFile = flag.String("output", "", "Output markdown file (stdout if not specified)")
	quiet      = flag.Bool("quiet", false, "Suppress progress output")
)

func main() {
	flag.Parse()

	// Read benchmark output
	var scanner *bufio.Scanner
	if *inputFile != "" {
		f, err := os.Open(*inputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening input file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		scanner = bufio.NewScanner(f)
	} else {
		scanner = bufio.NewScanner(os.Stdin)
	}

	results := parseBenchmarks(scanner)
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Parsed %d benchmark results\n", len(results))
	}

	comparisons := generateComparisons(results)
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Generated %d comparisons\n", len(comparisons))
	}

	report := generateMarkdownReport(comparisons)

	if *outputFile == "" {
		fmt.Fprint(os.Stdout, report)
		return
	}
	if err := os.WriteFile(*outputFile, []byte(report), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing output file: %v\n", err)
		os.Exit(1)
	}
	if !*quiet {
		fmt.Fprintf(os.Stderr, "Report written to %s\n", *outputFile)
	}
}

// BenchmarkInsert/tiered/cap4096-8    1200    981234 ns/op    0 B/op    0 allocs/op
var benchmarkRegex = regexp.MustCompile(
	`^(Benchmark\S+)\s+(\d+)\s+([\d.]+)\s+ns/op(?:\s+([\d.]+)\s+B/op)?(?:\s+([\d.]+)\s+allocs/op)?`,
)

func parseBenchmarks(scanner *bufio.Scanner) []BenchmarkResult {
	var results []BenchmarkResult

	for scanner.Scan() {
		line := scanner.Text()

		// Accept `go test -json` events too
		var testEvent map[string]any
		if err := json.Unmarshal([]byte(line), &testEvent); err == nil {
			if output, ok := testEvent["Output"].(string); ok {
				line = output
			}
		}

		r, ok := parseLine(strings.TrimSpace(line))
		if ok {
			results = append(results, r)
		}
	}

	return results
}

// parseLine parses one result line named Benchmark<Operation>/<impl>/<size>-<procs>.
func parseLine(line string) (BenchmarkResult, bool) {
	matches := benchmarkRegex.FindStringSubmatch(line)
	if matches == nil {
		return BenchmarkResult{}, false
	}

	name := matches[1]
	parts := strings.Split(name, "/")
	if len(parts) < 2 {
		return BenchmarkResult{}, false
	}

	r := BenchmarkResult{
		Name:      name,
		Operation: strings.TrimPrefix(parts[0], "Benchmark"),
		Impl:      stripProcs(parts[1]),
	}
	if len(parts) >= 3 {
		r.Size = stripProcs(parts[len(parts)-1])
	}
	r.Iterations, _ = strconv.Atoi(matches[2])
	r.NsPerOp, _ = strconv.ParseFloat(matches[3], 64)
	if matches[4] != "" {
		r.BytesPerOp, _ = strconv.ParseInt(matches[4], 10, 64)
	}
	if matches[5] != "" {
		r.AllocsPerOp, _ = strconv.ParseInt(matches[5], 10, 64)
	}
	return r, true
}

// stripProcs removes the -N GOMAXPROCS suffix.
func stripProcs(s string) string {
	if i := strings.LastIndex(s, "-"); i > 0 {
		if _, err := strconv.Atoi(s[i+1:]); err == nil {
			return s[:i]
		}
	}
	return s
}

func generateComparisons(results []BenchmarkResult) []ComparisonResult {
	type key struct {
		operation string
		size      string
	}

	grouped := make(map[key]map[string]BenchmarkResult)
	for _, result := range results {
		k := key{result.Operation, result.Size}
		if grouped[k] == nil {
			grouped[k] = make(map[string]BenchmarkResult)
		}
		grouped[k][result.Impl] = result
	}

	var comparisons []ComparisonResult
	for k, impls := range grouped {
		tiered, hasTiered := impls["tiered"]
		if !hasTiered {
			continue
		}
		c := ComparisonResult{
			Operation:    k.operation,
			Size:         k.size,
			TieredNs:     tiered.NsPerOp,
			TieredAllocs: tiered.AllocsPerOp,
			TieredOnly:   true,
		}
		if local, ok := impls["local"]; ok && local.NsPerOp > 0 {
			c.LocalNs = local.NsPerOp
			c.LocalAllocs = local.AllocsPerOp
			c.Overhead = tiered.NsPerOp / local.NsPerOp
			c.TieredOnly = false
		}
		comparisons = append(comparisons, c)
	}

	sort.Slice(comparisons, func(i, j int) bool {
		if comparisons[i].Operation != comparisons[j].Operation {
			return comparisons[i].Operation < comparisons[j].Operation
		}
		return comparisons[i].Size < comparisons[j].Size
	})

	return comparisons
}

func generateMarkdownReport(comparisons []ComparisonResult) string {
	var sb strings.Builder

	sb.WriteString("# Benchmark Report\n\n")
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", time.Now().Format("2006-01-02 15:04:05")))

	paired := 0
	total := 0.0
	worst := ComparisonResult{}
	for _, c := range comparisons {
		if c.TieredOnly {
			continue
		}
		paired++
		total += c.Overhead
		if c.Overhead > worst.Overhead {
			worst = c
		}
	}

	sb.WriteString("## Summary\n\n")
	sb.WriteString(fmt.Sprintf("- **Total benchmarks**: %d\n", len(comparisons)))
	sb.WriteString(fmt.Sprintf("- **Paired** (local and tiered): %d\n", paired))
	if paired > 0 {
		sb.WriteString(fmt.Sprintf("  - Average tiered overhead: **%.2fx**\n", total/float64(paired)))
		sb.WriteString(fmt.Sprintf("  - Worst: %s/%s at %.2fx\n", worst.Operation, worst.Size, worst.Overhead))
	}
	sb.WriteString("\n")

	sb.WriteString("## Detailed Results\n\n")
	sb.WriteString("| Operation | Size | local (ns/op) | tiered (ns/op) | Overhead | Allocs |\n")
	sb.WriteString("|-----------|------|---------------|----------------|----------|--------|\n")
	for _, c := range comparisons {
		if c.TieredOnly {
			sb.WriteString(fmt.Sprintf("| %s | %s | *N/A* | %s | *tiered only* | %s |\n",
				c.Operation,
				c.Size,
				formatNumber(c.TieredNs),
				formatNumber(float64(c.TieredAllocs)),
			))
			continue
		}
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %.2fx | %s vs %s |\n",
			c.Operation,
			c.Size,
			formatNumber(c.LocalNs),
			formatNumber(c.TieredNs),
			c.Overhead,
			formatNumber(float64(c.LocalAllocs)),
			formatNumber(float64(c.TieredAllocs)),
		))
	}
	sb.WriteString("\n")

	sb.WriteString("## Notes\n\n")
	sb.WriteString("- **Overhead**: tiered ns/op divided by local ns/op; every tiered slot access is a channel transfer\n")
	sb.WriteString("- **Allocations**: Fewer is better\n")

	return sb.String()
}

func formatNumber(n float64) string {
	if n >= 1000000 {
		return fmt.Sprintf("%.2fM", n/1000000)
	} else if n >= 1000 {
		return fmt.Sprintf("%.1fK", n/1000)
	}
	return fmt.Sprintf("%.0f", n)
}
