package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/varunmitra/altgrammarly/internal/operation"
	"github.com/varunmitra/altgrammarly/internal/transform"
)

type benchResult struct {
	Sample    string `json:"sample"`
	Chars     int    `json:"chars"`
	Run       int    `json:"run"`
	Attempts  int    `json:"attempts"`
	ElapsedMs int64  `json:"elapsed_ms"`
	OutChars  int    `json:"out_chars"`
	Error     string `json:"error,omitempty"`
}

type benchReport struct {
	Timestamp string        `json:"timestamp"`
	Provider  string        `json:"provider"`
	Operation string        `json:"operation"`
	Results   []benchResult `json:"results"`
}

func newBenchCommand(rootOpts *rootOptions) *cobra.Command {
	var (
		runs    int
		opName  string
		jsonOut string
	)

	cmd := &cobra.Command{
		Use:   "bench",
		Short: "Measure transform latency over built-in samples",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if runs < 1 {
				return fmt.Errorf("bench: runs must be at least 1, got %d", runs)
			}
			op, err := operation.Parse(opName)
			if err != nil {
				return err
			}

			cfg, logger, err := rootOpts.load()
			if err != nil {
				return err
			}
			a, err := buildAdapter(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			client := newClient(cfg, a, logger)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Benchmarking %s with %s (%d runs per sample)\n", a.Name(), op, runs)

			var results []benchResult
			for _, s := range benchSamples {
				for run := 1; run <= runs; run++ {
					r := benchResult{Sample: s.Name, Chars: len(s.Text), Run: run}
					res, err := client.Transform(cmd.Context(), transform.Request{Text: s.Text, Operation: op})
					if err != nil {
						r.Error = err.Error()
					} else {
						r.Attempts = res.Attempts
						r.ElapsedMs = res.Elapsed.Milliseconds()
						r.OutChars = len(res.Text)
					}
					results = append(results, r)
				}
			}

			fmt.Fprintln(out)
			printBenchTable(out, results)
			failed := printBenchSummary(out, results)

			if jsonOut != "" {
				report := benchReport{
					Timestamp: time.Now().UTC().Format(time.RFC3339),
					Provider:  a.Name(),
					Operation: string(op),
					Results:   results,
				}
				if err := writeBenchJSON(jsonOut, report); err != nil {
					return fmt.Errorf("bench: write %s: %w", jsonOut, err)
				}
				fmt.Fprintf(out, "\nResults written to %s\n", jsonOut)
			}

			if failed > 0 {
				return fmt.Errorf("bench: %d of %d runs failed", failed, len(results))
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 3, "number of runs per sample")
	cmd.Flags().StringVar(&opName, "operation", string(operation.Correct), "operation to benchmark")
	cmd.Flags().StringVar(&jsonOut, "json", "", "write results to a JSON file")

	return cmd
}

func printBenchTable(w io.Writer, results []benchResult) {
	fmt.Fprintln(w, "| Sample | Chars | Run | Attempts | Elapsed (ms) | Out Chars | Ratio |")
	fmt.Fprintln(w, "|--------|-------|-----|----------|--------------|-----------|-------|")
	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(w, "| %-6s | %5d | %d | %8s | %12s | %9s | %5s |\n",
				r.Sample, r.Chars, r.Run, "-", "FAIL", "-", "-")
			continue
		}
		ratio := float64(r.OutChars) / float64(r.Chars)
		fmt.Fprintf(w, "| %-6s | %5d | %d | %8d | %12d | %9d | %5.2f |\n",
			r.Sample, r.Chars, r.Run, r.Attempts, r.ElapsedMs, r.OutChars, ratio)
	}
}

// printBenchSummary writes aggregate timings and returns the failure count.
func printBenchSummary(w io.Writer, results []benchResult) int {
	var ok []benchResult
	for _, r := range results {
		if r.Error == "" {
			ok = append(ok, r)
		}
	}
	failed := len(results) - len(ok)

	if len(ok) == 0 {
		fmt.Fprintf(w, "\nSummary: all %d runs failed\n", len(results))
		return failed
	}

	var totalElapsed int64
	var totalChars int
	minR, maxR := ok[0], ok[0]
	for _, r := range ok {
		totalElapsed += r.ElapsedMs
		totalChars += r.Chars
		if r.ElapsedMs < minR.ElapsedMs {
			minR = r
		}
		if r.ElapsedMs > maxR.ElapsedMs {
			maxR = r
		}
	}

	fmt.Fprintf(w, "\nSummary:\n")
	fmt.Fprintf(w, "- Avg ms/char: %.2f\n", float64(totalElapsed)/float64(totalChars))
	fmt.Fprintf(w, "- Min elapsed: %dms (%s)\n", minR.ElapsedMs, minR.Sample)
	fmt.Fprintf(w, "- Max elapsed: %dms (%s)\n", maxR.ElapsedMs, maxR.Sample)
	fmt.Fprintf(w, "- Total runs: %d (%d ok, %d failed)\n", len(results), len(ok), failed)
	return failed
}

func writeBenchJSON(path string, report benchReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
