package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/younsl/thaw/internal/models"
	"github.com/younsl/thaw/internal/version"
	"github.com/younsl/thaw/pkg/aws"
	"github.com/younsl/thaw/pkg/exporter"
	"github.com/younsl/thaw/pkg/formatter"
	"github.com/younsl/thaw/pkg/stats"
	"github.com/younsl/thaw/pkg/utils"
)

var (
	region     string
	maxResults int
	verbose    bool
)

// startFetchSpinner creates and starts a spinner for a log fetch
func startFetchSpinner(functionName string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[9], 100*time.Millisecond)
	s.Suffix = fmt.Sprintf(" Fetching CloudWatch logs for %s ...", functionName)
	s.Start()
	return s
}

// fetchReports pulls invocation reports for one function with spinner
// progress and a completion line
func fetchReports(ctx context.Context, functionName string, startTime, endTime time.Time, limit int) ([]models.InvocationReport, error) {
	client, err := aws.NewLogsClient(region)
	if err != nil {
		return nil, err
	}

	fetchStart := time.Now()
	s := startFetchSpinner(functionName)

	reports, err := client.FetchReports(ctx, functionName, startTime, endTime, limit, func(fetched int) {
		s.Lock()
		s.Suffix = fmt.Sprintf(" Fetching CloudWatch logs for %s ... %d events", functionName, fetched)
		s.Unlock()
	})
	if err != nil {
		s.Stop()
		return nil, err
	}

	// Set completion message with fetch time and invocation count
	s.FinalMSG = fmt.Sprintf("✓ [%d invocations fetched] %s - Completed in %.2f seconds\n",
		len(reports), functionName, time.Since(fetchStart).Seconds())
	s.Stop()

	return reports, nil
}

func newAnalyzeCmd() *cobra.Command {
	var fromTime, toTime, exportFormat, output string

	cmd := &cobra.Command{
		Use:   "analyze FUNCTION",
		Short: "Analyze performance metrics for a Lambda function",
		Long: `Analyze fetches REPORT lines for one Lambda function and prints
duration, billed duration, memory and cold start statistics.

Examples:

  thaw analyze my-function --from 24h
  thaw analyze my-function --from 7d --export csv -o data.csv
  thaw analyze arn:aws:lambda:us-east-1:123456789:function:my-func`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			functionName := args[0]

			endTime := time.Now().UTC()
			if toTime != "now" {
				t, err := utils.ParseTimestamp(toTime)
				if err != nil {
					return fmt.Errorf("invalid end time: %w", err)
				}
				endTime = t
			}

			// --from takes a relative range or an absolute timestamp
			var startTime time.Time
			if delta, err := utils.ParseTimeRange(fromTime); err == nil {
				startTime = endTime.Add(-delta)
			} else if t, tsErr := utils.ParseTimestamp(fromTime); tsErr == nil {
				startTime = t
			} else {
				return fmt.Errorf("invalid start time %q, use a range like 24h or an ISO timestamp", fromTime)
			}

			if exportFormat != "" && exportFormat != "csv" {
				return fmt.Errorf("unsupported export format %q, only csv is supported", exportFormat)
			}
			if exportFormat != "" && output == "" {
				return fmt.Errorf("--output is required when using --export")
			}

			reports, err := fetchReports(cmd.Context(), functionName, startTime, endTime, maxResults)
			if err != nil {
				return err
			}

			result := stats.AnalyzeReports(functionName, reports, startTime, endTime)
			formatter.PrintAnalysisResult(result)

			if exportFormat == "csv" {
				if err := exporter.ExportReportsCSV(output, result.Invocations); err != nil {
					return err
				}
				fmt.Printf("\nExported %d invocations to %s\n", len(result.Invocations), output)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&fromTime, "from", "24h", "Start of time range (e.g. 24h, 7d, 1w) or ISO timestamp")
	cmd.Flags().StringVar(&toTime, "to", "now", "End of time range ('now' or ISO timestamp)")
	cmd.Flags().StringVar(&exportFormat, "export", "", "Export format (csv)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file path for export")

	return cmd
}

func newCompareCmd() *cobra.Command {
	var pivot, window, fromTime string

	cmd := &cobra.Command{
		Use:   "compare FUNCTION [FUNCTION...]",
		Short: "Compare Lambda performance before/after a pivot or across functions",
		Long: `Compare has two modes.

Pivot mode compares a single function before and after a timestamp:

  thaw compare my-function --pivot "2024-01-15T10:00:00Z"

Multi-function mode compares several functions over the same period:

  thaw compare func1 func2 func3 --from 7d`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if pivot != "" {
				if len(args) > 1 {
					return fmt.Errorf("pivot mode supports a single function, drop --pivot to compare functions")
				}
				return runPivotCompare(cmd.Context(), args[0], pivot, window)
			}

			if len(args) < 2 {
				return fmt.Errorf("multi-function mode needs at least 2 functions, use --pivot for before/after comparison")
			}

			timeRange := window
			if fromTime != "" {
				timeRange = fromTime
			}
			return runMultiCompare(cmd.Context(), args, timeRange)
		},
	}

	cmd.Flags().StringVar(&pivot, "pivot", "", "Pivot timestamp (ISO-8601) for before/after comparison")
	cmd.Flags().StringVar(&window, "window", "24h", "Window on each side of the pivot, or lookback for multi-function mode")
	cmd.Flags().StringVar(&fromTime, "from", "", "Lookback for multi-function comparison (e.g. 24h, 7d)")

	return cmd
}

// runPivotCompare fetches pivot±window and splits the reports at the pivot
func runPivotCompare(ctx context.Context, functionName, pivot, window string) error {
	pivotTime, err := utils.ParseTimestamp(pivot)
	if err != nil {
		return fmt.Errorf("invalid pivot timestamp: %w", err)
	}

	windowDelta, err := utils.ParseTimeRange(window)
	if err != nil {
		return fmt.Errorf("invalid window: %w", err)
	}

	startTime := pivotTime.Add(-windowDelta)
	endTime := pivotTime.Add(windowDelta)
	if now := time.Now().UTC(); endTime.After(now) {
		endTime = now
	}

	// Both sides share one fetch, so allow twice the per-side limit
	reports, err := fetchReports(ctx, functionName, startTime, endTime, maxResults*2)
	if err != nil {
		return err
	}

	var before, after []models.InvocationReport
	for _, r := range reports {
		if r.Timestamp.Before(pivotTime) {
			before = append(before, r)
		} else {
			after = append(after, r)
		}
	}
	fmt.Printf("Before pivot: %d invocations, after pivot: %d invocations\n", len(before), len(after))

	result := stats.CompareReports(functionName, before, after, pivotTime, startTime, endTime)
	formatter.PrintComparisonResult(result)
	return nil
}

// runMultiCompare summarizes each function over the same window and ranks
// them against the fastest one
func runMultiCompare(ctx context.Context, functionNames []string, timeRange string) error {
	delta, err := utils.ParseTimeRange(timeRange)
	if err != nil {
		return fmt.Errorf("invalid time range: %w", err)
	}

	endTime := time.Now().UTC()
	startTime := endTime.Add(-delta)

	var summaries []models.FunctionSummary
	for _, name := range functionNames {
		reports, err := fetchReports(ctx, name, startTime, endTime, maxResults)
		if err != nil {
			fmt.Printf("Error fetching %s: %v\n", name, err)
			continue
		}
		summaries = append(summaries, stats.SummarizeFunction(name, reports))
	}

	if len(summaries) == 0 {
		return fmt.Errorf("no data fetched for any function")
	}

	result := models.MultiFunctionComparison{
		StartTime: startTime,
		EndTime:   endTime,
		Functions: summaries,
	}

	formatter.PrintMultiFunctionComparison(result, stats.RankFunctions(result.Functions))
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			info := version.Get()
			fmt.Printf("thaw %s (commit %s, built %s, %s)\n",
				info.Version, info.GitCommit, info.BuildDate, info.GoVersion)
		},
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "thaw",
		Short: "CLI tool to analyze AWS Lambda performance from CloudWatch logs",
		Long: `thaw pulls Lambda REPORT lines from CloudWatch Logs and turns them
into performance summaries, before/after comparisons and multi-function
rankings.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
			zerolog.SetGlobalLevel(zerolog.WarnLevel)
			if verbose {
				zerolog.SetGlobalLevel(zerolog.DebugLevel)
			}
		},
	}

	rootCmd.PersistentFlags().StringVarP(&region, "region", "r", "", "AWS region (default: SDK resolution chain)")
	rootCmd.PersistentFlags().IntVar(&maxResults, "max-results", aws.DefaultMaxResults, "Maximum number of invocations to fetch per function")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable debug logging")

	rootCmd.AddCommand(newAnalyzeCmd(), newCompareCmd(), newVersionCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
