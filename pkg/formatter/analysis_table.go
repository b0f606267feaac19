package formatter

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/younsl/thaw/internal/models"
)

// PrintAnalysisResult formats and prints a single-period analysis.
func PrintAnalysisResult(result models.AnalysisResult) {
	fmt.Printf("\nAnalysis: %s\n", result.FunctionName)
	fmt.Printf("Time range: %s\n", formatWindow(result.StartTime, result.EndTime))
	fmt.Printf("Total invocations: %s\n\n", humanize.Comma(int64(len(result.Invocations))))

	if len(result.Invocations) == 0 {
		fmt.Println("No invocations found in this time range.")
		return
	}

	printStatsTable("Duration", result.DurationStats, FormatDuration)
	printStatsTable("Billed Duration", result.BilledDurationStats, FormatDuration)
	printStatsTable("Memory Used", result.MemoryUsedStats, FormatMemory)
	printLifecycleSummary(result)
}

// printStatsTable prints one metric's distribution summary in kubectl style.
func printStatsTable(title string, stats models.DistributionStats, format func(float64) string) {
	fmt.Printf("## %s\n", title)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	fmt.Fprintf(w, "Count\t%d\n", stats.Count)
	fmt.Fprintf(w, "Mean\t%s\n", format(stats.Mean))
	fmt.Fprintf(w, "Median\t%s\n", format(stats.Median))
	fmt.Fprintf(w, "Std Dev\t%s\n", format(stats.StdDev))
	fmt.Fprintf(w, "Min\t%s\n", format(stats.Min))
	fmt.Fprintf(w, "Max\t%s\n", format(stats.Max))
	fmt.Fprintf(w, "p50\t%s\n", format(stats.P50))
	fmt.Fprintf(w, "p90\t%s\n", format(stats.P90))
	fmt.Fprintf(w, "p95\t%s\n", format(stats.P95))
	fmt.Fprintf(w, "p99\t%s\n", format(stats.P99))
	w.Flush()

	fmt.Println()
}

// printLifecycleSummary prints cold start and SnapStart restore counts,
// rates, and init/restore duration stats when any were observed.
func printLifecycleSummary(result models.AnalysisResult) {
	fmt.Println("## Cold Starts & SnapStart")

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	fmt.Fprintf(w, "Cold Start Count\t%d\n", result.ColdStartCount)
	fmt.Fprintf(w, "Cold Start Rate\t%s\n", FormatPercent(result.ColdStartRate))

	if s := result.ColdStartDurationStats; s != nil {
		fmt.Fprintf(w, "Cold Start Duration (mean)\t%s\n", FormatDuration(s.Mean))
		fmt.Fprintf(w, "Cold Start Duration (p99)\t%s\n", FormatDuration(s.P99))
	}

	fmt.Fprintf(w, "SnapStart Restore Count\t%d\n", result.SnapStartRestoreCount)
	fmt.Fprintf(w, "SnapStart Restore Rate\t%s\n", FormatPercent(result.SnapStartRestoreRate))

	if s := result.SnapStartRestoreDurationStats; s != nil {
		fmt.Fprintf(w, "Restore Duration (mean)\t%s\n", FormatDuration(s.Mean))
		fmt.Fprintf(w, "Restore Duration (p99)\t%s\n", FormatDuration(s.P99))
	}

	w.Flush()
}
