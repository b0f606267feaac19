package formatter

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/younsl/thaw/internal/models"
)

// PrintComparisonResult formats and prints a before/after comparison.
func PrintComparisonResult(result models.ComparisonResult) {
	fmt.Printf("\nComparison: %s\n", result.FunctionName)
	fmt.Printf("Pivot time: %s UTC\n", result.PivotTime.UTC().Format("2006-01-02 15:04:05"))
	fmt.Printf("Before: %s (%s invocations)\n",
		formatWindow(result.BeforeStart, result.PivotTime), humanize.Comma(int64(result.BeforeCount)))
	fmt.Printf("After:  %s (%s invocations)\n\n",
		formatWindow(result.PivotTime, result.AfterEnd), humanize.Comma(int64(result.AfterCount)))

	if result.BeforeCount == 0 || result.AfterCount == 0 {
		fmt.Println("Insufficient data for comparison.")
		return
	}

	printComparisonTable("Duration", result.Duration, FormatDuration)
	printComparisonTable("Billed Duration", result.BilledDuration, FormatDuration)
	printComparisonTable("Memory Used", result.MemoryUsed, FormatMemory)
	printColdStartRates(result)
}

// printComparisonTable prints one metric's before/after table with percent
// changes colored by direction (lower is better for every metric here).
func printComparisonTable(title string, comparison models.Comparison, format func(float64) string) {
	colorize := directionColor(comparison.Direction())

	fmt.Printf("## %s\n", title)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tBEFORE\tAFTER\tCHANGE")
	fmt.Fprintf(w, "Count\t%d\t%d\t-\n", comparison.Before.Count, comparison.After.Count)

	rows := []struct {
		name          string
		before, after float64
	}{
		{"Mean", comparison.Before.Mean, comparison.After.Mean},
		{"Median", comparison.Before.Median, comparison.After.Median},
		{"p95", comparison.Before.P95, comparison.After.P95},
		{"p99", comparison.Before.P99, comparison.After.P99},
	}

	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			row.name, format(row.before), format(row.after),
			colorize("%s", changeString(row.before, row.after)))
	}
	w.Flush()

	fmt.Printf("Cohen's d: %s  Overlap: %.1f%%\n\n",
		colorize("%s", FormatCohensD(comparison.CohensD, comparison.EffectSizeLabel())),
		comparison.OverlapPercent)
}

// changeString renders the relative change between two values, or "-" when
// there is no meaningful base.
func changeString(before, after float64) string {
	if before == 0 {
		return "-"
	}
	pct := (after - before) / before * 100
	return fmt.Sprintf("%+.1f%%", pct)
}

func directionColor(direction string) func(string, ...interface{}) string {
	switch direction {
	case "improved":
		return green
	case "regressed":
		return red
	default:
		return faint
	}
}

func printColdStartRates(result models.ComparisonResult) {
	fmt.Println("## Cold Start Rate")

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "PERIOD\tRATE")
	fmt.Fprintf(w, "Before\t%s\n", FormatPercent(result.ColdStartRateBefore))
	fmt.Fprintf(w, "After\t%s\n", FormatPercent(result.ColdStartRateAfter))

	change := result.ColdStartRateAfter - result.ColdStartRateBefore
	colorize := faint
	if change > 0 {
		colorize = red
	} else if change < 0 {
		colorize = green
	}
	fmt.Fprintf(w, "Change\t%s\n", colorize("%+.1fpp", change*100))
	w.Flush()
}
