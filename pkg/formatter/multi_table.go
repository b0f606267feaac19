package formatter

import (
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/younsl/thaw/internal/models"
)

// PrintMultiFunctionComparison formats and prints a multi-function ranking.
// ranked must come from stats.RankFunctions over result.Functions; all effect
// sizes are precomputed, nothing is calculated here.
func PrintMultiFunctionComparison(result models.MultiFunctionComparison, ranked []models.RankedFunction) {
	fmt.Println("\nMulti-Function Comparison")
	fmt.Printf("Time range: %s\n\n", formatWindow(result.StartTime, result.EndTime))

	if len(ranked) == 0 {
		fmt.Println("No functions to compare.")
		return
	}

	printDurationRanking(ranked)
	printMemoryTable(ranked)
	printColdStartTable(ranked)
}

func printDurationRanking(ranked []models.RankedFunction) {
	fmt.Println("## Duration Ranking")

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "FUNCTION\tCOUNT\tMEAN\tP95\tP99\tCOHEN'S D")

	for _, f := range ranked {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			truncateString(f.FunctionName, 40),
			humanize.Comma(int64(f.InvocationCount)),
			FormatDuration(f.DurationStats.Mean),
			FormatDuration(f.DurationStats.P95),
			FormatDuration(f.DurationStats.P99),
			baselineCohensD(f),
		)
	}
	w.Flush()
}

// baselineCohensD renders a ranked function's effect size against the
// baseline: the baseline row is labeled, positive d (slower) is red,
// negative green, the neutral band dimmed.
func baselineCohensD(f models.RankedFunction) string {
	if f.Baseline || f.CohensDVsBaseline == nil {
		return faint("%s", "baseline")
	}

	d := *f.CohensDVsBaseline
	switch {
	case math.IsInf(d, 1):
		return red("%s", "inf (absolute)")
	case math.IsInf(d, -1):
		return green("%s", "-inf (absolute)")
	case math.Abs(d) < 0.2:
		return faint("%+.2f", d)
	case d > 0:
		return red("%+.2f", d)
	default:
		return green("%+.2f", d)
	}
}

func printMemoryTable(ranked []models.RankedFunction) {
	fmt.Println("\n## Memory")

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "FUNCTION\tMEAN\tMAX")

	for _, f := range ranked {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			truncateString(f.FunctionName, 40),
			FormatMemory(f.MemoryUsedStats.Mean),
			FormatMemory(f.MemoryUsedStats.Max),
		)
	}
	w.Flush()
}

func printColdStartTable(ranked []models.RankedFunction) {
	fmt.Println("\n## Cold Start Rate")

	byColdRate := make([]models.RankedFunction, len(ranked))
	copy(byColdRate, ranked)
	sort.SliceStable(byColdRate, func(i, j int) bool {
		return byColdRate[i].ColdStartRate < byColdRate[j].ColdStartRate
	})

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "FUNCTION\tRATE")

	for _, f := range byColdRate {
		colorize := green
		if f.ColdStartRate >= 0.1 {
			colorize = red
		} else if f.ColdStartRate >= 0.05 {
			colorize = yellow
		}
		fmt.Fprintf(w, "%s\t%s\n",
			truncateString(f.FunctionName, 40),
			colorize("%s", FormatPercent(f.ColdStartRate)),
		)
	}
	w.Flush()
}
