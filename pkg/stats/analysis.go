package stats

import (
	"sort"
	"time"

	"github.com/younsl/thaw/internal/models"
)

// metricValues extracts the three primary metric series from a report list.
func metricValues(reports []models.InvocationReport) (durations, billed, memory []float64) {
	durations = make([]float64, 0, len(reports))
	billed = make([]float64, 0, len(reports))
	memory = make([]float64, 0, len(reports))

	for _, r := range reports {
		durations = append(durations, r.DurationMs)
		billed = append(billed, float64(r.BilledDurationMs))
		memory = append(memory, float64(r.MaxMemoryUsedMB))
	}

	return durations, billed, memory
}

// orZero keeps primary metric stats concrete: an empty sample becomes an
// all-zero summary. The genuinely optional cold-start and restore stats stay
// nil instead; callers distinguish the two by Count.
func orZero(s *models.DistributionStats) models.DistributionStats {
	if s == nil {
		return models.DistributionStats{}
	}
	return *s
}

func rate(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total)
}

// AnalyzeReports computes the single-period analysis for one function over a
// time window. Pure: no I/O and no mutation of the input.
func AnalyzeReports(functionName string, reports []models.InvocationReport, startTime, endTime time.Time) models.AnalysisResult {
	durations, billed, memory := metricValues(reports)

	var coldDurations, restoreDurations []float64
	for _, r := range reports {
		if r.IsColdStart() {
			coldDurations = append(coldDurations, *r.InitDurationMs)
		}
		if r.IsSnapStartRestore() {
			restoreDurations = append(restoreDurations, *r.RestoreDurationMs)
		}
	}

	total := len(reports)

	return models.AnalysisResult{
		FunctionName: functionName,
		StartTime:    startTime,
		EndTime:      endTime,
		Invocations:  reports,

		DurationStats:       orZero(Summarize(durations)),
		BilledDurationStats: orZero(Summarize(billed)),
		MemoryUsedStats:     orZero(Summarize(memory)),

		ColdStartCount:         len(coldDurations),
		ColdStartRate:          rate(len(coldDurations), total),
		ColdStartDurationStats: Summarize(coldDurations),

		SnapStartRestoreCount:         len(restoreDurations),
		SnapStartRestoreRate:          rate(len(restoreDurations), total),
		SnapStartRestoreDurationStats: Summarize(restoreDurations),
	}
}

// CompareDistributions summarizes both sides and computes effect-size
// metrics. Returns nil when either side is empty.
func CompareDistributions(before, after []float64) *models.Comparison {
	beforeStats := Summarize(before)
	afterStats := Summarize(after)

	if beforeStats == nil || afterStats == nil {
		return nil
	}

	return &models.Comparison{
		Before: *beforeStats,
		After:  *afterStats,
		CohensD: CohensD(
			beforeStats.Mean, beforeStats.StdDev, beforeStats.Count,
			afterStats.Mean, afterStats.StdDev, afterStats.Count,
		),
		OverlapPercent: OverlapPercent(
			beforeStats.Mean, beforeStats.StdDev,
			afterStats.Mean, afterStats.StdDev,
		),
	}
}

// CompareReports compares two report sets already partitioned around a pivot
// timestamp. A metric with an empty side degrades to a neutral comparison
// (d=0, 100% overlap, zero stats) instead of failing; callers check the
// counts to tell "no difference" from "no data".
func CompareReports(functionName string, before, after []models.InvocationReport, pivotTime, beforeStart, afterEnd time.Time) models.ComparisonResult {
	beforeDurations, beforeBilled, beforeMemory := metricValues(before)
	afterDurations, afterBilled, afterMemory := metricValues(after)

	beforeCold := 0
	for _, r := range before {
		if r.IsColdStart() {
			beforeCold++
		}
	}
	afterCold := 0
	for _, r := range after {
		if r.IsColdStart() {
			afterCold++
		}
	}

	neutral := models.Comparison{CohensD: 0, OverlapPercent: 100}
	orNeutral := func(c *models.Comparison) models.Comparison {
		if c == nil {
			return neutral
		}
		return *c
	}

	return models.ComparisonResult{
		FunctionName: functionName,
		PivotTime:    pivotTime,
		BeforeStart:  beforeStart,
		AfterEnd:     afterEnd,
		BeforeCount:  len(before),
		AfterCount:   len(after),

		Duration:       orNeutral(CompareDistributions(beforeDurations, afterDurations)),
		BilledDuration: orNeutral(CompareDistributions(beforeBilled, afterBilled)),
		MemoryUsed:     orNeutral(CompareDistributions(beforeMemory, afterMemory)),

		ColdStartRateBefore: rate(beforeCold, len(before)),
		ColdStartRateAfter:  rate(afterCold, len(after)),
	}
}

// SummarizeFunction computes one function's aggregate stats for ranking.
func SummarizeFunction(functionName string, reports []models.InvocationReport) models.FunctionSummary {
	durations, billed, memory := metricValues(reports)

	coldStarts := 0
	for _, r := range reports {
		if r.IsColdStart() {
			coldStarts++
		}
	}

	return models.FunctionSummary{
		FunctionName:        functionName,
		InvocationCount:     len(reports),
		DurationStats:       orZero(Summarize(durations)),
		BilledDurationStats: orZero(Summarize(billed)),
		MemoryUsedStats:     orZero(Summarize(memory)),
		ColdStartRate:       rate(coldStarts, len(reports)),
	}
}

// RankFunctions orders summaries by mean duration ascending and scores every
// function against the fastest one. The baseline carries no Cohen's d: a
// distribution compared against itself is a special case, not a computation.
func RankFunctions(functions []models.FunctionSummary) []models.RankedFunction {
	sorted := make([]models.FunctionSummary, len(functions))
	copy(sorted, functions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].DurationStats.Mean < sorted[j].DurationStats.Mean
	})

	ranked := make([]models.RankedFunction, 0, len(sorted))
	for i, f := range sorted {
		rf := models.RankedFunction{FunctionSummary: f}
		if i == 0 {
			rf.Baseline = true
		} else {
			baseline := sorted[0].DurationStats
			d := CohensD(
				baseline.Mean, baseline.StdDev, baseline.Count,
				f.DurationStats.Mean, f.DurationStats.StdDev, f.DurationStats.Count,
			)
			rf.CohensDVsBaseline = &d
		}
		ranked = append(ranked, rf)
	}

	return ranked
}
