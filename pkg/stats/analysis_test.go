package stats

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younsl/thaw/internal/models"
)

func report(duration float64, billed, memSize, memUsed int) models.InvocationReport {
	return models.InvocationReport{
		RequestID:        "req",
		Timestamp:        time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC),
		DurationMs:       duration,
		BilledDurationMs: billed,
		MemorySizeMB:     memSize,
		MaxMemoryUsedMB:  memUsed,
	}
}

func coldReport(duration float64, billed, memSize, memUsed int, initMs float64) models.InvocationReport {
	r := report(duration, billed, memSize, memUsed)
	r.InitDurationMs = &initMs
	return r
}

func reportsWithDurations(durations ...float64) []models.InvocationReport {
	reports := make([]models.InvocationReport, 0, len(durations))
	for _, d := range durations {
		reports = append(reports, report(d, int(d), 512, 128))
	}
	return reports
}

func TestAnalyzeReports(t *testing.T) {
	reports := []models.InvocationReport{
		coldReport(45.67, 46, 512, 128, 234.56),
		report(20.0, 20, 512, 100),
	}

	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := start.Add(24 * time.Hour)

	result := AnalyzeReports("my-func", reports, start, end)

	assert.Equal(t, "my-func", result.FunctionName)
	assert.Equal(t, start, result.StartTime)
	assert.Equal(t, end, result.EndTime)
	assert.Len(t, result.Invocations, 2)

	assert.Equal(t, 2, result.DurationStats.Count)
	assert.InDelta(t, 32.835, result.DurationStats.Mean, 1e-12)
	assert.Equal(t, 2, result.BilledDurationStats.Count)
	assert.InDelta(t, 33.0, result.BilledDurationStats.Mean, 1e-12)
	assert.Equal(t, 2, result.MemoryUsedStats.Count)
	assert.InDelta(t, 114.0, result.MemoryUsedStats.Mean, 1e-12)

	assert.Equal(t, 1, result.ColdStartCount)
	assert.InDelta(t, 0.5, result.ColdStartRate, 1e-12)
	require.NotNil(t, result.ColdStartDurationStats)
	assert.Equal(t, 1, result.ColdStartDurationStats.Count)
	assert.InDelta(t, 234.56, result.ColdStartDurationStats.Mean, 1e-12)

	assert.Equal(t, 0, result.SnapStartRestoreCount)
	assert.Equal(t, 0.0, result.SnapStartRestoreRate)
	assert.Nil(t, result.SnapStartRestoreDurationStats)
}

func TestAnalyzeReports_Empty(t *testing.T) {
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	result := AnalyzeReports("my-func", nil, start, start.Add(time.Hour))

	// Primary metrics stay concrete with a zero-valued summary; the
	// optional lifecycle stats are genuinely absent.
	assert.Equal(t, 0, result.DurationStats.Count)
	assert.Equal(t, models.DistributionStats{}, result.DurationStats)
	assert.Equal(t, 0.0, result.ColdStartRate)
	assert.Nil(t, result.ColdStartDurationStats)
	assert.Nil(t, result.SnapStartRestoreDurationStats)
}

func TestAnalyzeReports_SnapStart(t *testing.T) {
	restore := 120.5
	r := report(30, 31, 1024, 256)
	r.RestoreDurationMs = &restore

	result := AnalyzeReports("snap-func", []models.InvocationReport{r}, time.Time{}, time.Time{})

	assert.Equal(t, 1, result.SnapStartRestoreCount)
	assert.InDelta(t, 1.0, result.SnapStartRestoreRate, 1e-12)
	require.NotNil(t, result.SnapStartRestoreDurationStats)
	assert.InDelta(t, 120.5, result.SnapStartRestoreDurationStats.Mean, 1e-12)
	assert.Equal(t, 0, result.ColdStartCount)
}

func TestCompareDistributions_EmptySide(t *testing.T) {
	assert.Nil(t, CompareDistributions(nil, []float64{1, 2}))
	assert.Nil(t, CompareDistributions([]float64{1, 2}, nil))
}

func TestCompareReports_IdenticalZeroVariance(t *testing.T) {
	before := reportsWithDurations(100, 100, 100)
	after := reportsWithDurations(100, 100, 100)

	pivot := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	result := CompareReports("my-func", before, after, pivot, pivot.Add(-time.Hour), pivot.Add(time.Hour))

	assert.Equal(t, 3, result.BeforeCount)
	assert.Equal(t, 3, result.AfterCount)
	assert.Equal(t, 0.0, result.Duration.CohensD)
	assert.Equal(t, 100.0, result.Duration.OverlapPercent)
	assert.Equal(t, "unchanged", result.Duration.Direction())
}

func TestCompareReports_AbsoluteRegression(t *testing.T) {
	before := reportsWithDurations(10, 10, 10)
	after := reportsWithDurations(20, 20, 20)

	pivot := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	result := CompareReports("my-func", before, after, pivot, pivot.Add(-time.Hour), pivot.Add(time.Hour))

	assert.True(t, math.IsInf(result.Duration.CohensD, 1))
	assert.Equal(t, "regressed", result.Duration.Direction())
	assert.Equal(t, "large", result.Duration.EffectSizeLabel())
	assert.Equal(t, 0.0, result.Duration.OverlapPercent)
}

func TestCompareReports_EmptySideDegradesGracefully(t *testing.T) {
	after := reportsWithDurations(10, 20)

	pivot := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	result := CompareReports("my-func", nil, after, pivot, pivot.Add(-time.Hour), pivot.Add(time.Hour))

	// The comparison is neutral; the counts tell "no data" apart from
	// "no difference".
	assert.Equal(t, 0, result.BeforeCount)
	assert.Equal(t, 2, result.AfterCount)
	assert.Equal(t, 0.0, result.Duration.CohensD)
	assert.Equal(t, 100.0, result.Duration.OverlapPercent)
	assert.Equal(t, 0, result.Duration.Before.Count)
	assert.Equal(t, 0, result.Duration.After.Count)
	assert.Equal(t, 0.0, result.ColdStartRateBefore)
}

func TestCompareReports_ColdStartRates(t *testing.T) {
	before := []models.InvocationReport{
		coldReport(50, 50, 512, 128, 300),
		report(20, 20, 512, 100),
	}
	after := []models.InvocationReport{
		report(20, 20, 512, 100),
		report(21, 21, 512, 100),
	}

	pivot := time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)
	result := CompareReports("my-func", before, after, pivot, pivot.Add(-time.Hour), pivot.Add(time.Hour))

	assert.InDelta(t, 0.5, result.ColdStartRateBefore, 1e-12)
	assert.Equal(t, 0.0, result.ColdStartRateAfter)
}

func TestSummarizeFunction(t *testing.T) {
	reports := []models.InvocationReport{
		coldReport(45.67, 46, 512, 128, 234.56),
		report(20.0, 20, 512, 100),
	}

	summary := SummarizeFunction("my-func", reports)

	assert.Equal(t, "my-func", summary.FunctionName)
	assert.Equal(t, 2, summary.InvocationCount)
	assert.InDelta(t, 32.835, summary.DurationStats.Mean, 1e-12)
	assert.InDelta(t, 0.5, summary.ColdStartRate, 1e-12)
}

func TestSummarizeFunction_Empty(t *testing.T) {
	summary := SummarizeFunction("my-func", nil)

	assert.Equal(t, 0, summary.InvocationCount)
	assert.Equal(t, models.DistributionStats{}, summary.DurationStats)
	assert.Equal(t, 0.0, summary.ColdStartRate)
}

func TestRankFunctions(t *testing.T) {
	a := SummarizeFunction("func-a", reportsWithDurations(49, 50, 51))
	b := SummarizeFunction("func-b", reportsWithDurations(29, 30, 31))

	ranked := RankFunctions([]models.FunctionSummary{a, b})
	require.Len(t, ranked, 2)

	// The lower-mean function is the baseline and carries no effect size
	assert.Equal(t, "func-b", ranked[0].FunctionName)
	assert.True(t, ranked[0].Baseline)
	assert.Nil(t, ranked[0].CohensDVsBaseline)

	// The slower function is scored against the baseline, positive d
	assert.Equal(t, "func-a", ranked[1].FunctionName)
	assert.False(t, ranked[1].Baseline)
	require.NotNil(t, ranked[1].CohensDVsBaseline)
	assert.Greater(t, *ranked[1].CohensDVsBaseline, 0.0)
}

func TestRankFunctions_DoesNotMutateInput(t *testing.T) {
	a := SummarizeFunction("func-a", reportsWithDurations(50))
	b := SummarizeFunction("func-b", reportsWithDurations(30))
	functions := []models.FunctionSummary{a, b}

	RankFunctions(functions)

	assert.Equal(t, "func-a", functions[0].FunctionName)
	assert.Equal(t, "func-b", functions[1].FunctionName)
}

func TestRankFunctions_Empty(t *testing.T) {
	assert.Empty(t, RankFunctions(nil))
}
