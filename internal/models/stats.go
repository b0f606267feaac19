package models

import (
	"math"
	"time"
)

// DistributionStats is a statistical summary of one numeric sample.
// A Count of 0 means "no data"; callers must not read the other fields as a
// valid zero-width distribution.
type DistributionStats struct {
	Count  int
	Mean   float64
	Median float64
	StdDev float64 // Sample standard deviation, 0 when Count <= 1
	Min    float64
	Max    float64
	P50    float64
	P90    float64
	P95    float64
	P99    float64
}

// Comparison pairs before/after summaries of one metric with effect-size
// metrics. CohensD may be +Inf or -Inf when both sides have zero variance
// but different means.
type Comparison struct {
	Before         DistributionStats
	After          DistributionStats
	CohensD        float64
	OverlapPercent float64 // 0..100
}

// EffectSizeLabel buckets |CohensD| using the conventional thresholds.
func (c Comparison) EffectSizeLabel() string {
	d := math.Abs(c.CohensD)
	switch {
	case d < 0.2:
		return "negligible"
	case d < 0.5:
		return "small"
	case d < 0.8:
		return "medium"
	default:
		return "large"
	}
}

// Direction classifies the shift with a ±0.2 neutral band. All metrics this
// tool compares are lower-is-better, so a positive effect is a regression.
func (c Comparison) Direction() string {
	switch {
	case c.CohensD > 0.2:
		return "regressed"
	case c.CohensD < -0.2:
		return "improved"
	default:
		return "unchanged"
	}
}

// AnalysisResult is the complete single-period analysis for one function.
// The three primary stats are always concrete (all-zero when the period is
// empty); the cold-start and restore stats are nil when no such invocations
// were seen.
type AnalysisResult struct {
	FunctionName string
	StartTime    time.Time
	EndTime      time.Time
	Invocations  []InvocationReport

	DurationStats       DistributionStats
	BilledDurationStats DistributionStats
	MemoryUsedStats     DistributionStats

	ColdStartCount         int
	ColdStartRate          float64
	ColdStartDurationStats *DistributionStats

	SnapStartRestoreCount         int
	SnapStartRestoreRate          float64
	SnapStartRestoreDurationStats *DistributionStats
}

// ComparisonResult is a before/after comparison of one function around a
// pivot time.
type ComparisonResult struct {
	FunctionName string
	PivotTime    time.Time
	BeforeStart  time.Time
	AfterEnd     time.Time
	BeforeCount  int
	AfterCount   int

	Duration       Comparison
	BilledDuration Comparison
	MemoryUsed     Comparison

	ColdStartRateBefore float64
	ColdStartRateAfter  float64
}

// FunctionSummary is one function's aggregate stats for ranking.
type FunctionSummary struct {
	FunctionName        string
	InvocationCount     int
	DurationStats       DistributionStats
	BilledDurationStats DistributionStats
	MemoryUsedStats     DistributionStats
	ColdStartRate       float64
}

// MultiFunctionComparison holds per-function summaries over a shared window.
type MultiFunctionComparison struct {
	StartTime time.Time
	EndTime   time.Time
	Functions []FunctionSummary
}

// RankedFunction is one row of a multi-function ranking, ordered by mean
// duration ascending. The fastest function is the baseline and carries no
// effect size; every other row holds Cohen's d against the baseline, where
// positive means slower.
type RankedFunction struct {
	FunctionSummary
	Baseline          bool
	CohensDVsBaseline *float64
}
