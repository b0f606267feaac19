package stats

import (
	"math"
	"sort"

	"github.com/younsl/thaw/internal/models"
)

// Summarize computes a DistributionStats over values. It returns nil when the
// sample is empty. The input slice is copied before sorting, so the caller's
// slice is never reordered.
func Summarize(values []float64) *models.DistributionStats {
	if len(values) == 0 {
		return nil
	}

	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)

	return &models.DistributionStats{
		Count:  n,
		Mean:   mean(sorted),
		Median: median(sorted),
		StdDev: sampleStdDev(sorted),
		Min:    sorted[0],
		Max:    sorted[n-1],
		P50:    percentile(sorted, 50),
		P90:    percentile(sorted, 90),
		P95:    percentile(sorted, 95),
		P99:    percentile(sorted, 99),
	}
}

func mean(values []float64) float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

func median(sorted []float64) float64 {
	n := len(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// sampleStdDev divides by n-1 (Bessel's correction) and returns 0 for a
// single observation. Every downstream effect size depends on this choice.
func sampleStdDev(values []float64) float64 {
	n := len(values)
	if n <= 1 {
		return 0
	}

	m := mean(values)
	var sumSq float64
	for _, v := range values {
		d := v - m
		sumSq += d * d
	}

	return math.Sqrt(sumSq / float64(n-1))
}

// percentile interpolates linearly between closest ranks on an ascending
// sorted slice, the same convention NIST and spreadsheets use.
func percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n == 1 {
		return sorted[0]
	}

	rank := (p / 100) * float64(n-1)
	lo := int(rank)
	hi := lo + 1
	frac := rank - float64(lo)

	if hi >= n {
		return sorted[n-1]
	}

	return sorted[lo] + frac*(sorted[hi]-sorted[lo])
}
