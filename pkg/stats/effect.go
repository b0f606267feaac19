package stats

import "math"

// CohensD computes the Cohen's d effect size between two summarized samples
// using the pooled standard deviation. Positive d means the second sample's
// mean is higher; for duration-like metrics that is a regression. The caller
// supplies the before/after order, this function never reinterprets it.
//
// Degenerate inputs are handled explicitly so the result is never NaN: an
// empty sample yields 0, and two zero-variance samples with different means
// yield a signed infinity, a real signal that the shift is absolute.
func CohensD(mean1, std1 float64, n1 int, mean2, std2 float64, n2 int) float64 {
	if n1 == 0 || n2 == 0 {
		return 0
	}

	if std1 == 0 && std2 == 0 {
		if mean1 == mean2 {
			return 0
		}
		if mean2 > mean1 {
			return math.Inf(1)
		}
		return math.Inf(-1)
	}

	pooled := math.Sqrt((float64(n1-1)*std1*std1 + float64(n2-1)*std2*std2) / float64(n1+n2-2))
	if pooled == 0 {
		return 0
	}

	return (mean2 - mean1) / pooled
}

// OverlapPercent approximates the overlapping coefficient of two normal
// distributions as a percentage in [0, 100]. The standard normal CDF is
// approximated with a logistic curve, phi = 1/(1+e^(1.7*z/2)); displayed
// values depend on this exact approximation, so it is not swapped for an
// erf-based formula.
//
// When exactly one side has zero variance the point mass is scored as a flat
// 50% overlap, a deliberately coarse approximation.
func OverlapPercent(mean1, std1, mean2, std2 float64) float64 {
	if std1 == 0 && std2 == 0 {
		if mean1 == mean2 {
			return 100
		}
		return 0
	}

	if std1 == 0 || std2 == 0 {
		return 50
	}

	combined := math.Sqrt((std1*std1 + std2*std2) / 2)
	if combined == 0 {
		return 100
	}

	z := math.Abs(mean1-mean2) / combined
	phi := 1 / (1 + math.Exp(1.7*z/2))
	overlap := 2 * phi * 100

	return math.Min(100, math.Max(0, overlap))
}
