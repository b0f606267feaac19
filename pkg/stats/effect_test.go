package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCohensD_EmptySample(t *testing.T) {
	assert.Equal(t, 0.0, CohensD(10, 1, 0, 20, 1, 5))
	assert.Equal(t, 0.0, CohensD(10, 1, 5, 20, 1, 0))
}

func TestCohensD_BothZeroVariance(t *testing.T) {
	// Equal means: no shift
	assert.Equal(t, 0.0, CohensD(100, 0, 3, 100, 0, 3))

	// Different means with no variance: the shift is absolute
	assert.True(t, math.IsInf(CohensD(10, 0, 3, 20, 0, 3), 1))
	assert.True(t, math.IsInf(CohensD(20, 0, 3, 10, 0, 3), -1))
}

func TestCohensD_PooledStd(t *testing.T) {
	// Equal sizes and stds pool to the common std: d = (12-10)/2 = 1
	assert.InDelta(t, 1.0, CohensD(10, 2, 5, 12, 2, 5), 1e-12)

	// Sign convention: positive means the second mean is higher
	assert.InDelta(t, -1.0, CohensD(12, 2, 5, 10, 2, 5), 1e-12)
}

func TestCohensD_Antisymmetric(t *testing.T) {
	cases := []struct {
		m1, s1 float64
		n1     int
		m2, s2 float64
		n2     int
	}{
		{10, 2, 5, 12, 3, 8},
		{100, 15, 30, 95, 20, 12},
		{1.5, 0.1, 2, 1.4, 0.2, 9},
	}

	for _, c := range cases {
		d1 := CohensD(c.m1, c.s1, c.n1, c.m2, c.s2, c.n2)
		d2 := CohensD(c.m2, c.s2, c.n2, c.m1, c.s1, c.n1)
		assert.InDelta(t, -d1, d2, 1e-12)
	}
}

func TestOverlapPercent_Degenerate(t *testing.T) {
	// Two identical point masses overlap fully, shifted ones not at all
	assert.Equal(t, 100.0, OverlapPercent(5, 0, 5, 0))
	assert.Equal(t, 0.0, OverlapPercent(5, 0, 6, 0))

	// One point mass against a spread sample is a fixed coarse 50%
	assert.Equal(t, 50.0, OverlapPercent(5, 0, 5, 2))
	assert.Equal(t, 50.0, OverlapPercent(5, 2, 5, 0))
}

func TestOverlapPercent_IdenticalDistributions(t *testing.T) {
	// z = 0, phi = 0.5, overlap = 100
	assert.InDelta(t, 100.0, OverlapPercent(10, 2, 10, 2), 1e-12)
}

func TestOverlapPercent_KnownValue(t *testing.T) {
	// means 0 and 1, both std 1: z = 1, phi = 1/(1+e^0.85)
	phi := 1 / (1 + math.Exp(0.85))
	assert.InDelta(t, 2*phi*100, OverlapPercent(0, 1, 1, 1), 1e-9)
}

func TestOverlapPercent_Symmetric(t *testing.T) {
	cases := [][4]float64{
		{10, 2, 12, 3},
		{100, 15, 95, 20},
		{1.5, 0.1, 1.4, 0.2},
	}

	for _, c := range cases {
		o1 := OverlapPercent(c[0], c[1], c[2], c[3])
		o2 := OverlapPercent(c[2], c[3], c[0], c[1])
		assert.InDelta(t, o1, o2, 1e-12)
	}
}

func TestOverlapPercent_Bounds(t *testing.T) {
	cases := [][4]float64{
		{0, 1, 1000, 1},
		{0, 0.001, 0.002, 0.001},
		{5, 3, 5, 3},
	}

	for _, c := range cases {
		o := OverlapPercent(c[0], c[1], c[2], c[3])
		assert.GreaterOrEqual(t, o, 0.0)
		assert.LessOrEqual(t, o, 100.0)
	}
}
