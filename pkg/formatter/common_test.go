package formatter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		ms   float64
		want string
	}{
		{0.123, "0.123ms"},
		{5.25, "5.25ms"},
		{45.67, "45.7ms"},
		{999.9, "999.9ms"},
		{1500, "1.50s"},
	}

	for _, c := range cases {
		assert.Equal(t, c.want, FormatDuration(c.ms))
	}
}

func TestFormatMemory(t *testing.T) {
	assert.Equal(t, "128MB", FormatMemory(128))
	assert.Equal(t, "512MB", FormatMemory(512.4))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "50.0%", FormatPercent(0.5))
	assert.Equal(t, "0.0%", FormatPercent(0))
	assert.Equal(t, "12.5%", FormatPercent(0.125))
}

func TestFormatCohensD(t *testing.T) {
	assert.Equal(t, "+1.50 (large)", FormatCohensD(1.5, "large"))
	assert.Equal(t, "-0.30 (small)", FormatCohensD(-0.3, "small"))

	// Infinite effect sizes get a fixed label instead of a float
	assert.Equal(t, "inf (absolute)", FormatCohensD(math.Inf(1), "large"))
	assert.Equal(t, "-inf (absolute)", FormatCohensD(math.Inf(-1), "large"))
}

func TestChangeString(t *testing.T) {
	assert.Equal(t, "+10.0%", changeString(100, 110))
	assert.Equal(t, "-25.0%", changeString(100, 75))
	assert.Equal(t, "-", changeString(0, 50))
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 40))
	assert.Equal(t, "0123456...", truncateString("0123456789abcdef", 10))
}
