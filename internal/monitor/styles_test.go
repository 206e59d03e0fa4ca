package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMetricColor(t *testing.T) {
	tests := []struct {
		name    string
		percent float64
		want    string
	}{
		{"healthy below warning", 50, string(ColorHealthy)},
		{"warning at threshold", 70, string(ColorWarning)},
		{"warning mid-band", 85, string(ColorWarning)},
		{"critical at threshold", 90, string(ColorCritical)},
		{"critical above", 99, string(ColorCritical)},
		{"zero is healthy", 0, string(ColorHealthy)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, string(MetricColor(tt.percent)))
		})
	}
}

func TestProgressBar(t *testing.T) {
	bar := ProgressBar(10, 50)
	assert.NotEmpty(t, bar)

	// Clamps out-of-range input without panicking.
	assert.NotEmpty(t, ProgressBar(10, -5))
	assert.NotEmpty(t, ProgressBar(10, 150))
	assert.NotEmpty(t, ProgressBar(0, 50))
}
