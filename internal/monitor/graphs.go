package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Braille character rendering for high-resolution terminal graphs.
//
// Braille patterns use a 2x4 dot matrix per character. Unicode braille
// starts at U+2800 (empty) and uses bit patterns:
// bit 0 = dot 1, bit 1 = dot 2, bit 2 = dot 3, bit 3 = dot 4,
// bit 4 = dot 5, bit 5 = dot 6, bit 6 = dot 7, bit 7 = dot 8

const brailleBase = '\u2800'

// sparklineBlocks are block characters for 8-level vertical resolution (lowest to highest).
var sparklineBlocks = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// brailleDots maps [row][col] to the bit offset for the braille pattern,
// row 0-3 top to bottom, col 0-1 left to right.
var brailleDots = [4][2]uint8{
	{0, 3},
	{1, 4},
	{2, 5},
	{6, 7},
}

// findMinMax returns the plot bounds for a data series. Percentage data
// (all values within 0-100) gets a fixed 0-100 range for consistent scaling.
func findMinMax(data []float64) (minVal, maxVal float64, isPercentage bool) {
	if len(data) == 0 {
		return 0, 100, true
	}

	minVal, maxVal = data[0], data[0]
	for _, v := range data {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}

	isPercentage = maxVal <= 100 && minVal >= 0
	if isPercentage {
		minVal = 0
		maxVal = 100
	}

	return minVal, maxVal, isPercentage
}

// normalizeValue converts a value to 0-1 range given min/max bounds.
func normalizeValue(val, minVal, maxVal float64) float64 {
	if maxVal > minVal {
		return (val - minVal) / (maxVal - minVal)
	}
	return 0.5
}

func clampInt(val, maxVal int) int {
	if val < 0 {
		return 0
	}
	if val > maxVal {
		return maxVal
	}
	return val
}

// RenderBrailleSparkline renders a sparkline graph using braille characters.
// Each character covers 2 horizontal data points and 4 vertical levels per
// row, giving much higher resolution than block characters. Columns are
// colored by their peak value for percentage data, baseColor otherwise.
func RenderBrailleSparkline(data []float64, width, height int, baseColor lipgloss.Color) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minVal, maxVal, isPercentage := findMinMax(data)
	totalDots := height * 4
	targetPoints := width * 2

	// Only downsample when there is more data than display width; with
	// less, plot directly and fill from the right.
	resampled := data
	if len(data) > targetPoints {
		resampled = resampleData(data, targetPoints)
	}

	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = make([]rune, width)
		for j := range grid[i] {
			grid[i][j] = brailleBase
		}
	}

	colMaxValues := make([]float64, width)

	horizOffset := targetPoints - len(resampled)
	if horizOffset < 0 {
		horizOffset = 0
	}

	for i, val := range resampled {
		normalized := normalizeValue(val, minVal, maxVal)
		dotHeight := clampInt(int(normalized*float64(totalDots)), totalDots)

		charCol := (i + horizOffset) / 2
		if charCol >= width {
			continue
		}

		if val > colMaxValues[charCol] {
			colMaxValues[charCol] = val
		}

		subCol := (i + horizOffset) % 2

		// Fill dots from the bottom up.
		for dot := 0; dot < dotHeight; dot++ {
			row := height - 1 - (dot / 4)
			if row < 0 {
				continue
			}
			subRow := 3 - (dot % 4)
			grid[row][charCol] |= rune(1 << brailleDots[subRow][subCol])
		}
	}

	var lines []string
	for _, row := range grid {
		var lineBuilder strings.Builder
		for colIdx, char := range row {
			color := baseColor
			if isPercentage {
				color = MetricColor(colMaxValues[colIdx])
			}
			style := lipgloss.NewStyle().Foreground(color)
			lineBuilder.WriteString(style.Render(string(char)))
		}
		lines = append(lines, lineBuilder.String())
	}

	return strings.Join(lines, "\n")
}

// RenderMiniSparkline renders a single-row sparkline using block
// characters, one character per resampled data point.
func RenderMiniSparkline(data []float64, width int) string {
	if len(data) == 0 || width <= 0 {
		return ""
	}

	minVal, maxVal, _ := findMinMax(data)
	resampled := resampleData(data, width)

	var result strings.Builder
	for _, val := range resampled {
		normalized := normalizeValue(val, minVal, maxVal)
		idx := clampInt(int(normalized*float64(len(sparklineBlocks)-1)), len(sparklineBlocks)-1)
		result.WriteRune(sparklineBlocks[idx])
	}

	return result.String()
}

// resampleData resamples data to the target size. Downsampling uses the
// max within each bucket so spikes survive compression; upsampling uses
// linear interpolation.
func resampleData(data []float64, targetSize int) []float64 {
	if len(data) == 0 || targetSize <= 0 {
		return nil
	}

	if len(data) == targetSize {
		return data
	}

	result := make([]float64, targetSize)

	if len(data) == 1 {
		for i := range result {
			result[i] = data[0]
		}
		return result
	}

	if len(data) > targetSize {
		bucketSize := float64(len(data)) / float64(targetSize)
		for i := 0; i < targetSize; i++ {
			start := int(float64(i) * bucketSize)
			end := int(float64(i+1) * bucketSize)
			if end > len(data) {
				end = len(data)
			}
			if start >= end {
				start = end - 1
			}
			if start < 0 {
				start = 0
			}

			maxVal := data[start]
			for j := start + 1; j < end; j++ {
				if data[j] > maxVal {
					maxVal = data[j]
				}
			}
			result[i] = maxVal
		}
		return result
	}

	scale := float64(len(data)-1) / float64(targetSize-1)
	for i := 0; i < targetSize; i++ {
		pos := float64(i) * scale
		idx := int(pos)
		frac := pos - float64(idx)

		if idx >= len(data)-1 {
			result[i] = data[len(data)-1]
		} else {
			result[i] = data[idx]*(1-frac) + data[idx+1]*frac
		}
	}

	return result
}
