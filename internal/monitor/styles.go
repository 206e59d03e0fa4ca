package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Dashboard color palette
const (
	ColorDarkBg    = lipgloss.Color("#0A0A0F")
	ColorSurfaceBg = lipgloss.Color("#12121A")
	ColorBorder    = lipgloss.Color("#2A2A4A")

	// Semantic colors for metrics
	ColorHealthy  = lipgloss.Color("#39FF14")
	ColorWarning  = lipgloss.Color("#FFAA00")
	ColorCritical = lipgloss.Color("#FF0055")

	// Text colors
	ColorTextPrimary   = lipgloss.Color("#FFFFFF")
	ColorTextSecondary = lipgloss.Color("#B4B4D0")
	ColorTextMuted     = lipgloss.Color("#6B6B8D")

	// Accent colors
	ColorAccent    = lipgloss.Color("#FF2E97")
	ColorAccentDim = lipgloss.Color("#BF40FF")

	// Graph color
	ColorGraph = lipgloss.Color("#00FFFF")
)

// Thresholds for metric severity levels
const (
	WarningThreshold  = 70.0
	CriticalThreshold = 90.0
)

// Base styles for the dashboard
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Background(ColorSurfaceBg).
			Bold(true).
			Padding(0, 1)

	FooterStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted).
			Padding(0, 1)

	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1).
			MarginRight(1)

	TitleStyle = lipgloss.NewStyle().
			Foreground(ColorAccent).
			Bold(true)

	LabelStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)

	ValueStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary)

	// MutedStyle renders metric fields whose sample failed this tick.
	MutedStyle = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	// SelectedRowStyle highlights the cursor row in the process table.
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(ColorTextPrimary).
				Background(ColorBorder).
				Bold(true)

	// NoticeStyle renders transient notices such as kill failures.
	NoticeStyle = lipgloss.NewStyle().
			Foreground(ColorCritical).
			Bold(true)
)

// MetricColor returns the appropriate color for a percentage-based metric.
// Green below 70%, yellow 70-90%, red above 90%.
func MetricColor(percent float64) lipgloss.Color {
	switch {
	case percent >= CriticalThreshold:
		return ColorCritical
	case percent >= WarningThreshold:
		return ColorWarning
	default:
		return ColorHealthy
	}
}

// MetricStyle returns a style with the appropriate foreground color for the metric.
func MetricStyle(percent float64) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(MetricColor(percent))
}

// ProgressBar renders a progress bar with the given width and percentage,
// colored by severity.
func ProgressBar(width int, percent float64) string {
	if width < 1 {
		width = 1
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	filled := int(percent / 100.0 * float64(width))
	if filled > width {
		filled = width
	}

	var bar strings.Builder
	for i := 0; i < width; i++ {
		if i < filled {
			bar.WriteString("▰")
		} else {
			bar.WriteString("▱")
		}
	}

	return lipgloss.NewStyle().Foreground(MetricColor(percent)).Render(bar.String())
}
