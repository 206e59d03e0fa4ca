package monitor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// HelpBinding represents a single keyboard shortcut entry.
type HelpBinding struct {
	Key  string
	Desc string
}

// helpBindings defines all keyboard shortcuts shown in the help overlay.
var helpBindings = []HelpBinding{
	{Key: "q / Ctrl+C", Desc: "Quit"},
	{Key: "k", Desc: "Kill selected process"},
	{Key: "/", Desc: "Search processes"},
	{Key: "s / Tab", Desc: "Cycle sort (cpu → mem → pid)"},
	{Key: "up / down", Desc: "Move selection"},
	{Key: "Home / End", Desc: "Jump to first / last row"},
	{Key: "Esc", Desc: "Close popup / clear search"},
	{Key: "?", Desc: "Toggle this help"},
}

// Overlay styles
var (
	overlayBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Background(ColorSurfaceBg).
			Padding(1, 2)

	overlayTitleStyle = lipgloss.NewStyle().
				Foreground(ColorAccent).
				Bold(true).
				MarginBottom(1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(ColorTextPrimary).
			Bold(true).
			Width(14)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(ColorTextSecondary)
)

// renderHelpOverlay renders a centered help box with keyboard shortcuts.
func (m Model) renderHelpOverlay() string {
	var lines []string
	lines = append(lines, overlayTitleStyle.Render("Keyboard Shortcuts"))
	lines = append(lines, "")

	for _, binding := range helpBindings {
		lines = append(lines, helpKeyStyle.Render(binding.Key)+helpDescStyle.Render(binding.Desc))
	}

	lines = append(lines, "")
	lines = append(lines, LabelStyle.Render("Press any key to close"))

	box := overlayBoxStyle.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorDarkBg),
	)
}

// renderConfirmOverlay renders the centered kill confirmation dialog.
func (m Model) renderConfirmOverlay() string {
	name := ""
	if m.snapshot != nil {
		for _, p := range m.snapshot.Processes {
			if p.PID == m.killPID {
				name = p.Name
				break
			}
		}
	}

	var lines []string
	lines = append(lines, overlayTitleStyle.Render("Terminate process?"))
	lines = append(lines, "")
	lines = append(lines, ValueStyle.Render(name)+LabelStyle.Render("  pid ")+ValueStyle.Render(itoa(m.killPID)))
	lines = append(lines, "")
	lines = append(lines, NoticeStyle.Render("y")+LabelStyle.Render(" / Enter confirm   ")+
		ValueStyle.Render("n")+LabelStyle.Render(" / Esc cancel"))

	box := overlayBoxStyle.Render(strings.Join(lines, "\n"))

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		box,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(ColorDarkBg),
	)
}
