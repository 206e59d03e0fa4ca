package monitor

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	verrors "github.com/vitals-sh/vitals/internal/errors"
)

const (
	// minTableRows keeps at least a few process rows visible on tiny terminals.
	minTableRows = 3

	// sparklineHeight is the braille graph height in rows for the CPU card.
	sparklineHeight = 2

	// unavailable is rendered for fields whose sample failed this tick.
	unavailable = "n/a"
)

// render draws the whole dashboard: header, metric cards, process table,
// footer, and any active overlay.
func (m Model) render() string {
	if m.width == 0 {
		return "starting…"
	}

	if m.snapshot == nil {
		// No data yet: distinct from an empty process list.
		placeholder := LabelStyle.Render("collecting metrics…")
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, placeholder)
	}

	var b strings.Builder
	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	b.WriteString(m.renderCards())
	b.WriteString("\n")
	b.WriteString(m.renderProcessTable())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	base := b.String()

	switch m.popup {
	case popupHelp:
		return m.renderHelpOverlay()
	case popupConfirmKill:
		return m.renderConfirmOverlay()
	}

	return base
}

// renderHeader shows the title, uptime, and the age of the displayed sample.
func (m Model) renderHeader() string {
	title := TitleStyle.Render("vitals")

	uptime := LabelStyle.Render("up ") + ValueStyle.Render(formatUptime(m.snapshot.Uptime))

	age := time.Since(m.snapshot.Timestamp)
	ageStr := LabelStyle.Render("sampled ") + ValueStyle.Render(formatAge(age))

	left := title + "  " + uptime + "  " + ageStr

	right := ""
	if m.notice != "" {
		right = NoticeStyle.Render(m.notice)
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}

	return HeaderStyle.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

// renderCards draws the CPU, memory, and I/O cards side by side.
func (m Model) renderCards() string {
	cardWidth := m.width/3 - 4
	if cardWidth < 20 {
		cardWidth = 20
	}

	cpu := m.renderCPUCard(cardWidth)
	mem := m.renderMemCard(cardWidth)
	io := m.renderIOCard(cardWidth)

	return lipgloss.JoinHorizontal(lipgloss.Top, cpu, mem, io)
}

// renderCPUCard draws aggregate CPU with a braille sparkline and per-core bars.
func (m Model) renderCPUCard(width int) string {
	var lines []string
	lines = append(lines, TitleStyle.Render("CPU"))

	if !m.snapshot.CPUOK {
		lines = append(lines, MutedStyle.Render(unavailable))
		return CardStyle.Width(width).Render(strings.Join(lines, "\n"))
	}

	pct := m.snapshot.CPUPercent
	lines = append(lines,
		MetricStyle(pct).Render(fmt.Sprintf("%5.1f%%", pct))+" "+ProgressBar(width-10, pct))

	if history := m.history.CPU(m.history.size); len(history) > 1 {
		lines = append(lines, RenderBrailleSparkline(history, width-2, sparklineHeight, ColorGraph))
	}

	// Per-core bars, two columns when they fit.
	for i, core := range m.snapshot.PerCore {
		label := LabelStyle.Render(fmt.Sprintf("c%-2d", i))
		lines = append(lines, label+" "+ProgressBar(width-12, core)+MetricStyle(core).Render(fmt.Sprintf(" %4.0f%%", core)))
	}

	return CardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderMemCard draws the memory gauge.
func (m Model) renderMemCard(width int) string {
	var lines []string
	lines = append(lines, TitleStyle.Render("Memory"))

	if !m.snapshot.MemOK {
		lines = append(lines, MutedStyle.Render(unavailable))
		return CardStyle.Width(width).Render(strings.Join(lines, "\n"))
	}

	pct := m.snapshot.MemPercent()
	lines = append(lines,
		MetricStyle(pct).Render(fmt.Sprintf("%5.1f%%", pct))+" "+ProgressBar(width-10, pct))
	lines = append(lines,
		ValueStyle.Render(humanize.IBytes(m.snapshot.MemUsed))+
			LabelStyle.Render(" / ")+
			ValueStyle.Render(humanize.IBytes(m.snapshot.MemTotal)))

	if history := m.history.Mem(m.history.size); len(history) > 1 {
		lines = append(lines, RenderBrailleSparkline(history, width-2, sparklineHeight, ColorGraph))
	}

	return CardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderIOCard draws disk and network throughput.
func (m Model) renderIOCard(width int) string {
	var lines []string
	lines = append(lines, TitleStyle.Render("I/O"))

	if m.snapshot.DiskOK {
		lines = append(lines,
			LabelStyle.Render("disk ")+
				ValueStyle.Render("r "+formatRate(m.snapshot.DiskRead))+
				LabelStyle.Render("  ")+
				ValueStyle.Render("w "+formatRate(m.snapshot.DiskWrite)))
	} else {
		lines = append(lines, LabelStyle.Render("disk ")+MutedStyle.Render(unavailable))
	}

	if m.snapshot.NetOK {
		lines = append(lines,
			LabelStyle.Render("net  ")+
				ValueStyle.Render("↓ "+formatRate(m.snapshot.NetIn))+
				LabelStyle.Render("  ")+
				ValueStyle.Render("↑ "+formatRate(m.snapshot.NetOut)))

		in, out := m.history.Net(m.history.size)
		if len(in) > 1 {
			lines = append(lines, RenderMiniSparkline(in, width-6)+LabelStyle.Render(" ↓"))
		}
		if len(out) > 1 {
			lines = append(lines, RenderMiniSparkline(out, width-6)+LabelStyle.Render(" ↑"))
		}
	} else {
		lines = append(lines, LabelStyle.Render("net  ")+MutedStyle.Render(unavailable))
	}

	return CardStyle.Width(width).Render(strings.Join(lines, "\n"))
}

// renderProcessTable draws the filtered process list with the cursor row
// highlighted.
func (m Model) renderProcessTable() string {
	var b strings.Builder

	if m.popup == popupSearch {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	} else if m.filter != "" {
		b.WriteString(LabelStyle.Render("filter: ") + ValueStyle.Render(m.filter))
		b.WriteString("\n")
	}

	header := fmt.Sprintf("%7s  %-20s %-12s %6s  %10s", "PID", "NAME", "USER", "CPU%", "MEM")
	b.WriteString(LabelStyle.Render(header))
	b.WriteString("\n")

	procs := m.visibleProcesses()
	if !m.snapshot.ProcsOK {
		b.WriteString(MutedStyle.Render("process list " + unavailable))
		return b.String()
	}
	if len(procs) == 0 {
		b.WriteString(LabelStyle.Render("no matching processes"))
		return b.String()
	}

	rows := m.tableRows()
	start := 0
	if m.selected >= rows {
		start = m.selected - rows + 1
	}
	end := start + rows
	if end > len(procs) {
		end = len(procs)
	}

	for i := start; i < end; i++ {
		p := procs[i]
		line := fmt.Sprintf("%7d  %-20s %-12s %6.1f  %10s",
			p.PID, truncate(p.Name, 20), truncate(p.User, 12), p.CPUPercent, humanize.IBytes(p.RSS))
		if i == m.selected {
			b.WriteString(SelectedRowStyle.Render(line))
		} else {
			b.WriteString(ValueStyle.Render(line))
		}
		if i < end-1 {
			b.WriteString("\n")
		}
	}

	return b.String()
}

// tableRows returns how many process rows fit below the cards.
func (m Model) tableRows() int {
	// Header + cards + table header + footer overhead.
	used := 14
	rows := m.height - used
	if rows < minTableRows {
		rows = minTableRows
	}
	if m.processLimit > 0 && rows > m.processLimit {
		rows = m.processLimit
	}
	return rows
}

// renderFooter shows the key hints and the active sort key.
func (m Model) renderFooter() string {
	hints := "q quit · k kill · / search · s sort · ? help"
	sortLabel := LabelStyle.Render("sort: ") + ValueStyle.Render(m.sortKey.String())

	gap := m.width - lipgloss.Width(hints) - lipgloss.Width(sortLabel) - 2
	if gap < 1 {
		gap = 1
	}

	return FooterStyle.Render(hints + strings.Repeat(" ", gap) + sortLabel)
}

// formatRate renders a bytes-per-second value compactly.
func formatRate(bytesPerSec float64) string {
	if bytesPerSec < 0 {
		bytesPerSec = 0
	}
	return humanize.IBytes(uint64(bytesPerSec)) + "/s"
}

// formatUptime renders a duration as 3d 4h 12m style.
func formatUptime(d time.Duration) string {
	days := int(d.Hours()) / 24
	hours := int(d.Hours()) % 24
	mins := int(d.Minutes()) % 60
	switch {
	case days > 0:
		return fmt.Sprintf("%dd %dh", days, hours)
	case hours > 0:
		return fmt.Sprintf("%dh %dm", hours, mins)
	default:
		return fmt.Sprintf("%dm", mins)
	}
}

// formatAge renders how old the displayed sample is.
func formatAge(d time.Duration) string {
	if d < time.Second {
		return "now"
	}
	return d.Truncate(time.Second).String() + " ago"
}

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max == 1 {
		return string(runes[:1])
	}
	return string(runes[:max-1]) + "…"
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func itoa(pid int32) string {
	return strconv.FormatInt(int64(pid), 10)
}

// rootMessage extracts a short display message from a kill error.
func rootMessage(err error) string {
	if err == nil {
		return "unknown error"
	}
	var verr *verrors.Error
	if errors.As(err, &verr) {
		return verr.Message
	}
	return err.Error()
}
