package monitor

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitals-sh/vitals/internal/collector"
	"github.com/vitals-sh/vitals/internal/metrics"
)

// popupState is the modal overlay state. The set is closed; key handling
// switches on it exhaustively and unlisted (state, key) pairs leave it
// unchanged.
type popupState int

const (
	popupNone popupState = iota
	popupConfirmKill
	popupSearch
	popupHelp
)

// noticeDuration is how long a transient notice stays visible.
const noticeDuration = 4 * time.Second

// Model is the Bubble Tea model for the dashboard. It owns all
// presentation state; the only data crossing from the collector are
// immutable snapshots received as messages.
type Model struct {
	snapshot *metrics.Snapshot // nil until the first sample arrives
	sortKey  metrics.SortKey
	selected int
	popup    popupState
	killPID  int32 // pid pending confirmation while popup == popupConfirmKill
	search   textinput.Model
	filter   string // applied search query
	notice   string
	history  *History
	width    int
	height   int
	quitting bool
	done     bool // collector's snapshot channel closed

	processLimit int // max table rows, 0 fits to terminal height

	collector *collector.Collector
}

// snapshotMsg carries a new snapshot from the collector.
type snapshotMsg struct {
	snapshot *metrics.Snapshot
}

// collectorDoneMsg signals that the snapshot channel closed.
type collectorDoneMsg struct{}

// killFailedMsg carries a failed kill request for display.
type killFailedMsg struct {
	failure collector.KillFailure
}

// clearNoticeMsg expires the transient notice.
type clearNoticeMsg struct{}

// NewModel creates a dashboard model reading from the given collector.
func NewModel(c *collector.Collector, sortKey metrics.SortKey, historySize int) Model {
	search := textinput.New()
	search.Placeholder = "process name"
	search.Prompt = "/ "
	search.CharLimit = 64

	return Model{
		sortKey:   sortKey,
		history:   NewHistory(historySize),
		search:    search,
		collector: c,
	}
}

// LimitProcesses caps how many rows the process table shows.
// Zero keeps the default behavior of fitting the table to the terminal.
func (m Model) LimitProcesses(n int) Model {
	if n > 0 {
		m.processLimit = n
	}
	return m
}

// Init arms the snapshot and kill-failure listeners.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.waitForSnapshot(),
		m.waitForKillFailure(),
	)
}

// waitForSnapshot blocks on the snapshot channel in its own goroutine.
// The Update path itself never blocks: Bubble Tea delivers the message
// when one arrives, and the command is re-armed after each receipt.
func (m Model) waitForSnapshot() tea.Cmd {
	ch := m.collector.Snapshots()
	return func() tea.Msg {
		snap, ok := <-ch
		if !ok {
			return collectorDoneMsg{}
		}
		return snapshotMsg{snapshot: snap}
	}
}

// waitForKillFailure blocks on the kill-failure channel the same way.
func (m Model) waitForKillFailure() tea.Cmd {
	ch := m.collector.KillFailures()
	return func() tea.Msg {
		failure, ok := <-ch
		if !ok {
			return nil
		}
		return killFailedMsg{failure: failure}
	}
}

func clearNoticeCmd() tea.Cmd {
	return tea.Tick(noticeDuration, func(time.Time) tea.Msg {
		return clearNoticeMsg{}
	})
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case snapshotMsg:
		m.snapshot = msg.snapshot
		m.sortKey = msg.snapshot.SortKey
		m.pushHistory(msg.snapshot)
		m.clampSelection()
		return m, m.waitForSnapshot()

	case collectorDoneMsg:
		// Collector stopped on its own; exit the presentation loop too.
		m.done = true
		m.quitting = true
		return m, tea.Quit

	case killFailedMsg:
		m.notice = "✗ kill " + itoa(msg.failure.PID) + " failed: " + rootMessage(msg.failure.Err)
		return m, tea.Batch(m.waitForKillFailure(), clearNoticeCmd())

	case clearNoticeMsg:
		m.notice = ""
	}

	return m, nil
}

// View renders the dashboard.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	return m.render()
}

// pushHistory records the snapshot's values in the sparkline buffers.
// Degraded fields are skipped so the graphs do not dip to zero on a
// failed sample.
func (m *Model) pushHistory(snap *metrics.Snapshot) {
	if snap.CPUOK {
		m.history.PushCPU(snap.CPUPercent)
	}
	if snap.MemOK {
		m.history.PushMem(snap.MemPercent())
	}
	if snap.NetOK {
		m.history.PushNet(snap.NetIn, snap.NetOut)
	}
	if snap.DiskOK {
		m.history.PushDisk(snap.DiskRead, snap.DiskWrite)
	}
}

// visibleProcesses returns the process rows after applying the search
// filter. Sorting already happened collector-side.
func (m Model) visibleProcesses() []metrics.ProcessInfo {
	if m.snapshot == nil {
		return nil
	}
	if m.filter == "" && m.popup != popupSearch {
		return m.snapshot.Processes
	}
	query := m.filter
	if m.popup == popupSearch {
		query = m.search.Value()
	}
	if query == "" {
		return m.snapshot.Processes
	}
	var out []metrics.ProcessInfo
	for _, p := range m.snapshot.Processes {
		if containsFold(p.Name, query) {
			out = append(out, p)
		}
	}
	return out
}

// selectedPID returns the pid under the cursor, or 0 when the table is empty.
func (m Model) selectedPID() int32 {
	procs := m.visibleProcesses()
	if len(procs) == 0 || m.selected < 0 || m.selected >= len(procs) {
		return 0
	}
	return procs[m.selected].PID
}

// clampSelection keeps the cursor inside the visible table after a
// refresh or filter change.
func (m *Model) clampSelection() {
	n := len(m.visibleProcesses())
	if n == 0 {
		m.selected = 0
		return
	}
	if m.selected >= n {
		m.selected = n - 1
	}
	if m.selected < 0 {
		m.selected = 0
	}
}
