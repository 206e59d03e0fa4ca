package monitor

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vitals-sh/vitals/internal/collector"
)

// Key bindings as constants for consistency.
const (
	KeyQuit         = "q"
	KeyQuitAlt      = "ctrl+c"
	KeyKill         = "k"
	KeySearch       = "/"
	KeyCycleSort    = "s"
	KeyCycleSortAlt = "tab"
	KeySelectPrev   = "up"
	KeySelectNext   = "down"
	KeySelectFirst  = "home"
	KeySelectLast   = "end"
	KeyConfirm      = "y"
	KeyConfirmAlt   = "enter"
	KeyCancel       = "n"
	KeyClose        = "esc"
	KeyToggleHelp   = "?"
)

// handleKey dispatches key input through the popup state machine. The
// table is total: any (state, key) pair not handled below leaves the
// state unchanged.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()

	// Ctrl+C quits from every state, including search input.
	if key == KeyQuitAlt {
		return m.quit()
	}

	switch m.popup {
	case popupConfirmKill:
		return m.handleConfirmKey(key)
	case popupSearch:
		return m.handleSearchKey(msg)
	case popupHelp:
		// Any key closes help.
		m.popup = popupNone
		return m, nil
	default:
		return m.handleClosedKey(key)
	}
}

// handleClosedKey handles input with no popup open.
func (m Model) handleClosedKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyQuit:
		return m.quit()

	case KeyKill:
		if pid := m.selectedPID(); pid != 0 {
			m.killPID = pid
			m.popup = popupConfirmKill
		}
		return m, nil

	case KeySearch:
		m.popup = popupSearch
		m.search.SetValue("")
		m.search.Focus()
		return m, textinput.Blink

	case KeyToggleHelp:
		m.popup = popupHelp
		return m, nil

	case KeyCycleSort, KeyCycleSortAlt:
		return m.cycleSort()

	case KeySelectPrev:
		if m.selected > 0 {
			m.selected--
		}
		return m, nil

	case KeySelectNext:
		if m.selected < len(m.visibleProcesses())-1 {
			m.selected++
		}
		return m, nil

	case KeySelectFirst:
		m.selected = 0
		return m, nil

	case KeySelectLast:
		if n := len(m.visibleProcesses()); n > 0 {
			m.selected = n - 1
		}
		return m, nil
	}

	return m, nil
}

// handleConfirmKey handles input while the kill confirmation is open.
// Confirm emits exactly one KillCommand and closes the popup; cancel
// closes it with no side effect.
func (m Model) handleConfirmKey(key string) (tea.Model, tea.Cmd) {
	switch key {
	case KeyConfirm, KeyConfirmAlt:
		pid := m.killPID
		m.popup = popupNone
		m.killPID = 0
		m.collector.Send(collector.KillCommand{PID: pid})
		return m, nil

	case KeyCancel, KeyClose:
		m.popup = popupNone
		m.killPID = 0
		return m, nil

	case KeyCycleSort, KeyCycleSortAlt:
		// Sort cycling works from any state; the dialog stays open.
		return m.cycleSort()

	case KeyQuit:
		return m.quit()
	}

	return m, nil
}

// handleSearchKey handles input while the search popup is open. Printable
// runes go to the text input (so "q", "k", "s" type rather than act);
// Tab still cycles sort, Esc closes and clears the filter.
func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case KeyClose:
		m.popup = popupNone
		m.filter = ""
		m.search.SetValue("")
		m.search.Blur()
		m.clampSelection()
		return m, nil

	case KeyCycleSortAlt:
		return m.cycleSort()

	case KeySelectPrev, KeySelectNext:
		// Allow navigating the filtered table while typing.
		return m.handleClosedKey(msg.String())
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.filter = m.search.Value()
	m.clampSelection()
	return m, cmd
}

// cycleSort requests the next sort key from the collector and updates the
// label optimistically; the authoritative key arrives with the next
// snapshot.
func (m Model) cycleSort() (tea.Model, tea.Cmd) {
	next := m.sortKey.Next()
	m.sortKey = next
	m.collector.Send(collector.SortCommand{Key: next})
	return m, nil
}

// quit sends a fire-and-forget shutdown and exits the presentation loop
// without waiting for the collector to acknowledge.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.quitting = true
	m.collector.Send(collector.ShutdownCommand{})
	return m, tea.Quit
}
