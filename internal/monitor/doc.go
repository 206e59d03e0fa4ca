// Package monitor implements the real-time TUI dashboard for local host
// metrics.
//
// The dashboard displays CPU, memory, disk and network statistics plus a
// process table, with color-coded severity and a sparkline history.
//
// # Architecture
//
// The package uses the Bubble Tea framework, which follows The Elm
// Architecture (Model-Update-View pattern):
//
//   - Model: holds presentation state (latest snapshot, selection, popups)
//   - Update: processes messages (keystrokes, snapshots, notices)
//   - View: renders the current state to a string for display
//
// # Message Flow
//
// The collector samples on its own goroutine and publishes snapshots on a
// capacity-1 latest-wins channel. waitForSnapshot wraps a blocking receive
// in a tea.Cmd, so the blocking happens on a Bubble Tea worker goroutine
// and Update/View stay responsive regardless of sampling latency:
//
//  1. waitForSnapshot blocks until the collector publishes
//  2. snapshotMsg arrives, replacing the stored snapshot wholesale
//  3. View() re-renders; waitForSnapshot is re-armed
//
// Operator commands (kill, sort, shutdown) go the other way through
// Collector.Send, which never blocks: a full command buffer drops the
// command instead of stalling the UI.
//
// # Popup State Machine
//
// Modal state is a closed set: none, kill confirmation, search, help.
// Key handling dispatches on the active popup and unhandled (state, key)
// pairs leave the state unchanged. While the search popup is open,
// printable keys type into the query instead of acting as shortcuts;
// Ctrl+C quits from every state.
//
// # History and Sparklines
//
// The History type stores recent CPU, memory, network, and disk values in
// ring buffers for sparkline rendering. It is owned exclusively by the
// model and needs no locking. Default size is 60 samples (one minute at
// the 1s refresh interval).
package monitor
