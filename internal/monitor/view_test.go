package monitor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vitals-sh/vitals/internal/metrics"
)

func TestRender_DegradedFieldsShowUnavailable(t *testing.T) {
	m, _, _ := newTestModel(t)
	next, _ := m.Update(snapshotMsg{snapshot: &metrics.Snapshot{
		Timestamp: time.Now(),
		MemUsed:   1 << 30,
		MemTotal:  4 << 30,
		MemOK:     true,
		CPUOK:     false,
		ProcsOK:   true,
		DiskOK:    false,
		NetOK:     true,
	}})
	m = next.(Model)

	view := m.View()

	assert.Contains(t, view, unavailable, "failed fields render as n/a")
	assert.Contains(t, view, "Memory", "healthy fields still render")
}

func TestTableRows_ProcessLimitCaps(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = withSnapshot(m)
	m.height = 60

	assert.Greater(t, m.tableRows(), 5, "tall terminal fits many rows")

	m = m.LimitProcesses(5)
	assert.Equal(t, 5, m.tableRows())

	m = m.LimitProcesses(0)
	assert.Equal(t, 5, m.tableRows(), "zero keeps the existing cap")
}

func TestRender_HelpOverlay(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = withSnapshot(m)

	next, _ := m.Update(keyRune('?'))
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Keyboard Shortcuts")
}

func TestRender_ConfirmOverlayShowsProcess(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = withSnapshot(m)

	next, _ := m.Update(keyRune('k'))
	m = next.(Model)

	view := m.View()
	assert.Contains(t, view, "Terminate process?")
	assert.Contains(t, view, "watcher", "dialog names the selected process")
	assert.Contains(t, view, "5")
}

func TestRender_QuittingIsEmpty(t *testing.T) {
	m, _, _ := newTestModel(t)
	m = withSnapshot(m)

	next, _ := m.Update(keyRune('q'))
	m = next.(Model)

	assert.Empty(t, m.View())
}

func TestFormatRate(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0 B/s"},
		{1024, "1.0 KiB/s"},
		{-5, "0 B/s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatRate(tt.in))
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{30 * time.Minute, "30m"},
		{90 * time.Minute, "1h 30m"},
		{49 * time.Hour, "2d 1h"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatUptime(tt.in))
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "longnam…", truncate("longname-process", 8))
	assert.Equal(t, "", truncate("anything", 0))
}

func TestTruncate_MultiByteRunes(t *testing.T) {
	// Rune boundaries, not byte offsets: cutting a multi-byte name must
	// never produce invalid UTF-8.
	assert.Equal(t, "héllo-…", truncate("héllo-wörld", 7))
	assert.Equal(t, "日本語プ…", truncate("日本語プロセス", 5))
	assert.Equal(t, "日本語", truncate("日本語", 5))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, containsFold("Systemd", "system"))
	assert.True(t, containsFold("nginx", "NGI"))
	assert.False(t, containsFold("nginx", "apache"))
}
