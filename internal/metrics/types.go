// Package metrics defines the snapshot types the collector publishes,
// the provider that samples them from the host, and the sorting and
// rate-computation helpers that turn raw counters into displayable values.
package metrics

import (
	"strings"
	"time"
)

// Snapshot is one complete sample of host state. It is built once per
// collection tick and never mutated after publish, so the presentation
// loop can read it without synchronization.
type Snapshot struct {
	Timestamp time.Time

	// CPU usage, aggregate and per core, 0-100.
	CPUPercent float64
	PerCore    []float64

	// Memory in bytes.
	MemUsed  uint64
	MemTotal uint64

	Uptime time.Duration

	// Processes, already sorted by the active sort key.
	Processes []ProcessInfo
	SortKey   SortKey

	// Rates in bytes per second, computed from counter deltas.
	DiskRead  float64
	DiskWrite float64
	NetIn     float64
	NetOut    float64

	// Availability flags. A false flag means that field's sample failed
	// this tick and the value should render as unavailable rather than
	// zero.
	CPUOK   bool
	MemOK   bool
	ProcsOK bool
	DiskOK  bool
	NetOK   bool
}

// MemPercent returns memory usage as a percentage, or 0 when total is unknown.
func (s *Snapshot) MemPercent() float64 {
	if s.MemTotal == 0 {
		return 0
	}
	return float64(s.MemUsed) / float64(s.MemTotal) * 100
}

// ProcessInfo describes one process row in the table.
type ProcessInfo struct {
	PID        int32
	Name       string
	User       string
	CPUPercent float64
	RSS        uint64
}

// SortKey selects the process table ordering.
type SortKey int

const (
	SortCPU SortKey = iota
	SortMemory
	SortPID
)

// Next returns the following key in the cycle CPU → Memory → PID → CPU.
func (k SortKey) Next() SortKey {
	switch k {
	case SortCPU:
		return SortMemory
	case SortMemory:
		return SortPID
	default:
		return SortCPU
	}
}

func (k SortKey) String() string {
	switch k {
	case SortCPU:
		return "cpu"
	case SortMemory:
		return "mem"
	case SortPID:
		return "pid"
	default:
		return "cpu"
	}
}

// ParseSortKey converts a config or flag value into a SortKey.
// Returns false for unrecognized values.
func ParseSortKey(s string) (SortKey, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "cpu":
		return SortCPU, true
	case "mem", "memory":
		return SortMemory, true
	case "pid":
		return SortPID, true
	default:
		return SortCPU, false
	}
}
