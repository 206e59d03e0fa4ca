package metrics

import (
	"context"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/net"
	"github.com/shirou/gopsutil/v3/process"

	verrors "github.com/vitals-sh/vitals/internal/errors"
)

// CPUSample holds one CPU usage reading.
type CPUSample struct {
	Aggregate float64
	PerCore   []float64
}

// MemSample holds one memory usage reading in bytes.
type MemSample struct {
	Used  uint64
	Total uint64
}

// Provider samples host metrics. Each method covers one snapshot field
// so a failure degrades only that field; the collector marks the
// corresponding availability flag and keeps the rest of the snapshot.
type Provider interface {
	CPU(ctx context.Context) (CPUSample, error)
	Memory(ctx context.Context) (MemSample, error)
	Uptime(ctx context.Context) (time.Duration, error)
	Processes(ctx context.Context) ([]ProcessInfo, error)
	DiskCounters(ctx context.Context) (read, write uint64, err error)
	NetCounters(ctx context.Context) (sent, recv uint64, err error)
}

// SystemProvider reads metrics from the local host via gopsutil.
type SystemProvider struct{}

// NewSystemProvider returns a provider backed by the local OS.
func NewSystemProvider() *SystemProvider {
	return &SystemProvider{}
}

// CPU returns aggregate and per-core usage since the previous call.
// gopsutil keeps the previous CPU times internally when interval is 0,
// so the first call reports usage since boot and subsequent calls report
// usage over the sampling interval.
func (p *SystemProvider) CPU(ctx context.Context) (CPUSample, error) {
	agg, err := cpu.PercentWithContext(ctx, 0, false)
	if err != nil {
		return CPUSample{}, verrors.Wrap(err, "Cannot read CPU usage")
	}
	if len(agg) == 0 {
		return CPUSample{}, verrors.New(verrors.ErrProvider, "No CPU usage data available", "")
	}

	perCore, err := cpu.PercentWithContext(ctx, 0, true)
	if err != nil {
		// Aggregate succeeded; render without per-core bars.
		perCore = nil
	}

	return CPUSample{Aggregate: agg[0], PerCore: perCore}, nil
}

// Memory returns used and total physical memory in bytes.
func (p *SystemProvider) Memory(ctx context.Context) (MemSample, error) {
	vm, err := mem.VirtualMemoryWithContext(ctx)
	if err != nil {
		return MemSample{}, verrors.Wrap(err, "Cannot read memory usage")
	}
	return MemSample{Used: vm.Used, Total: vm.Total}, nil
}

// Uptime returns time since boot.
func (p *SystemProvider) Uptime(ctx context.Context) (time.Duration, error) {
	secs, err := host.UptimeWithContext(ctx)
	if err != nil {
		return 0, verrors.Wrap(err, "Cannot read uptime")
	}
	return time.Duration(secs) * time.Second, nil
}

// Processes returns one ProcessInfo per running process. Processes that
// vanish mid-enumeration are skipped, not errors: on a live system the
// process table changes under us constantly.
func (p *SystemProvider) Processes(ctx context.Context) ([]ProcessInfo, error) {
	procs, err := process.ProcessesWithContext(ctx)
	if err != nil {
		return nil, verrors.Wrap(err, "Cannot list processes")
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, proc := range procs {
		name, err := proc.NameWithContext(ctx)
		if err != nil {
			continue
		}

		info := ProcessInfo{PID: proc.Pid, Name: name}

		if cpuPct, err := proc.CPUPercentWithContext(ctx); err == nil {
			info.CPUPercent = cpuPct
		}
		if memInfo, err := proc.MemoryInfoWithContext(ctx); err == nil && memInfo != nil {
			info.RSS = memInfo.RSS
		}
		if user, err := proc.UsernameWithContext(ctx); err == nil {
			info.User = user
		}

		infos = append(infos, info)
	}

	return infos, nil
}

// DiskCounters returns cumulative read and write bytes summed across all
// physical devices.
func (p *SystemProvider) DiskCounters(ctx context.Context) (read, write uint64, err error) {
	counters, err := disk.IOCountersWithContext(ctx)
	if err != nil {
		return 0, 0, verrors.Wrap(err, "Cannot read disk I/O counters")
	}
	for device, c := range counters {
		// Skip loopback and device-mapper entries; they double-count the
		// underlying physical device.
		if strings.HasPrefix(device, "loop") || strings.HasPrefix(device, "dm-") {
			continue
		}
		read += c.ReadBytes
		write += c.WriteBytes
	}
	return read, write, nil
}

// NetCounters returns cumulative sent and received bytes summed across
// all non-loopback interfaces.
func (p *SystemProvider) NetCounters(ctx context.Context) (sent, recv uint64, err error) {
	counters, err := net.IOCountersWithContext(ctx, true)
	if err != nil {
		return 0, 0, verrors.Wrap(err, "Cannot read network I/O counters")
	}
	for _, c := range counters {
		if c.Name == "lo" || c.Name == "lo0" {
			continue
		}
		sent += c.BytesSent
		recv += c.BytesRecv
	}
	return sent, recv, nil
}
