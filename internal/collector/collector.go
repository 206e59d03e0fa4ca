// Package collector runs the sampling loop: it reads host metrics from a
// provider at a fixed cadence, computes rates from counter deltas, and
// publishes immutable snapshots to the presentation loop over a
// latest-wins channel. Commands flow the other way over a bounded
// channel so the UI never blocks on the collector and the collector
// never blocks on the UI.
package collector

import (
	"context"
	"time"

	"github.com/vitals-sh/vitals/internal/logger"
	"github.com/vitals-sh/vitals/internal/metrics"
)

const (
	// commandBuffer bounds the UI→collector channel. Send drops when full.
	commandBuffer = 16

	// sampleTimeoutFraction limits a single sample to a fraction of the
	// tick interval so one stuck reading cannot stall the cadence forever.
	sampleTimeoutFraction = 0.9
)

// Collector owns the sampling loop state: the provider, the rate
// tracker, the killer, and the active sort key. All fields are touched
// only from the Run goroutine; commands are the sole way in.
type Collector struct {
	provider metrics.Provider
	killer   Killer
	interval time.Duration
	sortKey  metrics.SortKey
	rates    *metrics.RateTracker
	log      logger.Logger

	commands  chan Command
	snapshots chan *metrics.Snapshot

	// killFailures carries failed kill requests to the presentation
	// loop for display as a transient notice.
	killFailures chan KillFailure
}

// KillFailure reports a failed KillCommand to the presentation loop.
type KillFailure struct {
	PID int32
	Err error
}

// Option configures a Collector.
type Option func(*Collector)

// WithKiller replaces the default SIGTERM killer.
func WithKiller(k Killer) Option {
	return func(c *Collector) { c.killer = k }
}

// WithLogger replaces the default env logger.
func WithLogger(l logger.Logger) Option {
	return func(c *Collector) { c.log = l }
}

// WithSortKey sets the initial process sort key.
func WithSortKey(key metrics.SortKey) Option {
	return func(c *Collector) { c.sortKey = key }
}

// New creates a collector sampling from provider every interval.
func New(provider metrics.Provider, interval time.Duration, opts ...Option) *Collector {
	if interval <= 0 {
		interval = time.Second
	}
	c := &Collector{
		provider: provider,
		killer:   NewSystemKiller(),
		interval: interval,
		sortKey:  metrics.SortCPU,
		rates:    metrics.NewRateTracker(),
		log:      logger.NewEnvLogger("[collector]"),
		commands: make(chan Command, commandBuffer),
		// Capacity 1: holds exactly the latest unconsumed snapshot.
		snapshots:    make(chan *metrics.Snapshot, 1),
		killFailures: make(chan KillFailure, commandBuffer),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshots returns the channel snapshots are published on. The channel
// is closed when Run returns, so the presentation loop observes shutdown.
func (c *Collector) Snapshots() <-chan *metrics.Snapshot {
	return c.snapshots
}

// KillFailures returns the channel failed kill requests are reported on.
func (c *Collector) KillFailures() <-chan KillFailure {
	return c.killFailures
}

// Send enqueues a command without blocking. Returns false when the
// buffer is full; the caller drops the command rather than stalling.
func (c *Collector) Send(cmd Command) bool {
	select {
	case c.commands <- cmd:
		return true
	default:
		c.log.Warn("command buffer full, dropping %T", cmd)
		return false
	}
}

// Run executes the sampling loop until a ShutdownCommand arrives or ctx
// is canceled. It closes the snapshot channel on return.
func (c *Collector) Run(ctx context.Context) {
	defer close(c.snapshots)

	// Prime gopsutil's internal CPU baseline and our counter baseline so
	// the first published snapshot carries real deltas.
	c.sample(ctx)

	next := time.Now().Add(c.interval)
	for {
		if shutdown := c.drainCommands(ctx); shutdown {
			c.log.Info("shutdown command received")
			return
		}
		if ctx.Err() != nil {
			return
		}

		snap := c.sample(ctx)
		c.publish(snap)

		// Sleep until the absolute deadline so per-tick work does not
		// accumulate as drift. An overrun tick proceeds immediately.
		now := time.Now()
		for !next.After(now) {
			next = next.Add(c.interval)
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(next.Sub(now)):
		}
	}
}

// drainCommands applies all queued commands in FIFO order. Returns true
// when a shutdown was requested. Later sort commands override earlier
// ones naturally; kills execute in arrival order.
func (c *Collector) drainCommands(ctx context.Context) bool {
	for {
		select {
		case cmd := <-c.commands:
			switch v := cmd.(type) {
			case ShutdownCommand:
				return true
			case SortCommand:
				c.sortKey = v.Key
				c.log.Debug("sort key set to %s", v.Key)
			case KillCommand:
				c.kill(ctx, v.PID)
			}
		default:
			return false
		}
	}
}

// kill terminates one process. Errors are logged and reported for
// display; the loop keeps running either way.
func (c *Collector) kill(ctx context.Context, pid int32) {
	if err := c.killer.Kill(ctx, pid); err != nil {
		c.log.Warn("kill %d failed: %v", pid, err)
		select {
		case c.killFailures <- KillFailure{PID: pid, Err: err}:
		default:
		}
		return
	}
	c.log.Info("sent SIGTERM to pid %d", pid)
}

// sample reads all metrics and assembles a snapshot. Each field degrades
// independently: a failed reading clears its availability flag and the
// rest of the snapshot stays usable.
func (c *Collector) sample(ctx context.Context) *metrics.Snapshot {
	timeout := time.Duration(float64(c.interval) * sampleTimeoutFraction)
	sctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	snap := &metrics.Snapshot{
		Timestamp: time.Now(),
		SortKey:   c.sortKey,
	}

	if cpuSample, err := c.provider.CPU(sctx); err == nil {
		snap.CPUPercent = cpuSample.Aggregate
		snap.PerCore = cpuSample.PerCore
		snap.CPUOK = true
	} else {
		c.log.Debug("cpu sample failed: %v", err)
	}

	if memSample, err := c.provider.Memory(sctx); err == nil {
		snap.MemUsed = memSample.Used
		snap.MemTotal = memSample.Total
		snap.MemOK = true
	} else {
		c.log.Debug("memory sample failed: %v", err)
	}

	if uptime, err := c.provider.Uptime(sctx); err == nil {
		snap.Uptime = uptime
	}

	if procs, err := c.provider.Processes(sctx); err == nil {
		metrics.SortProcesses(procs, c.sortKey)
		snap.Processes = procs
		snap.ProcsOK = true
	} else {
		c.log.Debug("process sample failed: %v", err)
	}

	// Each counter source keeps its own baseline. A failed sample leaves
	// that baseline untouched, so the next good reading averages over the
	// longer window instead of diffing against zero.
	if diskRead, diskWrite, err := c.provider.DiskCounters(sctx); err == nil {
		snap.DiskRead, snap.DiskWrite = c.rates.UpdateDisk(diskRead, diskWrite, snap.Timestamp)
		snap.DiskOK = true
	} else {
		c.log.Debug("disk sample failed: %v", err)
	}

	if netSent, netRecv, err := c.provider.NetCounters(sctx); err == nil {
		snap.NetIn, snap.NetOut = c.rates.UpdateNet(netSent, netRecv, snap.Timestamp)
		snap.NetOK = true
	} else {
		c.log.Debug("net sample failed: %v", err)
	}

	return snap
}

// publish delivers a snapshot latest-wins: if the previous snapshot was
// never consumed it is discarded, so a slow UI always sees current data
// and the collector never blocks.
func (c *Collector) publish(snap *metrics.Snapshot) {
	select {
	case c.snapshots <- snap:
	default:
		select {
		case <-c.snapshots:
		default:
		}
		select {
		case c.snapshots <- snap:
		default:
		}
	}
}
