package metrics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateTracker_FirstSampleIsZero(t *testing.T) {
	tr := NewRateTracker()

	rates := tr.Update(Counters{NetRecv: 999999, DiskRead: 888888}, time.Now())

	assert.Zero(t, rates.NetIn)
	assert.Zero(t, rates.NetOut)
	assert.Zero(t, rates.DiskRead)
	assert.Zero(t, rates.DiskWrite)
}

func TestRateTracker_ComputesBytesPerSecond(t *testing.T) {
	tr := NewRateTracker()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tr.Update(Counters{NetRecv: 1000, NetSent: 500, DiskRead: 2000, DiskWrite: 100}, t0)
	rates := tr.Update(Counters{NetRecv: 3000, NetSent: 1500, DiskRead: 6000, DiskWrite: 100}, t0.Add(2*time.Second))

	assert.InDelta(t, 1000.0, rates.NetIn, 0.001)
	assert.InDelta(t, 500.0, rates.NetOut, 0.001)
	assert.InDelta(t, 2000.0, rates.DiskRead, 0.001)
	assert.Zero(t, rates.DiskWrite)
}

func TestRateTracker_UsesWallClockNotNominalInterval(t *testing.T) {
	// A delayed tick (1.5s elapsed instead of 1s) must divide by the
	// actual elapsed time.
	tr := NewRateTracker()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tr.Update(Counters{NetRecv: 0}, t0)
	rates := tr.Update(Counters{NetRecv: 3000}, t0.Add(1500*time.Millisecond))

	assert.InDelta(t, 2000.0, rates.NetIn, 0.001)
}

func TestRateTracker_CounterResetClampsToZero(t *testing.T) {
	// 1000 → 1500 → reset to 200: the reset interval reports 0, and the
	// interval after resumes from the new baseline.
	tr := NewRateTracker()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tr.Update(Counters{NetRecv: 1000}, t0)

	rates := tr.Update(Counters{NetRecv: 1500}, t0.Add(1*time.Second))
	assert.InDelta(t, 500.0, rates.NetIn, 0.001)

	rates = tr.Update(Counters{NetRecv: 200}, t0.Add(2*time.Second))
	assert.Zero(t, rates.NetIn, "counter reset must clamp to zero, not go negative")

	rates = tr.Update(Counters{NetRecv: 700}, t0.Add(3*time.Second))
	assert.InDelta(t, 500.0, rates.NetIn, 0.001, "rate resumes from the reset baseline")
}

func TestRateTracker_ResetForgetsBaseline(t *testing.T) {
	tr := NewRateTracker()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tr.Update(Counters{NetRecv: 1000}, t0)
	tr.Reset()

	rates := tr.Update(Counters{NetRecv: 5000}, t0.Add(1*time.Second))
	assert.Zero(t, rates.NetIn, "first sample after Reset reports zero")
}

func TestRateTracker_ZeroElapsed(t *testing.T) {
	tr := NewRateTracker()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tr.Update(Counters{NetRecv: 1000}, t0)
	rates := tr.Update(Counters{NetRecv: 2000}, t0)

	assert.Zero(t, rates.NetIn, "zero elapsed time must not divide by zero")
}

func TestRateTracker_SkippedDiskSampleAveragesOverGap(t *testing.T) {
	// Disk sampled at t0 and t0+2s with nothing in between (the t0+1s
	// sample failed): the rate divides the delta by the full 2s gap, it
	// does not diff against a zeroed baseline.
	tr := NewRateTracker()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tr.UpdateDisk(1000, 0, t0)
	read, write := tr.UpdateDisk(3000, 500, t0.Add(2*time.Second))

	assert.InDelta(t, 1000.0, read, 0.001)
	assert.InDelta(t, 250.0, write, 0.001)
}

func TestRateTracker_SourcesTrackIndependentBaselines(t *testing.T) {
	// Net keeps producing rates every second while disk skips a tick;
	// neither source disturbs the other's baseline.
	tr := NewRateTracker()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	tr.UpdateDisk(1_000_000_000, 0, t0)
	tr.UpdateNet(100, 200, t0)

	in, _ := tr.UpdateNet(400, 700, t0.Add(1*time.Second))
	assert.InDelta(t, 500.0, in, 0.001)

	read, _ := tr.UpdateDisk(1_000_100_000, 0, t0.Add(2*time.Second))
	assert.InDelta(t, 50_000.0, read, 0.001,
		"disk rate uses its own last baseline, not the cumulative counter")

	in, _ = tr.UpdateNet(900, 1200, t0.Add(2*time.Second))
	assert.InDelta(t, 500.0, in, 0.001, "net cadence is unaffected by the disk gap")
}

func TestRateTracker_RatesNeverNegative(t *testing.T) {
	tr := NewRateTracker()
	t0 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	samples := []Counters{
		{DiskRead: 100, DiskWrite: 100, NetSent: 100, NetRecv: 100},
		{DiskRead: 50, DiskWrite: 200, NetSent: 0, NetRecv: 300},
		{DiskRead: 75, DiskWrite: 150, NetSent: 10, NetRecv: 100},
	}

	for i, s := range samples {
		rates := tr.Update(s, t0.Add(time.Duration(i)*time.Second))
		assert.GreaterOrEqual(t, rates.DiskRead, 0.0)
		assert.GreaterOrEqual(t, rates.DiskWrite, 0.0)
		assert.GreaterOrEqual(t, rates.NetIn, 0.0)
		assert.GreaterOrEqual(t, rates.NetOut, 0.0)
	}
}
