package metrics

import "time"

// Counters holds the cumulative disk and network byte counters read in
// one sample, summed across devices and non-loopback interfaces.
type Counters struct {
	DiskRead  uint64
	DiskWrite uint64
	NetSent   uint64
	NetRecv   uint64
}

// Rates holds the bytes-per-second values derived from two consecutive
// counter samples.
type Rates struct {
	DiskRead  float64
	DiskWrite float64
	NetIn     float64
	NetOut    float64
}

// RateTracker converts cumulative counters into per-second rates.
// Disk and network baselines are tracked independently, so a tick where
// only one source fails carries that source's baseline forward and the
// other keeps producing rates. Elapsed time is measured from the actual
// sample timestamps per source, not the nominal tick interval, so a
// delayed tick or a skipped sample does not inflate the rate.
type RateTracker struct {
	disk counterPair
	net  counterPair
}

// counterPair is the baseline for one counter source.
type counterPair struct {
	a, b     uint64
	prevTime time.Time
	primed   bool
}

// update records a new reading and returns the per-second rates since
// the previous one. The first reading returns zeros.
func (p *counterPair) update(a, b uint64, now time.Time) (rateA, rateB float64) {
	if !p.primed {
		p.a, p.b, p.prevTime, p.primed = a, b, now, true
		return 0, 0
	}

	elapsed := now.Sub(p.prevTime).Seconds()
	prevA, prevB := p.a, p.b
	p.a, p.b, p.prevTime = a, b, now

	if elapsed <= 0 {
		return 0, 0
	}
	return counterRate(prevA, a, elapsed), counterRate(prevB, b, elapsed)
}

// NewRateTracker returns a tracker that reports zero rates until it has
// seen two samples per source.
func NewRateTracker() *RateTracker {
	return &RateTracker{}
}

// UpdateDisk records a disk counter sample taken at now and returns the
// read and write rates since the previous disk sample. Skipping a tick
// (sample failure) keeps the old baseline: the next rate averages over
// the longer elapsed window instead of spiking.
func (t *RateTracker) UpdateDisk(read, write uint64, now time.Time) (readRate, writeRate float64) {
	return t.disk.update(read, write, now)
}

// UpdateNet records a network counter sample taken at now and returns
// the inbound and outbound rates since the previous network sample.
func (t *RateTracker) UpdateNet(sent, recv uint64, now time.Time) (inRate, outRate float64) {
	sentRate, recvRate := t.net.update(sent, recv, now)
	return recvRate, sentRate
}

// Update records both counter sources at once and returns all four
// rates. The first call returns all zeros. A counter that decreased
// (reset or rollover) contributes a zero rate for that field rather
// than a negative one.
func (t *RateTracker) Update(cur Counters, now time.Time) Rates {
	var r Rates
	r.DiskRead, r.DiskWrite = t.UpdateDisk(cur.DiskRead, cur.DiskWrite, now)
	r.NetIn, r.NetOut = t.UpdateNet(cur.NetSent, cur.NetRecv, now)
	return r
}

// Reset forgets both baselines. The next update per source returns zero
// rates, the same as a first sample.
func (t *RateTracker) Reset() {
	t.disk.primed = false
	t.net.primed = false
}

func counterRate(prev, cur uint64, elapsed float64) float64 {
	if cur < prev {
		// Counter reset or wrapped; report no traffic for this interval.
		return 0
	}
	return float64(cur-prev) / elapsed
}
