package monitor

// DefaultHistorySize is the default number of data points to retain per metric.
const DefaultHistorySize = 60

// History stores recent metric values in fixed-size ring buffers for
// sparkline rendering. It is owned exclusively by the presentation loop
// and mutated only from Update, so it needs no locking.
type History struct {
	size int

	cpu       *ringBuffer
	mem       *ringBuffer
	netIn     *ringBuffer
	netOut    *ringBuffer
	diskRead  *ringBuffer
	diskWrite *ringBuffer
}

// ringBuffer is a fixed-size circular buffer for float64 values.
type ringBuffer struct {
	data  []float64
	head  int
	count int
	size  int
}

// NewHistory creates a history tracker with the specified buffer size.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{
		size:      size,
		cpu:       newRingBuffer(size),
		mem:       newRingBuffer(size),
		netIn:     newRingBuffer(size),
		netOut:    newRingBuffer(size),
		diskRead:  newRingBuffer(size),
		diskWrite: newRingBuffer(size),
	}
}

// PushCPU records an aggregate CPU percentage sample.
func (h *History) PushCPU(percent float64) {
	h.cpu.push(percent)
}

// PushMem records a memory usage percentage sample.
func (h *History) PushMem(percent float64) {
	h.mem.push(percent)
}

// PushNet records network throughput in bytes per second.
func (h *History) PushNet(in, out float64) {
	h.netIn.push(in)
	h.netOut.push(out)
}

// PushDisk records disk throughput in bytes per second.
func (h *History) PushDisk(read, write float64) {
	h.diskRead.push(read)
	h.diskWrite.push(write)
}

// CPU returns the last count CPU percentage values, oldest first.
// Returns fewer values if not enough history is available.
func (h *History) CPU(count int) []float64 {
	return h.cpu.getLast(count)
}

// Mem returns the last count memory percentage values, oldest first.
func (h *History) Mem(count int) []float64 {
	return h.mem.getLast(count)
}

// Net returns the last count network rate values, oldest first.
func (h *History) Net(count int) (in, out []float64) {
	return h.netIn.getLast(count), h.netOut.getLast(count)
}

// Disk returns the last count disk rate values, oldest first.
func (h *History) Disk(count int) (read, write []float64) {
	return h.diskRead.getLast(count), h.diskWrite.getLast(count)
}

// Count returns the number of CPU data points stored.
func (h *History) Count() int {
	return h.cpu.count
}

// newRingBuffer creates a new ring buffer with the specified capacity.
func newRingBuffer(size int) *ringBuffer {
	return &ringBuffer{
		data: make([]float64, size),
		size: size,
	}
}

// push adds a value to the ring buffer.
func (r *ringBuffer) push(value float64) {
	r.data[r.head] = value
	r.head = (r.head + 1) % r.size
	if r.count < r.size {
		r.count++
	}
}

// getLast returns the last count values in chronological order (oldest first).
func (r *ringBuffer) getLast(count int) []float64 {
	if count <= 0 || r.count == 0 {
		return nil
	}

	if count > r.count {
		count = r.count
	}

	result := make([]float64, count)

	// head points to the next write position, so the most recent value
	// is at head-1. We want count values ending there.
	start := (r.head - count + r.size) % r.size

	for i := 0; i < count; i++ {
		result[i] = r.data[(start+i)%r.size]
	}

	return result
}
