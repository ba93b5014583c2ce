package tui

// sparklineChars are the eight block characters used to render a sparkline,
// from lowest to highest.
var sparklineChars = []rune("▁▂▃▄▅▆▇█")

// RingBuffer is a fixed-capacity circular buffer of float64 samples.
// Once full, pushing a new sample overwrites the oldest one.
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer creates a ring buffer holding at most capacity samples.
// A capacity below 1 is treated as 1.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer{data: make([]float64, capacity)}
}

// Push appends a sample, evicting the oldest when the buffer is full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// Len returns the number of samples currently stored.
func (r *RingBuffer) Len() int { return r.count }

// Cap returns the buffer capacity.
func (r *RingBuffer) Cap() int { return len(r.data) }

// Last returns the most recently pushed sample, or 0 when empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	idx := (r.head - 1 + len(r.data)) % len(r.data)
	return r.data[idx]
}

// Slice returns the samples in insertion order, oldest first.
func (r *RingBuffer) Slice() []float64 {
	out := make([]float64, 0, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := 0; i < r.count; i++ {
		out = append(out, r.data[(start+i)%len(r.data)])
	}
	return out
}

// Resize changes the capacity, keeping the most recent samples that fit.
func (r *RingBuffer) Resize(capacity int) {
	if capacity < 1 {
		capacity = 1
	}
	if capacity == len(r.data) {
		return
	}
	old := r.Slice()
	if len(old) > capacity {
		old = old[len(old)-capacity:]
	}
	r.data = make([]float64, capacity)
	r.head = 0
	r.count = 0
	for _, v := range old {
		r.Push(v)
	}
}

// Reset discards all samples while keeping the capacity.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.count = 0
}

// RenderSparkline renders values in the range [0,100] as a single row of
// block characters, right-aligned in width columns. Values outside the
// range are clamped.
func RenderSparkline(values []float64, width int) string {
	if width <= 0 {
		return ""
	}

	if len(values) > width {
		values = values[len(values)-width:]
	}

	runes := make([]rune, width)
	pad := width - len(values)
	for i := 0; i < pad; i++ {
		runes[i] = ' '
	}
	for i, v := range values {
		if v < 0 {
			v = 0
		}
		if v > 100 {
			v = 100
		}
		level := int(v / 100.0 * float64(len(sparklineChars)-1))
		runes[pad+i] = sparklineChars[level]
	}
	return string(runes)
}
