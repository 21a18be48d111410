package tui

// sparklineChars maps levels 0..7 to Unicode block elements.
var sparklineChars = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// RingBuffer is a fixed-capacity circular buffer of samples.
type RingBuffer struct {
	data  []float64
	head  int
	count int
}

// NewRingBuffer creates a ring buffer with the given capacity.
func NewRingBuffer(capacity int) *RingBuffer {
	if capacity <= 0 {
		capacity = 1
	}
	return &RingBuffer{data: make([]float64, capacity)}
}

// Push adds a sample, overwriting the oldest if full.
func (r *RingBuffer) Push(v float64) {
	r.data[r.head] = v
	r.head = (r.head + 1) % len(r.data)
	if r.count < len(r.data) {
		r.count++
	}
}

// Len returns the number of valid samples.
func (r *RingBuffer) Len() int { return r.count }

// Last returns the most recent sample, or 0 if empty.
func (r *RingBuffer) Last() float64 {
	if r.count == 0 {
		return 0
	}
	return r.data[(r.head-1+len(r.data))%len(r.data)]
}

// Max returns the largest sample, or 0 if empty.
func (r *RingBuffer) Max() float64 {
	var m float64
	for _, v := range r.Slice() {
		m = max(m, v)
	}
	return m
}

// Slice returns samples oldest first.
func (r *RingBuffer) Slice() []float64 {
	if r.count == 0 {
		return nil
	}
	result := make([]float64, r.count)
	start := (r.head - r.count + len(r.data)) % len(r.data)
	for i := range r.count {
		result[i] = r.data[(start+i)%len(r.data)]
	}
	return result
}

// Reset clears all samples.
func (r *RingBuffer) Reset() {
	r.head = 0
	r.count = 0
}

// RenderSparkline draws values scaled against ceiling, which is the value
// drawn as a full block. A non-positive ceiling draws every sample at the
// lowest level.
func RenderSparkline(values []float64, ceiling float64) string {
	if len(values) == 0 {
		return ""
	}
	runes := make([]rune, len(values))
	for i, v := range values {
		idx := 0
		if ceiling > 0 {
			idx = int(min(max(v, 0), ceiling) / ceiling * 7)
		}
		runes[i] = sparklineChars[idx]
	}
	return string(runes)
}
