package buffer

// Buffer wraps an interleaved float32 slice holding whole rows of
// Channels() samples each.
type Buffer struct {
	samples  []float32
	channels int
}

// New returns an empty Buffer for the given channel count with capacity for
// capRows rows.
func New(channels, capRows int) *Buffer {
	if channels < 1 {
		channels = 1
	}
	if capRows < 0 {
		capRows = 0
	}
	return &Buffer{samples: make([]float32, 0, channels*capRows), channels: channels}
}

// Samples returns the underlying interleaved slice.
func (b *Buffer) Samples() []float32 {
	return b.samples
}

// Channels returns the number of values per row.
func (b *Buffer) Channels() int {
	return b.channels
}

// Rows returns the current number of rows.
func (b *Buffer) Rows() int {
	return len(b.samples) / b.channels
}

// Grow ensures capacity is at least rows, preserving existing data.
// If the current capacity is already >= rows this is a no-op.
func (b *Buffer) Grow(rows int) {
	n := rows * b.channels
	if n <= cap(b.samples) {
		return
	}
	grown := make([]float32, len(b.samples), n)
	copy(grown, b.samples)
	b.samples = grown
}

// Reset empties the buffer and switches it to the given channel count,
// keeping the backing array.
func (b *Buffer) Reset(channels int) {
	if channels < 1 {
		channels = 1
	}
	b.channels = channels
	b.samples = b.samples[:0]
}

// AppendRows appends interleaved rows from src. src must hold a whole number
// of rows; a trailing partial row is ignored.
func (b *Buffer) AppendRows(src []float32) {
	n := len(src) / b.channels * b.channels
	b.Grow(b.Rows() + n/b.channels)
	b.samples = append(b.samples, src[:n]...)
}

// Tail returns a view of the last rows rows (all rows if fewer are held).
func (b *Buffer) Tail(rows int) []float32 {
	if rows < 0 {
		rows = 0
	}
	if r := b.Rows(); rows > r {
		rows = r
	}
	return b.samples[len(b.samples)-rows*b.channels:]
}

// KeepTail discards everything except the last rows rows, moving them to the
// front of the buffer.
func (b *Buffer) KeepTail(rows int) {
	tail := b.Tail(rows)
	n := copy(b.samples, tail)
	b.samples = b.samples[:n]
}
