package core

// Sample is the element type of sample buffers handled by this module.
type Sample interface {
	~float32 | ~float64
}

// EnsureLen returns a slice of length n, reusing buf's backing array when it
// is large enough. Reused elements keep their contents; a fresh allocation is
// zeroed.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Fill returns a slice of length n with every element set to v, reusing buf
// like EnsureLen.
func Fill[T any](buf []T, n int, v T) []T {
	buf = EnsureLen(buf, n)
	for i := range buf {
		buf[i] = v
	}
	return buf
}
