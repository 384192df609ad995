package core

import "math"

// MsToSamples converts a duration in milliseconds to a whole number of
// samples at sampleRate, truncating toward zero. Non-positive or non-finite
// inputs yield 0; results beyond the int range saturate at math.MaxInt.
func MsToSamples(ms, sampleRate float64) int {
	if !(ms > 0) || !(sampleRate > 0) || !IsFinite(ms) || !IsFinite(sampleRate) {
		return 0
	}
	n := ms * sampleRate / 1000.0
	if n >= float64(math.MaxInt) {
		return math.MaxInt
	}
	return int(n)
}

// SamplesToSeconds converts a sample count to seconds at sampleRate.
// Returns 0 when sampleRate is not positive.
func SamplesToSeconds(n int, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return float64(n) / sampleRate
}

// IndexNaN returns the index of the first NaN in x, or -1 if there is none.
func IndexNaN[T Sample](x []T) int {
	for i, v := range x {
		if v != v {
			return i
		}
	}
	return -1
}

// IsFinite reports whether x is neither NaN nor ±Inf.
func IsFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
