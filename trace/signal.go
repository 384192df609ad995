// Package trace holds the dense multichannel sample matrix that the
// detection engines operate on.
package trace

import (
	"fmt"

	"github.com/cwbudde/algo-spike/dsp/core"
	"github.com/cwbudde/algo-spike/errs"
)

// Errors returned by trace constructors.
var (
	ErrInvalidChannels = fmt.Errorf("%w: trace: channel count must be positive", errs.ErrInvalidArgument)
	ErrRaggedData      = fmt.Errorf("%w: trace: sample count is not a multiple of the channel count", errs.ErrInvalidArgument)
	ErrNaNSample       = fmt.Errorf("%w: trace: NaN sample", errs.ErrInvalidArgument)
)

// Signal is a row-major (sample-major) T×C matrix of float32 samples:
// sample t of channel c lives at Data[t*Channels+c].
//
// A Signal is treated as immutable while an engine processes it.
type Signal struct {
	Data     []float32
	Channels int
}

// NewSignal wraps interleaved data holding channels values per sample.
func NewSignal(data []float32, channels int) (Signal, error) {
	if channels <= 0 {
		return Signal{}, ErrInvalidChannels
	}
	if len(data)%channels != 0 {
		return Signal{}, fmt.Errorf("%w: %d values, %d channels", ErrRaggedData, len(data), channels)
	}
	return Signal{Data: data, Channels: channels}, nil
}

// FromChannels builds a Signal from per-channel sample slices of equal length.
func FromChannels(channels ...[]float32) (Signal, error) {
	if len(channels) == 0 {
		return Signal{}, ErrInvalidChannels
	}
	n := len(channels[0])
	for c, ch := range channels {
		if len(ch) != n {
			return Signal{}, fmt.Errorf("%w: channel %d has %d samples, want %d", ErrRaggedData, c, len(ch), n)
		}
	}
	data := make([]float32, n*len(channels))
	for c, ch := range channels {
		for t, v := range ch {
			data[t*len(channels)+c] = v
		}
	}
	return Signal{Data: data, Channels: len(channels)}, nil
}

// Samples returns the number of rows T.
func (s Signal) Samples() int {
	if s.Channels <= 0 {
		return 0
	}
	return len(s.Data) / s.Channels
}

// At returns sample t of channel c.
func (s Signal) At(t, c int) float32 {
	return s.Data[t*s.Channels+c]
}

// Row returns the C values of sample t.
func (s Signal) Row(t int) []float32 {
	return s.Data[t*s.Channels : (t+1)*s.Channels]
}

// Channel returns a copy of channel c as a contiguous slice.
func (s Signal) Channel(c int) []float32 {
	out := make([]float32, s.Samples())
	for t := range out {
		out[t] = s.Data[t*s.Channels+c]
	}
	return out
}

// Slice returns rows [from, to) as a Signal sharing the same backing data.
func (s Signal) Slice(from, to int) Signal {
	return Signal{Data: s.Data[from*s.Channels : to*s.Channels], Channels: s.Channels}
}

// Negate returns a copy of s with every sample sign-flipped.
func (s Signal) Negate() Signal {
	out := make([]float32, len(s.Data))
	for i, v := range s.Data {
		out[i] = -v
	}
	return Signal{Data: out, Channels: s.Channels}
}

// Validate checks the shape invariants and rejects NaN samples, which are
// unordered and cannot take part in dominance comparisons.
func (s Signal) Validate() error {
	if s.Channels <= 0 {
		return ErrInvalidChannels
	}
	if len(s.Data)%s.Channels != 0 {
		return fmt.Errorf("%w: %d values, %d channels", ErrRaggedData, len(s.Data), s.Channels)
	}
	if i := core.IndexNaN(s.Data); i >= 0 {
		return fmt.Errorf("%w: sample %d channel %d", ErrNaNSample, i/s.Channels, i%s.Channels)
	}
	return nil
}
