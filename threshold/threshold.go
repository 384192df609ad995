// Package threshold holds per-channel absolute detection thresholds.
//
// Thresholds are derived from an externally estimated noise level per
// channel scaled by a detection multiplier:
//
//	threshold[c] = noise[c] * multiplier[c]
//
// Noise estimation itself is outside this module; callers inject it.
package threshold

import (
	"fmt"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-spike/dsp/core"
	"github.com/cwbudde/algo-spike/errs"
)

// Errors returned by Set constructors.
var (
	ErrNonPositive       = fmt.Errorf("%w: threshold: values must be positive and finite", errs.ErrInvalidArgument)
	ErrLengthMismatch    = fmt.Errorf("%w: threshold: length does not match channel count", errs.ErrInvalidArgument)
	ErrInvalidMultiplier = fmt.Errorf("%w: threshold: multiplier must be positive and finite", errs.ErrInvalidArgument)
)

// Set is an immutable vector of positive per-channel thresholds.
// The zero value is an empty set.
type Set struct {
	values []float64
}

// New copies values into a Set. Every value must be positive and finite.
func New(values []float64) (Set, error) {
	for c, v := range values {
		if !(v > 0) || !core.IsFinite(v) {
			return Set{}, fmt.Errorf("%w: channel %d = %v", ErrNonPositive, c, v)
		}
	}
	out := make([]float64, len(values))
	copy(out, values)
	return Set{values: out}, nil
}

// Uniform returns a Set of n identical thresholds.
func Uniform(n int, value float64) (Set, error) {
	return New(core.Fill[float64](nil, n, value))
}

// FromNoise scales every channel's noise level by the same multiplier.
func FromNoise(noise []float64, multiplier float64) (Set, error) {
	if !(multiplier > 0) || !core.IsFinite(multiplier) {
		return Set{}, fmt.Errorf("%w: %v", ErrInvalidMultiplier, multiplier)
	}
	multipliers := core.Fill[float64](nil, len(noise), multiplier)
	return FromNoisePerChannel(noise, multipliers)
}

// FromNoisePerChannel scales each channel's noise level by its own
// multiplier.
func FromNoisePerChannel(noise, multipliers []float64) (Set, error) {
	if len(noise) != len(multipliers) {
		return Set{}, fmt.Errorf("%w: %d noise levels, %d multipliers", ErrLengthMismatch, len(noise), len(multipliers))
	}
	values := make([]float64, len(noise))
	vecmath.MulBlock(values, noise, multipliers)

	s, err := New(values)
	if err != nil {
		return Set{}, fmt.Errorf("threshold from noise: %w", err)
	}
	return s, nil
}

// Len returns the number of channels.
func (s Set) Len() int {
	return len(s.values)
}

// At returns the threshold of channel c.
func (s Set) At(c int) float64 {
	return s.values[c]
}

// Values returns a copy of the thresholds.
func (s Set) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// CheckChannels returns ErrLengthMismatch unless the set covers exactly n
// channels.
func (s Set) CheckChannels(n int) error {
	if len(s.values) != n {
		return fmt.Errorf("%w: %d thresholds, %d channels", ErrLengthMismatch, len(s.values), n)
	}
	return nil
}
