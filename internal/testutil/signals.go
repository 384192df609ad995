// Package testutil provides deterministic trace generators and comparison
// helpers shared by the package tests.
package testutil

import (
	"math"
	"math/rand"

	"github.com/cwbudde/algo-spike/probe"
	"github.com/cwbudde/algo-spike/trace"
)

// DeterministicNoise generates interleaved white noise in [-amplitude, amplitude)
// for samples×channels values with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float32, samples, channels int) trace.Signal {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, samples*channels)
	for i := range out {
		out[i] = (rng.Float32()*2 - 1) * amplitude
	}
	return trace.Signal{Data: out, Channels: channels}
}

// QuantizedNoise generates integer-valued noise in [-levels, levels]. The
// small alphabet makes equal values common, which exercises the strict and
// non-strict comparisons of the detectors.
func QuantizedNoise(seed int64, levels, samples, channels int) trace.Signal {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float32, samples*channels)
	for i := range out {
		out[i] = float32(rng.Intn(2*levels+1) - levels)
	}
	return trace.Signal{Data: out, Channels: channels}
}

// Spike adds a triangular waveform of the given peak amplitude and half-width
// centered at sample t on channel c, attenuated by falloff per unit of
// channel distance on the other channels listed in spread.
func Spike(sig trace.Signal, t, c int, amplitude float32, halfWidth int, spread map[int]float32) {
	n := sig.Samples()
	apply := func(ch int, gain float32) {
		for o := -halfWidth; o <= halfWidth; o++ {
			u := t + o
			if u < 0 || u >= n {
				continue
			}
			shape := float32(1)
			if halfWidth > 0 {
				shape = 1 - float32(math.Abs(float64(o)))/float32(halfWidth+1)
			}
			sig.Data[u*sig.Channels+ch] += amplitude * gain * shape
		}
	}
	apply(c, 1)
	for ch, gain := range spread {
		if ch != c {
			apply(ch, gain)
		}
	}
}

// RandomGeometry scatters n contacts uniformly over a width×height area.
func RandomGeometry(seed int64, n int, width, height float64) probe.Geometry {
	rng := rand.New(rand.NewSource(seed))
	g := make(probe.Geometry, n)
	for i := range g {
		g[i] = probe.Position{X: rng.Float64() * width, Y: rng.Float64() * height}
	}
	return g
}

// Ones returns a slice of length n filled with 1.0.
func Ones(n int) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = 1
	}
	return out
}
