// Package peakstats summarizes detected peaks per channel: counts, firing
// rates, amplitude moments and inter-peak intervals.
package peakstats

import (
	"math"

	"github.com/cwbudde/algo-spike/dsp/core"
	"github.com/cwbudde/algo-spike/peaks"
)

// Channel holds the statistics of one channel's peaks.
type Channel struct {
	Channel int
	Count   int
	Rate    float64 // peaks per second, 0 without a sample rate

	MeanAmplitude float64
	StdAmplitude  float64
	RMSAmplitude  float64
	MinAmplitude  float64
	MinSample     int
	MaxAmplitude  float64
	MaxSample     int

	FirstSample int
	LastSample  int
	MeanISI     float64 // mean inter-peak interval in samples, 0 below two peaks
}

// Summary aggregates all channels.
type Summary struct {
	Samples  int
	Duration float64 // seconds
	Total    int
	Rate     float64 // peaks per second over all channels
	Channels []Channel
	Busiest  int // channel with the most peaks, -1 if none
}

type accumulator struct {
	n      int
	mean   float64
	m2     float64
	sumSq  float64
	minVal float64
	minPos int
	maxVal float64
	maxPos int
	first  int
	last   int
}

func (a *accumulator) add(sample int, x float64) {
	a.n++
	ni := float64(a.n)

	delta := x - a.mean
	deltaN := delta / ni
	a.m2 += delta * deltaN * float64(a.n-1)
	a.mean += deltaN
	a.sumSq += x * x

	if a.n == 1 {
		a.minVal, a.minPos = x, sample
		a.maxVal, a.maxPos = x, sample
		a.first = sample
	} else {
		if x < a.minVal {
			a.minVal, a.minPos = x, sample
		}
		if x > a.maxVal {
			a.maxVal, a.maxPos = x, sample
		}
	}
	a.last = sample
}

func (a *accumulator) result(channel int, seconds float64) Channel {
	out := Channel{Channel: channel, Count: a.n}
	if a.n == 0 {
		return out
	}
	nf := float64(a.n)
	out.MeanAmplitude = a.mean
	out.StdAmplitude = math.Sqrt(a.m2 / nf)
	out.RMSAmplitude = math.Sqrt(a.sumSq / nf)
	out.MinAmplitude, out.MinSample = a.minVal, a.minPos
	out.MaxAmplitude, out.MaxSample = a.maxVal, a.maxPos
	out.FirstSample, out.LastSample = a.first, a.last
	if a.n > 1 {
		out.MeanISI = float64(a.last-a.first) / float64(a.n-1)
	}
	if seconds > 0 {
		out.Rate = nf / seconds
	}
	return out
}

// Accumulator collects statistics across successive batches of events, such
// as the output of consecutive pipeline runs over one recording. Events must
// arrive in sample order per channel.
type Accumulator struct {
	channels []accumulator
	samples  int
}

// NewAccumulator returns an Accumulator for the given channel count.
func NewAccumulator(channels int) *Accumulator {
	return &Accumulator{channels: make([]accumulator, max(channels, 0))}
}

// Update adds events. Events on channels outside [0, channels) are ignored.
func (a *Accumulator) Update(events []peaks.Event) {
	for _, e := range events {
		if e.Channel < 0 || e.Channel >= len(a.channels) {
			continue
		}
		a.channels[e.Channel].add(e.Sample, float64(e.Amplitude))
	}
}

// AddSamples extends the observed recording length.
func (a *Accumulator) AddSamples(n int) {
	a.samples += n
}

// Result computes the summary. sampleRate may be 0 when unknown, in which
// case all rates are 0.
func (a *Accumulator) Result(sampleRate float64) Summary {
	seconds := core.SamplesToSeconds(a.samples, sampleRate)
	s := Summary{
		Samples:  a.samples,
		Duration: seconds,
		Channels: make([]Channel, len(a.channels)),
		Busiest:  -1,
	}
	busiest := 0
	for c := range a.channels {
		ch := a.channels[c].result(c, seconds)
		s.Channels[c] = ch
		s.Total += ch.Count
		if ch.Count > busiest {
			busiest = ch.Count
			s.Busiest = c
		}
	}
	if seconds > 0 {
		s.Rate = float64(s.Total) / seconds
	}
	return s
}

// Reset clears all accumulated data.
func (a *Accumulator) Reset() {
	clear(a.channels)
	a.samples = 0
}

// Summarize computes statistics for events detected in a recording of
// samples samples over channels channels.
func Summarize(events []peaks.Event, channels, samples int, sampleRate float64) Summary {
	a := NewAccumulator(channels)
	a.Update(events)
	a.AddSamples(samples)
	return a.Result(sampleRate)
}
