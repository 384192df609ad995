package peakstats

import (
	"testing"

	"github.com/cwbudde/algo-spike/peaks"
)

func BenchmarkSummarize(b *testing.B) {
	events := make([]peaks.Event, 100000)
	for i := range events {
		events[i] = peaks.Event{Sample: i * 3, Channel: i % 384, Amplitude: float32(-5 - i%7)}
	}
	b.ReportAllocs()
	for range b.N {
		Summarize(events, 384, 300000, 30000)
	}
}
