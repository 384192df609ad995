package peaks

import (
	"github.com/cwbudde/algo-spike/probe"
	"github.com/cwbudde/algo-spike/threshold"
	"github.com/cwbudde/algo-spike/trace"
)

// Batch is the exhaustive reference engine. Every threshold crossing in the
// center range is compared against every neighbor over the full exclusion
// window, at a cost of O(T·C·D·W) for mean neighbor degree D.
//
// Batch holds no mutable state and is safe for concurrent use.
type Batch struct {
	params
}

// NewBatch validates the inputs and returns a Batch engine.
func NewBatch(graph *probe.Graph, thresholds threshold.Set, opts ...Option) (*Batch, error) {
	p, err := newParams(graph, thresholds, opts)
	if err != nil {
		return nil, err
	}
	return &Batch{params: p}, nil
}

// Detect implements Engine.
func (b *Batch) Detect(sig trace.Signal) ([]Event, error) {
	skip, err := b.prepare(sig)
	if err != nil {
		return nil, err
	}
	if skip {
		return []Event{}, nil
	}

	var col Collector
	for _, s := range b.cfg.Sign.polarities() {
		b.scan(sig, s, &col)
	}
	return col.Events(), nil
}

func (b *Batch) scan(sig trace.Signal, s float32, col *Collector) {
	data, nch := sig.Data, sig.Channels
	w := b.cfg.Window
	end := sig.Samples() - w

	for c := 0; c < nch; c++ {
		for t := w; t < end; t++ {
			raw := data[t*nch+c]
			v := s * raw
			if !b.crosses(v, c) {
				continue
			}
			if b.dominates(data, nch, s, t, c, v) {
				col.Add(Event{Sample: t, Channel: c, Amplitude: raw})
			}
		}
	}
}

// dominates reports whether v = s·x[t,c] beats every neighbor over the
// exclusion window. The first failing comparison short-circuits.
func (b *Batch) dominates(data []float32, nch int, s float32, t, c int, v float32) bool {
	w := b.cfg.Window
	for _, k := range b.graph.Neighbors(c) {
		if k != c && s*data[t*nch+k] > v {
			return false
		}
		for o := 0; o < w; o++ {
			if s*data[(t-w+o)*nch+k] >= v {
				return false
			}
			if s*data[(t+1+o)*nch+k] > v {
				return false
			}
		}
	}
	return true
}
