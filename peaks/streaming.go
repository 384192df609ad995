package peaks

import (
	"github.com/cwbudde/algo-spike/dsp/core"
	"github.com/cwbudde/algo-spike/probe"
	"github.com/cwbudde/algo-spike/threshold"
	"github.com/cwbudde/algo-spike/trace"
)

// Streaming is the linear-time engine. It makes one left-to-right pass per
// polarity and keeps, for every channel, a monotonic deque of sample indices
// over the trailing W+1 samples whose front is the window maximum.
//
// At step t the deques are first trimmed to [t-W, t-1]; their fronts give
// the preceding-window maximum of every neighbor, which decides whether a
// threshold crossing at t can open a candidate. After t is pushed the deques
// cover [t-W, t], which is exactly the same-sample plus following window of
// the candidate opened W steps earlier, so that candidate is confirmed or
// dropped there. Each channel has at most one open candidate: a newer
// crossing can only open by beating the older one, which it then defeats.
//
// Total cost is O(T·C) for deque upkeep plus O(D) per threshold crossing.
//
// A Streaming engine reuses its scratch arrays across calls and must not be
// shared between goroutines.
type Streaming struct {
	params

	deques dequeArena
	// open[c] is the sample of channel c's undefeated candidate while
	// possible[c] is set.
	open     []int
	possible []bool
}

// NewStreaming validates the inputs and returns a Streaming engine.
func NewStreaming(graph *probe.Graph, thresholds threshold.Set, opts ...Option) (*Streaming, error) {
	p, err := newParams(graph, thresholds, opts)
	if err != nil {
		return nil, err
	}
	return &Streaming{params: p}, nil
}

// Detect implements Engine.
func (e *Streaming) Detect(sig trace.Signal) ([]Event, error) {
	skip, err := e.prepare(sig)
	if err != nil {
		return nil, err
	}
	if skip {
		return []Event{}, nil
	}

	var col Collector
	for _, s := range e.cfg.Sign.polarities() {
		e.scan(sig, s, &col)
	}
	return col.Events(), nil
}

func (e *Streaming) scan(sig trace.Signal, s float32, col *Collector) {
	data, nch := sig.Data, sig.Channels
	w := e.cfg.Window
	n := sig.Samples()
	dq := &e.deques

	dq.reset(nch, w+1)
	e.open = core.EnsureLen(e.open, nch)
	e.possible = core.Fill(e.possible, nch, false)

	for t := 0; t < n; t++ {
		row := data[t*nch : (t+1)*nch]

		for c := 0; c < nch; c++ {
			for dq.len(c) > 0 && dq.front(c) < t-w {
				dq.popFront(c)
			}
		}

		if t >= w && t < n-w {
			for c, raw := range row {
				v := s * raw
				if !e.crosses(v, c) || !e.beatsPreceding(data, nch, s, c, v) {
					continue
				}
				e.open[c] = t
				e.possible[c] = true
				e.defeatNeighbors(data, nch, s, c, v)
			}
		}

		for c, raw := range row {
			v := s * raw
			for dq.len(c) > 0 && s*data[dq.back(c)*nch+c] <= v {
				dq.popBack(c)
			}
			dq.pushBack(c, t)
		}

		if at := t - w; at >= w {
			for c := 0; c < nch; c++ {
				if !e.possible[c] || e.open[c] != at {
					continue
				}
				e.possible[c] = false
				raw := data[at*nch+c]
				if e.holdsFollowing(data, nch, s, c, s*raw) {
					col.Add(Event{Sample: at, Channel: c, Amplitude: raw})
				}
			}
		}
	}
}

// beatsPreceding reports whether v is strictly above every neighbor's
// maximum over the trailing window currently held in the deques.
func (e *Streaming) beatsPreceding(data []float32, nch int, s float32, c int, v float32) bool {
	dq := &e.deques
	for _, k := range e.graph.Neighbors(c) {
		if dq.len(k) > 0 && s*data[dq.front(k)*nch+k] >= v {
			return false
		}
	}
	return true
}

// holdsFollowing reports whether v is at least every neighbor's maximum over
// the window held in the deques.
func (e *Streaming) holdsFollowing(data []float32, nch int, s float32, c int, v float32) bool {
	dq := &e.deques
	for _, k := range e.graph.Neighbors(c) {
		if dq.len(k) > 0 && s*data[dq.front(k)*nch+k] > v {
			return false
		}
	}
	return true
}

// defeatNeighbors clears the open candidates of neighbors that a new
// candidate of value v strictly exceeds; v falls inside their same-sample or
// following window.
func (e *Streaming) defeatNeighbors(data []float32, nch int, s float32, c int, v float32) {
	for _, k := range e.graph.Neighbors(c) {
		if k == c || !e.possible[k] {
			continue
		}
		if s*data[e.open[k]*nch+k] < v {
			e.possible[k] = false
		}
	}
}
