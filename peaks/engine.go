package peaks

import (
	"fmt"
	"strings"

	"github.com/cwbudde/algo-spike/probe"
	"github.com/cwbudde/algo-spike/threshold"
	"github.com/cwbudde/algo-spike/trace"
)

// Engine finds locally exclusive peaks in one chunk of samples.
type Engine interface {
	// Detect returns the peaks of sig sorted by (Sample, Channel).
	Detect(sig trace.Signal) ([]Event, error)
}

// Kind names an Engine implementation.
type Kind int

// Engine kinds.
const (
	KindStreaming Kind = iota + 1
	KindBatch
)

// ParseKind accepts "streaming" and "batch" (case-insensitive).
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "streaming":
		return KindStreaming, nil
	case "batch":
		return KindBatch, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownEngine, s)
}

// String returns the token accepted by ParseKind.
func (k Kind) String() string {
	switch k {
	case KindStreaming:
		return "streaming"
	case KindBatch:
		return "batch"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// New constructs an engine of the given kind.
func New(kind Kind, graph *probe.Graph, thresholds threshold.Set, opts ...Option) (Engine, error) {
	switch kind {
	case KindStreaming:
		return NewStreaming(graph, thresholds, opts...)
	case KindBatch:
		return NewBatch(graph, thresholds, opts...)
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownEngine, kind)
}

// Detect runs a one-off streaming detection over sig.
func Detect(sig trace.Signal, graph *probe.Graph, thresholds threshold.Set, opts ...Option) ([]Event, error) {
	e, err := NewStreaming(graph, thresholds, opts...)
	if err != nil {
		return nil, err
	}
	return e.Detect(sig)
}

// params is the validated, immutable input shared by both engines.
type params struct {
	graph      *probe.Graph
	thresholds []float64
	cfg        Config
}

func newParams(graph *probe.Graph, thresholds threshold.Set, opts []Option) (params, error) {
	if graph == nil {
		return params{}, ErrNilGraph
	}
	if err := thresholds.CheckChannels(graph.Len()); err != nil {
		return params{}, fmt.Errorf("peaks: %w", err)
	}
	cfg := ApplyOptions(opts...)
	if err := cfg.Validate(); err != nil {
		return params{}, err
	}
	return params{
		graph:      graph,
		thresholds: thresholds.Values(),
		cfg:        cfg,
	}, nil
}

// Config returns the validated run configuration.
func (p params) Config() Config {
	return p.cfg
}

// prepare validates sig against the graph. skip is true when sig cannot
// contain a peak: it is empty or shorter than two full windows.
func (p params) prepare(sig trace.Signal) (skip bool, err error) {
	if len(sig.Data) == 0 {
		return true, nil
	}
	if sig.Channels != p.graph.Len() {
		return false, fmt.Errorf("%w: signal has %d, graph has %d", ErrChannelMismatch, sig.Channels, p.graph.Len())
	}
	if err := sig.Validate(); err != nil {
		return false, err
	}
	return sig.Samples() <= 2*p.cfg.Window, nil
}

// crosses reports whether the polarity-adjusted value v exceeds the threshold
// of channel c.
func (p params) crosses(v float32, c int) bool {
	return float64(v) > p.thresholds[c]
}
