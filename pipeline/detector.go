package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime/debug"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-spike/dsp/buffer"
	"github.com/cwbudde/algo-spike/peaks"
	"github.com/cwbudde/algo-spike/probe"
	"github.com/cwbudde/algo-spike/threshold"
	"github.com/cwbudde/algo-spike/trace"
)

// Result summarizes a completed run.
type Result struct {
	RunID   string
	Events  []peaks.Event
	Chunks  int
	Samples int
	Bytes   int64
	Elapsed time.Duration
}

// Detector runs an engine over chunked recordings.
type Detector struct {
	graph      *probe.Graph
	thresholds threshold.Set
	opts       Options
	window     int
	pool       *buffer.Pool
}

// New validates the configuration by building one engine up front.
func New(graph *probe.Graph, thresholds threshold.Set, opts ...Option) (*Detector, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if o.Workers <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidWorkers, o.Workers)
	}
	if o.Logger == nil {
		o.Logger = discardLogger()
	}

	cfg := peaks.ApplyOptions(o.Peaks...)
	if _, err := peaks.New(o.Engine, graph, thresholds, o.Peaks...); err != nil {
		return nil, err
	}

	return &Detector{
		graph:      graph,
		thresholds: thresholds,
		opts:       o,
		window:     cfg.Window,
		pool:       buffer.NewPool(),
	}, nil
}

// Options returns the effective options.
func (d *Detector) Options() Options {
	return d.opts
}

type pass struct {
	index  int
	offset int
	buf    *buffer.Buffer
	events []peaks.Event
}

// Run drains src and returns all peaks in absolute sample coordinates,
// sorted by (Sample, Channel). The first error from the source or from any
// chunk cancels the run.
func (d *Detector) Run(ctx context.Context, src Source) (Result, error) {
	began := time.Now()
	runID := uuid.NewString()
	log := d.opts.Logger.WithField("run", runID)

	engines := make(chan peaks.Engine, d.opts.Workers)
	for range d.opts.Workers {
		e, err := peaks.New(d.opts.Engine, d.graph, d.thresholds, d.opts.Peaks...)
		if err != nil {
			return Result{}, err
		}
		engines <- e
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(d.opts.Workers)

	carryRows := 2 * d.window
	carry := d.pool.Get(d.graph.Len(), carryRows)
	defer d.pool.Put(carry)

	var (
		passes  []*pass
		samples int
		offset  int
		readErr error
	)
	for {
		if err := ctx.Err(); err != nil {
			readErr = err
			break
		}
		chunk, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			readErr = err
			break
		}
		if err := chunk.Signal.Validate(); err != nil {
			readErr = fmt.Errorf("chunk at sample %d: %w", chunk.Start, err)
			break
		}
		if chunk.Signal.Channels != d.graph.Len() {
			readErr = fmt.Errorf("%w: chunk has %d channels, probe has %d",
				peaks.ErrChannelMismatch, chunk.Signal.Channels, d.graph.Len())
			break
		}

		// carry holds the previous tail followed by this chunk; the worker
		// gets its own copy and carry shrinks back to the overlap.
		carry.AppendRows(chunk.Signal.Data)
		buf := d.pool.Get(d.graph.Len(), carry.Rows())
		buf.AppendRows(carry.Samples())

		p := &pass{index: len(passes), offset: offset, buf: buf}
		passes = append(passes, p)
		samples += chunk.Signal.Samples()

		kept := min(carryRows, carry.Rows())
		offset += carry.Rows() - kept
		carry.KeepTail(kept)

		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(logrus.Fields{"chunk": p.index, "panic": r, "stack": string(debug.Stack())}).
						Error("chunk detection panicked")
					err = fmt.Errorf("pipeline: chunk %d panicked: %v", p.index, r)
				}
			}()
			if err := ctx.Err(); err != nil {
				return err
			}
			return d.detect(p, engines, log)
		})
	}

	waitErr := g.Wait()
	// Passes skipped after cancellation still hold their buffers.
	for _, p := range passes {
		if p.buf != nil {
			d.pool.Put(p.buf)
			p.buf = nil
		}
	}
	if waitErr != nil {
		return Result{}, waitErr
	}
	if readErr != nil {
		return Result{}, readErr
	}

	total := 0
	for _, p := range passes {
		total += len(p.events)
	}
	events := make([]peaks.Event, 0, total)
	for _, p := range passes {
		events = append(events, p.events...)
	}

	res := Result{
		RunID:   runID,
		Events:  events,
		Chunks:  len(passes),
		Samples: samples,
		Elapsed: time.Since(began),
	}
	if bc, ok := src.(byteCounter); ok {
		res.Bytes = bc.BytesRead()
	}

	log.WithFields(logrus.Fields{
		"chunks":  res.Chunks,
		"samples": res.Samples,
		"peaks":   len(res.Events),
		"bytes":   humanize.Bytes(uint64(max(res.Bytes, 0))),
		"elapsed": res.Elapsed.Round(time.Millisecond),
	}).Info("detection finished")

	return res, nil
}

func (d *Detector) detect(p *pass, engines chan peaks.Engine, log logrus.FieldLogger) error {
	engine := <-engines
	defer func() {
		engines <- engine
		d.pool.Put(p.buf)
		p.buf = nil
	}()

	sig := trace.Signal{Data: p.buf.Samples(), Channels: p.buf.Channels()}
	found, err := engine.Detect(sig)
	if err != nil {
		return fmt.Errorf("chunk %d at sample %d: %w", p.index, p.offset, err)
	}
	for i := range found {
		found[i].Sample += p.offset
	}
	p.events = found

	log.WithFields(logrus.Fields{
		"chunk": p.index,
		"start": p.offset,
		"rows":  sig.Samples(),
		"peaks": len(found),
	}).Debug("chunk processed")
	return nil
}

// Run is a convenience wrapper that builds a Detector and runs it once.
func Run(ctx context.Context, src Source, graph *probe.Graph, thresholds threshold.Set, opts ...Option) (Result, error) {
	d, err := New(graph, thresholds, opts...)
	if err != nil {
		return Result{}, err
	}
	return d.Run(ctx, src)
}
