package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/dustin/go-humanize"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/cwbudde/algo-spike/errs"
	"github.com/cwbudde/algo-spike/internal/config"
	"github.com/cwbudde/algo-spike/peaks"
	"github.com/cwbudde/algo-spike/pipeline"
	"github.com/cwbudde/algo-spike/probe"
	"github.com/cwbudde/algo-spike/recording"
	"github.com/cwbudde/algo-spike/stats/peakstats"
)

var errNoRecording = fmt.Errorf("%w: --recording is required", errs.ErrInvalidArgument)

func newRunCmd(load loadFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Detect peaks in a recording and write them as NDJSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := load(cmd)
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runDetection(ctx, cmd, c)
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func runDetection(ctx context.Context, cmd *cobra.Command, c config.Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	switch {
	case c.Recording == "":
		return errNoRecording
	case c.Probe == "":
		return errNoProbe
	}
	sign, err := c.PeakSign()
	if err != nil {
		return err
	}
	kind, err := c.EngineKind()
	if err != nil {
		return err
	}

	log := newLogger(cmd.ErrOrStderr(), c.LogLevel)

	params, err := recording.LoadParamsDir(c.Recording)
	if err != nil {
		return err
	}
	geom, err := probe.LoadGeometryFile(c.Probe)
	if err != nil {
		return err
	}
	if len(geom) != params.NumChannels {
		return fmt.Errorf("%w: probe has %d contacts, recording has %d channels",
			errs.ErrInvalidArgument, len(geom), params.NumChannels)
	}
	graph, err := probe.NewGraph(geom, c.RadiusUm)
	if err != nil {
		return err
	}
	thresholds, err := c.Thresholds(params.NumChannels)
	if err != nil {
		return err
	}
	window := params.ExclusionWindow(c.ExcludeSweepMs)

	log.WithFields(logrus.Fields{
		"channels":    params.NumChannels,
		"fs":          params.SamplingFrequency,
		"window":      window,
		"sign":        sign,
		"engine":      kind,
		"mean_degree": fmt.Sprintf("%.2f", graph.MeanDegree()),
		"segments":    len(params.FilePaths),
	}).Info("starting detection")

	detector, err := pipeline.New(graph, thresholds,
		pipeline.WithEngine(kind),
		pipeline.WithWorkers(c.Workers),
		pipeline.WithLogger(log),
		pipeline.WithPeakOptions(peaks.WithWindow(window), peaks.WithSign(sign)),
	)
	if err != nil {
		return err
	}

	out, err := openPeakWriter(c.Output, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	stats := peakstats.NewAccumulator(params.NumChannels)
	var (
		bytes  int64
		offset int
	)
	for seg, path := range params.FilePaths {
		res, err := detectSegment(ctx, detector, path, params.NumChannels, c.ChunkSize)
		if err != nil {
			_ = out.Close()
			return fmt.Errorf("segment %d (%s): %w", seg, path, err)
		}
		if err := out.write(seg, params.SamplingFrequency, res.Events); err != nil {
			_ = out.Close()
			return err
		}
		stats.Update(shifted(res.Events, offset))
		stats.AddSamples(res.Samples)
		offset += res.Samples
		bytes += res.Bytes
	}
	if err := out.Close(); err != nil {
		return err
	}

	summary := stats.Result(params.SamplingFrequency)
	log.WithFields(logrus.Fields{
		"peaks":    summary.Total,
		"rate_hz":  fmt.Sprintf("%.2f", summary.Rate),
		"duration": fmt.Sprintf("%.1fs", summary.Duration),
		"busiest":  summary.Busiest,
		"read":     humanize.Bytes(uint64(bytes)),
	}).Info("detection complete")
	return nil
}

func detectSegment(ctx context.Context, d *pipeline.Detector, path string, channels, chunk int) (pipeline.Result, error) {
	reader, err := recording.OpenChunkReader(path, channels, chunk)
	if err != nil {
		return pipeline.Result{}, err
	}
	defer reader.Close()
	return d.Run(ctx, reader)
}

// shifted returns events moved by offset samples, for statistics over
// concatenated segments.
func shifted(events []peaks.Event, offset int) []peaks.Event {
	if offset == 0 {
		return events
	}
	out := make([]peaks.Event, len(events))
	for i, e := range events {
		e.Sample += offset
		out[i] = e
	}
	return out
}
