package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/cwbudde/algo-spike/errs"
	"github.com/cwbudde/algo-spike/peaks"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type peakRecord struct {
	Segment   int     `json:"segment"`
	Sample    int     `json:"sample"`
	Time      float64 `json:"time_s"`
	Channel   int     `json:"channel"`
	Amplitude float32 `json:"amplitude"`
}

// peakWriter streams peaks as newline-delimited JSON.
type peakWriter struct {
	bw     *bufio.Writer
	enc    *jsoniter.Encoder
	closer io.Closer
	count  int
}

func openPeakWriter(path string, stdout io.Writer) (*peakWriter, error) {
	if path == "" || path == "-" {
		return newPeakWriter(stdout, nil), nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("%w: create %s: %w", errs.ErrIOFailure, path, err)
	}
	return newPeakWriter(f, f), nil
}

func newPeakWriter(w io.Writer, closer io.Closer) *peakWriter {
	bw := bufio.NewWriter(w)
	return &peakWriter{bw: bw, enc: json.NewEncoder(bw), closer: closer}
}

func (pw *peakWriter) write(segment int, sampleRate float64, events []peaks.Event) error {
	for _, e := range events {
		rec := peakRecord{
			Segment:   segment,
			Sample:    e.Sample,
			Time:      float64(e.Sample) / sampleRate,
			Channel:   e.Channel,
			Amplitude: e.Amplitude,
		}
		if err := pw.enc.Encode(rec); err != nil {
			return fmt.Errorf("%w: write peak: %w", errs.ErrIOFailure, err)
		}
		pw.count++
	}
	return nil
}

func (pw *peakWriter) Close() error {
	err := pw.bw.Flush()
	if pw.closer != nil {
		if cerr := pw.closer.Close(); err == nil {
			err = cerr
		}
	}
	if err != nil {
		return fmt.Errorf("%w: close output: %w", errs.ErrIOFailure, err)
	}
	return nil
}
