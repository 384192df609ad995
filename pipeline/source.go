package pipeline

import (
	"fmt"
	"io"

	"github.com/cwbudde/algo-spike/recording"
	"github.com/cwbudde/algo-spike/trace"
)

// Source yields consecutive chunks of a recording and io.EOF at the end.
// recording.ChunkReader implements it.
type Source interface {
	Next() (recording.Chunk, error)
}

type byteCounter interface {
	BytesRead() int64
}

// SignalSource serves an in-memory signal in fixed-size chunks.
type SignalSource struct {
	sig       trace.Signal
	chunkRows int
	next      int
}

// NewSignalSource splits sig into chunks of chunkRows samples.
func NewSignalSource(sig trace.Signal, chunkRows int) (*SignalSource, error) {
	if chunkRows <= 0 {
		return nil, fmt.Errorf("%w: chunk=%d", recording.ErrInvalidShape, chunkRows)
	}
	if err := sig.Validate(); err != nil {
		return nil, err
	}
	return &SignalSource{sig: sig, chunkRows: chunkRows}, nil
}

// Next implements Source.
func (s *SignalSource) Next() (recording.Chunk, error) {
	total := s.sig.Samples()
	if s.next >= total {
		return recording.Chunk{}, io.EOF
	}
	end := min(s.next+s.chunkRows, total)
	chunk := recording.Chunk{Start: s.next, Signal: s.sig.Slice(s.next, end)}
	s.next = end
	return chunk, nil
}

// BytesRead reports the float32 payload served so far.
func (s *SignalSource) BytesRead() int64 {
	return int64(s.next) * int64(s.sig.Channels) * 4
}
