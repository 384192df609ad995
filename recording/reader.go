package recording

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/cwbudde/algo-spike/errs"
	"github.com/cwbudde/algo-spike/trace"
)

// Errors returned by ChunkReader.
var (
	ErrInvalidShape   = fmt.Errorf("%w: recording: channel count and chunk size must be positive", errs.ErrInvalidArgument)
	ErrTrailingBytes  = fmt.Errorf("%w: recording: trailing bytes do not form a whole sample", errs.ErrDataShapeMismatch)
	ErrReadFailed     = fmt.Errorf("%w: recording: read failed", errs.ErrIOFailure)
	ErrOpenFailed     = fmt.Errorf("%w: recording: open failed", errs.ErrIOFailure)
	errReaderFinished = errors.New("recording: reader finished")
)

const bytesPerValue = 4

// Chunk is a block of consecutive samples. Start is the index of its first
// sample within the recording.
type Chunk struct {
	Start  int
	Signal trace.Signal
}

// ChunkReader yields consecutive chunks of at most chunkRows samples from a
// raw float32 stream. It is forward-only; restart by opening a new reader.
type ChunkReader struct {
	r         io.Reader
	closer    io.Closer
	channels  int
	chunkRows int

	buf       []byte
	next      int
	bytesRead int64
	err       error
	// pending is returned by the call after the last whole rows.
	pending error
}

// NewChunkReader reads chunks from r.
func NewChunkReader(r io.Reader, channels, chunkRows int) (*ChunkReader, error) {
	if channels <= 0 || chunkRows <= 0 {
		return nil, fmt.Errorf("%w: channels=%d chunk=%d", ErrInvalidShape, channels, chunkRows)
	}
	return &ChunkReader{
		r:         r,
		channels:  channels,
		chunkRows: chunkRows,
		buf:       make([]byte, channels*chunkRows*bytesPerValue),
	}, nil
}

// OpenChunkReader opens the raw file at path. Close releases the file.
func OpenChunkReader(path string, channels, chunkRows int) (*ChunkReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	cr, err := NewChunkReader(f, channels, chunkRows)
	if err != nil {
		f.Close()
		return nil, err
	}
	cr.closer = f
	return cr, nil
}

// Channels returns the number of interleaved channels.
func (cr *ChunkReader) Channels() int {
	return cr.channels
}

// BytesRead returns the number of bytes consumed so far.
func (cr *ChunkReader) BytesRead() int64 {
	return cr.bytesRead
}

// Next returns the next chunk. At end of stream it returns io.EOF; once any
// error has been returned, every later call returns io.EOF as well.
// The last chunk may be shorter than the configured size. A stream ending in
// a partial sample yields its whole rows first and ErrTrailingBytes on the
// following call.
func (cr *ChunkReader) Next() (Chunk, error) {
	if err := cr.pending; err != nil {
		cr.pending = nil
		return Chunk{}, err
	}
	if cr.err != nil {
		return Chunk{}, io.EOF
	}

	n, err := io.ReadFull(cr.r, cr.buf)
	cr.bytesRead += int64(n)
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		cr.err = errReaderFinished
		return Chunk{}, io.EOF
	case errors.Is(err, io.ErrUnexpectedEOF):
		cr.err = errReaderFinished
	default:
		cr.err = err
		return Chunk{}, fmt.Errorf("%w at sample %d: %w", ErrReadFailed, cr.next, err)
	}

	stride := cr.channels * bytesPerValue
	rows := n / stride
	if n%stride != 0 {
		err := fmt.Errorf("%w: %d bytes after sample %d, stride %d",
			ErrTrailingBytes, n%stride, cr.next+rows, stride)
		if rows == 0 {
			return Chunk{}, err
		}
		cr.pending = err
	}

	data := make([]float32, rows*cr.channels)
	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(cr.buf[i*bytesPerValue:]))
	}

	chunk := Chunk{
		Start:  cr.next,
		Signal: trace.Signal{Data: data, Channels: cr.channels},
	}
	cr.next += rows
	return chunk, nil
}

// Close closes the underlying file when the reader was opened by path.
func (cr *ChunkReader) Close() error {
	if cr.closer == nil {
		return nil
	}
	err := cr.closer.Close()
	cr.closer = nil
	return err
}
