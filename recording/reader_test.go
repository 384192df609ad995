package recording

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spike/errs"
)

func encode(values ...float32) []byte {
	out := make([]byte, 0, len(values)*4)
	for _, v := range values {
		out = binary.LittleEndian.AppendUint32(out, math.Float32bits(v))
	}
	return out
}

func ramp(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(i)
	}
	return out
}

func TestChunkReaderSplitsStream(t *testing.T) {
	// 7 samples x 2 channels, chunks of 3 samples.
	data := ramp(14)
	cr, err := NewChunkReader(bytes.NewReader(encode(data...)), 2, 3)
	require.NoError(t, err)

	var starts []int
	var got []float32
	for {
		chunk, err := cr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Equal(t, 2, chunk.Signal.Channels)
		starts = append(starts, chunk.Start)
		got = append(got, chunk.Signal.Data...)
	}

	assert.Equal(t, []int{0, 3, 6}, starts)
	assert.Equal(t, data, got)
	assert.Equal(t, int64(14*4), cr.BytesRead())

	_, err = cr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestChunkReaderExactMultiple(t *testing.T) {
	cr, err := NewChunkReader(bytes.NewReader(encode(ramp(8)...)), 2, 2)
	require.NoError(t, err)

	for i := range 2 {
		chunk, err := cr.Next()
		require.NoError(t, err)
		assert.Equal(t, 2*i, chunk.Start)
		assert.Equal(t, 2, chunk.Signal.Samples())
	}
	_, err = cr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestChunkReaderEmptyStream(t *testing.T) {
	cr, err := NewChunkReader(bytes.NewReader(nil), 4, 10)
	require.NoError(t, err)
	_, err = cr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestChunkReaderTrailingBytes(t *testing.T) {
	raw := append(encode(1, 2, 3, 4), 0xff, 0x00)
	cr, err := NewChunkReader(bytes.NewReader(raw), 2, 8)
	require.NoError(t, err)

	chunk, err := cr.Next()
	require.NoError(t, err)
	assert.Equal(t, 0, chunk.Start)
	assert.Equal(t, []float32{1, 2, 3, 4}, chunk.Signal.Data)

	_, err = cr.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTrailingBytes)
	assert.ErrorIs(t, err, errs.ErrDataShapeMismatch)
	assert.Contains(t, err.Error(), "after sample 2")

	_, err = cr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestChunkReaderTrailingBytesAfterFullChunk(t *testing.T) {
	// Two full chunks of one row each, then half a row.
	raw := append(encode(1, 2, 3, 4), 0x01, 0x02, 0x03, 0x04)
	cr, err := NewChunkReader(bytes.NewReader(raw), 2, 1)
	require.NoError(t, err)

	for _, want := range [][]float32{{1, 2}, {3, 4}} {
		chunk, err := cr.Next()
		require.NoError(t, err)
		assert.Equal(t, want, chunk.Signal.Data)
	}
	_, err = cr.Next()
	assert.ErrorIs(t, err, ErrTrailingBytes)
	_, err = cr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestChunkReaderOnlyPartialRow(t *testing.T) {
	cr, err := NewChunkReader(bytes.NewReader(encode(7)), 2, 8)
	require.NoError(t, err)

	_, err = cr.Next()
	assert.ErrorIs(t, err, ErrTrailingBytes)
	_, err = cr.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestChunkReaderPartialRowIsShapeMismatch(t *testing.T) {
	// 5 values over 2 channels leaves half a sample.
	cr, err := NewChunkReader(bytes.NewReader(encode(1, 2, 3, 4, 5)), 2, 8)
	require.NoError(t, err)
	chunk, err := cr.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, chunk.Signal.Samples())
	_, err = cr.Next()
	assert.ErrorIs(t, err, errs.ErrDataShapeMismatch)
}

func TestChunkReaderReadFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	cr, err := NewChunkReader(iotest.ErrReader(boom), 2, 4)
	require.NoError(t, err)

	_, err = cr.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrIOFailure)
	assert.ErrorIs(t, err, boom)
}

func TestNewChunkReaderRejectsBadShape(t *testing.T) {
	for _, tc := range []struct{ channels, rows int }{{0, 10}, {4, 0}, {-1, 5}} {
		_, err := NewChunkReader(bytes.NewReader(nil), tc.channels, tc.rows)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument, "channels=%d rows=%d", tc.channels, tc.rows)
	}
}

func TestOpenChunkReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "traces.raw")
	require.NoError(t, os.WriteFile(path, encode(ramp(6)...), 0o600))

	cr, err := OpenChunkReader(path, 3, 100)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, cr.Close()) })

	chunk, err := cr.Next()
	require.NoError(t, err)
	assert.Equal(t, 2, chunk.Signal.Samples())
	assert.Equal(t, float32(4), chunk.Signal.At(1, 1))
}

func TestOpenChunkReaderMissingFile(t *testing.T) {
	_, err := OpenChunkReader(filepath.Join(t.TempDir(), "nope.raw"), 2, 2)
	assert.ErrorIs(t, err, errs.ErrIOFailure)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
