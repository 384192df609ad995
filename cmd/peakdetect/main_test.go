package main

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-spike/errs"
	"github.com/cwbudde/algo-spike/peaks"
)

const testProbe = `{"probes":[{"contact_positions":[[0,0],[0,20],[0,40],[0,60]]}]}`

// writeRecording writes a 4-channel, 100-sample recording at 10 kHz with a
// single trough on channel 2 at sample 50.
func writeRecording(t *testing.T) (dir, probePath string) {
	t.Helper()
	dir = t.TempDir()

	const samples, channels = 100, 4
	raw := make([]byte, 0, samples*channels*4)
	for s := range samples {
		for c := range channels {
			var v float32
			switch {
			case s == 50 && c == 2:
				v = -20
			case s == 50 && c == 1:
				v = -8
			}
			raw = binary.LittleEndian.AppendUint32(raw, math.Float32bits(v))
		}
	}
	require.NoError(t, os.WriteFile(filepath.Join(dir, "traces.raw"), raw, 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "binary.json"), []byte(
		`{"kwargs":{"sampling_frequency":10000,"num_channels":4,"file_paths":["traces.raw"]}}`), 0o600))

	probePath = filepath.Join(dir, "probe.json")
	require.NoError(t, os.WriteFile(probePath, []byte(testProbe), 0o600))
	return dir, probePath
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err = root.Execute()
	return out.String(), errOut.String(), err
}

func TestRunWritesPeaks(t *testing.T) {
	dir, probePath := writeRecording(t)

	stdout, stderr, err := execute(t, "run",
		"--recording", dir,
		"--probe", probePath,
		"--noise-level", "1",
		"--chunk-size", "16",
		"--workers", "2",
	)
	require.NoError(t, err, stderr)

	var records []peakRecord
	sc := bufio.NewScanner(strings.NewReader(stdout))
	for sc.Scan() {
		var rec peakRecord
		require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
		records = append(records, rec)
	}
	require.NoError(t, sc.Err())

	assert.Equal(t, []peakRecord{{Segment: 0, Sample: 50, Time: 0.005, Channel: 2, Amplitude: -20}}, records)
	assert.Contains(t, stderr, "detection complete")
}

func TestRunWritesFile(t *testing.T) {
	dir, probePath := writeRecording(t)
	outPath := filepath.Join(dir, "peaks.ndjson")

	_, stderr, err := execute(t, "run",
		"--recording", dir, "--probe", probePath,
		"--noise-level", "1", "--sign", "both", "-o", outPath)
	require.NoError(t, err, stderr)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), "\n"))
	assert.Contains(t, string(data), `"channel":2`)
}

func TestRunRequiresNoise(t *testing.T) {
	dir, probePath := writeRecording(t)
	_, _, err := execute(t, "run", "--recording", dir, "--probe", probePath)
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestRunRejectsProbeMismatch(t *testing.T) {
	dir, _ := writeRecording(t)
	small := filepath.Join(dir, "small.json")
	require.NoError(t, os.WriteFile(small, []byte(`{"probes":[{"contact_positions":[[0,0],[0,20]]}]}`), 0o600))

	_, _, err := execute(t, "run", "--recording", dir, "--probe", small, "--noise-level", "1")
	assert.ErrorIs(t, err, errs.ErrInvalidArgument)
}

func TestRunRejectsUnknownSignAndEngine(t *testing.T) {
	dir, probePath := writeRecording(t)
	for _, flag := range [][]string{{"--sign", "sideways"}, {"--engine", "quantum"}} {
		args := append([]string{"run", "--recording", dir, "--probe", probePath, "--noise-level", "1"}, flag...)
		stdout, _, err := execute(t, args...)
		assert.ErrorIs(t, err, errs.ErrInvalidArgument, flag[0])
		assert.Empty(t, stdout, flag[0])
	}
}

func TestRunRejectsOversizedWindow(t *testing.T) {
	dir, probePath := writeRecording(t)
	_, _, err := execute(t, "run", "--recording", dir, "--probe", probePath,
		"--noise-level", "1", "--exclude-sweep-ms", "1e12")
	assert.ErrorIs(t, err, peaks.ErrWindowTooLarge)
}

func TestRunMissingRecording(t *testing.T) {
	_, probePath := writeRecording(t)
	_, _, err := execute(t, "run", "--recording", t.TempDir(), "--probe", probePath, "--noise-level", "1")
	assert.ErrorIs(t, err, errs.ErrIOFailure)
}

func TestNeighborsTable(t *testing.T) {
	_, probePath := writeRecording(t)
	stdout, _, err := execute(t, "neighbors", "--probe", probePath, "--radius-um", "25")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Channel")
	assert.Contains(t, stdout, "0,1,2")
	assert.Contains(t, stdout, "4 channels, radius 25.0 um, mean degree 2.50")
}

func TestConfigDump(t *testing.T) {
	stdout, _, err := execute(t, "config", "--sign", "both", "--noise-level", "4")
	require.NoError(t, err)
	assert.Contains(t, stdout, "sign: both\n")
	assert.Contains(t, stdout, "noise_level: 4\n")
}
