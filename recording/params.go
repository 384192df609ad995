package recording

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/cwbudde/algo-spike/dsp/core"
	"github.com/cwbudde/algo-spike/errs"
)

// ParamsFile is the parameter record name inside a recording folder.
const ParamsFile = "binary.json"

// Errors returned by LoadParams.
var (
	ErrMalformedParams = fmt.Errorf("%w: recording: malformed parameter record", errs.ErrDataShapeMismatch)
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Params describes a raw binary recording.
type Params struct {
	SamplingFrequency float64  `json:"sampling_frequency"`
	NumChannels       int      `json:"num_channels"`
	FilePaths         []string `json:"file_paths"`
}

type paramsRecord struct {
	Kwargs *Params `json:"kwargs"`
}

// LoadParams parses a record of the form
//
//	{"kwargs": {"sampling_frequency": 30000.0, "num_channels": 384, "file_paths": ["traces.raw"]}}
func LoadParams(r io.Reader) (Params, error) {
	var rec paramsRecord
	if err := json.NewDecoder(r).Decode(&rec); err != nil {
		return Params{}, fmt.Errorf("%w: %v", ErrMalformedParams, err)
	}
	if rec.Kwargs == nil {
		return Params{}, fmt.Errorf("%w: missing kwargs", ErrMalformedParams)
	}
	p := *rec.Kwargs
	if !(p.SamplingFrequency > 0) {
		return Params{}, fmt.Errorf("%w: sampling_frequency %v", ErrMalformedParams, p.SamplingFrequency)
	}
	if p.NumChannels <= 0 {
		return Params{}, fmt.Errorf("%w: num_channels %d", ErrMalformedParams, p.NumChannels)
	}
	return p, nil
}

// LoadParamsDir reads ParamsFile from dir. Relative file paths in the record
// are resolved against dir.
func LoadParamsDir(dir string) (Params, error) {
	f, err := os.Open(filepath.Join(dir, ParamsFile))
	if err != nil {
		return Params{}, fmt.Errorf("%w: %w", ErrOpenFailed, err)
	}
	defer f.Close()

	p, err := LoadParams(f)
	if err != nil {
		return Params{}, err
	}
	for i, path := range p.FilePaths {
		if !filepath.IsAbs(path) {
			p.FilePaths[i] = filepath.Join(dir, path)
		}
	}
	return p, nil
}

// ExclusionWindow converts an exclusion sweep in milliseconds to samples at
// the recording's sampling frequency.
func (p Params) ExclusionWindow(ms float64) int {
	return core.MsToSamples(ms, p.SamplingFrequency)
}
