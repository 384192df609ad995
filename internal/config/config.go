// Package config loads peakdetect settings from flags, PEAKDETECT_*
// environment variables and an optional YAML or JSON file, in that order of
// precedence.
package config

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/cwbudde/algo-spike/dsp/core"
	"github.com/cwbudde/algo-spike/errs"
	"github.com/cwbudde/algo-spike/peaks"
	"github.com/cwbudde/algo-spike/threshold"
)

// EnvPrefix prefixes every environment variable the loader consults.
const EnvPrefix = "PEAKDETECT"

// Errors returned by Validate and the derivation helpers.
var (
	ErrMissingNoise  = fmt.Errorf("%w: config: noise_level or noise_levels is required", errs.ErrInvalidArgument)
	ErrInvalidValue  = fmt.Errorf("%w: config: invalid value", errs.ErrInvalidArgument)
	ErrReadConfig    = fmt.Errorf("%w: config: cannot read config file", errs.ErrIOFailure)
	ErrNoiseChannels = fmt.Errorf("%w: config: noise_levels length does not match channel count", errs.ErrInvalidArgument)
)

// Config is the effective peakdetect configuration.
type Config struct {
	Sign            string    `mapstructure:"sign" yaml:"sign"`
	DetectThreshold float64   `mapstructure:"detect_threshold" yaml:"detect_threshold"`
	ExcludeSweepMs  float64   `mapstructure:"exclude_sweep_ms" yaml:"exclude_sweep_ms"`
	RadiusUm        float64   `mapstructure:"radius_um" yaml:"radius_um"`
	NoiseLevel      float64   `mapstructure:"noise_level" yaml:"noise_level,omitempty"`
	NoiseLevels     []float64 `mapstructure:"noise_levels" yaml:"noise_levels,omitempty"`
	ChunkSize       int       `mapstructure:"chunk_size" yaml:"chunk_size"`
	Workers         int       `mapstructure:"workers" yaml:"workers"`
	Engine          string    `mapstructure:"engine" yaml:"engine"`
	Probe           string    `mapstructure:"probe" yaml:"probe,omitempty"`
	Recording       string    `mapstructure:"recording" yaml:"recording,omitempty"`
	Output          string    `mapstructure:"output" yaml:"output"`
	LogLevel        string    `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the built-in defaults. Noise is left unset.
func Default() Config {
	return Config{
		Sign:            "neg",
		DetectThreshold: 5,
		ExcludeSweepMs:  0.5,
		RadiusUm:        50,
		ChunkSize:       30000,
		Workers:         runtime.GOMAXPROCS(0),
		Engine:          "streaming",
		Output:          "-",
		LogLevel:        "info",
	}
}

// flag name -> config key
var flagKeys = map[string]string{
	"sign":             "sign",
	"detect-threshold": "detect_threshold",
	"exclude-sweep-ms": "exclude_sweep_ms",
	"radius-um":        "radius_um",
	"noise-level":      "noise_level",
	"noise-levels":     "noise_levels",
	"chunk-size":       "chunk_size",
	"workers":          "workers",
	"engine":           "engine",
	"probe":            "probe",
	"recording":        "recording",
	"output":           "output",
	"log-level":        "log_level",
}

// RegisterFlags adds every configuration flag to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	d := Default()
	fs.String("sign", d.Sign, "peak polarity: pos, neg or both")
	fs.Float64("detect-threshold", d.DetectThreshold, "threshold as a multiple of the channel noise level")
	fs.Float64("exclude-sweep-ms", d.ExcludeSweepMs, "temporal exclusion half-window in milliseconds")
	fs.Float64("radius-um", d.RadiusUm, "spatial neighborhood radius in micrometers")
	fs.Float64("noise-level", 0, "noise level shared by all channels")
	fs.StringSlice("noise-levels", nil, "per-channel noise levels, comma separated")
	fs.Int("chunk-size", d.ChunkSize, "samples per processing chunk")
	fs.Int("workers", d.Workers, "chunks detected concurrently")
	fs.String("engine", d.Engine, "detection engine: streaming or batch")
	fs.String("probe", d.Probe, "probe geometry JSON file")
	fs.String("recording", d.Recording, "recording folder containing binary.json")
	fs.StringP("output", "o", d.Output, "output NDJSON file, - for stdout")
	fs.String("log-level", d.LogLevel, "log level: debug, info, warn, error")
}

// Load merges defaults, the config file at path (if not empty), environment
// variables and the flags registered on fs.
func Load(v *viper.Viper, fs *pflag.FlagSet, path string) (Config, error) {
	d := Default()
	v.SetDefault("sign", d.Sign)
	v.SetDefault("detect_threshold", d.DetectThreshold)
	v.SetDefault("exclude_sweep_ms", d.ExcludeSweepMs)
	v.SetDefault("radius_um", d.RadiusUm)
	v.SetDefault("noise_level", 0.0)
	v.SetDefault("noise_levels", []float64{})
	v.SetDefault("chunk_size", d.ChunkSize)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("engine", d.Engine)
	v.SetDefault("probe", d.Probe)
	v.SetDefault("recording", d.Recording)
	v.SetDefault("output", d.Output)
	v.SetDefault("log_level", d.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if fs != nil {
		for name, key := range flagKeys {
			if f := fs.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("%w: bind %s: %v", ErrInvalidValue, name, err)
				}
			}
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", ErrReadConfig, path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}
	return c, nil
}

// Validate checks every field that does not need the recording.
func (c Config) Validate() error {
	if _, err := c.PeakSign(); err != nil {
		return err
	}
	if _, err := c.EngineKind(); err != nil {
		return err
	}
	switch {
	case !(c.DetectThreshold > 0):
		return fmt.Errorf("%w: detect_threshold %v", ErrInvalidValue, c.DetectThreshold)
	case c.ExcludeSweepMs < 0 || !core.IsFinite(c.ExcludeSweepMs):
		return fmt.Errorf("%w: exclude_sweep_ms %v", ErrInvalidValue, c.ExcludeSweepMs)
	case c.RadiusUm < 0:
		return fmt.Errorf("%w: radius_um %v", ErrInvalidValue, c.RadiusUm)
	case c.ChunkSize <= 0:
		return fmt.Errorf("%w: chunk_size %d", ErrInvalidValue, c.ChunkSize)
	case c.Workers <= 0:
		return fmt.Errorf("%w: workers %d", ErrInvalidValue, c.Workers)
	case c.NoiseLevel < 0:
		return fmt.Errorf("%w: noise_level %v", ErrInvalidValue, c.NoiseLevel)
	case c.NoiseLevel == 0 && len(c.NoiseLevels) == 0:
		return ErrMissingNoise
	}
	return nil
}

// PeakSign parses Sign.
func (c Config) PeakSign() (peaks.Sign, error) {
	return peaks.ParseSign(c.Sign)
}

// EngineKind parses Engine.
func (c Config) EngineKind() (peaks.Kind, error) {
	return peaks.ParseKind(c.Engine)
}

// Thresholds derives per-channel thresholds as DetectThreshold times the
// noise level. NoiseLevels takes precedence over NoiseLevel.
func (c Config) Thresholds(channels int) (threshold.Set, error) {
	noise := c.NoiseLevels
	if len(noise) == 0 {
		if !(c.NoiseLevel > 0) {
			return threshold.Set{}, ErrMissingNoise
		}
		noise = make([]float64, channels)
		for i := range noise {
			noise[i] = c.NoiseLevel
		}
	} else if len(noise) != channels {
		return threshold.Set{}, fmt.Errorf("%w: %d levels, %d channels", ErrNoiseChannels, len(noise), channels)
	}
	return threshold.FromNoise(noise, c.DetectThreshold)
}

// Dump writes c as YAML.
func Dump(w io.Writer, c Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("config: encode: %w", err)
	}
	return enc.Close()
}
