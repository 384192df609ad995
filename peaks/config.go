package peaks

import "fmt"

// Config holds the per-run detection parameters shared by both engines.
type Config struct {
	// Window is the exclusion window W in samples.
	Window int
	// Sign selects the detected polarity.
	Sign Sign
}

// Option mutates a Config.
type Option func(*Config)

// DefaultConfig returns negative-going detection with no exclusion window.
func DefaultConfig() Config {
	return Config{
		Window: 0,
		Sign:   Negative,
	}
}

// WithWindow sets the exclusion window in samples.
func WithWindow(samples int) Option {
	return func(cfg *Config) {
		cfg.Window = samples
	}
}

// WithSign sets the detected polarity.
func WithSign(sign Sign) Option {
	return func(cfg *Config) {
		cfg.Sign = sign
	}
}

// ApplyOptions applies zero or more options to the default config.
func ApplyOptions(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return cfg
}

// MaxWindow bounds the exclusion window so that 2*Window+1 sample spans
// never overflow an int.
const MaxWindow = 1 << 29

// Validate rejects negative or oversized windows and undefined signs.
func (c Config) Validate() error {
	if c.Window < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeWindow, c.Window)
	}
	if c.Window > MaxWindow {
		return fmt.Errorf("%w: %d > %d", ErrWindowTooLarge, c.Window, MaxWindow)
	}
	if !c.Sign.Valid() {
		return fmt.Errorf("%w: %v", ErrUnknownSign, c.Sign)
	}
	return nil
}
