package peaks

import (
	"fmt"
	"strings"
)

// Sign selects which polarity of excursion is detected.
type Sign int

// Supported polarities.
const (
	Positive Sign = iota + 1
	Negative
	Both
)

// ParseSign accepts "pos"/"positive", "neg"/"negative" and "both"
// (case-insensitive).
func ParseSign(s string) (Sign, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pos", "positive":
		return Positive, nil
	case "neg", "negative":
		return Negative, nil
	case "both":
		return Both, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownSign, s)
}

// String returns the short token accepted by ParseSign.
func (s Sign) String() string {
	switch s {
	case Positive:
		return "pos"
	case Negative:
		return "neg"
	case Both:
		return "both"
	}
	return fmt.Sprintf("Sign(%d)", int(s))
}

// Valid reports whether s is one of the defined polarities.
func (s Sign) Valid() bool {
	return s == Positive || s == Negative || s == Both
}

// polarities lists the multipliers scanned for s. Both scans each polarity
// independently.
func (s Sign) polarities() []float32 {
	switch s {
	case Positive:
		return []float32{1}
	case Negative:
		return []float32{-1}
	case Both:
		return []float32{1, -1}
	}
	return nil
}
