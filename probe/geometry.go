package probe

import (
	"fmt"
	"math"
)

// Position is a channel contact position in probe coordinates (micrometers
// in the usual probe files).
type Position struct {
	X, Y float64
}

// Geometry lists one Position per channel, in channel order.
type Geometry []Position

// Validate rejects non-finite coordinates.
func (g Geometry) Validate() error {
	for c, p := range g {
		if math.IsNaN(p.X) || math.IsNaN(p.Y) || math.IsInf(p.X, 0) || math.IsInf(p.Y, 0) {
			return fmt.Errorf("%w: channel %d at (%v, %v)", ErrInvalidPosition, c, p.X, p.Y)
		}
	}
	return nil
}

// Linear returns a single-column geometry of n contacts spaced pitch apart
// along Y, a common layout for tests and simple shanks.
func Linear(n int, pitch float64) Geometry {
	g := make(Geometry, n)
	for i := range g {
		g[i] = Position{X: 0, Y: float64(i) * pitch}
	}
	return g
}
