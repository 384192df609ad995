package probe

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"

	"github.com/cwbudde/algo-spike/errs"
)

// Errors returned by LoadGeometry.
var (
	ErrNoProbes        = fmt.Errorf("%w: probe: record contains no probes", errs.ErrDataShapeMismatch)
	ErrMalformedRecord = fmt.Errorf("%w: probe: malformed probe record", errs.ErrDataShapeMismatch)
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type probeRecord struct {
	ContactPositions [][]float64 `json:"contact_positions"`
}

type probeGroup struct {
	Probes []probeRecord `json:"probes"`
}

// LoadGeometry parses a probe-group record of the form
//
//	{"probes": [{"contact_positions": [[x0, y0], [x1, y1], ...]}, ...]}
//
// and returns the first probe's contact positions.
func LoadGeometry(r io.Reader) (Geometry, error) {
	var group probeGroup
	if err := json.NewDecoder(r).Decode(&group); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	if len(group.Probes) == 0 {
		return nil, ErrNoProbes
	}

	positions := group.Probes[0].ContactPositions
	geom := make(Geometry, len(positions))
	for c, xy := range positions {
		if len(xy) != 2 {
			return nil, fmt.Errorf("%w: contact %d has %d coordinates, want 2", ErrMalformedRecord, c, len(xy))
		}
		geom[c] = Position{X: xy[0], Y: xy[1]}
	}

	return geom, nil
}

// LoadGeometryFile opens path and parses it with LoadGeometry.
func LoadGeometryFile(path string) (Geometry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: probe: %w", errs.ErrIOFailure, err)
	}
	defer f.Close()

	return LoadGeometry(f)
}
