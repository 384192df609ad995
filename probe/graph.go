package probe

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/cwbudde/algo-spike/errs"
)

// Errors returned by graph constructors and loaders.
var (
	ErrNegativeRadius  = fmt.Errorf("%w: probe: radius must be a non-negative number", errs.ErrInvalidArgument)
	ErrInvalidPosition = fmt.Errorf("%w: probe: channel position must be finite", errs.ErrInvalidArgument)
	ErrMaskNotSquare   = fmt.Errorf("%w: probe: adjacency mask is not square", errs.ErrInvalidArgument)
	ErrMaskAsymmetric  = fmt.Errorf("%w: probe: adjacency mask is not symmetric", errs.ErrInvalidArgument)
	ErrMaskIrreflexive = fmt.Errorf("%w: probe: adjacency mask is not reflexive", errs.ErrInvalidArgument)
)

// Graph is an immutable, symmetric and reflexive neighbor relation over
// channels. Neighbor lists are stored in compressed-row form and sorted
// ascending; each list contains the channel itself.
type Graph struct {
	n         int
	offsets   []int
	neighbors []int
	mask      []bool
}

// NewGraph connects every pair of channels whose Euclidean distance is at
// most radius.
func NewGraph(geom Geometry, radius float64) (*Graph, error) {
	if math.IsNaN(radius) || radius < 0 {
		return nil, fmt.Errorf("%w: %v", ErrNegativeRadius, radius)
	}
	if err := geom.Validate(); err != nil {
		return nil, err
	}

	n := len(geom)
	coords := make([][]float64, n)
	for i, p := range geom {
		coords[i] = []float64{p.X, p.Y}
	}

	mask := make([]bool, n*n)
	for i := 0; i < n; i++ {
		mask[i*n+i] = true
		for j := i + 1; j < n; j++ {
			if floats.Distance(coords[i], coords[j], 2) <= radius {
				mask[i*n+j] = true
				mask[j*n+i] = true
			}
		}
	}

	return fromValidMask(n, mask), nil
}

// GraphFromMask builds a Graph from a C×C boolean adjacency matrix. The
// matrix must be square, symmetric and reflexive.
func GraphFromMask(m [][]bool) (*Graph, error) {
	n := len(m)
	mask := make([]bool, n*n)
	for i, row := range m {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d entries, want %d", ErrMaskNotSquare, i, len(row), n)
		}
		copy(mask[i*n:(i+1)*n], row)
	}

	for i := 0; i < n; i++ {
		if !mask[i*n+i] {
			return nil, fmt.Errorf("%w: channel %d", ErrMaskIrreflexive, i)
		}
		for j := i + 1; j < n; j++ {
			if mask[i*n+j] != mask[j*n+i] {
				return nil, fmt.Errorf("%w: (%d,%d)", ErrMaskAsymmetric, i, j)
			}
		}
	}

	return fromValidMask(n, mask), nil
}

// SelfOnlyGraph returns the graph in which every channel neighbors only
// itself. Detection over it reduces to per-channel temporal peak finding.
func SelfOnlyGraph(n int) *Graph {
	mask := make([]bool, n*n)
	for i := 0; i < n; i++ {
		mask[i*n+i] = true
	}
	return fromValidMask(n, mask)
}

// CompleteGraph returns the graph in which every channel neighbors every
// other channel.
func CompleteGraph(n int) *Graph {
	mask := make([]bool, n*n)
	for i := range mask {
		mask[i] = true
	}
	return fromValidMask(n, mask)
}

func fromValidMask(n int, mask []bool) *Graph {
	g := &Graph{
		n:       n,
		offsets: make([]int, n+1),
		mask:    mask,
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if mask[i*n+j] {
				g.neighbors = append(g.neighbors, j)
			}
		}
		g.offsets[i+1] = len(g.neighbors)
	}
	return g
}

// Len returns the number of channels.
func (g *Graph) Len() int {
	return g.n
}

// Neighbors returns the sorted neighbor list of channel c, including c.
// The returned slice is shared and must not be modified.
func (g *Graph) Neighbors(c int) []int {
	return g.neighbors[g.offsets[c]:g.offsets[c+1]:g.offsets[c+1]]
}

// Contains reports whether channels i and j are neighbors.
func (g *Graph) Contains(i, j int) bool {
	return g.mask[i*g.n+j]
}

// Degree returns the number of neighbors of channel c, counting c itself.
func (g *Graph) Degree(c int) int {
	return g.offsets[c+1] - g.offsets[c]
}

// MeanDegree returns the average Degree over all channels, or 0 for an empty
// graph.
func (g *Graph) MeanDegree() float64 {
	if g.n == 0 {
		return 0
	}
	return float64(len(g.neighbors)) / float64(g.n)
}

// Mask returns a fresh C×C copy of the adjacency matrix.
func (g *Graph) Mask() [][]bool {
	out := make([][]bool, g.n)
	for i := range out {
		out[i] = make([]bool, g.n)
		copy(out[i], g.mask[i*g.n:(i+1)*g.n])
	}
	return out
}
