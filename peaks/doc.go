// Package peaks detects locally exclusive peaks in multichannel voltage
// traces.
//
// A sample (t, c) is a peak for polarity s ∈ {+1, -1} when
//
//   - s·x[t,c] exceeds the channel threshold,
//   - t lies in [W, T-W), so a full exclusion window exists on both sides,
//   - for every neighbor k of c (c included):
//     s·x[t,c] > s·x[u,k] for all u in [t-W, t-1],
//     s·x[t,c] >= s·x[u,k] for all u in [t+1, t+W],
//     and s·x[t,c] >= s·x[t,k] when k != c.
//
// Two engines implement the same contract. Batch checks every candidate
// exhaustively and serves as the reference. Streaming makes one left-to-right
// pass with a per-channel sliding-window maximum and is the production path.
// Their outputs are identical for every input.
//
// Graphs and threshold sets are read-only and can be shared between
// goroutines. A Streaming engine owns scratch state and must not be used by
// more than one goroutine at a time; create one per worker.
package peaks
