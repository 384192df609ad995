// Package probe describes the spatial layout of recording channels and
// derives the neighbor relation used for locally exclusive peak detection.
//
// A Graph is built once per recording session from channel coordinates and a
// radius (or from an externally supplied boolean mask) and is then shared
// read-only by any number of concurrently running detection engines.
// Every Graph is symmetric and reflexive: a channel is always its own
// neighbor.
package probe
