// Package pipeline runs peak detection over a recording delivered in
// chunks. Each chunk is extended with the last 2*Window samples of the
// previous one, so peaks whose exclusion window straddles a chunk boundary
// are found exactly once and the concatenated output matches a single pass
// over the whole recording. Chunks are detected concurrently, one engine
// per worker.
package pipeline
