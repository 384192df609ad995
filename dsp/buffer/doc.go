// Package buffer provides a reusable, row-major float32 buffer for
// multichannel sample blocks and a pool for allocation-friendly chunk
// processing. Detection functions accept trace.Signal values; Buffer is a
// convenience that helps callers assemble chunks (for example a carried
// margin followed by freshly read rows) without reallocating in hot loops.
package buffer
