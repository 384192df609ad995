// Package recording reads raw multichannel recordings: the little-endian
// float32 sample stream (channels interleaved per sample) and the JSON
// parameter record that describes it.
package recording
