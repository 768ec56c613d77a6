// Package algorithms provides the signal-analysis building blocks: batch
// primitives (Windowing, Spectrum, InstantPower, RhythmTransform, ReplayGain)
// and their streaming counterparts built on pkg/streaming.
//
// Batch algorithms are plain Compute calls over full buffers. Streaming
// algorithms implement streaming.Algorithm and are meant to be wired into a
// scheduler.Network; RhythmTransform and ReplayGain stream as composites
// that buffer into a private pool and emit one aggregate result.
package algorithms
