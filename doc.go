// Package essentia assembles and runs audio-analysis networks.
//
// The core pieces live in subpackages: pkg/pool holds the thread-safe
// heterogeneous descriptor store, pkg/streaming the algorithm and port
// abstractions, pkg/scheduler the network executor and pkg/algorithms the
// analysis blocks. This package ties them together: an Engine creates
// algorithms from a registry, wires them according to a declarative
// pipeline and runs the network into a results pool.
//
//	eng, _ := essentia.New()
//	pipe, _ := essentia.LoadPipeline(file)
//	results, _ := eng.Run(ctx, pipe)
package essentia
