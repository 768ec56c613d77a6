/*
Package streaming defines the push-based execution contract for algorithm
networks: typed ports, the Algorithm interface with its per-step status codes,
and the Composite base that buffers a stream in a private pool and emits one
aggregate result once the upstream is exhausted.

# Ports

An algorithm declares named, typed inputs (Sink) and outputs (Source) before
any connection is made. Connect establishes a one-directional edge and rejects
type mismatches at configuration time. A source fans out to any number of
sinks; a sink accepts exactly one producer. Values move through per-sink FIFO
buffers; absence of data is reported through status codes, never by blocking,
so a network runs on a single logical thread of control.

# Composite

Composite implements the deferred-buffering pattern as an explicit three-phase
state machine (Accumulating, Finalizing, Done). While upstream is live it
forwards arriving values into its internal sub-graph, whose sink stores them
in the composite's private pool, and reports Pass. Once every input is closed
and drained, it flushes the sub-graph, runs the finalize step exactly once,
and reports Finished.
*/
package streaming
