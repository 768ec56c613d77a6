// Package scheduler executes networks of streaming algorithms.
//
// A Network owns a set of algorithms and derives the data-flow graph from
// their port connections. Run orders the algorithms so producers come before
// consumers, rejects cyclic graphs, and then steps every algorithm in rounds
// until all of them report Finished. A round in which no algorithm makes
// progress means the graph is wired incorrectly and aborts the run.
package scheduler
