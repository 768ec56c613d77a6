package streaming

// Status is the result of one Process invocation, interpreted by the network
// driver to decide whether to continue, retry later or stop.
type Status int

const (
	// OK means data was produced; keep driving the network.
	OK Status = iota
	// Pass means the step deferred: upstream is not exhausted yet and the
	// algorithm is accumulating silently. Re-invoke later.
	Pass
	// NoInput means the step starved: nothing buffered on the inputs.
	NoInput
	// Finished means the algorithm will produce no further data. The driver
	// propagates end-of-stream to everything downstream.
	Finished
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case Pass:
		return "pass"
	case NoInput:
		return "no_input"
	case Finished:
		return "finished"
	default:
		return "unknown"
	}
}
