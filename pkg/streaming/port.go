package streaming

import (
	"fmt"

	"github.com/debeat/essentia/pkg/domain"
)

// Sink is a named, typed input endpoint. Values pushed by the connected
// source queue up in a FIFO buffer until the owning algorithm pops them.
// Ports are views: they never own the data flowing through them.
type Sink struct {
	name        string
	description string
	dtype       domain.DataType
	source      *Source
	buf         []any
	closed      bool
}

// Name returns the port name the algorithm declared.
func (s *Sink) Name() string { return s.name }

// Description returns the human-readable port description.
func (s *Sink) Description() string { return s.description }

// Type returns the semantic type accepted by this input.
func (s *Sink) Type() domain.DataType { return s.dtype }

// Source returns the connected producer, or nil when unconnected.
func (s *Sink) Source() *Source { return s.source }

// Pop removes and returns the oldest buffered value.
func (s *Sink) Pop() (any, bool) {
	if len(s.buf) == 0 {
		return nil, false
	}
	v := s.buf[0]
	s.buf = s.buf[1:]
	return v, true
}

// Len returns the number of buffered values.
func (s *Sink) Len() int { return len(s.buf) }

// Closed reports whether the producer signaled end-of-stream.
func (s *Sink) Closed() bool { return s.closed }

// Exhausted reports end-of-stream with an empty buffer: no value will ever
// arrive again.
func (s *Sink) Exhausted() bool { return s.closed && len(s.buf) == 0 }

func (s *Sink) push(v any) { s.buf = append(s.buf, v) }

func (s *Sink) close() { s.closed = true }

func (s *Sink) reset() {
	s.buf = nil
	s.closed = false
}

// Source is a named, typed output endpoint fanning out to any number of
// connected sinks.
type Source struct {
	name        string
	description string
	dtype       domain.DataType
	sinks       []*Sink
}

// Name returns the port name the algorithm declared.
func (s *Source) Name() string { return s.name }

// Description returns the human-readable port description.
func (s *Source) Description() string { return s.description }

// Type returns the semantic type produced by this output.
func (s *Source) Type() domain.DataType { return s.dtype }

// Sinks returns the connected consumers.
func (s *Source) Sinks() []*Sink { return s.sinks }

// Push delivers one value to every connected sink.
func (s *Source) Push(v any) {
	for _, snk := range s.sinks {
		snk.push(v)
	}
}

// Close signals end-of-stream to every connected sink.
func (s *Source) Close() {
	for _, snk := range s.sinks {
		snk.close()
	}
}

// Connect establishes a one-directional data edge from src to dst. It fails
// when the types differ or when dst already has a producer; both are
// configuration-time errors, never runtime ones.
func Connect(src *Source, dst *Sink) error {
	if src.dtype != dst.dtype {
		return fmt.Errorf("streaming: cannot connect %q (%s) to %q (%s): type mismatch",
			src.name, src.dtype, dst.name, dst.dtype)
	}
	if dst.source != nil {
		return fmt.Errorf("streaming: input %q already has a producer", dst.name)
	}
	dst.source = src
	src.sinks = append(src.sinks, dst)
	return nil
}
