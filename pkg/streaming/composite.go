package streaming

import (
	"fmt"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
)

// Phase is the execution phase of a Composite. The buffering contract is an
// explicit state machine rather than a side effect of status codes.
type Phase int

const (
	// PhaseAccumulating forwards upstream values into the internal
	// sub-graph and defers with Pass.
	PhaseAccumulating Phase = iota
	// PhaseFinalizing runs the one-shot batch computation over the
	// buffered data.
	PhaseFinalizing
	// PhaseDone means the single aggregate output has been produced.
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseAccumulating:
		return "accumulating"
	case PhaseFinalizing:
		return "finalizing"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// Composite is the base for algorithms that wrap an internal sub-graph and a
// private pool used purely as an accumulation buffer. It produces exactly one
// aggregate result per completed upstream stream: while upstream is live its
// Process defers with Pass; once every input is exhausted it flushes the
// sub-graph, invokes the finalize step and reports Finished.
//
// The composite exclusively owns its private pool and inner algorithms; both
// are restored to their initial state by Reset.
type Composite struct {
	Base
	pool      *pool.Pool
	inner     []Algorithm
	innerDone map[Algorithm]bool
	proxies   []proxyEdge
	finalize  func(*pool.Pool) error
	phase     Phase
}

// proxyEdge forwards values from a declared composite input to an inner
// algorithm's input.
type proxyEdge struct {
	from *Sink
	to   *Sink
}

// NewComposite creates a composite with an empty private pool.
func NewComposite(name string) *Composite {
	return &Composite{
		Base:      NewBase(name),
		pool:      pool.New(),
		innerDone: make(map[Algorithm]bool),
	}
}

// Pool returns the private accumulation pool.
func (c *Composite) Pool() *pool.Pool { return c.pool }

// Phase returns the current execution phase.
func (c *Composite) Phase() Phase { return c.phase }

// DeclareProxyInput declares a composite input whose values are forwarded to
// the given inner sink, typically a PoolStorage input.
func (c *Composite) DeclareProxyInput(name string, dt domain.DataType, description string, inner *Sink) *Sink {
	in := c.DeclareInput(name, dt, description)
	c.proxies = append(c.proxies, proxyEdge{from: in, to: inner})
	return in
}

// AddInner registers the internal sub-graph algorithms, in processing order.
func (c *Composite) AddInner(algs ...Algorithm) {
	c.inner = append(c.inner, algs...)
}

// SetFinalize installs the one-shot batch step invoked over the buffered
// pool once upstream is exhausted. The callback pushes the aggregate result
// to the composite's output ports itself.
func (c *Composite) SetFinalize(fn func(*pool.Pool) error) {
	c.finalize = fn
}

// Configure accepts no options; composites with parameters override it and
// forward to their wrapped batch algorithm.
func (c *Composite) Configure(params domain.Params) error {
	var cfg struct{}
	return params.Decode(&cfg)
}

// Process drives the state machine one step.
func (c *Composite) Process() (Status, error) {
	switch c.phase {
	case PhaseDone:
		return Finished, nil
	case PhaseAccumulating:
		c.forward()
		if err := c.pump(); err != nil {
			return NoInput, err
		}
		if !c.upstreamExhausted() {
			return Pass, nil
		}
		// Upstream is done: propagate end-of-stream into the sub-graph
		// and flush it completely before the batch step.
		for _, pe := range c.proxies {
			pe.to.close()
		}
		if err := c.pump(); err != nil {
			return NoInput, err
		}
		c.phase = PhaseFinalizing
		fallthrough
	case PhaseFinalizing:
		if c.finalize != nil {
			if err := c.finalize(c.pool); err != nil {
				return NoInput, fmt.Errorf("%s: finalize: %w", c.Name(), err)
			}
		}
		c.phase = PhaseDone
		return Finished, nil
	default:
		return NoInput, fmt.Errorf("%s: invalid phase %d", c.Name(), c.phase)
	}
}

// Reset clears the private pool, resets the inner algorithms and returns the
// composite to the accumulating phase.
func (c *Composite) Reset() {
	c.pool.Clear()
	for _, a := range c.inner {
		a.Reset()
	}
	c.innerDone = make(map[Algorithm]bool)
	c.phase = PhaseAccumulating
	c.ResetPorts()
}

// forward moves buffered values from the composite's declared inputs to the
// proxied inner sinks.
func (c *Composite) forward() {
	for _, pe := range c.proxies {
		for {
			v, ok := pe.from.Pop()
			if !ok {
				break
			}
			pe.to.push(v)
		}
	}
}

// pump drives the inner sub-graph until it makes no further progress.
func (c *Composite) pump() error {
	for {
		progress := false
		for _, a := range c.inner {
			if c.innerDone[a] {
				continue
			}
			st, err := a.Process()
			if err != nil {
				return fmt.Errorf("%s: inner %s: %w", c.Name(), a.Name(), err)
			}
			switch st {
			case OK:
				progress = true
			case Finished:
				c.innerDone[a] = true
				for _, out := range a.Outputs() {
					out.Close()
				}
				progress = true
			}
		}
		if !progress {
			return nil
		}
	}
}

// upstreamExhausted reports whether every declared input has seen
// end-of-stream and been fully drained.
func (c *Composite) upstreamExhausted() bool {
	for _, in := range c.Inputs() {
		if !in.Exhausted() {
			return false
		}
	}
	return true
}
