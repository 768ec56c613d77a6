package algorithms

import (
	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/streaming"
)

// StreamingInstantPower emits the mean square power of every incoming frame.
type StreamingInstantPower struct {
	streaming.Base
	power *InstantPower
	in    *streaming.Sink
	out   *streaming.Source
}

func NewStreamingInstantPower() *StreamingInstantPower {
	a := &StreamingInstantPower{
		Base:  streaming.NewBase("InstantPower"),
		power: NewInstantPower(),
	}
	a.in = a.DeclareInput("array", domain.TypeRealVector, "input frames")
	a.out = a.DeclareOutput("power", domain.TypeReal, "power of each frame")
	return a
}

// Configure accepts no options.
func (a *StreamingInstantPower) Configure(params domain.Params) error {
	return a.power.Configure(params)
}

func (a *StreamingInstantPower) Process() (streaming.Status, error) {
	n := 0
	for {
		v, ok := a.in.Pop()
		if !ok {
			break
		}
		a.out.Push(a.power.Compute(v.([]domain.Real)))
		n++
	}
	if n > 0 {
		return streaming.OK, nil
	}
	if a.in.Exhausted() {
		return streaming.Finished, nil
	}
	return streaming.NoInput, nil
}

func (a *StreamingInstantPower) Reset() { a.ResetPorts() }
