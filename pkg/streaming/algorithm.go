package streaming

import (
	"fmt"

	"github.com/debeat/essentia/pkg/domain"
)

// Algorithm is one schedulable unit in a push network. Configure validates the
// closed option set before execution; Process consumes buffered input values
// and produces output values, reporting progress through its Status; Reset
// returns the unit to its post-configure state so the same network can run
// again.
type Algorithm interface {
	Name() string
	Configure(domain.Params) error
	Process() (Status, error)
	Reset()

	Input(name string) (*Sink, error)
	Output(name string) (*Source, error)
	Inputs() []*Sink
	Outputs() []*Source
}

// Base carries the port bookkeeping shared by every algorithm. Embed it and
// declare ports in the constructor.
type Base struct {
	name      string
	ins       []*Sink
	outs      []*Source
	inByName  map[string]*Sink
	outByName map[string]*Source
}

// NewBase creates the port bookkeeping for an algorithm with the given name.
func NewBase(name string) Base {
	return Base{
		name:      name,
		inByName:  make(map[string]*Sink),
		outByName: make(map[string]*Source),
	}
}

// Name returns the algorithm name.
func (b *Base) Name() string { return b.name }

// DeclareInput registers a typed input port. Declaration happens before any
// connection is made.
func (b *Base) DeclareInput(name string, dt domain.DataType, description string) *Sink {
	s := &Sink{name: name, description: description, dtype: dt}
	b.ins = append(b.ins, s)
	b.inByName[name] = s
	return s
}

// DeclareOutput registers a typed output port.
func (b *Base) DeclareOutput(name string, dt domain.DataType, description string) *Source {
	s := &Source{name: name, description: description, dtype: dt}
	b.outs = append(b.outs, s)
	b.outByName[name] = s
	return s
}

// Input looks an input port up by name.
func (b *Base) Input(name string) (*Sink, error) {
	s, ok := b.inByName[name]
	if !ok {
		return nil, fmt.Errorf("streaming: %s has no input %q", b.name, name)
	}
	return s, nil
}

// Output looks an output port up by name.
func (b *Base) Output(name string) (*Source, error) {
	s, ok := b.outByName[name]
	if !ok {
		return nil, fmt.Errorf("streaming: %s has no output %q", b.name, name)
	}
	return s, nil
}

// Inputs returns the declared input ports in declaration order.
func (b *Base) Inputs() []*Sink { return b.ins }

// Outputs returns the declared output ports in declaration order.
func (b *Base) Outputs() []*Source { return b.outs }

// ResetPorts clears every input buffer and end-of-stream mark.
func (b *Base) ResetPorts() {
	for _, s := range b.ins {
		s.reset()
	}
}
