package algorithms

import (
	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/streaming"
)

// VectorInput feeds a fixed sequence of values into a network, one value per
// step, then finishes.
type VectorInput struct {
	streaming.Base
	dtype  domain.DataType
	values []any
	pos    int
	out    *streaming.Source
}

// NewVectorInput creates a generator for values of the given type.
func NewVectorInput(dt domain.DataType) *VectorInput {
	v := &VectorInput{Base: streaming.NewBase("VectorInput"), dtype: dt}
	v.out = v.DeclareOutput("data", dt, "generated values")
	return v
}

// NewRealVectorInput creates a generator over scalar samples.
func NewRealVectorInput(values ...domain.Real) *VectorInput {
	v := NewVectorInput(domain.TypeReal)
	for _, x := range values {
		v.values = append(v.values, x)
	}
	return v
}

// NewFrameVectorInput creates a generator over frames.
func NewFrameVectorInput(frames ...[]domain.Real) *VectorInput {
	v := NewVectorInput(domain.TypeRealVector)
	for _, f := range frames {
		v.values = append(v.values, f)
	}
	return v
}

// SetValues replaces the sequence. Values must match the declared type.
func (v *VectorInput) SetValues(values ...any) {
	v.values = values
	v.pos = 0
}

// Configure accepts a "values" option with scalar samples. Sequences of
// other types are set programmatically.
func (v *VectorInput) Configure(params domain.Params) error {
	var cfg struct {
		Values []domain.Real `mapstructure:"values"`
	}
	if err := params.Decode(&cfg); err != nil {
		return err
	}
	if len(cfg.Values) == 0 {
		return nil
	}
	if v.dtype != domain.TypeReal {
		return domain.ConfigErrorf("values option requires a %s generator, this one yields %s",
			domain.TypeReal, v.dtype)
	}
	v.values = v.values[:0]
	for _, x := range cfg.Values {
		v.values = append(v.values, x)
	}
	v.pos = 0
	return nil
}

func (v *VectorInput) Process() (streaming.Status, error) {
	if v.pos >= len(v.values) {
		return streaming.Finished, nil
	}
	v.out.Push(v.values[v.pos])
	v.pos++
	return streaming.OK, nil
}

func (v *VectorInput) Reset() {
	v.pos = 0
	v.ResetPorts()
}
