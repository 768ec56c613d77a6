package algorithms

import (
	"math"

	"github.com/debeat/essentia/pkg/domain"
)

// silenceCutoff is the lowest power treated as non-silent; anything below
// maps to silenceCutoffDB when converted to decibels.
const (
	silenceCutoff   = 1e-30
	silenceCutoffDB = -300.0
)

// powToDB converts a power value to decibels.
func powToDB(p domain.Real) domain.Real {
	if p < silenceCutoff {
		return silenceCutoffDB
	}
	return 10 * domain.Real(math.Log10(float64(p)))
}

// InstantPower computes the mean square power of a frame.
type InstantPower struct{}

// NewInstantPower creates an InstantPower.
func NewInstantPower() *InstantPower { return &InstantPower{} }

// Configure accepts no options.
func (a *InstantPower) Configure(params domain.Params) error {
	var cfg struct{}
	return params.Decode(&cfg)
}

// Compute returns the mean of the squared samples, 0 for an empty frame.
func (a *InstantPower) Compute(frame []domain.Real) domain.Real {
	if len(frame) == 0 {
		return 0
	}
	var sum domain.Real
	for _, v := range frame {
		sum += v * v
	}
	return sum / domain.Real(len(frame))
}
