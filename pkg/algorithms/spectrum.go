package algorithms

import (
	"math"

	"github.com/debeat/essentia/pkg/domain"
)

// Spectrum computes the magnitude spectrum of a real frame via a direct
// discrete Fourier transform. For a frame of N samples it yields N/2+1
// magnitudes, from DC up to the Nyquist bin.
type Spectrum struct{}

// NewSpectrum creates a Spectrum.
func NewSpectrum() *Spectrum { return &Spectrum{} }

// Configure accepts no options.
func (s *Spectrum) Configure(params domain.Params) error {
	var cfg struct{}
	return params.Decode(&cfg)
}

// Compute returns the magnitude spectrum of frame.
func (s *Spectrum) Compute(frame []domain.Real) []domain.Real {
	n := len(frame)
	if n == 0 {
		return nil
	}
	bins := n/2 + 1
	out := make([]domain.Real, bins)
	for k := 0; k < bins; k++ {
		var re, im float64
		for i, v := range frame {
			phase := 2 * math.Pi * float64(k) * float64(i) / float64(n)
			re += float64(v) * math.Cos(phase)
			im -= float64(v) * math.Sin(phase)
		}
		out[k] = domain.Real(math.Hypot(re, im))
	}
	return out
}
