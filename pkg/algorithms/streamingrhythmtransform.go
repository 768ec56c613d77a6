package algorithms

import (
	"errors"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
	"github.com/debeat/essentia/pkg/streaming"
)

// melBandsKey is the private-pool descriptor the composite buffers under.
const melBandsKey = "internal.mel_bands"

// StreamingRhythmTransform accumulates mel band frames in its private pool
// and, once upstream closes, runs the batch rhythm transform over all of
// them, emitting the resulting matrix as one value.
type StreamingRhythmTransform struct {
	*streaming.Composite
	rt  *RhythmTransform
	out *streaming.Source
}

func NewStreamingRhythmTransform() *StreamingRhythmTransform {
	c := streaming.NewComposite("RhythmTransform")
	s := &StreamingRhythmTransform{Composite: c, rt: NewRhythmTransform()}

	store := streaming.NewPoolStorage(c.Pool(), melBandsKey, domain.TypeRealVector)
	c.DeclareProxyInput("melBands", domain.TypeRealVector, "the energy in the melbands", store.DataInput())
	c.AddInner(store)

	s.out = c.DeclareOutput("rhythm", domain.TypeMatrix, "the rhythm transform of the input")
	c.SetFinalize(func(p *pool.Pool) error {
		frames, err := pool.Value[[][]domain.Real](p, melBandsKey)
		if err != nil {
			if errors.Is(err, pool.ErrNotFound) {
				s.out.Push(domain.Matrix{})
				return nil
			}
			return err
		}
		bands := make(domain.Matrix, len(frames))
		for i, f := range frames {
			bands[i] = f
		}
		rhythm, err := s.rt.Compute(bands)
		if err != nil {
			return err
		}
		s.out.Push(rhythm)
		return nil
	})
	return s
}

// Configure forwards frameSize and hopSize to the wrapped batch transform.
func (s *StreamingRhythmTransform) Configure(params domain.Params) error {
	return s.rt.Configure(params)
}
