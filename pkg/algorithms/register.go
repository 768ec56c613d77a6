package algorithms

import (
	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/registry"
	"github.com/debeat/essentia/pkg/streaming"
)

// RegisterAll registers every streaming algorithm with r under its
// canonical name.
func RegisterAll(r *registry.Registry) error {
	entries := []struct {
		name        string
		description string
		factory     registry.Factory
	}{
		{
			"VectorInput",
			"Feeds a fixed sequence of values into the network, one per step.",
			func() streaming.Algorithm { return NewVectorInput(domain.TypeReal) },
		},
		{
			"FrameCutter",
			"Slices a sample stream into frames of frameSize samples every hopSize samples.",
			func() streaming.Algorithm { return NewFrameCutter() },
		},
		{
			"InstantPower",
			"Computes the mean square power of each incoming frame.",
			func() streaming.Algorithm { return NewStreamingInstantPower() },
		},
		{
			"RhythmTransform",
			"Computes a rhythm-domain representation of mel band energies, as described by Guaus and Herrera.",
			func() streaming.Algorithm { return NewStreamingRhythmTransform() },
		},
		{
			"ReplayGain",
			"Computes the standard Replay Gain loudness correction of a signal, without preamplification.",
			func() streaming.Algorithm { return NewStreamingReplayGain() },
		},
		{
			"PoolStorage",
			"Stores every arriving value in the results pool under a fixed descriptor name.",
			func() streaming.Algorithm { return streaming.NewPoolStorage(nil, "", domain.TypeReal) },
		},
	}
	for _, e := range entries {
		if err := r.Register(e.name, e.description, e.factory); err != nil {
			return err
		}
	}
	return nil
}
