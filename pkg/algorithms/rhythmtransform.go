package algorithms

import (
	"fmt"

	"github.com/debeat/essentia/pkg/domain"
)

// RhythmTransform computes a rhythmical representation of band energies,
// much like an FFT computes a frequency representation of a signal. The
// frameSize and hopSize options are defined on the rhythm axis, not on the
// temporal axis of the input frames.
type RhythmTransform struct {
	frameSize int
	hopSize   int

	windowing *Windowing
	spectrum  *Spectrum
}

// NewRhythmTransform creates a RhythmTransform with frameSize 256 and
// hopSize 32.
func NewRhythmTransform() *RhythmTransform {
	return &RhythmTransform{
		frameSize: 256,
		hopSize:   32,
		windowing: NewWindowing(),
		spectrum:  NewSpectrum(),
	}
}

// Configure accepts frameSize and hopSize options.
func (rt *RhythmTransform) Configure(params domain.Params) error {
	var cfg struct {
		FrameSize int `mapstructure:"frameSize"`
		HopSize   int `mapstructure:"hopSize"`
	}
	if err := params.Decode(&cfg); err != nil {
		return err
	}
	if cfg.FrameSize != 0 {
		if cfg.FrameSize < 1 {
			return domain.ConfigErrorf("frameSize must be positive, got %d", cfg.FrameSize)
		}
		rt.frameSize = cfg.FrameSize
	}
	if cfg.HopSize != 0 {
		if cfg.HopSize < 1 {
			return domain.ConfigErrorf("hopSize must be positive, got %d", cfg.HopSize)
		}
		rt.hopSize = cfg.HopSize
	}
	return nil
}

// Compute transforms a sequence of band-energy frames, one row per temporal
// frame, into rhythm frames of frameSize/2+1 bins. Windows on the rhythm
// axis step by hopSize and the tail window is zero padded, so every input
// frame contributes to the output. Per rhythm frame the squared spectra of
// all bands are accumulated.
func (rt *RhythmTransform) Compute(bands domain.Matrix) (domain.Matrix, error) {
	if len(bands) == 0 {
		return nil, fmt.Errorf("rhythm transform: %w: no input frames", domain.ErrConfiguration)
	}
	if !bands.IsRectangular() {
		return nil, fmt.Errorf("rhythm transform: %w: ragged band matrix", domain.ErrConfiguration)
	}
	nFrames, nBands := bands.Dims()

	// Differentiate each band over time; the first sample has no
	// predecessor and stays zero.
	derivative := make([][]domain.Real, nBands)
	for band := 0; band < nBands; band++ {
		d := make([]domain.Real, nFrames)
		for frame := 1; frame < nFrames; frame++ {
			d[frame] = bands[frame][band] - bands[frame-1][band]
		}
		derivative[band] = d
	}

	bins := rt.frameSize/2 + 1
	var out domain.Matrix
	for i := 0; i < nFrames; i += rt.hopSize {
		rhythmFrame := make([]domain.Real, rt.frameSize)
		bandSpectrum := make([]domain.Real, bins)
		for band := 0; band < nBands; band++ {
			for j := range rhythmFrame {
				if i+j < nFrames {
					rhythmFrame[j] = derivative[band][i+j]
				} else {
					rhythmFrame[j] = 0
				}
			}
			windowed, err := rt.windowing.Compute(rhythmFrame)
			if err != nil {
				return nil, err
			}
			spec := rt.spectrum.Compute(windowed)
			for bin, v := range spec {
				bandSpectrum[bin] += v * v
			}
		}
		out = append(out, bandSpectrum)
	}
	return out, nil
}
