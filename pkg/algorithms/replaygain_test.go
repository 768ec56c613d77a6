package algorithms_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debeat/essentia/pkg/algorithms"
	"github.com/debeat/essentia/pkg/domain"
)

func constantSignal(n int, amplitude domain.Real) []domain.Real {
	s := make([]domain.Real, n)
	for i := range s {
		s[i] = amplitude
	}
	return s
}

func TestReplayGain_ConstantSignal(t *testing.T) {
	rg := algorithms.NewReplayGain()
	require.NoError(t, rg.Configure(domain.Params{"sampleRate": 200}))

	// A 50 ms window at 200 Hz is 10 samples. Every window of a constant
	// signal has power a^2, so the percentile pick is exact.
	const amplitude = 0.5
	gain, err := rg.Compute(constantSignal(100, amplitude))
	require.NoError(t, err)

	loudness := 10 * math.Log10(amplitude*amplitude)
	assert.InDelta(t, -31.492595672607422-loudness, float64(gain), 1e-9)
}

func TestReplayGain_TooShort(t *testing.T) {
	rg := algorithms.NewReplayGain()
	require.NoError(t, rg.Configure(domain.Params{"sampleRate": 200}))

	_, err := rg.Compute(constantSignal(9, 1))
	require.ErrorIs(t, err, algorithms.ErrSignalTooShort)
}

func TestReplayGain_QuietSignalGetsPositiveGain(t *testing.T) {
	rg := algorithms.NewReplayGain()
	require.NoError(t, rg.Configure(domain.Params{"sampleRate": 200}))

	quiet, err := rg.Compute(constantSignal(100, 0.001))
	require.NoError(t, err)
	loud, err := rg.Compute(constantSignal(100, 0.9))
	require.NoError(t, err)
	assert.Greater(t, float64(quiet), float64(loud))
}

func TestReplayGain_RejectsBadSampleRate(t *testing.T) {
	rg := algorithms.NewReplayGain()
	require.ErrorIs(t, rg.Configure(domain.Params{"sampleRate": -8000}), domain.ErrConfiguration)
}
