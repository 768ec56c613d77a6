package algorithms

import (
	"errors"
	"fmt"
	"sort"

	"github.com/debeat/essentia/pkg/domain"
)

// ErrSignalTooShort is returned when the input holds less than one
// loudness-estimation window of audio.
var ErrSignalTooShort = errors.New("input shorter than one analysis window")

// refLoudnessDB is the loudness of the replaygain.org pink-noise reference
// file, used to calibrate the gain.
const refLoudnessDB = -31.492595672607422

// ReplayGain computes the Replay Gain loudness correction of a signal: the
// standard value without the 6 dB preamplification applied by most tagging
// tools. Loudness is estimated as the 95th percentile of the per-window
// energies, measured over non-overlapping 50 ms windows.
type ReplayGain struct {
	sampleRate int
}

// NewReplayGain creates a ReplayGain for 44100 Hz audio.
func NewReplayGain() *ReplayGain {
	return &ReplayGain{sampleRate: 44100}
}

// Configure accepts a sampleRate option.
func (rg *ReplayGain) Configure(params domain.Params) error {
	var cfg struct {
		SampleRate int `mapstructure:"sampleRate"`
	}
	if err := params.Decode(&cfg); err != nil {
		return err
	}
	if cfg.SampleRate != 0 {
		if cfg.SampleRate < 1 {
			return domain.ConfigErrorf("sampleRate must be positive, got %d", cfg.SampleRate)
		}
		rg.sampleRate = cfg.SampleRate
	}
	return nil
}

// windowSize returns the 50 ms loudness window in samples.
func (rg *ReplayGain) windowSize() int {
	return int(0.05 * float64(rg.sampleRate))
}

// Compute returns the gain in dB to apply so the signal plays at reference
// loudness. The signal must span at least one analysis window.
func (rg *ReplayGain) Compute(signal []domain.Real) (domain.Real, error) {
	win := rg.windowSize()
	if len(signal) < win {
		return 0, fmt.Errorf("replay gain: %w (%d samples, need %d)", ErrSignalTooShort, len(signal), win)
	}

	nWindows := len(signal) / win
	loudnesses := make([]domain.Real, nWindows)
	for i := 0; i < nWindows; i++ {
		var energy domain.Real
		for _, v := range signal[i*win : (i+1)*win] {
			energy += v * v
		}
		loudnesses[i] = powToDB(energy / domain.Real(win))
	}

	sort.Slice(loudnesses, func(i, j int) bool { return loudnesses[i] < loudnesses[j] })
	loudness := loudnesses[percentileIndex(nWindows)]
	return refLoudnessDB - loudness, nil
}

// percentileIndex returns the index of the 95th-percentile element in a
// sorted slice of n values.
func percentileIndex(n int) int {
	i := int(0.95 * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}
