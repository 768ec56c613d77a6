package algorithms

import (
	"errors"
	"fmt"
	"sort"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
	"github.com/debeat/essentia/pkg/streaming"
)

// powerKey is the private-pool descriptor the composite buffers under.
const powerKey = "internal.power"

// refLoudnessStreamingDB is the pink-noise reference loudness measured over
// the streaming analysis chain; it differs slightly from the batch constant
// because frame boundaries fall differently.
const refLoudnessStreamingDB = -31.462667465209961

// StreamingReplayGain computes the Replay Gain of a sample stream. An inner
// chain cuts the stream into 50 ms windows and buffers each window's power
// in the private pool; once upstream closes, the gain is derived from the
// 95th-percentile power.
type StreamingReplayGain struct {
	*streaming.Composite
	sampleRate int
	cutter     *FrameCutter
	out        *streaming.Source
}

func NewStreamingReplayGain() *StreamingReplayGain {
	c := streaming.NewComposite("ReplayGain")
	s := &StreamingReplayGain{Composite: c, sampleRate: 44100}

	s.cutter = NewFrameCutter()
	power := NewStreamingInstantPower()
	store := streaming.NewPoolStorage(c.Pool(), powerKey, domain.TypeReal)

	mustConnect(s.cutter.out, power.in)
	mustConnect(power.out, store.DataInput())
	c.DeclareProxyInput("signal", domain.TypeReal, "the input signal", s.cutter.in)
	c.AddInner(s.cutter, power, store)

	s.out = c.DeclareOutput("replayGain", domain.TypeReal, "the ReplayGain gain value in dB")
	c.SetFinalize(func(p *pool.Pool) error {
		powers, err := pool.Value[[]domain.Real](p, powerKey)
		if err != nil {
			if errors.Is(err, pool.ErrNotFound) {
				return fmt.Errorf("replay gain: %w (empty stream)", ErrSignalTooShort)
			}
			return err
		}
		sort.Slice(powers, func(i, j int) bool { return powers[i] < powers[j] })
		loudness := powToDB(powers[percentileIndex(len(powers))])
		s.out.Push(refLoudnessStreamingDB - loudness)
		return nil
	})
	s.applyWindow()
	return s
}

// Configure accepts a sampleRate option and sizes the 50 ms analysis window
// accordingly.
func (s *StreamingReplayGain) Configure(params domain.Params) error {
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
		s.sampleRate = cfg.SampleRate
	}
	s.applyWindow()
	return nil
}

func (s *StreamingReplayGain) applyWindow() {
	win := int(0.05 * float64(s.sampleRate))
	s.cutter.frameSize = win
	s.cutter.hopSize = win
}

// mustConnect wires two fixed inner ports; a failure here is a programming
// error, not a runtime condition.
func mustConnect(src *streaming.Source, dst *streaming.Sink) {
	if err := streaming.Connect(src, dst); err != nil {
		panic(err)
	}
}
