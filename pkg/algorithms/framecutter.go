package algorithms

import (
	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/streaming"
)

// FrameCutter slices an incoming sample stream into frames of frameSize
// samples stepping by hopSize. Frames always start at the beginning of the
// stream and the final partial frame is zero padded to full size.
type FrameCutter struct {
	streaming.Base
	frameSize int
	hopSize   int

	buf  []domain.Real
	next int

	in  *streaming.Sink
	out *streaming.Source
}

// NewFrameCutter creates a cutter with frameSize 1024 and hopSize 512.
func NewFrameCutter() *FrameCutter {
	fc := &FrameCutter{
		Base:      streaming.NewBase("FrameCutter"),
		frameSize: 1024,
		hopSize:   512,
	}
	fc.in = fc.DeclareInput("signal", domain.TypeReal, "sample stream")
	fc.out = fc.DeclareOutput("frame", domain.TypeRealVector, "cut frames")
	return fc
}

// Configure accepts frameSize and hopSize options.
func (fc *FrameCutter) Configure(params domain.Params) error {
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
		fc.frameSize = cfg.FrameSize
	}
	if cfg.HopSize != 0 {
		if cfg.HopSize < 1 {
			return domain.ConfigErrorf("hopSize must be positive, got %d", cfg.HopSize)
		}
		fc.hopSize = cfg.HopSize
	}
	return nil
}

func (fc *FrameCutter) Process() (streaming.Status, error) {
	for {
		v, ok := fc.in.Pop()
		if !ok {
			break
		}
		fc.buf = append(fc.buf, v.(domain.Real))
	}

	emitted := 0
	for fc.next+fc.frameSize <= len(fc.buf) {
		fc.emit()
		emitted++
	}
	if fc.in.Exhausted() {
		// Flush the tail; emit zero-padded frames until every sample
		// has been covered by at least one frame.
		for fc.next < len(fc.buf) {
			fc.emit()
		}
		return streaming.Finished, nil
	}
	if emitted > 0 {
		return streaming.OK, nil
	}
	return streaming.NoInput, nil
}

func (fc *FrameCutter) emit() {
	frame := make([]domain.Real, fc.frameSize)
	copy(frame, fc.buf[fc.next:min(fc.next+fc.frameSize, len(fc.buf))])
	fc.out.Push(frame)
	fc.next += fc.hopSize
}

func (fc *FrameCutter) Reset() {
	fc.buf = nil
	fc.next = 0
	fc.ResetPorts()
}
