package algorithms

import (
	"fmt"
	"math"

	"github.com/debeat/essentia/pkg/domain"
)

// WindowType selects the tapering function applied by Windowing.
type WindowType string

const (
	WindowHann    WindowType = "hann"
	WindowHamming WindowType = "hamming"
	WindowSquare  WindowType = "square"
)

// ParseWindowType validates a window name.
func ParseWindowType(s string) (WindowType, error) {
	switch WindowType(s) {
	case WindowHann, WindowHamming, WindowSquare:
		return WindowType(s), nil
	case "":
		return WindowHann, nil
	default:
		return "", domain.ConfigErrorf("unknown window type %q", s)
	}
}

// Windowing multiplies a frame by a tapering window.
type Windowing struct {
	typ WindowType
}

// NewWindowing creates a hann windower.
func NewWindowing() *Windowing {
	return &Windowing{typ: WindowHann}
}

// Configure accepts a "type" option: hann, hamming or square.
func (w *Windowing) Configure(params domain.Params) error {
	var cfg struct {
		Type string `mapstructure:"type"`
	}
	if err := params.Decode(&cfg); err != nil {
		return err
	}
	typ, err := ParseWindowType(cfg.Type)
	if err != nil {
		return err
	}
	w.typ = typ
	return nil
}

// Compute returns the windowed copy of frame. The input is left untouched.
func (w *Windowing) Compute(frame []domain.Real) ([]domain.Real, error) {
	n := len(frame)
	if n == 0 {
		return nil, fmt.Errorf("windowing: %w: empty frame", domain.ErrConfiguration)
	}
	out := make([]domain.Real, n)
	for i, v := range frame {
		out[i] = v * w.coeff(i, n)
	}
	return out, nil
}

func (w *Windowing) coeff(i, n int) domain.Real {
	if n == 1 {
		return 1
	}
	x := 2 * math.Pi * float64(i) / float64(n-1)
	switch w.typ {
	case WindowHamming:
		return 0.54 - 0.46*math.Cos(x)
	case WindowSquare:
		return 1
	default:
		return 0.5 * (1 - math.Cos(x))
	}
}
