package domain

import (
	"errors"
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// ErrConfiguration is the sentinel wrapped by every configuration failure,
// whether the option is unknown, missing or of the wrong type.
var ErrConfiguration = errors.New("invalid configuration")

// Params is the closed set of named options passed to an algorithm's
// Configure step. Keys the algorithm does not declare are rejected at
// decode time, not silently ignored.
type Params map[string]any

// Decode fills the target struct from the parameter map using its
// mapstructure tags. Unknown keys and type mismatches fail with an error
// wrapping ErrConfiguration.
func (p Params) Decode(target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      target,
		ErrorUnused: true,
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	if err := dec.Decode(map[string]any(p)); err != nil {
		return fmt.Errorf("%w: %v", ErrConfiguration, err)
	}
	return nil
}

// ConfigErrorf builds a configuration error carrying ErrConfiguration so
// callers can test for it with errors.Is.
func ConfigErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrConfiguration, fmt.Sprintf(format, args...))
}
