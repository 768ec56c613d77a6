package pool

import (
	"fmt"

	"github.com/debeat/essentia/pkg/domain"
)

// Storable is the closed set of value types accepted by Add.
type Storable interface {
	domain.Real | string | []domain.Real | []string | domain.Matrix | domain.StereoSample
}

// Settable is the closed set of value types accepted by Set. Only the three
// single-valued sub-maps exist, matching the store's contract.
type Settable interface {
	domain.Real | string | []domain.Real
}

// WriteOption configures a single Add or Set call.
type WriteOption func(*writeOptions)

type writeOptions struct {
	validityCheck bool
}

// WithValidityCheck makes the write fail with ErrInvalidValue when the value
// carries a NaN or infinite numeric component.
func WithValidityCheck() WriteOption {
	return func(o *writeOptions) { o.validityCheck = true }
}

func applyWriteOptions(opts []WriteOption) writeOptions {
	var o writeOptions
	for _, fn := range opts {
		fn(&o)
	}
	return o
}

// Add appends value to the accumulating sequence bound to name, creating the
// binding on first write. It fails with ErrTypeCollision when name is bound
// to a different semantic type, ErrModeCollision when it is bound
// single-valued, and ErrKeyCollision when name is an ancestor or descendant
// of an existing bound name.
func Add[T Storable](p *Pool, name string, value T, opts ...WriteOption) error {
	o := applyWriteOptions(opts)
	switch v := any(value).(type) {
	case domain.Real:
		if o.validityCheck && !domain.IsFinite(v) {
			return newError(ErrInvalidValue, name, domain.TypeReal, domain.TypeUnknown, "non-finite real")
		}
		return addTo(p, &p.real, domain.TypeReal, name, v)
	case string:
		return addTo(p, &p.str, domain.TypeString, name, v)
	case []domain.Real:
		if o.validityCheck && !finiteVector(v) {
			return newError(ErrInvalidValue, name, domain.TypeRealVector, domain.TypeUnknown, "non-finite component")
		}
		return addTo(p, &p.vectorReal, domain.TypeRealVector, name, v)
	case []string:
		return addTo(p, &p.vectorStr, domain.TypeStringVector, name, v)
	case domain.Matrix:
		if o.validityCheck && !finiteMatrix(v) {
			return newError(ErrInvalidValue, name, domain.TypeMatrix, domain.TypeUnknown, "non-finite component")
		}
		return addTo(p, &p.matrix, domain.TypeMatrix, name, v)
	case domain.StereoSample:
		if o.validityCheck && (!domain.IsFinite(v.Left) || !domain.IsFinite(v.Right)) {
			return newError(ErrInvalidValue, name, domain.TypeStereoSample, domain.TypeUnknown, "non-finite channel")
		}
		return addTo(p, &p.stereo, domain.TypeStereoSample, name, v)
	default:
		return fmt.Errorf("pool: unsupported add type %T", value)
	}
}

// Set binds name in single-valued mode, overwriting any value a previous Set
// stored. It fails with ErrModeCollision when name was bound through Add.
func Set[T Settable](p *Pool, name string, value T, opts ...WriteOption) error {
	o := applyWriteOptions(opts)
	switch v := any(value).(type) {
	case domain.Real:
		if o.validityCheck && !domain.IsFinite(v) {
			return newError(ErrInvalidValue, name, domain.TypeReal, domain.TypeUnknown, "non-finite real")
		}
		return setTo(p, &p.singleReal, domain.TypeReal, name, v)
	case string:
		return setTo(p, &p.singleStr, domain.TypeString, name, v)
	case []domain.Real:
		if o.validityCheck && !finiteVector(v) {
			return newError(ErrInvalidValue, name, domain.TypeRealVector, domain.TypeUnknown, "non-finite component")
		}
		return setTo(p, &p.singleVecReal, domain.TypeRealVector, name, v)
	default:
		return fmt.Errorf("pool: unsupported set type %T", value)
	}
}

// Value returns the data bound to name under the retrieved type T.
//
// T ranges over the retrieval types of the store: domain.Real and string read
// single-valued bindings; []domain.Real reads the accumulating real sequence
// with a fallback to the single-valued vector sub-map; the slice types
// [][]domain.Real, []string, [][]string, []domain.Matrix and
// []domain.StereoSample read the corresponding accumulating sequences.
// The returned slice must be treated as read-only.
func Value[T any](p *Pool, name string) (T, error) {
	var zero T
	switch any(zero).(type) {
	case domain.Real:
		p.singleReal.mu.Lock()
		v, ok := p.singleReal.data[name]
		p.singleReal.mu.Unlock()
		if !ok {
			return zero, notFound(name, domain.TypeReal)
		}
		return any(v).(T), nil
	case string:
		p.singleStr.mu.Lock()
		v, ok := p.singleStr.data[name]
		p.singleStr.mu.Unlock()
		if !ok {
			return zero, notFound(name, domain.TypeString)
		}
		return any(v).(T), nil
	case []domain.Real:
		// Accumulated reals first, then the single-valued vector sub-map.
		p.real.mu.Lock()
		if vs, ok := p.real.data[name]; ok {
			out := append([]domain.Real(nil), vs...)
			p.real.mu.Unlock()
			return any(out).(T), nil
		}
		p.real.mu.Unlock()
		p.singleVecReal.mu.Lock()
		if v, ok := p.singleVecReal.data[name]; ok {
			out := append([]domain.Real(nil), v...)
			p.singleVecReal.mu.Unlock()
			return any(out).(T), nil
		}
		p.singleVecReal.mu.Unlock()
		return zero, notFound(name, domain.TypeRealVector)
	case [][]domain.Real:
		p.vectorReal.mu.Lock()
		vs, ok := p.vectorReal.data[name]
		if ok {
			out := append([][]domain.Real(nil), vs...)
			p.vectorReal.mu.Unlock()
			return any(out).(T), nil
		}
		p.vectorReal.mu.Unlock()
		return zero, notFound(name, domain.TypeRealVector)
	case []string:
		p.str.mu.Lock()
		vs, ok := p.str.data[name]
		if ok {
			out := append([]string(nil), vs...)
			p.str.mu.Unlock()
			return any(out).(T), nil
		}
		p.str.mu.Unlock()
		return zero, notFound(name, domain.TypeString)
	case [][]string:
		p.vectorStr.mu.Lock()
		vs, ok := p.vectorStr.data[name]
		if ok {
			out := append([][]string(nil), vs...)
			p.vectorStr.mu.Unlock()
			return any(out).(T), nil
		}
		p.vectorStr.mu.Unlock()
		return zero, notFound(name, domain.TypeStringVector)
	case []domain.Matrix:
		p.matrix.mu.Lock()
		vs, ok := p.matrix.data[name]
		if ok {
			out := append([]domain.Matrix(nil), vs...)
			p.matrix.mu.Unlock()
			return any(out).(T), nil
		}
		p.matrix.mu.Unlock()
		return zero, notFound(name, domain.TypeMatrix)
	case []domain.StereoSample:
		p.stereo.mu.Lock()
		vs, ok := p.stereo.data[name]
		if ok {
			out := append([]domain.StereoSample(nil), vs...)
			p.stereo.mu.Unlock()
			return any(out).(T), nil
		}
		p.stereo.mu.Unlock()
		return zero, notFound(name, domain.TypeStereoSample)
	default:
		return zero, fmt.Errorf("pool: unsupported value type %T", zero)
	}
}

// Contains reports whether name is bound under the retrieved type T, using
// the same sub-map dispatch (and dual-submap fallback) as Value.
func Contains[T any](p *Pool, name string) bool {
	_, err := Value[T](p, name)
	return err == nil
}

func finiteVector(v []domain.Real) bool {
	for _, x := range v {
		if !domain.IsFinite(x) {
			return false
		}
	}
	return true
}

func finiteMatrix(m domain.Matrix) bool {
	for _, row := range m {
		if !finiteVector(row) {
			return false
		}
	}
	return true
}
