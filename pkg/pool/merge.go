package pool

import (
	"fmt"

	"github.com/debeat/essentia/pkg/domain"
)

// MergeType selects the semantics applied when a merged descriptor already
// exists in the destination pool.
type MergeType string

const (
	// MergeDefault keeps the destination's data when the name exists and
	// inserts the source's data when it does not.
	MergeDefault MergeType = ""
	// MergeReplace unconditionally substitutes the destination's data with
	// the source's, regardless of the previously bound type.
	MergeReplace MergeType = "replace"
	// MergeAppend concatenates the source sequence onto the destination's
	// when (and only when) types and modes match.
	MergeAppend MergeType = "append"
	// MergeInterleave zips the two sequences element-wise, destination
	// first. Sequences of different lengths fail with ErrLengthMismatch.
	MergeInterleave MergeType = "interleave"
)

// ParseMergeType validates a user-supplied merge type name.
func ParseMergeType(s string) (MergeType, error) {
	switch MergeType(s) {
	case MergeDefault, MergeReplace, MergeAppend, MergeInterleave:
		return MergeType(s), nil
	}
	return MergeDefault, fmt.Errorf("pool: unknown merge type %q", s)
}

// Merge integrates every descriptor of src into p under the given merge
// semantics. Validation runs before any mutation: when any descriptor fails,
// both pools are left unchanged. The source is snapshotted first, so merging
// never holds the locks of both pools at once.
func (p *Pool) Merge(src *Pool, typ MergeType) error {
	snap := src.export()

	p.lockAll()
	defer p.unlockAll()

	// Phase 1: validate every incoming descriptor.
	if err := checkAccum(p, &p.real, domain.TypeReal, snap.real, typ); err != nil {
		return err
	}
	if err := checkAccum(p, &p.vectorReal, domain.TypeRealVector, snap.vectorReal, typ); err != nil {
		return err
	}
	if err := checkAccum(p, &p.str, domain.TypeString, snap.str, typ); err != nil {
		return err
	}
	if err := checkAccum(p, &p.vectorStr, domain.TypeStringVector, snap.vectorStr, typ); err != nil {
		return err
	}
	if err := checkAccum(p, &p.matrix, domain.TypeMatrix, snap.matrix, typ); err != nil {
		return err
	}
	if err := checkAccum(p, &p.stereo, domain.TypeStereoSample, snap.stereo, typ); err != nil {
		return err
	}
	if err := checkSingle(p, &p.singleReal, domain.TypeReal, snap.singleReal, typ); err != nil {
		return err
	}
	if err := checkSingle(p, &p.singleStr, domain.TypeString, snap.singleStr, typ); err != nil {
		return err
	}
	if err := checkSingle(p, &p.singleVecReal, domain.TypeRealVector, snap.singleVecReal, typ); err != nil {
		return err
	}

	// Phase 2: apply.
	applyAccum(p, &p.real, snap.real, typ)
	applyAccum(p, &p.vectorReal, snap.vectorReal, typ)
	applyAccum(p, &p.str, snap.str, typ)
	applyAccum(p, &p.vectorStr, snap.vectorStr, typ)
	applyAccum(p, &p.matrix, snap.matrix, typ)
	applyAccum(p, &p.stereo, snap.stereo, typ)
	applySingle(p, &p.singleReal, snap.singleReal, typ)
	applySingle(p, &p.singleStr, snap.singleStr, typ)
	applySingle(p, &p.singleVecReal, snap.singleVecReal, typ)
	return nil
}

// MergeValues integrates a sequence of values into the accumulating
// descriptor name, under the same semantics as a whole-pool merge.
func MergeValues[T Storable](p *Pool, name string, values []T, typ MergeType) error {
	switch vs := any(values).(type) {
	case []domain.Real:
		return mergeValuesInto(p, &p.real, domain.TypeReal, name, vs, typ)
	case []string:
		return mergeValuesInto(p, &p.str, domain.TypeString, name, vs, typ)
	case [][]domain.Real:
		return mergeValuesInto(p, &p.vectorReal, domain.TypeRealVector, name, vs, typ)
	case [][]string:
		return mergeValuesInto(p, &p.vectorStr, domain.TypeStringVector, name, vs, typ)
	case []domain.Matrix:
		return mergeValuesInto(p, &p.matrix, domain.TypeMatrix, name, vs, typ)
	case []domain.StereoSample:
		return mergeValuesInto(p, &p.stereo, domain.TypeStereoSample, name, vs, typ)
	default:
		return fmt.Errorf("pool: unsupported merge type %T", values)
	}
}

// MergeSingle integrates one value into the single-valued descriptor name.
// Under "append" and "interleave" a matching single-valued binding is
// overwritten; there is no sequence to extend.
func MergeSingle[T Settable](p *Pool, name string, value T, typ MergeType) error {
	switch v := any(value).(type) {
	case domain.Real:
		return mergeSingleInto(p, &p.singleReal, domain.TypeReal, name, v, typ)
	case string:
		return mergeSingleInto(p, &p.singleStr, domain.TypeString, name, v, typ)
	case []domain.Real:
		return mergeSingleInto(p, &p.singleVecReal, domain.TypeRealVector, name, v, typ)
	default:
		return fmt.Errorf("pool: unsupported merge type %T", value)
	}
}

// poolData is a snapshot of every sub-map, used to decouple source reads from
// destination writes during Merge and by the export adapters.
type poolData struct {
	real          map[string][]domain.Real
	vectorReal    map[string][][]domain.Real
	str           map[string][]string
	vectorStr     map[string][][]string
	matrix        map[string][]domain.Matrix
	stereo        map[string][]domain.StereoSample
	singleReal    map[string]domain.Real
	singleStr     map[string]string
	singleVecReal map[string][]domain.Real
}

func (p *Pool) export() *poolData {
	p.lockAll()
	defer p.unlockAll()
	return &poolData{
		real:          copyAccum(p.real.data),
		vectorReal:    copyAccum(p.vectorReal.data),
		str:           copyAccum(p.str.data),
		vectorStr:     copyAccum(p.vectorStr.data),
		matrix:        copyAccum(p.matrix.data),
		stereo:        copyAccum(p.stereo.data),
		singleReal:    copySingle(p.singleReal.data),
		singleStr:     copySingle(p.singleStr.data),
		singleVecReal: copySingle(p.singleVecReal.data),
	}
}

func copyAccum[T any](m map[string][]T) map[string][]T {
	out := make(map[string][]T, len(m))
	for k, vs := range m {
		out[k] = append([]T(nil), vs...)
	}
	return out
}

func copySingle[T any](m map[string]T) map[string]T {
	out := make(map[string]T, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// checkAccum validates the incoming accumulating descriptors of one sub-map.
// All destination mutexes must be held.
func checkAccum[T any](p *Pool, dst *subPool[T], dt domain.DataType, src map[string][]T, typ MergeType) error {
	for name, values := range src {
		b, ok := p.bindingLocked(name)
		if !ok {
			if err := p.validateKeyLocked(name); err != nil {
				return err
			}
			continue
		}
		switch typ {
		case MergeDefault, MergeReplace:
			// Keep or substitute; any prior binding is acceptable.
		case MergeAppend, MergeInterleave:
			if b.dtype != dt {
				return newError(ErrTypeCollision, name, dt, b.dtype, "cannot merge")
			}
			if b.single {
				return newError(ErrModeCollision, name, dt, b.dtype, "bound single-valued")
			}
			if typ == MergeInterleave && len(dst.data[name]) != len(values) {
				return newError(ErrLengthMismatch, name, dt, b.dtype,
					fmt.Sprintf("interleave of %d against %d values", len(values), len(dst.data[name])))
			}
		}
	}
	return nil
}

func checkSingle[T any](p *Pool, _ *singlePool[T], dt domain.DataType, src map[string]T, typ MergeType) error {
	for name := range src {
		b, ok := p.bindingLocked(name)
		if !ok {
			if err := p.validateKeyLocked(name); err != nil {
				return err
			}
			continue
		}
		switch typ {
		case MergeDefault, MergeReplace:
		case MergeAppend, MergeInterleave:
			if b.dtype != dt {
				return newError(ErrTypeCollision, name, dt, b.dtype, "cannot merge")
			}
			if !b.single {
				return newError(ErrModeCollision, name, dt, b.dtype, "bound accumulating")
			}
		}
	}
	return nil
}

// applyAccum merges validated accumulating descriptors. All destination
// mutexes must be held and checkAccum must have passed.
func applyAccum[T any](p *Pool, dst *subPool[T], src map[string][]T, typ MergeType) {
	for name, values := range src {
		_, bound := p.bindingLocked(name)
		switch {
		case !bound:
			dst.data[name] = append([]T(nil), values...)
		case typ == MergeReplace:
			p.removeLocked(name)
			dst.data[name] = append([]T(nil), values...)
		case typ == MergeAppend:
			dst.data[name] = append(dst.data[name], values...)
		case typ == MergeInterleave:
			existing := dst.data[name]
			zipped := make([]T, 0, len(existing)*2)
			for i := range existing {
				zipped = append(zipped, existing[i], values[i])
			}
			dst.data[name] = zipped
		default:
			// MergeDefault with an existing binding: keep destination.
		}
	}
}

func applySingle[T any](p *Pool, dst *singlePool[T], src map[string]T, typ MergeType) {
	for name, v := range src {
		_, bound := p.bindingLocked(name)
		switch {
		case !bound:
			dst.data[name] = v
		case typ == MergeReplace, typ == MergeAppend, typ == MergeInterleave:
			p.removeLocked(name)
			dst.data[name] = v
		default:
			// MergeDefault: keep destination.
		}
	}
}

func mergeValuesInto[T any](p *Pool, dst *subPool[T], dt domain.DataType, name string, values []T, typ MergeType) error {
	p.lockAll()
	defer p.unlockAll()
	src := map[string][]T{name: values}
	if err := checkAccum(p, dst, dt, src, typ); err != nil {
		return err
	}
	applyAccum(p, dst, src, typ)
	return nil
}

func mergeSingleInto[T any](p *Pool, dst *singlePool[T], dt domain.DataType, name string, value T, typ MergeType) error {
	p.lockAll()
	defer p.unlockAll()
	src := map[string]T{name: value}
	if err := checkSingle(p, dst, dt, src, typ); err != nil {
		return err
	}
	applySingle(p, dst, src, typ)
	return nil
}
