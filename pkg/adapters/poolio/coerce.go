package poolio

import (
	"encoding/json"
	"fmt"

	"github.com/debeat/essentia/pkg/domain"
)

// The decoders hand us loosely typed values: yaml.v3 yields []any and
// map[string]any, encoding/json yields float64 for every number, and
// Capture feeds typed Go values straight back through Restore. The
// coercions below accept all three shapes.

func toReal(v any) (domain.Real, error) {
	switch x := v.(type) {
	case domain.Real:
		return x, nil
	case int:
		return domain.Real(x), nil
	case int64:
		return domain.Real(x), nil
	case json.Number:
		f, err := x.Float64()
		return domain.Real(f), err
	default:
		return 0, fmt.Errorf("expected number, got %T", v)
	}
}

func toSlice(v any) ([]any, error) {
	switch x := v.(type) {
	case []any:
		return x, nil
	case []domain.Real:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	case []string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	case [][]domain.Real:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	case [][]string:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	case []domain.Matrix:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	case []domain.StereoSample:
		out := make([]any, len(x))
		for i, e := range x {
			out[i] = e
		}
		return out, nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("expected list, got %T", v)
	}
}

func toRealSlice(v any) ([]domain.Real, error) {
	if rs, ok := v.([]domain.Real); ok {
		out := make([]domain.Real, len(rs))
		copy(out, rs)
		return out, nil
	}
	items, err := toSlice(v)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Real, len(items))
	for i, item := range items {
		r, err := toReal(item)
		if err != nil {
			return nil, err
		}
		out[i] = r
	}
	return out, nil
}

func toStringSlice(v any) ([]string, error) {
	if ss, ok := v.([]string); ok {
		out := make([]string, len(ss))
		copy(out, ss)
		return out, nil
	}
	items, err := toSlice(v)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(items))
	for i, item := range items {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("expected string, got %T", item)
		}
		out[i] = s
	}
	return out, nil
}

func toMatrix(v any) (domain.Matrix, error) {
	if m, ok := v.(domain.Matrix); ok {
		out := make(domain.Matrix, len(m))
		for i, row := range m {
			out[i] = append([]domain.Real(nil), row...)
		}
		return out, nil
	}
	items, err := toSlice(v)
	if err != nil {
		return nil, err
	}
	out := make(domain.Matrix, len(items))
	for i, item := range items {
		row, err := toRealSlice(item)
		if err != nil {
			return nil, err
		}
		out[i] = row
	}
	return out, nil
}

func toStereoSample(v any) (domain.StereoSample, error) {
	switch x := v.(type) {
	case domain.StereoSample:
		return x, nil
	case map[string]any:
		left, err := toReal(x["left"])
		if err != nil {
			return domain.StereoSample{}, fmt.Errorf("left channel: %w", err)
		}
		right, err := toReal(x["right"])
		if err != nil {
			return domain.StereoSample{}, fmt.Errorf("right channel: %w", err)
		}
		return domain.StereoSample{Left: left, Right: right}, nil
	default:
		return domain.StereoSample{}, fmt.Errorf("expected stereo sample, got %T", v)
	}
}
