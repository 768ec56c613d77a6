package domain

import "math"

// Real is the scalar sample type used throughout the framework.
// It is an alias (not a defined type) so plain float64 literals and slices
// can be passed to any API without conversion.
type Real = float64

// StereoSample is a single interleaved stereo frame.
type StereoSample struct {
	Left  Real `json:"left" yaml:"left"`
	Right Real `json:"right" yaml:"right"`
}

// Matrix is a two-dimensional, row-major block of reals. Rows usually
// represent time frames and columns bands or bins. A Matrix is expected to
// be rectangular; IsRectangular reports whether that holds.
type Matrix [][]Real

// IsRectangular reports whether every row has the same length.
func (m Matrix) IsRectangular() bool {
	if len(m) == 0 {
		return true
	}
	cols := len(m[0])
	for _, row := range m[1:] {
		if len(row) != cols {
			return false
		}
	}
	return true
}

// Dims returns the number of rows and columns. Cols is zero for an empty matrix.
func (m Matrix) Dims() (rows, cols int) {
	if len(m) == 0 {
		return 0, 0
	}
	return len(m), len(m[0])
}

// DataType identifies one of the six semantic types a descriptor can hold.
type DataType int

const (
	TypeUnknown DataType = iota
	TypeReal
	TypeString
	TypeRealVector
	TypeStringVector
	TypeMatrix
	TypeStereoSample
)

// String returns the canonical name used in error messages and exports.
func (t DataType) String() string {
	switch t {
	case TypeReal:
		return "real"
	case TypeString:
		return "string"
	case TypeRealVector:
		return "vector_real"
	case TypeStringVector:
		return "vector_string"
	case TypeMatrix:
		return "matrix_real"
	case TypeStereoSample:
		return "stereo_sample"
	default:
		return "unknown"
	}
}

// ParseDataType is the inverse of String. It returns TypeUnknown for
// unrecognized names.
func ParseDataType(s string) DataType {
	switch s {
	case "real":
		return TypeReal
	case "string":
		return TypeString
	case "vector_real":
		return TypeRealVector
	case "vector_string":
		return TypeStringVector
	case "matrix_real":
		return TypeMatrix
	case "stereo_sample":
		return TypeStereoSample
	default:
		return TypeUnknown
	}
}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v Real) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
