package poolio_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debeat/essentia/pkg/adapters/poolio"
	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
)

func fullPool(t *testing.T) *pool.Pool {
	t.Helper()
	p := pool.New()
	require.NoError(t, pool.Add(p, "lowlevel.energy", domain.Real(0.5)))
	require.NoError(t, pool.Add(p, "lowlevel.energy", domain.Real(0.7)))
	require.NoError(t, pool.Add(p, "lowlevel.mfcc", []domain.Real{1, 2, 3}))
	require.NoError(t, pool.Add(p, "metadata.tags", "rock"))
	require.NoError(t, pool.Add(p, "metadata.artists", []string{"a", "b"}))
	require.NoError(t, pool.Add(p, "rhythm.transform", domain.Matrix{{1, 2}, {3, 4}}))
	require.NoError(t, pool.Add(p, "audio.stereo", domain.StereoSample{Left: -0.25, Right: 0.75}))
	require.NoError(t, pool.Set(p, "metadata.version", "2.1"))
	require.NoError(t, pool.Set(p, "audio.length", domain.Real(183.5)))
	require.NoError(t, pool.Set(p, "audio.envelope", []domain.Real{0.1, 0.9}))
	return p
}

func assertPoolsEqual(t *testing.T, want, got *pool.Pool) {
	t.Helper()
	require.Equal(t, want.DescriptorNames(), got.DescriptorNames())
	for _, name := range want.DescriptorNames() {
		assert.Equal(t, want.IsSingleValue(name), got.IsSingleValue(name), name)
	}

	energy, err := pool.Value[[]domain.Real](got, "lowlevel.energy")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{0.5, 0.7}, energy)

	mfcc, err := pool.Value[[][]domain.Real](got, "lowlevel.mfcc")
	require.NoError(t, err)
	assert.Equal(t, [][]domain.Real{{1, 2, 3}}, mfcc)

	matrices, err := pool.Value[[]domain.Matrix](got, "rhythm.transform")
	require.NoError(t, err)
	assert.Equal(t, []domain.Matrix{{{1, 2}, {3, 4}}}, matrices)

	stereo, err := pool.Value[[]domain.StereoSample](got, "audio.stereo")
	require.NoError(t, err)
	assert.Equal(t, []domain.StereoSample{{Left: -0.25, Right: 0.75}}, stereo)

	version, err := pool.Value[string](got, "metadata.version")
	require.NoError(t, err)
	assert.Equal(t, "2.1", version)

	length, err := pool.Value[domain.Real](got, "audio.length")
	require.NoError(t, err)
	assert.InDelta(t, 183.5, length, 1e-12)

	envelope, err := pool.Value[[]domain.Real](got, "audio.envelope")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{0.1, 0.9}, envelope)
}

func TestCaptureRestore(t *testing.T) {
	p := fullPool(t)
	got, err := poolio.Restore(poolio.Capture(p))
	require.NoError(t, err)
	assertPoolsEqual(t, p, got)
}

func TestYAMLRoundTrip(t *testing.T) {
	p := fullPool(t)

	var buf bytes.Buffer
	require.NoError(t, poolio.SaveYAML(&buf, p))
	got, err := poolio.LoadYAML(&buf)
	require.NoError(t, err)
	assertPoolsEqual(t, p, got)
}

func TestJSONRoundTrip(t *testing.T) {
	p := fullPool(t)

	var buf bytes.Buffer
	require.NoError(t, poolio.SaveJSON(&buf, p))
	got, err := poolio.LoadJSON(&buf)
	require.NoError(t, err)
	assertPoolsEqual(t, p, got)
}

func TestRestore_UnknownType(t *testing.T) {
	_, err := poolio.Restore(&poolio.Snapshot{Descriptors: []poolio.Descriptor{
		{Name: "a.b", Type: "complex", Values: []any{1}},
	}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "a.b")
}

func TestRestore_SingleMatrixRejected(t *testing.T) {
	_, err := poolio.Restore(&poolio.Snapshot{Descriptors: []poolio.Descriptor{
		{Name: "a.b", Type: "matrix_real", Single: true, Values: []any{}},
	}})
	require.Error(t, err)
}
