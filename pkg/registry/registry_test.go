package registry_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debeat/essentia/pkg/algorithms"
	"github.com/debeat/essentia/pkg/registry"
)

func TestRegisterAll(t *testing.T) {
	r := registry.New()
	require.NoError(t, algorithms.RegisterAll(r))

	names := r.Names()
	assert.Contains(t, names, "FrameCutter")
	assert.Contains(t, names, "ReplayGain")
	assert.Contains(t, names, "RhythmTransform")
	assert.Contains(t, names, "PoolStorage")
	assert.IsIncreasing(t, names)

	desc, err := r.Describe("ReplayGain")
	require.NoError(t, err)
	assert.NotEmpty(t, desc)
}

func TestCreate_FreshInstances(t *testing.T) {
	r := registry.New()
	require.NoError(t, algorithms.RegisterAll(r))

	a, err := r.Create("FrameCutter")
	require.NoError(t, err)
	b, err := r.Create("FrameCutter")
	require.NoError(t, err)
	assert.NotSame(t, a, b)
	assert.Equal(t, "FrameCutter", a.Name())
}

func TestCreate_Unknown(t *testing.T) {
	r := registry.New()
	_, err := r.Create("Spectralizer")
	require.ErrorIs(t, err, registry.ErrNotRegistered)
}

func TestRegister_Duplicate(t *testing.T) {
	r := registry.New()
	require.NoError(t, algorithms.RegisterAll(r))
	err := algorithms.RegisterAll(r)
	require.ErrorIs(t, err, registry.ErrDuplicate)
}
