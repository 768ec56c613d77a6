package pool_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
)

func TestMerge_DefaultKeepsDestination(t *testing.T) {
	dst := pool.New()
	require.NoError(t, pool.Add(dst, "a.x", 1.0))

	src := pool.New()
	require.NoError(t, pool.Add(src, "a.x", 9.0))
	require.NoError(t, pool.Add(src, "a.y", 2.0))

	require.NoError(t, dst.Merge(src, pool.MergeDefault))

	xs, err := pool.Value[[]domain.Real](dst, "a.x")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{1}, xs, "existing descriptor must keep destination data")

	ys, err := pool.Value[[]domain.Real](dst, "a.y")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{2}, ys, "absent descriptor must be inserted")
}

func TestMerge_EmptyIntoPopulatedReplaceIsNoop(t *testing.T) {
	dst := pool.New()
	require.NoError(t, pool.Add(dst, "a.x", 1.0))
	require.NoError(t, pool.Set(dst, "a.s", "keep"))

	require.NoError(t, dst.Merge(pool.New(), pool.MergeReplace))

	assert.Equal(t, []string{"a.s", "a.x"}, dst.DescriptorNames())
}

func TestMerge_ReplaceSubstitutesRegardlessOfType(t *testing.T) {
	dst := pool.New()
	require.NoError(t, pool.Add(dst, "a.x", "was-a-string"))

	src := pool.New()
	require.NoError(t, pool.Add(src, "a.x", 42.0))

	require.NoError(t, dst.Merge(src, pool.MergeReplace))

	xs, err := pool.Value[[]domain.Real](dst, "a.x")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{42}, xs)
	assert.False(t, pool.Contains[[]string](dst, "a.x"))
	assert.NoError(t, dst.CheckIntegrity())
}

func TestMerge_AppendConcatenates(t *testing.T) {
	dst := pool.New()
	require.NoError(t, pool.Add(dst, "a.x", 1.0))

	src := pool.New()
	require.NoError(t, pool.Add(src, "a.x", 2.0))
	require.NoError(t, pool.Add(src, "a.x", 3.0))

	require.NoError(t, dst.Merge(src, pool.MergeAppend))

	xs, err := pool.Value[[]domain.Real](dst, "a.x")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{1, 2, 3}, xs)
}

func TestMerge_AppendTypeMismatchIsAtomic(t *testing.T) {
	dst := pool.New()
	require.NoError(t, pool.Add(dst, "a.x", 1.0))
	require.NoError(t, pool.Add(dst, "a.s", "hello"))

	src := pool.New()
	require.NoError(t, pool.Add(src, "a.ok", 5.0))
	require.NoError(t, pool.Add(src, "a.s", 7.0)) // type clash with dst's string

	err := dst.Merge(src, pool.MergeAppend)
	require.ErrorIs(t, err, pool.ErrTypeCollision)

	// Nothing may have been merged, not even the non-conflicting key.
	assert.Equal(t, []string{"a.s", "a.x"}, dst.DescriptorNames())
	ss, verr := pool.Value[[]string](dst, "a.s")
	require.NoError(t, verr)
	assert.Equal(t, []string{"hello"}, ss)

	// The source is untouched as well.
	oks, verr := pool.Value[[]domain.Real](src, "a.ok")
	require.NoError(t, verr)
	assert.Equal(t, []domain.Real{5}, oks)
}

func TestMerge_Interleave(t *testing.T) {
	dst := pool.New()
	require.NoError(t, pool.Add(dst, "a.x", 1.0))
	require.NoError(t, pool.Add(dst, "a.x", 3.0))

	src := pool.New()
	require.NoError(t, pool.Add(src, "a.x", 2.0))
	require.NoError(t, pool.Add(src, "a.x", 4.0))

	require.NoError(t, dst.Merge(src, pool.MergeInterleave))

	xs, err := pool.Value[[]domain.Real](dst, "a.x")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{1, 2, 3, 4}, xs)
}

func TestMerge_InterleaveLengthMismatch(t *testing.T) {
	dst := pool.New()
	require.NoError(t, pool.Add(dst, "a.x", 1.0))

	src := pool.New()
	require.NoError(t, pool.Add(src, "a.x", 2.0))
	require.NoError(t, pool.Add(src, "a.x", 3.0))

	err := dst.Merge(src, pool.MergeInterleave)
	require.ErrorIs(t, err, pool.ErrLengthMismatch)

	xs, verr := pool.Value[[]domain.Real](dst, "a.x")
	require.NoError(t, verr)
	assert.Equal(t, []domain.Real{1}, xs, "failed merge must leave destination unchanged")
}

func TestMerge_InterleaveInsertsWhenAbsent(t *testing.T) {
	dst := pool.New()
	src := pool.New()
	require.NoError(t, pool.Add(src, "a.x", 1.0))

	require.NoError(t, dst.Merge(src, pool.MergeInterleave))
	xs, err := pool.Value[[]domain.Real](dst, "a.x")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{1}, xs)
}

func TestMergeValues_SingleKey(t *testing.T) {
	p := pool.New()
	require.NoError(t, pool.Add(p, "a.x", 1.0))

	require.NoError(t, pool.MergeValues(p, "a.x", []domain.Real{2, 3}, pool.MergeAppend))
	xs, err := pool.Value[[]domain.Real](p, "a.x")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{1, 2, 3}, xs)

	err = pool.MergeValues(p, "a.x", []string{"nope"}, pool.MergeAppend)
	assert.ErrorIs(t, err, pool.ErrTypeCollision)
}

func TestMergeSingle(t *testing.T) {
	p := pool.New()
	require.NoError(t, pool.Set(p, "meta.bpm", 120.0))

	// Default keeps the destination.
	require.NoError(t, pool.MergeSingle(p, "meta.bpm", 90.0, pool.MergeDefault))
	v, err := pool.Value[domain.Real](p, "meta.bpm")
	require.NoError(t, err)
	assert.Equal(t, 120.0, v)

	// Replace overwrites.
	require.NoError(t, pool.MergeSingle(p, "meta.bpm", 90.0, pool.MergeReplace))
	v, err = pool.Value[domain.Real](p, "meta.bpm")
	require.NoError(t, err)
	assert.Equal(t, 90.0, v)

	// Append against an accumulating binding is a mode collision.
	require.NoError(t, pool.Add(p, "frames.e", 1.0))
	err = pool.MergeSingle(p, "frames.e", 2.0, pool.MergeAppend)
	assert.ErrorIs(t, err, pool.ErrModeCollision)
}

func TestParseMergeType(t *testing.T) {
	for _, valid := range []string{"", "replace", "append", "interleave"} {
		_, err := pool.ParseMergeType(valid)
		assert.NoError(t, err, valid)
	}
	_, err := pool.ParseMergeType("union")
	assert.Error(t, err)
}
