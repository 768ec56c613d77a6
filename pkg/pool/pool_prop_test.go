package pool_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
)

// Random sequences of writes must never corrupt the store: types and modes
// stay sticky per name, the namespace invariant holds, and CheckIntegrity
// keeps passing.
func TestProperty_WritesPreserveTypeAndMode(t *testing.T) {
	segments := []string{"a", "b", "c"}
	keyGen := rapid.Custom(func(rt *rapid.T) string {
		depth := rapid.IntRange(1, 3).Draw(rt, "depth")
		key := rapid.SampledFrom(segments).Draw(rt, "seg0")
		for i := 1; i < depth; i++ {
			key += "." + rapid.SampledFrom(segments).Draw(rt, "seg")
		}
		return key
	})

	rapid.Check(t, func(rt *rapid.T) {
		p := pool.New()
		// binding per name: dtype + single, as committed by successful writes
		type bound struct {
			dtype  domain.DataType
			single bool
		}
		bindings := map[string]bound{}

		steps := rapid.IntRange(1, 60).Draw(rt, "steps")
		for i := 0; i < steps; i++ {
			key := keyGen.Draw(rt, "key")
			op := rapid.IntRange(0, 3).Draw(rt, "op")

			var err error
			var want bound
			switch op {
			case 0:
				err = pool.Add(p, key, rapid.Float64Range(-10, 10).Draw(rt, "real"))
				want = bound{domain.TypeReal, false}
			case 1:
				err = pool.Add(p, key, rapid.StringMatching(`[a-z]{1,4}`).Draw(rt, "str"))
				want = bound{domain.TypeString, false}
			case 2:
				err = pool.Set(p, key, rapid.Float64Range(-10, 10).Draw(rt, "sreal"))
				want = bound{domain.TypeReal, true}
			case 3:
				err = pool.Set(p, key, []domain.Real{1, 2})
				want = bound{domain.TypeRealVector, true}
			}

			prev, existed := bindings[key]
			switch {
			case existed && prev == want:
				require.NoError(rt, err, "re-writing same type and mode must succeed")
			case existed:
				require.Error(rt, err, "changing type or mode must fail")
				require.True(rt,
					errors.Is(err, pool.ErrTypeCollision) || errors.Is(err, pool.ErrModeCollision),
					"unexpected error class: %v", err)
			case err == nil:
				bindings[key] = want
			default:
				// First write may still fail on a namespace collision with
				// an ancestor or descendant binding.
				require.ErrorIs(rt, err, pool.ErrKeyCollision)
			}
		}

		require.NoError(rt, p.CheckIntegrity())

		// The namespace invariant: no bound name is a prefix of another.
		names := p.DescriptorNames()
		for _, a := range names {
			for _, b := range names {
				if a != b {
					require.False(rt, len(b) > len(a) && b[:len(a)+1] == a+".",
						"%q and %q violate the namespace invariant", a, b)
				}
			}
		}
	})
}
