package streaming_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
	"github.com/debeat/essentia/pkg/streaming"
)

// newSumComposite buffers reals into a private pool and emits their sum as a
// single aggregate value once upstream closes.
func newSumComposite(t *testing.T) (*streaming.Composite, *streaming.Source) {
	t.Helper()

	c := streaming.NewComposite("sum")
	ps := streaming.NewPoolStorage(c.Pool(), "internal.values", domain.TypeReal)
	in, err := ps.Input("data")
	require.NoError(t, err)
	c.DeclareProxyInput("signal", domain.TypeReal, "values to accumulate", in)
	c.AddInner(ps)

	out := c.DeclareOutput("sum", domain.TypeReal, "sum of all values")
	c.SetFinalize(func(p *pool.Pool) error {
		vs, err := pool.Value[[]domain.Real](p, "internal.values")
		if err != nil {
			return err
		}
		var total domain.Real
		for _, v := range vs {
			total += v
		}
		out.Push(total)
		return nil
	})
	return c, out
}

func TestComposite_PassWhileUpstreamLive(t *testing.T) {
	c, _ := newSumComposite(t)
	feed := newPortFixture(domain.TypeReal, domain.TypeReal)
	in, err := c.Input("signal")
	require.NoError(t, err)
	require.NoError(t, streaming.Connect(feed.out, in))

	feed.out.Push(1.0)
	st, err := c.Process()
	require.NoError(t, err)
	assert.Equal(t, streaming.Pass, st)
	assert.Equal(t, streaming.PhaseAccumulating, c.Phase())

	feed.out.Push(2.0)
	st, err = c.Process()
	require.NoError(t, err)
	assert.Equal(t, streaming.Pass, st)
}

func TestComposite_SingleAggregateOutput(t *testing.T) {
	c, out := newSumComposite(t)
	feed := newPortFixture(domain.TypeReal, domain.TypeReal)
	in, err := c.Input("signal")
	require.NoError(t, err)
	require.NoError(t, streaming.Connect(feed.out, in))

	tap := newPortFixture(domain.TypeReal, domain.TypeReal)
	require.NoError(t, streaming.Connect(out, tap.in))

	for _, v := range []domain.Real{1, 2, 3, 4} {
		feed.out.Push(v)
	}
	st, err := c.Process()
	require.NoError(t, err)
	assert.Equal(t, streaming.Pass, st)

	feed.out.Close()
	st, err = c.Process()
	require.NoError(t, err)
	assert.Equal(t, streaming.Finished, st)
	assert.Equal(t, streaming.PhaseDone, c.Phase())

	require.Equal(t, 1, tap.in.Len())
	v, ok := tap.in.Pop()
	require.True(t, ok)
	assert.InDelta(t, 10.0, v.(domain.Real), 1e-12)

	// Further steps remain Finished and never emit again.
	st, err = c.Process()
	require.NoError(t, err)
	assert.Equal(t, streaming.Finished, st)
	assert.Equal(t, 0, tap.in.Len())
}

func TestComposite_ResetClearsPoolAndPhase(t *testing.T) {
	c, _ := newSumComposite(t)
	feed := newPortFixture(domain.TypeReal, domain.TypeReal)
	in, err := c.Input("signal")
	require.NoError(t, err)
	require.NoError(t, streaming.Connect(feed.out, in))

	feed.out.Push(1.0)
	feed.out.Close()
	_, err = c.Process()
	require.NoError(t, err)
	require.Equal(t, streaming.PhaseDone, c.Phase())

	c.Reset()
	assert.Equal(t, streaming.PhaseAccumulating, c.Phase())
	assert.Empty(t, c.Pool().DescriptorNames())
}
