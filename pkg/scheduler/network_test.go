package scheduler_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
	"github.com/debeat/essentia/pkg/scheduler"
	"github.com/debeat/essentia/pkg/streaming"
)

// emitter pushes one value per step and finishes when drained.
type emitter struct {
	streaming.Base
	values []domain.Real
	pos    int
	out    *streaming.Source
}

func newEmitter(values ...domain.Real) *emitter {
	e := &emitter{Base: streaming.NewBase("emitter"), values: values}
	e.out = e.DeclareOutput("signal", domain.TypeReal, "emitted values")
	return e
}

func (e *emitter) Configure(domain.Params) error { return nil }

func (e *emitter) Process() (streaming.Status, error) {
	if e.pos >= len(e.values) {
		return streaming.Finished, nil
	}
	e.out.Push(e.values[e.pos])
	e.pos++
	return streaming.OK, nil
}

func (e *emitter) Reset() {
	e.pos = 0
	e.ResetPorts()
}

// gain multiplies every incoming value by a fixed factor.
type gain struct {
	streaming.Base
	factor domain.Real
	in     *streaming.Sink
	out    *streaming.Source
}

func newGain(name string, factor domain.Real) *gain {
	g := &gain{Base: streaming.NewBase(name), factor: factor}
	g.in = g.DeclareInput("signal", domain.TypeReal, "input values")
	g.out = g.DeclareOutput("signal", domain.TypeReal, "scaled values")
	return g
}

func (g *gain) Configure(domain.Params) error { return nil }

func (g *gain) Process() (streaming.Status, error) {
	n := 0
	for {
		v, ok := g.in.Pop()
		if !ok {
			break
		}
		g.out.Push(v.(domain.Real) * g.factor)
		n++
	}
	if n > 0 {
		return streaming.OK, nil
	}
	if g.in.Exhausted() {
		return streaming.Finished, nil
	}
	return streaming.NoInput, nil
}

func (g *gain) Reset() { g.ResetPorts() }

func buildChain(t *testing.T, p *pool.Pool, values ...domain.Real) *scheduler.Network {
	t.Helper()

	src := newEmitter(values...)
	dbl := newGain("double", 2)
	sink := streaming.NewPoolStorage(p, "signal.scaled", domain.TypeReal)

	sinkIn, err := sink.Input("data")
	require.NoError(t, err)
	require.NoError(t, streaming.Connect(src.out, dbl.in))
	require.NoError(t, streaming.Connect(dbl.out, sinkIn))

	n := scheduler.New()
	n.Add(src, dbl, sink)
	return n
}

func TestRun_LinearChain(t *testing.T) {
	p := pool.New()
	n := buildChain(t, p, 1, 2, 3)

	require.NoError(t, n.Run(context.Background()))

	got, err := pool.Value[[]domain.Real](p, "signal.scaled")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{2, 4, 6}, got)
}

func TestRun_CycleDetected(t *testing.T) {
	a := newGain("a", 1)
	b := newGain("b", 1)
	require.NoError(t, streaming.Connect(a.out, b.in))
	require.NoError(t, streaming.Connect(b.out, a.in))

	n := scheduler.New()
	n.Add(a, b)

	err := n.Run(context.Background())
	require.ErrorIs(t, err, scheduler.ErrCycle)
}

func TestRun_UnregisteredProducer(t *testing.T) {
	src := newEmitter(1)
	g := newGain("g", 1)
	require.NoError(t, streaming.Connect(src.out, g.in))

	n := scheduler.New()
	n.Add(g) // src deliberately missing

	err := n.Run(context.Background())
	require.ErrorIs(t, err, scheduler.ErrUnknownProducer)
}

func TestRun_StallsWithoutProducer(t *testing.T) {
	g := newGain("dangling", 1)

	n := scheduler.New()
	n.Add(g)

	err := n.Run(context.Background())
	require.ErrorIs(t, err, scheduler.ErrStalled)
	assert.Contains(t, err.Error(), "dangling")
}

func TestRun_CancelledContext(t *testing.T) {
	p := pool.New()
	n := buildChain(t, p, 1, 2, 3)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := n.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
}

func TestRun_HooksObserveEveryStep(t *testing.T) {
	p := pool.New()

	var calls []string
	hooks := scheduler.Hooks{
		OnProcess: func(alg string, st streaming.Status, _ time.Duration) {
			calls = append(calls, alg+":"+st.String())
		},
	}

	src := newEmitter(1)
	sink := streaming.NewPoolStorage(p, "signal.raw", domain.TypeReal)
	sinkIn, err := sink.Input("data")
	require.NoError(t, err)
	require.NoError(t, streaming.Connect(src.out, sinkIn))

	n := scheduler.New(scheduler.WithHooks(hooks))
	n.Add(src, sink)
	require.NoError(t, n.Run(context.Background()))

	assert.Contains(t, calls, "emitter:ok")
	assert.Contains(t, calls, "emitter:finished")
	assert.Contains(t, calls, "PoolStorage:finished")
}

func TestReset_AllowsRerun(t *testing.T) {
	p := pool.New()
	n := buildChain(t, p, 1, 2)

	require.NoError(t, n.Run(context.Background()))
	n.Reset()
	require.NoError(t, n.Run(context.Background()))

	got, err := pool.Value[[]domain.Real](p, "signal.scaled")
	require.NoError(t, err)
	assert.Equal(t, []domain.Real{2, 4, 2, 4}, got)
}
