package essentia

import (
	"context"
	"log/slog"

	"github.com/debeat/essentia/internal/logging"
	"github.com/debeat/essentia/pkg/algorithms"
	"github.com/debeat/essentia/pkg/pool"
	"github.com/debeat/essentia/pkg/registry"
	"github.com/debeat/essentia/pkg/scheduler"
)

// Engine builds and runs analysis networks from pipeline definitions.
type Engine struct {
	logger *slog.Logger
	algos  *registry.Registry
	hooks  scheduler.Hooks
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the engine and its networks.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithAlgorithms replaces the default algorithm registry.
func WithAlgorithms(r *registry.Registry) Option {
	return func(e *Engine) {
		if r != nil {
			e.algos = r
		}
	}
}

// WithHooks installs scheduler hooks on every network the engine builds.
func WithHooks(h scheduler.Hooks) Option {
	return func(e *Engine) { e.hooks = h }
}

// New creates an engine. Without options it logs nowhere and knows every
// built-in algorithm.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(e)
	}
	if e.algos == nil {
		r := registry.New()
		if err := algorithms.RegisterAll(r); err != nil {
			return nil, err
		}
		e.algos = r
	}
	return e, nil
}

// Algorithms returns the engine's registry.
func (e *Engine) Algorithms() *registry.Registry { return e.algos }

// Run builds the pipeline and executes it to completion, returning the
// results pool.
func (e *Engine) Run(ctx context.Context, p *Pipeline) (*pool.Pool, error) {
	network, results, err := e.Build(p)
	if err != nil {
		return nil, err
	}
	if err := network.Run(ctx); err != nil {
		return nil, err
	}
	return results, nil
}
