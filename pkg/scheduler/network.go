package scheduler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/debeat/essentia/internal/logging"
	"github.com/debeat/essentia/pkg/streaming"
)

var (
	// ErrCycle is returned when the port connections form a cycle.
	ErrCycle = errors.New("cycle detected")
	// ErrStalled is returned when a full round over the network makes no
	// progress while algorithms are still unfinished.
	ErrStalled = errors.New("network stalled")
	// ErrUnknownProducer is returned when an input is fed by an algorithm
	// that was never added to the network.
	ErrUnknownProducer = errors.New("producer not registered")
)

// Hooks receives callbacks during a run. Nil callbacks are skipped.
type Hooks struct {
	// OnProcess fires after every Process step.
	OnProcess func(algorithm string, status streaming.Status, elapsed time.Duration)
}

// Option configures a Network.
type Option func(*Network)

// WithLogger sets the logger used for run diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(n *Network) {
		if l != nil {
			n.logger = l
		}
	}
}

// WithHooks installs run callbacks, typically for metrics.
func WithHooks(h Hooks) Option {
	return func(n *Network) { n.hooks = h }
}

// Network is a push-mode executor over connected streaming algorithms.
// It is not safe for concurrent use.
type Network struct {
	algs   []streaming.Algorithm
	owners map[*streaming.Source]streaming.Algorithm
	logger *slog.Logger
	hooks  Hooks
}

// New creates an empty network.
func New(opts ...Option) *Network {
	n := &Network{
		owners: make(map[*streaming.Source]streaming.Algorithm),
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// Add registers algorithms with the network. Every algorithm whose outputs
// feed another registered algorithm must itself be registered before Run.
func (n *Network) Add(algs ...streaming.Algorithm) {
	for _, a := range algs {
		n.algs = append(n.algs, a)
		for _, out := range a.Outputs() {
			n.owners[out] = a
		}
	}
}

// Algorithms returns the registered algorithms in insertion order.
func (n *Network) Algorithms() []streaming.Algorithm {
	return append([]streaming.Algorithm(nil), n.algs...)
}

// dependencies derives, per algorithm, the set of registered algorithms
// feeding its inputs.
func (n *Network) dependencies() (map[streaming.Algorithm][]streaming.Algorithm, error) {
	deps := make(map[streaming.Algorithm][]streaming.Algorithm, len(n.algs))
	for _, a := range n.algs {
		seen := make(map[streaming.Algorithm]bool)
		for _, in := range a.Inputs() {
			src := in.Source()
			if src == nil {
				continue
			}
			producer, ok := n.owners[src]
			if !ok {
				return nil, fmt.Errorf("input %q of %s: %w", in.Name(), a.Name(), ErrUnknownProducer)
			}
			if producer == a || seen[producer] {
				continue
			}
			seen[producer] = true
			deps[a] = append(deps[a], producer)
		}
	}
	return deps, nil
}

// order returns the algorithms sorted so producers come before consumers.
// Depth-first search with permanent and temporary marks; hitting a node that
// is already on the recursion stack means the connections form a cycle.
func (n *Network) order() ([]streaming.Algorithm, error) {
	deps, err := n.dependencies()
	if err != nil {
		return nil, err
	}

	permanent := make(map[streaming.Algorithm]bool, len(n.algs))
	temporary := make(map[streaming.Algorithm]bool, len(n.algs))
	ordered := make([]streaming.Algorithm, 0, len(n.algs))

	var visit func(a streaming.Algorithm) error
	visit = func(a streaming.Algorithm) error {
		if permanent[a] {
			return nil
		}
		if temporary[a] {
			return fmt.Errorf("%w involving %s", ErrCycle, a.Name())
		}
		temporary[a] = true
		for _, dep := range deps[a] {
			if err := visit(dep); err != nil {
				return err
			}
		}
		delete(temporary, a)
		permanent[a] = true
		ordered = append(ordered, a)
		return nil
	}

	for _, a := range n.algs {
		if err := visit(a); err != nil {
			return nil, err
		}
	}
	return ordered, nil
}

// Run steps every algorithm in dependency order, round after round, until
// all of them report Finished. When an algorithm finishes, its outputs are
// closed so downstream consumers observe end-of-stream. A round where no
// algorithm produces data and none finishes aborts with ErrStalled.
func (n *Network) Run(ctx context.Context) error {
	ordered, err := n.order()
	if err != nil {
		return err
	}
	n.logger.Debug("network run starting", "algorithms", len(ordered))

	finished := make(map[streaming.Algorithm]bool, len(ordered))
	for len(finished) < len(ordered) {
		if err := ctx.Err(); err != nil {
			return err
		}
		progress := false
		for _, a := range ordered {
			if finished[a] {
				continue
			}
			start := time.Now()
			st, err := a.Process()
			elapsed := time.Since(start)
			if n.hooks.OnProcess != nil {
				n.hooks.OnProcess(a.Name(), st, elapsed)
			}
			if err != nil {
				return fmt.Errorf("algorithm %s: %w", a.Name(), err)
			}
			n.logger.Debug("processed", "algorithm", a.Name(), "status", st.String())
			switch st {
			case streaming.OK:
				progress = true
			case streaming.Finished:
				finished[a] = true
				for _, out := range a.Outputs() {
					out.Close()
				}
				progress = true
			}
		}
		if !progress {
			return fmt.Errorf("%w: waiting on %s", ErrStalled, n.unfinishedNames(finished))
		}
	}
	n.logger.Debug("network run complete", "algorithms", len(ordered))
	return nil
}

// Reset restores every registered algorithm to its initial state so the
// network can be run again.
func (n *Network) Reset() {
	for _, a := range n.algs {
		a.Reset()
	}
}

func (n *Network) unfinishedNames(finished map[streaming.Algorithm]bool) string {
	var names []string
	for _, a := range n.algs {
		if !finished[a] {
			names = append(names, a.Name())
		}
	}
	return strings.Join(names, ", ")
}
