package essentia

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
	"github.com/debeat/essentia/pkg/scheduler"
	"github.com/debeat/essentia/pkg/streaming"
)

// ErrInvalidPipeline is returned when a pipeline definition cannot be
// built.
var ErrInvalidPipeline = errors.New("invalid pipeline")

// Pipeline is a declarative network definition.
type Pipeline struct {
	Name        string           `yaml:"name"`
	Algorithms  []AlgorithmSpec  `yaml:"algorithms"`
	Connections []ConnectionSpec `yaml:"connections"`
}

// AlgorithmSpec names one algorithm instance and its configuration.
type AlgorithmSpec struct {
	ID     string         `yaml:"id"`
	Type   string         `yaml:"type"`
	Params map[string]any `yaml:"params"`
}

// ConnectionSpec wires an output to an input, both in "id.port" form.
type ConnectionSpec struct {
	From string `yaml:"from"`
	To   string `yaml:"to"`
}

// LoadPipeline parses a YAML pipeline definition.
func LoadPipeline(r io.Reader) (*Pipeline, error) {
	var p Pipeline
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPipeline, err)
	}
	return &p, nil
}

// Build instantiates, configures and wires the pipeline. All PoolStorage
// nodes write into the returned results pool.
func (e *Engine) Build(p *Pipeline) (*scheduler.Network, *pool.Pool, error) {
	if len(p.Algorithms) == 0 {
		return nil, nil, fmt.Errorf("%w: no algorithms", ErrInvalidPipeline)
	}

	results := pool.New()
	instances := make(map[string]streaming.Algorithm, len(p.Algorithms))
	for _, spec := range p.Algorithms {
		if spec.ID == "" {
			return nil, nil, fmt.Errorf("%w: algorithm without id", ErrInvalidPipeline)
		}
		if _, ok := instances[spec.ID]; ok {
			return nil, nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidPipeline, spec.ID)
		}
		alg, err := e.algos.Create(spec.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %q: %v", ErrInvalidPipeline, spec.ID, err)
		}
		if err := alg.Configure(domain.Params(spec.Params)); err != nil {
			return nil, nil, fmt.Errorf("configure %q: %w", spec.ID, err)
		}
		if storage, ok := alg.(*streaming.PoolStorage); ok {
			storage.SetPool(results)
		}
		instances[spec.ID] = alg
		e.logger.Debug("algorithm created", "id", spec.ID, "type", spec.Type)
	}

	for _, conn := range p.Connections {
		if err := connectEndpoints(instances, conn); err != nil {
			return nil, nil, err
		}
	}

	network := scheduler.New(
		scheduler.WithLogger(e.logger),
		scheduler.WithHooks(e.hooks),
	)
	for _, spec := range p.Algorithms {
		network.Add(instances[spec.ID])
	}
	return network, results, nil
}

func connectEndpoints(instances map[string]streaming.Algorithm, conn ConnectionSpec) error {
	fromID, fromPort, err := splitEndpoint(conn.From)
	if err != nil {
		return err
	}
	toID, toPort, err := splitEndpoint(conn.To)
	if err != nil {
		return err
	}

	producer, ok := instances[fromID]
	if !ok {
		return fmt.Errorf("%w: unknown algorithm %q in %q", ErrInvalidPipeline, fromID, conn.From)
	}
	consumer, ok := instances[toID]
	if !ok {
		return fmt.Errorf("%w: unknown algorithm %q in %q", ErrInvalidPipeline, toID, conn.To)
	}

	src, err := producer.Output(fromPort)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPipeline, conn.From, err)
	}
	dst, err := consumer.Input(toPort)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidPipeline, conn.To, err)
	}
	if err := streaming.Connect(src, dst); err != nil {
		return fmt.Errorf("connect %q to %q: %w", conn.From, conn.To, err)
	}
	return nil
}

func splitEndpoint(s string) (id, port string, err error) {
	// Port names never contain dots; descriptor-style ids may, so split
	// on the last one.
	i := strings.LastIndex(s, ".")
	if i <= 0 || i == len(s)-1 {
		return "", "", fmt.Errorf("%w: endpoint %q is not id.port", ErrInvalidPipeline, s)
	}
	return s[:i], s[i+1:], nil
}
