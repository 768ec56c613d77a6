package streaming

import (
	"fmt"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
)

// PoolStorage is a sink algorithm feeding every arriving value into a pool
// under a fixed descriptor name. Composites use it to buffer upstream
// streams in their private pool; networks can use it directly as a terminal
// node writing into the results store.
type PoolStorage struct {
	Base
	pool  *pool.Pool
	key   string
	dtype domain.DataType
	in    *Sink
}

// NewPoolStorage creates a storage sink writing values of the given type to
// key in p.
func NewPoolStorage(p *pool.Pool, key string, dt domain.DataType) *PoolStorage {
	ps := &PoolStorage{
		Base:  NewBase("PoolStorage"),
		pool:  p,
		key:   key,
		dtype: dt,
	}
	ps.in = ps.DeclareInput("data", dt, "the values to store")
	return ps
}

// Key returns the descriptor name values are stored under.
func (ps *PoolStorage) Key() string { return ps.key }

// DataInput returns the single input port, for wiring inside composites.
func (ps *PoolStorage) DataInput() *Sink { return ps.in }

// SetPool redirects storage to another pool. Used by network builders that
// bind terminal sinks to the run's results pool.
func (ps *PoolStorage) SetPool(p *pool.Pool) { ps.pool = p }

// Configure accepts key and type options, overriding the construction-time
// descriptor name and value type. Changing the type also retypes the input
// port, so Configure must run before the port is connected.
func (ps *PoolStorage) Configure(params domain.Params) error {
	var cfg struct {
		Key  string `mapstructure:"key"`
		Type string `mapstructure:"type"`
	}
	if err := params.Decode(&cfg); err != nil {
		return err
	}
	if cfg.Key != "" {
		ps.key = cfg.Key
	}
	if cfg.Type != "" {
		dt := domain.ParseDataType(cfg.Type)
		if dt == domain.TypeUnknown {
			return domain.ConfigErrorf("unknown data type %q", cfg.Type)
		}
		ps.dtype = dt
		ps.in.dtype = dt
	}
	return nil
}

// Process drains the input buffer into the pool.
func (ps *PoolStorage) Process() (Status, error) {
	stored := 0
	for {
		v, ok := ps.in.Pop()
		if !ok {
			break
		}
		if err := storeValue(ps.pool, ps.key, ps.dtype, v); err != nil {
			return NoInput, err
		}
		stored++
	}
	if stored > 0 {
		return OK, nil
	}
	if ps.in.Exhausted() {
		return Finished, nil
	}
	return NoInput, nil
}

// Reset clears the input buffer. The pool itself belongs to the caller and
// is not cleared here.
func (ps *PoolStorage) Reset() { ps.ResetPorts() }

func storeValue(p *pool.Pool, key string, dt domain.DataType, v any) error {
	switch dt {
	case domain.TypeReal:
		r, ok := v.(domain.Real)
		if !ok {
			return fmt.Errorf("streaming: %q expected real, got %T", key, v)
		}
		return pool.Add(p, key, r)
	case domain.TypeString:
		s, ok := v.(string)
		if !ok {
			return fmt.Errorf("streaming: %q expected string, got %T", key, v)
		}
		return pool.Add(p, key, s)
	case domain.TypeRealVector:
		vec, ok := v.([]domain.Real)
		if !ok {
			return fmt.Errorf("streaming: %q expected vector of reals, got %T", key, v)
		}
		return pool.Add(p, key, vec)
	case domain.TypeStringVector:
		vec, ok := v.([]string)
		if !ok {
			return fmt.Errorf("streaming: %q expected vector of strings, got %T", key, v)
		}
		return pool.Add(p, key, vec)
	case domain.TypeMatrix:
		m, ok := v.(domain.Matrix)
		if !ok {
			return fmt.Errorf("streaming: %q expected matrix, got %T", key, v)
		}
		return pool.Add(p, key, m)
	case domain.TypeStereoSample:
		st, ok := v.(domain.StereoSample)
		if !ok {
			return fmt.Errorf("streaming: %q expected stereo sample, got %T", key, v)
		}
		return pool.Add(p, key, st)
	default:
		return fmt.Errorf("streaming: %q has unsupported type %s", key, dt)
	}
}
