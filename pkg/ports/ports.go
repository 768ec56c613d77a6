// Package ports declares the interfaces between the analysis core and its
// adapters.
package ports

import (
	"context"
	"errors"

	"github.com/debeat/essentia/pkg/pool"
)

// ErrPoolNotFound is returned when a store has no pool under the given id.
var ErrPoolNotFound = errors.New("pool not found")

// PoolStore persists analysis result pools under caller-chosen ids.
type PoolStore interface {
	Save(ctx context.Context, id string, p *pool.Pool) error
	Load(ctx context.Context, id string) (*pool.Pool, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]string, error)
}
