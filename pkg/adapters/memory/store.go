// Package memory provides an in-process ports.PoolStore, used as the
// default backend of the HTTP surface and in tests.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/debeat/essentia/pkg/adapters/poolio"
	"github.com/debeat/essentia/pkg/pool"
	"github.com/debeat/essentia/pkg/ports"
)

// Store keeps pool snapshots in a map. Snapshots are taken on Save so later
// mutations of the source pool do not leak into the store.
type Store struct {
	mu    sync.RWMutex
	pools map[string]*poolio.Snapshot
}

// New creates an empty store.
func New() *Store {
	return &Store{pools: make(map[string]*poolio.Snapshot)}
}

func (s *Store) Save(ctx context.Context, id string, p *pool.Pool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pools[id] = poolio.Capture(p)
	return nil
}

func (s *Store) Load(ctx context.Context, id string) (*pool.Pool, error) {
	s.mu.RLock()
	snap, ok := s.pools[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ports.ErrPoolNotFound
	}
	return poolio.Restore(snap)
}

func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pools, id)
	return nil
}

func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.pools))
	for id := range s.pools {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
