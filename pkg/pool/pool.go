package pool

import (
	"sort"
	"strings"
	"sync"

	"github.com/debeat/essentia/pkg/domain"
)

// subPool is one accumulating sub-map: every write appends to the sequence
// stored under the name.
type subPool[T any] struct {
	mu   sync.Mutex
	data map[string][]T
}

// singlePool is one single-valued sub-map: a name holds exactly one current
// value, overwritten on re-binding.
type singlePool[T any] struct {
	mu   sync.Mutex
	data map[string]T
}

// Pool is a thread-safe store of descriptor names mapped to typed sequences.
// The zero value is not usable; create instances with New.
type Pool struct {
	real         subPool[domain.Real]
	vectorReal   subPool[[]domain.Real]
	str          subPool[string]
	vectorStr    subPool[[]string]
	matrix       subPool[domain.Matrix]
	stereo       subPool[domain.StereoSample]
	singleReal   singlePool[domain.Real]
	singleStr    singlePool[string]
	singleVecReal singlePool[[]domain.Real]
}

// New creates an empty pool.
func New() *Pool {
	p := &Pool{}
	p.real.data = make(map[string][]domain.Real)
	p.vectorReal.data = make(map[string][][]domain.Real)
	p.str.data = make(map[string][]string)
	p.vectorStr.data = make(map[string][][]string)
	p.matrix.data = make(map[string][]domain.Matrix)
	p.stereo.data = make(map[string][]domain.StereoSample)
	p.singleReal.data = make(map[string]domain.Real)
	p.singleStr.data = make(map[string]string)
	p.singleVecReal.data = make(map[string][]domain.Real)
	return p
}

// lockAll acquires every sub-map mutex in the fixed documented order.
// unlockAll must release them in exactly the reverse order.
func (p *Pool) lockAll() {
	p.real.mu.Lock()
	p.vectorReal.mu.Lock()
	p.str.mu.Lock()
	p.vectorStr.mu.Lock()
	p.matrix.mu.Lock()
	p.stereo.mu.Lock()
	p.singleReal.mu.Lock()
	p.singleStr.mu.Lock()
	p.singleVecReal.mu.Lock()
}

func (p *Pool) unlockAll() {
	p.singleVecReal.mu.Unlock()
	p.singleStr.mu.Unlock()
	p.singleReal.mu.Unlock()
	p.stereo.mu.Unlock()
	p.matrix.mu.Unlock()
	p.vectorStr.mu.Unlock()
	p.str.mu.Unlock()
	p.vectorReal.mu.Unlock()
	p.real.mu.Unlock()
}

// binding describes how a name is currently bound.
type binding struct {
	dtype  domain.DataType
	single bool
}

// bindingLocked reports the current binding of name, scanning every sub-map.
// All mutexes must be held.
func (p *Pool) bindingLocked(name string) (binding, bool) {
	if _, ok := p.real.data[name]; ok {
		return binding{domain.TypeReal, false}, true
	}
	if _, ok := p.vectorReal.data[name]; ok {
		return binding{domain.TypeRealVector, false}, true
	}
	if _, ok := p.str.data[name]; ok {
		return binding{domain.TypeString, false}, true
	}
	if _, ok := p.vectorStr.data[name]; ok {
		return binding{domain.TypeStringVector, false}, true
	}
	if _, ok := p.matrix.data[name]; ok {
		return binding{domain.TypeMatrix, false}, true
	}
	if _, ok := p.stereo.data[name]; ok {
		return binding{domain.TypeStereoSample, false}, true
	}
	if _, ok := p.singleReal.data[name]; ok {
		return binding{domain.TypeReal, true}, true
	}
	if _, ok := p.singleStr.data[name]; ok {
		return binding{domain.TypeString, true}, true
	}
	if _, ok := p.singleVecReal.data[name]; ok {
		return binding{domain.TypeRealVector, true}, true
	}
	return binding{}, false
}

// namesLocked returns every bound descriptor name. All mutexes must be held.
func (p *Pool) namesLocked() []string {
	var names []string
	for k := range p.real.data {
		names = append(names, k)
	}
	for k := range p.vectorReal.data {
		names = append(names, k)
	}
	for k := range p.str.data {
		names = append(names, k)
	}
	for k := range p.vectorStr.data {
		names = append(names, k)
	}
	for k := range p.matrix.data {
		names = append(names, k)
	}
	for k := range p.stereo.data {
		names = append(names, k)
	}
	for k := range p.singleReal.data {
		names = append(names, k)
	}
	for k := range p.singleStr.data {
		names = append(names, k)
	}
	for k := range p.singleVecReal.data {
		names = append(names, k)
	}
	return names
}

// validateKeyLocked enforces the namespace invariant: a new name may not be a
// strict ancestor or descendant of any bound name. All mutexes must be held.
func (p *Pool) validateKeyLocked(name string) error {
	for _, existing := range p.namesLocked() {
		if existing == name {
			continue
		}
		if strings.HasPrefix(existing, name+".") {
			return newError(ErrKeyCollision, name, domain.TypeUnknown, domain.TypeUnknown,
				"descendant "+existing+" already holds data")
		}
		if strings.HasPrefix(name, existing+".") {
			return newError(ErrKeyCollision, name, domain.TypeUnknown, domain.TypeUnknown,
				"ancestor "+existing+" already holds data")
		}
	}
	return nil
}

// addTo appends v under name in sp, binding the name on first write. The fast
// path touches only sp's mutex; first binds take the global lock for key and
// collision validation.
func addTo[T any](p *Pool, sp *subPool[T], dt domain.DataType, name string, v T) error {
	sp.mu.Lock()
	if _, ok := sp.data[name]; ok {
		sp.data[name] = append(sp.data[name], v)
		sp.mu.Unlock()
		return nil
	}
	sp.mu.Unlock()

	p.lockAll()
	defer p.unlockAll()

	// Re-check under the full lock: another writer may have bound the name
	// between the two acquisitions.
	if _, ok := sp.data[name]; ok {
		sp.data[name] = append(sp.data[name], v)
		return nil
	}
	if b, ok := p.bindingLocked(name); ok {
		if b.dtype == dt {
			return newError(ErrModeCollision, name, dt, b.dtype, "bound single-valued, use Set")
		}
		return newError(ErrTypeCollision, name, dt, b.dtype, "")
	}
	if err := p.validateKeyLocked(name); err != nil {
		return err
	}
	sp.data[name] = []T{v}
	return nil
}

// setTo binds name single-valued in sp, overwriting any previous Set value.
func setTo[T any](p *Pool, sp *singlePool[T], dt domain.DataType, name string, v T) error {
	sp.mu.Lock()
	if _, ok := sp.data[name]; ok {
		sp.data[name] = v
		sp.mu.Unlock()
		return nil
	}
	sp.mu.Unlock()

	p.lockAll()
	defer p.unlockAll()

	if _, ok := sp.data[name]; ok {
		sp.data[name] = v
		return nil
	}
	if b, ok := p.bindingLocked(name); ok {
		if b.dtype == dt {
			return newError(ErrModeCollision, name, dt, b.dtype, "bound accumulating, use Add")
		}
		return newError(ErrTypeCollision, name, dt, b.dtype, "")
	}
	if err := p.validateKeyLocked(name); err != nil {
		return err
	}
	sp.data[name] = v
	return nil
}

// Remove deletes the descriptor name and its data. It is a no-op when the
// name is not bound.
func (p *Pool) Remove(name string) {
	p.lockAll()
	defer p.unlockAll()
	p.removeLocked(name)
}

func (p *Pool) removeLocked(name string) {
	delete(p.real.data, name)
	delete(p.vectorReal.data, name)
	delete(p.str.data, name)
	delete(p.vectorStr.data, name)
	delete(p.matrix.data, name)
	delete(p.stereo.data, name)
	delete(p.singleReal.data, name)
	delete(p.singleStr.data, name)
	delete(p.singleVecReal.data, name)
}

// RemoveNamespace deletes every descriptor whose name lives under the given
// namespace prefix (prefix + "."). It is a no-op when nothing matches.
func (p *Pool) RemoveNamespace(ns string) {
	p.lockAll()
	defer p.unlockAll()
	prefix := ns + "."
	for _, name := range p.namesLocked() {
		if strings.HasPrefix(name, prefix) {
			p.removeLocked(name)
		}
	}
}

// DescriptorNames returns every bound descriptor name, sorted.
func (p *Pool) DescriptorNames() []string {
	p.lockAll()
	names := p.namesLocked()
	p.unlockAll()
	sort.Strings(names)
	return names
}

// DescriptorNamesIn returns the sorted descriptor names inside the given
// namespace (ns + ".").
func (p *Pool) DescriptorNamesIn(ns string) []string {
	prefix := ns + "."
	var filtered []string
	for _, name := range p.DescriptorNames() {
		if strings.HasPrefix(name, prefix) {
			filtered = append(filtered, name)
		}
	}
	return filtered
}

// IsSingleValue reports whether name is bound in single-valued mode.
func (p *Pool) IsSingleValue(name string) bool {
	p.lockAll()
	defer p.unlockAll()
	b, ok := p.bindingLocked(name)
	return ok && b.single
}

// CheckIntegrity scans all sub-maps and fails when a name is bound in more
// than one of them, or when a bound name is an ancestor of another bound
// name. A healthy pool always passes; the check exists to catch corruption
// introduced through misuse of merge or concurrent map access outside the
// store.
func (p *Pool) CheckIntegrity() error {
	p.lockAll()
	defer p.unlockAll()

	names := p.namesLocked()
	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			return newError(ErrTypeCollision, name, domain.TypeUnknown, domain.TypeUnknown,
				"bound in more than one sub-map")
		}
		seen[name] = true
	}
	for _, name := range names {
		for _, other := range names {
			if other != name && strings.HasPrefix(other, name+".") {
				return newError(ErrKeyCollision, name, domain.TypeUnknown, domain.TypeUnknown,
					"also an ancestor of "+other)
			}
		}
	}
	return nil
}

// Clear empties every sub-map. The pool itself stays usable.
func (p *Pool) Clear() {
	p.lockAll()
	defer p.unlockAll()
	clear(p.real.data)
	clear(p.vectorReal.data)
	clear(p.str.data)
	clear(p.vectorStr.data)
	clear(p.matrix.data)
	clear(p.stereo.data)
	clear(p.singleReal.data)
	clear(p.singleStr.data)
	clear(p.singleVecReal.data)
}
