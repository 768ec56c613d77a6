package pool

import "github.com/debeat/essentia/pkg/domain"

// The accessors below return copies of whole sub-maps. They exist for export
// and aggregation collaborators that need to walk the pool by type; regular
// callers should prefer Value.

// RealPool returns the accumulating real sub-map.
func (p *Pool) RealPool() map[string][]domain.Real {
	p.real.mu.Lock()
	defer p.real.mu.Unlock()
	return copyAccum(p.real.data)
}

// VectorRealPool returns the accumulating vector-of-reals sub-map.
func (p *Pool) VectorRealPool() map[string][][]domain.Real {
	p.vectorReal.mu.Lock()
	defer p.vectorReal.mu.Unlock()
	return copyAccum(p.vectorReal.data)
}

// StringPool returns the accumulating string sub-map.
func (p *Pool) StringPool() map[string][]string {
	p.str.mu.Lock()
	defer p.str.mu.Unlock()
	return copyAccum(p.str.data)
}

// VectorStringPool returns the accumulating vector-of-strings sub-map.
func (p *Pool) VectorStringPool() map[string][][]string {
	p.vectorStr.mu.Lock()
	defer p.vectorStr.mu.Unlock()
	return copyAccum(p.vectorStr.data)
}

// MatrixPool returns the accumulating matrix sub-map.
func (p *Pool) MatrixPool() map[string][]domain.Matrix {
	p.matrix.mu.Lock()
	defer p.matrix.mu.Unlock()
	return copyAccum(p.matrix.data)
}

// StereoSamplePool returns the accumulating stereo-sample sub-map.
func (p *Pool) StereoSamplePool() map[string][]domain.StereoSample {
	p.stereo.mu.Lock()
	defer p.stereo.mu.Unlock()
	return copyAccum(p.stereo.data)
}

// SingleRealPool returns the single-valued real sub-map.
func (p *Pool) SingleRealPool() map[string]domain.Real {
	p.singleReal.mu.Lock()
	defer p.singleReal.mu.Unlock()
	return copySingle(p.singleReal.data)
}

// SingleStringPool returns the single-valued string sub-map.
func (p *Pool) SingleStringPool() map[string]string {
	p.singleStr.mu.Lock()
	defer p.singleStr.mu.Unlock()
	return copySingle(p.singleStr.data)
}

// SingleVectorRealPool returns the single-valued vector-of-reals sub-map.
func (p *Pool) SingleVectorRealPool() map[string][]domain.Real {
	p.singleVecReal.mu.Lock()
	defer p.singleVecReal.mu.Unlock()
	return copySingle(p.singleVecReal.data)
}
