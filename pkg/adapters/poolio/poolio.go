// Package poolio serializes pools to and from YAML and JSON snapshots.
// A snapshot carries every descriptor with its name, value type and
// single/accumulation mode, so a restored pool is indistinguishable from
// the original.
package poolio

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/debeat/essentia/pkg/domain"
	"github.com/debeat/essentia/pkg/pool"
)

// Descriptor is one serialized pool entry.
type Descriptor struct {
	Name   string `yaml:"name" json:"name"`
	Type   string `yaml:"type" json:"type"`
	Single bool   `yaml:"single,omitempty" json:"single,omitempty"`
	Values any    `yaml:"values" json:"values"`
}

// Snapshot is a full serialized pool.
type Snapshot struct {
	Descriptors []Descriptor `yaml:"descriptors" json:"descriptors"`
}

// Capture snapshots every descriptor of p, sorted by name.
func Capture(p *pool.Pool) *Snapshot {
	var ds []Descriptor
	for name, vs := range p.RealPool() {
		ds = append(ds, Descriptor{Name: name, Type: domain.TypeReal.String(), Values: vs})
	}
	for name, vs := range p.VectorRealPool() {
		ds = append(ds, Descriptor{Name: name, Type: domain.TypeRealVector.String(), Values: vs})
	}
	for name, vs := range p.StringPool() {
		ds = append(ds, Descriptor{Name: name, Type: domain.TypeString.String(), Values: vs})
	}
	for name, vs := range p.VectorStringPool() {
		ds = append(ds, Descriptor{Name: name, Type: domain.TypeStringVector.String(), Values: vs})
	}
	for name, vs := range p.MatrixPool() {
		ds = append(ds, Descriptor{Name: name, Type: domain.TypeMatrix.String(), Values: vs})
	}
	for name, vs := range p.StereoSamplePool() {
		ds = append(ds, Descriptor{Name: name, Type: domain.TypeStereoSample.String(), Values: vs})
	}
	for name, v := range p.SingleRealPool() {
		ds = append(ds, Descriptor{Name: name, Type: domain.TypeReal.String(), Single: true, Values: v})
	}
	for name, v := range p.SingleStringPool() {
		ds = append(ds, Descriptor{Name: name, Type: domain.TypeString.String(), Single: true, Values: v})
	}
	for name, v := range p.SingleVectorRealPool() {
		ds = append(ds, Descriptor{Name: name, Type: domain.TypeRealVector.String(), Single: true, Values: v})
	}
	sort.Slice(ds, func(i, j int) bool { return ds[i].Name < ds[j].Name })
	return &Snapshot{Descriptors: ds}
}

// Restore builds a pool from a snapshot.
func Restore(s *Snapshot) (*pool.Pool, error) {
	p := pool.New()
	for _, d := range s.Descriptors {
		if err := restoreDescriptor(p, d); err != nil {
			return nil, fmt.Errorf("poolio: descriptor %q: %w", d.Name, err)
		}
	}
	return p, nil
}

// SaveYAML writes a YAML snapshot of p.
func SaveYAML(w io.Writer, p *pool.Pool) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(Capture(p))
}

// LoadYAML reads a YAML snapshot into a fresh pool.
func LoadYAML(r io.Reader) (*pool.Pool, error) {
	var s Snapshot
	if err := yaml.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("poolio: decode snapshot: %w", err)
	}
	return Restore(&s)
}

// SaveJSON writes a JSON snapshot of p.
func SaveJSON(w io.Writer, p *pool.Pool) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(Capture(p))
}

// LoadJSON reads a JSON snapshot into a fresh pool.
func LoadJSON(r io.Reader) (*pool.Pool, error) {
	var s Snapshot
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("poolio: decode snapshot: %w", err)
	}
	return Restore(&s)
}

func restoreDescriptor(p *pool.Pool, d Descriptor) error {
	dt := domain.ParseDataType(d.Type)
	if dt == domain.TypeUnknown {
		return fmt.Errorf("unknown type %q", d.Type)
	}
	if d.Single {
		return restoreSingle(p, d, dt)
	}
	return restoreAccumulated(p, d, dt)
}

func restoreSingle(p *pool.Pool, d Descriptor, dt domain.DataType) error {
	switch dt {
	case domain.TypeReal:
		v, err := toReal(d.Values)
		if err != nil {
			return err
		}
		return pool.Set(p, d.Name, v)
	case domain.TypeString:
		v, ok := d.Values.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", d.Values)
		}
		return pool.Set(p, d.Name, v)
	case domain.TypeRealVector:
		v, err := toRealSlice(d.Values)
		if err != nil {
			return err
		}
		return pool.Set(p, d.Name, v)
	default:
		return fmt.Errorf("type %s cannot be single-valued", dt)
	}
}

func restoreAccumulated(p *pool.Pool, d Descriptor, dt domain.DataType) error {
	items, err := toSlice(d.Values)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := addItem(p, d.Name, dt, item); err != nil {
			return err
		}
	}
	return nil
}

func addItem(p *pool.Pool, name string, dt domain.DataType, item any) error {
	switch dt {
	case domain.TypeReal:
		v, err := toReal(item)
		if err != nil {
			return err
		}
		return pool.Add(p, name, v)
	case domain.TypeString:
		v, ok := item.(string)
		if !ok {
			return fmt.Errorf("expected string, got %T", item)
		}
		return pool.Add(p, name, v)
	case domain.TypeRealVector:
		v, err := toRealSlice(item)
		if err != nil {
			return err
		}
		return pool.Add(p, name, v)
	case domain.TypeStringVector:
		v, err := toStringSlice(item)
		if err != nil {
			return err
		}
		return pool.Add(p, name, v)
	case domain.TypeMatrix:
		v, err := toMatrix(item)
		if err != nil {
			return err
		}
		return pool.Add(p, name, v)
	case domain.TypeStereoSample:
		v, err := toStereoSample(item)
		if err != nil {
			return err
		}
		return pool.Add(p, name, v)
	default:
		return fmt.Errorf("unsupported type %s", dt)
	}
}
