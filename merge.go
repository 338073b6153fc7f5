// FILE: lixenwraith/deephash/merge.go
package deephash

import "fmt"

// normalize ingests a merge argument into a base Map.
func normalize(src any) (*Map, error) {
	if !isMapping(src) {
		return nil, fmt.Errorf("%w: cannot merge %T", ErrNotMapping, src)
	}
	return From(src)
}

// Update stores each top-level entry of src into m, replacing existing values
// wholesale. Keys of src are normalized at every depth first.
func (m *Map) Update(src any) error {
	other, err := normalize(src)
	if err != nil {
		return err
	}
	for _, k := range other.keys {
		m.store(k, other.entries[k])
	}
	return nil
}

// Merge returns a copy of m with the entries of src laid over the top level.
// An explicit nil in src replaces the existing value.
func (m *Map) Merge(src any) (*Map, error) {
	return m.shallowCopy().MergeInPlace(src)
}

// MergeInPlace is the in-place form of Merge and returns m.
func (m *Map) MergeInPlace(src any) (*Map, error) {
	if err := m.Update(src); err != nil {
		return nil, err
	}
	return m, nil
}

// ReverseMerge returns a copy of m where src only contributes keys m lacks.
func (m *Map) ReverseMerge(src any) (*Map, error) {
	return m.shallowCopy().ReverseMergeInPlace(src)
}

// ReverseMergeInPlace is the in-place form of ReverseMerge and returns m.
func (m *Map) ReverseMergeInPlace(src any) (*Map, error) {
	other, err := normalize(src)
	if err != nil {
		return nil, err
	}
	for _, k := range other.keys {
		if _, exists := m.entries[k]; !exists {
			m.store(k, other.entries[k])
		}
	}
	return m, nil
}

// DeepMerge merges src into m recursively and returns m.
//
// Where both sides hold a map the maps are merged key by key. A nil in src
// leaves an existing value alone. Anything else, slices included, replaces
// the existing value wholesale.
func (m *Map) DeepMerge(src any) (*Map, error) {
	other, err := normalize(src)
	if err != nil {
		return nil, err
	}
	m.deepMerge(other)
	return m, nil
}

func (m *Map) deepMerge(other *Map) {
	for _, k := range other.keys {
		incoming := other.entries[k]
		if existing, exists := m.entries[k]; exists {
			if incoming == nil {
				continue
			}
			dst, dstNested := asMap(existing)
			src, srcNested := asMap(incoming)
			if dstNested && srcNested {
				dst.deepMerge(src)
				continue
			}
		}
		m.store(k, incoming)
	}
}
