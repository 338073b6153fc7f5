// File: lixenwraith/deephash/convenience.go
package deephash

import "fmt"

// Quick builds a Map from defaults with each layer deep-merged on top, in order.
// defaults may be a struct (see FromStruct) or any mapping.
func Quick(defaults any, layers ...any) (*Map, error) {
	b := NewBuilder().WithDefaults(defaults)
	for i, layer := range layers {
		b.WithLayer(fmt.Sprintf("layer-%d", i), layer)
	}
	return b.Build()
}

// MustQuick is like Quick but panics on error.
func MustQuick(defaults any, layers ...any) *Map {
	m, err := Quick(defaults, layers...)
	if err != nil {
		panic(fmt.Sprintf("deephash: initialization failed: %v", err))
	}
	return m
}

// Clone creates a deep copy of m.
// Base maps are copied at every depth, as are []any values; variant
// instances such as *Param are foreign to m and shared by reference.
func (m *Map) Clone() *Map {
	clone := m.spawn()
	for _, k := range m.keys {
		clone.store(k, cloneValue(m.entries[k]))
	}
	return clone
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case *Map:
		if val == nil {
			return val
		}
		return val.Clone()
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = cloneValue(elem)
		}
		return out
	}
	return v
}
