// FILE: lixenwraith/deephash/view.go
package deephash

import (
	"maps"
	"reflect"
	"slices"
)

// ToMap returns the top-level entries as a plain Go map.
// Nested maps are not converted.
func (m *Map) ToMap() map[Key]any {
	out := make(map[Key]any, len(m.keys))
	for _, k := range m.keys {
		out[k] = m.entries[k]
	}
	return out
}

// Plain converts the whole tree into plain Go maps keyed by string, the shape
// encoders and decoders expect. Nested maps inside []any are converted too.
func (m *Map) Plain() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[string(k)] = plainValue(m.entries[k])
	}
	return out
}

func plainValue(v any) any {
	if child, ok := asMap(v); ok {
		return child.Plain()
	}
	switch val := v.(type) {
	case Nested:
		return nil
	case []any:
		out := make([]any, len(val))
		for i, elem := range val {
			out[i] = plainValue(elem)
		}
		return out
	}
	return v
}

// StringifyKeys returns the top-level entries keyed by string.
// Values, nested maps included, are passed through unchanged.
func (m *Map) StringifyKeys() map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		out[string(k)] = m.entries[k]
	}
	return out
}

// SymbolizeKeys returns a copy of m. Keys are always normalized already.
func (m *Map) SymbolizeKeys() *Map {
	return m.shallowCopy()
}

// SymbolizeKeysInPlace returns m itself.
func (m *Map) SymbolizeKeysInPlace() *Map {
	return m
}

// Compact returns a copy of m without entries whose value is nil.
// False, empty strings and empty containers are kept.
func (m *Map) Compact() *Map {
	return m.shallowCopy().CompactInPlace()
}

// CompactInPlace removes entries whose value is nil and returns m.
func (m *Map) CompactInPlace() *Map {
	m.keys = slices.DeleteFunc(m.keys, func(k Key) bool {
		return m.entries[k] == nil
	})
	maps.DeleteFunc(m.entries, func(_ Key, v any) bool {
		return v == nil
	})
	return m
}

// Slice returns a new map holding only the given keys that are present.
// Arguments that are themselves slices or arrays are skipped, not flattened.
func (m *Map) Slice(keys ...any) (*Map, error) {
	wanted, err := sliceKeys(keys)
	if err != nil {
		return nil, err
	}

	out := m.spawn()
	for _, k := range wanted {
		if v, ok := m.entries[k]; ok {
			out.store(k, v)
		}
	}
	return out, nil
}

// SliceInPlace keeps only the given keys in m and returns the retained entries
// as a new map; the removed entries are not returned. Argument handling
// matches Slice.
func (m *Map) SliceInPlace(keys ...any) (*Map, error) {
	kept, err := m.Slice(keys...)
	if err != nil {
		return nil, err
	}
	m.keys = slices.Clone(kept.keys)
	m.entries = maps.Clone(kept.entries)
	return kept, nil
}

// Extract removes the given keys from m and returns them as a new map.
// Keys that were not present appear in the result with a nil value.
func (m *Map) Extract(keys ...any) (*Map, error) {
	wanted, err := toKeys(keys)
	if err != nil {
		return nil, err
	}

	out := m.spawn()
	for _, k := range wanted {
		v, _ := m.remove(k)
		out.store(k, v)
	}
	return out, nil
}

// AssertValidKeys fails with an UnrecognizedKeyError naming every key of m
// that is not in allowed. Allowed keys may be passed individually or in slices.
func (m *Map) AssertValidKeys(allowed ...any) error {
	valid := make(map[Key]struct{})
	for _, raw := range flattenArgs(allowed) {
		k, err := ToKey(raw)
		if err != nil {
			return err
		}
		valid[k] = struct{}{}
	}

	var unknown []Key
	for _, k := range m.keys {
		if _, ok := valid[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		return &UnrecognizedKeyError{Keys: unknown}
	}
	return nil
}

// sliceKeys normalizes the non-list arguments of Slice.
func sliceKeys(args []any) ([]Key, error) {
	keys := make([]Key, 0, len(args))
	for _, raw := range args {
		if isList(raw) {
			continue
		}
		k, err := ToKey(raw)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// flattenArgs expands list arguments one level deep at a time until only scalars remain.
func flattenArgs(args []any) []any {
	var out []any
	for _, a := range args {
		if !isList(a) {
			out = append(out, a)
			continue
		}
		rv := reflect.ValueOf(a)
		elems := make([]any, rv.Len())
		for i := range elems {
			elems[i] = rv.Index(i).Interface()
		}
		out = append(out, flattenArgs(elems)...)
	}
	return out
}
