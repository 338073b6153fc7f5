// File: lixenwraith/deephash/helper.go
package deephash

import "fmt"

// DeepSet stores a value under a path given as separate keys, the last
// argument being the value. Keys are not split on dots. Missing or non-map
// intermediate values are replaced by empty maps.
func (m *Map) DeepSet(args ...any) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: DeepSet needs at least one key and a value, got %d argument(s)", ErrPathArity, len(args))
	}

	path, err := toKeys(args[:len(args)-1])
	if err != nil {
		return err
	}
	return m.setPath(path, args[len(args)-1])
}

// DeepDelete removes the value under a path given as separate keys and returns it.
// Nothing is created on the way down: a missing intermediate yields nil.
func (m *Map) DeepDelete(keys ...any) (any, error) {
	if len(keys) == 0 {
		return nil, fmt.Errorf("%w: DeepDelete needs at least one key", ErrPathArity)
	}

	path, err := toKeys(keys)
	if err != nil {
		return nil, err
	}
	return m.deletePath(path)
}

// Flatten returns every leaf value keyed by its dotted path.
// Empty nested maps produce no entries.
func (m *Map) Flatten() map[string]any {
	flat := make(map[string]any)
	flattenInto(flat, m, "")
	return flat
}

func flattenInto(flat map[string]any, m *Map, prefix string) {
	for _, k := range m.keys {
		path := string(k)
		if prefix != "" {
			path = prefix + "." + path
		}

		if child, ok := asMap(m.entries[k]); ok {
			flattenInto(flat, child, path)
			continue
		}
		flat[path] = m.entries[k]
	}
}

// walk descends to the map holding the last segment of path without
// creating anything. found is false when an intermediate value is missing or nil.
func (m *Map) walk(path []Key) (parent *Map, found bool, err error) {
	current := m
	for _, segment := range path[:len(path)-1] {
		next, exists := current.load(segment)
		if !exists || next == nil {
			return nil, false, nil
		}

		if _, isNested := next.(Nested); !isNested {
			return nil, false, &NonIndexableTraversalError{Path: path, Segment: segment, Value: next}
		}
		child, ok := asMap(next)
		if !ok {
			return nil, false, nil
		}
		current = child
	}
	return current, true, nil
}

// vivify descends through path, creating empty maps where the next level is
// missing or not a map, and returns the deepest map.
func (m *Map) vivify(path []Key) *Map {
	current := m
	for _, segment := range path {
		if child, ok := asMap(current.entries[segment]); ok {
			current = child
			continue
		}
		child := New()
		current.store(segment, child)
		current = child
	}
	return current
}

// setPath converts value and stores it at path, auto-vivifying parents.
func (m *Map) setPath(path []Key, value any) error {
	v, err := convertValue(value)
	if err != nil {
		return err
	}
	m.vivify(path[:len(path)-1]).store(path[len(path)-1], v)
	return nil
}

// deletePath removes and returns the value at path.
func (m *Map) deletePath(path []Key) (any, error) {
	parent, found, err := m.walk(path)
	if err != nil || !found {
		return nil, err
	}
	v, _ := parent.remove(path[len(path)-1])
	return v, nil
}
