// FILE: lixenwraith/deephash/deephash.go
package deephash

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

// Nested is implemented by every member of the Map family.
// Specialized variants embed *Map and are stored verbatim inside other maps,
// never rewrapped into a base Map.
type Nested interface {
	Deep() *Map
}

// Map is an insertion-ordered mapping from Key to value, where values are
// scalars, nil, slices, or nested maps. The zero value is an empty map ready to use.
//
// Map is not safe for concurrent use; callers sharing one across goroutines
// must synchronize access themselves.
type Map struct {
	keys     []Key
	entries  map[Key]any
	fallback any    // returned for missing keys when seeded from a non-mapping
	variant  string // "" for the base family
}

// New creates an empty Map.
func New() *Map {
	return &Map{entries: make(map[Key]any)}
}

// NewVariant creates a Map tagged with a variant name, ingesting src the
// same way From does. Copy-returning operations on the result keep the tag.
func NewVariant(variant string, src any) (*Map, error) {
	m, err := From(src)
	if err != nil {
		return nil, err
	}
	m.variant = variant
	return m, nil
}

// From builds a Map from src.
// A mapping source has every key normalized and every plain map value wrapped
// as a Map, recursively, including maps held inside slices. Values that are
// already Nested are kept as they are. Any other source becomes the fallback
// value returned for missing keys, and the Map starts empty.
func From(src any) (*Map, error) {
	m := New()
	if !isMapping(src) {
		m.fallback = src
		return m, nil
	}
	if err := eachEntry(src, func(k Key, v any) error {
		m.store(k, v)
		return nil
	}); err != nil {
		return nil, err
	}
	return m, nil
}

// MustFrom is like From but panics on error.
func MustFrom(src any) *Map {
	m, err := From(src)
	if err != nil {
		panic(fmt.Sprintf("deephash: %v", err))
	}
	return m
}

// Deep implements the Nested interface.
func (m *Map) Deep() *Map {
	return m
}

// Variant returns the variant name, empty for base maps.
func (m *Map) Variant() string {
	return m.variant
}

// Len returns the number of entries.
func (m *Map) Len() int {
	return len(m.keys)
}

// Keys returns the keys in insertion order.
func (m *Map) Keys() []Key {
	return slices.Clone(m.keys)
}

// Values returns the values in key order.
func (m *Map) Values() []any {
	values := make([]any, len(m.keys))
	for i, k := range m.keys {
		values[i] = m.entries[k]
	}
	return values
}

// Range calls fn for each entry in order until fn returns false.
func (m *Map) Range(fn func(Key, any) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.entries[k]) {
			return
		}
	}
}

// Get returns the value at key, which may be a dotted path.
// Missing keys and paths yield nil without error. Get never modifies the map.
func (m *Map) Get(key any) (any, error) {
	v, _, err := m.Lookup(key)
	return v, err
}

// Lookup is like Get and also reports whether the final key was present.
// Traversal stops quietly at a missing or nil intermediate value; an
// intermediate value that is present but not a map is an error.
func (m *Map) Lookup(key any) (any, bool, error) {
	path, err := splitPath(key)
	if err != nil {
		return nil, false, err
	}

	parent, found, err := m.walk(path)
	if err != nil || !found {
		return nil, false, err
	}

	v, ok := parent.load(path[len(path)-1])
	if !ok {
		return parent.fallback, false, nil
	}
	return v, true, nil
}

// Has reports whether key, which may be a dotted path, is present.
func (m *Map) Has(key any) (bool, error) {
	_, found, err := m.Lookup(key)
	return found, err
}

// Fetch returns the value at key, or alt when key is not present.
// A present nil value is returned as nil, not replaced by alt.
func (m *Map) Fetch(key any, alt any) (any, error) {
	v, found, err := m.Lookup(key)
	if err != nil {
		return nil, err
	}
	if !found {
		return alt, nil
	}
	return v, nil
}

// ValuesAt returns the values for each of keys, nil for those missing.
func (m *Map) ValuesAt(keys ...any) ([]any, error) {
	values := make([]any, len(keys))
	for i, k := range keys {
		v, err := m.Get(k)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}

// Set stores value at key. A dotted key is treated as a path: missing or
// non-map intermediate values are replaced by empty maps before descending.
// Mapping values are converted to Map on the way in.
func (m *Map) Set(key any, value any) error {
	path, err := splitPath(key)
	if err != nil {
		return err
	}
	return m.setPath(path, value)
}

// Delete removes key, which may be a dotted path, and returns its value.
// Deleting a missing key or path is a no-op returning nil.
func (m *Map) Delete(key any) (any, error) {
	path, err := splitPath(key)
	if err != nil {
		return nil, err
	}
	return m.deletePath(path)
}

// String renders the map in a compact, key-ordered form for debugging.
func (m *Map) String() string {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s: %v", k, m.entries[k])
	}
	b.WriteByte('}')
	return b.String()
}

// load returns the value stored directly under k.
func (m *Map) load(k Key) (any, bool) {
	v, ok := m.entries[k]
	return v, ok
}

// store writes a normalized key and an already converted value.
func (m *Map) store(k Key, v any) {
	if m.entries == nil {
		m.entries = make(map[Key]any)
	}
	if _, exists := m.entries[k]; !exists {
		m.keys = append(m.keys, k)
	}
	m.entries[k] = v
}

// remove deletes k and returns its previous value.
func (m *Map) remove(k Key) (any, bool) {
	v, ok := m.entries[k]
	if !ok {
		return nil, false
	}
	delete(m.entries, k)
	if i := slices.Index(m.keys, k); i >= 0 {
		m.keys = slices.Delete(m.keys, i, i+1)
	}
	return v, true
}

// spawn returns an empty map of the same variant and fallback.
func (m *Map) spawn() *Map {
	return &Map{
		entries:  make(map[Key]any),
		fallback: m.fallback,
		variant:  m.variant,
	}
}

// shallowCopy returns a new map with the same top-level entries.
func (m *Map) shallowCopy() *Map {
	out := m.spawn()
	out.keys = slices.Clone(m.keys)
	for k, v := range m.entries {
		out.entries[k] = v
	}
	return out
}

// asMap returns the Map behind v when v is a Nested value backed by a
// non-nil Map. A typed nil such as (*Map)(nil) is not a map.
func asMap(v any) (*Map, bool) {
	n, ok := v.(Nested)
	if !ok {
		return nil, false
	}
	d := n.Deep()
	return d, d != nil
}

// isMapping reports whether src can be ingested entry by entry.
func isMapping(src any) bool {
	if src == nil {
		return false
	}
	if _, ok := src.(Nested); ok {
		_, ok := asMap(src)
		return ok
	}
	return reflect.ValueOf(src).Kind() == reflect.Map
}

// eachEntry visits the entries of a mapping source with normalized keys and
// converted values. Go maps are visited in sorted key order so construction
// is deterministic.
func eachEntry(src any, fn func(Key, any) error) error {
	if d, ok := asMap(src); ok {
		for _, k := range d.keys {
			if err := fn(k, d.entries[k]); err != nil {
				return err
			}
		}
		return nil
	}

	rv := reflect.ValueOf(src)
	type entry struct {
		key   Key
		value reflect.Value
	}
	entries := make([]entry, 0, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		k, err := ToKey(iter.Key().Interface())
		if err != nil {
			return err
		}
		entries = append(entries, entry{key: k, value: iter.Value()})
	}
	slices.SortFunc(entries, func(a, b entry) int {
		return strings.Compare(string(a.key), string(b.key))
	})

	for _, e := range entries {
		v, err := convertValue(e.value.Interface())
		if err != nil {
			return fmt.Errorf("key %q: %w", e.key, err)
		}
		if err := fn(e.key, v); err != nil {
			return err
		}
	}
	return nil
}

// convertValue prepares a value for storage: Nested values pass through,
// plain maps become base Maps, and slices of interfaces, maps or slices are
// rebuilt element-wise as []any. A Nested value with no Map behind it is
// stored as nil. Everything else is stored unchanged.
func convertValue(v any) (any, error) {
	if v == nil {
		return nil, nil
	}
	if n, ok := v.(Nested); ok {
		if n.Deep() == nil {
			return nil, nil
		}
		return n, nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		return From(v)
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return v, nil
		}
		switch rv.Type().Elem().Kind() {
		case reflect.Interface, reflect.Map, reflect.Slice:
			out := make([]any, rv.Len())
			for i := range out {
				elem, err := convertValue(rv.Index(i).Interface())
				if err != nil {
					return nil, fmt.Errorf("index %d: %w", i, err)
				}
				out[i] = elem
			}
			return out, nil
		}
	}
	return v, nil
}
