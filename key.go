// FILE: lixenwraith/deephash/key.go
package deephash

import (
	"reflect"
	"strings"
)

// Key is the normalized form of every key stored in a Map.
// A Key is never confused with a plain string value: any string presented
// as a key is converted before it is stored or looked up.
type Key string

// Keyer is implemented by types that can present themselves as a Key.
type Keyer interface {
	Key() Key
}

// Key implements the Keyer interface.
func (k Key) Key() Key {
	return k
}

// String returns the display form of the key.
func (k Key) String() string {
	return string(k)
}

// ToKey converts a raw key into its normalized form.
// Only Key, string and Keyer values are accepted.
func ToKey(raw any) (Key, error) {
	switch k := raw.(type) {
	case Key:
		return k, nil
	case string:
		return Key(k), nil
	case Keyer:
		return k.Key(), nil
	}
	return "", &KeyNormalizationError{Key: raw}
}

// toKeys normalizes every element of raw, failing on the first bad key.
func toKeys(raw []any) ([]Key, error) {
	keys := make([]Key, 0, len(raw))
	for _, r := range raw {
		k, err := ToKey(r)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// splitPath normalizes raw and splits it on dots into path segments.
// A key without dots yields a single segment.
func splitPath(raw any) ([]Key, error) {
	k, err := ToKey(raw)
	if err != nil {
		return nil, err
	}
	if !strings.Contains(string(k), ".") {
		return []Key{k}, nil
	}

	segments := strings.Split(string(k), ".")
	path := make([]Key, len(segments))
	for i, s := range segments {
		path[i] = Key(s)
	}
	return path, nil
}

// joinPath renders path segments in dotted form.
func joinPath(path []Key) string {
	ss := make([]string, len(path))
	for i, k := range path {
		ss[i] = string(k)
	}
	return strings.Join(ss, ".")
}

// isList reports whether v is a slice or array argument.
// Byte slices are scalar payloads, not lists.
func isList(v any) bool {
	if v == nil {
		return false
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice:
		return rv.Type().Elem().Kind() != reflect.Uint8
	case reflect.Array:
		return true
	}
	return false
}
