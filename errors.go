// FILE: lixenwraith/deephash/errors.go
package deephash

import (
	"errors"
	"fmt"
	"strings"
)

// Standard error variables. The typed errors below unwrap to these so callers
// can match with errors.Is.
var (
	ErrKeyNormalization = errors.New("key cannot be normalized")
	ErrNonIndexable     = errors.New("cannot index through a non-map value")
	ErrUnrecognizedKey  = errors.New("unknown key(s)")
	ErrNotMapping       = errors.New("value is not a mapping")
	ErrPathArity        = errors.New("not enough path arguments")
	ErrUnknownFormat    = errors.New("unknown document format")
)

// KeyNormalizationError occurs when a key is neither a Key, a string, nor a Keyer.
type KeyNormalizationError struct {
	Key any
}

// Error implements the error interface.
func (e *KeyNormalizationError) Error() string {
	return fmt.Sprintf("%s: %T (%v) has no Key form", ErrKeyNormalization, e.Key, e.Key)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e *KeyNormalizationError) Unwrap() error {
	return ErrKeyNormalization
}

// NonIndexableTraversalError occurs when a path read or delete has to pass
// through a present value that is not a Map.
type NonIndexableTraversalError struct {
	Path    []Key // full path requested
	Segment Key   // segment holding the non-map value
	Value   any
}

// Error implements the error interface.
func (e *NonIndexableTraversalError) Error() string {
	return fmt.Sprintf("cannot read path %q: segment %q holds %T, not a map", joinPath(e.Path), e.Segment, e.Value)
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e *NonIndexableTraversalError) Unwrap() error {
	return ErrNonIndexable
}

// UnrecognizedKeyError lists every key rejected by AssertValidKeys.
type UnrecognizedKeyError struct {
	Keys []Key
}

// Error implements the error interface.
func (e *UnrecognizedKeyError) Error() string {
	names := make([]string, len(e.Keys))
	for i, k := range e.Keys {
		names[i] = string(k)
	}
	return fmt.Sprintf("%s: %s", ErrUnrecognizedKey, strings.Join(names, ", "))
}

// Unwrap implements the implicit interface for usage with errors.Is and errors.As.
func (e *UnrecognizedKeyError) Unwrap() error {
	return ErrUnrecognizedKey
}
