// File: lixenwraith/deephash/builder.go
package deephash

import (
	"errors"
	"fmt"
	"log/slog"
	"reflect"
)

// ValidatorFunc defines the signature for a function that can validate a built Map.
// It receives the fully merged *Map and should return an error if validation fails.
type ValidatorFunc func(m *Map) error

type layer struct {
	name string
	src  any
}

// Builder layers configuration data into a single Map.
// Defaults go in first; every later layer is deep-merged on top, so a nil in
// an override never erases a default.
type Builder struct {
	defaults   any
	layers     []layer
	allowed    []any
	validators []ValidatorFunc
	logger     *slog.Logger
	err        error
}

// NewBuilder creates a new configuration builder
func NewBuilder() *Builder {
	return &Builder{
		logger:     slog.New(slog.DiscardHandler),
		validators: make([]ValidatorFunc, 0),
	}
}

// WithDefaults sets the base layer: a struct (see FromStruct) or any mapping
func (b *Builder) WithDefaults(defaults any) *Builder {
	b.defaults = defaults
	return b
}

// WithLayer appends a mapping to deep-merge over everything before it
func (b *Builder) WithLayer(name string, src any) *Builder {
	b.layers = append(b.layers, layer{name: name, src: src})
	return b
}

// WithDocument parses data and appends it as a layer.
// A parse failure is reported by Build.
func (b *Builder) WithDocument(name string, data []byte, format Format) *Builder {
	m, err := Parse(data, format)
	if err != nil {
		if b.err == nil {
			b.err = fmt.Errorf("document %q: %w", name, err)
		}
		return b
	}
	return b.WithLayer(name, m)
}

// WithAllowedKeys restricts the top-level keys of the result
func (b *Builder) WithAllowedKeys(keys ...any) *Builder {
	b.allowed = append(b.allowed, keys...)
	return b
}

// WithValidator adds a validation function that runs at the end of the build process
// Multiple validators can be added and are executed in the order they are added
func (b *Builder) WithValidator(fn ValidatorFunc) *Builder {
	if fn != nil {
		b.validators = append(b.validators, fn)
	}
	return b
}

// WithLogger sets the logger used to trace layer merges at debug level
func (b *Builder) WithLogger(logger *slog.Logger) *Builder {
	if logger != nil {
		b.logger = logger
	}
	return b
}

// Build merges all layers and runs key checks and validators
func (b *Builder) Build() (*Map, error) {
	if b.err != nil {
		return nil, b.err
	}

	m := New()
	if b.defaults != nil {
		defaults, err := defaultsMap(b.defaults)
		if err != nil {
			return nil, fmt.Errorf("failed to load defaults: %w", err)
		}
		m.deepMerge(defaults.Clone())
		b.logger.Debug("applied defaults", "keys", defaults.Len())
	}

	// Layers are cloned so merging never writes into maps the caller still holds
	for _, l := range b.layers {
		src, err := normalize(l.src)
		if err != nil {
			return nil, fmt.Errorf("failed to merge layer %q: %w", l.name, err)
		}
		m.deepMerge(src.Clone())
		b.logger.Debug("merged layer", "layer", l.name, "keys", m.Len())
	}

	if len(b.allowed) > 0 {
		if err := m.AssertValidKeys(b.allowed...); err != nil {
			return nil, err
		}
	}

	var errs []error
	for _, validator := range b.validators {
		if err := validator(m); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return m, nil
}

// MustBuild is like Build but panics on error
func (b *Builder) MustBuild() *Map {
	m, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("deephash: build failed: %v", err))
	}
	return m
}

// BuildAndScan builds the Map and decodes it into the provided target struct pointer
func (b *Builder) BuildAndScan(target any) error {
	m, err := b.Build()
	if err != nil {
		return err
	}
	if err := m.Scan("", target); err != nil {
		return fmt.Errorf("failed to scan final config into target: %w", err)
	}
	return nil
}

// defaultsMap converts struct defaults through FromStruct and mappings through From.
func defaultsMap(defaults any) (*Map, error) {
	if _, ok := defaults.(Nested); ok {
		return normalize(defaults)
	}
	v := reflect.ValueOf(defaults)
	if v.Kind() == reflect.Ptr && !v.IsNil() && v.Elem().Kind() == reflect.Struct || v.Kind() == reflect.Struct {
		return FromStruct(defaults)
	}
	return normalize(defaults)
}
