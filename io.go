// File: lixenwraith/deephash/io.go
package deephash

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-ini/ini"
	"gopkg.in/yaml.v3"
)

// Encode writes m to w in the given format. Nested maps are written as
// tables, mappings or sections; nil values are omitted from TOML and INI,
// which have no null.
func (m *Map) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatTOML, "":
		if err := toml.NewEncoder(w).Encode(compactPlain(m)); err != nil {
			return fmt.Errorf("failed to encode TOML: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(m.Plain()); err != nil {
			return fmt.Errorf("failed to encode YAML: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to flush YAML: %w", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(m.Plain()); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
	case FormatINI:
		file := ini.Empty()
		if err := fillINI(file, m, ""); err != nil {
			return fmt.Errorf("failed to encode INI: %w", err)
		}
		if _, err := file.WriteTo(w); err != nil {
			return fmt.Errorf("failed to encode INI: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	return nil
}

// fillINI writes the scalars of m into the section named by prefix and each
// nested map into a section named by its dotted path. Nil values are omitted
// and slices are joined with commas.
func fillINI(file *ini.File, m *Map, prefix string) error {
	name := prefix
	if name == "" {
		name = ini.DefaultSection
	}
	section := file.Section(name)

	var children []Key
	for _, k := range m.keys {
		switch v := m.entries[k].(type) {
		case nil:
		case Nested:
			if _, ok := asMap(v); ok {
				children = append(children, k)
			}
		case []any:
			parts := make([]string, len(v))
			for i, elem := range v {
				parts[i] = fmt.Sprint(plainValue(elem))
			}
			if _, err := section.NewKey(string(k), strings.Join(parts, ",")); err != nil {
				return err
			}
		default:
			if _, err := section.NewKey(string(k), fmt.Sprint(v)); err != nil {
				return err
			}
		}
	}

	for _, k := range children {
		path := string(k)
		if prefix != "" {
			path = prefix + "." + path
		}
		child, _ := asMap(m.entries[k])
		if err := fillINI(file, child, path); err != nil {
			return err
		}
	}
	return nil
}

// compactPlain converts m like Plain, dropping nil values at every depth.
func compactPlain(m *Map) map[string]any {
	out := make(map[string]any, len(m.keys))
	for _, k := range m.keys {
		switch v := m.entries[k].(type) {
		case nil:
			continue
		case Nested:
			if child, ok := asMap(v); ok {
				out[string(k)] = compactPlain(child)
			}
		default:
			out[string(k)] = plainValue(v)
		}
	}
	return out
}
