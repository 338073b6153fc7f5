// FILE: lixenwraith/deephash/loader.go
package deephash

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-ini/ini"
	"gopkg.in/yaml.v3"
)

// Format names a document syntax understood by Parse and Encode.
type Format string

const (
	// FormatAuto detects the format from document content
	FormatAuto Format = "auto"
	// FormatTOML is TOML, parsed with BurntSushi/toml
	FormatTOML Format = "toml"
	// FormatYAML is YAML, parsed with yaml.v3
	FormatYAML Format = "yaml"
	// FormatJSON is JSON; integers become int64, other numbers float64
	FormatJSON Format = "json"
	// FormatINI is INI, parsed with go-ini; values stay strings and only
	// file extensions select it
	FormatINI Format = "ini"
)

// Parse decodes a configuration document into a Map.
// With FormatAuto or an empty format the syntax is detected from content.
func Parse(data []byte, format Format) (*Map, error) {
	if format == "" || format == FormatAuto {
		format = detectFormatFromContent(data)
		if format == "" {
			return nil, fmt.Errorf("%w: content matches no known syntax", ErrUnknownFormat)
		}
	}

	if format == FormatINI {
		return parseINI(data)
	}

	doc := make(map[string]any)
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse TOML document: %w", err)
		}
	case FormatJSON:
		decoder := json.NewDecoder(bytes.NewReader(data))
		decoder.UseNumber() // Preserve number precision
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to parse JSON document: %w", err)
		}
		resolveNumbers(doc)
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	m, err := From(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to ingest %s document: %w", format, err)
	}
	return m, nil
}

// DetectFormat determines the format of a document from its file extension,
// falling back to its content. It returns FormatAuto when neither is conclusive.
func DetectFormat(path string, data []byte) Format {
	if format := detectFileFormat(path); format != "" {
		return format
	}
	if format := detectFormatFromContent(data); format != "" {
		return format
	}
	return FormatAuto
}

// detectFileFormat determines format from file extension
func detectFileFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".tml":
		return FormatTOML
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".ini":
		return FormatINI
	default:
		return ""
	}
}

// detectFormatFromContent attempts to detect format by parsing
func detectFormatFromContent(data []byte) Format {
	// JSON first: YAML accepts most JSON too
	var jsonTest map[string]any
	if err := json.Unmarshal(data, &jsonTest); err == nil {
		return FormatJSON
	}

	// TOML before YAML: "key = value" lines are valid YAML scalars
	var tomlTest map[string]any
	if err := toml.Unmarshal(data, &tomlTest); err == nil {
		return FormatTOML
	}

	var yamlTest map[string]any
	if err := yaml.Unmarshal(data, &yamlTest); err == nil {
		return FormatYAML
	}

	return ""
}

// parseINI maps the default section to top-level keys and every other section
// to a nested map, splitting dotted section names into path segments.
func parseINI(data []byte) (*Map, error) {
	file, err := ini.Load(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse INI document: %w", err)
	}

	m := New()
	for _, section := range file.Sections() {
		target := m
		if name := section.Name(); name != ini.DefaultSection {
			path, err := splitPath(name)
			if err != nil {
				return nil, err
			}
			target = m.vivify(path)
		}
		for _, key := range section.Keys() {
			target.store(Key(key.Name()), key.Value())
		}
	}
	return m, nil
}

// resolveNumbers replaces json.Number values in place with int64 when the
// literal is an integer in range, float64 otherwise. Numbers neither type can
// hold are kept as json.Number.
func resolveNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val
	case map[string]any:
		for k, elem := range val {
			val[k] = resolveNumbers(elem)
		}
	case []any:
		for i, elem := range val {
			val[i] = resolveNumbers(elem)
		}
	}
	return v
}
