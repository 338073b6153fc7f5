// File: lixenwraith/deephash/doc.go

// Package deephash provides a nested, key-normalized map used as the backing
// store for application configuration.
//
// Features:
//   - Keys normalized to Key at every depth, whether given as string, Key or Keyer
//   - Dotted-path reads that never modify the map, and writes that auto-vivify
//   - Shallow merge (explicit nil overrides) and deep merge (nil preserves)
//   - Slice, extract, compact and stringify views that keep the map shape
//   - Variants such as Param that are stored verbatim inside other maps
//   - TOML, YAML, JSON and INI ingestion, struct defaults, and struct decoding
//
// Quick Start:
//
//	m, err := deephash.From(map[string]any{
//	    "server": map[string]any{"host": "localhost", "port": 8080},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_ = m.Set("server.tls.enabled", true)
//	port, _ := m.Get("server.port")
//
// Layering:
//
//	m, err := deephash.NewBuilder().
//	    WithDefaults(defaults).
//	    WithDocument("config.toml", data, deephash.FormatTOML).
//	    WithAllowedKeys("server", "database").
//	    Build()
//
// Merge semantics:
// Merge replaces top-level values wholesale and lets an explicit nil
// override. DeepMerge recurses where both sides hold maps, replaces
// slices, and ignores nil so that overrides cannot erase defaults.
//
// Thread Safety:
// A Map does no locking. Share one across goroutines only under external
// synchronization.
package deephash
