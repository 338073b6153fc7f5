// FILE: lixenwraith/deephash/cmd/deephash/discovery.go
package main

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// discoveryOptions configures the search for a configuration file when none
// is named on the command line.
type discoveryOptions struct {
	// Base name of config file (without extension)
	Name string

	// Extensions to try (in order)
	Extensions []string

	// Custom search paths (in addition to defaults)
	Paths []string

	// Environment variable to check for explicit path
	EnvVar string

	// Whether to search in XDG config directories
	UseXDG bool

	// Whether to search in current directory
	UseCurrentDir bool
}

func defaultDiscoveryOptions(appName string) discoveryOptions {
	return discoveryOptions{
		Name:          appName,
		Extensions:    []string{".toml", ".yaml", ".yml", ".json", ".ini"},
		EnvVar:        strings.ToUpper(appName) + "_CONFIG",
		UseXDG:        true,
		UseCurrentDir: true,
	}
}

// discoverFile returns the first configuration file found, or "" when there is none.
// An explicit path in the environment variable wins without a stat check so
// that a wrong path is reported by the read.
func discoverFile(opts discoveryOptions) string {
	if opts.EnvVar != "" {
		if path := os.Getenv(opts.EnvVar); path != "" {
			return path
		}
	}

	for _, dir := range opts.searchDirs() {
		for _, ext := range opts.Extensions {
			path := filepath.Join(dir, opts.Name+ext)
			if info, err := os.Stat(path); err == nil && !info.IsDir() {
				return path
			}
		}
	}
	return ""
}

// searchDirs lists the directories to probe, most specific first: custom
// paths, the working directory, then <base>/<name> for each XDG base.
func (opts discoveryOptions) searchDirs() []string {
	dirs := slices.Clone(opts.Paths)
	if opts.UseCurrentDir {
		if cwd, err := os.Getwd(); err == nil {
			dirs = append(dirs, cwd)
		}
	}
	if opts.UseXDG {
		for _, base := range xdgBases() {
			dirs = append(dirs, filepath.Join(base, opts.Name))
		}
	}
	return dirs
}

// xdgBases returns the user config base ($XDG_CONFIG_HOME, else ~/.config)
// followed by the system bases ($XDG_CONFIG_DIRS, else /etc/xdg and /etc).
func xdgBases() []string {
	var bases []string
	if home := os.Getenv("XDG_CONFIG_HOME"); home != "" {
		bases = append(bases, home)
	} else if home, err := os.UserHomeDir(); err == nil {
		bases = append(bases, filepath.Join(home, ".config"))
	}

	system := filepath.SplitList(os.Getenv("XDG_CONFIG_DIRS"))
	if len(system) == 0 {
		system = []string{"/etc/xdg", "/etc"}
	}
	return append(bases, system...)
}
