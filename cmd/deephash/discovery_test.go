// FILE: lixenwraith/deephash/cmd/deephash/discovery_test.go
package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDiscoverFile tests the config file search order
func TestDiscoverFile(t *testing.T) {
	isolated := func(dirs ...string) discoveryOptions {
		opts := defaultDiscoveryOptions("app")
		opts.EnvVar = ""
		opts.UseCurrentDir = false
		opts.UseXDG = false
		opts.Paths = dirs
		return opts
	}

	t.Run("ExtensionOrder", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app.yaml", "a: 1\n")
		assert.Equal(t, filepath.Join(dir, "app.yaml"), discoverFile(isolated(dir)))

		writeFile(t, dir, "app.toml", "a = 1\n")
		assert.Equal(t, filepath.Join(dir, "app.toml"), discoverFile(isolated(dir)))
	})

	t.Run("PathOrder", func(t *testing.T) {
		first, second := t.TempDir(), t.TempDir()
		writeFile(t, second, "app.json", "{}")
		assert.Equal(t, filepath.Join(second, "app.json"), discoverFile(isolated(first, second)))

		writeFile(t, first, "app.json", "{}")
		assert.Equal(t, filepath.Join(first, "app.json"), discoverFile(isolated(first, second)))
	})

	t.Run("SkipsDirectories", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "app.toml"), 0755))
		assert.Empty(t, discoverFile(isolated(dir)))
	})

	t.Run("SystemDefaults", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/home/cfg")
		t.Setenv("XDG_CONFIG_DIRS", "")
		assert.Equal(t, []string{"/home/cfg", "/etc/xdg", "/etc"}, xdgBases())
	})

	t.Run("EnvironmentWins", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "app.toml", "a = 1\n")
		t.Setenv("APP_CONFIG", "/explicit/app.toml")

		opts := isolated(dir)
		opts.EnvVar = "APP_CONFIG"
		assert.Equal(t, "/explicit/app.toml", discoverFile(opts))
	})

	t.Run("XDGDirectories", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("XDG_CONFIG_HOME", home)
		t.Setenv("XDG_CONFIG_DIRS", "/a"+string(filepath.ListSeparator)+"/b")

		assert.Equal(t, []string{home, "/a", "/b"}, xdgBases())

		opts := isolated("/custom")
		opts.UseXDG = true
		assert.Equal(t, []string{
			"/custom",
			filepath.Join(home, "app"),
			filepath.Join("/a", "app"),
			filepath.Join("/b", "app"),
		}, opts.searchDirs())

		require.NoError(t, os.Mkdir(filepath.Join(home, "app"), 0755))
		writeFile(t, filepath.Join(home, "app"), "app.yml", "a: 1\n")

		opts = isolated()
		opts.UseXDG = true
		assert.Equal(t, filepath.Join(home, "app", "app.yml"), discoverFile(opts))
	})
}
