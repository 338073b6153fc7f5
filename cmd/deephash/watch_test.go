// FILE: lixenwraith/deephash/cmd/deephash/watch_test.go
package main

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/lixenwraith/deephash"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestWatchFiles tests change polling with debounce
func TestWatchFiles(t *testing.T) {
	path := writeFile(t, t.TempDir(), "watched.toml", "a = 1\n")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reloads := make(chan struct{}, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		watchFiles(ctx, []string{path}, watchOptions{
			PollInterval: 10 * time.Millisecond,
			Debounce:     20 * time.Millisecond,
		}, func() {
			reloads <- struct{}{}
		})
	}()

	// The watcher takes its baseline when it starts, so keep changing the
	// file until a reload is observed.
	deadline := time.After(5 * time.Second)
	for i := 2; ; i++ {
		require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("a = 1\n", i)), 0644))
		select {
		case <-reloads:
			cancel()
			select {
			case <-done:
			case <-time.After(time.Second):
				t.Fatal("watcher did not stop after cancel")
			}
			return
		case <-time.After(200 * time.Millisecond):
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

// TestStatFiles tests change detection state
func TestStatFiles(t *testing.T) {
	dir := t.TempDir()
	present := writeFile(t, dir, "present.toml", "a = 1\n")
	absent := dir + "/absent.toml"

	states := statFiles([]string{present, absent})
	assert.True(t, states[absent].missing)
	assert.False(t, states[present].missing)
	assert.Equal(t, int64(6), states[present].size)
}

// TestChangedPaths tests the leaf diff between two results
func TestChangedPaths(t *testing.T) {
	before := deephash.MustFrom(map[string]any{
		"a": 1,
		"b": map[string]any{"c": 2, "same": "x"},
		"d": 3,
		"l": []any{1, 2},
	})
	after := deephash.MustFrom(map[string]any{
		"a": 1,
		"b": map[string]any{"c": 5, "same": "x"},
		"e": 4,
		"l": []any{1, 2},
	})

	assert.Equal(t, []string{"b.c", "d", "e"}, changedPaths(before, after))
	assert.Empty(t, changedPaths(before, before))
}
