// FILE: lixenwraith/deephash/cmd/deephash/watch.go
package main

import (
	"context"
	"maps"
	"os"
	"reflect"
	"slices"
	"time"

	"github.com/lixenwraith/deephash"
)

// Timing for --watch.
const (
	minPollInterval     = 100 * time.Millisecond // Hard floor for file stat polling
	defaultDebounce     = 500 * time.Millisecond // File change coalescence period
	defaultPollInterval = time.Second            // Standard file monitoring frequency
)

// watchOptions configures file watching behavior
type watchOptions struct {
	// PollInterval for file stat checks
	PollInterval time.Duration

	// Debounce duration to avoid rapid reloads
	Debounce time.Duration
}

func defaultWatchOptions() watchOptions {
	return watchOptions{
		PollInterval: defaultPollInterval,
		Debounce:     defaultDebounce,
	}
}

// fileState is the part of a stat result that signals a change.
type fileState struct {
	modTime time.Time
	size    int64
	missing bool
}

// watchFiles polls files until ctx is done and calls reload once changes
// have been quiet for opts.Debounce. reload runs on the calling goroutine.
func watchFiles(ctx context.Context, files []string, opts watchOptions, reload func()) {
	states := statFiles(files)

	ticker := time.NewTicker(opts.PollInterval)
	defer ticker.Stop()

	var (
		debounce *time.Timer
		pending  <-chan time.Time
	)
	defer func() {
		if debounce != nil {
			debounce.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next := statFiles(files)
			if maps.Equal(states, next) {
				continue
			}
			states = next
			if debounce == nil {
				debounce = time.NewTimer(opts.Debounce)
			} else {
				debounce.Reset(opts.Debounce)
			}
			pending = debounce.C
		case <-pending:
			pending = nil
			reload()
		}
	}
}

func statFiles(files []string) map[string]fileState {
	states := make(map[string]fileState, len(files))
	for _, path := range files {
		info, err := os.Stat(path)
		if err != nil {
			states[path] = fileState{missing: true}
			continue
		}
		states[path] = fileState{modTime: info.ModTime(), size: info.Size()}
	}
	return states
}

// changedPaths lists the dotted leaf paths whose values differ between two
// results, including paths present on one side only.
func changedPaths(before, after *deephash.Map) []string {
	oldValues := before.Flatten()
	newValues := after.Flatten()

	var changed []string
	for path, newVal := range newValues {
		if oldVal, existed := oldValues[path]; !existed || !reflect.DeepEqual(oldVal, newVal) {
			changed = append(changed, path)
		}
	}
	for path := range oldValues {
		if _, exists := newValues[path]; !exists {
			changed = append(changed, path)
		}
	}
	slices.Sort(changed)
	return changed
}
