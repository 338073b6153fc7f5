// File: lixenwraith/deephash/cmd/deephash/main.go

// Command deephash deep-merges configuration documents and prints the result.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/lixenwraith/deephash"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

const longHelp = `Files are merged in order, later files winning. --set overrides are applied last.
Without file arguments, $DEEPHASH_CONFIG or deephash.{toml,yaml,yml,json,ini} in the
current directory or the XDG config directories is used when present.
With --watch the files are polled and the result is printed again after each change.`

// run holds the parsed command line.
type run struct {
	files   []string
	sets    []string
	format  string
	get     string
	allowed []string
	output  string
	logger  *slog.Logger
}

func newRootCmd() *cobra.Command {
	var (
		r          run
		verbose    bool
		noDiscover bool
		watch      bool
		wopts      = defaultWatchOptions()
	)

	cmd := &cobra.Command{
		Use:          "deephash [files...]",
		Short:        "Deep-merge configuration documents and print the result",
		Long:         longHelp,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			level := slog.LevelInfo
			if verbose {
				level = slog.LevelDebug
			}
			r.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			r.files = args
			if len(r.files) == 0 && !noDiscover {
				if path := discoverFile(defaultDiscoveryOptions("deephash")); path != "" {
					r.logger.Debug("discovered config file", "path", path)
					r.files = []string{path}
				}
			}

			m, err := r.build()
			if err != nil {
				return err
			}
			if err := r.emit(cmd.OutOrStdout(), m); err != nil {
				return err
			}
			if !watch {
				return nil
			}
			if len(r.files) == 0 {
				return fmt.Errorf("--watch needs at least one file")
			}

			if wopts.PollInterval < minPollInterval {
				wopts.PollInterval = minPollInterval
			}
			r.logger.Info("watching", "files", strings.Join(r.files, ","), "interval", wopts.PollInterval)

			previous := m
			watchFiles(cmd.Context(), r.files, wopts, func() {
				next, err := r.build()
				if err != nil {
					r.logger.Warn("reload failed, keeping previous result", "error", err)
					return
				}
				changed := changedPaths(previous, next)
				if len(changed) == 0 {
					return
				}
				r.logger.Info("configuration changed", "paths", strings.Join(changed, ","))
				previous = next
				if err := r.emit(cmd.OutOrStdout(), next); err != nil {
					r.logger.Error("print failed", "error", err)
				}
			})
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringArrayVar(&r.sets, "set", nil, "override a value as path=value (value parsed as a YAML scalar)")
	flags.StringVarP(&r.format, "format", "f", string(deephash.FormatTOML), "output format: toml, yaml, json or ini")
	flags.StringVar(&r.get, "get", "", "print only the value at this dotted path")
	flags.StringVarP(&r.output, "output", "o", "", "write the result to this file instead of stdout")
	flags.StringSliceVar(&r.allowed, "allow", nil, "restrict top-level keys to this list")
	flags.BoolVarP(&verbose, "verbose", "v", false, "log each merge step")
	flags.BoolVar(&noDiscover, "no-discover", false, "do not search for a config file when none is given")
	flags.BoolVarP(&watch, "watch", "w", false, "keep running and print again when a file changes")
	flags.DurationVar(&wopts.PollInterval, "poll-interval", wopts.PollInterval, "file stat interval for --watch")
	flags.DurationVar(&wopts.Debounce, "debounce", wopts.Debounce, "quiet period before reloading after a change")

	return cmd
}

// build reads every file and layers the documents and --set overrides.
func (r *run) build() (*deephash.Map, error) {
	b := deephash.NewBuilder().WithLogger(r.logger)
	for _, path := range r.files {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		b.WithDocument(path, data, deephash.DetectFormat(path, data))
	}

	overrides := deephash.New()
	for _, assignment := range r.sets {
		path, value, err := parseAssignment(assignment)
		if err != nil {
			return nil, err
		}
		if err := overrides.Set(path, value); err != nil {
			return nil, fmt.Errorf("--set %q: %w", assignment, err)
		}
	}
	if overrides.Len() > 0 {
		b.WithLayer("--set", overrides)
	}
	if len(r.allowed) > 0 {
		b.WithAllowedKeys(r.allowed)
	}

	return b.Build()
}

// print writes m, or the value at --get, in the output format.
func (r *run) print(w io.Writer, m *deephash.Map) error {
	if r.get == "" {
		return m.Encode(w, deephash.Format(r.format))
	}

	value, found, err := m.Lookup(r.get)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("--get %q: path not found", r.get)
	}
	if value == nil {
		value = "null"
	}
	if n, ok := value.(deephash.Nested); ok {
		return n.Deep().Encode(w, deephash.Format(r.format))
	}
	_, err = fmt.Fprintln(w, value)
	return err
}

// parseAssignment splits "path=value" and types the value as YAML would:
// "8080" becomes an int, "true" a bool, "null" nil.
func parseAssignment(s string) (string, any, error) {
	path, raw, ok := strings.Cut(s, "=")
	if !ok || path == "" {
		return "", nil, fmt.Errorf("invalid assignment %q, expected path=value", s)
	}

	if raw == "" {
		return path, "", nil
	}

	var value any
	if err := yaml.Unmarshal([]byte(raw), &value); err != nil {
		return path, raw, nil
	}
	if _, isMap := value.(map[string]any); isMap {
		return path, raw, nil
	}
	return path, value, nil
}
