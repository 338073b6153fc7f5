// FILE: lixenwraith/deephash/cmd/deephash/output.go
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/lixenwraith/deephash"
)

// writeFileAtomic replaces path with data through a synced temporary file in
// the same directory, so readers never see a partial document.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory '%s': %w", dir, err)
	}

	tempFile, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary output file: %w", err)
	}
	defer os.Remove(tempFile.Name()) // Clean up temp file if rename fails

	if _, err := tempFile.Write(data); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to write temp file '%s': %w", tempFile.Name(), err)
	}
	if err := tempFile.Sync(); err != nil {
		tempFile.Close()
		return fmt.Errorf("failed to sync temp file '%s': %w", tempFile.Name(), err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file '%s': %w", tempFile.Name(), err)
	}

	if err := os.Rename(tempFile.Name(), path); err != nil {
		return fmt.Errorf("failed to rename temp file to '%s': %w", path, err)
	}
	if err := os.Chmod(path, 0644); err != nil {
		return fmt.Errorf("failed to set permissions on '%s': %w", path, err)
	}
	return nil
}

// emit prints the result to stdout, or replaces the --output file with it.
func (r *run) emit(stdout io.Writer, m *deephash.Map) error {
	if r.output == "" {
		return r.print(stdout, m)
	}

	var buf bytes.Buffer
	if err := r.print(&buf, m); err != nil {
		return err
	}
	if err := writeFileAtomic(r.output, buf.Bytes()); err != nil {
		return err
	}
	r.logger.Debug("wrote output", "path", r.output, "bytes", buf.Len())
	return nil
}
