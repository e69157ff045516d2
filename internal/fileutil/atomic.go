// Package fileutil provides file system helpers for exported results.
package fileutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data by staging it in a temporary file and renaming
// it onto the final path. Readers observe either no file or the complete
// file, never a torn write; POSIX guarantees the rename is atomic.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) error {
	// Stage in the destination directory: renames across filesystems are
	// not atomic.
	dir := filepath.Dir(filename)
	base := filepath.Base(filename)

	tmpFile, err := os.CreateTemp(dir, base+".tmp.*")
	if err != nil {
		return fmt.Errorf("staging %s: %w", base, err)
	}
	tmpPath := tmpFile.Name()

	defer func() {
		if tmpFile != nil {
			tmpFile.Close()
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", tmpPath, err)
	}
	if err := tmpFile.Sync(); err != nil {
		return fmt.Errorf("syncing %s: %w", tmpPath, err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", tmpPath, err)
	}
	tmpFile = nil // staged cleanly, keep it

	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", tmpPath, err)
	}
	if err := os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("publishing %s: %w", filename, err)
	}

	return nil
}

// WriteJSONAtomic renders v as indented JSON and writes it atomically.
// Batch exports go through here so an interrupted run never leaves a
// truncated results file behind.
func WriteJSONAtomic(filename string, v any, perm os.FileMode) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(filename), err)
	}
	data = append(data, '\n')
	return WriteFileAtomic(filename, data, perm)
}
