// Package fileutil holds small file system helpers shared by the commands.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// ErrExists is returned by CreateAtomic when the target is already present.
var ErrExists = errors.New("file already exists")

// WriteFileAtomic replaces filename with data. The bytes go to a temporary
// file in the same directory which is synced and then renamed over the
// target, so a reader sees either the old file or the new one.
func WriteFileAtomic(filename string, data []byte, perm os.FileMode) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(filename), filepath.Base(filename)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("failed to sync temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err = os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("failed to set permissions: %w", err)
	}
	if err = os.Rename(tmpPath, filename); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// CreateAtomic is WriteFileAtomic that refuses to replace an existing file
// unless overwrite is set.
func CreateAtomic(filename string, data []byte, perm os.FileMode, overwrite bool) error {
	if !overwrite && Exists(filename) {
		return fmt.Errorf("%w: %s", ErrExists, filename)
	}
	return WriteFileAtomic(filename, data, perm)
}

// Exists reports whether filename is present.
func Exists(filename string) bool {
	_, err := os.Stat(filename)
	return !errors.Is(err, fs.ErrNotExist)
}
