package archive

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"sislog/internal/logi"
)

// FileSystemArchive is a filesystem-based implementation of the Archive interface.
// It stores snapshots as files in a directory structure:
//
//	<root>/
//	  snapshots/
//	    <stationID>/
//	      <timestamp>.db.age
type FileSystemArchive struct {
	name         string
	root         string
	snapshotsDir string
}

// NewFileSystemArchive creates a new filesystem archive rooted at the given path.
func NewFileSystemArchive(name, root string) (*FileSystemArchive, error) {
	dir := filepath.Join(root, snapshotsDir)

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create snapshots directory: %w", err)
	}

	return &FileSystemArchive{
		name:         name,
		root:         root,
		snapshotsDir: dir,
	}, nil
}

// PutSnapshot stores a snapshot for a station. An existing snapshot with
// the same name is replaced atomically.
func (a *FileSystemArchive) PutSnapshot(stationID, name string, r io.Reader, size int64) error {
	if err := validateKey(stationID, name); err != nil {
		return err
	}

	stationDir := filepath.Join(a.snapshotsDir, stationID)
	if err := os.MkdirAll(stationDir, 0755); err != nil {
		return fmt.Errorf("failed to create station directory: %w", err)
	}

	return a.writeFile(filepath.Join(stationDir, name), r, size)
}

// GetSnapshot retrieves a snapshot and writes it to w.
func (a *FileSystemArchive) GetSnapshot(stationID, name string, w io.Writer) error {
	if err := validateKey(stationID, name); err != nil {
		return err
	}

	f, err := os.Open(filepath.Join(a.snapshotsDir, stationID, name))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: snapshot %q for station %s", logi.ErrNotFound, name, stationID)
		}
		return fmt.Errorf("failed to open snapshot: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(w, f); err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	return nil
}

// ListSnapshots returns the snapshot names stored for a station, newest first.
// In-progress temp files are skipped.
func (a *FileSystemArchive) ListSnapshots(stationID string) ([]string, error) {
	if err := validateName("station id", stationID); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.Join(a.snapshotsDir, stationID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".tmp-") {
			continue
		}
		names = append(names, e.Name())
	}
	return newestFirst(names), nil
}

// ValidateSetup verifies that the archive directories are accessible.
func (a *FileSystemArchive) ValidateSetup() error {
	for _, dir := range []string{a.root, a.snapshotsDir} {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("archive directory not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("archive path is not a directory: %s", dir)
		}
	}

	return nil
}

// writeFile writes data from r to the specified path using atomic write (temp file + rename).
func (a *FileSystemArchive) writeFile(destPath string, r io.Reader, expectedSize int64) error {
	// Create temp file in the same directory to ensure atomic rename works
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	// Clean up temp file on failure
	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	written, err := io.Copy(tmpFile, r)
	if err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write data: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if written != expectedSize {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", expectedSize, written)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemArchive implements logi.Archive interface
var _ logi.Archive = (*FileSystemArchive)(nil)
