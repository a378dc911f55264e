package archive

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"

	"sislog/internal/logi"
)

// MemoryArchive is an in-memory implementation of the Archive interface.
// It is useful for testing and is safe for concurrent use.
type MemoryArchive struct {
	name      string
	snapshots map[string][]byte // snapshotKey -> data
	mu        sync.RWMutex
}

// NewMemoryArchive creates a new in-memory archive with the given name.
func NewMemoryArchive(name string) *MemoryArchive {
	return &MemoryArchive{
		name:      name,
		snapshots: make(map[string][]byte),
	}
}

// PutSnapshot stores a snapshot for a station.
func (m *MemoryArchive) PutSnapshot(stationID, name string, r io.Reader, size int64) error {
	if err := validateKey(stationID, name); err != nil {
		return err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if int64(len(data)) != size {
		return fmt.Errorf("size mismatch: expected %d bytes, got %d", size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.snapshots[snapshotKey(stationID, name)] = data
	return nil
}

// GetSnapshot writes the named snapshot to w.
func (m *MemoryArchive) GetSnapshot(stationID, name string, w io.Writer) error {
	if err := validateKey(stationID, name); err != nil {
		return err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	data, ok := m.snapshots[snapshotKey(stationID, name)]
	if !ok {
		return fmt.Errorf("%w: snapshot %q for station %s", logi.ErrNotFound, name, stationID)
	}

	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	return nil
}

// ListSnapshots returns the snapshot names stored for a station, newest first.
func (m *MemoryArchive) ListSnapshots(stationID string) ([]string, error) {
	if err := validateName("station id", stationID); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	prefix := snapshotKey(stationID, "") + "/"
	names := []string{}
	for key := range m.snapshots {
		if name, ok := strings.CutPrefix(key, prefix); ok {
			names = append(names, name)
		}
	}
	return newestFirst(names), nil
}

// ValidateSetup always succeeds for in-memory archive.
func (m *MemoryArchive) ValidateSetup() error {
	return nil
}

// Compile-time check that MemoryArchive implements logi.Archive interface
var _ logi.Archive = (*MemoryArchive)(nil)
