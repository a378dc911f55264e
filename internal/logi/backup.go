package logi

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

const snapshotSuffix = ".db.age"

// SnapshotName returns the archive name of a snapshot taken at t. Names
// sort chronologically.
func SnapshotName(t time.Time) string {
	return t.UTC().Format("20060102T150405Z") + snapshotSuffix
}

// BackupDatabase copies the database, encrypts the copy and stores it in
// the archive. It returns the snapshot name.
func (s *LogiService) BackupDatabase(stationID string) (string, error) {
	tmpDir, err := os.MkdirTemp("", "sislog-backup-*")
	if err != nil {
		return "", fmt.Errorf("creating temp directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	plainPath := filepath.Join(tmpDir, "snapshot.db")
	if err := s.database.BackupTo(plainPath); err != nil {
		return "", err
	}

	encPath := plainPath + ".age"
	if err := s.encryptFile(plainPath, encPath); err != nil {
		return "", err
	}

	f, err := os.Open(encPath)
	if err != nil {
		return "", fmt.Errorf("opening encrypted snapshot: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("stat encrypted snapshot: %w", err)
	}

	name := SnapshotName(s.clock.Now())
	if err := s.archive.PutSnapshot(stationID, name, f, info.Size()); err != nil {
		return "", fmt.Errorf("storing snapshot: %w", err)
	}

	s.logger.Info("database snapshot stored", "station", stationID, "name", name, "size", info.Size())
	return name, nil
}

func (s *LogiService) encryptFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating encrypted snapshot: %w", err)
	}
	if err := s.encryptor.Encrypt(in, out); err != nil {
		out.Close()
		return fmt.Errorf("encrypting snapshot: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("closing encrypted snapshot: %w", err)
	}
	return nil
}

// ListSnapshots returns the snapshot names stored for a station, newest first.
func (s *LogiService) ListSnapshots(stationID string) ([]string, error) {
	names, err := s.archive.ListSnapshots(stationID)
	if err != nil {
		return nil, fmt.Errorf("listing snapshots: %w", err)
	}
	return names, nil
}

// RestoreDatabase decrypts a stored snapshot into destPath, which must not
// exist yet. The passphrase unlocks the private key.
func (s *LogiService) RestoreDatabase(stationID, name, passphrase, destPath string) error {
	if _, err := os.Stat(destPath); err == nil {
		return fmt.Errorf("%w: %s", ErrAlreadyExists, destPath)
	}

	dc, err := s.encryptor.Unlock(passphrase)
	if err != nil {
		return fmt.Errorf("unlocking private key: %w", err)
	}

	dir := filepath.Dir(destPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	encFile, err := os.CreateTemp(dir, ".sislog-restore-*.age")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	encPath := encFile.Name()
	defer os.Remove(encPath)

	if err := s.archive.GetSnapshot(stationID, name, encFile); err != nil {
		encFile.Close()
		return fmt.Errorf("fetching snapshot: %w", err)
	}
	if _, err := encFile.Seek(0, 0); err != nil {
		encFile.Close()
		return fmt.Errorf("rewinding snapshot: %w", err)
	}

	tmpPath := destPath + ".tmp"
	out, err := os.Create(tmpPath)
	if err != nil {
		encFile.Close()
		return fmt.Errorf("creating restored database: %w", err)
	}
	err = dc.Decrypt(encFile, out)
	encFile.Close()
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("decrypting snapshot: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("moving restored database into place: %w", err)
	}

	s.logger.Info("database snapshot restored", "station", stationID, "name", name, "path", destPath)
	return nil
}
