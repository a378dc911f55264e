package logi

import "io"

// Archive stores encrypted database snapshots away from the station.
// All operations stream through io.Reader/io.Writer.
type Archive interface {
	// PutSnapshot stores a snapshot for a station under name.
	// size is the number of bytes that will be read from r.
	PutSnapshot(stationID, name string, r io.Reader, size int64) error

	// GetSnapshot writes the named snapshot to w.
	GetSnapshot(stationID, name string, w io.Writer) error

	// ListSnapshots returns snapshot names for a station, newest first.
	ListSnapshots(stationID string) ([]string, error)

	// ValidateSetup verifies that the archive is reachable.
	ValidateSetup() error
}

// Encryptor encrypts snapshots with a public key. Decryption requires a
// passphrase to unlock the private key.
type Encryptor interface {
	// Setup generates a key pair and protects the private key with passphrase.
	Setup(passphrase string) error

	// Encrypt encrypts data read from r and writes ciphertext to w.
	Encrypt(r io.Reader, w io.Writer) error

	// Unlock opens the private key for restoring snapshots.
	// Returns an error if the passphrase is incorrect.
	Unlock(passphrase string) (DecryptionContext, error)

	// IsConfigured reports whether a key pair is available.
	IsConfigured() bool
}

// DecryptionContext holds an unlocked private key in memory.
type DecryptionContext interface {
	Decrypt(r io.Reader, w io.Writer) error
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, encoded string) (bool, error)
}
