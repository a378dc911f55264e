package testutil

import (
	"sislog/internal/archive"
	"sislog/internal/encryption"
	"sislog/internal/logi"
)

// NewTestEncryptor creates a new test encryptor for testing.
func NewTestEncryptor() logi.Encryptor {
	return encryption.NewTestEncryptor()
}

// NewTestArchive creates a new in-memory archive for testing.
func NewTestArchive() *archive.MemoryArchive {
	return archive.NewMemoryArchive("test-archive")
}
