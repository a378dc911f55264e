package testutil

import (
	"testing"

	"sislog/internal/logi"
)

// NewTestService creates a LogiService over db with in-memory collaborators:
// memory archive, test encryptor, plain hasher, fixed clock and sequential ids.
func NewTestService(t *testing.T, db logi.Database) *logi.LogiService {
	t.Helper()
	return logi.NewLogiService(db, NewTestArchive(), NewTestEncryptor(), PlainHasher{}, logi.NewNopLogger(), FixedClock(), NewStubIDGenerator())
}
