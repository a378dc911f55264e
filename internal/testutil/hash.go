package testutil

import (
	"errors"
	"strings"

	"sislog/internal/logi"
)

const plainPrefix = "plain$"

// PlainHasher stores passwords with a marker prefix instead of hashing them.
type PlainHasher struct{}

func (PlainHasher) Hash(password string) (string, error) {
	return plainPrefix + password, nil
}

func (PlainHasher) Verify(password, encoded string) (bool, error) {
	stored, ok := strings.CutPrefix(encoded, plainPrefix)
	if !ok {
		return false, errors.New("not a plain test hash")
	}
	return stored == password, nil
}

var _ logi.PasswordHasher = PlainHasher{}
