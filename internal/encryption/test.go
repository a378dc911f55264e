package encryption

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	"sislog/internal/logi"
)

// snapshotMagic opens every stream written by TestEncryptor.
var snapshotMagic = []byte("SLSNAP1\n")

// mask is XORed over the payload so sealed snapshots never look like SQLite
// files. It is not encryption.
const mask byte = 0x5a

// errNotSealed is returned when a stream lacks snapshotMagic.
var errNotSealed = errors.New("not a test-sealed snapshot")

// TestEncryptor is a deterministic stand-in for AgeEncryptor. It is always
// configured; after Setup, Unlock only accepts the passphrase given there.
type TestEncryptor struct {
	passphrase string
}

var _ logi.Encryptor = (*TestEncryptor)(nil)

func NewTestEncryptor() *TestEncryptor {
	return &TestEncryptor{}
}

func (e *TestEncryptor) Setup(passphrase string) error {
	e.passphrase = passphrase
	return nil
}

func (e *TestEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	if _, err := w.Write(snapshotMagic); err != nil {
		return fmt.Errorf("writing snapshot header: %w", err)
	}
	if _, err := io.Copy(w, maskReader{r}); err != nil {
		return fmt.Errorf("sealing snapshot: %w", err)
	}
	return nil
}

func (e *TestEncryptor) Unlock(passphrase string) (logi.DecryptionContext, error) {
	if e.passphrase != "" && passphrase != e.passphrase {
		return nil, fmt.Errorf("decrypting private key: %w", logi.ErrInvalidCredentials)
	}
	return TestDecryptionContext{}, nil
}

func (e *TestEncryptor) IsConfigured() bool { return true }

// TestDecryptionContext opens streams sealed by TestEncryptor.
type TestDecryptionContext struct{}

var _ logi.DecryptionContext = TestDecryptionContext{}

func (TestDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	br := bufio.NewReader(r)
	head := make([]byte, len(snapshotMagic))
	if _, err := io.ReadFull(br, head); err != nil {
		return fmt.Errorf("reading snapshot header: %w", err)
	}
	if !bytes.Equal(head, snapshotMagic) {
		return errNotSealed
	}
	if _, err := io.Copy(w, maskReader{br}); err != nil {
		return fmt.Errorf("opening snapshot: %w", err)
	}
	return nil
}

type maskReader struct{ r io.Reader }

func (m maskReader) Read(p []byte) (int, error) {
	n, err := m.r.Read(p)
	for i := range p[:n] {
		p[i] ^= mask
	}
	return n, err
}
