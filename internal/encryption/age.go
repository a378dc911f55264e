package encryption

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"filippo.io/age"

	"sislog/internal/config"
	"sislog/internal/logi"
)

// AgeEncryptor seals database snapshots with filippo.io/age.
//
// Snapshots are encrypted to an X25519 recipient kept in plaintext next to
// the station's data, so backups run unattended. Restoring needs the
// matching identity, which is stored wrapped in an scrypt recipient and is
// only available after Unlock with the operator's passphrase.
type AgeEncryptor struct {
	pubPath  string
	privPath string
}

var _ logi.Encryptor = (*AgeEncryptor)(nil)

func NewAgeEncryptor(cfg config.EncryptionConfig) *AgeEncryptor {
	return &AgeEncryptor{pubPath: cfg.PublicKeyPath, privPath: cfg.PrivateKeyPath}
}

// Setup creates the station key pair. An existing pair is never replaced.
func (e *AgeEncryptor) Setup(passphrase string) error {
	if e.IsConfigured() {
		return fmt.Errorf("%w: key pair at %s", logi.ErrAlreadyExists, e.pubPath)
	}
	if strings.TrimSpace(passphrase) == "" {
		return fmt.Errorf("%w: passphrase must not be empty", logi.ErrInvalidInput)
	}

	id, err := age.GenerateX25519Identity()
	if err != nil {
		return fmt.Errorf("generating key pair: %w", err)
	}

	wrapped, err := wrapIdentity(id, passphrase)
	if err != nil {
		return err
	}

	// The public key goes last; backups must not start before the
	// identity that restores them exists.
	if err := writeKeyFile(e.privPath, wrapped, 0600); err != nil {
		return fmt.Errorf("writing private key: %w", err)
	}
	if err := writeKeyFile(e.pubPath, []byte(id.Recipient().String()+"\n"), 0644); err != nil {
		os.Remove(e.privPath)
		return fmt.Errorf("writing public key: %w", err)
	}
	return nil
}

// PublicKey returns the age recipient snapshots are sealed to.
func (e *AgeEncryptor) PublicKey() (string, error) {
	r, err := e.recipient()
	if err != nil {
		return "", err
	}
	return r.String(), nil
}

func (e *AgeEncryptor) Encrypt(r io.Reader, w io.Writer) error {
	rcpt, err := e.recipient()
	if err != nil {
		return fmt.Errorf("loading public key: %w", err)
	}

	sealed, err := age.Encrypt(w, rcpt)
	if err != nil {
		return fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.Copy(sealed, r); err != nil {
		return fmt.Errorf("encrypting snapshot: %w", err)
	}
	if err := sealed.Close(); err != nil {
		return fmt.Errorf("finalizing encryption: %w", err)
	}
	return nil
}

// Unlock opens the private key with passphrase. A wrong passphrase is
// reported as logi.ErrInvalidCredentials.
func (e *AgeEncryptor) Unlock(passphrase string) (logi.DecryptionContext, error) {
	wrapped, err := os.ReadFile(e.privPath)
	if err != nil {
		return nil, fmt.Errorf("reading private key file: %w", err)
	}

	id, err := unwrapIdentity(wrapped, passphrase)
	if err != nil {
		return nil, fmt.Errorf("decrypting private key: %w", err)
	}
	return &AgeDecryptionContext{identity: id}, nil
}

// IsConfigured reports whether both halves of the key pair are on disk.
func (e *AgeEncryptor) IsConfigured() bool {
	for _, p := range []string{e.pubPath, e.privPath} {
		if _, err := os.Stat(p); err != nil {
			return false
		}
	}
	return true
}

func (e *AgeEncryptor) recipient() (*age.X25519Recipient, error) {
	data, err := os.ReadFile(e.pubPath)
	if err != nil {
		return nil, fmt.Errorf("reading public key: %w", err)
	}
	r, err := age.ParseX25519Recipient(strings.TrimSpace(string(data)))
	if err != nil {
		return nil, fmt.Errorf("parsing public key: %w", err)
	}
	return r, nil
}

// AgeDecryptionContext holds an unlocked station identity.
type AgeDecryptionContext struct {
	identity age.Identity
}

var _ logi.DecryptionContext = (*AgeDecryptionContext)(nil)

// Decrypt fails with logi.ErrInvalidCredentials when the snapshot was sealed
// to a different key pair.
func (c *AgeDecryptionContext) Decrypt(r io.Reader, w io.Writer) error {
	plain, err := age.Decrypt(r, c.identity)
	if err != nil {
		if isWrongKey(err) {
			return fmt.Errorf("snapshot was encrypted to another key: %w", logi.ErrInvalidCredentials)
		}
		return fmt.Errorf("creating decrypted reader: %w", err)
	}
	if _, err := io.Copy(w, plain); err != nil {
		return fmt.Errorf("decrypting snapshot: %w", err)
	}
	return nil
}

func wrapIdentity(id *age.X25519Identity, passphrase string) ([]byte, error) {
	rcpt, err := age.NewScryptRecipient(passphrase)
	if err != nil {
		return nil, fmt.Errorf("creating scrypt recipient: %w", err)
	}

	var buf bytes.Buffer
	w, err := age.Encrypt(&buf, rcpt)
	if err != nil {
		return nil, fmt.Errorf("creating encrypted writer: %w", err)
	}
	if _, err := io.WriteString(w, id.String()+"\n"); err != nil {
		return nil, fmt.Errorf("encrypting private key: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finalizing private key: %w", err)
	}
	return buf.Bytes(), nil
}

func unwrapIdentity(wrapped []byte, passphrase string) (age.Identity, error) {
	sid, err := age.NewScryptIdentity(passphrase)
	if err != nil {
		return nil, err
	}

	r, err := age.Decrypt(bytes.NewReader(wrapped), sid)
	if err != nil {
		if isWrongKey(err) {
			return nil, logi.ErrInvalidCredentials
		}
		return nil, err
	}

	ids, err := age.ParseIdentities(r)
	if err != nil {
		return nil, fmt.Errorf("parsing private key: %w", err)
	}
	if len(ids) == 0 {
		return nil, errors.New("no identities found in private key")
	}
	return ids[0], nil
}

func isWrongKey(err error) bool {
	var noMatch *age.NoIdentityMatchError
	return errors.As(err, &noMatch)
}

// writeKeyFile writes data next to path and renames it into place, so a
// crash never leaves a truncated key behind.
func writeKeyFile(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
