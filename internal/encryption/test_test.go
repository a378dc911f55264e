package encryption

import (
	"bytes"
	"errors"
	"testing"

	"sislog/internal/logi"
)

func TestTestEncryptor_UnlockChecksPassphrase(t *testing.T) {
	t.Parallel()

	e := NewTestEncryptor()
	if _, err := e.Unlock("anything"); err != nil {
		t.Errorf("Unlock() before Setup error = %v, want nil", err)
	}

	if err := e.Setup("secret"); err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if _, err := e.Unlock("secret"); err != nil {
		t.Errorf("Unlock() with setup passphrase error = %v", err)
	}
	if _, err := e.Unlock("wrong"); !errors.Is(err, logi.ErrInvalidCredentials) {
		t.Errorf("Unlock() with wrong passphrase error = %v, want ErrInvalidCredentials", err)
	}
}

func TestTestEncryptor_IsConfigured(t *testing.T) {
	t.Parallel()
	if !NewTestEncryptor().IsConfigured() {
		t.Error("IsConfigured() = false, want true")
	}
}

func TestTestEncryptor_RoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input []byte
	}{
		{name: "empty", input: []byte{}},
		{name: "sqlite header", input: []byte("SQLite format 3\x00")},
		{name: "binary", input: []byte{0x00, 0xff, 0x5a, 0xa5}},
		{name: "large", input: bytes.Repeat([]byte("load item "), 20000)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e := NewTestEncryptor()
			var sealed bytes.Buffer
			if err := e.Encrypt(bytes.NewReader(tt.input), &sealed); err != nil {
				t.Fatalf("Encrypt() error = %v", err)
			}
			if !bytes.HasPrefix(sealed.Bytes(), snapshotMagic) {
				t.Fatalf("sealed output does not start with %q", snapshotMagic)
			}
			if len(tt.input) > 0 && bytes.Contains(sealed.Bytes(), tt.input) {
				t.Error("sealed output contains the plaintext")
			}

			ctx, err := e.Unlock("")
			if err != nil {
				t.Fatalf("Unlock() error = %v", err)
			}
			var opened bytes.Buffer
			if err := ctx.Decrypt(&sealed, &opened); err != nil {
				t.Fatalf("Decrypt() error = %v", err)
			}
			if !bytes.Equal(opened.Bytes(), tt.input) {
				t.Errorf("round trip returned %d bytes, want %d", opened.Len(), len(tt.input))
			}
		})
	}
}

func TestTestEncryptor_Deterministic(t *testing.T) {
	t.Parallel()

	e := NewTestEncryptor()
	var a, b bytes.Buffer
	e.Encrypt(bytes.NewReader([]byte("same snapshot")), &a)
	e.Encrypt(bytes.NewReader([]byte("same snapshot")), &b)
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("same input produced different output")
	}
}

func TestTestDecryptionContext_Rejects(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   []byte
		wantErr error
	}{
		{name: "plain sqlite file", input: []byte("SQLite format 3\x00 more bytes"), wantErr: errNotSealed},
		{name: "truncated header", input: []byte("SLSN")},
		{name: "empty", input: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := TestDecryptionContext{}.Decrypt(bytes.NewReader(tt.input), &out)
			if err == nil {
				t.Fatal("Decrypt() error = nil, want error")
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("Decrypt() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
