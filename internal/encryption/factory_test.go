package encryption

import (
	"fmt"
	"testing"

	"sislog/internal/config"
)

func TestNewEncryptorFromConfig(t *testing.T) {
	keys := func(typ string) config.EncryptionConfig {
		return config.EncryptionConfig{Type: typ, PublicKeyPath: "k.pub", PrivateKeyPath: "k.key"}
	}

	tests := []struct {
		name     string
		cfg      config.EncryptionConfig
		wantType string
		wantErr  bool
	}{
		{name: "default is age", cfg: keys(""), wantType: "*encryption.AgeEncryptor"},
		{name: "age", cfg: keys("age"), wantType: "*encryption.AgeEncryptor"},
		{name: "age without key paths", cfg: config.EncryptionConfig{Type: "age"}, wantErr: true},
		{name: "test", cfg: config.EncryptionConfig{Type: "test"}, wantType: "*encryption.TestEncryptor"},
		{name: "unknown", cfg: keys("rot13"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewEncryptorFromConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEncryptorFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if typeName := fmt.Sprintf("%T", got); typeName != tt.wantType {
				t.Errorf("NewEncryptorFromConfig() type = %s, want %s", typeName, tt.wantType)
			}
		})
	}
}
