package encryption

import (
	"errors"
	"fmt"

	"sislog/internal/config"
	"sislog/internal/logi"
)

// NewEncryptorFromConfig returns the snapshot encryptor selected by cfg.Type.
// An empty type means age.
func NewEncryptorFromConfig(cfg config.EncryptionConfig) (logi.Encryptor, error) {
	switch cfg.Type {
	case "", "age":
		if cfg.PublicKeyPath == "" || cfg.PrivateKeyPath == "" {
			return nil, errors.New("age encryption requires public_key_path and private_key_path")
		}
		return NewAgeEncryptor(cfg), nil
	case "test":
		return NewTestEncryptor(), nil
	}
	return nil, fmt.Errorf("unknown encryption type: %q", cfg.Type)
}
