package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the main configuration for sislog.
type Config struct {
	StationID  string           `toml:"station_id"`
	BaseDir    string           `toml:"base_dir"`
	LogDir     string           `toml:"log_dir"`
	LogLevel   string           `toml:"log_level"` // "debug", "info" (default), "warn" or "error"
	Database   DatabaseConfig   `toml:"database"`
	Archive    ArchiveConfig    `toml:"archive"`
	Encryption EncryptionConfig `toml:"encryption"`
	Auth       AuthConfig       `toml:"auth"`
}

// EncryptionConfig holds paths to the age key pair used for snapshot encryption.
type EncryptionConfig struct {
	Type           string `toml:"type"` // "age" (default) or "test"
	PublicKeyPath  string `toml:"public_key_path"`
	PrivateKeyPath string `toml:"private_key_path"`
}

// ArchiveConfig represents configuration for the snapshot archive.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type ArchiveConfig struct {
	Type string `toml:"type"` // "memory", "s3", or "filesystem"
	Name string `toml:"name"`

	// S3-specific fields (only used when Type == "s3")
	S3Bucket   string `toml:"s3_bucket,omitempty"`
	S3Prefix   string `toml:"s3_prefix,omitempty"`
	S3Region   string `toml:"s3_region,omitempty"`
	S3Endpoint string `toml:"s3_endpoint,omitempty"` // S3-compatible services such as MinIO
	// Static credentials; when empty the default AWS credential chain is used.
	S3AccessKeyID     string `toml:"s3_access_key_id,omitempty"`
	S3SecretAccessKey string `toml:"s3_secret_access_key,omitempty"`

	// FileSystem-specific fields (only used when Type == "filesystem")
	FSRoot string `toml:"fs_root,omitempty"`
}

// DatabaseConfig represents configuration for the record database.
// This uses a tagged union pattern - the Type field determines which other fields are relevant.
type DatabaseConfig struct {
	Type    string `toml:"type"`               // "sqlite" or "memory"
	DataDir string `toml:"data_dir,omitempty"` // only used for type=sqlite
}

// AuthConfig holds the argon2id parameters used for new password hashes.
// Existing hashes carry their own parameters.
type AuthConfig struct {
	Argon2MemoryKiB uint32 `toml:"argon2_memory_kib"`
	Argon2Time      uint32 `toml:"argon2_time"`
	Argon2Threads   uint8  `toml:"argon2_threads"`
}

// DefaultAuthConfig returns the argon2id parameters recommended by RFC 9106
// for memory-constrained environments.
func DefaultAuthConfig() AuthConfig {
	return AuthConfig{
		Argon2MemoryKiB: 64 * 1024,
		Argon2Time:      3,
		Argon2Threads:   2,
	}
}

// NewConfig creates a new Config with the provided values and default paths.
func NewConfig(stationID, baseDir string) *Config {
	return &Config{
		StationID: stationID,
		BaseDir:   baseDir,
		LogDir:    filepath.Join(baseDir, "log"),
		LogLevel:  "info",
		Database: DatabaseConfig{
			Type:    "sqlite",
			DataDir: filepath.Join(baseDir, "db"),
		},
		Archive: ArchiveConfig{
			Type:   "filesystem",
			Name:   "local",
			FSRoot: filepath.Join(baseDir, "archive"),
		},
		Encryption: EncryptionConfig{
			Type:           "age",
			PublicKeyPath:  filepath.Join(baseDir, "keys", "sislog.pub"),
			PrivateKeyPath: filepath.Join(baseDir, "keys", "sislog.key"),
		},
		Auth: DefaultAuthConfig(),
	}
}

// Decode reads a Config from r and fills in what the file leaves out.
func Decode(r io.Reader) (*Config, error) {
	var cfg Config
	if _, err := toml.NewDecoder(r).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.fillDefaults()
	return &cfg, nil
}

// Encode writes cfg to w as TOML.
func Encode(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// fillDefaults derives settings older or hand-written files omit.
// SISLOG_LOG_LEVEL overrides log_level.
func (c *Config) fillDefaults() {
	if c.LogDir == "" && c.BaseDir != "" {
		c.LogDir = filepath.Join(c.BaseDir, "log")
	}
	if lvl := os.Getenv("SISLOG_LOG_LEVEL"); lvl != "" {
		c.LogLevel = lvl
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Auth == (AuthConfig{}) {
		c.Auth = DefaultAuthConfig()
	}
}

// ReadFromFile reads the Config stored at path.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	if cfg.StationID == "" {
		return nil, fmt.Errorf("reading config from %s: station_id is empty", path)
	}
	return cfg, nil
}

// Init writes cfg to a new file at path with mode 0600. It fails when the
// file already exists.
func Init(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("config file already exists at %s", path)
	}
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}

	if err := Encode(f, cfg); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("initializing config: %w", err)
	}
	return f.Close()
}
