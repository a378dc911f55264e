package archive

import (
	"testing"

	"sislog/internal/config"
)

func TestNewArchiveFromConfig(t *testing.T) {
	isolateAWSEnv(t)

	tests := []struct {
		name    string
		cfg     config.ArchiveConfig
		wantErr bool
	}{
		{
			name:    "memory archive",
			cfg:     config.ArchiveConfig{Type: "memory", Name: "test-memory"},
			wantErr: false,
		},
		{
			name:    "filesystem archive",
			cfg:     config.ArchiveConfig{Type: "filesystem", Name: "test-fs", FSRoot: t.TempDir()},
			wantErr: false,
		},
		{
			name:    "filesystem archive without root",
			cfg:     config.ArchiveConfig{Type: "filesystem", Name: "test-fs"},
			wantErr: true,
		},
		{
			name:    "s3 archive",
			cfg:     config.ArchiveConfig{Type: "s3", Name: "test-s3", S3Bucket: "my-bucket", S3Region: "us-east-1", S3AccessKeyID: "id", S3SecretAccessKey: "secret"},
			wantErr: false,
		},
		{
			name:    "s3 archive without bucket",
			cfg:     config.ArchiveConfig{Type: "s3", Name: "test-s3", S3Region: "us-east-1"},
			wantErr: true,
		},
		{
			name:    "unknown type",
			cfg:     config.ArchiveConfig{Type: "tape"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewArchiveFromConfig(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewArchiveFromConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr && got != nil {
				t.Error("NewArchiveFromConfig() should return nil on error")
			}
			if !tt.wantErr && got == nil {
				t.Error("NewArchiveFromConfig() returned nil")
			}
		})
	}
}
