package config

import "os"

// DefaultMaxUploadBytes caps uploads at 16 MiB, large enough for any
// reasonable office document while keeping whole-file buffering safe.
const DefaultMaxUploadBytes = 16 << 20

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Upload.MaxBytes == 0 {
		cfg.Upload.MaxBytes = DefaultMaxUploadBytes
	}
	if cfg.Upload.TempDir == "" {
		cfg.Upload.TempDir = os.TempDir()
	}
}
