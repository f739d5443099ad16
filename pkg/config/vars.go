package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gbiftree"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gbiftree by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/gbiftree by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// BigQueryCacheDir keeps results of extraction queries.
func BigQueryCacheDir(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "bigquery")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gbiftree/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gbiftree/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}
