package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Storage mode constants.
const (
	StorageLocal  = "local"
	StorageSQLite = "sqlite"
)

// StorageConfig selects and locates the todo backing store.
type StorageConfig struct {
	// Mode is "local" (flat JSON file, no account) or "sqlite".
	Mode string `mapstructure:"mode" yaml:"mode"`

	// DBPath is the SQLite database file, used when Mode is "sqlite".
	DBPath string `mapstructure:"db_path" yaml:"db_path"`

	// DataFile is the JSON todo file, used when Mode is "local".
	DataFile string `mapstructure:"data_file" yaml:"data_file"`
}

// AuthConfig holds session-token settings for the web surface.
type AuthConfig struct {
	// SigningKeyRef is the keyring entry holding the HMAC signing key.
	SigningKeyRef string `mapstructure:"signing_key_ref" yaml:"signing_key_ref"`

	// SessionTTLHours is how long an issued session token stays valid.
	SessionTTLHours int `mapstructure:"session_ttl_hours" yaml:"session_ttl_hours"`
}

// ServerConfig holds settings for the web surface.
type ServerConfig struct {
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Auth    AuthConfig    `mapstructure:"auth" yaml:"auth"`
	Server  ServerConfig  `mapstructure:"server" yaml:"server"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/basic-todo/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "basic-todo", "config.yaml")
}

// DefaultDataDir returns the directory holding the local todo file and
// SQLite database.
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "basic-todo")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dataDir := DefaultDataDir()
	return &AppConfig{
		Storage: StorageConfig{
			Mode:     StorageLocal,
			DBPath:   filepath.Join(dataDir, "todos.db"),
			DataFile: filepath.Join(dataDir, "todos.json"),
		},
		Auth: AuthConfig{
			SigningKeyRef:   "session-signing-key",
			SessionTTLHours: 72,
		},
		Server: ServerConfig{
			ListenAddr: "localhost:8484",
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	dataDir := DefaultDataDir()
	v.SetDefault("storage.mode", StorageLocal)
	v.SetDefault("storage.db_path", filepath.Join(dataDir, "todos.db"))
	v.SetDefault("storage.data_file", filepath.Join(dataDir, "todos.json"))
	v.SetDefault("auth.signing_key_ref", "session-signing-key")
	v.SetDefault("auth.session_ttl_hours", 72)
	v.SetDefault("server.listen_addr", "localhost:8484")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.Storage.Mode != StorageLocal && cfg.Storage.Mode != StorageSQLite {
		return nil, fmt.Errorf("unknown storage mode %q", cfg.Storage.Mode)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("auth", cfg.Auth)
	v.Set("server", cfg.Server)

	if err := v.WriteConfig(); err != nil {
		return fmt.Errorf("writing config %s: %w", path, err)
	}
	return nil
}
