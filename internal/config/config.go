package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const appName = "corkboard"

// Environment variables that override the config file
const (
	EnvDataDir    = "CORKBOARD_DATA_DIR"
	EnvBackupKeep = "CORKBOARD_BACKUP_KEEP"
	EnvLogLevel   = "CORKBOARD_LOG_LEVEL"
	EnvSocket     = "CORKBOARD_SOCKET"
)

// DefaultBackupKeep is how many snapshots survive the startup cleanup
const DefaultBackupKeep = 7

// Config represents the application configuration
type Config struct {
	DataDir    string       `yaml:"data_dir"`
	LogLevel   string       `yaml:"log_level"`
	SocketPath string       `yaml:"socket_path,omitempty"`
	Backup     BackupConfig `yaml:"backup"`
}

// BackupConfig controls the snapshot taken when the store is opened
type BackupConfig struct {
	StartupSnapshot bool `yaml:"startup_snapshot"`
	KeepOnStartup   int  `yaml:"keep_on_startup"`
}

// Default returns the configuration used when no file or override is present.
func Default() *Config {
	dataDir := filepath.Join(".", "."+appName)
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, "."+appName)
	}
	return &Config{
		DataDir:  dataDir,
		LogLevel: "info",
		Backup: BackupConfig{
			StartupSnapshot: true,
			KeepOnStartup:   DefaultBackupKeep,
		},
	}
}

// Load builds the configuration from, in increasing precedence: defaults, the
// YAML file in the user's config directory, and CORKBOARD_* environment
// variables. A .env file in the working directory is read first and never
// overrides variables that are already set.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}

	configPath, err := getConfigPath()
	if err != nil {
		// Without a config directory only defaults and the environment apply
		configPath = ""
	}
	return loadFrom(configPath)
}

func loadFrom(configPath string) (*Config, error) {
	config := Default()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("failed to read config %s: %w", configPath, err)
		default:
			// Unmarshal over the defaults so absent keys keep them
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", configPath, err)
			}
		}
	}

	if err := config.applyEnv(); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Save saves the config to the user's config directory
func (c *Config) Save() error {
	configPath, err := getConfigPath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return err
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(configPath, data, 0o644)
}

// DBPath is the primary store file.
func (c *Config) DBPath() string {
	return filepath.Join(c.DataDir, "kanban.db")
}

// BackupDir holds the timestamped snapshots of the store.
func (c *Config) BackupDir() string {
	return filepath.Join(c.DataDir, "backups")
}

// LogDir holds corkboard.log.
func (c *Config) LogDir() string {
	return filepath.Join(c.DataDir, "logs")
}

// Socket returns the daemon socket path, defaulting to one inside the data directory.
func (c *Config) Socket() string {
	if c.SocketPath != "" {
		return c.SocketPath
	}
	return filepath.Join(c.DataDir, appName+".sock")
}

// SlogLevel parses LogLevel; validate has already rejected unknown names.
func (c *Config) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func (c *Config) applyEnv() error {
	if v := os.Getenv(EnvDataDir); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv(EnvSocket); v != "" {
		c.SocketPath = v
	}
	if v := os.Getenv(EnvBackupKeep); v != "" {
		keep, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", EnvBackupKeep, v, err)
		}
		c.Backup.KeepOnStartup = keep
	}
	return nil
}

func (c *Config) validate() error {
	if c.DataDir == "" {
		return errors.New("data_dir cannot be empty")
	}
	if c.Backup.KeepOnStartup < 0 {
		return fmt.Errorf("backup.keep_on_startup cannot be negative, got %d", c.Backup.KeepOnStartup)
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return nil
}

// getConfigPath returns the path to the config file
func getConfigPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.yaml"), nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", appName, "config.yaml"), nil
}
