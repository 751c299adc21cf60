package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// AppName names config/data directories and export files
const AppName = "otaku-chronicle"

// EnvPrefix is the prefix for environment overrides (CHRONICLE_STORAGE_DIR, ...)
const EnvPrefix = "CHRONICLE"

// Config holds all application configuration
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	UI      UIConfig      `mapstructure:"ui"`
	Export  ExportConfig  `mapstructure:"export"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// StorageConfig holds local persistence configuration
type StorageConfig struct {
	Dir string `mapstructure:"dir"` // Directory holding the bolt file; empty = memory only
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultSort   string `mapstructure:"default_sort"`  // "title", "rating" or "status"
	DefaultOrder  string `mapstructure:"default_order"` // "asc" or "desc"
	ShowInspector bool   `mapstructure:"show_inspector"`
}

// ExportConfig holds CSV export configuration
type ExportConfig struct {
	Dir     string `mapstructure:"dir"`
	AppName string `mapstructure:"app_name"` // Export filename prefix
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Storage: StorageConfig{
			Dir: defaultDataPath(),
		},
		UI: UIConfig{
			DefaultSort:   "title",
			DefaultOrder:  "asc",
			ShowInspector: true,
		},
		Export: ExportConfig{
			Dir:     ".",
			AppName: AppName,
		},
		Logging: LoggingConfig{
			File:  filepath.Join(defaultDataPath(), "chronicle.log"),
			Level: "INFO",
		},
	}
}

// defaultDataPath returns the default data directory for the current OS
func defaultDataPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "chronicle")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "chronicle")
	}
}

// DefaultConfigDir returns the default config directory for the current OS
func DefaultConfigDir() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "chronicle")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "chronicle")
	}
}

// LoadConfig loads configuration from file and environment.
// configFile overrides the search path when set.
func LoadConfig(configFile string) (*Config, error) {
	// A .env in the working directory feeds the environment overrides
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env file: %w", err)
	}

	v := newViper()
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	cfg := &Config{}
	err := v.Unmarshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if cfg.Storage.Dir, err = ExpandHome(cfg.Storage.Dir); err != nil {
		return nil, err
	}
	if cfg.Export.Dir, err = ExpandHome(cfg.Export.Dir); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfig writes cfg to config.yaml inside dir
func SaveConfig(cfg *Config, dir string) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.Set("storage.dir", cfg.Storage.Dir)

	v.Set("ui.default_sort", cfg.UI.DefaultSort)
	v.Set("ui.default_order", cfg.UI.DefaultOrder)
	v.Set("ui.show_inspector", cfg.UI.ShowInspector)

	v.Set("export.dir", cfg.Export.Dir)
	v.Set("export.app_name", cfg.Export.AppName)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// ExpandHome expands a leading ~ to the user's home directory
func ExpandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// newViper returns a viper instance seeded with defaults so every key can
// be overridden from the environment.
func newViper() *viper.Viper {
	def := DefaultConfig()

	v := viper.New()
	v.SetDefault("storage.dir", def.Storage.Dir)
	v.SetDefault("ui.default_sort", def.UI.DefaultSort)
	v.SetDefault("ui.default_order", def.UI.DefaultOrder)
	v.SetDefault("ui.show_inspector", def.UI.ShowInspector)
	v.SetDefault("export.dir", def.Export.Dir)
	v.SetDefault("export.app_name", def.Export.AppName)
	v.SetDefault("logging.file", def.Logging.File)
	v.SetDefault("logging.level", def.Logging.Level)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}
