package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/mmcdole/cinephile/internal/validation"
	"github.com/spf13/viper"
)

// envPrefix namespaces environment overrides, e.g. CINEPHILE_BROWSE_PAGE_SIZE
const envPrefix = "CINEPHILE"

// Config holds all application configuration
type Config struct {
	Catalog CatalogConfig `mapstructure:"catalog"`
	Browse  BrowseConfig  `mapstructure:"browse"`
	UI      UIConfig      `mapstructure:"ui"`
	Opener  OpenerConfig  `mapstructure:"opener"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// CatalogConfig locates the movie catalog and its snapshot cache
type CatalogConfig struct {
	File     string `mapstructure:"file"`      // JSON or YAML catalog
	CacheDir string `mapstructure:"cache_dir"` // empty disables the on-disk snapshot
	Watch    bool   `mapstructure:"watch"`     // reload when the file changes
}

// BrowseConfig tunes the filtered view
type BrowseConfig struct {
	PageSize       int           `mapstructure:"page_size" validate:"gt=0,lte=1000"`
	SearchDebounce time.Duration `mapstructure:"search_debounce" validate:"gte=0"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	ShowMatchReason bool `mapstructure:"show_match_reason"`
}

// OpenerConfig selects the program used for trailer links
type OpenerConfig struct {
	Command string   `mapstructure:"command"` // empty for system default
	Args    []string `mapstructure:"args"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level" validate:"omitempty,oneof=DEBUG INFO WARN WARNING ERROR debug info warn warning error"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Catalog: CatalogConfig{
			File:     "",
			CacheDir: defaultCachePath(),
			Watch:    false,
		},
		Browse: BrowseConfig{
			PageSize:       50,
			SearchDebounce: 300 * time.Millisecond,
		},
		UI: UIConfig{
			ShowMatchReason: true,
		},
		Opener: OpenerConfig{
			Args: []string{},
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinephile", "cinephile.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinephile", "cinephile.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "cinephile")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "cinephile")
	}
}

// defaultCachePath returns the default cache directory path for the current OS
func defaultCachePath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("LOCALAPPDATA"), "cinephile", "cache")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "cinephile", "cache")
	}
}

// LoadConfig loads configuration from file and environment
func LoadConfig() (*Config, error) {
	return loadConfig(viper.New(), defaultConfigPath(), ".")
}

func loadConfig(v *viper.Viper, dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides; viper only consults env for known keys
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, cfg)

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.Catalog.File = expandHome(cfg.Catalog.File)
	cfg.Catalog.CacheDir = expandHome(cfg.Catalog.CacheDir)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("catalog.file", cfg.Catalog.File)
	v.SetDefault("catalog.cache_dir", cfg.Catalog.CacheDir)
	v.SetDefault("catalog.watch", cfg.Catalog.Watch)
	v.SetDefault("browse.page_size", cfg.Browse.PageSize)
	v.SetDefault("browse.search_debounce", cfg.Browse.SearchDebounce)
	v.SetDefault("ui.show_match_reason", cfg.UI.ShowMatchReason)
	v.SetDefault("opener.command", cfg.Opener.Command)
	v.SetDefault("opener.args", cfg.Opener.Args)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// Validate checks value ranges
func (c *Config) Validate() error {
	if err := validation.New().Validate(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// IsConfigured returns true if a catalog file is set
func (c *Config) IsConfigured() bool {
	return c.Catalog.File != ""
}

// SaveConfig writes cfg as config.yaml in the default config directory
func SaveConfig(cfg *Config) error {
	return saveConfig(viper.New(), cfg, defaultConfigPath())
}

func saveConfig(v *viper.Viper, cfg *Config, dir string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Set fields individually to ensure correct key names (snake_case)
	v.Set("catalog.file", cfg.Catalog.File)
	v.Set("catalog.cache_dir", cfg.Catalog.CacheDir)
	v.Set("catalog.watch", cfg.Catalog.Watch)

	v.Set("browse.page_size", cfg.Browse.PageSize)
	v.Set("browse.search_debounce", cfg.Browse.SearchDebounce.String())

	v.Set("ui.show_match_reason", cfg.UI.ShowMatchReason)

	v.Set("opener.command", cfg.Opener.Command)
	v.Set("opener.args", cfg.Opener.Args)

	v.Set("logging.file", cfg.Logging.File)
	v.Set("logging.level", cfg.Logging.Level)

	configFile := filepath.Join(dir, "config.yaml")
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// expandHome resolves a leading ~ to the user's home directory
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
