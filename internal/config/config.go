// Package config loads the inlaw configuration from YAML, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// DirName is the per-user directory holding config, storage and logs.
const DirName = ".inlaw"

// Config holds all inlaw configuration.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Timing  TimingConfig  `yaml:"timing"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// StoreConfig selects the persistent store backend.
type StoreConfig struct {
	Driver string `yaml:"driver" validate:"oneof=memory file sqlite sqlite3"`
	// Path is the storage file; relative paths resolve against the config directory.
	Path string `yaml:"path" validate:"required_unless=Driver memory"`
	// Watch enables picking up changes made by other instances (file driver only).
	Watch bool `yaml:"watch"`
}

// UIConfig configures the terminal shell.
type UIConfig struct {
	Theme string `yaml:"theme" validate:"omitempty,oneof=light dark"`
	Mouse bool   `yaml:"mouse"`
}

// Dir returns the configuration directory: ./.inlaw when it exists,
// otherwise ~/.inlaw.
func Dir() string {
	if info, err := os.Stat(DirName); err == nil && info.IsDir() {
		return DirName
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return DirName
	}
	return filepath.Join(home, DirName)
}

// DefaultPath returns the path of config.yaml inside Dir.
func DefaultPath() string {
	return filepath.Join(Dir(), "config.yaml")
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Driver: "file",
			Path:   "storage.json",
			Watch:  true,
		},
		Timing: DefaultTiming(),
		Logging: LoggingConfig{
			Level:      "info",
			DebugMode:  false,
			File:       "logs/inlaw.log",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		UI: UIConfig{
			Theme: "",
			Mouse: true,
		},
	}
}

// Load reads configuration from path. A missing file yields defaults.
// A .env file in the working directory is loaded first; variables already
// set in the environment win.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	case os.IsNotExist(err):
	default:
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg.applyEnvOverrides()
	cfg.resolvePaths(filepath.Dir(path))
	return cfg, nil
}

// Save writes the configuration to path.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("INLAW_STORE_DRIVER"); v != "" {
		c.Store.Driver = v
	}
	if v := os.Getenv("INLAW_STORE_PATH"); v != "" {
		c.Store.Path = v
	}
	if v := os.Getenv("INLAW_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("INLAW_THEME"); v != "" {
		c.UI.Theme = v
	}
	if v := os.Getenv("INLAW_DEBUG"); v != "" {
		if on, err := strconv.ParseBool(v); err == nil {
			c.Logging.DebugMode = on
		}
	}
}

func (c *Config) resolvePaths(base string) {
	if c.Store.Path != "" && c.Store.Path != ":memory:" && !filepath.IsAbs(c.Store.Path) {
		c.Store.Path = filepath.Join(base, c.Store.Path)
	}
	if c.Logging.File != "" && !filepath.IsAbs(c.Logging.File) {
		c.Logging.File = filepath.Join(base, c.Logging.File)
	}
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.Timing.validate()
}
