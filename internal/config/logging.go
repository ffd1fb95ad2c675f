package config

import "inlaw/internal/logging"

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level      string          `yaml:"level" validate:"omitempty,oneof=debug info warn error"`
	DebugMode  bool            `yaml:"debug_mode"` // Master toggle - false = no logging
	File       string          `yaml:"file"`
	MaxSizeMB  int             `yaml:"max_size_mb" validate:"gte=0"`
	MaxBackups int             `yaml:"max_backups" validate:"gte=0"`
	MaxAgeDays int             `yaml:"max_age_days" validate:"gte=0"`
	Categories map[string]bool `yaml:"categories"` // Per-category toggles
}

// IsCategoryEnabled returns whether logging is enabled for a category.
// Returns false if debug_mode is false.
func (c *LoggingConfig) IsCategoryEnabled(category string) bool {
	if !c.DebugMode {
		return false
	}
	enabled, exists := c.Categories[category]
	return !exists || enabled
}

// Options converts the config into logging options.
func (c *LoggingConfig) Options() logging.Options {
	return logging.Options{
		DebugMode:  c.DebugMode,
		Level:      c.Level,
		Categories: c.Categories,
		File:       c.File,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
	}
}
