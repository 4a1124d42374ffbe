// Package config provides configuration management for gshcomplete.
// It handles loading and parsing of the completion.yaml file and mapping
// its values to the Config struct.
package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds completion settings read from completion.yaml.
type Config struct {
	// Prompt is shown by the interactive editor.
	Prompt string `yaml:"prompt"`

	// LogLevel controls logging verbosity (debug, info, warn, error).
	LogLevel string `yaml:"logLevel"`

	// SearchPaths are scanned for executables before $PATH.
	SearchPaths []string `yaml:"searchPaths"`

	// Scripts are shell files run at startup, typically defining completion
	// functions and registering them with `complete`.
	Scripts []string `yaml:"scripts"`

	// Commands maps a command name to a static list of completion words,
	// registered as if by `complete -W`.
	Commands map[string][]string `yaml:"commands"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Prompt:   "gsh> ",
		LogLevel: "info",
		Commands: make(map[string][]string),
	}
}

// GetLogLevel returns the configured log level, defaulting to info when the
// value is empty or not recognized.
func (c *Config) GetLogLevel() zap.AtomicLevel {
	level, err := zapcore.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return zap.NewAtomicLevelAt(level)
}

// GetCommandWords returns the static completion words for a command.
func (c *Config) GetCommandWords(command string) ([]string, bool) {
	if c.Commands == nil {
		return nil, false
	}
	words, ok := c.Commands[command]
	return words, ok
}
