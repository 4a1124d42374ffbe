package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// LogLevelEnvVar overrides the configured log level when set.
const LogLevelEnvVar = "GSH_LOG_LEVEL"

// Loader handles loading and parsing of completion.yaml files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader creates a new configuration loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		logger: logger,
	}
}

// LoadResult contains the result of loading a configuration file.
type LoadResult struct {
	Config *Config
	Errors []error
}

// LoadFromFile loads configuration from a YAML file.
// If the file doesn't exist, returns default configuration with no error.
func (l *Loader) LoadFromFile(path string) (*LoadResult, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("config file not found, using defaults", zap.String("path", path))
			return l.withEnv(&LoadResult{Config: DefaultConfig(), Errors: []error{}}), nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	result, err := l.LoadFromString(string(content))
	if err != nil {
		return nil, err
	}

	// Relative script paths are relative to the config file.
	for i, script := range result.Config.Scripts {
		if !filepath.IsAbs(script) && !strings.HasPrefix(script, "~") {
			result.Config.Scripts[i] = filepath.Join(filepath.Dir(path), script)
		}
	}
	return result, nil
}

// LoadFromString loads configuration from YAML source. Parse errors are
// collected in the result and defaults are used.
func (l *Loader) LoadFromString(source string) (*LoadResult, error) {
	result := &LoadResult{
		Config: DefaultConfig(),
		Errors: []error{},
	}

	if err := yaml.Unmarshal([]byte(source), result.Config); err != nil {
		l.logger.Warn("failed to parse config, using defaults", zap.Error(err))
		result.Config = DefaultConfig()
		result.Errors = append(result.Errors, fmt.Errorf("parse error: %w", err))
		return l.withEnv(result), nil
	}

	if result.Config.Commands == nil {
		result.Config.Commands = make(map[string][]string)
	}
	for command, words := range result.Config.Commands {
		if strings.TrimSpace(command) == "" {
			delete(result.Config.Commands, command)
			result.Errors = append(result.Errors, fmt.Errorf("commands: empty command name with words %v", words))
		}
	}
	if _, err := parseLevel(result.Config.LogLevel); err != nil {
		result.Errors = append(result.Errors, err)
	}

	return l.withEnv(result), nil
}

// withEnv applies environment variable overrides.
func (l *Loader) withEnv(result *LoadResult) *LoadResult {
	if level := os.Getenv(LogLevelEnvVar); level != "" {
		result.Config.LogLevel = level
	}
	return result
}

func parseLevel(level string) (string, error) {
	switch strings.ToLower(level) {
	case "", "debug", "info", "warn", "error":
		return strings.ToLower(level), nil
	default:
		return "", fmt.Errorf("logLevel: unknown level %q", level)
	}
}
