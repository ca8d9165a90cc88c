package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"matchwatch/internal/errorwrapper"

	"gopkg.in/yaml.v3"
)

// GlobalConfig contains all configuration sections for the application
type GlobalConfig struct {
	ScraperConfig   ScraperConfig   `json:"scraper_config,omitempty" yaml:"scraper_config,omitempty"`
	StorageConfig   StorageConfig   `json:"storage_config,omitempty" yaml:"storage_config,omitempty"`
	SchedulerConfig SchedulerConfig `json:"scheduler_config,omitempty" yaml:"scheduler_config,omitempty"`
	ServerConfig    ServerConfig    `json:"server_config,omitempty" yaml:"server_config,omitempty"`
	LogConfig       LogConfig       `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a new GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		ScraperConfig:   NewDefaultScraperConfig(),
		StorageConfig:   NewDefaultStorageConfig(),
		SchedulerConfig: NewDefaultSchedulerConfig(),
		ServerConfig:    NewDefaultServerConfig(),
		LogConfig:       NewDefaultLogConfig(),
	}
}

// LoadGlobalConfig loads the configuration from a file or default locations.
// It determines the config file path using GetConfigPath and supports both
// YAML and JSON formats. A missing config file is not an error: defaults
// apply.
func LoadGlobalConfig(providedPath string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()

	filePath := GetConfigPath(providedPath)
	if filePath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file "+filePath)
	}

	if err := parseConfigContent(data, filePath, cfg); err != nil {
		return nil, errorwrapper.WrapError(err, "failed to parse config content")
	}

	return cfg, nil
}

// parseConfigContent unmarshals data into cfg, choosing the codec from the
// file extension. YAML is the default.
func parseConfigContent(data []byte, filePath string, cfg *GlobalConfig) error {
	ext := strings.ToLower(filepath.Ext(filePath))
	if ext == ".json" {
		return json.Unmarshal(data, cfg)
	}
	return yaml.Unmarshal(data, cfg)
}
