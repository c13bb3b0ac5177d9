package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"rez/pkg/logging"

	"gopkg.in/yaml.v3"
)

const configFileName = "config.yaml"

// LoadConfig loads configuration from the given directory. Missing
// config.yaml is not an error - defaults plus environment overrides may
// be enough. Environment variables always win over file values.
func LoadConfig(configPath string) (RezConfig, error) {
	config := GetDefaultConfig()

	configFilePath := filepath.Join(configPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	switch {
	case errors.Is(err, os.ErrNotExist):
		logging.Info("Config", "No config.yaml found at %s, using defaults", configFilePath)
	case err != nil:
		return RezConfig{}, fmt.Errorf("reading config from %s: %w", configFilePath, err)
	default:
		if err := yaml.Unmarshal(data, &config); err != nil {
			return RezConfig{}, fmt.Errorf("parsing config from %s: %w", configFilePath, err)
		}
		logging.Info("Config", "Loaded configuration from %s", configFilePath)
	}

	applyEnvOverrides(&config)

	return config, nil
}

// applyEnvOverrides layers environment variables over the loaded
// configuration. The names match the ones the deployment scripts have
// always used.
func applyEnvOverrides(config *RezConfig) {
	if v := os.Getenv("CIT_BASE_URL"); v != "" {
		config.Upstream.BaseURL = v
	}
	if v := os.Getenv("REZ_BASE_URL"); v != "" {
		config.Server.PublicURL = v
	}
	if v := os.Getenv("REZ_HOST"); v != "" {
		config.Server.Host = v
	}
	if v := os.Getenv("REZ_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		} else {
			logging.Warn("Config", "Ignoring unparsable REZ_PORT=%q", v)
		}
	}
	if v := os.Getenv("REZ_TRANSPORT"); v != "" {
		config.Server.Transport = v
	}
}
