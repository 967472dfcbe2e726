package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"netpulse/internal/pipeline"

	"gopkg.in/yaml.v3"
)

// For mocking in tests
var osUserHomeDir = os.UserHomeDir
var osGetwd = os.Getwd
var osLookupEnv = os.LookupEnv

const (
	userConfigDir    = ".config/netpulse"
	projectConfigDir = ".netpulse"
	configFileName   = "config.yaml"
)

// Environment variables, applied after the configuration files.
const (
	EnvAPIHost           = "NETPULSE_API_HOST"
	EnvAPIKey            = "NETPULSE_API_KEY"
	EnvAccountID         = "NETPULSE_ACCOUNT_ID"
	EnvMaxResponseLength = "NETPULSE_MAX_RESPONSE_LENGTH"
	EnvLogLevel          = "NETPULSE_LOG_LEVEL"
)

// LoadConfig loads the netpulse configuration by layering default, user,
// project and environment settings. It does not validate the result.
func LoadConfig() (NetpulseConfig, error) {
	// 1. Start with the default configuration
	config := GetDefaultConfig()

	// 2. User configuration
	userConfigPath, err := getUserConfigPath()
	if err != nil {
		// user config is optional
		fmt.Fprintf(os.Stderr, "Warning: Could not determine user config path: %v\n", err)
	} else if _, err := os.Stat(userConfigPath); !os.IsNotExist(err) {
		userConfig, err := loadConfigFromFile(userConfigPath)
		if err != nil {
			return NetpulseConfig{}, fmt.Errorf("error loading user config from %s: %w", userConfigPath, err)
		}
		config = mergeConfigs(config, userConfig)
	}

	// 3. Project configuration
	projectConfigPath, err := getProjectConfigPath()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not determine project config path: %v\n", err)
	} else if _, err := os.Stat(projectConfigPath); !os.IsNotExist(err) {
		projectConfig, err := loadConfigFromFile(projectConfigPath)
		if err != nil {
			return NetpulseConfig{}, fmt.Errorf("error loading project config from %s: %w", projectConfigPath, err)
		}
		config = mergeConfigs(config, projectConfig)
	}

	// 4. Environment
	config = applyEnv(config)

	if config.API.MaxResponseLength <= 0 {
		config.API.MaxResponseLength = pipeline.DefaultMaxResponseLength
	}
	return config, nil
}

var getUserConfigPath = func() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir, configFileName), nil
}

var getProjectConfigPath = func() (string, error) {
	wd, err := osGetwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, projectConfigDir, configFileName), nil
}

// loadConfigFromFile loads a NetpulseConfig from a YAML file.
// ${VAR} references are expanded before parsing.
func loadConfigFromFile(filePath string) (NetpulseConfig, error) {
	var config NetpulseConfig
	data, err := os.ReadFile(filePath)
	if err != nil {
		return NetpulseConfig{}, err
	}
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &config); err != nil {
		return NetpulseConfig{}, err
	}
	return config, nil
}

// mergeConfigs merges 'overlay' config into 'base' config. Zero values in
// overlay leave base untouched.
func mergeConfigs(base, overlay NetpulseConfig) NetpulseConfig {
	merged := base

	if overlay.API.Host != "" {
		merged.API.Host = overlay.API.Host
	}
	if overlay.API.Key != "" {
		merged.API.Key = overlay.API.Key
	}
	if overlay.API.AccountID != "" {
		merged.API.AccountID = overlay.API.AccountID
	}
	if overlay.API.MaxResponseLength != 0 {
		merged.API.MaxResponseLength = overlay.API.MaxResponseLength
	}

	if overlay.Server.Transport != "" {
		merged.Server.Transport = overlay.Server.Transport
	}
	if overlay.Server.Host != "" {
		merged.Server.Host = overlay.Server.Host
	}
	if overlay.Server.Port != 0 {
		merged.Server.Port = overlay.Server.Port
	}

	if overlay.Logging.Level != "" {
		merged.Logging.Level = overlay.Logging.Level
	}
	return merged
}

func applyEnv(config NetpulseConfig) NetpulseConfig {
	if v, ok := lookupEnv(EnvAPIHost); ok {
		config.API.Host = v
	}
	if v, ok := lookupEnv(EnvAPIKey); ok {
		config.API.Key = v
	}
	if v, ok := lookupEnv(EnvAccountID); ok {
		config.API.AccountID = v
	}
	if v, ok := osLookupEnv(EnvMaxResponseLength); ok {
		config.API.MaxResponseLength = pipeline.ResolveMaxLength(v)
	}
	if v, ok := lookupEnv(EnvLogLevel); ok {
		config.Logging.Level = v
	}
	return config
}

// lookupEnv treats blank variables as unset.
func lookupEnv(key string) (string, bool) {
	v, ok := osLookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

// GetUserConfigDir returns the user configuration directory path
func GetUserConfigDir() (string, error) {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, userConfigDir), nil
}
