package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, content NetpulseConfig) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0755))
	tempFilePath := filepath.Join(dir, configFileName)
	data, err := yaml.Marshal(&content)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(tempFilePath, data, 0644))
	return tempFilePath
}

// isolate points both config paths into dir and replaces the environment.
func isolate(t *testing.T, dir string, env map[string]string) {
	t.Helper()
	originalGetUserConfigPath := getUserConfigPath
	originalGetProjectConfigPath := getProjectConfigPath
	originalLookupEnv := osLookupEnv
	t.Cleanup(func() {
		getUserConfigPath = originalGetUserConfigPath
		getProjectConfigPath = originalGetProjectConfigPath
		osLookupEnv = originalLookupEnv
	})

	getUserConfigPath = func() (string, error) {
		return filepath.Join(dir, userConfigDir, configFileName), nil
	}
	getProjectConfigPath = func() (string, error) {
		return filepath.Join(dir, projectConfigDir, configFileName), nil
	}
	osLookupEnv = func(key string) (string, bool) {
		v, ok := env[key]
		return v, ok
	}
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	isolate(t, t.TempDir(), nil)

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loadedConfig)
	assert.Equal(t, 200000, loadedConfig.API.MaxResponseLength)

	// no credentials by default
	assert.Error(t, loadedConfig.Validate())
}

func TestLoadConfig_UserThenProjectOverride(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)

	createTempConfigFile(t, filepath.Join(tempDir, userConfigDir), NetpulseConfig{
		API:     APISettings{Host: "user.example.net", Key: "user-key", AccountID: "1"},
		Logging: LoggingSettings{Level: "debug"},
	})
	createTempConfigFile(t, filepath.Join(tempDir, projectConfigDir), NetpulseConfig{
		API:    APISettings{AccountID: "2", MaxResponseLength: 5000},
		Server: ServerSettings{Transport: TransportSSE, Port: 9090},
	})

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "user.example.net", loadedConfig.API.Host)
	assert.Equal(t, "user-key", loadedConfig.API.Key)
	assert.Equal(t, "2", loadedConfig.API.AccountID)
	assert.Equal(t, 5000, loadedConfig.API.MaxResponseLength)
	assert.Equal(t, TransportSSE, loadedConfig.Server.Transport)
	assert.Equal(t, "localhost", loadedConfig.Server.Host)
	assert.Equal(t, 9090, loadedConfig.Server.Port)
	assert.Equal(t, "debug", loadedConfig.Logging.Level)
	assert.NoError(t, loadedConfig.Validate())
}

func TestLoadConfig_EnvironmentWins(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, map[string]string{
		EnvAPIHost:           "env.example.net",
		EnvAPIKey:            "env-key",
		EnvAccountID:         "  ",
		EnvMaxResponseLength: "not-a-number",
		EnvLogLevel:          "warn",
	})
	createTempConfigFile(t, filepath.Join(tempDir, projectConfigDir), NetpulseConfig{
		API: APISettings{Host: "file.example.net", AccountID: "7", MaxResponseLength: 10},
	})

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "env.example.net", loadedConfig.API.Host)
	assert.Equal(t, "env-key", loadedConfig.API.Key)
	// blank variables are ignored
	assert.Equal(t, "7", loadedConfig.API.AccountID)
	// a non-numeric override restores the default
	assert.Equal(t, 200000, loadedConfig.API.MaxResponseLength)
	assert.Equal(t, "warn", loadedConfig.Logging.Level)
}

func TestLoadConfig_NonPositiveMaxLength(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)
	createTempConfigFile(t, filepath.Join(tempDir, projectConfigDir), NetpulseConfig{
		API: APISettings{MaxResponseLength: -1},
	})

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 200000, loadedConfig.API.MaxResponseLength)
}

func TestLoadConfig_ExpandsEnvironmentReferences(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)
	t.Setenv("NETPULSE_TEST_TOKEN", "from-env")

	dir := filepath.Join(tempDir, userConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName),
		[]byte("api:\n  host: api.example.net\n  key: \"${NETPULSE_TEST_TOKEN}\"\n"), 0644))

	loadedConfig, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", loadedConfig.API.Key)
}

func TestLoadConfig_MalformedYAML(t *testing.T) {
	tempDir := t.TempDir()
	isolate(t, tempDir, nil)

	dir := filepath.Join(tempDir, projectConfigDir)
	require.NoError(t, os.MkdirAll(dir, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, configFileName), []byte("api: [unclosed"), 0644))

	_, err := LoadConfig()
	assert.ErrorContains(t, err, "error loading project config")
}

func TestValidate(t *testing.T) {
	cfg := GetDefaultConfig()
	cfg.Server.Transport = "carrier-pigeon"
	cfg.Server.Port = 70000

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), EnvAPIHost)
	assert.Contains(t, err.Error(), EnvAPIKey)
	assert.Contains(t, err.Error(), "carrier-pigeon")
	assert.Contains(t, err.Error(), "70000")
}

func TestGetUserConfigDir(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()
	osUserHomeDir = func() (string, error) { return "/home/test", nil }

	dir, err := GetUserConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/home/test", ".config", "netpulse"), dir)
}
