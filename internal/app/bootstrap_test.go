package app

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"netpulse/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withConfig(t *testing.T, cfg config.NetpulseConfig, err error) {
	t.Helper()
	original := loadConfig
	t.Cleanup(func() { loadConfig = original })
	loadConfig = func() (config.NetpulseConfig, error) { return cfg, err }
}

func validConfig() config.NetpulseConfig {
	cfg := config.GetDefaultConfig()
	cfg.API.Host = "api.example.net"
	cfg.API.Key = "secret"
	cfg.API.AccountID = "1234"
	cfg.Logging.Level = "error"
	return cfg
}

func TestNewApplication(t *testing.T) {
	withConfig(t, validConfig(), nil)

	application, err := NewApplication(NewConfig("", false, "1.2.3"))
	require.NoError(t, err)

	services := application.Services()
	require.NotNil(t, services)
	assert.Equal(t, 12, services.Registry.Len())
	assert.Equal(t, "https://api.example.net/api/v1/graphql2", services.Client.Endpoint())
	assert.Same(t, services.Registry, services.Invoker.Registry())
	assert.NotNil(t, services.Server)
}

func TestNewApplication_Errors(t *testing.T) {
	withConfig(t, config.NetpulseConfig{}, errors.New("broken file"))
	_, err := NewApplication(NewConfig("", false, "dev"))
	assert.ErrorContains(t, err, "broken file")

	missing := validConfig()
	missing.API.Key = ""
	withConfig(t, missing, nil)
	_, err = NewApplication(NewConfig("", false, "dev"))
	assert.ErrorContains(t, err, config.EnvAPIKey)

	withConfig(t, validConfig(), nil)
	_, err = NewApplication(NewConfig("smoke-signals", false, "dev"))
	assert.ErrorContains(t, err, "smoke-signals")
}

func TestInitializeServices_RequiresConfig(t *testing.T) {
	_, err := InitializeServices(&Config{})
	assert.Error(t, err)
}

func TestRun_StdioEndsWithInput(t *testing.T) {
	withConfig(t, validConfig(), nil)
	application, err := NewApplication(NewConfig("stdio", false, "dev"))
	require.NoError(t, err)

	application.stdin = strings.NewReader("")
	application.stdout = io.Discard

	assert.NoError(t, application.Run(context.Background()))
}
