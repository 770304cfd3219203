package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

const validConfig = `
name: finnhub-bridge
host: 127.0.0.1
port: 8090
log_level: INFO
provider:
  base_url: https://finnhub.io/api/v1
  stream_url: wss://ws.finnhub.io
  token: tok
network:
  timeout: 5
`

func TestNewConfigValid(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "finnhub-bridge", cfg.Name)
	assert.Equal(t, 8090, cfg.Port)

	// Defaults for optional fields
	assert.Equal(t, "AAPL", cfg.Provider.ProbeSymbol)
	assert.Equal(t, 1000, cfg.Stream.BufferCapacity)
}

func TestNewConfigMissingToken(t *testing.T) {
	bad := `
name: finnhub-bridge
host: 127.0.0.1
port: 8090
provider:
  base_url: https://finnhub.io/api/v1
  stream_url: wss://ws.finnhub.io
`
	_, err := NewConfig(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "token")
}

func TestNewConfigBadPort(t *testing.T) {
	bad := `
name: finnhub-bridge
host: 127.0.0.1
port: 80
provider:
  base_url: https://finnhub.io/api/v1
  stream_url: wss://ws.finnhub.io
  token: tok
`
	_, err := NewConfig(writeConfig(t, bad))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port")
}

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfigSaveRoundTrip(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validConfig))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(out))

	reloaded, err := NewConfig(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Name, reloaded.Name)
	assert.Equal(t, cfg.Provider.BaseURL, reloaded.Provider.BaseURL)
}
