package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsConfigured(t *testing.T) {
	cfg := DefaultConfig()
	assert.False(t, cfg.IsConfigured())

	cfg.Server.URL = "https://media.example.com"
	cfg.Server.Token = "tok"
	assert.False(t, cfg.IsConfigured(), "user ID still missing")

	cfg.Server.UserID = "u1"
	assert.True(t, cfg.IsConfigured())
}

func TestDefaults(t *testing.T) {
	cfg := DefaultConfig()

	assert.False(t, cfg.Cache.Disabled)
	assert.True(t, cfg.Socket.Enabled)
	assert.NotEmpty(t, cfg.Server.DeviceID)
	assert.Equal(t, "INFO", cfg.Logging.Level)
}
