package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "teamkeeper.db", c.DatabaseDSN)
	assert.Equal(t, 30*time.Second, c.BootstrapTimeout)
	assert.Empty(t, c.DeviceName)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	cfg := LoadConfig()

	require.NotNil(t, cfg)
	assert.Equal(t, "teamkeeper.db", cfg.DatabaseDSN)
	assert.Equal(t, 30*time.Second, cfg.BootstrapTimeout)
}
