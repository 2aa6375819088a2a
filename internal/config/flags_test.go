package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    Config
		expectPanic bool
	}{
		{
			name: "overrides all fields",
			args: []string{"cmd", "-d", "/tmp/tk.db", "-t", "10", "-n", "laptop"},
			expected: Config{
				DatabaseDSN:      "/tmp/tk.db",
				BootstrapTimeout: 10 * time.Second,
				DeviceName:       "laptop",
			},
		},
		{
			name: "keeps defaults when absent",
			args: []string{"cmd"},
			expected: Config{
				DatabaseDSN:      "teamkeeper.db",
				BootstrapTimeout: 30 * time.Second,
			},
		},
		{
			name:        "invalid timeout",
			args:        []string{"cmd", "-t", "abc"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })
			os.Args = tt.args

			cfg := &Config{}
			cfg.LoadDefaults()

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg) })
				return
			}
			require.NotPanics(t, func() { parseFlags(cfg) })
			assert.Equal(t, tt.expected, *cfg)
		})
	}
}
