package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		expected *Config
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-d", "db", "-s", "secret", "-t", "30", "-b", "12"},
			expected: &Config{
				DatabaseDSN:           "db",
				SecretKey:             "secret",
				TokenValidityDuration: 30 * 24 * time.Hour,
				BcryptCost:            12,
			},
		},
		{
			name: "unset flags keep existing values",
			args: []string{"cmd", "-s", "secret"},
			expected: &Config{
				SecretKey:             "secret",
				TokenValidityDuration: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
			os.Args = tt.args

			config := &Config{}
			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}

func TestParseFlagsSubDayValidity(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Run("kept when -t is absent", func(t *testing.T) {
		flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
		os.Args = []string{"cmd", "-s", "secret"}

		config := &Config{TokenValidityDuration: 12 * time.Hour}
		require.NotPanics(t, func() { parseFlags(config) })
		assert.Equal(t, 12*time.Hour, config.TokenValidityDuration)
	})

	t.Run("overridden when -t is set", func(t *testing.T) {
		flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
		os.Args = []string{"cmd", "-t", "7"}

		config := &Config{TokenValidityDuration: 12 * time.Hour}
		require.NotPanics(t, func() { parseFlags(config) })
		assert.Equal(t, 7*24*time.Hour, config.TokenValidityDuration)
	})
}
