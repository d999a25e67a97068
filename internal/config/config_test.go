package config_test

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/pricescout/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.Scanner.RequestTimeout)
	assert.Equal(t, 5*time.Second, cfg.Scanner.ProbeTimeout)
	assert.Equal(t, 10, cfg.Scanner.MaxRedirects)
	assert.Equal(t, 8, cfg.Scanner.MaxCandidates)
	assert.NotEmpty(t, cfg.Scanner.UserAgent)
	require.NotNil(t, cfg.Logger)
}

func TestLoadFromViper(t *testing.T) {
	viper.Reset()
	viper.Set("server.address", ":9090")
	viper.Set("scanner.request_timeout", "7s")
	viper.Set("scanner.max_candidates", 3)
	viper.Set("logger.level", "debug")
	t.Cleanup(viper.Reset)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Address)
	assert.Equal(t, 7*time.Second, cfg.Scanner.RequestTimeout)
	assert.Equal(t, 3, cfg.Scanner.MaxCandidates)
	assert.Equal(t, "debug", string(cfg.Logger.Level))
}
