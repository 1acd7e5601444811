package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	viper.Reset()
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "8000", cfg.Port)
	assert.Equal(t, int64(2*1024*1024), cfg.MaxUploadSizeBytes)
	assert.Equal(t, "stdout", cfg.TracingExport)
	assert.Empty(t, cfg.OTLPEndpoint)
}

func TestLoadConfigReadsEnvironment(t *testing.T) {
	viper.Reset()
	t.Setenv("PORT", "9090")
	t.Setenv("OTLP_ENDPOINT", "collector:4318")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "collector:4318", cfg.OTLPEndpoint)
}

func TestValidateRejectsDefaultSecretInProduction(t *testing.T) {
	cfg := &Config{
		Port:               "8000",
		Env:                "production",
		JWTSecret:          "your-secret-key-change-in-production",
		TokenTTLHrs:        24,
		MaxUploadSizeBytes: 2 * 1024 * 1024,
		ModeratorEmail:     "mod@example.com",
		ModeratorPassword:  "a-real-password",
	}
	assert.Error(t, cfg.Validate())
}
