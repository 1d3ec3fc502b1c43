package config

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	assert.Equal(t, ":8080", cfg.EndpointAddr)
	assert.NotEmpty(t, cfg.DatabaseDSN)
	assert.NotEmpty(t, cfg.SecretKey)
	assert.Equal(t, 15*time.Minute, cfg.AccessTokenValidityDuration)
	assert.Equal(t, 24*time.Hour, cfg.RefreshTokenValidityDuration)
}

func TestJsonConfig_Unmarshal(t *testing.T) {
	data := []byte(`{
		"endpoint_addr": ":9090",
		"database_dsn": "postgres://u:p@h:5432/db",
		"secret_key": "k",
		"access_token_validity_duration": "30m",
		"refresh_token_validity_duration": "48h"
	}`)

	c := &JsonConfig{}
	require.NoError(t, json.Unmarshal(data, c))

	assert.Equal(t, ":9090", c.EndpointAddr)
	assert.Equal(t, "postgres://u:p@h:5432/db", c.DatabaseDSN)
	assert.Equal(t, "k", c.SecretKey)
	assert.Equal(t, 30*time.Minute, c.AccessTokenValidityDuration.Duration)
	assert.Equal(t, 48*time.Hour, c.RefreshTokenValidityDuration.Duration)
}
