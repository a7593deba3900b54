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
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const minimalConfig = `
jurisdictions:
  nyc:
    geocoder:
      base_url: "https://geosearch.example.test/v2"
    registry:
      dialect: socrata
      base_url: "https://data.example.test"
`

func TestLoadFromFileAppliesDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Address)
	assert.Equal(t, 900, cfg.Cache.TTLSeconds)
	assert.Equal(t, 500, cfg.Fetch.QueryLimit)
	assert.Equal(t, 50, cfg.Fetch.DisplayCap)
	assert.Equal(t, "info", cfg.Logging.Level)

	nyc, err := cfg.GetJurisdiction("nyc")
	require.NoError(t, err)
	assert.Equal(t, 5, nyc.Geocoder.MaxCandidates)
	assert.Equal(t, 10000, nyc.Geocoder.Timeout)
	assert.Equal(t, 30000, nyc.Registry.Timeout)
}

func TestLoadFromFileScoringDefaults(t *testing.T) {
	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 25, cfg.Scoring.Weights["fire"])
	assert.Equal(t, 3, cfg.Scoring.Weights["zoning"])
	assert.Equal(t, 5, cfg.Scoring.DefaultWeight)
	assert.Equal(t, 365, cfg.Scoring.RecentDays)
	assert.Equal(t, 15, cfg.Scoring.PermitBonusCap)
	assert.Equal(t, 12, cfg.Scoring.CertPenalty)
	assert.NotEmpty(t, cfg.Scoring.Keywords)
	assert.Equal(t, "fire", cfg.Scoring.Keywords[0].Category)
	assert.Contains(t, cfg.Scoring.OpenStatuses, "IN VIOLATION")
}

func TestLoadFromFileRejectsMissingJurisdictions(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, `server: {address: ":9090"}`))
	assert.Error(t, err)
}

func TestLoadFromFileRejectsIncompleteJurisdiction(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, `
jurisdictions:
  nyc:
    geocoder:
      base_url: "https://geosearch.example.test/v2"
    registry:
      dialect: socrata
`))
	assert.Error(t, err)
}

func TestLoadFromFileRequiresRedisWhenCacheEnabled(t *testing.T) {
	_, err := LoadFromFile(writeConfig(t, minimalConfig+`
cache:
  enabled: true
`))
	assert.Error(t, err)
}

func TestTokenBackfillFromEnvironment(t *testing.T) {
	t.Setenv("NYC_APP_TOKEN", "env-token")

	cfg, err := LoadFromFile(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	nyc, err := cfg.GetJurisdiction("nyc")
	require.NoError(t, err)
	assert.Equal(t, "env-token", nyc.Registry.AppToken)
}

func TestGetJurisdictionUnknown(t *testing.T) {
	cfg := &Config{Jurisdictions: map[string]JurisdictionConfig{}}
	_, err := cfg.GetJurisdiction("boston")
	assert.Error(t, err)
}
