// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig                     `mapstructure:"app"`
	Server        ServerConfig                  `mapstructure:"server"`
	Redis         RedisConfig                   `mapstructure:"redis"`
	Cache         CacheConfig                   `mapstructure:"cache"`
	Jurisdictions map[string]JurisdictionConfig `mapstructure:"jurisdictions"`
	Fetch         FetchConfig                   `mapstructure:"fetch"`
	Scoring       ScoringConfig                 `mapstructure:"scoring"`
	Logging       LoggingConfig                 `mapstructure:"logging"`
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// CacheConfig controls the geocode lookup cache. The cache stores upstream
// geocoder responses only; generated reports are never persisted.
type CacheConfig struct {
	Enabled    bool `mapstructure:"enabled"`
	TTLSeconds int  `mapstructure:"ttl_seconds"`
}

// JurisdictionConfig wires the external services for one jurisdiction's rule
// set. Tokens are explicit config values handed to client constructors; the
// pipeline never reads the process environment directly.
type JurisdictionConfig struct {
	Geocoder GeocoderConfig `mapstructure:"geocoder"`
	Registry RegistryConfig `mapstructure:"registry"`
}

type GeocoderConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	MaxCandidates int    `mapstructure:"max_candidates"`
	Timeout       int    `mapstructure:"timeout"` // milliseconds
}

type RegistryConfig struct {
	Dialect  string `mapstructure:"dialect"` // socrata, carto, arcgis
	BaseURL  string `mapstructure:"base_url"`
	AppToken string `mapstructure:"app_token"`
	Timeout  int    `mapstructure:"timeout"` // milliseconds

	// Secondary endpoint for jurisdictions that split datasets across two
	// API dialects (Philadelphia: Carto SQL plus ArcGIS feature services).
	FeatureBaseURL string `mapstructure:"feature_base_url"`
}

// FetchConfig bounds every registry query and the assembled report.
type FetchConfig struct {
	QueryLimit int `mapstructure:"query_limit"` // rows requested per strategy
	DisplayCap int `mapstructure:"display_cap"` // records kept per category in the report
}

// ScoringConfig is the data-driven rule table behind the risk scorer, so
// jurisdictions can extend classification without code changes.
type ScoringConfig struct {
	Weights        map[string]int `mapstructure:"weights"`
	DefaultWeight  int            `mapstructure:"default_weight"`
	Keywords       []KeywordRule  `mapstructure:"keywords"`
	OpenStatuses   []string       `mapstructure:"open_statuses"`
	RecentDays     int            `mapstructure:"recent_permit_days"`
	PermitBonus    int            `mapstructure:"permit_bonus"`
	PermitBonusCap int            `mapstructure:"permit_bonus_cap"`
	CertPenalty    int            `mapstructure:"expired_cert_penalty"`
	CertBonus      int            `mapstructure:"active_cert_bonus"`
	CertBonusCap   int            `mapstructure:"active_cert_bonus_cap"`
}

// KeywordRule buckets a violation description into a risk category. Rules are
// evaluated in declaration order; the first matching rule wins.
type KeywordRule struct {
	Category string   `mapstructure:"category"`
	Terms    []string `mapstructure:"terms"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// GetJurisdiction retrieves one jurisdiction's wiring.
func (c *Config) GetJurisdiction(name string) (JurisdictionConfig, error) {
	j, ok := c.Jurisdictions[name]
	if !ok {
		return JurisdictionConfig{}, fmt.Errorf("jurisdiction %q not configured", name)
	}
	return j, nil
}
