// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

func Load() (*Config, error) {
	loadEnvFile()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./configs")
	viper.AddConfigPath("../../configs")
	viper.AddConfigPath(".")

	// Enable ENV override like NYC_APP_TOKEN
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	envConfigFile := fmt.Sprintf("config.%s", env)
	viper.SetConfigName(envConfigFile)
	_ = viper.MergeInConfig() // ignore error if not found

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads .env from the working directory or the project root so
// the binaries behave the same no matter where they are started from.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up directories looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars resolves ${VAR} placeholders in string config values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		val := v.Get(key)

		if strVal, ok := val.(string); ok {
			if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
				expanded := os.ExpandEnv(strVal)
				if expanded != strVal && expanded != "" {
					v.Set(key, expanded)
				}
			}
		}
	}
}

// overrideEmptyConfig backfills registry tokens from well-known environment
// variables when the YAML left them empty.
func overrideEmptyConfig(cfg *Config) {
	tokenEnv := map[string]string{
		"nyc":    "NYC_APP_TOKEN",
		"philly": "PHILLY_APP_TOKEN",
	}

	for name, envKey := range tokenEnv {
		j, ok := cfg.Jurisdictions[name]
		if !ok || j.Registry.AppToken != "" {
			continue
		}
		if val := os.Getenv(envKey); val != "" {
			j.Registry.AppToken = val
			cfg.Jurisdictions[name] = j
		}
	}
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	viper.SetConfigFile(path)
	viper.SetConfigType("yaml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	expandEnvVars(viper.GetViper())

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)
	overrideEmptyConfig(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for optional configuration fields. The
// scoring tables default to the compiled-in rule set so a bare config file
// still produces correct scores.
func applyDefaults(cfg *Config) {
	if cfg.Server.Address == "" {
		cfg.Server.Address = ":8080"
	}

	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 900
	}

	if cfg.Fetch.QueryLimit == 0 {
		cfg.Fetch.QueryLimit = 500
	}
	if cfg.Fetch.DisplayCap == 0 {
		cfg.Fetch.DisplayCap = 50
	}

	for name, j := range cfg.Jurisdictions {
		if j.Geocoder.MaxCandidates == 0 {
			j.Geocoder.MaxCandidates = 5
		}
		if j.Geocoder.Timeout == 0 {
			j.Geocoder.Timeout = 10000
		}
		if j.Registry.Timeout == 0 {
			j.Registry.Timeout = 30000
		}
		cfg.Jurisdictions[name] = j
	}

	applyScoringDefaults(&cfg.Scoring)

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
}

// applyScoringDefaults fills any scoring table the config omitted.
func applyScoringDefaults(s *ScoringConfig) {
	if len(s.Weights) == 0 {
		s.Weights = map[string]int{
			"fire":       25,
			"structural": 20,
			"electrical": 15,
			"mechanical": 12,
			"plumbing":   8,
			"housing":    5,
			"zoning":     3,
		}
	}
	if s.DefaultWeight == 0 {
		s.DefaultWeight = 5
	}
	if len(s.Keywords) == 0 {
		s.Keywords = DefaultKeywordRules()
	}
	if len(s.OpenStatuses) == 0 {
		s.OpenStatuses = []string{"OPEN", "ACTIVE", "IN VIOLATION"}
	}
	if s.RecentDays == 0 {
		s.RecentDays = 365
	}
	if s.PermitBonus == 0 {
		s.PermitBonus = 3
	}
	if s.PermitBonusCap == 0 {
		s.PermitBonusCap = 15
	}
	if s.CertPenalty == 0 {
		s.CertPenalty = 12
	}
	if s.CertBonus == 0 {
		s.CertBonus = 2
	}
	if s.CertBonusCap == 0 {
		s.CertBonusCap = 10
	}
}

// DefaultKeywordRules is the built-in classification table, highest risk
// first. Order is precedence: the first rule whose terms match wins.
func DefaultKeywordRules() []KeywordRule {
	return []KeywordRule{
		{Category: "fire", Terms: []string{"FIRE", "SMOKE", "ALARM", "SPRINKLER", "EXTINGUISHER", "EGRESS", "EXIT"}},
		{Category: "structural", Terms: []string{"STRUCTURAL", "FACADE", "FOUNDATION", "BEAM", "WALL", "ROOF"}},
		{Category: "electrical", Terms: []string{"ELECTRICAL", "WIRING", "OUTLET", "CIRCUIT"}},
		{Category: "mechanical", Terms: []string{"MECHANICAL", "BOILER", "HVAC", "HEATING", "VENTILATION"}},
		{Category: "plumbing", Terms: []string{"PLUMBING", "WATER", "PIPE", "SEWER", "DRAIN"}},
		{Category: "housing", Terms: []string{"HOUSING", "OCCUPANCY", "MAINTENANCE", "PROPERTY"}},
		{Category: "zoning", Terms: []string{"ZONING", "USE", "PERMIT"}},
	}
}

// validateConfig validates critical configuration fields.
func validateConfig(cfg *Config) error {
	if len(cfg.Jurisdictions) == 0 {
		return fmt.Errorf("at least one jurisdiction must be configured")
	}

	for name, j := range cfg.Jurisdictions {
		if j.Geocoder.BaseURL == "" {
			return fmt.Errorf("jurisdictions.%s.geocoder.base_url is required", name)
		}
		if j.Registry.BaseURL == "" {
			return fmt.Errorf("jurisdictions.%s.registry.base_url is required", name)
		}
		if j.Registry.Dialect == "" {
			return fmt.Errorf("jurisdictions.%s.registry.dialect is required", name)
		}
	}

	if cfg.Cache.Enabled && cfg.Redis.Address == "" {
		return fmt.Errorf("redis.address is required when cache.enabled is true")
	}

	return nil
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
