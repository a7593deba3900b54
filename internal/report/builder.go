// internal/report/builder.go
package report

import (
	"fmt"

	"github.com/redis/go-redis/v9"

	"compliance-engine/internal/common/cache"
	"compliance-engine/internal/common/config"
	commonhttp "compliance-engine/internal/common/http"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/common/observability"
	"compliance-engine/internal/fetcher"
	"compliance-engine/internal/geocode"
	"compliance-engine/internal/normalizer"
	"compliance-engine/internal/registry"
	"compliance-engine/internal/resolver"
	"compliance-engine/internal/scoring"
)

// BuildEngine wires a pipeline per configured jurisdiction. The rule tables
// (datasets, categories, field maps) are compiled in per jurisdiction; the
// config supplies endpoints, tokens, timeouts, and scoring tables.
func BuildEngine(cfg *config.Config, log logger.Logger, redisClient *redis.Client, obs *observability.Observability) (*Engine, error) {
	scorer := scoring.New(cfg.Scoring)

	var geocodeCache *cache.GeocodeCache
	if cfg.Cache.Enabled && redisClient != nil {
		geocodeCache = cache.NewGeocodeCache(redisClient, config.GetDuration(cfg.Cache.TTLSeconds*1000))
	}

	pipelines := make(map[string]*Pipeline, len(cfg.Jurisdictions))
	for name, jcfg := range cfg.Jurisdictions {
		pipeline, err := buildPipeline(name, jcfg, cfg, scorer, geocodeCache, obs, log)
		if err != nil {
			return nil, fmt.Errorf("build jurisdiction %q: %w", name, err)
		}
		pipelines[name] = pipeline
	}
	return NewEngine(pipelines), nil
}

func buildPipeline(name string, jcfg config.JurisdictionConfig, cfg *config.Config, scorer *scoring.Scorer, geocodeCache *cache.GeocodeCache, obs *observability.Observability, log logger.Logger) (*Pipeline, error) {
	geocoderClient := commonhttp.NewClient(config.GetDuration(jcfg.Geocoder.Timeout))
	registryClient := commonhttp.NewClient(config.GetDuration(jcfg.Registry.Timeout))

	var (
		gc         geocode.Geocoder
		gateway    registry.Gateway
		categories []fetcher.CategorySpec
		fieldMaps  map[string]normalizer.FieldMap
	)

	switch name {
	case "nyc":
		gc = geocode.NewGeoSearchClient(jcfg.Geocoder.BaseURL, geocoderClient, log)
		gateway = registry.NewSocrataGateway(jcfg.Registry.BaseURL, jcfg.Registry.AppToken, registry.NYCCatalogue(), registryClient, log)
		categories = fetcher.NYCCategories()
		fieldMaps = normalizer.NYCFieldMaps()
	case "philly":
		gc = geocode.NewAISClient(jcfg.Geocoder.BaseURL, geocoderClient, log)
		catalogue := registry.PhillyCatalogue()
		gateway = registry.NewRouter(catalogue,
			registry.NewCartoGateway(jcfg.Registry.BaseURL, catalogue, registryClient, log),
			registry.NewArcGISGateway(jcfg.Registry.FeatureBaseURL, catalogue, registryClient, log),
		)
		categories = fetcher.PhillyCategories()
		fieldMaps = normalizer.PhillyFieldMaps()
	default:
		return nil, fmt.Errorf("no rule tables compiled for jurisdiction %q", name)
	}

	res := resolver.New(gc, jcfg.Geocoder.MaxCandidates, log)
	f := fetcher.New(gateway, normalizer.New(fieldMaps), categories, cfg.Fetch.QueryLimit, log)
	assembler := NewAssembler(cfg.Fetch.DisplayCap)

	return NewPipeline(name, res, f, scorer, assembler, geocodeCache, obs, log), nil
}
