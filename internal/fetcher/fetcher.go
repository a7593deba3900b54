// internal/fetcher/fetcher.go

// Package fetcher retrieves the records for every regulatory category of a
// jurisdiction. Strategies run in priority order per category; the first
// strategy that survives cross-validation with a non-empty result wins.
// Categories fan out concurrently since they hit independent datasets.
package fetcher

import (
	"context"

	"golang.org/x/sync/errgroup"

	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/common/metrics"
	"compliance-engine/internal/models"
	"compliance-engine/internal/normalizer"
	"compliance-engine/internal/registry"
)

// Fetcher executes the multi-strategy fetch for one jurisdiction.
type Fetcher struct {
	gateway    registry.Gateway
	norm       *normalizer.Normalizer
	categories []CategorySpec
	queryLimit int
	log        logger.Logger
}

func New(gateway registry.Gateway, norm *normalizer.Normalizer, categories []CategorySpec, queryLimit int, log logger.Logger) *Fetcher {
	if queryLimit <= 0 {
		queryLimit = 500
	}
	return &Fetcher{
		gateway:    gateway,
		norm:       norm,
		categories: categories,
		queryLimit: queryLimit,
		log:        log,
	}
}

// Categories exposes the category specs this fetcher was built with.
func (f *Fetcher) Categories() []CategorySpec {
	return f.categories
}

// FetchAll fetches every category concurrently. Failures never escape a
// category: a dataset that cannot be reached yields an empty no-match result
// and the report proceeds with what the other categories returned.
func (f *Fetcher) FetchAll(ctx context.Context, bundle models.IdentifierBundle) []models.CategoryResult {
	results := make([]models.CategoryResult, len(f.categories))

	g, gctx := errgroup.WithContext(ctx)
	for i, spec := range f.categories {
		g.Go(func() error {
			results[i] = f.FetchCategory(gctx, spec, bundle)
			return nil
		})
	}
	g.Wait()

	return results
}

// FetchCategory walks the category's strategies in order and returns the
// first validated non-empty result. An emptied or failed strategy is a miss;
// when every strategy misses the result carries the no-match label.
func (f *Fetcher) FetchCategory(ctx context.Context, spec CategorySpec, bundle models.IdentifierBundle) models.CategoryResult {
	for _, strat := range buildStrategies(spec, bundle) {
		rows, err := f.gateway.Query(ctx, spec.Dataset, strat.Filter, f.queryLimit, 0)
		if err != nil {
			f.log.Warn("category strategy failed", map[string]interface{}{
				"category": spec.Name,
				"strategy": strat.Kind,
				"error":    err.Error(),
			})
			continue
		}
		if len(rows) == 0 {
			continue
		}

		records := f.norm.NormalizeAll(spec.Name, rows)
		records, dropped := crossValidate(records, bundle)
		if dropped > 0 {
			metrics.CrossValidationDrops.WithLabelValues(spec.Name).Add(float64(dropped))
		}
		if len(records) == 0 {
			// Everything the coarse key matched belongs to other buildings.
			f.log.Debug("strategy emptied by cross-validation", map[string]interface{}{
				"category": spec.Name,
				"strategy": strat.Kind,
				"dropped":  dropped,
			})
			continue
		}

		metrics.StrategySelected.WithLabelValues(spec.Name, strat.Kind).Inc()
		return models.CategoryResult{
			Category: spec.Name,
			Strategy: strat.Kind,
			Records:  records,
			Filtered: dropped > 0,
		}
	}

	metrics.StrategySelected.WithLabelValues(spec.Name, models.StrategyNoMatch).Inc()
	return models.CategoryResult{
		Category: spec.Name,
		Strategy: models.StrategyNoMatch,
		Records:  []models.NormalizedRecord{},
	}
}

// crossValidate drops records whose embedded building id disagrees with the
// bundle's. Records without a building id of their own are kept; only an
// explicit mismatch disqualifies.
func crossValidate(records []models.NormalizedRecord, bundle models.IdentifierBundle) ([]models.NormalizedRecord, int) {
	if bundle.BuildingID == "" {
		return records, 0
	}
	kept := records[:0]
	dropped := 0
	for _, record := range records {
		if record.BuildingID != "" && record.BuildingID != bundle.BuildingID {
			dropped++
			continue
		}
		kept = append(kept, record)
	}
	return kept, dropped
}
