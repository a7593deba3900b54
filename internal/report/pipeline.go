// internal/report/pipeline.go
package report

import (
	"context"
	"time"

	"compliance-engine/internal/common/cache"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/common/metrics"
	"compliance-engine/internal/common/observability"
	"compliance-engine/internal/fetcher"
	"compliance-engine/internal/models"
	"compliance-engine/internal/resolver"
	"compliance-engine/internal/scoring"
)

// Pipeline generates reports for one jurisdiction.
type Pipeline struct {
	jurisdiction string
	resolver     *resolver.Resolver
	fetcher      *fetcher.Fetcher
	scorer       *scoring.Scorer
	assembler    *Assembler
	geocodeCache *cache.GeocodeCache
	obs          *observability.Observability
	log          logger.Logger
}

func NewPipeline(jurisdiction string, res *resolver.Resolver, f *fetcher.Fetcher, scorer *scoring.Scorer, assembler *Assembler, geocodeCache *cache.GeocodeCache, obs *observability.Observability, log logger.Logger) *Pipeline {
	return &Pipeline{
		jurisdiction: jurisdiction,
		resolver:     res,
		fetcher:      f,
		scorer:       scorer,
		assembler:    assembler,
		geocodeCache: geocodeCache,
		obs:          obs,
		log:          log.WithFields(map[string]interface{}{"jurisdiction": jurisdiction}),
	}
}

// Generate runs the full pipeline for one address. Resolution failures are
// the only errors that escape; a registry that cannot be reached degrades to
// an empty category inside a successful report.
func (p *Pipeline) Generate(ctx context.Context, address string) (*models.ComplianceReport, error) {
	start := time.Now()

	bundle, err := p.resolveWithCache(ctx, address)
	if err != nil {
		p.recordOutcome(ctx, start, "failure")
		return nil, err
	}

	results := p.fetcher.FetchAll(ctx, bundle)
	scores := p.scorer.Score(results, fetcher.Roles(p.fetcher.Categories()))
	rep := p.assembler.Assemble(p.jurisdiction, bundle, results, scores)

	metrics.RiskScore.WithLabelValues(p.jurisdiction).Observe(float64(scores.OverallScore))
	p.recordOutcome(ctx, start, "success")

	p.log.Info("report generated", map[string]interface{}{
		"report_id":   rep.ReportID,
		"score":       scores.OverallScore,
		"data_status": string(rep.DataStatus),
		"duration_ms": time.Since(start).Milliseconds(),
	})
	return rep, nil
}

// resolveWithCache consults the geocode cache before the geocoder. A cache
// failure is a miss; resolution results are cached only on success.
func (p *Pipeline) resolveWithCache(ctx context.Context, address string) (models.IdentifierBundle, error) {
	if cached := p.geocodeCache.Lookup(ctx, p.jurisdiction, address); cached != nil {
		p.log.Debug("geocode cache hit", map[string]interface{}{"address": address})
		return *cached, nil
	}

	bundle, err := p.resolver.Resolve(ctx, address)
	if err != nil {
		return models.IdentifierBundle{}, err
	}
	p.geocodeCache.Store(ctx, p.jurisdiction, address, bundle)
	return bundle, nil
}

func (p *Pipeline) recordOutcome(ctx context.Context, start time.Time, outcome string) {
	elapsed := time.Since(start)
	metrics.ReportDuration.WithLabelValues(p.jurisdiction).Observe(elapsed.Seconds())
	metrics.ReportsGenerated.WithLabelValues(p.jurisdiction, outcome).Inc()
	if p.obs != nil {
		p.obs.RecordReportProcessed(ctx, p.jurisdiction, outcome)
		p.obs.RecordReportDuration(ctx, elapsed, outcome)
	}
}
