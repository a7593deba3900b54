// internal/report/engine.go
package report

import (
	"context"
	"sort"

	commonerrors "compliance-engine/internal/common/errors"
	"compliance-engine/internal/models"
)

// Engine fronts one pipeline per configured jurisdiction.
type Engine struct {
	pipelines map[string]*Pipeline
}

func NewEngine(pipelines map[string]*Pipeline) *Engine {
	return &Engine{pipelines: pipelines}
}

// Generate routes the request to the jurisdiction's pipeline.
func (e *Engine) Generate(ctx context.Context, jurisdiction, address string) (*models.ComplianceReport, error) {
	pipeline, ok := e.pipelines[jurisdiction]
	if !ok {
		return nil, commonerrors.NewUnknownJurisdictionError(jurisdiction)
	}
	return pipeline.Generate(ctx, address)
}

// Jurisdictions lists the configured jurisdiction names, sorted.
func (e *Engine) Jurisdictions() []string {
	names := make([]string, 0, len(e.pipelines))
	for name := range e.pipelines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
