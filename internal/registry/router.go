// internal/registry/router.go
package registry

import (
	"context"

	commonerrors "compliance-engine/internal/common/errors"
)

// Router dispatches queries to the dialect gateway that serves each dataset.
// A jurisdiction's datasets can span dialects (Philadelphia publishes most
// data through Carto but building certifications through ArcGIS), so the
// fetch layer talks to one Router per jurisdiction.
type Router struct {
	catalogue *Catalogue
	gateways  map[string]Gateway
}

func NewRouter(catalogue *Catalogue, gateways ...Gateway) *Router {
	byDialect := make(map[string]Gateway, len(gateways))
	for _, gw := range gateways {
		byDialect[gw.Dialect()] = gw
	}
	return &Router{catalogue: catalogue, gateways: byDialect}
}

func (r *Router) Dialect() string {
	return "multi"
}

func (r *Router) Query(ctx context.Context, datasetKey string, filter Filter, limit, offset int) ([]Record, error) {
	ds, err := r.catalogue.Get(datasetKey)
	if err != nil {
		return nil, err
	}
	gw, ok := r.gateways[ds.Dialect]
	if !ok {
		return nil, commonerrors.NewUnknownDatasetError(datasetKey)
	}
	return gw.Query(ctx, datasetKey, filter, limit, offset)
}
