// internal/registry/carto.go
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	commonhttp "compliance-engine/internal/common/http"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/common/metrics"
)

// CartoGateway queries a Carto SQL API endpoint, as used by Philadelphia's
// open-data warehouse. The whole query travels as one SELECT statement in the
// q parameter; rows come back under a top-level "rows" key.
type CartoGateway struct {
	baseURL   string
	catalogue *Catalogue
	client    *commonhttp.Client
	log       logger.Logger
}

func NewCartoGateway(baseURL string, catalogue *Catalogue, client *commonhttp.Client, log logger.Logger) *CartoGateway {
	return &CartoGateway{
		baseURL:   baseURL,
		catalogue: catalogue,
		client:    client,
		log:       log,
	}
}

func (g *CartoGateway) Dialect() string {
	return DialectCarto
}

func (g *CartoGateway) Query(ctx context.Context, datasetKey string, filter Filter, limit, offset int) ([]Record, error) {
	ds, err := g.catalogue.Get(datasetKey)
	if err != nil {
		return nil, err
	}

	var sql strings.Builder
	fmt.Fprintf(&sql, "SELECT * FROM %s", ds.Resource)
	if where := RenderSQL(filter); where != "" {
		fmt.Fprintf(&sql, " WHERE %s", where)
	}
	fmt.Fprintf(&sql, " LIMIT %d", limit)
	if offset > 0 {
		fmt.Fprintf(&sql, " OFFSET %d", offset)
	}

	params := url.Values{}
	params.Set("q", sql.String())
	endpoint := g.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, classifyTransportError(datasetKey, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectCarto, "error").Inc()
		return nil, classifyTransportError(datasetKey, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectCarto, "error").Inc()
		return nil, classifyTransportError(datasetKey, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectCarto, "error").Inc()
		g.log.Warn("Carto query rejected", map[string]interface{}{
			"dataset": datasetKey,
			"status":  resp.StatusCode,
			"body":    truncateBody(body),
		})
		return nil, classifyTransportError(datasetKey, fmt.Errorf("status %d", resp.StatusCode))
	}

	var payload struct {
		Rows []Record `json:"rows"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectCarto, "error").Inc()
		return nil, classifyTransportError(datasetKey, fmt.Errorf("decode response: %w", err))
	}

	outcome := "success"
	if len(payload.Rows) == 0 {
		outcome = "empty"
	}
	metrics.RegistryQueries.WithLabelValues(datasetKey, DialectCarto, outcome).Inc()

	if payload.Rows == nil {
		return []Record{}, nil
	}
	return payload.Rows, nil
}
