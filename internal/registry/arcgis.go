// internal/registry/arcgis.go
package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	commonhttp "compliance-engine/internal/common/http"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/common/metrics"
)

// ArcGISGateway queries an ArcGIS feature service. Rows come back as
// features whose attributes map is the record; geometry is never requested.
type ArcGISGateway struct {
	baseURL   string
	catalogue *Catalogue
	client    *commonhttp.Client
	log       logger.Logger
}

func NewArcGISGateway(baseURL string, catalogue *Catalogue, client *commonhttp.Client, log logger.Logger) *ArcGISGateway {
	return &ArcGISGateway{
		baseURL:   baseURL,
		catalogue: catalogue,
		client:    client,
		log:       log,
	}
}

func (g *ArcGISGateway) Dialect() string {
	return DialectArcGIS
}

func (g *ArcGISGateway) Query(ctx context.Context, datasetKey string, filter Filter, limit, offset int) ([]Record, error) {
	ds, err := g.catalogue.Get(datasetKey)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	params.Set("where", RenderArcGIS(filter))
	params.Set("outFields", "*")
	params.Set("returnGeometry", "false")
	params.Set("f", "json")
	params.Set("resultRecordCount", strconv.Itoa(limit))
	if offset > 0 {
		params.Set("resultOffset", strconv.Itoa(offset))
	}

	endpoint := fmt.Sprintf("%s/%s/query?%s", g.baseURL, ds.Resource, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, classifyTransportError(datasetKey, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectArcGIS, "error").Inc()
		return nil, classifyTransportError(datasetKey, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectArcGIS, "error").Inc()
		return nil, classifyTransportError(datasetKey, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectArcGIS, "error").Inc()
		g.log.Warn("ArcGIS query rejected", map[string]interface{}{
			"dataset": datasetKey,
			"status":  resp.StatusCode,
			"body":    truncateBody(body),
		})
		return nil, classifyTransportError(datasetKey, fmt.Errorf("status %d", resp.StatusCode))
	}

	var payload struct {
		Features []struct {
			Attributes Record `json:"attributes"`
		} `json:"features"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectArcGIS, "error").Inc()
		return nil, classifyTransportError(datasetKey, fmt.Errorf("decode response: %w", err))
	}

	// Feature services report query errors inside a 200 response.
	if payload.Error != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectArcGIS, "error").Inc()
		return nil, classifyTransportError(datasetKey, fmt.Errorf("arcgis error %d: %s", payload.Error.Code, payload.Error.Message))
	}

	records := make([]Record, 0, len(payload.Features))
	for _, feature := range payload.Features {
		if feature.Attributes != nil {
			records = append(records, feature.Attributes)
		}
	}

	outcome := "success"
	if len(records) == 0 {
		outcome = "empty"
	}
	metrics.RegistryQueries.WithLabelValues(datasetKey, DialectArcGIS, outcome).Inc()
	return records, nil
}
