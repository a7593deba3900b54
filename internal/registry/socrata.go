// internal/registry/socrata.go
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

// SocrataGateway queries Socrata Open Data API (SODA) endpoints such as NYC
// Open Data. Filters are rendered into SoQL $where expressions.
type SocrataGateway struct {
	baseURL   string
	appToken  string
	catalogue *Catalogue
	client    *commonhttp.Client
	log       logger.Logger
}

func NewSocrataGateway(baseURL, appToken string, catalogue *Catalogue, client *commonhttp.Client, log logger.Logger) *SocrataGateway {
	return &SocrataGateway{
		baseURL:   baseURL,
		appToken:  appToken,
		catalogue: catalogue,
		client:    client,
		log:       log,
	}
}

func (g *SocrataGateway) Dialect() string {
	return DialectSocrata
}

func (g *SocrataGateway) Query(ctx context.Context, datasetKey string, filter Filter, limit, offset int) ([]Record, error) {
	ds, err := g.catalogue.Get(datasetKey)
	if err != nil {
		return nil, err
	}

	params := url.Values{}
	if where := RenderSoQL(filter); where != "" {
		params.Set("$where", where)
	}
	params.Set("$limit", strconv.Itoa(limit))
	if offset > 0 {
		params.Set("$offset", strconv.Itoa(offset))
	}

	endpoint := fmt.Sprintf("%s/resource/%s.json?%s", g.baseURL, ds.Resource, params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, classifyTransportError(datasetKey, err)
	}
	if g.appToken != "" {
		req.Header.Set("X-App-Token", g.appToken)
	}

	var records []Record
	if err := g.execute(req, datasetKey, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}

func (g *SocrataGateway) execute(req *http.Request, datasetKey string, out *[]Record) error {
	resp, err := g.client.Do(req)
	if err != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectSocrata, "error").Inc()
		return classifyTransportError(datasetKey, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectSocrata, "error").Inc()
		return classifyTransportError(datasetKey, err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectSocrata, "error").Inc()
		g.log.Warn("Socrata query rejected", map[string]interface{}{
			"dataset": datasetKey,
			"status":  resp.StatusCode,
			"body":    truncateBody(body),
		})
		return classifyTransportError(datasetKey, fmt.Errorf("status %d", resp.StatusCode))
	}

	if err := json.Unmarshal(body, out); err != nil {
		metrics.RegistryQueries.WithLabelValues(datasetKey, DialectSocrata, "error").Inc()
		return classifyTransportError(datasetKey, fmt.Errorf("decode response: %w", err))
	}

	outcome := "success"
	if len(*out) == 0 {
		outcome = "empty"
	}
	metrics.RegistryQueries.WithLabelValues(datasetKey, DialectSocrata, outcome).Inc()
	return nil
}

// truncateBody keeps error logs bounded when a registry returns HTML.
func truncateBody(body []byte) string {
	const max = 256
	if len(body) > max {
		return string(body[:max]) + "..."
	}
	return string(body)
}
