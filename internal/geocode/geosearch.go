// internal/geocode/geosearch.go
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	commonerrors "compliance-engine/internal/common/errors"
	commonhttp "compliance-engine/internal/common/http"
	"compliance-engine/internal/common/logger"
)

// GeoSearchClient queries the NYC Planning GeoSearch autocomplete API. The
// building and tax-lot identifiers ride in each feature's pad addendum.
type GeoSearchClient struct {
	baseURL string
	client  *commonhttp.Client
	log     logger.Logger
}

func NewGeoSearchClient(baseURL string, client *commonhttp.Client, log logger.Logger) *GeoSearchClient {
	return &GeoSearchClient{baseURL: baseURL, client: client, log: log}
}

type geoSearchResponse struct {
	Features []struct {
		Properties struct {
			HouseNumber string `json:"housenumber"`
			Street      string `json:"street"`
			Borough     string `json:"borough"`
			Label       string `json:"label"`
			Addendum    struct {
				Pad struct {
					BIN string `json:"bin"`
					BBL string `json:"bbl"`
				} `json:"pad"`
			} `json:"addendum"`
		} `json:"properties"`
	} `json:"features"`
}

func (c *GeoSearchClient) Search(ctx context.Context, text string, maxResults int) ([]Candidate, error) {
	params := url.Values{}
	params.Set("text", text)
	params.Set("size", strconv.Itoa(maxResults))

	endpoint := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, commonerrors.NewGeocoderUnreachableError(err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, commonerrors.NewGeocoderUnreachableError(err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, commonerrors.NewGeocoderUnreachableError(err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, commonerrors.NewGeocoderUnreachableError(fmt.Errorf("geosearch status %d", resp.StatusCode))
	}

	var payload geoSearchResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, commonerrors.NewGeocoderUnreachableError(fmt.Errorf("decode geosearch response: %w", err))
	}

	candidates := make([]Candidate, 0, len(payload.Features))
	for _, feature := range payload.Features {
		props := feature.Properties
		candidates = append(candidates, Candidate{
			HouseNumber: props.HouseNumber,
			Street:      props.Street,
			Subdivision: props.Borough,
			BuildingID:  props.Addendum.Pad.BIN,
			ParcelID:    props.Addendum.Pad.BBL,
			Label:       props.Label,
		})
	}

	c.log.Debug("geosearch candidates", map[string]interface{}{
		"text":  text,
		"count": len(candidates),
	})
	return candidates, nil
}
