// internal/geocode/ais.go
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	commonerrors "compliance-engine/internal/common/errors"
	commonhttp "compliance-engine/internal/common/http"
	"compliance-engine/internal/common/logger"
)

// AISClient queries Philadelphia's Address Information System. The OPA
// account number acts as the parcel identifier; AIS has no separate building
// id, so BuildingID stays empty and downstream queries key on the parcel.
type AISClient struct {
	baseURL string
	client  *commonhttp.Client
	log     logger.Logger
}

func NewAISClient(baseURL string, client *commonhttp.Client, log logger.Logger) *AISClient {
	return &AISClient{baseURL: baseURL, client: client, log: log}
}

type aisResponse struct {
	Features []struct {
		Properties struct {
			AddressLow    json.Number `json:"address_low"`
			StreetFull    string      `json:"street_full"`
			StreetAddress string      `json:"street_address"`
			OPAAccountNum string      `json:"opa_account_num"`
		} `json:"properties"`
	} `json:"features"`
}

func (c *AISClient) Search(ctx context.Context, text string, maxResults int) ([]Candidate, error) {
	endpoint := c.baseURL + "/search/" + url.PathEscape(text)
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

	// AIS answers 404 for an address with no matches; that is a clean miss,
	// not a transport failure.
	if resp.StatusCode == http.StatusNotFound {
		return []Candidate{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, commonerrors.NewGeocoderUnreachableError(fmt.Errorf("ais status %d", resp.StatusCode))
	}

	var payload aisResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, commonerrors.NewGeocoderUnreachableError(fmt.Errorf("decode ais response: %w", err))
	}

	candidates := make([]Candidate, 0, len(payload.Features))
	for _, feature := range payload.Features {
		if len(candidates) >= maxResults {
			break
		}
		props := feature.Properties
		candidates = append(candidates, Candidate{
			HouseNumber: props.AddressLow.String(),
			Street:      props.StreetFull,
			ParcelID:    props.OPAAccountNum,
			Label:       props.StreetAddress,
		})
	}

	c.log.Debug("ais candidates", map[string]interface{}{
		"text":  text,
		"count": len(candidates),
	})
	return candidates, nil
}
