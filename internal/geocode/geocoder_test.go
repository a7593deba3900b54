package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "compliance-engine/internal/common/errors"
	commonhttp "compliance-engine/internal/common/http"
	"compliance-engine/internal/common/logger"
)

func testClient() *commonhttp.Client {
	return commonhttp.NewClient(5 * time.Second)
}

func TestGeoSearchClientParsesCandidates(t *testing.T) {
	var gotText, gotSize string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotText = r.URL.Query().Get("text")
		gotSize = r.URL.Query().Get("size")
		w.Write([]byte(`{"features":[
			{"properties":{"housenumber":"140","street":"WEST ST","borough":"Manhattan","label":"140 WEST ST, Manhattan",
				"addendum":{"pad":{"bin":"1001026","bbl":"1000835041"}}}},
			{"properties":{"housenumber":"140","street":"WEST END AVE","borough":"Manhattan","label":"140 WEST END AVE, Manhattan",
				"addendum":{"pad":{"bin":"1033556","bbl":"1011650001"}}}}
		]}`))
	}))
	defer server.Close()

	client := NewGeoSearchClient(server.URL, testClient(), logger.NewNoOpLogger())
	candidates, err := client.Search(context.Background(), "140 West Street, Manhattan", 5)

	require.NoError(t, err)
	require.Len(t, candidates, 2)
	assert.Equal(t, "140 West Street, Manhattan", gotText)
	assert.Equal(t, "5", gotSize)
	assert.Equal(t, "1001026", candidates[0].BuildingID)
	assert.Equal(t, "1000835041", candidates[0].ParcelID)
	assert.Equal(t, "Manhattan", candidates[0].Subdivision)
	assert.Equal(t, "140", candidates[0].HouseNumber)
}

func TestGeoSearchClientNoMatches(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[]}`))
	}))
	defer server.Close()

	client := NewGeoSearchClient(server.URL, testClient(), logger.NewNoOpLogger())
	candidates, err := client.Search(context.Background(), "nowhere", 5)

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestGeoSearchClientUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway timeout", http.StatusGatewayTimeout)
	}))
	defer server.Close()

	client := NewGeoSearchClient(server.URL, testClient(), logger.NewNoOpLogger())
	_, err := client.Search(context.Background(), "140 West Street", 5)

	require.Error(t, err)
	assert.True(t, commonerrors.IsCode(err, commonerrors.ErrCodeGeocoderUnreachable))
}

func TestAISClientParsesCandidates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search/1400 John F Kennedy Blvd", r.URL.Path)
		w.Write([]byte(`{"features":[
			{"properties":{"address_low":1400,"street_full":"JOHN F KENNEDY BLVD","street_address":"1400 JOHN F KENNEDY BLVD","opa_account_num":"888058583"}}
		]}`))
	}))
	defer server.Close()

	client := NewAISClient(server.URL, testClient(), logger.NewNoOpLogger())
	candidates, err := client.Search(context.Background(), "1400 John F Kennedy Blvd", 5)

	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, "888058583", candidates[0].ParcelID)
	assert.Equal(t, "1400", candidates[0].HouseNumber)
	assert.Empty(t, candidates[0].BuildingID)
}

func TestAISClientNotFoundIsCleanMiss(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer server.Close()

	client := NewAISClient(server.URL, testClient(), logger.NewNoOpLogger())
	candidates, err := client.Search(context.Background(), "1 Nowhere St", 5)

	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestAISClientCapsResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"features":[
			{"properties":{"address_low":1,"street_full":"A ST","opa_account_num":"1"}},
			{"properties":{"address_low":2,"street_full":"B ST","opa_account_num":"2"}},
			{"properties":{"address_low":3,"street_full":"C ST","opa_account_num":"3"}}
		]}`))
	}))
	defer server.Close()

	client := NewAISClient(server.URL, testClient(), logger.NewNoOpLogger())
	candidates, err := client.Search(context.Background(), "anything", 2)

	require.NoError(t, err)
	assert.Len(t, candidates, 2)
}
