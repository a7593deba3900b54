package fetcher

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "compliance-engine/internal/common/errors"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/models"
	"compliance-engine/internal/normalizer"
	"compliance-engine/internal/registry"
)

// stubGateway answers queries from a script keyed by dataset and the rendered
// SoQL filter, recording every call it sees.
type stubGateway struct {
	mu        sync.Mutex
	responses map[string][]registry.Record
	errors    map[string]error
	calls     []string
}

func newStubGateway() *stubGateway {
	return &stubGateway{
		responses: make(map[string][]registry.Record),
		errors:    make(map[string]error),
	}
}

func key(dataset string, filter registry.Filter) string {
	return dataset + "|" + registry.RenderSoQL(filter)
}

func (s *stubGateway) on(dataset string, filter registry.Filter, rows ...registry.Record) {
	s.responses[key(dataset, filter)] = rows
}

func (s *stubGateway) failOn(dataset string, filter registry.Filter, err error) {
	s.errors[key(dataset, filter)] = err
}

func (s *stubGateway) Query(ctx context.Context, dataset string, filter registry.Filter, limit, offset int) ([]registry.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	k := key(dataset, filter)
	s.calls = append(s.calls, k)
	if err, ok := s.errors[k]; ok {
		return nil, err
	}
	return s.responses[k], nil
}

func (s *stubGateway) Dialect() string { return "stub" }

func nycBundle() models.IdentifierBundle {
	return models.IdentifierBundle{
		BuildingID:  "1001026",
		ParcelID:    "1000835041",
		Block:       "835",
		Lot:         "41",
		Subdivision: "Manhattan",
		Address:     "140 WEST ST, Manhattan",
	}
}

func hpdSpec() CategorySpec {
	for _, spec := range NYCCategories() {
		if spec.Name == "hpd_violations" {
			return spec
		}
	}
	panic("hpd_violations spec missing")
}

func newTestFetcher(gw registry.Gateway) *Fetcher {
	return New(gw, normalizer.New(normalizer.NYCFieldMaps()), NYCCategories(), 500, logger.NewNoOpLogger())
}

func TestFetchCategoryFirstStrategyWins(t *testing.T) {
	gw := newStubGateway()
	spec := hpdSpec()
	primary := registry.AndOf(spec.BaseFilter, registry.Eq{Field: "bin", Value: "1001026"})
	gw.on("hpd_violations", primary,
		registry.Record{"violationid": "1", "violationstatus": "Open", "bin": "1001026"})

	result := newTestFetcher(gw).FetchCategory(context.Background(), spec, nycBundle())

	assert.Equal(t, StrategyPrimary, result.Strategy)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "1", result.Records[0].ID)
	assert.False(t, result.Filtered)
	assert.Len(t, gw.calls, 1)
}

func TestFetchCategoryFallsThroughToParcel(t *testing.T) {
	gw := newStubGateway()
	spec := hpdSpec()
	parcel := registry.AndOf(spec.BaseFilter, registry.Eq{Field: "bbl", Value: "1000835041"})
	gw.on("hpd_violations", parcel,
		registry.Record{"violationid": "2", "violationstatus": "Open"})

	result := newTestFetcher(gw).FetchCategory(context.Background(), spec, nycBundle())

	assert.Equal(t, StrategyParcel, result.Strategy)
	require.Len(t, result.Records, 1)
	assert.Len(t, gw.calls, 2)
}

func TestFetchCategoryCrossValidationDropsForeignRecords(t *testing.T) {
	gw := newStubGateway()
	spec := hpdSpec()
	blockLot := registry.AndOf(spec.BaseFilter,
		registry.Eq{Field: "block", Value: "835"}, registry.Eq{Field: "lot", Value: "41"})
	gw.on("hpd_violations", blockLot,
		registry.Record{"violationid": "3", "violationstatus": "Open", "bin": "1001026"},
		registry.Record{"violationid": "4", "violationstatus": "Open", "bin": "9999999"},
		registry.Record{"violationid": "5", "violationstatus": "Open"})

	result := newTestFetcher(gw).FetchCategory(context.Background(), spec, nycBundle())

	assert.Equal(t, StrategyBlockLot, result.Strategy)
	assert.True(t, result.Filtered)
	require.Len(t, result.Records, 2)
	assert.Equal(t, "3", result.Records[0].ID)
	assert.Equal(t, "5", result.Records[1].ID)
}

func TestFetchCategoryEmptiedStrategyIsAMiss(t *testing.T) {
	gw := newStubGateway()
	spec := hpdSpec()
	primary := registry.AndOf(spec.BaseFilter, registry.Eq{Field: "bin", Value: "1001026"})
	parcel := registry.AndOf(spec.BaseFilter, registry.Eq{Field: "bbl", Value: "1000835041"})
	// Primary matches only a record belonging to a different building.
	gw.on("hpd_violations", primary,
		registry.Record{"violationid": "6", "violationstatus": "Open", "bin": "7777777"})
	gw.on("hpd_violations", parcel,
		registry.Record{"violationid": "7", "violationstatus": "Open", "bin": "1001026"})

	result := newTestFetcher(gw).FetchCategory(context.Background(), spec, nycBundle())

	assert.Equal(t, StrategyParcel, result.Strategy)
	require.Len(t, result.Records, 1)
	assert.Equal(t, "7", result.Records[0].ID)
}

func TestFetchCategoryAllStrategiesMiss(t *testing.T) {
	gw := newStubGateway()

	result := newTestFetcher(gw).FetchCategory(context.Background(), hpdSpec(), nycBundle())

	assert.Equal(t, models.StrategyNoMatch, result.Strategy)
	assert.Empty(t, result.Records)
	assert.NotNil(t, result.Records)
	assert.Len(t, gw.calls, 3)
}

func TestFetchCategoryStrategyErrorIsContained(t *testing.T) {
	gw := newStubGateway()
	spec := hpdSpec()
	primary := registry.AndOf(spec.BaseFilter, registry.Eq{Field: "bin", Value: "1001026"})
	parcel := registry.AndOf(spec.BaseFilter, registry.Eq{Field: "bbl", Value: "1000835041"})
	gw.failOn("hpd_violations", primary, commonerrors.NewGatewayTimeoutError("hpd_violations"))
	gw.on("hpd_violations", parcel,
		registry.Record{"violationid": "8", "violationstatus": "Open"})

	result := newTestFetcher(gw).FetchCategory(context.Background(), spec, nycBundle())

	assert.Equal(t, StrategyParcel, result.Strategy)
	require.Len(t, result.Records, 1)
}

func TestFetchCategorySkipsStrategiesWithoutKeys(t *testing.T) {
	gw := newStubGateway()
	spec := hpdSpec()
	bundle := models.IdentifierBundle{ParcelID: "1000835041", Address: "140 WEST ST"}
	parcel := registry.AndOf(spec.BaseFilter, registry.Eq{Field: "bbl", Value: "1000835041"})
	gw.on("hpd_violations", parcel, registry.Record{"violationid": "9", "violationstatus": "Open"})

	result := newTestFetcher(gw).FetchCategory(context.Background(), spec, bundle)

	// No building id and no block/lot: only the parcel strategy runs.
	assert.Len(t, gw.calls, 1)
	assert.Equal(t, StrategyParcel, result.Strategy)
}

func TestFetchAllCoversEveryCategory(t *testing.T) {
	gw := newStubGateway()
	gw.on("boiler_inspections", registry.Eq{Field: "bin_number", Value: "1001026"},
		registry.Record{"tracking_number": "B-1", "report_status": "ACCEPTED"})

	results := newTestFetcher(gw).FetchAll(context.Background(), nycBundle())

	require.Len(t, results, len(NYCCategories()))
	byCategory := make(map[string]models.CategoryResult)
	for _, r := range results {
		byCategory[r.Category] = r
	}
	assert.Equal(t, StrategyPrimary, byCategory["boiler_inspections"].Strategy)
	assert.Equal(t, models.StrategyNoMatch, byCategory["hpd_violations"].Strategy)
}

func TestBuildStrategiesSubdivisionBlockUppercases(t *testing.T) {
	var electrical CategorySpec
	for _, spec := range NYCCategories() {
		if spec.Name == "electrical_permits" {
			electrical = spec
		}
	}
	bundle := nycBundle()
	bundle.BuildingID = ""

	strategies := buildStrategies(electrical, bundle)

	require.Len(t, strategies, 1)
	assert.Equal(t, StrategySubdivisionBlock, strategies[0].Kind)
	assert.Equal(t, "borough = 'MANHATTAN' AND block = '835'", registry.RenderSoQL(strategies[0].Filter))
}
