package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	commonerrors "compliance-engine/internal/common/errors"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/geocode"
)

type stubGeocoder struct {
	candidates []geocode.Candidate
	err        error
}

func (s *stubGeocoder) Search(ctx context.Context, text string, maxResults int) ([]geocode.Candidate, error) {
	return s.candidates, s.err
}

func TestResolvePicksExactHouseNumberMatch(t *testing.T) {
	gc := &stubGeocoder{candidates: []geocode.Candidate{
		{HouseNumber: "138", Street: "WEST ST", Subdivision: "Manhattan", BuildingID: "1000000", ParcelID: "1000830001"},
		{HouseNumber: "140", Street: "WEST ST", Subdivision: "Manhattan", BuildingID: "1001026", ParcelID: "1000835041", Label: "140 WEST ST, Manhattan"},
	}}
	r := New(gc, 5, logger.NewNoOpLogger())

	bundle, err := r.Resolve(context.Background(), "140 West Street, Manhattan")

	require.NoError(t, err)
	assert.Equal(t, "1001026", bundle.BuildingID)
	assert.Equal(t, "1000835041", bundle.ParcelID)
	assert.False(t, bundle.Unverified)
	assert.Equal(t, "140 WEST ST, Manhattan", bundle.Address)
}

func TestResolveNormalizesHyphenatedHouseNumbers(t *testing.T) {
	gc := &stubGeocoder{candidates: []geocode.Candidate{
		{HouseNumber: "30-56", Street: "STEINWAY ST", Subdivision: "Queens", BuildingID: "4009876", ParcelID: "4006540022"},
	}}
	r := New(gc, 5, logger.NewNoOpLogger())

	bundle, err := r.Resolve(context.Background(), "3056 Steinway St, Queens")

	require.NoError(t, err)
	assert.False(t, bundle.Unverified)
	assert.Equal(t, "4009876", bundle.BuildingID)
}

func TestResolveFallsBackToFirstRankedUnverified(t *testing.T) {
	gc := &stubGeocoder{candidates: []geocode.Candidate{
		{HouseNumber: "142", Street: "WEST ST", BuildingID: "1001027", ParcelID: "1000835042"},
		{HouseNumber: "144", Street: "WEST ST", BuildingID: "1001028", ParcelID: "1000835043"},
	}}
	r := New(gc, 5, logger.NewNoOpLogger())

	bundle, err := r.Resolve(context.Background(), "140 West Street")

	require.NoError(t, err)
	assert.True(t, bundle.Unverified)
	assert.Equal(t, "1001027", bundle.BuildingID)
}

func TestResolveDerivesBlockAndLot(t *testing.T) {
	gc := &stubGeocoder{candidates: []geocode.Candidate{
		{HouseNumber: "140", BuildingID: "1001026", ParcelID: "1000835041"},
	}}
	r := New(gc, 5, logger.NewNoOpLogger())

	bundle, err := r.Resolve(context.Background(), "140 West Street")

	require.NoError(t, err)
	assert.Equal(t, "835", bundle.Block)
	assert.Equal(t, "41", bundle.Lot)
}

func TestResolveIrregularParcelSkipsBlockLot(t *testing.T) {
	gc := &stubGeocoder{candidates: []geocode.Candidate{
		{HouseNumber: "1400", ParcelID: "888058583"},
	}}
	r := New(gc, 5, logger.NewNoOpLogger())

	bundle, err := r.Resolve(context.Background(), "1400 John F Kennedy Blvd")

	require.NoError(t, err)
	assert.Empty(t, bundle.Block)
	assert.Empty(t, bundle.Lot)
	assert.Equal(t, "888058583", bundle.ParcelID)
}

func TestResolveNoCandidates(t *testing.T) {
	r := New(&stubGeocoder{}, 5, logger.NewNoOpLogger())

	_, err := r.Resolve(context.Background(), "1 Nowhere Lane")

	require.Error(t, err)
	assert.True(t, commonerrors.IsCode(err, commonerrors.ErrCodeResolutionFailed))
}

func TestResolveNoQueryableIdentifier(t *testing.T) {
	gc := &stubGeocoder{candidates: []geocode.Candidate{
		{HouseNumber: "140", Street: "WEST ST"},
	}}
	r := New(gc, 5, logger.NewNoOpLogger())

	_, err := r.Resolve(context.Background(), "140 West Street")

	require.Error(t, err)
	assert.True(t, commonerrors.IsCode(err, commonerrors.ErrCodeResolutionFailed))
}

func TestResolveGeocoderUnreachablePassesThrough(t *testing.T) {
	gc := &stubGeocoder{err: commonerrors.NewGeocoderUnreachableError(assert.AnError)}
	r := New(gc, 5, logger.NewNoOpLogger())

	_, err := r.Resolve(context.Background(), "140 West Street")

	require.Error(t, err)
	assert.True(t, commonerrors.IsCode(err, commonerrors.ErrCodeGeocoderUnreachable))
}

func TestNormalizeHouseNumber(t *testing.T) {
	assert.Equal(t, "3056", NormalizeHouseNumber("30-56"))
	assert.Equal(t, "143A", NormalizeHouseNumber("143a"))
	assert.Equal(t, "", NormalizeHouseNumber(""))
}
