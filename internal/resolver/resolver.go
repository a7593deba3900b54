// internal/resolver/resolver.go

// Package resolver turns a free-text address into an identifier bundle by
// consulting the jurisdiction's geocoder and selecting among its candidates.
package resolver

import (
	"context"
	"strings"
	"unicode"

	commonerrors "compliance-engine/internal/common/errors"
	"compliance-engine/internal/common/logger"
	"compliance-engine/internal/geocode"
	"compliance-engine/internal/models"
)

// Resolver selects a geocoder candidate and derives the identifier bundle.
type Resolver struct {
	geocoder      geocode.Geocoder
	maxCandidates int
	log           logger.Logger
}

func New(geocoder geocode.Geocoder, maxCandidates int, log logger.Logger) *Resolver {
	if maxCandidates <= 0 {
		maxCandidates = 5
	}
	return &Resolver{geocoder: geocoder, maxCandidates: maxCandidates, log: log}
}

// Resolve geocodes the address and builds the bundle. It fails with a typed
// error when the geocoder is unreachable, returns no candidates, or the chosen
// candidate carries no identifier any registry can be queried by.
func (r *Resolver) Resolve(ctx context.Context, address string) (models.IdentifierBundle, error) {
	candidates, err := r.geocoder.Search(ctx, address, r.maxCandidates)
	if err != nil {
		return models.IdentifierBundle{}, err
	}
	if len(candidates) == 0 {
		return models.IdentifierBundle{}, commonerrors.NewResolutionFailedError("no geocoder candidates for address: " + address)
	}

	chosen, verified := selectCandidate(address, candidates)

	bundle := models.IdentifierBundle{
		BuildingID:  chosen.BuildingID,
		ParcelID:    chosen.ParcelID,
		Subdivision: chosen.Subdivision,
		Address:     address,
		Unverified:  !verified,
	}
	if chosen.Label != "" {
		bundle.Address = chosen.Label
	}
	deriveBlockLot(&bundle)

	if !bundle.HasQueryableKey() {
		return models.IdentifierBundle{}, commonerrors.NewResolutionFailedError("geocoder candidate carries no building or parcel identifier")
	}

	r.log.Info("address resolved", map[string]interface{}{
		"address":    address,
		"bin":        bundle.BuildingID,
		"bbl":        bundle.ParcelID,
		"unverified": bundle.Unverified,
	})
	return bundle, nil
}

// selectCandidate returns the first candidate whose house number matches the
// input's leading house number under normalization. When none matches, the
// first-ranked candidate is used and the match is reported as unverified.
func selectCandidate(address string, candidates []geocode.Candidate) (geocode.Candidate, bool) {
	want := NormalizeHouseNumber(leadingHouseNumber(address))
	if want != "" {
		for _, c := range candidates {
			if NormalizeHouseNumber(c.HouseNumber) == want {
				return c, true
			}
		}
	}
	return candidates[0], false
}

// leadingHouseNumber extracts the house-number token from the front of a
// free-text address. Tokens like "30-56" (Queens hyphenated numbers) and
// "143A" count; an address that opens with a street name yields "".
func leadingHouseNumber(address string) string {
	fields := strings.Fields(address)
	if len(fields) == 0 {
		return ""
	}
	token := fields[0]
	if token == "" || !unicode.IsDigit(rune(token[0])) {
		return ""
	}
	return token
}

// NormalizeHouseNumber strips hyphens and internal spaces and uppercases the
// token so variants like "30-56" and "3056" compare equal.
func NormalizeHouseNumber(token string) string {
	token = strings.ReplaceAll(token, "-", "")
	token = strings.ReplaceAll(token, " ", "")
	return strings.ToUpper(token)
}

// deriveBlockLot splits a ten-digit borough/block/lot parcel id into its
// block and lot components with leading zeros stripped. Anything that does
// not look like a BBL leaves the bundle untouched.
func deriveBlockLot(bundle *models.IdentifierBundle) {
	bbl := bundle.ParcelID
	if len(bbl) != 10 || !isDigits(bbl) {
		return
	}
	bundle.Block = strings.TrimLeft(bbl[1:6], "0")
	bundle.Lot = strings.TrimLeft(bbl[6:], "0")
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
