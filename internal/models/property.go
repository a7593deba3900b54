// internal/models/property.go
package models

// IdentifierBundle holds the canonical jurisdiction identifiers resolved from
// a free-text address. Any field other than Address may be empty; a registry
// query is only attempted when BuildingID or ParcelID is populated.
type IdentifierBundle struct {
	BuildingID  string `json:"bin,omitempty"`
	ParcelID    string `json:"bbl,omitempty"`
	Block       string `json:"block,omitempty"`
	Lot         string `json:"lot,omitempty"`
	Subdivision string `json:"borough,omitempty"`
	Address     string `json:"address"`

	// Unverified is set when no geocoder candidate reproduced the input
	// house number and the first-ranked candidate was used instead.
	Unverified bool `json:"unverifiedMatch,omitempty"`
}

// HasQueryableKey reports whether at least one of the identifiers a registry
// can be queried by is present.
func (b IdentifierBundle) HasQueryableKey() bool {
	return b.BuildingID != "" || b.ParcelID != ""
}

// HasBlockLot reports whether the block/lot fallback pair is usable.
func (b IdentifierBundle) HasBlockLot() bool {
	return b.Block != "" && b.Lot != ""
}
