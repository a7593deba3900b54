// internal/models/record.go
package models

// NormalizedRecord is the common shape every registry record is mapped onto.
// Fields the source registry does not populate stay empty; a record with no id
// is still retained because partial data remains informative downstream.
type NormalizedRecord struct {
	ID          string `json:"id,omitempty"`
	Status      string `json:"status,omitempty"`
	Date        string `json:"date,omitempty"`
	Description string `json:"description,omitempty"`
	BuildingID  string `json:"bin,omitempty"`
	ParcelID    string `json:"bbl,omitempty"`
	Block       string `json:"block,omitempty"`
	Lot         string `json:"lot,omitempty"`

	// Extra preserves source fields that have no canonical mapping. They are
	// surfaced for display but never used in scoring.
	Extra map[string]string `json:"extra,omitempty"`
}

// CategoryResult is the outcome of fetching one regulatory category.
type CategoryResult struct {
	Category string             `json:"category"`
	Strategy string             `json:"strategy"`
	Records  []NormalizedRecord `json:"records"`

	// Filtered is set when cross-validation dropped at least one record whose
	// embedded building id disagreed with the bundle's.
	Filtered bool `json:"filtered,omitempty"`
}

// StrategyNoMatch is the strategy label used when every strategy missed.
const StrategyNoMatch = "no-match"
