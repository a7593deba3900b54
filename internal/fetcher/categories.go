// internal/fetcher/categories.go
package fetcher

import (
	"compliance-engine/internal/models"
	"compliance-engine/internal/registry"
)

// Strategy kinds, in the vocabulary of identifiers a registry understands.
const (
	StrategyPrimary          = "primary-id"
	StrategyParcel           = "parcel-id"
	StrategyBlockLot         = "block-lot"
	StrategySubdivisionBlock = "subdivision-block"
)

// CategorySpec describes one regulatory category: which dataset holds it,
// which columns carry the identifiers each strategy keys on, a base filter
// applied to every strategy, and the strategy order to walk. A strategy whose
// column or bundle identifier is absent is skipped, not attempted.
type CategorySpec struct {
	Name    string
	Dataset string
	Role    models.CategoryRole

	PrimaryField     string
	ParcelField      string
	BlockField       string
	LotField         string
	SubdivisionField string

	BaseFilter registry.Filter
	Strategies []string
}

// NYCCategories lists the categories consulted for a New York City report.
// Strategy orders and base filters mirror how each dataset is keyed: HPD and
// DOB rows carry the full identifier set, boiler rows only a building id.
func NYCCategories() []CategorySpec {
	return []CategorySpec{
		{
			Name:        "hpd_violations",
			Dataset:     "hpd_violations",
			Role:        models.RoleViolations,
			PrimaryField: "bin",
			ParcelField:  "bbl",
			BlockField:   "block",
			LotField:     "lot",
			BaseFilter:   registry.Eq{Field: "violationstatus", Value: "Open"},
			Strategies:   []string{StrategyPrimary, StrategyParcel, StrategyBlockLot},
		},
		{
			Name:        "dob_violations",
			Dataset:     "dob_violations",
			Role:        models.RoleViolations,
			PrimaryField: "bin",
			ParcelField:  "bbl",
			BlockField:   "block",
			LotField:     "lot",
			BaseFilter:   registry.Contains{Field: "violation_category", Value: "ACTIVE"},
			Strategies:   []string{StrategyPrimary, StrategyParcel, StrategyBlockLot},
		},
		{
			Name:        "elevator_inspections",
			Dataset:     "elevator_inspections",
			Role:        models.RoleInspections,
			PrimaryField: "bin",
			BlockField:   "block",
			LotField:     "lot",
			Strategies:   []string{StrategyPrimary, StrategyBlockLot},
		},
		{
			Name:        "boiler_inspections",
			Dataset:     "boiler_inspections",
			Role:        models.RoleInspections,
			PrimaryField: "bin_number",
			Strategies:   []string{StrategyPrimary},
		},
		{
			Name:            "electrical_permits",
			Dataset:         "electrical_permits",
			Role:            models.RolePermits,
			PrimaryField:    "bin",
			BlockField:      "block",
			SubdivisionField: "borough",
			Strategies:      []string{StrategyPrimary, StrategySubdivisionBlock},
		},
	}
}

// PhillyCategories lists the categories consulted for a Philadelphia report.
// Every L&I dataset keys on the OPA account number, so the parcel strategy is
// the only one available.
func PhillyCategories() []CategorySpec {
	return []CategorySpec{
		{
			Name:       "li_violations",
			Dataset:    "li_violations",
			Role:       models.RoleViolations,
			ParcelField: "opa_account_num",
			Strategies:  []string{StrategyParcel},
		},
		{
			Name:       "li_permits",
			Dataset:    "li_permits",
			Role:       models.RolePermits,
			ParcelField: "opa_account_num",
			Strategies:  []string{StrategyParcel},
		},
		{
			Name:       "li_investigations",
			Dataset:    "li_investigations",
			Role:       models.RoleInspections,
			ParcelField: "opa_account_num",
			Strategies:  []string{StrategyParcel},
		},
		{
			Name:       "li_certifications",
			Dataset:    "li_certifications",
			Role:       models.RoleCertifications,
			ParcelField: "OPA_ACCOUNT_NUM",
			Strategies:  []string{StrategyParcel},
		},
	}
}

// Roles indexes category names by role for the scorer.
func Roles(specs []CategorySpec) map[string]models.CategoryRole {
	roles := make(map[string]models.CategoryRole, len(specs))
	for _, spec := range specs {
		roles[spec.Name] = spec.Role
	}
	return roles
}
