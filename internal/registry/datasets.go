// internal/registry/datasets.go
package registry

import (
	commonerrors "compliance-engine/internal/common/errors"
)

// Registry dialects supported by the gateway layer.
const (
	DialectSocrata = "socrata"
	DialectCarto   = "carto"
	DialectArcGIS  = "arcgis"
)

// Dataset describes one queryable registry dataset. Resource is the
// dialect-specific locator: a Socrata dataset id, a Carto table name, or an
// ArcGIS layer path relative to the feature-service root.
type Dataset struct {
	Key      string
	Resource string
	Dialect  string
	Name     string
}

// Catalogue maps dataset keys to their locations. Lookups of unknown keys
// fail with a typed error instead of issuing a malformed query.
type Catalogue struct {
	datasets map[string]Dataset
}

func NewCatalogue(datasets ...Dataset) *Catalogue {
	byKey := make(map[string]Dataset, len(datasets))
	for _, ds := range datasets {
		byKey[ds.Key] = ds
	}
	return &Catalogue{datasets: byKey}
}

// Get returns the dataset registered under key.
func (c *Catalogue) Get(key string) (Dataset, error) {
	ds, ok := c.datasets[key]
	if !ok {
		return Dataset{}, commonerrors.NewUnknownDatasetError(key)
	}
	return ds, nil
}

// Keys lists all registered dataset keys.
func (c *Catalogue) Keys() []string {
	keys := make([]string, 0, len(c.datasets))
	for k := range c.datasets {
		keys = append(keys, k)
	}
	return keys
}

// NYCCatalogue lists the New York City open-data datasets consulted for a
// compliance report.
func NYCCatalogue() *Catalogue {
	return NewCatalogue(
		Dataset{Key: "hpd_violations", Resource: "wvxf-dwi5", Dialect: DialectSocrata, Name: "HPD Housing Violations"},
		Dataset{Key: "dob_violations", Resource: "3h2n-5cm9", Dialect: DialectSocrata, Name: "DOB Building Violations"},
		Dataset{Key: "elevator_inspections", Resource: "e5aq-a4j2", Dialect: DialectSocrata, Name: "Elevator Inspections"},
		Dataset{Key: "boiler_inspections", Resource: "52dp-yji6", Dialect: DialectSocrata, Name: "Boiler Inspections"},
		Dataset{Key: "electrical_permits", Resource: "dm9a-ab7w", Dialect: DialectSocrata, Name: "Electrical Permits"},
	)
}

// PhillyCatalogue lists the Philadelphia L&I datasets consulted for a
// compliance report. Most live in the city's Carto SQL warehouse; building
// certifications are only published through an ArcGIS feature service.
func PhillyCatalogue() *Catalogue {
	return NewCatalogue(
		Dataset{Key: "li_permits", Resource: "permits", Dialect: DialectCarto, Name: "L&I Permits"},
		Dataset{Key: "li_violations", Resource: "violations", Dialect: DialectCarto, Name: "L&I Violations"},
		Dataset{Key: "li_investigations", Resource: "case_investigations", Dialect: DialectCarto, Name: "L&I Case Investigations"},
		Dataset{Key: "li_certifications", Resource: "LI_BUILDING_CERTS/FeatureServer/0", Dialect: DialectArcGIS, Name: "L&I Building Certifications"},
	)
}
