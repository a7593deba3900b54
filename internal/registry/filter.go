// internal/registry/filter.go
package registry

import (
	"fmt"
	"strings"
)

// Filter is a small tagged-variant expression tree rendered into each
// registry dialect's filter syntax. Building filters from variants instead of
// raw string concatenation keeps user input out of query text.
type Filter interface {
	isFilter()
}

// Eq matches rows whose field equals the value exactly.
type Eq struct {
	Field string
	Value string
}

// Contains matches rows whose field contains the value as a substring.
type Contains struct {
	Field string
	Value string
}

// Gte matches rows whose field is lexically/chronologically >= the value.
type Gte struct {
	Field string
	Value string
}

// And is the conjunction of its child filters.
type And struct {
	Filters []Filter
}

func (Eq) isFilter()       {}
func (Contains) isFilter() {}
func (Gte) isFilter()      {}
func (And) isFilter()      {}

// AndOf builds a conjunction, flattening out nil children.
func AndOf(filters ...Filter) Filter {
	kept := make([]Filter, 0, len(filters))
	for _, f := range filters {
		if f != nil {
			kept = append(kept, f)
		}
	}
	switch len(kept) {
	case 0:
		return nil
	case 1:
		return kept[0]
	default:
		return And{Filters: kept}
	}
}

// quote escapes embedded single quotes and wraps the value for SQL-ish
// dialects. All three supported dialects use the same quoting rule.
func quote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "''") + "'"
}

// RenderSoQL renders the filter as a Socrata $where expression.
func RenderSoQL(f Filter) string {
	switch v := f.(type) {
	case nil:
		return ""
	case Eq:
		return fmt.Sprintf("%s = %s", v.Field, quote(v.Value))
	case Contains:
		return fmt.Sprintf("%s like %s", v.Field, quote("%"+v.Value+"%"))
	case Gte:
		return fmt.Sprintf("%s >= %s", v.Field, quote(v.Value))
	case And:
		return renderConjunction(v, RenderSoQL)
	default:
		return ""
	}
}

// RenderSQL renders the filter as a Carto SQL WHERE clause.
func RenderSQL(f Filter) string {
	switch v := f.(type) {
	case nil:
		return ""
	case Eq:
		return fmt.Sprintf("%s = %s", v.Field, quote(v.Value))
	case Contains:
		return fmt.Sprintf("%s ILIKE %s", v.Field, quote("%"+v.Value+"%"))
	case Gte:
		return fmt.Sprintf("%s >= %s", v.Field, quote(v.Value))
	case And:
		return renderConjunction(v, RenderSQL)
	default:
		return ""
	}
}

// RenderArcGIS renders the filter as an ArcGIS feature-service where clause.
func RenderArcGIS(f Filter) string {
	switch v := f.(type) {
	case nil:
		return "1=1"
	case Eq:
		return fmt.Sprintf("%s = %s", v.Field, quote(v.Value))
	case Contains:
		return fmt.Sprintf("%s LIKE %s", v.Field, quote("%"+v.Value+"%"))
	case Gte:
		return fmt.Sprintf("%s >= %s", v.Field, quote(v.Value))
	case And:
		return renderConjunction(v, RenderArcGIS)
	default:
		return "1=1"
	}
}

func renderConjunction(a And, render func(Filter) string) string {
	parts := make([]string, 0, len(a.Filters))
	for _, child := range a.Filters {
		if rendered := render(child); rendered != "" {
			parts = append(parts, rendered)
		}
	}
	return strings.Join(parts, " AND ")
}
