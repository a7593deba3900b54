// internal/normalizer/normalizer.go

// Package normalizer maps raw registry rows onto the canonical record shape.
// Each category carries a field map listing, per canonical field, the source
// column names to try in priority order; everything unclaimed survives in the
// record's Extra map for display.
package normalizer

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"compliance-engine/internal/models"
	"compliance-engine/internal/registry"
)

// FieldMap lists candidate source column names per canonical field.
type FieldMap struct {
	ID          []string
	Status      []string
	Date        []string
	Description []string
	BuildingID  []string
	ParcelID    []string
	Block       []string
	Lot         []string
}

// Normalizer translates raw rows into normalized records using per-category
// field maps.
type Normalizer struct {
	maps map[string]FieldMap
}

func New(maps map[string]FieldMap) *Normalizer {
	return &Normalizer{maps: maps}
}

// Normalize maps one raw row. A category with no registered field map yields
// a record whose canonical fields are empty and whose Extra holds everything.
func (n *Normalizer) Normalize(category string, raw registry.Record) models.NormalizedRecord {
	fm := n.maps[category]
	claimed := make(map[string]bool)

	pick := func(names []string) string {
		for _, name := range names {
			if value, ok := raw[name]; ok {
				claimed[name] = true
				if s := Stringify(value); s != "" {
					return s
				}
			}
		}
		return ""
	}

	record := models.NormalizedRecord{
		ID:          pick(fm.ID),
		Status:      pick(fm.Status),
		Date:        toDateString(pick(fm.Date)),
		Description: pick(fm.Description),
		BuildingID:  pick(fm.BuildingID),
		ParcelID:    pick(fm.ParcelID),
		Block:       pick(fm.Block),
		Lot:         pick(fm.Lot),
	}

	for key, value := range raw {
		if claimed[key] {
			continue
		}
		if s := Stringify(value); s != "" {
			if record.Extra == nil {
				record.Extra = make(map[string]string)
			}
			record.Extra[key] = s
		}
	}
	return record
}

// NormalizeAll maps a slice of raw rows.
func (n *Normalizer) NormalizeAll(category string, rows []registry.Record) []models.NormalizedRecord {
	records := make([]models.NormalizedRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, n.Normalize(category, row))
	}
	return records
}

// Stringify renders a raw JSON value as a display string. Whole-number
// floats lose their trailing ".0" so numeric ids survive round-tripping.
func Stringify(value interface{}) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// toDateString converts epoch-millisecond timestamps (ArcGIS date fields)
// into an ISO date. Values already shaped like dates pass through unchanged.
func toDateString(value string) string {
	if value == "" {
		return value
	}
	millis, err := strconv.ParseInt(value, 10, 64)
	if err != nil || millis < 1e11 {
		return value
	}
	return time.UnixMilli(millis).UTC().Format("2006-01-02")
}
