package normalizer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"compliance-engine/internal/registry"
)

func TestNormalizeHPDViolation(t *testing.T) {
	n := New(NYCFieldMaps())

	record := n.Normalize("hpd_violations", registry.Record{
		"violationid":     "10564352",
		"violationstatus": "Open",
		"inspectiondate":  "2024-11-02T00:00:00.000",
		"novdescription":  "SECTION 27-2005 ADM CODE REPAIR THE BROKEN FIRE DOOR",
		"bin":             "1001026",
		"bbl":             "1000835041",
		"block":           "835",
		"lot":             "41",
		"apartment":       "4B",
	})

	assert.Equal(t, "10564352", record.ID)
	assert.Equal(t, "Open", record.Status)
	assert.Equal(t, "1001026", record.BuildingID)
	assert.Equal(t, "1000835041", record.ParcelID)
	assert.Equal(t, "835", record.Block)
	assert.Equal(t, "4B", record.Extra["apartment"])
	assert.NotContains(t, record.Extra, "violationid")
}

func TestNormalizeFallsBackThroughCandidateColumns(t *testing.T) {
	n := New(NYCFieldMaps())

	record := n.Normalize("dob_violations", registry.Record{
		"number":             "V-2023-00123",
		"violation_category": "V*-DOB VIOLATION - ACTIVE",
		"violation_type":     "CONSTRUCTION",
		"issue_date":         "20230515",
	})

	assert.Equal(t, "V-2023-00123", record.ID)
	assert.Equal(t, "CONSTRUCTION", record.Description)
}

func TestNormalizeUnknownCategoryKeepsEverythingInExtra(t *testing.T) {
	n := New(NYCFieldMaps())

	record := n.Normalize("mystery", registry.Record{"foo": "bar"})

	assert.Empty(t, record.ID)
	assert.Equal(t, "bar", record.Extra["foo"])
}

func TestNormalizeArcGISEpochDates(t *testing.T) {
	n := New(PhillyFieldMaps())

	record := n.Normalize("li_certifications", registry.Record{
		"CERT_ID":         float64(44781),
		"CERT_TYPE":       "FIRE ALARM",
		"STATUS":          "EXPIRED",
		"EXPIRATION_DATE": float64(1706745600000),
		"OPA_ACCOUNT_NUM": "888058583",
	})

	assert.Equal(t, "44781", record.ID)
	assert.Equal(t, "2024-02-01", record.Date)
	assert.Equal(t, "FIRE ALARM", record.Description)
}

func TestNormalizeAll(t *testing.T) {
	n := New(PhillyFieldMaps())

	records := n.NormalizeAll("li_permits", []registry.Record{
		{"permitnumber": "P-001", "status": "COMPLETED"},
		{"permitnumber": "P-002", "status": "ACTIVE"},
	})

	require.Len(t, records, 2)
	assert.Equal(t, "P-001", records[0].ID)
	assert.Equal(t, "ACTIVE", records[1].Status)
}

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "835", Stringify(float64(835)))
	assert.Equal(t, "83.5", Stringify(83.5))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "open", Stringify("open"))
}
