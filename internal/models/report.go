// internal/models/report.go
package models

import "time"

// DataStatus disambiguates a degenerate perfect score (nothing found in any
// category) from a property with real, clean data.
type DataStatus string

const (
	DataStatusOK           DataStatus = "ok"
	DataStatusInsufficient DataStatus = "insufficient-data"
)

// Scores summarizes the computed risk score together with the per-category
// counts a consumer needs to judge how much data backs it.
type Scores struct {
	OverallScore   int            `json:"overall_score"`
	CategoryCounts map[string]int `json:"category_counts"`
}

// ComplianceReport is the immutable result of one pipeline run. Each run
// produces a fresh report; nothing accumulates across calls.
type ComplianceReport struct {
	Success      bool                          `json:"success"`
	ReportID     string                        `json:"report_id"`
	Jurisdiction string                        `json:"jurisdiction"`
	Property     IdentifierBundle              `json:"property"`
	Scores       Scores                        `json:"scores"`
	Data         map[string][]NormalizedRecord `json:"data"`
	DataStatus   DataStatus                    `json:"data_status"`
	GeneratedAt  time.Time                     `json:"generated_at"`
}
