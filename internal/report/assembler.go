// internal/report/assembler.go

// Package report runs the full pipeline for one request: resolve the address,
// fetch every category, score the results, and assemble the payload. Each
// request produces a fresh report; nothing is persisted between runs.
package report

import (
	"time"

	"github.com/google/uuid"

	"compliance-engine/internal/models"
)

// Assembler builds the final report payload. The display cap bounds how many
// records each category carries; counts and scores are computed before the
// cap applies, so truncation never changes the score.
type Assembler struct {
	displayCap int
	newID      func() string
	now        func() time.Time
}

func NewAssembler(displayCap int) *Assembler {
	if displayCap <= 0 {
		displayCap = 50
	}
	return &Assembler{
		displayCap: displayCap,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// NewAssemblerWithClock injects id and clock sources for deterministic tests.
func NewAssemblerWithClock(displayCap int, newID func() string, now func() time.Time) *Assembler {
	a := NewAssembler(displayCap)
	a.newID = newID
	a.now = now
	return a
}

// Assemble produces the report for one pipeline run.
func (a *Assembler) Assemble(jurisdiction string, bundle models.IdentifierBundle, results []models.CategoryResult, scores models.Scores) *models.ComplianceReport {
	data := make(map[string][]models.NormalizedRecord, len(results))
	total := 0
	for _, result := range results {
		records := result.Records
		total += len(records)
		if len(records) > a.displayCap {
			records = records[:a.displayCap]
		}
		data[result.Category] = records
	}

	status := models.DataStatusOK
	if total == 0 {
		status = models.DataStatusInsufficient
	}

	return &models.ComplianceReport{
		Success:      true,
		ReportID:     a.newID(),
		Jurisdiction: jurisdiction,
		Property:     bundle,
		Scores:       scores,
		Data:         data,
		DataStatus:   status,
		GeneratedAt:  a.now().UTC(),
	}
}
