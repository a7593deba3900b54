// internal/scoring/scorer.go
package scoring

import (
	"strings"
	"time"

	"compliance-engine/internal/common/config"
	"compliance-engine/internal/models"
)

// Scorer computes the compliance score for one property's fetched results.
// The score starts at 100; open violations subtract their category weight,
// recent permits and active certifications claw back a capped bonus, expired
// certifications subtract a flat penalty. The result clamps to [0, 100].
type Scorer struct {
	cfg        config.ScoringConfig
	classifier *Classifier
	now        func() time.Time
}

func New(cfg config.ScoringConfig) *Scorer {
	return NewWithClock(cfg, time.Now)
}

// NewWithClock injects the clock so recency windows are testable.
func NewWithClock(cfg config.ScoringConfig, now func() time.Time) *Scorer {
	return &Scorer{
		cfg:        cfg,
		classifier: NewClassifier(cfg.Keywords),
		now:        now,
	}
}

// Score folds every category result into the overall score and per-category
// counts. Roles decide how each category contributes; categories without a
// role inform counts only.
func (s *Scorer) Score(results []models.CategoryResult, roles map[string]models.CategoryRole) models.Scores {
	score := 100
	counts := make(map[string]int, len(results))

	for _, result := range results {
		switch roles[result.Category] {
		case models.RoleViolations:
			open := 0
			for _, record := range result.Records {
				if !s.isOpen(record.Status) {
					continue
				}
				open++
				score -= s.weightFor(s.classifier.Classify(record.Description))
			}
			counts[result.Category] = open

		case models.RolePermits:
			recent := 0
			for _, record := range result.Records {
				if s.isRecent(record.Date) {
					recent++
				}
			}
			score += capped(s.cfg.PermitBonus*recent, s.cfg.PermitBonusCap)
			counts[result.Category] = len(result.Records)

		case models.RoleCertifications:
			expired, active := 0, 0
			for _, record := range result.Records {
				switch s.certState(record) {
				case certExpired:
					expired++
				case certActive:
					active++
				}
			}
			score -= s.cfg.CertPenalty * expired
			score += capped(s.cfg.CertBonus*active, s.cfg.CertBonusCap)
			counts[result.Category] = len(result.Records)

		default:
			counts[result.Category] = len(result.Records)
		}
	}

	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return models.Scores{OverallScore: score, CategoryCounts: counts}
}

func (s *Scorer) weightFor(category string) int {
	if w, ok := s.cfg.Weights[category]; ok {
		return w
	}
	return s.cfg.DefaultWeight
}

// isOpen matches the record status against the configured open markers.
// Substring matching handles composite statuses like "V*-DOB VIOLATION - ACTIVE".
func (s *Scorer) isOpen(status string) bool {
	upper := strings.ToUpper(status)
	for _, open := range s.cfg.OpenStatuses {
		if strings.Contains(upper, open) {
			return true
		}
	}
	return false
}

func (s *Scorer) isRecent(date string) bool {
	t, ok := parseDate(date)
	if !ok {
		return false
	}
	age := s.now().Sub(t)
	return age >= 0 && age <= time.Duration(s.cfg.RecentDays)*24*time.Hour
}

type certStatus int

const (
	certUnknown certStatus = iota
	certActive
	certExpired
)

var (
	expiredStatuses = []string{"EXPIRED", "INACTIVE", "VOID"}
	activeStatuses  = []string{"ACTIVE", "CURRENT", "VALID", "COMPLIED"}
)

// certState reads the certification's status first and falls back to its
// expiration date when the status is unrecognized.
func (s *Scorer) certState(record models.NormalizedRecord) certStatus {
	upper := strings.ToUpper(record.Status)
	for _, marker := range expiredStatuses {
		if strings.Contains(upper, marker) {
			return certExpired
		}
	}
	for _, marker := range activeStatuses {
		if strings.Contains(upper, marker) {
			return certActive
		}
	}
	if t, ok := parseDate(record.Date); ok {
		if t.Before(s.now()) {
			return certExpired
		}
		return certActive
	}
	return certUnknown
}

func capped(value, cap int) int {
	if value > cap {
		return cap
	}
	return value
}

var dateLayouts = []string{"2006-01-02", "01/02/2006", "20060102"}

// parseDate accepts the date shapes the registries emit. Timestamps are
// truncated at the 'T' before matching.
func parseDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if idx := strings.IndexByte(value, 'T'); idx > 0 {
		value = value[:idx]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
