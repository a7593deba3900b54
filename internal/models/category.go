// internal/models/category.go
package models

// CategoryRole tells the scorer how records in a category contribute to the
// compliance score.
type CategoryRole string

const (
	// RoleViolations categories subtract weighted penalties for open records.
	RoleViolations CategoryRole = "violations"
	// RolePermits categories earn a capped bonus for recent activity.
	RolePermits CategoryRole = "permits"
	// RoleCertifications categories penalize expired and reward active certs.
	RoleCertifications CategoryRole = "certifications"
	// RoleInspections categories inform counts only, never the score.
	RoleInspections CategoryRole = "inspections"
)
