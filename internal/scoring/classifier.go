// internal/scoring/classifier.go

// Package scoring computes the 0-100 compliance score from fetched category
// results. Classification and weights are data-driven so a jurisdiction can
// tune them in config without code changes.
package scoring

import (
	"strings"

	"compliance-engine/internal/common/config"
)

// CategoryOther is assigned when no keyword rule matches a description.
const CategoryOther = "other"

// Classifier buckets a violation description into a risk category by walking
// the keyword rules in declaration order. Rule order is precedence: a
// description mentioning both fire and plumbing classifies as fire.
type Classifier struct {
	rules []config.KeywordRule
}

func NewClassifier(rules []config.KeywordRule) *Classifier {
	return &Classifier{rules: rules}
}

// Classify returns the risk category for a description.
func (c *Classifier) Classify(description string) string {
	upper := strings.ToUpper(description)
	for _, rule := range c.rules {
		for _, term := range rule.Terms {
			if strings.Contains(upper, term) {
				return rule.Category
			}
		}
	}
	return CategoryOther
}
