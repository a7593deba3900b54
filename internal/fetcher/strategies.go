// internal/fetcher/strategies.go
package fetcher

import (
	"strings"

	"compliance-engine/internal/models"
	"compliance-engine/internal/registry"
)

// strategy is one executable query attempt for a category.
type strategy struct {
	Kind   string
	Filter registry.Filter
}

// buildStrategies walks the category's strategy order and keeps only the
// strategies whose identifier is present in both the bundle and the dataset.
// Each returned filter already includes the category's base filter.
func buildStrategies(spec CategorySpec, bundle models.IdentifierBundle) []strategy {
	strategies := make([]strategy, 0, len(spec.Strategies))
	for _, kind := range spec.Strategies {
		var key registry.Filter
		switch kind {
		case StrategyPrimary:
			if spec.PrimaryField != "" && bundle.BuildingID != "" {
				key = registry.Eq{Field: spec.PrimaryField, Value: bundle.BuildingID}
			}
		case StrategyParcel:
			if spec.ParcelField != "" && bundle.ParcelID != "" {
				key = registry.Eq{Field: spec.ParcelField, Value: bundle.ParcelID}
			}
		case StrategyBlockLot:
			if spec.BlockField != "" && spec.LotField != "" && bundle.HasBlockLot() {
				key = registry.AndOf(
					registry.Eq{Field: spec.BlockField, Value: bundle.Block},
					registry.Eq{Field: spec.LotField, Value: bundle.Lot},
				)
			}
		case StrategySubdivisionBlock:
			if spec.SubdivisionField != "" && spec.BlockField != "" &&
				bundle.Subdivision != "" && bundle.Block != "" {
				key = registry.AndOf(
					registry.Eq{Field: spec.SubdivisionField, Value: strings.ToUpper(bundle.Subdivision)},
					registry.Eq{Field: spec.BlockField, Value: bundle.Block},
				)
			}
		}
		if key == nil {
			continue
		}
		strategies = append(strategies, strategy{
			Kind:   kind,
			Filter: registry.AndOf(spec.BaseFilter, key),
		})
	}
	return strategies
}
