package ingestion

import (
	"errors"
	"fmt"

	"go-afetyardim/types"
)

var ErrInvalidStatuses = errors.New("invalid site statuses")

var statusTypes = []types.SiteStatusType{types.Material, types.HumanHelp, types.Food, types.Package}

var statusLevels = map[types.SiteStatusLevel]bool{
	types.LevelUnknown:            true,
	types.LevelNoNeedRequired:     true,
	types.LevelNeedRequired:       true,
	types.LevelUrgentNeedRequired: true,
}

// GenerateStatuses builds the four category snapshot of a site.
func GenerateStatuses(material, human, food, pkg types.SiteStatusLevel) []types.SiteStatus {
	return []types.SiteStatus{
		{Type: types.Material, Level: material},
		{Type: types.HumanHelp, Level: human},
		{Type: types.Food, Level: food},
		{Type: types.Package, Level: pkg},
	}
}

// ValidateStatuses accepts exactly one known level per category, in any order.
func ValidateStatuses(statuses []types.SiteStatus) error {
	if len(statuses) != len(statusTypes) {
		return fmt.Errorf("%w: want %d entries, got %d", ErrInvalidStatuses, len(statusTypes), len(statuses))
	}

	seen := make(map[types.SiteStatusType]bool, len(statuses))
	for _, s := range statuses {
		if seen[s.Type] {
			return fmt.Errorf("%w: duplicate type %s", ErrInvalidStatuses, s.Type)
		}
		seen[s.Type] = true
		if !statusLevels[s.Level] {
			return fmt.Errorf("%w: unknown level %q for %s", ErrInvalidStatuses, s.Level, s.Type)
		}
	}
	for _, t := range statusTypes {
		if !seen[t] {
			return fmt.Errorf("%w: missing type %s", ErrInvalidStatuses, t)
		}
	}
	return nil
}

func statusesFromTriplet(t *Triplet) []types.SiteStatus {
	return GenerateStatuses(
		ClassifyNeed(t.NeedColors[0]),
		ClassifyNeed(t.NeedColors[1]),
		ClassifyNeed(t.NeedColors[2]),
		ClassifyNeed(t.NeedColors[3]),
	)
}
