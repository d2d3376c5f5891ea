package ingestion

import (
	"testing"

	"go-afetyardim/types"

	"github.com/stretchr/testify/assert"
)

func TestValidateStatuses(t *testing.T) {
	valid := GenerateStatuses(types.LevelUnknown, types.LevelNeedRequired, types.LevelUrgentNeedRequired, types.LevelNoNeedRequired)
	reordered := []types.SiteStatus{valid[3], valid[1], valid[0], valid[2]}

	tests := []struct {
		name     string
		statuses []types.SiteStatus
		wantErr  bool
	}{
		{"generated", valid, false},
		{"any order", reordered, false},
		{"empty", nil, true},
		{"single entry", []types.SiteStatus{{Type: types.Food, Level: types.LevelNoNeedRequired}}, true},
		{"duplicate type", []types.SiteStatus{
			{Type: types.Material, Level: types.LevelUnknown},
			{Type: types.Food, Level: types.LevelUnknown},
			{Type: types.Food, Level: types.LevelNeedRequired},
			{Type: types.Package, Level: types.LevelUnknown},
		}, true},
		{"unknown type", []types.SiteStatus{
			{Type: types.Material, Level: types.LevelUnknown},
			{Type: types.HumanHelp, Level: types.LevelUnknown},
			{Type: types.Food, Level: types.LevelUnknown},
			{Type: "WATER", Level: types.LevelUnknown},
		}, true},
		{"unknown level", []types.SiteStatus{
			{Type: types.Material, Level: types.LevelUnknown},
			{Type: types.HumanHelp, Level: types.LevelUnknown},
			{Type: types.Food, Level: "BOGUS"},
			{Type: types.Package, Level: types.LevelUnknown},
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStatuses(tt.statuses)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidStatuses)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
