package db

import (
	"context"
	"testing"
	"time"

	"go-afetyardim/ingestion"
	"go-afetyardim/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromDoc_RebuildsHistory(t *testing.T) {
	created := time.Date(2023, 2, 10, 8, 0, 0, 0, time.UTC)
	d := siteDoc{
		Name:         "Kızılay Meydanı",
		Location:     types.Location{City: "Ankara", District: "Bilinmiyor"},
		Active:       false,
		ActiveStatus: types.ActiveStatusActive,
		Updates: []types.SiteUpdate{
			{Update: "Battaniye lazım", CreateDateTime: created},
			{Update: "Gıda yeterli", CreateDateTime: created.Add(time.Hour)},
		},
		CreateDateTime: created,
	}

	s := fromDoc("site-1", d)
	assert.Equal(t, "site-1", s.ID)
	assert.True(t, s.Active, "active flag follows the status")
	require.Len(t, s.Updates(), 2)
	last, ok := s.LastUpdate()
	require.True(t, ok)
	assert.Equal(t, "Gıda yeterli", last.Update)

	back := toDoc(s)
	assert.Equal(t, d.Updates, back.Updates)
	assert.True(t, back.Active)
}

func TestFromDoc_MissingStatusIsUnknown(t *testing.T) {
	s := fromDoc("site-2", siteDoc{Name: "Ulus", Active: true})
	assert.Equal(t, types.ActiveStatusUnknown, s.ActiveStatus)
	assert.False(t, s.Active)
	assert.Empty(t, s.Updates())
}

func TestAddSiteUpdate_RejectsIncompleteStatuses(t *testing.T) {
	repo := NewSiteRepository(nil, nil)

	_, err := repo.AddSiteUpdate(context.Background(), "site-1", types.SiteUpdate{
		Update:       "Gıda yeterli",
		SiteStatuses: []types.SiteStatus{{Type: types.Food, Level: types.LevelNoNeedRequired}},
	})
	assert.ErrorIs(t, err, ingestion.ErrInvalidStatuses)
}
