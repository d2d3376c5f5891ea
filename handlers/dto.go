package handlers

import (
	"time"

	"go-afetyardim/types"
)

// SiteView is the full site with its history, served by GET /sites.
type SiteView struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Description      string             `json:"description"`
	Location         types.Location     `json:"location"`
	Active           bool               `json:"active"`
	ActiveStatus     types.ActiveStatus `json:"activeStatus"`
	LastSiteStatuses []types.SiteStatus `json:"lastSiteStatuses"`
	Updates          []types.SiteUpdate `json:"updates"`
	CreateDateTime   time.Time          `json:"createDateTime"`
}

// SiteDTO is the compact listing served by GET /sites/v2.
type SiteDTO struct {
	ID               string             `json:"id"`
	Name             string             `json:"name"`
	Location         types.Location     `json:"location"`
	ActiveStatus     types.ActiveStatus `json:"activeStatus"`
	LastSiteStatuses []types.SiteStatus `json:"lastSiteStatuses"`
	LastUpdate       string             `json:"lastUpdate,omitempty"`
	LastUpdateTime   *time.Time         `json:"lastUpdateTime,omitempty"`
}

type NearbySite struct {
	SiteDTO
	DistanceKM float64 `json:"distanceKm"`
}

func toSiteView(s *types.Site) SiteView {
	statuses := s.LastSiteStatuses
	if statuses == nil {
		statuses = []types.SiteStatus{}
	}
	return SiteView{
		ID:               s.ID,
		Name:             s.Name,
		Description:      s.Description,
		Location:         s.Location,
		Active:           s.Active,
		ActiveStatus:     s.ActiveStatus,
		LastSiteStatuses: statuses,
		Updates:          s.Updates(),
		CreateDateTime:   s.CreateDateTime,
	}
}

func toSiteDTO(s *types.Site) SiteDTO {
	dto := SiteDTO{
		ID:               s.ID,
		Name:             s.Name,
		Location:         s.Location,
		ActiveStatus:     s.ActiveStatus,
		LastSiteStatuses: s.LastSiteStatuses,
	}
	if dto.LastSiteStatuses == nil {
		dto.LastSiteStatuses = []types.SiteStatus{}
	}
	if last, ok := s.LastUpdate(); ok {
		dto.LastUpdate = last.Update
		t := last.CreateDateTime
		dto.LastUpdateTime = &t
	}
	return dto
}
