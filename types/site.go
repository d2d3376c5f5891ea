package types

import "time"

type ActiveStatus string

const (
	ActiveStatusActive    ActiveStatus = "ACTIVE"
	ActiveStatusNotActive ActiveStatus = "NOT_ACTIVE"
	ActiveStatusUnknown   ActiveStatus = "UNKNOWN"
)

type SiteStatusType string

const (
	Material  SiteStatusType = "MATERIAL"
	HumanHelp SiteStatusType = "HUMAN_HELP"
	Food      SiteStatusType = "FOOD"
	Package   SiteStatusType = "PACKAGE"
)

type SiteStatusLevel string

const (
	LevelUnknown            SiteStatusLevel = "UNKNOWN"
	LevelNoNeedRequired     SiteStatusLevel = "NO_NEED_REQUIRED"
	LevelNeedRequired       SiteStatusLevel = "NEED_REQUIRED"
	LevelUrgentNeedRequired SiteStatusLevel = "URGENT_NEED_REQUIRED"
)

// SiteStatus is the need level of a single resource category.
type SiteStatus struct {
	Type  SiteStatusType  `firestore:"siteStatusType" json:"siteStatusType"`
	Level SiteStatusLevel `firestore:"siteStatusLevel" json:"siteStatusLevel"`
}

// SiteUpdate is one entry of a site's history. Never modified once appended.
type SiteUpdate struct {
	Update         string       `firestore:"update" json:"update"`
	CreateDateTime time.Time    `firestore:"createDateTime" json:"createDateTime"`
	SiteStatuses   []SiteStatus `firestore:"siteStatuses" json:"siteStatuses"`
}

// Site is a disaster relief collection site.
//
// The update history is append only: it can be read through Updates and
// LastUpdate and grown through AppendUpdate, nothing else touches it.
type Site struct {
	ID               string
	Name             string
	Description      string
	Location         Location
	Active           bool
	ActiveStatus     ActiveStatus
	LastSiteStatuses []SiteStatus
	CreateDateTime   time.Time

	updates []SiteUpdate
}

// SetActiveStatus keeps Active in sync with ActiveStatus.
func (s *Site) SetActiveStatus(status ActiveStatus) {
	s.ActiveStatus = status
	s.Active = status == ActiveStatusActive
}

// AppendUpdate adds u to the end of the history.
func (s *Site) AppendUpdate(u SiteUpdate) {
	u.SiteStatuses = append([]SiteStatus(nil), u.SiteStatuses...)
	s.updates = append(s.updates, u)
}

// Updates returns a copy of the history, oldest first.
func (s *Site) Updates() []SiteUpdate {
	out := make([]SiteUpdate, len(s.updates))
	copy(out, s.updates)
	return out
}

// LastUpdate returns the most recent update, if any.
func (s *Site) LastUpdate() (SiteUpdate, bool) {
	if len(s.updates) == 0 {
		return SiteUpdate{}, false
	}
	return s.updates[len(s.updates)-1], true
}

// HadUpdateWithin reports whether the latest update is newer than now-window.
func (s *Site) HadUpdateWithin(window time.Duration, now time.Time) bool {
	last, ok := s.LastUpdate()
	if !ok {
		return false
	}
	return last.CreateDateTime.After(now.Add(-window))
}
