package ingestion

import (
	"time"

	"go-afetyardim/types"
)

const noteSeparator = " - "

func ConcatNote(activeNote, note string) string {
	return activeNote + noteSeparator + note
}

// NewSiteUpdate returns the update to append to site, or false when the text
// is the same as the site's latest update. Comparison is verbatim.
func NewSiteUpdate(site *types.Site, statuses []types.SiteStatus, activeNote, note string, now time.Time) (types.SiteUpdate, bool) {
	text := ConcatNote(activeNote, note)

	if last, ok := site.LastUpdate(); ok && last.Update == text {
		return types.SiteUpdate{}, false
	}

	return types.SiteUpdate{
		Update:         text,
		CreateDateTime: now,
		SiteStatuses:   statuses,
	}, true
}
