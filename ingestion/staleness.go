package ingestion

import (
	"time"

	"go-afetyardim/types"
)

// EvaluateStaleness moves a site to UNKNOWN when nobody touched its note
// within window. Call it only when the current run produced no new update.
// Returns true when the status was changed.
func EvaluateStaleness(site *types.Site, window time.Duration, now time.Time) bool {
	if site.ActiveStatus == types.ActiveStatusUnknown {
		return false
	}
	if site.HadUpdateWithin(window, now) {
		return false
	}
	site.SetActiveStatus(types.ActiveStatusUnknown)
	return true
}
