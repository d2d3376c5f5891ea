package ingestion

import (
	"strings"

	"go-afetyardim/types"

	"golang.org/x/text/cases"
)

// MatchSite finds the known site a parsed name refers to.
// People add extra words to site names in the sheet, so a name matches when
// either one contains the other, ignoring case. First hit in sites order wins.
func MatchSite(name string, sites []*types.Site) *types.Site {
	fold := cases.Fold()
	parsed := fold.String(name)
	for _, site := range sites {
		known := fold.String(site.Name)
		if known == "" {
			continue
		}
		if strings.Contains(parsed, known) || strings.Contains(known, parsed) {
			return site
		}
	}
	return nil
}
