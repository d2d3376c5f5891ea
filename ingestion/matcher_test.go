package ingestion

import (
	"testing"

	"go-afetyardim/types"

	"github.com/stretchr/testify/assert"
)

func TestMatchSite_Symmetric(t *testing.T) {
	long := &types.Site{Name: "Kızılay Merkez"}
	short := &types.Site{Name: "Kızılay"}

	assert.Same(t, long, MatchSite("Kızılay", []*types.Site{long}))
	assert.Same(t, short, MatchSite("Kızılay Merkez", []*types.Site{short}))
}

func TestMatchSite_IgnoresCase(t *testing.T) {
	site := &types.Site{Name: "Çankaya Belediyesi"}

	assert.Same(t, site, MatchSite("ÇANKAYA Belediyesi toplama noktası", []*types.Site{site}))
	assert.Same(t, site, MatchSite("çankaya", []*types.Site{site}))
}

func TestMatchSite_FirstMatchWins(t *testing.T) {
	first := &types.Site{Name: "Kızılay Kan Merkezi"}
	second := &types.Site{Name: "Kızılay Depo"}

	assert.Same(t, first, MatchSite("Kızılay", []*types.Site{first, second}))
	assert.Same(t, second, MatchSite("Kızılay", []*types.Site{second, first}))
}

func TestMatchSite_NoMatch(t *testing.T) {
	sites := []*types.Site{{Name: "Keçiören"}, {Name: ""}}

	assert.Nil(t, MatchSite("Mamak Spor Salonu", sites))
	assert.Nil(t, MatchSite("Mamak", nil))
}
