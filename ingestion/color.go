package ingestion

import (
	"math"

	"go-afetyardim/types"
)

const colorTolerance = 0.00001

// Reference colors of the sheet. Channels left nil are unset in the sheet.
var (
	activeGreen = types.Color{Green: types.Channel(1.0)}
	activeSoft  = types.Color{
		Red:   types.Channel(0.5764706),
		Green: types.Channel(0.76862746),
		Blue:  types.Channel(0.49019608),
	}
	notActiveGray = types.Color{
		Red:   types.Channel(0.6),
		Green: types.Channel(0.6),
		Blue:  types.Channel(0.6),
	}
)

func channelIs(ch *float64, want float64) bool {
	return ch != nil && math.Abs(*ch-want) < colorTolerance
}

func channelEqual(a, b *float64) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return math.Abs(*a-*b) < colorTolerance
}

func colorEqual(a, b types.Color) bool {
	return channelEqual(a.Red, b.Red) &&
		channelEqual(a.Green, b.Green) &&
		channelEqual(a.Blue, b.Blue)
}

// ClassifyActive maps the activity cell background to an ActiveStatus.
// Only exact reference colors count, everything else is UNKNOWN.
func ClassifyActive(c *types.Color) types.ActiveStatus {
	if c == nil {
		return types.ActiveStatusUnknown
	}
	if colorEqual(*c, activeGreen) || colorEqual(*c, activeSoft) {
		return types.ActiveStatusActive
	}
	if colorEqual(*c, notActiveGray) {
		return types.ActiveStatusNotActive
	}
	return types.ActiveStatusUnknown
}

// ClassifyNeed maps a need cell background to a SiteStatusLevel.
// Rules are checked in order and the first hit wins.
func ClassifyNeed(c *types.Color) types.SiteStatusLevel {
	if c == nil {
		return types.LevelUnknown
	}

	// orange
	if channelIs(c.Green, 0.6) && channelIs(c.Red, 1.0) {
		return types.LevelNeedRequired
	}
	// yellow
	if channelIs(c.Green, 1.0) && channelIs(c.Red, 1.0) {
		return types.LevelNeedRequired
	}
	// red
	if channelIs(c.Red, 1.0) {
		return types.LevelUrgentNeedRequired
	}
	// green
	if channelIs(c.Green, 1.0) {
		return types.LevelNoNeedRequired
	}
	// blue, sheet uses it for "no info yet but fine"
	if channelIs(c.Blue, 1.0) {
		return types.LevelNoNeedRequired
	}
	return types.LevelUnknown
}
