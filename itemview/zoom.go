package itemview

import (
	"math"

	"fyne.io/fyne/v2"
)

var zoomLevels = []float32{
	0.75,
	1.0,
	1.25,
	1.5,
	1.75,
	2.0,
}

const defaultZoomLevelIndex = 1 // 1.0

func clampZoomLevelIndex(i int) int {
	if i < 0 {
		return 0
	}
	if i >= len(zoomLevels) {
		return len(zoomLevels) - 1
	}
	return i
}

// Zoomable is implemented by views that can scale their items.
type Zoomable interface {
	AdjustZoom(steps int) bool
}

func isZoomModifier(mods fyne.KeyModifier) bool {
	// Command+scroll on macOS, Control elsewhere.
	return mods&fyne.KeyModifierControl != 0 || mods&fyne.KeyModifierShortcutDefault != 0
}

// zoomAccumulator turns scroll deltas into whole zoom steps.
type zoomAccumulator struct {
	accDY float32
}

func (z *zoomAccumulator) steps(dy float32) int {
	// Fyne scroll deltas are scaled; on typical mouse wheels, DY is ~40 per notch.
	// Accumulate so touchpads don't zoom too quickly.
	const notch = float32(40)

	if math.IsNaN(float64(dy)) || math.IsInf(float64(dy), 0) {
		return 0
	}

	z.accDY += dy

	var steps int
	for z.accDY >= notch {
		steps++
		z.accDY -= notch
	}
	for z.accDY <= -notch {
		steps--
		z.accDY += notch
	}
	return steps
}
