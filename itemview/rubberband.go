package itemview

import "fyne.io/fyne/v2"

// rubberBand is the selection rectangle dragged over the empty area. Its
// corners are in content coordinates so it stays attached to the items while
// the view scrolls.
type rubberBand struct {
	active     bool
	start, end fyne.Position
	// toggle is set when Control was held as the band started.
	toggle bool

	// snapshot is the selection from before the band started.
	snapshot ItemSet
}

func (b *rubberBand) stop() {
	*b = rubberBand{}
}

func (b *rubberBand) rect() Rect {
	return NewRect(b.start, b.end)
}

func (c *Controller) startBand(pos fyne.Position, toggle bool) {
	if c.view.Layout() == ListView {
		// A list row spans the view, so does the band.
		if c.view.ScrollOrientation() == Vertical {
			pos.X = 0
		} else {
			pos.Y = 0
		}
	}
	c.band = rubberBand{
		active:   true,
		start:    pos,
		end:      pos,
		toggle:   toggle,
		snapshot: c.selection.SelectedItems(),
	}
	c.log.Debug().Float32("x", pos.X).Float32("y", pos.Y).Bool("toggle", toggle).Msg("rubber band started")
}

func (c *Controller) stopBand() {
	if !c.band.active {
		return
	}
	c.band.stop()
	c.auto.stop()
}

// RubberBand returns the band relative to the view, and whether one is being
// dragged.
func (c *Controller) RubberBand() (Rect, bool) {
	if !c.band.active || c.view == nil {
		return Rect{}, false
	}
	return NewRect(c.toViewport(c.band.start), c.toViewport(c.band.end)), true
}

// updateBand moves the band end to the pointer, which may have moved or been
// scrolled under, and makes the item under it current.
func (c *Controller) updateBand() {
	if !c.band.active || c.view == nil {
		return
	}

	end := c.toContent(c.press.viewportPos)
	if index := c.view.ItemAt(end); index >= 0 {
		c.selection.EndAnchoredSelection()
		c.selection.SetCurrentItem(index)
		c.selection.BeginAnchoredSelection(index)
	}

	if c.view.Layout() == ListView {
		if c.view.ScrollOrientation() == Vertical {
			end.X = c.view.Size().Width
		} else {
			end.Y = c.view.Size().Height
		}
	}
	c.band.end = end
	c.recomputeBand()
}

// remapBand moves the band's starting selection along with the model and
// reapplies the band.
func (c *Controller) remapBand(remap func(int) int) {
	if !c.band.active {
		return
	}
	c.band.snapshot = c.band.snapshot.Remap(remap)
	c.recomputeBand()
}

// recomputeBand selects the items whose icon or text touches the band. Only
// the visible items and the rows next to them that still reach into the band
// are looked at.
func (c *Controller) recomputeBand() {
	count := c.count()
	if !c.band.active || c.view == nil || count == 0 {
		return
	}

	band := c.band.rect()
	bandStart, bandEnd := scrollSpan(c.view, band)

	var hits ItemSet
	first, last := c.view.VisibleRange()
	if first < 0 {
		first = 0
	}
	for i := first; i <= last && i < count; i++ {
		if c.bandHits(i, band) {
			hits.Insert(i)
		}
	}
	for i := last + 1; i < count; i++ {
		if start, _ := scrollSpan(c.view, c.view.ItemRect(i)); start > bandEnd {
			break
		}
		if c.bandHits(i, band) {
			hits.Insert(i)
		}
	}
	for i := first - 1; i >= 0; i-- {
		if _, end := scrollSpan(c.view, c.view.ItemRect(i)); end < bandStart {
			break
		}
		if c.bandHits(i, band) {
			hits.Insert(i)
		}
	}

	var selected ItemSet
	if c.band.toggle {
		selected = c.band.snapshot.SymmetricDifference(hits)
	} else {
		selected = c.band.snapshot.Union(hits)
	}

	if selected.Equal(c.selection.SelectedItems()) {
		return
	}
	c.selection.SetSelectedItems(selected)
}

func (c *Controller) bandHits(index int, band Rect) bool {
	for _, r := range c.view.HitRects(index) {
		if r.Intersects(band) {
			return true
		}
	}
	return false
}
