package itemview

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// pressState is what the controller remembers between a pointer press and
// its release.
type pressState struct {
	active bool
	index  int
	// pos is in content coordinates, viewportPos is where the pointer was
	// last seen relative to the view.
	pos         fyne.Position
	viewportPos fyne.Position
	button      desktop.MouseButton

	clearIfNotDragged bool
	togglePressed     bool
	dragStarted       bool
}

func (p *pressState) reset() {
	*p = pressState{index: -1}
}

func (c *Controller) toContent(pos fyne.Position) fyne.Position {
	if c.view.ScrollOrientation() == Vertical {
		return fyne.NewPos(pos.X, pos.Y+c.view.ScrollOffset())
	}
	return fyne.NewPos(pos.X+c.view.ScrollOffset(), pos.Y)
}

func (c *Controller) toViewport(pos fyne.Position) fyne.Position {
	if c.view.ScrollOrientation() == Vertical {
		return fyne.NewPos(pos.X, pos.Y-c.view.ScrollOffset())
	}
	return fyne.NewPos(pos.X-c.view.ScrollOffset(), pos.Y)
}

func isControl(mods fyne.KeyModifier) bool {
	return mods&(fyne.KeyModifierControl|fyne.KeyModifierShortcutDefault) != 0
}

// PointerPress handles a button press at ev.Position, relative to the view.
// Context menu callbacks receive the same relative position. It reports
// whether the press was consumed.
func (c *Controller) PointerPress(ev *desktop.MouseEvent) bool {
	c.press.reset()
	if ev == nil || c.view == nil {
		return false
	}

	pos := c.toContent(ev.Position)
	index := c.view.ItemAt(pos)
	c.press = pressState{
		active:      true,
		index:       index,
		pos:         pos,
		viewportPos: ev.Position,
		button:      ev.Button,
	}

	shift := ev.Modifier&fyne.KeyModifierShift != 0
	ctrl := isControl(ev.Modifier)
	left := ev.Button == desktop.MouseButtonPrimary
	right := ev.Button == desktop.MouseButtonSecondary
	behavior := c.behavior()

	if index >= 0 && behavior == MultiSelection && c.view.IsAboveSelectionToggle(index, pos) {
		c.press.togglePressed = true
		c.selection.SetSelected(index, 1, Toggle)
		c.selection.SetCurrentItem(index)
		c.selection.BeginAnchoredSelection(index)
		return true
	}

	alreadySelected := index >= 0 && c.selection.IsSelected(index)
	if behavior == SingleSelection || (!shift && !ctrl && !alreadySelected) {
		c.selection.ClearSelection()
	} else if alreadySelected && !shift && !ctrl && left {
		// Could be the start of a drag of all selected items. Clear the
		// others on release if no drag happens.
		c.press.clearIfNotDragged = true
	}

	if !shift {
		c.selection.EndAnchoredSelection()
	}
	if right {
		c.stopBand()
	}

	if index >= 0 {
		c.selection.SetCurrentItem(index)
		switch behavior {
		case SingleSelection:
			c.selection.SetSelected(index, 1, Select)
		case MultiSelection:
			if ctrl && !shift && left {
				c.selection.SetSelected(index, 1, Toggle)
				c.selection.BeginAnchoredSelection(index)
			} else if !shift || !c.selection.IsAnchoredSelectionActive() {
				c.selection.SetSelected(index, 1, Select)
				c.selection.BeginAnchoredSelection(index)
			}
		}
		c.keyboardAnchor = KeyboardAnchorFor(c.view, index)

		if right && c.OnItemContextMenu != nil {
			c.OnItemContextMenu(index, ev.Position)
		}
		c.log.Debug().Int("index", index).Int("button", int(ev.Button)).Msg("item pressed")
		return true
	}

	if right {
		if c.OnViewContextMenu != nil {
			c.OnViewContextMenu(ev.Position)
		}
		return true
	}

	if left && behavior == MultiSelection && c.count() > 0 {
		c.startBand(pos, ctrl)
		return true
	}
	return false
}

// PointerMove handles the pointer moving to pos, relative to the view, while
// a button is held.
func (c *Controller) PointerMove(pos fyne.Position) {
	if !c.press.active || c.view == nil {
		return
	}
	c.press.viewportPos = pos

	if c.press.index >= 0 && !c.band.active {
		if c.press.button != desktop.MouseButtonPrimary || c.press.dragStarted {
			return
		}
		d := c.toContent(pos).Subtract(c.press.pos)
		if abs32(d.X)+abs32(d.Y) < c.settings.DragDistance {
			return
		}

		if !c.selection.IsSelected(c.press.index) {
			// A press on the selection toggle of a selected item left it
			// deselected. The dragged item is always part of the drag.
			c.selection.SetSelected(c.press.index, 1, Toggle)
		} else {
			c.press.clearIfNotDragged = false
		}
		c.press.dragStarted = true
		c.log.Debug().Int("index", c.press.index).Msg("drag started")
		if c.OnDragStarted != nil {
			c.OnDragStarted(c.selection.SelectedItems())
		}
		return
	}

	if c.band.active {
		c.updateBand()
		c.auto.update(pos)
	}
}

// PointerRelease ends the press started by PointerPress.
func (c *Controller) PointerRelease(ev *desktop.MouseEvent) {
	if !c.press.active || ev == nil || c.view == nil {
		c.press.reset()
		return
	}
	defer c.press.reset()

	if c.press.togglePressed {
		return
	}

	bandRelease := c.band.active
	c.stopBand()

	index := c.view.ItemAt(c.toContent(ev.Position))
	if index < 0 || index != c.press.index {
		return
	}

	if c.press.clearIfNotDragged && !c.press.dragStarted {
		c.selection.ReplaceSelection(index, 1)
		c.selection.BeginAnchoredSelection(index)
	}

	switch ev.Button {
	case desktop.MouseButtonPrimary:
		modified := ev.Modifier&fyne.KeyModifierShift != 0 || isControl(ev.Modifier)
		if modified && c.behavior() != SingleSelection {
			return
		}
		if c.settings.SingleClickActivation && !bandRelease && !c.press.dragStarted {
			c.activate(index)
		}
	case desktop.MouseButtonTertiary:
		if c.OnItemMiddleClicked != nil {
			c.OnItemMiddleClicked(index)
		}
	}
}

// DoubleTapped activates the item at pos, relative to the view, when items
// are not activated by a single click.
func (c *Controller) DoubleTapped(pos fyne.Position) {
	if c.view == nil || c.settings.SingleClickActivation {
		return
	}
	if index := c.view.ItemAt(c.toContent(pos)); index >= 0 {
		c.activate(index)
	}
}

// Scrolled scrolls the view, or zooms it when mods hold the zoom modifier and
// the view is Zoomable. It reports whether the event was consumed.
func (c *Controller) Scrolled(ev *fyne.ScrollEvent, mods fyne.KeyModifier) bool {
	if ev == nil || c.view == nil {
		return false
	}

	if isZoomModifier(mods) {
		z, ok := c.view.(Zoomable)
		if !ok {
			return false
		}
		if steps := c.zoom.steps(ev.Scrolled.DY); steps != 0 && z.AdjustZoom(steps) {
			c.log.Debug().Int("steps", steps).Msg("zoom")
			c.updateBand()
		}
		return true
	}

	delta := ev.Scrolled.DY
	if c.view.ScrollOrientation() == Horizontal && ev.Scrolled.DX != 0 {
		delta = ev.Scrolled.DX
	}
	c.view.SetScrollOffset(c.view.ScrollOffset() - delta)
	c.updateBand()
	return true
}
