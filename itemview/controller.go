package itemview

import (
	"time"

	"fyne.io/fyne/v2"
	"github.com/rs/zerolog"
)

// Controller turns key, pointer and scroll input into changes of the current
// item and the selection. It also relays model changes to its
// SelectionManager, so the model should notify the controller rather than the
// manager.
//
// All methods must be called from the goroutine that owns the model, usually
// the fyne UI goroutine.
type Controller struct {
	model     Model
	view      View
	selection *SelectionManager
	search    *KeyboardSearchManager
	settings  Settings

	keyboardAnchor KeyboardAnchor
	swallowSpace   bool

	press pressState
	band  rubberBand
	auto  autoScroller
	zoom  zoomAccumulator

	// OnItemActivated is called when a single item is opened.
	OnItemActivated func(index int)
	// OnItemsActivated is called when Enter is pressed with several items selected.
	OnItemsActivated func(items ItemSet)
	// OnItemContextMenu is called on a secondary click on an item.
	OnItemContextMenu func(index int, pos fyne.Position)
	// OnViewContextMenu is called on a secondary click on the empty area.
	OnViewContextMenu func(pos fyne.Position)
	OnItemMiddleClicked func(index int)
	// OnDragStarted is called once per press when the selected items are
	// dragged. The selection is not restored if the drop is rejected.
	OnDragStarted func(items ItemSet)
	OnEscape      func()
	// OnAutoScroll is called after the rubber band scrolled the view.
	OnAutoScroll func()

	log zerolog.Logger
}

// NewController returns a controller for model shown by view. view may be nil
// until SetView is called.
func NewController(model Model, view View, settings Settings) *Controller {
	c := &Controller{
		view:           view,
		selection:      NewSelectionManager(),
		search:         NewKeyboardSearchManager(),
		keyboardAnchor: NoKeyboardAnchor,
		log:            zerolog.Nop(),
	}
	c.press.reset()
	c.auto.init(c)
	c.selection.AddListener(ListenerFuncs{
		OnSelectionChanged: func(current, previous ItemSet) {
			if current.IsEmpty() && !previous.IsEmpty() {
				c.search.CancelSearch()
			}
		},
	})
	c.ApplySettings(settings)
	c.SetModel(model)
	return c
}

// SetLogger replaces the debug logger of the controller and its managers.
func (c *Controller) SetLogger(l zerolog.Logger) {
	c.log = l
	c.selection.SetLogger(l)
	c.search.SetLogger(l)
}

// ApplySettings replaces the settings. Invalid values fall back to their
// defaults.
func (c *Controller) ApplySettings(s Settings) {
	if err := s.Validate(); err != nil {
		fyne.LogError("Invalid selection settings, using defaults", err)
		s = DefaultSettings()
	}
	c.settings = s
	c.search.SetTimeout(time.Duration(s.SearchTimeout))
	if s.SelectionBehavior == NoSelection {
		c.selection.ClearSelection()
	} else if s.SelectionBehavior == SingleSelection && c.selection.SelectedItems().Len() > 1 {
		c.selection.EndAnchoredSelection()
		if cur := c.selection.CurrentItem(); cur >= 0 {
			c.selection.ReplaceSelection(cur, 1)
		} else {
			c.selection.ClearSelection()
		}
	}
}

func (c *Controller) Settings() Settings {
	return c.settings
}

// Selection returns the manager holding the current item and the selection.
func (c *Controller) Selection() *SelectionManager {
	return c.selection
}

// Search returns the keyboard search state.
func (c *Controller) Search() *KeyboardSearchManager {
	return c.search
}

func (c *Controller) Model() Model {
	return c.model
}

// SetModel replaces the model and resets all state.
func (c *Controller) SetModel(model Model) {
	c.model = model
	c.resetInput()
	c.selection.SetModel(model)
}

func (c *Controller) View() View {
	return c.view
}

// SetView replaces the view. Any pointer interaction in progress is dropped.
func (c *Controller) SetView(view View) {
	c.resetInput()
	c.view = view
}

func (c *Controller) resetInput() {
	c.search.CancelSearch()
	c.keyboardAnchor = NoKeyboardAnchor
	c.swallowSpace = false
	c.press.reset()
	c.band.stop()
	c.auto.stop()
}

func (c *Controller) count() int {
	if c.model == nil {
		return 0
	}
	return c.model.Count()
}

func (c *Controller) behavior() SelectionBehavior {
	return c.settings.SelectionBehavior
}

func (c *Controller) ItemsInserted(ranges ItemRangeList) {
	c.press.index = -1
	c.selection.ItemsInserted(ranges)
	c.remapBand(func(i int) int {
		return indexAfterInsertion(i, ranges)
	})
}

func (c *Controller) ItemsRemoved(ranges ItemRangeList) {
	n := c.count()
	cur := c.selection.CurrentItem()
	if cur >= 0 && indexAfterRemoval(cur, ranges, discardRemoved, n) < 0 {
		c.search.CancelSearch()
	}
	c.press.index = -1
	c.selection.ItemsRemoved(ranges)
	c.remapBand(func(i int) int {
		return indexAfterRemoval(i, ranges, discardRemoved, n)
	})
}

func (c *Controller) ItemsMoved(r ItemRange, movedTo []int) {
	c.press.index = -1
	c.selection.ItemsMoved(r, movedTo)
	c.remapBand(func(i int) int {
		return indexAfterMove(i, r, movedTo)
	})
}

func (c *Controller) ModelReset() {
	c.resetInput()
	c.selection.Reset()
}

var _ ModelObserver = (*Controller)(nil)

func isNavigationKey(key fyne.KeyName) bool {
	switch key {
	case fyne.KeyHome, fyne.KeyEnd, fyne.KeyPageUp, fyne.KeyPageDown,
		fyne.KeyUp, fyne.KeyDown, fyne.KeyLeft, fyne.KeyRight:
		return true
	}
	return false
}

// remapKey turns arrow keys of horizontal views into their vertical
// equivalent, so Left and Right move between columns.
func remapKey(key fyne.KeyName, o Orientation) fyne.KeyName {
	if o != Horizontal {
		return key
	}
	switch key {
	case fyne.KeyUp:
		return fyne.KeyLeft
	case fyne.KeyDown:
		return fyne.KeyRight
	case fyne.KeyLeft:
		return fyne.KeyUp
	case fyne.KeyRight:
		return fyne.KeyDown
	}
	return key
}

// KeyPress handles navigation, activation, Escape and Space. It reports
// whether the key was consumed. Printable text arrives through TypedRune.
func (c *Controller) KeyPress(ev *fyne.KeyEvent, mods fyne.KeyModifier) bool {
	c.swallowSpace = false
	if ev == nil || c.view == nil {
		return false
	}

	count := c.count()
	shift := mods&fyne.KeyModifierShift != 0
	ctrl := mods&(fyne.KeyModifierControl|fyne.KeyModifierShortcutDefault) != 0
	navigation := isNavigationKey(ev.Name)
	key := remapKey(ev.Name, c.view.ScrollOrientation())

	if navigation && c.behavior() != NoSelection && count == 1 {
		c.selection.SetSelected(c.selection.CurrentItem(), 1, Select)
		return true
	}

	index := c.selection.CurrentItem()
	if navigation && index < 0 {
		if count == 0 {
			return true
		}
		index = 0
		c.keyboardAnchor = KeyboardAnchorFor(c.view, index)
		c.moveCurrent(index, shift, ctrl)
		c.view.ScrollToItem(index)
		return true
	}

	switch key {
	case fyne.KeyHome:
		index = 0
		c.keyboardAnchor = KeyboardAnchorFor(c.view, index)
	case fyne.KeyEnd:
		index = count - 1
		c.keyboardAnchor = KeyboardAnchorFor(c.view, index)
	case fyne.KeyLeft:
		if index > 0 {
			index--
			c.keyboardAnchor = KeyboardAnchorFor(c.view, index)
		}
	case fyne.KeyRight:
		if index < count-1 {
			index++
			c.keyboardAnchor = KeyboardAnchorFor(c.view, index)
		}
	case fyne.KeyUp:
		c.updateKeyboardAnchor()
		index = PreviousRowIndex(c.view, count, c.keyboardAnchor, index)
	case fyne.KeyDown:
		c.updateKeyboardAnchor()
		index = NextRowIndex(c.view, count, c.keyboardAnchor, index)
	case fyne.KeyPageUp:
		c.updateKeyboardAnchor()
		index = PageUpIndex(c.view, count, c.keyboardAnchor, index)
	case fyne.KeyPageDown:
		c.updateKeyboardAnchor()
		index = PageDownIndex(c.view, count, c.keyboardAnchor, index)

	case fyne.KeyReturn, fyne.KeyEnter:
		c.activateSelection(index)
		return true

	case fyne.KeyEscape:
		if c.behavior() != SingleSelection {
			c.selection.ClearSelection()
		}
		c.search.CancelSearch()
		if c.OnEscape != nil {
			c.OnEscape()
		}
		return true

	case fyne.KeySpace:
		if !c.keySpace(ctrl) {
			return false
		}
		c.swallowSpace = true
		return true

	default:
		return false
	}

	if index != c.selection.CurrentItem() {
		c.moveCurrent(index, shift, ctrl)
	}
	c.view.ScrollToItem(index)
	c.log.Debug().Str("key", string(ev.Name)).Int("current", index).Msg("keyboard navigation")
	return true
}

func (c *Controller) keySpace(ctrl bool) bool {
	if c.behavior() != MultiSelection {
		return false
	}
	cur := c.selection.CurrentItem()
	if cur < 0 {
		return false
	}
	if ctrl {
		c.selection.EndAnchoredSelection()
		c.selection.SetSelected(cur, 1, Toggle)
		c.selection.BeginAnchoredSelection(cur)
		return true
	}
	if c.selection.IsSelected(cur) {
		// Falls through to TypedRune so a space can extend the search.
		return false
	}
	c.selection.SetSelected(cur, 1, Select)
	return true
}

// moveCurrent changes the current item after keyboard navigation.
func (c *Controller) moveCurrent(index int, shift, ctrl bool) {
	switch c.behavior() {
	case NoSelection:
		c.selection.SetCurrentItem(index)
	case SingleSelection:
		c.selection.SetCurrentItem(index)
		c.selection.ReplaceSelection(index, 1)
	case MultiSelection:
		if ctrl {
			c.selection.EndAnchoredSelection()
		}
		c.selection.SetCurrentItem(index)
		if !shift && !ctrl {
			c.selection.ReplaceSelection(index, 1)
		}
		if !shift {
			c.selection.BeginAnchoredSelection(index)
		}
	}
}

func (c *Controller) updateKeyboardAnchor() {
	c.keyboardAnchor = UpdateKeyboardAnchor(c.view, c.count(), c.keyboardAnchor, c.selection.CurrentItem())
}

// KeyboardAnchor returns the anchor used by Up and Down navigation.
func (c *Controller) KeyboardAnchor() KeyboardAnchor {
	return c.keyboardAnchor
}

func (c *Controller) activateSelection(current int) {
	selected := c.selection.SelectedItems()
	switch n := selected.Len(); {
	case n >= 2:
		if c.OnItemsActivated != nil {
			c.OnItemsActivated(selected)
		}
	case n == 1:
		first, _ := selected.First()
		c.activate(first)
	default:
		c.activate(current)
	}
}

func (c *Controller) activate(index int) {
	if index < 0 || index >= c.count() || c.OnItemActivated == nil {
		return
	}
	c.OnItemActivated(index)
}

// TypedRune feeds printable text to the keyboard search. A match becomes the
// current item and the only selected item. It reports whether r was used.
func (c *Controller) TypedRune(r rune) bool {
	if r == ' ' && c.swallowSpace {
		c.swallowSpace = false
		return true
	}
	c.swallowSpace = false
	if r < ' ' || r == 0x7f {
		return false
	}

	index := c.search.AddKeys(string(r), c.selection.CurrentItem(), c.model)
	if index < 0 {
		return c.search.IsSearching()
	}
	c.changeCurrentItem(index)
	return true
}

func (c *Controller) changeCurrentItem(index int) {
	c.selection.EndAnchoredSelection()
	c.selection.SetCurrentItem(index)
	if c.behavior() != NoSelection {
		c.selection.ReplaceSelection(index, 1)
		c.selection.BeginAnchoredSelection(index)
	}
	if c.view != nil {
		c.keyboardAnchor = KeyboardAnchorFor(c.view, index)
		c.view.ScrollToItem(index)
	}
}
