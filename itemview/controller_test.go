package itemview

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

type activationRecorder struct {
	items     []int
	multi     []ItemSet
	itemMenus []int
	viewMenus []fyne.Position
	middle    []int
	drags     []ItemSet
	escapes   int
}

func (r *activationRecorder) attach(c *Controller) {
	c.OnItemActivated = func(index int) { r.items = append(r.items, index) }
	c.OnItemsActivated = func(items ItemSet) { r.multi = append(r.multi, items) }
	c.OnItemContextMenu = func(index int, _ fyne.Position) { r.itemMenus = append(r.itemMenus, index) }
	c.OnViewContextMenu = func(pos fyne.Position) { r.viewMenus = append(r.viewMenus, pos) }
	c.OnItemMiddleClicked = func(index int) { r.middle = append(r.middle, index) }
	c.OnDragStarted = func(items ItemSet) { r.drags = append(r.drags, items) }
	c.OnEscape = func() { r.escapes++ }
}

type controllerFixture struct {
	c     *Controller
	model *StringModel
	grid  *GridGeometry
	rec   *activationRecorder
}

// newTestController shows count items in 100x100 cells, four per row.
func newTestController(count int, behavior SelectionBehavior, viewport fyne.Size) *controllerFixture {
	names := make([]string, count)
	for i := range names {
		names[i] = fmt.Sprintf("item%02d", i)
	}
	return newTestControllerWith(names, behavior, viewport)
}

func newTestControllerWith(names []string, behavior SelectionBehavior, viewport fyne.Size) *controllerFixture {
	model := NewStringModel(names...)
	grid := NewGridGeometry(model, GridView, fyne.NewSize(100, 100))
	grid.SetPadding(0)
	grid.Resize(viewport)

	s := DefaultSettings()
	s.SelectionBehavior = behavior
	c := NewController(model, grid, s)
	c.auto.post = func(func()) {}
	model.AddObserver(c)

	rec := &activationRecorder{}
	rec.attach(c)
	return &controllerFixture{c: c, model: model, grid: grid, rec: rec}
}

func (f *controllerFixture) key(name fyne.KeyName, mods fyne.KeyModifier) bool {
	return f.c.KeyPress(&fyne.KeyEvent{Name: name}, mods)
}

func mouseEvent(pos fyne.Position, button desktop.MouseButton, mods fyne.KeyModifier) *desktop.MouseEvent {
	ev := &desktop.MouseEvent{Button: button, Modifier: mods}
	ev.Position = pos
	return ev
}

// itemCenter is a point on the icon of index for a vertical grid at offset 0.
func itemCenter(index int) fyne.Position {
	return fyne.NewPos(float32(index%4)*100+50, float32(index/4)*100+30)
}

func (f *controllerFixture) click(pos fyne.Position, button desktop.MouseButton, mods fyne.KeyModifier) {
	f.c.PointerPress(mouseEvent(pos, button, mods))
	f.c.PointerRelease(mouseEvent(pos, button, mods))
}

func expectCurrent(t *testing.T, c *Controller, want int) {
	t.Helper()
	if got := c.Selection().CurrentItem(); got != want {
		t.Fatalf("expected current item %d, got %d", want, got)
	}
}

func TestController_KeyboardNavigation(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	c := f.c

	f.key(fyne.KeyRight, 0)
	expectCurrent(t, c, 1)
	expectItems(t, c.Selection().SelectedItems(), 1)

	f.key(fyne.KeyDown, 0)
	expectCurrent(t, c, 5)
	expectItems(t, c.Selection().SelectedItems(), 5)

	f.key(fyne.KeyUp, 0)
	expectCurrent(t, c, 1)

	f.key(fyne.KeyEnd, 0)
	expectCurrent(t, c, 19)
	expectItems(t, c.Selection().SelectedItems(), 19)
	if got := f.grid.ScrollOffset(); got != 200 {
		t.Fatalf("expected the last row scrolled into view, got offset %v", got)
	}

	f.key(fyne.KeyHome, 0)
	expectCurrent(t, c, 0)
	if got := f.grid.ScrollOffset(); got != 0 {
		t.Fatalf("expected offset 0, got %v", got)
	}

	if f.key(fyne.KeyF1, 0) {
		t.Fatal("expected an unhandled key not to be consumed")
	}
}

func TestController_KeyboardAnchorKeepsColumn(t *testing.T) {
	f := newTestController(10, MultiSelection, fyne.NewSize(400, 300))
	c := f.c

	f.key(fyne.KeyRight, 0)
	f.key(fyne.KeyRight, 0)
	f.key(fyne.KeyRight, 0)
	f.key(fyne.KeyDown, 0)
	expectCurrent(t, c, 7)

	// The last row only holds items 8 and 9.
	f.key(fyne.KeyDown, 0)
	expectCurrent(t, c, 9)

	f.key(fyne.KeyUp, 0)
	expectCurrent(t, c, 7)
	if got := c.KeyboardAnchor().Index; got != 3 {
		t.Fatalf("expected keyboard anchor to stay at 3, got %d", got)
	}
}

func TestController_ShiftAndControlNavigation(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	c := f.c

	f.key(fyne.KeyRight, 0)
	f.key(fyne.KeyDown, 0)
	f.key(fyne.KeyDown, fyne.KeyModifierShift)
	expectCurrent(t, c, 9)
	expectItems(t, c.Selection().SelectedItems(), 5, 6, 7, 8, 9)

	f.key(fyne.KeyRight, fyne.KeyModifierControl)
	expectCurrent(t, c, 10)
	expectItems(t, c.Selection().SelectedItems(), 5, 6, 7, 8, 9)

	f.key(fyne.KeyEnter, 0)
	if len(f.rec.multi) != 1 || f.rec.multi[0].Len() != 5 {
		t.Fatalf("expected one activation of five items, got %v", f.rec.multi)
	}
}

func TestController_Space(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	c := f.c

	f.key(fyne.KeyRight, 0)
	f.key(fyne.KeyRight, fyne.KeyModifierControl)
	expectItems(t, c.Selection().SelectedItems(), 1)

	if !f.key(fyne.KeySpace, 0) {
		t.Fatal("expected space to select the current item")
	}
	if !c.TypedRune(' ') || c.Search().IsSearching() {
		t.Fatal("expected the space rune to be swallowed")
	}
	expectItems(t, c.Selection().SelectedItems(), 1, 2)

	f.key(fyne.KeySpace, fyne.KeyModifierControl)
	expectItems(t, c.Selection().SelectedItems(), 1)
	if !c.Selection().IsAnchoredSelectionActive() || c.Selection().AnchorItem() != 2 {
		t.Fatalf("expected a new anchor at 2, got %d", c.Selection().AnchorItem())
	}

	f.key(fyne.KeySpace, fyne.KeyModifierControl)
	expectItems(t, c.Selection().SelectedItems(), 1, 2)

	if f.key(fyne.KeySpace, 0) {
		t.Fatal("expected space on a selected item to be left to the search")
	}
}

func TestController_EscapeAndActivation(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	c := f.c

	f.key(fyne.KeyEnter, 0)
	if len(f.rec.items) != 1 || f.rec.items[0] != 0 {
		t.Fatalf("expected the current item to be activated, got %v", f.rec.items)
	}

	f.key(fyne.KeyRight, 0)
	f.key(fyne.KeyReturn, 0)
	if len(f.rec.items) != 2 || f.rec.items[1] != 1 {
		t.Fatalf("expected the selected item to be activated, got %v", f.rec.items)
	}

	c.TypedRune('i')
	f.key(fyne.KeyEscape, 0)
	if c.Selection().HasSelection() {
		t.Fatalf("expected escape to clear the selection, got %v", c.Selection().SelectedItems())
	}
	if c.Search().IsSearching() {
		t.Fatal("expected escape to cancel the search")
	}
	if f.rec.escapes != 1 {
		t.Fatalf("expected one escape callback, got %d", f.rec.escapes)
	}
}

func TestController_SelectionBehaviors(t *testing.T) {
	t.Run("single item", func(t *testing.T) {
		f := newTestController(1, MultiSelection, fyne.NewSize(400, 300))
		if !f.key(fyne.KeyDown, 0) {
			t.Fatal("expected navigation to be consumed")
		}
		expectItems(t, f.c.Selection().SelectedItems(), 0)
	})

	t.Run("single selection", func(t *testing.T) {
		f := newTestController(20, SingleSelection, fyne.NewSize(400, 300))
		f.key(fyne.KeyRight, 0)
		f.key(fyne.KeyDown, fyne.KeyModifierShift)
		expectItems(t, f.c.Selection().SelectedItems(), 5)

		f.click(itemCenter(2), desktop.MouseButtonPrimary, fyne.KeyModifierControl)
		expectItems(t, f.c.Selection().SelectedItems(), 2)
		if len(f.rec.items) != 1 || f.rec.items[0] != 2 {
			t.Fatalf("expected a modified click to activate in single selection, got %v", f.rec.items)
		}

		f.key(fyne.KeyEscape, 0)
		expectItems(t, f.c.Selection().SelectedItems(), 2)
	})

	t.Run("no selection", func(t *testing.T) {
		f := newTestController(20, NoSelection, fyne.NewSize(400, 300))
		f.key(fyne.KeyRight, 0)
		expectCurrent(t, f.c, 1)
		f.click(itemCenter(6), desktop.MouseButtonPrimary, 0)
		expectCurrent(t, f.c, 6)
		if f.c.Selection().HasSelection() {
			t.Fatalf("expected no selection, got %v", f.c.Selection().SelectedItems())
		}
		if len(f.rec.items) != 1 || f.rec.items[0] != 6 {
			t.Fatalf("expected item 6 activated, got %v", f.rec.items)
		}
	})
}

func TestController_HorizontalKeys(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	f.grid.SetOrientation(Horizontal)

	f.key(fyne.KeyDown, 0)
	expectCurrent(t, f.c, 1)
	f.key(fyne.KeyRight, 0)
	expectCurrent(t, f.c, 4)
	f.key(fyne.KeyLeft, 0)
	expectCurrent(t, f.c, 1)
}

func TestController_TypeToSearch(t *testing.T) {
	f := newTestControllerWith([]string{"apple", "banana", "blueberry", "cherry", "bean"}, MultiSelection, fyne.NewSize(400, 300))
	c := f.c
	clock := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c.Search().SetClock(clock.now)

	f.key(fyne.KeyRight, fyne.KeyModifierShift)
	if !c.TypedRune('b') {
		t.Fatal("expected the rune to be used by the search")
	}
	expectCurrent(t, c, 1)
	expectItems(t, c.Selection().SelectedItems(), 1)
	if c.Selection().AnchorItem() != 1 {
		t.Fatalf("expected a fresh anchor at 1, got %d", c.Selection().AnchorItem())
	}

	clock.advance(100 * time.Millisecond)
	c.TypedRune('b')
	expectCurrent(t, c, 2)
	expectItems(t, c.Selection().SelectedItems(), 2)

	clock.advance(2 * time.Second)
	c.TypedRune('c')
	expectCurrent(t, c, 3)

	if c.TypedRune('\t') {
		t.Fatal("expected control runes to be ignored")
	}
}

func TestController_Click(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	c := f.c

	f.click(itemCenter(5), desktop.MouseButtonPrimary, 0)
	expectCurrent(t, c, 5)
	expectItems(t, c.Selection().SelectedItems(), 5)
	if len(f.rec.items) != 1 || f.rec.items[0] != 5 {
		t.Fatalf("expected item 5 activated, got %v", f.rec.items)
	}

	f.click(itemCenter(7), desktop.MouseButtonPrimary, fyne.KeyModifierShift)
	expectItems(t, c.Selection().SelectedItems(), 5, 6, 7)

	f.click(itemCenter(1), desktop.MouseButtonPrimary, fyne.KeyModifierControl)
	expectItems(t, c.Selection().SelectedItems(), 1, 5, 6, 7)
	f.click(itemCenter(6), desktop.MouseButtonPrimary, fyne.KeyModifierControl)
	expectItems(t, c.Selection().SelectedItems(), 1, 5, 7)
	if len(f.rec.items) != 1 {
		t.Fatalf("expected modified clicks not to activate, got %v", f.rec.items)
	}

	f.click(itemCenter(9), desktop.MouseButtonPrimary, 0)
	expectItems(t, c.Selection().SelectedItems(), 9)
}

func TestController_DeferredClear(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	c := f.c
	c.Selection().SetSelectedItems(NewItemSet(1, 2, 5))

	c.PointerPress(mouseEvent(itemCenter(2), desktop.MouseButtonPrimary, 0))
	expectItems(t, c.Selection().SelectedItems(), 1, 2, 5)
	c.PointerRelease(mouseEvent(itemCenter(2), desktop.MouseButtonPrimary, 0))
	expectItems(t, c.Selection().SelectedItems(), 2)
}

func TestController_DragSelectedItems(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	c := f.c
	c.Selection().SetSelectedItems(NewItemSet(1, 2, 5))

	start := itemCenter(2)
	c.PointerPress(mouseEvent(start, desktop.MouseButtonPrimary, 0))
	c.PointerMove(start.AddXY(3, 3))
	if len(f.rec.drags) != 0 {
		t.Fatal("expected no drag below the drag distance")
	}
	c.PointerMove(start.AddXY(8, 8))
	c.PointerMove(start.AddXY(30, 8))
	if len(f.rec.drags) != 1 {
		t.Fatalf("expected one drag, got %d", len(f.rec.drags))
	}
	expectItems(t, f.rec.drags[0], 1, 2, 5)

	c.PointerRelease(mouseEvent(start, desktop.MouseButtonPrimary, 0))
	expectItems(t, c.Selection().SelectedItems(), 1, 2, 5)
	if len(f.rec.items) != 0 {
		t.Fatalf("expected no activation after a drag, got %v", f.rec.items)
	}
}

func TestController_SelectionToggle(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	f.grid.SetSelectionToggles(true)
	c := f.c
	c.Selection().SetSelectedItems(NewItemSet(5))

	toggle := fyne.NewPos(120, 2)
	f.click(toggle, desktop.MouseButtonPrimary, 0)
	expectItems(t, c.Selection().SelectedItems(), 1, 5)
	expectCurrent(t, c, 1)
	if len(f.rec.items) != 0 {
		t.Fatalf("expected the toggle not to activate, got %v", f.rec.items)
	}

	f.click(toggle, desktop.MouseButtonPrimary, 0)
	expectItems(t, c.Selection().SelectedItems(), 5)
}

func TestController_OtherButtons(t *testing.T) {
	f := newTestController(10, MultiSelection, fyne.NewSize(400, 300))
	c := f.c

	f.click(itemCenter(3), desktop.MouseButtonSecondary, 0)
	if len(f.rec.itemMenus) != 1 || f.rec.itemMenus[0] != 3 {
		t.Fatalf("expected an item menu for 3, got %v", f.rec.itemMenus)
	}
	expectItems(t, c.Selection().SelectedItems(), 3)

	empty := fyne.NewPos(250, 250)
	f.click(empty, desktop.MouseButtonSecondary, 0)
	if len(f.rec.viewMenus) != 1 || f.rec.viewMenus[0] != empty {
		t.Fatalf("expected a view menu at %v, got %v", empty, f.rec.viewMenus)
	}

	f.click(itemCenter(4), desktop.MouseButtonTertiary, 0)
	if len(f.rec.middle) != 1 || f.rec.middle[0] != 4 {
		t.Fatalf("expected a middle click on 4, got %v", f.rec.middle)
	}
	if len(f.rec.items) != 0 {
		t.Fatalf("expected no activation, got %v", f.rec.items)
	}
}

func TestController_DoubleClickActivation(t *testing.T) {
	f := newTestController(10, MultiSelection, fyne.NewSize(400, 300))
	s := f.c.Settings()
	s.SingleClickActivation = false
	f.c.ApplySettings(s)

	f.click(itemCenter(2), desktop.MouseButtonPrimary, 0)
	if len(f.rec.items) != 0 {
		t.Fatalf("expected no activation on a single click, got %v", f.rec.items)
	}
	f.c.DoubleTapped(itemCenter(2))
	if len(f.rec.items) != 1 || f.rec.items[0] != 2 {
		t.Fatalf("expected item 2 activated, got %v", f.rec.items)
	}
}

func TestController_RubberBand(t *testing.T) {
	// The left margin of the second cell is empty space.
	start := fyne.NewPos(205, 5)
	end := fyne.NewPos(395, 90)

	tests := []struct {
		name string
		mods fyne.KeyModifier
		want []int
	}{
		{"toggle", fyne.KeyModifierControl, []int{1, 2}},
		{"additive", fyne.KeyModifierShift, []int{1, 2, 3}},
		{"replace", 0, []int{2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestController(10, MultiSelection, fyne.NewSize(400, 300))
			c := f.c
			c.Selection().SetSelectedItems(NewItemSet(1, 3))

			if !c.PointerPress(mouseEvent(start, desktop.MouseButtonPrimary, tt.mods)) {
				t.Fatal("expected the empty area press to start a band")
			}
			c.PointerMove(end)
			if _, ok := c.RubberBand(); !ok {
				t.Fatal("expected an active band")
			}
			expectItems(t, c.Selection().SelectedItems(), tt.want...)
			expectCurrent(t, c, 3)

			c.PointerRelease(mouseEvent(end, desktop.MouseButtonPrimary, tt.mods))
			if _, ok := c.RubberBand(); ok {
				t.Fatal("expected the band to end on release")
			}
			expectItems(t, c.Selection().SelectedItems(), tt.want...)
			if len(f.rec.items) != 0 {
				t.Fatalf("expected no activation, got %v", f.rec.items)
			}
		})
	}
}

func TestController_RubberBandFollowsModelChanges(t *testing.T) {
	start := fyne.NewPos(205, 5)
	end := fyne.NewPos(395, 90)

	tests := []struct {
		name   string
		mods   fyne.KeyModifier
		mutate func(m *StringModel)
		want   []int
		names  []string
	}{
		{"toggle remove", fyne.KeyModifierControl, func(m *StringModel) { m.Remove(0) }, []int{2, 3, 8}, []string{"item03", "item04", "item09"}},
		{"additive remove", fyne.KeyModifierShift, func(m *StringModel) { m.Remove(0) }, []int{2, 3, 8}, []string{"item03", "item04", "item09"}},
		{"toggle insert", fyne.KeyModifierControl, func(m *StringModel) { m.Insert(0, "new") }, []int{2, 3, 10}, []string{"item01", "item02", "item09"}},
		{"additive insert", fyne.KeyModifierShift, func(m *StringModel) { m.Insert(5, "new") }, []int{2, 3, 10}, []string{"item02", "item03", "item09"}},
		{"selected item removed", fyne.KeyModifierShift, func(m *StringModel) { m.Remove(9) }, []int{2, 3}, []string{"item02", "item03"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
			c := f.c
			c.Selection().SetSelectedItems(NewItemSet(9))

			c.PointerPress(mouseEvent(start, desktop.MouseButtonPrimary, tt.mods))
			c.PointerMove(end)
			expectItems(t, c.Selection().SelectedItems(), 2, 3, 9)

			tt.mutate(f.model)
			if _, ok := c.RubberBand(); !ok {
				t.Fatal("expected the band to survive the model change")
			}
			got := c.Selection().SelectedItems()
			expectItems(t, got, tt.want...)
			var names []string
			got.Ascend(func(i int) bool {
				names = append(names, f.model.Item(i))
				return true
			})
			if !reflect.DeepEqual(names, tt.names) {
				t.Fatalf("expected %v selected, got %v", tt.names, names)
			}

			c.PointerRelease(mouseEvent(end, desktop.MouseButtonPrimary, tt.mods))
			expectItems(t, c.Selection().SelectedItems(), tt.want...)
		})
	}
}

func TestController_RubberBandShrinks(t *testing.T) {
	f := newTestController(10, MultiSelection, fyne.NewSize(400, 300))
	c := f.c

	c.PointerPress(mouseEvent(fyne.NewPos(5, 5), desktop.MouseButtonPrimary, 0))
	c.PointerMove(fyne.NewPos(395, 150))
	expectItems(t, c.Selection().SelectedItems(), 0, 1, 2, 3, 4, 5, 6, 7)

	c.PointerMove(fyne.NewPos(150, 50))
	expectItems(t, c.Selection().SelectedItems(), 0, 1)
}

func TestController_RubberBandBeyondViewport(t *testing.T) {
	f := newTestController(40, MultiSelection, fyne.NewSize(400, 250))
	c := f.c

	c.PointerPress(mouseEvent(fyne.NewPos(5, 5), desktop.MouseButtonPrimary, 0))
	defer c.PointerRelease(mouseEvent(fyne.NewPos(5, 5), desktop.MouseButtonPrimary, 0))

	// Dragged below the view, rows past the visible ones are picked up too.
	c.PointerMove(fyne.NewPos(395, 400))
	expectItems(t, c.Selection().SelectedItems(), rangeOf(0, 15)...)

	c.PointerMove(fyne.NewPos(395, 200))
	expectItems(t, c.Selection().SelectedItems(), rangeOf(0, 7)...)

	c.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: -250}}, 0)
	if got := f.grid.ScrollOffset(); got != 250 {
		t.Fatalf("expected offset 250, got %v", got)
	}
	expectItems(t, c.Selection().SelectedItems(), rangeOf(0, 19)...)

	band, _ := c.RubberBand()
	if band.Top() != -245 || band.Bottom() != 200 {
		t.Fatalf("expected the band to stay attached to the content, got %+v", band)
	}
}

func rangeOf(from, to int) []int {
	var items []int
	for i := from; i <= to; i++ {
		items = append(items, i)
	}
	return items
}

func TestController_RubberBandListLayout(t *testing.T) {
	f := newTestController(10, MultiSelection, fyne.NewSize(300, 400))
	f.grid.SetLayout(ListView)
	f.grid.SetItemSize(fyne.NewSize(0, 30))
	f.grid.SetListTextWidth(60)
	c := f.c

	// Right of the text, yet the band spans the rows.
	c.PointerPress(mouseEvent(fyne.NewPos(250, 5), desktop.MouseButtonPrimary, 0))
	c.PointerMove(fyne.NewPos(260, 70))
	expectItems(t, c.Selection().SelectedItems(), 0, 1, 2)
}

func TestController_AutoScroll(t *testing.T) {
	f := newTestController(40, MultiSelection, fyne.NewSize(400, 250))
	c := f.c

	c.PointerPress(mouseEvent(fyne.NewPos(5, 5), desktop.MouseButtonPrimary, 0))
	c.PointerMove(fyne.NewPos(200, 100))
	if c.auto.running() {
		t.Fatal("expected no auto scroll away from the edges")
	}

	c.PointerMove(fyne.NewPos(395, 249))
	if !c.auto.running() {
		t.Fatal("expected auto scroll near the bottom edge")
	}
	before := c.Selection().SelectedItems().Len()
	scrolls := 0
	c.OnAutoScroll = func() { scrolls++ }
	for i := 0; i < 10; i++ {
		c.auto.tick()
	}
	if scrolls == 0 {
		t.Fatal("expected OnAutoScroll to be called")
	}
	if got := f.grid.ScrollOffset(); got <= 0 {
		t.Fatalf("expected the view to scroll, got offset %v", got)
	}
	if after := c.Selection().SelectedItems().Len(); after <= before {
		t.Fatalf("expected the band to grow while scrolling, got %d then %d", before, after)
	}

	c.PointerRelease(mouseEvent(fyne.NewPos(395, 249), desktop.MouseButtonPrimary, 0))
	if c.auto.running() {
		t.Fatal("expected auto scroll to stop on release")
	}
}

func TestController_ScrollAndZoom(t *testing.T) {
	f := newTestController(40, MultiSelection, fyne.NewSize(400, 250))
	c := f.c

	c.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: -120}}, 0)
	if got := f.grid.ScrollOffset(); got != 120 {
		t.Fatalf("expected offset 120, got %v", got)
	}

	c.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 20}}, fyne.KeyModifierControl)
	if got := f.grid.ZoomLevel(); got != defaultZoomLevelIndex {
		t.Fatalf("expected half a notch not to zoom, got level %d", got)
	}
	c.Scrolled(&fyne.ScrollEvent{Scrolled: fyne.Delta{DY: 20}}, fyne.KeyModifierControl)
	if got := f.grid.ZoomLevel(); got != defaultZoomLevelIndex+1 {
		t.Fatalf("expected one zoom step, got level %d", got)
	}
	if got := f.grid.ScrollOffset(); got != 120 {
		t.Fatalf("expected zooming not to scroll, got offset %v", got)
	}
}

func TestController_ModelChanges(t *testing.T) {
	f := newTestController(20, MultiSelection, fyne.NewSize(400, 300))
	c := f.c

	f.click(itemCenter(5), desktop.MouseButtonPrimary, 0)
	f.click(itemCenter(6), desktop.MouseButtonPrimary, fyne.KeyModifierShift)
	expectItems(t, c.Selection().SelectedItems(), 5, 6)

	f.model.Remove(0)
	expectCurrent(t, c, 5)
	expectItems(t, c.Selection().SelectedItems(), 4, 5)

	f.model.Insert(0, "new", "newer")
	expectCurrent(t, c, 7)
	expectItems(t, c.Selection().SelectedItems(), 6, 7)

	c.TypedRune('i')
	if !c.Search().IsSearching() {
		t.Fatal("expected a pending search")
	}
	f.model.Remove(7)
	if c.Search().IsSearching() {
		t.Fatal("expected removing the current item to cancel the search")
	}

	f.model.Reset("a", "b")
	expectCurrent(t, c, 0)
	if c.Selection().HasSelection() {
		t.Fatalf("expected a reset to clear the selection, got %v", c.Selection().SelectedItems())
	}
}

func TestController_InvalidSettings(t *testing.T) {
	f := newTestController(5, MultiSelection, fyne.NewSize(400, 300))
	f.c.ApplySettings(Settings{})
	if f.c.Settings() != DefaultSettings() {
		t.Fatalf("expected defaults for invalid settings, got %+v", f.c.Settings())
	}

	f.c.Selection().SetSelectedItems(NewItemSet(1, 2))
	s := DefaultSettings()
	s.SelectionBehavior = NoSelection
	f.c.ApplySettings(s)
	if f.c.Selection().HasSelection() {
		t.Fatal("expected no selection after disabling selection")
	}
}
