package itemview

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
)

// ViewLayout describes how the items of a view are arranged.
type ViewLayout int

const (
	defaultView ViewLayout = iota
	// ListView arranges items in a single column
	ListView
	// GridView wraps items into rows of icons
	GridView
)

// Orientation is the axis along which a view scrolls.
type Orientation int

const (
	// Vertical views scroll top to bottom and wrap items into rows.
	Vertical Orientation = iota
	// Horizontal views scroll left to right and wrap items into columns.
	Horizontal
)

// SelectionBehavior controls how much the controller is allowed to select.
type SelectionBehavior int

const (
	// NoSelection only moves the current item.
	NoSelection SelectionBehavior = iota
	// SingleSelection keeps at most one item selected.
	SingleSelection
	// MultiSelection enables ranges, toggling and the rubber band.
	MultiSelection
)

var selectionBehaviorNames = map[SelectionBehavior]string{
	NoSelection:     "none",
	SingleSelection: "single",
	MultiSelection:  "multi",
}

func (b SelectionBehavior) String() string {
	if name, ok := selectionBehaviorNames[b]; ok {
		return name
	}
	return fmt.Sprintf("SelectionBehavior(%d)", int(b))
}

// MarshalText implements encoding.TextMarshaler.
func (b SelectionBehavior) MarshalText() ([]byte, error) {
	if _, ok := selectionBehaviorNames[b]; !ok {
		return nil, fmt.Errorf("unknown selection behavior %d", int(b))
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *SelectionBehavior) UnmarshalText(text []byte) error {
	want := strings.ToLower(strings.TrimSpace(string(text)))
	for behavior, name := range selectionBehaviorNames {
		if name == want {
			*b = behavior
			return nil
		}
	}
	return fmt.Errorf("unknown selection behavior %q", text)
}

// SelectionMode is applied by SelectionManager.SetSelected to each index of a range.
type SelectionMode int

const (
	Select SelectionMode = iota
	Deselect
	Toggle
)

// ItemRange is the half-open index range [Index, Index+Count).
type ItemRange struct {
	Index int
	Count int
}

// ItemRangeList is a list of non-overlapping ranges sorted by index.
type ItemRangeList []ItemRange

// ItemCount returns the number of indexes covered by all ranges.
func (l ItemRangeList) ItemCount() int {
	n := 0
	for _, r := range l {
		n += r.Count
	}
	return n
}

// Rect is an axis aligned rectangle in content coordinates.
type Rect struct {
	Pos  fyne.Position
	Size fyne.Size
}

// NewRect returns the rectangle spanned by two opposite corners.
func NewRect(a, b fyne.Position) Rect {
	tl := fyne.NewPos(min32(a.X, b.X), min32(a.Y, b.Y))
	br := fyne.NewPos(max32(a.X, b.X), max32(a.Y, b.Y))
	return Rect{Pos: tl, Size: fyne.NewSize(br.X-tl.X, br.Y-tl.Y)}
}

func (r Rect) Left() float32   { return r.Pos.X }
func (r Rect) Top() float32    { return r.Pos.Y }
func (r Rect) Right() float32  { return r.Pos.X + r.Size.Width }
func (r Rect) Bottom() float32 { return r.Pos.Y + r.Size.Height }

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Size.Width <= 0 || r.Size.Height <= 0
}

// Intersects reports whether the two rectangles overlap with a non-zero area.
func (r Rect) Intersects(o Rect) bool {
	return r.Left() < o.Right() && r.Right() > o.Left() && r.Top() < o.Bottom() && r.Bottom() > o.Top()
}

// Contains reports whether p lies inside the rectangle.
func (r Rect) Contains(p fyne.Position) bool {
	return p.X >= r.Left() && p.X < r.Right() && p.Y >= r.Top() && p.Y < r.Bottom()
}

// Model is the item source the engine works against.
type Model interface {
	Count() int
	// IndexForKeyboardSearch returns the first item at or after startFrom,
	// wrapping around, whose text matches. It returns -1 if nothing matches.
	IndexForKeyboardSearch(text string, startFrom int) int
}

// ModelObserver receives model mutation notifications. Range lists are
// ascending and use the indexes from before the mutation.
type ModelObserver interface {
	ItemsInserted(ranges ItemRangeList)
	ItemsRemoved(ranges ItemRangeList)
	// ItemsMoved reports that item r.Index+k now lives at movedTo[k].
	ItemsMoved(r ItemRange, movedTo []int)
	ModelReset()
}

// Geometry is the oracle used for keyboard navigation.
type Geometry interface {
	ItemRect(index int) Rect
	ScrollOrientation() Orientation
	// ViewportExtent is the length of the viewport along the scroll axis.
	ViewportExtent() float32
}

// View is everything the controller needs from the widget hosting the items.
// Positions and rectangles are in content coordinates unless noted.
type View interface {
	Geometry

	Layout() ViewLayout
	// ItemAt returns the item whose hit area contains pos, or -1.
	ItemAt(pos fyne.Position) int
	// HitRects returns the icon and text areas of an item.
	HitRects(index int) []Rect
	IsAboveSelectionToggle(index int, pos fyne.Position) bool
	// VisibleRange returns the first and last item that are at least partly visible.
	VisibleRange() (first, last int)

	ScrollOffset() float32
	SetScrollOffset(offset float32)
	MaxScrollOffset() float32
	ScrollToItem(index int)
	// Size is the size of the viewport.
	Size() fyne.Size
}

// SelectionListener is notified after the current item or the selection changed.
type SelectionListener interface {
	CurrentChanged(current, previous int)
	SelectionChanged(current, previous ItemSet)
}

// ListenerFuncs adapts plain functions to a SelectionListener.
type ListenerFuncs struct {
	OnCurrentChanged   func(current, previous int)
	OnSelectionChanged func(current, previous ItemSet)
}

func (l ListenerFuncs) CurrentChanged(current, previous int) {
	if l.OnCurrentChanged != nil {
		l.OnCurrentChanged(current, previous)
	}
}

func (l ListenerFuncs) SelectionChanged(current, previous ItemSet) {
	if l.OnSelectionChanged != nil {
		l.OnSelectionChanged(current, previous)
	}
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
