package itemview

import (
	"math"

	"fyne.io/fyne/v2"
)

const (
	defaultIconSize       = 64
	defaultInlineIconSize = 24
	defaultPadding        = 4
	selectionToggleSize   = 16
)

// GridGeometry lays out uniform cells for a model and implements View.
//
// Vertical grids fill rows left to right and scroll down. Horizontal grids fill
// columns top to bottom and scroll right. List layouts use one cell per row
// (or column) spanning the whole viewport.
type GridGeometry struct {
	model Model

	layout      ViewLayout
	orientation Orientation
	itemSize    fyne.Size
	iconSize    float32
	padding     float32
	zoomLevel   int
	toggles     bool

	// listTextWidth limits the text hit area in list layouts, 0 means the full row.
	listTextWidth float32

	viewport fyne.Size
	offset   float32
}

// NewGridGeometry returns a vertical geometry for model.
func NewGridGeometry(model Model, layout ViewLayout, itemSize fyne.Size) *GridGeometry {
	g := &GridGeometry{
		model:     model,
		layout:    layout,
		itemSize:  itemSize,
		iconSize:  defaultIconSize,
		padding:   defaultPadding,
		zoomLevel: defaultZoomLevelIndex,
	}
	if layout == ListView {
		g.iconSize = defaultInlineIconSize
	}
	return g
}

func (g *GridGeometry) SetModel(model Model) {
	g.model = model
	g.clampOffset()
}

func (g *GridGeometry) Layout() ViewLayout {
	if g.layout == defaultView {
		return GridView
	}
	return g.layout
}

func (g *GridGeometry) SetLayout(layout ViewLayout) {
	g.layout = layout
	g.clampOffset()
}

func (g *GridGeometry) ScrollOrientation() Orientation {
	return g.orientation
}

func (g *GridGeometry) SetOrientation(o Orientation) {
	g.orientation = o
	g.clampOffset()
}

func (g *GridGeometry) SetItemSize(size fyne.Size) {
	g.itemSize = size
	g.clampOffset()
}

func (g *GridGeometry) SetIconSize(size float32) {
	g.iconSize = size
}

func (g *GridGeometry) SetPadding(pad float32) {
	g.padding = pad
	g.clampOffset()
}

// SetSelectionToggles shows or hides the per item selection toggle.
func (g *GridGeometry) SetSelectionToggles(enabled bool) {
	g.toggles = enabled
}

// SetListTextWidth limits the clickable text area of list rows.
func (g *GridGeometry) SetListTextWidth(w float32) {
	g.listTextWidth = w
}

// Resize sets the viewport size.
func (g *GridGeometry) Resize(size fyne.Size) {
	g.viewport = size
	g.clampOffset()
}

func (g *GridGeometry) Size() fyne.Size {
	return g.viewport
}

func (g *GridGeometry) count() int {
	if g.model == nil {
		return 0
	}
	return g.model.Count()
}

func (g *GridGeometry) zoomScale() float32 {
	return zoomLevels[clampZoomLevelIndex(g.zoomLevel)]
}

// cellSize is the zoomed size of one cell. List cells span the viewport.
func (g *GridGeometry) cellSize() fyne.Size {
	s := g.zoomScale()
	size := fyne.NewSize(g.itemSize.Width*s, g.itemSize.Height*s)
	if g.Layout() == ListView {
		if g.orientation == Vertical {
			size.Width = g.viewport.Width
		} else {
			size.Height = g.viewport.Height
		}
	}
	return size
}

// lanes is the number of items per row (vertical) or per column (horizontal).
func (g *GridGeometry) lanes() int {
	if g.Layout() == ListView {
		return 1
	}
	cell := g.cellSize()
	var n int
	if g.orientation == Vertical {
		n = int((g.viewport.Width + g.padding) / (cell.Width + g.padding))
	} else {
		n = int((g.viewport.Height + g.padding) / (cell.Height + g.padding))
	}
	if n < 1 {
		n = 1
	}
	return n
}

// lineStep is the distance between rows (vertical) or columns (horizontal).
func (g *GridGeometry) lineStep() float32 {
	cell := g.cellSize()
	if g.orientation == Vertical {
		return cell.Height + g.padding
	}
	return cell.Width + g.padding
}

func (g *GridGeometry) laneStep() float32 {
	cell := g.cellSize()
	if g.orientation == Vertical {
		return cell.Width + g.padding
	}
	return cell.Height + g.padding
}

// ItemRect returns the cell of index in content coordinates, or an empty rect.
func (g *GridGeometry) ItemRect(index int) Rect {
	if index < 0 || index >= g.count() {
		return Rect{}
	}
	lanes := g.lanes()
	line, lane := index/lanes, index%lanes
	cell := g.cellSize()

	if g.orientation == Vertical {
		return Rect{
			Pos:  fyne.NewPos(float32(lane)*g.laneStep(), float32(line)*g.lineStep()),
			Size: cell,
		}
	}
	return Rect{
		Pos:  fyne.NewPos(float32(line)*g.lineStep(), float32(lane)*g.laneStep()),
		Size: cell,
	}
}

func (g *GridGeometry) iconRect(cell Rect) Rect {
	icon := g.iconSize * g.zoomScale()
	if g.Layout() == ListView {
		icon = min32(icon, cell.Size.Height)
		return Rect{
			Pos:  fyne.NewPos(cell.Left(), cell.Top()+(cell.Size.Height-icon)/2),
			Size: fyne.NewSize(icon, icon),
		}
	}
	icon = min32(icon, min32(cell.Size.Width, cell.Size.Height))
	return Rect{
		Pos:  fyne.NewPos(cell.Left()+(cell.Size.Width-icon)/2, cell.Top()),
		Size: fyne.NewSize(icon, icon),
	}
}

// HitRects returns the icon and text areas of an item.
func (g *GridGeometry) HitRects(index int) []Rect {
	cell := g.ItemRect(index)
	if cell.IsEmpty() {
		return nil
	}
	icon := g.iconRect(cell)

	var text Rect
	if g.Layout() == ListView {
		x := icon.Right() + g.padding
		w := cell.Right() - x
		if g.listTextWidth > 0 {
			w = min32(w, g.listTextWidth)
		}
		text = Rect{Pos: fyne.NewPos(x, cell.Top()), Size: fyne.NewSize(w, cell.Size.Height)}
	} else {
		y := icon.Bottom()
		text = Rect{Pos: fyne.NewPos(cell.Left(), y), Size: fyne.NewSize(cell.Size.Width, cell.Bottom()-y)}
	}

	rects := []Rect{icon}
	if !text.IsEmpty() {
		rects = append(rects, text)
	}
	return rects
}

func (g *GridGeometry) toggleRect(index int) Rect {
	icon := g.iconRect(g.ItemRect(index))
	size := min32(selectionToggleSize, icon.Size.Width)
	return Rect{Pos: icon.Pos, Size: fyne.NewSize(size, size)}
}

// IsAboveSelectionToggle reports whether pos is on the selection toggle of index.
func (g *GridGeometry) IsAboveSelectionToggle(index int, pos fyne.Position) bool {
	if !g.toggles || index < 0 || index >= g.count() {
		return false
	}
	return g.toggleRect(index).Contains(pos)
}

// ItemAt returns the item whose icon or text contains pos, or -1.
func (g *GridGeometry) ItemAt(pos fyne.Position) int {
	primary, across := pos.Y, pos.X
	if g.orientation == Horizontal {
		primary, across = pos.X, pos.Y
	}
	if primary < 0 || across < 0 {
		return -1
	}

	lanes := g.lanes()
	lane := int(across / g.laneStep())
	if lane >= lanes {
		return -1
	}
	index := int(primary/g.lineStep())*lanes + lane
	if index >= g.count() {
		return -1
	}

	for _, r := range g.HitRects(index) {
		if r.Contains(pos) {
			return index
		}
	}
	return -1
}

// VisibleRange returns the first and last item touching the viewport.
// For an empty model last is -1.
func (g *GridGeometry) VisibleRange() (int, int) {
	n := g.count()
	if n == 0 {
		return 0, -1
	}
	lanes := g.lanes()
	step := g.lineStep()

	firstLine := int(g.offset / step)
	lastLine := int(math.Ceil(float64((g.offset+g.ViewportExtent())/step))) - 1
	if lastLine < firstLine {
		lastLine = firstLine
	}

	first := firstLine * lanes
	last := (lastLine+1)*lanes - 1
	if first > n-1 {
		first = n - 1
	}
	if last > n-1 {
		last = n - 1
	}
	return first, last
}

// ViewportExtent is the viewport length along the scroll axis.
func (g *GridGeometry) ViewportExtent() float32 {
	if g.orientation == Vertical {
		return g.viewport.Height
	}
	return g.viewport.Width
}

func (g *GridGeometry) ScrollOffset() float32 {
	return g.offset
}

func (g *GridGeometry) SetScrollOffset(offset float32) {
	g.offset = offset
	g.clampOffset()
}

func (g *GridGeometry) MaxScrollOffset() float32 {
	n := g.count()
	if n == 0 {
		return 0
	}
	lines := (n + g.lanes() - 1) / g.lanes()
	total := float32(lines) * g.lineStep()
	max := total - g.ViewportExtent()
	if max < 0 {
		return 0
	}
	return max
}

func (g *GridGeometry) clampOffset() {
	if max := g.MaxScrollOffset(); g.offset > max {
		g.offset = max
	}
	if g.offset < 0 || math.IsNaN(float64(g.offset)) {
		g.offset = 0
	}
}

// ScrollToItem scrolls the least amount needed to show index completely.
func (g *GridGeometry) ScrollToItem(index int) {
	r := g.ItemRect(index)
	if r.IsEmpty() {
		return
	}
	start, end := scrollSpan(g, r)
	switch {
	case start < g.offset:
		g.offset = start
	case end > g.offset+g.ViewportExtent():
		g.offset = end - g.ViewportExtent()
	}
	g.clampOffset()
}

// ZoomLevel returns the index into the zoom steps.
func (g *GridGeometry) ZoomLevel() int {
	return g.zoomLevel
}

// SetZoomLevel scales cells and icons by one of the zoom steps.
func (g *GridGeometry) SetZoomLevel(level int) {
	g.zoomLevel = clampZoomLevelIndex(level)
	g.clampOffset()
}

// AdjustZoom moves the zoom level by steps and reports whether it changed.
func (g *GridGeometry) AdjustZoom(steps int) bool {
	prev := g.zoomLevel
	g.SetZoomLevel(g.zoomLevel + steps)
	return g.zoomLevel != prev
}
