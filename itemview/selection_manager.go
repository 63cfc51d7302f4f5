package itemview

import "github.com/rs/zerolog"

// SelectionManager owns the current item, the selection anchor and the set of
// explicitly selected items. It is the only place the selection is changed,
// and it keeps all stored indexes valid while the model changes.
//
// The effective selection is the explicit set plus, while an anchored
// selection is active, every item between the anchor and the current item.
// It is always derived on demand.
type SelectionManager struct {
	model Model

	current  int
	anchor   int
	anchored bool
	selected ItemSet

	listeners []SelectionListener
	log       zerolog.Logger
}

// NewSelectionManager returns a manager without a model.
func NewSelectionManager() *SelectionManager {
	return &SelectionManager{
		current: -1,
		anchor:  -1,
		log:     zerolog.Nop(),
	}
}

// SetLogger replaces the debug logger.
func (m *SelectionManager) SetLogger(l zerolog.Logger) {
	m.log = l
}

// AddListener registers l for current and selection change notifications.
func (m *SelectionManager) AddListener(l SelectionListener) {
	m.listeners = append(m.listeners, l)
}

func (m *SelectionManager) Model() Model {
	return m.model
}

// SetModel attaches a model and resets all state. The first item becomes
// current when the model already holds items.
func (m *SelectionManager) SetModel(model Model) {
	m.model = model
	m.Reset()
}

// Reset clears the selection and the anchor and moves the current item to the
// first item, or to -1 for an empty model.
func (m *SelectionManager) Reset() {
	prevCur := m.current
	prevSel := m.SelectedItems()

	m.selected.Clear()
	m.anchored = false
	m.anchor = -1
	m.current = -1
	if m.count() > 0 {
		m.current = 0
	}

	if m.current != prevCur {
		m.emitCurrent(m.current, prevCur)
	}
	if !prevSel.IsEmpty() {
		m.emitSelection(ItemSet{}, prevSel)
	}
}

func (m *SelectionManager) count() int {
	if m.model == nil {
		return 0
	}
	return m.model.Count()
}

func (m *SelectionManager) valid(index int) bool {
	return index >= 0 && index < m.count()
}

func (m *SelectionManager) CurrentItem() int {
	return m.current
}

// SetCurrentItem makes index the current item. Invalid indexes clear the
// current item. While an anchored selection is active this also changes the
// effective selection.
func (m *SelectionManager) SetCurrentItem(index int) {
	if !m.valid(index) {
		index = -1
	}
	if index == m.current {
		return
	}

	prevCur := m.current
	var prevSel ItemSet
	if m.anchored {
		prevSel = m.SelectedItems()
	}

	m.current = index
	m.emitCurrent(index, prevCur)

	if m.anchored {
		if sel := m.SelectedItems(); !sel.Equal(prevSel) {
			m.emitSelection(sel, prevSel)
		}
	}
}

func (m *SelectionManager) anchorRangeActive() bool {
	return m.anchored && m.anchor != m.current && m.current >= 0 && m.anchor >= 0
}

// SelectedItems returns a copy of the effective selection.
func (m *SelectionManager) SelectedItems() ItemSet {
	items := m.selected.Clone()
	if m.anchorRangeActive() {
		items.InsertRange(m.anchor, m.current)
	}
	return items
}

func (m *SelectionManager) IsSelected(index int) bool {
	if m.selected.Contains(index) {
		return true
	}
	if m.anchorRangeActive() {
		from, to := m.anchor, m.current
		if from > to {
			from, to = to, from
		}
		return from <= index && index <= to
	}
	return false
}

func (m *SelectionManager) HasSelection() bool {
	return !m.selected.IsEmpty() || m.anchorRangeActive()
}

// SetSelectedItems replaces the explicit selection. The anchor is left alone.
func (m *SelectionManager) SetSelectedItems(items ItemSet) {
	prevSel := m.SelectedItems()

	next := ItemSet{}
	items.Ascend(func(i int) bool {
		if m.valid(i) {
			next.Insert(i)
		}
		return true
	})
	m.selected = next

	if sel := m.SelectedItems(); !sel.Equal(prevSel) {
		m.emitSelection(sel, prevSel)
	}
}

// SetSelected applies mode to count items starting at index. Any anchored
// selection is folded into the explicit set first.
func (m *SelectionManager) SetSelected(index, count int, mode SelectionMode) {
	n := m.count()
	if index < 0 || count < 1 || index >= n {
		return
	}

	m.EndAnchoredSelection()
	prevSel := m.SelectedItems()

	m.apply(index, count, mode)

	if sel := m.SelectedItems(); !sel.Equal(prevSel) {
		m.emitSelection(sel, prevSel)
	}
}

func (m *SelectionManager) apply(index, count int, mode SelectionMode) {
	if n := m.count(); count > n-index {
		count = n - index
	}
	last := index + count - 1

	switch mode {
	case Select:
		m.selected.InsertRange(index, last)
	case Deselect:
		for i := index; i <= last; i++ {
			m.selected.Remove(i)
		}
	case Toggle:
		for i := index; i <= last; i++ {
			if !m.selected.Remove(i) {
				m.selected.Insert(i)
			}
		}
	}
}

// ClearSelection deselects everything and ends the anchored selection.
func (m *SelectionManager) ClearSelection() {
	prevSel := m.SelectedItems()
	m.selected.Clear()
	m.anchored = false
	if !prevSel.IsEmpty() {
		m.emitSelection(ItemSet{}, prevSel)
	}
}

// ReplaceSelection selects count items starting at index and nothing else.
// Listeners see a single change.
func (m *SelectionManager) ReplaceSelection(index, count int) {
	prevSel := m.SelectedItems()
	m.selected.Clear()
	m.anchored = false

	if index >= 0 && count >= 1 && index < m.count() {
		m.apply(index, count, Select)
	}

	if sel := m.SelectedItems(); !sel.Equal(prevSel) {
		m.emitSelection(sel, prevSel)
	}
}

// BeginAnchoredSelection starts a range selection between anchor and the
// current item. Invalid anchors are ignored.
func (m *SelectionManager) BeginAnchoredSelection(anchor int) {
	if !m.valid(anchor) {
		return
	}
	m.anchored = true
	m.anchor = anchor
}

// EndAnchoredSelection keeps the items of the anchored range selected by
// moving them into the explicit set, then ends the anchored selection.
func (m *SelectionManager) EndAnchoredSelection() {
	if m.anchorRangeActive() {
		m.selected.InsertRange(m.anchor, m.current)
	}
	m.anchored = false
}

func (m *SelectionManager) IsAnchoredSelectionActive() bool {
	return m.anchored
}

// AnchorItem returns the anchor of the active anchored selection, or -1.
func (m *SelectionManager) AnchorItem() int {
	if !m.anchored {
		return -1
	}
	return m.anchor
}

// ItemsInserted shifts all stored indexes past the inserted ranges.
func (m *SelectionManager) ItemsInserted(ranges ItemRangeList) {
	n := m.count()
	prevCur := m.current
	prevSel := m.SelectedItems()

	if m.current < 0 {
		if n > 0 {
			m.current = 0
		}
	} else {
		m.current = indexAfterInsertion(m.current, ranges)
		if m.current >= n {
			m.current = -1
		}
	}

	if m.anchor >= 0 {
		m.anchor = indexAfterInsertion(m.anchor, ranges)
		if m.anchor >= n {
			m.anchor = -1
			m.anchored = false
		}
	}

	m.remapSelected(func(i int) int {
		return indexAfterInsertion(i, ranges)
	})

	m.log.Debug().Int("ranges", len(ranges)).Int("inserted", ranges.ItemCount()).Int("current", m.current).Msg("items inserted")
	m.finishRemap(prevCur, prevSel, false)
}

// ItemsRemoved drops removed items from the selection and shifts the rest.
// When the current item is removed the item after the removed range becomes
// current and listeners see -1 as the previous current item.
func (m *SelectionManager) ItemsRemoved(ranges ItemRangeList) {
	n := m.count()
	prevCur := m.current
	prevSel := m.SelectedItems()

	m.current = indexAfterRemoval(prevCur, ranges, discardRemoved, n)
	lost := prevCur >= 0 && m.current < 0
	if lost {
		m.current = indexAfterRemoval(prevCur, ranges, adjustRemoved, n)
	}

	if m.anchor >= 0 {
		m.anchor = indexAfterRemoval(m.anchor, ranges, discardRemoved, n)
		if m.anchor < 0 {
			m.anchored = false
		}
	}
	if m.anchored && m.current < 0 {
		m.anchored = false
	}

	m.remapSelected(func(i int) int {
		return indexAfterRemoval(i, ranges, discardRemoved, n)
	})

	m.log.Debug().Int("ranges", len(ranges)).Int("removed", ranges.ItemCount()).Int("current", m.current).Bool("currentLost", lost).Msg("items removed")
	m.finishRemap(prevCur, prevSel, lost)
}

// ItemsMoved maps the indexes inside r through movedTo. An active anchored
// selection is folded and restarted at the new current item.
func (m *SelectionManager) ItemsMoved(r ItemRange, movedTo []int) {
	prevCur := m.current
	prevSel := m.SelectedItems()

	wasAnchored := m.anchored
	m.EndAnchoredSelection()

	m.current = indexAfterMove(m.current, r, movedTo)
	if wasAnchored {
		m.BeginAnchoredSelection(m.current)
	}

	m.remapSelected(func(i int) int {
		return indexAfterMove(i, r, movedTo)
	})

	m.log.Debug().Int("index", r.Index).Int("count", r.Count).Int("current", m.current).Msg("items moved")
	m.finishRemap(prevCur, prevSel, false)
}

func (m *SelectionManager) remapSelected(remap func(int) int) {
	if m.selected.IsEmpty() {
		return
	}
	m.selected = m.selected.Remap(remap)
}

func (m *SelectionManager) finishRemap(prevCur int, prevSel ItemSet, currentLost bool) {
	switch {
	case currentLost && m.current >= 0:
		m.emitCurrent(m.current, -1)
	case m.current != prevCur:
		m.emitCurrent(m.current, prevCur)
	}

	if sel := m.SelectedItems(); !sel.Equal(prevSel) {
		m.emitSelection(sel, prevSel)
	}
}

func (m *SelectionManager) emitCurrent(current, previous int) {
	m.log.Debug().Int("current", current).Int("previous", previous).Msg("current item changed")
	for _, l := range m.listeners {
		l.CurrentChanged(current, previous)
	}
}

func (m *SelectionManager) emitSelection(current, previous ItemSet) {
	m.log.Debug().Int("selected", current.Len()).Int("previous", previous.Len()).Msg("selection changed")
	for _, l := range m.listeners {
		l.SelectionChanged(current, previous)
	}
}
