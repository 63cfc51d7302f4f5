package itemview

// KeyboardAnchor remembers the item that was last reached by a sideways move
// and its position across the scroll axis. Moving between rows keeps close to
// that position so a run of Up or Down presses stays in one column.
type KeyboardAnchor struct {
	Index int
	Pos   float32
}

// NoKeyboardAnchor is the anchor before any keyboard navigation happened.
var NoKeyboardAnchor = KeyboardAnchor{Index: -1}

// KeyboardAnchorPos returns the position of an item across the scroll axis:
// its left edge in vertical views, its top edge in horizontal ones.
func KeyboardAnchorPos(g Geometry, index int) float32 {
	r := g.ItemRect(index)
	if r.IsEmpty() {
		return 0
	}
	if g.ScrollOrientation() == Vertical {
		return r.Left()
	}
	return r.Top()
}

// KeyboardAnchorFor seeds an anchor at index.
func KeyboardAnchorFor(g Geometry, index int) KeyboardAnchor {
	return KeyboardAnchor{Index: index, Pos: KeyboardAnchorPos(g, index)}
}

// UpdateKeyboardAnchor reseeds the anchor at current when its item is gone or
// has moved since the anchor was taken, for example after a resize.
func UpdateKeyboardAnchor(g Geometry, count int, anchor KeyboardAnchor, current int) KeyboardAnchor {
	valid := anchor.Index >= 0 && anchor.Index < count && KeyboardAnchorPos(g, anchor.Index) == anchor.Pos
	if !valid {
		return KeyboardAnchorFor(g, current)
	}
	return anchor
}

// NextRowIndex returns the item in the row after index that is closest to the
// anchor. It returns index when there is no next row.
func NextRowIndex(g Geometry, count int, anchor KeyboardAnchor, index int) int {
	last := count - 1
	if anchor.Index < 0 || index < 0 || index >= last {
		return index
	}

	// Walk to the last item of the row.
	end := index
	for KeyboardAnchorPos(g, end+1) > KeyboardAnchorPos(g, end) {
		end++
		if end >= last {
			return index
		}
	}

	next := end + 1
	minDiff := abs32(anchor.Pos - KeyboardAnchorPos(g, next))
	for i := next; i < last && KeyboardAnchorPos(g, i+1) > KeyboardAnchorPos(g, i); {
		i++
		if diff := abs32(anchor.Pos - KeyboardAnchorPos(g, i)); diff < minDiff {
			minDiff = diff
			next = i
		}
	}
	return next
}

// PreviousRowIndex returns the item in the row before index that is closest
// to the anchor. It returns index when there is no previous row.
func PreviousRowIndex(g Geometry, count int, anchor KeyboardAnchor, index int) int {
	if anchor.Index < 0 || index <= 0 || index >= count {
		return index
	}

	// Walk to the first item of the row.
	start := index
	for KeyboardAnchorPos(g, start-1) < KeyboardAnchorPos(g, start) {
		start--
		if start <= 0 {
			return index
		}
	}

	prev := start - 1
	minDiff := abs32(anchor.Pos - KeyboardAnchorPos(g, prev))
	for i := prev; i > 0 && KeyboardAnchorPos(g, i-1) < KeyboardAnchorPos(g, i); {
		i--
		if diff := abs32(anchor.Pos - KeyboardAnchorPos(g, i)); diff < minDiff {
			minDiff = diff
			prev = i
		}
	}
	return prev
}

// scrollSpan returns where a rectangle starts and ends along the scroll axis.
func scrollSpan(g Geometry, r Rect) (float32, float32) {
	if g.ScrollOrientation() == Vertical {
		return r.Top(), r.Bottom()
	}
	return r.Left(), r.Right()
}

// PageDownIndex moves at least one row forward and keeps going while the
// reached item still ends within one viewport of where index starts.
func PageDownIndex(g Geometry, count int, anchor KeyboardAnchor, index int) int {
	if index < 0 || index >= count {
		return index
	}
	start, _ := scrollSpan(g, g.ItemRect(index))
	target := start + g.ViewportExtent()

	next := NextRowIndex(g, count, anchor, index)
	for {
		index = next
		next = NextRowIndex(g, count, anchor, index)
		if next == index {
			return index
		}
		if _, end := scrollSpan(g, g.ItemRect(next)); end >= target {
			return index
		}
	}
}

// PageUpIndex moves at least one row back and keeps going while the reached
// item still starts within one viewport of where index ends.
func PageUpIndex(g Geometry, count int, anchor KeyboardAnchor, index int) int {
	if index < 0 || index >= count {
		return index
	}
	_, end := scrollSpan(g, g.ItemRect(index))
	target := end - g.ViewportExtent()

	prev := PreviousRowIndex(g, count, anchor, index)
	for {
		index = prev
		prev = PreviousRowIndex(g, count, anchor, index)
		if prev == index {
			return index
		}
		if start, _ := scrollSpan(g, g.ItemRect(prev)); start <= target {
			return index
		}
	}
}
