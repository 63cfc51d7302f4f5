package itemview

import "sort"

// RangesFromIndexes groups indexes into an ascending list of contiguous ranges.
// Duplicates are ignored.
func RangesFromIndexes(indexes []int) ItemRangeList {
	if len(indexes) == 0 {
		return nil
	}
	sorted := append([]int(nil), indexes...)
	sort.Ints(sorted)

	var ranges ItemRangeList
	start, prev := sorted[0], sorted[0]
	for _, i := range sorted[1:] {
		if i == prev {
			continue
		}
		if i != prev+1 {
			ranges = append(ranges, ItemRange{Index: start, Count: prev - start + 1})
			start = i
		}
		prev = i
	}
	return append(ranges, ItemRange{Index: start, Count: prev - start + 1})
}

// indexAfterInsertion shifts index by the number of items inserted at or before it.
// Range indexes refer to positions before the insertion.
func indexAfterInsertion(index int, ranges ItemRangeList) int {
	inc := 0
	for _, r := range ranges {
		if index < r.Index {
			break
		}
		inc += r.Count
	}
	return index + inc
}

type removalBehavior int

const (
	// discardRemoved drops an index that lies inside a removed range.
	discardRemoved removalBehavior = iota
	// adjustRemoved moves an index inside a removed range to the first item after it.
	adjustRemoved
)

// indexAfterRemoval maps index through the removal of ranges and clamps the
// result to [0, count). It returns -1 when the index is dropped.
func indexAfterRemoval(index int, ranges ItemRangeList, behavior removalBehavior, count int) int {
	dec := 0
	for _, r := range ranges {
		if index < r.Index {
			break
		}
		dec += r.Count

		firstAfter := r.Index + r.Count
		if index < firstAfter {
			if behavior == discardRemoved {
				return -1
			}
			index = firstAfter
			break
		}
	}

	after := index - dec
	if after > count-1 {
		after = count - 1
	}
	if after < 0 {
		return -1
	}
	return after
}

// indexAfterMove maps index through a move of r. Indexes outside r are unchanged.
func indexAfterMove(index int, r ItemRange, movedTo []int) int {
	if index < r.Index || index >= r.Index+r.Count {
		return index
	}
	k := index - r.Index
	if k >= len(movedTo) {
		return index
	}
	return movedTo[k]
}
