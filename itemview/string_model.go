package itemview

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// StringModel is an in-memory Model over item names. Mutations are reported
// to the registered observers.
type StringModel struct {
	items []string
	keys  []string

	folder    cases.Caser
	observers []ModelObserver
}

func NewStringModel(items ...string) *StringModel {
	m := &StringModel{folder: cases.Fold()}
	m.items = append([]string(nil), items...)
	m.keys = m.searchKeys(m.items)
	return m
}

// AddObserver registers o for mutation notifications.
func (m *StringModel) AddObserver(o ModelObserver) {
	m.observers = append(m.observers, o)
}

func (m *StringModel) Count() int {
	return len(m.items)
}

// Item returns the name at index i or "" when out of range.
func (m *StringModel) Item(i int) string {
	if i < 0 || i >= len(m.items) {
		return ""
	}
	return m.items[i]
}

// Items returns a copy of all names in model order.
func (m *StringModel) Items() []string {
	return append([]string(nil), m.items...)
}

func (m *StringModel) searchKey(s string) string {
	return m.folder.String(norm.NFC.String(s))
}

func (m *StringModel) searchKeys(items []string) []string {
	keys := make([]string, len(items))
	for i, s := range items {
		keys[i] = m.searchKey(s)
	}
	return keys
}

// IndexForKeyboardSearch does a case insensitive prefix match starting at
// startFrom and wrapping around to the first item.
func (m *StringModel) IndexForKeyboardSearch(text string, startFrom int) int {
	if len(m.keys) == 0 || text == "" {
		return -1
	}
	if startFrom < 0 || startFrom >= len(m.keys) {
		startFrom = 0
	}
	prefix := m.searchKey(text)

	for i := startFrom; i < len(m.keys); i++ {
		if strings.HasPrefix(m.keys[i], prefix) {
			return i
		}
	}
	for i := 0; i < startFrom; i++ {
		if strings.HasPrefix(m.keys[i], prefix) {
			return i
		}
	}
	return -1
}

// Insert places items before index at. An out of range index appends.
func (m *StringModel) Insert(at int, items ...string) {
	if len(items) == 0 {
		return
	}
	if at < 0 || at > len(m.items) {
		at = len(m.items)
	}

	m.items = append(m.items[:at], append(append([]string(nil), items...), m.items[at:]...)...)
	m.keys = append(m.keys[:at], append(m.searchKeys(items), m.keys[at:]...)...)

	ranges := ItemRangeList{{Index: at, Count: len(items)}}
	for _, o := range m.observers {
		o.ItemsInserted(ranges)
	}
}

// Append adds items at the end.
func (m *StringModel) Append(items ...string) {
	m.Insert(len(m.items), items...)
}

// Remove deletes the items at the given indexes. Invalid indexes are ignored.
func (m *StringModel) Remove(indexes ...int) {
	var valid []int
	for _, i := range indexes {
		if i >= 0 && i < len(m.items) {
			valid = append(valid, i)
		}
	}
	ranges := RangesFromIndexes(valid)
	if len(ranges) == 0 {
		return
	}

	items := make([]string, 0, len(m.items)-ranges.ItemCount())
	keys := make([]string, 0, cap(items))
	next := 0
	for _, r := range ranges {
		items = append(items, m.items[next:r.Index]...)
		keys = append(keys, m.keys[next:r.Index]...)
		next = r.Index + r.Count
	}
	m.items = append(items, m.items[next:]...)
	m.keys = append(keys, m.keys[next:]...)

	for _, o := range m.observers {
		o.ItemsRemoved(ranges)
	}
}

// Sort reorders the items and reports the permutation as a single move.
func (m *StringModel) Sort(less func(a, b string) bool) {
	order := make([]int, len(m.items))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return less(m.items[order[a]], m.items[order[b]])
	})

	movedTo := make([]int, len(order))
	changed := false
	items := make([]string, len(order))
	keys := make([]string, len(order))
	for pos, old := range order {
		movedTo[old] = pos
		items[pos] = m.items[old]
		keys[pos] = m.keys[old]
		if pos != old {
			changed = true
		}
	}
	if !changed {
		return
	}
	m.items, m.keys = items, keys

	r := ItemRange{Index: 0, Count: len(order)}
	for _, o := range m.observers {
		o.ItemsMoved(r, movedTo)
	}
}

// Reset replaces all items.
func (m *StringModel) Reset(items ...string) {
	m.items = append([]string(nil), items...)
	m.keys = m.searchKeys(m.items)
	for _, o := range m.observers {
		o.ModelReset()
	}
}
