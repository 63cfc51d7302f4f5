package itemview

import (
	"strconv"
	"strings"

	"github.com/google/btree"
)

const itemSetDegree = 16

// ItemSet is an ordered set of item indexes. The zero value is an empty set.
// Copying an ItemSet shares its storage; use Clone before mutating a copy.
type ItemSet struct {
	t *btree.BTreeG[int]
}

// NewItemSet returns a set holding the given indexes.
func NewItemSet(items ...int) ItemSet {
	var s ItemSet
	for _, i := range items {
		s.Insert(i)
	}
	return s
}

func (s *ItemSet) tree() *btree.BTreeG[int] {
	if s.t == nil {
		s.t = btree.NewOrderedG[int](itemSetDegree)
	}
	return s.t
}

// Insert adds i and reports whether it was missing.
func (s *ItemSet) Insert(i int) bool {
	_, found := s.tree().ReplaceOrInsert(i)
	return !found
}

// InsertRange adds every index of the inclusive range [from, to].
func (s *ItemSet) InsertRange(from, to int) {
	if from > to {
		from, to = to, from
	}
	t := s.tree()
	for i := from; i <= to; i++ {
		t.ReplaceOrInsert(i)
	}
}

// Remove deletes i and reports whether it was present.
func (s *ItemSet) Remove(i int) bool {
	if s.t == nil {
		return false
	}
	_, found := s.t.Delete(i)
	return found
}

// Clear empties the set.
func (s *ItemSet) Clear() {
	s.t = nil
}

func (s ItemSet) Contains(i int) bool {
	return s.t != nil && s.t.Has(i)
}

func (s ItemSet) Len() int {
	if s.t == nil {
		return 0
	}
	return s.t.Len()
}

func (s ItemSet) IsEmpty() bool {
	return s.Len() == 0
}

// First returns the lowest index of the set.
func (s ItemSet) First() (int, bool) {
	if s.t == nil {
		return -1, false
	}
	return s.t.Min()
}

// Last returns the highest index of the set.
func (s ItemSet) Last() (int, bool) {
	if s.t == nil {
		return -1, false
	}
	return s.t.Max()
}

// Ascend calls fn for every index in ascending order until fn returns false.
func (s ItemSet) Ascend(fn func(i int) bool) {
	if s.t == nil {
		return
	}
	s.t.Ascend(fn)
}

// Items returns the indexes in ascending order.
func (s ItemSet) Items() []int {
	items := make([]int, 0, s.Len())
	s.Ascend(func(i int) bool {
		items = append(items, i)
		return true
	})
	return items
}

// Clone returns an independent copy of the set.
func (s ItemSet) Clone() ItemSet {
	if s.t == nil {
		return ItemSet{}
	}
	return ItemSet{t: s.t.Clone()}
}

// Equal reports whether both sets hold the same indexes.
func (s ItemSet) Equal(o ItemSet) bool {
	if s.Len() != o.Len() {
		return false
	}
	a, b := s.Items(), o.Items()
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Union returns a new set holding the indexes of both sets.
func (s ItemSet) Union(o ItemSet) ItemSet {
	out := s.Clone()
	o.Ascend(func(i int) bool {
		out.Insert(i)
		return true
	})
	return out
}

// SymmetricDifference returns the indexes held by exactly one of the sets.
func (s ItemSet) SymmetricDifference(o ItemSet) ItemSet {
	out := s.Clone()
	o.Ascend(func(i int) bool {
		if !out.Remove(i) {
			out.Insert(i)
		}
		return true
	})
	return out
}

// Remap returns a new set with every index passed through fn. Indexes mapped
// to a negative value are dropped.
func (s ItemSet) Remap(fn func(int) int) ItemSet {
	var out ItemSet
	s.Ascend(func(i int) bool {
		if j := fn(i); j >= 0 {
			out.Insert(j)
		}
		return true
	})
	return out
}

func (s ItemSet) String() string {
	var b strings.Builder
	b.WriteByte('{')
	first := true
	s.Ascend(func(i int) bool {
		if !first {
			b.WriteByte(',')
		}
		first = false
		b.WriteString(strconv.Itoa(i))
		return true
	})
	b.WriteByte('}')
	return b.String()
}
