package ordset

import "sort"

// AddOutcome tags the result of Bucket.Add and SortedSet.Add.
type AddOutcome int

const (
	Added AddOutcome = iota
	Duplicate
)

// AddResult is the outcome of an add, carrying either the position the
// item landed at (Added) or the position of the pre-existing
// duplicate (Duplicate).
type AddResult struct {
	Outcome AddOutcome
	Index   int
}

// Bucket is a sorted, deduplicated, capacity-bounded array of terms.
// It owns every term it holds.
type Bucket struct {
	items []Term
	cap   int
}

// NewBucket returns an empty bucket reserved for up to capacity items.
// A capacity of 0 is legal and allocates nothing.
func NewBucket(capacity int) *Bucket {
	if capacity < 0 {
		capacity = 0
	}
	return &Bucket{items: make([]Term, 0, capacity), cap: capacity}
}

// Len returns the number of items currently stored.
func (b *Bucket) Len() int { return len(b.items) }

// At returns the item at position i without cloning.
func (b *Bucket) At(i int) Term { return b.items[i] }

// First returns the smallest item; only valid when Len() > 0.
func (b *Bucket) First() Term { return b.items[0] }

// Last returns the largest item; only valid when Len() > 0.
func (b *Bucket) Last() Term { return b.items[len(b.items)-1] }

// search returns the lower-bound index for item: the first index i
// such that items[i] >= item, plus whether items[i] == item exactly.
func (b *Bucket) search(item Term) (index int, found bool) {
	i := sort.Search(len(b.items), func(i int) bool {
		return Cmp(b.items[i], item) != Less
	})
	if i < len(b.items) && Eql(b.items[i], item) {
		return i, true
	}
	return i, false
}

// Add inserts item in sorted position. If an equal item is already
// present, the incoming item is freed and Duplicate is returned with
// the existing item's index; otherwise item is inserted and Added is
// returned with its new index. Add may leave the bucket one element
// over cap; the caller (SortedSet) is responsible for splitting.
func (b *Bucket) Add(item Term) AddResult {
	i, found := b.search(item)
	if found {
		item.Free()
		return AddResult{Outcome: Duplicate, Index: i}
	}
	b.items = append(b.items, Term{})
	copy(b.items[i+1:], b.items[i:])
	b.items[i] = item
	return AddResult{Outcome: Added, Index: i}
}

// Remove deletes the item at index i, freeing it, and shifts the
// remaining items down.
func (b *Bucket) Remove(i int) {
	b.items[i].Free()
	copy(b.items[i:], b.items[i+1:])
	b.items[len(b.items)-1] = Term{}
	b.items = b.items[:len(b.items)-1]
}

// Find returns the index of item if present.
func (b *Bucket) Find(item Term) (index int, found bool) {
	return b.search(item)
}

// Split partitions the bucket at floor(len/2): the receiver retains
// [0, mid) and a new bucket, allocated with the same capacity as the
// receiver, holds [mid, len). An empty or zero-capacity bucket splits
// into another empty bucket with no allocation.
func (b *Bucket) Split() *Bucket {
	if len(b.items) == 0 || b.cap == 0 {
		return &Bucket{cap: b.cap}
	}
	mid := len(b.items) / 2
	right := NewBucket(b.cap)
	right.items = append(right.items, b.items[mid:]...)
	for i := mid; i < len(b.items); i++ {
		b.items[i] = Term{}
	}
	b.items = b.items[:mid]
	return right
}

// ItemCompare is the range predicate used to binary search the bucket
// list for the bucket owning item:
//
//   - an empty bucket always answers Equal (a universal sink for the
//     first insert)
//   - item < First() answers Greater (the bucket lies to the right of
//     item)
//   - item > Last() answers Less (the bucket lies to the left of item)
//   - anything in between, including equality with a boundary,
//     answers Equal
func (b *Bucket) ItemCompare(item Term) Ordering {
	if len(b.items) == 0 {
		return Equal
	}
	if Cmp(item, b.First()) == Less {
		return Greater
	}
	if Cmp(item, b.Last()) == Greater {
		return Less
	}
	return Equal
}

// Free releases every item owned by the bucket.
func (b *Bucket) Free() {
	for i := range b.items {
		b.items[i].Free()
	}
	b.items = nil
}
