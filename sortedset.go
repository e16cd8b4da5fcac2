package ordset

import (
	"fmt"
	"strings"
)

// SortedSet is an ordered list of buckets maintaining global
// sortedness and dedup across buckets, a running total count, and
// empty buckets pruned on removal except when the bucket list has
// exactly one (necessarily empty) bucket.
//
// SortedSet is not safe for concurrent use; see the handle package for
// a locked wrapper.
type SortedSet struct {
	cfg     Configuration
	buckets []*Bucket
	count   int
}

// Empty returns a SortedSet with no buckets. cfg.MaxBucketSize must be
// >= 1; Empty panics otherwise rather than deferring the failure to
// first use. Add on a set built with Empty provisions its first bucket
// itself; AppendBucket may also be used to bulk-load buckets first.
func Empty(cfg Configuration) *SortedSet {
	if cfg.MaxBucketSize < 1 {
		panic("ordset: MaxBucketSize must be >= 1")
	}
	capacity := cfg.InitialSetCapacity
	if capacity < 0 {
		capacity = 0
	}
	return &SortedSet{
		cfg:     cfg,
		buckets: make([]*Bucket, 0, capacity),
	}
}

// New returns a SortedSet with a single empty bucket already in
// place, so Add always has an obvious target.
func New(cfg Configuration) *SortedSet {
	s := Empty(cfg)
	s.buckets = append(s.buckets, NewBucket(cfg.MaxBucketSize))
	return s
}

// FindBucketIndex binary-searches the bucket list using each bucket's
// ItemCompare, returning the index of the bucket that owns item (or
// the bucket into which it should be inserted). On an empty set it
// returns 0; callers must treat |buckets|==0 as "no bucket exists".
func (s *SortedSet) FindBucketIndex(item Term) int {
	n := len(s.buckets)
	if n == 0 {
		return 0
	}
	lo, hi := 0, n
	for lo < hi {
		mid := (lo + hi) / 2
		switch s.buckets[mid].ItemCompare(item) {
		case Equal:
			return mid
		case Greater:
			hi = mid
		case Less:
			lo = mid + 1
		}
	}
	if lo >= n {
		lo = n - 1
	}
	return lo
}

func (s *SortedSet) effectiveIndex(bucketIdx, inner int) int {
	total := inner
	for j := 0; j < bucketIdx; j++ {
		total += s.buckets[j].Len()
	}
	return total
}

// Add inserts item, taking ownership of it. On Duplicate the incoming
// item has already been freed by the owning bucket and Size() is
// unchanged; on Added, Size() has grown by one and the bucket that
// received item is split if it now holds MaxBucketSize or more items.
// A set with no buckets (built with Empty) gets one empty bucket
// before the insert.
func (s *SortedSet) Add(item Term) AddResult {
	if len(s.buckets) == 0 {
		s.buckets = append(s.buckets, NewBucket(s.cfg.MaxBucketSize))
	}
	bi := s.FindBucketIndex(item)
	bucket := s.buckets[bi]
	res := bucket.Add(item)
	if res.Outcome == Duplicate {
		return AddResult{Outcome: Duplicate, Index: s.effectiveIndex(bi, res.Index)}
	}
	effective := s.effectiveIndex(bi, res.Index)
	s.count++
	if bucket.Len() >= s.cfg.MaxBucketSize {
		right := bucket.Split()
		s.buckets = append(s.buckets, nil)
		copy(s.buckets[bi+2:], s.buckets[bi+1:])
		s.buckets[bi+1] = right
	}
	return AddResult{Outcome: Added, Index: effective}
}

// RemoveOutcome tags the result of Remove.
type RemoveOutcome int

const (
	Removed RemoveOutcome = iota
)

// RemoveResult carries the effective index the removed item held.
type RemoveResult struct {
	Outcome RemoveOutcome
	Index   int
}

// Remove deletes item if present, returning ErrNotFound (with the set
// unchanged) otherwise. An emptied bucket is dropped from the list
// unless it is the sole remaining bucket.
func (s *SortedSet) Remove(item Term) (RemoveResult, error) {
	bi, inner, idx, found := s.locate(item)
	if !found {
		return RemoveResult{}, ErrNotFound
	}
	bucket := s.buckets[bi]
	bucket.Remove(inner)
	if bucket.Len() == 0 && len(s.buckets) > 1 {
		bucket.Free()
		s.buckets = append(s.buckets[:bi], s.buckets[bi+1:]...)
	}
	s.count--
	return RemoveResult{Outcome: Removed, Index: idx}, nil
}

// AppendBucket bulk-appends items as a new trailing bucket. items must
// already be sorted, strictly greater than every existing element,
// and strictly shorter than MaxBucketSize; violating this precondition
// is undefined behavior, not validated here beyond the length check.
// On success, ownership of items transfers to the new bucket. On
// ErrMaxBucketSizeExceeded, items is freed and the set is unchanged.
func (s *SortedSet) AppendBucket(items []Term) error {
	if len(items) >= s.cfg.MaxBucketSize {
		for i := range items {
			items[i].Free()
		}
		return ErrMaxBucketSizeExceeded
	}
	b := NewBucket(s.cfg.MaxBucketSize)
	b.items = append(b.items, items...)
	s.buckets = append(s.buckets, b)
	s.count += len(items)
	return nil
}

// locate finds item's bucket index, in-bucket index, and effective
// index, or reports not found.
func (s *SortedSet) locate(item Term) (bucketIdx, inner, idx int, found bool) {
	if len(s.buckets) == 0 {
		return 0, 0, 0, false
	}
	bi := s.FindBucketIndex(item)
	i, ok := s.buckets[bi].Find(item)
	if !ok {
		return 0, 0, 0, false
	}
	return bi, i, s.effectiveIndex(bi, i), true
}

// FindIndex returns the effective index of item, or ErrNotFound.
func (s *SortedSet) FindIndex(item Term) (int, error) {
	_, _, idx, found := s.locate(item)
	if !found {
		return 0, ErrNotFound
	}
	return idx, nil
}

// At returns the item at effective index i without cloning it, or
// ErrIndexOutOfBounds when i >= Size().
func (s *SortedSet) At(i int) (Term, error) {
	if i < 0 {
		return Term{}, ErrIndexOutOfBounds
	}
	for _, b := range s.buckets {
		if i < b.Len() {
			return b.At(i), nil
		}
		i -= b.Len()
	}
	return Term{}, ErrIndexOutOfBounds
}

// Slice returns a newly allocated, deep-cloned vector covering the
// half-open range [start, min(start+amount, Size())). Over-requesting
// clamps silently rather than erroring.
func (s *SortedSet) Slice(start, amount int) []Term {
	if start < 0 || amount <= 0 || start >= s.count {
		return []Term{}
	}
	end := start + amount
	if end > s.count {
		end = s.count
	}
	out := make([]Term, 0, end-start)
	skipped := 0
	for _, b := range s.buckets {
		if skipped+b.Len() <= start {
			skipped += b.Len()
			continue
		}
		for i := 0; i < b.Len(); i++ {
			pos := skipped + i
			if pos < start {
				continue
			}
			if pos >= end {
				return out
			}
			out = append(out, b.At(i).Clone())
		}
		skipped += b.Len()
	}
	return out
}

// ToVec deep-clones every element in order into a fresh vector.
func (s *SortedSet) ToVec() []Term {
	out := make([]Term, 0, s.count)
	for _, b := range s.buckets {
		for i := 0; i < b.Len(); i++ {
			out = append(out, b.At(i).Clone())
		}
	}
	return out
}

// Iter visits every term in order without allocating an intermediate
// vector, stopping early if f returns keepGoing==false or an error.
func (s *SortedSet) Iter(f func(Term) (keepGoing bool, err error)) error {
	for _, b := range s.buckets {
		for i := 0; i < b.Len(); i++ {
			keepGoing, err := f(b.At(i))
			if err != nil {
				return err
			}
			if !keepGoing {
				return nil
			}
		}
	}
	return nil
}

// diffCursor walks one set's buckets in order without materializing a
// vector: it tracks a bucket index and an offset within that bucket,
// skipping past exhausted or empty buckets as it goes.
type diffCursor struct {
	set    *SortedSet
	bucket int
	inner  int
}

func newDiffCursor(s *SortedSet) *diffCursor {
	return &diffCursor{set: s}
}

// valid reports whether the cursor is positioned on a term, advancing
// past any exhausted or empty buckets first.
func (c *diffCursor) valid() bool {
	for c.bucket < len(c.set.buckets) && c.inner >= c.set.buckets[c.bucket].Len() {
		c.bucket++
		c.inner = 0
	}
	return c.bucket < len(c.set.buckets)
}

// peek returns the term currently under the cursor without cloning it.
func (c *diffCursor) peek() Term {
	return c.set.buckets[c.bucket].At(c.inner)
}

func (c *diffCursor) advance() {
	c.inner++
}

// Diff walks s and other in lockstep over bucket cursors. Neither
// side's full contents is ever materialized. It invokes f for every
// term present in one but not the other. added==true means present in
// s but not other; removed==true means present in other but not s.
// Because terms carry no separate value, added and removed are never
// both true for the same call. The term passed to f is an independent
// clone owned by the caller.
func (s *SortedSet) Diff(other *SortedSet, f func(added, removed bool, term Term) (keepGoing bool, err error)) error {
	ca := newDiffCursor(s)
	cb := newDiffCursor(other)
	for ca.valid() && cb.valid() {
		switch Cmp(ca.peek(), cb.peek()) {
		case Equal:
			ca.advance()
			cb.advance()
		case Less:
			if keepGoing, err := f(true, false, ca.peek().Clone()); err != nil {
				return err
			} else if !keepGoing {
				return nil
			}
			ca.advance()
		case Greater:
			if keepGoing, err := f(false, true, cb.peek().Clone()); err != nil {
				return err
			} else if !keepGoing {
				return nil
			}
			cb.advance()
		}
	}
	for ca.valid() {
		if keepGoing, err := f(true, false, ca.peek().Clone()); err != nil {
			return err
		} else if !keepGoing {
			return nil
		}
		ca.advance()
	}
	for cb.valid() {
		if keepGoing, err := f(false, true, cb.peek().Clone()); err != nil {
			return err
		} else if !keepGoing {
			return nil
		}
		cb.advance()
	}
	return nil
}

// Size returns the running element count in O(1).
func (s *SortedSet) Size() int { return s.count }

// Debug returns an implementation-defined textual snapshot for
// diagnostics only; its format carries no stability contract.
func (s *SortedSet) Debug() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "SortedSet{count=%d, buckets=%d, maxBucketSize=%d}\n", s.count, len(s.buckets), s.cfg.MaxBucketSize)
	for i, b := range s.buckets {
		fmt.Fprintf(&sb, "  bucket[%d]: len=%d\n", i, b.Len())
	}
	return sb.String()
}

// Free releases every bucket and every term the set owns.
func (s *SortedSet) Free() {
	for _, b := range s.buckets {
		b.Free()
	}
	s.buckets = nil
	s.count = 0
}

// checkBucketOrder validates the adjacent-bucket ordering invariant;
// used by this package's own tests.
func (s *SortedSet) checkBucketOrder() bool {
	for i := 0; i+1 < len(s.buckets); i++ {
		left, right := s.buckets[i], s.buckets[i+1]
		if left.Len() == 0 || right.Len() == 0 {
			continue
		}
		if Cmp(left.Last(), right.First()) != Less {
			return false
		}
	}
	return true
}
