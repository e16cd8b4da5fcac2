package ordset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func ints(vs ...int64) []Term {
	out := make([]Term, len(vs))
	for i, v := range vs {
		out[i] = NewInteger(v)
	}
	return out
}

func toInts(t *testing.T, terms []Term) []int64 {
	t.Helper()
	out := make([]int64, len(terms))
	for i, term := range terms {
		require.Equal(t, KindInteger, term.Kind())
		out[i] = term.Int()
	}
	return out
}

// S1: insert [3, 1, 2] with MaxBucketSize=500.
func TestScenarioS1(t *testing.T) {
	cfg, err := NewConfiguration(500, 0)
	require.NoError(t, err)
	s := New(cfg)

	r1 := s.Add(NewInteger(3))
	require.Equal(t, AddResult{Outcome: Added, Index: 0}, r1)
	r2 := s.Add(NewInteger(1))
	require.Equal(t, AddResult{Outcome: Added, Index: 0}, r2)
	r3 := s.Add(NewInteger(2))
	require.Equal(t, AddResult{Outcome: Added, Index: 1}, r3)

	require.Equal(t, []int64{1, 2, 3}, toInts(t, s.ToVec()))
}

// S2: MaxBucketSize=3, insert "aaa".."eee"; remove "ddd".
func TestScenarioS2(t *testing.T) {
	cfg, err := NewConfiguration(3, 0)
	require.NoError(t, err)
	s := New(cfg)
	for _, name := range []string{"aaa", "bbb", "ccc", "ddd", "eee"} {
		s.Add(NewAtom(name))
	}

	got := s.ToVec()
	require.Len(t, got, 5)
	names := make([]string, len(got))
	for i, term := range got {
		names[i] = string(term.Bytes())
	}
	require.Equal(t, []string{"aaa", "bbb", "ccc", "ddd", "eee"}, names)

	at3, err := s.At(3)
	require.NoError(t, err)
	require.Equal(t, "ddd", string(at3.Bytes()))

	res, err := s.Remove(NewAtom("ddd"))
	require.NoError(t, err)
	require.Equal(t, RemoveResult{Outcome: Removed, Index: 3}, res)

	got = s.ToVec()
	names = names[:0]
	for _, term := range got {
		names = append(names, string(term.Bytes()))
	}
	require.Equal(t, []string{"aaa", "bbb", "ccc", "eee"}, names)
}

// S3: MaxBucketSize=5, insert even integers 2..18; check FindBucketIndex.
func TestScenarioS3(t *testing.T) {
	cfg, err := NewConfiguration(5, 0)
	require.NoError(t, err)
	s := New(cfg)
	for v := int64(2); v <= 18; v += 2 {
		s.Add(NewInteger(v))
	}

	require.Equal(t, 1, s.FindBucketIndex(NewInteger(5)))
	require.Equal(t, 3, s.FindBucketIndex(NewInteger(21)))
	require.Equal(t, 0, s.FindBucketIndex(NewInteger(0)))
}

// S4: slice(3, 10) on the S3 set clamps silently.
func TestScenarioS4(t *testing.T) {
	cfg, err := NewConfiguration(5, 0)
	require.NoError(t, err)
	s := New(cfg)
	for v := int64(2); v <= 18; v += 2 {
		s.Add(NewInteger(v))
	}

	got := s.Slice(3, 10)
	require.Equal(t, []int64{8, 10, 12, 14, 16, 18}, toInts(t, got))
}

// S5: insert Integer(1), Atom("foo"), Bitstring("foo"), check variant rank order.
func TestScenarioS5(t *testing.T) {
	s := New(DefaultConfiguration())
	s.Add(NewBitstring([]byte("foo")))
	s.Add(NewInteger(1))
	s.Add(NewAtom("foo"))

	got := s.ToVec()
	require.Len(t, got, 3)
	require.Equal(t, KindInteger, got[0].Kind())
	require.Equal(t, KindAtom, got[1].Kind())
	require.Equal(t, KindBitstring, got[2].Kind())
}

// S6: AppendBucket boundary at MaxBucketSize.
func TestScenarioS6(t *testing.T) {
	cfg5, err := NewConfiguration(5, 0)
	require.NoError(t, err)
	s := Empty(cfg5)
	err = s.AppendBucket(ints(1, 2, 3, 4, 5))
	require.ErrorIs(t, err, ErrMaxBucketSizeExceeded)
	require.Equal(t, 0, s.Size())

	cfg6, err := NewConfiguration(6, 0)
	require.NoError(t, err)
	s = Empty(cfg6)
	err = s.AppendBucket(ints(1, 2, 3, 4, 5))
	require.NoError(t, err)
	require.Equal(t, 5, s.Size())
}

func TestAddThenAddSameReturnsDuplicateWithSameIndex(t *testing.T) {
	s := New(DefaultConfiguration())
	added := s.Add(NewInteger(7))
	require.Equal(t, Added, added.Outcome)
	dup := s.Add(NewInteger(7))
	require.Equal(t, Duplicate, dup.Outcome)
	require.Equal(t, added.Index, dup.Index)
	require.Equal(t, 1, s.Size())
}

func TestRemoveAbsentReturnsNotFoundAndLeavesSetUnchanged(t *testing.T) {
	s := New(DefaultConfiguration())
	s.Add(NewInteger(1))
	s.Add(NewInteger(2))
	before := toInts(t, s.ToVec())

	_, err := s.Remove(NewInteger(99))
	require.ErrorIs(t, err, ErrNotFound)
	require.Equal(t, before, toInts(t, s.ToVec()))
}

func TestFindIndexMatchesAtAndToVec(t *testing.T) {
	s := New(DefaultConfiguration())
	for _, v := range []int64{5, 1, 9, 3, 7} {
		s.Add(NewInteger(v))
	}
	all := s.ToVec()
	for i, term := range all {
		idx, err := s.FindIndex(term)
		require.NoError(t, err)
		require.Equal(t, i, idx)
		at, err := s.At(i)
		require.NoError(t, err)
		require.True(t, Eql(term, at))
	}
}

func TestAtOutOfBounds(t *testing.T) {
	s := New(DefaultConfiguration())
	s.Add(NewInteger(1))
	_, err := s.At(1)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
	_, err = s.At(-1)
	require.ErrorIs(t, err, ErrIndexOutOfBounds)
}

func TestAddRemoveIdempotence(t *testing.T) {
	s := New(DefaultConfiguration())
	s.Add(NewInteger(1))
	s.Add(NewInteger(2))
	before := s.Size()
	beforeList := toInts(t, s.ToVec())

	s.Add(NewInteger(42))
	_, err := s.Remove(NewInteger(42))
	require.NoError(t, err)

	require.Equal(t, before, s.Size())
	require.Equal(t, beforeList, toInts(t, s.ToVec()))
}

func TestSplitKeepsBucketsWithinCapacity(t *testing.T) {
	cfg, err := NewConfiguration(4, 0)
	require.NoError(t, err)
	s := New(cfg)
	for v := int64(0); v < 100; v++ {
		s.Add(NewInteger(v))
	}
	for _, b := range s.buckets {
		require.LessOrEqual(t, b.Len(), cfg.MaxBucketSize)
	}
	require.True(t, s.checkBucketOrder())
	require.Equal(t, 100, s.Size())
	require.Equal(t, 100, len(s.ToVec()))
}

func TestRemoveDropsEmptyBucketUnlessSole(t *testing.T) {
	cfg, err := NewConfiguration(2, 0)
	require.NoError(t, err)
	s := New(cfg)
	s.Add(NewInteger(1))
	s.Add(NewInteger(2))
	s.Add(NewInteger(3)) // forces a split

	require.Greater(t, len(s.buckets), 1)

	s.Remove(NewInteger(1))
	s.Remove(NewInteger(2))
	// The buckets that held 1 and 2 are now empty and should have been
	// pruned, unless one was the only bucket left.
	if len(s.buckets) > 1 {
		for _, b := range s.buckets {
			require.NotZero(t, b.Len())
		}
	}

	s.Remove(NewInteger(3))
	require.Equal(t, 1, len(s.buckets), "the sole remaining bucket may legitimately be empty")
	require.Equal(t, 0, s.buckets[0].Len())
}

func TestSliceEdgeCases(t *testing.T) {
	s := New(DefaultConfiguration())
	for _, v := range []int64{1, 2, 3} {
		s.Add(NewInteger(v))
	}
	require.Empty(t, s.Slice(10, 5))
	require.Empty(t, s.Slice(0, 0))
	require.Equal(t, []int64{1, 2, 3}, toInts(t, s.Slice(0, 100)))
}

func TestSliceReturnsClones(t *testing.T) {
	s := New(DefaultConfiguration())
	s.Add(NewTuple([]Term{NewAtom("x")}))
	got := s.Slice(0, 1)
	got[0].elems[0].bytes[0] = 'y'

	original, err := s.At(0)
	require.NoError(t, err)
	require.Equal(t, byte('x'), original.Elems()[0].Bytes()[0])
}

func TestIterStopsEarly(t *testing.T) {
	s := New(DefaultConfiguration())
	for _, v := range []int64{1, 2, 3, 4, 5} {
		s.Add(NewInteger(v))
	}
	var seen []int64
	err := s.Iter(func(term Term) (bool, error) {
		seen = append(seen, term.Int())
		return term.Int() < 3, nil
	})
	require.NoError(t, err)
	require.Equal(t, []int64{1, 2, 3}, seen)
}

func TestDiffReportsAddedAndRemoved(t *testing.T) {
	a := New(DefaultConfiguration())
	for _, v := range []int64{1, 2, 3} {
		a.Add(NewInteger(v))
	}
	b := New(DefaultConfiguration())
	for _, v := range []int64{2, 3, 4} {
		b.Add(NewInteger(v))
	}

	type change struct {
		added, removed bool
		value          int64
	}
	var changes []change
	err := a.Diff(b, func(added, removed bool, term Term) (bool, error) {
		changes = append(changes, change{added, removed, term.Int()})
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, []change{
		{added: true, value: 1},
		{removed: true, value: 4},
	}, changes)
}

func TestDiffAcrossMultipleBuckets(t *testing.T) {
	cfg, err := NewConfiguration(3, 0)
	require.NoError(t, err)
	a := New(cfg)
	for v := int64(0); v < 20; v++ {
		a.Add(NewInteger(v))
	}
	require.Greater(t, len(a.buckets), 1, "must exercise cursor advance across bucket boundaries")

	b := New(cfg)
	for v := int64(0); v < 20; v++ {
		if v == 5 || v == 12 {
			continue
		}
		b.Add(NewInteger(v))
	}

	var extra []int64
	err = a.Diff(b, func(added, removed bool, term Term) (bool, error) {
		require.True(t, added, "term present in a but not b must be reported as added")
		require.False(t, removed)
		extra = append(extra, term.Int())
		return true, nil
	})
	require.NoError(t, err)
	require.Equal(t, []int64{5, 12}, extra)
}

func TestDiffStopsEarly(t *testing.T) {
	a := New(DefaultConfiguration())
	for _, v := range []int64{1, 2, 3} {
		a.Add(NewInteger(v))
	}
	b := New(DefaultConfiguration())

	var calls int
	err := a.Diff(b, func(added, removed bool, term Term) (bool, error) {
		calls++
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestAppendBucketOnEmptyAppendsInOrder(t *testing.T) {
	cfg, err := NewConfiguration(5, 0)
	require.NoError(t, err)
	s := Empty(cfg)
	require.NoError(t, s.AppendBucket(ints(1, 2, 3)))
	require.NoError(t, s.AppendBucket(ints(10, 11)))
	require.Equal(t, 5, s.Size())
	require.Equal(t, []int64{1, 2, 3, 10, 11}, toInts(t, s.ToVec()))
}

func TestDebugDoesNotPanic(t *testing.T) {
	s := New(DefaultConfiguration())
	s.Add(NewInteger(1))
	require.NotEmpty(t, s.Debug())
}
