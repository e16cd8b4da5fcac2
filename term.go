package ordset

import "bytes"

// Kind tags the variant of a Term. The numeric order of the constants
// is the cross-type ordering used by Cmp and must not be reordered.
type Kind uint8

const (
	KindInteger Kind = iota
	KindAtom
	KindTuple
	KindList
	KindBitstring
)

func (k Kind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindAtom:
		return "atom"
	case KindTuple:
		return "tuple"
	case KindList:
		return "list"
	case KindBitstring:
		return "bitstring"
	default:
		return "unknown"
	}
}

// Term is a tagged value: Integer, Atom, Bitstring, Tuple, or List. A
// Term owns any bytes or child Terms it holds; Clone deep-copies that
// ownership and Free releases it. Terms are passed by value at API
// boundaries with ownership transferred to the receiver.
type Term struct {
	kind  Kind
	i     int64
	bytes []byte
	elems []Term
}

// NewInteger builds a signed 64-bit Integer term.
func NewInteger(v int64) Term {
	return Term{kind: KindInteger, i: v}
}

// NewAtom builds an Atom term from a UTF-8 name. The caller's byte
// slice is copied; ownership of the copy transfers to the returned Term.
func NewAtom(name string) Term {
	return Term{kind: KindAtom, bytes: []byte(name)}
}

// NewBitstring builds a Bitstring term from a UTF-8-validated payload.
// Validation happens at the host boundary (see the handle package),
// not here; NewBitstring copies its input.
func NewBitstring(payload []byte) Term {
	b := make([]byte, len(payload))
	copy(b, payload)
	return Term{kind: KindBitstring, bytes: b}
}

// NewAtomFromOwned builds an Atom term that takes ownership of payload
// directly, without copying. Callers must guarantee payload is not
// aliased or mutated elsewhere afterward. This is meant for buffers
// that come from a content-addressed interning cache, which only ever
// hands out immutable copies.
func NewAtomFromOwned(payload []byte) Term {
	return Term{kind: KindAtom, bytes: payload}
}

// NewBitstringFromOwned builds a Bitstring term that takes ownership
// of payload directly, without copying. Same aliasing contract as
// NewAtomFromOwned.
func NewBitstringFromOwned(payload []byte) Term {
	return Term{kind: KindBitstring, bytes: payload}
}

// NewTuple builds a fixed-arity Tuple term, taking ownership of elems.
func NewTuple(elems []Term) Term {
	return Term{kind: KindTuple, elems: elems}
}

// NewList builds a List term, taking ownership of elems.
func NewList(elems []Term) Term {
	return Term{kind: KindList, elems: elems}
}

// Kind returns the term's variant tag.
func (t Term) Kind() Kind { return t.kind }

// Int returns the integer value; only meaningful when Kind()==KindInteger.
func (t Term) Int() int64 { return t.i }

// Bytes returns the underlying byte payload for Atom and Bitstring
// terms. The returned slice aliases the term's storage and must not be
// mutated by the caller.
func (t Term) Bytes() []byte { return t.bytes }

// Elems returns the child terms of a Tuple or List. The returned slice
// aliases the term's storage and must not be mutated by the caller.
func (t Term) Elems() []Term { return t.elems }

// Clone produces a fully independent deep copy of t.
func (t Term) Clone() Term {
	switch t.kind {
	case KindInteger:
		return Term{kind: KindInteger, i: t.i}
	case KindAtom, KindBitstring:
		b := make([]byte, len(t.bytes))
		copy(b, t.bytes)
		return Term{kind: t.kind, bytes: b}
	case KindTuple, KindList:
		elems := make([]Term, len(t.elems))
		for i, e := range t.elems {
			elems[i] = e.Clone()
		}
		return Term{kind: t.kind, elems: elems}
	default:
		return Term{}
	}
}

// Free releases the entire subtree owned by t. It is not idempotent:
// calling Free twice on the same Term, or using a Term after Free, is
// a caller bug, not a defined behavior.
func (t *Term) Free() {
	switch t.kind {
	case KindTuple, KindList:
		for i := range t.elems {
			t.elems[i].Free()
		}
		t.elems = nil
	case KindAtom, KindBitstring:
		t.bytes = nil
	}
}

// Ordering is the result of a three-way comparison.
type Ordering int

const (
	Less    Ordering = -1
	Equal   Ordering = 0
	Greater Ordering = 1
)

// Cmp is the total order over Terms: variant rank first (Integer <
// Atom < Tuple < List < Bitstring), then content. It is the only
// comparison used anywhere in this package.
func Cmp(a, b Term) Ordering {
	if a.kind != b.kind {
		if a.kind < b.kind {
			return Less
		}
		return Greater
	}
	switch a.kind {
	case KindInteger:
		return cmpInt64(a.i, b.i)
	case KindAtom, KindBitstring:
		return cmpBytes(a.bytes, b.bytes)
	case KindTuple:
		if len(a.elems) != len(b.elems) {
			return cmpInt64(int64(len(a.elems)), int64(len(b.elems)))
		}
		return cmpElemsFull(a.elems, b.elems)
	case KindList:
		return cmpList(a.elems, b.elems)
	default:
		return Equal
	}
}

// Eql reports whether a and b compare Equal under Cmp.
func Eql(a, b Term) bool {
	return Cmp(a, b) == Equal
}

func cmpInt64(a, b int64) Ordering {
	switch {
	case a < b:
		return Less
	case a > b:
		return Greater
	default:
		return Equal
	}
}

func cmpBytes(a, b []byte) Ordering {
	switch c := bytes.Compare(a, b); {
	case c < 0:
		return Less
	case c > 0:
		return Greater
	default:
		return Equal
	}
}

// cmpElemsFull compares two equal-length slices element by element;
// used for Tuple, where arity has already been checked equal.
func cmpElemsFull(a, b []Term) Ordering {
	for i := range a {
		if c := Cmp(a[i], b[i]); c != Equal {
			return c
		}
	}
	return Equal
}

// cmpList compares element-wise up to the shorter length; if every
// compared element is equal, the shorter list sorts first.
func cmpList(a, b []Term) Ordering {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if c := Cmp(a[i], b[i]); c != Equal {
			return c
		}
	}
	return cmpInt64(int64(len(a)), int64(len(b)))
}
