package handle

import (
	"unicode/utf8"

	"github.com/gosortedset/ordset"
	"github.com/gosortedset/ordset/intern"
)

// Value is the host-neutral encoded term shape: exactly what an
// external host would marshal a decoded foreign value into before
// crossing into this package. It is the boundary type; internal code
// works with ordset.Term.
type Value struct {
	Kind  ordset.Kind
	Int   int64
	Bytes []byte
	Elems []Value
}

// Int64 builds an encoded Integer value.
func Int64(v int64) Value { return Value{Kind: ordset.KindInteger, Int: v} }

// Atom builds an encoded Atom value.
func Atom(name string) Value { return Value{Kind: ordset.KindAtom, Bytes: []byte(name)} }

// Bitstring builds an encoded Bitstring value.
func Bitstring(payload []byte) Value { return Value{Kind: ordset.KindBitstring, Bytes: payload} }

// Tuple builds an encoded Tuple value.
func Tuple(elems ...Value) Value { return Value{Kind: ordset.KindTuple, Elems: elems} }

// List builds an encoded List value.
func List(elems ...Value) Value { return Value{Kind: ordset.KindList, Elems: elems} }

// decode converts a boundary Value into an internal ordset.Term,
// rejecting anything not in {Integer, Atom, Bitstring, Tuple, List}
// and any Bitstring whose payload is not valid UTF-8. Atom and
// Bitstring payloads are interned through cache when non-nil.
func decode(v Value, cache *intern.Cache) (ordset.Term, error) {
	switch v.Kind {
	case ordset.KindInteger:
		return ordset.NewInteger(v.Int), nil
	case ordset.KindAtom:
		return ordset.NewAtomFromOwned(internBytes(v.Bytes, cache)), nil
	case ordset.KindBitstring:
		if !utf8.Valid(v.Bytes) {
			return ordset.Term{}, ErrUnsupportedType
		}
		return ordset.NewBitstringFromOwned(internBytes(v.Bytes, cache)), nil
	case ordset.KindTuple:
		elems := make([]ordset.Term, len(v.Elems))
		for i, e := range v.Elems {
			t, err := decode(e, cache)
			if err != nil {
				for j := 0; j < i; j++ {
					elems[j].Free()
				}
				return ordset.Term{}, err
			}
			elems[i] = t
		}
		return ordset.NewTuple(elems), nil
	case ordset.KindList:
		elems := make([]ordset.Term, len(v.Elems))
		for i, e := range v.Elems {
			t, err := decode(e, cache)
			if err != nil {
				for j := 0; j < i; j++ {
					elems[j].Free()
				}
				return ordset.Term{}, err
			}
			elems[i] = t
		}
		return ordset.NewList(elems), nil
	default:
		return ordset.Term{}, ErrUnsupportedType
	}
}

func internBytes(b []byte, cache *intern.Cache) []byte {
	if cache == nil {
		return b
	}
	return cache.Intern(b)
}

// encode converts an internal ordset.Term into the host-neutral Value
// shape, deep-cloning nothing (the term is expected to already be an
// owned clone produced for the purpose of crossing back out).
func encode(t ordset.Term) Value {
	switch t.Kind() {
	case ordset.KindInteger:
		return Int64(t.Int())
	case ordset.KindAtom, ordset.KindBitstring:
		return Value{Kind: t.Kind(), Bytes: t.Bytes()}
	case ordset.KindTuple, ordset.KindList:
		elems := t.Elems()
		out := make([]Value, len(elems))
		for i, e := range elems {
			out[i] = encode(e)
		}
		return Value{Kind: t.Kind(), Elems: out}
	default:
		return Value{}
	}
}

func encodeSlice(ts []ordset.Term) []Value {
	out := make([]Value, len(ts))
	for i, t := range ts {
		out[i] = encode(t)
	}
	return out
}
