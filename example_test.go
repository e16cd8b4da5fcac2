package ordset

import "fmt"

func ExampleSortedSet_Add() {
	s := New(DefaultConfiguration())
	s.Add(NewInteger(3))
	s.Add(NewInteger(1))
	s.Add(NewInteger(2))
	for _, t := range s.ToVec() {
		fmt.Println(t.Int())
	}
	// Output:
	// 1
	// 2
	// 3
}

func ExampleSortedSet_Remove() {
	s := New(DefaultConfiguration())
	s.Add(NewAtom("a"))
	s.Add(NewAtom("b"))
	res, err := s.Remove(NewAtom("a"))
	if err != nil {
		panic(err)
	}
	fmt.Println(res.Index)
	fmt.Println(s.Size())
	// Output:
	// 0
	// 1
}

func ExampleSortedSet_Slice() {
	s := New(DefaultConfiguration())
	for _, v := range []int64{10, 20, 30, 40} {
		s.Add(NewInteger(v))
	}
	for _, t := range s.Slice(1, 2) {
		fmt.Println(t.Int())
	}
	// Output:
	// 20
	// 30
}
