package slotvec_test

import (
	"fmt"

	"github.com/hupe1980/slotvec"
)

func Example() {
	sv := slotvec.New[string]()

	a := sv.Push("apple")
	b := sv.Push("banana")
	c := sv.Push("cherry")

	// Removing an element leaves a hole; other indices stay valid.
	sv.Remove(b)

	fmt.Println(sv.NumElements())
	v, _ := sv.Get(a)
	fmt.Println(v)
	v, _ = sv.Get(c)
	fmt.Println(v)
	// Output:
	// 2
	// apple
	// cherry
}

func ExampleSlotVec_All() {
	sv := slotvec.FromSlice([]string{"a", "b", "c"})
	sv.Remove(1)

	for idx, v := range sv.All() {
		fmt.Println(idx, v)
	}
	// Output:
	// 0 a
	// 2 c
}

func ExampleSlotVec_MakeCompact() {
	sv := slotvec.FromSlice([]int{10, 20, 30, 40})
	sv.Remove(0)
	sv.Remove(2)

	sv.MakeCompact()

	fmt.Println(sv.IsCompact())
	fmt.Println(sv)
	// Output:
	// true
	// [20, 40]
}

func ExampleSlotVec_Insert() {
	sv := slotvec.New[string](slotvec.WithCapacity[string](5))

	sv.Insert(3, "late")
	fmt.Println(sv.NextPushIndex())
	fmt.Println(sv.NumElements())
	// Output:
	// 4
	// 1
}
