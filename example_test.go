package ringbuffer_test

import (
	"fmt"

	"github.com/lucasgdosr/ringbuffer"
)

// Example showing both ends, a positional insert and erase, and iteration in
// both directions.
func Example() {
	r := ringbuffer.New[int]()
	_ = r.PushBack(1)
	_ = r.PushBack(2)
	_ = r.PushFront(0)

	_, _ = r.Insert(r.Begin().Add(1), 9)
	fmt.Println(r.ToSlice())

	r.Erase(r.Begin().Add(2))
	r.PopFront()

	var forward, backward []int
	for _, v := range r.All() {
		forward = append(forward, v)
	}
	for it := r.RBegin(); !it.Equal(r.REnd()); it = it.Next() {
		backward = append(backward, it.Get())
	}
	fmt.Println(forward, backward)

	// Output:
	// [0 9 1 2]
	// [9 2] [2 9]
}

// Example showing a Copy hook that fails, leaving the buffer untouched.
func ExampleOptions() {
	calls := 0
	r, _ := ringbuffer.NewWithOptions(ringbuffer.Options[string]{
		Capacity: 2,
		Copy: func(s string) (string, error) {
			calls++
			if calls > 4 {
				return "", fmt.Errorf("copy %d refused", calls)
			}
			return s, nil
		},
	})
	_ = r.PushBack("a")
	_ = r.PushBack("b")

	// Growing needs the new value plus two relocations; the second one fails.
	err := r.PushBack("c")
	fmt.Println(err)
	fmt.Println(r.Len(), r.Cap(), r.ToSlice())

	// Output:
	// ringbuffer: copying element failed: relocating element 1: copy 5 refused
	// 2 2 [a b]
}
