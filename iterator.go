package ringbuffer

import "fmt"

// Position is implemented by Iterator and ConstIterator. It lets Insert,
// Erase and iterator comparisons accept either kind.
type Position[T any] interface {
	// Offset returns the logical offset from the front of the buffer.
	Offset() int
	cur() cursor[T]
}

// cursor is the state shared by every iterator kind: the storage it walks
// and a logical offset from the front. The offset is mapped to a physical
// slot only when dereferenced, so arithmetic and ordering never depend on
// where the block wraps.
type cursor[T any] struct {
	st  *storage[T]
	off int
}

func (c cursor[T]) valid() bool {
	return c.st != nil && c.off >= 0 && c.off < c.st.size
}

func (c cursor[T]) slot() *T {
	if !c.valid() {
		size := 0
		if c.st != nil {
			size = c.st.size
		}
		panic(fmt.Sprintf("ringbuffer: dereferencing iterator at offset %d with length %d", c.off, size))
	}
	return c.st.slot(c.off)
}

func (c cursor[T]) diff(o cursor[T]) int {
	if c.st != o.st {
		panic("ringbuffer: comparing iterators of different RingBuffers")
	}
	return c.off - o.off
}

func (c cursor[T]) compare(o cursor[T]) int {
	switch d := c.diff(o); {
	case d < 0:
		return -1
	case d > 0:
		return 1
	}
	return 0
}

func (c cursor[T]) add(n int) cursor[T] { return cursor[T]{c.st, c.off + n} }

// Iterator is a random access position in a RingBuffer that can read and
// write the element it denotes. Moving it never touches the buffer; it is
// checked only when dereferenced.
type Iterator[T any] struct {
	c cursor[T]
}

func (it Iterator[T]) cur() cursor[T] { return it.c }

// Offset returns the logical offset from the front of the buffer.
func (it Iterator[T]) Offset() int { return it.c.off }

// Valid reports whether it denotes an element.
func (it Iterator[T]) Valid() bool { return it.c.valid() }

// Get returns the denoted element. Panics if it does not denote one.
func (it Iterator[T]) Get() T { return *it.c.slot() }

// Set replaces the denoted element like RingBuffer.Set. Panics if it does
// not denote one.
func (it Iterator[T]) Set(t T) error {
	p := it.c.slot()
	return it.c.st.assign(p, t)
}

// Ptr returns a pointer to the denoted element, valid until the next
// mutation of the buffer. Writing through it bypasses the Copy and Release
// hooks.
func (it Iterator[T]) Ptr() *T { return it.c.slot() }

// Next returns the iterator one element further.
func (it Iterator[T]) Next() Iterator[T] { return Iterator[T]{it.c.add(1)} }

// Prev returns the iterator one element back.
func (it Iterator[T]) Prev() Iterator[T] { return Iterator[T]{it.c.add(-1)} }

// Add returns the iterator n elements further. n may be negative.
func (it Iterator[T]) Add(n int) Iterator[T] { return Iterator[T]{it.c.add(n)} }

// Diff returns the number of elements from o to it. Panics if they come
// from different buffers.
func (it Iterator[T]) Diff(o Position[T]) int { return it.c.diff(o.cur()) }

// Compare returns -1, 0 or +1 as it is before, at or after o.
func (it Iterator[T]) Compare(o Position[T]) int { return it.c.compare(o.cur()) }

// Less reports whether it is before o.
func (it Iterator[T]) Less(o Position[T]) bool { return it.c.compare(o.cur()) < 0 }

// Equal reports whether it and o denote the same position of the same
// buffer.
func (it Iterator[T]) Equal(o Position[T]) bool { return it.c == o.cur() }

// Const returns a read-only iterator at the same position.
func (it Iterator[T]) Const() ConstIterator[T] { return ConstIterator[T]{it.c} }

// ConstIterator is a read-only Iterator.
type ConstIterator[T any] struct {
	c cursor[T]
}

func (it ConstIterator[T]) cur() cursor[T] { return it.c }

// Offset returns the logical offset from the front of the buffer.
func (it ConstIterator[T]) Offset() int { return it.c.off }

// Valid reports whether it denotes an element.
func (it ConstIterator[T]) Valid() bool { return it.c.valid() }

// Get returns the denoted element. Panics if it does not denote one.
func (it ConstIterator[T]) Get() T { return *it.c.slot() }

// Next returns the iterator one element further.
func (it ConstIterator[T]) Next() ConstIterator[T] { return ConstIterator[T]{it.c.add(1)} }

// Prev returns the iterator one element back.
func (it ConstIterator[T]) Prev() ConstIterator[T] { return ConstIterator[T]{it.c.add(-1)} }

// Add returns the iterator n elements further. n may be negative.
func (it ConstIterator[T]) Add(n int) ConstIterator[T] { return ConstIterator[T]{it.c.add(n)} }

// Diff returns the number of elements from o to it.
func (it ConstIterator[T]) Diff(o Position[T]) int { return it.c.diff(o.cur()) }

// Compare returns -1, 0 or +1 as it is before, at or after o.
func (it ConstIterator[T]) Compare(o Position[T]) int { return it.c.compare(o.cur()) }

// Less reports whether it is before o.
func (it ConstIterator[T]) Less(o Position[T]) bool { return it.c.compare(o.cur()) < 0 }

// Equal reports whether it and o denote the same position of the same
// buffer.
func (it ConstIterator[T]) Equal(o Position[T]) bool { return it.c == o.cur() }

// ReverseIterator walks a RingBuffer from back to front. It wraps a forward
// Iterator and denotes the element just before it, so RBegin wraps End and
// REnd wraps Begin.
type ReverseIterator[T any] struct {
	base Iterator[T]
}

// Base returns the wrapped forward iterator, one past the denoted element.
func (it ReverseIterator[T]) Base() Iterator[T] { return it.base }

// Valid reports whether it denotes an element.
func (it ReverseIterator[T]) Valid() bool { return it.base.Prev().Valid() }

// Get returns the denoted element. Panics if it does not denote one.
func (it ReverseIterator[T]) Get() T { return it.base.Prev().Get() }

// Set replaces the denoted element like RingBuffer.Set.
func (it ReverseIterator[T]) Set(t T) error { return it.base.Prev().Set(t) }

// Next returns the iterator one element closer to the front.
func (it ReverseIterator[T]) Next() ReverseIterator[T] { return ReverseIterator[T]{it.base.Prev()} }

// Prev returns the iterator one element closer to the back.
func (it ReverseIterator[T]) Prev() ReverseIterator[T] { return ReverseIterator[T]{it.base.Next()} }

// Add returns the iterator n elements closer to the front.
func (it ReverseIterator[T]) Add(n int) ReverseIterator[T] { return ReverseIterator[T]{it.base.Add(-n)} }

// Diff returns the number of elements from o to it in reverse order.
func (it ReverseIterator[T]) Diff(o ReverseIterator[T]) int { return o.base.Diff(it.base) }

// Less reports whether it comes before o in reverse order.
func (it ReverseIterator[T]) Less(o ReverseIterator[T]) bool { return o.base.Less(it.base) }

// Equal reports whether it and o denote the same position.
func (it ReverseIterator[T]) Equal(o ReverseIterator[T]) bool { return it.base.Equal(o.base) }

// Const returns a read-only reverse iterator at the same position.
func (it ReverseIterator[T]) Const() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it.base.Const()}
}

// ConstReverseIterator is a read-only ReverseIterator.
type ConstReverseIterator[T any] struct {
	base ConstIterator[T]
}

// Base returns the wrapped forward iterator, one past the denoted element.
func (it ConstReverseIterator[T]) Base() ConstIterator[T] { return it.base }

// Valid reports whether it denotes an element.
func (it ConstReverseIterator[T]) Valid() bool { return it.base.Prev().Valid() }

// Get returns the denoted element. Panics if it does not denote one.
func (it ConstReverseIterator[T]) Get() T { return it.base.Prev().Get() }

// Next returns the iterator one element closer to the front.
func (it ConstReverseIterator[T]) Next() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it.base.Prev()}
}

// Prev returns the iterator one element closer to the back.
func (it ConstReverseIterator[T]) Prev() ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it.base.Next()}
}

// Add returns the iterator n elements closer to the front.
func (it ConstReverseIterator[T]) Add(n int) ConstReverseIterator[T] {
	return ConstReverseIterator[T]{it.base.Add(-n)}
}

// Diff returns the number of elements from o to it in reverse order.
func (it ConstReverseIterator[T]) Diff(o ConstReverseIterator[T]) int { return o.base.Diff(it.base) }

// Less reports whether it comes before o in reverse order.
func (it ConstReverseIterator[T]) Less(o ConstReverseIterator[T]) bool { return o.base.Less(it.base) }

// Equal reports whether it and o denote the same position.
func (it ConstReverseIterator[T]) Equal(o ConstReverseIterator[T]) bool {
	return it.base.Equal(o.base)
}
