// Package ringbuffer provides RingBuffer, a growable double-ended sequence
// stored in a single circular block.
package ringbuffer

import (
	"errors"
	"fmt"
)

// RingBuffer is a double-ended sequence backed by one contiguous block
// addressed with wrap-around indexing. Pushing and popping at either end is
// amortized O(1), indexing is O(1), and Insert and Erase at logical offset k
// cost O(min(k, n-k)) because they shift whichever side is shorter.
//
// The zero value is an empty buffer ready to use. Capacity is always 0 or a
// power of two. When a push or insert overflows it, every element is
// relocated to a block at least twice as large. Capacity never shrinks
// unless Shrink or Resize is called.
//
// Any operation that relocates the block invalidates every outstanding
// iterator. Insert and Erase that do not grow invalidate the iterators
// inside the span they shifted.
//
// Out of range indexes and pops on an empty buffer are contract violations
// and panic. Failures of the Copy hook are returned as errors and leave the
// buffer as it was before the call.
//
// RingBuffer is not safe to use concurrently from multiple goroutines.
type RingBuffer[T any] struct {
	st *storage[T]
}

/*****************************************************************************
 * CONSTRUCTORS
 *****************************************************************************/

// New returns an empty RingBuffer that allocates on first use. It is
// equivalent to new(RingBuffer[T]).
func New[T any]() *RingBuffer[T] {
	return &RingBuffer[T]{st: newStorage(&Options[T]{})}
}

// NewWithCapacity allocates room for at least capacity elements, rounded up
// to a power of two. Returns an error if passed a negative value.
func NewWithCapacity[T any](capacity int) (*RingBuffer[T], error) {
	return NewWithOptions(Options[T]{Capacity: capacity})
}

// NewWithOptions builds a RingBuffer with the given element hooks and
// initial capacity.
func NewWithOptions[T any](opts Options[T]) (*RingBuffer[T], error) {
	if opts.Capacity < 0 {
		return nil, ErrNegativeCapacity
	}
	st := newStorage(&opts)
	if opts.Capacity > 0 {
		st.buf = make([]T, ceilPow2(opts.Capacity))
	}
	return &RingBuffer[T]{st: st}, nil
}

// FromSlice copies every element of s into a new RingBuffer. Memory is not
// shared with s.
func FromSlice[T any](s []T) *RingBuffer[T] {
	r := New[T]()
	if len(s) > 0 {
		r.st.buf = make([]T, ceilPow2(len(s)))
		r.st.size = copy(r.st.buf, s)
	}
	return r
}

// Clone returns an independent copy with the same logical contents and
// hooks. Elements are built through the Copy hook and laid out from
// physical slot 0. If a copy fails, the elements already copied are
// released and the error is returned.
func (r *RingBuffer[T]) Clone() (*RingBuffer[T], error) {
	s := r.storage()
	c := &storage[T]{copy: s.copy, release: s.release, log: s.log}
	if s.size > 0 {
		c.buf = make([]T, ceilPow2(s.size))
	}
	for i := range s.size {
		v, err := s.copy(*s.slot(i))
		if err != nil {
			c.destroyAll()
			return nil, fmt.Errorf("%w: cloning element %d: %w", ErrCopy, i, err)
		}
		c.pushBack(v)
		c.copied++
	}
	return &RingBuffer[T]{st: c}, nil
}

// Assign replaces the contents of r with a copy of src, adopting src's
// hooks. The copy is built before r is touched, so on error r is
// unchanged. The previous contents of r are released.
func (r *RingBuffer[T]) Assign(src *RingBuffer[T]) error {
	if r.storage() == src.storage() {
		return nil
	}
	tmp, err := src.Clone()
	if err != nil {
		return err
	}
	r.Swap(tmp)
	tmp.Clear()
	return nil
}

func (r *RingBuffer[T]) storage() *storage[T] {
	if r.st == nil {
		r.st = newStorage(&Options[T]{})
	}
	return r.st
}

/*****************************************************************************
 * DEQUE API
 *****************************************************************************/

// Len returns the number of elements in the RingBuffer or 0 if nil.
func (r *RingBuffer[T]) Len() int {
	if r == nil || r.st == nil {
		return 0
	}
	return r.st.size
}

// Empty returns whether the RingBuffer holds no elements.
func (r *RingBuffer[T]) Empty() bool { return r.Len() == 0 }

// PushBack appends t after the last element. The value goes through the
// Copy hook before the buffer grows, and a failure of either step leaves
// the buffer unchanged.
func (r *RingBuffer[T]) PushBack(t T) error {
	s := r.storage()
	v, err := s.construct(t)
	if err != nil {
		return err
	}
	if err := s.reserve(1); err != nil {
		s.release(v)
		return err
	}
	s.pushBack(v)
	return nil
}

// PushFront prepends t before the first element, with the same failure
// guarantees as PushBack.
func (r *RingBuffer[T]) PushFront(t T) error {
	s := r.storage()
	v, err := s.construct(t)
	if err != nil {
		return err
	}
	if err := s.reserve(1); err != nil {
		s.release(v)
		return err
	}
	s.pushFront(v)
	return nil
}

// PopBack removes the last element and returns it, zeroing its slot.
// Panics if the RingBuffer is empty.
func (r *RingBuffer[T]) PopBack() T {
	r.checkNotEmpty("PopBack")
	return r.st.popBack()
}

// PopFront removes the first element and returns it, zeroing its slot.
// Panics if the RingBuffer is empty.
func (r *RingBuffer[T]) PopFront() T {
	r.checkNotEmpty("PopFront")
	return r.st.popFront()
}

// Front returns the first element. Panics if the RingBuffer is empty.
func (r *RingBuffer[T]) Front() T {
	r.checkNotEmpty("Front")
	return *r.st.slot(0)
}

// Back returns the last element. Panics if the RingBuffer is empty.
func (r *RingBuffer[T]) Back() T {
	r.checkNotEmpty("Back")
	return *r.st.slot(r.st.size - 1)
}

// Insert places t at the logical position of pos and returns an iterator to
// it. Elements before pos move one slot toward the front when they are no
// more numerous than those at or after it; otherwise the latter move one
// slot toward the back.
//
// Growth happens before anything moves. On error nothing is inserted and
// the contents are unchanged.
func (r *RingBuffer[T]) Insert(pos Position[T], t T) (Iterator[T], error) {
	s := r.storage()
	k := r.checkPosition(pos, s.size)
	v, err := s.construct(t)
	if err != nil {
		return Iterator[T]{}, err
	}
	if err := s.reserve(1); err != nil {
		s.release(v)
		return Iterator[T]{}, err
	}

	n := s.size
	if k <= n-k {
		s.head = s.phys(-1)
		s.size++
		for i := 0; i < k; i++ {
			s.move(i, i+1)
		}
	} else {
		s.size++
		for i := n; i > k; i-- {
			s.move(i, i-1)
		}
	}
	*s.slot(k) = v
	return Iterator[T]{cursor[T]{s, k}}, nil
}

// Erase releases the element at pos, closes the gap by shifting the shorter
// side, and returns an iterator to the element that followed it, which is
// End when the last element was erased. Panics if pos does not denote an
// element.
func (r *RingBuffer[T]) Erase(pos Position[T]) Iterator[T] {
	s := r.storage()
	k := r.checkPosition(pos, s.size-1)
	s.release(*s.slot(k))

	n := s.size
	if k <= n-1-k {
		for i := k; i > 0; i-- {
			s.move(i, i-1)
		}
		s.popFront()
	} else {
		for i := k; i < n-1; i++ {
			s.move(i, i+1)
		}
		s.popBack()
	}
	return Iterator[T]{cursor[T]{s, k}}
}

// Clear releases every element in order and empties the RingBuffer. The
// allocated block is kept for reuse; call Shrink to free it.
func (r *RingBuffer[T]) Clear() {
	if r.st != nil {
		r.st.destroyAll()
	}
}

// Swap exchanges the contents, capacity and hooks of r and other in O(1).
// Iterators keep following the block they were obtained from, which after
// the swap belongs to the other RingBuffer.
func (r *RingBuffer[T]) Swap(other *RingBuffer[T]) {
	a, b := r.storage(), other.storage()
	r.st, other.st = b, a
}

/*****************************************************************************
 * CAPACITY API
 *****************************************************************************/

// Cap returns the number of elements the RingBuffer can hold before it has
// to grow.
func (r *RingBuffer[T]) Cap() int {
	if r == nil || r.st == nil {
		return 0
	}
	return r.st.cap()
}

// Reserve ensures there's enough capacity to add at least n more elements,
// reallocating if necessary. It returns an error if n is negative or if
// relocating an element fails, in which case the RingBuffer is unchanged.
func (r *RingBuffer[T]) Reserve(n int) error {
	return r.storage().reserve(n)
}

// Resize takes in the minimum desired capacity, rounds it up to a power of
// two, and reallocates the underlying block. A minCapacity of 0 frees the
// block of an empty RingBuffer.
//
// It returns an error if the new capacity matches the old, or if the new
// capacity cannot hold the existing elements, or if minCapacity is negative.
func (r *RingBuffer[T]) Resize(minCapacity int) error {
	if minCapacity < 0 {
		return ErrNegativeCapacity
	}
	newCap := 0
	if minCapacity > 0 {
		newCap = ceilPow2(minCapacity)
	}
	return r.storage().resize(newCap)
}

// Shrink reallocates to the smallest power of two that holds the elements,
// or frees the block if the RingBuffer is empty.
func (r *RingBuffer[T]) Shrink() error {
	s := r.storage()
	newCap := 0
	if s.size > 0 {
		newCap = ceilPow2(s.size)
	}
	if newCap == s.cap() {
		return nil
	}
	return s.relocate(newCap)
}

/*****************************************************************************
 * INDEX API
 *****************************************************************************/

// At returns the element at logical index i. Panics if out of bounds.
func (r *RingBuffer[T]) At(i int) T {
	r.checkBounds(i)
	return *r.st.slot(i)
}

// AtUnsafe returns the element at logical index i without checking bounds.
// An out of range i silently reads another slot of the block.
func (r *RingBuffer[T]) AtUnsafe(i int) T {
	return *r.st.slot(i)
}

// Set replaces the element at logical index i with a copy of t built through
// the Copy hook, and releases the old one. On error the old element stays.
// Panics if out of bounds.
func (r *RingBuffer[T]) Set(i int, t T) error {
	r.checkBounds(i)
	return r.st.assign(r.st.slot(i), t)
}

// SetUnsafe is Set without the bounds check.
func (r *RingBuffer[T]) SetUnsafe(i int, t T) error {
	return r.st.assign(r.st.slot(i), t)
}

// Ptr returns a pointer to the element at logical index i. The pointer is
// only valid until the next mutation of r. Writing through it bypasses the
// Copy and Release hooks. Panics if out of bounds.
func (r *RingBuffer[T]) Ptr(i int) *T {
	r.checkBounds(i)
	return r.st.slot(i)
}

/*****************************************************************************
 * ITERATOR API
 *****************************************************************************/

// Begin returns an iterator to the first element.
func (r *RingBuffer[T]) Begin() Iterator[T] {
	return Iterator[T]{cursor[T]{r.storage(), 0}}
}

// End returns the iterator one past the last element.
func (r *RingBuffer[T]) End() Iterator[T] {
	s := r.storage()
	return Iterator[T]{cursor[T]{s, s.size}}
}

// CBegin returns a read-only iterator to the first element.
func (r *RingBuffer[T]) CBegin() ConstIterator[T] { return r.Begin().Const() }

// CEnd returns the read-only iterator one past the last element.
func (r *RingBuffer[T]) CEnd() ConstIterator[T] { return r.End().Const() }

// RBegin returns a reverse iterator to the last element.
func (r *RingBuffer[T]) RBegin() ReverseIterator[T] {
	return ReverseIterator[T]{base: r.End()}
}

// REnd returns the reverse iterator one before the first element.
func (r *RingBuffer[T]) REnd() ReverseIterator[T] {
	return ReverseIterator[T]{base: r.Begin()}
}

// CRBegin returns a read-only reverse iterator to the last element.
func (r *RingBuffer[T]) CRBegin() ConstReverseIterator[T] { return r.RBegin().Const() }

// CREnd returns the read-only reverse iterator one before the first element.
func (r *RingBuffer[T]) CREnd() ConstReverseIterator[T] { return r.REnd().Const() }

/*****************************************************************************
 * SENTINEL ERRORS
 *****************************************************************************/

// ErrSameCapacity is returned when trying to resize a RingBuffer to its
// current capacity.
var ErrSameCapacity = errors.New("already at asked capacity")

// ErrNotEnoughCapacity is returned when trying to resize a RingBuffer to a
// capacity that cannot hold its existing elements.
var ErrNotEnoughCapacity = errors.New("cannot hold existing elements in asked capacity")

// ErrNegativeCapacity is returned when asking for a negative capacity.
var ErrNegativeCapacity = errors.New("capacity cannot be negative")

// ErrCopy wraps every error returned by an Options.Copy hook. The hook's
// own error is wrapped as well.
var ErrCopy = errors.New("ringbuffer: copying element failed")

/*****************************************************************************
 * HELPERS
 *****************************************************************************/

func (r *RingBuffer[T]) checkBounds(i int) {
	if i < 0 || i >= r.Len() {
		panic(fmt.Sprintf("ringbuffer: index %d out of bounds with length %d", i, r.Len()))
	}
}

func (r *RingBuffer[T]) checkNotEmpty(op string) {
	if r.Empty() {
		panic("ringbuffer: " + op + " on empty RingBuffer")
	}
}

// checkPosition returns the logical offset of pos, which must belong to r
// and lie within [0, last].
func (r *RingBuffer[T]) checkPosition(pos Position[T], last int) int {
	c := pos.cur()
	if c.st != r.st {
		panic("ringbuffer: iterator does not belong to this RingBuffer")
	}
	if c.off < 0 || c.off > last {
		panic(fmt.Sprintf("ringbuffer: iterator offset %d out of range [0, %d]", c.off, last))
	}
	return c.off
}
