package ringbuffer

import (
	"iter"
	"slices"
)

// Helper to reuse the slices package functions. a holds the elements from
// the front up to the end of the block, b the ones that wrapped around.
func (r *RingBuffer[T]) slices() (a, b []T) {
	if r.Empty() {
		return nil, nil
	}
	s := r.st
	h := s.head
	if h+s.size <= s.cap() {
		return s.buf[h : h+s.size], nil
	}
	return s.buf[h:], s.buf[:s.phys(s.size)]
}

// ToSlice allocates a slice holding every element in order.
func (r *RingBuffer[T]) ToSlice() []T {
	out := make([]T, r.Len())
	r.CopySlice(0, out)
	return out
}

// CopySlice has the same semantics as the copy() built-in function. It copies
// elements starting at logical index start until buf is full or the
// RingBuffer is over, whichever happens first, and returns the number of
// elements copied.
func (r *RingBuffer[T]) CopySlice(start int, buf []T) int {
	a, b := r.slices()
	if start < len(a) {
		n := copy(buf, a[start:])
		return n + copy(buf[n:], b)
	}
	return copy(buf, b[start-len(a):])
}

// All returns an iterator over index-value pairs in order. It has the same
// semantics as slices.All.
func (r *RingBuffer[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		a, b := r.slices()
		for i, t := range a {
			if !yield(i, t) {
				return
			}
		}
		for i, t := range b {
			if !yield(len(a)+i, t) {
				return
			}
		}
	}
}

// Values returns an iterator over the elements in order.
func (r *RingBuffer[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		for _, t := range r.All() {
			if !yield(t) {
				return
			}
		}
	}
}

// Backward returns an iterator over index-value pairs from back to front.
// It has the same semantics as slices.Backward.
func (r *RingBuffer[T]) Backward() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		a, b := r.slices()
		for i, t := range slices.Backward(b) {
			if !yield(len(a)+i, t) {
				return
			}
		}
		for i, t := range slices.Backward(a) {
			if !yield(i, t) {
				return
			}
		}
	}
}

// Contains returns whether t is in the RingBuffer. This must not be a
// method, otherwise RingBuffer would be constrained to comparable elements.
func Contains[T comparable](r *RingBuffer[T], t T) bool {
	return Index(r, t) != -1
}

// Index returns the logical index of the first occurrence of t or -1 if
// absent. It has the same semantics as slices.Index.
func Index[T comparable](r *RingBuffer[T], t T) int {
	return r.IndexFunc(func(u T) bool { return u == t })
}

// IndexFunc returns the logical index of the first element satisfying f or
// -1 if none do.
func (r *RingBuffer[T]) IndexFunc(f func(T) bool) int {
	a, b := r.slices()
	if i := slices.IndexFunc(a, f); i != -1 {
		return i
	}
	if i := slices.IndexFunc(b, f); i != -1 {
		return i + len(a)
	}
	return -1
}

// Equal returns whether both RingBuffers hold the same elements in the same
// order, regardless of capacity or where the block wraps.
func Equal[T comparable](r1, r2 *RingBuffer[T]) bool {
	return r1.EqualFunc(r2, func(a, b T) bool { return a == b })
}

// EqualFunc is like Equal but compares elements with f.
func (r1 *RingBuffer[T]) EqualFunc(r2 *RingBuffer[T], f func(T, T) bool) bool {
	if r1.Len() != r2.Len() {
		return false
	}
	for i, t := range r1.All() {
		if !f(t, *r2.st.slot(i)) {
			return false
		}
	}
	return true
}
