package ringbuffer

import (
	"fmt"
	"log/slog"
	"math/bits"
)

// minGrowCapacity is the first block allocated by a buffer that grows from
// nothing.
const minGrowCapacity = 4

// storage owns the backing block of a RingBuffer and the lifetime of every
// element placed in it.
//
// Elements at logical offsets [0, size) live in buf[(head+i)&mask]. Every
// other slot holds the zero value. len(buf) is 0 or a power of two, so
// size == len(buf) means full without a sentinel slot.
type storage[T any] struct {
	buf        []T
	head, size int

	copy    func(T) (T, error)
	release func(T)
	log     *slog.Logger

	// Instrumentation: elements moved by insert/erase shifting, and
	// elements constructed through copy.
	moved, copied int
}

func newStorage[T any](opts *Options[T]) *storage[T] {
	return &storage[T]{
		copy:    opts.copyFunc(),
		release: opts.releaseFunc(),
		log:     opts.logger(),
	}
}

func (s *storage[T]) cap() int { return len(s.buf) }

func (s *storage[T]) mask() int { return len(s.buf) - 1 }

// phys maps a logical offset to a physical slot. Offsets may be -1 or size,
// which address the free slot before the front or after the back.
func (s *storage[T]) phys(off int) int { return (s.head + off) & s.mask() }

func (s *storage[T]) slot(off int) *T { return &s.buf[s.phys(off)] }

// construct runs the copy hook for a value that is about to become owned by
// the buffer.
func (s *storage[T]) construct(t T) (T, error) {
	v, err := s.copy(t)
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrCopy, err)
	}
	s.copied++
	return v, nil
}

// reserve makes room for additional more elements, doubling at least when
// it has to grow.
func (s *storage[T]) reserve(additional int) error {
	if additional < 0 {
		return ErrNegativeCapacity
	}
	need := s.size + additional
	if need <= s.cap() {
		return nil
	}
	return s.relocate(max(ceilPow2(need), minGrowCapacity))
}

// resize reallocates to exactly newCap slots. newCap must be 0 or a power of
// two.
func (s *storage[T]) resize(newCap int) error {
	if newCap == s.cap() {
		return ErrSameCapacity
	}
	if s.size > newCap {
		return ErrNotEnoughCapacity
	}
	return s.relocate(newCap)
}

// relocate copies every live element, in logical order, to offsets
// [0, size) of a new block of newCap slots. The old block is only touched
// after the new one is fully populated, so a failing copy leaves s as it
// was.
func (s *storage[T]) relocate(newCap int) error {
	oldCap := s.cap()
	var newBuf []T
	if newCap > 0 {
		newBuf = make([]T, newCap)
	}
	for i := range s.size {
		v, err := s.copy(*s.slot(i))
		if err != nil {
			for j := range i {
				s.release(newBuf[j])
			}
			s.log.Warn("ringbuffer: relocation rolled back",
				"old_cap", oldCap, "new_cap", newCap, "size", s.size, "failed_at", i, "err", err)
			return fmt.Errorf("%w: relocating element %d: %w", ErrCopy, i, err)
		}
		newBuf[i] = v
		s.copied++
	}
	for i := range s.size {
		s.release(*s.slot(i))
	}
	s.buf = newBuf
	s.head = 0
	s.log.Debug("ringbuffer: relocated", "old_cap", oldCap, "new_cap", newCap, "size", s.size)
	return nil
}

// destroyAll releases every live element in logical order and zeroes its
// slot. The block is kept.
func (s *storage[T]) destroyAll() {
	var zero T
	for i := range s.size {
		p := s.slot(i)
		s.release(*p)
		*p = zero
	}
	s.head, s.size = 0, 0
}

// Callers must have reserved room for the element.
func (s *storage[T]) pushBack(t T) {
	*s.slot(s.size) = t
	s.size++
}

// Callers must have reserved room for the element.
func (s *storage[T]) pushFront(t T) {
	s.head = s.phys(-1)
	s.buf[s.head] = t
	s.size++
}

func (s *storage[T]) popBack() T {
	var zero T
	p := s.slot(s.size - 1)
	t := *p
	*p = zero
	s.size--
	return t
}

func (s *storage[T]) popFront() T {
	var zero T
	p := s.slot(0)
	t := *p
	*p = zero
	s.head = s.phys(1)
	s.size--
	return t
}

// assign replaces the live element at p with a copy of t, releasing the old
// one. On error the element is left in place.
func (s *storage[T]) assign(p *T, t T) error {
	v, err := s.construct(t)
	if err != nil {
		return err
	}
	old := *p
	*p = v
	s.release(old)
	return nil
}

// move assigns the element at logical offset src to logical offset dst.
func (s *storage[T]) move(dst, src int) {
	*s.slot(dst) = *s.slot(src)
	s.moved++
}

func ceilPow2(x int) int {
	// For our purposes, 0 is invalid.
	if x <= 1 {
		return 1
	}
	return 1 << bits.Len(uint(x-1))
}
