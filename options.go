package ringbuffer

import "log/slog"

// Options configures a RingBuffer built with NewWithOptions. Every field is
// optional.
type Options[T any] struct {
	// Capacity is allocated eagerly, rounded up to a power of two. Zero
	// defers allocation until the first push or insert.
	Capacity int

	// Copy constructs a new element from an existing one. It is called for
	// the value handed to PushBack, PushFront and Insert, for every element
	// relocated when the buffer grows or shrinks, and for every element of a
	// Clone. When it returns an error the operation is rolled back and the
	// buffer keeps its previous contents.
	//
	// If unset, elements are copied by assignment and copying never fails.
	Copy func(T) (T, error)

	// Release is called when the buffer ends the lifetime of an element it
	// owns: Erase, Clear, Assign, relocation of the old copies, and rollback
	// of partially built copies. Popped elements are handed to the caller
	// and are not released.
	Release func(T)

	// Optional, if unset logs are discarded.
	Logger *slog.Logger
}

func (o *Options[T]) copyFunc() func(T) (T, error) {
	if o.Copy != nil {
		return o.Copy
	}
	return func(t T) (T, error) { return t, nil }
}

func (o *Options[T]) releaseFunc() func(T) {
	if o.Release != nil {
		return o.Release
	}
	return func(T) {}
}

func (o *Options[T]) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}
