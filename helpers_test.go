package ringbuffer

import (
	"errors"
	"testing"
)

var errBoom = errors.New("boom")

// counted is an element whose copies are tracked by a tracker, so tests can
// check that every element the buffer builds is released exactly once.
type counted struct {
	data int
	id   int
}

type tracker struct {
	t      *testing.T
	nextID int
	live   map[int]bool
	// budget is the number of copies allowed before Copy fails; -1 means
	// unlimited.
	budget int
}

func newTracker(t *testing.T) *tracker {
	return &tracker{t: t, live: map[int]bool{}, budget: -1}
}

func (tr *tracker) copy(c counted) (counted, error) {
	if tr.budget == 0 {
		return counted{}, errBoom
	}
	if tr.budget > 0 {
		tr.budget--
	}
	tr.nextID++
	tr.live[tr.nextID] = true
	return counted{data: c.data, id: tr.nextID}, nil
}

func (tr *tracker) release(c counted) {
	if !tr.live[c.id] {
		tr.t.Errorf("release of element %d (data %d) that is not live", c.id, c.data)
	}
	delete(tr.live, c.id)
}

func (tr *tracker) options() Options[counted] {
	return Options[counted]{Copy: tr.copy, Release: tr.release}
}

func data(r *RingBuffer[counted]) []int {
	out := make([]int, 0, r.Len())
	for c := range r.Values() {
		out = append(out, c.data)
	}
	return out
}

func mustPushBack[T any](t *testing.T, r *RingBuffer[T], vs ...T) {
	t.Helper()
	for _, v := range vs {
		if err := r.PushBack(v); err != nil {
			t.Fatalf("PushBack(%v) = %v", v, err)
		}
	}
}

// wrapped returns a buffer of capacity 8 holding vs with its head at slot
// 6, so any content longer than two elements wraps around the block.
func wrapped(t *testing.T, vs ...int) *RingBuffer[int] {
	t.Helper()
	r, err := NewWithCapacity[int](8)
	if err != nil {
		t.Fatal(err)
	}
	mustPushBack(t, r, 0, 0, 0, 0, 0, 0)
	for range 6 {
		r.PopFront()
	}
	mustPushBack(t, r, vs...)
	return r
}
