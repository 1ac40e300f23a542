package swapchain

import (
	"sync"
	"testing"
)

// testSurface is a minimal Surface for pool tests.
type testSurface struct {
	id   uint64
	size Size
}

func (s *testSurface) Size() Size { return s.size }
func (s *testSurface) ID() uint64 { return s.id }

func newTestSurface(id uint64) *testSurface {
	return &testSurface{id: id, size: Size{Width: 64, Height: 64}}
}

func TestPoolTakeEmpty(t *testing.T) {
	p := NewPool()
	if got := p.Take(DefaultContext(1)); got != nil {
		t.Fatalf("Take on fresh pool = %v, want nil", got)
	}
}

func TestPoolPutTake(t *testing.T) {
	p := NewPool()
	id := DefaultContext(7)
	s := newTestSurface(1)

	if displaced := p.Put(id, s); displaced != nil {
		t.Fatalf("Put into empty slot displaced %v, want nil", displaced)
	}

	got := p.Take(id)
	if got != Surface(s) {
		t.Fatalf("Take = %v, want the surface that was put", got)
	}

	// The slot is now empty; a second take yields nothing.
	if got := p.Take(id); got != nil {
		t.Fatalf("second Take = %v, want nil", got)
	}
}

// TestPoolDisplacement verifies that an unclaimed front buffer is handed back
// to the producer for disposal, and the newest frame survives.
func TestPoolDisplacement(t *testing.T) {
	p := NewPool()
	id := DefaultContext(7)
	s1 := newTestSurface(1)
	s2 := newTestSurface(2)

	p.Put(id, s1)
	displaced := p.Put(id, s2)
	if displaced != Surface(s1) {
		t.Fatalf("Put displaced %v, want s1", displaced)
	}

	if got := p.Take(id); got != Surface(s2) {
		t.Fatalf("Take = %v, want s2 (the newer frame)", got)
	}
}

func TestPoolIndependentSlots(t *testing.T) {
	p := NewPool()
	a := DefaultContext(1)
	b := OpaqueFramebuffer(1)
	sa := newTestSurface(10)
	sb := newTestSurface(20)

	p.Put(a, sa)
	p.Put(b, sb)

	if got := p.Take(b); got != Surface(sb) {
		t.Fatalf("Take(b) = %v, want sb", got)
	}
	if got := p.Take(a); got != Surface(sa) {
		t.Fatalf("Take(a) = %v, want sa", got)
	}
}

// TestPoolPutIfEmpty verifies the unlock-path store: an occupied slot keeps
// its newer frame and the returned surface is handed back as stale.
func TestPoolPutIfEmpty(t *testing.T) {
	p := NewPool()
	id := DefaultContext(7)
	s1 := newTestSurface(1)
	s2 := newTestSurface(2)

	// Borrow s1 so the slot exists and is empty.
	p.Put(id, s1)
	if got := p.Take(id); got != Surface(s1) {
		t.Fatalf("Take = %v, want s1", got)
	}

	if rejected := p.PutIfEmpty(id, s1); rejected != nil {
		t.Fatalf("PutIfEmpty into empty slot rejected %v, want nil", rejected)
	}
	if rejected := p.PutIfEmpty(id, s2); rejected != Surface(s2) {
		t.Fatalf("PutIfEmpty into occupied slot rejected %v, want s2 back", rejected)
	}
	if got := p.Take(id); got != Surface(s1) {
		t.Fatalf("Take = %v, want s1 (the frame already in the slot)", got)
	}
}

// A consumer returning a borrowed surface after the producer tore the
// context down must get the surface back instead of resurrecting the slot,
// where nothing would ever take it.
func TestPoolPutIfEmptyAfterRemove(t *testing.T) {
	p := NewPool()
	id := DefaultContext(9)
	borrowed := newTestSurface(1)

	p.Put(id, borrowed)
	if got := p.Take(id); got != Surface(borrowed) {
		t.Fatalf("Take = %v, want the borrowed surface", got)
	}
	if leftover := p.Remove(id); leftover != nil {
		t.Fatalf("Remove of drained slot = %v, want nil", leftover)
	}

	if rejected := p.PutIfEmpty(id, borrowed); rejected != Surface(borrowed) {
		t.Fatalf("PutIfEmpty after Remove rejected %v, want the surface back", rejected)
	}
	if p.Len() != 0 {
		t.Fatalf("Len after late PutIfEmpty = %d, want 0 (slot must stay gone)", p.Len())
	}
}

func TestPoolRemove(t *testing.T) {
	p := NewPool()
	id := DefaultContext(3)
	s := newTestSurface(1)

	p.Put(id, s)
	if got := p.Remove(id); got != Surface(s) {
		t.Fatalf("Remove = %v, want leftover front surface", got)
	}
	if p.Len() != 0 {
		t.Fatalf("Len after Remove = %d, want 0", p.Len())
	}
	if got := p.Remove(id); got != nil {
		t.Fatalf("Remove of absent slot = %v, want nil", got)
	}
}

// TestPoolSingleOwnership runs a producer and a consumer concurrently on one
// slot and verifies every surface ends up with exactly one owner: taken by
// the consumer, displaced back to the producer, or left as the final front
// buffer. No surface may be observed twice, none may vanish.
func TestPoolSingleOwnership(t *testing.T) {
	const frames = 1000

	p := NewPool()
	id := DefaultContext(42)

	var mu sync.Mutex
	seen := make(map[uint64]int)
	record := func(s Surface) {
		if s == nil {
			return
		}
		mu.Lock()
		seen[s.ID()]++
		mu.Unlock()
	}

	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		for i := uint64(1); i <= frames; i++ {
			record(p.Put(id, newTestSurface(i)))
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < frames; i++ {
			record(p.Take(id))
		}
	}()
	wg.Wait()

	record(p.Remove(id))

	if len(seen) != frames {
		t.Fatalf("observed %d distinct surfaces, want %d", len(seen), frames)
	}
	for sid, n := range seen {
		if n != 1 {
			t.Fatalf("surface %d observed %d times, want exactly once", sid, n)
		}
	}
}
