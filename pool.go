package swapchain

import "sync"

// Pool is the double-buffer surface pool.
//
// Each [BufferID] owns an independent slot holding at most one front surface:
// the latest complete frame available for display. The producer publishes
// frames with Put and the consumer claims them with Take. Neither operation
// ever blocks waiting for the other side; backpressure is relieved by
// displacing (and reporting) frames the consumer never claimed.
//
// Pool is safe for concurrent use from producer and consumer threads.
// Slots are independent: operations on different ids never contend beyond
// the brief map lookup.
type Pool struct {
	mu    sync.RWMutex
	slots map[BufferID]*poolSlot
}

// poolSlot holds one id's front buffer. The slot mutex serializes the
// put/take race so it always resolves to exactly one owner per surface.
// removed marks a slot detached by Remove; stores into it must fail so the
// surface stays with the caller.
type poolSlot struct {
	mu      sync.Mutex
	front   Surface
	removed bool
}

// NewPool creates an empty pool.
func NewPool() *Pool {
	return &Pool{slots: make(map[BufferID]*poolSlot)}
}

// Put stores surface as the new front buffer for id, creating the slot if
// this is the first frame for that id.
//
// If a previous front buffer was still present (the producer is outrunning
// the consumer), it is removed and returned; the caller must destroy it
// through the device. Returns nil when the slot was empty. Ownership of
// surface transfers to the pool.
func (p *Pool) Put(id BufferID, surface Surface) Surface {
	slot := p.slot(id, true)

	slot.mu.Lock()
	displaced := slot.front
	slot.front = surface
	slot.mu.Unlock()

	if displaced != nil {
		Logger().Debug("swapchain: frame displaced", "id", id.String(), "surface", displaced.ID())
	}
	return displaced
}

// PutIfEmpty stores surface as the front buffer for id only when the slot
// exists and is empty. If a newer frame already occupies the slot, or the
// slot was removed because its context is being torn down, surface is handed
// back to the caller for disposal: it is stale either way.
//
// Unlike Put, a missing slot is never recreated. A consumer returning a
// borrowed surface after Remove must not resurrect the slot, or the surface
// would be stranded where no one will ever take it.
//
// This is the unlock path's store operation. The producer uses Put, which
// always prefers the incoming frame; the consumer returning a surface it
// borrowed uses PutIfEmpty, which always prefers the frame already there.
func (p *Pool) PutIfEmpty(id BufferID, surface Surface) Surface {
	slot := p.slot(id, false)
	if slot == nil {
		return surface
	}

	slot.mu.Lock()
	if slot.front == nil && !slot.removed {
		slot.front = surface
		surface = nil
	}
	slot.mu.Unlock()
	return surface
}

// Take removes and returns the current front buffer for id, leaving the slot
// empty. Returns nil if no frame has been produced yet or the front buffer
// was already taken. Ownership of the returned surface transfers to the
// caller.
func (p *Pool) Take(id BufferID) Surface {
	slot := p.slot(id, false)
	if slot == nil {
		return nil
	}

	slot.mu.Lock()
	surface := slot.front
	slot.front = nil
	slot.mu.Unlock()
	return surface
}

// Remove drops the slot for id at context teardown and returns any leftover
// front surface so the caller can destroy it through the device. Returns nil
// if the slot was absent or empty.
func (p *Pool) Remove(id BufferID) Surface {
	p.mu.Lock()
	slot, ok := p.slots[id]
	delete(p.slots, id)
	p.mu.Unlock()

	if !ok {
		return nil
	}
	slot.mu.Lock()
	surface := slot.front
	slot.front = nil
	slot.removed = true
	slot.mu.Unlock()
	return surface
}

// Len returns the number of slots currently tracked, including empty ones.
func (p *Pool) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.slots)
}

// slot returns the slot for id. When create is set, a missing slot is
// allocated; otherwise nil is returned for unknown ids.
func (p *Pool) slot(id BufferID, create bool) *poolSlot {
	p.mu.RLock()
	slot := p.slots[id]
	p.mu.RUnlock()
	if slot != nil || !create {
		return slot
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if slot = p.slots[id]; slot == nil {
		slot = &poolSlot{}
		p.slots[id] = slot
	}
	return slot
}
