// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package bridge

import (
	"sync"

	"github.com/gogpu/swapchain"
)

// ExternalImages bridges the surface pool to external lock/unlock callbacks.
//
// For every locked id it records the live SurfaceTexture binding; unlocking
// destroys the binding and offers the surface back to the pool. Multiple ids
// may be locked at the same time (one per rendering context), but each id
// holds at most one binding.
type ExternalImages struct {
	device swapchain.Device
	pool   *swapchain.Pool

	mu     sync.Mutex
	locked map[swapchain.BufferID]swapchain.SurfaceTexture
}

// NewExternalImages creates a bridge over device and pool. The device must
// be the consumer-side device: surface textures produced by Lock are bound
// into its rendering context.
func NewExternalImages(device swapchain.Device, pool *swapchain.Pool) *ExternalImages {
	return &ExternalImages{
		device: device,
		pool:   pool,
		locked: make(map[swapchain.BufferID]swapchain.SurfaceTexture),
	}
}

// Lock claims the current front buffer for id and binds it into the
// consumer's rendering context, returning the native texture handle and the
// surface size.
//
// The zero result (0, empty size) means no frame is available. That is the
// expected steady state before first paint, not an error; the consumer
// simply renders nothing and retries on its next tick. Driver-level bind
// failures also resolve to the zero result: the frame is discarded and the
// pipeline self-heals when the producer publishes the next one.
//
// Locking an id that is already locked releases the previous binding first,
// so a misbehaving consumer cannot leak surfaces.
func (e *ExternalImages) Lock(id swapchain.BufferID) (uint32, swapchain.Size) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.locked[id]; ok {
		e.unlockLocked(id)
	}

	surface := e.pool.Take(id)
	if surface == nil {
		return 0, swapchain.Size{}
	}

	texture, err := e.device.CreateSurfaceTexture(surface)
	if err != nil {
		// The surface is still ours; discard it rather than leak it.
		swapchain.Logger().Warn("bridge: surface bind failed, dropping frame",
			"id", id.String(), "error", err)
		if derr := e.device.DestroySurface(surface); derr != nil {
			swapchain.Logger().Warn("bridge: destroy of unbindable surface failed",
				"id", id.String(), "error", derr)
		}
		return 0, swapchain.Size{}
	}

	e.locked[id] = texture
	return texture.Handle(), texture.Size()
}

// Unlock releases the binding created by a previous Lock for id and returns
// the surface to the pool. If the producer published a newer frame while the
// surface was locked, the unlocked surface is stale and is destroyed instead
// of stored. Unlock with no matching lock is a safe no-op.
func (e *ExternalImages) Unlock(id swapchain.BufferID) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.unlockLocked(id)
}

// unlockLocked releases id's binding. Caller holds e.mu.
func (e *ExternalImages) unlockLocked(id swapchain.BufferID) {
	texture, ok := e.locked[id]
	if !ok {
		return
	}
	delete(e.locked, id)

	surface, err := e.device.DestroySurfaceTexture(texture)
	if err != nil {
		swapchain.Logger().Warn("bridge: surface texture destroy failed",
			"id", id.String(), "error", err)
		return
	}

	// WebGL can generate frames faster than we render them. If a newer frame
	// arrived while this one was locked, ours is stale and gets destroyed.
	if stale := e.pool.PutIfEmpty(id, surface); stale != nil {
		swapchain.Logger().Debug("bridge: stale frame destroyed",
			"id", id.String(), "surface", stale.ID())
		if derr := e.device.DestroySurface(stale); derr != nil {
			swapchain.Logger().Warn("bridge: stale surface destroy failed",
				"id", id.String(), "error", derr)
		}
	}
}

// Close releases all outstanding bindings and destroys their surfaces.
// Called during context teardown, after the producer has stopped; surfaces
// still held by the pool are the pool owner's responsibility.
func (e *ExternalImages) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()

	for id, texture := range e.locked {
		delete(e.locked, id)
		surface, err := e.device.DestroySurfaceTexture(texture)
		if err != nil {
			swapchain.Logger().Warn("bridge: texture destroy failed during close",
				"id", id.String(), "error", err)
			continue
		}
		if derr := e.device.DestroySurface(surface); derr != nil {
			swapchain.Logger().Warn("bridge: surface destroy failed during close",
				"id", id.String(), "error", derr)
		}
	}
}

// CompositorImages exposes the bridge under the compositor's callback shape:
// a 64-bit opaque image id that resolves to a default-context buffer.
type CompositorImages struct {
	images *ExternalImages
}

// Compositor returns the compositor-facing adapter for e.
func (e *ExternalImages) Compositor() *CompositorImages {
	return &CompositorImages{images: e}
}

// Lock locks the front buffer of the context identified by id.
func (c *CompositorImages) Lock(id uint64) (uint32, swapchain.Size) {
	return c.images.Lock(swapchain.DefaultContext(swapchain.ContextID(id)))
}

// Unlock releases the binding for the context identified by id.
func (c *CompositorImages) Unlock(id uint64) {
	c.images.Unlock(swapchain.DefaultContext(swapchain.ContextID(id)))
}

// XRImages exposes the bridge under the XR runtime's callback shape: a
// non-zero 32-bit id naming an opaque framebuffer.
type XRImages struct {
	images *ExternalImages
}

// XR returns the XR-facing adapter for e.
func (e *ExternalImages) XR() *XRImages {
	return &XRImages{images: e}
}

// Lock locks the front buffer of the opaque framebuffer identified by id.
// A zero id is not a valid framebuffer and yields the empty result.
func (x *XRImages) Lock(id uint32) (uint32, swapchain.Size) {
	if id == 0 {
		return 0, swapchain.Size{}
	}
	return x.images.Lock(swapchain.OpaqueFramebuffer(swapchain.FramebufferID(id)))
}

// Unlock releases the binding for the opaque framebuffer identified by id.
func (x *XRImages) Unlock(id uint32) {
	if id == 0 {
		return
	}
	x.images.Unlock(swapchain.OpaqueFramebuffer(swapchain.FramebufferID(id)))
}
