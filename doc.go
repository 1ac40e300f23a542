// Package swapchain passes GPU-backed surfaces from a producer thread to a
// display compositor without copying pixel data.
//
// # Overview
//
// A producer (a WebGL-style content renderer, or a media pipeline) draws into
// a back surface and publishes finished frames through a [Pool]. A consumer
// (the compositor, or an XR runtime) locks the most recent front surface,
// binds it as a texture in its own rendering context, composites, and unlocks
// it. The producer never blocks on the consumer: when frames are produced
// faster than they are consumed, older frames are displaced and destroyed.
//
// # Ownership
//
// A [Surface] has exactly one owner at any time: the pool (front), the
// producer (back, in-flight), or a consumer holding a [SurfaceTexture]
// binding. Every operation that hands a Surface across an API boundary
// transfers ownership; a Surface value must not be retained after it has been
// passed to Pool.Put, Device.DestroySurface, or Device.CreateSurfaceTexture.
// Surfaces are GPU resources and must always be released through the
// [Device] that created them, never simply dropped.
//
// # Quick start
//
//	dev, err := swapchain.New() // best available backend
//	if err != nil {
//	    log.Fatal(err)
//	}
//	pool := swapchain.NewPool()
//	images := bridge.NewExternalImages(dev, pool)
//
//	// Producer side:
//	id := swapchain.DefaultContext(1)
//	if old := pool.Put(id, frame); old != nil {
//	    dev.DestroySurface(old) // consumer fell behind, frame dropped
//	}
//
//	// Consumer side:
//	tex, size := images.Lock(id)
//	// ... composite tex ...
//	images.Unlock(id)
//
// # Backends
//
// Device backends register themselves with [Register]. The module ships a
// wgpu-backed device (backend/wgpu) and a CPU device for tests and headless
// use (backend/software). [New] picks the highest-priority available backend.
//
// # Logging
//
// swapchain produces no log output by default. Call [SetLogger] with a
// [log/slog.Logger] to enable it.
package swapchain
