package swapchain

// Size is a surface extent in pixels.
type Size struct {
	Width  int32
	Height int32
}

// IsZero reports whether either dimension is zero.
func (s Size) IsZero() bool { return s.Width == 0 || s.Height == 0 }

// Surface is an opaque GPU-backed 2D pixel buffer usable as a render target
// and later as a texture.
//
// Surface values move between owners; they are never shared. After passing a
// Surface to Pool.Put, Device.DestroySurface, or Device.CreateSurfaceTexture,
// the caller must not touch it again. No lock protects a Surface: the
// single-owner discipline is the sole enforcement mechanism.
type Surface interface {
	// Size returns the fixed pixel dimensions of the surface.
	Size() Size

	// ID returns a device-unique serial identifying this surface across its
	// lifetime. Two Surface values with equal IDs are the same surface.
	ID() uint64
}

// SurfaceTexture is a texture-view binding of a Surface into a specific
// rendering context, consumable by the consumer's shaders.
//
// At most one SurfaceTexture exists per Surface at any time. The binding must
// be destroyed (Device.DestroySurfaceTexture) before the underlying Surface
// can be reused or destroyed.
type SurfaceTexture interface {
	// Handle returns the native texture handle the consumer binds in its
	// rendering context.
	Handle() uint32

	// Size returns the pixel dimensions of the bound surface.
	Size() Size
}

// Device owns the GPU device and rendering context that all surface
// operations are bound to.
//
// Unless a backend documents otherwise, Device methods must be called from
// the thread that currently holds the right to use the underlying context;
// no internal locking is assumed beyond what the caller provides.
type Device interface {
	// CreateSurface allocates a new GPU surface of the given size.
	// The caller owns the returned surface.
	CreateSurface(size Size) (Surface, error)

	// DestroySurface releases a surface's GPU storage. The surface must not
	// have a live SurfaceTexture binding.
	DestroySurface(surface Surface) error

	// CreateSurfaceTexture binds a surface into the device's rendering
	// context, producing a texture view. On success the surface's ownership
	// moves into the returned SurfaceTexture; on error the caller retains
	// ownership of the surface and must dispose of it itself. Ownership is
	// never silently dropped on failure.
	CreateSurfaceTexture(surface Surface) (SurfaceTexture, error)

	// DestroySurfaceTexture destroys a texture binding and returns the
	// underlying surface to the caller. On error the binding remains live
	// and the caller still owns the SurfaceTexture.
	DestroySurfaceTexture(texture SurfaceTexture) (Surface, error)

	// Close releases the device and its rendering context. Any surface still
	// owned by the caller must be destroyed through DestroySurface before
	// Close. Close is idempotent.
	Close() error
}
