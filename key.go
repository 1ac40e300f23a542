package swapchain

import "fmt"

// ContextID identifies one rendering context. Every context owns exactly one
// default (on-screen) buffer slot for its lifetime.
type ContextID uint64

// FramebufferID identifies one opaque (off-screen) framebuffer, as handed out
// by an XR runtime. The zero value is not a valid identifier.
type FramebufferID uint32

// bufferKind discriminates the two identifier spaces a BufferID can name.
type bufferKind uint8

const (
	kindDefaultContext bufferKind = iota
	kindOpaqueFramebuffer
)

// BufferID is the stable key naming one rendering target's buffer-pool slot.
//
// Two identifier shapes resolve into the same key space: the compositor
// addresses buffers by rendering context (a 64-bit opaque id), while an XR
// runtime addresses them by opaque framebuffer (a non-zero 32-bit id). Both
// map onto BufferID so a single [Pool] can back both consumers.
//
// BufferID is comparable and usable as a map key. The zero value is the
// default-context key for context 0; use [DefaultContext] and
// [OpaqueFramebuffer] to construct ids rather than relying on that.
type BufferID struct {
	kind  bufferKind
	value uint64
}

// DefaultContext returns the BufferID for a context's default buffer.
func DefaultContext(id ContextID) BufferID {
	return BufferID{kind: kindDefaultContext, value: uint64(id)}
}

// OpaqueFramebuffer returns the BufferID for an opaque framebuffer.
// The id must be non-zero; callers translating external XR identifiers
// should reject zero before constructing a BufferID.
func OpaqueFramebuffer(id FramebufferID) BufferID {
	return BufferID{kind: kindOpaqueFramebuffer, value: uint64(id)}
}

// Context returns the context id and true if this BufferID names a
// default-context buffer.
func (id BufferID) Context() (ContextID, bool) {
	if id.kind != kindDefaultContext {
		return 0, false
	}
	return ContextID(id.value), true
}

// Framebuffer returns the framebuffer id and true if this BufferID names an
// opaque framebuffer.
func (id BufferID) Framebuffer() (FramebufferID, bool) {
	if id.kind != kindOpaqueFramebuffer {
		return 0, false
	}
	return FramebufferID(id.value), true
}

// String returns a human-readable form, e.g. "context(7)" or "opaque(3)".
func (id BufferID) String() string {
	switch id.kind {
	case kindOpaqueFramebuffer:
		return fmt.Sprintf("opaque(%d)", id.value)
	default:
		return fmt.Sprintf("context(%d)", id.value)
	}
}
