// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package bridge

import (
	"sync"

	"github.com/gogpu/swapchain"
)

// HandlerKind tags which producer an external image id belongs to.
type HandlerKind uint8

const (
	// HandlerWebGL marks images produced by a WebGL content renderer.
	HandlerWebGL HandlerKind = iota

	// HandlerMedia marks images produced by a media (video) pipeline.
	HandlerMedia
)

// String returns the handler kind name.
func (k HandlerKind) String() string {
	switch k {
	case HandlerWebGL:
		return "webgl"
	case HandlerMedia:
		return "media"
	default:
		return "unknown"
	}
}

// ImageID is a process-unique external image identifier handed to the
// compositor. The compositor passes it back verbatim on lock/unlock.
type ImageID uint64

// ImageRegistry allocates external image identifiers shared among all
// external image producers (WebGL, media). It guarantees ids are unique and
// remembers which handler serves each id.
type ImageRegistry struct {
	mu     sync.Mutex
	images map[ImageID]HandlerKind
	nextID uint64
}

// NewImageRegistry creates an empty registry.
func NewImageRegistry() *ImageRegistry {
	return &ImageRegistry{images: make(map[ImageID]HandlerKind)}
}

// NextID allocates the next external image id for the given handler kind.
func (r *ImageRegistry) NextID(kind HandlerKind) ImageID {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := ImageID(r.nextID)
	r.images[id] = kind
	return id
}

// Remove forgets an external image id.
func (r *ImageRegistry) Remove(id ImageID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.images, id)
}

// Kind reports which handler serves id.
func (r *ImageRegistry) Kind(id ImageID) (HandlerKind, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	kind, ok := r.images[id]
	return kind, ok
}

// Handler is the uniform lock/unlock contract each producer-side bridge
// exposes to the compositor. CompositorImages implements it for WebGL
// content; a media pipeline provides its own.
type Handler interface {
	Lock(id uint64) (uint32, swapchain.Size)
	Unlock(id uint64)
}

// UVRect is the texel sub-rectangle of a locked image, in pixels.
// (U0,V0) is the texel mapped to the top-left of the composited quad.
type UVRect struct {
	U0, V0 float32
	U1, V1 float32
}

// ExternalImage is what the compositor receives for a locked image: the
// native texture handle and the texel rect to sample.
type ExternalImage struct {
	Texture uint32
	UV      UVRect
}

// Handlers multiplexes compositor lock/unlock callbacks across the
// registered per-kind handlers, using the registry to resolve which handler
// owns each image id.
type Handlers struct {
	registry *ImageRegistry

	mu    sync.Mutex
	webgl Handler
	media Handler
}

// NewHandlers creates the multiplexer and its shared registry.
func NewHandlers() (*Handlers, *ImageRegistry) {
	registry := NewImageRegistry()
	return &Handlers{registry: registry}, registry
}

// SetHandler installs the handler serving the given kind.
func (h *Handlers) SetHandler(kind HandlerKind, handler Handler) {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch kind {
	case HandlerWebGL:
		h.webgl = handler
	case HandlerMedia:
		h.media = handler
	}
}

// Lock resolves key to its handler and locks the image. The second return
// is false when the key is unknown or its handler is not installed; the
// compositor skips the image for this frame.
//
// WebGL content is rendered with the origin at the bottom-left, so its UV
// rect is flipped vertically; media frames are upright.
func (h *Handlers) Lock(key ImageID) (ExternalImage, bool) {
	kind, ok := h.registry.Kind(key)
	if !ok {
		swapchain.Logger().Warn("bridge: lock of unknown external image", "key", uint64(key))
		return ExternalImage{}, false
	}

	handler := h.handler(kind)
	if handler == nil {
		return ExternalImage{}, false
	}

	texture, size := handler.Lock(uint64(key))
	img := ExternalImage{Texture: texture}
	switch kind {
	case HandlerWebGL:
		img.UV = UVRect{U0: 0, V0: float32(size.Height), U1: float32(size.Width), V1: 0}
	case HandlerMedia:
		img.UV = UVRect{U0: 0, V0: 0, U1: float32(size.Width), V1: float32(size.Height)}
	}
	return img, true
}

// Unlock resolves key to its handler and releases the image.
func (h *Handlers) Unlock(key ImageID) {
	kind, ok := h.registry.Kind(key)
	if !ok {
		return
	}
	if handler := h.handler(kind); handler != nil {
		handler.Unlock(uint64(key))
	}
}

func (h *Handlers) handler(kind HandlerKind) Handler {
	h.mu.Lock()
	defer h.mu.Unlock()
	switch kind {
	case HandlerWebGL:
		return h.webgl
	case HandlerMedia:
		return h.media
	default:
		return nil
	}
}
