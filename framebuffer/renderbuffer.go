// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package framebuffer

import "github.com/gogpu/swapchain"

// Renderbuffer is shared renderbuffer state referenced by framebuffer
// attachments. Several framebuffers may attach the same renderbuffer; the
// object is a reference, not an owned resource.
//
// Storage starts unallocated. Until the first render of a complete
// framebuffer, freshly allocated storage is "uninitialized" and subject to
// the one-time lazy clear.
type Renderbuffer struct {
	id          uint32
	format      Format
	size        swapchain.Size
	hasStorage  bool
	bound       bool
	initialized bool
}

// NewRenderbuffer creates a renderbuffer with the given GL object id.
func NewRenderbuffer(id uint32) *Renderbuffer {
	return &Renderbuffer{id: id}
}

// ID returns the GL object id.
func (rb *Renderbuffer) ID() uint32 { return rb.id }

// MarkBound records that the renderbuffer has been bound at least once.
// Attaching a never-bound renderbuffer is an error in WebGL.
func (rb *Renderbuffer) MarkBound() { rb.bound = true }

// EverBound reports whether MarkBound has been called.
func (rb *Renderbuffer) EverBound() bool { return rb.bound }

// Storage allocates (or reallocates) storage. New storage is uninitialized
// until the next lazy clear.
func (rb *Renderbuffer) Storage(format Format, size swapchain.Size) {
	rb.format = format
	rb.size = size
	rb.hasStorage = true
	rb.initialized = false
}

// InternalFormat returns the storage format, or FormatNone before Storage.
func (rb *Renderbuffer) InternalFormat() Format {
	if !rb.hasStorage {
		return FormatNone
	}
	return rb.format
}

// Size returns the storage size. The second return is false before Storage.
func (rb *Renderbuffer) Size() (swapchain.Size, bool) {
	return rb.size, rb.hasStorage
}

// IsInitialized reports whether the storage contents are defined.
func (rb *Renderbuffer) IsInitialized() bool { return rb.initialized }

func (rb *Renderbuffer) markInitialized() { rb.initialized = true }
