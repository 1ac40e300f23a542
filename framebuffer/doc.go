// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package framebuffer implements the WebGL framebuffer attachment state
// machine used by opaque swapchain targets.
//
// A Framebuffer tracks up to four attachment points (color, depth, stencil,
// depth-stencil) referencing shared Renderbuffer and Texture objects. Every
// attach or detach recomputes a completeness Status following the WebGL 1.0
// rules, so callers can poll validity instead of handling errors at draw
// time.
//
// GPU work is expressed through the CommandSender interface. The package
// never talks to a device directly; it emits attach and clear commands and
// leaves their execution to the owning context. This keeps the state machine
// a pure, mockable core.
package framebuffer
