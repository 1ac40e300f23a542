// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package bridge adapts the swapchain surface pool to the lock/unlock
// callback contract expected by external image consumers.
//
// Two consumers share one bridge: a display compositor that addresses
// buffers by 64-bit opaque id, and an XR runtime that addresses opaque
// framebuffers by non-zero 32-bit id. Both identifier shapes resolve into
// the same [swapchain.BufferID] space, so a single [ExternalImages] instance
// serves both through the [CompositorImages] and [XRImages] adapters.
//
// The lock/unlock cycle for one id is always issued by a single consumer
// thread, but runs concurrently with the producer publishing new frames into
// the pool. Lock never blocks waiting for a frame: before the first frame is
// produced it returns the empty result, which the consumer treats as
// "nothing to composite this tick".
package bridge
