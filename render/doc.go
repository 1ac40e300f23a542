// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package render owns the producing side of the swapchain: the device and
// context wrapper that holds GPU resources for one content source, and the
// producer loop that renders frames and publishes them to the pool.
//
// A ContextDevice bundles a swapchain.Device with an optional persistent
// render surface. It is single-owner state: the goroutine that created it
// (or the Producer that adopted it) is the only one allowed to touch it, so
// it carries no locking of its own.
//
// A Producer runs a dedicated goroutine pinned to an OS thread. All work on
// the device happens on that goroutine; other goroutines talk to it through
// commands (Render, SwapBuffers, Resize, Present) and never share mutable
// state with it. Publishing a frame never blocks on the consumer.
package render
