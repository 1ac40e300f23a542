// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package software implements the swapchain device on CPU memory.
//
// Surfaces are plain RGBA images, so the backend works everywhere and
// needs no GPU at all. Texture handles are process-local identifiers; a
// consumer reads pixels back through the surface's RGBA accessor instead
// of sampling. Useful for headless runs and as the test backend.
//
// Importing the package registers the "software" backend with the
// swapchain registry at low priority, behind any GPU backend.
package software
