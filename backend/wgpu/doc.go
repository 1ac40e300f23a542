// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package wgpu implements the swapchain device on top of the wgpu HAL.
//
// Surfaces are HAL textures usable as render attachments and shader
// bindings; surface textures are views of those textures. The device can
// run standalone, creating its own Vulkan instance and adapter, or on a
// device shared with a host application via NewFromProvider.
//
// Importing the package registers the "wgpu" backend with the swapchain
// registry at high priority.
package wgpu
