// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swapchain"
	"github.com/gogpu/swapchain/render"
)

// mockContextDevice implements gpucontext.Device without exposing HAL types.
type mockContextDevice struct{}

func (*mockContextDevice) Poll(wait bool) {}
func (*mockContextDevice) Destroy()       {}

// mockHandle implements render.DeviceHandle around a mock device.
type mockHandle struct {
	device gpucontext.Device
}

func (m *mockHandle) Device() gpucontext.Device             { return m.device }
func (m *mockHandle) Queue() gpucontext.Queue               { return nil }
func (m *mockHandle) Adapter() gpucontext.Adapter           { return nil }
func (m *mockHandle) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }

func TestRegistered(t *testing.T) {
	for _, name := range swapchain.List() {
		if name == "wgpu" {
			return
		}
	}
	t.Fatal("wgpu backend not registered")
}

// TestNewFromDeviceHandle covers the shared-device rejection paths: a nil
// handle, a null handle without a device, and a handle whose device does
// not expose HAL types. All must fail without touching GPU state.
func TestNewFromDeviceHandle(t *testing.T) {
	if _, err := NewFromDeviceHandle(nil); err == nil {
		t.Error("NewFromDeviceHandle(nil) = nil error, want rejection")
	}
	if _, err := NewFromDeviceHandle(render.NullDeviceHandle{}); err == nil {
		t.Error("NewFromDeviceHandle(NullDeviceHandle) = nil error, want rejection")
	}
	handle := &mockHandle{device: &mockContextDevice{}}
	if _, err := NewFromDeviceHandle(handle); err == nil {
		t.Error("NewFromDeviceHandle without HAL types = nil error, want rejection")
	}
}

// TestDeviceLifecycle needs a Vulkan-capable adapter; it is skipped where
// none is present.
func TestDeviceLifecycle(t *testing.T) {
	dev, err := New()
	if err != nil {
		t.Skipf("no usable GPU: %v", err)
	}
	defer dev.Close()

	s, err := dev.CreateSurface(swapchain.Size{Width: 64, Height: 64})
	if err != nil {
		t.Fatalf("CreateSurface: %v", err)
	}

	tex, err := dev.CreateSurfaceTexture(s)
	if err != nil {
		t.Fatalf("CreateSurfaceTexture: %v", err)
	}
	if tex.Handle() == 0 {
		t.Error("Handle = 0, want non-zero")
	}

	back, err := dev.DestroySurfaceTexture(tex)
	if err != nil {
		t.Fatalf("DestroySurfaceTexture: %v", err)
	}
	if err := dev.DestroySurface(back); err != nil {
		t.Fatalf("DestroySurface: %v", err)
	}
}
