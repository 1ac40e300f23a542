// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swapchain"
)

func TestNullDeviceHandle(t *testing.T) {
	var handle DeviceHandle = NullDeviceHandle{}
	if handle.Device() != nil {
		t.Error("NullDeviceHandle.Device() != nil, want nil")
	}
	if handle.Queue() != nil {
		t.Error("NullDeviceHandle.Queue() != nil, want nil")
	}
	if handle.Adapter() != nil {
		t.Error("NullDeviceHandle.Adapter() != nil, want nil")
	}
	if got := handle.SurfaceFormat(); got != gputypes.TextureFormatUndefined {
		t.Errorf("NullDeviceHandle.SurfaceFormat() = %v, want undefined", got)
	}

	// DeviceHandle must stay assignable to gpucontext.DeviceProvider.
	acceptProvider := func(_ gpucontext.DeviceProvider) {}
	acceptProvider(handle)
}

type fakeSurface struct {
	id        uint64
	size      swapchain.Size
	destroyed bool
}

func (s *fakeSurface) Size() swapchain.Size { return s.size }
func (s *fakeSurface) ID() uint64           { return s.id }

type fakeTexture struct {
	surface *fakeSurface
}

func (t *fakeTexture) Handle() uint32       { return 1 }
func (t *fakeTexture) Size() swapchain.Size { return t.surface.size }

// fakeDevice records the order of teardown events so tests can assert
// surfaces die before the device does.
type fakeDevice struct {
	next    uint64
	events  []string
	closed  bool
	failAll bool
}

func (d *fakeDevice) CreateSurface(size swapchain.Size) (swapchain.Surface, error) {
	if d.failAll {
		return nil, errors.New("fake: create failed")
	}
	d.next++
	d.events = append(d.events, "create")
	return &fakeSurface{id: d.next, size: size}, nil
}

func (d *fakeDevice) DestroySurface(s swapchain.Surface) error {
	fs := s.(*fakeSurface)
	if fs.destroyed {
		return errors.New("fake: double destroy")
	}
	fs.destroyed = true
	d.events = append(d.events, "destroy")
	return nil
}

func (d *fakeDevice) CreateSurfaceTexture(s swapchain.Surface) (swapchain.SurfaceTexture, error) {
	return &fakeTexture{surface: s.(*fakeSurface)}, nil
}

func (d *fakeDevice) DestroySurfaceTexture(t swapchain.SurfaceTexture) (swapchain.Surface, error) {
	return t.(*fakeTexture).surface, nil
}

func (d *fakeDevice) Close() error {
	if d.closed {
		return errors.New("fake: double close")
	}
	d.closed = true
	d.events = append(d.events, "close")
	return nil
}

func TestContextDeviceNoRenderSurface(t *testing.T) {
	dev := &fakeDevice{}
	cd, err := NewContextDevice(dev, swapchain.Size{})
	if err != nil {
		t.Fatalf("NewContextDevice: %v", err)
	}
	if cd.RenderSurface() != nil {
		t.Error("RenderSurface = non-nil for zero size, want nil")
	}
	if err := cd.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !dev.closed {
		t.Error("Close did not close the device")
	}
}

func TestContextDeviceCloseOrder(t *testing.T) {
	dev := &fakeDevice{}
	cd, err := NewContextDevice(dev, swapchain.Size{Width: 32, Height: 32})
	if err != nil {
		t.Fatalf("NewContextDevice: %v", err)
	}
	if cd.RenderSurface() == nil {
		t.Fatal("RenderSurface = nil, want a persistent surface")
	}

	if err := cd.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	want := []string{"create", "destroy", "close"}
	if len(dev.events) != len(want) {
		t.Fatalf("events = %v, want %v", dev.events, want)
	}
	for i := range want {
		if dev.events[i] != want[i] {
			t.Fatalf("events = %v, want %v", dev.events, want)
		}
	}

	// Second Close is a no-op, not a double free.
	if err := cd.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
	if cd.MakeCurrent() != ErrDeviceClosed {
		t.Error("MakeCurrent after Close did not return ErrDeviceClosed")
	}
}

func TestContextDeviceResizeRender(t *testing.T) {
	dev := &fakeDevice{}
	cd, err := NewContextDevice(dev, swapchain.Size{Width: 16, Height: 16})
	if err != nil {
		t.Fatalf("NewContextDevice: %v", err)
	}
	old := cd.RenderSurface().(*fakeSurface)

	newSize := swapchain.Size{Width: 64, Height: 48}
	if err := cd.ResizeRender(newSize); err != nil {
		t.Fatalf("ResizeRender: %v", err)
	}
	if !old.destroyed {
		t.Error("old render surface not destroyed after resize")
	}
	if got := cd.RenderSurface().Size(); got != newSize {
		t.Errorf("render surface size = %v, want %v", got, newSize)
	}
	cd.Close()
}

func TestContextDeviceCreateFailure(t *testing.T) {
	dev := &fakeDevice{failAll: true}
	if _, err := NewContextDevice(dev, swapchain.Size{Width: 8, Height: 8}); err == nil {
		t.Fatal("NewContextDevice with failing device = nil error, want error")
	}
	if dev.closed {
		t.Error("constructor failure closed the device; caller still owns it")
	}
}
