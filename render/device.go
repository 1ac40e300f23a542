// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"

	"github.com/gogpu/swapchain"
)

// ErrDeviceClosed is returned by operations on a ContextDevice after Close.
var ErrDeviceClosed = errors.New("render: device closed")

// DeviceHandle provides GPU device access from a host application.
//
// When the swapchain runs inside a larger gogpu application, the host
// already owns a device and queue; GPU backends accept a DeviceHandle
// (wgpu.NewFromDeviceHandle) so the swapchain allocates its surfaces on
// the shared device instead of creating a second one.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, giving the
// interface a swapchain-local name while staying compatible with the
// gpucontext ecosystem.
type DeviceHandle = gpucontext.DeviceProvider

// NullDeviceHandle is a DeviceHandle that provides nil implementations.
// Used with CPU-only backends where no shared GPU device exists.
type NullDeviceHandle struct{}

// Device returns nil for the null handle.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null handle.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null handle.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null handle.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

// Ensure NullDeviceHandle implements DeviceHandle.
var _ DeviceHandle = NullDeviceHandle{}

// CurrentBinder is implemented by devices whose context must be bound to
// the calling thread before use. Devices without thread-affine contexts
// simply do not implement it.
type CurrentBinder interface {
	MakeCurrent() error
}

// Presenter is implemented by devices that can present their persistent
// render surface to a window or display.
type Presenter interface {
	Present() error
}

// ContextDevice bundles a swapchain.Device with an optional persistent
// render surface for window output.
//
// A ContextDevice has exactly one owner at a time and must only be used
// from the owning goroutine. Close is idempotent; it destroys the render
// surface first and the device second, so surface teardown still has a
// live device to run against.
type ContextDevice struct {
	device swapchain.Device
	render swapchain.Surface
	closed bool
}

// NewContextDevice wraps device. If renderSize is non-zero a persistent
// render surface of that size is created; on failure the device is left
// untouched and still owned by the caller.
func NewContextDevice(device swapchain.Device, renderSize swapchain.Size) (*ContextDevice, error) {
	cd := &ContextDevice{device: device}
	if !renderSize.IsZero() {
		surface, err := device.CreateSurface(renderSize)
		if err != nil {
			return nil, fmt.Errorf("render: create render surface: %w", err)
		}
		cd.render = surface
	}
	return cd, nil
}

// Device returns the wrapped device.
func (cd *ContextDevice) Device() swapchain.Device { return cd.device }

// RenderSurface returns the persistent render surface, or nil when the
// device was created without one.
func (cd *ContextDevice) RenderSurface() swapchain.Surface { return cd.render }

// ResizeRender replaces the persistent render surface with one of the
// given size. The old surface is destroyed.
func (cd *ContextDevice) ResizeRender(size swapchain.Size) error {
	if cd.closed {
		return ErrDeviceClosed
	}
	surface, err := cd.device.CreateSurface(size)
	if err != nil {
		return fmt.Errorf("render: resize render surface: %w", err)
	}
	if cd.render != nil {
		if err := cd.device.DestroySurface(cd.render); err != nil {
			swapchain.Logger().Warn("render: destroy old render surface", "error", err)
		}
	}
	cd.render = surface
	return nil
}

// MakeCurrent binds the device context to the calling thread when the
// device requires it. It is a no-op for devices without thread-affine
// contexts.
func (cd *ContextDevice) MakeCurrent() error {
	if cd.closed {
		return ErrDeviceClosed
	}
	if binder, ok := cd.device.(CurrentBinder); ok {
		return binder.MakeCurrent()
	}
	return nil
}

// Present presents the persistent render surface when the device supports
// presentation. It is a no-op otherwise.
func (cd *ContextDevice) Present() error {
	if cd.closed {
		return ErrDeviceClosed
	}
	if presenter, ok := cd.device.(Presenter); ok {
		return presenter.Present()
	}
	return nil
}

// Close destroys the render surface, then closes the device. Calling Close
// more than once is safe; only the first call tears anything down.
func (cd *ContextDevice) Close() error {
	if cd.closed {
		return nil
	}
	cd.closed = true

	var errs []error
	if cd.render != nil {
		if err := cd.device.DestroySurface(cd.render); err != nil {
			errs = append(errs, fmt.Errorf("render: destroy render surface: %w", err))
		}
		cd.render = nil
	}
	if err := cd.device.Close(); err != nil {
		errs = append(errs, fmt.Errorf("render: close device: %w", err))
	}
	return errors.Join(errs...)
}
