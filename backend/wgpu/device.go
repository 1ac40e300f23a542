// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package wgpu

import (
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/swapchain"
	"github.com/gogpu/swapchain/render"

	// Import Vulkan backend so it registers via init().
	_ "github.com/gogpu/wgpu/hal/vulkan"
)

func init() {
	swapchain.Register("wgpu", 100, func() (swapchain.Device, error) {
		return New()
	}, func() bool {
		_, ok := hal.GetBackend(gputypes.BackendVulkan)
		return ok
	})
}

// ErrDeviceClosed is returned by operations on a closed Device.
var ErrDeviceClosed = errors.New("wgpu: device closed")

type surface struct {
	id   uint64
	size swapchain.Size
	tex  hal.Texture
}

func (s *surface) Size() swapchain.Size { return s.size }
func (s *surface) ID() uint64           { return s.id }

type surfaceTexture struct {
	handle uint32
	surf   *surface
	view   hal.TextureView
}

func (t *surfaceTexture) Handle() uint32       { return t.handle }
func (t *surfaceTexture) Size() swapchain.Size { return t.surf.size }

// View returns the HAL texture view backing the external image handle,
// for consumers that composite through the HAL directly.
func (t *surfaceTexture) View() hal.TextureView { return t.view }

// Device allocates swapchain surfaces as HAL textures. It is safe for use
// from producer and consumer goroutines at once.
type Device struct {
	mu       sync.Mutex
	instance hal.Instance
	device   hal.Device
	queue    hal.Queue

	nextSurface uint64
	nextHandle  uint32

	externalDevice bool // shared device, don't destroy on Close
	closed         bool
}

var _ swapchain.Device = (*Device)(nil)

// New creates a standalone device on the first usable Vulkan adapter,
// preferring discrete and integrated GPUs.
func New() (*Device, error) {
	backend, ok := hal.GetBackend(gputypes.BackendVulkan)
	if !ok {
		return nil, errors.New("wgpu: vulkan backend not available")
	}
	instance, err := backend.CreateInstance(&hal.InstanceDescriptor{Flags: 0})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create instance: %w", err)
	}

	adapters := instance.EnumerateAdapters(nil)
	if len(adapters) == 0 {
		instance.Destroy()
		return nil, errors.New("wgpu: no GPU adapters found")
	}

	var selected *hal.ExposedAdapter
	for i := range adapters {
		if adapters[i].Info.DeviceType == gputypes.DeviceTypeDiscreteGPU ||
			adapters[i].Info.DeviceType == gputypes.DeviceTypeIntegratedGPU {
			selected = &adapters[i]
			break
		}
	}
	if selected == nil {
		selected = &adapters[0]
	}

	openDev, err := selected.Adapter.Open(gputypes.Features(0), gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		return nil, fmt.Errorf("wgpu: open device: %w", err)
	}

	swapchain.Logger().Info("wgpu: device initialized (standalone)",
		"adapter", selected.Info.Name)
	return &Device{
		instance: instance,
		device:   openDev.Device,
		queue:    openDev.Queue,
	}, nil
}

// NewFromDeviceHandle creates a device on GPU resources shared through a
// host's render.DeviceHandle. The HAL types are recovered from the handle
// itself or, failing that, from its wrapped gpucontext device; either must
// expose HalDevice() any and HalQueue() any. Close leaves the shared
// resources alone.
//
// A render.NullDeviceHandle is rejected; callers without a GPU device
// should fall back to a standalone New or a CPU backend.
func NewFromDeviceHandle(handle render.DeviceHandle) (*Device, error) {
	if handle == nil {
		return nil, errors.New("wgpu: nil device handle")
	}
	if d, err := NewFromProvider(handle); err == nil {
		return d, nil
	}
	dev := handle.Device()
	if dev == nil {
		return nil, errors.New("wgpu: device handle wraps no device")
	}
	return NewFromProvider(dev)
}

// NewFromProvider creates a device on GPU resources shared with a host
// application. The provider must expose HalDevice() any and HalQueue() any
// returning hal.Device and hal.Queue. Close leaves the shared resources
// alone.
func NewFromProvider(provider any) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, errors.New("wgpu: provider does not expose HAL types")
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, errors.New("wgpu: provider HalDevice is not hal.Device")
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, errors.New("wgpu: provider HalQueue is not hal.Queue")
	}

	swapchain.Logger().Debug("wgpu: device initialized (shared)")
	return &Device{
		device:         device,
		queue:          queue,
		externalDevice: true,
	}, nil
}

// CreateSurface allocates a texture usable as a render attachment and,
// once bound, as a shader binding.
func (d *Device) CreateSurface(size swapchain.Size) (swapchain.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrDeviceClosed
	}
	if size.IsZero() {
		return nil, fmt.Errorf("wgpu: invalid surface size %dx%d", size.Width, size.Height)
	}

	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label: "swapchain_surface",
		Size: hal.Extent3D{
			Width:              uint32(size.Width),
			Height:             uint32(size.Height),
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatBGRA8Unorm,
		Usage:         gputypes.TextureUsageRenderAttachment | gputypes.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create surface texture: %w", err)
	}

	d.nextSurface++
	return &surface{id: d.nextSurface, size: size, tex: tex}, nil
}

// DestroySurface releases the surface's texture.
func (d *Device) DestroySurface(s swapchain.Surface) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return ErrDeviceClosed
	}
	surf, ok := s.(*surface)
	if !ok {
		return fmt.Errorf("wgpu: foreign surface %T", s)
	}
	d.device.DestroyTexture(surf.tex)
	surf.tex = nil
	return nil
}

// CreateSurfaceTexture binds the surface as a sampleable view and assigns
// it an external image handle.
func (d *Device) CreateSurfaceTexture(s swapchain.Surface) (swapchain.SurfaceTexture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrDeviceClosed
	}
	surf, ok := s.(*surface)
	if !ok {
		return nil, fmt.Errorf("wgpu: foreign surface %T", s)
	}

	view, err := d.device.CreateTextureView(surf.tex, &hal.TextureViewDescriptor{
		Label: "swapchain_surface_view",
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create surface view: %w", err)
	}

	d.nextHandle++
	return &surfaceTexture{handle: d.nextHandle, surf: surf, view: view}, nil
}

// DestroySurfaceTexture releases the view and returns the underlying
// surface to the caller.
func (d *Device) DestroySurfaceTexture(t swapchain.SurfaceTexture) (swapchain.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil, ErrDeviceClosed
	}
	st, ok := t.(*surfaceTexture)
	if !ok {
		return nil, fmt.Errorf("wgpu: foreign surface texture %T", t)
	}
	d.device.DestroyTextureView(st.view)
	st.view = nil
	return st.surf, nil
}

// Close destroys the device and instance when this Device created them.
// Shared resources from NewFromProvider are left untouched.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return nil
	}
	d.closed = true

	if !d.externalDevice {
		if d.device != nil {
			d.device.Destroy()
		}
		if d.instance != nil {
			d.instance.Destroy()
		}
	}
	d.device = nil
	d.instance = nil
	d.queue = nil
	return nil
}
