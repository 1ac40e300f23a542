// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/gogpu/swapchain"
)

func init() {
	swapchain.Register("software", 10, func() (swapchain.Device, error) {
		return New(), nil
	}, func() bool { return true })
}

// ErrDeviceClosed is returned by operations on a closed Device.
var ErrDeviceClosed = errors.New("software: device closed")

// Surface is a CPU-resident swapchain surface. The pixel buffer is
// exposed through RGBA for rendering and readback.
type Surface struct {
	id  uint64
	img *image.RGBA
}

// Size returns the surface size in pixels.
func (s *Surface) Size() swapchain.Size {
	b := s.img.Bounds()
	return swapchain.Size{Width: int32(b.Dx()), Height: int32(b.Dy())}
}

// ID returns the device-local surface id.
func (s *Surface) ID() uint64 { return s.id }

// RGBA returns the backing pixel buffer.
func (s *Surface) RGBA() *image.RGBA { return s.img }

// Fill covers the whole surface with a solid color.
func (s *Surface) Fill(c color.Color) {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Blit scales src onto the whole surface. Sizes need not match; the
// source is resampled.
func (s *Surface) Blit(src image.Image) {
	xdraw.CatmullRom.Scale(s.img, s.img.Bounds(), src, src.Bounds(), xdraw.Over, nil)
}

type surfaceTexture struct {
	handle uint32
	surf   *Surface
}

func (t *surfaceTexture) Handle() uint32       { return t.handle }
func (t *surfaceTexture) Size() swapchain.Size { return t.surf.Size() }

// Device allocates CPU surfaces. Handles are unique per device and never
// zero, so a zero handle still means "no frame" to consumers. A Device is
// safe for use from producer and consumer goroutines at once.
type Device struct {
	mu          sync.Mutex
	nextSurface uint64
	nextHandle  uint32
	closed      bool
}

var _ swapchain.Device = (*Device)(nil)

// New creates a software device.
func New() *Device { return &Device{} }

// CreateSurface allocates an RGBA image of the given size.
func (d *Device) CreateSurface(size swapchain.Size) (swapchain.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}
	if size.IsZero() {
		return nil, fmt.Errorf("software: invalid surface size %dx%d", size.Width, size.Height)
	}
	d.nextSurface++
	return &Surface{
		id:  d.nextSurface,
		img: image.NewRGBA(image.Rect(0, 0, int(size.Width), int(size.Height))),
	}, nil
}

// DestroySurface drops the surface's pixel buffer.
func (d *Device) DestroySurface(s swapchain.Surface) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return ErrDeviceClosed
	}
	surf, ok := s.(*Surface)
	if !ok {
		return fmt.Errorf("software: foreign surface %T", s)
	}
	surf.img = nil
	return nil
}

// CreateSurfaceTexture assigns the surface a fresh non-zero handle.
func (d *Device) CreateSurfaceTexture(s swapchain.Surface) (swapchain.SurfaceTexture, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}
	surf, ok := s.(*Surface)
	if !ok {
		return nil, fmt.Errorf("software: foreign surface %T", s)
	}
	d.nextHandle++
	return &surfaceTexture{handle: d.nextHandle, surf: surf}, nil
}

// DestroySurfaceTexture returns the underlying surface.
func (d *Device) DestroySurfaceTexture(t swapchain.SurfaceTexture) (swapchain.Surface, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil, ErrDeviceClosed
	}
	st, ok := t.(*surfaceTexture)
	if !ok {
		return nil, fmt.Errorf("software: foreign surface texture %T", t)
	}
	return st.surf, nil
}

// Close marks the device closed. CPU surfaces need no teardown beyond
// garbage collection.
func (d *Device) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	return nil
}
